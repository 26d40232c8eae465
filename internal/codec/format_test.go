package codec

import (
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	cases := []struct {
		input   string
		want    Format
		wantErr bool
	}{
		{input: "png", want: FormatPNG},
		{input: "PNG", want: FormatPNG},
		{input: " jpeg ", want: FormatJPEG},
		{input: "jpg", want: FormatJPEG},
		{input: ".jpg", want: FormatJPEG},
		{input: "tif", want: FormatTIFF},
		{input: "tiff", want: FormatTIFF},
		{input: "webp", want: FormatWebP},
		{input: "pdf", want: FormatPDF},
		{input: "", wantErr: true},
		{input: "heic", wantErr: true},
		{input: "raw", wantErr: true},
	}

	for _, tc := range cases {
		got, err := Parse(tc.input)
		if tc.wantErr {
			if err == nil {
				t.Errorf("Parse(%q): expected error, got %v", tc.input, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("Parse(%q): %v", tc.input, err)
			continue
		}
		if got != tc.want {
			t.Errorf("Parse(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestParseErrorListsSupportedFormats(t *testing.T) {
	_, err := Parse("heic")
	if err == nil {
		t.Fatal("expected error")
	}
	for _, f := range Formats() {
		if !strings.Contains(err.Error(), f.String()) {
			t.Errorf("error %q should mention %s", err, f)
		}
	}
}

func TestExtension(t *testing.T) {
	cases := map[Format]string{
		FormatPNG:  ".png",
		FormatJPEG: ".jpg",
		FormatTIFF: ".tiff",
		FormatWebP: ".webp",
		FormatPDF:  ".pdf",
	}
	for f, want := range cases {
		if got := f.Extension(); got != want {
			t.Errorf("%s.Extension() = %q, want %q", f, got, want)
		}
	}
}

func TestExternalEncoder(t *testing.T) {
	if got := FormatWebP.ExternalEncoder(); got != "cwebp" {
		t.Fatalf("webp external encoder = %q", got)
	}
	for _, f := range Formats() {
		if f == FormatWebP {
			continue
		}
		if got := f.ExternalEncoder(); got != "" {
			t.Errorf("%s should encode in-process, got %q", f, got)
		}
	}
}
