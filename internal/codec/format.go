package codec

import (
	"fmt"
	"strings"
)

// Format identifies a supported target image format.
type Format string

const (
	FormatPNG  Format = "png"
	FormatJPEG Format = "jpeg"
	FormatGIF  Format = "gif"
	FormatTIFF Format = "tiff"
	FormatBMP  Format = "bmp"
	FormatWebP Format = "webp"
	FormatPDF  Format = "pdf"
)

var allFormats = []Format{
	FormatPNG,
	FormatJPEG,
	FormatGIF,
	FormatTIFF,
	FormatBMP,
	FormatWebP,
	FormatPDF,
}

var formatAliases = map[string]Format{
	"jpg": FormatJPEG,
	"tif": FormatTIFF,
}

var formatExtensions = map[Format]string{
	FormatPNG:  ".png",
	FormatJPEG: ".jpg",
	FormatGIF:  ".gif",
	FormatTIFF: ".tiff",
	FormatBMP:  ".bmp",
	FormatWebP: ".webp",
	FormatPDF:  ".pdf",
}

// Formats returns every supported target format in display order.
func Formats() []Format {
	out := make([]Format, len(allFormats))
	copy(out, allFormats)
	return out
}

// Parse normalizes a user-supplied format identifier. Common extension
// spellings (jpg, tif) map to their canonical format.
func Parse(value string) (Format, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	normalized = strings.TrimPrefix(normalized, ".")
	if normalized == "" {
		return "", fmt.Errorf("target format required")
	}
	if alias, ok := formatAliases[normalized]; ok {
		return alias, nil
	}
	f := Format(normalized)
	if _, ok := formatExtensions[f]; !ok {
		return "", fmt.Errorf("unsupported target format %q (supported: %s)", value, supportedList())
	}
	return f, nil
}

// Extension returns the output file extension for the format, dot included.
func (f Format) Extension() string {
	return formatExtensions[f]
}

func (f Format) String() string {
	return string(f)
}

// ExternalEncoder returns the name of the external binary required to encode
// this format, or empty when encoding happens in-process.
func (f Format) ExternalEncoder() string {
	if f == FormatWebP {
		return "cwebp"
	}
	return ""
}

func supportedList() string {
	names := make([]string, len(allFormats))
	for i, f := range allFormats {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}
