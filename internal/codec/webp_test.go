package codec_test

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"imgconv/internal/codec"
	"imgconv/internal/testsupport"
)

func TestEncodeWebPUsesConfiguredQuality(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	cfg.Convert.WebPQuality = 42
	lib := codec.NewLibrary(cfg, nil)

	dir := t.TempDir()
	src := filepath.Join(dir, "in.png")
	dst := filepath.Join(dir, "out.webp")
	testsupport.WriteImage(t, src, 4, 4)

	var captured []string
	restore := *codec.CommandContext
	*codec.CommandContext = func(ctx context.Context, name string, args ...string) *exec.Cmd {
		captured = args
		// args layout: -quiet -q <quality> <staging> -o <partial>
		return exec.CommandContext(ctx, "cp", args[3], args[5])
	}
	t.Cleanup(func() { *codec.CommandContext = restore })

	if err := lib.Convert(context.Background(), src, dst, codec.FormatWebP); err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if _, err := os.Stat(dst); err != nil {
		t.Fatalf("expected webp output: %v", err)
	}
	if len(captured) < 3 || captured[1] != "-q" || captured[2] != "42" {
		t.Fatalf("cwebp invoked without configured quality: %v", captured)
	}
}
