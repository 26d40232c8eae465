package codec

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
)

var commandContext = exec.CommandContext

// encodeWebP shells out to cwebp, which has no in-process Go counterpart
// (golang.org/x/image/webp only decodes). The already-decoded image is staged
// as a temporary PNG so cwebp accepts any source format we can decode.
func (l *Library) encodeWebP(ctx context.Context, img image.Image, dstPath string) error {
	dir := filepath.Dir(dstPath)

	staging, err := os.CreateTemp(dir, ".webp-src-*.png")
	if err != nil {
		return fmt.Errorf("create staging file: %w", err)
	}
	stagingPath := staging.Name()
	defer os.Remove(stagingPath)

	if err := png.Encode(staging, img); err != nil {
		_ = staging.Close()
		return fmt.Errorf("stage source image: %w", err)
	}
	if err := staging.Close(); err != nil {
		return fmt.Errorf("stage source image: %w", err)
	}

	partial := dstPath + ".partial"
	args := []string{"-quiet", "-q", strconv.Itoa(l.webpQuality), stagingPath, "-o", partial}
	cmd := commandContext(ctx, l.cwebpBinary, args...)
	if output, err := cmd.CombinedOutput(); err != nil {
		_ = os.Remove(partial)
		if detail := firstLine(output); detail != "" {
			return fmt.Errorf("cwebp: %s", detail)
		}
		return fmt.Errorf("cwebp: %w", err)
	}

	if err := os.Rename(partial, dstPath); err != nil {
		_ = os.Remove(partial)
		return fmt.Errorf("finalize %s: %w", dstPath, err)
	}
	return nil
}

func firstLine(output []byte) string {
	text := strings.TrimSpace(string(output))
	if idx := strings.IndexByte(text, '\n'); idx >= 0 {
		text = text[:idx]
	}
	return strings.TrimSpace(text)
}
