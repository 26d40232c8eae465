package codec

import (
	"context"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"log/slog"
	"os"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	// webp is decode-only; the other decoders register through the encoder
	// imports above.
	_ "golang.org/x/image/webp"

	"imgconv/internal/config"
	"imgconv/internal/deps"
	"imgconv/internal/fileutil"
	"imgconv/internal/logging"
)

// Converter is the single conversion capability the orchestrator depends on:
// decode the source file and encode it into the target format at dstPath.
// Implementations must not leave a partial file at dstPath on failure.
type Converter interface {
	Convert(ctx context.Context, srcPath, dstPath string, target Format) error
}

// Library converts images using the imaging libraries linked into the binary,
// shelling out only for formats without an in-process encoder.
type Library struct {
	jpegQuality int
	webpQuality int
	pdfDPI      int
	cwebpBinary string
	logger      *slog.Logger
}

// NewLibrary builds a Library from application configuration.
func NewLibrary(cfg *config.Config, logger *slog.Logger) *Library {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Library{
		jpegQuality: cfg.Convert.JPEGQuality,
		webpQuality: cfg.Convert.WebPQuality,
		pdfDPI:      cfg.Convert.PDFDPI,
		cwebpBinary: cfg.CwebpBinary(),
		logger:      logger,
	}
}

// CheckTarget verifies the library can encode the given format, including the
// presence of any external encoder binary it would shell out to.
func (l *Library) CheckTarget(target Format) error {
	if _, err := Parse(target.String()); err != nil {
		return err
	}
	if binary := target.ExternalEncoder(); binary != "" {
		if err := deps.Lookup(l.cwebpBinary); err != nil {
			return fmt.Errorf("%s targets need the %s encoder: %w", target, binary, err)
		}
	}
	return nil
}

// Convert decodes srcPath and encodes it as target at dstPath. The output is
// written atomically; an existing file at dstPath is replaced on success and
// untouched on failure.
func (l *Library) Convert(ctx context.Context, srcPath, dstPath string, target Format) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	img, sourceFormat, err := decodeImage(srcPath)
	if err != nil {
		return err
	}
	l.logger.Debug("decoded source image",
		slog.String("source", srcPath),
		slog.String("source_format", sourceFormat),
		slog.String("target", target.String()))

	if target == FormatWebP {
		return l.encodeWebP(ctx, img, dstPath)
	}

	return fileutil.WriteFileAtomic(dstPath, func(w io.Writer) error {
		return l.encode(w, img, target)
	})
}

func (l *Library) encode(w io.Writer, img image.Image, target Format) error {
	switch target {
	case FormatPNG:
		if err := png.Encode(w, img); err != nil {
			return fmt.Errorf("encode png: %w", err)
		}
	case FormatJPEG:
		if err := jpeg.Encode(w, img, &jpeg.Options{Quality: l.jpegQuality}); err != nil {
			return fmt.Errorf("encode jpeg: %w", err)
		}
	case FormatGIF:
		if err := gif.Encode(w, img, nil); err != nil {
			return fmt.Errorf("encode gif: %w", err)
		}
	case FormatTIFF:
		opts := &tiff.Options{Compression: tiff.Deflate, Predictor: true}
		if err := tiff.Encode(w, img, opts); err != nil {
			return fmt.Errorf("encode tiff: %w", err)
		}
	case FormatBMP:
		if err := bmp.Encode(w, img); err != nil {
			return fmt.Errorf("encode bmp: %w", err)
		}
	case FormatPDF:
		return l.encodePDF(w, img)
	default:
		return fmt.Errorf("no encoder for format %q", target)
	}
	return nil
}

func decodeImage(path string) (image.Image, string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("open source: %w", err)
	}
	defer file.Close()

	img, formatName, err := image.Decode(file)
	if err != nil {
		return nil, "", fmt.Errorf("decode source: %w", err)
	}
	return img, formatName, nil
}
