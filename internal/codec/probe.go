package codec

import (
	"fmt"
	"image"
	"os"
)

// ImageInfo describes the basic properties of an image file.
type ImageInfo struct {
	Path      string
	Format    string
	Width     int
	Height    int
	SizeBytes int64
}

// Probe reads just enough of the file to report its format and dimensions.
func Probe(path string) (ImageInfo, error) {
	info, err := os.Stat(path)
	if err != nil {
		return ImageInfo{}, fmt.Errorf("stat %s: %w", path, err)
	}

	file, err := os.Open(path)
	if err != nil {
		return ImageInfo{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	cfg, formatName, err := image.DecodeConfig(file)
	if err != nil {
		return ImageInfo{}, fmt.Errorf("read image header: %w", err)
	}

	return ImageInfo{
		Path:      path,
		Format:    formatName,
		Width:     cfg.Width,
		Height:    cfg.Height,
		SizeBytes: info.Size(),
	}, nil
}
