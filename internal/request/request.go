// Package request builds conversion requests from the surfaces that collect
// user input. The orchestrator only sees the finished batch.Request, so a
// different front end (a file picker, a watch daemon) plugs in by satisfying
// Source.
package request

import (
	"fmt"
	"path/filepath"
	"strings"

	"imgconv/internal/batch"
	"imgconv/internal/codec"
	"imgconv/internal/config"
)

// Source produces a conversion request from some user-facing input surface.
type Source interface {
	ConversionRequest() (batch.Request, error)
}

// Args builds a request from command-line input: positional source paths plus
// the target format and destination flags.
type Args struct {
	Paths   []string
	Format  string
	DestDir string
	Config  *config.Config
}

// ConversionRequest validates the raw arguments and resolves the destination
// directory. An omitted destination falls back to the last used directory,
// then the configured default output directory.
func (a Args) ConversionRequest() (batch.Request, error) {
	if len(a.Paths) == 0 {
		return batch.Request{}, fmt.Errorf("no source files given")
	}

	target, err := codec.Parse(a.Format)
	if err != nil {
		return batch.Request{}, err
	}

	destDir := strings.TrimSpace(a.DestDir)
	if destDir == "" && a.Config != nil {
		destDir = strings.TrimSpace(a.Config.Paths.LastUsedDir)
		if destDir == "" {
			destDir = strings.TrimSpace(a.Config.Paths.OutputDir)
		}
	}
	if destDir == "" {
		return batch.Request{}, fmt.Errorf("no destination directory given and none configured")
	}
	destDir, err = config.ExpandPath(destDir)
	if err != nil {
		return batch.Request{}, err
	}

	sources := make([]string, 0, len(a.Paths))
	for _, path := range a.Paths {
		expanded, err := config.ExpandPath(path)
		if err != nil {
			return batch.Request{}, err
		}
		absolute, err := filepath.Abs(expanded)
		if err != nil {
			return batch.Request{}, fmt.Errorf("resolve %s: %w", path, err)
		}
		sources = append(sources, absolute)
	}

	return batch.Request{
		Sources: sources,
		Target:  target,
		DestDir: destDir,
	}, nil
}
