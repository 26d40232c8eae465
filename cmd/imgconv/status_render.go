package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/mattn/go-isatty"

	"imgconv/internal/batch"
)

const (
	ansiReset = "\x1b[0m"
	ansiRed   = "\x1b[31m"
	ansiGreen = "\x1b[32m"
)

// renderOutcomeLine formats one per-file progress line, e.g.
// "[2/5] cat.png -> /out/cat.jpg (84ms)".
func renderOutcomeLine(index, total int, outcome batch.Outcome, colorize bool) string {
	label := fmt.Sprintf("[%d/%d]", index+1, total)
	if outcome.Succeeded() {
		line := fmt.Sprintf("%s %s -> %s (%s)",
			label, filepath.Base(outcome.Source), outcome.Dest, formatDuration(outcome.Duration()))
		if colorize {
			return ansiGreen + line + ansiReset
		}
		return line
	}
	line := fmt.Sprintf("%s %s failed: %s", label, filepath.Base(outcome.Source), outcome.Reason)
	if colorize {
		return ansiRed + line + ansiReset
	}
	return line
}

func formatDuration(d time.Duration) string {
	if d <= 0 {
		return "0ms"
	}
	if d < time.Second {
		return d.Round(time.Millisecond).String()
	}
	return d.Round(10 * time.Millisecond).String()
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
