package batch

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"imgconv/internal/codec"
	"imgconv/internal/fileutil"
	"imgconv/internal/logging"
)

// lockFileName is the advisory lock taken in the destination directory while
// a batch runs. Two batches writing the same directory would interleave
// last-write-wins outputs, so the second invocation is rejected up front.
// The file is removed again when the batch finishes; the destination ends up
// holding only the written outputs.
const lockFileName = ".imgconv.lock"

const (
	reasonNotFound   = "source not found"
	reasonUnreadable = "source unreadable"
	reasonCanceled   = "canceled"
)

// ProgressFunc receives each outcome as it is produced. index is zero-based;
// total is the number of requested sources.
type ProgressFunc func(index, total int, outcome Outcome)

// targetChecker is implemented by converters that can pre-validate a target
// format, e.g. by probing for an external encoder binary.
type targetChecker interface {
	CheckTarget(codec.Format) error
}

// Runner converts every source in a request, one at a time, and aggregates
// per-file outcomes. It holds no state across invocations.
type Runner struct {
	converter codec.Converter
	logger    *slog.Logger
}

// NewRunner builds a Runner around the provided conversion capability.
func NewRunner(converter codec.Converter, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Runner{converter: converter, logger: logger}
}

// Run validates the request, then converts each source in order. Per-file
// failures are recorded in the report and never abort the batch; validation
// failures abort before any I/O and yield no report.
func (r *Runner) Run(ctx context.Context, req Request, progress ProgressFunc) (*Report, error) {
	if err := r.validate(&req); err != nil {
		return nil, err
	}

	lock := flock.New(filepath.Join(req.DestDir, lockFileName))
	locked, err := lock.TryLock()
	if err != nil {
		return nil, validationErrorf("lock destination %s: %v", req.DestDir, err)
	}
	if !locked {
		return nil, validationErrorf("destination %s is in use by another conversion", req.DestDir)
	}
	defer func() {
		_ = lock.Unlock()
		_ = os.Remove(lock.Path())
	}()

	report := &Report{
		ID:        uuid.NewString(),
		Target:    req.Target,
		DestDir:   req.DestDir,
		Outcomes:  make([]Outcome, 0, len(req.Sources)),
		StartedAt: time.Now(),
	}
	r.logger.Info("batch started",
		slog.String("batch_id", report.ID),
		slog.String("target", req.Target.String()),
		slog.String("dest_dir", req.DestDir),
		slog.Int("sources", len(req.Sources)))

	canceled := false
	for i, source := range req.Sources {
		var outcome Outcome
		if canceled {
			now := time.Now()
			outcome = Outcome{
				Source:     source,
				Dest:       r.destPath(req, source),
				Status:     StatusFailed,
				Reason:     reasonCanceled,
				StartedAt:  now,
				FinishedAt: now,
			}
		} else {
			outcome = r.convertOne(ctx, req, source)
			if ctx.Err() != nil {
				canceled = true
			}
		}

		report.Outcomes = append(report.Outcomes, outcome)
		if progress != nil {
			progress(i, len(req.Sources), outcome)
		}
	}

	report.FinishedAt = time.Now()
	succeeded, failed := report.Counts()
	r.logger.Info("batch finished",
		slog.String("batch_id", report.ID),
		slog.Int("succeeded", succeeded),
		slog.Int("failed", failed),
		slog.Duration("elapsed", report.FinishedAt.Sub(report.StartedAt)))
	return report, nil
}

// validate rejects unusable requests and canonicalizes the target, so alias
// spellings like "jpg" derive the same dest paths as "jpeg".
func (r *Runner) validate(req *Request) error {
	if len(req.Sources) == 0 {
		return validationErrorf("no source files in request")
	}
	target, err := codec.Parse(req.Target.String())
	if err != nil {
		return validationErrorf("%v", err)
	}
	req.Target = target
	if strings.TrimSpace(req.DestDir) == "" {
		return validationErrorf("destination directory required")
	}
	if err := fileutil.DirWritable(req.DestDir); err != nil {
		return validationErrorf("%v", err)
	}
	if checker, ok := r.converter.(targetChecker); ok {
		if err := checker.CheckTarget(req.Target); err != nil {
			return validationErrorf("%v", err)
		}
	}
	return nil
}

func (r *Runner) convertOne(ctx context.Context, req Request, source string) Outcome {
	outcome := Outcome{
		Source:    source,
		Dest:      r.destPath(req, source),
		StartedAt: time.Now(),
	}

	if err := fileutil.Readable(source); err != nil {
		outcome.Status = StatusFailed
		if errors.Is(err, fs.ErrNotExist) {
			outcome.Reason = reasonNotFound
		} else {
			outcome.Reason = reasonUnreadable + ": " + err.Error()
		}
		outcome.FinishedAt = time.Now()
		r.logger.Warn("skipping source",
			slog.String("source", source),
			slog.String("reason", outcome.Reason))
		return outcome
	}

	if err := r.converter.Convert(ctx, source, outcome.Dest, req.Target); err != nil {
		outcome.Status = StatusFailed
		outcome.Reason = err.Error()
		outcome.FinishedAt = time.Now()
		r.logger.Warn("conversion failed",
			slog.String("source", source),
			slog.String("dest", outcome.Dest),
			slog.Any("error", err))
		return outcome
	}

	outcome.Status = StatusSuccess
	outcome.FinishedAt = time.Now()
	r.logger.Debug("conversion succeeded",
		slog.String("source", source),
		slog.String("dest", outcome.Dest),
		slog.Duration("elapsed", outcome.Duration()))
	return outcome
}

// destPath derives the output path: destination directory plus the source
// base name with the target format's extension.
func (r *Runner) destPath(req Request, source string) string {
	base := filepath.Base(source)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if stem == "" {
		stem = base
	}
	return filepath.Join(req.DestDir, stem+req.Target.Extension())
}
