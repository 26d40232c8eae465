package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"imgconv/internal/batch"
	"imgconv/internal/codec"
	"imgconv/internal/history"
	"imgconv/internal/request"
)

func newConvertCommand(ctx *commandContext) *cobra.Command {
	var formatFlag string
	var destFlag string
	var jsonOut bool
	var quiet bool

	cmd := &cobra.Command{
		Use:   "convert --to <format> [flags] <file>...",
		Short: "Convert image files to another format",
		Long: `Convert converts each given image file to the target format and writes the
results into the destination directory. Files convert independently; a file
that cannot be converted is reported and does not stop the rest of the batch.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger := ctx.ensureLogger()

			req, err := request.Args{
				Paths:   args,
				Format:  formatFlag,
				DestDir: destFlag,
				Config:  cfg,
			}.ConversionRequest()
			if err != nil {
				return err
			}
			if err := os.MkdirAll(req.DestDir, 0o755); err != nil {
				return fmt.Errorf("create destination directory %q: %w", req.DestDir, err)
			}

			runCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			var progress batch.ProgressFunc
			if !quiet && !jsonOut {
				progress = func(index, total int, outcome batch.Outcome) {
					fmt.Fprintln(out, renderOutcomeLine(index, total, outcome, colorize))
				}
			}

			runner := batch.NewRunner(codec.NewLibrary(cfg, logger), logger)
			report, err := runner.Run(runCtx, req, progress)
			if err != nil {
				return err
			}

			if cfg.History.Enabled {
				if histErr := ctx.withHistory(func(store *history.Store) error {
					return store.RecordBatch(cmd.Context(), report)
				}); histErr != nil {
					logger.Warn("record batch in history", slog.String("error", histErr.Error()))
				}
			}
			ctx.rememberDestination(req.DestDir)

			if jsonOut {
				if err := printJSON(cmd.OutOrStdout(), newReportPayload(report)); err != nil {
					return err
				}
			} else if !quiet {
				fmt.Fprintln(out, renderReportTable(report))
			}

			succeeded, failed := report.Counts()
			if !jsonOut && !quiet {
				fmt.Fprintf(out, "Converted %d of %d files to %s in %s\n",
					succeeded, len(report.Outcomes), report.Target, formatDuration(report.FinishedAt.Sub(report.StartedAt)))
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d conversions failed", failed, len(report.Outcomes))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&formatFlag, "to", "t", "", "Target format (png, jpeg, gif, tiff, bmp, webp, pdf)")
	cmd.Flags().StringVarP(&destFlag, "dest", "d", "", "Destination directory (defaults to the configured output directory)")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit the batch report as JSON")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Suppress progress and report output")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}

func renderReportTable(report *batch.Report) string {
	rows := make([][]string, 0, len(report.Outcomes))
	for _, outcome := range report.Outcomes {
		result := "ok"
		detail := outcome.Dest
		if !outcome.Succeeded() {
			result = "failed"
			detail = outcome.Reason
		}
		rows = append(rows, []string{
			outcome.Source,
			result,
			detail,
			formatDuration(outcome.Duration()),
		})
	}
	return renderTable(
		[]string{"Source", "Result", "Output / Reason", "Time"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight},
	)
}

type reportPayload struct {
	ID         string           `json:"id"`
	Target     string           `json:"target"`
	DestDir    string           `json:"dest_dir"`
	StartedAt  time.Time        `json:"started_at"`
	FinishedAt time.Time        `json:"finished_at"`
	Succeeded  int              `json:"succeeded"`
	Failed     int              `json:"failed"`
	Outcomes   []outcomePayload `json:"outcomes"`
}

type outcomePayload struct {
	Source string `json:"source"`
	Dest   string `json:"dest,omitempty"`
	Status string `json:"status"`
	Reason string `json:"reason,omitempty"`
}

func newReportPayload(report *batch.Report) reportPayload {
	succeeded, failed := report.Counts()
	payload := reportPayload{
		ID:         report.ID,
		Target:     report.Target.String(),
		DestDir:    report.DestDir,
		StartedAt:  report.StartedAt,
		FinishedAt: report.FinishedAt,
		Succeeded:  succeeded,
		Failed:     failed,
		Outcomes:   make([]outcomePayload, 0, len(report.Outcomes)),
	}
	for _, outcome := range report.Outcomes {
		entry := outcomePayload{
			Source: outcome.Source,
			Status: string(outcome.Status),
			Reason: outcome.Reason,
		}
		if outcome.Succeeded() {
			entry.Dest = outcome.Dest
		}
		payload.Outcomes = append(payload.Outcomes, entry)
	}
	return payload
}
