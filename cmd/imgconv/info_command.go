package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"imgconv/internal/codec"
	"imgconv/internal/config"
)

func newInfoCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "info <file>...",
		Short: "Show format, dimensions, and size of image files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			type infoRow struct {
				Path   string `json:"path"`
				Format string `json:"format,omitempty"`
				Width  int    `json:"width,omitempty"`
				Height int    `json:"height,omitempty"`
				Size   int64  `json:"size_bytes,omitempty"`
				Error  string `json:"error,omitempty"`
			}

			failures := 0
			rows := make([]infoRow, 0, len(args))
			for _, arg := range args {
				path, err := config.ExpandPath(arg)
				if err != nil {
					path = arg
				}
				info, err := codec.Probe(path)
				if err != nil {
					failures++
					rows = append(rows, infoRow{Path: arg, Error: err.Error()})
					continue
				}
				rows = append(rows, infoRow{
					Path:   info.Path,
					Format: info.Format,
					Width:  info.Width,
					Height: info.Height,
					Size:   info.SizeBytes,
				})
			}

			if jsonOut {
				if err := printJSON(cmd.OutOrStdout(), rows); err != nil {
					return err
				}
			} else {
				tableRows := make([][]string, 0, len(rows))
				for _, row := range rows {
					if row.Error != "" {
						tableRows = append(tableRows, []string{row.Path, "-", "-", "-", row.Error})
						continue
					}
					tableRows = append(tableRows, []string{
						row.Path,
						row.Format,
						fmt.Sprintf("%dx%d", row.Width, row.Height),
						strconv.FormatInt(row.Size, 10),
						"",
					})
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(
					[]string{"Path", "Format", "Dimensions", "Bytes", "Error"},
					tableRows,
					[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignLeft},
				))
			}

			if failures > 0 {
				return fmt.Errorf("could not read %d of %d files", failures, len(args))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit file details as JSON")
	return cmd
}
