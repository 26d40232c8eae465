package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"imgconv/internal/codec"
	"imgconv/internal/deps"
)

func newFormatsCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "formats",
		Short: "List supported target formats",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			encoderStatus := map[string]deps.Status{}
			for _, status := range deps.CheckBinaries(deps.EncoderRequirements(cfg.Convert.CwebpBinary)) {
				encoderStatus[status.Name] = status
			}

			type formatRow struct {
				Name      string `json:"name"`
				Extension string `json:"extension"`
				Encoder   string `json:"encoder"`
				Available bool   `json:"available"`
				Detail    string `json:"detail,omitempty"`
			}

			titler := cases.Title(language.Und)
			rows := make([]formatRow, 0, len(codec.Formats()))
			for _, format := range codec.Formats() {
				row := formatRow{
					Name:      titler.String(format.String()),
					Extension: format.Extension(),
					Encoder:   "built-in",
					Available: true,
				}
				if binary := format.ExternalEncoder(); binary != "" {
					row.Encoder = binary
					if status, ok := encoderStatus[binary]; ok {
						row.Available = status.Available
						row.Detail = status.Detail
					}
				}
				rows = append(rows, row)
			}

			if jsonOut {
				return printJSON(cmd.OutOrStdout(), rows)
			}

			tableRows := make([][]string, 0, len(rows))
			for _, row := range rows {
				available := yesNo(row.Available)
				if row.Detail != "" {
					available = fmt.Sprintf("%s (%s)", available, row.Detail)
				}
				tableRows = append(tableRows, []string{row.Name, row.Extension, row.Encoder, available})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Format", "Extension", "Encoder", "Available"},
				tableRows,
				nil,
			))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit the format list as JSON")
	return cmd
}
