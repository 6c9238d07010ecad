package main

import (
	"fmt"
	"os"
	"time"

	"github.com/fentz26/carcare/internal/report"
	"github.com/spf13/cobra"
)

func newExportCmd(opts *options) *cobra.Command {
	var (
		format string
		out    string
		vf     vehicleFlags
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the task list as a PDF, CSV or JSON report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, _, err := opts.session(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			r := report.Report{Tasks: svc.Tasks(), GeneratedAt: time.Now()}
			if vf.category != "" {
				v, err := vf.profile()
				if err != nil {
					return err
				}
				r.Vehicle = &v
			}

			data, err := report.Export(r, format)
			if err != nil {
				return err
			}
			if out == "" {
				out = "maintenance-report." + format
			}
			if err := os.WriteFile(out, data, 0644); err != nil {
				return fmt.Errorf("write report: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Report written to '%s'.\n", out)
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", report.FormatPDF, "Report format (pdf, csv, json)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output path (default maintenance-report.<format>)")
	vf.register(cmd)
	return cmd
}
