package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/maastricht-university/diarization-pipeline/orchestrator"
)

func newEvaluateCommand(ctx *commandContext) *cobra.Command {
	var jsonPath string

	cmd := &cobra.Command{
		Use:   "evaluate <reference.rttm> <hypothesis.rttm>",
		Short: "Compute the diarization error rate against a reference",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := ctx.ensureConfig(); err != nil {
				return err
			}
			report, err := orchestrator.EvaluateFiles(ctx.log("evaluate"), args[0], args[1])
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), report.Render())
			if rate, ok := report.Rate(); ok {
				fmt.Fprintf(cmd.OutOrStdout(), "Final DER = %.2f%%\n", rate*100)
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "Final DER undefined: reference has no speech")
			}

			if jsonPath != "" {
				out, err := json.MarshalIndent(report.Export(args[0], args[1]), "", "    ")
				if err != nil {
					return err
				}
				if dir := filepath.Dir(jsonPath); dir != "." {
					if err := os.MkdirAll(dir, 0o755); err != nil {
						return err
					}
				}
				if err := os.WriteFile(jsonPath, append(out, '\n'), 0o644); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "DER results saved to %s\n", jsonPath)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&jsonPath, "json", "", "Write the detailed DER report to this JSON file")
	return cmd
}
