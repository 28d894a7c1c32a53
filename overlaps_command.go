package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newOverlapsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "overlaps <audio.wav>",
		Short: "Detect overlapping speech via the overlap-detection service",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, cfg, err := ctx.httpClient()
			if err != nil {
				return err
			}
			if cfg.Services.Overlap.URL == "" {
				return fmt.Errorf("overlap service url not configured")
			}

			resp, err := client.Overlaps(cmd.Context(), cfg.Services.Overlap.URL, args[0])
			if err != nil {
				return err
			}
			for _, r := range resp.Segments {
				fmt.Fprintf(cmd.OutOrStdout(), "overlap %.2f - %.2f\n", r.Start, r.End)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d overlapping regions\n", len(resp.Segments))
			return nil
		},
	}
}
