package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newVADCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "vad <audio.wav>",
		Short: "Detect speech regions via the voice-activity service",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, cfg, err := ctx.httpClient()
			if err != nil {
				return err
			}
			if cfg.Services.VAD.URL == "" {
				return fmt.Errorf("vad service url not configured")
			}

			resp, err := client.VAD(cmd.Context(), cfg.Services.VAD.URL, args[0])
			if err != nil {
				return err
			}
			for _, r := range resp.Segments {
				fmt.Fprintf(cmd.OutOrStdout(), "speech %.2f - %.2f\n", r.Start, r.End)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d speech regions\n", len(resp.Segments))
			return nil
		},
	}
}
