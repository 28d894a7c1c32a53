package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/maastricht-university/diarization-pipeline/clients"
	"github.com/maastricht-university/diarization-pipeline/orchestrator"
	"github.com/maastricht-university/diarization-pipeline/rttm"
)

func newVisualizeCommand(ctx *commandContext) *cobra.Command {
	var audioPath string

	cmd := &cobra.Command{
		Use:   "visualize <diarization.rttm>",
		Short: "Render a timeline plot via the visualization service",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, cfg, err := ctx.httpClient()
			if err != nil {
				return err
			}
			if cfg.Services.Visualization.URL == "" {
				return fmt.Errorf("visualization service url not configured")
			}

			doc, err := rttm.ReadFile(args[0])
			if err != nil {
				return err
			}
			fileID := doc.FileID
			if fileID == "" {
				fileID = orchestrator.FileID(args[0])
			}

			resp, err := client.PlotTimeline(cmd.Context(), cfg.Services.Visualization.URL, clients.PlotReq{
				FileID:    fileID,
				AudioPath: audioPath,
				Segments:  doc.Segments,
				OutputDir: cfg.Paths.Plots,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "plot %s: %s\n", resp.Status, resp.Path)
			return nil
		},
	}

	cmd.Flags().StringVar(&audioPath, "audio", "", "Audio file to draw the waveform from")
	return cmd
}
