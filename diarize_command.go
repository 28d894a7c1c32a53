package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/maastricht-university/diarization-pipeline/clients"
	"github.com/maastricht-university/diarization-pipeline/orchestrator"
	"github.com/maastricht-university/diarization-pipeline/rttm"
)

func newDiarizeCommand(ctx *commandContext) *cobra.Command {
	var minSpeakers, maxSpeakers int
	var clusteringThreshold float64

	cmd := &cobra.Command{
		Use:   "diarize <audio.wav>",
		Short: "Diarize one recording and write the CSV and RTTM outputs",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, cfg, err := ctx.httpClient()
			if err != nil {
				return err
			}
			if cfg.Services.Diarization.URL == "" {
				return fmt.Errorf("diarization service url not configured")
			}

			params := clients.DiarizeParams{
				MinSpeakers:         cfg.Diarization.MinSpeakers,
				MaxSpeakers:         cfg.Diarization.MaxSpeakers,
				ClusteringThreshold: cfg.Diarization.ClusteringThreshold,
			}
			if minSpeakers > 0 {
				params.MinSpeakers = minSpeakers
			}
			if maxSpeakers > 0 {
				params.MaxSpeakers = maxSpeakers
			}
			if clusteringThreshold > 0 {
				params.ClusteringThreshold = clusteringThreshold
			}

			resp, err := client.Diarize(cmd.Context(), cfg.Services.Diarization.URL, args[0], params)
			if err != nil {
				return err
			}

			fileID := orchestrator.FileID(args[0])
			if err := os.MkdirAll(cfg.Paths.Outputs, 0o755); err != nil {
				return err
			}
			csvPath := filepath.Join(cfg.Paths.Outputs, fileID+"_diarization.csv")
			if err := rttm.WriteCSVFile(csvPath, resp.Segments); err != nil {
				return err
			}
			rttmPath := filepath.Join(cfg.Paths.Outputs, fileID+"_diarization.rttm")
			if err := rttm.WriteFile(rttmPath, fileID, resp.Segments); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%d segments, %d speakers\n%s\n%s\n",
				len(resp.Segments), resp.NumSpeakers, csvPath, rttmPath)
			return nil
		},
	}

	cmd.Flags().IntVar(&minSpeakers, "min-speakers", 0, "Minimum number of speakers expected")
	cmd.Flags().IntVar(&maxSpeakers, "max-speakers", 0, "Maximum number of speakers expected")
	cmd.Flags().Float64Var(&clusteringThreshold, "clustering-threshold", 0, "Clustering threshold for speaker embeddings")
	return cmd
}
