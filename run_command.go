package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/maastricht-university/diarization-pipeline/orchestrator"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "run <audio.wav>",
		Short: "Run the full pipeline: preprocess, diarize, plot, evaluate",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			p := orchestrator.NewPipeline(cfg, ctx.log("orchestrator"))
			res, err := p.Run(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "session %s: %d segments, %d speakers\n",
				res.SessionID, len(res.Segments), res.NumSpeakers)
			if res.Report != nil {
				fmt.Fprintln(cmd.OutOrStdout(), res.Report.Render())
			}
			return nil
		},
	}
}
