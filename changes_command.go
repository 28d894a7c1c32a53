package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/maastricht-university/diarization-pipeline/orchestrator"
	"github.com/maastricht-university/diarization-pipeline/rttm"
	"github.com/maastricht-university/diarization-pipeline/timeline"
)

func newChangesCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "changes <diarization.rttm|diarization.csv>",
		Short: "List speaker change points from a diarization output file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var segments []timeline.Segment
			if strings.EqualFold(filepath.Ext(args[0]), ".csv") {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				segments, err = rttm.ReadCSV(f)
				if err != nil {
					return err
				}
			} else {
				doc, err := rttm.ReadFile(args[0])
				if err != nil {
					return err
				}
				segments = doc.Segments
			}

			tl, err := timeline.New(segments...)
			if err != nil {
				return err
			}
			for i, ch := range orchestrator.SpeakerChanges(tl) {
				if i == 0 {
					fmt.Fprintf(cmd.OutOrStdout(), "starts with %s at %.2fs\n", ch.To, ch.Time)
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "change at %.2fs: %s -> %s\n", ch.Time, ch.From, ch.To)
			}
			return nil
		},
	}
}
