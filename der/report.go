package der

import (
	"fmt"
	"math"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// Components mirrors the JSON shape emitted for downstream tooling.
type Components struct {
	FalseAlarmSeconds      float64 `json:"false_alarm_seconds"`
	MissedDetectionSeconds float64 `json:"missed_detection_seconds"`
	ConfusionSeconds       float64 `json:"confusion_seconds"`
	TotalSpeechSeconds     float64 `json:"total_speech_seconds"`
}

// Result is the serializable evaluation record. OverallDER is null when
// the rate is undefined (empty reference).
type Result struct {
	OverallDER     *float64          `json:"overall_der"`
	DERPercentage  *float64          `json:"der_percentage"`
	Components     Components        `json:"components"`
	Assignment     map[string]string `json:"assignment,omitempty"`
	PerSpeaker     []PairBreakdown   `json:"per_speaker_breakdown,omitempty"`
	ReferenceFile  string            `json:"reference_file,omitempty"`
	HypothesisFile string            `json:"hypothesis_file,omitempty"`
}

// Export converts the report into its serializable form, tagging it with
// the input file paths.
func (r *Report) Export(referenceFile, hypothesisFile string) Result {
	res := Result{
		Components: Components{
			FalseAlarmSeconds:      round2(r.FalseAlarmSeconds),
			MissedDetectionSeconds: round2(r.MissedSeconds),
			ConfusionSeconds:       round2(r.ConfusionSeconds),
			TotalSpeechSeconds:     round2(r.TotalReferenceSeconds),
		},
		Assignment:     r.Assignment,
		PerSpeaker:     r.PerSpeaker,
		ReferenceFile:  referenceFile,
		HypothesisFile: hypothesisFile,
	}
	if rate, ok := r.Rate(); ok {
		pct := round2(rate * 100)
		res.OverallDER = &rate
		res.DERPercentage = &pct
	}
	return res
}

// Render formats the report as console tables: the error decomposition
// first, then the per-pair breakdown when speakers were matched.
func (r *Report) Render() string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"component", "seconds"})
	tw.AppendRow(table.Row{"missed detection", fmt.Sprintf("%.2f", r.MissedSeconds)})
	tw.AppendRow(table.Row{"false alarm", fmt.Sprintf("%.2f", r.FalseAlarmSeconds)})
	tw.AppendRow(table.Row{"confusion", fmt.Sprintf("%.2f", r.ConfusionSeconds)})
	tw.AppendRow(table.Row{"total reference", fmt.Sprintf("%.2f", r.TotalReferenceSeconds)})
	if rate, ok := r.Rate(); ok {
		tw.AppendFooter(table.Row{"DER", fmt.Sprintf("%.2f%%", rate*100)})
	} else {
		tw.AppendFooter(table.Row{"DER", "undefined"})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight, AlignFooter: text.AlignRight},
	})
	out := tw.Render()

	if len(r.PerSpeaker) == 0 {
		return out
	}

	pairs := table.NewWriter()
	pairs.SetStyle(table.StyleRounded)
	pairs.AppendHeader(table.Row{"reference", "hypothesis", "matched s", "confusion s", "missed s"})
	for _, p := range r.PerSpeaker {
		pairs.AppendRow(table.Row{
			p.Reference,
			p.Hypothesis,
			fmt.Sprintf("%.2f", p.MatchedSeconds),
			fmt.Sprintf("%.2f", p.ConfusionSeconds),
			fmt.Sprintf("%.2f", p.MissedSeconds),
		})
	}
	pairs.SetColumnConfigs([]table.ColumnConfig{
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
	})
	return out + "\n" + pairs.Render()
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
