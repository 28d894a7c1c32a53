// Package der computes the Diarization Error Rate between a reference and
// a hypothesis timeline: reference and hypothesis speakers are aligned by
// temporal overlap, matched one-to-one by maximum-weight assignment, and
// the residual time is split into missed speech, false alarm and speaker
// confusion.
package der

import (
	"github.com/samber/lo"

	"github.com/maastricht-university/diarization-pipeline/timeline"
)

// PairBreakdown is the diagnostic view of one matched speaker pair.
type PairBreakdown struct {
	Reference        string  `json:"reference"`
	Hypothesis       string  `json:"hypothesis"`
	MatchedSeconds   float64 `json:"matched_seconds"`
	ConfusionSeconds float64 `json:"confusion_seconds"`
	MissedSeconds    float64 `json:"missed_seconds"`
}

// Report is the error decomposition of one evaluation. Immutable once
// computed. DER follows the standard convention: overlapping speech by
// two distinct reference speakers counts twice in the total.
type Report struct {
	TotalReferenceSeconds float64         `json:"total_reference_duration"`
	MissedSeconds         float64         `json:"missed_speech_duration"`
	FalseAlarmSeconds     float64         `json:"false_alarm_duration"`
	ConfusionSeconds      float64         `json:"confusion_duration"`
	// DER is meaningless when Undefined is set; read it through Rate.
	DER        float64         `json:"der"`
	Undefined  bool            `json:"undefined,omitempty"`
	Assignment Assignment      `json:"assignment"`
	PerSpeaker []PairBreakdown `json:"per_speaker_breakdown"`
}

// Rate returns the diarization error rate and whether it is defined. A
// zero total reference duration makes the rate undefined, never zero.
func (r *Report) Rate() (float64, bool) {
	if r.Undefined {
		return 0, false
	}
	return r.DER, true
}

// Evaluate aligns the two timelines and produces the DER report. Pure and
// deterministic: identical inputs always yield identical reports, and
// concurrent evaluations need no synchronization.
func Evaluate(ref, hyp *timeline.Timeline) *Report {
	matrix := BuildOverlapMatrix(ref, hyp)
	assignment := Match(matrix)

	refAll := ref.SupportAll()
	hypAll := hyp.SupportAll()

	report := &Report{Assignment: assignment}
	for _, r := range matrix.RefLabels() {
		support := ref.Support(r)
		dur := timeline.TotalDuration(support)
		detected := overlapDuration(support, hypAll)

		matched := 0.0
		h, ok := assignment[r]
		if ok {
			matched = matrix.Overlap(r, h)
		}

		report.TotalReferenceSeconds += dur
		report.MissedSeconds += clampNonNegative(dur - detected)
		confusion := clampNonNegative(detected - matched)
		report.ConfusionSeconds += confusion

		if ok {
			report.PerSpeaker = append(report.PerSpeaker, PairBreakdown{
				Reference:        r,
				Hypothesis:       h,
				MatchedSeconds:   matched,
				ConfusionSeconds: confusion,
				MissedSeconds:    clampNonNegative(dur - detected),
			})
		}
	}

	report.FalseAlarmSeconds = lo.SumBy(matrix.HypLabels(), func(h string) float64 {
		support := hyp.Support(h)
		return clampNonNegative(timeline.TotalDuration(support) - overlapDuration(support, refAll))
	})

	if report.TotalReferenceSeconds == 0 {
		report.Undefined = true
		return report
	}
	report.DER = (report.MissedSeconds + report.FalseAlarmSeconds + report.ConfusionSeconds) /
		report.TotalReferenceSeconds
	return report
}

// EvaluateAnnotation evaluates a prepared reference/hypothesis pair.
func EvaluateAnnotation(ann *timeline.Annotation) *Report {
	return Evaluate(ann.Reference, ann.Hypothesis)
}

// clampNonNegative zeroes the tiny negative residues of float
// subtraction.
func clampNonNegative(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
