package orchestrator

import (
	"github.com/maastricht-university/diarization-pipeline/timeline"
)

// SpeakerChanges walks the start-ordered turns and lists the points where
// the active speaker label differs from the previous turn. The first turn
// is reported as a change from the empty label.
func SpeakerChanges(t *timeline.Timeline) []SpeakerChange {
	var out []SpeakerChange
	prev := ""
	for _, s := range t.Segments() {
		if s.Speaker != prev {
			out = append(out, SpeakerChange{Time: s.Start, From: prev, To: s.Speaker})
			prev = s.Speaker
		}
	}
	return out
}
