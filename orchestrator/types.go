package orchestrator

import (
	"github.com/maastricht-university/diarization-pipeline/der"
	"github.com/maastricht-university/diarization-pipeline/timeline"
)

// AudioInfo is the probed shape of an input WAV file.
type AudioInfo struct {
	Path            string  `json:"path"`
	SampleRate      int     `json:"sample_rate"`
	Channels        int     `json:"channels"`
	BitDepth        int     `json:"bit_depth"`
	DurationSeconds float64 `json:"duration_seconds"`
}

// SpeakerChange marks a hand-over between two consecutive speaker turns.
type SpeakerChange struct {
	Time float64 `json:"time"`
	From string  `json:"from"`
	To   string  `json:"to"`
}

// RunResult collects everything one pipeline run produced.
type RunResult struct {
	SessionID   string
	OutDir      string
	FileID      string
	Audio       AudioInfo
	Segments    []timeline.Segment
	NumSpeakers int
	Changes     []SpeakerChange
	CSVPath     string
	RTTMPath    string
	PlotPath    string
	// Report is nil when no reference RTTM was found.
	Report *der.Report
}
