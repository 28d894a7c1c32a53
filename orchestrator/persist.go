package orchestrator

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/maastricht-university/diarization-pipeline/der"
	"github.com/maastricht-university/diarization-pipeline/timeline"
)

// PersistBundle is the JSON record written at the end of a run.
type PersistBundle struct {
	RunID       string             `json:"run_id"`
	SessionID   string             `json:"session_id"`
	FileID      string             `json:"file_id"`
	AudioPath   string             `json:"audio_path"`
	GeneratedAt time.Time          `json:"generated_at"`
	NumSpeakers int                `json:"num_speakers"`
	Segments    []timeline.Segment `json:"segments"`
	CSVPath     string             `json:"csv_path,omitempty"`
	RTTMPath    string             `json:"rttm_path,omitempty"`
	PlotPath    string             `json:"plot_path,omitempty"`
	Evaluation  *der.Result        `json:"evaluation,omitempty"`
}

func mkSessionDir(outputsRoot string) (string, string, error) {
	ts := time.Now().Format("20060102-150405")
	sid := "session_" + ts
	dir := filepath.Join(outputsRoot, sid)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", "", err
	}
	return sid, dir, nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (p *Pipeline) persist(res *RunResult, evaluation *der.Result) (string, error) {
	bundle := PersistBundle{
		RunID:       uuid.NewString(),
		SessionID:   res.SessionID,
		FileID:      res.FileID,
		AudioPath:   res.Audio.Path,
		GeneratedAt: time.Now(),
		NumSpeakers: res.NumSpeakers,
		Segments:    res.Segments,
		CSVPath:     res.CSVPath,
		RTTMPath:    res.RTTMPath,
		PlotPath:    res.PlotPath,
		Evaluation:  evaluation,
	}
	path := filepath.Join(res.OutDir, res.FileID+"_run.json")
	if err := writeJSON(path, bundle); err != nil {
		return "", err
	}
	return path, nil
}
