package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/maastricht-university/diarization-pipeline/timeline"
)

// PlotReq asks the visualization service to render a diarization
// timeline plot for one recording.
type PlotReq struct {
	FileID    string             `json:"file_id"`
	AudioPath string             `json:"audio_path,omitempty"`
	Segments  []timeline.Segment `json:"segments"`
	OutputDir string             `json:"output_dir,omitempty"`
}

// PlotResp reports where the rendered image was written.
type PlotResp struct {
	Status string `json:"status"`
	Path   string `json:"path"`
}

// PlotTimeline renders the diarization plot via the visualization
// service.
func (h *HTTP) PlotTimeline(ctx context.Context, url string, preq PlotReq) (*PlotResp, error) {
	b, _ := json.Marshal(preq)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url+"/plot-timeline", bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := h.do(req, "plot timeline")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var out PlotResp
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("plot timeline decode: %w", err)
	}
	return &out, nil
}
