package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/maastricht-university/diarization-pipeline/timeline"
)

// DiarizeParams are the hyperparameters forwarded to the diarization
// backend. Zero values are omitted so the backend auto-detects.
type DiarizeParams struct {
	MinSpeakers         int
	MaxSpeakers         int
	ClusteringThreshold float64
}

// DiarizeResp is the backend's speaker-attributed segmentation.
type DiarizeResp struct {
	Segments    []timeline.Segment `json:"segments"`
	NumSpeakers int                `json:"num_speakers"`
}

// Diarize uploads a WAV file to the diarization service and returns the
// speaker segments.
func (h *HTTP) Diarize(ctx context.Context, url, wavPath string, params DiarizeParams) (*DiarizeResp, error) {
	var b bytes.Buffer
	w := multipart.NewWriter(&b)

	fw, err := w.CreateFormFile("file", filepath.Base(wavPath))
	if err != nil {
		return nil, err
	}
	fd, err := os.Open(wavPath)
	if err != nil {
		return nil, err
	}
	defer fd.Close()

	if _, err = io.Copy(fw, fd); err != nil {
		return nil, err
	}
	if params.MinSpeakers > 0 {
		_ = w.WriteField("min_speakers", strconv.Itoa(params.MinSpeakers))
	}
	if params.MaxSpeakers > 0 {
		_ = w.WriteField("max_speakers", strconv.Itoa(params.MaxSpeakers))
	}
	if params.ClusteringThreshold > 0 {
		_ = w.WriteField("clustering_threshold", strconv.FormatFloat(params.ClusteringThreshold, 'f', -1, 64))
	}
	if err = w.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url+"/diarize", &b)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := h.do(req, "diarize")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var out DiarizeResp
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("diarize decode: %w", err)
	}
	for i, s := range out.Segments {
		if err := s.Validate(); err != nil {
			return nil, fmt.Errorf("diarize segment %d: %w", i, err)
		}
	}
	return &out, nil
}
