package clients

import (
	"context"
	"encoding/json"
	"fmt"
)

// OverlapResp is the overlapped-speech-detection service output: the
// regions where at least two speakers talk at once.
type OverlapResp struct {
	Segments []SpeechRegion `json:"segments"`
}

// Overlaps uploads a WAV file to the overlapped-speech-detection service.
func (h *HTTP) Overlaps(ctx context.Context, url, wavPath string) (*OverlapResp, error) {
	resp, err := h.uploadWav(ctx, url+"/overlaps", wavPath, "overlaps")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var out OverlapResp
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("overlaps decode: %w", err)
	}
	return &out, nil
}
