package clients

import (
	"context"
	"encoding/json"
	"fmt"
)

// SpeechRegion is an unlabeled span of detected speech.
type SpeechRegion struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// VADResp is the voice-activity service output.
type VADResp struct {
	Segments []SpeechRegion `json:"segments"`
}

// VAD uploads a WAV file to the voice-activity-detection service and
// returns the detected speech regions.
func (h *HTTP) VAD(ctx context.Context, url, wavPath string) (*VADResp, error) {
	resp, err := h.uploadWav(ctx, url+"/vad", wavPath, "vad")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var out VADResp
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("vad decode: %w", err)
	}
	return &out, nil
}
