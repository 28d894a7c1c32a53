// Package clients talks to the external pyannote-style model services:
// diarization, voice activity detection, overlapped-speech detection and
// the visualization renderer.
package clients

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

// HTTP is the shared client for all model services. A non-empty token is
// sent as a bearer Authorization header on every request.
type HTTP struct {
	c     *http.Client
	token string
}

// NewHTTP builds the client. A zero timeout falls back to one minute.
func NewHTTP(timeout time.Duration, token string) *HTTP {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &HTTP{c: &http.Client{Timeout: timeout}, token: token}
}

func (h *HTTP) do(req *http.Request, service string) (*http.Response, error) {
	if h.token != "" {
		req.Header.Set("Authorization", "Bearer "+h.token)
	}
	resp, err := h.c.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, fmt.Errorf("%s %s: %s", service, resp.Status, string(body))
	}
	return resp, nil
}

// uploadWav posts a WAV file as a multipart form with no extra fields.
func (h *HTTP) uploadWav(ctx context.Context, url, wavPath, service string) (*http.Response, error) {
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
	if err = w.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &b)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	return h.do(req, service)
}
