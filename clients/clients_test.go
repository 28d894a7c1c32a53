package clients

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/maastricht-university/diarization-pipeline/timeline"
)

func writeTempWav(t *testing.T) string {
	t.Helper()
	// Content does not matter for transport tests, only the upload path.
	path := filepath.Join(t.TempDir(), "audio.wav")
	if err := os.WriteFile(path, []byte("RIFF fake"), 0o644); err != nil {
		t.Fatalf("write wav: %v", err)
	}
	return path
}

func TestDiarizeUploadsFileAndParams(t *testing.T) {
	var gotAuth, gotMin, gotMax string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/diarize" {
			t.Errorf("path = %q", r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parse form: %v", err)
		}
		if _, hdr, err := r.FormFile("file"); err != nil || hdr.Filename != "audio.wav" {
			t.Errorf("file part: %v %v", hdr, err)
		}
		gotMin = r.FormValue("min_speakers")
		gotMax = r.FormValue("max_speakers")
		json.NewEncoder(w).Encode(DiarizeResp{
			Segments: []timeline.Segment{
				{Speaker: "SPEAKER_00", Start: 0, End: 2},
				{Speaker: "SPEAKER_01", Start: 2.5, End: 4},
			},
			NumSpeakers: 2,
		})
	}))
	defer srv.Close()

	h := NewHTTP(10*time.Second, "hf_token")
	resp, err := h.Diarize(context.Background(), srv.URL, writeTempWav(t), DiarizeParams{
		MinSpeakers: 2,
		MaxSpeakers: 3,
	})
	if err != nil {
		t.Fatalf("diarize: %v", err)
	}
	if gotAuth != "Bearer hf_token" {
		t.Fatalf("auth header = %q", gotAuth)
	}
	if gotMin != "2" || gotMax != "3" {
		t.Fatalf("params = %q %q", gotMin, gotMax)
	}
	if len(resp.Segments) != 2 || resp.NumSpeakers != 2 {
		t.Fatalf("resp = %+v", resp)
	}
}

func TestDiarizeRejectsInvalidServiceSegments(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(DiarizeResp{
			Segments: []timeline.Segment{{Speaker: "SPEAKER_00", Start: 3, End: 1}},
		})
	}))
	defer srv.Close()

	h := NewHTTP(10*time.Second, "")
	if _, err := h.Diarize(context.Background(), srv.URL, writeTempWav(t), DiarizeParams{}); err == nil {
		t.Fatal("want validation error for end before start")
	}
}

func TestDiarizeSurfacesServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not loaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	h := NewHTTP(10*time.Second, "")
	_, err := h.Diarize(context.Background(), srv.URL, writeTempWav(t), DiarizeParams{})
	if err == nil {
		t.Fatal("want error")
	}
}

func TestVAD(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/vad" {
			t.Errorf("path = %q", r.URL.Path)
		}
		json.NewEncoder(w).Encode(VADResp{Segments: []SpeechRegion{{Start: 0.5, End: 3}}})
	}))
	defer srv.Close()

	h := NewHTTP(10*time.Second, "")
	resp, err := h.VAD(context.Background(), srv.URL, writeTempWav(t))
	if err != nil {
		t.Fatalf("vad: %v", err)
	}
	if len(resp.Segments) != 1 || resp.Segments[0].End != 3 {
		t.Fatalf("resp = %+v", resp)
	}
}

func TestOverlaps(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/overlaps" {
			t.Errorf("path = %q", r.URL.Path)
		}
		json.NewEncoder(w).Encode(OverlapResp{Segments: []SpeechRegion{{Start: 1, End: 2}}})
	}))
	defer srv.Close()

	h := NewHTTP(10*time.Second, "")
	resp, err := h.Overlaps(context.Background(), srv.URL, writeTempWav(t))
	if err != nil {
		t.Fatalf("overlaps: %v", err)
	}
	if len(resp.Segments) != 1 {
		t.Fatalf("resp = %+v", resp)
	}
}

func TestPlotTimeline(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/plot-timeline" {
			t.Errorf("path = %q", r.URL.Path)
		}
		var preq PlotReq
		if err := json.NewDecoder(r.Body).Decode(&preq); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if preq.FileID != "rec01" || len(preq.Segments) != 1 {
			t.Errorf("req = %+v", preq)
		}
		json.NewEncoder(w).Encode(PlotResp{Status: "ok", Path: "plots/rec01.png"})
	}))
	defer srv.Close()

	h := NewHTTP(10*time.Second, "")
	resp, err := h.PlotTimeline(context.Background(), srv.URL, PlotReq{
		FileID:   "rec01",
		Segments: []timeline.Segment{{Speaker: "a", Start: 0, End: 1}},
	})
	if err != nil {
		t.Fatalf("plot: %v", err)
	}
	if resp.Path != "plots/rec01.png" {
		t.Fatalf("resp = %+v", resp)
	}
}
