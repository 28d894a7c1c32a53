package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// chdir is a stand-in for t.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chdir(old) })
}

func TestLoadDefaultsWithoutFile(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Pipeline.Name != "diarization-pipeline" {
		t.Fatalf("name = %q", cfg.Pipeline.Name)
	}
	if cfg.Audio.SampleRate != 16000 {
		t.Fatalf("sample rate = %d, want 16000", cfg.Audio.SampleRate)
	}
	if cfg.Timeout() != 300*time.Second {
		t.Fatalf("timeout = %v, want 5m", cfg.Timeout())
	}
}

func TestLoadExplicitFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := `
pipeline:
  name: test-pipeline
  log_level: debug
services:
  diarization:
    url: http://localhost:8001
diarization:
  min_speakers: 2
  max_speakers: 4
timeout_seconds: 30
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Pipeline.Name != "test-pipeline" {
		t.Fatalf("name = %q", cfg.Pipeline.Name)
	}
	if cfg.Services.Diarization.URL != "http://localhost:8001" {
		t.Fatalf("url = %q", cfg.Services.Diarization.URL)
	}
	if cfg.Diarization.MinSpeakers != 2 || cfg.Diarization.MaxSpeakers != 4 {
		t.Fatalf("speakers = %+v", cfg.Diarization)
	}
	if cfg.Timeout() != 30*time.Second {
		t.Fatalf("timeout = %v", cfg.Timeout())
	}
	// File values override defaults, untouched keys keep them.
	if cfg.Paths.Outputs != "outputs" {
		t.Fatalf("outputs = %q", cfg.Paths.Outputs)
	}
}

func TestLoadMissingExplicitFileFails(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("want error for missing explicit config file")
	}
}

func TestAuthTokenFromEnvironment(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv("DIARIZE_AUTH_TOKEN", "hf_secret")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Auth.Token != "hf_secret" {
		t.Fatalf("token = %q, want env value", cfg.Auth.Token)
	}
}

func TestWriteDefaultRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf", "config.yaml")
	if err := WriteDefault(path); err != nil {
		t.Fatalf("write default: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Pipeline.Name != "diarization-pipeline" || cfg.Audio.SampleRate != 16000 {
		t.Fatalf("cfg = %+v", cfg)
	}
}
