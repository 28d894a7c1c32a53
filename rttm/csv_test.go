package rttm

import (
	"strings"
	"testing"

	"github.com/maastricht-university/diarization-pipeline/timeline"
)

func TestWriteCSVFormat(t *testing.T) {
	var sb strings.Builder
	segments := []timeline.Segment{
		{Speaker: "SPEAKER_00", Start: 0.527, End: 4.3},
	}
	if err := WriteCSV(&sb, segments); err != nil {
		t.Fatalf("write: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(sb.String()), "\n")
	if lines[0] != "start,end,speaker" {
		t.Fatalf("header = %q", lines[0])
	}
	if lines[1] != "0.53,4.30,SPEAKER_00" {
		t.Fatalf("row = %q, want two-decimal timestamps", lines[1])
	}
}

func TestReadCSVRoundTrip(t *testing.T) {
	segments := []timeline.Segment{
		{Speaker: "alice", Start: 0.25, End: 4.5},
		{Speaker: "bob", Start: 5, End: 8},
	}
	var sb strings.Builder
	if err := WriteCSV(&sb, segments); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err := ReadCSV(strings.NewReader(sb.String()))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("segments = %d, want 2", len(got))
	}
	if got[0].Speaker != "alice" || got[0].Start != 0.25 || got[0].End != 4.5 {
		t.Fatalf("first = %+v", got[0])
	}
}

func TestReadCSVRejectsInvalidRows(t *testing.T) {
	cases := []struct {
		name string
		in   string
	}{
		{"zero duration", "start,end,speaker\n1.00,1.00,a\n"},
		{"bad start", "start,end,speaker\nx,2.00,a\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ReadCSV(strings.NewReader(tc.in)); err == nil {
				t.Fatal("want error")
			}
		})
	}
}
