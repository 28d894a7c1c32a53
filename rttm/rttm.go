// Package rttm reads and writes the Rich Transcription Time Mark format
// plus the sibling CSV dump of speaker turns.
//
// An RTTM file carries one segment per line:
//
//	SPEAKER <file-id> <channel> <start> <duration> <NA> <NA> <speaker> <NA> <NA>
//
// Lines with another record type are skipped. Start is in seconds and the
// fifth field is a duration, not an end time.
package rttm

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/maastricht-university/diarization-pipeline/timeline"
)

// Document is the parsed content of one RTTM file. FileID is the
// recording identifier of the first SPEAKER line.
type Document struct {
	FileID   string
	Segments []timeline.Segment
}

// Timeline builds the validated timeline for the document.
func (d *Document) Timeline() (*timeline.Timeline, error) {
	return timeline.New(d.Segments...)
}

// Read parses RTTM records from r. Malformed SPEAKER lines, including
// non-positive durations, abort the parse with the offending line number.
func Read(r io.Reader) (*Document, error) {
	doc := &Document{}
	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 || fields[0] != "SPEAKER" {
			continue
		}
		if len(fields) < 8 {
			return nil, fmt.Errorf("rttm line %d: want at least 8 fields, got %d", lineNo, len(fields))
		}
		start, err := strconv.ParseFloat(fields[3], 64)
		if err != nil {
			return nil, fmt.Errorf("rttm line %d: bad start %q: %w", lineNo, fields[3], err)
		}
		duration, err := strconv.ParseFloat(fields[4], 64)
		if err != nil {
			return nil, fmt.Errorf("rttm line %d: bad duration %q: %w", lineNo, fields[4], err)
		}
		seg, err := timeline.NewSegment(fields[7], start, start+duration)
		if err != nil {
			return nil, fmt.Errorf("rttm line %d: %w", lineNo, err)
		}
		if doc.FileID == "" {
			doc.FileID = fields[1]
		}
		doc.Segments = append(doc.Segments, seg)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("rttm read: %w", err)
	}
	return doc, nil
}

// ReadFile parses an RTTM file from disk.
func ReadFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	doc, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Write emits canonical ten-field SPEAKER lines for the segments.
func Write(w io.Writer, fileID string, segments []timeline.Segment) error {
	for _, s := range segments {
		if err := s.Validate(); err != nil {
			return err
		}
		_, err := fmt.Fprintf(w, "SPEAKER %s 1 %.3f %.3f <NA> <NA> %s <NA> <NA>\n",
			fileID, s.Start, s.Duration(), s.Speaker)
		if err != nil {
			return err
		}
	}
	return nil
}

// WriteFile writes the segments to an RTTM file, replacing any previous
// content.
func WriteFile(path, fileID string, segments []timeline.Segment) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := Write(f, fileID, segments); err != nil {
		return err
	}
	return f.Close()
}
