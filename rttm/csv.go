package rttm

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/maastricht-university/diarization-pipeline/timeline"
)

// WriteCSV writes "start,end,speaker" rows with two-decimal timestamps,
// the layout consumed by the analysis notebooks.
func WriteCSV(w io.Writer, segments []timeline.Segment) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"start", "end", "speaker"}); err != nil {
		return err
	}
	for _, s := range segments {
		if err := s.Validate(); err != nil {
			return err
		}
		row := []string{
			strconv.FormatFloat(s.Start, 'f', 2, 64),
			strconv.FormatFloat(s.End, 'f', 2, 64),
			s.Speaker,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteCSVFile writes the segments to a CSV file.
func WriteCSVFile(path string, segments []timeline.Segment) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := WriteCSV(f, segments); err != nil {
		return err
	}
	return f.Close()
}

// ReadCSV parses rows produced by WriteCSV back into segments.
func ReadCSV(r io.Reader) ([]timeline.Segment, error) {
	cr := csv.NewReader(r)
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("csv read: %w", err)
	}
	var out []timeline.Segment
	for i, row := range rows {
		if i == 0 && len(row) > 0 && row[0] == "start" {
			continue
		}
		if len(row) != 3 {
			return nil, fmt.Errorf("csv row %d: want 3 columns, got %d", i+1, len(row))
		}
		start, err := strconv.ParseFloat(row[0], 64)
		if err != nil {
			return nil, fmt.Errorf("csv row %d: bad start %q: %w", i+1, row[0], err)
		}
		end, err := strconv.ParseFloat(row[1], 64)
		if err != nil {
			return nil, fmt.Errorf("csv row %d: bad end %q: %w", i+1, row[1], err)
		}
		seg, err := timeline.NewSegment(row[2], start, end)
		if err != nil {
			return nil, fmt.Errorf("csv row %d: %w", i+1, err)
		}
		out = append(out, seg)
	}
	return out, nil
}
