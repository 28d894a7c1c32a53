// Package timeline holds the speaker-segment value model shared by the
// pipeline clients and the DER evaluation engine.
package timeline

import (
	"errors"
	"fmt"
	"sort"

	"github.com/samber/lo"
)

// ErrInvalidSegment is returned when a segment has a non-positive duration
// or a negative start time.
var ErrInvalidSegment = errors.New("invalid segment")

// ErrEmptyTimeline flags a timeline with no segments. Advisory: an empty
// hypothesis is a legal evaluation input, an empty reference makes DER
// undefined.
var ErrEmptyTimeline = errors.New("empty timeline")

// Segment is one speaker turn. Start and End are in seconds from the
// beginning of the recording.
type Segment struct {
	Speaker string  `json:"speaker"`
	Start   float64 `json:"start"`
	End     float64 `json:"end"`
}

// NewSegment validates and builds a segment.
func NewSegment(speaker string, start, end float64) (Segment, error) {
	s := Segment{Speaker: speaker, Start: start, End: end}
	if err := s.Validate(); err != nil {
		return Segment{}, err
	}
	return s, nil
}

// Validate rejects negative starts and non-positive durations.
func (s Segment) Validate() error {
	if s.Start < 0 {
		return fmt.Errorf("%w: negative start %.3f (speaker %q)", ErrInvalidSegment, s.Start, s.Speaker)
	}
	if s.End <= s.Start {
		return fmt.Errorf("%w: end %.3f <= start %.3f (speaker %q)", ErrInvalidSegment, s.End, s.Start, s.Speaker)
	}
	return nil
}

// Duration returns the segment length in seconds.
func (s Segment) Duration() float64 { return s.End - s.Start }

// Interval is an unlabeled time span in seconds.
type Interval struct {
	Start float64
	End   float64
}

// Duration returns the interval length in seconds.
func (iv Interval) Duration() float64 { return iv.End - iv.Start }

// Intersection returns the overlap duration of two intervals, zero when
// they are disjoint.
func Intersection(a, b Interval) float64 {
	start := a.Start
	if b.Start > start {
		start = b.Start
	}
	end := a.End
	if b.End < end {
		end = b.End
	}
	if end <= start {
		return 0
	}
	return end - start
}

// Timeline is an immutable, start-ordered collection of segments for one
// recording. Segments of different speakers may overlap; segments of the
// same speaker may overlap too, union queries collapse them.
type Timeline struct {
	segments []Segment
}

// New validates every segment and returns the ordered timeline. The first
// invalid segment aborts construction.
func New(segments ...Segment) (*Timeline, error) {
	out := make([]Segment, len(segments))
	for i, s := range segments {
		if err := s.Validate(); err != nil {
			return nil, fmt.Errorf("segment %d: %w", i, err)
		}
		out[i] = s
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Start != out[j].Start {
			return out[i].Start < out[j].Start
		}
		if out[i].End != out[j].End {
			return out[i].End < out[j].End
		}
		return out[i].Speaker < out[j].Speaker
	})
	return &Timeline{segments: out}, nil
}

// Len returns the number of segments.
func (t *Timeline) Len() int { return len(t.segments) }

// Empty reports whether the timeline has no segments.
func (t *Timeline) Empty() bool { return len(t.segments) == 0 }

// Segments returns a copy of the ordered segment list.
func (t *Timeline) Segments() []Segment {
	out := make([]Segment, len(t.segments))
	copy(out, t.segments)
	return out
}

// Speakers returns the distinct speaker labels in lexicographic order.
func (t *Timeline) Speakers() []string {
	labels := lo.Uniq(lo.Map(t.segments, func(s Segment, _ int) string { return s.Speaker }))
	sort.Strings(labels)
	return labels
}

// Support returns the union of one speaker's intervals, sorted and
// pairwise disjoint. Self-overlapping segments of the same speaker are
// collapsed so no unit of time is counted twice.
func (t *Timeline) Support(speaker string) []Interval {
	var ivs []Interval
	for _, s := range t.segments {
		if s.Speaker == speaker {
			ivs = append(ivs, Interval{Start: s.Start, End: s.End})
		}
	}
	return union(ivs)
}

// SupportAll returns the union of all speech regardless of speaker.
func (t *Timeline) SupportAll() []Interval {
	ivs := make([]Interval, len(t.segments))
	for i, s := range t.segments {
		ivs[i] = Interval{Start: s.Start, End: s.End}
	}
	return union(ivs)
}

// SpeakerDuration returns the unioned speaking time of one speaker.
func (t *Timeline) SpeakerDuration(speaker string) float64 {
	return TotalDuration(t.Support(speaker))
}

// TotalDuration sums interval durations. Meaningful for the disjoint
// interval lists produced by Support and SupportAll.
func TotalDuration(ivs []Interval) float64 {
	total := 0.0
	for _, iv := range ivs {
		total += iv.Duration()
	}
	return total
}

// union merges a list of intervals into a sorted, disjoint cover.
func union(ivs []Interval) []Interval {
	if len(ivs) == 0 {
		return nil
	}
	sorted := make([]Interval, len(ivs))
	copy(sorted, ivs)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Start != sorted[j].Start {
			return sorted[i].Start < sorted[j].Start
		}
		return sorted[i].End < sorted[j].End
	})
	out := []Interval{sorted[0]}
	for _, iv := range sorted[1:] {
		last := &out[len(out)-1]
		if iv.Start <= last.End {
			if iv.End > last.End {
				last.End = iv.End
			}
			continue
		}
		out = append(out, iv)
	}
	return out
}

// Annotation pairs the reference and hypothesis timelines of one
// recording. Built once per evaluation and discarded afterwards.
type Annotation struct {
	FileID     string
	Reference  *Timeline
	Hypothesis *Timeline
}
