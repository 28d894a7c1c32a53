package der

import (
	"github.com/maastricht-university/diarization-pipeline/timeline"
)

// OverlapMatrix holds, for every (reference speaker, hypothesis speaker)
// pair, the total duration both are speaking at the same time. Computed
// over the unioned per-speaker timelines so self-overlapping segments of
// one speaker never inflate the totals. Recomputed fresh per evaluation.
type OverlapMatrix struct {
	refLabels []string
	hypLabels []string
	overlap   map[pairKey]float64
}

type pairKey struct {
	ref string
	hyp string
}

// BuildOverlapMatrix intersects every reference speaker's support against
// every hypothesis speaker's support.
func BuildOverlapMatrix(ref, hyp *timeline.Timeline) *OverlapMatrix {
	m := &OverlapMatrix{
		refLabels: ref.Speakers(),
		hypLabels: hyp.Speakers(),
		overlap:   make(map[pairKey]float64),
	}

	hypSupport := make(map[string][]timeline.Interval, len(m.hypLabels))
	for _, h := range m.hypLabels {
		hypSupport[h] = hyp.Support(h)
	}

	for _, r := range m.refLabels {
		rs := ref.Support(r)
		for _, h := range m.hypLabels {
			if d := overlapDuration(rs, hypSupport[h]); d > 0 {
				m.overlap[pairKey{ref: r, hyp: h}] = d
			}
		}
	}
	return m
}

// RefLabels returns the reference speaker labels in lexicographic order.
func (m *OverlapMatrix) RefLabels() []string { return m.refLabels }

// HypLabels returns the hypothesis speaker labels in lexicographic order.
func (m *OverlapMatrix) HypLabels() []string { return m.hypLabels }

// Overlap returns the co-speaking duration of a (reference, hypothesis)
// pair, zero when the pair never overlaps.
func (m *OverlapMatrix) Overlap(ref, hyp string) float64 {
	return m.overlap[pairKey{ref: ref, hyp: hyp}]
}

// overlapDuration merges two sorted disjoint interval lists and sums the
// pairwise intersections. Linear in the combined segment count.
func overlapDuration(a, b []timeline.Interval) float64 {
	total := 0.0
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		total += timeline.Intersection(a[i], b[j])
		if a[i].End < b[j].End {
			i++
		} else {
			j++
		}
	}
	return total
}
