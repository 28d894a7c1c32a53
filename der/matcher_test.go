package der

import (
	"math"
	"reflect"
	"testing"

	"github.com/maastricht-university/diarization-pipeline/timeline"
)

func matrixFrom(t *testing.T, ref, hyp []timeline.Segment) *OverlapMatrix {
	t.Helper()
	r, err := timeline.New(ref...)
	if err != nil {
		t.Fatalf("ref: %v", err)
	}
	h, err := timeline.New(hyp...)
	if err != nil {
		t.Fatalf("hyp: %v", err)
	}
	return BuildOverlapMatrix(r, h)
}

func TestOverlapMatrixAccumulatesAcrossSegments(t *testing.T) {
	m := matrixFrom(t,
		[]timeline.Segment{seg("a", 0, 2), seg("a", 4, 6)},
		[]timeline.Segment{seg("x", 1, 5)},
	)
	if got := m.Overlap("a", "x"); !floatEq(got, 2) {
		t.Fatalf("overlap = %v, want 2 (1 from each segment)", got)
	}
}

func TestOverlapMatrixCollapsesSelfOverlapBeforeComparison(t *testing.T) {
	// a speaks [0,5] twice over itself; x covers [0,5]. Overlap must be
	// 5, not 10.
	m := matrixFrom(t,
		[]timeline.Segment{seg("a", 0, 5), seg("a", 0, 5)},
		[]timeline.Segment{seg("x", 0, 5)},
	)
	if got := m.Overlap("a", "x"); got != 5 {
		t.Fatalf("overlap = %v, want 5", got)
	}
}

func TestMatchPicksMaximumWeight(t *testing.T) {
	// Overlaps: a-x 2, a-y 1, b-x 1. Optima tie at 2 ({a->x} alone or
	// {a->y, b->x}); the tie-break fixes a to x and leaves b unmatched.
	m := matrixFrom(t,
		[]timeline.Segment{seg("a", 0, 3), seg("b", 10, 12)},
		[]timeline.Segment{seg("x", 0, 2), seg("x", 10, 11), seg("y", 2, 3)},
	)
	got := Match(m)
	if want := (Assignment{"a": "x"}); !reflect.DeepEqual(got, want) {
		t.Fatalf("assignment = %v, want %v", got, want)
	}
	if !floatEq(got.TotalMatched(m), 2) {
		t.Fatalf("total matched = %v, want 2", got.TotalMatched(m))
	}
}

func TestMatchLexicographicTieBreak(t *testing.T) {
	// Every pairing overlaps exactly 1s: both {a->x, b->y} and
	// {a->y, b->x} are optimal. The canonical answer pairs in sorted
	// label order.
	m := matrixFrom(t,
		[]timeline.Segment{seg("a", 0, 1), seg("a", 2, 3), seg("b", 4, 5), seg("b", 6, 7)},
		[]timeline.Segment{seg("x", 0, 1), seg("x", 4, 5), seg("y", 2, 3), seg("y", 6, 7)},
	)
	want := Assignment{"a": "x", "b": "y"}
	if got := Match(m); !reflect.DeepEqual(got, want) {
		t.Fatalf("assignment = %v, want %v", got, want)
	}
}

func TestMatchLeavesZeroOverlapSpeakersUnmatched(t *testing.T) {
	m := matrixFrom(t,
		[]timeline.Segment{seg("a", 0, 2), seg("b", 50, 52)},
		[]timeline.Segment{seg("x", 0, 2)},
	)
	want := Assignment{"a": "x"}
	if got := Match(m); !reflect.DeepEqual(got, want) {
		t.Fatalf("assignment = %v, want %v", got, want)
	}
}

func TestMatchEmptySides(t *testing.T) {
	empty, err := timeline.New()
	if err != nil {
		t.Fatalf("timeline: %v", err)
	}
	nonEmpty, err := timeline.New(seg("a", 0, 1))
	if err != nil {
		t.Fatalf("timeline: %v", err)
	}

	if got := Match(BuildOverlapMatrix(empty, nonEmpty)); len(got) != 0 {
		t.Fatalf("assignment = %v, want empty", got)
	}
	if got := Match(BuildOverlapMatrix(nonEmpty, empty)); len(got) != 0 {
		t.Fatalf("assignment = %v, want empty", got)
	}
}

func TestMatchRectangularMoreHypotheses(t *testing.T) {
	m := matrixFrom(t,
		[]timeline.Segment{seg("a", 0, 10)},
		[]timeline.Segment{seg("x", 0, 4), seg("y", 4, 10)},
	)
	want := Assignment{"a": "y"}
	if got := Match(m); !reflect.DeepEqual(got, want) {
		t.Fatalf("assignment = %v, want %v", got, want)
	}
}

func TestMatchIsDeterministic(t *testing.T) {
	ref := []timeline.Segment{
		seg("a", 0, 3), seg("b", 2, 6), seg("c", 5, 9), seg("d", 8, 12),
	}
	hyp := []timeline.Segment{
		seg("p", 0, 2.5), seg("q", 2.5, 5.5), seg("r", 5.5, 8.5), seg("s", 8.5, 12),
	}
	first := Match(matrixFrom(t, ref, hyp))
	for i := 0; i < 10; i++ {
		if got := Match(matrixFrom(t, ref, hyp)); !reflect.DeepEqual(got, first) {
			t.Fatalf("run %d differs: %v vs %v", i, got, first)
		}
	}
}

func TestHungarianMinSolvesKnownMatrix(t *testing.T) {
	cost := [][]float64{
		{4, 1, 3},
		{2, 0, 5},
		{3, 2, 2},
	}
	// Optimal: row0->col1 (1), row1->col0 (2), row2->col2 (2), total 5.
	assigned := hungarianMin(cost)
	want := []int{1, 0, 2}
	if !reflect.DeepEqual(assigned, want) {
		t.Fatalf("assignment = %v, want %v", assigned, want)
	}
	total := 0.0
	for i, j := range assigned {
		total += cost[i][j]
	}
	if total != 5 {
		t.Fatalf("total cost = %v, want 5", total)
	}
}

func TestMaxAssignmentValueRectangular(t *testing.T) {
	weights := [][]float64{
		{4, 6},
		{3, 1},
		{2, 5},
	}
	// Best pairing: row0->col1 (6) + row1->col0 (3) = 9.
	if got := maxAssignmentValue(weights, 3, 2); math.Abs(got-9) > 1e-9 {
		t.Fatalf("value = %v, want 9", got)
	}
}
