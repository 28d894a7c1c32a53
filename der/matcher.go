package der

// weightEpsilon absorbs float accumulation noise when comparing candidate
// assignment totals against the optimum.
const weightEpsilon = 1e-9

// Assignment is a one-to-one partial mapping from reference speaker
// labels to hypothesis speaker labels. Speakers with no positive-overlap
// counterpart stay unmatched.
type Assignment map[string]string

// Match finds the assignment maximizing total matched overlap. Among
// equally optimal assignments it returns the lexicographically smallest
// one by (reference label, hypothesis label) pairing order: reference
// labels are fixed in sorted order, each to the smallest hypothesis label
// that keeps the total optimal. The result is therefore deterministic for
// identical inputs.
func Match(m *OverlapMatrix) Assignment {
	out := Assignment{}
	refs := m.RefLabels()
	hyps := m.HypLabels()
	if len(refs) == 0 || len(hyps) == 0 {
		return out
	}

	usedRef := make(map[string]bool, len(refs))
	usedHyp := make(map[string]bool, len(hyps))
	best := residualValue(m, usedRef, usedHyp)

	fixed := 0.0
	for _, r := range refs {
		usedRef[r] = true
		for _, h := range hyps {
			if usedHyp[h] {
				continue
			}
			w := m.Overlap(r, h)
			if w <= 0 {
				continue
			}
			usedHyp[h] = true
			if fixed+w+residualValue(m, usedRef, usedHyp) >= best-weightEpsilon {
				fixed += w
				out[r] = h
				break
			}
			usedHyp[h] = false
		}
		// When no pairing survives the optimality check, every optimal
		// assignment leaves r unmatched.
	}
	return out
}

// residualValue computes the maximum matched overlap over the speakers
// not yet fixed.
func residualValue(m *OverlapMatrix, usedRef, usedHyp map[string]bool) float64 {
	var refs, hyps []string
	for _, r := range m.RefLabels() {
		if !usedRef[r] {
			refs = append(refs, r)
		}
	}
	for _, h := range m.HypLabels() {
		if !usedHyp[h] {
			hyps = append(hyps, h)
		}
	}
	if len(refs) == 0 || len(hyps) == 0 {
		return 0
	}

	weights := make([][]float64, len(refs))
	for i, r := range refs {
		weights[i] = make([]float64, len(hyps))
		for j, h := range hyps {
			weights[i][j] = m.Overlap(r, h)
		}
	}
	return maxAssignmentValue(weights, len(refs), len(hyps))
}

// TotalMatched sums the overlap captured by the assignment.
func (a Assignment) TotalMatched(m *OverlapMatrix) float64 {
	total := 0.0
	for r, h := range a {
		total += m.Overlap(r, h)
	}
	return total
}
