package der

import "math"

// hungarianMin solves the square assignment problem for the given cost
// matrix, minimizing total cost. Returns, for each row, the assigned
// column index. Classic O(n³) potential-based Hungarian algorithm.
func hungarianMin(cost [][]float64) []int {
	n := len(cost)
	if n == 0 {
		return nil
	}

	// 1-based internals; index 0 is the virtual unassigned slot.
	u := make([]float64, n+1)
	v := make([]float64, n+1)
	p := make([]int, n+1)
	way := make([]int, n+1)

	for i := 1; i <= n; i++ {
		p[0] = i
		j0 := 0
		minv := make([]float64, n+1)
		used := make([]bool, n+1)
		for j := range minv {
			minv[j] = math.Inf(1)
		}
		for {
			used[j0] = true
			i0 := p[j0]
			delta := math.Inf(1)
			j1 := 0
			for j := 1; j <= n; j++ {
				if used[j] {
					continue
				}
				cur := cost[i0-1][j-1] - u[i0] - v[j]
				if cur < minv[j] {
					minv[j] = cur
					way[j] = j0
				}
				if minv[j] < delta {
					delta = minv[j]
					j1 = j
				}
			}
			for j := 0; j <= n; j++ {
				if used[j] {
					u[p[j]] += delta
					v[j] -= delta
				} else {
					minv[j] -= delta
				}
			}
			j0 = j1
			if p[j0] == 0 {
				break
			}
		}
		// Augment along the found path.
		for j0 != 0 {
			j1 := way[j0]
			p[j0] = p[j1]
			j0 = j1
		}
	}

	assigned := make([]int, n)
	for j := 1; j <= n; j++ {
		assigned[p[j]-1] = j - 1
	}
	return assigned
}

// maxAssignmentValue returns the maximum total weight of a one-to-one
// assignment over a rectangular weight matrix. The matrix is padded to a
// square with zero-weight slots, so unmatched rows or columns cost
// nothing.
func maxAssignmentValue(weights [][]float64, rows, cols int) float64 {
	n := rows
	if cols > n {
		n = cols
	}
	if n == 0 {
		return 0
	}

	maxW := 0.0
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			if weights[i][j] > maxW {
				maxW = weights[i][j]
			}
		}
	}

	cost := make([][]float64, n)
	for i := range cost {
		cost[i] = make([]float64, n)
		for j := range cost[i] {
			w := 0.0
			if i < rows && j < cols {
				w = weights[i][j]
			}
			cost[i][j] = maxW - w
		}
	}

	total := 0.0
	for i, j := range hungarianMin(cost) {
		if i < rows && j < cols {
			total += weights[i][j]
		}
	}
	return total
}
