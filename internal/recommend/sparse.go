package recommend

import (
	"math"
	"sort"
)

// SparseVector is a sparse row of a fitted matrix: parallel slices of column
// indices (strictly increasing) and their values. The zero value is the empty
// vector.
type SparseVector struct {
	Indices []int
	Values  []float64
}

// Dot returns the dot product of two sparse vectors by merging their index
// lists.
func (v SparseVector) Dot(o SparseVector) float64 {
	var sum float64
	i, j := 0, 0
	for i < len(v.Indices) && j < len(o.Indices) {
		switch {
		case v.Indices[i] == o.Indices[j]:
			sum += v.Values[i] * o.Values[j]
			i++
			j++
		case v.Indices[i] < o.Indices[j]:
			i++
		default:
			j++
		}
	}
	return sum
}

// Norm returns the Euclidean norm of the vector.
func (v SparseVector) Norm() float64 {
	var sum float64
	for _, val := range v.Values {
		sum += val * val
	}
	return math.Sqrt(sum)
}

// At returns the value stored at column i, or 0 when absent.
func (v SparseVector) At(i int) float64 {
	k := sort.SearchInts(v.Indices, i)
	if k < len(v.Indices) && v.Indices[k] == i {
		return v.Values[k]
	}
	return 0
}

// Scale multiplies every value in place by f.
func (v SparseVector) Scale(f float64) {
	for i := range v.Values {
		v.Values[i] *= f
	}
}

// Cosine returns the cosine similarity of two sparse vectors, in [-1, 1].
// Either vector being zero yields 0.
func Cosine(a, b SparseVector) float64 {
	na, nb := a.Norm(), b.Norm()
	if na == 0 || nb == 0 {
		return 0
	}
	return a.Dot(b) / (na * nb)
}

// Centroid returns the element-wise mean of the given vectors. An empty input
// yields the zero vector.
func Centroid(rows []SparseVector) SparseVector {
	if len(rows) == 0 {
		return SparseVector{}
	}
	acc := make(map[int]float64)
	for _, row := range rows {
		for i, idx := range row.Indices {
			acc[idx] += row.Values[i]
		}
	}
	n := float64(len(rows))
	out := SparseVector{
		Indices: make([]int, 0, len(acc)),
		Values:  make([]float64, 0, len(acc)),
	}
	for idx := range acc {
		out.Indices = append(out.Indices, idx)
	}
	sort.Ints(out.Indices)
	for _, idx := range out.Indices {
		out.Values = append(out.Values, acc[idx]/n)
	}
	return out
}
