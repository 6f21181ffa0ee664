package matrix

import (
	"fmt"
	"slices"

	"github.com/hupe1980/benchy"
	"gonum.org/v1/gonum/mat"
)

// Triplet is a single (row, col, value) entry of a sparse matrix.
type Triplet struct {
	Row, Col int
	Value    float64
}

// Sparse is a matrix in compressed sparse column form.
//
// Entries of a column are sorted by row and unique. Entries whose sum is zero
// are kept, so NNZ counts stored entries rather than non-zero values.
type Sparse struct {
	rows, cols int
	colPtr     []int
	rowIdx     []int
	values     []float64
}

var _ mat.Matrix = (*Sparse)(nil)

// NewSparse assembles a rows x cols matrix from triplets in any order.
// Duplicate (row, col) entries are summed.
func NewSparse(rows, cols int, triplets []Triplet) (*Sparse, error) {
	if rows < 0 || cols < 0 {
		return nil, fmt.Errorf("%w: negative sparse dimensions %dx%d", benchy.ErrBadFormat, rows, cols)
	}
	for _, t := range triplets {
		if t.Row < 0 || t.Row >= rows || t.Col < 0 || t.Col >= cols {
			return nil, fmt.Errorf("%w: entry (%d, %d) outside %dx%d matrix", benchy.ErrBadFormat, t.Row, t.Col, rows, cols)
		}
	}

	sorted := slices.Clone(triplets)
	slices.SortStableFunc(sorted, func(a, b Triplet) int {
		if a.Col != b.Col {
			return a.Col - b.Col
		}
		return a.Row - b.Row
	})

	s := &Sparse{
		rows:   rows,
		cols:   cols,
		colPtr: make([]int, cols+1),
		rowIdx: make([]int, 0, len(sorted)),
		values: make([]float64, 0, len(sorted)),
	}
	for i, t := range sorted {
		if i > 0 && sorted[i-1].Row == t.Row && sorted[i-1].Col == t.Col {
			s.values[len(s.values)-1] += t.Value
			continue
		}
		s.rowIdx = append(s.rowIdx, t.Row)
		s.values = append(s.values, t.Value)
		s.colPtr[t.Col+1]++
	}
	for j := 0; j < cols; j++ {
		s.colPtr[j+1] += s.colPtr[j]
	}
	return s, nil
}

// NewSparseFromDense stores every non-zero element of m.
func NewSparseFromDense(m mat.Matrix) *Sparse {
	r, c := m.Dims()
	var triplets []Triplet
	for j := 0; j < c; j++ {
		for i := 0; i < r; i++ {
			if v := m.At(i, j); v != 0 {
				triplets = append(triplets, Triplet{Row: i, Col: j, Value: v})
			}
		}
	}
	s, _ := NewSparse(r, c, triplets)
	return s
}

// Dims returns the number of rows and columns.
func (s *Sparse) Dims() (r, c int) { return s.rows, s.cols }

// At returns the element at row i, column j.
func (s *Sparse) At(i, j int) float64 {
	if i < 0 || i >= s.rows || j < 0 || j >= s.cols {
		panic(mat.ErrIndexOutOfRange)
	}
	lo, hi := s.colPtr[j], s.colPtr[j+1]
	if k, ok := slices.BinarySearch(s.rowIdx[lo:hi], i); ok {
		return s.values[lo+k]
	}
	return 0
}

// T returns the transpose of s without copying.
func (s *Sparse) T() mat.Matrix { return mat.Transpose{Matrix: s} }

// NNZ returns the number of stored entries.
func (s *Sparse) NNZ() int { return len(s.values) }

// IsEmpty reports whether s has no rows or no columns.
func (s *Sparse) IsEmpty() bool { return s.rows == 0 || s.cols == 0 }

// Each calls fn for every stored entry in column-major order.
func (s *Sparse) Each(fn func(i, j int, v float64)) {
	for j := 0; j < s.cols; j++ {
		for k := s.colPtr[j]; k < s.colPtr[j+1]; k++ {
			fn(s.rowIdx[k], j, s.values[k])
		}
	}
}

// Triplets returns the stored entries in column-major order.
func (s *Sparse) Triplets() []Triplet {
	out := make([]Triplet, 0, s.NNZ())
	s.Each(func(i, j int, v float64) {
		out = append(out, Triplet{Row: i, Col: j, Value: v})
	})
	return out
}

// MulVec returns s * x.
func (s *Sparse) MulVec(x []float64) []float64 {
	if len(x) != s.cols {
		panic(mat.ErrShape)
	}
	y := make([]float64, s.rows)
	for j := 0; j < s.cols; j++ {
		xj := x[j]
		for k := s.colPtr[j]; k < s.colPtr[j+1]; k++ {
			y[s.rowIdx[k]] += s.values[k] * xj
		}
	}
	return y
}

// Diagonal returns the main diagonal of s.
func (s *Sparse) Diagonal() []float64 {
	n := min(s.rows, s.cols)
	d := make([]float64, n)
	for j := 0; j < n; j++ {
		d[j] = s.At(j, j)
	}
	return d
}

// Round rounds every stored value to the precision of kind.
func (s *Sparse) Round(kind ScalarKind) {
	for i, v := range s.values {
		s.values[i] = kind.Round(v)
	}
}

// Equal reports whether s and o have the same shape and stored entries.
func (s *Sparse) Equal(o *Sparse) bool {
	if s == nil || o == nil {
		return s == o
	}
	return s.rows == o.rows && s.cols == o.cols &&
		slices.Equal(s.colPtr, o.colPtr) &&
		slices.Equal(s.rowIdx, o.rowIdx) &&
		slices.Equal(s.values, o.values)
}
