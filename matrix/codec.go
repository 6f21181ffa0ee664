package matrix

import (
	"fmt"

	"github.com/hupe1980/benchy"
	"github.com/hupe1980/benchy/document"
	"gonum.org/v1/gonum/mat"
)

// sparseArity is the length of the sparse matrix tuple.
const sparseArity = 5

// EncodeDense converts m to an array of rows, or to a flat array when m has a
// single column. A matrix without columns encodes as an empty array.
func EncodeDense(m mat.Matrix) document.Value {
	r, c := m.Dims()
	if c == 0 || r == 0 {
		return document.Array()
	}
	if c == 1 {
		items := make([]document.Value, r)
		for i := 0; i < r; i++ {
			items[i] = document.Float(m.At(i, 0))
		}
		return document.Array(items...)
	}
	rows := make([]document.Value, r)
	for i := 0; i < r; i++ {
		row := make([]document.Value, c)
		for j := 0; j < c; j++ {
			row[j] = document.Float(m.At(i, j))
		}
		rows[i] = document.Array(row...)
	}
	return document.Array(rows...)
}

// DecodeDense is the inverse of EncodeDense. An empty array yields an empty
// matrix; rows of different lengths fail with benchy.ErrShapeMismatch.
//
// Rows that are all empty, such as [[],[]], describe an R x 0 matrix. gonum
// has no R x 0 Dense, so they fail with benchy.ErrBadFormat instead of
// decoding to a matrix without columns.
func DecodeDense(v document.Value) (*mat.Dense, error) {
	if v.Kind() != document.KindArray {
		return nil, fmt.Errorf("%w: dense matrix must be an array, got %s", benchy.ErrBadFormat, v.Kind())
	}
	items := v.Items()
	if len(items) == 0 {
		return &mat.Dense{}, nil
	}

	if items[0].Kind() != document.KindArray {
		data := make([]float64, len(items))
		for i, item := range items {
			if item.Kind() == document.KindArray {
				return nil, fmt.Errorf("%w: row %d is an array in a column vector", benchy.ErrShapeMismatch, i)
			}
			f, err := number(item)
			if err != nil {
				return nil, fmt.Errorf("element %d: %w", i, err)
			}
			data[i] = f
		}
		return mat.NewDense(len(items), 1, data), nil
	}

	cols := items[0].Len()
	if cols == 0 {
		return nil, fmt.Errorf("%w: dense matrix rows must not be empty", benchy.ErrBadFormat)
	}
	data := make([]float64, 0, len(items)*cols)
	for i, row := range items {
		if row.Kind() != document.KindArray || row.Len() != cols {
			return nil, fmt.Errorf("%w: row %d has %d elements, want %d", benchy.ErrShapeMismatch, i, row.Len(), cols)
		}
		for j, item := range row.Items() {
			f, err := number(item)
			if err != nil {
				return nil, fmt.Errorf("element (%d, %d): %w", i, j, err)
			}
			data = append(data, f)
		}
	}
	return mat.NewDense(len(items), cols, data), nil
}

// EncodeVector encodes x as a single column matrix.
func EncodeVector(x []float64) document.Value {
	return document.Floats(x)
}

// DecodeVector decodes a single column matrix. Matrices with more than one
// column fail with benchy.ErrShapeMismatch.
func DecodeVector(v document.Value) ([]float64, error) {
	d, err := DecodeDense(v)
	if err != nil {
		return nil, err
	}
	if d.IsEmpty() {
		return []float64{}, nil
	}
	if _, c := d.Dims(); c != 1 {
		return nil, fmt.Errorf("%w: vector has %d columns", benchy.ErrShapeMismatch, c)
	}
	return mat.Col(nil, 0, d), nil
}

// EncodeSparse encodes s as [rows, cols, row_indices, col_indices, values]
// with entries in column-major order.
func EncodeSparse(s *Sparse) document.Value {
	n := s.NNZ()
	rowIdx := make([]document.Value, 0, n)
	colIdx := make([]document.Value, 0, n)
	values := make([]document.Value, 0, n)
	s.Each(func(i, j int, v float64) {
		rowIdx = append(rowIdx, document.Int(int64(i)))
		colIdx = append(colIdx, document.Int(int64(j)))
		values = append(values, document.Float(v))
	})
	return document.Array(
		document.Int(int64(s.rows)),
		document.Int(int64(s.cols)),
		document.Array(rowIdx...),
		document.Array(colIdx...),
		document.Array(values...),
	)
}

// DecodeSparse is the inverse of EncodeSparse. Duplicate entries are summed.
func DecodeSparse(v document.Value) (*Sparse, error) {
	if v.Kind() != document.KindArray || v.Len() != sparseArity {
		return nil, fmt.Errorf("%w: sparse matrix must be a %d-tuple, got %s of length %d",
			benchy.ErrBadFormat, sparseArity, v.Kind(), v.Len())
	}
	rows, err := index(v.Index(0))
	if err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	cols, err := index(v.Index(1))
	if err != nil {
		return nil, fmt.Errorf("cols: %w", err)
	}

	rowIdx, colIdx, values := v.Index(2), v.Index(3), v.Index(4)
	for _, part := range []document.Value{rowIdx, colIdx, values} {
		if part.Kind() != document.KindArray {
			return nil, fmt.Errorf("%w: sparse indices and values must be arrays", benchy.ErrBadFormat)
		}
	}
	n := rowIdx.Len()
	if colIdx.Len() != n || values.Len() != n {
		return nil, fmt.Errorf("%w: sparse tuple lengths differ (%d, %d, %d)",
			benchy.ErrBadFormat, n, colIdx.Len(), values.Len())
	}

	triplets := make([]Triplet, n)
	for k := 0; k < n; k++ {
		i, err := index(rowIdx.Index(k))
		if err != nil {
			return nil, fmt.Errorf("row index %d: %w", k, err)
		}
		j, err := index(colIdx.Index(k))
		if err != nil {
			return nil, fmt.Errorf("col index %d: %w", k, err)
		}
		f, err := number(values.Index(k))
		if err != nil {
			return nil, fmt.Errorf("value %d: %w", k, err)
		}
		triplets[k] = Triplet{Row: i, Col: j, Value: f}
	}
	return NewSparse(rows, cols, triplets)
}

func number(v document.Value) (float64, error) {
	f, ok := v.AsFloat()
	if !ok {
		return 0, fmt.Errorf("%w: expected number, got %s", benchy.ErrBadFormat, v.Kind())
	}
	return f, nil
}

func index(v document.Value) (int, error) {
	n, ok := v.AsInt()
	if !ok || n < 0 {
		return 0, fmt.Errorf("%w: expected non-negative integer, got %s", benchy.ErrBadFormat, v)
	}
	return int(n), nil
}
