package solver

import (
	"fmt"
	"math"

	"github.com/hupe1980/benchy/matrix"
	"gonum.org/v1/gonum/mat"
)

func init() {
	Register("dense-cholesky", func() Solver { return &denseSolver{name: "dense-cholesky", fact: &cholesky{}} })
	Register("dense-lu", func() Solver { return &denseSolver{name: "dense-lu", fact: &lu{}} })
	Register("dense-qr", func() Solver { return &denseSolver{name: "dense-qr", fact: &qr{}} })
}

// factorization is a gonum dense factorization.
type factorization interface {
	factorize(a *mat.Dense) error
	solve(dst *mat.VecDense, b *mat.VecDense) error
}

// denseSolver copies A into a gonum dense matrix and factorizes it.
type denseSolver struct {
	name       string
	fact       factorization
	n          int
	analyzed   *matrix.Sparse
	factorized bool
}

func (s *denseSolver) Name() string { return s.name }

func (s *denseSolver) Analyze(a *matrix.Sparse) error {
	s.analyzed, s.factorized = nil, false
	n, err := checkSquare(a)
	if err != nil {
		return err
	}
	if n > MaxDenseDim {
		return fmt.Errorf("%w: dimension %d above %d", ErrTooLarge, n, MaxDenseDim)
	}
	s.n, s.analyzed = n, a
	return nil
}

func (s *denseSolver) Factorize(a *matrix.Sparse) error {
	if s.analyzed != a {
		if err := s.Analyze(a); err != nil {
			return err
		}
	}
	s.factorized = false
	if err := s.fact.factorize(mat.DenseCopyOf(a)); err != nil {
		return err
	}
	s.factorized = true
	return nil
}

func (s *denseSolver) Solve(b []float64) ([]float64, error) {
	if !s.factorized {
		return nil, ErrNotFactorized
	}
	if err := checkRHS(s.n, b); err != nil {
		return nil, err
	}
	var x mat.VecDense
	if err := s.fact.solve(&x, mat.NewVecDense(s.n, append([]float64(nil), b...))); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNumerical, err)
	}
	return mat.Col(nil, 0, &x), nil
}

type cholesky struct{ c mat.Cholesky }

func (f *cholesky) factorize(a *mat.Dense) error {
	n, _ := a.Dims()
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			aij, aji := a.At(i, j), a.At(j, i)
			if math.Abs(aij-aji) > 1e-12*math.Max(math.Abs(aij), math.Abs(aji)) {
				return fmt.Errorf("%w: matrix is not symmetric at (%d, %d)", ErrNumerical, i, j)
			}
		}
	}
	sym := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			sym.SetSym(i, j, a.At(i, j))
		}
	}
	if !f.c.Factorize(sym) {
		return fmt.Errorf("%w: matrix is not positive definite", ErrNumerical)
	}
	return nil
}

func (f *cholesky) solve(dst, b *mat.VecDense) error {
	return f.c.SolveVecTo(dst, b)
}

type lu struct{ f mat.LU }

func (f *lu) factorize(a *mat.Dense) error {
	f.f.Factorize(a)
	if f.f.Det() == 0 || math.IsInf(f.f.Cond(), 1) {
		return fmt.Errorf("%w: matrix is singular", ErrNumerical)
	}
	return nil
}

func (f *lu) solve(dst, b *mat.VecDense) error {
	return f.f.SolveVecTo(dst, false, b)
}

type qr struct{ f mat.QR }

func (f *qr) factorize(a *mat.Dense) error {
	f.f.Factorize(a)
	return nil
}

func (f *qr) solve(dst, b *mat.VecDense) error {
	return f.f.SolveVecTo(dst, false, b)
}
