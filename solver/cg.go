package solver

import (
	"fmt"
	"math"

	"github.com/hupe1980/benchy/matrix"
	"gonum.org/v1/gonum/floats"
)

func init() {
	Register("cg", func() Solver { return NewCG(DefaultCGOptions()) })
}

// CGOptions configures the conjugate gradient solver.
type CGOptions struct {
	// Tolerance is the relative residual ‖b - A x‖ / ‖b‖ at which the
	// iteration stops.
	Tolerance float64
	// MaxIterations bounds the iteration count. Zero means 10 * n.
	MaxIterations int
}

// DefaultCGOptions returns a tolerance of 1e-10 and the default iteration bound.
func DefaultCGOptions() CGOptions {
	return CGOptions{Tolerance: 1e-10}
}

// CG is a Jacobi preconditioned conjugate gradient solver for symmetric
// positive definite systems. Analyze and Factorize only validate A and
// extract the preconditioner; all the work happens in Solve.
type CG struct {
	opts       CGOptions
	a          *matrix.Sparse
	n          int
	invDiag    []float64
	factorized bool

	// Iterations holds the iteration count of the last Solve.
	Iterations int
}

// NewCG creates a conjugate gradient solver.
func NewCG(opts CGOptions) *CG {
	if opts.Tolerance <= 0 {
		opts.Tolerance = DefaultCGOptions().Tolerance
	}
	return &CG{opts: opts}
}

func (s *CG) Name() string { return "cg" }

func (s *CG) Analyze(a *matrix.Sparse) error {
	s.a, s.factorized = nil, false
	n, err := checkSquare(a)
	if err != nil {
		return err
	}
	s.a, s.n = a, n
	return nil
}

func (s *CG) Factorize(a *matrix.Sparse) error {
	if s.a != a {
		if err := s.Analyze(a); err != nil {
			return err
		}
	}
	diag := a.Diagonal()
	s.invDiag = make([]float64, s.n)
	for i, d := range diag {
		if d <= 0 {
			s.factorized = false
			return fmt.Errorf("%w: non-positive diagonal entry %g at %d", ErrNumerical, d, i)
		}
		s.invDiag[i] = 1 / d
	}
	s.factorized = true
	return nil
}

func (s *CG) Solve(b []float64) ([]float64, error) {
	if !s.factorized {
		return nil, ErrNotFactorized
	}
	if err := checkRHS(s.n, b); err != nil {
		return nil, err
	}

	n := s.n
	x := make([]float64, n)
	bnorm := floats.Norm(b, 2)
	if bnorm == 0 {
		s.Iterations = 0
		return x, nil
	}

	maxIter := s.opts.MaxIterations
	if maxIter <= 0 {
		maxIter = 10 * n
	}

	r := append([]float64(nil), b...)
	z := make([]float64, n)
	floats.MulTo(z, s.invDiag, r)
	p := append([]float64(nil), z...)
	rz := floats.Dot(r, z)

	for k := 1; k <= maxIter; k++ {
		ap := s.a.MulVec(p)
		pap := floats.Dot(p, ap)
		if pap <= 0 || math.IsNaN(pap) {
			s.Iterations = k
			return nil, fmt.Errorf("%w: matrix is not positive definite", ErrNumerical)
		}
		alpha := rz / pap
		floats.AddScaled(x, alpha, p)
		floats.AddScaled(r, -alpha, ap)

		if floats.Norm(r, 2) <= s.opts.Tolerance*bnorm {
			s.Iterations = k
			return x, nil
		}

		floats.MulTo(z, s.invDiag, r)
		rzNext := floats.Dot(r, z)
		beta := rzNext / rz
		rz = rzNext
		floats.Scale(beta, p)
		floats.Add(p, z)
	}
	s.Iterations = maxIter
	return nil, fmt.Errorf("%w: no convergence after %d iterations", ErrNumerical, maxIter)
}
