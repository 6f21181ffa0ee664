package solver

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/hupe1980/benchy/matrix"
	"gonum.org/v1/gonum/floats"
)

var (
	// ErrUnknownSolver is returned by New for an unregistered name.
	ErrUnknownSolver = errors.New("unknown solver")

	// ErrNotSquare is returned when the system matrix is not square or empty.
	ErrNotSquare = errors.New("matrix is not square")

	// ErrTooLarge is returned by dense solvers for systems above MaxDenseDim.
	ErrTooLarge = errors.New("matrix too large for dense solver")

	// ErrNotFactorized is returned by Solve before a successful Factorize.
	ErrNotFactorized = errors.New("solver not factorized")

	// ErrNumerical is returned when a factorization breaks down or an
	// iteration does not converge.
	ErrNumerical = errors.New("numerical failure")
)

// MaxDenseDim bounds the dimension accepted by the dense solvers.
const MaxDenseDim = 8192

// Solver solves A x = b in three phases.
// A Solver is not safe for concurrent use.
type Solver interface {
	// Name returns the registered name of the solver.
	Name() string
	// Analyze inspects the structure of a.
	Analyze(a *matrix.Sparse) error
	// Factorize prepares the solver for a. It analyzes a first when Analyze
	// was not called for it.
	Factorize(a *matrix.Sparse) error
	// Solve returns x with A x = b for the factorized A.
	Solve(b []float64) ([]float64, error)
}

// Factory creates a fresh solver.
type Factory func() Solver

var (
	mu       sync.RWMutex
	registry = map[string]Factory{}
)

// Register makes a solver available under name. It panics when name is
// already taken.
func Register(name string, f Factory) {
	mu.Lock()
	defer mu.Unlock()
	if _, dup := registry[name]; dup {
		panic(fmt.Sprintf("solver: %q registered twice", name))
	}
	registry[name] = f
}

// New creates the solver registered under name.
func New(name string) (Solver, error) {
	mu.RLock()
	f, ok := registry[name]
	mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSolver, name)
	}
	return f(), nil
}

// Names returns the registered solver names in ascending order.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Residual returns the Euclidean norm of A x - b.
func Residual(a *matrix.Sparse, x, b []float64) float64 {
	return floats.Distance(a.MulVec(x), b, 2)
}

func checkSquare(a *matrix.Sparse) (int, error) {
	if a == nil || a.IsEmpty() {
		return 0, fmt.Errorf("%w: empty matrix", ErrNotSquare)
	}
	r, c := a.Dims()
	if r != c {
		return 0, fmt.Errorf("%w: %dx%d", ErrNotSquare, r, c)
	}
	return r, nil
}

func checkRHS(n int, b []float64) error {
	if len(b) != n {
		return fmt.Errorf("right-hand side has %d entries, want %d", len(b), n)
	}
	return nil
}
