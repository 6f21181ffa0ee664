package bench

import (
	"fmt"
	"os"
	"strings"

	"github.com/hupe1980/benchy/solver"
	"gopkg.in/yaml.v3"
)

// Phase is a timed step of a solver.
type Phase int

const (
	// PhaseAnalyze times Analyze.
	PhaseAnalyze Phase = iota
	// PhaseFactorize times Factorize after an untimed Analyze.
	PhaseFactorize
	// PhaseSolve times Solve after an untimed Analyze and Factorize.
	PhaseSolve
)

var phaseNames = [...]string{"Analyze", "Factorize", "Solve"}

func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return fmt.Sprintf("Phase(%d)", int(p))
	}
	return phaseNames[p]
}

// ParsePhase maps a case-insensitive phase name to its Phase.
func ParsePhase(name string) (Phase, error) {
	for i, n := range phaseNames {
		if strings.EqualFold(n, name) {
			return Phase(i), nil
		}
	}
	return 0, fmt.Errorf("unknown phase %q", name)
}

// Config controls a benchmark run.
type Config struct {
	// Solvers lists the solver names to run. Empty means all registered.
	Solvers []string `yaml:"solvers"`
	// Phases lists the phases to time. Empty means all three.
	Phases []string `yaml:"phases"`
	// Samples is the number of measured samples per combination.
	Samples int `yaml:"samples"`
	// Iterations is the number of repetitions within one sample.
	Iterations int `yaml:"iterations"`
	// Workers is the number of experiments run in parallel.
	Workers int `yaml:"workers"`
	// FailureThreshold is the mean residual above which a solve sample
	// counts as a numerical failure.
	FailureThreshold float64 `yaml:"failure_threshold"`
}

// DefaultConfig returns 3 samples of 3 iterations of every solver and phase,
// one experiment at a time, failing solves with a residual above 1e-2.
func DefaultConfig() Config {
	return Config{
		Samples:          3,
		Iterations:       3,
		Workers:          1,
		FailureThreshold: 1e-2,
	}
}

// LoadConfig reads a YAML config file. Fields missing from the file keep
// their default values.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config file: %w", err)
	}
	return cfg, nil
}

// resolved returns the solver names and phases of c, with defaults filled in
// and every name checked.
func (c Config) resolved() ([]string, []Phase, error) {
	if c.Samples <= 0 || c.Iterations <= 0 {
		return nil, nil, fmt.Errorf("samples and iterations must be positive, got %d and %d", c.Samples, c.Iterations)
	}

	solvers := c.Solvers
	if len(solvers) == 0 {
		solvers = solver.Names()
	}
	known := make(map[string]bool)
	for _, name := range solver.Names() {
		known[name] = true
	}
	for _, name := range solvers {
		if !known[name] {
			return nil, nil, fmt.Errorf("%w: %q", solver.ErrUnknownSolver, name)
		}
	}

	phases := []Phase{PhaseAnalyze, PhaseFactorize, PhaseSolve}
	if len(c.Phases) > 0 {
		phases = phases[:0]
		for _, name := range c.Phases {
			p, err := ParsePhase(name)
			if err != nil {
				return nil, nil, err
			}
			phases = append(phases, p)
		}
	}
	return solvers, phases, nil
}
