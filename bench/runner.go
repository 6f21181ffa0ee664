package bench

import (
	"context"
	"math"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hupe1980/benchy"
	"github.com/hupe1980/benchy/problem"
	"github.com/hupe1980/benchy/solver"
	"golang.org/x/sync/errgroup"
)

// NoResidual is reported as the residual of phases that do not solve.
const NoResidual = -1

// Result holds the measurements of one phase of one solver on one
// experiment, aggregated over all samples.
type Result struct {
	Phase      Phase
	Solver     string
	Experiment int
	Samples    int
	Iterations int

	// Mean, Min and Max are per-iteration durations over the samples.
	Mean time.Duration
	Min  time.Duration
	Max  time.Duration

	// Residual is the mean of ‖A x - b‖ over the solve samples, or
	// NoResidual for the other phases.
	Residual float64
	// Failures counts failed calls and solve samples whose mean residual
	// exceeded the threshold.
	Failures int
	// Memory is the largest heap size observed after a sample, in bytes.
	Memory uint64
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithLogger sets the runner logger.
func WithLogger(l *benchy.Logger) RunnerOption {
	return func(r *Runner) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithMetricsCollector sets the collector receiving live measurements.
func WithMetricsCollector(m MetricsCollector) RunnerOption {
	return func(r *Runner) {
		if m != nil {
			r.metrics = m
		}
	}
}

// Runner measures solvers on the experiments of an Index.
type Runner struct {
	index   *Index
	cfg     Config
	solvers []string
	phases  []Phase
	logger  *benchy.Logger
	metrics MetricsCollector

	mu     sync.Mutex
	failed *roaring.Bitmap
}

// NewRunner validates cfg and creates a runner.
func NewRunner(index *Index, cfg Config, opts ...RunnerOption) (*Runner, error) {
	solvers, phases, err := cfg.resolved()
	if err != nil {
		return nil, err
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	r := &Runner{
		index:   index,
		cfg:     cfg,
		solvers: solvers,
		phases:  phases,
		logger:  benchy.NoopLogger(),
		metrics: NoopMetricsCollector{},
		failed:  roaring.New(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Run measures every experiment. Results are ordered by phase, solver and
// experiment id. A problem that cannot be loaded aborts the run.
func (r *Runner) Run(ctx context.Context) ([]Result, error) {
	r.logger.InfoContext(ctx, "running benchmarks",
		"experiments", r.index.Len(),
		"solvers", r.solvers,
		"workers", r.cfg.Workers,
	)

	perExperiment := make([][]Result, r.index.Len())

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.cfg.Workers)
	for id := 0; id < r.index.Len(); id++ {
		g.Go(func() error {
			results, err := r.runExperiment(ctx, id)
			if err != nil {
				return err
			}
			perExperiment[id] = results
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var results []Result
	for _, rs := range perExperiment {
		results = append(results, rs...)
	}
	sort.SliceStable(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if a.Phase != b.Phase {
			return a.Phase < b.Phase
		}
		if a.Solver != b.Solver {
			return a.Solver < b.Solver
		}
		return a.Experiment < b.Experiment
	})
	return results, nil
}

// Failed returns the ids of experiments with at least one failure.
func (r *Runner) Failed() *roaring.Bitmap {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.failed.Clone()
}

func (r *Runner) runExperiment(ctx context.Context, id int) ([]Result, error) {
	start := time.Now()
	p, err := r.index.Problem(ctx, id)
	r.metrics.RecordLoad(time.Since(start), err)
	if err != nil {
		return nil, err
	}

	log := r.logger.WithExperiment(id)
	var results []Result
	for _, name := range r.solvers {
		for _, phase := range r.phases {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			res := r.measure(ctx, log, id, p, name, phase)
			if res.Failures > 0 {
				r.mu.Lock()
				r.failed.Add(uint32(id))
				r.mu.Unlock()
			}
			log.LogRun(ctx, id, name, phase.String(), res.Failures)
			results = append(results, res)
		}
	}
	return results, nil
}

// measure runs all samples of one phase. Each sample gets a fresh solver,
// prepared by the untimed earlier phases, and then repeats the timed phase
// Iterations times.
func (r *Runner) measure(ctx context.Context, log *benchy.Logger, id int, p *problem.Problem, name string, phase Phase) Result {
	res := Result{
		Phase:      phase,
		Solver:     name,
		Experiment: id,
		Samples:    r.cfg.Samples,
		Iterations: r.cfg.Iterations,
		Residual:   NoResidual,
		Min:        time.Duration(math.MaxInt64),
	}

	var total time.Duration
	var residualSum float64
	for sample := 0; sample < r.cfg.Samples; sample++ {
		s, _ := solver.New(name)
		ready := r.prepare(ctx, log, s, p, phase)

		var x []float64
		failures := 0
		var residuals []float64

		start := time.Now()
		for it := 0; it < r.cfg.Iterations; it++ {
			var err error
			switch phase {
			case PhaseAnalyze:
				err = s.Analyze(p.A)
			case PhaseFactorize:
				err = s.Factorize(p.A)
			case PhaseSolve:
				if !ready {
					failures++
					break
				}
				x, err = s.Solve(p.B)
			}
			if err != nil {
				log.WarnContext(ctx, "solver failed",
					"solver", name,
					"phase", phase.String(),
					"error", err,
				)
				failures++
			}
			if phase == PhaseSolve {
				residuals = append(residuals, residual(p, x))
			}
		}
		elapsed := time.Since(start)

		if phase == PhaseSolve {
			mean := meanOf(residuals)
			residualSum += mean
			r.metrics.RecordResidual(name, mean)
			if mean > r.cfg.FailureThreshold {
				failures++
			}
		}

		var ms runtime.MemStats
		runtime.ReadMemStats(&ms)
		res.Memory = max(res.Memory, ms.HeapAlloc)

		perIteration := elapsed / time.Duration(r.cfg.Iterations)
		res.Min = min(res.Min, perIteration)
		res.Max = max(res.Max, perIteration)
		total += elapsed
		res.Failures += failures
		r.metrics.RecordSample(phase, name, elapsed, failures)
	}

	res.Mean = total / time.Duration(r.cfg.Samples*r.cfg.Iterations)
	if phase == PhaseSolve {
		res.Residual = residualSum / float64(r.cfg.Samples)
	}
	return res
}

// prepare runs the phases before phase untimed. It reports whether the
// solver is ready to solve.
func (r *Runner) prepare(ctx context.Context, log *benchy.Logger, s solver.Solver, p *problem.Problem, phase Phase) bool {
	if phase == PhaseAnalyze {
		return true
	}
	if err := s.Analyze(p.A); err != nil {
		log.DebugContext(ctx, "setup analyze failed", "solver", s.Name(), "error", err)
		return false
	}
	if phase == PhaseFactorize {
		return true
	}
	if err := s.Factorize(p.A); err != nil {
		log.DebugContext(ctx, "setup factorize failed", "solver", s.Name(), "error", err)
		return false
	}
	return true
}

// residual is ‖A x - b‖, with a missing solution counted as zero.
func residual(p *problem.Problem, x []float64) float64 {
	r, c := p.A.Dims()
	if r != len(p.B) {
		return math.Inf(1)
	}
	if len(x) != c {
		x = make([]float64, c)
	}
	return solver.Residual(p.A, x, p.B)
}

func meanOf(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}
