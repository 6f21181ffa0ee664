// Package solver provides the linear solvers driven by the benchmark runner.
//
// Every solver works in three phases that are timed separately: Analyze
// inspects the sparsity pattern, Factorize computes a factorization and Solve
// applies it to a right-hand side. Solvers are created by name:
//
//	s, err := solver.New("dense-cholesky")
//	if err != nil {
//	    return err
//	}
//	if err := s.Analyze(a); err != nil { ... }
//	if err := s.Factorize(a); err != nil { ... }
//	x, err := s.Solve(b)
//
// The dense solvers wrap gonum factorizations and are meant as reference
// points for small systems. "cg" is a Jacobi preconditioned conjugate
// gradient working directly on the sparse matrix.
package solver
