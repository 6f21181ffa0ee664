// Package bench runs solvers over a corpus of problem archives and reports
// the measurements.
//
// An Index assigns dense experiment ids to archive names. Runner measures
// every (experiment, solver, phase) combination and refers to problems only
// by id; when the report is written the Index joins each id back to a
// display name, the dataset name and the matrix size.
//
//	names, err := bench.Discover(ctx, store, `.*\.zst`)
//	idx := bench.NewIndex(store)
//	for _, name := range names {
//	    idx.Add(name)
//	}
//	runner, err := bench.NewRunner(idx, bench.DefaultConfig())
//	results, err := runner.Run(ctx)
//	entries, err := idx.ResolveAll(ctx)
//	err = bench.WriteReport(w, results, entries)
package bench
