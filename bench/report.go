package bench

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"
)

// reportHeader lists the measurement columns. The experiment id sits in the
// third column, followed after the measurements by the problem identity.
var reportHeader = []string{
	"Group", "Experiment", "Problem Space", "Samples", "Iterations",
	"us/Iteration", "Min (us)", "Max (us)",
	"Residual", "Numerical Failure", "Physical Memory (b)",
	"System Name", "Dataset", "Size",
}

// ReportName returns the file name of a report written at t, such as
// "2026_10_17_14_05_benchmark_data.csv".
func ReportName(t time.Time) string {
	return t.Format("2006_01_02_15_04") + "_benchmark_data.csv"
}

// WriteReport writes results as CSV, joining every row with the entry of its
// experiment. Rows whose experiment has no entry fail the report.
func WriteReport(w io.Writer, results []Result, entries map[int]Entry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(reportHeader); err != nil {
		return err
	}
	for _, r := range results {
		e, ok := entries[r.Experiment]
		if !ok {
			return fmt.Errorf("%w: %d has no entry", ErrUnknownExperiment, r.Experiment)
		}
		row := []string{
			r.Phase.String(),
			r.Solver,
			strconv.Itoa(r.Experiment),
			strconv.Itoa(r.Samples),
			strconv.Itoa(r.Iterations),
			micros(r.Mean),
			micros(r.Min),
			micros(r.Max),
			strconv.FormatFloat(r.Residual, 'g', -1, 64),
			strconv.Itoa(r.Failures),
			strconv.FormatUint(r.Memory, 10),
			e.DisplayName,
			e.Dataset,
			strconv.Itoa(e.NNZ),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func micros(d time.Duration) string {
	return strconv.FormatFloat(float64(d.Nanoseconds())/1e3, 'f', 3, 64)
}
