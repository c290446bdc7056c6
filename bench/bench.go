// Package bench is the benchmark runner: it executes one solver's
// fit/predict/evaluate cycle under uniform timing and reporting so the three
// solver families can be compared on equal footing. The runner is strictly
// sequential; one call completes fully before the next begins, and no state
// is retained between calls.
package bench

import "fmt"
import "io"
import "os"
import "time"

import "github.com/kernelmethods/svmbench/datasets"
import "github.com/kernelmethods/svmbench/metrics"
import "github.com/kernelmethods/svmbench/svm"

// Result is the tuple a benchmark run returns: the scalar test error from
// the metric function and the wall-clock seconds spent in Fit.
type Result struct {
	Err     float64
	Seconds float64
}

// Run fits the solver on the training split, times the fit, predicts on the
// test split, evaluates the metric, and writes the two report lines to w
// (stdout when nil).
//
// The timing window covers only Fit, never Predict or the metric, so the
// comparison isolates training cost. Any error from the solver propagates
// unmodified: no retry, no fallback, no partial result.
func Run(w io.Writer, name string, s svm.Solver, d *datasets.Split, metric metrics.Func) (Result, error) {
	if w == nil {
		w = os.Stdout
	}

	start := time.Now()
	if err := s.Fit(d.TrainX, d.TrainY); err != nil {
		return Result{}, err
	}
	elapsed := time.Since(start).Seconds()

	pred, err := s.Predict(d.TestX)
	if err != nil {
		return Result{}, err
	}
	pred = svm.AlignShape(pred, d.TestY)

	errVal, metricName := metric(d.TestY, pred)

	fmt.Fprintf(w, "%s elapsed %.2fs\n", name, elapsed)
	fmt.Fprintf(w, "%s - Test %s: %9.6f\n", s.Params(), metricName, errVal)

	return Result{Err: errVal, Seconds: elapsed}, nil
}
