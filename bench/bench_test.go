package bench_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/kernelmethods/svmbench/bench"
	"github.com/kernelmethods/svmbench/datasets"
	"github.com/kernelmethods/svmbench/metrics"
	"github.com/kernelmethods/svmbench/svm"

	"gonum.org/v1/gonum/mat"
)

// stubSolver lets each stage sleep a distinguishable duration and always
// predicts the majority class of the training labels, as a single index
// column.
type stubSolver struct {
	fitSleep     time.Duration
	predictSleep time.Duration
	fitErr       error

	majority int
}

func (s *stubSolver) Fit(x, y *mat.Dense) error {
	time.Sleep(s.fitSleep)
	if s.fitErr != nil {
		return s.fitErr
	}
	counts := map[int]int{}
	for _, c := range svm.ClassIndices(y) {
		counts[c]++
	}
	best, bestCount := 0, -1
	for c, n := range counts {
		if n > bestCount || (n == bestCount && c < best) {
			best, bestCount = c, n
		}
	}
	s.majority = best
	return nil
}

func (s *stubSolver) Predict(x *mat.Dense) (*mat.Dense, error) {
	time.Sleep(s.predictSleep)
	n, _ := x.Dims()
	out := mat.NewDense(n, 1, nil)
	for i := 0; i < n; i++ {
		out.Set(i, 0, float64(s.majority))
	}
	return out, nil
}

func (s *stubSolver) Params() string { return "stub" }

// fourSampleSplit is a synthetic 4-sample, 2-class dataset: three training
// samples of class 0 and one of class 1, test labels [0 1 1 0].
func fourSampleSplit() *datasets.Split {
	return &datasets.Split{
		Name:    "toy",
		Classes: 2,
		TrainX:  mat.NewDense(4, 2, []float64{0, 0, 0, 1, 1, 0, 5, 5}),
		TrainY:  svm.OneHot([]int{0, 0, 0, 1}, 2),
		TestX:   mat.NewDense(4, 2, []float64{0, 0, 5, 5, 5, 4, 1, 1}),
		TestY:   svm.OneHot([]int{0, 1, 1, 0}, 2),
	}
}

// TestTimingCoversOnlyFit verifies the elapsed time excludes prediction and
// evaluation: the predict stage sleeps three times longer than fit, and the
// reported duration must match only the fit stage.
func TestTimingCoversOnlyFit(t *testing.T) {
	s := &stubSolver{fitSleep: 60 * time.Millisecond, predictSleep: 180 * time.Millisecond}
	res, err := bench.Run(&bytes.Buffer{}, "STUB", s, fourSampleSplit(), metrics.ClassificationError)
	require.NoError(t, err)
	require.GreaterOrEqual(t, res.Seconds, 0.06)
	require.Less(t, res.Seconds, 0.15, "timing window must not include Predict")
}

// TestResultEqualsMetricScalar verifies the returned error is exactly the
// scalar produced by the injected metric function.
func TestResultEqualsMetricScalar(t *testing.T) {
	injected := func(yTrue, yPred *mat.Dense) (float64, string) {
		return 0.123456789, "injected"
	}
	res, err := bench.Run(&bytes.Buffer{}, "STUB", &stubSolver{}, fourSampleSplit(), injected)
	require.NoError(t, err)
	require.Equal(t, 0.123456789, res.Err)
}

// TestMajorityClassError checks the end-to-end hand-computed expectation:
// the majority-class stub predicts class 0 everywhere, and the test labels
// are half class 1, so classification error is exactly 0.5.
func TestMajorityClassError(t *testing.T) {
	var out bytes.Buffer
	res, err := bench.Run(&out, "STUB", &stubSolver{}, fourSampleSplit(), metrics.ClassificationError)
	require.NoError(t, err)
	require.Equal(t, 0.5, res.Err)

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	require.True(t, strings.HasPrefix(lines[0], "STUB elapsed "))
	require.True(t, strings.HasSuffix(lines[0], "s"))
	require.Equal(t, "stub - Test classification error:  0.500000", lines[1])
}

// TestRepeatedRunsAreIdentical verifies repeated invocation with identical
// inputs yields bit-identical error values: the runner keeps no hidden
// mutable state.
func TestRepeatedRunsAreIdentical(t *testing.T) {
	d := fourSampleSplit()
	first, err := bench.Run(&bytes.Buffer{}, "STUB", &stubSolver{}, d, metrics.ClassificationError)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		res, err := bench.Run(&bytes.Buffer{}, "STUB", &stubSolver{}, d, metrics.ClassificationError)
		require.NoError(t, err)
		require.Equal(t, first.Err, res.Err)
	}
}

// TestFitErrorPropagates verifies solver failures pass through unmodified.
func TestFitErrorPropagates(t *testing.T) {
	boom := errors.New("out of memory")
	_, err := bench.Run(&bytes.Buffer{}, "STUB", &stubSolver{fitErr: boom}, fourSampleSplit(), metrics.ClassificationError)
	require.ErrorIs(t, err, boom)
}
