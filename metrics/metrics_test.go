package metrics_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kernelmethods/svmbench/metrics"
	"github.com/kernelmethods/svmbench/svm"

	"gonum.org/v1/gonum/mat"
)

func TestClassificationError(t *testing.T) {
	truth := svm.OneHot([]int{0, 1, 1, 0}, 2)
	pred := svm.OneHot([]int{0, 0, 1, 0}, 2)

	e, name := metrics.ClassificationError(truth, pred)
	require.Equal(t, "classification error", name)
	require.Equal(t, 0.25, e)
}

// TestClassificationErrorIndexColumn checks predictions given as a single
// index column are compared correctly against one-hot truth.
func TestClassificationErrorIndexColumn(t *testing.T) {
	truth := svm.OneHot([]int{2, 1, 0}, 3)
	pred := mat.NewDense(3, 1, []float64{2, 0, 0})

	e, _ := metrics.ClassificationError(truth, pred)
	require.InDelta(t, 1.0/3.0, e, 1e-12)
}

func TestMeanSquaredError(t *testing.T) {
	truth := svm.OneHot([]int{0, 1}, 2)
	pred := svm.OneHot([]int{1, 1}, 2)

	// one of two samples differs: 2 squared-unit cells over n*c = 4
	e, name := metrics.MeanSquaredError(truth, pred)
	require.Equal(t, "mse", name)
	require.Equal(t, 0.5, e)
}

func TestGetPrimaryMetric(t *testing.T) {
	for _, dataset := range []string{"mnist", "fashion", "cifar10"} {
		funcs := metrics.Get(dataset)
		require.NotEmpty(t, funcs)
		truth := svm.OneHot([]int{0, 1}, 2)
		e, name := funcs[0](truth, truth)
		require.Equal(t, "classification error", name)
		require.Equal(t, 0.0, e)
	}
}
