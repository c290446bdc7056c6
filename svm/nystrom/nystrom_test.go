package nystrom

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kernelmethods/svmbench/kernel"
	"github.com/kernelmethods/svmbench/svm"

	"gonum.org/v1/gonum/mat"
)

func toy() (*mat.Dense, *mat.Dense) {
	x := mat.NewDense(6, 2, []float64{
		0, 0,
		0.3, 0.1,
		0.1, 0.4,
		4, 4,
		4.2, 3.9,
		3.8, 4.3,
	})
	y := svm.OneHot([]int{0, 0, 0, 1, 1, 1}, 2)
	return x, y
}

// With M = n the feature map is exact: Phi Phi' must reproduce the full
// Gram matrix up to the diagonal jitter.
func TestFeatureMapExactWhenMEqualsN(t *testing.T) {
	x, y := toy()
	m := New(HyperParameters{Sigma: 1, M: 6, Epochs: 1})
	require.NoError(t, m.Fit(x, y))

	phi, err := m.features(x)
	require.NoError(t, err)
	var approx mat.Dense
	approx.Mul(phi, phi.T())

	exact, err := kernel.Matrix(x, x, kernel.Gamma(1), 1)
	require.NoError(t, err)
	for i := 0; i < 6; i++ {
		for j := 0; j < 6; j++ {
			require.InDelta(t, exact.At(i, j), approx.At(i, j), 1e-4)
		}
	}
}

func TestFitPredictToy(t *testing.T) {
	x, y := toy()
	m := New(HyperParameters{Sigma: 1, M: 6, Epochs: 2000, Eta: 0.5, Lambda: 1e-6})
	require.NoError(t, m.Fit(x, y))

	scores, err := m.Predict(x)
	require.NoError(t, err)
	require.Equal(t, svm.ClassIndices(y), svm.ClassIndices(scores))
}

// Same seed must pick the same landmarks and produce identical predictions.
func TestFitDeterministicSeed(t *testing.T) {
	x, y := toy()
	a := New(HyperParameters{Sigma: 1, M: 3, Epochs: 100, Seed: 7})
	b := New(HyperParameters{Sigma: 1, M: 3, Epochs: 100, Seed: 7})
	require.NoError(t, a.Fit(x, y))
	require.NoError(t, b.Fit(x, y))

	sa, err := a.Predict(x)
	require.NoError(t, err)
	sb, err := b.Predict(x)
	require.NoError(t, err)
	require.True(t, mat.Equal(sa, sb))
}

func TestHyperparameterValidation(t *testing.T) {
	x, y := toy()
	require.ErrorIs(t, New(HyperParameters{Sigma: 0, M: 3, Epochs: 1}).Fit(x, y), svm.ErrHyperparameter)
	require.ErrorIs(t, New(HyperParameters{Sigma: 1, M: 0, Epochs: 1}).Fit(x, y), svm.ErrHyperparameter)
	require.ErrorIs(t, New(HyperParameters{Sigma: 1, M: 3, Epochs: 0}).Fit(x, y), svm.ErrHyperparameter)
}

func TestPredictBeforeFit(t *testing.T) {
	x, _ := toy()
	_, err := New(HyperParameters{Sigma: 1, M: 3, Epochs: 1}).Predict(x)
	require.ErrorIs(t, err, svm.ErrNotFitted)
}

func TestParams(t *testing.T) {
	m := New(HyperParameters{Sigma: 5, M: 4800, Epochs: 10, Eta: 0.5, Lambda: 1e-6})
	require.Equal(t, "sigma=5 M=4800 epochs=10 eta=0.5 lambda=1e-06", m.Params())
}
