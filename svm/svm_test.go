package svm_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kernelmethods/svmbench/svm"

	"gonum.org/v1/gonum/mat"
)

// TestOneHotRoundTrip checks that index -> one-hot -> index preserves every
// value and only changes shape.
func TestOneHotRoundTrip(t *testing.T) {
	indices := []int{3, 0, 2, 2, 1, 0}
	oneHot := svm.OneHot(indices, 4)

	n, c := oneHot.Dims()
	require.Equal(t, len(indices), n)
	require.Equal(t, 4, c)
	require.Equal(t, indices, svm.ClassIndices(oneHot))

	for i, class := range indices {
		for j := 0; j < c; j++ {
			want := 0.0
			if j == class {
				want = 1.0
			}
			require.Equal(t, want, oneHot.At(i, j))
		}
	}
}

func TestArgmax(t *testing.T) {
	require.Equal(t, 2, svm.Argmax([]float64{-1, 0, 3, 2}))
	require.Equal(t, 0, svm.Argmax([]float64{5, 5, 5}), "ties break low")
}

// TestAlignShape checks index-column predictions expand to the label's
// one-hot width while matching shapes pass through untouched.
func TestAlignShape(t *testing.T) {
	like := svm.OneHot([]int{0, 1, 2}, 3)

	pred := mat.NewDense(3, 1, []float64{2, 0, 1})
	aligned := svm.AlignShape(pred, like)
	require.Equal(t, []int{2, 0, 1}, svm.ClassIndices(aligned))
	_, c := aligned.Dims()
	require.Equal(t, 3, c)

	scores := mat.NewDense(3, 3, []float64{1, 0, 0, 0, 1, 0, 0, 0, 1})
	require.Same(t, scores, svm.AlignShape(scores, like))
}
