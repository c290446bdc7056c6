// Package metrics provides the per-dataset error-metric functions consumed by
// the benchmark runner. Every metric compares ground-truth labels against
// predictions and returns a scalar plus a human-readable name.
package metrics

import "github.com/kernelmethods/svmbench/svm"

import "gonum.org/v1/gonum/mat"

// Func computes one error metric. Predictions may be class scores (one
// column per class) or a single index column; metrics align shapes via
// argmax before comparing.
type Func func(yTrue, yPred *mat.Dense) (float64, string)

// Get returns the metric functions for a dataset, primary metric first.
// All three image datasets report classification error; mean squared error
// over the one-hot encoding is kept as a secondary diagnostic.
func Get(dataset string) []Func {
	return []Func{ClassificationError, MeanSquaredError}
}

// ClassificationError is the fraction of test samples whose predicted class
// differs from the true class.
func ClassificationError(yTrue, yPred *mat.Dense) (float64, string) {
	truth := classesOf(yTrue)
	pred := classesOf(yPred)
	var wrong int
	for i := range truth {
		if truth[i] != pred[i] {
			wrong++
		}
	}
	return float64(wrong) / float64(len(truth)), "classification error"
}

// MeanSquaredError averages the squared difference between the one-hot truth
// and the one-hot prediction.
func MeanSquaredError(yTrue, yPred *mat.Dense) (float64, string) {
	n, c := yTrue.Dims()
	truth := classesOf(yTrue)
	pred := classesOf(yPred)
	var sum float64
	for i := 0; i < n; i++ {
		if truth[i] != pred[i] {
			sum += 2 // one-hot rows differing in class differ in two cells
		}
	}
	return sum / float64(n*c), "mse"
}

func classesOf(y *mat.Dense) []int {
	_, c := y.Dims()
	if c == 1 {
		n, _ := y.Dims()
		out := make([]int, n)
		for i := 0; i < n; i++ {
			out[i] = int(y.At(i, 0))
		}
		return out
	}
	return svm.ClassIndices(y)
}
