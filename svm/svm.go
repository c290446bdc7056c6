package svm

import "errors"

import "gonum.org/v1/gonum/mat"

var (
	// ErrDimension indicates feature/label matrices with mismatched row counts.
	ErrDimension = errors.New("svm: feature and label row counts do not match")
	// ErrNotFitted indicates Predict was called before a successful Fit.
	ErrNotFitted = errors.New("svm: solver has not been fitted")
	// ErrHyperparameter indicates a hyperparameter outside the solver's domain.
	ErrHyperparameter = errors.New("svm: hyperparameter out of range")
)

// Solver is the capability interface the benchmark runner is parameterized
// over. Training labels arrive one-hot encoded, one row per sample; each
// solver reshapes them to whatever its fitting routine expects.
type Solver interface {
	// Fit trains the solver on the given features and one-hot labels.
	Fit(x, y *mat.Dense) error
	// Predict returns per-sample outputs for the given features, either as
	// class scores (one column per class) or as a single index column.
	Predict(x *mat.Dense) (*mat.Dense, error)
	// Params describes the hyperparameters in use, for the report line.
	Params() string
}

// ClassIndices converts one-hot (or score) label rows to class indices.
func ClassIndices(y *mat.Dense) []int {
	n, _ := y.Dims()
	out := make([]int, n)
	for i := 0; i < n; i++ {
		out[i] = Argmax(y.RawRowView(i))
	}
	return out
}

// OneHot expands class indices into a one-hot matrix with the given width.
func OneHot(indices []int, classes int) *mat.Dense {
	out := mat.NewDense(len(indices), classes, nil)
	for i, c := range indices {
		out.Set(i, c, 1)
	}
	return out
}

// Argmax returns the index of the largest value, ties broken low.
func Argmax(row []float64) int {
	best := 0
	for j := 1; j < len(row); j++ {
		if row[j] > row[best] {
			best = j
		}
	}
	return best
}

// AlignShape reshapes a single-column index prediction to the one-hot width
// of like. Predictions already matching the label shape pass through
// untouched; values are never altered, only their shape.
func AlignShape(pred, like *mat.Dense) *mat.Dense {
	_, pc := pred.Dims()
	_, tc := like.Dims()
	if pc != 1 || tc <= 1 {
		return pred
	}
	n, _ := pred.Dims()
	indices := make([]int, n)
	for i := 0; i < n; i++ {
		indices[i] = int(pred.At(i, 0))
	}
	return OneHot(indices, tc)
}
