// Package smo is the classical reference solver: a one-vs-rest C-SVC trained
// by simplified Sequential Minimal Optimization over the exact RBF kernel,
// with a bounded FIFO cache of kernel rows. It is the slowest and most
// accurate of the three solver families and anchors the benchmark.
package smo

import "fmt"
import "math"
import "math/rand"

import "github.com/kernelmethods/svmbench/kernel"
import "github.com/kernelmethods/svmbench/svm"

import "gonum.org/v1/gonum/mat"

// HyperParameters configures the SMO solver. Zero values fall back to the
// defaults noted on each field.
type HyperParameters struct {
	Sigma float64 // RBF kernel bandwidth, required positive
	C     float64 // margin penalty, required positive

	Tol       float64 // KKT violation tolerance (default 1e-3)
	MaxPasses int     // passes without an update before stopping (default 5)
	CacheRows int     // kernel rows kept in memory (default 2048)
	Threads   int     // goroutines for the prediction Gram matrix (default 1)
	Seed      int64   // working-pair selection seed
}

// SVM is a fitted (or to-be-fitted) one-vs-rest SMO machine.
type SVM struct {
	h       HyperParameters
	gamma   float64
	classes int

	sv    *mat.Dense // training features, shared read-only
	alpha *mat.Dense // signed coefficients alpha_i*t_i, one column per class
	b     []float64  // bias per class
}

// New returns an unfitted solver with defaults applied.
func New(h HyperParameters) *SVM {
	if h.Tol == 0 {
		h.Tol = 1e-3
	}
	if h.MaxPasses == 0 {
		h.MaxPasses = 5
	}
	if h.CacheRows == 0 {
		h.CacheRows = 2048
	}
	if h.Threads == 0 {
		h.Threads = 1
	}
	return &SVM{h: h}
}

// Params describes the hand-picked hyperparameters for the report line.
func (m *SVM) Params() string {
	return fmt.Sprintf("sigma=%g C=%g", m.h.Sigma, m.h.C)
}

// Fit trains one binary machine per class against the rest. The one-hot
// labels are reshaped to class indices here; that conversion is this
// solver's own convention, not the runner's.
func (m *SVM) Fit(x, y *mat.Dense) error {
	if m.h.Sigma <= 0 || m.h.C <= 0 {
		return svm.ErrHyperparameter
	}
	xn, _ := x.Dims()
	yn, classes := y.Dims()
	if xn != yn || xn == 0 {
		return svm.ErrDimension
	}

	m.gamma = kernel.Gamma(m.h.Sigma)
	m.classes = classes
	idx := svm.ClassIndices(y)

	cache := newRowCache(x, m.gamma, m.h.CacheRows)
	rng := rand.New(rand.NewSource(m.h.Seed))

	alpha := mat.NewDense(xn, classes, nil)
	b := make([]float64, classes)
	t := make([]float64, xn)
	for c := 0; c < classes; c++ {
		for i, class := range idx {
			if class == c {
				t[i] = 1
			} else {
				t[i] = -1
			}
		}
		signed, bias := m.trainBinary(cache, t, rng)
		alpha.SetCol(c, signed)
		b[c] = bias
	}

	m.sv = x
	m.alpha = alpha
	m.b = b
	return nil
}

// Predict returns one decision value per class; the metric takes the argmax.
func (m *SVM) Predict(x *mat.Dense) (*mat.Dense, error) {
	if m.sv == nil {
		return nil, svm.ErrNotFitted
	}
	k, err := kernel.Matrix(x, m.sv, m.gamma, m.h.Threads)
	if err != nil {
		return nil, err
	}
	var scores mat.Dense
	scores.Mul(k, m.alpha)
	n, _ := x.Dims()
	for i := 0; i < n; i++ {
		row := scores.RawRowView(i)
		for c := range row {
			row[c] += m.b[c]
		}
	}
	return &scores, nil
}

// trainBinary runs simplified SMO on +-1 targets t and returns the signed
// coefficients alpha_i*t_i and the bias.
func (m *SVM) trainBinary(cache *rowCache, t []float64, rng *rand.Rand) ([]float64, float64) {
	n := len(t)
	alpha := make([]float64, n)
	signed := make([]float64, n)
	var b float64
	if n < 2 {
		return signed, b
	}
	c, tol := m.h.C, m.h.Tol

	decision := func(i int) float64 {
		row := cache.row(i)
		var s float64
		for j, a := range signed {
			if a != 0 {
				s += a * row[j]
			}
		}
		return s + b
	}

	for passes := 0; passes < m.h.MaxPasses; {
		changed := 0
		for i := 0; i < n; i++ {
			ei := decision(i) - t[i]
			if !(t[i]*ei < -tol && alpha[i] < c) && !(t[i]*ei > tol && alpha[i] > 0) {
				continue
			}
			j := rng.Intn(n - 1)
			if j >= i {
				j++
			}
			ej := decision(j) - t[j]

			ai, aj := alpha[i], alpha[j]
			var lo, hi float64
			if t[i] != t[j] {
				lo = math.Max(0, aj-ai)
				hi = math.Min(c, c+aj-ai)
			} else {
				lo = math.Max(0, ai+aj-c)
				hi = math.Min(c, ai+aj)
			}
			if lo == hi {
				continue
			}

			rowI := cache.row(i)
			kii, kij := rowI[i], rowI[j]
			kjj := cache.row(j)[j]
			eta := 2*kij - kii - kjj
			if eta >= 0 {
				continue
			}

			ajNew := aj - t[j]*(ei-ej)/eta
			if ajNew > hi {
				ajNew = hi
			} else if ajNew < lo {
				ajNew = lo
			}
			if math.Abs(ajNew-aj) < 1e-5 {
				continue
			}
			aiNew := ai + t[i]*t[j]*(aj-ajNew)

			b1 := b - ei - t[i]*(aiNew-ai)*kii - t[j]*(ajNew-aj)*kij
			b2 := b - ej - t[i]*(aiNew-ai)*kij - t[j]*(ajNew-aj)*kjj
			switch {
			case aiNew > 0 && aiNew < c:
				b = b1
			case ajNew > 0 && ajNew < c:
				b = b2
			default:
				b = (b1 + b2) / 2
			}

			alpha[i], alpha[j] = aiNew, ajNew
			signed[i], signed[j] = aiNew*t[i], ajNew*t[j]
			changed++
		}
		if changed == 0 {
			passes++
		} else {
			passes = 0
		}
	}
	return signed, b
}
