// Package nystrom is the kernel-approximation solver: an M-landmark Nystrom
// feature map followed by ridge-regularized least squares on the one-hot
// labels, minimized by full-batch gradient descent. Training cost scales
// with n*M instead of n*n, which is what makes it the fast CPU entry in the
// benchmark.
package nystrom

import "fmt"
import "math/rand"

import "github.com/kernelmethods/svmbench/kernel"
import "github.com/kernelmethods/svmbench/svm"

import "gonum.org/v1/gonum/mat"

// jitter added to the landmark Gram diagonal before Cholesky; doubled on
// each failed factorization, up to jitterRetries times.
const baseJitter = 1e-7
const jitterRetries = 8

// HyperParameters configures the Nystrom solver. Zero values fall back to
// the defaults noted on each field.
type HyperParameters struct {
	Sigma  float64 // RBF kernel bandwidth, required positive
	M      int     // approximation subset size, required positive; capped at n
	Epochs int     // gradient descent iterations, required positive
	Eta    float64 // learning rate (default 0.5)
	Lambda float64 // ridge regularization (default 0)

	Threads int   // goroutines for Gram matrix rows (default 1)
	Seed    int64 // landmark subsampling seed
}

// Machine is a fitted (or to-be-fitted) Nystrom least-squares classifier.
type Machine struct {
	h     HyperParameters
	gamma float64

	landmarks *mat.Dense    // M x d subsample of the training rows
	chol      *mat.TriDense // lower Cholesky factor of K_mm + jitter*I
	w         *mat.Dense    // M x classes linear map
}

// New returns an unfitted solver with defaults applied.
func New(h HyperParameters) *Machine {
	if h.Eta == 0 {
		h.Eta = 0.5
	}
	if h.Threads == 0 {
		h.Threads = 1
	}
	return &Machine{h: h}
}

// Params describes the hand-picked hyperparameters for the report line.
func (m *Machine) Params() string {
	return fmt.Sprintf("sigma=%g M=%d epochs=%d eta=%g lambda=%g",
		m.h.Sigma, m.h.M, m.h.Epochs, m.h.Eta, m.h.Lambda)
}

// Fit builds the feature map from M uniformly sampled landmark rows and
// regresses the one-hot labels onto it. Labels stay in one-hot form; this
// solver never converts them to class indices.
func (m *Machine) Fit(x, y *mat.Dense) error {
	if m.h.Sigma <= 0 || m.h.M <= 0 || m.h.Epochs <= 0 {
		return svm.ErrHyperparameter
	}
	n, _ := x.Dims()
	yn, classes := y.Dims()
	if n != yn || n == 0 {
		return svm.ErrDimension
	}

	m.gamma = kernel.Gamma(m.h.Sigma)
	landmarks := m.sample(x)
	chol, err := factorize(landmarks, m.gamma, m.h.Threads)
	if err != nil {
		return err
	}
	m.landmarks = landmarks
	m.chol = chol

	phi, err := m.features(x)
	if err != nil {
		return err
	}

	mm, _ := landmarks.Dims()
	w := mat.NewDense(mm, classes, nil)
	var pred, resid, grad, reg mat.Dense
	for epoch := 0; epoch < m.h.Epochs; epoch++ {
		pred.Mul(phi, w)
		resid.Sub(&pred, y)
		grad.Mul(phi.T(), &resid)
		grad.Scale(1/float64(n), &grad)
		if m.h.Lambda != 0 {
			reg.Scale(m.h.Lambda, w)
			grad.Add(&grad, &reg)
		}
		grad.Scale(m.h.Eta, &grad)
		w.Sub(w, &grad)
	}
	m.w = w
	return nil
}

// Predict maps the test rows through the stored feature map and returns one
// score per class.
func (m *Machine) Predict(x *mat.Dense) (*mat.Dense, error) {
	if m.w == nil {
		return nil, svm.ErrNotFitted
	}
	phi, err := m.features(x)
	if err != nil {
		return nil, err
	}
	var scores mat.Dense
	scores.Mul(phi, m.w)
	return &scores, nil
}

// features computes Phi = K_nm * L^-T, so that Phi Phi' recovers the
// Nystrom approximation K_nm K_mm^-1 K_mn (exactly K when M = n).
func (m *Machine) features(x *mat.Dense) (*mat.Dense, error) {
	knm, err := kernel.Matrix(x, m.landmarks, m.gamma, m.h.Threads)
	if err != nil {
		return nil, err
	}
	var phiT mat.Dense
	if err := phiT.Solve(m.chol, knm.T()); err != nil {
		return nil, fmt.Errorf("nystrom: triangular solve: %w", err)
	}
	var phi mat.Dense
	phi.CloneFrom(phiT.T())
	return &phi, nil
}

func (m *Machine) sample(x *mat.Dense) *mat.Dense {
	n, d := x.Dims()
	mm := m.h.M
	if mm >= n {
		var all mat.Dense
		all.CloneFrom(x)
		return &all
	}
	rng := rand.New(rand.NewSource(m.h.Seed))
	picked := rng.Perm(n)[:mm]
	out := mat.NewDense(mm, d, nil)
	for i, r := range picked {
		out.SetRow(i, x.RawRowView(r))
	}
	return out
}

func factorize(landmarks *mat.Dense, gamma float64, threads int) (*mat.TriDense, error) {
	kmm, err := kernel.Matrix(landmarks, landmarks, gamma, threads)
	if err != nil {
		return nil, err
	}
	mm, _ := kmm.Dims()

	jitter := baseJitter
	for attempt := 0; attempt < jitterRetries; attempt++ {
		sym := mat.NewSymDense(mm, nil)
		for i := 0; i < mm; i++ {
			for j := i; j < mm; j++ {
				v := kmm.At(i, j)
				if i == j {
					v += jitter
				}
				sym.SetSym(i, j, v)
			}
		}
		var ch mat.Cholesky
		if ch.Factorize(sym) {
			l := mat.NewTriDense(mm, mat.Lower, nil)
			ch.LTo(l)
			return l, nil
		}
		jitter *= 2
	}
	return nil, fmt.Errorf("nystrom: landmark Gram matrix is not positive definite")
}
