package kernel

import "errors"
import "math"

import "github.com/kernelmethods/svmbench/parallel"

import "gonum.org/v1/gonum/mat"

var (
	// ErrBandwidth indicates a non-positive kernel bandwidth.
	ErrBandwidth = errors.New("kernel: bandwidth sigma must be positive")
	// ErrDimension indicates feature matrices with differing column counts.
	ErrDimension = errors.New("kernel: feature dimensions do not match")
)

// Gamma derives the RBF kernel width constant from the bandwidth sigma.
func Gamma(sigma float64) float64 {
	return 1 / (2 * sigma * sigma)
}

// Matrix computes the dense RBF Gram matrix between the rows of x and the rows
// of z: out[i][j] = exp(-gamma * ||x_i - z_j||^2). The squared distances come
// from the |x|^2 + |z|^2 - 2*x.z' expansion so the cross term is a single BLAS
// multiply; rows of the output are filled on up to threads goroutines.
func Matrix(x, z *mat.Dense, gamma float64, threads int) (*mat.Dense, error) {
	xn, xd := x.Dims()
	zn, zd := z.Dims()
	if xd != zd {
		return nil, ErrDimension
	}

	xs := squaredNorms(x)
	zs := squaredNorms(z)

	var cross mat.Dense
	cross.Mul(x, z.T())

	out := mat.NewDense(xn, zn, nil)
	parallel.ForEach(xn, threads, func(i int) {
		row := out.RawRowView(i)
		for j := 0; j < zn; j++ {
			d2 := xs[i] + zs[j] - 2*cross.At(i, j)
			if d2 < 0 {
				// cancellation noise on (near-)identical rows
				d2 = 0
			}
			row[j] = math.Exp(-gamma * d2)
		}
	})
	return out, nil
}

// Vector computes a single kernel row between xi and every row of x.
func Vector(x *mat.Dense, xi []float64, gamma float64) []float64 {
	n, d := x.Dims()
	out := make([]float64, n)
	for j := 0; j < n; j++ {
		row := x.RawRowView(j)
		var d2 float64
		for k := 0; k < d; k++ {
			diff := xi[k] - row[k]
			d2 += diff * diff
		}
		out[j] = math.Exp(-gamma * d2)
	}
	return out
}

func squaredNorms(x *mat.Dense) []float64 {
	n, _ := x.Dims()
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		row := x.RawRowView(i)
		var s float64
		for _, v := range row {
			s += v * v
		}
		out[i] = s
	}
	return out
}
