// Package cu implements the GPU-accelerated solver. The CUDA device computes
// the full RBF Gram matrix in tiles sized to a budgeted share of device
// memory (the dominant cost at these dataset sizes); the host then runs dual
// coordinate ascent over the precomputed rows.
//
// Operational constraint: the Gram tiles and any other accelerator-backed
// process compete for the same device memory pool. Running two GPU solvers
// in one process, or alongside another GPU job, can fail with out-of-memory
// in whichever allocates second. Run GPU benchmarks one per process.
package cu

import "fmt"
import "math"
import "math/rand"
import "unsafe"

import hostkernel "github.com/kernelmethods/svmbench/kernel"
import "github.com/kernelmethods/svmbench/svm"
import "github.com/kernelmethods/svmbench/svm/cu/kernel"

import "gonum.org/v1/gonum/mat"

import "gorgonia.org/cu"

// SVM is a fitted (or to-be-fitted) one-vs-rest machine whose Gram matrix
// is computed on a CUDA device during Fit.
type SVM struct {
	h       HyperParameters
	gamma   float64
	classes int

	sv    []float64 // training features, row-major
	d     int
	alpha [][]float64 // signed coefficients per class
	b     []float64
}

// New returns an unfitted solver with defaults applied.
func New(h HyperParameters) *SVM {
	if h.Tol == 0 {
		h.Tol = 1e-3
	}
	if h.MaxPasses == 0 {
		h.MaxPasses = 5
	}
	if h.Threads == 0 {
		h.Threads = 1
	}
	return &SVM{h: h}
}

// Params describes the hand-picked hyperparameters for the report line.
func (m *SVM) Params() string {
	return fmt.Sprintf("sigma=%g C=%g device=%d", m.h.Sigma, m.h.C, m.h.Device)
}

// Fit computes the Gram matrix on the device and trains one binary machine
// per class on the host. One-hot labels are reshaped to class indices here.
func (m *SVM) Fit(x, y *mat.Dense) error {
	if m.h.Sigma <= 0 || m.h.C <= 0 {
		return svm.ErrHyperparameter
	}
	n, d := x.Dims()
	yn, classes := y.Dims()
	if n != yn || n == 0 {
		return svm.ErrDimension
	}

	m.gamma = hostkernel.Gamma(m.h.Sigma)
	m.classes = classes
	m.d = d

	gram, err := m.gram(x)
	if err != nil {
		return err
	}

	idx := svm.ClassIndices(y)
	rng := rand.New(rand.NewSource(m.h.Seed))

	m.alpha = make([][]float64, classes)
	m.b = make([]float64, classes)
	t := make([]float64, n)
	for c := 0; c < classes; c++ {
		for i, class := range idx {
			if class == c {
				t[i] = 1
			} else {
				t[i] = -1
			}
		}
		m.alpha[c], m.b[c] = m.trainBinary(gram, n, t, rng)
	}

	m.sv = make([]float64, n*d)
	for i := 0; i < n; i++ {
		copy(m.sv[i*d:(i+1)*d], x.RawRowView(i))
	}
	return nil
}

// Predict evaluates the decision functions on the host; prediction sits
// outside the timing window, so it never touches the device.
func (m *SVM) Predict(x *mat.Dense) (*mat.Dense, error) {
	if m.sv == nil {
		return nil, svm.ErrNotFitted
	}
	sv := mat.NewDense(len(m.sv)/m.d, m.d, m.sv)
	k, err := hostkernel.Matrix(x, sv, m.gamma, m.h.Threads)
	if err != nil {
		return nil, err
	}
	n, _ := x.Dims()
	nsv, _ := sv.Dims()
	scores := mat.NewDense(n, m.classes, nil)
	for i := 0; i < n; i++ {
		krow := k.RawRowView(i)
		out := scores.RawRowView(i)
		for c := 0; c < m.classes; c++ {
			s := m.b[c]
			ac := m.alpha[c]
			for j := 0; j < nsv; j++ {
				if ac[j] != 0 {
					s += ac[j] * krow[j]
				}
			}
			out[c] = s
		}
	}
	return scores, nil
}

// gram fills the n*n float32 Gram matrix, tile by tile, on the device.
func (m *SVM) gram(x *mat.Dense) ([]float32, error) {
	n, d := x.Dims()
	host := make([]float32, n*d)
	for i := 0; i < n; i++ {
		row := x.RawRowView(i)
		for j, v := range row {
			host[i*d+j] = float32(v)
		}
	}

	if err := m.h.initCUDA(n, d); err != nil {
		return nil, err
	}
	defer m.h.destroyCUDA()

	inputSize := int64(n) * int64(d) * int64(unsafe.Sizeof(float32(0)))
	err := cu.MemcpyHtoD(*m.h.x, unsafe.Pointer(&host[0]), inputSize)
	if err != nil {
		fmt.Printf("Failed to copy feature data to device: %v\n", err)
		return nil, err
	}

	out := make([]float32, n*n)
	gammaBits := math.Float32bits(float32(m.gamma))
	for start := 0; start < n; start += m.h.tileRows {
		count := m.h.tileRows
		if start+count > n {
			count = n - start
		}
		var nums = [5]uint32{uint32(n), uint32(d), uint32(start), uint32(count), gammaBits}
		err = cu.MemcpyHtoD(*m.h.num, unsafe.Pointer(&nums[0]), int64(len(nums))*int64(unsafe.Sizeof(uint32(0))))
		if err != nil {
			fmt.Printf("Failed to copy tile parameters to device: %v\n", err)
			return nil, err
		}

		args := []unsafe.Pointer{
			unsafe.Pointer(m.h.x),
			unsafe.Pointer(m.h.tile),
			unsafe.Pointer(m.h.num),
		}
		gridX := (n + 31) / 32
		gridY := (count + 31) / 32
		err = m.h.fn.LaunchAndSync(gridX, gridY, 1, 32, 32, 1, 0, *m.h.stream, args)
		if err != nil {
			fmt.Printf("Failed to launch kernel: %v\n", err)
			return nil, err
		}

		tileSize := int64(count) * int64(n) * int64(unsafe.Sizeof(float32(0)))
		err = cu.MemcpyDtoH(unsafe.Pointer(&out[start*n]), *m.h.tile, tileSize)
		if err != nil {
			fmt.Printf("Failed to copy Gram tile from device: %v\n", err)
			return nil, err
		}
	}
	return out, nil
}

// cudaRows sizes the Gram tile by the configured device memory budget.
func (h *HyperParameters) cudaRows(n, d int) int {
	mem := h.CuMemoryBytes
	if mem == 0 {
		memory, err := cu.Device(h.Device).TotalMem()
		if err == nil && memory > 0 {
			portion := uint64(h.CuMemoryPortion)
			if portion == 0 {
				// a third of the device by default
				portion = 3
			}
			mem = uint64(memory) / portion
		}
	}
	rowBytes := uint64(n) * 4
	if mem < rowBytes {
		mem = rowBytes
	}
	rows := int(mem / rowBytes)
	if rows > n {
		rows = n
	}
	return rows
}

func (h *HyperParameters) initCUDA(n, d int) error {
	device, err := cu.GetDevice(h.Device)
	if err != nil {
		fmt.Printf("Failed to get device: %v\n", err)
		return err
	}
	ctx, err := device.MakeContext(cu.SchedAuto)
	if err != nil {
		fmt.Printf("Failed to create context: %v\n", err)
		return err
	}
	err = ctx.Lock()
	if err != nil {
		fmt.Printf("Failed to lock context: %v\n", err)
		return err
	}

	h.tileRows = h.cudaRows(n, d)

	inputSize := int64(n) * int64(d) * int64(unsafe.Sizeof(float32(0)))
	d_x, err := cu.MemAlloc(inputSize)
	if err != nil {
		fmt.Printf("Failed to allocate device memory for features: %v\n", err)
		return err
	}
	tileSize := int64(h.tileRows) * int64(n) * int64(unsafe.Sizeof(float32(0)))
	d_tile, err := cu.MemAlloc(tileSize)
	if err != nil {
		fmt.Printf("Failed to allocate device memory for Gram tile: %v\n", err)
		return err
	}
	numSize := 5 * int64(unsafe.Sizeof(uint32(0)))
	d_num, err := cu.MemAlloc(numSize)
	if err != nil {
		fmt.Printf("Failed to allocate device memory for parameters: %v\n", err)
		return err
	}

	mod, err := cu.LoadData(kernel.PTXGramCUDA)
	if err != nil {
		fmt.Printf("Failed to load module: %v\n", err)
		return err
	}
	fn, err := mod.Function("rbf_gram")
	if err != nil {
		fmt.Printf("Failed to get function: %v\n", err)
		return err
	}
	stream, err := cu.MakeStream(cu.DefaultStream)
	if err != nil {
		fmt.Printf("Failed to make stream: %v\n", err)
		return err
	}

	h.ctx = &ctx
	h.x = &d_x
	h.tile = &d_tile
	h.num = &d_num
	h.fn = &fn
	h.stream = &stream
	return nil
}

func (h *HyperParameters) destroyCUDA() {
	h.fn = nil
	h.stream = nil
	if h.x != nil {
		cu.MemFree(*h.x)
		h.x = nil
	}
	if h.tile != nil {
		cu.MemFree(*h.tile)
		h.tile = nil
	}
	if h.num != nil {
		cu.MemFree(*h.num)
		h.num = nil
	}
	if h.ctx != nil {
		h.ctx.Unlock()
		h.ctx.Destroy()
		h.ctx = nil
	}
}

// trainBinary is the same simplified SMO update as the CPU reference solver,
// reading kernel values from the precomputed device Gram matrix.
func (m *SVM) trainBinary(gram []float32, n int, t []float64, rng *rand.Rand) ([]float64, float64) {
	alpha := make([]float64, n)
	signed := make([]float64, n)
	var b float64
	if n < 2 {
		return signed, b
	}
	c, tol := m.h.C, m.h.Tol

	decision := func(i int) float64 {
		row := gram[i*n : (i+1)*n]
		var s float64
		for j, a := range signed {
			if a != 0 {
				s += a * float64(row[j])
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

			kii := float64(gram[i*n+i])
			kij := float64(gram[i*n+j])
			kjj := float64(gram[j*n+j])
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
