package cu

import "gorgonia.org/cu"

// HyperParameters configures the CUDA solver. Device memory sizing follows
// the same scheme as the CPU-side defaults: either a static byte budget or a
// portion of the device's total memory.
type HyperParameters struct {
	Sigma float64 // RBF kernel bandwidth, required positive
	C     float64 // margin penalty, required positive

	Tol       float64 // KKT violation tolerance (default 1e-3)
	MaxPasses int     // passes without an update before stopping (default 5)
	Seed      int64   // working-pair selection seed
	Threads   int     // goroutines for the host-side prediction Gram (default 1)

	// Device selects the CUDA device ordinal. It is threaded through
	// explicitly instead of being read from process-wide environment.
	Device int

	CuMemoryBytes   uint64 // statically set Gram tile memory
	CuMemoryPortion uint16 // denominator of device memory to use. 2=half, 3=third

	ctx          *cu.CUContext
	x, tile, num *cu.DevicePtr
	fn           *cu.Function
	stream       *cu.Stream
	tileRows     int
}
