package bench

import "fmt"
import "runtime"

import "github.com/klauspost/cpuid/v2"

// Hardware returns a one-line description of the benchmarking host so runs
// recorded on different machines stay comparable.
func Hardware() string {
	avx512 := cpuid.CPU.Supports(cpuid.AVX512F, cpuid.AVX512DQ)
	return fmt.Sprintf("%s, %d logical cores, AVX512=%v, %s/%s",
		cpuid.CPU.BrandName, cpuid.CPU.LogicalCores, avx512, runtime.GOOS, runtime.GOARCH)
}
