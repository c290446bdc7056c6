// Package datasets implements the dataset loader contract of the benchmark:
// a named loader returns train/test feature matrices and one-hot label
// matrices. Dataset packages register themselves on import, database/sql
// driver style.
package datasets

import "fmt"
import "sort"

import "gonum.org/v1/gonum/mat"

// Split holds one dataset's train/test partitions. Features are row-major
// samples scaled to [0,1]; labels are one-hot, one row per sample. The
// matrices are shared read-only across all solver runs for the dataset.
type Split struct {
	Name    string
	Classes int

	TrainX, TrainY *mat.Dense
	TestX, TestY   *mat.Dense
}

// Loader reads a dataset from dir, falling back to the package's search
// directories when dir is empty.
type Loader func(dir string) (*Split, error)

var loaders = map[string]Loader{}

// Register makes a loader available under a dataset name. It panics on a
// duplicate name, mirroring driver registries.
func Register(name string, l Loader) {
	if _, dup := loaders[name]; dup {
		panic("datasets: Register called twice for " + name)
	}
	loaders[name] = l
}

// Load runs the registered loader for name.
func Load(name, dir string) (*Split, error) {
	l, ok := loaders[name]
	if !ok {
		return nil, fmt.Errorf("datasets: unknown dataset %q (known: %v)", name, known())
	}
	return l(dir)
}

func known() []string {
	names := make([]string, 0, len(loaders))
	for name := range loaders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
