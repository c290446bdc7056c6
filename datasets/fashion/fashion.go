// Package fashion loads the Fashion-MNIST dataset. The files use the same
// gzipped IDX layout and names as MNIST, so keep them in a separate
// directory; only sizes are validated, no digests are carried.
package fashion

import "os"

import "github.com/kernelmethods/svmbench/datasets"

const trainSetImg = "train-images-idx3-ubyte.gz"
const trainSetVal = "train-labels-idx1-ubyte.gz"
const inferSetImg = "t10k-images-idx3-ubyte.gz"
const inferSetVal = "t10k-labels-idx1-ubyte.gz"

const tmpDirectory = "/tmp/fashion-mnist/"

func init() {
	datasets.Register("fashion", Load)
}

// Load reads the Fashion-MNIST split, searching dir first and then the
// well-known temp and home locations.
func Load(dir string) (*datasets.Split, error) {
	return datasets.LoadIDXSplit("fashion", searchDirectories(dir), datasets.IDXFileSet{
		TrainImages: trainSetImg,
		TrainLabels: trainSetVal,
		TestImages:  inferSetImg,
		TestLabels:  inferSetVal,
	})
}

func searchDirectories(dir string) []string {
	dirs := []string{dir, tmpDirectory}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, home+"/fashion-mnist/")
	}
	return dirs
}
