// Package mnist loads the MNIST handwritten digit dataset (60k train / 10k
// test grayscale 28x28 images, 784 features) from the standard gzipped IDX
// files, verifying the published sha256 digests before use.
package mnist

import "os"

import "github.com/kernelmethods/svmbench/datasets"

const trainSetImg = "train-images-idx3-ubyte.gz"
const trainSetVal = "train-labels-idx1-ubyte.gz"
const inferSetImg = "t10k-images-idx3-ubyte.gz"
const inferSetVal = "t10k-labels-idx1-ubyte.gz"

const trainDigImg = "440fcabf73cc546fa21475e81ea370265605f56be210a4024d2ca8f203523609"
const trainDigVal = "3552534a0a558bbed6aed32b30c495cca23d567ec52cac8be1a0730e8010255c"
const inferDigImg = "8d422c7b0a1c1c79245a5bcf07fe86e33eeafee792b84584aec276f5a2dbc4e6"
const inferDigVal = "f7ae60f92e00ec6debd23a6088c31dbd2371eca3ffa0defaefb259924204aec6"

const tmpDirectory = "/tmp/mnist/"

func init() {
	datasets.Register("mnist", Load)
}

// Load reads the MNIST split, searching dir first and then the well-known
// temp and home locations.
func Load(dir string) (*datasets.Split, error) {
	return datasets.LoadIDXSplit("mnist", searchDirectories(dir), datasets.IDXFileSet{
		TrainImages: trainSetImg,
		TrainLabels: trainSetVal,
		TestImages:  inferSetImg,
		TestLabels:  inferSetVal,
		Digests: map[string]string{
			trainSetImg: trainDigImg,
			trainSetVal: trainDigVal,
			inferSetImg: inferDigImg,
			inferSetVal: inferDigVal,
		},
	})
}

func searchDirectories(dir string) []string {
	dirs := []string{dir, tmpDirectory}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, home+"/mnist/")
	}
	return dirs
}
