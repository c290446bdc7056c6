// Package cifar10 loads the CIFAR-10 dataset from the binary batch files
// (data_batch_1.bin .. data_batch_5.bin plus test_batch.bin). Images are
// converted from 32x32 RGB to 1024 grayscale features so that all three
// benchmark datasets stay in the same few-hundred-to-1024 dimension range.
package cifar10

import "fmt"
import "io"
import "os"

import "github.com/kernelmethods/svmbench/datasets"

import "gonum.org/v1/gonum/mat"

const (
	imgSide   = 32
	imgPixels = imgSide * imgSide
	recordLen = 1 + 3*imgPixels
	classes   = 10
)

const tmpDirectory = "/tmp/cifar-10-batches-bin/"

var trainBatches = []string{
	"data_batch_1.bin",
	"data_batch_2.bin",
	"data_batch_3.bin",
	"data_batch_4.bin",
	"data_batch_5.bin",
}

const testBatch = "test_batch.bin"

func init() {
	datasets.Register("cifar10", Load)
}

// Load reads the CIFAR-10 split, searching dir (and its
// cifar-10-batches-bin subdirectory) first, then the temp location.
func Load(dir string) (*datasets.Split, error) {
	base, err := findDir(dir)
	if err != nil {
		return nil, err
	}

	var trainX *mat.Dense
	var trainLabels []int
	for _, name := range trainBatches {
		x, labels, err := readBatchFile(base + name)
		if err != nil {
			return nil, err
		}
		if trainX == nil {
			trainX, trainLabels = x, labels
		} else {
			trainX = stackRows(trainX, x)
			trainLabels = append(trainLabels, labels...)
		}
	}
	testX, testLabels, err := readBatchFile(base + testBatch)
	if err != nil {
		return nil, err
	}

	return &datasets.Split{
		Name:    "cifar10",
		Classes: classes,
		TrainX:  trainX,
		TrainY:  oneHot(trainLabels),
		TestX:   testX,
		TestY:   oneHot(testLabels),
	}, nil
}

// ReadBatch parses one binary batch: records of a label byte followed by
// 1024 red, 1024 green and 1024 blue bytes. Pixels are reduced to grayscale
// by integer luma weights and scaled to [0,1].
func ReadBatch(r io.Reader) (*mat.Dense, []int, error) {
	var rows [][]float64
	var labels []int
	record := make([]byte, recordLen)
	for {
		_, err := io.ReadFull(r, record)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("cifar10: short record: %w", err)
		}
		label := int(record[0])
		if label >= classes {
			return nil, nil, fmt.Errorf("cifar10: label %d out of range", label)
		}
		row := make([]float64, imgPixels)
		for p := 0; p < imgPixels; p++ {
			r8 := int(record[1+p])
			g8 := int(record[1+imgPixels+p])
			b8 := int(record[1+2*imgPixels+p])
			gray := (299*r8 + 587*g8 + 114*b8) / 1000
			row[p] = float64(gray) / 255
		}
		rows = append(rows, row)
		labels = append(labels, label)
	}
	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("cifar10: empty batch")
	}

	flat := make([]float64, 0, len(rows)*imgPixels)
	for _, row := range rows {
		flat = append(flat, row...)
	}
	return mat.NewDense(len(rows), imgPixels, flat), labels, nil
}

func readBatchFile(path string) (*mat.Dense, []int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("cifar10: cannot open '%s': %w", path, err)
	}
	defer f.Close()
	return ReadBatch(f)
}

func findDir(dir string) (string, error) {
	var dirs []string
	if dir != "" {
		if dir[len(dir)-1] != '/' {
			dir += "/"
		}
		dirs = append(dirs, dir, dir+"cifar-10-batches-bin/")
	}
	dirs = append(dirs, tmpDirectory)
	for _, d := range dirs {
		if _, err := os.Stat(d + testBatch); err == nil {
			return d, nil
		}
	}
	return "", fmt.Errorf("cifar10: batch files not found in %v", dirs)
}

func stackRows(a, b *mat.Dense) *mat.Dense {
	var out mat.Dense
	out.Stack(a, b)
	return &out
}

func oneHot(labels []int) *mat.Dense {
	out := mat.NewDense(len(labels), classes, nil)
	for i, c := range labels {
		out.Set(i, c, 1)
	}
	return out
}
