package datasets

import "compress/gzip"
import "crypto/sha256"
import "fmt"
import "io"
import "os"

import "gonum.org/v1/gonum/mat"

// IDXFileSet names the four gzipped IDX files of an MNIST-family dataset.
// Digests optionally maps a file name to its expected sha256 hex digest;
// files without an entry are not verified.
type IDXFileSet struct {
	TrainImages string
	TrainLabels string
	TestImages  string
	TestLabels  string

	Digests map[string]string
}

// LoadIDXSplit locates the four files in the first search directory that
// contains all of them, verifies any known digests, and assembles a Split
// with one-hot labels.
func LoadIDXSplit(name string, dirs []string, files IDXFileSet) (*Split, error) {
	dir, err := findDir(dirs, files)
	if err != nil {
		return nil, err
	}

	trainX, err := readImagesFile(dir+files.TrainImages, files.Digests[files.TrainImages])
	if err != nil {
		return nil, err
	}
	trainLabels, err := readLabelsFile(dir+files.TrainLabels, files.Digests[files.TrainLabels])
	if err != nil {
		return nil, err
	}
	testX, err := readImagesFile(dir+files.TestImages, files.Digests[files.TestImages])
	if err != nil {
		return nil, err
	}
	testLabels, err := readLabelsFile(dir+files.TestLabels, files.Digests[files.TestLabels])
	if err != nil {
		return nil, err
	}

	if n, _ := trainX.Dims(); n != len(trainLabels) {
		return nil, fmt.Errorf("datasets: %s train split has %d images but %d labels", name, n, len(trainLabels))
	}
	if n, _ := testX.Dims(); n != len(testLabels) {
		return nil, fmt.Errorf("datasets: %s test split has %d images but %d labels", name, n, len(testLabels))
	}

	classes := maxLabel(trainLabels, testLabels) + 1
	return &Split{
		Name:    name,
		Classes: classes,
		TrainX:  trainX,
		TrainY:  oneHot(trainLabels, classes),
		TestX:   testX,
		TestY:   oneHot(testLabels, classes),
	}, nil
}

func findDir(dirs []string, files IDXFileSet) (string, error) {
	names := []string{files.TrainImages, files.TrainLabels, files.TestImages, files.TestLabels}
	var lastErr error
	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		if dir[len(dir)-1] != '/' {
			dir += "/"
		}
		ok := true
		for _, name := range names {
			if _, err := os.Stat(dir + name); err != nil {
				lastErr = fmt.Errorf("datasets: file '%s' not found: %w", dir+name, err)
				ok = false
				break
			}
		}
		if ok {
			return dir, nil
		}
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("datasets: no search directories configured")
	}
	return "", lastErr
}

func readImagesFile(path, digest string) (*mat.Dense, error) {
	r, closer, err := openGz(path, digest)
	if err != nil {
		return nil, err
	}
	defer closer()
	return ReadIDXImages(r)
}

func readLabelsFile(path, digest string) ([]int, error) {
	r, closer, err := openGz(path, digest)
	if err != nil {
		return nil, err
	}
	defer closer()
	return ReadIDXLabels(r)
}

func openGz(path, digest string) (io.Reader, func(), error) {
	if digest != "" {
		if err := verifyDigest(path, digest); err != nil {
			return nil, nil, err
		}
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("datasets: cannot open '%s': %w", path, err)
	}
	gz, err := gzip.NewReader(f)
	if err != nil {
		f.Close()
		return nil, nil, fmt.Errorf("datasets: cannot gunzip '%s': %w", path, err)
	}
	return gz, func() { gz.Close(); f.Close() }, nil
}

func verifyDigest(path, digest string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("datasets: cannot open '%s' for checksum: %w", path, err)
	}
	defer f.Close()
	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return fmt.Errorf("datasets: cannot hash '%s': %w", path, err)
	}
	if got := fmt.Sprintf("%x", h.Sum(nil)); got != digest {
		return fmt.Errorf("datasets: checksum mismatch for '%s'", path)
	}
	return nil
}

func maxLabel(sets ...[]int) int {
	max := 0
	for _, set := range sets {
		for _, v := range set {
			if v > max {
				max = v
			}
		}
	}
	return max
}

func oneHot(labels []int, classes int) *mat.Dense {
	out := mat.NewDense(len(labels), classes, nil)
	for i, c := range labels {
		out.Set(i, c, 1)
	}
	return out
}
