package datasets

import "encoding/binary"
import "fmt"
import "io"

import "gonum.org/v1/gonum/mat"

const (
	idxMagicLabels = 0x00000801
	idxMagicImages = 0x00000803
)

// ReadIDXImages parses an IDX3 image file (the MNIST family format) into a
// samples-by-pixels matrix with pixel values scaled to [0,1].
func ReadIDXImages(r io.Reader) (*mat.Dense, error) {
	var header [4]uint32
	if err := binary.Read(r, binary.BigEndian, header[:]); err != nil {
		return nil, fmt.Errorf("datasets: reading idx image header: %w", err)
	}
	if header[0] != idxMagicImages {
		return nil, fmt.Errorf("datasets: bad idx image magic %#08x", header[0])
	}
	count, rows, cols := int(header[1]), int(header[2]), int(header[3])
	if count <= 0 || rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("datasets: bad idx image dimensions %dx%dx%d", count, rows, cols)
	}

	raw := make([]byte, count*rows*cols)
	if _, err := io.ReadFull(r, raw); err != nil {
		return nil, fmt.Errorf("datasets: reading idx image pixels: %w", err)
	}
	data := make([]float64, len(raw))
	for i, b := range raw {
		data[i] = float64(b) / 255
	}
	return mat.NewDense(count, rows*cols, data), nil
}

// ReadIDXLabels parses an IDX1 label file into class indices.
func ReadIDXLabels(r io.Reader) ([]int, error) {
	var header [2]uint32
	if err := binary.Read(r, binary.BigEndian, header[:]); err != nil {
		return nil, fmt.Errorf("datasets: reading idx label header: %w", err)
	}
	if header[0] != idxMagicLabels {
		return nil, fmt.Errorf("datasets: bad idx label magic %#08x", header[0])
	}
	count := int(header[1])
	if count <= 0 {
		return nil, fmt.Errorf("datasets: bad idx label count %d", count)
	}

	raw := make([]byte, count)
	if _, err := io.ReadFull(r, raw); err != nil {
		return nil, fmt.Errorf("datasets: reading idx labels: %w", err)
	}
	labels := make([]int, count)
	for i, b := range raw {
		labels[i] = int(b)
	}
	return labels, nil
}
