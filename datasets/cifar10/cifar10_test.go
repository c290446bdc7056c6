package cifar10_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kernelmethods/svmbench/datasets/cifar10"
)

const imgPixels = 1024

func record(label byte, r, g, b byte) []byte {
	rec := make([]byte, 1+3*imgPixels)
	rec[0] = label
	for p := 0; p < imgPixels; p++ {
		rec[1+p] = r
		rec[1+imgPixels+p] = g
		rec[1+2*imgPixels+p] = b
	}
	return rec
}

func TestReadBatch(t *testing.T) {
	var buf bytes.Buffer
	buf.Write(record(3, 255, 255, 255))
	buf.Write(record(9, 0, 0, 0))

	x, labels, err := cifar10.ReadBatch(&buf)
	require.NoError(t, err)
	require.Equal(t, []int{3, 9}, labels)

	n, d := x.Dims()
	require.Equal(t, 2, n)
	require.Equal(t, imgPixels, d)
	require.InDelta(t, 1.0, x.At(0, 0), 1e-12, "white pixel maps to 1")
	require.InDelta(t, 0.0, x.At(1, 0), 1e-12, "black pixel maps to 0")
}

// Grayscale reduction uses integer luma weights: pure red 255 maps to
// floor(255*0.299) = 76.
func TestReadBatchLumaWeights(t *testing.T) {
	var buf bytes.Buffer
	buf.Write(record(0, 255, 0, 0))

	x, _, err := cifar10.ReadBatch(&buf)
	require.NoError(t, err)
	require.InDelta(t, 76.0/255.0, x.At(0, 0), 1e-12)
}

func TestReadBatchShortRecord(t *testing.T) {
	var buf bytes.Buffer
	buf.Write(record(1, 9, 9, 9)[:100])
	_, _, err := cifar10.ReadBatch(&buf)
	require.Error(t, err)
}

func TestReadBatchBadLabel(t *testing.T) {
	var buf bytes.Buffer
	buf.Write(record(200, 1, 1, 1))
	_, _, err := cifar10.ReadBatch(&buf)
	require.Error(t, err)
}

func TestReadBatchEmpty(t *testing.T) {
	_, _, err := cifar10.ReadBatch(&bytes.Buffer{})
	require.Error(t, err)
}
