package datasets_test

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kernelmethods/svmbench/datasets"
)

func idxImages(t *testing.T, rows, cols int, pixels ...byte) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	count := len(pixels) / (rows * cols)
	require.NoError(t, binary.Write(&buf, binary.BigEndian,
		[]uint32{0x00000803, uint32(count), uint32(rows), uint32(cols)}))
	buf.Write(pixels)
	return &buf
}

func idxLabels(t *testing.T, labels ...byte) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, binary.Write(&buf, binary.BigEndian,
		[]uint32{0x00000801, uint32(len(labels))}))
	buf.Write(labels)
	return &buf
}

func TestReadIDXImages(t *testing.T) {
	x, err := datasets.ReadIDXImages(idxImages(t, 2, 2,
		0, 51, 102, 255,
		255, 0, 0, 0,
	))
	require.NoError(t, err)

	n, d := x.Dims()
	require.Equal(t, 2, n)
	require.Equal(t, 4, d)
	require.InDelta(t, 0.0, x.At(0, 0), 1e-12)
	require.InDelta(t, 0.2, x.At(0, 1), 1e-12)
	require.InDelta(t, 0.4, x.At(0, 2), 1e-12)
	require.InDelta(t, 1.0, x.At(0, 3), 1e-12)
	require.InDelta(t, 1.0, x.At(1, 0), 1e-12)
}

func TestReadIDXImagesBadMagic(t *testing.T) {
	buf := idxLabels(t, 1, 2)
	_, err := datasets.ReadIDXImages(buf)
	require.Error(t, err)
}

func TestReadIDXImagesTruncated(t *testing.T) {
	buf := idxImages(t, 2, 2, 0, 51, 102, 255)
	truncated := bytes.NewReader(buf.Bytes()[:len(buf.Bytes())-2])
	_, err := datasets.ReadIDXImages(truncated)
	require.Error(t, err)
}

func TestReadIDXLabels(t *testing.T) {
	labels, err := datasets.ReadIDXLabels(idxLabels(t, 7, 0, 9, 3))
	require.NoError(t, err)
	require.Equal(t, []int{7, 0, 9, 3}, labels)
}

func TestReadIDXLabelsBadMagic(t *testing.T) {
	buf := idxImages(t, 1, 1, 0)
	_, err := datasets.ReadIDXLabels(buf)
	require.Error(t, err)
}
