package object

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteReadRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	image := []uint16{0x1020, 0x0010, 0x6400, 0x0000}
	require.NoError(t, Write(&buf, 0x0002, image))

	obj, err := Read(&buf)
	require.NoError(t, err)
	assert.Equal(t, uint16(0x0002), obj.Entry)
	assert.Equal(t, image, obj.Image)
}

func TestReadRejectsBadSignature(t *testing.T) {
	raw := make([]byte, 16)
	_, err := Read(bytes.NewReader(raw))
	require.Error(t, err)
}

func TestReadRejectsTooShort(t *testing.T) {
	_, err := Read(bytes.NewReader([]byte{0, 1, 2}))
	require.Error(t, err)
}

func TestHeaderReservedWordsAreZero(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, 0, nil))
	raw := buf.Bytes()
	require.Len(t, raw, HeaderWords*2)
	assert.Equal(t, make([]byte, 10), raw[6:16], "header words 3..7 must be zero")
	obj, err := Read(bytes.NewReader(raw))
	require.NoError(t, err)
	assert.Empty(t, obj.Image)
}
