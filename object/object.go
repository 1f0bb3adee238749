// Package object implements the COMET II object file format: an
// 8-word big-endian header followed by the program image, exactly as
// written by casl2as and read back by comet2.
package object

import (
	"encoding/binary"
	"fmt"
	"io"
)

// HeaderWords is the fixed size, in words, of an object file's
// header.
const HeaderWords = 8

// Magic0 and Magic1 are the two ASCII-pair signature words 'CA' and
// 'SL' that open every object file.
const (
	Magic0 uint16 = 0x4341 // "CA"
	Magic1 uint16 = 0x534C // "SL"
)

// Object is a fully decoded object file: its entry address and the
// program image that follows the header, meant to be loaded starting
// at memory address 0.
type Object struct {
	Entry uint16
	Image []uint16
}

// Write encodes header+image as big-endian 16-bit words to w.
func Write(w io.Writer, entry uint16, image []uint16) error {
	header := make([]uint16, HeaderWords)
	header[0] = Magic0
	header[1] = Magic1
	header[2] = entry
	// header[3..7] are reserved and left zero.

	if err := writeWords(w, header); err != nil {
		return fmt.Errorf("writing object header: %w", err)
	}
	if err := writeWords(w, image); err != nil {
		return fmt.Errorf("writing object image: %w", err)
	}
	return nil
}

func writeWords(w io.Writer, words []uint16) error {
	buf := make([]byte, len(words)*2)
	for i, v := range words {
		binary.BigEndian.PutUint16(buf[i*2:], v)
	}
	_, err := w.Write(buf)
	return err
}

// Read decodes a full object file from r: the 8-word header (whose
// first two words must be the 'CA'/'SL' signature) and the remaining
// program image.
func Read(r io.Reader) (*Object, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading object file: %w", err)
	}
	if len(raw)%2 != 0 {
		return nil, fmt.Errorf("object file has an odd number of bytes (%d)", len(raw))
	}
	words := make([]uint16, len(raw)/2)
	for i := range words {
		words[i] = binary.BigEndian.Uint16(raw[i*2:])
	}
	if len(words) < HeaderWords {
		return nil, fmt.Errorf("object file too short: %d words, need at least %d", len(words), HeaderWords)
	}
	if words[0] != Magic0 || words[1] != Magic1 {
		return nil, fmt.Errorf("not a COMET II object file: bad signature #%04x#%04x", words[0], words[1])
	}

	return &Object{
		Entry: words[2],
		Image: words[HeaderWords:],
	}, nil
}
