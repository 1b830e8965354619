// Package glb encodes glTF binary containers (GLB).
package glb

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
)

// GLB errors.
var (
	ErrUnsupportedChunkType = errors.New("unsupported GLB chunk type")
)

// ChunkType identifies the contents of a GLB chunk.
type ChunkType uint32

// Chunk types defined by the glTF 2.0 binary format.
const (
	ChunkJSON ChunkType = 0x4E4F534A // "JSON"
	ChunkBIN  ChunkType = 0x004E4942 // "BIN\x00"
)

// String returns the ASCII tag of the chunk type.
func (t ChunkType) String() string {
	switch t {
	case ChunkJSON:
		return "JSON"
	case ChunkBIN:
		return "BIN"
	default:
		return fmt.Sprintf("Unknown(0x%08X)", uint32(t))
	}
}

// PaddingByte returns the byte used to align chunks of this type.
func (t ChunkType) PaddingByte() (byte, error) {
	switch t {
	case ChunkJSON:
		return 0x20, nil
	case ChunkBIN:
		return 0x00, nil
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedChunkType, t)
	}
}

// ChunkHeaderSize is the size of the length and type fields preceding
// chunk data.
const ChunkHeaderSize = 8

// Alignment is the byte boundary every chunk ends on.
const Alignment = 4

// PaddingFor returns the number of padding bytes needed so that a chunk
// holding a payload of n bytes ends on a 4-byte boundary.
func PaddingFor(n int) int {
	return (Alignment - (ChunkHeaderSize+n)%Alignment) % Alignment
}

// EncodeChunk wraps payload into a chunk of the given type.
//
// It returns the encoded chunk and the chunk size before padding
// (header plus payload).
func EncodeChunk(payload []byte, typ ChunkType) ([]byte, int, error) {
	pad, err := typ.PaddingByte()
	if err != nil {
		return nil, 0, err
	}

	rawSize := ChunkHeaderSize + len(payload)
	padding := PaddingFor(len(payload))

	buf := bytes.NewBuffer(make([]byte, 0, rawSize+padding))
	binary.Write(buf, binary.LittleEndian, uint32(len(payload)+padding))
	binary.Write(buf, binary.LittleEndian, uint32(typ))
	buf.Write(payload)
	buf.Write(bytes.Repeat([]byte{pad}, padding))

	return buf.Bytes(), rawSize, nil
}
