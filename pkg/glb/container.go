package glb

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/Faultbox/glbpack/pkg/gltf"
)

// Header constants.
const (
	Magic      uint32 = 0x46546C67 // "glTF"
	Version    uint32 = 2
	HeaderSize        = 12
)

// Header is the 12-byte GLB file header.
type Header struct {
	Magic   uint32
	Version uint32
	Length  uint32
}

// Encode assembles a GLB container from a serialized JSON document and
// the binary buffer. The JSON chunk always precedes the BIN chunk.
func Encode(jsonData, bin []byte) ([]byte, error) {
	jsonChunk, _, err := EncodeChunk(jsonData, ChunkJSON)
	if err != nil {
		return nil, fmt.Errorf("encoding JSON chunk: %w", err)
	}

	binChunk, _, err := EncodeChunk(bin, ChunkBIN)
	if err != nil {
		return nil, fmt.Errorf("encoding BIN chunk: %w", err)
	}

	header := Header{
		Magic:   Magic,
		Version: Version,
		Length:  uint32(HeaderSize + len(jsonChunk) + len(binChunk)),
	}

	buf := bytes.NewBuffer(make([]byte, 0, header.Length))
	if err := binary.Write(buf, binary.LittleEndian, header); err != nil {
		return nil, fmt.Errorf("writing header: %w", err)
	}
	buf.Write(jsonChunk)
	buf.Write(binChunk)

	return buf.Bytes(), nil
}

// EncodeDocument serializes doc to compact JSON and assembles it with bin.
func EncodeDocument(doc *gltf.Document, bin []byte) ([]byte, error) {
	jsonData, err := gltf.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("serializing document: %w", err)
	}
	return Encode(jsonData, bin)
}

// Write encodes doc and bin as a GLB container into w and returns the
// number of bytes written.
func Write(w io.Writer, doc *gltf.Document, bin []byte) (int, error) {
	data, err := EncodeDocument(doc, bin)
	if err != nil {
		return 0, err
	}
	return w.Write(data)
}
