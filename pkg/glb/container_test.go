package glb

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"strings"
	"testing"

	"github.com/Faultbox/glbpack/pkg/gltf"
)

type testChunk struct {
	Length uint32
	Type   ChunkType
	Data   []byte
}

// splitContainer parses a GLB blob into its header and chunks.
func splitContainer(t *testing.T, data []byte) (Header, []testChunk) {
	t.Helper()

	r := bytes.NewReader(data)
	var h Header
	if err := binary.Read(r, binary.LittleEndian, &h); err != nil {
		t.Fatalf("reading header: %v", err)
	}

	var chunks []testChunk
	for r.Len() > 0 {
		var c testChunk
		if err := binary.Read(r, binary.LittleEndian, &c.Length); err != nil {
			t.Fatalf("reading chunk length: %v", err)
		}
		if err := binary.Read(r, binary.LittleEndian, &c.Type); err != nil {
			t.Fatalf("reading chunk type: %v", err)
		}
		c.Data = make([]byte, c.Length)
		if _, err := r.Read(c.Data); err != nil && c.Length > 0 {
			t.Fatalf("reading chunk data: %v", err)
		}
		chunks = append(chunks, c)
	}
	return h, chunks
}

func TestEncode_Header(t *testing.T) {
	data, err := Encode([]byte(`{"asset":{"version":"2.0"}}`), []byte{1, 2, 3, 4, 5, 6})
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	if !bytes.Equal(data[0:4], []byte("glTF")) {
		t.Errorf("expected magic 'glTF', got %q", data[0:4])
	}

	h, chunks := splitContainer(t, data)
	if h.Magic != Magic {
		t.Errorf("expected magic 0x%08X, got 0x%08X", Magic, h.Magic)
	}
	if h.Version != 2 {
		t.Errorf("expected version 2, got %d", h.Version)
	}
	if int(h.Length) != len(data) {
		t.Errorf("header length %d does not match container size %d", h.Length, len(data))
	}

	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(chunks))
	}
	want := uint32(12 + 8 + chunks[0].Length + 8 + chunks[1].Length)
	if h.Length != want {
		t.Errorf("expected total length %d, got %d", want, h.Length)
	}
}

func TestEncode_ChunkOrder(t *testing.T) {
	data, err := Encode([]byte(`{}`), []byte{0xFF})
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	_, chunks := splitContainer(t, data)
	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(chunks))
	}
	if chunks[0].Type != ChunkJSON {
		t.Errorf("expected JSON chunk first, got %s", chunks[0].Type)
	}
	if chunks[1].Type != ChunkBIN {
		t.Errorf("expected BIN chunk second, got %s", chunks[1].Type)
	}
	if !bytes.Equal(chunks[0].Data, []byte("{}  ")) {
		t.Errorf("unexpected JSON chunk data %q", chunks[0].Data)
	}
	if !bytes.Equal(chunks[1].Data, []byte{0xFF, 0, 0, 0}) {
		t.Errorf("unexpected BIN chunk data %v", chunks[1].Data)
	}
}

func TestEncode_EmptyBuffer(t *testing.T) {
	data, err := Encode([]byte(`{"a":"01234567"}`), nil)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	// 12 header + 24 JSON chunk + 8 empty BIN chunk
	if len(data) != 44 {
		t.Errorf("expected 44 bytes, got %d", len(data))
	}
}

func TestEncodeDocument(t *testing.T) {
	doc, err := gltf.Decode(strings.NewReader(`{
  "asset": {"version": "2.0"},
  "buffers": [{"byteLength": 3}]
}`))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	data, err := EncodeDocument(doc, []byte{1, 2, 3})
	if err != nil {
		t.Fatalf("EncodeDocument failed: %v", err)
	}

	_, chunks := splitContainer(t, data)
	jsonText := bytes.TrimRight(chunks[0].Data, " ")

	var parsed map[string]any
	if err := json.Unmarshal(jsonText, &parsed); err != nil {
		t.Fatalf("JSON chunk is not valid JSON: %v", err)
	}
	if _, ok := parsed["asset"]; !ok {
		t.Error("asset property missing from JSON chunk")
	}
	if bytes.ContainsAny(jsonText, "\n") {
		t.Error("JSON chunk should be compact")
	}
	if !bytes.Equal(chunks[1].Data, []byte{1, 2, 3, 0}) {
		t.Errorf("unexpected BIN chunk data %v", chunks[1].Data)
	}
}

func TestWrite(t *testing.T) {
	doc := &gltf.Document{Buffers: []*gltf.Buffer{{ByteLength: 1}}}

	var buf bytes.Buffer
	n, err := Write(&buf, doc, []byte{7})
	if err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if n != buf.Len() {
		t.Errorf("reported %d bytes, buffer holds %d", n, buf.Len())
	}
	if buf.Len()%4 != 0 {
		t.Errorf("container size %d not aligned", buf.Len())
	}
}
