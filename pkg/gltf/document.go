// Package gltf provides a typed model of the glTF 2.0 JSON document.
//
// Only the objects that take part in binary packing and root scaling are
// typed. Every other property is preserved verbatim so that a decoded
// document re-encodes without losing meshes, materials or extensions.
package gltf

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Document is a glTF 2.0 JSON document.
type Document struct {
	Buffers     []*Buffer     `json:"buffers,omitempty"`
	BufferViews []*BufferView `json:"bufferViews,omitempty"`
	Images      []*Image      `json:"images,omitempty"`
	Accessors   []*Accessor   `json:"accessors,omitempty"`
	Nodes       []*Node       `json:"nodes,omitempty"`

	// Other holds the remaining top-level properties (asset, scenes,
	// meshes, materials, textures, ...).
	Other Fields `json:"-"`
}

// Buffer points to binary geometry, animation or skin data.
type Buffer struct {
	URI        string `json:"uri,omitempty"`
	ByteLength int    `json:"byteLength"`
	Extra      Fields `json:"-"`
}

// BufferView is a view into a buffer.
type BufferView struct {
	Buffer     int    `json:"buffer"`
	ByteOffset int    `json:"byteOffset"`
	ByteLength int    `json:"byteLength"`
	Extra      Fields `json:"-"`
}

// End returns the offset one past the last byte addressed by the view.
func (v *BufferView) End() int {
	return v.ByteOffset + v.ByteLength
}

// Image is an image referenced by a texture, either through an external
// URI or through a buffer view.
type Image struct {
	URI        string `json:"uri,omitempty"`
	MIMEType   string `json:"mimeType,omitempty"`
	Name       string `json:"name,omitempty"`
	BufferView *int   `json:"bufferView,omitempty"`
	Extra      Fields `json:"-"`
}

// Accessor is a typed view into a buffer view. Only the bounds are
// interpreted.
type Accessor struct {
	Min   []float64 `json:"min,omitempty"`
	Max   []float64 `json:"max,omitempty"`
	Extra Fields    `json:"-"`
}

// Node is a scene graph node. Only the scale is interpreted.
type Node struct {
	Scale []float64 `json:"scale,omitempty"`
	Extra Fields    `json:"-"`
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Document) UnmarshalJSON(data []byte) error {
	type plain Document
	other, err := decodeObject(data, (*plain)(d), "buffers", "bufferViews", "images", "accessors", "nodes")
	if err != nil {
		return err
	}
	d.Other = other
	return nil
}

// MarshalJSON implements json.Marshaler.
func (d Document) MarshalJSON() ([]byte, error) {
	type plain Document
	return encodeObject(plain(d), d.Other)
}

// UnmarshalJSON implements json.Unmarshaler.
func (b *Buffer) UnmarshalJSON(data []byte) error {
	type plain Buffer
	extra, err := decodeObject(data, (*plain)(b), "uri", "byteLength")
	if err != nil {
		return err
	}
	b.Extra = extra
	return nil
}

// MarshalJSON implements json.Marshaler.
func (b Buffer) MarshalJSON() ([]byte, error) {
	type plain Buffer
	return encodeObject(plain(b), b.Extra)
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *BufferView) UnmarshalJSON(data []byte) error {
	type plain BufferView
	extra, err := decodeObject(data, (*plain)(v), "buffer", "byteOffset", "byteLength")
	if err != nil {
		return err
	}
	v.Extra = extra
	return nil
}

// MarshalJSON implements json.Marshaler.
func (v BufferView) MarshalJSON() ([]byte, error) {
	type plain BufferView
	return encodeObject(plain(v), v.Extra)
}

// UnmarshalJSON implements json.Unmarshaler.
func (img *Image) UnmarshalJSON(data []byte) error {
	type plain Image
	extra, err := decodeObject(data, (*plain)(img), "uri", "mimeType", "name", "bufferView")
	if err != nil {
		return err
	}
	img.Extra = extra
	return nil
}

// MarshalJSON implements json.Marshaler.
func (img Image) MarshalJSON() ([]byte, error) {
	type plain Image
	return encodeObject(plain(img), img.Extra)
}

// UnmarshalJSON implements json.Unmarshaler.
func (a *Accessor) UnmarshalJSON(data []byte) error {
	type plain Accessor
	extra, err := decodeObject(data, (*plain)(a), "min", "max")
	if err != nil {
		return err
	}
	a.Extra = extra
	return nil
}

// MarshalJSON implements json.Marshaler.
func (a Accessor) MarshalJSON() ([]byte, error) {
	type plain Accessor
	return encodeObject(plain(a), a.Extra)
}

// UnmarshalJSON implements json.Unmarshaler.
func (n *Node) UnmarshalJSON(data []byte) error {
	type plain Node
	extra, err := decodeObject(data, (*plain)(n), "scale")
	if err != nil {
		return err
	}
	n.Extra = extra
	return nil
}

// MarshalJSON implements json.Marshaler.
func (n Node) MarshalJSON() ([]byte, error) {
	type plain Node
	return encodeObject(plain(n), n.Extra)
}

// AppendBufferView appends v and returns its index.
func (d *Document) AppendBufferView(v *BufferView) int {
	d.BufferViews = append(d.BufferViews, v)
	return len(d.BufferViews) - 1
}

// FindImageByURI returns the index of the first image whose URI equals uri,
// or -1. Images without a URI are skipped.
func (d *Document) FindImageByURI(uri string) int {
	for i, img := range d.Images {
		if img == nil || img.URI == "" {
			continue
		}
		if img.URI == uri {
			return i
		}
	}
	return -1
}

// Decode reads a glTF JSON document from r.
// A leading byte order mark is honoured and stripped.
func Decode(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(transform.NewReader(r, unicode.BOMOverride(transform.Nop)))
	if err != nil {
		return nil, fmt.Errorf("reading document: %w", err)
	}

	doc := &Document{}
	if err := json.Unmarshal(data, doc); err != nil {
		return nil, fmt.Errorf("parsing document: %w", err)
	}
	return doc, nil
}

// DecodeFile reads a glTF JSON document from disk.
func DecodeFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening glTF file: %w", err)
	}
	defer f.Close()

	return Decode(f)
}

// Marshal returns the compact UTF-8 JSON encoding of doc.
func Marshal(doc *Document) ([]byte, error) {
	return marshal(doc)
}

// MarshalIndent is like Marshal but indents the output.
func MarshalIndent(doc *Document, indent string) ([]byte, error) {
	data, err := marshal(doc)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, data, "", indent); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteFile writes doc to path as indented JSON.
func WriteFile(path string, doc *Document) error {
	data, err := MarshalIndent(doc, "  ")
	if err != nil {
		return fmt.Errorf("encoding document: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}
