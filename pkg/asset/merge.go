package asset

import (
	"github.com/Faultbox/glbpack/pkg/gltf"
)

// MergeResult summarizes a completed merge.
type MergeResult struct {
	Textures     int // number of textures folded into the buffer
	BufferLength int // unpadded length of the merged buffer
}

// CheckLayout verifies the assumptions Merge relies on: a single buffer,
// every bufferView on buffer 0, views sorted by offset and inside the
// buffer, and the last view ending exactly at the end of the buffer.
func (b *Bundle) CheckLayout() error {
	doc := b.Document
	if len(doc.Buffers) != 1 || doc.Buffers[0] == nil {
		return layoutError(-1, "expected exactly one buffer, document declares %d", len(doc.Buffers))
	}

	end := 0
	for i, view := range doc.BufferViews {
		if view == nil {
			return layoutError(i, "bufferView is null")
		}
		if view.Buffer != 0 {
			return layoutError(i, "bufferView references buffer %d", view.Buffer)
		}
		if view.ByteOffset < 0 || view.ByteLength < 0 {
			return layoutError(i, "negative offset or length")
		}
		if i > 0 && view.ByteOffset < doc.BufferViews[i-1].ByteOffset {
			return layoutError(i, "bufferViews are not sorted by byteOffset")
		}
		if view.End() > len(b.Buffer) {
			return layoutError(i, "bufferView ends at %d, buffer holds %d bytes", view.End(), len(b.Buffer))
		}
		end = view.End()
	}

	if end != len(b.Buffer) {
		return layoutError(len(doc.BufferViews)-1,
			"last bufferView ends at %d, buffer holds %d bytes", end, len(b.Buffer))
	}
	return nil
}

// Merge folds every texture into the binary buffer.
//
// For each texture a bufferView is appended directly after the last one,
// the image whose URI equals the texture name is rewritten to reference
// that view, and the texture bytes are appended to the buffer. Finally the
// buffer's byteLength is updated and its URI removed.
//
// Merge stops at the first error; changes already applied are kept.
func (b *Bundle) Merge() (*MergeResult, error) {
	if err := b.CheckLayout(); err != nil {
		return nil, err
	}

	doc := b.Document
	for _, tex := range b.Textures {
		offset := 0
		if n := len(doc.BufferViews); n > 0 {
			offset = doc.BufferViews[n-1].End()
		}

		view := doc.AppendBufferView(&gltf.BufferView{
			Buffer:     0,
			ByteOffset: offset,
			ByteLength: len(tex.Data),
		})

		idx := doc.FindImageByURI(tex.Name)
		if idx < 0 {
			return nil, &Error{Kind: ErrImageReferenceNotFound, Path: tex.Name, Index: -1}
		}
		doc.Images[idx] = &gltf.Image{
			MIMEType:   tex.MIMEType,
			Name:       doc.Images[idx].Name,
			BufferView: &view,
		}

		b.Buffer = append(b.Buffer, tex.Data...)
	}

	doc.Buffers[0].ByteLength = len(b.Buffer)
	doc.Buffers[0].URI = ""

	return &MergeResult{
		Textures:     len(b.Textures),
		BufferLength: len(b.Buffer),
	}, nil
}
