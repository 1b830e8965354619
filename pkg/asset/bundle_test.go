package asset

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDocument = `{
  "asset": {"version": "2.0"},
  "buffers": [{"uri": "model.bin", "byteLength": 6}],
  "bufferViews": [
    {"buffer": 0, "byteOffset": 0, "byteLength": 4},
    {"buffer": 0, "byteOffset": 4, "byteLength": 2}
  ],
  "images": [{"uri": "tex.png", "name": "albedo"}]
}`

// writeAsset creates a source directory holding the given files and returns
// the path of the glTF document inside it.
func writeAsset(t *testing.T, document string, files map[string][]byte) string {
	t.Helper()

	dir := t.TempDir()
	docPath := filepath.Join(dir, "model.gltf")
	require.NoError(t, os.WriteFile(docPath, []byte(document), 0644))
	for name, data := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), data, 0644))
	}
	return docPath
}

func TestMIMETypeFor(t *testing.T) {
	tests := []struct {
		ext  string
		mime string
		ok   bool
	}{
		{".png", MIMEPNG, true},
		{".PNG", MIMEPNG, true},
		{".jpg", MIMEJPEG, true},
		{".jpeg", MIMEJPEG, true},
		{".JPeG", MIMEJPEG, true},
		{".bin", "", false},
		{".gif", "", false},
		{"", "", false},
	}

	for _, tc := range tests {
		mime, ok := MIMETypeFor(tc.ext)
		assert.Equal(t, tc.mime, mime, tc.ext)
		assert.Equal(t, tc.ok, ok, tc.ext)
	}
}

func TestScan(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"model.bin", "b.png", "a.JPG", "c.jpeg", "notes.txt", "model.gltf"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.png"), 0755))

	res, err := Scan(dir)
	require.NoError(t, err)
	assert.Equal(t, "model.bin", res.Buffer)
	assert.Equal(t, []string{"a.JPG", "b.png", "c.jpeg"}, res.Textures)
}

func TestScan_MissingBinaryBuffer(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tex.png"), []byte("x"), 0644))

	_, err := Scan(dir)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingBinaryBuffer))

	var assetErr *Error
	require.True(t, errors.As(err, &assetErr))
	assert.Equal(t, dir, assetErr.Path)
}

func TestScan_AmbiguousBinaryBuffer(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.bin"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.BIN"), []byte("x"), 0644))

	_, err := Scan(dir)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrAmbiguousBinaryBuffer))
	assert.Contains(t, err.Error(), "a.bin, b.BIN")
}

func TestScan_MissingDirectory(t *testing.T) {
	_, err := Scan(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	docPath := writeAsset(t, testDocument, map[string][]byte{
		"model.bin": {1, 2, 3, 4, 5, 6},
		"tex.png":   {10, 11, 12, 13, 14},
	})

	bundle, err := Load(docPath, "")
	require.NoError(t, err)

	assert.Equal(t, "model.bin", bundle.BufferName)
	assert.Equal(t, []byte{1, 2, 3, 4, 5, 6}, bundle.Buffer)
	require.Len(t, bundle.Textures, 1)
	assert.Equal(t, Texture{Name: "tex.png", MIMEType: MIMEPNG, Data: []byte{10, 11, 12, 13, 14}}, bundle.Textures[0])
	require.Len(t, bundle.Document.BufferViews, 2)
}

func TestLoad_SeparateSourceDir(t *testing.T) {
	docPath := writeAsset(t, testDocument, nil)
	srcDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(srcDir, "data.bin"), []byte{1, 2, 3, 4, 5, 6}, 0644))

	bundle, err := Load(docPath, srcDir)
	require.NoError(t, err)
	assert.Equal(t, "data.bin", bundle.BufferName)
	assert.Empty(t, bundle.Textures)
}

func TestLoad_MissingBinaryBuffer(t *testing.T) {
	docPath := writeAsset(t, testDocument, map[string][]byte{
		"tex.png": {1},
	})

	bundle, err := Load(docPath, "")
	assert.Nil(t, bundle)
	assert.ErrorIs(t, err, ErrMissingBinaryBuffer)
}

func TestLoad_InvalidDocument(t *testing.T) {
	docPath := writeAsset(t, `{"buffers": `, map[string][]byte{
		"model.bin": {1},
	})

	_, err := Load(docPath, "")
	assert.Error(t, err)
}

func TestError_Message(t *testing.T) {
	err := &Error{Kind: ErrInvalidLayout, Index: 2, Detail: "bufferView references buffer 1"}
	assert.Equal(t, "invalid buffer layout (index 2): bufferView references buffer 1", err.Error())

	err = &Error{Kind: ErrImageReferenceNotFound, Path: "tex.png", Index: -1}
	assert.Equal(t, "image reference not found: tex.png", err.Error())
}
