// Package asset loads glTF assets with their external resources and folds
// those resources into a single binary buffer.
package asset

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Faultbox/glbpack/pkg/gltf"
)

// Texture MIME types.
const (
	MIMEPNG  = "image/png"
	MIMEJPEG = "image/jpeg"
)

// Texture is an external image file loaded from the source directory.
type Texture struct {
	Name     string // file name, matched against image URIs
	MIMEType string
	Data     []byte
}

// Bundle is a glTF document together with its binary buffer and textures.
type Bundle struct {
	Document   *gltf.Document
	Buffer     []byte
	BufferName string
	Textures   []Texture
}

// MIMETypeFor returns the texture MIME type for a file extension.
// The comparison is case-insensitive.
func MIMETypeFor(ext string) (string, bool) {
	switch strings.ToLower(ext) {
	case ".png":
		return MIMEPNG, true
	case ".jpg", ".jpeg":
		return MIMEJPEG, true
	default:
		return "", false
	}
}

// Resources lists the binary buffer and texture files of a directory.
type Resources struct {
	Buffer   string
	Textures []string
}

// Scan finds the binary buffer and texture files in dir.
// Entries are visited in name order; subdirectories are ignored.
// Exactly one .bin file must be present.
func Scan(dir string) (*Resources, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading source directory: %w", err)
	}

	res := &Resources{}
	var buffers []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		ext := filepath.Ext(name)
		if strings.EqualFold(ext, ".bin") {
			buffers = append(buffers, name)
			continue
		}
		if _, ok := MIMETypeFor(ext); ok {
			res.Textures = append(res.Textures, name)
		}
	}

	switch len(buffers) {
	case 0:
		return nil, &Error{Kind: ErrMissingBinaryBuffer, Path: dir, Index: -1}
	case 1:
		res.Buffer = buffers[0]
	default:
		return nil, &Error{
			Kind:   ErrAmbiguousBinaryBuffer,
			Path:   dir,
			Index:  -1,
			Detail: strings.Join(buffers, ", "),
		}
	}

	return res, nil
}

// Load reads the glTF document at docPath and the resources of srcDir.
// When srcDir is empty the document's directory is used.
func Load(docPath, srcDir string) (*Bundle, error) {
	if srcDir == "" {
		srcDir = filepath.Dir(docPath)
	}

	doc, err := gltf.DecodeFile(docPath)
	if err != nil {
		return nil, err
	}

	res, err := Scan(srcDir)
	if err != nil {
		return nil, err
	}

	bundle := &Bundle{
		Document:   doc,
		BufferName: res.Buffer,
	}

	bundle.Buffer, err = os.ReadFile(filepath.Join(srcDir, res.Buffer))
	if err != nil {
		return nil, fmt.Errorf("reading binary buffer: %w", err)
	}

	for _, name := range res.Textures {
		data, err := os.ReadFile(filepath.Join(srcDir, name))
		if err != nil {
			return nil, fmt.Errorf("reading texture %s: %w", name, err)
		}
		mime, _ := MIMETypeFor(filepath.Ext(name))
		bundle.Textures = append(bundle.Textures, Texture{
			Name:     name,
			MIMEType: mime,
			Data:     data,
		})
	}

	return bundle, nil
}
