package asset

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg" // register JPEG header decoder
	_ "image/png"  // register PNG header decoder
)

// formatMIME maps image.DecodeConfig format names to MIME types.
var formatMIME = map[string]string{
	"png":  MIMEPNG,
	"jpeg": MIMEJPEG,
}

// Inspect decodes the texture's image header and checks that the encoded
// format agrees with the MIME type derived from the file extension.
func (t *Texture) Inspect() (image.Config, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(t.Data))
	if err != nil {
		return image.Config{}, &Error{Kind: ErrInvalidTexture, Path: t.Name, Index: -1, Detail: err.Error()}
	}

	if mime := formatMIME[format]; mime != t.MIMEType {
		return image.Config{}, &Error{
			Kind:   ErrInvalidTexture,
			Path:   t.Name,
			Index:  -1,
			Detail: fmt.Sprintf("declared %s but data is %s", t.MIMEType, format),
		}
	}

	return cfg, nil
}
