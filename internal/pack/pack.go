// Package pack runs the glTF to GLB packaging pipeline.
package pack

import (
	"context"
	_ "crypto/sha256" // digest.Canonical uses the registered SHA-256
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/opencontainers/go-digest"
	"go.uber.org/zap"

	"github.com/Faultbox/glbpack/internal/logger"
	"github.com/Faultbox/glbpack/pkg/asset"
	"github.com/Faultbox/glbpack/pkg/glb"
	"github.com/Faultbox/glbpack/pkg/gltf"
)

// Options describes one packaging run.
type Options struct {
	Source         string // path to the .gltf document
	Destination    string // path of the .glb to write
	SourceDir      string // directory with .bin and textures; empty = Source's directory
	DebugJSON      string // write the merged document here when set
	VerifyTextures bool
}

// Result describes the written container.
type Result struct {
	Path     string
	Size     int
	Textures int
	Digest   digest.Digest
}

// Run loads the asset, merges its textures into the binary buffer and
// writes the GLB container. Nothing is left at the destination when Run
// fails.
func Run(ctx context.Context, opts Options) (*Result, error) {
	start := time.Now()
	log := logger.Log.With(zap.String("run", uuid.NewString()))

	srcDir := opts.SourceDir
	if srcDir == "" {
		srcDir = filepath.Dir(opts.Source)
	}
	log.Info("Packing asset",
		zap.String("src", opts.Source),
		zap.String("src_dir", srcDir),
		zap.String("dst", opts.Destination))

	bundle, err := asset.Load(opts.Source, srcDir)
	if err != nil {
		return nil, fmt.Errorf("loading asset: %w", err)
	}
	log.Debug("Loaded asset",
		zap.String("buffer", bundle.BufferName),
		zap.Int("buffer_bytes", len(bundle.Buffer)),
		zap.Int("textures", len(bundle.Textures)))

	if opts.VerifyTextures {
		for i := range bundle.Textures {
			tex := &bundle.Textures[i]
			cfg, err := tex.Inspect()
			if err != nil {
				return nil, err
			}
			log.Debug("Verified texture",
				zap.String("name", tex.Name),
				zap.String("mime", tex.MIMEType),
				zap.Int("width", cfg.Width),
				zap.Int("height", cfg.Height))
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	merged, err := bundle.Merge()
	if err != nil {
		return nil, fmt.Errorf("merging textures: %w", err)
	}
	log.Info("Merged textures",
		zap.Int("textures", merged.Textures),
		zap.Int("buffer_bytes", merged.BufferLength))

	if opts.DebugJSON != "" {
		if err := gltf.WriteFile(opts.DebugJSON, bundle.Document); err != nil {
			return nil, fmt.Errorf("writing debug JSON: %w", err)
		}
		log.Debug("Wrote merged document", zap.String("path", opts.DebugJSON))
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	digester := digest.Canonical.Digester()
	var size int
	err = writeAtomic(opts.Destination, func(w io.Writer) error {
		n, err := glb.Write(io.MultiWriter(w, digester.Hash()), bundle.Document, bundle.Buffer)
		size = n
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("writing %s: %w", opts.Destination, err)
	}

	res := &Result{
		Path:     opts.Destination,
		Size:     size,
		Textures: merged.Textures,
		Digest:   digester.Digest(),
	}
	log.Info("Wrote container",
		zap.String("path", res.Path),
		zap.Int("bytes", res.Size),
		zap.Stringer("digest", res.Digest),
		zap.Duration("elapsed", time.Since(start)))

	return res, nil
}

// writeAtomic runs write against a temporary file next to path and renames
// it into place once it is fully synced.
func writeAtomic(path string, write func(io.Writer) error) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if err = write(tmp); err != nil {
		return err
	}
	if err = tmp.Sync(); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	if err = os.Chmod(tmp.Name(), 0644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
