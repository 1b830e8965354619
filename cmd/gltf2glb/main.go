// gltf2glb packs a glTF asset with its external buffer and textures into a
// single GLB file.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"go.uber.org/zap"

	"github.com/Faultbox/glbpack/internal/config"
	"github.com/Faultbox/glbpack/internal/logger"
	"github.com/Faultbox/glbpack/internal/pack"
)

func main() {
	flag.Usage = printUsage
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Sugar.Debugf("Config: %+v", cfg)

	if config.SaveRequested() {
		if err := cfg.Save(); err != nil {
			fail("failed to save config", err)
		}
		logger.Info("saved config", zap.String("dir", config.ConfigDir()))
		if len(config.Args()) == 0 {
			return
		}
	}

	args := config.Args()
	if len(args) != 2 {
		printUsage()
		logger.Sync()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	res, err := pack.Run(ctx, pack.Options{
		Source:         args[0],
		Destination:    args[1],
		SourceDir:      cfg.Pack.SourceDir,
		DebugJSON:      cfg.Pack.DebugJSON,
		VerifyTextures: cfg.Pack.VerifyTextures,
	})
	if err != nil {
		fail("packing failed", err)
	}

	fmt.Printf("%s %d bytes %s\n", res.Path, res.Size, res.Digest)
}

func fail(msg string, err error) {
	logger.Error(msg, zap.Error(err))
	logger.Sync()
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

func printUsage() {
	fmt.Fprintln(os.Stderr, `gltf2glb - pack a glTF asset into a GLB container

Usage:
  gltf2glb [options] <src.gltf> <dst.glb>

The directory given by --src_dir (default: the directory of src.gltf) must
hold exactly one .bin file. Every .png, .jpg and .jpeg file in it is embedded
and must be referenced by an image URI in the document.

Options:`)
	flag.PrintDefaults()
}
