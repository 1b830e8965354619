// gltfscale scales the root node of a glTF document so the model's bounding
// box fits a target size.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"

	"github.com/Faultbox/glbpack/internal/logger"
	"github.com/Faultbox/glbpack/pkg/gltf"
	"github.com/Faultbox/glbpack/pkg/scale"
)

func main() {
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Usage = printUsage
	flag.Parse()

	level := "info"
	if *debug {
		level = "debug"
	}
	if err := logger.Init(level, ""); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if flag.NArg() != 5 {
		printUsage()
		logger.Sync()
		os.Exit(2)
	}

	src, dst := flag.Arg(0), flag.Arg(4)
	target, err := parseTarget(flag.Args()[1:4])
	if err != nil {
		fail(err)
	}

	doc, err := gltf.DecodeFile(src)
	if err != nil {
		fail(err)
	}

	s, err := scale.Apply(doc, target)
	if err != nil {
		fail(err)
	}
	logger.Info("scaled root node",
		zap.Float64("x", s.X()),
		zap.Float64("y", s.Y()),
		zap.Float64("z", s.Z()))

	if err := gltf.WriteFile(dst, doc); err != nil {
		fail(err)
	}
}

func parseTarget(args []string) (mgl64.Vec3, error) {
	var v mgl64.Vec3
	for i, arg := range args {
		f, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return v, fmt.Errorf("invalid target size %q: %w", arg, err)
		}
		v[i] = f
	}
	return v, nil
}

func fail(err error) {
	logger.Error("scaling failed", zap.Error(err))
	logger.Sync()
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

func printUsage() {
	fmt.Fprintln(os.Stderr, `gltfscale - fit a glTF model into a target size

Usage:
  gltfscale [options] <src.gltf> <x> <y> <z> <dst.gltf>

Options:`)
	flag.PrintDefaults()
}
