package config

import "flag"

var (
	flagConfig    = flag.String("config", "", "Path to config file")
	flagDebug     = flag.Bool("debug", false, "Enable debug logging")
	flagLogFile   = flag.String("log-file", "", "Write logs to this file (rotated)")
	flagSrcDir    = flag.String("src_dir", "", "Directory containing .bin and textures (default: directory of src)")
	flagDebugJSON = flag.String("debug-json", "", "Write the merged glTF JSON to this path")
	flagNoVerify  = flag.Bool("no-verify", false, "Skip texture header verification")
	flagSave      = flag.Bool("save-config", false, "Save the effective settings to the user config directory")
)

// positional holds the non-flag arguments collected by ParseFlags.
var positional []string

// ParseFlags parses command-line flags. Call this early in main().
// Flags may appear before, between or after positional arguments.
func ParseFlags() {
	flag.Parse()
	// flag.CommandLine exits on a bad flag, so the error is always nil here.
	positional, _ = collectArgs(flag.CommandLine)
}

// collectArgs keeps parsing fs past each positional argument.
func collectArgs(fs *flag.FlagSet) ([]string, error) {
	var args []string
	rest := fs.Args()
	for len(rest) > 0 {
		args = append(args, rest[0])
		if err := fs.Parse(rest[1:]); err != nil {
			return args, err
		}
		rest = fs.Args()
	}
	return args, nil
}

// Args returns the positional arguments left after flag parsing.
func Args() []string {
	return positional
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// SaveRequested reports whether --save-config was given.
func SaveRequested() bool {
	return *flagSave
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagLogFile != "" {
		cfg.Logging.LogFile = *flagLogFile
	}
	if *flagSrcDir != "" {
		cfg.Pack.SourceDir = *flagSrcDir
	}
	if *flagDebugJSON != "" {
		cfg.Pack.DebugJSON = *flagDebugJSON
	}
	if *flagNoVerify {
		cfg.Pack.VerifyTextures = false
	}
}
