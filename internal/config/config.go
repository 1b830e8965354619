// Package config handles packaging tool configuration loading and management.
package config

// Config holds all tool settings.
type Config struct {
	Pack    PackConfig    `yaml:"pack"`
	Logging LoggingConfig `yaml:"logging"`
}

// PackConfig holds packaging settings.
type PackConfig struct {
	SourceDir      string `yaml:"source_dir,omitempty"` // Directory with .bin and textures; empty = next to the .gltf. Never saved.
	DebugJSON      string `yaml:"debug_json"`           // Write the merged document here; empty = disabled
	VerifyTextures bool   `yaml:"verify_textures"`      // Check texture headers against their extension
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Pack: PackConfig{
			SourceDir:      "",
			DebugJSON:      "",
			VerifyTextures: true,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
