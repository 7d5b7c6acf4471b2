// Package config holds converter settings loaded from YAML and flags.
package config

// Config holds all converter settings.
type Config struct {
	Convert ConvertConfig `yaml:"convert"`
	Batch   BatchConfig   `yaml:"batch"`
	Logging LoggingConfig `yaml:"logging"`
}

// ConvertConfig controls how a single model is converted.
type ConvertConfig struct {
	Scale                  float32 `yaml:"scale"`
	EmbedTextures          bool    `yaml:"embed_textures"`
	TextureScale           float32 `yaml:"texture_scale"`
	TextureResolutionLimit int     `yaml:"texture_resolution_limit"`
	TextureOverrideDir     string  `yaml:"texture_override_dir"`
	Generator              string  `yaml:"generator"`
}

// BatchConfig controls directory conversion.
type BatchConfig struct {
	OutputDir       string   `yaml:"output_dir"`
	Extensions      []string `yaml:"extensions"`
	Recursive       bool     `yaml:"recursive"`
	ContinueOnError bool     `yaml:"continue_on_error"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Convert: ConvertConfig{
			Scale:         1,
			EmbedTextures: true,
			TextureScale:  1,
			Generator:     "j3dconv",
		},
		Batch: BatchConfig{
			Extensions:      []string{".bmd", ".bdl"},
			Recursive:       true,
			ContinueOnError: true,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}
