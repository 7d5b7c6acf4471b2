package config

import "flag"

// Flags are command line overrides. Zero values leave the config untouched.
type Flags struct {
	ConfigPath         string
	OutputDir          string
	Scale              float64
	TextureScale       float64
	TextureLimit       int
	TextureOverrideDir string
	NoTextures         bool
	Debug              bool
	LogFile            string
}

// RegisterFlags defines the converter flags on fs.
func RegisterFlags(fs *flag.FlagSet) *Flags {
	f := &Flags{}
	fs.StringVar(&f.ConfigPath, "config", "", "Path to config file")
	fs.StringVar(&f.OutputDir, "o", "", "Output directory (default: next to the input)")
	fs.Float64Var(&f.Scale, "scale", 0, "Geometry scale factor")
	fs.Float64Var(&f.TextureScale, "texscale", 0, "Texture scale factor")
	fs.IntVar(&f.TextureLimit, "texlimit", 0, "Texture resolution limit")
	fs.StringVar(&f.TextureOverrideDir, "texdir", "", "Directory with replacement textures")
	fs.BoolVar(&f.NoTextures, "notex", false, "Do not embed textures")
	fs.BoolVar(&f.Debug, "debug", false, "Enable debug logging")
	fs.StringVar(&f.LogFile, "log", "", "Log file path")
	return f
}

func (f *Flags) apply(cfg *Config) {
	if f.OutputDir != "" {
		cfg.Batch.OutputDir = f.OutputDir
	}
	if f.Scale > 0 {
		cfg.Convert.Scale = float32(f.Scale)
	}
	if f.TextureScale > 0 {
		cfg.Convert.TextureScale = float32(f.TextureScale)
	}
	if f.TextureLimit > 0 {
		cfg.Convert.TextureResolutionLimit = f.TextureLimit
	}
	if f.TextureOverrideDir != "" {
		cfg.Convert.TextureOverrideDir = f.TextureOverrideDir
	}
	if f.NoTextures {
		cfg.Convert.EmbedTextures = false
	}
	if f.Debug {
		cfg.Logging.Level = "debug"
	}
	if f.LogFile != "" {
		cfg.Logging.LogFile = f.LogFile
	}
}
