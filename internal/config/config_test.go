package config

import (
	"flag"
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Convert.Scale != 1 || cfg.Convert.TextureScale != 1 {
		t.Errorf("unexpected scales: %+v", cfg.Convert)
	}
	if !cfg.Convert.EmbedTextures {
		t.Error("expected textures to be embedded by default")
	}
	if len(cfg.Batch.Extensions) != 2 {
		t.Errorf("unexpected extensions: %v", cfg.Batch.Extensions)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
}

func TestLoadPriority(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "j3dconv.yaml")
	yaml := "convert:\n  scale: 0.01\n  texture_resolution_limit: 512\nlogging:\n  level: warn\n"
	if err := os.WriteFile(path, []byte(yaml), 0644); err != nil {
		t.Fatal(err)
	}

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	flags := RegisterFlags(fs)
	if err := fs.Parse([]string{"-config", path, "-texlimit", "256", "-notex"}); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load("", flags)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Convert.Scale != 0.01 {
		t.Errorf("file value lost: scale %v", cfg.Convert.Scale)
	}
	if cfg.Convert.TextureResolutionLimit != 256 {
		t.Errorf("flag must win over file: %d", cfg.Convert.TextureResolutionLimit)
	}
	if cfg.Convert.EmbedTextures {
		t.Error("-notex ignored")
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("level %s", cfg.Logging.Level)
	}
	if cfg.Convert.TextureScale != 1 {
		t.Errorf("default lost: %v", cfg.Convert.TextureScale)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), nil); err == nil {
		t.Error("expected error")
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.yaml")
	cfg := Default()
	cfg.Batch.OutputDir = "glb"
	if err := Save(cfg, path); err != nil {
		t.Fatal(err)
	}
	loaded, err := Load(path, nil)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Batch.OutputDir != "glb" {
		t.Errorf("output dir %q", loaded.Batch.OutputDir)
	}
}
