package main

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/binzume/j3dconv/internal/config"
)

func TestCollectJobs(t *testing.T) {
	dir := t.TempDir()
	for _, f := range []string{"a.bmd", "b.BDL", "c.txt", "sub/d.bmd"} {
		p := filepath.Join(dir, f)
		if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, nil, 0644); err != nil {
			t.Fatal(err)
		}
	}

	tests := []struct {
		name      string
		recursive bool
		outDir    string
		want      []string
	}{
		{"recursive", true, "", []string{"a.glb", "b.glb", "sub/d.glb"}},
		{"flat", false, "", []string{"a.glb", "b.glb"}},
		{"output dir", true, "out", []string{"out/a.glb", "out/b.glb", "out/sub/d.glb"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default().Batch
			cfg.Recursive = tt.recursive
			if tt.outDir != "" {
				cfg.OutputDir = filepath.Join(dir, tt.outDir)
			}
			jobs, err := collectJobs([]string{dir}, &cfg)
			if err != nil {
				t.Fatal(err)
			}
			var got []string
			for _, j := range jobs {
				rel, _ := filepath.Rel(dir, j.output)
				got = append(got, filepath.ToSlash(rel))
			}
			sort.Strings(got)
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("got %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestCollectJobsMissing(t *testing.T) {
	cfg := config.Default().Batch
	if _, err := collectJobs([]string{filepath.Join(t.TempDir(), "none")}, &cfg); err == nil {
		t.Errorf("expected error")
	}
}
