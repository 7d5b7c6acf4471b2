package main

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/binzume/j3dconv/internal/config"
	"github.com/pkg/errors"
)

type job struct {
	input  string
	output string
}

func hasExt(path string, exts []string) bool {
	ext := filepath.Ext(path)
	for _, e := range exts {
		if strings.EqualFold(ext, e) {
			return true
		}
	}
	return false
}

// outputFile places the .glb next to the input, or in outDir keeping the
// path relative to root.
func outputFile(input, root, outDir string) string {
	base := input[0:len(input)-len(filepath.Ext(input))] + ".glb"
	if outDir == "" {
		return base
	}
	rel, err := filepath.Rel(root, base)
	if err != nil || strings.HasPrefix(rel, "..") {
		rel = filepath.Base(base)
	}
	return filepath.Join(outDir, rel)
}

// collectJobs expands the arguments into conversion jobs. Files are taken
// as is, directories are scanned for the configured extensions.
func collectJobs(args []string, cfg *config.BatchConfig) ([]job, error) {
	var jobs []job
	for _, arg := range args {
		st, err := os.Stat(arg)
		if err != nil {
			return nil, errors.Wrapf(err, "stat %s", arg)
		}
		if !st.IsDir() {
			jobs = append(jobs, job{input: arg, output: outputFile(arg, filepath.Dir(arg), cfg.OutputDir)})
			continue
		}
		err = filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if path != arg && !cfg.Recursive {
					return filepath.SkipDir
				}
				return nil
			}
			if hasExt(path, cfg.Extensions) {
				jobs = append(jobs, job{input: path, output: outputFile(path, arg, cfg.OutputDir)})
			}
			return nil
		})
		if err != nil {
			return nil, errors.Wrapf(err, "scan %s", arg)
		}
	}
	for _, j := range jobs {
		if dir := filepath.Dir(j.output); dir != "" {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, errors.Wrapf(err, "create %s", dir)
			}
		}
	}
	return jobs, nil
}
