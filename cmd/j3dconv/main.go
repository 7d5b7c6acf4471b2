package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/binzume/j3dconv/converter"
	"github.com/binzume/j3dconv/internal/config"
	"github.com/binzume/j3dconv/internal/logger"
	"github.com/binzume/j3dconv/j3d"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] input.bmd [output.glb]\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "       %s [options] dir|file...\n", os.Args[0])
		flag.PrintDefaults()
	}
	flags := config.RegisterFlags(flag.CommandLine)
	dump := flag.Bool("dump", false, "dump parsed model instead of converting")
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load("", flags)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync()
	log := logger.Sugar

	args := flag.Args()
	if *dump {
		for _, input := range args {
			m, err := j3d.Load(input)
			if err != nil {
				log.Fatalw("load failed", "input", input, "error", err)
			}
			fmt.Println(logger.SDump(m.Info, m.Joints, m.Materials, m.Textures))
		}
		return
	}

	var jobs []job
	if len(args) == 2 && strings.EqualFold(filepath.Ext(args[1]), ".glb") {
		jobs = []job{{input: args[0], output: args[1]}}
	} else {
		jobs, err = collectJobs(args, &cfg.Batch)
		if err != nil {
			log.Fatalw("scan failed", "error", err)
		}
	}
	if len(jobs) == 0 {
		log.Warnw("no input files", "extensions", cfg.Batch.Extensions)
		return
	}

	conv := converter.NewJ3DToGLTFConverter(&converter.J3DToGLTFOption{
		Scale:                  cfg.Convert.Scale,
		Generator:              cfg.Convert.Generator,
		DisableTextures:        !cfg.Convert.EmbedTextures,
		TextureScale:           cfg.Convert.TextureScale,
		TextureResolutionLimit: cfg.Convert.TextureResolutionLimit,
		TextureOverrideDir:     cfg.Convert.TextureOverrideDir,
		Logger:                 logger.Log,
	})

	failed := 0
	for _, j := range jobs {
		log.Infow("converting", "input", j.input, "output", j.output)
		if err := conv.ConvertFile(j.input, j.output); err != nil {
			failed++
			log.Errorw("conversion failed", "input", j.input, "error", err)
			if !cfg.Batch.ContinueOnError {
				break
			}
		}
	}
	if failed > 0 {
		log.Errorw("done with errors", "failed", failed, "total", len(jobs))
		logger.Sync()
		os.Exit(1)
	}
	log.Infow("done", "total", len(jobs))
}
