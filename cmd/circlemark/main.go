package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"

	"github.com/circlemark/circlemark/internal/config"
	"github.com/circlemark/circlemark/internal/editor"
	"github.com/circlemark/circlemark/internal/imaging"
	"github.com/circlemark/circlemark/internal/session"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// imageExtensions are the file types batch discovery accepts.
var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".bmp":  true,
	".tif":  true,
	".tiff": true,
}

func main() {
	// Handle --version before flag parsing so "circlemark version" works
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("circlemark %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		}
	}

	var (
		inputDir   = flag.String("input", "", "directory of images to label (required)")
		outputDir  = flag.String("output", "", "output directory (default: labeled_output_<timestamp> beside input)")
		configPath = flag.String("config", defaultConfigPath(), "config file path")
		logLevel   = flag.String("log-level", "info", "log level: debug, info, warn, error")
	)
	flag.Parse()

	// Logs go to stderr; stdout carries the editor's responses.
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: parseLevel(*logLevel)}))
	slog.SetDefault(logger)

	if *inputDir == "" {
		fmt.Fprintln(os.Stderr, "usage: circlemark -input DIR [-output DIR] [-config PATH] [-log-level LEVEL]")
		flag.PrintDefaults()
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load config", "path", *configPath, "error", err)
		os.Exit(1)
	}

	out := *outputDir
	if out == "" {
		out = filepath.Join(filepath.Dir(*inputDir),
			"labeled_output_"+time.Now().Format("20060102_150405"))
	}

	entries, err := discover(logger, *inputDir, cfg.MinImageSize, cfg.MinRadius)
	if err != nil {
		logger.Error("batch discovery failed", "dir", *inputDir, "error", err)
		os.Exit(1)
	}
	if len(entries) == 0 {
		logger.Error("no usable images found", "dir", *inputDir)
		os.Exit(1)
	}
	logger.Info("batch ready", "images", len(entries), "output", out,
		"version", Version)

	ed := editor.New(editor.Params{
		Log:    logger,
		Config: cfg,
		Batch:  session.NewBatch(entries),
		Cache:  imaging.NewImageCache(),
		OutDir: out,
	})
	if err := ed.Run(context.Background(), os.Stdin); err != nil {
		logger.Error("session ended with error", "error", err)
		os.Exit(1)
	}
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// defaultConfigPath places the config under the XDG config home.
func defaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, "circlemark", "config.yaml")
}

// discover probes every image file in dir, in name order, and builds the
// batch entries. Unreadable or undersized files are skipped with a
// warning; the batch carries on with the rest.
func discover(log *slog.Logger, dir string, minSize, minRadius int) ([]*session.Entry, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read input directory: %w", err)
	}

	entries := make([]*session.Entry, 0, len(files))
	for _, f := range files {
		if f.IsDir() || !imageExtensions[strings.ToLower(filepath.Ext(f.Name()))] {
			continue
		}
		path := filepath.Join(dir, f.Name())
		src, err := imaging.Probe(path)
		if err != nil {
			log.Warn("skipping unreadable image", "path", path, "error", err)
			continue
		}
		if src.Width < minSize || src.Height < minSize {
			log.Warn("skipping undersized image", "path", path,
				"width", src.Width, "height", src.Height, "min", minSize)
			continue
		}
		entries = append(entries, session.NewEntry(src, minRadius))
	}
	return entries, nil
}
