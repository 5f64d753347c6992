package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/alexflint/go-arg"
	"github.com/phambaophuc/copyright-stamp/internal/config"
	"github.com/phambaophuc/copyright-stamp/internal/services/batch"
	"github.com/phambaophuc/copyright-stamp/internal/services/processor"
	"github.com/phambaophuc/copyright-stamp/pkg/utils"
	"go.uber.org/zap"
)

const successMessage = "Copyright watermark added successfully!"

type args struct {
	Input  string `arg:"positional,required" placeholder:"<image_file_or_directory>"`
	Config string `arg:"positional,required" placeholder:"<config_file>"`
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	logger, err := utils.NewLogger(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args, cfg, logger, os.Stdout, os.Stderr)
	stop()
	logger.Sync()
	os.Exit(code)
}

// run executes one stamping invocation and returns the process exit code.
func run(ctx context.Context, argv []string, cfg *config.Config, logger *zap.Logger, stdout, stderr io.Writer) int {
	program := "copyright-stamp"
	if len(argv) > 0 {
		program = filepath.Base(argv[0])
		argv = argv[1:]
	}

	var a args
	parser, err := arg.NewParser(arg.Config{Program: program, IgnoreEnv: true}, &a)
	if err != nil {
		logger.Error("Failed to build argument parser", zap.Error(err))
		return 1
	}
	// Help requests and bad arguments alike print the usage line and fail.
	if err := parser.Parse(argv); err != nil {
		parser.WriteUsage(stderr)
		return 1
	}
	input, configPath := a.Input, a.Config

	wm, err := config.LoadWatermark(configPath)
	if err != nil {
		logger.Error("Failed to load watermark configuration", zap.String("path", configPath), zap.Error(err))
		return 1
	}

	font, err := processor.LoadFont(wm.FontPath)
	if err != nil {
		logger.Error("Failed to load font", zap.String("path", wm.FontPath), zap.Error(err))
		return 1
	}

	files, single, err := batch.Collect(input)
	if err != nil {
		logger.Error("Invalid input path", zap.String("path", input), zap.Error(err))
		return 1
	}

	p := processor.NewImageProcessor(wm, font, cfg.Batch.JPEGQuality)
	driver := batch.NewDriver(p, logger, cfg.Batch.Workers)
	report := driver.Run(ctx, files)

	if single && report.Failed() > 0 {
		return 1
	}

	fmt.Fprintln(stdout, successMessage)
	return 0
}
