package batch

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/google/uuid"
	"github.com/phambaophuc/copyright-stamp/internal/models"
	"github.com/phambaophuc/copyright-stamp/internal/services/processor"
	"github.com/phambaophuc/copyright-stamp/internal/services/storage"
	"go.uber.org/zap"
)

// Driver runs the file pipeline over a set of inputs.
type Driver struct {
	processor *processor.ImageProcessor
	logger    *zap.Logger
	workers   int
}

func NewDriver(p *processor.ImageProcessor, logger *zap.Logger, workers int) *Driver {
	if workers < 1 {
		workers = 1
	}
	return &Driver{
		processor: p,
		logger:    logger,
		workers:   workers,
	}
}

// ProcessFile stamps one file and writes the result beside it, returning the
// output path.
func (d *Driver) ProcessFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("%w: open %q: %w", models.ErrDecode, path, err)
	}
	defer f.Close()

	img, _, err := processor.DecodeImage(f)
	if err != nil {
		return "", fmt.Errorf("%q: %w", path, err)
	}

	stamped, err := d.processor.Stamp(img)
	if err != nil {
		return "", fmt.Errorf("%q: %w", path, err)
	}

	output := storage.OutputPath(path)
	format := processor.FormatFromPath(path)
	err = storage.WriteFile(output, func(w io.Writer) error {
		return d.processor.EncodeImage(w, stamped, format)
	})
	if err != nil {
		return "", err
	}

	return output, nil
}

// Run stamps files with up to d.workers goroutines. Results keep the order
// of files; a failing file is logged and does not stop the others. Files not
// yet started when ctx is cancelled report ctx's error.
func (d *Driver) Run(ctx context.Context, files []string) models.BatchReport {
	report := models.BatchReport{
		RunID:   uuid.New().String(),
		Results: make([]models.FileResult, len(files)),
	}
	logger := d.logger.With(zap.String("run_id", report.RunID))
	logger.Info("Batch started",
		zap.Int("files", len(files)),
		zap.Int("workers", d.workers))

	jobs := make(chan int)
	var wg sync.WaitGroup

	for workerID := 1; workerID <= min(d.workers, len(files)); workerID++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				report.Results[i] = d.runOne(logger, files[i], workerID)
			}
		}()
	}

	for i, path := range files {
		if err := ctx.Err(); err != nil {
			report.Results[i] = models.FileResult{Input: path, Err: err}
			continue
		}
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	logger.Info("Batch finished",
		zap.Int("succeeded", report.Succeeded()),
		zap.Int("failed", report.Failed()))

	return report
}

func (d *Driver) runOne(logger *zap.Logger, path string, workerID int) models.FileResult {
	output, err := d.ProcessFile(path)
	if err != nil {
		logger.Error("Failed to stamp image",
			zap.String("path", path),
			zap.Int("worker_id", workerID),
			zap.Error(err))
		return models.FileResult{Input: path, Err: err}
	}

	logger.Debug("Image stamped",
		zap.String("path", path),
		zap.String("output", output),
		zap.Int("worker_id", workerID))
	return models.FileResult{Input: path, Output: output}
}
