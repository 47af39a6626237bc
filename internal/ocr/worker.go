package ocr

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Processor runs one unit of OCR work, reporting whether there was any.
type Processor interface {
	ProcessOne(ctx context.Context) (bool, error)
}

type Worker struct {
	processor Processor
	interval  time.Duration
	logger    *zap.Logger
}

func NewWorker(processor Processor, interval time.Duration, logger *zap.Logger) *Worker {
	if interval <= 0 {
		interval = 2 * time.Second
	}
	return &Worker{processor: processor, interval: interval, logger: logger}
}

// Run polls for pending scans until ctx is cancelled. Each tick drains the
// queue before sleeping again.
func (w *Worker) Run(ctx context.Context) error {
	w.logger.Info("OCR_WORKER_STARTED", zap.Duration("interval", w.interval))

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		w.drain(ctx)

		select {
		case <-ctx.Done():
			w.logger.Info("OCR_WORKER_STOPPED")
			return nil
		case <-ticker.C:
		}
	}
}

func (w *Worker) drain(ctx context.Context) {
	for ctx.Err() == nil {
		processed, err := w.processor.ProcessOne(ctx)
		if err != nil {
			w.logger.Error("OCR_WORKER_ERROR", zap.Error(err))
			return
		}
		if !processed {
			return
		}
	}
}
