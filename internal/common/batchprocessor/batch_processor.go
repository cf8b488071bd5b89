package batchprocessor

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// BatchProcessorConfig holds configuration for batch processing
type BatchProcessorConfig struct {
	BatchSize       int           // Max items per batch (default: 5)
	InterBatchDelay time.Duration // Pause between consecutive batches (default: 1s)
	BatchTimeout    time.Duration // Timeout per batch (default: 2 minutes)
}

// DefaultBatchProcessorConfig returns default configuration
func DefaultBatchProcessorConfig() BatchProcessorConfig {
	return BatchProcessorConfig{
		BatchSize:       5,
		InterBatchDelay: 1 * time.Second,
		BatchTimeout:    2 * time.Minute,
	}
}

// BatchResult holds the result of processing one batch
type BatchResult struct {
	BatchIndex int
	Success    bool
	Error      error
	Processed  int
	Timestamp  time.Time
}

// BatchProcessor splits an input sequence into fixed-size batches and drives
// them strictly one after another, with a fixed delay between batches. A
// batch must finish completely before the delay starts and the next batch is
// dispatched; concurrency inside a batch is the processing function's
// concern.
type BatchProcessor struct {
	config BatchProcessorConfig
	logger zerolog.Logger
}

// NewBatchProcessor creates a new batch processor
func NewBatchProcessor(config BatchProcessorConfig, logger zerolog.Logger) *BatchProcessor {
	if config.BatchSize <= 0 {
		config.BatchSize = DefaultBatchProcessorConfig().BatchSize
	}
	if config.BatchTimeout <= 0 {
		config.BatchTimeout = DefaultBatchProcessorConfig().BatchTimeout
	}
	return &BatchProcessor{
		config: config,
		logger: logger.With().Str("component", "BatchProcessor").Logger(),
	}
}

// ProcessFunc defines the function signature for processing a batch. offset
// is the index of the batch's first item in the original input.
type ProcessFunc func(ctx context.Context, batch []string, batchIndex int, offset int) error

// SplitIntoBatches splits the input into consecutive batches preserving the
// original order. The last batch may be shorter.
func (bp *BatchProcessor) SplitIntoBatches(input []string) [][]string {
	if len(input) == 0 {
		return nil
	}

	var batches [][]string
	for i := 0; i < len(input); i += bp.config.BatchSize {
		end := i + bp.config.BatchSize
		if end > len(input) {
			end = len(input)
		}
		batches = append(batches, input[i:end])
	}

	return batches
}

// ProcessBatches runs every batch to completion in order. A failing batch is
// recorded and processing continues with the remaining batches; only context
// cancellation stops the loop early, and then the error is ctx.Err().
func (bp *BatchProcessor) ProcessBatches(
	ctx context.Context,
	input []string,
	processFunc ProcessFunc,
) ([]BatchResult, error) {
	batches := bp.SplitIntoBatches(input)
	if len(batches) == 0 {
		return nil, nil
	}

	bp.logger.Debug().
		Int("total_items", len(input)).
		Int("batch_count", len(batches)).
		Int("batch_size", bp.config.BatchSize).
		Dur("inter_batch_delay", bp.config.InterBatchDelay).
		Msg("Starting batch processing")

	results := make([]BatchResult, 0, len(batches))
	offset := 0

	for i, batch := range batches {
		select {
		case <-ctx.Done():
			bp.logger.Info().
				Int("completed_batches", i).
				Int("total_batches", len(batches)).
				Msg("Batch processing interrupted by context cancellation")
			return results, ctx.Err()
		default:
		}

		if i > 0 && bp.config.InterBatchDelay > 0 {
			if err := bp.waitInterBatchDelay(ctx); err != nil {
				return results, err
			}
		}

		bp.logger.Debug().
			Int("batch_index", i).
			Int("batch_size", len(batch)).
			Int("progress", i+1).
			Int("total", len(batches)).
			Msg("Processing batch")

		batchCtx, cancel := context.WithTimeout(ctx, bp.config.BatchTimeout)

		start := time.Now()
		err := processFunc(batchCtx, batch, i, offset)
		duration := time.Since(start)

		cancel()

		results = append(results, BatchResult{
			BatchIndex: i,
			Success:    err == nil,
			Error:      err,
			Processed:  len(batch),
			Timestamp:  time.Now(),
		})

		bp.logger.Debug().
			Int("batch_index", i).
			Bool("success", err == nil).
			Dur("duration", duration).
			Int("processed", len(batch)).
			Msg("Batch completed")

		if err != nil {
			bp.logger.Error().
				Err(err).
				Int("batch_index", i).
				Msg("Batch processing failed")
			// Continue with the remaining batches; a failed batch never
			// aborts the run.
		}

		offset += len(batch)
	}

	return results, nil
}

// waitInterBatchDelay sleeps for the configured delay, returning early when
// the context is cancelled.
func (bp *BatchProcessor) waitInterBatchDelay(ctx context.Context) error {
	timer := time.NewTimer(bp.config.InterBatchDelay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// BatchCount returns the number of batches the input would be split into.
func (bp *BatchProcessor) BatchCount(inputSize int) int {
	if inputSize <= 0 {
		return 0
	}
	return (inputSize + bp.config.BatchSize - 1) / bp.config.BatchSize
}
