package linkchecker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/pagevet/pagevet/internal/common/batchprocessor"
	"github.com/pagevet/pagevet/internal/models"
)

// Resolver resolves one link. *LinkResolver is the production implementation.
type Resolver interface {
	Resolve(ctx context.Context, linkURL string) models.LinkCheckResult
}

// BatchScheduler drives link resolution in fixed-size batches. All links in a
// batch resolve concurrently, a batch completes fully before the next one is
// dispatched, and a fixed delay separates consecutive batches. Each
// resolution writes only to its own result slot, so results stay positionally
// associated with the input links.
type BatchScheduler struct {
	resolver  Resolver
	processor *batchprocessor.BatchProcessor
	logger    zerolog.Logger
}

// NewBatchScheduler creates a scheduler over the given resolver.
func NewBatchScheduler(resolver Resolver, config Config, logger zerolog.Logger) *BatchScheduler {
	config = config.withDefaults()
	processor := batchprocessor.NewBatchProcessor(batchprocessor.BatchProcessorConfig{
		BatchSize:       config.BatchSize,
		InterBatchDelay: config.InterBatchDelay,
	}, logger)

	return &BatchScheduler{
		resolver:  resolver,
		processor: processor,
		logger:    logger.With().Str("component", "BatchScheduler").Logger(),
	}
}

// RunAll resolves every link and returns exactly one result per input link,
// in input order. A link that fails to resolve yields a broken result, never
// a missing entry; links that were not dispatched because the context was
// cancelled are reported broken with the cancellation cause.
func (s *BatchScheduler) RunAll(ctx context.Context, links []string) []models.LinkCheckResult {
	if len(links) == 0 {
		return nil
	}

	s.logger.Info().
		Int("link_count", len(links)).
		Int("batch_count", s.processor.BatchCount(len(links))).
		Msg("Starting link verification")

	results := make([]models.LinkCheckResult, len(links))
	filled := make([]bool, len(links))

	_, err := s.processor.ProcessBatches(ctx, links, func(batchCtx context.Context, batch []string, batchIndex int, offset int) error {
		var wg sync.WaitGroup
		for i, link := range batch {
			wg.Add(1)
			go func(slot int, linkURL string) {
				defer wg.Done()
				results[slot] = s.resolver.Resolve(batchCtx, linkURL)
				filled[slot] = true
			}(offset+i, link)
		}
		wg.Wait()
		return nil
	})
	if err != nil {
		s.logger.Warn().
			Err(err).
			Msg("Link verification interrupted before all batches ran")
	}

	// Links never dispatched still get a terminal result so the report
	// accounts for every discovered link.
	reason := "not checked"
	if err != nil {
		reason = fmt.Sprintf("not checked: %v", err)
	}
	now := time.Now()
	for i := range results {
		if filled[i] {
			continue
		}
		results[i] = models.LinkCheckResult{
			URL:       links[i],
			Outcome:   models.LinkOutcomeBroken,
			Error:     reason,
			CheckedAt: now,
		}
	}

	return results
}
