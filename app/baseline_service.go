package app

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/semaphore"

	"adlens/domain/baseline"
	"adlens/domain/core"
	"adlens/internal"
	"adlens/internal/config"
	"adlens/ports"
)

// defaultRecomputeConcurrency bounds how many segment recomputes run at once
// per account so one account's refresh cannot saturate the metrics provider.
const defaultRecomputeConcurrency = 4

// BaselineService recomputes and serves segmented account baselines.
type BaselineService struct {
	metrics   ports.MetricsProvider
	baselines ports.BaselineRepository
	clock     ports.Clock
	engine    config.EngineConfig
	logger    *internal.Logger

	recomputeSem *semaphore.Weighted
}

// NewBaselineService creates a baseline service
func NewBaselineService(
	metrics ports.MetricsProvider,
	baselines ports.BaselineRepository,
	clock ports.Clock,
	engine config.EngineConfig,
	logger *internal.Logger,
) *BaselineService {
	return &BaselineService{
		metrics:      metrics,
		baselines:    baselines,
		clock:        clock,
		engine:       engine,
		logger:       logger,
		recomputeSem: semaphore.NewWeighted(defaultRecomputeConcurrency),
	}
}

// RecomputeResult summarizes one account-wide baseline refresh.
type RecomputeResult struct {
	AccountID core.AccountID             `json:"account_id"`
	Baselines []*baseline.AccountBaseline `json:"baselines"`
	Failed    int                        `json:"failed"`
}

// Recompute rebuilds every segment baseline for an account from its daily
// history. Segments are recomputed concurrently under the weighted
// semaphore; each baseline replaces its stored row wholesale.
func (s *BaselineService) Recompute(ctx context.Context, accountID core.AccountID) (*RecomputeResult, error) {
	history, err := s.metrics.GetDailyHistory(ctx, accountID, s.engine.Baseline.WindowDays)
	if err != nil {
		return nil, fmt.Errorf("daily history for account %s failed: %w", accountID, err)
	}

	now := core.NewTimestamp(s.clock.Now())
	result := &RecomputeResult{AccountID: accountID}

	var mu sync.Mutex
	var wg sync.WaitGroup
	for key, days := range history {
		segment, err := baseline.ParseSegmentKey(key)
		if err != nil {
			s.logger.Warn("skipping malformed segment key %q for account %s: %v", key, accountID, err)
			mu.Lock()
			result.Failed++
			mu.Unlock()
			continue
		}

		if err := s.recomputeSem.Acquire(ctx, 1); err != nil {
			return nil, err
		}
		wg.Add(1)
		go func(segment baseline.Segment, days []baseline.DailyMetrics) {
			defer wg.Done()
			defer s.recomputeSem.Release(1)

			base := baseline.ComputeBaseline(accountID, segment, days, s.engine.Baseline, now)
			if err := s.baselines.Upsert(ctx, &base); err != nil {
				s.logger.Error("baseline upsert for account %s segment %s failed: %v", accountID, segment.Key(), err)
				mu.Lock()
				result.Failed++
				mu.Unlock()
				return
			}
			mu.Lock()
			result.Baselines = append(result.Baselines, &base)
			mu.Unlock()
		}(segment, days)
	}
	wg.Wait()

	s.logger.Info("recomputed %d baselines for account %s (%d failed)",
		len(result.Baselines), accountID, result.Failed)
	return result, nil
}

// Get returns one segment baseline.
func (s *BaselineService) Get(ctx context.Context, accountID core.AccountID, segment baseline.Segment) (*baseline.AccountBaseline, error) {
	return s.baselines.Get(ctx, accountID, segment)
}

// List returns all segment baselines for an account.
func (s *BaselineService) List(ctx context.Context, accountID core.AccountID) ([]*baseline.AccountBaseline, error) {
	return s.baselines.ListByAccount(ctx, accountID)
}
