package app

import (
	"context"
	"sync"
	"time"

	"adlens/domain/audit"
	"adlens/domain/baseline"
	"adlens/domain/core"
	"adlens/domain/extraction"
	"adlens/domain/gates"
	"adlens/domain/recommendation"
	"adlens/ports"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

type fakeMetricsProvider struct {
	gateInput *gates.GateInput
	current   *ports.CreativeMetrics
	history   map[string][]baseline.DailyMetrics
}

func (f *fakeMetricsProvider) GetCreativeMetrics(ctx context.Context, accountID core.AccountID, creativeID core.CreativeID, from, to time.Time) (*ports.CreativeMetrics, error) {
	return f.current, nil
}

func (f *fakeMetricsProvider) GetGateInput(ctx context.Context, accountID core.AccountID, creativeID core.CreativeID) (*gates.GateInput, error) {
	return f.gateInput, nil
}

func (f *fakeMetricsProvider) GetDailyHistory(ctx context.Context, accountID core.AccountID, days int) (map[string][]baseline.DailyMetrics, error) {
	return f.history, nil
}

type fakeExtractionRepo struct {
	mu     sync.Mutex
	states map[core.CreativeID]*extraction.State
}

func newFakeExtractionRepo() *fakeExtractionRepo {
	return &fakeExtractionRepo{states: make(map[core.CreativeID]*extraction.State)}
}

func (f *fakeExtractionRepo) Get(ctx context.Context, creativeID core.CreativeID) (*extraction.State, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	state, ok := f.states[creativeID]
	if !ok {
		return nil, core.ErrExtractionNotFound
	}
	clone := *state
	return &clone, nil
}

func (f *fakeExtractionRepo) Create(ctx context.Context, state *extraction.State) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	state.Version = 1
	clone := *state
	f.states[state.CreativeID] = &clone
	return nil
}

func (f *fakeExtractionRepo) Save(ctx context.Context, state *extraction.State, expectedVersion int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored, ok := f.states[state.CreativeID]
	if !ok {
		return core.ErrExtractionNotFound
	}
	if stored.Version != expectedVersion {
		return core.ErrVersionConflict
	}
	state.Version = expectedVersion + 1
	clone := *state
	f.states[state.CreativeID] = &clone
	return nil
}

type fakeBaselineRepo struct {
	mu        sync.Mutex
	baselines map[string]*baseline.AccountBaseline
}

func newFakeBaselineRepo() *fakeBaselineRepo {
	return &fakeBaselineRepo{baselines: make(map[string]*baseline.AccountBaseline)}
}

func baselineKey(accountID core.AccountID, segment baseline.Segment) string {
	return accountID.String() + "/" + segment.Key()
}

func (f *fakeBaselineRepo) Upsert(ctx context.Context, base *baseline.AccountBaseline) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	clone := *base
	f.baselines[baselineKey(base.AccountID, base.Segment)] = &clone
	return nil
}

func (f *fakeBaselineRepo) Get(ctx context.Context, accountID core.AccountID, segment baseline.Segment) (*baseline.AccountBaseline, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	base, ok := f.baselines[baselineKey(accountID, segment)]
	if !ok {
		return nil, core.ErrBaselineNotFound
	}
	clone := *base
	return &clone, nil
}

func (f *fakeBaselineRepo) ListByAccount(ctx context.Context, accountID core.AccountID) ([]*baseline.AccountBaseline, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*baseline.AccountBaseline
	for _, base := range f.baselines {
		if base.AccountID == accountID {
			clone := *base
			out = append(out, &clone)
		}
	}
	return out, nil
}

type fakeAuditRepo struct {
	mu      sync.Mutex
	entries []*audit.Entry
}

func (f *fakeAuditRepo) Append(ctx context.Context, entry *audit.Entry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	entry.Step = len(f.entries) + 1
	f.entries = append(f.entries, entry)
	return nil
}

func (f *fakeAuditRepo) Trail(ctx context.Context, traceID core.TraceID) ([]*audit.Entry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var trail []*audit.Entry
	for _, entry := range f.entries {
		if entry.TraceID == traceID {
			trail = append(trail, entry)
		}
	}
	return trail, nil
}

func (f *fakeAuditRepo) RecentByCreative(ctx context.Context, creativeID core.CreativeID, limit int) ([]*audit.Entry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var recent []*audit.Entry
	for i := len(f.entries) - 1; i >= 0 && len(recent) < limit; i-- {
		if f.entries[i].CreativeID == creativeID {
			recent = append(recent, f.entries[i])
		}
	}
	return recent, nil
}

type fakeRecommendationRepo struct {
	mu   sync.Mutex
	recs map[core.RecommendationID]*recommendation.Recommendation
}

func newFakeRecommendationRepo() *fakeRecommendationRepo {
	return &fakeRecommendationRepo{recs: make(map[core.RecommendationID]*recommendation.Recommendation)}
}

func (f *fakeRecommendationRepo) Save(ctx context.Context, rec *recommendation.Recommendation) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	clone := *rec
	f.recs[rec.ID] = &clone
	return nil
}

func (f *fakeRecommendationRepo) Get(ctx context.Context, accountID core.AccountID, id core.RecommendationID) (*recommendation.Recommendation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.recs[id]
	if !ok || rec.AccountID != accountID {
		return nil, core.ErrRecommendationNotFound
	}
	clone := *rec
	return &clone, nil
}

func (f *fakeRecommendationRepo) ListByAccount(ctx context.Context, accountID core.AccountID, limit int) ([]*recommendation.Recommendation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*recommendation.Recommendation
	for _, rec := range f.recs {
		if rec.AccountID == accountID {
			clone := *rec
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (f *fakeRecommendationRepo) ListByStatus(ctx context.Context, accountID core.AccountID, status recommendation.Status) ([]*recommendation.Recommendation, error) {
	all, _ := f.ListByAccount(ctx, accountID, 0)
	var out []*recommendation.Recommendation
	for _, rec := range all {
		if rec.Status == status {
			out = append(out, rec)
		}
	}
	return out, nil
}

type fakeSignalExtractor struct {
	result *ports.ExtractionResult
	err    error
}

func (f *fakeSignalExtractor) Extract(ctx context.Context, creativeID core.CreativeID) (*ports.ExtractionResult, error) {
	return f.result, f.err
}
