package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"adlens/domain/core"
	"adlens/domain/extraction"
	"adlens/internal"
	"adlens/ports"
)

func TestRequestRunsExtractionOnce(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)}
	repo := newFakeExtractionRepo()
	extractor := &fakeSignalExtractor{result: &ports.ExtractionResult{
		ExtractedSignals: extraction.RequiredSignals(),
	}}
	svc := NewExtractionService(extractor, repo, clock, internal.NewDefaultLogger())

	state, err := svc.Request(context.Background(), core.CreativeID("cr-1"))
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	if state.Status != extraction.StatusPartial {
		t.Errorf("required-only extraction should resolve partial, got %s", state.Status)
	}

	// Second request returns the record without re-running extraction
	extractor.err = errors.New("should not be called again")
	again, err := svc.Request(context.Background(), core.CreativeID("cr-1"))
	if err != nil {
		t.Fatalf("second Request failed: %v", err)
	}
	if again.Status != extraction.StatusPartial {
		t.Errorf("second request should return stored state, got %s", again.Status)
	}
}

func TestRetryExhaustionIsTerminal(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)}
	repo := newFakeExtractionRepo()
	extractor := &fakeSignalExtractor{err: errors.New("decoder crashed")}
	svc := NewExtractionService(extractor, repo, clock, internal.NewDefaultLogger())

	state, err := svc.Request(context.Background(), core.CreativeID("cr-2"))
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	if state.Status != extraction.StatusFailed {
		t.Fatalf("extractor error should fail the record, got %s", state.Status)
	}

	for i := 0; i < extraction.DefaultMaxRetries; i++ {
		if _, err := svc.Retry(context.Background(), core.CreativeID("cr-2")); err != nil {
			t.Fatalf("retry %d failed: %v", i+1, err)
		}
	}

	_, err = svc.Retry(context.Background(), core.CreativeID("cr-2"))
	if !errors.Is(err, core.ErrRetryExhausted) {
		t.Errorf("fourth retry should exhaust the budget, got %v", err)
	}
}

func TestRetryOnNonFailedStateRejected(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)}
	repo := newFakeExtractionRepo()
	extractor := &fakeSignalExtractor{result: &ports.ExtractionResult{
		ExtractedSignals: extraction.RequiredSignals(),
	}}
	svc := NewExtractionService(extractor, repo, clock, internal.NewDefaultLogger())

	if _, err := svc.Request(context.Background(), core.CreativeID("cr-3")); err != nil {
		t.Fatal(err)
	}

	_, err := svc.Retry(context.Background(), core.CreativeID("cr-3"))
	if !errors.Is(err, core.ErrNotRetryable) {
		t.Errorf("retrying a partial record should be rejected, got %v", err)
	}
}
