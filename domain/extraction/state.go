package extraction

import (
	"adlens/domain/core"
)

// Status is the lifecycle state of one creative's signal extraction.
type Status string

const (
	StatusPending  Status = "pending"
	StatusComplete Status = "complete"
	StatusPartial  Status = "partial"
	StatusFailed   Status = "failed"
)

// State is the per-creative extraction record. It is created when extraction
// is requested and kept forever for audit; there is no delete transition.
type State struct {
	CreativeID core.CreativeID `json:"creative_id" db:"creative_id"`
	Status     Status          `json:"status" db:"status"`
	Extracted  []string        `json:"extracted" db:"-"`
	Missing    []string        `json:"missing" db:"-"`
	RetryCount int             `json:"retry_count" db:"retry_count"`
	MaxRetries int             `json:"max_retries" db:"max_retries"`
	RequestedAt core.Timestamp `json:"requested_at" db:"requested_at"`
	UpdatedAt   core.Timestamp `json:"updated_at" db:"updated_at"`

	// Version supports optimistic concurrency on read-modify-write paths
	// (concurrent retries must not double-increment the counter).
	Version int `json:"version" db:"version"`
}

// DefaultMaxRetries bounds how often a failed extraction may be retried
// before the record becomes terminal.
const DefaultMaxRetries = 3

// NewState creates a pending extraction record for a creative.
func NewState(creativeID core.CreativeID, now core.Timestamp) *State {
	return &State{
		CreativeID:  creativeID,
		Status:      StatusPending,
		MaxRetries:  DefaultMaxRetries,
		RequestedAt: now,
		UpdatedAt:   now,
	}
}

// Resolve applies an extraction result to the state. Missing required
// signals keep the record out of scoring entirely: failed when the extractor
// reported an error, otherwise still pending.
func (s *State) Resolve(extracted, failed []string, now core.Timestamp) {
	s.Extracted = extracted
	s.Missing = missingFrom(extracted)
	s.UpdatedAt = now

	if hasRequiredMissing(s.Missing) {
		if len(failed) > 0 {
			s.Status = StatusFailed
		} else {
			s.Status = StatusPending
		}
		return
	}

	if len(s.Missing) > 0 {
		s.Status = StatusPartial
		return
	}
	s.Status = StatusComplete
}

// Retry moves a failed record back to pending. The retry counter is bounded:
// once it reaches the maximum the operation reports a terminal
// contact-support condition instead of silently doing nothing.
func (s *State) Retry(now core.Timestamp) error {
	if s.Status != StatusFailed {
		return core.ErrNotRetryable
	}
	if s.RetryCount >= s.MaxRetries {
		return core.ErrRetryExhausted
	}
	s.RetryCount++
	s.Status = StatusPending
	s.UpdatedAt = now
	return nil
}

func missingFrom(extracted []string) []string {
	have := make(map[string]bool, len(extracted))
	for _, name := range extracted {
		have[name] = true
	}
	var missing []string
	for _, req := range Catalog() {
		if !have[req.Name] {
			missing = append(missing, req.Name)
		}
	}
	return missing
}

func hasRequiredMissing(missing []string) bool {
	required := make(map[string]bool)
	for _, name := range RequiredSignals() {
		required[name] = true
	}
	for _, name := range missing {
		if required[name] {
			return true
		}
	}
	return false
}
