package ports

import (
	"context"

	"adlens/domain/core"
)

// ExtractionResult is what the on-device media-signal extractor reports for
// one creative.
type ExtractionResult struct {
	ExtractedSignals []string `json:"extracted_signals"`
	FailedSignals    []string `json:"failed_signals"`
}

// SignalExtractor is the upstream producer of structural media signals.
type SignalExtractor interface {
	// Extract runs signal extraction against the creative's media file
	Extract(ctx context.Context, creativeID core.CreativeID) (*ExtractionResult, error)
}
