package ports

import (
	"context"

	"adlens/domain/core"
)

// ChecklistGenerator is the language-model collaborator that drafts the
// narrative checklist for a creative. It returns the raw JSON response;
// allow-list validation happens at the domain boundary, not here.
type ChecklistGenerator interface {
	// GenerateDraft returns the model's raw checklist JSON for a creative
	GenerateDraft(ctx context.Context, creativeID core.CreativeID, transcript string) ([]byte, error)
}
