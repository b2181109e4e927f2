package core

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ID represents a domain identifier
type ID string

// NewID creates a new unique identifier using UUID v7 for time-ordered generation
func NewID() ID {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to v4 if v7 fails
		id = uuid.New()
	}
	return ID(id.String())
}

// String returns the string representation
func (id ID) String() string {
	return string(id)
}

// IsEmpty checks if the ID is empty
func (id ID) IsEmpty() bool {
	return id == ""
}

// Domain-specific ID types
type (
	// TraceID ties every gate/activation/eligibility decision of one
	// end-to-end creative evaluation together in the audit trail.
	TraceID ID
	// CreativeID identifies a single ad creative on the ad platform.
	CreativeID ID
	// AccountID identifies an advertiser account.
	AccountID ID
	// RecommendationID identifies a stored recommendation.
	RecommendationID ID
)

// NewTraceID creates a fresh random trace identifier for one decision path.
func NewTraceID() TraceID {
	return TraceID(NewID())
}

// String conversions for domain IDs
func (id TraceID) String() string          { return ID(id).String() }
func (id CreativeID) String() string       { return ID(id).String() }
func (id AccountID) String() string        { return ID(id).String() }
func (id RecommendationID) String() string { return ID(id).String() }

// ParseCreativeID parses a string into CreativeID
func ParseCreativeID(s string) (CreativeID, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("creative ID cannot be empty")
	}
	return CreativeID(s), nil
}

// ParseAccountID parses a string into AccountID
func ParseAccountID(s string) (AccountID, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("account ID cannot be empty")
	}
	return AccountID(s), nil
}

// ParseTraceID parses a string into TraceID
func ParseTraceID(s string) (TraceID, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("trace ID cannot be empty")
	}
	return TraceID(s), nil
}
