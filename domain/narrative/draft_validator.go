package narrative

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"adlens/domain/core"
)

// allowedDraftKeys is the closed set of fourteen keys the language model may
// fill. This allow-list is the single crossing point between the model and
// the checklist; nothing interpretive is permitted through it.
var allowedDraftKeys = map[string]bool{
	"has_cta":                   true,
	"cta_components":            true,
	"cta_timing_seconds":        true,
	"value_prop_components":     true,
	"value_prop_timing_seconds": true,
	"has_offer":                 true,
	"offer_text":                true,
	"offer_timing_seconds":      true,
	"has_proof":                 true,
	"proof_type":                true,
	"pricing_visible":           true,
	"has_guarantee":             true,
	"guarantee_text":            true,
	"ad_lp_aligned":             true,
}

// AllowedDraftKeys returns the sorted allow-list, for prompt construction
// and error messages.
func AllowedDraftKeys() []string {
	keys := make([]string, 0, len(allowedDraftKeys))
	for key := range allowedDraftKeys {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// ParseDraft validates and decodes a raw LLM response into a checklist.
// Any key outside the allow-list is a hard contract breach: the error names
// every offending key and nothing is silently stripped. The returned
// checklist is always marked LLM-assisted and unconfirmed.
func ParseDraft(creativeID core.CreativeID, raw []byte, now core.Timestamp) (*Checklist, error) {
	var keyCheck map[string]json.RawMessage
	if err := json.Unmarshal(raw, &keyCheck); err != nil {
		return nil, fmt.Errorf("checklist draft is not a JSON object: %w", err)
	}

	var forbidden []string
	for key := range keyCheck {
		if !allowedDraftKeys[key] {
			forbidden = append(forbidden, key)
		}
	}
	if len(forbidden) > 0 {
		sort.Strings(forbidden)
		return nil, fmt.Errorf("%w: %s", core.ErrForbiddenKeys, strings.Join(forbidden, ", "))
	}

	var checklist Checklist
	if err := json.Unmarshal(raw, &checklist); err != nil {
		return nil, fmt.Errorf("checklist draft has malformed field values: %w", err)
	}

	checklist.CreativeID = creativeID
	checklist.LLMAssisted = true
	checklist.UserConfirmed = false
	checklist.UpdatedAt = now
	return &checklist, nil
}
