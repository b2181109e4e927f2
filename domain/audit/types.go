package audit

import (
	"adlens/domain/core"
	"adlens/domain/gates"
)

// GateType names the kind of decision an entry records.
type GateType string

const (
	GateScoring     GateType = "scoring_gates"
	GateExtraction  GateType = "extraction"
	GateActivation  GateType = "narrative_activation"
	GateDiagnosis   GateType = "conversion_diagnosis"
	GateEfficiency  GateType = "efficiency"
	GateEligibility GateType = "recommendation_eligibility"
)

// Entry records one gate, activation or eligibility decision. Entries are
// append-only: the trail for a trace id is the ordered sequence of entries
// sharing that id, and no update or delete operation exists.
type Entry struct {
	TraceID    core.TraceID     `json:"trace_id" db:"trace_id"`
	Step       int              `json:"step" db:"step"`
	CreativeID core.CreativeID  `json:"creative_id" db:"creative_id"`
	GateType   GateType         `json:"gate_type" db:"gate_type"`

	// Status snapshots the gate output at decision time, when the decision
	// involved one.
	Status *gates.GateStatus `json:"status,omitempty"`

	ActivatedSystems []string `json:"activated_systems,omitempty"`
	Blocked          bool     `json:"blocked" db:"blocked"`
	Reason           string   `json:"reason,omitempty" db:"reason"`

	At core.Timestamp `json:"at" db:"at"`
}
