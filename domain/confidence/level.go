package confidence

// Level represents a confidence grade on the shared lattice used by every
// scoring subsystem. The order is total: insufficient < low < medium < high.
type Level string

const (
	Insufficient Level = "insufficient"
	Low          Level = "low"
	Medium       Level = "medium"
	High         Level = "high"
)

// ordinals for the total order
var ordinals = map[Level]int{
	Insufficient: 0,
	Low:          1,
	Medium:       2,
	High:         3,
}

// Ordinal returns the position of the level in the total order.
// Unknown values rank as insufficient.
func (l Level) Ordinal() int {
	return ordinals[l]
}

// Valid reports whether the level is one of the four lattice values.
func (l Level) Valid() bool {
	_, ok := ordinals[l]
	return ok
}

// String returns the string representation
func (l Level) String() string {
	return string(l)
}

// Clamp returns the lower of value and ceiling under the lattice order.
// Within one evaluation pass confidence is produced by starting from an
// optimistic default and clamping repeatedly, so it can only move toward
// insufficient, never away from it.
func Clamp(value, ceiling Level) Level {
	if value.Ordinal() <= ceiling.Ordinal() {
		return value
	}
	return ceiling
}

// Min returns the lower of two levels.
func Min(a, b Level) Level {
	return Clamp(a, b)
}

// StepUp returns the level one step higher, capped at high.
func StepUp(l Level) Level {
	switch l {
	case Insufficient:
		return Low
	case Low:
		return Medium
	case Medium:
		return High
	default:
		return High
	}
}

// StepDown returns the level one step lower, floored at insufficient.
func StepDown(l Level) Level {
	switch l {
	case High:
		return Medium
	case Medium:
		return Low
	case Low:
		return Insufficient
	default:
		return Insufficient
	}
}

// Parse converts a string into a Level. Unrecognized strings map to
// insufficient; some legacy callers report "none", which is the same tier.
func Parse(s string) Level {
	switch Level(s) {
	case Insufficient, Low, Medium, High:
		return Level(s)
	}
	if s == "none" {
		return Insufficient
	}
	return Insufficient
}
