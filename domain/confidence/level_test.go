package confidence

import "testing"

func TestClamp_Order(t *testing.T) {
	tests := []struct {
		name    string
		value   Level
		ceiling Level
		want    Level
	}{
		{"high under low ceiling", High, Low, Low},
		{"low under high ceiling", Low, High, Low},
		{"equal levels", Medium, Medium, Medium},
		{"anything under insufficient", High, Insufficient, Insufficient},
		{"insufficient stays insufficient", Insufficient, High, Insufficient},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clamp(tt.value, tt.ceiling); got != tt.want {
				t.Errorf("Clamp(%s, %s) = %s, want %s", tt.value, tt.ceiling, got, tt.want)
			}
		})
	}
}

func TestClamp_Composition(t *testing.T) {
	// clamp(clamp(x, a), b) == clamp(x, min(a, b)) for every combination
	levels := []Level{Insufficient, Low, Medium, High}
	for _, x := range levels {
		for _, a := range levels {
			for _, b := range levels {
				chained := Clamp(Clamp(x, a), b)
				direct := Clamp(x, Min(a, b))
				if chained != direct {
					t.Errorf("clamp(clamp(%s,%s),%s) = %s, want %s", x, a, b, chained, direct)
				}
			}
		}
	}
}

func TestStepUpDown(t *testing.T) {
	if StepUp(Medium) != High {
		t.Error("expected medium to step up to high")
	}
	if StepUp(High) != High {
		t.Error("high must not step above high")
	}
	if StepDown(Low) != Insufficient {
		t.Error("expected low to step down to insufficient")
	}
	if StepDown(Insufficient) != Insufficient {
		t.Error("insufficient must not step below insufficient")
	}
}

func TestParse(t *testing.T) {
	if Parse("medium") != Medium {
		t.Error("expected medium")
	}
	if Parse("none") != Insufficient {
		t.Error("legacy 'none' must map to insufficient")
	}
	if Parse("garbage") != Insufficient {
		t.Error("unknown strings must map to insufficient")
	}
}
