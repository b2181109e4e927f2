package extraction

// SignalRequirement is a static catalog entry describing one media signal
// the upstream extractor is expected to produce for a creative.
type SignalRequirement struct {
	Name string `json:"name"`
	// Required signals block all scoring when missing. Optional signals
	// degrade confidence by Weight instead.
	Required bool `json:"required"`
	// Weight is the confidence impact (0-30) of a missing optional signal.
	Weight int `json:"weight"`
}

// Required signal names
const (
	SignalDuration      = "duration"
	SignalAudioPresence = "audio_presence"
	SignalAspectRatio   = "aspect_ratio"
)

// Optional signal names
const (
	SignalHookDensity     = "hook_density"
	SignalCutFrequency    = "cut_frequency"
	SignalTextCoverage    = "text_coverage"
	SignalLoudnessLUFS    = "loudness_lufs"
	SignalFirstFrameFaces = "first_frame_faces"
	SignalCaptionPresence = "caption_presence"
)

// Catalog returns the full signal requirement catalog. The slice is rebuilt
// on every call so callers cannot mutate the shared definition.
func Catalog() []SignalRequirement {
	return []SignalRequirement{
		{Name: SignalDuration, Required: true},
		{Name: SignalAudioPresence, Required: true},
		{Name: SignalAspectRatio, Required: true},
		{Name: SignalHookDensity, Required: false, Weight: 15},
		{Name: SignalCutFrequency, Required: false, Weight: 10},
		{Name: SignalTextCoverage, Required: false, Weight: 10},
		{Name: SignalLoudnessLUFS, Required: false, Weight: 5},
		{Name: SignalFirstFrameFaces, Required: false, Weight: 10},
		{Name: SignalCaptionPresence, Required: false, Weight: 5},
	}
}

// RequiredSignals returns the names of all required signals.
func RequiredSignals() []string {
	var names []string
	for _, req := range Catalog() {
		if req.Required {
			names = append(names, req.Name)
		}
	}
	return names
}

// missingWeight sums the confidence-impact weights of the named missing
// optional signals.
func missingWeight(missing []string) int {
	weights := make(map[string]int)
	for _, req := range Catalog() {
		if !req.Required {
			weights[req.Name] = req.Weight
		}
	}
	total := 0
	for _, name := range missing {
		total += weights[name]
	}
	return total
}
