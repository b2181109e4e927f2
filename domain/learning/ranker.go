package learning

import (
	"sort"

	"adlens/domain/confidence"
	"adlens/domain/recommendation"
)

// RankedRecommendation pairs a recommendation with its history-adjusted
// confidence and the evidence behind the adjustment.
type RankedRecommendation struct {
	Recommendation *recommendation.Recommendation `json:"recommendation"`
	Adjusted       confidence.Level               `json:"adjusted_confidence"`
	Boosted        bool                           `json:"boosted"`
	Demoted        bool                           `json:"demoted"`
	SuccessRate    float64                        `json:"success_rate"`
	SampleSize     int                            `json:"sample_size"`
}

// RankRecommendations re-ranks pending recommendations using the account's
// learned patterns. A type's pattern boosts its recommendations one
// confidence step when its historical success rate meets the boost rate and
// demotes one step when below the demote rate; patterns under the minimum
// sample size have no effect at all. Order is adjusted confidence first,
// ties broken by raw success rate descending.
func RankRecommendations(recs []*recommendation.Recommendation, learnings AccountLearnings, cfg Config) []RankedRecommendation {
	ranked := make([]RankedRecommendation, 0, len(recs))

	for _, rec := range recs {
		entry := RankedRecommendation{
			Recommendation: rec,
			Adjusted:       rec.Confidence,
		}
		if pattern, ok := learnings.Patterns[rec.Type]; ok && pattern.SampleSize >= cfg.MinSamples {
			entry.SuccessRate = pattern.SuccessRate
			entry.SampleSize = pattern.SampleSize
			switch {
			case pattern.SuccessRate >= cfg.BoostRate:
				entry.Adjusted = confidence.StepUp(rec.Confidence)
				entry.Boosted = true
			case pattern.SuccessRate < cfg.DemoteRate:
				entry.Adjusted = confidence.StepDown(rec.Confidence)
				entry.Demoted = true
			}
		}
		ranked = append(ranked, entry)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Adjusted != ranked[j].Adjusted {
			return ranked[i].Adjusted.Ordinal() > ranked[j].Adjusted.Ordinal()
		}
		return ranked[i].SuccessRate > ranked[j].SuccessRate
	})

	return ranked
}
