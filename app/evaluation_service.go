package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"adlens/domain/activation"
	"adlens/domain/audit"
	"adlens/domain/baseline"
	"adlens/domain/confidence"
	"adlens/domain/core"
	"adlens/domain/extraction"
	"adlens/domain/gates"
	"adlens/internal"
	"adlens/internal/alerting"
	"adlens/internal/config"
	"adlens/ports"
)

// fatigueHistoryDays is the daily-history lookback for the half-over-half
// fatigue comparison.
const fatigueHistoryDays = 28

// alertDebounceWindow suppresses repeat tracking-anomaly warnings for the
// same account. Every evaluation of a broken account would fire otherwise.
const alertDebounceWindow = 6 * time.Hour

// EvaluationService orchestrates one end-to-end creative evaluation: gates,
// extraction integration, health classification, narrative eligibility,
// conversion diagnosis and efficiency scoring, with every decision appended
// to the audit trail under a single trace id.
type EvaluationService struct {
	metrics     ports.MetricsProvider
	extractions ports.ExtractionRepository
	baselines   ports.BaselineRepository
	audits      ports.AuditRepository
	clock       ports.Clock
	engine      config.EngineConfig
	logger      *internal.Logger
	alerts      *alerting.Debouncer
}

// NewEvaluationService creates an evaluation service
func NewEvaluationService(
	metrics ports.MetricsProvider,
	extractions ports.ExtractionRepository,
	baselines ports.BaselineRepository,
	audits ports.AuditRepository,
	clock ports.Clock,
	engine config.EngineConfig,
	logger *internal.Logger,
) *EvaluationService {
	return &EvaluationService{
		metrics:     metrics,
		extractions: extractions,
		baselines:   baselines,
		audits:      audits,
		clock:       clock,
		engine:      engine,
		logger:      logger,
		alerts:      alerting.NewDebouncer(clock, alerting.NewMemoryStore(), alertDebounceWindow),
	}
}

// EvaluationRequest identifies what to evaluate and which baseline segment
// to compare against.
type EvaluationRequest struct {
	AccountID  core.AccountID
	CreativeID core.CreativeID
	Segment    baseline.Segment

	// Diagnosis inputs observed outside the metrics provider.
	ContextChanges    []activation.ContextChange
	HasAttributionGap bool
}

// CreativeEvaluation is the composed result of one evaluation pass.
type CreativeEvaluation struct {
	TraceID    core.TraceID    `json:"trace_id"`
	CreativeID core.CreativeID `json:"creative_id"`

	Gates      gates.GateStatus            `json:"gates"`
	Extraction extraction.ScoringDecision  `json:"extraction"`

	DeliveryHealth   activation.DeliveryHealth   `json:"delivery_health"`
	ConversionHealth activation.ConversionHealth `json:"conversion_health"`

	Eligibility activation.NarrativeEligibility `json:"narrative_eligibility"`
	Diagnosis   activation.ConversionDiagnosis  `json:"conversion_diagnosis"`

	Efficiency baseline.EfficiencyResult `json:"efficiency"`

	// Final per-dimension confidence after the full clamp chain.
	DeliveryConfidence   confidence.Level `json:"delivery_confidence"`
	ConversionConfidence confidence.Level `json:"conversion_confidence"`
}

// Evaluate runs the full decision pipeline for one creative.
func (s *EvaluationService) Evaluate(ctx context.Context, req EvaluationRequest) (*CreativeEvaluation, error) {
	traceID := core.NewTraceID()
	now := s.clock.Now()

	eval := &CreativeEvaluation{TraceID: traceID, CreativeID: req.CreativeID}

	// Scoring gates
	input, err := s.metrics.GetGateInput(ctx, req.AccountID, req.CreativeID)
	if err != nil {
		return nil, fmt.Errorf("gate input for creative %s failed: %w", req.CreativeID, err)
	}
	eval.Gates = gates.Evaluate(*input, s.engine.Gates, now)
	s.record(ctx, traceID, req.CreativeID, audit.GateScoring, &audit.Entry{
		Status:  &eval.Gates,
		Blocked: !eval.Gates.CanScoreDelivery && !eval.Gates.CanScoreConversion,
		Reason:  firstMessage(eval.Gates.Messages),
	}, now)

	// Extraction integration. A creative no extraction was ever requested
	// for is treated as pending: blocked, not errored.
	state, err := s.extractions.Get(ctx, req.CreativeID)
	if err != nil {
		if !errors.Is(err, core.ErrExtractionNotFound) {
			return nil, fmt.Errorf("extraction state for creative %s failed: %w", req.CreativeID, err)
		}
		state = extraction.NewState(req.CreativeID, core.NewTimestamp(now))
	}
	eval.Extraction = extraction.CanScoreWithExtraction(state, eval.Gates.DeliveryConfidenceMax)
	s.record(ctx, traceID, req.CreativeID, audit.GateExtraction, &audit.Entry{
		Blocked: !eval.Extraction.Allowed,
		Reason:  eval.Extraction.Reason,
	}, now)

	// Health classification against the account baseline
	current, err := s.metrics.GetCreativeMetrics(ctx, req.AccountID, req.CreativeID, now.AddDate(0, 0, -30), now)
	if err != nil {
		return nil, fmt.Errorf("current metrics for creative %s failed: %w", req.CreativeID, err)
	}
	base, err := s.baselines.Get(ctx, req.AccountID, req.Segment)
	if err != nil {
		if !errors.Is(err, core.ErrBaselineNotFound) {
			return nil, fmt.Errorf("baseline for account %s failed: %w", req.AccountID, err)
		}
		base = &baseline.AccountBaseline{AccountID: req.AccountID, Segment: req.Segment, Quality: baseline.QualityNone}
	}

	currentCPA := 0.0
	if current.Conversions > 0 {
		currentCPA = current.Spend / float64(current.Conversions)
	}
	eval.DeliveryHealth = activation.ClassifyDeliveryHealth(
		current.CTR, base.AvgCTR, eval.Gates.CanScoreDelivery && eval.Extraction.Allowed, s.engine.Health)
	eval.ConversionHealth = activation.ClassifyConversionHealth(
		currentCPA, base.AvgCPA, eval.Gates.CanScoreConversion, s.engine.Health)

	// Narrative eligibility
	eval.Eligibility = activation.CheckNarrativeEligibility(
		eval.DeliveryHealth, eval.ConversionHealth, current.Conversions, s.engine.Eligibility)
	activated := []string{}
	if eval.Eligibility.Eligible {
		activated = append(activated, "narrative")
	}
	s.record(ctx, traceID, req.CreativeID, audit.GateActivation, &audit.Entry{
		ActivatedSystems: activated,
		Blocked:          !eval.Eligibility.Eligible,
		Reason:           string(eval.Eligibility.Reason),
	}, now)

	// Wrong-blame diagnosis runs only when conversion performance is bad;
	// a healthy funnel has nothing to blame anyone for.
	eval.Diagnosis = activation.ConversionDiagnosis{PrimaryIssue: activation.IssueNone, CanBlameCreative: true}
	if eval.ConversionHealth == activation.ConversionBad {
		eval.Diagnosis = s.diagnose(ctx, req, current, now)
		s.record(ctx, traceID, req.CreativeID, audit.GateDiagnosis, &audit.Entry{
			Blocked: !eval.Diagnosis.CanBlameCreative,
			Reason:  string(eval.Diagnosis.PrimaryIssue),
		}, now)
	}

	// Efficiency scoring
	currentROAS := 0.0
	if current.Spend > 0 {
		currentROAS = current.Revenue / current.Spend
	}
	eval.Efficiency = baseline.ComputeEfficiencyScore(
		currentCPA, currentROAS, current.Conversions, *base, s.engine.Efficiency)
	s.record(ctx, traceID, req.CreativeID, audit.GateEfficiency, &audit.Entry{
		Blocked: !eval.Efficiency.CanScore,
		Reason:  eval.Efficiency.Reason,
	}, now)

	// Final clamp chain: gate ceilings, then the extraction ceiling on the
	// delivery side, then the efficiency confidence on the conversion side.
	eval.DeliveryConfidence = confidence.Clamp(eval.Gates.DeliveryConfidenceMax, eval.Extraction.Ceiling)
	eval.ConversionConfidence = confidence.Clamp(eval.Gates.ConversionConfidenceMax, eval.Efficiency.Confidence)

	s.logger.Info("evaluated creative %s (trace %s): delivery=%s conversion=%s eligible=%t",
		req.CreativeID, traceID, eval.DeliveryHealth, eval.ConversionHealth, eval.Eligibility.Eligible)
	return eval, nil
}

// Trail returns the audit trail for one evaluation trace.
func (s *EvaluationService) Trail(ctx context.Context, traceID core.TraceID) ([]*audit.Entry, error) {
	return s.audits.Trail(ctx, traceID)
}

func (s *EvaluationService) diagnose(ctx context.Context, req EvaluationRequest, current *ports.CreativeMetrics, now time.Time) activation.ConversionDiagnosis {
	anomaly := activation.DetectTrackingAnomaly(current.Spend, current.Conversions, s.engine.Anomaly)
	if anomaly.Detected && s.alerts.ShouldAlert(string(req.AccountID)+":tracking_anomaly") {
		s.logger.Warn("tracking anomaly on account %s: %.2f spend over %d days with %d conversions",
			req.AccountID, anomaly.SpendDuring, anomaly.WindowDays, anomaly.ConversionsSeen)
	}

	var fatigue activation.FatigueDiagnosis
	history, err := s.metrics.GetDailyHistory(ctx, req.AccountID, fatigueHistoryDays)
	if err != nil {
		s.logger.Warn("daily history for account %s unavailable, skipping fatigue check: %v", req.AccountID, err)
	} else {
		days := baseline.FilterSegment(history, req.Segment)
		frequency, ctr, cpm := fatigueSeries(days)
		fatigue = activation.DetectFatigue(frequency, ctr, cpm, s.engine.Fatigue)
	}

	return activation.DiagnoseConversionIssue(req.ContextChanges, &anomaly, &fatigue, req.HasAttributionGap)
}

// fatigueSeries derives the daily frequency/CTR/CPM series the fatigue
// detector compares half-over-half. Frequency is not directly observable
// from daily aggregates, so impressions stand in for it: rising impressions
// against a fixed audience is the same drift.
func fatigueSeries(days []baseline.DailyMetrics) (frequency, ctr, cpm []float64) {
	for _, d := range days {
		frequency = append(frequency, float64(d.Impressions))
		if d.Impressions > 0 {
			ctr = append(ctr, float64(d.Clicks)/float64(d.Impressions))
			cpm = append(cpm, d.Spend/float64(d.Impressions)*1000)
		} else {
			ctr = append(ctr, 0)
			cpm = append(cpm, 0)
		}
	}
	return frequency, ctr, cpm
}

// record appends one audit entry, filling the shared identity fields. Audit
// failures are logged, never allowed to abort an evaluation.
func (s *EvaluationService) record(ctx context.Context, traceID core.TraceID, creativeID core.CreativeID, gateType audit.GateType, entry *audit.Entry, now time.Time) {
	entry.TraceID = traceID
	entry.CreativeID = creativeID
	entry.GateType = gateType
	entry.At = core.NewTimestamp(now)
	if err := s.audits.Append(ctx, entry); err != nil {
		s.logger.Error("audit append failed for trace %s step %s: %v", traceID, gateType, err)
	}
}

func firstMessage(messages []string) string {
	if len(messages) == 0 {
		return ""
	}
	return messages[0]
}
