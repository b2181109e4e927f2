package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"adlens/app"
	"adlens/domain/baseline"
	"adlens/domain/core"
	"adlens/domain/recommendation"
	"adlens/internal"
	apperrors "adlens/internal/errors"
)

// Server is the HTTP surface over the evaluation, extraction, baseline,
// recommendation and narrative services.
type Server struct {
	router *gin.Engine
	logger *internal.Logger

	evaluations     *app.EvaluationService
	extractions     *app.ExtractionService
	baselines       *app.BaselineService
	recommendations *app.RecommendationService
	narratives      *app.NarrativeService
}

// NewServer creates a server and registers all routes
func NewServer(
	evaluations *app.EvaluationService,
	extractions *app.ExtractionService,
	baselines *app.BaselineService,
	recommendations *app.RecommendationService,
	narratives *app.NarrativeService,
	logger *internal.Logger,
) *Server {
	s := &Server{
		router:          gin.Default(),
		logger:          logger,
		evaluations:     evaluations,
		extractions:     extractions,
		baselines:       baselines,
		recommendations: recommendations,
		narratives:      narratives,
	}
	s.registerRoutes()
	return s
}

// Run starts the server on the given address
func (s *Server) Run(addr string) error {
	s.logger.Info("starting API server on %s", addr)
	return s.router.Run(addr)
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) registerRoutes() {
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := s.router.Group("/api/v1")

	v1.POST("/accounts/:account/creatives/:creative/evaluate", s.handleEvaluate)
	v1.GET("/audit/:trace", s.handleAuditTrail)

	v1.POST("/creatives/:creative/extraction", s.handleRequestExtraction)
	v1.POST("/creatives/:creative/extraction/retry", s.handleRetryExtraction)
	v1.GET("/creatives/:creative/extraction", s.handleGetExtraction)

	v1.POST("/accounts/:account/baselines/recompute", s.handleRecomputeBaselines)
	v1.GET("/accounts/:account/baselines", s.handleListBaselines)

	v1.POST("/accounts/:account/creatives/:creative/recommendations", s.handleCreateRecommendation)
	v1.GET("/accounts/:account/recommendations", s.handleListRecommendations)
	v1.GET("/accounts/:account/recommendations/ranked", s.handleListRanked)
	v1.GET("/accounts/:account/learnings", s.handleLearnings)
	v1.POST("/accounts/:account/recommendations/:id/follow", s.handleFollow)
	v1.POST("/accounts/:account/recommendations/:id/ignore", s.handleIgnore)
	v1.POST("/accounts/:account/recommendations/:id/measure", s.handleMeasure)

	v1.POST("/creatives/:creative/checklist", s.handleDraftChecklist)
}

type evaluateRequest struct {
	ConversionType    string `json:"conversion_type" binding:"required"`
	Placement         string `json:"placement" binding:"required"`
	Objective         string `json:"objective" binding:"required"`
	HasAttributionGap bool   `json:"has_attribution_gap"`
}

func (s *Server) handleEvaluate(c *gin.Context) {
	accountID, creativeID, ok := s.accountCreative(c)
	if !ok {
		return
	}

	var req evaluateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	eval, err := s.evaluations.Evaluate(c.Request.Context(), app.EvaluationRequest{
		AccountID:  accountID,
		CreativeID: creativeID,
		Segment: baseline.Segment{
			ConversionType: req.ConversionType,
			Placement:      req.Placement,
			Objective:      req.Objective,
		},
		HasAttributionGap: req.HasAttributionGap,
	})
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, eval)
}

func (s *Server) handleAuditTrail(c *gin.Context) {
	traceID, err := core.ParseTraceID(c.Param("trace"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	trail, err := s.evaluations.Trail(c.Request.Context(), traceID)
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"trace_id": traceID, "entries": trail})
}

func (s *Server) handleRequestExtraction(c *gin.Context) {
	creativeID, err := core.ParseCreativeID(c.Param("creative"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	state, err := s.extractions.Request(c.Request.Context(), creativeID)
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

func (s *Server) handleRetryExtraction(c *gin.Context) {
	creativeID, err := core.ParseCreativeID(c.Param("creative"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	state, err := s.extractions.Retry(c.Request.Context(), creativeID)
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

func (s *Server) handleGetExtraction(c *gin.Context) {
	creativeID, err := core.ParseCreativeID(c.Param("creative"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	state, err := s.extractions.Get(c.Request.Context(), creativeID)
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

func (s *Server) handleRecomputeBaselines(c *gin.Context) {
	accountID, err := core.ParseAccountID(c.Param("account"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	result, err := s.baselines.Recompute(c.Request.Context(), accountID)
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) handleListBaselines(c *gin.Context) {
	accountID, err := core.ParseAccountID(c.Param("account"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	baselines, err := s.baselines.List(c.Request.Context(), accountID)
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"account_id": accountID, "baselines": baselines})
}

func (s *Server) handleCreateRecommendation(c *gin.Context) {
	accountID, creativeID, ok := s.accountCreative(c)
	if !ok {
		return
	}

	var draft recommendation.Draft
	if err := c.ShouldBindJSON(&draft); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rec, err := s.recommendations.Create(c.Request.Context(), accountID, creativeID, draft)
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, rec)
}

func (s *Server) handleListRecommendations(c *gin.Context) {
	accountID, err := core.ParseAccountID(c.Param("account"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	recs, err := s.recommendations.List(c.Request.Context(), accountID, limit)
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"account_id": accountID, "recommendations": recs})
}

func (s *Server) handleListRanked(c *gin.Context) {
	accountID, err := core.ParseAccountID(c.Param("account"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ranked, err := s.recommendations.ListRanked(c.Request.Context(), accountID)
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"account_id": accountID, "ranked": ranked})
}

func (s *Server) handleLearnings(c *gin.Context) {
	accountID, err := core.ParseAccountID(c.Param("account"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	learnings, err := s.recommendations.Learnings(c.Request.Context(), accountID)
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, learnings)
}

type followRequest struct {
	SuccessorCreativeID string `json:"successor_creative_id"`
}

func (s *Server) handleFollow(c *gin.Context) {
	accountID, recID, ok := s.accountRecommendation(c)
	if !ok {
		return
	}

	var req followRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var successor *core.CreativeID
	if req.SuccessorCreativeID != "" {
		id := core.CreativeID(req.SuccessorCreativeID)
		successor = &id
	}

	rec, err := s.recommendations.MarkFollowed(c.Request.Context(), accountID, recID, successor)
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

func (s *Server) handleIgnore(c *gin.Context) {
	accountID, recID, ok := s.accountRecommendation(c)
	if !ok {
		return
	}
	rec, err := s.recommendations.MarkIgnored(c.Request.Context(), accountID, recID)
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

type measureRequest struct {
	Before recommendation.PeriodMetrics `json:"before" binding:"required"`
	After  recommendation.PeriodMetrics `json:"after" binding:"required"`
}

func (s *Server) handleMeasure(c *gin.Context) {
	accountID, recID, ok := s.accountRecommendation(c)
	if !ok {
		return
	}

	var req measureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rec, err := s.recommendations.MeasureOutcome(c.Request.Context(), accountID, recID, req.Before, req.After)
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

type checklistRequest struct {
	Transcript string `json:"transcript" binding:"required"`
}

func (s *Server) handleDraftChecklist(c *gin.Context) {
	creativeID, err := core.ParseCreativeID(c.Param("creative"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var req checklistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	checklist, err := s.narratives.DraftChecklist(c.Request.Context(), creativeID, req.Transcript)
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, checklist)
}

func (s *Server) accountCreative(c *gin.Context) (core.AccountID, core.CreativeID, bool) {
	accountID, err := core.ParseAccountID(c.Param("account"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return "", "", false
	}
	creativeID, err := core.ParseCreativeID(c.Param("creative"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return "", "", false
	}
	return accountID, creativeID, true
}

func (s *Server) accountRecommendation(c *gin.Context) (core.AccountID, core.RecommendationID, bool) {
	accountID, err := core.ParseAccountID(c.Param("account"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return "", "", false
	}
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "recommendation id is required"})
		return "", "", false
	}
	return accountID, core.RecommendationID(id), true
}

// renderError maps domain and application errors onto HTTP statuses.
// Insufficient-evidence outcomes never reach here: they are status objects
// in 200 responses, not errors.
func (s *Server) renderError(c *gin.Context, err error) {
	switch {
	case core.IsNotFoundError(err):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, core.ErrVersionConflict),
		errors.Is(err, core.ErrAlreadyMeasured),
		errors.Is(err, core.ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, core.ErrRetryExhausted),
		errors.Is(err, core.ErrNotRetryable):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, core.ErrForbiddenKeys):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) && appErr.Code == apperrors.CodeValidationError {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": appErr.Message, "violations": appErr.Violations})
			return
		}
		s.logger.Error("request failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
