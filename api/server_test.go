package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"adlens/internal"
)

func testServer() *Server {
	gin.SetMode(gin.TestMode)
	return NewServer(nil, nil, nil, nil, nil, internal.NewDefaultLogger())
}

func TestHealthEndpoint(t *testing.T) {
	s := testServer()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	s.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestEvaluateRejectsMissingSegment(t *testing.T) {
	s := testServer()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost,
		"/api/v1/accounts/acct-1/creatives/cr-1/evaluate",
		strings.NewReader(`{"placement": "feed"}`))
	req.Header.Set("Content-Type", "application/json")
	s.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("incomplete segment should be a 400, got %d", w.Code)
	}
}

func TestMeasureRejectsEmptyBody(t *testing.T) {
	s := testServer()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost,
		"/api/v1/accounts/acct-1/recommendations/rec-1/measure", nil)
	s.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("missing before/after should be a 400, got %d", w.Code)
	}
}
