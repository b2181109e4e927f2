package main

import (
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"adlens/domain/core"
	"adlens/ports"
)

// app wires the read-only inspector routes against the repositories.
type app struct {
	router          *chi.Mux
	audits          ports.AuditRepository
	baselines       ports.BaselineRepository
	recommendations ports.RecommendationRepository
	templates       *template.Template
}

func newApp(audits ports.AuditRepository, baselines ports.BaselineRepository, recommendations ports.RecommendationRepository) *app {
	a := &app{
		router:          chi.NewRouter(),
		audits:          audits,
		baselines:       baselines,
		recommendations: recommendations,
		templates:       template.Must(template.New("").Parse(pageTemplates)),
	}

	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)

	a.router.Get("/", a.handleIndex)
	a.router.Get("/accounts/{account}/baselines", a.handleBaselines)
	a.router.Get("/accounts/{account}/recommendations", a.handleRecommendations)
	a.router.Get("/traces/{trace}", a.handleTrace)

	return a
}

func (a *app) handleIndex(w http.ResponseWriter, r *http.Request) {
	a.render(w, "index", nil)
}

func (a *app) handleBaselines(w http.ResponseWriter, r *http.Request) {
	accountID, err := core.ParseAccountID(chi.URLParam(r, "account"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	baselines, err := a.baselines.ListByAccount(r.Context(), accountID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	a.render(w, "baselines", map[string]interface{}{
		"AccountID": accountID,
		"Baselines": baselines,
	})
}

func (a *app) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	accountID, err := core.ParseAccountID(chi.URLParam(r, "account"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	recs, err := a.recommendations.ListByAccount(r.Context(), accountID, 100)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	type recView struct {
		ID         string
		Type       string
		Status     string
		Confidence string
		Note       template.HTML
	}
	views := make([]recView, 0, len(recs))
	for _, rec := range recs {
		note := fmt.Sprintf("**%s**\n\nTarget: %s\n\nObserved gap: %s\n\nWatch `%s` for %d days.",
			rec.WhatToChange, rec.TargetRange, rec.ObservableGap, rec.MetricToWatch, rec.RunDurationDays)
		views = append(views, recView{
			ID:         rec.ID.String(),
			Type:       string(rec.Type),
			Status:     string(rec.Status),
			Confidence: rec.Confidence.String(),
			Note:       renderMarkdown(note),
		})
	}
	a.render(w, "recommendations", map[string]interface{}{
		"AccountID":       accountID,
		"Recommendations": views,
	})
}

func (a *app) handleTrace(w http.ResponseWriter, r *http.Request) {
	traceID, err := core.ParseTraceID(chi.URLParam(r, "trace"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	trail, err := a.audits.Trail(r.Context(), traceID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	a.render(w, "trace", map[string]interface{}{
		"TraceID": traceID,
		"Entries": trail,
	})
}

func (a *app) render(w http.ResponseWriter, name string, data interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := a.templates.ExecuteTemplate(w, name, data); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// renderMarkdown converts a recommendation note to HTML. Notes are
// engine-authored, not user input, so the standard renderer suffices.
func renderMarkdown(note string) template.HTML {
	p := parser.NewWithExtensions(parser.CommonExtensions)
	renderer := mdhtml.NewRenderer(mdhtml.RendererOptions{Flags: mdhtml.CommonFlags})
	out := markdown.ToHTML([]byte(note), p, renderer)
	return template.HTML(strings.TrimSpace(string(out)))
}
