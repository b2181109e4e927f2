package llm

import (
	"context"
	"strings"
	"testing"

	"adlens/domain/core"
	"adlens/domain/narrative"
)

func TestGenerateDraftProducesParseableChecklist(t *testing.T) {
	adapter := NewChecklistAdapterWithClient(DefaultConfig(), &MockLLMClient{})

	raw, err := adapter.GenerateDraft(context.Background(), core.CreativeID("cr-1"), "Shop now. Free shipping on everything.")
	if err != nil {
		t.Fatalf("GenerateDraft failed: %v", err)
	}

	checklist, err := narrative.ParseDraft(core.CreativeID("cr-1"), raw, core.Now())
	if err != nil {
		t.Fatalf("mock draft should pass the allow-list: %v", err)
	}
	if !checklist.LLMAssisted {
		t.Error("parsed draft must be marked LLM-assisted")
	}
	if checklist.UserConfirmed {
		t.Error("parsed draft must start unconfirmed")
	}
}

func TestGenerateDraftStripsMarkdownFences(t *testing.T) {
	mock := &MockLLMClient{Response: "Here you go:\n```json\n{\"has_cta\": true}\n```"}
	adapter := NewChecklistAdapterWithClient(DefaultConfig(), mock)

	raw, err := adapter.GenerateDraft(context.Background(), core.CreativeID("cr-2"), "transcript")
	if err != nil {
		t.Fatalf("GenerateDraft failed: %v", err)
	}
	if string(raw) != `{"has_cta": true}` {
		t.Errorf("expected fenced JSON extracted, got %q", raw)
	}
}

func TestBuildChecklistPromptListsEveryAllowedKey(t *testing.T) {
	prompt := buildChecklistPrompt("transcript")
	for _, key := range narrative.AllowedDraftKeys() {
		if !strings.Contains(prompt, key) {
			t.Errorf("prompt missing allowed key %q", key)
		}
	}
}
