package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"careerprep/interview/internal/config"
	"careerprep/interview/internal/prompts"
	"careerprep/interview/internal/store"
)

func TestHealthzHandler(t *testing.T) {
	handler := NewHealthHandler(nil, nil, store.NewMemoryStore(), &config.Config{})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	handler.HealthzHandler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["status"] != "ok" || body["service"] != "interview" {
		t.Errorf("body = %v", body)
	}
}

func TestReadyzHandlerReadyWithoutProvider(t *testing.T) {
	pm, err := prompts.NewPromptManager()
	if err != nil {
		t.Fatalf("failed to load prompts: %v", err)
	}
	handler := NewHealthHandler(nil, pm, store.NewMemoryStore(), &config.Config{Provider: "gemini"})

	req := httptest.NewRequest(http.MethodGet, "/readyz", nil)
	rec := httptest.NewRecorder()
	handler.ReadyzHandler(rec, req)

	// A missing provider degrades to fallbacks; it must not fail readiness.
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	var resp ReadinessResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Status != "ready" {
		t.Errorf("Status = %q", resp.Status)
	}
	if resp.Checks["provider"].Status != "ok" {
		t.Errorf("provider check = %+v", resp.Checks["provider"])
	}
}

func TestReadyzHandlerNotReadyWithoutStore(t *testing.T) {
	pm, err := prompts.NewPromptManager()
	if err != nil {
		t.Fatalf("failed to load prompts: %v", err)
	}
	handler := NewHealthHandler(nil, pm, nil, &config.Config{Provider: "gemini"})

	req := httptest.NewRequest(http.MethodGet, "/readyz", nil)
	rec := httptest.NewRecorder()
	handler.ReadyzHandler(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rec.Code)
	}
	var resp ReadinessResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Status != "not_ready" {
		t.Errorf("Status = %q", resp.Status)
	}
	if resp.Checks["store"].Status != "failed" {
		t.Errorf("store check = %+v", resp.Checks["store"])
	}
}

func TestReadyzHandlerNotReadyWithoutTemplates(t *testing.T) {
	handler := NewHealthHandler(nil, nil, store.NewMemoryStore(), &config.Config{Provider: "gemini"})

	req := httptest.NewRequest(http.MethodGet, "/readyz", nil)
	rec := httptest.NewRecorder()
	handler.ReadyzHandler(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rec.Code)
	}
}
