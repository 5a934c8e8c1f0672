package routers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"careerprep/interview/internal/config"
	"careerprep/interview/internal/evaluate"
	"careerprep/interview/internal/handlers"
	"careerprep/interview/internal/interview"
	"careerprep/interview/internal/models"
	"careerprep/interview/internal/prompts"
	"careerprep/interview/internal/question"
	"careerprep/interview/internal/store"
	"careerprep/interview/internal/summary"
)

type stubExecutor struct{}

func (stubExecutor) Execute(context.Context, string, string, string) models.CodeExecutionResult {
	return models.CodeExecutionResult{Success: true}
}

func (stubExecutor) RunWithTests(context.Context, string, string, []models.TestCase) models.CodeExecutionResult {
	return models.CodeExecutionResult{Success: true}
}

func (stubExecutor) SupportedLanguages() []string { return []string{"python"} }

func newTestHandlers(t *testing.T) (*handlers.InterviewHandler, *handlers.TemplateHandler) {
	t.Helper()

	pm, err := prompts.NewPromptManager()
	if err != nil {
		t.Fatalf("failed to load prompts: %v", err)
	}
	logger := zap.NewNop()
	st := store.NewMemoryStore()
	executor := stubExecutor{}

	orchestrator := interview.NewOrchestrator(
		st,
		question.NewGenerator(nil, pm, logger),
		evaluate.NewEvaluator(nil, pm, logger),
		executor,
		summary.NewGenerator(nil, pm, logger),
		logger,
	)
	return handlers.NewInterviewHandler(orchestrator, executor, logger), handlers.NewTemplateHandler()
}

func TestHealthRoutes(t *testing.T) {
	router := chi.NewRouter()
	pm, err := prompts.NewPromptManager()
	if err != nil {
		t.Fatalf("failed to load prompts: %v", err)
	}
	handler := handlers.NewHealthHandler(nil, pm, store.NewMemoryStore(), &config.Config{Provider: "gemini"})

	HealthRoutes(router, handler)

	req, _ := http.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("/healthz route not registered correctly, got status %d", rec.Code)
	}
}

func TestInterviewRoutesRegistersEndpoints(t *testing.T) {
	router := chi.NewRouter()
	interviewHandler, templateHandler := newTestHandlers(t)

	InterviewRoutes(router, interviewHandler, templateHandler)

	paths := map[string]bool{}
	if err := chi.Walk(router, func(method string, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		paths[method+" "+route] = true
		return nil
	}); err != nil {
		t.Fatalf("failed walking routes: %v", err)
	}

	expected := []string{
		"GET /api/v1/interview/templates",
		"GET /api/v1/interview/templates/{id}",
		"GET /api/v1/interview/code/languages",
		"POST /api/v1/interview/sessions",
		"GET /api/v1/interview/sessions",
		"GET /api/v1/interview/sessions/{id}/",
		"DELETE /api/v1/interview/sessions/{id}/",
		"POST /api/v1/interview/sessions/{id}/cancel",
		"POST /api/v1/interview/sessions/{id}/answer",
		"POST /api/v1/interview/sessions/{id}/answer/stream",
		"POST /api/v1/interview/sessions/{id}/code",
		"POST /api/v1/interview/sessions/{id}/code/stream",
		"POST /api/v1/interview/sessions/{id}/skip",
		"GET /api/v1/interview/sessions/{id}/summary",
		"POST /api/v1/interview/sessions/{id}/summary/stream",
		"POST /api/v1/interview/sessions/{id}/events",
		"GET /api/v1/interview/sessions/{id}/events",
	}

	for _, route := range expected {
		if !paths[route] {
			t.Fatalf("expected route %s to be registered", route)
		}
	}
}
