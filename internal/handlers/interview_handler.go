package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"careerprep/interview/internal/interview"
	"careerprep/interview/internal/middleware"
	"careerprep/interview/internal/models"
	"careerprep/interview/internal/sandbox"
	"careerprep/interview/internal/utils"
)

type InterviewHandler struct {
	orchestrator *interview.Orchestrator
	executor     sandbox.Executor
	logger       *zap.Logger
}

func NewInterviewHandler(orchestrator *interview.Orchestrator, executor sandbox.Executor, logger *zap.Logger) *InterviewHandler {
	return &InterviewHandler{
		orchestrator: orchestrator,
		executor:     executor,
		logger:       logger,
	}
}

func (h *InterviewHandler) CreateSessionHandler(w http.ResponseWriter, r *http.Request) {
	req := middleware.GetValidatedRequest[*models.CreateSessionRequest](r)

	resp, err := h.orchestrator.CreateSession(r.Context(), req.Profile, req.Config)
	if err != nil {
		h.logger.Error("Failed to create session", zap.Error(err))
		utils.JSON(w, http.StatusInternalServerError, models.ErrorResponse{
			Code:    "session_create_failed",
			Message: "Failed to create interview session",
		})
		return
	}

	utils.JSON(w, http.StatusCreated, resp)
}

func (h *InterviewHandler) GetSessionHandler(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")

	resp, err := h.orchestrator.GetSession(sessionID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, resp)
}

func (h *InterviewHandler) ListSessionsHandler(w http.ResponseWriter, r *http.Request) {
	status := models.Status(utils.NormalizeStatus(r.URL.Query().Get("status")))
	if status != "" && !status.Valid() {
		utils.JSON(w, http.StatusBadRequest, models.ErrorResponse{
			Code:    "invalid_status",
			Message: "Status must be one of: " + strings.Join(models.ValidStatusList(), ", "),
		})
		return
	}

	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			utils.JSON(w, http.StatusBadRequest, models.ErrorResponse{
				Code:    "invalid_limit",
				Message: "Limit must be a positive integer",
			})
			return
		}
		limit = parsed
	}

	resp, err := h.orchestrator.ListSessions(status, limit)
	if err != nil {
		h.writeError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, resp)
}

func (h *InterviewHandler) DeleteSessionHandler(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")

	resp, err := h.orchestrator.DeleteSession(sessionID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	if !resp.Deleted {
		utils.JSON(w, http.StatusNotFound, models.ErrorResponse{
			Code:    "session_not_found",
			Message: "Session not found: " + sessionID,
		})
		return
	}
	utils.JSON(w, http.StatusOK, resp)
}

func (h *InterviewHandler) CancelSessionHandler(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")

	resp, err := h.orchestrator.CancelSession(sessionID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, resp)
}

func (h *InterviewHandler) SubmitAnswerHandler(w http.ResponseWriter, r *http.Request) {
	req := middleware.GetValidatedRequest[*models.SubmitAnswerRequest](r)
	sessionID := chi.URLParam(r, "id")

	resp, err := h.orchestrator.SubmitAnswer(r.Context(), sessionID, req.QuestionID, req.Answer)
	if err != nil {
		h.writeError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, resp)
}

func (h *InterviewHandler) SubmitAnswerStreamHandler(w http.ResponseWriter, r *http.Request) {
	req := middleware.GetValidatedRequest[*models.SubmitAnswerRequest](r)
	sessionID := chi.URLParam(r, "id")

	if _, err := h.orchestrator.GetSession(sessionID); err != nil {
		h.writeError(w, err)
		return
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		utils.JSON(w, http.StatusInternalServerError, models.ErrorResponse{
			Code:    "streaming_unsupported",
			Message: "Streaming is not supported by this connection",
		})
		return
	}

	if err := h.orchestrator.SubmitAnswerStreaming(r.Context(), sessionID, req.QuestionID, req.Answer, sse.Send); err != nil {
		h.logger.Warn("Answer stream ended with error",
			zap.Error(err), zap.String("session_id", sessionID))
		sse.SendError(err.Error())
	}
}

func (h *InterviewHandler) ExecuteCodeHandler(w http.ResponseWriter, r *http.Request) {
	req := middleware.GetValidatedRequest[*models.ExecuteCodeRequest](r)
	sessionID := chi.URLParam(r, "id")

	result, err := h.orchestrator.ExecuteCode(r.Context(), sessionID, req)
	if err != nil {
		h.writeError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, result)
}

func (h *InterviewHandler) ExecuteCodeStreamHandler(w http.ResponseWriter, r *http.Request) {
	req := middleware.GetValidatedRequest[*models.ExecuteCodeRequest](r)
	sessionID := chi.URLParam(r, "id")

	if _, err := h.orchestrator.GetSession(sessionID); err != nil {
		h.writeError(w, err)
		return
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		utils.JSON(w, http.StatusInternalServerError, models.ErrorResponse{
			Code:    "streaming_unsupported",
			Message: "Streaming is not supported by this connection",
		})
		return
	}

	if err := h.orchestrator.ExecuteCodeStreaming(r.Context(), sessionID, req, sse.Send); err != nil {
		h.logger.Warn("Code stream ended with error",
			zap.Error(err), zap.String("session_id", sessionID))
		sse.SendError(err.Error())
	}
}

func (h *InterviewHandler) SkipQuestionHandler(w http.ResponseWriter, r *http.Request) {
	req := middleware.GetValidatedRequest[*models.SkipQuestionRequest](r)
	sessionID := chi.URLParam(r, "id")

	resp, err := h.orchestrator.SkipQuestion(sessionID, req.QuestionID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, resp)
}

func (h *InterviewHandler) GetSummaryHandler(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")

	resp, err := h.orchestrator.GetSummary(r.Context(), sessionID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, resp)
}

func (h *InterviewHandler) SummaryStreamHandler(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")

	if _, err := h.orchestrator.GetSession(sessionID); err != nil {
		h.writeError(w, err)
		return
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		utils.JSON(w, http.StatusInternalServerError, models.ErrorResponse{
			Code:    "streaming_unsupported",
			Message: "Streaming is not supported by this connection",
		})
		return
	}

	if err := h.orchestrator.GenerateSummaryStreaming(r.Context(), sessionID, sse.Send); err != nil {
		h.logger.Warn("Summary stream ended with error",
			zap.Error(err), zap.String("session_id", sessionID))
		sse.SendError(err.Error())
	}
}

func (h *InterviewHandler) RecordEventHandler(w http.ResponseWriter, r *http.Request) {
	req := middleware.GetValidatedRequest[*models.RecordEventRequest](r)
	sessionID := chi.URLParam(r, "id")

	resp, err := h.orchestrator.RecordEvent(sessionID, req.EventType, req.Metadata)
	if err != nil {
		h.writeError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, resp)
}

func (h *InterviewHandler) GetEventsHandler(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")

	eventType := models.EventType(utils.NormalizeEventType(r.URL.Query().Get("event_type")))
	if eventType != "" && !eventType.Valid() {
		utils.JSON(w, http.StatusBadRequest, models.ErrorResponse{
			Code:    "invalid_event_type",
			Message: "Event type must be one of: " + strings.Join(models.ValidEventTypeList(), ", "),
		})
		return
	}

	resp, err := h.orchestrator.GetEvents(sessionID, eventType)
	if err != nil {
		h.writeError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, resp)
}

func (h *InterviewHandler) LanguagesHandler(w http.ResponseWriter, r *http.Request) {
	languages := h.executor.SupportedLanguages()
	utils.JSON(w, http.StatusOK, map[string]interface{}{
		"languages": languages,
		"count":     len(languages),
	})
}

// writeError maps orchestrator errors onto the HTTP error taxonomy.
func (h *InterviewHandler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, interview.ErrSessionNotFound):
		utils.JSON(w, http.StatusNotFound, models.ErrorResponse{
			Code:    "session_not_found",
			Message: "Session not found",
		})
	case errors.Is(err, interview.ErrQuestionMismatch):
		utils.JSON(w, http.StatusConflict, models.ErrorResponse{
			Code:    "question_mismatch",
			Message: "Question does not match current interview state",
		})
	case errors.Is(err, interview.ErrNoActiveQuestion):
		utils.JSON(w, http.StatusConflict, models.ErrorResponse{
			Code:    "no_active_question",
			Message: "No active question for this session",
		})
	default:
		h.logger.Error("Unexpected error", zap.Error(err))
		utils.JSON(w, http.StatusInternalServerError, models.ErrorResponse{
			Code:    "internal_error",
			Message: "An unexpected error occurred",
		})
	}
}
