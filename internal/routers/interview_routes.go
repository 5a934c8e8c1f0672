package routers

import (
	"github.com/go-chi/chi/v5"

	"careerprep/interview/internal/handlers"
	"careerprep/interview/internal/middleware"
	"careerprep/interview/internal/models"
)

func InterviewRoutes(router *chi.Mux, interviewHandler *handlers.InterviewHandler, templateHandler *handlers.TemplateHandler) {
	router.Route("/api/v1/interview", func(r chi.Router) {
		r.Get("/templates", templateHandler.ListTemplatesHandler)
		r.Get("/templates/{id}", templateHandler.GetTemplateHandler)

		r.Get("/code/languages", interviewHandler.LanguagesHandler)

		r.With(middleware.ValidateRequest[*models.CreateSessionRequest]()).Post("/sessions", interviewHandler.CreateSessionHandler)
		r.Get("/sessions", interviewHandler.ListSessionsHandler)

		r.Route("/sessions/{id}", func(r chi.Router) {
			r.Get("/", interviewHandler.GetSessionHandler)
			r.Delete("/", interviewHandler.DeleteSessionHandler)
			r.Post("/cancel", interviewHandler.CancelSessionHandler)

			r.With(middleware.ValidateRequest[*models.SubmitAnswerRequest]()).Post("/answer", interviewHandler.SubmitAnswerHandler)
			r.With(middleware.ValidateRequest[*models.SubmitAnswerRequest]()).Post("/answer/stream", interviewHandler.SubmitAnswerStreamHandler)

			r.With(middleware.ValidateRequest[*models.ExecuteCodeRequest]()).Post("/code", interviewHandler.ExecuteCodeHandler)
			r.With(middleware.ValidateRequest[*models.ExecuteCodeRequest]()).Post("/code/stream", interviewHandler.ExecuteCodeStreamHandler)

			r.With(middleware.ValidateRequest[*models.SkipQuestionRequest]()).Post("/skip", interviewHandler.SkipQuestionHandler)

			r.Get("/summary", interviewHandler.GetSummaryHandler)
			r.Post("/summary/stream", interviewHandler.SummaryStreamHandler)

			r.With(middleware.ValidateRequest[*models.RecordEventRequest]()).Post("/events", interviewHandler.RecordEventHandler)
			r.Get("/events", interviewHandler.GetEventsHandler)
		})
	})
}
