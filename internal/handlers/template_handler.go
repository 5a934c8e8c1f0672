package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"careerprep/interview/internal/models"
	"careerprep/interview/internal/templates"
	"careerprep/interview/internal/utils"
)

// TemplateHandler serves the built-in interview template catalog.
type TemplateHandler struct{}

func NewTemplateHandler() *TemplateHandler {
	return &TemplateHandler{}
}

func (h *TemplateHandler) ListTemplatesHandler(w http.ResponseWriter, r *http.Request) {
	summaries := templates.List()
	utils.JSON(w, http.StatusOK, map[string]interface{}{
		"templates": summaries,
		"count":     len(summaries),
	})
}

func (h *TemplateHandler) GetTemplateHandler(w http.ResponseWriter, r *http.Request) {
	templateID := chi.URLParam(r, "id")

	template := templates.Get(templateID)
	if template == nil {
		utils.JSON(w, http.StatusNotFound, models.ErrorResponse{
			Code:    "template_not_found",
			Message: "Template not found: " + templateID,
		})
		return
	}
	utils.JSON(w, http.StatusOK, template)
}
