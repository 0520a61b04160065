package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/GregMSThompson/widget-builder/internal/dto"
	"github.com/GregMSThompson/widget-builder/internal/models"
	"github.com/GregMSThompson/widget-builder/internal/response"
)

type FormService interface {
	ListForms(ctx context.Context) ([]*models.Form, error)
}

type formHandlers struct {
	ResponseHandler response.ResponseHandler
	FormSvc         FormService
}

func NewFormHandlers(deps *Deps) *formHandlers {
	return &formHandlers{
		ResponseHandler: deps.ResponseHandler,
		FormSvc:         deps.FormSvc,
	}
}

func (h *formHandlers) FormRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ListForms)
	return r
}

func (h *formHandlers) ListForms(w http.ResponseWriter, r *http.Request) {
	forms, err := h.FormSvc.ListForms(r.Context())
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	out := dto.FormsResponse{Forms: make([]dto.FormSummary, len(forms))}
	for i, f := range forms {
		out.Forms[i] = dto.FormSummary{ID: f.FormID, Name: f.Name, CountryFields: f.CountryFields}
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, out)
}
