package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/GregMSThompson/widget-builder/internal/dto"
	"github.com/GregMSThompson/widget-builder/internal/middleware"
	"github.com/GregMSThompson/widget-builder/internal/models"
	"github.com/GregMSThompson/widget-builder/internal/render"
	"github.com/GregMSThompson/widget-builder/internal/response"
	"github.com/GregMSThompson/widget-builder/internal/widget"
)

type WidgetService interface {
	Catalog() []widget.Descriptor
	Descriptor(t widget.VisualizationType) (widget.Descriptor, error)
	List(ctx context.Context, uid string) ([]*models.Widget, error)
	Get(ctx context.Context, uid, widgetID string) (*models.Widget, error)
	Create(ctx context.Context, uid string, cfg widget.Config) (*models.Widget, error)
	Update(ctx context.Context, uid, widgetID string, cfg widget.Config) (*models.Widget, error)
	Delete(ctx context.Context, uid, widgetID string) error
	Reorder(ctx context.Context, uid string, req dto.ReorderWidgetsRequest) error
	Validate(ctx context.Context, cfg widget.Config) (widget.Errors, error)
	AvailableFields(ctx context.Context, formIDs []string) (widget.AvailableFields, error)
	ApplyEdit(cfg widget.Config, raw json.RawMessage) (widget.Config, error)
	Preview(cfg widget.Config) render.Chart
	Render(req dto.RenderRequest) (render.Chart, error)
	RenderWidget(ctx context.Context, uid, widgetID string) (dto.WidgetChartResponse, error)
}

type widgetHandlers struct {
	ResponseHandler response.ResponseHandler
	WidgetSvc       WidgetService
}

func NewWidgetHandlers(deps *Deps) *widgetHandlers {
	return &widgetHandlers{
		ResponseHandler: deps.ResponseHandler,
		WidgetSvc:       deps.WidgetSvc,
	}
}

func (h *widgetHandlers) WidgetTypeRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ListWidgetTypes)
	r.Get("/{type}", h.GetWidgetType)
	return r
}

func (h *widgetHandlers) WidgetRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ListWidgets)
	r.Post("/", h.CreateWidget)

	// design-time operations; nothing is stored
	r.Post("/validate", h.ValidateConfig)
	r.Post("/fields", h.AvailableFields)
	r.Post("/edit", h.ApplyEdit)
	r.Post("/preview", h.Preview)
	r.Post("/render", h.Render)

	r.Put("/reorder", h.ReorderWidgets) // must be before /{widgetId}
	r.Get("/{widgetId}", h.GetWidget)
	r.Put("/{widgetId}", h.UpdateWidget)
	r.Delete("/{widgetId}", h.DeleteWidget)
	r.Get("/{widgetId}/chart", h.GetWidgetChart)
	return r
}

func (h *widgetHandlers) ListWidgetTypes(w http.ResponseWriter, r *http.Request) {
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, h.WidgetSvc.Catalog())
}

func (h *widgetHandlers) GetWidgetType(w http.ResponseWriter, r *http.Request) {
	t := widget.VisualizationType(chi.URLParam(r, "type"))
	d, err := h.WidgetSvc.Descriptor(t)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, d)
}

func (h *widgetHandlers) ListWidgets(w http.ResponseWriter, r *http.Request) {
	uid := middleware.UID(r.Context())
	widgets, err := h.WidgetSvc.List(r.Context(), uid)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, widgets)
}

func (h *widgetHandlers) CreateWidget(w http.ResponseWriter, r *http.Request) {
	var req dto.SaveWidgetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	uid := middleware.UID(r.Context())
	created, err := h.WidgetSvc.Create(r.Context(), uid, req.Config)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusCreated, created)
}

func (h *widgetHandlers) GetWidget(w http.ResponseWriter, r *http.Request) {
	widgetID := chi.URLParam(r, "widgetId")
	uid := middleware.UID(r.Context())
	found, err := h.WidgetSvc.Get(r.Context(), uid, widgetID)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, found)
}

func (h *widgetHandlers) UpdateWidget(w http.ResponseWriter, r *http.Request) {
	widgetID := chi.URLParam(r, "widgetId")
	var req dto.SaveWidgetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	uid := middleware.UID(r.Context())
	updated, err := h.WidgetSvc.Update(r.Context(), uid, widgetID, req.Config)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, updated)
}

func (h *widgetHandlers) ReorderWidgets(w http.ResponseWriter, r *http.Request) {
	var req dto.ReorderWidgetsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	uid := middleware.UID(r.Context())
	if err := h.WidgetSvc.Reorder(r.Context(), uid, req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, nil)
}

func (h *widgetHandlers) DeleteWidget(w http.ResponseWriter, r *http.Request) {
	widgetID := chi.URLParam(r, "widgetId")
	uid := middleware.UID(r.Context())
	if err := h.WidgetSvc.Delete(r.Context(), uid, widgetID); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, nil)
}

func (h *widgetHandlers) GetWidgetChart(w http.ResponseWriter, r *http.Request) {
	widgetID := chi.URLParam(r, "widgetId")
	uid := middleware.UID(r.Context())
	chart, err := h.WidgetSvc.RenderWidget(r.Context(), uid, widgetID)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, chart)
}

func (h *widgetHandlers) ValidateConfig(w http.ResponseWriter, r *http.Request) {
	var cfg widget.Config
	if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	problems, err := h.WidgetSvc.Validate(r.Context(), cfg)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, dto.ValidateResponse{
		Valid:  len(problems) == 0,
		Errors: problems,
	})
}

func (h *widgetHandlers) AvailableFields(w http.ResponseWriter, r *http.Request) {
	var req dto.AvailableFieldsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	fields, err := h.WidgetSvc.AvailableFields(r.Context(), req.FormIDs)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, fields)
}

func (h *widgetHandlers) ApplyEdit(w http.ResponseWriter, r *http.Request) {
	var req dto.EditRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	cfg, err := h.WidgetSvc.ApplyEdit(req.Config, req.Edit)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, cfg)
}

func (h *widgetHandlers) Preview(w http.ResponseWriter, r *http.Request) {
	var cfg widget.Config
	if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, h.WidgetSvc.Preview(cfg))
}

func (h *widgetHandlers) Render(w http.ResponseWriter, r *http.Request) {
	var req dto.RenderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	chart, err := h.WidgetSvc.Render(req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, chart)
}
