package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/GregMSThompson/widget-builder/internal/dto"
	"github.com/GregMSThompson/widget-builder/internal/errs"
	"github.com/GregMSThompson/widget-builder/internal/models"
	"github.com/GregMSThompson/widget-builder/internal/render"
	"github.com/GregMSThompson/widget-builder/internal/widget"
	"github.com/GregMSThompson/widget-builder/pkg/logger"
)

// widgetStore is the Firestore storage interface for widgets.
type widgetStore interface {
	Create(ctx context.Context, uid string, w *models.Widget) error
	Get(ctx context.Context, uid, widgetID string) (*models.Widget, error)
	List(ctx context.Context, uid string) ([]*models.Widget, error)
	Update(ctx context.Context, uid string, w *models.Widget) error
	Delete(ctx context.Context, uid, widgetID string) error
	Count(ctx context.Context, uid string) (int, error)
	BulkUpdatePositions(ctx context.Context, uid string, positions map[string]int) error
}

// fieldSource supplies form field metadata.
type fieldSource interface {
	FieldsByForm(ctx context.Context, formIDs []string) (map[string][]widget.FieldDescriptor, error)
	AvailableFields(ctx context.Context, formIDs []string) (widget.AvailableFields, error)
}

// queryExecutor runs a configuration against the aggregation service.
type queryExecutor interface {
	Execute(ctx context.Context, cfg widget.Config) (widget.Payload, error)
}

type widgetService struct {
	store          widgetStore
	fields         fieldSource
	query          queryExecutor
	defaultPalette string
}

func NewWidgetService(store widgetStore, fields fieldSource, query queryExecutor, defaultPalette string) *widgetService {
	if defaultPalette == "" {
		defaultPalette = render.DefaultPalette
	}
	return &widgetService{store: store, fields: fields, query: query, defaultPalette: defaultPalette}
}

// --- Public service methods ---

func (s *widgetService) Catalog() []widget.Descriptor {
	return widget.Descriptors()
}

// Descriptor returns the capabilities of one visualization type.
func (s *widgetService) Descriptor(t widget.VisualizationType) (widget.Descriptor, error) {
	d, ok := widget.Lookup(t)
	if !ok {
		return widget.Descriptor{}, errs.NewUnknownTypeError(string(t))
	}
	return d, nil
}

func (s *widgetService) List(ctx context.Context, uid string) ([]*models.Widget, error) {
	return s.store.List(ctx, uid)
}

func (s *widgetService) Get(ctx context.Context, uid, widgetID string) (*models.Widget, error) {
	return s.store.Get(ctx, uid, widgetID)
}

// Create validates cfg and appends it to the user's widgets.
func (s *widgetService) Create(ctx context.Context, uid string, cfg widget.Config) (*models.Widget, error) {
	cfg, err := s.checkForSave(ctx, cfg)
	if err != nil {
		return nil, err
	}
	count, err := s.store.Count(ctx, uid)
	if err != nil {
		return nil, err
	}
	w := &models.Widget{
		WidgetID: uuid.New().String(),
		Position: count + 1,
		Config:   cfg,
	}
	if err := s.store.Create(ctx, uid, w); err != nil {
		return nil, err
	}
	logger.FromContext(ctx).Info("widget created", "widget_id", w.WidgetID, "type", cfg.VisualizationType)
	return w, nil
}

// Update replaces a widget's configuration wholesale.
func (s *widgetService) Update(ctx context.Context, uid, widgetID string, cfg widget.Config) (*models.Widget, error) {
	w, err := s.store.Get(ctx, uid, widgetID)
	if err != nil {
		return nil, err
	}
	cfg, err = s.checkForSave(ctx, cfg)
	if err != nil {
		return nil, err
	}
	w.Config = cfg
	if err := s.store.Update(ctx, uid, w); err != nil {
		return nil, err
	}
	return w, nil
}

func (s *widgetService) Delete(ctx context.Context, uid, widgetID string) error {
	return s.store.Delete(ctx, uid, widgetID)
}

func (s *widgetService) Reorder(ctx context.Context, uid string, req dto.ReorderWidgetsRequest) error {
	if len(req.WidgetOrder) == 0 {
		return errs.NewValidationError("widgetOrder must not be empty")
	}
	positions := make(map[string]int, len(req.WidgetOrder))
	for _, item := range req.WidgetOrder {
		if item.WidgetID == "" {
			return errs.NewValidationError("widgetOrder entries need a widgetId")
		}
		if _, dup := positions[item.WidgetID]; dup {
			return errs.NewValidationError("duplicate widgetId in widgetOrder: " + item.WidgetID)
		}
		positions[item.WidgetID] = item.Position
	}
	return s.store.BulkUpdatePositions(ctx, uid, positions)
}

// Validate checks cfg against current form metadata and returns the
// field-keyed messages. An empty result means cfg may be saved.
func (s *widgetService) Validate(ctx context.Context, cfg widget.Config) (widget.Errors, error) {
	_, problems, err := s.validate(ctx, cfg)
	return problems, err
}

func (s *widgetService) AvailableFields(ctx context.Context, formIDs []string) (widget.AvailableFields, error) {
	return s.fields.AvailableFields(ctx, formIDs)
}

// ApplyEdit decodes one edit and applies it to cfg.
func (s *widgetService) ApplyEdit(cfg widget.Config, raw json.RawMessage) (widget.Config, error) {
	if len(raw) == 0 {
		return widget.Config{}, errs.NewValidationError("edit is required")
	}
	e, err := widget.DecodeEdit(raw)
	if err != nil {
		return widget.Config{}, errs.NewValidationError(err.Error())
	}
	return widget.Apply(cfg, withIDs(e)), nil
}

// withIDs assigns fresh ids to added metrics and filters that arrive
// without one.
func withIDs(e widget.Edit) widget.Edit {
	switch v := e.(type) {
	case widget.AddMetric:
		if v.ID == "" {
			v.ID = uuid.New().String()
		}
		return v
	case widget.AddFilter:
		if v.Filter.ID == "" {
			v.Filter.ID = uuid.New().String()
		}
		return v
	}
	return e
}

func (s *widgetService) Preview(cfg widget.Config) render.Chart {
	return render.Render(nil, cfg, render.Flags{Preview: true})
}

// Render draws a payload the caller already holds.
func (s *widgetService) Render(req dto.RenderRequest) (render.Chart, error) {
	var p widget.Payload
	if len(req.Payload) > 0 && string(req.Payload) != "null" {
		var err error
		p, err = widget.DecodePayload(req.Payload)
		if err != nil {
			return render.Chart{}, errs.NewValidationError(err.Error())
		}
	}
	return render.Render(p, req.Config, render.Flags{
		Loading: req.Loading,
		Error:   req.Error,
		Preview: req.Preview,
	}), nil
}

// RenderWidget runs a saved widget against the aggregation service. Data
// errors are not returned: they become the chart's error state.
func (s *widgetService) RenderWidget(ctx context.Context, uid, widgetID string) (dto.WidgetChartResponse, error) {
	w, err := s.store.Get(ctx, uid, widgetID)
	if err != nil {
		return dto.WidgetChartResponse{}, err
	}

	resp := dto.WidgetChartResponse{WidgetID: widgetID, LastUpdated: time.Now()}
	payload, err := s.query.Execute(ctx, w.Config)
	if err != nil {
		logger.FromContext(ctx).Warn("widget query failed", "widget_id", widgetID, "error", err)
		resp.Chart = render.ErrorChart(w.Config)
		return resp, nil
	}
	resp.Chart = render.Render(payload, w.Config, render.Flags{})
	return resp, nil
}

// --- Validation ---

// checkForSave fills defaults, validates and returns the configuration to
// persist, or a ConfigError listing every problem.
func (s *widgetService) checkForSave(ctx context.Context, cfg widget.Config) (widget.Config, error) {
	if cfg.Appearance.PaletteID == "" {
		cfg.Appearance.PaletteID = s.defaultPalette
	}
	cfg, problems, err := s.validate(ctx, cfg)
	if err != nil {
		return widget.Config{}, err
	}
	if len(problems) > 0 {
		logger.FromContext(ctx).Debug("widget configuration rejected", "errors", problems)
		return widget.Config{}, errs.NewConfigError(problems)
	}
	return cfg, nil
}

// validate refreshes field types from form metadata and runs the validator.
// References to forms or fields that no longer exist are reported as
// configuration errors too.
func (s *widgetService) validate(ctx context.Context, cfg widget.Config) (widget.Config, widget.Errors, error) {
	cfg = cfg.Clone()
	formIDs := widget.FormIDs(cfg.Metrics)
	formIDs = append(formIDs, widget.MapFormIDs(cfg.Options.Map)...)
	for _, f := range cfg.Filters {
		if f.FormID != "" {
			formIDs = append(formIDs, f.FormID)
		}
	}

	byForm, err := s.fields.FieldsByForm(ctx, formIDs)
	if err != nil {
		return cfg, nil, err
	}

	cfg = hydrate(cfg, byForm)
	problems := widget.Validate(cfg)
	avail := widget.ResolveFields(widget.FormIDs(cfg.Metrics), byForm)
	for _, extra := range []widget.Errors{missingReferences(cfg, byForm), widget.ValidateGrouping(cfg, avail)} {
		for k, v := range extra {
			if _, ok := problems[k]; !ok {
				problems[k] = v
			}
		}
	}
	return cfg, problems, nil
}

// hydrate copies the current field types onto metrics and filters. cfg's
// slices are written in place.
func hydrate(cfg widget.Config, byForm map[string][]widget.FieldDescriptor) widget.Config {
	for i, m := range cfg.Metrics {
		if id := m.Field.FieldID(); id != "" {
			if d, ok := findField(byForm[m.FormID], id); ok {
				cfg.Metrics[i].FieldType = d.Type
			}
		}
	}
	shared := widget.ResolveFields(widget.FormIDs(cfg.Metrics), byForm)
	for i, f := range cfg.Filters {
		if f.Field.IsSystem() {
			continue
		}
		if f.FormID != "" {
			if d, ok := findField(byForm[f.FormID], f.Field.ID); ok {
				cfg.Filters[i].FieldType = d.Type
			}
			continue
		}
		if d, ok := shared.Find(f.Field); ok {
			cfg.Filters[i].FieldType = d.Type
		}
	}
	return cfg
}

func missingReferences(cfg widget.Config, byForm map[string][]widget.FieldDescriptor) widget.Errors {
	out := widget.Errors{}
	for _, m := range cfg.Metrics {
		if m.FormID == "" {
			continue
		}
		fields, ok := byForm[m.FormID]
		switch {
		case !ok:
			out["metrics."+m.ID+".formId"] = "Form not found"
		case m.Field.FieldID() != "":
			if _, found := findField(fields, m.Field.FieldID()); !found {
				out["metrics."+m.ID+".field"] = "Field not found on form"
			}
		}
	}
	if cfg.Options.Map != nil {
		for _, m := range cfg.Options.Map.Metrics {
			if m.FormID == "" {
				continue
			}
			fields, ok := byForm[m.FormID]
			if !ok {
				out["options.map.metrics."+m.ID+".formId"] = "Form not found"
				continue
			}
			for _, id := range []string{m.CountryFieldID, m.ValueFieldID} {
				if id == "" {
					continue
				}
				if _, found := findField(fields, id); !found {
					out["options.map.metrics."+m.ID+".field"] = "Field not found on form"
				}
			}
		}
	}
	return out
}

func findField(fields []widget.FieldDescriptor, id string) (widget.FieldDescriptor, bool) {
	for _, f := range fields {
		if f.ID == id {
			return f, true
		}
	}
	return widget.FieldDescriptor{}, false
}
