package dto

import (
	"encoding/json"
	"time"

	"github.com/GregMSThompson/widget-builder/internal/render"
	"github.com/GregMSThompson/widget-builder/internal/widget"
)

// --- Request types ---

// SaveWidgetRequest creates a widget or replaces a widget's configuration
// wholesale.
type SaveWidgetRequest struct {
	Config widget.Config `json:"config"`
}

type ReorderWidgetItem struct {
	WidgetID string `json:"widgetId"`
	Position int    `json:"position"`
}

type ReorderWidgetsRequest struct {
	WidgetOrder []ReorderWidgetItem `json:"widgetOrder"`
}

type AvailableFieldsRequest struct {
	FormIDs []string `json:"formIds"`
}

// EditRequest applies one edit to a configuration snapshot.
type EditRequest struct {
	Config widget.Config   `json:"config"`
	Edit   json.RawMessage `json:"edit"`
}

// RenderRequest renders a payload the caller already holds. Payload may be
// absent.
type RenderRequest struct {
	Config  widget.Config   `json:"config"`
	Payload json.RawMessage `json:"payload,omitempty"`
	Loading bool            `json:"loading,omitempty"`
	Error   string          `json:"error,omitempty"`
	Preview bool            `json:"preview,omitempty"`
}

// --- Response types ---

type ValidateResponse struct {
	Valid  bool              `json:"valid"`
	Errors map[string]string `json:"errors"`
}

type WidgetChartResponse struct {
	WidgetID    string       `json:"widgetId"`
	Chart       render.Chart `json:"chart"`
	LastUpdated time.Time    `json:"lastUpdated"`
}

type FormsResponse struct {
	Forms []FormSummary `json:"forms"`
}

type FormSummary struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	CountryFields []string `json:"countryFields,omitempty"`
}
