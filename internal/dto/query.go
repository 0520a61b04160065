package dto

import "github.com/GregMSThompson/widget-builder/internal/widget"

// QueryRequest is the body sent to the aggregation service. DateFrom and
// DateTo are the resolved bounds of the configuration's date range; both
// are empty for an all-time range.
type QueryRequest struct {
	Config   widget.Config `json:"config"`
	DateFrom string        `json:"dateFrom,omitempty"`
	DateTo   string        `json:"dateTo,omitempty"`
	Timezone string        `json:"timezone"`
}
