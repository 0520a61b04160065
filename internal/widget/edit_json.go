package widget

import (
	"encoding/json"
	"fmt"
)

// editEnvelope is the wire form of an Edit: {"op": "...", ...}. Only the
// fields the op needs are read.
type editEnvelope struct {
	Op                string            `json:"op"`
	Title             string            `json:"title"`
	Description       string            `json:"description"`
	VisualizationType VisualizationType `json:"visualizationType"`
	MetricMode        MetricMode        `json:"metricMode"`
	ID                string            `json:"id"`
	MetricID          string            `json:"metricId"`
	FormID            string            `json:"formId"`
	Field             FieldRef          `json:"field"`
	FieldType         FieldType         `json:"fieldType"`
	Aggregation       AggregationFn     `json:"aggregation"`
	Label             string            `json:"label"`
	SeriesAppearance  *SeriesAppearance `json:"seriesAppearance"`
	GroupBy           GroupBy           `json:"groupBy"`
	DateRange         DateRange         `json:"dateRange"`
	Filter            Filter            `json:"filter"`
	Appearance        Appearance        `json:"appearance"`
	MapOptions        MapOptions        `json:"mapOptions"`
}

// DecodeEdit reads one JSON encoded edit.
func DecodeEdit(data []byte) (Edit, error) {
	var env editEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("decode edit: %w", err)
	}

	switch env.Op {
	case "setTitle":
		return SetTitle{Title: env.Title}, nil
	case "setDescription":
		return SetDescription{Description: env.Description}, nil
	case "setVisualizationType":
		return SetVisualizationType{Type: env.VisualizationType}, nil
	case "setMetricMode":
		return SetMetricMode{Mode: env.MetricMode}, nil
	case "addMetric":
		return AddMetric{ID: env.ID}, nil
	case "removeMetric":
		return RemoveMetric{ID: env.ID}, nil
	case "setMetricForm":
		return SetMetricForm{MetricID: env.MetricID, FormID: env.FormID}, nil
	case "setMetricField":
		return SetMetricField{MetricID: env.MetricID, Field: env.Field, FieldType: env.FieldType}, nil
	case "setMetricAggregation":
		return SetMetricAggregation{MetricID: env.MetricID, Aggregation: env.Aggregation}, nil
	case "setMetricLabel":
		return SetMetricLabel{MetricID: env.MetricID, Label: env.Label}, nil
	case "setMetricAppearance":
		return SetMetricAppearance{MetricID: env.MetricID, Appearance: env.SeriesAppearance}, nil
	case "setGroupBy":
		return SetGroupBy{GroupBy: env.GroupBy}, nil
	case "setDateRange":
		return SetDateRange{DateRange: env.DateRange}, nil
	case "addFilter":
		return AddFilter{Filter: env.Filter}, nil
	case "updateFilter":
		return UpdateFilter{Filter: env.Filter}, nil
	case "removeFilter":
		return RemoveFilter{ID: env.ID}, nil
	case "setAppearance":
		return SetAppearance{Appearance: env.Appearance}, nil
	case "setMapOptions":
		return SetMapOptions{Options: env.MapOptions}, nil
	case "":
		return nil, fmt.Errorf("decode edit: missing op")
	default:
		return nil, fmt.Errorf("decode edit: unknown op %q", env.Op)
	}
}
