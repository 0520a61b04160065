package render

import (
	"fmt"
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/GregMSThompson/widget-builder/internal/widget"
	"github.com/GregMSThompson/widget-builder/pkg/helpers"
)

const (
	DefaultPalette           = "default"
	DefaultSequentialPalette = "greens"
	sequentialSteps          = 7
)

var categoricalPalettes = map[string][]string{
	DefaultPalette: {
		"#4F46E5", "#10B981", "#F59E0B", "#EF4444", "#8B5CF6",
		"#06B6D4", "#EC4899", "#84CC16", "#F97316", "#6366F1",
	},
	"vivid": {
		"#E6194B", "#3CB44B", "#FFE119", "#4363D8", "#F58231", "#911EB4", "#46F0F0", "#F032E6",
	},
	"pastel": {
		"#A1C9F4", "#FFB482", "#8DE5A1", "#FF9F9B", "#D0BBFF", "#DEBB9B", "#FAB0E4", "#CFCFCF",
	},
	"earth": {
		"#8C510A", "#BF812D", "#DFC27D", "#80CDC1", "#35978F", "#01665E", "#543005", "#003C30",
	},
}

// sequential palettes are generated from a light and a dark endpoint
var sequentialEndpoints = map[string][2]string{
	"greens":  {"#EDF8E9", "#006D2C"},
	"blues":   {"#EFF3FF", "#08519C"},
	"oranges": {"#FEEDDE", "#A63603"},
	"purples": {"#F2F0F7", "#54278F"},
}

var sequentialPalettes = buildSequential()

func buildSequential() map[string][]string {
	out := make(map[string][]string, len(sequentialEndpoints))
	for id, ends := range sequentialEndpoints {
		light, err := colorful.Hex(ends[0])
		if err != nil {
			panic(fmt.Sprintf("render: bad palette color %s: %v", ends[0], err))
		}
		dark, err := colorful.Hex(ends[1])
		if err != nil {
			panic(fmt.Sprintf("render: bad palette color %s: %v", ends[1], err))
		}
		steps := make([]string, sequentialSteps)
		for i := range steps {
			t := float64(i) / float64(sequentialSteps-1)
			steps[i] = light.BlendLab(dark, t).Clamped().Hex()
		}
		out[id] = steps
	}
	return out
}

// CategoricalPalette returns the colors of a preset, falling back to the
// default preset for unknown ids.
func CategoricalPalette(id string) []string {
	if p, ok := categoricalPalettes[id]; ok {
		return p
	}
	return categoricalPalettes[DefaultPalette]
}

// SequentialPalette returns the graded steps of a sequential palette, lightest
// first, falling back to greens for unknown ids.
func SequentialPalette(id string) []string {
	if p, ok := sequentialPalettes[id]; ok {
		return p
	}
	return sequentialPalettes[DefaultSequentialPalette]
}

// CategoricalColor returns the color for the index-th series or slice. The
// palette repeats once the index passes its size.
func CategoricalColor(index int, paletteID string) string {
	p := CategoricalPalette(paletteID)
	if index < 0 {
		index = -index
	}
	return p[index%len(p)]
}

// SequentialColor grades value against maxValue: 0 maps to the lightest step
// and maxValue to the darkest. maxValue below 1 is treated as 1.
func SequentialColor(value, maxValue float64, paletteID string) string {
	steps := SequentialPalette(paletteID)
	if maxValue < 1 || math.IsNaN(maxValue) {
		maxValue = 1
	}
	ratio := value / maxValue
	switch {
	case math.IsNaN(ratio) || ratio < 0:
		ratio = 0
	case ratio > 1:
		ratio = 1
	}
	return steps[int(math.Round(ratio*float64(len(steps)-1)))]
}

// MaxValue is max(1, max(values)).
func MaxValue(values []float64) float64 {
	m := 1.0
	for _, v := range values {
		if v > m {
			m = v
		}
	}
	return m
}

// ColorResolver picks series colors for one widget. Overrides are keyed by
// metric id and only apply in custom palette mode.
type ColorResolver struct {
	paletteID string
	overrides map[string]string
}

// NewColorResolver builds a resolver from a widget's appearance and metrics.
// Appearance-level series colors win over a metric's own color.
func NewColorResolver(a widget.Appearance, metrics []widget.Metric) ColorResolver {
	r := ColorResolver{paletteID: a.PaletteID, overrides: map[string]string{}}
	if a.PaletteMode != widget.PaletteCustom {
		return r
	}
	for _, m := range metrics {
		if c := helpers.Value(m.Appearance).Color; c != "" {
			r.overrides[m.ID] = c
		}
	}
	for id, c := range a.SeriesColors {
		if c != "" {
			r.overrides[id] = c
		}
	}
	return r
}

// Color returns the override for metricID if one exists, otherwise the
// preset color for index.
func (r ColorResolver) Color(index int, metricID string) string {
	if metricID != "" {
		if c, ok := r.overrides[metricID]; ok {
			return c
		}
	}
	return CategoricalColor(index, r.paletteID)
}
