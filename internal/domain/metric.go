package domain

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// Icon is a single-cell glyph standing in for a metric's artwork.
type Icon string

const (
	IconScale   Icon = "⚖"
	IconRuler   Icon = "↔"
	IconTrend   Icon = "↗"
	IconDroplet Icon = "≋"
	IconPulse   Icon = "∿"
)

// MetricDef describes a trackable body metric.
type MetricDef struct {
	ID          string
	Name        string
	Unit        string
	Placeholder string // example value shown in empty inputs
	Color       string // hex accent
	Icon        Icon
}

// Metric is a definition joined with its most recent reading.
type Metric struct {
	MetricDef
	Value     float64
	UpdatedAt time.Time
	HasData   bool
}

// MetricEntry is one recorded reading.
type MetricEntry struct {
	ID         string    `json:"id"`
	MetricID   string    `json:"metric_id"`
	Value      float64   `json:"value"`
	Unit       string    `json:"unit"`
	RecordedAt time.Time `json:"recorded_at"`
}

// catalog is the fixed, ordered set of metrics the app tracks.
var catalog = []MetricDef{
	{ID: "weight", Name: "Weight", Unit: "kg", Placeholder: "78", Color: "#3B82F6", Icon: IconScale},
	{ID: "chest", Name: "Chest", Unit: "in", Placeholder: "36", Color: "#10B981", Icon: IconRuler},
	{ID: "shoulders", Name: "Shoulders", Unit: "in", Placeholder: "42", Color: "#F59E0B", Icon: IconRuler},
	{ID: "waist", Name: "Waist", Unit: "in", Placeholder: "32", Color: "#EF4444", Icon: IconRuler},
	{ID: "thigh", Name: "Thigh", Unit: "in", Placeholder: "24", Color: "#8B5CF6", Icon: IconRuler},
	{ID: "hip", Name: "Hip", Unit: "in", Placeholder: "38", Color: "#EC4899", Icon: IconRuler},
	{ID: "bodyfat", Name: "Body Fat", Unit: "%", Placeholder: "15", Color: "#06B6D4", Icon: IconTrend},
	{ID: "bicep", Name: "Bicep", Unit: "in", Placeholder: "14", Color: "#F97316", Icon: IconRuler},
	{ID: "water", Name: "Water intake", Unit: "L", Placeholder: "2.5", Color: "#0EA5E9", Icon: IconDroplet},
	{ID: "steps", Name: "Steps", Unit: "steps", Placeholder: "10000", Color: "#84CC16", Icon: IconPulse},
}

// Catalog returns a copy of the metric definitions in display order.
func Catalog() []MetricDef {
	out := make([]MetricDef, len(catalog))
	copy(out, catalog)
	return out
}

// LookupMetric finds a metric definition by ID (case-insensitive).
func LookupMetric(id string) (MetricDef, bool) {
	id = strings.ToLower(strings.TrimSpace(id))
	for _, def := range catalog {
		if def.ID == id {
			return def, true
		}
	}
	return MetricDef{}, false
}

// ParseValue parses a user-typed metric value.
func ParseValue(raw string) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, ErrEmptyValue
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, ErrInvalidValue
	}
	return v, nil
}

// FormatValue renders a reading without trailing zeros ("78", "2.5").
func FormatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Display renders the latest reading with its unit, e.g. "78 kg".
func (m Metric) Display() string {
	return FormatValue(m.Value) + " " + m.Unit
}
