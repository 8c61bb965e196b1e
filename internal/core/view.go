package core

// ChartKind selects the renderer for a series.
type ChartKind string

const (
	BarChart  ChartKind = "bar"
	LineChart ChartKind = "line"
)

// Point is one (month, value) pair of a series.
type Point struct {
	Month string `json:"month"`
	Value int64  `json:"value"`
}

// ChartSeries is a renderer-agnostic chart specification.
type ChartSeries struct {
	Kind        ChartKind `json:"kind"`
	Title       string    `json:"title"`
	YAxisTitle  string    `json:"y_axis_title"`
	Points      []Point   `json:"points"`
	Colors      []string  `json:"colors,omitempty"`
	ShowMarkers bool      `json:"show_markers"`
	ValueLabels bool      `json:"value_labels"`
}

// DerivedView bundles everything recomputed when the selection changes.
type DerivedView struct {
	Bar   ChartSeries
	Line  ChartSeries
	Total string
}

// ChartUpdate is a per-slot routing decision: either keep the chart as it is
// or replace it with a new series. The zero value means keep.
type ChartUpdate struct {
	Replace bool
	Series  ChartSeries
}

// KeepChart leaves the output slot untouched.
func KeepChart() ChartUpdate { return ChartUpdate{} }

// ReplaceChart routes a new series to the output slot.
func ReplaceChart(s ChartSeries) ChartUpdate {
	return ChartUpdate{Replace: true, Series: s}
}

// ViewUpdate is the routed result of one selection-change trigger. The total
// slot always updates: it carries either the formatted total or a warning or
// error message when the charts are kept.
type ViewUpdate struct {
	Bar   ChartUpdate
	Line  ChartUpdate
	Total string
	OK    bool
}
