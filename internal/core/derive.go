package core

import (
	"errors"
	"fmt"
)

// monthPalette assigns one bar color per month, cycling if the table grows.
var monthPalette = []string{
	"#636efa", "#ef553b", "#00cc96", "#ab63fa", "#ffa15a", "#19d3f3",
}

// User-facing messages for the total slot when the charts are kept. The two
// markers are distinct so invalid input and unexpected failures are
// distinguishable at a glance.
const (
	msgInvalidCategory = "⚠️ Invalid category selected."
	msgUpdateFailure   = "❌ An error occurred while updating: %v"
)

// ComputeView derives the bar series, line series, and formatted total for
// the selected category. It is a pure function of (table, category): an
// unknown category yields ErrUnknownCategory, a structurally broken table
// yields an error wrapping ErrMalformedTable.
func ComputeView(table SalesTable, category Category) (DerivedView, error) {
	if !table.HasCategory(category) {
		return DerivedView{}, fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}
	if err := table.Validate(); err != nil {
		return DerivedView{}, err
	}

	vals, err := table.CategoryValues(category)
	if err != nil {
		return DerivedView{}, err
	}

	points := make([]Point, len(vals))
	colors := make([]string, len(vals))
	for i, v := range vals {
		points[i] = Point{Month: table.Months[i], Value: v}
		colors[i] = monthPalette[i%len(monthPalette)]
	}

	var sum int64
	for _, v := range vals {
		sum += v
	}

	return DerivedView{
		Bar: ChartSeries{
			Kind:        BarChart,
			Title:       fmt.Sprintf("Monthly Sales - %s", category),
			YAxisTitle:  "Sales ($)",
			Points:      points,
			Colors:      colors,
			ValueLabels: true,
		},
		Line: ChartSeries{
			Kind:        LineChart,
			Title:       fmt.Sprintf("Sales Trend - %s", category),
			YAxisTitle:  "Sales ($)",
			Points:      points,
			ShowMarkers: true,
		},
		Total: FormatDollars(sum),
	}, nil
}

// BuildViewUpdate is the total form of ComputeView used by the binding layer.
// It never fails: valid input replaces all three output slots; an unknown
// category keeps both charts and routes a warning to the total slot; any
// other derivation failure keeps both charts and routes the error message.
func BuildViewUpdate(table SalesTable, category Category) ViewUpdate {
	view, err := ComputeView(table, category)
	if err != nil {
		if errors.Is(err, ErrUnknownCategory) {
			return ViewUpdate{
				Bar:   KeepChart(),
				Line:  KeepChart(),
				Total: msgInvalidCategory,
			}
		}
		return ViewUpdate{
			Bar:   KeepChart(),
			Line:  KeepChart(),
			Total: fmt.Sprintf(msgUpdateFailure, err),
		}
	}
	return ViewUpdate{
		Bar:   ReplaceChart(view.Bar),
		Line:  ReplaceChart(view.Line),
		Total: view.Total,
		OK:    true,
	}
}
