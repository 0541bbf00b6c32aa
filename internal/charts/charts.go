// Package charts renders progress statistics as PNG images.
package charts

import (
	"bytes"
	"fmt"

	chart "github.com/wcharczuk/go-chart/v2"
)

// Value is one labeled bar.
type Value struct {
	Label string
	Value float64
}

// Bar renders a vertical bar chart and returns the encoded PNG.
func Bar(title string, values []Value) ([]byte, error) {
	if len(values) == 0 {
		return nil, fmt.Errorf("charts: no values to render")
	}

	bars := make([]chart.Value, 0, len(values))
	for _, v := range values {
		bars = append(bars, chart.Value{Label: v.Label, Value: v.Value})
	}

	graph := chart.BarChart{
		Title:    title,
		Width:    512,
		Height:   384,
		BarWidth: 80,
		Bars:     bars,
		XAxis:    chart.Style{TextRotationDegrees: 0},
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("charts: render: %w", err)
	}
	return buf.Bytes(), nil
}
