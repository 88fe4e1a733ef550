// Package chart turns category totals into the PNG the /summary command
// attaches. Rendering failures only cost the photo; the text summary is
// built elsewhere and still goes out.
package chart

import (
	"bytes"

	"github.com/shopspring/decimal"
	chart "github.com/wcharczuk/go-chart/v2"
)

type PieRenderer struct {
	Width  int
	Height int
}

func NewPieRenderer() *PieRenderer {
	return &PieRenderer{Width: 1000, Height: 800}
}

// Render encodes a pie chart of the category sums. Slice order does not
// matter to the encoder; labels carry the raw category keys.
func (r *PieRenderer) Render(sums map[string]decimal.Decimal) ([]byte, error) {
	values := make([]chart.Value, 0, len(sums))
	for category, total := range sums {
		f, _ := total.Float64()
		values = append(values, chart.Value{Label: category, Value: f})
	}

	pie := chart.PieChart{
		Title:  "Expense Breakdown",
		Width:  r.Width,
		Height: r.Height,
		Values: values,
	}

	var buf bytes.Buffer
	if err := pie.Render(chart.PNG, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
