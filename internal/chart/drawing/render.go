package drawing

import "fmt"

// LineStyle selects the stroke of a rendered mark line.
type LineStyle string

const (
	StyleSolid  LineStyle = "solid"
	StyleDashed LineStyle = "dashed"
)

// Axis pins a mark line to one chart axis.
type Axis string

const (
	AxisNone Axis = ""  // free line between two points
	AxisX    Axis = "x" // vertical line at Value
	AxisY    Axis = "y" // horizontal line at Value
)

// MarkLine is a chart-library line primitive.
type MarkLine struct {
	Label string    `json:"label,omitempty"`
	Start Point     `json:"start"`
	End   Point     `json:"end"`
	Axis  Axis      `json:"axis,omitempty"`
	Value float64   `json:"value,omitempty"` // coordinate for axis-pinned lines
	Color string    `json:"color"`
	Width float64   `json:"width,omitempty"`
	Style LineStyle `json:"style"`
}

// MarkPoint is a chart-library labeled marker primitive.
type MarkPoint struct {
	At    Point  `json:"at"`
	Label string `json:"label"`
	Color string `json:"color"`
}

// ChartMarks is the full set of primitives produced from the drawing
// collection.
type ChartMarks struct {
	Lines  []MarkLine  `json:"lines"`
	Points []MarkPoint `json:"points"`
}

// fibRatios are the retracement levels emitted for a fibonacci drawing.
var fibRatios = []float64{0, 0.236, 0.382, 0.5, 0.618, 0.786, 1}

// Render translates the entire current collection into chart primitives,
// recomputing from scratch on every call. Arrow and rectangle drawings are
// stored but not yet translated.
func (e *Engine) Render() ChartMarks {
	var marks ChartMarks

	for _, d := range e.Drawings() {
		switch d.Type {
		case TypeTrendLine:
			marks.Lines = append(marks.Lines, MarkLine{
				Start: d.Points[0],
				End:   d.Points[1],
				Color: d.Color,
				Width: d.Thickness,
				Style: StyleSolid,
			})

		case TypeHorizontalLine:
			marks.Lines = append(marks.Lines, MarkLine{
				Axis:  AxisY,
				Value: d.Points[0].Y,
				Color: d.Color,
				Width: d.Thickness,
				Style: StyleSolid,
			})

		case TypeVerticalLine:
			marks.Lines = append(marks.Lines, MarkLine{
				Axis:  AxisX,
				Value: d.Points[0].X,
				Color: d.Color,
				Width: d.Thickness,
				Style: StyleSolid,
			})

		case TypeFibonacci:
			marks.Lines = append(marks.Lines, fibLines(d)...)

		case TypeText:
			marks.Points = append(marks.Points, MarkPoint{
				At:    d.Points[0],
				Label: d.Text,
				Color: d.Color,
			})
		}
	}

	return marks
}

// fibLines interpolates one labeled horizontal level per retracement ratio
// between the two anchor y-values. Levels 0 and 1 render solid, interior
// levels dashed.
func fibLines(d Drawing) []MarkLine {
	if len(d.Points) < 2 {
		return nil
	}
	y1, y2 := d.Points[0].Y, d.Points[1].Y

	lines := make([]MarkLine, 0, len(fibRatios))
	for _, ratio := range fibRatios {
		style := StyleDashed
		if ratio == 0 || ratio == 1 {
			style = StyleSolid
		}

		lines = append(lines, MarkLine{
			Label: fmt.Sprintf("Fib %.1f%%", ratio*100),
			Axis:  AxisY,
			Value: y1 + (y2-y1)*ratio,
			Color: d.Color,
			Width: d.Thickness,
			Style: style,
		})
	}
	return lines
}
