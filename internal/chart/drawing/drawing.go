package drawing

import (
	"fmt"
	"math/rand"
	"time"
)

// Type identifies the kind of chart annotation.
type Type string

const (
	TypeTrendLine      Type = "trendLine"
	TypeHorizontalLine Type = "horizontalLine"
	TypeVerticalLine   Type = "verticalLine"
	TypeFibonacci      Type = "fibonacci"
	TypeText           Type = "text"
	TypeArrow          Type = "arrow"
	TypeRectangle      Type = "rectangle"
)

// Tool is the active drawing tool selector.
type Tool string

const (
	ToolNone           Tool = "none"
	ToolTrendLine      Tool = "trendLine"
	ToolHorizontalLine Tool = "horizontalLine"
	ToolVerticalLine   Tool = "verticalLine"
	ToolFibonacci      Tool = "fibonacci"
	ToolText           Tool = "text"
	ToolArrow          Tool = "arrow"
	ToolRectangle      Tool = "rectangle"
)

// Point is a chart coordinate.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Drawing is a user-authored chart annotation. Points cardinality depends on
// the type: one point for horizontal/vertical/text, two for line-like types.
// For horizontal and vertical lines only one of x/y is semantically used;
// the other is a placeholder.
type Drawing struct {
	ID        string  `json:"id"`
	Type      Type    `json:"type"`
	Points    []Point `json:"points"`
	Color     string  `json:"color"`
	Text      string  `json:"text,omitempty"`
	Thickness float64 `json:"thickness,omitempty"`
}

// default display colors per type
var defaultColor = map[Type]string{
	TypeTrendLine:      "#2196f3",
	TypeHorizontalLine: "#ff9800",
	TypeVerticalLine:   "#9c27b0",
	TypeFibonacci:      "#ffc107",
	TypeText:           "#eeeeee",
	TypeArrow:          "#4caf50",
	TypeRectangle:      "#f44336",
}

// newID generates a globally unique drawing id from the creation timestamp
// plus a random suffix.
func newID() string {
	return fmt.Sprintf("%d-%06x", time.Now().UnixMilli(), rand.Intn(1<<24))
}
