package drawing

import (
	"testing"

	"go.uber.org/zap"
)

func newRenderEngine(t *testing.T) *Engine {
	t.Helper()
	return NewEngine(newFakeStore(), zap.NewNop())
}

// go test -v --run TestRenderFibonacciLevels
func TestRenderFibonacciLevels(t *testing.T) {
	engine := newRenderEngine(t)
	if _, err := engine.DrawFibonacci(Point{X: 0, Y: 100}, Point{X: 10, Y: 200}); err != nil {
		t.Fatalf("fibonacci: %v", err)
	}

	marks := engine.Render()
	if len(marks.Lines) != 7 {
		t.Fatalf("expected 7 retracement levels, got %d", len(marks.Lines))
	}

	wantValues := []float64{100, 123.6, 138.2, 150, 161.8, 178.6, 200}
	for i, line := range marks.Lines {
		if line.Axis != AxisY {
			t.Errorf("level %d: axis = %q, want y", i, line.Axis)
		}
		if diff := line.Value - wantValues[i]; diff > 1e-9 || diff < -1e-9 {
			t.Errorf("level %d: value = %f, want %f", i, line.Value, wantValues[i])
		}
	}

	// Anchor levels solid, interior levels dashed.
	if marks.Lines[0].Style != StyleSolid || marks.Lines[6].Style != StyleSolid {
		t.Error("levels at ratio 0 and 1 must render solid")
	}
	for i := 1; i <= 5; i++ {
		if marks.Lines[i].Style != StyleDashed {
			t.Errorf("interior level %d must render dashed, got %q", i, marks.Lines[i].Style)
		}
	}
}

// go test -v --run TestRenderLineTypes
func TestRenderLineTypes(t *testing.T) {
	engine := newRenderEngine(t)

	engine.DrawTrendLine(Point{X: 1, Y: 10}, Point{X: 5, Y: 50})
	engine.DrawHorizontalLine(42)
	engine.DrawVerticalLine(7)
	engine.AddTextAnnotation(Point{X: 3, Y: 30}, "breakout")

	marks := engine.Render()
	if len(marks.Lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(marks.Lines))
	}
	if len(marks.Points) != 1 {
		t.Fatalf("expected 1 point marker, got %d", len(marks.Points))
	}

	trend := marks.Lines[0]
	if trend.Axis != AxisNone || trend.Start != (Point{X: 1, Y: 10}) || trend.End != (Point{X: 5, Y: 50}) {
		t.Errorf("unexpected trend line: %+v", trend)
	}

	horizontal := marks.Lines[1]
	if horizontal.Axis != AxisY || horizontal.Value != 42 {
		t.Errorf("unexpected horizontal line: %+v", horizontal)
	}

	vertical := marks.Lines[2]
	if vertical.Axis != AxisX || vertical.Value != 7 {
		t.Errorf("unexpected vertical line: %+v", vertical)
	}

	if marks.Points[0].Label != "breakout" {
		t.Errorf("text label = %q, want breakout", marks.Points[0].Label)
	}
}

// go test -v --run TestRenderSkipsArrowAndRectangle
func TestRenderSkipsArrowAndRectangle(t *testing.T) {
	engine := newRenderEngine(t)

	engine.DrawArrow(Point{X: 1, Y: 1}, Point{X: 2, Y: 2})
	engine.DrawRectangle(Point{X: 3, Y: 3}, Point{X: 4, Y: 4})

	// Both are stored and persisted, neither is translated yet.
	if got := len(engine.Drawings()); got != 2 {
		t.Fatalf("expected 2 stored drawings, got %d", got)
	}

	marks := engine.Render()
	if len(marks.Lines) != 0 || len(marks.Points) != 0 {
		t.Errorf("arrow and rectangle must not render: lines=%d points=%d",
			len(marks.Lines), len(marks.Points))
	}
}

// go test -v --run TestRenderRecomputesFromScratch
func TestRenderRecomputesFromScratch(t *testing.T) {
	engine := newRenderEngine(t)

	d, _ := engine.DrawHorizontalLine(10)
	if got := len(engine.Render().Lines); got != 1 {
		t.Fatalf("expected 1 line before removal, got %d", got)
	}

	engine.Remove(d.ID)
	if got := len(engine.Render().Lines); got != 0 {
		t.Errorf("expected 0 lines after removal, got %d", got)
	}
}
