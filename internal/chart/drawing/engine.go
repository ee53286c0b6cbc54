package drawing

import (
	"encoding/json"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// StorageKey is the fixed local-storage key holding the serialized drawing
// collection.
const StorageKey = "chartDrawings"

// BlobStore is the durable local storage the engine persists into. Writes
// replace the whole blob; Delete removes the key entirely.
type BlobStore interface {
	Put(key string, value []byte) error
	Get(key string) ([]byte, error)
	Delete(key string) error
}

// Engine manages user-created chart overlays: an ordered collection of
// drawings (creation order = z-order) and a single active tool selector.
// Drawings are appended or removed, never edited in place, and the complete
// collection is persisted on every mutation.
type Engine struct {
	mu         sync.Mutex
	store      BlobStore
	logger     *zap.Logger
	drawings   []Drawing
	activeTool Tool
	pending    *Drawing // first click of a two-point drawing, not yet finalized
	onChange   func([]Drawing)
}

// NewEngine creates an engine and loads any persisted drawings. A corrupt
// blob is logged and treated as no saved drawings.
func NewEngine(store BlobStore, logger *zap.Logger) *Engine {
	e := &Engine{
		store:      store,
		logger:     logger,
		activeTool: ToolNone,
	}

	blob, err := store.Get(StorageKey)
	if err == nil {
		var saved []Drawing
		if err := json.Unmarshal(blob, &saved); err != nil {
			logger.Warn("failed to parse saved drawings, starting empty", zap.Error(err))
		} else {
			e.drawings = saved
		}
	}

	return e
}

// SetOnChange registers the change callback. It receives the complete
// updated collection after every mutation, not a diff.
func (e *Engine) SetOnChange(fn func([]Drawing)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.onChange = fn
}

// SetActiveTool sets the tool selector. Selecting ToolNone also discards any
// not-yet-finalized in-progress drawing.
func (e *Engine) SetActiveTool(tool Tool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.activeTool = tool
	if tool == ToolNone {
		e.pending = nil
	}
}

// ActiveTool returns the current tool selector.
func (e *Engine) ActiveTool() Tool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.activeTool
}

// Add appends the drawing, notifies the change callback, and persists the
// complete collection as one serialized blob.
func (e *Engine) Add(d Drawing) error {
	if len(d.Points) == 0 {
		return fmt.Errorf("drawing %q has no points", d.ID)
	}

	e.mu.Lock()
	e.drawings = append(e.drawings, d)
	err := e.persistLocked()
	snapshot := e.snapshotLocked()
	cb := e.onChange
	e.mu.Unlock()

	if cb != nil {
		cb(snapshot)
	}
	return err
}

// Remove deletes the drawing with the given id, then notifies and persists.
func (e *Engine) Remove(id string) error {
	e.mu.Lock()
	kept := e.drawings[:0]
	for _, d := range e.drawings {
		if d.ID != id {
			kept = append(kept, d)
		}
	}
	e.drawings = kept
	err := e.persistLocked()
	snapshot := e.snapshotLocked()
	cb := e.onChange
	e.mu.Unlock()

	if cb != nil {
		cb(snapshot)
	}
	return err
}

// ClearAll empties the collection and deletes the storage key entirely
// rather than writing an empty blob.
func (e *Engine) ClearAll() error {
	e.mu.Lock()
	e.drawings = nil
	e.pending = nil
	err := e.store.Delete(StorageKey)
	cb := e.onChange
	e.mu.Unlock()

	if cb != nil {
		cb(nil)
	}
	if err != nil {
		return fmt.Errorf("clear drawings: %w", err)
	}
	return nil
}

// Drawings returns an immutable snapshot of the collection in z-order.
func (e *Engine) Drawings() []Drawing {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

// DrawTrendLine adds a line between two raw chart points.
func (e *Engine) DrawTrendLine(p1, p2 Point) (Drawing, error) {
	return e.addTyped(TypeTrendLine, []Point{p1, p2}, "", 2)
}

// DrawHorizontalLine adds an axis-pinned line at the given y coordinate.
func (e *Engine) DrawHorizontalLine(y float64) (Drawing, error) {
	return e.addTyped(TypeHorizontalLine, []Point{{X: 0, Y: y}}, "", 1)
}

// DrawVerticalLine adds an axis-pinned line at the given x coordinate.
func (e *Engine) DrawVerticalLine(x float64) (Drawing, error) {
	return e.addTyped(TypeVerticalLine, []Point{{X: x, Y: 0}}, "", 1)
}

// DrawFibonacci adds a retracement between two points, typically a swing
// high and low.
func (e *Engine) DrawFibonacci(p1, p2 Point) (Drawing, error) {
	return e.addTyped(TypeFibonacci, []Point{p1, p2}, "", 1)
}

// AddTextAnnotation adds a labeled marker at the given point.
func (e *Engine) AddTextAnnotation(p Point, text string) (Drawing, error) {
	return e.addTyped(TypeText, []Point{p}, text, 0)
}

// DrawArrow adds an arrow between two points. Stored and persisted, but not
// yet translated by Render.
func (e *Engine) DrawArrow(p1, p2 Point) (Drawing, error) {
	return e.addTyped(TypeArrow, []Point{p1, p2}, "", 2)
}

// DrawRectangle adds a rectangle spanning two corner points. Stored and
// persisted, but not yet translated by Render.
func (e *Engine) DrawRectangle(p1, p2 Point) (Drawing, error) {
	return e.addTyped(TypeRectangle, []Point{p1, p2}, "", 1)
}

// HandleClick advances the active tool's drawing state. One-point tools
// finalize immediately. Two-point tools store the first click as an
// in-progress drawing and finalize on the second; the finalized drawing is
// returned with ok=true. The text tool is excluded here because its content
// arrives through AddTextAnnotation.
func (e *Engine) HandleClick(p Point) (Drawing, bool, error) {
	e.mu.Lock()
	tool := e.activeTool
	e.mu.Unlock()

	switch tool {
	case ToolHorizontalLine:
		d, err := e.DrawHorizontalLine(p.Y)
		return d, err == nil, err

	case ToolVerticalLine:
		d, err := e.DrawVerticalLine(p.X)
		return d, err == nil, err

	case ToolTrendLine, ToolFibonacci, ToolArrow, ToolRectangle:
		e.mu.Lock()
		if e.pending == nil {
			e.pending = &Drawing{Type: Type(tool), Points: []Point{p}}
			e.mu.Unlock()
			return Drawing{}, false, nil
		}
		first := e.pending.Points[0]
		e.pending = nil
		e.mu.Unlock()

		var d Drawing
		var err error
		switch tool {
		case ToolTrendLine:
			d, err = e.DrawTrendLine(first, p)
		case ToolFibonacci:
			d, err = e.DrawFibonacci(first, p)
		case ToolArrow:
			d, err = e.DrawArrow(first, p)
		case ToolRectangle:
			d, err = e.DrawRectangle(first, p)
		}
		return d, err == nil, err
	}

	return Drawing{}, false, nil
}

func (e *Engine) addTyped(t Type, points []Point, text string, thickness float64) (Drawing, error) {
	d := Drawing{
		ID:        newID(),
		Type:      t,
		Points:    points,
		Color:     defaultColor[t],
		Text:      text,
		Thickness: thickness,
	}
	if err := e.Add(d); err != nil {
		return Drawing{}, err
	}
	return d, nil
}

// persistLocked writes the complete collection to the storage key. Caller
// holds e.mu.
func (e *Engine) persistLocked() error {
	blob, err := json.Marshal(e.drawings)
	if err != nil {
		return fmt.Errorf("marshal drawings: %w", err)
	}
	if err := e.store.Put(StorageKey, blob); err != nil {
		return fmt.Errorf("persist drawings: %w", err)
	}
	return nil
}

func (e *Engine) snapshotLocked() []Drawing {
	out := make([]Drawing, len(e.drawings))
	copy(out, e.drawings)
	return out
}
