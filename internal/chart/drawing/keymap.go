package drawing

import (
	"strings"

	"go.uber.org/zap"
)

// KeyEvent is a normalized keyboard event from the owning view.
type KeyEvent struct {
	Key  string // "Escape", "d", "t", ...
	Ctrl bool
	Alt  bool
}

// Action is what a resolved key binding does.
type Action int

const (
	ActionNone Action = iota
	ActionSelectTool
	ActionClearAll
)

// Binding is a resolved key binding. SuppressDefault marks chords that
// shadow a host default (Ctrl+D is the browser bookmark shortcut).
type Binding struct {
	Action          Action
	Tool            Tool
	SuppressDefault bool
}

// toolKeys maps bare letter keys to tools. These fire only when neither
// Ctrl nor Alt is held.
var toolKeys = map[string]Tool{
	"t": ToolTrendLine,
	"h": ToolHorizontalLine,
	"v": ToolVerticalLine,
	"f": ToolFibonacci,
	"x": ToolText,
	"a": ToolArrow,
	"r": ToolRectangle,
}

// ResolveKey maps a key event to a binding. Escape always selects no tool;
// Ctrl+D clears all drawings.
func ResolveKey(ev KeyEvent) (Binding, bool) {
	if ev.Key == "Escape" {
		return Binding{Action: ActionSelectTool, Tool: ToolNone}, true
	}

	if ev.Ctrl && strings.ToLower(ev.Key) == "d" {
		return Binding{Action: ActionClearAll, SuppressDefault: true}, true
	}

	if !ev.Ctrl && !ev.Alt {
		if tool, ok := toolKeys[strings.ToLower(ev.Key)]; ok {
			return Binding{Action: ActionSelectTool, Tool: tool}, true
		}
	}

	return Binding{}, false
}

// HandleKey applies the global keyboard contract to the engine. It reports
// whether the event was consumed.
func (e *Engine) HandleKey(ev KeyEvent) bool {
	binding, ok := ResolveKey(ev)
	if !ok {
		return false
	}

	switch binding.Action {
	case ActionSelectTool:
		e.SetActiveTool(binding.Tool)
	case ActionClearAll:
		if err := e.ClearAll(); err != nil {
			e.logger.Warn("clear-all key handling failed", zap.Error(err))
		}
	}
	return true
}
