// Package viewport computes the minimal contiguous index range a large list
// must render for a given scroll position, so the caller only paints what is
// visible plus a small overscan margin.
package viewport

import "math"

// DefaultOverscan is the number of extra rows rendered beyond the visible
// range to mask scroll-induced pop-in.
const DefaultOverscan = 3

// Item pairs a renderable index with its pixel offset from the top of the
// list.
type Item struct {
	Index     int
	OffsetTop float64
}

// Window is a contiguous index range [Start, End] with per-item offsets and
// the total list height for sizing a spacer element. An empty list yields
// Start > End with no items.
type Window struct {
	Start       int
	End         int
	Items       []Item
	TotalHeight float64
}

// FixedConfig describes a list whose items all share one height.
type FixedConfig struct {
	ItemHeight      float64
	ContainerHeight float64
	Overscan        int // 0 means DefaultOverscan
	TotalItems      int
}

// Fixed computes the visible window for a fixed-height list. Overscan is
// purely additive padding and never pushes indices outside
// [0, TotalItems-1].
func Fixed(cfg FixedConfig, scrollTop float64) Window {
	overscan := cfg.Overscan
	if overscan == 0 {
		overscan = DefaultOverscan
	}

	w := Window{Start: 0, End: -1, TotalHeight: float64(cfg.TotalItems) * cfg.ItemHeight}
	if cfg.TotalItems == 0 || cfg.ItemHeight <= 0 {
		return w
	}

	start := int(math.Floor(scrollTop/cfg.ItemHeight)) - overscan
	if start < 0 {
		start = 0
	}
	if start > cfg.TotalItems-1 {
		start = cfg.TotalItems - 1
	}

	end := int(math.Ceil((scrollTop+cfg.ContainerHeight)/cfg.ItemHeight)) + overscan
	if end > cfg.TotalItems-1 {
		end = cfg.TotalItems - 1
	}

	w.Start = start
	w.End = end
	w.Items = make([]Item, 0, end-start+1)
	for i := start; i <= end; i++ {
		w.Items = append(w.Items, Item{Index: i, OffsetTop: float64(i) * cfg.ItemHeight})
	}
	return w
}
