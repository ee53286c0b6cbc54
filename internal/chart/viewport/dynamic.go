package viewport

// DynamicConfig describes a list whose per-item heights are resolved through
// a measurement callback.
type DynamicConfig struct {
	EstimatedHeight float64             // used when Measure is nil or returns <= 0
	Measure         func(i int) float64 // measures one item; memoized per index
	ContainerHeight float64
	Overscan        int // 0 means DefaultOverscan
	TotalItems      int
}

// Dynamic computes windows for variable-height lists. Measured heights are
// memoized per index: the first access computes and caches, subsequent
// accesses read the cache. Offsets are recomputed by linear scan on every
// call, which is O(TotalItems) per scroll event; acceptable at the item
// counts this is used for (thousands, not millions).
type Dynamic struct {
	cfg     DynamicConfig
	heights map[int]float64
}

func NewDynamic(cfg DynamicConfig) *Dynamic {
	if cfg.Overscan == 0 {
		cfg.Overscan = DefaultOverscan
	}
	return &Dynamic{
		cfg:     cfg,
		heights: make(map[int]float64),
	}
}

// heightAt resolves the height of item i, memoizing the measurement.
func (d *Dynamic) heightAt(i int) float64 {
	if h, ok := d.heights[i]; ok {
		return h
	}

	h := d.cfg.EstimatedHeight
	if d.cfg.Measure != nil {
		if measured := d.cfg.Measure(i); measured > 0 {
			h = measured
		}
	}
	d.heights[i] = h
	return h
}

// Window computes the visible window for the given scroll position.
func (d *Dynamic) Window(scrollTop float64) Window {
	w := Window{Start: 0, End: -1}
	if d.cfg.TotalItems == 0 {
		return w
	}

	offsets := make([]float64, d.cfg.TotalItems)
	var total float64
	for i := 0; i < d.cfg.TotalItems; i++ {
		offsets[i] = total
		total += d.heightAt(i)
	}
	w.TotalHeight = total

	// First item whose bottom edge is past the top of the viewport.
	start := 0
	for start < d.cfg.TotalItems-1 && offsets[start]+d.heightAt(start) <= scrollTop {
		start++
	}
	start -= d.cfg.Overscan
	if start < 0 {
		start = 0
	}

	// Last item whose top edge is before the bottom of the viewport.
	end := start
	bottom := scrollTop + d.cfg.ContainerHeight
	for end < d.cfg.TotalItems-1 && offsets[end+1] < bottom {
		end++
	}
	end += d.cfg.Overscan
	if end > d.cfg.TotalItems-1 {
		end = d.cfg.TotalItems - 1
	}

	w.Start = start
	w.End = end
	w.Items = make([]Item, 0, end-start+1)
	for i := start; i <= end; i++ {
		w.Items = append(w.Items, Item{Index: i, OffsetTop: offsets[i]})
	}
	return w
}

// Invalidate drops the cached measurement for index i so the next window
// computation re-measures it.
func (d *Dynamic) Invalidate(i int) {
	delete(d.heights, i)
}
