package gridview

// Keyboard navigation operates on the 1D index space overlaid on the 2D grid:
// horizontal moves step by one, vertical moves step by the column count. With
// no prior selection, moving left or up starts conceptually past the end (so
// the move lands on the last item) and moving right or down starts before the
// beginning (landing on the first item).

// MoveLeft moves or, with expand, grows the selection one index left.
func (g *Grid) MoveLeft(expand bool) {
	g.moveBy(-1, expand)
}

// MoveRight moves or grows the selection one index right.
func (g *Grid) MoveRight(expand bool) {
	g.moveBy(1, expand)
}

// MoveUp moves or grows the selection one row up.
func (g *Grid) MoveUp(expand bool) {
	g.moveBy(-g.columnStep(), expand)
}

// MoveDown moves or grows the selection one row down.
func (g *Grid) MoveDown(expand bool) {
	g.moveBy(g.columnStep(), expand)
}

func (g *Grid) columnStep() int {
	if g.tiling.columns < 1 {
		return 1
	}
	return g.tiling.columns
}

func (g *Grid) moveBy(delta int, expand bool) {
	n := len(g.items)
	if n == 0 || delta == 0 {
		return
	}

	// Backward moves step from the selection's first index, forward moves
	// from its last. An empty selection seeds the edge just outside the
	// content on the move's origin side.
	var edge int
	if delta < 0 {
		edge = g.sel.first()
		if edge < 0 {
			edge = n
		}
	} else {
		edge = g.sel.last()
	}

	target := edge + delta
	if target < 0 {
		target = 0
	}
	if target > n-1 {
		target = n - 1
	}

	if expand && g.allowsMultipleSelection && !g.sel.isEmpty() {
		// The anchor is the selection edge on the opposite side of the move,
		// so the added range stays contiguous with what is already selected.
		var anchor int
		if delta < 0 {
			anchor = g.sel.last()
		} else {
			anchor = g.sel.first()
		}
		lo, hi := anchor, target
		if lo > hi {
			lo, hi = hi, lo
		}
		g.sel.add(indexRange(lo, hi))
	} else {
		g.sel.setSelection([]int{target})
	}

	g.ScrollToSelection()
}

// ScrollToSelection adjusts the enclosing scroll so the union rectangle of
// all selected items is visible.
func (g *Grid) ScrollToSelection() {
	if g.scroll == nil {
		return
	}
	pos, size, ok := g.FrameForIndexes(g.sel.selection())
	if !ok {
		return
	}

	viewport := g.scroll.Size()
	if viewport.Width <= 0 || viewport.Height <= 0 {
		return
	}

	offset := g.scroll.Offset
	offset.Y = scrollAxisOffset(offset.Y, pos.Y, size.Height, viewport.Height)
	offset.X = scrollAxisOffset(offset.X, pos.X, size.Width, viewport.Width)

	if offset != g.scroll.Offset {
		g.scroll.Offset = offset
		g.scroll.Refresh()
	}
}

// scrollAxisOffset returns the nearest offset that brings [start, start+span]
// into a viewport of the given extent. A span larger than the viewport aligns
// to its start.
func scrollAxisOffset(offset, start, span, extent float32) float32 {
	if start < offset || span >= extent {
		return max32(start, 0)
	}
	if end := start + span; end > offset+extent {
		return end - extent
	}
	return offset
}

// DeleteSelection asks the delegate to delete the selected indexes. When the
// deletion happened and the selection's first index now exceeds the last
// valid content index, the selection is clamped to that last index. The view
// re-scrolls to the selection either way.
func (g *Grid) DeleteSelection() {
	sel := g.sel.selection()
	if len(sel) > 0 {
		if handler, ok := g.delegate.(DeleteHandler); ok && handler.DeleteIndexes(g, sel) {
			n := len(g.items)
			switch {
			case n == 0:
				g.sel.clear()
			case g.sel.first() > n-1:
				g.sel.setSelection([]int{n - 1})
			}
		}
	}
	g.ScrollToSelection()
}
