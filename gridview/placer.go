package gridview

import (
	"fyne.io/fyne/v2"
)

// placement positions item views for one tiling pass. Items beyond the
// visible count are parked off-canvas at a sentinel position outside the
// scrollable region; their size is left untouched.
type placement struct {
	tiling         tilingResult
	verticalMargin float32
	columnMargin   float32
}

// newPlacement derives the horizontal gutter for a tiling pass. In uniform
// mode the leftover width is spread into even gutters around every column;
// otherwise items pack left with no gutter.
func newPlacement(t tilingResult, verticalMargin float32, uniform bool) placement {
	p := placement{tiling: t, verticalMargin: verticalMargin}
	if uniform && t.columns > 0 {
		leftover := t.containerSize.Width - float32(t.columns)*t.itemSize.Width
		p.columnMargin = floor32(leftover / float32(t.columns+1))
		if p.columnMargin < 0 {
			p.columnMargin = 0
		}
	}
	return p
}

// rectForIndex returns the on-screen rectangle of the item at index i.
// Row-major, left to right, top to bottom.
func (p placement) rectForIndex(i int) (fyne.Position, fyne.Size) {
	row := i / p.tiling.columns
	col := i % p.tiling.columns

	x := p.columnMargin + float32(col)*(p.tiling.itemSize.Width+p.columnMargin)
	y := p.verticalMargin + float32(row)*(p.tiling.itemSize.Height+p.verticalMargin)
	return fyne.NewPos(x, y), p.tiling.itemSize
}

// offCanvasPos is the sentinel position for overflow items.
func (p placement) offCanvasPos() fyne.Position {
	return fyne.NewPos(-p.tiling.itemSize.Width, -p.tiling.itemSize.Height)
}

// apply moves every item view into place.
func (p placement) apply(items []Item) {
	for i, item := range items {
		view := item.View()
		if i >= p.tiling.visibleCount {
			view.Move(p.offCanvasPos())
			continue
		}
		pos, size := p.rectForIndex(i)
		view.Resize(size)
		view.Move(pos)
	}
}

// indexForPoint hit-tests a point against the placed grid. The returned index
// may be out of range when the point falls below or beside the content; the
// caller range-checks.
func (p placement) indexForPoint(pos fyne.Position) int {
	if pos.X < 0 || pos.Y < 0 {
		return -1
	}
	row := int(floor32(pos.Y / (p.tiling.itemSize.Height + p.verticalMargin)))
	col := int(floor32(pos.X / (p.tiling.itemSize.Width + p.columnMargin)))
	if col >= p.tiling.columns {
		return -1
	}
	return row*p.tiling.columns + col
}
