package gridview

import (
	"math"

	"fyne.io/fyne/v2"
)

// tilingParams are the inputs of one tiling pass. A zero component of
// maxItemSize means "unconstrained", as do zero maxColumns/maxRows.
type tilingParams struct {
	containerSize  fyne.Size
	minItemSize    fyne.Size
	maxItemSize    fyne.Size
	maxColumns     int
	maxRows        int
	verticalMargin float32
	itemCount      int
}

// tilingResult is the complete derived geometry of one tiling pass, returned
// by value. Two results with equal columns, rows and item size describe the
// same placement even when the container size differs.
type tilingResult struct {
	columns       int
	rows          int
	itemSize      fyne.Size
	containerSize fyne.Size
	visibleCount  int
}

func (r tilingResult) equalGeometry(o tilingResult) bool {
	return r.columns == o.columns && r.rows == o.rows && r.itemSize == o.itemSize
}

// computeTiling derives columns, rows, item size, container size and visible
// count from the available space and the configured constraints. The clamp
// order and the floor/ceil tie-breaks are a layout contract: identical inputs
// always produce an identical, pixel-stable grid.
//
// Note the column count is clamped twice when maxColumns is set: once against
// the configured cap alone and once against the cap bounded by the item
// count. The second clamp changes behaviour for small content counts, so it
// stays.
func computeTiling(p tilingParams) tilingResult {
	if p.minItemSize.Width <= 0 || p.minItemSize.Height <= 0 {
		panic("gridview: tiling requires a positive minimum item size")
	}

	columns := int(floor32(p.containerSize.Width / p.minItemSize.Width))
	if p.maxItemSize.Width == 0 && p.maxColumns > 0 && columns > p.maxColumns {
		columns = p.maxColumns
	}
	if p.maxColumns > 0 {
		columns = minInt(p.maxColumns, minInt(p.itemCount, columns))
	}
	if columns < 1 {
		columns = 1
	}

	itemWidth := floor32(p.containerSize.Width / float32(columns))
	if p.maxItemSize.Width > 0 {
		itemWidth = min32(p.maxItemSize.Width, itemWidth)
		if columns == 1 {
			itemWidth = min32(p.maxItemSize.Width, p.containerSize.Width)
		}
	}

	rows := int(math.Ceil(float64(p.itemCount) / float64(columns)))
	if p.maxRows > 0 && rows > p.maxRows {
		rows = p.maxRows
	}
	if rows < 1 {
		rows = 1
	}

	requiredHeight := max32(p.containerSize.Height, float32(rows)*(p.minItemSize.Height+p.verticalMargin))

	itemHeight := floor32(requiredHeight / float32(rows))
	if p.maxItemSize.Height > 0 {
		itemHeight = min32(itemHeight, p.maxItemSize.Height)
	}

	return tilingResult{
		columns: columns,
		rows:    rows,
		itemSize: fyne.NewSize(
			max32(p.minItemSize.Width, itemWidth),
			max32(p.minItemSize.Height, itemHeight),
		),
		containerSize: fyne.NewSize(
			max32(p.containerSize.Width, p.minItemSize.Width),
			requiredHeight,
		),
		visibleCount: minInt(p.itemCount, columns*rows),
	}
}

func floor32(v float32) float32 {
	return float32(math.Floor(float64(v)))
}

func min32(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func max32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
