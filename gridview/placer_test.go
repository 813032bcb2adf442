package gridview

import (
	"testing"

	"fyne.io/fyne/v2"
)

func testTiling(columns, rows int, itemSize, containerSize fyne.Size, visible int) tilingResult {
	return tilingResult{
		columns:       columns,
		rows:          rows,
		itemSize:      itemSize,
		containerSize: containerSize,
		visibleCount:  visible,
	}
}

func TestPlacement_RowMajorPositions(t *testing.T) {
	tr := testTiling(3, 2, fyne.NewSize(50, 40), fyne.NewSize(150, 100), 6)
	p := newPlacement(tr, 10, false)

	cases := []struct {
		index int
		pos   fyne.Position
	}{
		{0, fyne.NewPos(0, 10)},
		{1, fyne.NewPos(50, 10)},
		{2, fyne.NewPos(100, 10)},
		{3, fyne.NewPos(0, 60)},
		{4, fyne.NewPos(50, 60)},
	}
	for _, c := range cases {
		pos, size := p.rectForIndex(c.index)
		if pos != c.pos {
			t.Errorf("index %d: expected position %v, got %v", c.index, c.pos, pos)
		}
		if size != tr.itemSize {
			t.Errorf("index %d: expected size %v, got %v", c.index, tr.itemSize, size)
		}
	}
}

func TestPlacement_UniformColumnMargin(t *testing.T) {
	// 340 wide, 3 columns of 100: 40 leftover spread into 4 gutters of 10.
	tr := testTiling(3, 1, fyne.NewSize(100, 80), fyne.NewSize(340, 80), 3)
	p := newPlacement(tr, 0, true)

	if p.columnMargin != 10 {
		t.Fatalf("expected column margin 10, got %.2f", p.columnMargin)
	}
	pos0, _ := p.rectForIndex(0)
	pos1, _ := p.rectForIndex(1)
	if pos0.X != 10 {
		t.Errorf("expected first column at x=10, got %.2f", pos0.X)
	}
	if pos1.X != 120 {
		t.Errorf("expected second column at x=120, got %.2f", pos1.X)
	}
}

func TestPlacement_NoGutterWithoutUniformResizing(t *testing.T) {
	tr := testTiling(3, 1, fyne.NewSize(100, 80), fyne.NewSize(340, 80), 3)
	p := newPlacement(tr, 0, false)
	if p.columnMargin != 0 {
		t.Fatalf("expected zero column margin, got %.2f", p.columnMargin)
	}
	pos0, _ := p.rectForIndex(0)
	if pos0.X != 0 {
		t.Errorf("expected left-aligned first column, got x=%.2f", pos0.X)
	}
}

func TestPlacement_OffCanvasSentinel(t *testing.T) {
	tr := testTiling(2, 1, fyne.NewSize(60, 40), fyne.NewSize(120, 40), 2)
	p := newPlacement(tr, 0, false)
	want := fyne.NewPos(-60, -40)
	if got := p.offCanvasPos(); got != want {
		t.Fatalf("expected off-canvas position %v, got %v", want, got)
	}
}

func TestPlacement_ApplyParksOverflowItems(t *testing.T) {
	tr := testTiling(2, 1, fyne.NewSize(60, 40), fyne.NewSize(120, 40), 2)
	p := newPlacement(tr, 5, false)

	items := []Item{newTestItem(), newTestItem(), newTestItem()}
	p.apply(items)

	if pos := items[1].View().Position(); pos != fyne.NewPos(60, 5) {
		t.Errorf("expected second item at (60,5), got %v", pos)
	}
	if pos := items[2].View().Position(); pos != p.offCanvasPos() {
		t.Errorf("expected overflow item off-canvas, got %v", pos)
	}
	if size := items[0].View().Size(); size != tr.itemSize {
		t.Errorf("expected placed item resized to %v, got %v", tr.itemSize, size)
	}
}

func TestPlacement_IndexForPointRoundTrip(t *testing.T) {
	tr := testTiling(4, 3, fyne.NewSize(80, 60), fyne.NewSize(320, 200), 12)
	p := newPlacement(tr, 8, false)

	for i := 0; i < tr.visibleCount; i++ {
		pos, size := p.rectForIndex(i)
		center := fyne.NewPos(pos.X+size.Width/2, pos.Y+size.Height/2)
		if got := p.indexForPoint(center); got != i {
			t.Errorf("center of item %d hit-tests to %d", i, got)
		}
	}
}

func TestPlacement_IndexForPointOutside(t *testing.T) {
	tr := testTiling(4, 1, fyne.NewSize(80, 60), fyne.NewSize(320, 60), 4)
	p := newPlacement(tr, 0, false)

	if got := p.indexForPoint(fyne.NewPos(-5, 10)); got >= 0 {
		t.Errorf("negative coordinates should miss, got index %d", got)
	}
	// Below the last row the computed index runs past the item count; the
	// caller's range check rejects it.
	if got := p.indexForPoint(fyne.NewPos(10, 500)); got < 4 {
		t.Errorf("point below content should map beyond the item count, got %d", got)
	}
}
