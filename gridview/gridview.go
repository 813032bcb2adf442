// Package gridview provides a responsive tiled grid widget for Fyne that
// renders a collection of data-backed items with multi-index selection,
// keyboard navigation and drag support.
package gridview

import (
	"image/color"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
)

// Grid is a tiled collection view. Content is an ordered sequence of opaque
// elements owned by the caller; the grid only reads it. Each element gets a
// presentation Item cloned from the registered prototype (or pulled from the
// reuse pool) on every reload.
type Grid struct {
	widget.BaseWidget

	content []any
	items   []Item
	factory itemFactory
	sel     *selectionModel

	delegate any

	minItemSize    fyne.Size
	maxItemSize    fyne.Size
	maxColumns     int
	maxRows        int
	verticalMargin float32

	uniformResizing         bool
	allowsEmptySelection    bool
	allowsMultipleSelection bool
	backgroundColors        []color.Color

	minSeeded bool

	tiling    tilingResult
	place     placement
	hasTiling bool

	// layoutInProgress absorbs resize triggers emitted as a side effect of
	// the layout pass itself.
	layoutInProgress bool

	scroll *container.Scroll
	// availableSize overrides where the layout pass reads the offered
	// container size from. Defaults to the enclosing scroll viewport.
	availableSize func() fyne.Size

	bgRects []*canvas.Rectangle

	session      *dragSession
	dragPending  bool
	dragStartPos fyne.Position

	lastDragEnd    time.Time
	lastClick      time.Time
	lastClickIndex int

	focused    bool
	activeMenu *widget.PopUp
}

// New creates a grid with the given item prototype. The prototype may be nil
// as long as one is registered via SetItemPrototype before content is set.
func New(prototype Item) *Grid {
	g := &Grid{
		allowsEmptySelection: true,
		lastClickIndex:       -1,
	}
	g.factory.prototype = prototype
	g.sel = newSelectionModel(g.applySelection, g.selectionChanged)
	g.ExtendBaseWidget(g)
	g.scroll = container.NewScroll(g)
	return g
}

// Scroller returns the scroll container enclosing the grid. Place this in
// your layout, not the Grid itself.
func (g *Grid) Scroller() *container.Scroll {
	return g.scroll
}

// SetItemPrototype registers the prototype cloned for new items. It empties
// the reuse pool since pooled items came from the old prototype.
func (g *Grid) SetItemPrototype(prototype Item) {
	g.factory.setPrototype(prototype)
}

// SetDelegate installs the collaborator probed for optional capabilities
// (selection observation, activation, drag, menus, deletion).
func (g *Grid) SetDelegate(delegate any) {
	g.delegate = delegate
}

// SetContent replaces the displayed sequence. Existing items are released to
// the reuse pool and fresh ones bound index for index. The selection set is
// deliberately not cleared: indexes beyond the new length stay in the set and
// are simply not marked selected.
func (g *Grid) SetContent(content []any) {
	g.factory.release(g.items)
	g.items = g.items[:0]

	g.content = content
	size := fyne.Size{}
	if g.hasTiling {
		size = g.tiling.itemSize
	}
	for _, element := range content {
		g.items = append(g.items, g.factory.create(element, size))
	}
	g.sel.reapply()

	g.relayout(true)
	g.Refresh()
}

// Content returns the displayed sequence. The grid never mutates it.
func (g *Grid) Content() []any {
	return g.content
}

// Items returns the live presentation items, index-aligned with the content.
func (g *Grid) Items() []Item {
	return g.items
}

// ItemAt returns the item at index i, or nil when out of range.
func (g *Grid) ItemAt(i int) Item {
	if i < 0 || i >= len(g.items) {
		return nil
	}
	return g.items[i]
}

// Layout constraints. Every setter validates its argument (misconfiguration
// is a programmer error) and forces a strict re-placement pass.

// SetMinItemSize sets the minimum item size. Both components must be
// positive. This also ends prototype-based seeding of the minimum size.
func (g *Grid) SetMinItemSize(size fyne.Size) {
	if size.Width <= 0 || size.Height <= 0 {
		panic("gridview: minimum item size components must be positive")
	}
	g.minItemSize = size
	g.minSeeded = true
	g.relayout(true)
}

// ResetMinItemSize clears the minimum item size so the next layout pass
// re-seeds it from the prototype's natural size.
func (g *Grid) ResetMinItemSize() {
	g.minItemSize = fyne.Size{}
	g.minSeeded = false
	g.relayout(true)
}

// SetMaxItemSize sets the maximum item size. A zero component means
// unconstrained.
func (g *Grid) SetMaxItemSize(size fyne.Size) {
	if size.Width < 0 || size.Height < 0 {
		panic("gridview: maximum item size components must not be negative")
	}
	g.maxItemSize = size
	g.relayout(true)
}

// SetMaxColumns caps the column count; 0 means unconstrained.
func (g *Grid) SetMaxColumns(n int) {
	if n < 0 {
		panic("gridview: maximum column count must not be negative")
	}
	g.maxColumns = n
	g.relayout(true)
}

// SetMaxRows caps the row count; 0 means unconstrained.
func (g *Grid) SetMaxRows(n int) {
	if n < 0 {
		panic("gridview: maximum row count must not be negative")
	}
	g.maxRows = n
	g.relayout(true)
}

// SetVerticalMargin sets the vertical gap between rows.
func (g *Grid) SetVerticalMargin(margin float32) {
	if margin < 0 {
		panic("gridview: vertical margin must not be negative")
	}
	g.verticalMargin = margin
	g.relayout(true)
}

// SetUniformResizing toggles even horizontal gutters. When off, items pack
// left with no gutter.
func (g *Grid) SetUniformResizing(uniform bool) {
	g.uniformResizing = uniform
	g.relayout(true)
}

// SetBackgroundColors sets the colors cycled across row backgrounds. Nil
// disables background striping.
func (g *Grid) SetBackgroundColors(colors []color.Color) {
	g.backgroundColors = colors
	g.rebuildBackgrounds()
	g.Refresh()
}

// BackgroundColors returns the configured row background colors.
func (g *Grid) BackgroundColors() []color.Color {
	return g.backgroundColors
}

// Selection API. The index set is the model of "what was last selected";
// items beyond the current content length may appear in it after a shrink and
// are tolerated everywhere.

// SelectionIndexes returns the selected indexes in ascending order.
func (g *Grid) SelectionIndexes() []int {
	return g.sel.selection()
}

// SetSelectionIndexes replaces the selection. No-op when selection is
// disabled or the set is unchanged.
func (g *Grid) SetSelectionIndexes(indexes []int) {
	g.sel.setSelection(indexes)
}

// ClearSelection empties the selection set.
func (g *Grid) ClearSelection() {
	g.sel.clear()
}

// IsIndexSelected reports whether index is in the selection set.
func (g *Grid) IsIndexSelected(index int) bool {
	return g.sel.contains(index)
}

// FirstSelectedIndex returns the lowest selected index, or -1 when empty.
func (g *Grid) FirstSelectedIndex() int {
	return g.sel.first()
}

// LastSelectedIndex returns the highest selected index, or -1 when empty.
func (g *Grid) LastSelectedIndex() int {
	return g.sel.last()
}

// SetSelectable enables or disables selection. Disabling deselects every
// in-range item immediately but keeps the index set; re-enabling does not
// restore visual selection.
func (g *Grid) SetSelectable(selectable bool) {
	g.sel.setSelectable(selectable)
}

// Selectable reports whether selection is enabled.
func (g *Grid) Selectable() bool {
	return g.sel.selectable
}

// SetAllowsMultipleSelection enables modifier-based multi-selection.
func (g *Grid) SetAllowsMultipleSelection(allow bool) {
	g.allowsMultipleSelection = allow
}

// AllowsMultipleSelection reports whether multi-selection is enabled.
func (g *Grid) AllowsMultipleSelection() bool {
	return g.allowsMultipleSelection
}

// SetAllowsEmptySelection controls whether clicking empty space clears the
// selection.
func (g *Grid) SetAllowsEmptySelection(allow bool) {
	g.allowsEmptySelection = allow
}

// AllowsEmptySelection reports whether interaction may empty the selection.
func (g *Grid) AllowsEmptySelection() bool {
	return g.allowsEmptySelection
}

// FrameForIndex returns the rectangle of the item at index i. Overflow items
// report their off-canvas sentinel position. ok is false when i is out of
// range or no layout has run yet.
func (g *Grid) FrameForIndex(i int) (pos fyne.Position, size fyne.Size, ok bool) {
	if !g.hasTiling || i < 0 || i >= len(g.items) {
		return fyne.Position{}, fyne.Size{}, false
	}
	if i >= g.tiling.visibleCount {
		return g.place.offCanvasPos(), g.items[i].View().Size(), true
	}
	pos, size = g.place.rectForIndex(i)
	return pos, size, true
}

// FrameForIndexes returns the union rectangle of the given in-range, visible
// indexes. ok is false when none qualify.
func (g *Grid) FrameForIndexes(indexes []int) (pos fyne.Position, size fyne.Size, ok bool) {
	var minX, minY, maxX, maxY float32
	for _, i := range indexes {
		if i < 0 || i >= len(g.items) || !g.hasTiling || i >= g.tiling.visibleCount {
			continue
		}
		p, s := g.place.rectForIndex(i)
		if !ok {
			minX, minY, maxX, maxY = p.X, p.Y, p.X+s.Width, p.Y+s.Height
			ok = true
			continue
		}
		minX = min32(minX, p.X)
		minY = min32(minY, p.Y)
		maxX = max32(maxX, p.X+s.Width)
		maxY = max32(maxY, p.Y+s.Height)
	}
	if !ok {
		return fyne.Position{}, fyne.Size{}, false
	}
	return fyne.NewPos(minX, minY), fyne.NewSize(maxX-minX, maxY-minY), true
}

// Tiling accessors.

// NumberOfColumns returns the column count of the last tiling pass.
func (g *Grid) NumberOfColumns() int {
	return g.tiling.columns
}

// NumberOfRows returns the row count of the last tiling pass.
func (g *Grid) NumberOfRows() int {
	return g.tiling.rows
}

// ItemSize returns the item size of the last tiling pass.
func (g *Grid) ItemSize() fyne.Size {
	return g.tiling.itemSize
}

// VisibleItemCount returns how many items the last tiling pass placed inside
// the grid; the remainder sit off-canvas.
func (g *Grid) VisibleItemCount() int {
	return g.tiling.visibleCount
}

// Layout machinery.

func (g *Grid) currentAvailableSize() fyne.Size {
	if g.availableSize != nil {
		if s := g.availableSize(); s.Width > 0 {
			return s
		}
	}
	if g.scroll != nil {
		if s := g.scroll.Size(); s.Width > 0 {
			return s
		}
	}
	return g.Size()
}

// relayout runs a tiling pass against the currently offered container size.
// Strict mode always re-places items; lazy mode skips re-placement when the
// derived geometry (columns, rows, item size) is unchanged.
func (g *Grid) relayout(strict bool) {
	avail := g.currentAvailableSize()
	if avail.Width <= 0 {
		return
	}
	g.layoutPass(avail, strict)
}

func (g *Grid) layoutPass(avail fyne.Size, strict bool) {
	if g.layoutInProgress {
		return
	}
	g.layoutInProgress = true
	defer func() { g.layoutInProgress = false }()

	g.seedMinItemSize()
	if g.minItemSize.Width <= 0 || g.minItemSize.Height <= 0 {
		return
	}

	t := computeTiling(tilingParams{
		containerSize:  avail,
		minItemSize:    g.minItemSize,
		maxItemSize:    g.maxItemSize,
		maxColumns:     g.maxColumns,
		maxRows:        g.maxRows,
		verticalMargin: g.verticalMargin,
		itemCount:      len(g.items),
	})

	if !strict && g.hasTiling && t.equalGeometry(g.tiling) {
		// Only the container grew or shrank without changing the grid; keep
		// the existing placement.
		g.tiling = t
		return
	}

	g.tiling = t
	g.hasTiling = true
	g.place = newPlacement(t, g.verticalMargin, g.uniformResizing)
	g.place.apply(g.items)
	g.rebuildBackgrounds()
}

// seedMinItemSize takes the minimum item size from the prototype's natural
// size the first time layout runs. Idempotent until ResetMinItemSize.
func (g *Grid) seedMinItemSize() {
	if g.minSeeded || g.minItemSize.Width > 0 || g.factory.prototype == nil {
		return
	}
	natural := g.factory.prototype.View().MinSize()
	if natural.Width <= 0 || natural.Height <= 0 {
		return
	}
	g.minItemSize = natural
	g.minSeeded = true
}

func (g *Grid) rebuildBackgrounds() {
	g.bgRects = g.bgRects[:0]
	if len(g.backgroundColors) == 0 || !g.hasTiling {
		return
	}
	band := g.tiling.itemSize.Height + g.verticalMargin
	for row := 0; row < g.tiling.rows; row++ {
		rect := canvas.NewRectangle(g.backgroundColors[row%len(g.backgroundColors)])
		rect.Resize(fyne.NewSize(g.tiling.containerSize.Width, band))
		rect.Move(fyne.NewPos(0, float32(row)*band))
		g.bgRects = append(g.bgRects, rect)
	}
}

// Selection plumbing.

func (g *Grid) applySelection(index int, selected bool) {
	if index < 0 || index >= len(g.items) {
		return
	}
	g.items[index].SetSelected(selected)
}

func (g *Grid) selectionChanged() {
	if obs, ok := g.delegate.(SelectionObserver); ok {
		obs.SelectionChanged(g)
	}
}

func (g *Grid) focusSelf() {
	c := fyne.CurrentApp().Driver().CanvasForObject(g)
	if c != nil && c.Focused() != g {
		c.Focus(g)
	}
}

// Pointer input.

var (
	_ desktop.Mouseable = (*Grid)(nil)
	_ fyne.Tappable     = (*Grid)(nil)
	_ fyne.Focusable    = (*Grid)(nil)
	_ fyne.Draggable    = (*Grid)(nil)
)

func (g *Grid) MouseDown(e *desktop.MouseEvent) {
	g.dismissMenu()
}

func (g *Grid) MouseUp(e *desktop.MouseEvent) {
	if e.Button == desktop.MouseButtonSecondary {
		if idx := g.hitTest(e.Position); idx >= 0 {
			g.showMenuForIndex(idx, e.Position)
		}
		return
	}
	if e.Button != desktop.MouseButtonPrimary {
		return
	}

	// Guard against the click that ends a drag session.
	if g.session != nil || time.Since(g.lastDragEnd) < 200*time.Millisecond {
		return
	}

	g.handlePrimaryPress(e.Position, e.Modifier)
}

func (g *Grid) Tapped(e *fyne.PointEvent) {
	if g.session != nil || time.Since(g.lastDragEnd) < 200*time.Millisecond {
		return
	}

	if fyne.CurrentDevice().IsMobile() {
		g.handlePrimaryPress(e.Position, 0)
	}

	idx := g.hitTest(e.Position)
	now := time.Now()
	if idx >= 0 && idx == g.lastClickIndex &&
		now.Sub(g.lastClick) < fyne.CurrentApp().Driver().DoubleTapDelay() {
		g.activateSelection()
	}
	g.lastClick = now
	g.lastClickIndex = idx
}

// hitTest maps a point in widget coordinates to an item index, or -1 when the
// point misses the content.
func (g *Grid) hitTest(pos fyne.Position) int {
	if !g.hasTiling {
		return -1
	}
	idx := g.place.indexForPoint(pos)
	if idx < 0 || idx >= len(g.items) {
		return -1
	}
	return idx
}

// handlePrimaryPress interprets a primary click with modifier keys into a
// selection mutation.
func (g *Grid) handlePrimaryPress(pos fyne.Position, mods fyne.KeyModifier) {
	idx := g.hitTest(pos)
	if idx < 0 {
		if g.allowsEmptySelection {
			g.sel.clear()
		}
		return
	}

	switch {
	case g.allowsMultipleSelection && mods&fyne.KeyModifierShortcutDefault != 0:
		g.sel.toggle(idx)
	case g.allowsMultipleSelection && mods&fyne.KeyModifierShift != 0:
		anchor := g.sel.first()
		if anchor < 0 {
			anchor = 0
		}
		lo, hi := anchor, idx
		if lo > hi {
			lo, hi = hi, lo
		}
		g.sel.add(indexRange(lo, hi))
	default:
		g.sel.setSelection([]int{idx})
	}

	g.focusSelf()
}

// activateSelection signals double-click activation with the first selected
// index only, even under multi-selection.
func (g *Grid) activateSelection() {
	if g.sel.isEmpty() {
		return
	}
	if handler, ok := g.delegate.(ActivationHandler); ok {
		handler.ItemActivated(g, g.sel.first())
	}
}

// Context menu.

func (g *Grid) showMenuForIndex(index int, pos fyne.Position) {
	provider, ok := g.delegate.(MenuProvider)
	if !ok {
		return
	}
	menu := provider.MenuForIndex(index)
	if menu == nil {
		return
	}

	g.dismissMenu()
	c := fyne.CurrentApp().Driver().CanvasForObject(g)
	if c == nil {
		return
	}

	m := widget.NewMenu(menu)
	m.OnDismiss = g.dismissMenu

	absPos := fyne.CurrentApp().Driver().AbsolutePositionForObject(g).Add(pos)
	g.activeMenu = widget.NewPopUp(m, c)
	g.activeMenu.ShowAtPosition(absPos)
}

func (g *Grid) dismissMenu() {
	if g.activeMenu != nil {
		g.activeMenu.Hide()
		g.activeMenu = nil
	}
}

// Focus handling. The grid takes focus whenever a click mutates the
// selection, so keyboard navigation works immediately afterwards.

func (g *Grid) FocusGained() {
	g.focused = true
}

func (g *Grid) FocusLost() {
	g.focused = false
}

func (g *Grid) TypedRune(rune) {}

func (g *Grid) TypedKey(ev *fyne.KeyEvent) {
	expand := currentKeyModifiers()&fyne.KeyModifierShift != 0

	switch ev.Name {
	case fyne.KeyLeft:
		g.MoveLeft(expand)
	case fyne.KeyRight:
		g.MoveRight(expand)
	case fyne.KeyUp:
		g.MoveUp(expand)
	case fyne.KeyDown:
		g.MoveDown(expand)
	case fyne.KeyBackspace, fyne.KeyDelete:
		g.DeleteSelection()
	}
}

func currentKeyModifiers() fyne.KeyModifier {
	if d, ok := fyne.CurrentApp().Driver().(desktop.Driver); ok {
		return d.CurrentKeyModifiers()
	}
	return 0
}

// Rendering.

func (g *Grid) CreateRenderer() fyne.WidgetRenderer {
	return &gridRenderer{g: g}
}

type gridRenderer struct {
	g *Grid
}

func (r *gridRenderer) Layout(size fyne.Size) {
	avail := r.g.currentAvailableSize()
	if avail.Width <= 0 {
		avail = size
	}
	r.g.layoutPass(avail, false)
}

func (r *gridRenderer) MinSize() fyne.Size {
	if r.g.hasTiling {
		return r.g.tiling.containerSize
	}
	return r.g.minItemSize
}

func (r *gridRenderer) Refresh() {
	for _, rect := range r.g.bgRects {
		rect.Refresh()
	}
	for _, item := range r.g.items {
		item.View().Refresh()
	}
}

func (r *gridRenderer) Objects() []fyne.CanvasObject {
	objs := make([]fyne.CanvasObject, 0, len(r.g.bgRects)+len(r.g.items)+1)
	for _, rect := range r.g.bgRects {
		objs = append(objs, rect)
	}
	for _, item := range r.g.items {
		objs = append(objs, item.View())
	}
	if r.g.session != nil && r.g.session.ghost != nil {
		objs = append(objs, r.g.session.ghost)
	}
	return objs
}

func (r *gridRenderer) Destroy() {}

func indexRange(lo, hi int) []int {
	out := make([]int, 0, hi-lo+1)
	for i := lo; i <= hi; i++ {
		out = append(out, i)
	}
	return out
}
