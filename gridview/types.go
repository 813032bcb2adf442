package gridview

import (
	"fyne.io/fyne/v2"
)

// Item is the presentation object bound to a single content element.
// A prototype Item is registered on the Grid; the grid clones it (or pulls a
// previously released clone from the reuse pool) for every visible element.
type Item interface {
	// Clone returns a fresh, unbound copy of the item.
	Clone() Item
	// SetRepresentedElement binds the item to a content element.
	SetRepresentedElement(element any)
	// View returns the positionable canvas object the grid places.
	View() fyne.CanvasObject
	// SetSelected updates the item's visual selection state.
	SetSelected(selected bool)
}

// The delegate passed to SetDelegate is probed per capability: every optional
// behaviour is its own interface and each call site checks for it
// independently, so partial implementations are fine.

// SelectionObserver is notified synchronously after every effective selection
// mutation.
type SelectionObserver interface {
	SelectionChanged(g *Grid)
}

// ActivationHandler receives double-click activation with the first selected
// index.
type ActivationHandler interface {
	ItemActivated(g *Grid, index int)
}

// DragSource offers the pasteboard-style types available for a drag of the
// given indexes. Returning no types disables dragging.
type DragSource interface {
	DragTypesForIndexes(indexes []int) []string
}

// DragFilter can veto a drag before it starts.
type DragFilter interface {
	CanDragIndexes(indexes []int) bool
}

// DragDataProvider supplies the payload for one of the offered drag types.
type DragDataProvider interface {
	DataForIndexes(indexes []int, dragType string) []byte
}

// MenuProvider supplies a context menu for the item under a secondary click.
type MenuProvider interface {
	MenuForIndex(index int) *fyne.Menu
}

// DeleteHandler is asked to delete the selected indexes when the user presses
// backspace or delete. Returning true means the deletion was performed (the
// handler is expected to have updated the grid content).
type DeleteHandler interface {
	DeleteIndexes(g *Grid, indexes []int) bool
}

const (
	// dragThreshold is the per-axis pixel hysteresis a press-drag must exceed
	// before a drag session starts.
	dragThreshold = 3

	minItemSizeKey       = "minItemSize"
	maxItemSizeKey       = "maxItemSize"
	verticalMarginKey    = "verticalMargin"
	maxRowsKey           = "maxNumberOfRows"
	maxColumnsKey        = "maxNumberOfColumns"
	selectableKey        = "selectable"
	multipleSelectionKey = "allowsMultipleSelection"
	backgroundColorsKey  = "backgroundColors"
)
