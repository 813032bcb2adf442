package gridview

import (
	"image"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/software"
	"golang.org/x/image/draw"
)

// dragGhostOpacity is how translucent the floating drag visual is drawn.
const dragGhostOpacity = 0.5

// dragSession is one in-flight item drag. It is seeded with the payloads for
// every offered drag type and a semi-transparent visual of the representative
// (first selected) item, anchored at that item's rectangle.
type dragSession struct {
	indexes []int
	types   []string
	data    map[string][]byte

	ghost        *canvas.Image
	anchor       fyne.Position
	startPointer fyne.Position
}

// Dragged implements fyne.Draggable. A drag session only starts once the
// pointer has travelled past the hysteresis threshold on both axes, there is
// a non-empty selection and the delegate offers drag types.
func (g *Grid) Dragged(e *fyne.DragEvent) {
	if g.session == nil {
		if !g.dragPending {
			g.dragPending = true
			g.dragStartPos = e.Position.Subtract(e.Dragged)
		}
		dx := abs32(e.Position.X - g.dragStartPos.X)
		dy := abs32(e.Position.Y - g.dragStartPos.Y)
		if dx <= dragThreshold || dy <= dragThreshold {
			return
		}
		g.startDragSession(e.Position)
		if g.session == nil {
			return
		}
	}

	delta := e.Position.Subtract(g.session.startPointer)
	g.session.ghost.Move(g.session.anchor.Add(delta))
	g.Refresh()
}

// DragEnd tears the session down. Drop negotiation is a collaborator
// concern; the session's payloads were already handed over at start.
func (g *Grid) DragEnd() {
	g.dragPending = false
	if g.session == nil {
		return
	}
	g.session = nil
	g.lastDragEnd = time.Now()
	g.Refresh()
}

func (g *Grid) startDragSession(pointer fyne.Position) {
	sel := g.sel.selection()
	if len(sel) == 0 {
		return
	}

	source, ok := g.delegate.(DragSource)
	if !ok {
		return
	}
	types := source.DragTypesForIndexes(sel)
	if len(types) == 0 {
		return
	}

	if filter, ok := g.delegate.(DragFilter); ok && !filter.CanDragIndexes(sel) {
		return
	}

	rep := g.representativeIndex(sel)
	if rep < 0 {
		return
	}
	anchor, size, ok := g.FrameForIndex(rep)
	if !ok {
		return
	}

	session := &dragSession{
		indexes:      sel,
		types:        types,
		data:         make(map[string][]byte, len(types)),
		anchor:       anchor,
		startPointer: pointer,
	}
	if provider, ok := g.delegate.(DragDataProvider); ok {
		for _, t := range types {
			session.data[t] = provider.DataForIndexes(sel, t)
		}
	}

	session.ghost = g.dragGhost(g.content[rep], size)
	session.ghost.Move(anchor)
	g.session = session
	g.Refresh()
}

// representativeIndex returns the first selected index that maps to a live
// item; stale indexes from a content shrink are skipped.
func (g *Grid) representativeIndex(sel []int) int {
	for _, i := range sel {
		if i < len(g.items) {
			return i
		}
	}
	return -1
}

// dragGhost builds the floating visual: a throwaway item is pulled from the
// factory for the dragged element, software-rendered, scaled to the current
// item size and drawn translucent.
func (g *Grid) dragGhost(element any, size fyne.Size) *canvas.Image {
	item := g.factory.create(element, size)
	item.SetSelected(true)
	item.View().Resize(size)

	src := software.Render(item.View(), fyne.CurrentApp().Settings().Theme())
	g.factory.release([]Item{item})

	w, h := int(size.Width), int(size.Height)
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)

	ghost := canvas.NewImageFromImage(dst)
	ghost.FillMode = canvas.ImageFillContain
	ghost.Translucency = dragGhostOpacity
	ghost.Resize(size)
	return ghost
}
