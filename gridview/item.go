package gridview

import (
	"fyne.io/fyne/v2"
)

// itemFactory produces presentation items for content elements. Released
// items go into a reuse pool and are handed out again before the prototype is
// cloned. Pool order is LIFO; only correctness of reuse matters, not which
// clone a given element receives.
type itemFactory struct {
	prototype Item
	pool      []Item
}

func (f *itemFactory) setPrototype(proto Item) {
	f.prototype = proto
	f.pool = nil
}

// create returns an item bound to element, sized to the current cached item
// size. A missing prototype is a configuration error.
func (f *itemFactory) create(element any, size fyne.Size) Item {
	var item Item
	if n := len(f.pool); n > 0 {
		item = f.pool[n-1]
		f.pool = f.pool[:n-1]
	} else {
		if f.prototype == nil {
			panic("gridview: no item prototype registered")
		}
		item = f.prototype.Clone()
	}

	item.SetRepresentedElement(element)
	if size.Width > 0 && size.Height > 0 {
		item.View().Resize(size)
	}
	return item
}

// release returns items to the pool for reuse on the next reload.
func (f *itemFactory) release(items []Item) {
	for _, item := range items {
		item.SetSelected(false)
		item.SetRepresentedElement(nil)
		f.pool = append(f.pool, item)
	}
}
