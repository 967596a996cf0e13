package dom

import "github.com/go-drift/lazyload/pkg/geometry"

// ScrollContainer is the scrolling context an element's visibility is
// judged against: either a scrollable ancestor element or the viewport.
// The zero value is not valid; obtain one from [Document.ScrollParent].
type ScrollContainer struct {
	element  *Element // nil means the viewport
	viewport *Viewport
}

// ScrollParent resolves the scroll container for el: the nearest ancestor
// whose computed overflow on either axis is scroll or auto, or the
// viewport when the chain is exhausted. A detached element (nil parent)
// resolves to the viewport immediately. The walk is pure and synchronous;
// callers cache the result.
func (d *Document) ScrollParent(el *Element) ScrollContainer {
	for p := el.Parent(); p != nil; p = p.Parent() {
		s := p.Style()
		if s.OverflowX.Scrollable() || s.OverflowY.Scrollable() {
			return ScrollContainer{element: p, viewport: d.viewport}
		}
	}
	return ScrollContainer{viewport: d.viewport}
}

// IsViewport reports whether the container is the viewport rather than an
// element.
func (c ScrollContainer) IsViewport() bool { return c.element == nil }

// Element returns the container element, or nil for the viewport.
func (c ScrollContainer) Element() *Element { return c.element }

// Viewport returns the document viewport the container belongs to.
func (c ScrollContainer) Viewport() *Viewport { return c.viewport }

// Rect returns the container's extent in viewport coordinates: the
// element's client rect, or (0,0,width,height) for the viewport.
func (c ScrollContainer) Rect() geometry.Rect {
	if c.element != nil {
		return c.element.BoundingClientRect()
	}
	return c.viewport.Rect()
}

// AddScrollListener registers fn on the container's scroll stream.
func (c ScrollContainer) AddScrollListener(fn func()) int {
	if c.element != nil {
		return c.element.AddScrollListener(fn)
	}
	return c.viewport.AddScrollListener(fn)
}

// RemoveScrollListener unregisters a listener added through
// AddScrollListener.
func (c ScrollContainer) RemoveScrollListener(id int) {
	if c.element != nil {
		c.element.RemoveScrollListener(id)
		return
	}
	c.viewport.RemoveScrollListener(id)
}
