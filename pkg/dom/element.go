package dom

import "github.com/go-drift/lazyload/pkg/geometry"

// Style holds the computed style properties the visibility engine reads.
type Style struct {
	OverflowX Overflow
	OverflowY Overflow
}

// Element is a node in the headless document tree.
//
// An element carries a layout rect in document coordinates (where the
// layout pass placed it, ignoring all scrolling) and its own scroll
// offsets when it is a scroll container. [Element.BoundingClientRect]
// converts the layout rect into viewport coordinates.
//
// Elements are created through [Document.CreateElement] and attached with
// AppendChild. A freshly created element is detached; the visibility
// engine treats a detached element's scroll container as the viewport.
type Element struct {
	// Tag is the element's tag name, informational only.
	Tag string

	doc      *Document
	parent   *Element
	children []*Element

	style   Style
	rect    geometry.Rect
	scrollX float64
	scrollY float64

	scrollListeners map[int]func()
	nextListenerID  int
}

// Document returns the document this element belongs to.
func (e *Element) Document() *Document { return e.doc }

// Parent returns the element's parent, or nil if detached.
func (e *Element) Parent() *Element { return e.parent }

// Children returns the element's children.
func (e *Element) Children() []*Element { return e.children }

// AppendChild attaches child as the last child of e, detaching it from
// any previous parent first.
func (e *Element) AppendChild(child *Element) {
	if child == nil || child == e {
		return
	}
	child.Remove()
	child.parent = e
	e.children = append(e.children, child)
	e.doc.notifyGeometryChanged()
}

// Remove detaches the element from its parent. A detached element keeps
// its layout rect but no longer participates in ancestor walks.
func (e *Element) Remove() {
	p := e.parent
	if p == nil {
		return
	}
	for i, c := range p.children {
		if c == e {
			p.children = append(p.children[:i], p.children[i+1:]...)
			break
		}
	}
	e.parent = nil
	e.doc.notifyGeometryChanged()
}

// Style returns the element's computed style.
func (e *Element) Style() Style { return e.style }

// SetStyle replaces the element's computed style.
func (e *Element) SetStyle(s Style) { e.style = s }

// LayoutRect returns the element's rect in document coordinates.
func (e *Element) LayoutRect() geometry.Rect { return e.rect }

// SetLayoutRect places the element in document coordinates, as a layout
// pass would.
func (e *Element) SetLayoutRect(r geometry.Rect) {
	e.rect = r
	e.doc.notifyGeometryChanged()
}

// ScrollLeft returns the element's horizontal scroll offset.
func (e *Element) ScrollLeft() float64 { return e.scrollX }

// ScrollTop returns the element's vertical scroll offset.
func (e *Element) ScrollTop() float64 { return e.scrollY }

// ScrollTo sets the element's scroll offsets and notifies its scroll
// listeners synchronously.
func (e *Element) ScrollTo(x, y float64) {
	e.scrollX = x
	e.scrollY = y
	for _, fn := range e.scrollListeners {
		fn()
	}
	e.doc.notifyGeometryChanged()
}

// BoundingClientRect returns the element's rect in viewport coordinates:
// the layout rect shifted by the viewport scroll and by the scroll offset
// of every ancestor scroll container.
func (e *Element) BoundingClientRect() geometry.Rect {
	r := e.rect.Translate(-e.doc.viewport.scrollX, -e.doc.viewport.scrollY)
	for p := e.parent; p != nil; p = p.parent {
		if p.scrollX != 0 || p.scrollY != 0 {
			r = r.Translate(-p.scrollX, -p.scrollY)
		}
	}
	return r
}

// AddScrollListener registers fn to run on every ScrollTo. It returns an
// id for RemoveScrollListener.
func (e *Element) AddScrollListener(fn func()) int {
	if e.scrollListeners == nil {
		e.scrollListeners = make(map[int]func())
	}
	id := e.nextListenerID
	e.nextListenerID++
	e.scrollListeners[id] = fn
	return id
}

// RemoveScrollListener unregisters a scroll listener. Unknown ids are
// ignored.
func (e *Element) RemoveScrollListener(id int) {
	delete(e.scrollListeners, id)
}

// ScrollListenerCount returns the number of registered scroll listeners.
// Tests use this to verify disposal left nothing behind.
func (e *Element) ScrollListenerCount() int { return len(e.scrollListeners) }
