// Package dom provides the headless document model the visibility engine
// runs against: a viewport, an element tree with computed overflow, scroll
// container resolution, and an intersection observer analog.
//
// The model is single-threaded and cooperative. Scroll, resize, and
// observer notifications are delivered synchronously on the goroutine that
// mutated the document; serialization comes from the host call graph, not
// from locks.
package dom

import (
	"golang.org/x/mod/semver"

	"github.com/go-drift/lazyload/pkg/geometry"
)

// minObserverVersion is the first host engine version that ships the
// intersection observer API.
const minObserverVersion = "v1.2.0"

// defaultEngineVersion is the engine version new documents report.
const defaultEngineVersion = "v1.4.0"

// Document is the root of a headless element tree.
type Document struct {
	viewport      *Viewport
	root          *Element
	engineVersion string

	geometryListeners map[int]func()
	nextListenerID    int
}

// NewDocument creates a document with an empty root element and a
// 1024x768 viewport.
func NewDocument() *Document {
	d := &Document{
		engineVersion:     defaultEngineVersion,
		geometryListeners: make(map[int]func()),
	}
	d.viewport = &Viewport{
		doc:             d,
		width:           1024,
		height:          768,
		scrollListeners: make(map[int]func()),
		resizeListeners: make(map[int]func()),
	}
	d.root = d.CreateElement("root")
	return d
}

// Viewport returns the document's viewport.
func (d *Document) Viewport() *Viewport { return d.viewport }

// Root returns the document's root element.
func (d *Document) Root() *Element { return d.root }

// CreateElement creates a detached element belonging to this document.
func (d *Document) CreateElement(tag string) *Element {
	return &Element{Tag: tag, doc: d}
}

// EngineVersion returns the host engine version string.
func (d *Document) EngineVersion() string { return d.engineVersion }

// SetEngineVersion sets the host engine version. Use a version below
// v1.2.0, or an invalid one, to model a host without the observer API.
func (d *Document) SetEngineVersion(v string) { d.engineVersion = v }

// SupportsIntersectionObserver reports whether the host engine ships the
// intersection observer API. Invalid versions report false.
func (d *Document) SupportsIntersectionObserver() bool {
	return semver.IsValid(d.engineVersion) &&
		semver.Compare(d.engineVersion, minObserverVersion) >= 0
}

// notifyGeometryChanged fans a geometry change out to observers. Any
// mutation that can move a client rect ends up here: viewport scroll and
// resize, element scroll, layout, and tree edits.
func (d *Document) notifyGeometryChanged() {
	for _, fn := range d.geometryListeners {
		fn()
	}
}

func (d *Document) addGeometryListener(fn func()) int {
	id := d.nextListenerID
	d.nextListenerID++
	d.geometryListeners[id] = fn
	return id
}

func (d *Document) removeGeometryListener(id int) {
	delete(d.geometryListeners, id)
}

// Viewport is the document's scrolling window. Its rect in viewport
// coordinates is always (0,0,width,height).
type Viewport struct {
	doc     *Document
	width   float64
	height  float64
	scrollX float64
	scrollY float64

	scrollListeners map[int]func()
	resizeListeners map[int]func()
	nextListenerID  int
}

// Size returns the viewport dimensions.
func (v *Viewport) Size() geometry.Size {
	return geometry.Size{Width: v.width, Height: v.height}
}

// SetSize resizes the viewport and notifies resize listeners
// synchronously.
func (v *Viewport) SetSize(width, height float64) {
	v.width = width
	v.height = height
	for _, fn := range v.resizeListeners {
		fn()
	}
	v.doc.notifyGeometryChanged()
}

// Rect returns the viewport extent in viewport coordinates.
func (v *Viewport) Rect() geometry.Rect {
	return geometry.RectFromLTWH(0, 0, v.width, v.height)
}

// ScrollX returns the horizontal scroll offset.
func (v *Viewport) ScrollX() float64 { return v.scrollX }

// ScrollY returns the vertical scroll offset.
func (v *Viewport) ScrollY() float64 { return v.scrollY }

// ScrollTo sets the viewport scroll offsets and notifies scroll listeners
// synchronously.
func (v *Viewport) ScrollTo(x, y float64) {
	v.scrollX = x
	v.scrollY = y
	for _, fn := range v.scrollListeners {
		fn()
	}
	v.doc.notifyGeometryChanged()
}

// AddScrollListener registers fn to run on every ScrollTo. It returns an
// id for RemoveScrollListener.
func (v *Viewport) AddScrollListener(fn func()) int {
	id := v.nextListenerID
	v.nextListenerID++
	v.scrollListeners[id] = fn
	return id
}

// RemoveScrollListener unregisters a scroll listener.
func (v *Viewport) RemoveScrollListener(id int) {
	delete(v.scrollListeners, id)
}

// AddResizeListener registers fn to run on every SetSize. It returns an
// id for RemoveResizeListener.
func (v *Viewport) AddResizeListener(fn func()) int {
	id := v.nextListenerID
	v.nextListenerID++
	v.resizeListeners[id] = fn
	return id
}

// RemoveResizeListener unregisters a resize listener.
func (v *Viewport) RemoveResizeListener(id int) {
	delete(v.resizeListeners, id)
}

// ListenerCount returns the number of registered scroll and resize
// listeners. Tests use this to verify disposal left nothing behind.
func (v *Viewport) ListenerCount() int {
	return len(v.scrollListeners) + len(v.resizeListeners)
}
