package dom

import "github.com/go-drift/lazyload/pkg/geometry"

// IntersectionEntry describes one target's intersection with the observer
// region at the time of delivery.
type IntersectionEntry struct {
	// Target is the observed element.
	Target *Element
	// Ratio is the fraction of the target's client rect inside the
	// observer region, in [0, 1]. Zero-area targets report 0.
	Ratio float64
	// Intersecting is true when Ratio is greater than zero.
	Intersecting bool
	// ClientRect is the target's client rect at delivery time.
	ClientRect geometry.Rect
}

// ObserverOptions configures an IntersectionObserver.
type ObserverOptions struct {
	// RootMargin grows the observer region beyond the viewport by this
	// many pixels on every side. Zero means exact viewport bounds.
	RootMargin float64
}

// IntersectionObserver watches elements for intersection with the
// viewport, expanded by a root margin.
//
// Unlike the browser API this analog delivers synchronously: Observe
// delivers an initial entry for the new target before returning, and any
// document geometry change delivers entries for every target whose ratio
// changed. Check [Document.SupportsIntersectionObserver] before
// constructing one; hosts below the minimum engine version do not ship
// the API and callers are expected to fall back to polling.
type IntersectionObserver struct {
	doc      *Document
	callback func([]IntersectionEntry)
	margin   float64

	targets    map[*Element]float64 // last delivered ratio
	listenerID int
	connected  bool
}

// NewIntersectionObserver creates an observer delivering entries to
// callback.
func (d *Document) NewIntersectionObserver(callback func([]IntersectionEntry), opts ObserverOptions) *IntersectionObserver {
	o := &IntersectionObserver{
		doc:      d,
		callback: callback,
		margin:   opts.RootMargin,
		targets:  make(map[*Element]float64),
	}
	o.listenerID = d.addGeometryListener(o.check)
	o.connected = true
	return o
}

// Observe adds el to the observed set and synchronously delivers its
// initial entry, intersecting or not.
func (o *IntersectionObserver) Observe(el *Element) {
	if !o.connected || el == nil {
		return
	}
	if _, ok := o.targets[el]; ok {
		return
	}
	entry := o.entryFor(el)
	o.targets[el] = entry.Ratio
	o.callback([]IntersectionEntry{entry})
}

// Unobserve removes el from the observed set.
func (o *IntersectionObserver) Unobserve(el *Element) {
	delete(o.targets, el)
}

// Disconnect stops observing everything and detaches from the document.
// No callback fires after Disconnect returns. Disconnect is idempotent.
func (o *IntersectionObserver) Disconnect() {
	if !o.connected {
		return
	}
	o.connected = false
	o.doc.removeGeometryListener(o.listenerID)
	o.targets = make(map[*Element]float64)
}

// check recomputes every target's ratio and delivers entries for those
// that changed.
func (o *IntersectionObserver) check() {
	if !o.connected {
		return
	}
	var entries []IntersectionEntry
	for el, last := range o.targets {
		entry := o.entryFor(el)
		if entry.Ratio != last {
			o.targets[el] = entry.Ratio
			entries = append(entries, entry)
		}
	}
	if len(entries) > 0 {
		o.callback(entries)
	}
}

func (o *IntersectionObserver) entryFor(el *Element) IntersectionEntry {
	region := o.doc.viewport.Rect().Inflate(o.margin)
	rect := el.BoundingClientRect()
	ratio := 0.0
	if area := rect.Area(); area > 0 {
		ratio = rect.Intersect(region).Area() / area
	}
	return IntersectionEntry{
		Target:       el,
		Ratio:        ratio,
		Intersecting: ratio > 0,
		ClientRect:   rect,
	}
}
