package visibility

import (
	"github.com/go-drift/lazyload/pkg/dom"
	"github.com/go-drift/lazyload/pkg/ratelimit"
)

// detector is one activated detection strategy. Construction activates
// it; dispose detaches everything and must be idempotent. A detector
// reports at most once, through the onVisible it was built with, and
// detaches itself before reporting.
type detector interface {
	dispose()
}

// inView is the single source of truth for the polling geometry test:
// the element's client rect must overlap the container rect on both axes.
func inView(el *dom.Element, container dom.ScrollContainer) bool {
	return el.BoundingClientRect().Overlaps(container.Rect())
}

// observerDetector rides the host's intersection observer. It fires once
// and disconnects itself.
type observerDetector struct {
	observer *dom.IntersectionObserver
	done     bool
}

func newObserverDetector(el *dom.Element, threshold float64, onVisible func()) *observerDetector {
	d := &observerDetector{}
	d.observer = el.Document().NewIntersectionObserver(func(entries []dom.IntersectionEntry) {
		if d.done {
			return
		}
		for _, entry := range entries {
			if entry.Ratio > 0 {
				d.dispose()
				onVisible()
				return
			}
		}
	}, dom.ObserverOptions{RootMargin: threshold})
	// Observe delivers the initial entry synchronously, so an
	// already-visible element reveals before this returns.
	d.observer.Observe(el)
	return d
}

func (d *observerDetector) dispose() {
	if d.done {
		return
	}
	d.done = true
	d.observer.Disconnect()
}

// pollingDetector recomputes geometry on scroll and resize, gated by a
// rate limiter. The scroll listener lives on the resolved container, the
// resize listener always on the viewport; disposal removes both together.
type pollingDetector struct {
	element   *dom.Element
	container dom.ScrollContainer
	limiter   *ratelimit.Limiter
	onVisible func()

	scrollID int
	resizeID int
	disposed bool
}

func newPollingDetector(el *dom.Element, cfg Config, onVisible func()) *pollingDetector {
	doc := el.Document()
	d := &pollingDetector{
		element:   el,
		container: doc.ScrollParent(el), // resolved once, never again
		onVisible: onVisible,
	}
	d.limiter = ratelimit.New(d.check, cfg.DelayTime, cfg.DelayMethod)
	d.scrollID = d.container.AddScrollListener(d.limiter.Call)
	d.resizeID = doc.Viewport().AddResizeListener(d.limiter.Call)
	// Unthrottled setup-time check catches elements already in view.
	d.check()
	return d
}

// check runs the shared geometry predicate. A limiter timer queued before
// disposal can still land here, hence the disposed guard.
func (d *pollingDetector) check() {
	if d.disposed {
		return
	}
	if !inView(d.element, d.container) {
		return
	}
	onVisible := d.onVisible
	d.dispose()
	onVisible()
}

func (d *pollingDetector) dispose() {
	if d.disposed {
		return
	}
	d.disposed = true
	d.limiter.Cancel()
	d.container.RemoveScrollListener(d.scrollID)
	d.element.Document().Viewport().RemoveResizeListener(d.resizeID)
}
