// Package visibility decides when a tracked element has come close enough
// to a scrollable viewport that its full-quality resource should load.
//
// A [Controller] watches one element. At construction it picks one of two
// strategies and sticks with it: the host's intersection observer when
// available and requested, or a rate-limited geometry poll on scroll and
// resize otherwise. Whichever strategy runs, the controller emits exactly
// one reveal notification over its whole lifetime, and once revealed (or
// disposed) it holds no listeners, observers, or timers.
package visibility

import (
	"fmt"

	"github.com/go-drift/lazyload/pkg/dom"
)

// State is a controller's position in its one-way lifecycle.
//
//	          reveal
//	Pending ──────────► Revealed
//
// There is no transition back: a revealed controller stays revealed.
type State int

const (
	// Pending means the placeholder is showing and detection is active.
	Pending State = iota
	// Revealed means the full resource was requested and detection is
	// permanently disposed.
	Revealed
)

// String returns a human-readable representation of the state.
func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case Revealed:
		return "revealed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Controller tracks one element and fires onReveal exactly once when it
// becomes visible.
//
// Controllers are single-threaded: construct, dispose, and deliver host
// events on the same goroutine. Call Dispose when the element leaves the
// document; disposing is idempotent and safe after a natural reveal.
type Controller struct {
	element  *dom.Element
	config   Config
	onReveal func()

	state State
	det   detector
}

// NewController builds a controller for element and activates detection
// immediately.
//
// VisibleByDefault, or an element already in view, fires onReveal before
// NewController returns. The strategy choice (observer vs. polling) and
// the polling strategy's scroll container are fixed here for the
// controller's lifetime; later capability or DOM changes are not
// re-evaluated.
func NewController(element *dom.Element, config Config, onReveal func()) *Controller {
	c := &Controller{
		element:  element,
		config:   config,
		onReveal: onReveal,
	}
	if config.VisibleByDefault {
		c.state = Revealed
		if onReveal != nil {
			onReveal()
		}
		return c
	}

	var det detector
	if config.UseObserver && element.Document().SupportsIntersectionObserver() {
		det = newObserverDetector(element, config.Threshold, c.reveal)
	} else {
		det = newPollingDetector(element, config, c.reveal)
	}
	// Activation may have revealed synchronously; only a still-pending
	// controller keeps the detector.
	if c.state == Pending {
		c.det = det
	} else {
		det.dispose()
	}
	return c
}

// State returns the controller's current state.
func (c *Controller) State() State { return c.state }

// Element returns the tracked element.
func (c *Controller) Element() *dom.Element { return c.element }

// Dispose detaches all detection resources. It is idempotent: calling it
// repeatedly, or after the controller revealed naturally, is a no-op. A
// disposed pending controller never reveals.
func (c *Controller) Dispose() {
	if c.det != nil {
		c.det.dispose()
		c.det = nil
	}
}

// reveal performs the one-way Pending -> Revealed transition: detection
// resources go first, then the caller's callback, exactly once.
func (c *Controller) reveal() {
	if c.state == Revealed {
		return
	}
	c.state = Revealed
	c.Dispose()
	if c.onReveal != nil {
		c.onReveal()
	}
}
