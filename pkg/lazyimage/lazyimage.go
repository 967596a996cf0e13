// Package lazyimage is the presentation layer on top of the visibility
// engine: it shows a cheap placeholder for an element until the element
// nears the viewport, then fetches and decodes the full image exactly
// once.
package lazyimage

import (
	"image"

	"github.com/go-drift/lazyload/pkg/dom"
	"github.com/go-drift/lazyload/pkg/errors"
	"github.com/go-drift/lazyload/pkg/visibility"
)

// Fetcher produces the full-quality image on reveal. It is called at most
// once per LazyImage. Network and disk access live behind this function;
// the engine never performs I/O itself.
type Fetcher func() (image.Image, error)

// Options configures a LazyImage.
type Options struct {
	// Placeholder is shown until the reveal. May be nil.
	Placeholder image.Image
	// Config drives the visibility decision. The zero value disables the
	// observer and polls synchronously; most callers want
	// [visibility.DefaultConfig].
	Config visibility.Config
	// OnChange runs after the full image is swapped in.
	OnChange func(image.Image)
}

// LazyImage binds one document element to a deferred image load.
//
// Fetch or decode failures keep the placeholder in place and go to the
// [errors] handler; the image simply never upgrades.
type LazyImage struct {
	element    *dom.Element
	fetch      Fetcher
	onChange   func(image.Image)
	current    image.Image
	controller *visibility.Controller
}

// New creates a LazyImage for element and starts visibility detection.
// An element already in view (or VisibleByDefault) fetches before New
// returns.
func New(element *dom.Element, fetch Fetcher, opts Options) *LazyImage {
	li := &LazyImage{
		element:  element,
		fetch:    fetch,
		onChange: opts.OnChange,
		current:  opts.Placeholder,
	}
	li.controller = visibility.NewController(element, opts.Config, li.reveal)
	return li
}

// Current returns the image to present right now: the placeholder before
// the reveal, the full image after a successful one.
func (li *LazyImage) Current() image.Image { return li.current }

// Element returns the bound document element.
func (li *LazyImage) Element() *dom.Element { return li.element }

// State returns the underlying controller state.
func (li *LazyImage) State() visibility.State { return li.controller.State() }

// Dispose stops visibility detection. Idempotent; safe after a reveal.
func (li *LazyImage) Dispose() { li.controller.Dispose() }

func (li *LazyImage) reveal() {
	defer errors.Recover("lazyimage.reveal")
	if li.fetch == nil {
		return
	}
	img, err := li.fetch()
	if err != nil {
		errors.Report(&errors.LazyError{Op: "lazyimage.reveal", Kind: errors.KindFetch, Err: err})
		return
	}
	li.current = img
	if li.onChange != nil {
		li.onChange(img)
	}
}
