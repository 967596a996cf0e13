package visibility

import (
	"time"

	"github.com/go-drift/lazyload/pkg/ratelimit"
)

// Config fixes a controller's behavior at construction time. A Config is
// never re-read after the controller is built; changing host capabilities
// or fields afterwards has no effect on existing controllers.
type Config struct {
	// UseObserver requests the observer strategy. It is honored only when
	// the document's host supports the intersection observer API;
	// otherwise the controller falls back to polling.
	UseObserver bool

	// Threshold grows the detection region beyond the viewport by this
	// many pixels on every side, so the reveal can happen before the
	// element is geometrically visible. Observer strategy only.
	Threshold float64

	// VisibleByDefault skips detection entirely: the controller is born
	// revealed and fires its callback during construction.
	VisibleByDefault bool

	// DelayMethod selects how the polling strategy rate-limits its
	// geometry checks.
	DelayMethod ratelimit.Policy

	// DelayTime is the rate-limit interval for the polling strategy.
	// Zero runs every check synchronously.
	DelayTime time.Duration
}

// DefaultConfig returns the engine defaults: observer strategy with a
// 100px threshold, throttled polling fallback at 300ms.
func DefaultConfig() Config {
	return Config{
		UseObserver: true,
		Threshold:   100,
		DelayMethod: ratelimit.Throttle,
		DelayTime:   300 * time.Millisecond,
	}
}
