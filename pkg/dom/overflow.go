package dom

import "fmt"

// Overflow is the computed overflow behavior of an element along one axis.
//
// Only OverflowScroll and OverflowAuto establish a scroll container; the
// resolver in [Document.ScrollParent] walks ancestors looking for either.
type Overflow int

const (
	// OverflowVisible lets content spill out of the element's box.
	// This is the zero value and the default for new elements.
	OverflowVisible Overflow = iota
	// OverflowHidden clips content without providing scrolling.
	OverflowHidden
	// OverflowScroll clips content and always provides scrolling.
	OverflowScroll
	// OverflowAuto clips content and provides scrolling when needed.
	OverflowAuto
)

// String returns a human-readable representation of the overflow value.
func (o Overflow) String() string {
	switch o {
	case OverflowVisible:
		return "visible"
	case OverflowHidden:
		return "hidden"
	case OverflowScroll:
		return "scroll"
	case OverflowAuto:
		return "auto"
	default:
		return fmt.Sprintf("Overflow(%d)", int(o))
	}
}

// Scrollable reports whether this overflow value establishes a scroll
// container.
func (o Overflow) Scrollable() bool {
	return o == OverflowScroll || o == OverflowAuto
}

// ParseOverflow converts an overflow keyword to an Overflow value.
// Unknown keywords parse as OverflowVisible.
func ParseOverflow(s string) Overflow {
	switch s {
	case "hidden":
		return OverflowHidden
	case "scroll":
		return OverflowScroll
	case "auto":
		return OverflowAuto
	default:
		return OverflowVisible
	}
}
