package lighter

import (
	"fmt"

	"github.com/dshills/overkey/internal/input/overlay"
)

// Style selects how the indicator renders.
type Style string

// Indicator styles.
const (
	// StyleNumber shows the identity of the frontmost active overlay.
	StyleNumber Style = "number"

	// StyleTag shows the frontmost active overlay's tag, falling back
	// to its identity when the tag is empty.
	StyleTag Style = "tag"

	// StyleSimple shows a fixed marker whenever any overlay is active.
	StyleSimple Style = "simple"

	// StyleStatic shows configured static text.
	StyleStatic Style = "static"

	// StyleCustom delegates to a caller-supplied renderer.
	StyleCustom Style = "custom"
)

// ValidStyle reports whether name is a known style.
func ValidStyle(name string) bool {
	switch Style(name) {
	case StyleNumber, StyleTag, StyleSimple, StyleStatic, StyleCustom:
		return true
	}
	return false
}

const simpleMarker = "[ov]"

// Lighter renders the status-line indicator for the overlay registry.
// The indicator is empty whenever no overlay is active.
type Lighter struct {
	style  Style
	static string
	custom func(*overlay.Registry) string
}

// New creates a lighter with the given style.
func New(style Style) *Lighter {
	return &Lighter{style: style}
}

// SetStatic sets the text for StyleStatic.
func (l *Lighter) SetStatic(text string) {
	l.static = text
}

// SetCustom sets the renderer for StyleCustom.
func (l *Lighter) SetCustom(fn func(*overlay.Registry) string) {
	l.custom = fn
}

// Render returns the indicator text for the registry's current state.
func (l *Lighter) Render(reg *overlay.Registry) string {
	if reg.ActiveCount() == 0 {
		return ""
	}

	switch l.style {
	case StyleNumber:
		if o := firstActive(reg); o != nil {
			return fmt.Sprintf("[%d]", o.ID())
		}
		return ""
	case StyleTag:
		o := firstActive(reg)
		if o == nil {
			return ""
		}
		if o.Tag() != "" {
			return fmt.Sprintf("[%s]", o.Tag())
		}
		return fmt.Sprintf("[%d]", o.ID())
	case StyleSimple:
		return simpleMarker
	case StyleStatic:
		return l.static
	case StyleCustom:
		if l.custom != nil {
			return l.custom(reg)
		}
		return ""
	default:
		return ""
	}
}

// firstActive returns the frontmost active overlay. The plain front
// overlay can be inactive while a lower one is active, and the
// indicator must name an overlay dispatch would actually consult.
func firstActive(reg *overlay.Registry) *overlay.Overlay {
	for _, o := range reg.View() {
		if o.Active() {
			return o
		}
	}
	return nil
}
