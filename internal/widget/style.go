package widget

import "strings"

// Fixed contract of the back button. The link target and label are part of
// the published site behaviour and must not drift between pages.
const (
	Href      = "./index.html"
	Label     = "⬅ Volver al menú"
	AriaLabel = "Volver al menú"

	// TopOffset is the resting vertical offset; TopOffsetBelowHeader is
	// used when the page carries a header or nav bar the button would
	// otherwise overlap.
	TopOffset            = "16px"
	TopOffsetBelowHeader = "64px"

	// RestOpacity is the dimmed idle state; HoverOpacity is applied while
	// the pointer is over the button.
	RestOpacity  = "0.92"
	HoverOpacity = "1"
)

// Style is the declarative appearance of the back button. It is rendered
// into the element's inline style attribute at build time; nothing about
// it is re-evaluated after insertion.
type Style struct {
	Position   string
	Top        string
	Left       string
	ZIndex     string
	Background string
	Color      string
	Border     string
	Radius     string
	Padding    string
	FontFamily string
	FontSize   string
	Decoration string
	Shadow     string
	Opacity    string
}

// DefaultStyle is the fixed look of the button: floating pill, top-left,
// dimmed until hovered, always above page content.
func DefaultStyle() Style {
	return Style{
		Position:   "fixed",
		Top:        TopOffset,
		Left:       "16px",
		ZIndex:     "9999",
		Background: "#ffffff",
		Color:      "#333333",
		Border:     "1px solid #dddddd",
		Radius:     "999px",
		Padding:    "10px 14px",
		FontFamily: "-apple-system,BlinkMacSystemFont,'Segoe UI',Roboto,sans-serif",
		FontSize:   "14px",
		Decoration: "none",
		Shadow:     "0 2px 8px rgba(0,0,0,0.15)",
		Opacity:    RestOpacity,
	}
}

// Inline renders the style as a CSS inline-style declaration list.
func (s Style) Inline() string {
	props := []struct{ name, value string }{
		{"position", s.Position},
		{"top", s.Top},
		{"left", s.Left},
		{"z-index", s.ZIndex},
		{"background", s.Background},
		{"color", s.Color},
		{"border", s.Border},
		{"border-radius", s.Radius},
		{"padding", s.Padding},
		{"font-family", s.FontFamily},
		{"font-size", s.FontSize},
		{"text-decoration", s.Decoration},
		{"box-shadow", s.Shadow},
		{"opacity", s.Opacity},
	}

	var b strings.Builder
	for _, p := range props {
		if p.value == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte(';')
		}
		b.WriteString(p.name)
		b.WriteByte(':')
		b.WriteString(p.value)
	}
	return b.String()
}
