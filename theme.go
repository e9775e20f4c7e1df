package pptxscene

import (
	"fmt"
	"strings"

	"github.com/antchfx/xmlquery"
)

// Theme is the color scheme and font scheme of a theme part. It is
// immutable once loaded and shared by every slide that uses it.
type Theme struct {
	Name string
	// Colors maps scheme slots (dk1, lt1, accent1, hlink...) to uppercase
	// RRGGBB values.
	Colors    map[string]string
	MajorFont string
	MinorFont string
}

// themeColorSlots lists the slots of a:clrScheme in schema order.
var themeColorSlots = []string{
	"dk1", "lt1", "dk2", "lt2",
	"accent1", "accent2", "accent3", "accent4", "accent5", "accent6",
	"hlink", "folHlink",
}

func emptyTheme() *Theme {
	return &Theme{Colors: map[string]string{}}
}

// color returns the RRGGBB value of a scheme slot.
func (t *Theme) color(slot string) (string, bool) {
	if t == nil {
		return "", false
	}
	v, ok := t.Colors[slot]
	return v, ok && v != ""
}

func localPath(names ...string) string {
	var sb strings.Builder
	for _, n := range names {
		sb.WriteString("/*[local-name()='")
		sb.WriteString(n)
		sb.WriteString("']")
	}
	return sb.String()
}

func localChild(name string) string {
	return "*[local-name()='" + name + "']"
}

// themeParserOptions decodes themes through the same charset path as
// every other part, so a declared UTF-16 encoding is not decoded twice.
var themeParserOptions = xmlquery.ParserOptions{
	Decoder: &xmlquery.DecoderOptions{Strict: true, CharsetReader: partCharsetReader},
}

// parseTheme extracts the color and font schemes of a theme part.
func parseTheme(data []byte) (*Theme, error) {
	doc, err := xmlquery.ParseWithOptions(partReader(data), themeParserOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to parse theme: %w", err)
	}
	root := xmlquery.FindOne(doc, localPath("theme"))
	if root == nil {
		return nil, fmt.Errorf("no theme element found")
	}

	theme := emptyTheme()
	theme.Name = root.SelectAttr("name")

	if scheme := xmlquery.FindOne(root, localChild("themeElements")+"/"+localChild("clrScheme")); scheme != nil {
		for _, slot := range themeColorSlots {
			if v := schemeSlotColor(scheme.SelectElement(localChild(slot))); v != "" {
				theme.Colors[slot] = strings.ToUpper(v)
			}
		}
	}

	fonts := xmlquery.FindOne(root, localChild("themeElements")+"/"+localChild("fontScheme"))
	if fonts != nil {
		theme.MajorFont = latinTypeface(fonts.SelectElement(localChild("majorFont")))
		theme.MinorFont = latinTypeface(fonts.SelectElement(localChild("minorFont")))
	}
	return theme, nil
}

// schemeSlotColor reads srgbClr@val, else sysClr@lastClr.
func schemeSlotColor(slot *xmlquery.Node) string {
	if slot == nil {
		return ""
	}
	if n := slot.SelectElement(localChild("srgbClr")); n != nil {
		if v := n.SelectAttr("val"); v != "" {
			return v
		}
	}
	if n := slot.SelectElement(localChild("sysClr")); n != nil {
		return n.SelectAttr("lastClr")
	}
	return ""
}

func latinTypeface(font *xmlquery.Node) string {
	if font == nil {
		return ""
	}
	if n := font.SelectElement(localChild("latin")); n != nil {
		return n.SelectAttr("typeface")
	}
	return ""
}

// loadTheme reads and caches a theme part.
func (p *pptxPackage) loadTheme(part string) (*Theme, error) {
	if t, ok := p.themes.Load(part); ok {
		return t.(*Theme), nil
	}
	data, err := p.readPart(part)
	if err != nil {
		return nil, malformedPart(part, err)
	}
	theme, err := parseTheme(data)
	if err != nil {
		return nil, malformedPart(part, err)
	}
	t, _ := p.themes.LoadOrStore(part, theme)
	return t.(*Theme), nil
}
