package pptxscene

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

// ColorNone is the literal fill value of an explicitly unfilled shape.
const ColorNone = "none"

// schemeAliases maps text/background aliases onto theme slots.
var schemeAliases = map[string]string{
	"tx1": "dk1",
	"tx2": "dk2",
	"bg1": "lt1",
	"bg2": "lt2",
}

// colorRef is a decoded color reference. Implementations: rgbRef,
// schemeRef, hslRef, presetRef, systemRef.
type colorRef interface {
	colorRef()
}

type rgbRef struct{ hex string }
type schemeRef struct{ slot string }
type hslRef struct{ h, s, l float64 }
type presetRef struct{ name string }
type systemRef struct{ val, lastClr string }

func (rgbRef) colorRef()    {}
func (schemeRef) colorRef() {}
func (hslRef) colorRef()    {}
func (presetRef) colorRef() {}
func (systemRef) colorRef() {}

// ref returns the reference held by c and its modifier list.
func (c *xmlColor) ref() (colorRef, []xmlColorMod, bool) {
	if c == nil {
		return nil, nil, false
	}
	switch {
	case c.SrgbClr != nil:
		return rgbRef{hex: c.SrgbClr.Val}, c.SrgbClr.Mods, true
	case c.SchemeClr != nil:
		return schemeRef{slot: c.SchemeClr.Val}, c.SchemeClr.Mods, true
	case c.ScrgbClr != nil:
		s := c.ScrgbClr
		hex := fmt.Sprintf("%02X%02X%02X", percentChannel(s.R), percentChannel(s.G), percentChannel(s.B))
		return rgbRef{hex: hex}, s.Mods, true
	case c.PrstClr != nil:
		return presetRef{name: c.PrstClr.Val}, c.PrstClr.Mods, true
	case c.HslClr != nil:
		s := c.HslClr
		hue, _ := strconv.ParseFloat(strings.TrimSpace(s.Hue), 64)
		return hslRef{h: hue / angleUnit, s: parsePercent(s.Sat), l: parsePercent(s.Lum)}, s.Mods, true
	case c.SysClr != nil:
		return systemRef{val: c.SysClr.Val, lastClr: c.SysClr.LastClr}, c.SysClr.Mods, true
	}
	return nil, nil, false
}

// isScheme reports whether c holds a scheme color reference.
func (c *xmlColor) isScheme() bool {
	return c != nil && c.SchemeClr != nil
}

// parsePercent reads an ST_Percentage: "50%" is 0.5, "50000" is 0.5.
func parsePercent(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	if strings.HasSuffix(s, "%") {
		v, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
		if err != nil {
			return 0
		}
		return v / 100
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v / percentUnit
}

func percentChannel(s string) uint8 {
	return uint8(math.Round(clamp01(parsePercent(s)) * 255))
}

// rgba is a resolved color. a is only meaningful when hasAlpha is set.
type rgba struct {
	r, g, b  uint8
	a        float64
	hasAlpha bool
}

func parseHex(hex string) (rgba, bool) {
	hex = strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(hex) != 6 {
		return rgba{}, false
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return rgba{}, false
	}
	return rgba{r: uint8(v >> 16), g: uint8(v >> 8), b: uint8(v)}, true
}

func (c rgba) String() string {
	if c.hasAlpha {
		return fmt.Sprintf("#%02x%02x%02x%02x", c.r, c.g, c.b, uint8(math.Round(clamp01(c.a)*255)))
	}
	return fmt.Sprintf("#%02x%02x%02x", c.r, c.g, c.b)
}

// baseColor resolves a reference to a concrete color without modifiers.
func baseColor(ref colorRef, theme *Theme) (rgba, bool) {
	switch ref := ref.(type) {
	case rgbRef:
		return parseHex(ref.hex)
	case schemeRef:
		slot := ref.slot
		if alias, ok := schemeAliases[slot]; ok {
			slot = alias
		}
		hex, ok := theme.color(slot)
		if !ok {
			return rgba{}, false
		}
		return parseHex(hex)
	case hslRef:
		return rgba{}.withHSL(ref.h, clamp01(ref.s), clamp01(ref.l)), true
	case presetRef:
		c, ok := colornames.Map[presetColorName(ref.name)]
		if !ok {
			return rgba{}, false
		}
		return rgba{r: c.R, g: c.G, b: c.B}, true
	case systemRef:
		if c, ok := parseHex(ref.lastClr); ok {
			return c, true
		}
		switch ref.val {
		case "window", "menu", "btnHighlight", "highlightText", "infoBk":
			return rgba{r: 0xff, g: 0xff, b: 0xff}, true
		case "":
			return rgba{}, false
		}
		return rgba{}, true
	}
	return rgba{}, false
}

// presetColorName maps DrawingML preset names (dkSlateBlue, ltGray,
// medPurple) onto CSS color names.
func presetColorName(name string) string {
	switch {
	case strings.HasPrefix(name, "dk"):
		name = "dark" + name[2:]
	case strings.HasPrefix(name, "lt"):
		name = "light" + name[2:]
	case strings.HasPrefix(name, "med"):
		name = "medium" + name[3:]
	}
	return strings.ToLower(name)
}

// Color modifiers in application order.
var colorModOrder = []string{"alpha", "hueMod", "lumMod", "lumOff", "satMod", "shade", "tint"}

func findMod(mods []xmlColorMod, name string) (float64, bool) {
	for _, m := range mods {
		if m.XMLName.Local == name {
			v, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimSuffix(m.Val, "%")), 64)
			if err != nil {
				return 0, false
			}
			if strings.HasSuffix(m.Val, "%") {
				return v / 100, true
			}
			return v / percentUnit, true
		}
	}
	return 0, false
}

// applyColorMods applies the modifiers of mods in the fixed order of
// colorModOrder, whatever their document order. Each step re-quantizes to
// 8-bit channels.
func applyColorMods(c rgba, mods []xmlColorMod) rgba {
	for _, name := range colorModOrder {
		v, ok := findMod(mods, name)
		if !ok {
			continue
		}
		if name == "alpha" {
			c.a = clamp01(v)
			c.hasAlpha = true
			continue
		}
		h, s, l := c.hsl()
		switch name {
		case "hueMod":
			h *= v
			if h >= 360 {
				h -= 360
			}
		case "lumMod":
			l = clamp01(l * v)
		case "lumOff":
			l = clamp01(l + v)
		case "satMod":
			s = clamp01(s * v)
		case "shade":
			l = clamp01(l * math.Min(v, 1))
		case "tint":
			t := math.Min(v, 1)
			l = clamp01(l*t + (1 - t))
		}
		c = c.withHSL(h, s, l)
	}
	return c
}

// resolveColor resolves c against theme and applies its modifiers.
func resolveColor(c *xmlColor, theme *Theme) (string, bool) {
	ref, mods, ok := c.ref()
	if !ok {
		return "", false
	}
	base, ok := baseColor(ref, theme)
	if !ok {
		return "", false
	}
	return applyColorMods(base, mods).String(), true
}

// resolveSchemeFill resolves a scheme color for a shape fill, where only a
// lumOff adjustment is honoured: l' = l * (1 + lumOff).
func resolveSchemeFill(c *xmlColor, theme *Theme) (string, bool) {
	ref, mods, ok := c.ref()
	if !ok {
		return "", false
	}
	base, ok := baseColor(ref, theme)
	if !ok {
		return "", false
	}
	if off, ok := findMod(mods, "lumOff"); ok {
		h, s, l := base.hsl()
		base = base.withHSL(h, s, clamp01(l*(1+off)))
	}
	return base.String(), true
}

// resolveShadedColor resolves c honouring only its shade modifier.
func resolveShadedColor(c *xmlColor, theme *Theme) (string, bool) {
	ref, mods, ok := c.ref()
	if !ok {
		return "", false
	}
	base, ok := baseColor(ref, theme)
	if !ok {
		return "", false
	}
	if shade, ok := findMod(mods, "shade"); ok {
		h, s, l := base.hsl()
		base = base.withHSL(h, s, clamp01(l*math.Min(shade, 1)))
	}
	return base.String(), true
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

// hsl returns hue in degrees [0,360) and saturation/lightness in [0,1].
func (c rgba) hsl() (h, s, l float64) {
	return colorful.Color{R: float64(c.r) / 255, G: float64(c.g) / 255, B: float64(c.b) / 255}.Hsl()
}

// withHSL replaces the channels of c, keeping its alpha.
func (c rgba) withHSL(h, s, l float64) rgba {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	c.r, c.g, c.b = colorful.Hsl(h, s, l).Clamped().RGB255()
	return c
}
