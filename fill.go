package pptxscene

import (
	"math"
	"sort"
	"strconv"
	"strings"
)

// fillKind is the fill variant declared by a property set.
type fillKind int

const (
	fillNone     fillKind = iota // nothing declared
	fillNo                       // a:noFill
	fillSolid                    // a:solidFill
	fillGradient                 // a:gradFill
	fillPattern                  // a:pattFill
	fillPicture                  // a:blipFill
	fillGroup                    // a:grpFill
)

// kind returns the declared fill. When several are present the later
// variant in the list above wins.
func (f *xmlFillProps) kind() fillKind {
	if f == nil {
		return fillNone
	}
	switch {
	case f.GrpFill != nil:
		return fillGroup
	case f.BlipFill != nil:
		return fillPicture
	case f.PattFill != nil:
		return fillPattern
	case f.GradFill != nil:
		return fillGradient
	case f.SolidFill != nil:
		return fillSolid
	case f.NoFill != nil:
		return fillNo
	}
	return fillNone
}

func (p *xmlShapeProps) kind() fillKind {
	if p == nil {
		return fillNone
	}
	return p.xmlFillProps.kind()
}

// shapeFill resolves the fill of a shape: its own spPr, then the fillRef of
// its style. fillColor is a hex color, ColorNone or empty; fill is set for
// gradient and picture fills.
func (c *slideContext) shapeFill(spPr *xmlShapeProps, style *xmlShapeStyle) (fillColor string, fill SlideFill) {
	props := &spPr.xmlFillProps
	if props.kind() == fillGroup && c.groupFill != nil {
		props = &c.groupFill.xmlFillProps
	}

	switch props.kind() {
	case fillNo:
		return ColorNone, nil
	case fillSolid:
		if v, ok := c.solidFillColor(props.SolidFill); ok {
			return v, nil
		}
	case fillGradient:
		g := c.gradient(props.GradFill)
		if len(g.Colors) > 0 {
			return g.Colors[0].Color, g
		}
		return "", g
	case fillPattern:
		if v, ok := c.color(props.PattFill.FgClr); ok {
			return v, nil
		}
	case fillPicture:
		if img := c.pictureFill(props.BlipFill); img != nil {
			return "", img
		}
	case fillGroup, fillNone:
	}

	if style != nil && style.FillRef != nil {
		if v, ok := c.solidFillColor(&style.FillRef.xmlColor); ok {
			return v, nil
		}
	}
	return "", nil
}

// solidFillColor resolves a shape's solid fill. Scheme colors only honour
// their lumOff; every other kind gets the full modifier chain.
func (c *slideContext) solidFillColor(clr *xmlColor) (string, bool) {
	if clr.isScheme() {
		return resolveSchemeFill(clr, c.theme)
	}
	return c.color(clr)
}

// gradient converts a:gradFill. Stops are sorted by position and the angle
// is rotated by 90 degrees so 0 points down.
func (c *slideContext) gradient(g *xmlGradFill) *GradientFill {
	out := &GradientFill{Rot: 90}
	if g.Lin != nil {
		out.Rot = angleToDegrees(g.Lin.Ang) + 90
	}
	type stop struct {
		pos float64
		GradientStop
	}
	stops := make([]stop, 0, len(g.GsLst.Gs))
	for _, gs := range g.GsLst.Gs {
		color, ok := c.color(&gs.xmlColor)
		if !ok {
			continue
		}
		s := stop{GradientStop: GradientStop{Color: color}}
		if gs.Pos != "" {
			if v, err := strconv.ParseFloat(strings.TrimSuffix(gs.Pos, "%"), 64); err == nil {
				if !strings.HasSuffix(gs.Pos, "%") {
					v /= 1000
				}
				s.pos = v
				s.Pos = strconv.FormatFloat(v, 'f', -1, 64) + "%"
			}
		}
		stops = append(stops, s)
	}
	sort.SliceStable(stops, func(i, j int) bool { return stops[i].pos < stops[j].pos })
	for _, s := range stops {
		out.Colors = append(out.Colors, s.GradientStop)
	}
	return out
}

// pictureFill resolves a:blipFill against the current part's relationships.
func (c *slideContext) pictureFill(bf *xmlBlipFill) *ImageFill {
	if bf == nil || bf.Blip == nil {
		return nil
	}
	img := &ImageFill{Opacity: 1}
	if bf.Blip.AlphaModFix != nil && bf.Blip.AlphaModFix.Amt != "" {
		img.Opacity = parsePercent(bf.Blip.AlphaModFix.Amt)
	}
	if rel, ok := c.lookup(bf.Blip.Embed); ok {
		img.Picture = c.mediaSource(rel)
	}
	return img
}

// dashStyles maps a:prstDash values to a border type and an SVG dash array.
var dashStyles = map[string][2]string{
	"solid":         {BorderSolid, "0"},
	"dash":          {BorderDashed, "5"},
	"dashDot":       {BorderDashed, "5, 5, 1, 5"},
	"dot":           {BorderDotted, "1, 5"},
	"lgDash":        {BorderDashed, "10, 5"},
	"lgDashDotDot":  {BorderDotted, "10, 5, 1, 5, 1, 5"},
	"sysDash":       {BorderDashed, "5, 2"},
	"sysDashDot":    {BorderDotted, "5, 2, 1, 5"},
	"sysDashDotDot": {BorderDotted, "5, 2, 1, 5, 1, 5"},
	"sysDot":        {BorderDotted, "2, 5"},
}

// border resolves the outline of a shape. Width is in points.
func (c *slideContext) border(spPr *xmlShapeProps, style *xmlShapeStyle, isText bool) Border {
	ln := spPr.Ln
	b := Border{Type: BorderSolid, StrokeDasharray: "0"}

	switch {
	case ln != nil && ln.W != "":
		if w, err := strconv.ParseFloat(ln.W, 64); err == nil {
			b.Width = round2(w / emuPerPoint)
		}
	case ln != nil, isText:
		b.Width = 0
	default:
		b.Width = 1
	}
	if ln != nil && ln.kind() == fillNo {
		b.Width = 0
	}

	if ln != nil && ln.SolidFill != nil {
		b.Color, _ = c.color(ln.SolidFill)
	}
	if b.Color == "" && style != nil && style.LnRef != nil {
		b.Color, _ = resolveShadedColor(&style.LnRef.xmlColor, c.theme)
	}
	if b.Color == "" {
		b.Color = "#000000"
	}

	if ln != nil && ln.PrstDash != nil {
		if d, ok := dashStyles[ln.PrstDash.Val]; ok {
			b.Type, b.StrokeDasharray = d[0], d[1]
		}
	}
	return b
}

// shadow converts a:outerShdw. Distances are scaled like positions.
func (c *slideContext) shadow(effects *xmlEffectList) *Shadow {
	if effects == nil || effects.OuterShdw == nil {
		return nil
	}
	s := effects.OuterShdw
	dir := float64(s.Dir) / angleUnit * math.Pi / 180
	dist := float64(s.Dist) * c.factor()
	color, ok := c.color(&s.xmlColor)
	if !ok {
		color = "#000000"
	}
	return &Shadow{
		H:     round2(dist * math.Cos(dir)),
		V:     round2(dist * math.Sin(dir)),
		Blur:  c.px(s.BlurRad),
		Color: color,
	}
}

// background resolves the slide background: slide, then layout, then
// master. Picture fills resolve against the part that declared them.
func (c *slideContext) background() SlideFill {
	for _, part := range []*slidePart{c.chain.slide, c.chain.layout, c.chain.master} {
		if part == nil || part.root.CSld.Bg == nil {
			continue
		}
		if fill := c.inPart(part.name, part.rels).backgroundOf(part.root.CSld.Bg); fill != nil {
			return fill
		}
	}
	return &ColorFill{Value: "#ffffff"}
}

func (c *slideContext) backgroundOf(bg *xmlBackground) SlideFill {
	if bg.BgPr != nil {
		props := &bg.BgPr.xmlFillProps
		switch props.kind() {
		case fillSolid:
			if v, ok := c.color(props.SolidFill); ok {
				return &ColorFill{Value: v}
			}
		case fillGradient:
			return c.gradient(props.GradFill)
		case fillPicture:
			if img := c.pictureFill(props.BlipFill); img != nil {
				return img
			}
		case fillPattern:
			if v, ok := c.color(props.PattFill.FgClr); ok {
				return &ColorFill{Value: v}
			}
		case fillNo, fillGroup, fillNone:
		}
	}
	if bg.BgRef != nil {
		if v, ok := c.color(&bg.BgRef.xmlColor); ok {
			return &ColorFill{Value: v}
		}
	}
	return nil
}
