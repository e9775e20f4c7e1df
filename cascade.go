package pptxscene

import (
	"math"
	"strconv"
	"strings"
)

// defaultFontSize is the size in points used when no level defines one.
const defaultFontSize = 18

// minFontSize bounds a size shifted for super- or subscript.
const minFontSize = 1

// shapeStyle resolves the inherited attributes of one shape. Every lookup
// walks slide -> layout -> master (-> master text styles -> default) and
// stops at the first level that defines the attribute.
type shapeStyle struct {
	ctx    *slideContext
	spPr   *xmlShapeProps
	style  *xmlShapeStyle
	body   *xmlTextBody
	layout *xmlShape
	master *xmlShape
	phType string
}

// newShapeStyle builds the cascade of a slide shape.
func (c *slideContext) newShapeStyle(sp *xmlShape, in inheritance) *shapeStyle {
	return &shapeStyle{
		ctx:    c,
		spPr:   &sp.SpPr,
		style:  sp.Style,
		body:   sp.TxBody,
		layout: in.layout,
		master: in.master,
		phType: in.phType,
	}
}

// standaloneStyle is the cascade of text with no placeholder ancestry, such
// as table cells and chart titles.
func (c *slideContext) standaloneStyle(body *xmlTextBody) *shapeStyle {
	return &shapeStyle{ctx: c, spPr: &xmlShapeProps{}, body: body}
}

func shapeXfrm(sp *xmlShape) *xmlXfrm {
	if sp == nil {
		return nil
	}
	return sp.SpPr.Xfrm
}

// box resolves position and size. Each is taken from the first level whose
// xfrm declares it; absent everywhere it is zero.
func (s *shapeStyle) box() (left, top, width, height float64) {
	levels := []*xmlXfrm{s.spPr.Xfrm, shapeXfrm(s.layout), shapeXfrm(s.master)}
	for _, x := range levels {
		if x != nil && x.Off != nil {
			left, top = s.ctx.px(x.Off.X), s.ctx.px(x.Off.Y)
			break
		}
	}
	for _, x := range levels {
		if x != nil && x.Ext != nil {
			width, height = s.ctx.px(x.Ext.CX), s.ctx.px(x.Ext.CY)
			break
		}
	}
	return left, top, width, height
}

// extent returns the resolved size in EMU.
func (s *shapeStyle) extent() (cx, cy int64) {
	for _, x := range []*xmlXfrm{s.spPr.Xfrm, shapeXfrm(s.layout), shapeXfrm(s.master)} {
		if x != nil && x.Ext != nil {
			return x.Ext.CX, x.Ext.CY
		}
	}
	return 0, 0
}

func bodyOf(sp *xmlShape) *xmlTextBody {
	if sp == nil {
		return nil
	}
	return sp.TxBody
}

func firstParagraphProps(body *xmlTextBody) *xmlParaProps {
	if body == nil || len(body.Paragraphs) == 0 {
		return nil
	}
	return body.Paragraphs[0].PPr
}

func listLevel1(ls *xmlListStyle) *xmlParaProps {
	if ls == nil {
		return nil
	}
	return ls.Lvl1pPr
}

func lstStyleLevel1(body *xmlTextBody) *xmlParaProps {
	if body == nil {
		return nil
	}
	return listLevel1(body.LstStyle)
}

// masterListStyle returns the master text style that applies to the
// placeholder type: title-like types use titleStyle, body uses bodyStyle,
// everything else otherStyle.
func (s *shapeStyle) masterListStyle(forAlignment bool) *xmlListStyle {
	ts := s.ctx.masterTextStyles()
	if ts == nil {
		return nil
	}
	switch {
	case isTitleType(s.phType):
		return ts.TitleStyle
	case s.phType == PlaceholderBody && !forAlignment:
		return ts.BodyStyle
	}
	return ts.OtherStyle
}

// horizontalAlign resolves the alignment of paragraph p.
func (s *shapeStyle) horizontalAlign(p *xmlParagraph) HorizontalAlignment {
	algn := ""
	if p != nil && p.PPr != nil {
		algn = p.PPr.Algn
	}
	for _, pPr := range []*xmlParaProps{
		firstParagraphProps(bodyOf(s.layout)),
		firstParagraphProps(bodyOf(s.master)),
		listLevel1(s.masterListStyle(true)),
	} {
		if algn != "" {
			break
		}
		if pPr != nil {
			algn = pPr.Algn
		}
	}
	if algn == "" {
		switch {
		case isTitleType(s.phType):
			return AlignCenter
		case s.phType == PlaceholderSlideNum:
			return AlignRight
		}
	}
	switch algn {
	case "ctr":
		return AlignCenter
	case "r":
		return AlignRight
	case "just", "dist":
		return AlignJustify
	}
	return AlignLeft
}

// verticalAlign resolves the text anchor: slide body, layout, master, "t".
func (s *shapeStyle) verticalAlign() VerticalAlignment {
	anchor := ""
	for _, body := range []*xmlTextBody{s.body, bodyOf(s.layout), bodyOf(s.master)} {
		if body != nil && body.BodyPr != nil && body.BodyPr.Anchor != "" {
			anchor = body.BodyPr.Anchor
			break
		}
	}
	switch anchor {
	case "ctr":
		return AlignMid
	case "b":
		return AlignDown
	}
	return AlignUp
}

// isVertical reports vertical text flow.
func (s *shapeStyle) isVertical() bool {
	if s.body == nil || s.body.BodyPr == nil {
		return false
	}
	v := s.body.BodyPr.Vert
	return v != "" && v != "horz"
}

// fontFamily resolves a run's typeface. Theme references (+mj-lt, +mn-ea)
// name the major or minor latin face.
func (s *shapeStyle) fontFamily(rPr *xmlRunProps) string {
	theme := s.ctx.theme
	face := ""
	if rPr != nil && rPr.Latin != nil {
		face = rPr.Latin.Typeface
	}
	switch {
	case strings.HasPrefix(face, "+mj"):
		return theme.MajorFont
	case strings.HasPrefix(face, "+mn"):
		return theme.MinorFont
	case face != "":
		return face
	case isTitleType(s.phType):
		return theme.MajorFont
	}
	return theme.MinorFont
}

func parseHundredths(sz string) (float64, bool) {
	if sz == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(sz, 64)
	if err != nil || v <= 0 {
		return 0, false
	}
	return v / 100, true
}

func defRPrSize(pPr *xmlParaProps) (float64, bool) {
	if pPr == nil || pPr.DefRPr == nil {
		return 0, false
	}
	return parseHundredths(pPr.DefRPr.Sz)
}

// fontSize resolves a run's size in points before scaling: the run, the
// layout placeholder's list style, the master text style of the
// placeholder type (12pt for date and slide number), else the default. A
// baseline shift takes 10 points off a size found on any level, never
// going below minFontSize.
func (s *shapeStyle) fontSize(rPr *xmlRunProps) float64 {
	size, ok := 0.0, false
	if rPr != nil {
		size, ok = parseHundredths(rPr.Sz)
	}
	if !ok {
		size, ok = defRPrSize(lstStyleLevel1(bodyOf(s.layout)))
	}
	if !ok {
		switch s.phType {
		case PlaceholderDate, PlaceholderSlideNum:
			size, ok = 12, true
		default:
			size, ok = defRPrSize(listLevel1(s.masterListStyle(false)))
		}
	}
	if !ok {
		return defaultFontSize
	}
	if rPr != nil && rPr.Baseline != "" && rPr.Baseline != "0" {
		size = math.Max(size-10, minFontSize)
	}
	return size
}

// scaledFontSize applies the font size factor and returns the size with its
// unit.
func (s *shapeStyle) scaledFontSize(rPr *xmlRunProps) (float64, string) {
	f := s.ctx.opts.FontSizeScaleFactor
	unit := "px"
	if f == 1 {
		unit = "pt"
	}
	return round2(s.fontSize(rPr) * f), unit
}

// fontColor resolves a run's color: the run's own fill, the shape style's
// fontRef, the layout list style, then the master text style. Empty when
// none is defined.
func (s *shapeStyle) fontColor(rPr *xmlRunProps) string {
	if rPr != nil && rPr.SolidFill != nil {
		if v, ok := s.ctx.color(rPr.SolidFill); ok {
			return v
		}
	}
	if s.style != nil && s.style.FontRef != nil {
		if v, ok := s.ctx.color(&s.style.FontRef.xmlColor); ok {
			return v
		}
	}
	for _, pPr := range []*xmlParaProps{
		lstStyleLevel1(bodyOf(s.layout)),
		listLevel1(s.masterListStyle(false)),
	} {
		if pPr != nil && pPr.DefRPr != nil && pPr.DefRPr.SolidFill != nil {
			if v, ok := s.ctx.color(pPr.DefRPr.SolidFill); ok {
				return v
			}
		}
	}
	return ""
}
