package pptxscene

import (
	"encoding/json"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// nbsp stands in for runs and paragraphs without text.
const nbsp = "\u00a0"

// ListKind is the list container a paragraph belongs to.
type ListKind string

const (
	ListNone      ListKind = ""
	ListUnordered ListKind = "ul"
	ListOrdered   ListKind = "ol"
)

// TextBody is the structured text of a shape or table cell.
type TextBody struct {
	Paragraphs []Paragraph `json:"paragraphs"`
}

// Paragraph is one text paragraph.
type Paragraph struct {
	Align HorizontalAlignment `json:"align"`
	List  ListKind            `json:"list,omitempty"`
	Level int                 `json:"level,omitempty"`
	Spans []Span              `json:"spans"`
}

// Span is a styled piece of text, or a line break when Break is set.
type Span struct {
	Text  string    `json:"text,omitempty"`
	Break bool      `json:"break,omitempty"`
	Link  string    `json:"link,omitempty"`
	Style TextStyle `json:"style"`
}

// PlainText returns the text with one line per paragraph. Placeholder
// spaces of empty runs are dropped.
func (b *TextBody) PlainText() string {
	if b == nil {
		return ""
	}
	lines := make([]string, 0, len(b.Paragraphs))
	for _, p := range b.Paragraphs {
		var sb strings.Builder
		for _, s := range p.Spans {
			if s.Break {
				sb.WriteByte('\n')
				continue
			}
			sb.WriteString(s.Text)
		}
		lines = append(lines, strings.TrimSpace(strings.ReplaceAll(sb.String(), nbsp, " ")))
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// HTML renders the body as markup: <p> paragraphs, or <li> items inside
// <ul>/<ol> containers that open and close when the list kind changes.
func (b *TextBody) HTML() string {
	if b == nil {
		return ""
	}
	var roots []*html.Node
	var list *html.Node
	kind := ListNone
	for _, p := range b.Paragraphs {
		if p.List != kind {
			kind, list = p.List, nil
			switch kind {
			case ListUnordered:
				list = htmlElement(atom.Ul)
			case ListOrdered:
				list = htmlElement(atom.Ol)
			}
			if list != nil {
				roots = append(roots, list)
			}
		}

		container := htmlElement(atom.P)
		if list != nil {
			container = htmlElement(atom.Li)
		}
		container.Attr = append(container.Attr, html.Attribute{Key: "style", Val: "text-align: " + string(p.Align) + ";"})
		for _, s := range p.Spans {
			container.AppendChild(spanNode(s))
		}
		if list != nil {
			list.AppendChild(container)
		} else {
			roots = append(roots, container)
		}
	}

	var sb strings.Builder
	for _, n := range roots {
		if err := html.Render(&sb, n); err != nil {
			return ""
		}
	}
	return sb.String()
}

func (b *TextBody) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		HTML       string      `json:"html"`
		Paragraphs []Paragraph `json:"paragraphs"`
	}{b.HTML(), b.Paragraphs})
}

func htmlElement(a atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String(), Attr: attrs}
}

func spanNode(s Span) *html.Node {
	if s.Break {
		return htmlElement(atom.Br)
	}
	span := htmlElement(atom.Span, html.Attribute{Key: "style", Val: s.Style.css()})
	span.AppendChild(&html.Node{Type: html.TextNode, Data: s.Text})
	if s.Link == "" {
		return span
	}
	a := htmlElement(atom.A,
		html.Attribute{Key: "href", Val: s.Link},
		html.Attribute{Key: "target", Val: "_blank"},
	)
	a.AppendChild(span)
	return a
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// css returns the inline declarations of a span.
func (t TextStyle) css() string {
	var decls []string
	add := func(prop, val string) { decls = append(decls, prop+": "+val+";") }
	if t.Color != "" {
		add("color", t.Color)
	}
	add("font-size", formatNumber(t.Size)+t.SizeUnit)
	if t.Family != "" {
		add("font-family", t.Family)
	}
	if t.Bold {
		add("font-weight", "bold")
	}
	if t.Italic {
		add("font-style", "italic")
	}
	switch {
	case t.Underline && t.Strike:
		add("text-decoration", "underline line-through")
	case t.Underline:
		add("text-decoration", "underline")
	case t.Strike:
		add("text-decoration", "line-through")
	}
	if t.VerticalAlign != "" {
		add("vertical-align", t.VerticalAlign)
	}
	if t.LetterSpacing != 0 {
		add("letter-spacing", formatNumber(t.LetterSpacing)+"px")
	}
	if s := t.Shadow; s != nil {
		add("text-shadow", formatNumber(s.H)+"px "+formatNumber(s.V)+"px "+formatNumber(s.Blur)+"px "+s.Color)
	}
	return strings.Join(decls, " ")
}

// listKind returns the list container of a paragraph from its bullet
// properties.
func listKind(pPr *xmlParaProps) ListKind {
	switch {
	case pPr == nil, pPr.BuNone != nil:
		return ListNone
	case pPr.BuAutoNum != nil:
		return ListOrdered
	case pPr.BuChar != nil:
		return ListUnordered
	}
	return ListNone
}

// composeText converts a text body. Runs, fields and breaks keep their
// document order. A nil or paragraph-less body yields nil.
func (s *shapeStyle) composeText(body *xmlTextBody) *TextBody {
	if body == nil || len(body.Paragraphs) == 0 {
		return nil
	}
	out := &TextBody{Paragraphs: make([]Paragraph, 0, len(body.Paragraphs))}
	for _, p := range body.Paragraphs {
		para := Paragraph{
			Align: s.horizontalAlign(p),
			List:  listKind(p.PPr),
		}
		if p.PPr != nil {
			para.Level = p.PPr.Lvl
		}
		for _, node := range p.Runs {
			para.Spans = append(para.Spans, s.span(node))
		}
		if len(para.Spans) == 0 {
			para.Spans = []Span{{Text: nbsp, Style: s.runStyle(p.EndParaRPr)}}
		}
		out.Paragraphs = append(out.Paragraphs, para)
	}
	return out
}

// span converts one inline node. A run without text falls back to field
// text, then to a non-breaking space.
func (s *shapeStyle) span(node textNode) Span {
	rPr := node.runProps()
	out := Span{Style: s.runStyle(rPr)}
	switch n := node.(type) {
	case *xmlBreak:
		out.Break = true
		return out
	case *xmlRun:
		out.Text = n.T
	case *xmlField:
		out.Text = n.T
	}
	if out.Text == "" {
		out.Text = nbsp
	}
	if rPr != nil {
		out.Link = s.ctx.hyperlink(rPr.HlinkClick)
	}
	return out
}

// runStyle resolves the style of a run through the cascade.
func (s *shapeStyle) runStyle(rPr *xmlRunProps) TextStyle {
	st := TextStyle{
		Color:  s.fontColor(rPr),
		Family: s.fontFamily(rPr),
	}
	st.Size, st.SizeUnit = s.scaledFontSize(rPr)
	if rPr == nil {
		return st
	}
	st.Bold = xmlBool(rPr.B)
	st.Italic = xmlBool(rPr.I)
	st.Underline = rPr.U != "" && rPr.U != "none"
	st.Strike = rPr.Strike != "" && rPr.Strike != "noStrike"
	if rPr.Baseline != "" {
		if v, err := strconv.Atoi(rPr.Baseline); err == nil && v != 0 {
			st.VerticalAlign = "sub"
			if v > 0 {
				st.VerticalAlign = "super"
			}
		}
	}
	if v, err := strconv.ParseFloat(rPr.Spc, 64); err == nil && v != 0 {
		st.LetterSpacing = round2(v / 100 * s.ctx.opts.FontSizeScaleFactor)
	}
	st.Shadow = s.ctx.shadow(rPr.EffectLst)
	return st
}
