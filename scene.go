package pptxscene

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Graphic frame payload URIs.
const (
	uriTable   = "http://schemas.openxmlformats.org/drawingml/2006/table"
	uriChart   = "http://schemas.openxmlformats.org/drawingml/2006/chart"
	uriDiagram = "http://schemas.openxmlformats.org/drawingml/2006/diagram"
	uriOLE     = "http://schemas.openxmlformats.org/presentationml/2006/ole"
)

// convert builds the document. Slides are converted concurrently and
// stored by index, so the result keeps document order.
func (p *pptxPackage) convert(ctx context.Context) (*Document, error) {
	doc := &Document{
		Slides:     make([]*Slide, len(p.slides)),
		Size:       p.size,
		Layout:     p.layout,
		Properties: p.readProperties(),
	}

	g, gctx := errgroup.WithContext(ctx)
	limit := p.opts.Concurrency
	if limit == 0 {
		limit = -1
	}
	g.SetLimit(limit)

	for i, name := range p.slides {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			slide := p.convertSlide(i, name)
			doc.Slides[i] = slide
			if slide.Err == nil {
				return nil
			}
			p.log.Warn("slide conversion failed", "slide", name, "error", slide.Err)
			if p.opts.Strict {
				return fmt.Errorf("failed to convert slide %d (%s): %w", i+1, name, slide.Err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return doc, nil
}

// convertSlide converts one slide. A fatal error is recorded on the slide,
// which then has no elements.
func (p *pptxPackage) convertSlide(index int, name string) *Slide {
	slide := &Slide{Index: index, Part: name, Elements: []Element{}}
	chain, err := p.resolveChain(name)
	if err != nil {
		slide.Err = err
		return slide
	}
	slide.Hidden = chain.slide.root.Show != "" && !xmlBool(chain.slide.root.Show)

	diag := newDiagnostics(name, p.log)
	c := newSlideContext(p, chain, diag)
	slide.Fill = c.background()
	slide.Elements = c.visitTree(&chain.slide.root.CSld.SpTree)
	slide.Warnings = diag.warnings
	return slide
}

// visitTree converts the children of a shape tree in document order.
func (c *slideContext) visitTree(tree *xmlShapeTree) []Element {
	out := make([]Element, 0, len(tree.Nodes))
	for _, node := range tree.Nodes {
		out = append(out, c.visit(node)...)
	}
	for _, name := range tree.Unknown {
		c.diag.recover(unsupportedVariant(c.part, "shape tree element "+name))
	}
	return out
}

// visit converts one shape tree node. Alternate content contributes its
// fallback children in place, so a node may yield several elements.
func (c *slideContext) visit(node shapeNode) []Element {
	var e Element
	switch n := node.(type) {
	case *xmlShape:
		e = c.shape(n)
	case *xmlConnector:
		e = c.connector(n)
	case *xmlPicture:
		e = c.picture(n)
	case *xmlGraphicFrame:
		e = c.graphicFrame(n)
	case *xmlGroup:
		e = c.group(n)
	case *xmlAlternateContent:
		if n.Fallback == nil {
			return nil
		}
		return c.visitTree(n.Fallback)
	}
	if e == nil {
		return nil
	}
	return []Element{e}
}

// placeholders returns the layout and master indexes. Shapes outside the
// slide part (diagram drawings) inherit nothing.
func (c *slideContext) placeholders() (layout, master *placeholderIndex) {
	if c.part != c.chain.slide.name {
		return nil, nil
	}
	return c.chain.layout.index, c.chain.master.index
}

func (c *slideContext) shape(sp *xmlShape) Element {
	layout, master := c.placeholders()
	return c.shapeElement(sp, matchPlaceholder(&sp.NvSpPr, layout, master))
}

// connector converts p:cxnSp like a shape with no placeholder ancestry.
func (c *slideContext) connector(cxn *xmlConnector) Element {
	sp := &xmlShape{NvSpPr: cxn.NvCxnSpPr, SpPr: cxn.SpPr, Style: cxn.Style}
	return c.shapeElement(sp, inheritance{})
}

// baseElement fills the box, rotation and flips from xfrm, falling back to
// the inherited box.
func (c *slideContext) baseElement(nv *xmlNonVisual, xfrm *xmlXfrm) BaseElement {
	b := BaseElement{ID: nv.CNvPr.ID, Name: nv.CNvPr.Name}
	if xfrm == nil {
		return b
	}
	if xfrm.Off != nil {
		b.Left, b.Top = c.px(xfrm.Off.X), c.px(xfrm.Off.Y)
	}
	if xfrm.Ext != nil {
		b.Width, b.Height = c.px(xfrm.Ext.CX), c.px(xfrm.Ext.CY)
	}
	b.Rotate = angleToDegrees(xfrm.Rot)
	b.FlipH = xmlBool(xfrm.FlipH)
	b.FlipV = xmlBool(xfrm.FlipV)
	return b
}

func (c *slideContext) hyperlink(h *xmlHyperlink) string {
	if h == nil {
		return ""
	}
	// Internal jumps point at another slide part.
	if rel, ok := c.lookupKind(h.ID, relHyperlink, relSlide); ok {
		return rel.Target
	}
	return ""
}

// shapeElement turns a shape into a custom shape, a preset shape or a text
// element depending on its geometry.
func (c *slideContext) shapeElement(sp *xmlShape, in inheritance) Element {
	st := c.newShapeStyle(sp, in)
	base := c.baseElement(&sp.NvSpPr, sp.SpPr.Xfrm)
	base.Left, base.Top, base.Width, base.Height = st.box()

	props := ShapeProperties{
		Content:    st.composeText(sp.TxBody),
		VAlign:     st.verticalAlign(),
		IsVertical: st.isVertical(),
		Idx:        in.phIdx,
		Shadow:     c.shadow(sp.SpPr.EffectLst),
		Link:       c.hyperlink(sp.NvSpPr.CNvPr.HlinkClick),
	}
	if in.phType != placeholderTextBox {
		props.PhType = in.phType
	}
	props.FillColor, props.Fill = c.shapeFill(&sp.SpPr, sp.Style)

	geom := sp.SpPr
	switch {
	case geom.CustGeom != nil:
		props.Border = c.border(&sp.SpPr, sp.Style, false)
		cx, cy := st.extent()
		path, errs := buildCustomPath(geom.CustGeom, cx, cy, base.Width, base.Height, c.factor(), c.part)
		for _, err := range errs {
			c.diag.recover(err)
		}
		return &ShapeElement{BaseElement: base, ShapeProperties: props, ShapeType: "custom", Path: path}
	case geom.PrstGeom != nil && in.phType != placeholderTextBox:
		props.Border = c.border(&sp.SpPr, sp.Style, false)
		return &ShapeElement{BaseElement: base, ShapeProperties: props, ShapeType: geom.PrstGeom.Prst}
	case geom.PrstGeom != nil:
		props.Border = c.border(&sp.SpPr, sp.Style, true)
		return &TextElement{BaseElement: base, ShapeProperties: props}
	}

	props.Border = c.border(&sp.SpPr, sp.Style, in.phType == placeholderTextBox)
	if sp.TxXfrm != nil && sp.TxXfrm.Rot != 0 {
		base.Rotate = angleToDegrees(sp.TxXfrm.Rot) + 90
	}
	return &TextElement{BaseElement: base, ShapeProperties: props}
}

// picture converts p:pic into an image, video or audio element.
func (c *slideContext) picture(pic *xmlPicture) Element {
	layout, master := c.placeholders()
	in := matchPlaceholder(&pic.NvPicPr, layout, master)
	st := &shapeStyle{ctx: c, spPr: &pic.SpPr, layout: in.layout, master: in.master}
	base := c.baseElement(&pic.NvPicPr, pic.SpPr.Xfrm)
	base.Left, base.Top, base.Width, base.Height = st.box()

	nv := pic.NvPicPr.NvPr
	switch {
	case nv.VideoFile != nil:
		v := &VideoElement{BaseElement: base}
		if rel, ok := c.lookup(nv.VideoFile.Link); ok {
			if rel.External {
				v.Src = rel.Target
			} else {
				v.Blob = c.mediaSource(rel)
			}
		}
		return v
	case nv.AudioFile != nil:
		a := &AudioElement{BaseElement: base}
		if rel, ok := c.lookup(nv.AudioFile.Link); ok {
			a.Blob = c.mediaSource(rel)
		}
		return a
	}

	img := &ImageElement{BaseElement: base, Link: c.hyperlink(pic.NvPicPr.CNvPr.HlinkClick)}
	if blip := pic.BlipFill.Blip; blip != nil {
		id := blip.Embed
		if id == "" {
			id = blip.Link
		}
		if rel, ok := c.lookup(id); ok {
			img.Src = c.mediaSource(rel)
			img.NaturalWidth, img.NaturalHeight = c.naturalSize(rel)
		}
	}
	return img
}

// graphicFrame dispatches on the payload URI.
func (c *slideContext) graphicFrame(frame *xmlGraphicFrame) Element {
	base := c.baseElement(&frame.NvGraphicFramePr, &frame.Xfrm)
	data := &frame.Graphic.Data

	switch data.URI {
	case uriTable:
		if data.Table == nil {
			break
		}
		t := c.table(data.Table)
		t.BaseElement = base
		return t
	case uriChart:
		ch := c.chart(frame)
		ch.BaseElement = base
		return ch
	case uriDiagram:
		d := c.diagram(data.Diagram)
		d.BaseElement = base
		translate := groupTransform{offX: base.Left, offY: base.Top, scaleX: 1, scaleY: 1}
		for _, child := range d.Elements {
			translate.remap(child)
		}
		return d
	case uriOLE:
		if pic := oleFallback(data); pic != nil {
			img, ok := c.picture(pic).(*ImageElement)
			if ok {
				img.BaseElement = base
				return img
			}
		}
		c.diag.recover(unsupportedVariant(c.part, "OLE object without picture"))
		return nil
	}
	c.diag.recover(unsupportedVariant(c.part, "graphic frame "+data.URI))
	return nil
}

// oleFallback returns the preview picture of an OLE frame.
func oleFallback(data *xmlGraphicData) *xmlPicture {
	var candidates []*xmlOleObject
	if data.Alt != nil {
		if data.Alt.Fallback != nil {
			candidates = append(candidates, data.Alt.Fallback.OleObj)
		}
		if data.Alt.Choice != nil {
			candidates = append(candidates, data.Alt.Choice.OleObj)
		}
	}
	candidates = append(candidates, data.OleObj)
	for _, ole := range candidates {
		if ole != nil && ole.Pic != nil {
			return ole.Pic
		}
	}
	return nil
}

// group converts p:grpSp. Children are converted in the group's child
// space first and then remapped into the parent space.
func (c *slideContext) group(g *xmlGroup) Element {
	var xfrm *xmlXfrm
	if g.GrpSpPr != nil {
		xfrm = g.GrpSpPr.Xfrm
	}
	nv := g.NvGrpSpPr
	if nv == nil {
		nv = &xmlNonVisual{}
	}
	out := &GroupElement{
		BaseElement: c.baseElement(nv, xfrm),
		Elements:    c.inGroup(g.GrpSpPr).visitTree(&g.xmlShapeTree),
	}
	t := newGroupTransform(xfrm, c.factor())
	for _, child := range out.Elements {
		t.remap(child)
	}
	return out
}

// diagram converts the pre-rendered drawing of a SmartArt frame. Child
// positions are relative to the frame until the caller translates them.
func (c *slideContext) diagram(ids *xmlDiagramRelIDs) *DiagramElement {
	out := &DiagramElement{Elements: []Element{}}
	rel, ok := c.diagramDrawing(ids)
	if !ok {
		return out
	}
	var drawing xmlDrawingForRead
	if err := c.pkg.decodePart(rel.Target, &drawing); err != nil {
		c.diag.recover(err)
		return out
	}
	rels, err := c.pkg.readRelationships(rel.Target)
	if err != nil {
		c.diag.recover(err)
		return out
	}
	out.Elements = c.inPart(rel.Target, rels).visitTree(&drawing.SpTree)
	return out
}

// diagramDrawing finds the drawing part of a diagram: through the data
// part's dataModelExt, else the part's only diagramDrawing relationship.
func (c *slideContext) diagramDrawing(ids *xmlDiagramRelIDs) (Relationship, bool) {
	if ids != nil && ids.DM != "" {
		if dm, ok := c.lookupKind(ids.DM, relDiagramData); ok && !dm.External && c.pkg.has(dm.Target) {
			var data xmlDiagramDataForRead
			if err := c.pkg.decodePart(dm.Target, &data); err != nil {
				c.diag.recover(err)
			} else {
				for _, ext := range data.ExtLst.Ext {
					if ext.DataModelExt != nil && ext.DataModelExt.RelID != "" {
						if rel, ok := c.lookup(ext.DataModelExt.RelID); ok {
							return rel, true
						}
					}
				}
			}
		}
	}
	if drawings := c.rels.allOfKind(relDiagramDrawing); len(drawings) == 1 {
		return drawings[0], true
	}
	c.diag.recover(unsupportedVariant(c.part, "diagram without drawing part"))
	return Relationship{}, false
}
