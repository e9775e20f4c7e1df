package pptxscene

import (
	"encoding/json"
	"errors"
)

// GroupElement is a group of elements. Children are positioned in the
// slide's coordinate space, like their group.
type GroupElement struct {
	BaseElement
	Elements []Element `json:"elements"`
}

// DiagramElement is a SmartArt frame and its pre-rendered shapes.
type DiagramElement struct {
	BaseElement
	Elements []Element `json:"elements"`
}

func (*GroupElement) GetType() ElementType   { return ElementTypeGroup }
func (*DiagramElement) GetType() ElementType { return ElementTypeDiagram }

func (g *GroupElement) MarshalJSON() ([]byte, error) {
	type alias GroupElement
	return json.Marshal(struct {
		Type ElementType `json:"type"`
		*alias
	}{g.GetType(), (*alias)(g)})
}

func (d *DiagramElement) MarshalJSON() ([]byte, error) {
	type alias DiagramElement
	return json.Marshal(struct {
		Type ElementType `json:"type"`
		*alias
	}{d.GetType(), (*alias)(d)})
}

// GetElementCount returns the number of direct children.
func (g *GroupElement) GetElementCount() int {
	return len(g.Elements)
}

// GetElement returns a direct child by index.
func (g *GroupElement) GetElement(index int) (Element, error) {
	if index < 0 || index >= len(g.Elements) {
		return nil, errOutOfRange
	}
	return g.Elements[index], nil
}

// PlaceholderType represents the type of placeholder.
type PlaceholderType = string

const (
	PlaceholderTitle    PlaceholderType = "title"
	PlaceholderBody     PlaceholderType = "body"
	PlaceholderCtrTitle PlaceholderType = "ctrTitle"
	PlaceholderSubTitle PlaceholderType = "subTitle"
	PlaceholderDate     PlaceholderType = "dt"
	PlaceholderFooter   PlaceholderType = "ftr"
	PlaceholderSlideNum PlaceholderType = "sldNum"
	// placeholderTextBox is the pseudo type of a txBox="1" shape.
	placeholderTextBox PlaceholderType = "text"
)

// isTitleType reports whether a placeholder type uses the title styles.
func isTitleType(t PlaceholderType) bool {
	return t == PlaceholderTitle || t == PlaceholderSubTitle || t == PlaceholderCtrTitle
}

// groupTransform maps a group's child coordinate space into its parent's:
// parent = (local - chOff) * (ext / chExt) + off.
type groupTransform struct {
	offX, offY     float64
	chOffX, chOffY float64
	scaleX, scaleY float64
}

func newGroupTransform(xfrm *xmlXfrm, factor float64) groupTransform {
	t := groupTransform{scaleX: 1, scaleY: 1}
	if xfrm == nil {
		return t
	}
	if xfrm.Off != nil {
		t.offX = float64(xfrm.Off.X) * factor
		t.offY = float64(xfrm.Off.Y) * factor
	}
	if xfrm.ChOff != nil {
		t.chOffX = float64(xfrm.ChOff.X) * factor
		t.chOffY = float64(xfrm.ChOff.Y) * factor
	}
	if xfrm.Ext != nil && xfrm.ChExt != nil {
		if xfrm.ChExt.CX != 0 {
			t.scaleX = float64(xfrm.Ext.CX) / float64(xfrm.ChExt.CX)
		}
		if xfrm.ChExt.CY != 0 {
			t.scaleY = float64(xfrm.Ext.CY) / float64(xfrm.ChExt.CY)
		}
	}
	return t
}

func (t groupTransform) point(x, y float64) (float64, float64) {
	return (x-t.chOffX)*t.scaleX + t.offX, (y-t.chOffY)*t.scaleY + t.offY
}

// remap moves e, and everything below it, from the group's child space into
// its parent space.
func (t groupTransform) remap(e Element) {
	b := e.base()
	b.Left, b.Top = t.point(b.Left, b.Top)
	b.Left, b.Top = round2(b.Left), round2(b.Top)
	b.Width = round2(b.Width * t.scaleX)
	b.Height = round2(b.Height * t.scaleY)

	switch e := e.(type) {
	case *ShapeElement:
		e.Path = e.Path.Scale(t.scaleX, t.scaleY)
	case *TableElement:
		for i := range e.ColWidths {
			e.ColWidths[i] = round2(e.ColWidths[i] * t.scaleX)
		}
		for i := range e.RowHeights {
			e.RowHeights[i] = round2(e.RowHeights[i] * t.scaleY)
		}
	case *GroupElement:
		for _, child := range e.Elements {
			t.remap(child)
		}
	case *DiagramElement:
		for _, child := range e.Elements {
			t.remap(child)
		}
	}
}

var errOutOfRange = errors.New("index out of range")
