package pptxscene

import (
	"strconv"
	"testing"
)

func TestGroupTransformShrinks(t *testing.T) {
	tests := []struct {
		name         string
		chOff        int64
		local        float64
		wantX, wantY float64
	}{
		{"child offset at origin", 0, 100, 150, 150},
		{"child offset subtracted before scaling", 50, 250, 200, 200},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := newGroupTransform(&xmlXfrm{
				Off:   &xmlPoint{X: 100, Y: 100},
				Ext:   &xmlExtent{CX: 200, CY: 200},
				ChOff: &xmlPoint{X: tt.chOff, Y: tt.chOff},
				ChExt: &xmlExtent{CX: 400, CY: 400},
			}, 1)
			x, y := tr.point(tt.local, tt.local)
			if x != tt.wantX || y != tt.wantY {
				t.Errorf("expected (%v,%v), got (%v,%v)", tt.wantX, tt.wantY, x, y)
			}

			shape := &ShapeElement{BaseElement: BaseElement{Left: tt.local, Top: tt.local, Width: 40, Height: 40}}
			tr.remap(shape)
			if shape.Left != tt.wantX || shape.Top != tt.wantY || shape.Width != 20 || shape.Height != 20 {
				t.Errorf("unexpected box %+v", shape.BaseElement)
			}
		})
	}
}

func TestConvertNestedGroups(t *testing.T) {
	const inch = 914400
	groupXML := func(id string, off, ext, chOff, chExt int64, children string) string {
		return `<p:grpSp><p:nvGrpSpPr><p:cNvPr id="` + id + `" name="Group ` + id + `"/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr>` +
			`<p:grpSpPr><a:xfrm>` +
			`<a:off x="` + itoa(off) + `" y="` + itoa(off) + `"/><a:ext cx="` + itoa(ext) + `" cy="` + itoa(ext) + `"/>` +
			`<a:chOff x="` + itoa(chOff) + `" y="` + itoa(chOff) + `"/><a:chExt cx="` + itoa(chExt) + `" cy="` + itoa(chExt) + `"/>` +
			`</a:xfrm></p:grpSpPr>` + children + `</p:grpSp>`
	}
	leaf := spXML("4", "Leaf", "", xfrmXML(2*inch, 2*inch, inch, inch)+`<a:prstGeom prst="rect"><a:avLst/></a:prstGeom>`, "")
	// The outer group halves its children; the inner one only shifts them.
	inner := groupXML("3", inch, inch, inch, inch, leaf)
	outer := groupXML("2", inch, 2*inch, 0, 4*inch, inner)

	tp := newTestPackage()
	tp.addSlide("slide1.xml", outer)
	slide := tp.onlySlide(t)

	og, ok := slide.Elements[0].(*GroupElement)
	if !ok {
		t.Fatalf("expected a group, got %T", slide.Elements[0])
	}
	if og.Left != 96 || og.Width != 192 {
		t.Errorf("unexpected outer group %+v", og.BaseElement)
	}
	ig, ok := og.Elements[0].(*GroupElement)
	if !ok {
		t.Fatalf("expected a nested group, got %T", og.Elements[0])
	}
	if ig.Left != 144 || ig.Top != 144 || ig.Width != 48 {
		t.Errorf("unexpected inner group %+v", ig.BaseElement)
	}
	rect := ig.Elements[0].(*ShapeElement)
	if rect.Left != 192 || rect.Top != 192 || rect.Width != 48 || rect.Height != 48 {
		t.Errorf("expected the leaf in slide space, got %+v", rect.BaseElement)
	}
}

func itoa(v int64) string {
	return strconv.FormatInt(v, 10)
}
