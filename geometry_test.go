package pptxscene

import (
	"encoding/json"
	"encoding/xml"
	"errors"
	"math"
	"testing"
)

func decodeCustGeom(t *testing.T, inner string) *xmlCustGeom {
	t.Helper()
	var g xmlCustGeom
	data := `<a:custGeom xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main">` + inner + `</a:custGeom>`
	if err := xml.Unmarshal([]byte(data), &g); err != nil {
		t.Fatalf("failed to decode geometry: %v", err)
	}
	return &g
}

func TestBuildCustomPathScalesToBox(t *testing.T) {
	geom := decodeCustGeom(t, `<a:pathLst><a:path w="100" h="100">
		<a:moveTo><a:pt x="0" y="0"/></a:moveTo>
		<a:lnTo><a:pt x="100" y="0"/></a:lnTo>
		<a:lnTo><a:pt x="100" y="100"/></a:lnTo>
		<a:close/>
	</a:path></a:pathLst>`)

	path, errs := buildCustomPath(geom, 100, 100, 50, 50, 1, "ppt/slides/slide1.xml")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if got := path.String(); got != "M0,0 L50,0 L50,50 z" {
		t.Errorf("unexpected path %q", got)
	}
	data, err := json.Marshal(path)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(data) != `"M0,0 L50,0 L50,50 z"` {
		t.Errorf("unexpected JSON %s", data)
	}
}

func TestBuildCustomPathGuides(t *testing.T) {
	geom := decodeCustGeom(t, `<a:gdLst><a:gd name="half" fmla="val 50"/><a:gd name="x" fmla="*/ w 1 2"/></a:gdLst>
		<a:pathLst><a:path w="100" h="100">
		<a:moveTo><a:pt x="half" y="t"/></a:moveTo>
		<a:lnTo><a:pt x="r" y="b"/></a:lnTo>
		<a:lnTo><a:pt x="x" y="0"/></a:lnTo>
		<a:quadBezTo><a:pt x="0" y="0"/><a:pt x="0" y="100"/></a:quadBezTo>
		<a:cubicBezTo><a:pt x="0" y="0"/><a:pt x="10" y="10"/><a:pt x="20" y="20"/></a:cubicBezTo>
	</a:path></a:pathLst>`)

	path, errs := buildCustomPath(geom, 100, 100, 100, 100, 1, "slide")
	if len(errs) != 2 {
		t.Fatalf("expected 2 errors for the formula and its reference, got %v", errs)
	}
	for _, err := range errs {
		if !errors.Is(err, ErrUnsupportedVariant) {
			t.Errorf("expected an unsupported variant, got %v", err)
		}
	}
	if got := path.String(); got != "M50,0 L100,100 Q0,0 0,100 C0,0 10,10 20,20" {
		t.Errorf("unexpected path %q", got)
	}
}

func TestBuildCustomPathWithoutSize(t *testing.T) {
	geom := decodeCustGeom(t, `<a:pathLst><a:path>
		<a:moveTo><a:pt x="914400" y="0"/></a:moveTo>
	</a:path></a:pathLst>`)
	path, _ := buildCustomPath(geom, 914400, 914400, 96, 96, 96.0/914400, "slide")
	if got := path.String(); got != "M96,0" {
		t.Errorf("expected EMU path scaled by the factor, got %q", got)
	}
}

func TestArcPolyline(t *testing.T) {
	// Start on the left of a circle of radius 10 centred at (10, 0).
	seg, x, y := arcPolyline(0, 0, 10, 10, 180, 90)
	if len(seg) != 90 {
		t.Fatalf("expected 90 segments, got %d", len(seg))
	}
	if math.Abs(x-10) > 1e-9 || math.Abs(y+10) > 1e-9 {
		t.Errorf("expected pen at (10,-10), got (%v,%v)", x, y)
	}
	last := seg[len(seg)-1].(LineTo)
	if math.Abs(last.X-x) > 1e-9 || math.Abs(last.Y-y) > 1e-9 {
		t.Errorf("last segment %v does not end at the pen", last)
	}

	seg, _, _ = arcPolyline(0, 0, 10, 10, 0, -45.5)
	if len(seg) != 46 {
		t.Errorf("expected 46 segments for a fractional sweep, got %d", len(seg))
	}
}

func TestGroupTransformRemap(t *testing.T) {
	xfrm := &xmlXfrm{
		Off:   &xmlPoint{X: 100, Y: 100},
		Ext:   &xmlExtent{CX: 200, CY: 200},
		ChOff: &xmlPoint{X: 0, Y: 0},
		ChExt: &xmlExtent{CX: 100, CY: 100},
	}
	tr := newGroupTransform(xfrm, 1)

	shape := &ShapeElement{
		BaseElement: BaseElement{Left: 25, Top: 25, Width: 10, Height: 10},
		ShapeType:   "custom",
		Path:        Path{MoveTo{0, 0}, LineTo{10, 10}},
	}
	inner := &ShapeElement{BaseElement: BaseElement{Left: 0, Top: 0, Width: 5, Height: 5}}
	nested := &GroupElement{
		BaseElement: BaseElement{Left: 0, Top: 0, Width: 50, Height: 50},
		Elements:    []Element{inner},
	}
	tr.remap(shape)
	tr.remap(nested)

	if shape.Left != 150 || shape.Top != 150 || shape.Width != 20 || shape.Height != 20 {
		t.Errorf("unexpected box %+v", shape.BaseElement)
	}
	if got := shape.Path.String(); got != "M0,0 L20,20" {
		t.Errorf("expected path scaled with the group, got %q", got)
	}
	if inner.Left != 100 || inner.Width != 10 {
		t.Errorf("expected nested child remapped, got %+v", inner.BaseElement)
	}
}

func TestGroupTransformIdentity(t *testing.T) {
	tr := newGroupTransform(nil, 1)
	x, y := tr.point(12, 34)
	if x != 12 || y != 34 {
		t.Errorf("expected identity, got (%v,%v)", x, y)
	}
}
