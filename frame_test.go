package pptxscene

import (
	"strings"
	"testing"
)

func graphicFrameXML(uri, data string) string {
	return `<p:graphicFrame><p:nvGraphicFramePr><p:cNvPr id="8" name="Frame 7"/><p:cNvGraphicFramePr/><p:nvPr/></p:nvGraphicFramePr>` +
		`<p:xfrm><a:off x="914400" y="914400"/><a:ext cx="1828800" cy="1828800"/></p:xfrm>` +
		`<a:graphic><a:graphicData uri="` + uri + `">` + data + `</a:graphicData></a:graphic></p:graphicFrame>`
}

const testDiagramDataXML = xmlHeader + `<dgm:dataModel xmlns:dgm="http://schemas.openxmlformats.org/drawingml/2006/diagram" ` +
	`xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main"><dgm:ptLst/>` +
	`<dgm:extLst><a:ext uri="http://schemas.microsoft.com/office/drawing/2008/diagram">` +
	`<dsp:dataModelExt xmlns:dsp="http://schemas.microsoft.com/office/drawing/2008/diagram" relId="rId6" minVer="http://schemas.openxmlformats.org/drawingml/2006/diagram"/>` +
	`</a:ext></dgm:extLst></dgm:dataModel>`

const testDiagramDrawingXML = xmlHeader + `<dsp:drawing xmlns:dsp="http://schemas.microsoft.com/office/drawing/2008/diagram" ` +
	`xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main"><dsp:spTree>` +
	`<dsp:nvGrpSpPr><dsp:cNvPr id="0" name=""/><dsp:cNvGrpSpPr/></dsp:nvGrpSpPr><dsp:grpSpPr/>` +
	`<dsp:sp modelId="{5A1E}"><dsp:nvSpPr><dsp:cNvPr id="0" name=""/><dsp:cNvSpPr/></dsp:nvSpPr>` +
	`<dsp:spPr><a:xfrm><a:off x="457200" y="0"/><a:ext cx="914400" cy="914400"/></a:xfrm><a:prstGeom prst="roundRect"><a:avLst/></a:prstGeom></dsp:spPr>` +
	`<dsp:txBody><a:bodyPr/><a:p><a:r><a:rPr lang="en-US"/><a:t>Step</a:t></a:r></a:p></dsp:txBody></dsp:sp>` +
	`</dsp:spTree></dsp:drawing>`

func TestConvertDiagram(t *testing.T) {
	tp := newTestPackage()
	tp.set("ppt/diagrams/data1.xml", testDiagramDataXML)
	tp.set("ppt/diagrams/drawing1.xml", testDiagramDrawingXML)
	tp.addSlide("slide1.xml", graphicFrameXML(uriDiagram,
		`<dgm:relIds xmlns:dgm="http://schemas.openxmlformats.org/drawingml/2006/diagram" r:dm="rId2" r:lo="rId3" r:qs="rId4" r:cs="rId5"/>`),
		testRel{"rId2", relTypeDiagramData, "../diagrams/data1.xml", false},
		testRel{"rId6", relTypeDiagramDrawing, "../diagrams/drawing1.xml", false},
	)
	slide := tp.onlySlide(t)

	d, ok := slide.Elements[0].(*DiagramElement)
	if !ok {
		t.Fatalf("expected a diagram, got %T", slide.Elements[0])
	}
	if d.Left != 96 || d.Width != 192 {
		t.Errorf("unexpected diagram box %+v", d.BaseElement)
	}
	if len(d.Elements) != 1 {
		t.Fatalf("expected 1 diagram shape, got %d", len(d.Elements))
	}
	shape, ok := d.Elements[0].(*ShapeElement)
	if !ok {
		t.Fatalf("expected a shape, got %T", d.Elements[0])
	}
	if shape.ShapeType != "roundRect" || shape.Left != 144 || shape.Top != 96 || shape.Width != 96 {
		t.Errorf("expected the shape offset by the frame, got %q %+v", shape.ShapeType, shape.BaseElement)
	}
	if shape.PhType != "" {
		t.Errorf("expected no placeholder inheritance, got %q", shape.PhType)
	}
	if !strings.Contains(slide.ExtractText(), "Step") {
		t.Errorf("expected diagram text extracted, got %q", slide.ExtractText())
	}
}

func TestConvertDiagramWithoutDrawing(t *testing.T) {
	tp := newTestPackage()
	tp.addSlide("slide1.xml", graphicFrameXML(uriDiagram,
		`<dgm:relIds xmlns:dgm="http://schemas.openxmlformats.org/drawingml/2006/diagram" r:dm="rId2"/>`))
	slide := tp.onlySlide(t)

	d, ok := slide.Elements[0].(*DiagramElement)
	if !ok {
		t.Fatalf("expected a diagram, got %T", slide.Elements[0])
	}
	if len(d.Elements) != 0 {
		t.Errorf("expected an empty diagram, got %d elements", len(d.Elements))
	}
	if len(slide.Warnings) == 0 {
		t.Error("expected the missing drawing to be reported")
	}
}

func TestConvertOLEPreview(t *testing.T) {
	tp := newTestPackage()
	tp.files["ppt/media/image2.png"] = testPNG()
	tp.addSlide("slide1.xml", graphicFrameXML(uriOLE,
		`<p:oleObj r:id="rId3" progId="Excel.Sheet.12"><p:embed/>`+
			`<p:pic><p:nvPicPr><p:cNvPr id="0" name=""/><p:cNvPicPr/><p:nvPr/></p:nvPicPr>`+
			`<p:blipFill><a:blip r:embed="rId4"/></p:blipFill><p:spPr/></p:pic></p:oleObj>`),
		testRel{"rId4", relTypeImage, "../media/image2.png", false},
	)
	slide := tp.onlySlide(t)

	img, ok := slide.Elements[0].(*ImageElement)
	if !ok {
		t.Fatalf("expected the OLE preview image, got %T", slide.Elements[0])
	}
	if img.Left != 96 || img.Width != 192 || !strings.HasPrefix(img.Src, "data:image/png") {
		t.Errorf("unexpected preview %+v", img)
	}
}

func TestConvertUnsupportedFrame(t *testing.T) {
	tp := newTestPackage()
	tp.addSlide("slide1.xml", graphicFrameXML("urn:example:ink", `<ink/>`)+rectShape)
	slide := tp.onlySlide(t)

	if len(slide.Elements) != 1 {
		t.Fatalf("expected the unsupported frame omitted, got %d elements", len(slide.Elements))
	}
	if len(slide.Warnings) != 1 || !strings.Contains(slide.Warnings[0], "urn:example:ink") {
		t.Errorf("expected a warning naming the frame, got %v", slide.Warnings)
	}
}
