package pptxscene

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
	"testing"
)

// helper: a 1x1 PNG image
func testPNG() []byte {
	return []byte{
		0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A,
		0x00, 0x00, 0x00, 0x0D, 0x49, 0x48, 0x44, 0x52,
		0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
		0x08, 0x02, 0x00, 0x00, 0x00, 0x90, 0x77, 0x53,
		0xDE, 0x00, 0x00, 0x00, 0x0C, 0x49, 0x44, 0x41,
		0x54, 0x08, 0xD7, 0x63, 0xF8, 0xCF, 0xC0, 0x00,
		0x00, 0x00, 0x02, 0x00, 0x01, 0xE2, 0x21, 0xBC,
		0x33, 0x00, 0x00, 0x00, 0x00, 0x49, 0x45, 0x4E,
		0x44, 0xAE, 0x42, 0x60, 0x82,
	}
}

// Relationship type URIs used by the package fixtures.
const (
	relTypeSlideMaster    = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideMaster"
	relTypeSlideLayout    = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideLayout"
	relTypeTheme          = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/theme"
	relTypeTableStyles    = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/tableStyles"
	relTypeImage          = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/image"
	relTypeHyperlink      = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/hyperlink"
	relTypeChart          = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/chart"
	relTypeVideo          = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/video"
	relTypeDiagramData    = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/diagramData"
	relTypeDiagramDrawing = "http://schemas.microsoft.com/office/2007/relationships/diagramDrawing"
)

const xmlHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`

const nsDecl = `xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" ` +
	`xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships" ` +
	`xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main"`

const testThemeXML = xmlHeader + `<a:theme ` + nsDecl + ` name="Office Theme"><a:themeElements>
<a:clrScheme name="Office">
<a:dk1><a:sysClr val="windowText" lastClr="000000"/></a:dk1>
<a:lt1><a:sysClr val="window" lastClr="FFFFFF"/></a:lt1>
<a:dk2><a:srgbClr val="1F497D"/></a:dk2>
<a:lt2><a:srgbClr val="EEECE1"/></a:lt2>
<a:accent1><a:srgbClr val="4F81BD"/></a:accent1>
<a:accent2><a:srgbClr val="C0504D"/></a:accent2>
<a:accent3><a:srgbClr val="9BBB59"/></a:accent3>
<a:accent4><a:srgbClr val="8064A2"/></a:accent4>
<a:accent5><a:srgbClr val="4BACC6"/></a:accent5>
<a:accent6><a:srgbClr val="F79646"/></a:accent6>
<a:hlink><a:srgbClr val="0000FF"/></a:hlink>
<a:folHlink><a:srgbClr val="800080"/></a:folHlink>
</a:clrScheme>
<a:fontScheme name="Office">
<a:majorFont><a:latin typeface="Calibri Light"/></a:majorFont>
<a:minorFont><a:latin typeface="Calibri"/></a:minorFont>
</a:fontScheme>
</a:themeElements></a:theme>`

const testMasterXML = xmlHeader + `<p:sldMaster ` + nsDecl + `><p:cSld>
<p:bg><p:bgPr><a:solidFill><a:srgbClr val="EEEEEE"/></a:solidFill></p:bgPr></p:bg>
<p:spTree><p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr><p:grpSpPr/>
<p:sp><p:nvSpPr><p:cNvPr id="2" name="Title Placeholder 1"/><p:cNvSpPr/><p:nvPr><p:ph type="title"/></p:nvPr></p:nvSpPr>
<p:spPr><a:xfrm><a:off x="457200" y="274638"/><a:ext cx="8229600" cy="1143000"/></a:xfrm></p:spPr>
<p:txBody><a:bodyPr anchor="ctr"/><a:p><a:endParaRPr/></a:p></p:txBody></p:sp>
<p:sp><p:nvSpPr><p:cNvPr id="3" name="Text Placeholder 2"/><p:cNvSpPr/><p:nvPr><p:ph type="body" idx="1"/></p:nvPr></p:nvSpPr>
<p:spPr><a:xfrm><a:off x="457200" y="1600200"/><a:ext cx="8229600" cy="4525963"/></a:xfrm></p:spPr>
<p:txBody><a:bodyPr/><a:p><a:endParaRPr/></a:p></p:txBody></p:sp>
<p:sp><p:nvSpPr><p:cNvPr id="4" name="Slide Number Placeholder 3"/><p:cNvSpPr/><p:nvPr><p:ph type="sldNum" idx="4"/></p:nvPr></p:nvSpPr>
<p:spPr><a:xfrm><a:off x="6553200" y="6356350"/><a:ext cx="2133600" cy="365125"/></a:xfrm></p:spPr></p:sp>
</p:spTree></p:cSld>
<p:txStyles>
<p:titleStyle><a:lvl1pPr algn="ctr"><a:defRPr sz="4400"><a:solidFill><a:schemeClr val="tx1"/></a:solidFill></a:defRPr></a:lvl1pPr></p:titleStyle>
<p:bodyStyle><a:lvl1pPr><a:defRPr sz="3200"><a:solidFill><a:schemeClr val="tx2"/></a:solidFill></a:defRPr></a:lvl1pPr></p:bodyStyle>
<p:otherStyle><a:lvl1pPr><a:defRPr sz="1800"/></a:lvl1pPr></p:otherStyle>
</p:txStyles></p:sldMaster>`

const testLayoutXML = xmlHeader + `<p:sldLayout ` + nsDecl + `><p:cSld name="Title and Content">
<p:spTree><p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr><p:grpSpPr/>
<p:sp><p:nvSpPr><p:cNvPr id="2" name="Title 1"/><p:cNvSpPr/><p:nvPr><p:ph type="title"/></p:nvPr></p:nvSpPr><p:spPr/></p:sp>
<p:sp><p:nvSpPr><p:cNvPr id="3" name="Content Placeholder 2"/><p:cNvSpPr/><p:nvPr><p:ph type="body" idx="1"/></p:nvPr></p:nvSpPr>
<p:spPr><a:xfrm><a:off x="914400" y="1828800"/><a:ext cx="7315200" cy="3657600"/></a:xfrm></p:spPr>
<p:txBody><a:bodyPr anchor="b"/><a:lstStyle><a:lvl1pPr><a:defRPr sz="2800"/></a:lvl1pPr></a:lstStyle><a:p><a:endParaRPr/></a:p></p:txBody></p:sp>
</p:spTree></p:cSld></p:sldLayout>`

const testPresentationXML = xmlHeader + `<p:presentation ` + nsDecl + `>
<p:sldSz cx="9144000" cy="6858000"/><p:notesSz cx="6858000" cy="9144000"/></p:presentation>`

type testRel struct {
	id, typ, target string
	external        bool
}

func relsXML(rels ...testRel) string {
	var sb strings.Builder
	sb.WriteString(xmlHeader)
	sb.WriteString(`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">`)
	for _, r := range rels {
		mode := ""
		if r.external {
			mode = ` TargetMode="External"`
		}
		fmt.Fprintf(&sb, `<Relationship Id="%s" Type="%s" Target="%s"%s/>`, r.id, r.typ, r.target, mode)
	}
	sb.WriteString(`</Relationships>`)
	return sb.String()
}

// slideXML wraps shape tree children (and an optional p:bg) into a slide.
func slideXML(bg, shapes string) string {
	return xmlHeader + `<p:sld ` + nsDecl + `><p:cSld>` + bg +
		`<p:spTree><p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr><p:grpSpPr/>` +
		shapes + `</p:spTree></p:cSld></p:sld>`
}

// layoutRel is the relationship every test slide carries to its layout.
var layoutRel = testRel{"rId1", relTypeSlideLayout, "../slideLayouts/slideLayout1.xml", false}

// testPackage assembles a presentation package in memory.
type testPackage struct {
	files  map[string][]byte
	slides []string
}

// newTestPackage returns a package with a theme, one master and one layout
// but no slides.
func newTestPackage() *testPackage {
	tp := &testPackage{files: map[string][]byte{}}
	tp.set(presentationPart, testPresentationXML)
	tp.set(presentationRelsPart, relsXML(
		testRel{"rId1", relTypeSlideMaster, "slideMasters/slideMaster1.xml", false},
		testRel{"rId2", relTypeTheme, "theme/theme1.xml", false},
	))
	tp.set("ppt/theme/theme1.xml", testThemeXML)
	tp.set("ppt/slideMasters/slideMaster1.xml", testMasterXML)
	tp.set("ppt/slideMasters/_rels/slideMaster1.xml.rels", relsXML(
		testRel{"rId1", relTypeSlideLayout, "../slideLayouts/slideLayout1.xml", false},
		testRel{"rId2", relTypeTheme, "../theme/theme1.xml", false},
	))
	tp.set("ppt/slideLayouts/slideLayout1.xml", testLayoutXML)
	tp.set("ppt/slideLayouts/_rels/slideLayout1.xml.rels", relsXML(
		testRel{"rId1", relTypeSlideMaster, "../slideMasters/slideMaster1.xml", false},
	))
	return tp
}

func (tp *testPackage) set(name, content string) {
	tp.files[name] = []byte(content)
}

// addSlide adds ppt/slides/<name> with the given shape tree children. The
// layout relationship is added in front of rels.
func (tp *testPackage) addSlide(name, shapes string, rels ...testRel) string {
	return tp.addSlideXML(name, slideXML("", shapes), append([]testRel{layoutRel}, rels...)...)
}

// addSlideXML adds a slide part verbatim with exactly rels.
func (tp *testPackage) addSlideXML(name, content string, rels ...testRel) string {
	part := "ppt/slides/" + name
	tp.set(part, content)
	if len(rels) > 0 {
		tp.set("ppt/slides/_rels/"+name+".rels", relsXML(rels...))
	}
	tp.slides = append(tp.slides, part)
	return part
}

// bytes zips the package. Slides are declared in the manifest in the order
// they were added.
func (tp *testPackage) bytes(t *testing.T) []byte {
	t.Helper()
	var ct strings.Builder
	ct.WriteString(xmlHeader)
	ct.WriteString(`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">`)
	ct.WriteString(`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>`)
	ct.WriteString(`<Default Extension="xml" ContentType="application/xml"/>`)
	ct.WriteString(`<Default Extension="png" ContentType="image/png"/>`)
	for _, s := range tp.slides {
		fmt.Fprintf(&ct, `<Override PartName="/%s" ContentType="%s"/>`, s, ctSlide)
	}
	ct.WriteString(`</Types>`)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	writeZipFile(t, zw, contentTypesPart, []byte(ct.String()))
	names := make([]string, 0, len(tp.files))
	for name := range tp.files {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		writeZipFile(t, zw, name, tp.files[name])
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("failed to close zip: %v", err)
	}
	return buf.Bytes()
}

func writeZipFile(t *testing.T, zw *zip.Writer, name string, content []byte) {
	t.Helper()
	w, err := zw.Create(name)
	if err != nil {
		t.Fatalf("failed to create %s: %v", name, err)
	}
	if _, err := w.Write(content); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// parse converts the package with the default options plus opts.
func (tp *testPackage) parse(t *testing.T, opts ...Option) *Document {
	t.Helper()
	doc, err := Parse(tp.bytes(t), append([]Option{WithLogger(discardLogger())}, opts...)...)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	return doc
}

// onlySlide converts a one-slide package and fails on slide errors.
func (tp *testPackage) onlySlide(t *testing.T, opts ...Option) *Slide {
	t.Helper()
	doc := tp.parse(t, opts...)
	if len(doc.Slides) != 1 {
		t.Fatalf("expected 1 slide, got %d", len(doc.Slides))
	}
	s := doc.Slides[0]
	if s.Err != nil {
		t.Fatalf("slide failed: %v", s.Err)
	}
	return s
}

// openTestPackage opens the package without converting any slide.
func openTestPackage(t *testing.T, tp *testPackage) *pptxPackage {
	t.Helper()
	data := tp.bytes(t)
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("failed to open zip: %v", err)
	}
	opts := DefaultOptions()
	opts.Logger = discardLogger()
	pkg, err := openPackage(zr, opts)
	if err != nil {
		t.Fatalf("openPackage failed: %v", err)
	}
	return pkg
}

// spXML builds a p:sp. ph is the inner p:nvPr markup, spPr and body the
// p:spPr children and the p:txBody content (omitted when empty).
func spXML(id, name, ph, spPr, body string) string {
	s := `<p:sp><p:nvSpPr><p:cNvPr id="` + id + `" name="` + name + `"/><p:cNvSpPr/><p:nvPr>` + ph + `</p:nvPr></p:nvSpPr>` +
		`<p:spPr>` + spPr + `</p:spPr>`
	if body != "" {
		s += `<p:txBody><a:bodyPr/>` + body + `</p:txBody>`
	}
	return s + `</p:sp>`
}

func xfrmXML(x, y, cx, cy int64) string {
	return fmt.Sprintf(`<a:xfrm><a:off x="%d" y="%d"/><a:ext cx="%d" cy="%d"/></a:xfrm>`, x, y, cx, cy)
}
