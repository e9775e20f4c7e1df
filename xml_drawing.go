package pptxscene

import (
	"encoding/xml"
	"strconv"
	"strings"
)

// Typed DrawingML / PresentationML structures. Field tags carry local names
// only, so the same structs decode p:, a:, dsp: and mc: prefixed elements.

type xmlEmpty struct{}

type xmlVal struct {
	Val string `xml:"val,attr"`
}

// --- shape tree ---

// shapeNode is one child of a shape tree: *xmlShape, *xmlConnector,
// *xmlPicture, *xmlGraphicFrame, *xmlGroup or *xmlAlternateContent.
type shapeNode interface {
	shapeNode()
}

// xmlShapeTree keeps shape children in document order, which is paint order.
type xmlShapeTree struct {
	NvGrpSpPr *xmlNonVisual
	GrpSpPr   *xmlShapeProps
	Nodes     []shapeNode
	// Unknown lists child element names that were skipped.
	Unknown []string
}

func (t *xmlShapeTree) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch el := tok.(type) {
		case xml.StartElement:
			var node shapeNode
			switch el.Name.Local {
			case "nvGrpSpPr":
				t.NvGrpSpPr = new(xmlNonVisual)
				if err := d.DecodeElement(t.NvGrpSpPr, &el); err != nil {
					return err
				}
				continue
			case "grpSpPr":
				t.GrpSpPr = new(xmlShapeProps)
				if err := d.DecodeElement(t.GrpSpPr, &el); err != nil {
					return err
				}
				continue
			case "sp":
				node = new(xmlShape)
			case "cxnSp":
				node = new(xmlConnector)
			case "pic":
				node = new(xmlPicture)
			case "graphicFrame":
				node = new(xmlGraphicFrame)
			case "grpSp":
				node = new(xmlGroup)
			case "AlternateContent":
				node = new(xmlAlternateContent)
			default:
				if el.Name.Local != "extLst" {
					t.Unknown = append(t.Unknown, el.Name.Local)
				}
				if err := d.Skip(); err != nil {
					return err
				}
				continue
			}
			if err := d.DecodeElement(node, &el); err != nil {
				return err
			}
			t.Nodes = append(t.Nodes, node)
		case xml.EndElement:
			return nil
		}
	}
}

type xmlShape struct {
	NvSpPr xmlNonVisual   `xml:"nvSpPr"`
	SpPr   xmlShapeProps  `xml:"spPr"`
	Style  *xmlShapeStyle `xml:"style"`
	TxBody *xmlTextBody   `xml:"txBody"`
	TxXfrm *xmlXfrm       `xml:"txXfrm"`
}

type xmlConnector struct {
	NvCxnSpPr xmlNonVisual   `xml:"nvCxnSpPr"`
	SpPr      xmlShapeProps  `xml:"spPr"`
	Style     *xmlShapeStyle `xml:"style"`
}

type xmlPicture struct {
	NvPicPr  xmlNonVisual  `xml:"nvPicPr"`
	BlipFill xmlBlipFill   `xml:"blipFill"`
	SpPr     xmlShapeProps `xml:"spPr"`
}

type xmlGraphicFrame struct {
	NvGraphicFramePr xmlNonVisual `xml:"nvGraphicFramePr"`
	Xfrm             xmlXfrm      `xml:"xfrm"`
	Graphic          struct {
		Data xmlGraphicData `xml:"graphicData"`
	} `xml:"graphic"`
}

type xmlGroup struct {
	xmlShapeTree
}

type xmlAlternateContent struct {
	Fallback *xmlShapeTree `xml:"Fallback"`
}

func (*xmlShape) shapeNode()            {}
func (*xmlConnector) shapeNode()        {}
func (*xmlPicture) shapeNode()          {}
func (*xmlGraphicFrame) shapeNode()     {}
func (*xmlGroup) shapeNode()            {}
func (*xmlAlternateContent) shapeNode() {}

type xmlNonVisual struct {
	CNvPr   xmlCNvPr    `xml:"cNvPr"`
	CNvSpPr *xmlCNvSpPr `xml:"cNvSpPr"`
	NvPr    xmlNvPr     `xml:"nvPr"`
}

type xmlCNvPr struct {
	ID         string        `xml:"id,attr"`
	Name       string        `xml:"name,attr"`
	Descr      string        `xml:"descr,attr"`
	HlinkClick *xmlHyperlink `xml:"hlinkClick"`
}

type xmlCNvSpPr struct {
	TxBox string `xml:"txBox,attr"`
}

type xmlNvPr struct {
	Ph        *xmlPlaceholder `xml:"ph"`
	VideoFile *xmlMediaFile   `xml:"videoFile"`
	AudioFile *xmlMediaFile   `xml:"audioFile"`
}

type xmlPlaceholder struct {
	Type string `xml:"type,attr"`
	Idx  string `xml:"idx,attr"`
}

type xmlMediaFile struct {
	Link string `xml:"link,attr"`
}

type xmlHyperlink struct {
	ID      string `xml:"id,attr"`
	Action  string `xml:"action,attr"`
	Tooltip string `xml:"tooltip,attr"`
}

// --- shape properties ---

type xmlShapeProps struct {
	Xfrm     *xmlXfrm     `xml:"xfrm"`
	PrstGeom *xmlPrstGeom `xml:"prstGeom"`
	CustGeom *xmlCustGeom `xml:"custGeom"`
	xmlFillProps
	Ln        *xmlLine       `xml:"ln"`
	EffectLst *xmlEffectList `xml:"effectLst"`
}

type xmlXfrm struct {
	Rot   int64      `xml:"rot,attr"`
	FlipH string     `xml:"flipH,attr"`
	FlipV string     `xml:"flipV,attr"`
	Off   *xmlPoint  `xml:"off"`
	Ext   *xmlExtent `xml:"ext"`
	ChOff *xmlPoint  `xml:"chOff"`
	ChExt *xmlExtent `xml:"chExt"`
}

type xmlPoint struct {
	X int64 `xml:"x,attr"`
	Y int64 `xml:"y,attr"`
}

type xmlExtent struct {
	CX int64 `xml:"cx,attr"`
	CY int64 `xml:"cy,attr"`
}

type xmlPrstGeom struct {
	Prst string `xml:"prst,attr"`
}

type xmlLine struct {
	W string `xml:"w,attr"`
	xmlFillProps
	PrstDash *xmlVal `xml:"prstDash"`
}

type xmlEffectList struct {
	OuterShdw *xmlOuterShadow `xml:"outerShdw"`
}

type xmlOuterShadow struct {
	Dir     int64 `xml:"dir,attr"`
	Dist    int64 `xml:"dist,attr"`
	BlurRad int64 `xml:"blurRad,attr"`
	xmlColor
}

type xmlShapeStyle struct {
	LnRef     *xmlStyleRef `xml:"lnRef"`
	FillRef   *xmlStyleRef `xml:"fillRef"`
	EffectRef *xmlStyleRef `xml:"effectRef"`
	FontRef   *xmlStyleRef `xml:"fontRef"`
}

type xmlStyleRef struct {
	Idx string `xml:"idx,attr"`
	xmlColor
}

// --- fills ---

type xmlFillProps struct {
	NoFill    *xmlEmpty    `xml:"noFill"`
	SolidFill *xmlColor    `xml:"solidFill"`
	GradFill  *xmlGradFill `xml:"gradFill"`
	PattFill  *xmlPattFill `xml:"pattFill"`
	BlipFill  *xmlBlipFill `xml:"blipFill"`
	GrpFill   *xmlEmpty    `xml:"grpFill"`
}

type xmlGradFill struct {
	GsLst struct {
		Gs []xmlGradStop `xml:"gs"`
	} `xml:"gsLst"`
	Lin *struct {
		Ang int64 `xml:"ang,attr"`
	} `xml:"lin"`
}

type xmlGradStop struct {
	Pos string `xml:"pos,attr"`
	xmlColor
}

type xmlPattFill struct {
	Prst  string    `xml:"prst,attr"`
	FgClr *xmlColor `xml:"fgClr"`
	BgClr *xmlColor `xml:"bgClr"`
}

type xmlBlipFill struct {
	Blip *xmlBlip `xml:"blip"`
}

type xmlBlip struct {
	Embed       string `xml:"embed,attr"`
	Link        string `xml:"link,attr"`
	AlphaModFix *struct {
		Amt string `xml:"amt,attr"`
	} `xml:"alphaModFix"`
}

// --- colors ---

// xmlColor is a color choice container (solidFill, gradient stop, style
// reference, table text style). At most one member is set.
type xmlColor struct {
	SrgbClr   *xmlColorSpec `xml:"srgbClr"`
	SchemeClr *xmlColorSpec `xml:"schemeClr"`
	ScrgbClr  *xmlColorSpec `xml:"scrgbClr"`
	PrstClr   *xmlColorSpec `xml:"prstClr"`
	HslClr    *xmlColorSpec `xml:"hslClr"`
	SysClr    *xmlColorSpec `xml:"sysClr"`
}

type xmlColorSpec struct {
	Val     string        `xml:"val,attr"`
	LastClr string        `xml:"lastClr,attr"`
	R       string        `xml:"r,attr"`
	G       string        `xml:"g,attr"`
	B       string        `xml:"b,attr"`
	Hue     string        `xml:"hue,attr"`
	Sat     string        `xml:"sat,attr"`
	Lum     string        `xml:"lum,attr"`
	Mods    []xmlColorMod `xml:",any"`
}

type xmlColorMod struct {
	XMLName xml.Name
	Val     string `xml:"val,attr"`
}

// --- custom geometry ---

type xmlCustGeom struct {
	GdLst *struct {
		Gd []xmlGuide `xml:"gd"`
	} `xml:"gdLst"`
	PathLst struct {
		Paths []*xmlPath `xml:"path"`
	} `xml:"pathLst"`
}

type xmlGuide struct {
	Name string `xml:"name,attr"`
	Fmla string `xml:"fmla,attr"`
}

// pathNode is one drawing command of a custom path.
type pathNode interface {
	pathNode()
}

type xmlPathPoint struct {
	X string `xml:"x,attr"`
	Y string `xml:"y,attr"`
}

type xmlMoveTo struct {
	Pt xmlPathPoint `xml:"pt"`
}

type xmlLnTo struct {
	Pt xmlPathPoint `xml:"pt"`
}

type xmlCubicBezTo struct {
	Pts []xmlPathPoint `xml:"pt"`
}

type xmlQuadBezTo struct {
	Pts []xmlPathPoint `xml:"pt"`
}

type xmlArcTo struct {
	WR    string `xml:"wR,attr"`
	HR    string `xml:"hR,attr"`
	StAng string `xml:"stAng,attr"`
	SwAng string `xml:"swAng,attr"`
}

type xmlClose struct{}

func (*xmlMoveTo) pathNode()     {}
func (*xmlLnTo) pathNode()       {}
func (*xmlCubicBezTo) pathNode() {}
func (*xmlQuadBezTo) pathNode()  {}
func (*xmlArcTo) pathNode()      {}
func (*xmlClose) pathNode()      {}

// xmlPath keeps its commands in document order.
type xmlPath struct {
	W        int64
	H        int64
	Commands []pathNode
	Unknown  []string
}

func (p *xmlPath) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for _, a := range start.Attr {
		switch a.Name.Local {
		case "w":
			p.W, _ = strconv.ParseInt(a.Value, 10, 64)
		case "h":
			p.H, _ = strconv.ParseInt(a.Value, 10, 64)
		}
	}
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch el := tok.(type) {
		case xml.StartElement:
			var cmd pathNode
			switch el.Name.Local {
			case "moveTo":
				cmd = new(xmlMoveTo)
			case "lnTo":
				cmd = new(xmlLnTo)
			case "cubicBezTo":
				cmd = new(xmlCubicBezTo)
			case "quadBezTo":
				cmd = new(xmlQuadBezTo)
			case "arcTo":
				cmd = new(xmlArcTo)
			case "close":
				cmd = new(xmlClose)
			default:
				p.Unknown = append(p.Unknown, el.Name.Local)
				if err := d.Skip(); err != nil {
					return err
				}
				continue
			}
			if err := d.DecodeElement(cmd, &el); err != nil {
				return err
			}
			p.Commands = append(p.Commands, cmd)
		case xml.EndElement:
			return nil
		}
	}
}

// --- text ---

type xmlTextBody struct {
	BodyPr     *xmlBodyProps   `xml:"bodyPr"`
	LstStyle   *xmlListStyle   `xml:"lstStyle"`
	Paragraphs []*xmlParagraph `xml:"p"`
}

type xmlBodyProps struct {
	Anchor string `xml:"anchor,attr"`
	Vert   string `xml:"vert,attr"`
}

type xmlListStyle struct {
	Lvl1pPr *xmlParaProps `xml:"lvl1pPr"`
}

type xmlTextStyles struct {
	TitleStyle *xmlListStyle `xml:"titleStyle"`
	BodyStyle  *xmlListStyle `xml:"bodyStyle"`
	OtherStyle *xmlListStyle `xml:"otherStyle"`
}

type xmlParaProps struct {
	Algn   string `xml:"algn,attr"`
	Lvl    int    `xml:"lvl,attr"`
	BuChar *struct {
		Char string `xml:"char,attr"`
	} `xml:"buChar"`
	BuAutoNum *struct {
		Type string `xml:"type,attr"`
	} `xml:"buAutoNum"`
	BuNone *xmlEmpty    `xml:"buNone"`
	DefRPr *xmlRunProps `xml:"defRPr"`
}

type xmlRunProps struct {
	Sz         string         `xml:"sz,attr"`
	B          string         `xml:"b,attr"`
	I          string         `xml:"i,attr"`
	U          string         `xml:"u,attr"`
	Strike     string         `xml:"strike,attr"`
	Baseline   string         `xml:"baseline,attr"`
	Spc        string         `xml:"spc,attr"`
	Latin      *xmlTypeface   `xml:"latin"`
	SolidFill  *xmlColor      `xml:"solidFill"`
	EffectLst  *xmlEffectList `xml:"effectLst"`
	HlinkClick *xmlHyperlink  `xml:"hlinkClick"`
}

type xmlTypeface struct {
	Typeface string `xml:"typeface,attr"`
}

// textNode is one inline child of a paragraph: *xmlRun, *xmlField or *xmlBreak.
type textNode interface {
	runProps() *xmlRunProps
}

type xmlRun struct {
	RPr *xmlRunProps `xml:"rPr"`
	T   string       `xml:"t"`
}

type xmlField struct {
	ID   string       `xml:"id,attr"`
	Type string       `xml:"type,attr"`
	RPr  *xmlRunProps `xml:"rPr"`
	T    string       `xml:"t"`
}

type xmlBreak struct {
	RPr *xmlRunProps `xml:"rPr"`
}

func (r *xmlRun) runProps() *xmlRunProps   { return r.RPr }
func (f *xmlField) runProps() *xmlRunProps { return f.RPr }
func (b *xmlBreak) runProps() *xmlRunProps { return b.RPr }

// xmlParagraph keeps runs, fields and breaks in document order.
type xmlParagraph struct {
	PPr        *xmlParaProps
	Runs       []textNode
	EndParaRPr *xmlRunProps
}

func (p *xmlParagraph) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch el := tok.(type) {
		case xml.StartElement:
			var err error
			switch el.Name.Local {
			case "pPr":
				p.PPr = new(xmlParaProps)
				err = d.DecodeElement(p.PPr, &el)
			case "r":
				r := new(xmlRun)
				err = d.DecodeElement(r, &el)
				p.Runs = append(p.Runs, r)
			case "fld":
				f := new(xmlField)
				err = d.DecodeElement(f, &el)
				p.Runs = append(p.Runs, f)
			case "br":
				b := new(xmlBreak)
				err = d.DecodeElement(b, &el)
				p.Runs = append(p.Runs, b)
			case "endParaRPr":
				p.EndParaRPr = new(xmlRunProps)
				err = d.DecodeElement(p.EndParaRPr, &el)
			default:
				err = d.Skip()
			}
			if err != nil {
				return err
			}
		case xml.EndElement:
			return nil
		}
	}
}

// --- graphic frames ---

type xmlGraphicData struct {
	URI     string            `xml:"uri,attr"`
	Table   *xmlTable         `xml:"tbl"`
	Chart   *xmlRelRef        `xml:"chart"`
	Diagram *xmlDiagramRelIDs `xml:"relIds"`
	OleObj  *xmlOleObject     `xml:"oleObj"`
	Alt     *struct {
		Choice *struct {
			OleObj *xmlOleObject `xml:"oleObj"`
		} `xml:"Choice"`
		Fallback *struct {
			OleObj *xmlOleObject `xml:"oleObj"`
		} `xml:"Fallback"`
	} `xml:"AlternateContent"`
}

type xmlRelRef struct {
	ID string `xml:"id,attr"`
}

type xmlDiagramRelIDs struct {
	DM string `xml:"dm,attr"`
	LO string `xml:"lo,attr"`
	QS string `xml:"qs,attr"`
	CS string `xml:"cs,attr"`
}

type xmlOleObject struct {
	ProgID string      `xml:"progId,attr"`
	Pic    *xmlPicture `xml:"pic"`
}

// --- tables ---

type xmlTable struct {
	TblPr xmlTableProps `xml:"tblPr"`
	Grid  struct {
		Cols []struct {
			W int64 `xml:"w,attr"`
		} `xml:"gridCol"`
	} `xml:"tblGrid"`
	Rows []xmlTableRow `xml:"tr"`
}

type xmlTableProps struct {
	FirstRow string `xml:"firstRow,attr"`
	LastRow  string `xml:"lastRow,attr"`
	BandRow  string `xml:"bandRow,attr"`
	FirstCol string `xml:"firstCol,attr"`
	LastCol  string `xml:"lastCol,attr"`
	BandCol  string `xml:"bandCol,attr"`
	StyleID  string `xml:"tableStyleId"`
}

type xmlTableRow struct {
	H     int64          `xml:"h,attr"`
	Cells []xmlTableCell `xml:"tc"`
}

type xmlTableCell struct {
	RowSpan  string             `xml:"rowSpan,attr"`
	GridSpan string             `xml:"gridSpan,attr"`
	VMerge   string             `xml:"vMerge,attr"`
	HMerge   string             `xml:"hMerge,attr"`
	TxBody   *xmlTextBody       `xml:"txBody"`
	TcPr     *xmlTableCellProps `xml:"tcPr"`
}

type xmlTableCellProps struct {
	Anchor string `xml:"anchor,attr"`
	xmlFillProps
}

// xmlBool reads an xsd:boolean attribute.
func xmlBool(s string) bool {
	switch strings.TrimSpace(s) {
	case "1", "true", "on":
		return true
	}
	return false
}
