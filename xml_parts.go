package pptxscene

import "encoding/xml"

// Package-level parts: content types, presentation, slides, layouts,
// masters, table styles and diagram data.

type xmlContentTypes struct {
	XMLName   xml.Name                 `xml:"Types"`
	Defaults  []xmlContentTypeDefault  `xml:"Default"`
	Overrides []xmlContentTypeOverride `xml:"Override"`
}

type xmlContentTypeDefault struct {
	Extension   string `xml:"Extension,attr"`
	ContentType string `xml:"ContentType,attr"`
}

type xmlContentTypeOverride struct {
	PartName    string `xml:"PartName,attr"`
	ContentType string `xml:"ContentType,attr"`
}

type xmlPresentationForRead struct {
	XMLName xml.Name `xml:"presentation"`
	SldSz   *struct {
		CX   int64  `xml:"cx,attr"`
		CY   int64  `xml:"cy,attr"`
		Type string `xml:"type,attr"`
	} `xml:"sldSz"`
	SldIDLst struct {
		SldIDs []struct {
			RID string `xml:"id,attr"`
		} `xml:"sldId"`
	} `xml:"sldIdLst"`
}

// xmlSlideForRead decodes p:sld, p:sldLayout and p:sldMaster alike.
type xmlSlideForRead struct {
	XMLName  xml.Name       `xml:""`
	Show     string         `xml:"show,attr"`
	CSld     xmlCommonSlide `xml:"cSld"`
	TxStyles *xmlTextStyles `xml:"txStyles"`
}

type xmlCommonSlide struct {
	Name   string         `xml:"name,attr"`
	Bg     *xmlBackground `xml:"bg"`
	SpTree xmlShapeTree   `xml:"spTree"`
}

type xmlBackground struct {
	BgPr  *xmlBackgroundProps `xml:"bgPr"`
	BgRef *xmlStyleRef        `xml:"bgRef"`
}

type xmlBackgroundProps struct {
	xmlFillProps
}

// xmlDrawingForRead is a pre-rendered diagram drawing (dsp:drawing).
type xmlDrawingForRead struct {
	SpTree xmlShapeTree `xml:"spTree"`
}

// xmlDiagramDataForRead carries the pointer from a diagram data part to its
// drawing part.
type xmlDiagramDataForRead struct {
	ExtLst struct {
		Ext []struct {
			DataModelExt *struct {
				RelID string `xml:"relId,attr"`
			} `xml:"dataModelExt"`
		} `xml:"ext"`
	} `xml:"extLst"`
}

type xmlTableStyleList struct {
	Def    string          `xml:"def,attr"`
	Styles []xmlTableStyle `xml:"tblStyle"`
}

type xmlTableStyle struct {
	ID       string             `xml:"styleId,attr"`
	Name     string             `xml:"styleName,attr"`
	WholeTbl *xmlTablePartStyle `xml:"wholeTbl"`
	Band1H   *xmlTablePartStyle `xml:"band1H"`
	Band2H   *xmlTablePartStyle `xml:"band2H"`
	Band1V   *xmlTablePartStyle `xml:"band1V"`
	Band2V   *xmlTablePartStyle `xml:"band2V"`
	FirstRow *xmlTablePartStyle `xml:"firstRow"`
	LastRow  *xmlTablePartStyle `xml:"lastRow"`
	FirstCol *xmlTablePartStyle `xml:"firstCol"`
	LastCol  *xmlTablePartStyle `xml:"lastCol"`
}

type xmlTablePartStyle struct {
	TcTxStyle *xmlTableTextStyle `xml:"tcTxStyle"`
	TcStyle   *xmlTableCellStyle `xml:"tcStyle"`
}

type xmlTableTextStyle struct {
	B string `xml:"b,attr"`
	I string `xml:"i,attr"`
	xmlColor
}

type xmlTableCellStyle struct {
	Fill    *xmlFillProps `xml:"fill"`
	FillRef *xmlStyleRef  `xml:"fillRef"`
}
