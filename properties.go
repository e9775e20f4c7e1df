package pptxscene

import (
	"strings"
	"time"
)

// Properties is the document metadata of docProps/core.xml.
type Properties struct {
	Title       string     `json:"title,omitempty"`
	Subject     string     `json:"subject,omitempty"`
	Creator     string     `json:"creator,omitempty"`
	Keywords    string     `json:"keywords,omitempty"`
	Description string     `json:"description,omitempty"`
	Modified    *time.Time `json:"modified,omitempty"`
}

// Standard slide size names.
const (
	LayoutScreen4x3   = "screen4x3"
	LayoutScreen16x9  = "screen16x9"
	LayoutScreen16x10 = "screen16x10"
	LayoutA4          = "A4"
	LayoutCustom      = "custom"
)

const corePropertiesPart = "docProps/core.xml"

type xmlCoreProperties struct {
	Title       string `xml:"title"`
	Subject     string `xml:"subject"`
	Creator     string `xml:"creator"`
	Keywords    string `xml:"keywords"`
	Description string `xml:"description"`
	Modified    string `xml:"modified"`
}

// layoutName names a slide size. The declared type wins when it is one of
// the standard names; otherwise the EMU extent is matched.
func layoutName(declared string, cx, cy int64) string {
	switch declared {
	case "screen4x3", "screen16x9", "screen16x10", "A4":
		return declared
	}
	switch {
	case cx == 9144000 && cy == 6858000:
		return LayoutScreen4x3
	case cx == 12192000 && cy == 6858000, cx == 9144000 && cy == 5143500:
		return LayoutScreen16x9
	case cx == 10972800 && cy == 6858000, cx == 9144000 && cy == 5715000:
		return LayoutScreen16x10
	case cx == 9906000 && cy == 6858000:
		return LayoutA4
	}
	return LayoutCustom
}

// readProperties decodes the core properties part. A missing part yields
// nil; an unreadable one is logged and skipped.
func (p *pptxPackage) readProperties() *Properties {
	if !p.has(corePropertiesPart) {
		return nil
	}
	var core xmlCoreProperties
	if err := p.decodePart(corePropertiesPart, &core); err != nil {
		p.log.Debug("core properties unreadable", "part", corePropertiesPart, "error", err)
		return nil
	}
	props := &Properties{
		Title:       strings.TrimSpace(core.Title),
		Subject:     strings.TrimSpace(core.Subject),
		Creator:     strings.TrimSpace(core.Creator),
		Keywords:    strings.TrimSpace(core.Keywords),
		Description: strings.TrimSpace(core.Description),
	}
	if t, err := time.Parse(time.RFC3339, strings.TrimSpace(core.Modified)); err == nil {
		props.Modified = &t
	}
	return props
}
