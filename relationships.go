package pptxscene

import (
	"encoding/xml"
	"fmt"
	"path"
	"strings"
)

// Relationship kinds, the last segment of the type URI.
const (
	relSlideLayout    = "slideLayout"
	relSlideMaster    = "slideMaster"
	relTheme          = "theme"
	relTableStyles    = "tableStyles"
	relSlide          = "slide"
	relHyperlink      = "hyperlink"
	relChart          = "chart"
	relDiagramData    = "diagramData"
	relDiagramDrawing = "diagramDrawing"
)

type xmlRelForRead struct {
	ID         string `xml:"Id,attr"`
	Type       string `xml:"Type,attr"`
	Target     string `xml:"Target,attr"`
	TargetMode string `xml:"TargetMode,attr"`
}

type xmlRelsForRead struct {
	XMLName       xml.Name        `xml:"Relationships"`
	Relationships []xmlRelForRead `xml:"Relationship"`
}

// Relationship is one resolved entry of a part's relationship map.
type Relationship struct {
	ID       string
	Kind     string // e.g. "slideLayout", "image", "hyperlink"
	Target   string // package part name, or the verbatim target when External
	External bool
}

// relationshipMap is the id to target map of a single part. Ids are only
// meaningful against the part that declared them.
type relationshipMap struct {
	part  string
	byID  map[string]Relationship
	order []Relationship
}

func newRelationshipMap(part string, rels []xmlRelForRead) *relationshipMap {
	m := &relationshipMap{
		part: part,
		byID: make(map[string]Relationship, len(rels)),
	}
	dir := path.Dir(part)
	for _, rel := range rels {
		r := Relationship{
			ID:       rel.ID,
			Kind:     relationKind(rel.Type),
			External: strings.EqualFold(rel.TargetMode, "External"),
		}
		if r.External {
			r.Target = rel.Target
		} else {
			r.Target = resolveRelativePath(dir, rel.Target)
		}
		if _, dup := m.byID[r.ID]; dup {
			continue
		}
		m.byID[r.ID] = r
		m.order = append(m.order, r)
	}
	return m
}

// lookup resolves id, reporting ErrUnresolvedReference when absent.
func (m *relationshipMap) lookup(id string) (Relationship, error) {
	if m != nil {
		if r, ok := m.byID[id]; ok {
			return r, nil
		}
	}
	part := ""
	if m != nil {
		part = m.part
	}
	return Relationship{}, unresolvedReference(part, id)
}

// ofKind returns the first relationship of kind in document order.
func (m *relationshipMap) ofKind(kind string) (Relationship, bool) {
	if m == nil {
		return Relationship{}, false
	}
	for _, r := range m.order {
		if r.Kind == kind {
			return r, true
		}
	}
	return Relationship{}, false
}

// allOfKind returns every relationship of kind in document order.
func (m *relationshipMap) allOfKind(kind string) []Relationship {
	if m == nil {
		return nil
	}
	var out []Relationship
	for _, r := range m.order {
		if r.Kind == kind {
			out = append(out, r)
		}
	}
	return out
}

// relationKind returns the last path segment of a relationship type URI.
func relationKind(typeURI string) string {
	return lastPathComponent(typeURI)
}

// relsPathFor returns the relationship part of a part:
// "ppt/slides/slide1.xml" -> "ppt/slides/_rels/slide1.xml.rels".
func relsPathFor(part string) string {
	dir, name := path.Split(part)
	return dir + "_rels/" + name + ".rels"
}

func lastPathComponent(p string) string {
	parts := strings.Split(p, "/")
	return parts[len(parts)-1]
}

// resolveRelativePath resolves rel against the directory base. Absolute
// targets are package rooted. The result never escapes the package root.
func resolveRelativePath(base, rel string) string {
	if strings.HasPrefix(rel, "/") {
		return strings.TrimPrefix(path.Clean(rel), "/")
	}

	baseParts := strings.Split(base, "/")
	relParts := strings.Split(rel, "/")

	result := make([]string, 0, len(baseParts)+len(relParts))
	for _, part := range baseParts {
		if part != "" && part != "." {
			result = append(result, part)
		}
	}

	for _, part := range relParts {
		if part == ".." {
			if len(result) > 0 {
				result = result[:len(result)-1]
			}
		} else if part != "." && part != "" {
			result = append(result, part)
		}
	}

	resolved := strings.Join(result, "/")

	// Targets that walked out of every known top-level folder are pinned
	// under ppt/.
	if !strings.HasPrefix(resolved, "ppt/") && !strings.HasPrefix(resolved, "docProps/") &&
		resolved != "[Content_Types].xml" && !strings.HasPrefix(resolved, "_rels/") &&
		!strings.HasPrefix(resolved, "customXml/") {
		return "ppt/" + resolved
	}

	return resolved
}

// readRelationships loads the relationship map of part. A part without a
// relationship part has an empty map.
func (p *pptxPackage) readRelationships(part string) (*relationshipMap, error) {
	relsPath := relsPathFor(part)
	if !p.has(relsPath) {
		return newRelationshipMap(part, nil), nil
	}
	var rels xmlRelsForRead
	if err := p.decodePart(relsPath, &rels); err != nil {
		return nil, err
	}
	return newRelationshipMap(part, rels.Relationships), nil
}

// slideChain is a slide with its layout and master ancestors and the theme
// that applies to them.
type slideChain struct {
	slide  *slidePart
	layout *slidePart
	master *slidePart
	theme  *Theme
}

// resolveChain walks slide -> layout -> master (-> theme). A missing layout
// or master relationship is fatal for the slide.
func (p *pptxPackage) resolveChain(slideName string) (*slideChain, error) {
	slide, err := p.loadSlidePart(slideName)
	if err != nil {
		return nil, err
	}
	layoutRel, ok := slide.rels.ofKind(relSlideLayout)
	if !ok {
		return nil, missingRelationship(slideName, relSlideLayout)
	}
	layout, err := p.loadSharedPart(layoutRel.Target)
	if err != nil {
		return nil, fmt.Errorf("failed to load layout of %s: %w", slideName, err)
	}
	masterRel, ok := layout.rels.ofKind(relSlideMaster)
	if !ok {
		return nil, missingRelationship(layout.name, relSlideMaster)
	}
	master, err := p.loadSharedPart(masterRel.Target)
	if err != nil {
		return nil, fmt.Errorf("failed to load master of %s: %w", slideName, err)
	}

	theme := p.theme
	if themeRel, ok := master.rels.ofKind(relTheme); ok {
		t, err := p.loadTheme(themeRel.Target)
		if err != nil {
			p.log.Debug("master theme unreadable, using package theme",
				"part", themeRel.Target, "error", err)
		} else {
			theme = t
		}
	}

	return &slideChain{
		slide:  slide,
		layout: layout,
		master: master,
		theme:  theme,
	}, nil
}
