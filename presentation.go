// Package pptxscene converts PowerPoint presentation files (.pptx) into a
// render-agnostic scene description: an ordered list of slides, each a tree
// of positioned shapes, text, images, tables, charts and groups.
//
// Every inherited attribute (position, fill, border, font, alignment) is
// resolved through the slide, layout and master parts and the theme, so a
// renderer can paint the result without reading the package again.
//
// See the Version variable for the current library version.
package pptxscene

import (
	"errors"
	"fmt"
	"strings"
)

// Document is a converted presentation.
type Document struct {
	Slides []*Slide `json:"slides"`
	Size   Size     `json:"size"`
	// Layout names the slide size, such as screen16x9 or custom.
	Layout     string      `json:"layout,omitempty"`
	Properties *Properties `json:"properties,omitempty"`
}

// Size is a width/height pair in output units.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Slide is one converted slide. Elements are in paint order.
type Slide struct {
	Index    int       `json:"index"`
	Part     string    `json:"part"`
	Hidden   bool      `json:"hidden,omitempty"`
	Fill     SlideFill `json:"fill"`
	Elements []Element `json:"elements"`
	// Warnings lists element-level problems that were recovered from.
	Warnings []string `json:"warnings,omitempty"`
	// Err is set when the slide could not be converted. Such a slide has
	// no elements.
	Err error `json:"-"`
}

// SlideCount returns the number of slides.
func (d *Document) SlideCount() int {
	return len(d.Slides)
}

// GetSlide returns a slide by index.
func (d *Document) GetSlide(index int) (*Slide, error) {
	if index < 0 || index >= len(d.Slides) {
		return nil, errOutOfRange
	}
	return d.Slides[index], nil
}

// Err joins the errors of every failed slide, or returns nil.
func (d *Document) Err() error {
	var errs []error
	for _, s := range d.Slides {
		if s != nil && s.Err != nil {
			errs = append(errs, fmt.Errorf("slide %d (%s): %w", s.Index+1, s.Part, s.Err))
		}
	}
	return errors.Join(errs...)
}

// ExtractText returns all text content of the document, one line per
// paragraph. Useful for search/indexing.
func (d *Document) ExtractText() string {
	var parts []string
	for _, slide := range d.Slides {
		if text := slide.ExtractText(); text != "" {
			parts = append(parts, text)
		}
	}
	return joinNonEmpty(parts, "\n")
}

// ExtractText returns the text of every element on the slide.
func (s *Slide) ExtractText() string {
	var parts []string
	walkElements(s.Elements, func(e Element) {
		switch e := e.(type) {
		case *TextElement:
			parts = append(parts, e.Content.PlainText())
		case *ShapeElement:
			parts = append(parts, e.Content.PlainText())
		case *TableElement:
			for _, row := range e.Data {
				for _, cell := range row {
					parts = append(parts, cell.Text.PlainText())
				}
			}
		}
	})
	return joinNonEmpty(parts, "\n")
}

// walkElements calls fn for every element, descending into groups and
// diagrams.
func walkElements(elements []Element, fn func(Element)) {
	for _, e := range elements {
		fn(e)
		switch e := e.(type) {
		case *GroupElement:
			walkElements(e.Elements, fn)
		case *DiagramElement:
			walkElements(e.Elements, fn)
		}
	}
}

func joinNonEmpty(parts []string, sep string) string {
	var result []string
	for _, p := range parts {
		if p != "" {
			result = append(result, p)
		}
	}
	return strings.Join(result, sep)
}
