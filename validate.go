package pptxscene

import (
	"fmt"
	"strings"
)

// Validate checks the converted scene for structural issues and returns an
// error describing all problems found, or nil if the document is valid.
// Slides that failed to convert are reported through Err, not here.
func (d *Document) Validate() error {
	var errs []string

	if d.Size.Width <= 0 {
		errs = append(errs, "canvas width must be positive")
	}
	if d.Size.Height <= 0 {
		errs = append(errs, "canvas height must be positive")
	}

	for i, slide := range d.Slides {
		prefix := fmt.Sprintf("slide %d", i+1)
		if slide == nil {
			errs = append(errs, prefix+": slide is nil")
			continue
		}
		if slide.Index != i {
			errs = append(errs, fmt.Sprintf("%s: index is %d", prefix, slide.Index))
		}
		if slide.Err != nil {
			continue
		}
		if slide.Fill == nil {
			errs = append(errs, prefix+": background is nil")
		}
		for _, e := range validateElements(slide.Elements) {
			errs = append(errs, prefix+": "+e)
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("validation failed:\n  %s", strings.Join(errs, "\n  "))
}

func validateElements(elements []Element) []string {
	var errs []string
	for j, e := range elements {
		prefix := fmt.Sprintf("element %d", j+1)
		if e == nil {
			errs = append(errs, prefix+": element is nil")
			continue
		}
		b := e.base()
		if b.Width < 0 {
			errs = append(errs, prefix+": width is negative")
		}
		if b.Height < 0 {
			errs = append(errs, prefix+": height is negative")
		}

		switch el := e.(type) {
		case *ShapeElement:
			if el.ShapeType == "" {
				errs = append(errs, prefix+": shape has no geometry")
			}
			if el.ShapeType == "custom" && len(el.Path) == 0 {
				errs = append(errs, prefix+": custom shape has no path")
			}
			errs = append(errs, validateText(el.Content, prefix)...)
		case *TextElement:
			errs = append(errs, validateText(el.Content, prefix)...)
		case *TableElement:
			for r, row := range el.Data {
				for k, cell := range row {
					if cell.RowSpan < 0 || cell.ColSpan < 0 {
						errs = append(errs, fmt.Sprintf("%s: cell %d,%d has a negative span", prefix, r+1, k+1))
					}
				}
			}
			if len(el.RowHeights) != len(el.Data) {
				errs = append(errs, prefix+": table row count mismatch")
			}
		case *ChartElement:
			if el.Data == nil {
				errs = append(errs, prefix+": chart has no data")
			}
			if rows, ok := el.Data.(XYRows); ok && len(rows)%2 != 0 {
				errs = append(errs, prefix+": scatter data must have an X and a Y row per series")
			}
		case *ImageElement:
			if el.Src == "" {
				errs = append(errs, prefix+": image has no source")
			}
		case *VideoElement:
			if el.Src == "" && el.Blob == "" {
				errs = append(errs, prefix+": video has no source")
			}
		case *AudioElement:
		case *GroupElement:
			for _, child := range validateElements(el.Elements) {
				errs = append(errs, prefix+": "+child)
			}
		case *DiagramElement:
			for _, child := range validateElements(el.Elements) {
				errs = append(errs, prefix+": "+child)
			}
		}
	}
	return errs
}

// validateText checks paragraphs for empty span lists.
func validateText(body *TextBody, prefix string) []string {
	if body == nil {
		return nil
	}
	var errs []string
	for i, p := range body.Paragraphs {
		if len(p.Spans) == 0 {
			errs = append(errs, fmt.Sprintf("%s: paragraph %d has no spans", prefix, i+1))
		}
	}
	return errs
}
