package pptxscene

import (
	"strings"
	"testing"
)

func TestValidateValidDocument(t *testing.T) {
	doc := &Document{
		Size: Size{Width: 960, Height: 540},
		Slides: []*Slide{{
			Index: 0,
			Fill:  &ColorFill{Value: "#ffffff"},
			Elements: []Element{
				&ShapeElement{ShapeType: "rect"},
				&GroupElement{Elements: []Element{&ImageElement{Src: "ppt/media/image1.png"}}},
				&ChartElement{Data: XYRows{{1, 2}, {3, 4}}},
			},
		}},
	}
	if err := doc.Validate(); err != nil {
		t.Errorf("expected valid document, got %v", err)
	}
}

func TestValidateReportsProblems(t *testing.T) {
	doc := &Document{
		Size: Size{Width: 0, Height: 540},
		Slides: []*Slide{
			{
				Index: 3,
				Elements: []Element{
					&ShapeElement{BaseElement: BaseElement{Width: -1}, ShapeType: "custom"},
					&TextElement{ShapeProperties: ShapeProperties{Content: &TextBody{Paragraphs: []Paragraph{{}}}}},
					&TableElement{Data: [][]TableCell{{{}}}},
					&ChartElement{Data: XYRows{{1}}},
					&GroupElement{Elements: []Element{&ImageElement{}}},
					&VideoElement{},
				},
			},
			nil,
		},
	}
	err := doc.Validate()
	if err == nil {
		t.Fatal("expected validation errors")
	}
	for _, want := range []string{
		"canvas width must be positive",
		"slide 1: index is 3",
		"slide 1: background is nil",
		"element 1: width is negative",
		"element 1: custom shape has no path",
		"element 2: paragraph 1 has no spans",
		"element 3: table row count mismatch",
		"element 4: scatter data",
		"element 5: element 1: image has no source",
		"element 6: video has no source",
		"slide 2: slide is nil",
	} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("expected %q in:\n%v", want, err)
		}
	}
}

func TestValidateSkipsFailedSlides(t *testing.T) {
	doc := &Document{
		Size:   Size{Width: 1, Height: 1},
		Slides: []*Slide{{Index: 0, Err: ErrMissingRelationship}},
	}
	if err := doc.Validate(); err != nil {
		t.Errorf("expected failed slides skipped, got %v", err)
	}
}
