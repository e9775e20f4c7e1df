package pptxscene

import "encoding/json"

// Element is the interface that all scene elements implement. The set of
// implementations is closed: *ShapeElement, *TextElement, *ImageElement,
// *TableElement, *ChartElement, *VideoElement, *AudioElement,
// *DiagramElement and *GroupElement.
type Element interface {
	GetType() ElementType
	// base returns the underlying BaseElement (unexported, internal use only).
	base() *BaseElement
}

// ElementType is the JSON discriminator of an element.
type ElementType string

const (
	ElementTypeShape   ElementType = "shape"
	ElementTypeText    ElementType = "text"
	ElementTypeImage   ElementType = "image"
	ElementTypeTable   ElementType = "table"
	ElementTypeChart   ElementType = "chart"
	ElementTypeVideo   ElementType = "video"
	ElementTypeAudio   ElementType = "audio"
	ElementTypeDiagram ElementType = "diagram"
	ElementTypeGroup   ElementType = "group"
)

// BaseElement contains the box common to every element, in output units.
// Inside a group the box is first computed in the group's child space and
// then remapped into the parent space.
type BaseElement struct {
	ID     string  `json:"id,omitempty"`
	Name   string  `json:"name,omitempty"`
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Rotate float64 `json:"rotate"` // degrees
	FlipH  bool    `json:"isFlipH"`
	FlipV  bool    `json:"isFlipV"`
}

func (b *BaseElement) base() *BaseElement { return b }

// Bounds returns left, top, width and height.
func (b *BaseElement) Bounds() (left, top, width, height float64) {
	return b.Left, b.Top, b.Width, b.Height
}

// ShapeProperties is the resolved style shared by shapes and text boxes.
type ShapeProperties struct {
	Border
	// FillColor is a hex color, ColorNone, or empty when nothing is set.
	FillColor string `json:"fillColor"`
	// Fill describes gradient and picture fills.
	Fill       SlideFill         `json:"fill,omitempty"`
	Shadow     *Shadow           `json:"shadow,omitempty"`
	Content    *TextBody         `json:"content,omitempty"`
	VAlign     VerticalAlignment `json:"vAlign"`
	IsVertical bool              `json:"isVertical"`
	// Placeholder idx and type, when the shape is a placeholder.
	Idx    string `json:"idx,omitempty"`
	PhType string `json:"phType,omitempty"`
	Link   string `json:"link,omitempty"`
}

// ShapeElement is a preset or custom geometry shape.
type ShapeElement struct {
	BaseElement
	ShapeProperties
	// ShapeType is the preset geometry name, or "custom".
	ShapeType string `json:"shapType"`
	// Path is the outline of a custom shape relative to its box.
	Path Path `json:"path,omitempty"`
}

// TextElement is a text box or placeholder without explicit geometry.
type TextElement struct {
	BaseElement
	ShapeProperties
}

// ImageElement is a picture.
type ImageElement struct {
	BaseElement
	Src           string `json:"src"`
	NaturalWidth  int    `json:"naturalWidth,omitempty"`
	NaturalHeight int    `json:"naturalHeight,omitempty"`
	Link          string `json:"link,omitempty"`
}

// VideoElement is a video. Src is set for linked videos, Blob for embedded
// ones.
type VideoElement struct {
	BaseElement
	Src  string `json:"src,omitempty"`
	Blob string `json:"blob,omitempty"`
}

// AudioElement is an embedded audio clip.
type AudioElement struct {
	BaseElement
	Blob string `json:"blob,omitempty"`
}

func (*ShapeElement) GetType() ElementType { return ElementTypeShape }
func (*TextElement) GetType() ElementType  { return ElementTypeText }
func (*ImageElement) GetType() ElementType { return ElementTypeImage }
func (*VideoElement) GetType() ElementType { return ElementTypeVideo }
func (*AudioElement) GetType() ElementType { return ElementTypeAudio }

func (e *ShapeElement) MarshalJSON() ([]byte, error) {
	type alias ShapeElement
	return json.Marshal(struct {
		Type ElementType `json:"type"`
		*alias
	}{e.GetType(), (*alias)(e)})
}

func (e *TextElement) MarshalJSON() ([]byte, error) {
	type alias TextElement
	return json.Marshal(struct {
		Type ElementType `json:"type"`
		*alias
	}{e.GetType(), (*alias)(e)})
}

func (e *ImageElement) MarshalJSON() ([]byte, error) {
	type alias ImageElement
	return json.Marshal(struct {
		Type ElementType `json:"type"`
		*alias
	}{e.GetType(), (*alias)(e)})
}

func (e *VideoElement) MarshalJSON() ([]byte, error) {
	type alias VideoElement
	return json.Marshal(struct {
		Type ElementType `json:"type"`
		*alias
	}{e.GetType(), (*alias)(e)})
}

func (e *AudioElement) MarshalJSON() ([]byte, error) {
	type alias AudioElement
	return json.Marshal(struct {
		Type ElementType `json:"type"`
		*alias
	}{e.GetType(), (*alias)(e)})
}
