package pptxscene

import "encoding/json"

// HorizontalAlignment is a paragraph alignment.
type HorizontalAlignment string

const (
	AlignLeft    HorizontalAlignment = "left"
	AlignCenter  HorizontalAlignment = "center"
	AlignRight   HorizontalAlignment = "right"
	AlignJustify HorizontalAlignment = "justify"
)

// VerticalAlignment is a text body anchor.
type VerticalAlignment string

const (
	AlignUp   VerticalAlignment = "up"
	AlignMid  VerticalAlignment = "mid"
	AlignDown VerticalAlignment = "down"
)

// Border types.
const (
	BorderSolid  = "solid"
	BorderDashed = "dashed"
	BorderDotted = "dotted"
)

// Border is a resolved outline.
type Border struct {
	Color           string  `json:"borderColor"`
	Width           float64 `json:"borderWidth"`
	Type            string  `json:"borderType"`
	StrokeDasharray string  `json:"borderStrokeDasharray"`
}

// Shadow is a resolved outer shadow.
type Shadow struct {
	H     float64 `json:"h"`
	V     float64 `json:"v"`
	Blur  float64 `json:"blur"`
	Color string  `json:"color"`
}

// TextStyle is the resolved style of a text span.
type TextStyle struct {
	Color string `json:"color"`
	// Size is in SizeUnit: "pt" when the font size factor is 1, else "px".
	Size          float64 `json:"fontSize"`
	SizeUnit      string  `json:"fontSizeUnit"`
	Family        string  `json:"fontFamily,omitempty"`
	Bold          bool    `json:"bold,omitempty"`
	Italic        bool    `json:"italic,omitempty"`
	Underline     bool    `json:"underline,omitempty"`
	Strike        bool    `json:"strike,omitempty"`
	VerticalAlign string  `json:"verticalAlign,omitempty"` // "super" or "sub"
	LetterSpacing float64 `json:"letterSpacing,omitempty"`
	Shadow        *Shadow `json:"shadow,omitempty"`
}

// SlideFill is a slide background or a shape fill: *ColorFill,
// *GradientFill or *ImageFill.
type SlideFill interface {
	fillType() string
}

// ColorFill is a solid color.
type ColorFill struct {
	Value string
}

// GradientStop is one color stop of a gradient. Pos is a percentage string
// such as "50%".
type GradientStop struct {
	Pos   string `json:"pos"`
	Color string `json:"color"`
}

// GradientFill is a linear gradient. Rot is in degrees.
type GradientFill struct {
	Rot    float64        `json:"rot"`
	Colors []GradientStop `json:"colors"`
}

// ImageFill is a picture fill.
type ImageFill struct {
	Picture string  `json:"picture"`
	Opacity float64 `json:"opacity"`
}

func (*ColorFill) fillType() string    { return "color" }
func (*GradientFill) fillType() string { return "gradient" }
func (*ImageFill) fillType() string    { return "image" }

func marshalFill(kind string, value any) ([]byte, error) {
	return json.Marshal(struct {
		Type  string `json:"type"`
		Value any    `json:"value"`
	}{kind, value})
}

func (f *ColorFill) MarshalJSON() ([]byte, error) {
	return marshalFill(f.fillType(), f.Value)
}

func (f *GradientFill) MarshalJSON() ([]byte, error) {
	type alias GradientFill
	return marshalFill(f.fillType(), (*alias)(f))
}

func (f *ImageFill) MarshalJSON() ([]byte, error) {
	type alias ImageFill
	return marshalFill(f.fillType(), (*alias)(f))
}
