package state

import (
	"github.com/google/uuid"
)

// ObjectType discriminates the CanvasObject union.
type ObjectType string

const (
	TypeInk   ObjectType = "ink"
	TypeShape ObjectType = "shape"
	TypeText  ObjectType = "text"
)

// InkTool is the pen variant recorded on an ink object.
type InkTool string

const (
	InkPen    InkTool = "pen"
	InkEraser InkTool = "eraser"
)

// ShapeName selects the geometry of a shape object.
type ShapeName string

const (
	ShapeRectangle ShapeName = "rectangle"
	ShapeOval      ShapeName = "oval"
)

// Minimum committed dimensions. Shapes clamp to a small square so a click
// still yields something visible; text fields need a bit more room to stay
// legible and clickable.
const (
	ShapeMinWidth  = 5.0
	ShapeMinHeight = 5.0
	TextMinWidth   = 20.0
	TextMinHeight  = 16.0
)

// NoSelection is the sentinel selected-id meaning nothing is selected.
const NoSelection = ""

// DefaultText is the placeholder content of a freshly created text field.
const DefaultText = "Text"

// CanvasObject is one drawable entity. Which fields are meaningful depends
// on Type; the json tags produce the persisted record shape.
type CanvasObject struct {
	ID   string     `json:"id"`
	Type ObjectType `json:"type"`

	// ink
	Tool   InkTool   `json:"tool,omitempty"`
	Points []float64 `json:"points,omitempty"` // flattened [x0,y0,x1,y1,...]

	// shape and text geometry; X,Y is the top-left anchor
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`

	Stroke      string  `json:"stroke,omitempty"`
	StrokeWidth float64 `json:"strokeWidth,omitempty"`
	Fill        string  `json:"fill,omitempty"`

	// shape
	ShapeName ShapeName `json:"shapeName,omitempty"`
	Rotation  float64   `json:"rotation,omitempty"`

	// text
	Text       string  `json:"text,omitempty"`
	FontSize   float64 `json:"fontSize,omitempty"`
	FontFamily string  `json:"fontFamily,omitempty"`
}

// NewID returns a fresh object id. Ids are never reused, even after the
// object is deleted.
func NewID() string {
	return uuid.NewString()
}

// NewInk creates an ink object with a single starting point.
func NewInk(tool InkTool, x, y float64, stroke string, strokeWidth float64) CanvasObject {
	return CanvasObject{
		ID:          NewID(),
		Type:        TypeInk,
		Tool:        tool,
		Points:      []float64{x, y},
		Stroke:      stroke,
		StrokeWidth: strokeWidth,
	}
}

// NewShape creates a rectangle or oval anchored at (x, y) with clamped
// minimum dimensions.
func NewShape(name ShapeName, x, y float64, stroke string, strokeWidth float64) CanvasObject {
	o := CanvasObject{
		ID:          NewID(),
		Type:        TypeShape,
		ShapeName:   name,
		X:           x,
		Y:           y,
		Stroke:      stroke,
		StrokeWidth: strokeWidth,
	}
	o.SetSize(0, 0)
	return o
}

// NewText creates a text field anchored at (x, y) with placeholder content
// and clamped minimum dimensions.
func NewText(x, y float64, fill string) CanvasObject {
	o := CanvasObject{
		ID:         NewID(),
		Type:       TypeText,
		X:          x,
		Y:          y,
		Text:       DefaultText,
		FontSize:   16,
		FontFamily: "sans-serif",
		Fill:       fill,
	}
	o.SetSize(0, 0)
	return o
}

// MinSize returns the minimum width and height for the object's type.
// Ink objects have no size floor.
func (o *CanvasObject) MinSize() (w, h float64) {
	switch o.Type {
	case TypeShape:
		return ShapeMinWidth, ShapeMinHeight
	case TypeText:
		return TextMinWidth, TextMinHeight
	}
	return 0, 0
}

// SetSize assigns width and height, clamping both to the type minimum.
// Every code path that sizes an object goes through here, including
// interactive resize, so a CanvasObject can never carry a sub-minimum or
// negative dimension.
func (o *CanvasObject) SetSize(w, h float64) {
	minW, minH := o.MinSize()
	if w < minW {
		w = minW
	}
	if h < minH {
		h = minH
	}
	o.Width = w
	o.Height = h
}

// AppendPoint adds one coordinate pair to an ink object's path.
func (o *CanvasObject) AppendPoint(x, y float64) {
	o.Points = append(o.Points, x, y)
}

// Clone returns a deep copy; the points slice is not shared.
func (o CanvasObject) Clone() CanvasObject {
	c := o
	if o.Points != nil {
		c.Points = make([]float64, len(o.Points))
		copy(c.Points, o.Points)
	}
	return c
}

func cloneObjects(objects []CanvasObject) []CanvasObject {
	out := make([]CanvasObject, len(objects))
	for i, o := range objects {
		out[i] = o.Clone()
	}
	return out
}
