/*
Package shape defines the wire and storage representation of drawable shapes.

A shape is a tagged union: the "type" field selects the variant (rect, circle
or pencil) and determines which other fields may appear. Decoding is strict:
fields belonging to a different variant, or unknown fields, are rejected so a
payload can never mix variants.
*/
package shape

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Kind is the variant tag of a shape.
type Kind string

const (
	KindRect   Kind = "rect"
	KindCircle Kind = "circle"
	KindPencil Kind = "pencil"
)

var (
	// ErrUnknownKind is returned for a missing or unrecognized type tag.
	ErrUnknownKind = errors.New("shape: unknown or missing type tag")

	// ErrNegativeRadius is returned for a circle with radius < 0.
	ErrNegativeRadius = errors.New("shape: circle radius must be >= 0")

	// ErrTooFewPoints is returned for a pencil stroke with fewer than two points.
	ErrTooFewPoints = errors.New("shape: pencil stroke needs at least 2 points")
)

// Point is one coordinate of a freehand stroke.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Rect is an axis-aligned rectangle. Width and height may be negative,
// encoding the drag direction.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Circle is a circle around a center point.
type Circle struct {
	CenterX float64 `json:"centerX"`
	CenterY float64 `json:"centerY"`
	Radius  float64 `json:"radius"`
}

// Pencil is an ordered freehand stroke.
type Pencil struct {
	Points []Point `json:"points"`
}

// Shape holds exactly one variant, selected by Kind.
type Shape struct {
	Kind   Kind
	Rect   *Rect
	Circle *Circle
	Pencil *Pencil
}

type rectWire struct {
	Type   Kind    `json:"type"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type circleWire struct {
	Type    Kind    `json:"type"`
	CenterX float64 `json:"centerX"`
	CenterY float64 `json:"centerY"`
	Radius  float64 `json:"radius"`
}

type pencilWire struct {
	Type   Kind    `json:"type"`
	Points []Point `json:"points"`
}

// Decode parses and validates a serialized shape.
func Decode(data []byte) (Shape, error) {
	var s Shape
	err := s.UnmarshalJSON(data)
	return s, err
}

// UnmarshalJSON implements json.Unmarshaler. It reads the type tag first,
// then strictly decodes the matching variant.
func (s *Shape) UnmarshalJSON(data []byte) error {
	var tag struct {
		Type Kind `json:"type"`
	}
	if err := json.Unmarshal(data, &tag); err != nil {
		return fmt.Errorf("shape: %w", err)
	}

	switch tag.Type {
	case KindRect:
		var w rectWire
		if err := strictUnmarshal(data, &w); err != nil {
			return err
		}
		*s = Shape{Kind: KindRect, Rect: &Rect{X: w.X, Y: w.Y, Width: w.Width, Height: w.Height}}

	case KindCircle:
		var w circleWire
		if err := strictUnmarshal(data, &w); err != nil {
			return err
		}
		if w.Radius < 0 {
			return ErrNegativeRadius
		}
		*s = Shape{Kind: KindCircle, Circle: &Circle{CenterX: w.CenterX, CenterY: w.CenterY, Radius: w.Radius}}

	case KindPencil:
		var w pencilWire
		if err := strictUnmarshal(data, &w); err != nil {
			return err
		}
		if len(w.Points) < 2 {
			return ErrTooFewPoints
		}
		*s = Shape{Kind: KindPencil, Pencil: &Pencil{Points: w.Points}}

	default:
		return ErrUnknownKind
	}

	return nil
}

// MarshalJSON implements json.Marshaler, producing the tagged wire form.
func (s Shape) MarshalJSON() ([]byte, error) {
	switch s.Kind {
	case KindRect:
		if s.Rect == nil {
			return nil, fmt.Errorf("shape: rect variant with nil body")
		}
		return json.Marshal(rectWire{Type: KindRect, X: s.Rect.X, Y: s.Rect.Y, Width: s.Rect.Width, Height: s.Rect.Height})

	case KindCircle:
		if s.Circle == nil {
			return nil, fmt.Errorf("shape: circle variant with nil body")
		}
		return json.Marshal(circleWire{Type: KindCircle, CenterX: s.Circle.CenterX, CenterY: s.Circle.CenterY, Radius: s.Circle.Radius})

	case KindPencil:
		if s.Pencil == nil {
			return nil, fmt.Errorf("shape: pencil variant with nil body")
		}
		return json.Marshal(pencilWire{Type: KindPencil, Points: s.Pencil.Points})

	default:
		return nil, ErrUnknownKind
	}
}

// strictUnmarshal decodes data into dst, rejecting unknown fields and
// trailing content.
func strictUnmarshal(data []byte, dst any) error {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("shape: %w", err)
	}

	if decoder.More() {
		return fmt.Errorf("shape: trailing content after payload")
	}

	return nil
}
