package shape

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecode_Rect(t *testing.T) {
	req := require.New(t)

	s, err := Decode([]byte(`{"type":"rect","x":10,"y":20,"width":-30,"height":40}`))

	req.NoError(err)
	req.Equal(KindRect, s.Kind)
	req.NotNil(s.Rect)
	req.Equal(10.0, s.Rect.X)
	req.Equal(20.0, s.Rect.Y)
	// negative width encodes drag direction, it is not an error
	req.Equal(-30.0, s.Rect.Width)
	req.Equal(40.0, s.Rect.Height)
}

func TestDecode_Circle(t *testing.T) {
	req := require.New(t)

	s, err := Decode([]byte(`{"type":"circle","centerX":5,"centerY":6,"radius":7.5}`))

	req.NoError(err)
	req.Equal(KindCircle, s.Kind)
	req.NotNil(s.Circle)
	req.Equal(7.5, s.Circle.Radius)
}

func TestDecode_Circle_ZeroRadius(t *testing.T) {
	req := require.New(t)

	s, err := Decode([]byte(`{"type":"circle","centerX":0,"centerY":0,"radius":0}`))

	req.NoError(err)
	req.Equal(0.0, s.Circle.Radius)
}

func TestDecode_Circle_NegativeRadius(t *testing.T) {
	req := require.New(t)

	_, err := Decode([]byte(`{"type":"circle","centerX":0,"centerY":0,"radius":-1}`))

	req.ErrorIs(err, ErrNegativeRadius)
}

func TestDecode_Pencil(t *testing.T) {
	req := require.New(t)

	s, err := Decode([]byte(`{"type":"pencil","points":[{"x":1,"y":2},{"x":3,"y":4},{"x":5,"y":6}]}`))

	req.NoError(err)
	req.Equal(KindPencil, s.Kind)
	req.Len(s.Pencil.Points, 3)
	req.Equal(Point{X: 3, Y: 4}, s.Pencil.Points[1])
}

func TestDecode_Pencil_TooFewPoints(t *testing.T) {
	req := require.New(t)

	_, err := Decode([]byte(`{"type":"pencil","points":[{"x":1,"y":2}]}`))

	req.ErrorIs(err, ErrTooFewPoints)
}

func TestDecode_UnknownType(t *testing.T) {
	req := require.New(t)

	_, err := Decode([]byte(`{"type":"triangle","x":1}`))

	req.ErrorIs(err, ErrUnknownKind)
}

func TestDecode_MissingType(t *testing.T) {
	req := require.New(t)

	_, err := Decode([]byte(`{"x":1,"y":2}`))

	req.ErrorIs(err, ErrUnknownKind)
}

func TestDecode_RejectsForeignVariantFields(t *testing.T) {
	req := require.New(t)

	// a rect carrying a circle field must not pass
	_, err := Decode([]byte(`{"type":"rect","x":1,"y":2,"width":3,"height":4,"radius":5}`))

	req.Error(err)
}

func TestDecode_RejectsUnknownFields(t *testing.T) {
	req := require.New(t)

	_, err := Decode([]byte(`{"type":"circle","centerX":1,"centerY":2,"radius":3,"color":"red"}`))

	req.Error(err)
}

func TestDecode_InvalidJSON(t *testing.T) {
	req := require.New(t)

	_, err := Decode([]byte(`{"type":"rect"`))

	req.Error(err)
}

func TestMarshal_RoundTrip(t *testing.T) {
	req := require.New(t)

	inputs := []string{
		`{"type":"rect","x":1,"y":2,"width":3,"height":4}`,
		`{"type":"circle","centerX":1,"centerY":2,"radius":3}`,
		`{"type":"pencil","points":[{"x":1,"y":2},{"x":3,"y":4}]}`,
	}

	for _, input := range inputs {
		decoded, err := Decode([]byte(input))
		req.NoError(err)

		encoded, err := json.Marshal(decoded)
		req.NoError(err)

		again, err := Decode(encoded)
		req.NoError(err)
		req.Equal(decoded, again)
	}
}

func TestMarshal_UnsetVariant(t *testing.T) {
	req := require.New(t)

	_, err := json.Marshal(Shape{})

	req.Error(err)
}
