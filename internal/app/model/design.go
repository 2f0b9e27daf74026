package model

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Transform places an uploaded image on the mockup, in the same normalized
// coordinate space as PrintAreaRect. Rotation is in degrees.
type Transform struct {
	Scale    float64 `json:"scale"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Rotation float64 `json:"rotation"`
}

// PrintAreaRect is a printable rectangle expressed as fractions of the mockup image.
type PrintAreaRect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// DesignSize is the design's own size before scaling, in relative units.
type DesignSize struct {
	Width  float64
	Height float64
}

// Scalar holds one JSON scalar exactly as the client sent it. Numbers may
// arrive as strings and the other way around; coercion happens on read.
type Scalar struct {
	raw json.RawMessage
}

func (s *Scalar) UnmarshalJSON(b []byte) error {
	s.raw = append(s.raw[:0], b...)
	return nil
}

func (s Scalar) MarshalJSON() ([]byte, error) {
	if len(s.raw) == 0 {
		return []byte("null"), nil
	}
	return s.raw, nil
}

// NewScalar builds a Scalar from a Go value. Used by tests and AsSubmission.
func NewScalar(v interface{}) Scalar {
	b, err := json.Marshal(v)
	if err != nil {
		return Scalar{}
	}
	return Scalar{raw: b}
}

// IsNull reports whether the value is absent or JSON null.
func (s *Scalar) IsNull() bool {
	return s == nil || len(s.raw) == 0 || bytes.Equal(bytes.TrimSpace(s.raw), []byte("null"))
}

// Float returns the value as a finite float. Numeric strings are accepted.
func (s *Scalar) Float() (float64, bool) {
	if s.IsNull() {
		return 0, false
	}
	var f float64
	if err := json.Unmarshal(s.raw, &f); err != nil {
		str, ok := s.Text()
		if !ok {
			return 0, false
		}
		f, err = strconv.ParseFloat(strings.TrimSpace(str), 64)
		if err != nil {
			return 0, false
		}
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// Text returns string values as-is and numbers/booleans in their JSON form.
func (s *Scalar) Text() (string, bool) {
	if s.IsNull() {
		return "", false
	}
	var str string
	if err := json.Unmarshal(s.raw, &str); err == nil {
		return str, true
	}
	trimmed := bytes.TrimSpace(s.raw)
	if len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[') {
		return "", false
	}
	return string(trimmed), true
}

// RawTransform is applied_transform as received. Malformed is set when the
// field was present but not a JSON object.
type RawTransform struct {
	Scale     *Scalar
	X         *Scalar
	Y         *Scalar
	Rotation  *Scalar
	Malformed bool
}

type rawTransformFields struct {
	Scale    *Scalar `json:"scale,omitempty"`
	X        *Scalar `json:"x,omitempty"`
	Y        *Scalar `json:"y,omitempty"`
	Rotation *Scalar `json:"rotation,omitempty"`
}

func (t *RawTransform) UnmarshalJSON(b []byte) error {
	if !isObject(b) {
		*t = RawTransform{Malformed: true}
		return nil
	}
	var f rawTransformFields
	if err := json.Unmarshal(b, &f); err != nil {
		*t = RawTransform{Malformed: true}
		return nil
	}
	*t = RawTransform{Scale: f.Scale, X: f.X, Y: f.Y, Rotation: f.Rotation}
	return nil
}

func (t RawTransform) MarshalJSON() ([]byte, error) {
	return json.Marshal(rawTransformFields{Scale: t.Scale, X: t.X, Y: t.Y, Rotation: t.Rotation})
}

// Resolve coerces the transform to floats, filling scale=1 and x=y=rotation=0
// for missing or unreadable fields.
func (t *RawTransform) Resolve() Transform {
	out := Transform{Scale: 1}
	if t == nil || t.Malformed {
		return out
	}
	if v, ok := t.Scale.Float(); ok {
		out.Scale = v
	}
	if v, ok := t.X.Float(); ok {
		out.X = v
	}
	if v, ok := t.Y.Float(); ok {
		out.Y = v
	}
	if v, ok := t.Rotation.Float(); ok {
		out.Rotation = v
	}
	return out
}

// RawPrintArea is print_area_meta as received.
type RawPrintArea struct {
	X         *Scalar
	Y         *Scalar
	W         *Scalar
	H         *Scalar
	Malformed bool
}

type rawPrintAreaFields struct {
	X *Scalar `json:"x,omitempty"`
	Y *Scalar `json:"y,omitempty"`
	W *Scalar `json:"w,omitempty"`
	H *Scalar `json:"h,omitempty"`
}

func (p *RawPrintArea) UnmarshalJSON(b []byte) error {
	if !isObject(b) {
		*p = RawPrintArea{Malformed: true}
		return nil
	}
	var f rawPrintAreaFields
	if err := json.Unmarshal(b, &f); err != nil {
		*p = RawPrintArea{Malformed: true}
		return nil
	}
	*p = RawPrintArea{X: f.X, Y: f.Y, W: f.W, H: f.H}
	return nil
}

func (p RawPrintArea) MarshalJSON() ([]byte, error) {
	return json.Marshal(rawPrintAreaFields{X: p.X, Y: p.Y, W: p.W, H: p.H})
}

// Resolve coerces the record to floats with defaults x=y=0, w=h=1.
func (p *RawPrintArea) Resolve() PrintAreaRect {
	out := PrintAreaRect{W: 1, H: 1}
	if p == nil || p.Malformed {
		return out
	}
	if v, ok := p.X.Float(); ok {
		out.X = v
	}
	if v, ok := p.Y.Float(); ok {
		out.Y = v
	}
	if v, ok := p.W.Float(); ok {
		out.W = v
	}
	if v, ok := p.H.Float(); ok {
		out.H = v
	}
	return out
}

// AttachmentList is attachment_ids as received.
type AttachmentList struct {
	IDs       []Scalar
	Malformed bool
}

func (a *AttachmentList) UnmarshalJSON(b []byte) error {
	trimmed := bytes.TrimSpace(b)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		*a = AttachmentList{Malformed: true}
		return nil
	}
	var ids []Scalar
	if err := json.Unmarshal(trimmed, &ids); err != nil {
		*a = AttachmentList{Malformed: true}
		return nil
	}
	*a = AttachmentList{IDs: ids}
	return nil
}

func (a AttachmentList) MarshalJSON() ([]byte, error) {
	if a.IDs == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(a.IDs)
}

// DesignSubmission is the buyer's design payload before sanitization.
// Required fields are pointers so absence is distinguishable from zero.
type DesignSubmission struct {
	AttachmentIDs    *AttachmentList `json:"attachment_ids,omitempty"`
	AppliedTransform *RawTransform   `json:"applied_transform,omitempty"`
	PrintAreaMeta    *RawPrintArea   `json:"print_area_meta,omitempty"`

	// optional
	PreviewURL  *Scalar `json:"preview_url,omitempty"`
	PrintType   *Scalar `json:"print_type,omitempty"`
	FabricType  *Scalar `json:"fabric_type,omitempty"`
	Color       *Scalar `json:"color,omitempty"`
	VariationID *Scalar `json:"variation_id,omitempty"`
	Width       *Scalar `json:"width,omitempty"`
	Height      *Scalar `json:"height,omitempty"`
}

// Size returns width/height as floats, zero when absent.
func (d *DesignSubmission) Size() DesignSize {
	var size DesignSize
	if v, ok := d.Width.Float(); ok {
		size.Width = v
	}
	if v, ok := d.Height.Float(); ok {
		size.Height = v
	}
	return size
}

// CanonicalDesign is a design after the one mandatory sanitization pass. Every
// later stage stores and copies it without changing it.
type CanonicalDesign struct {
	AttachmentIDs    []uint64      `json:"attachment_ids"`
	AppliedTransform Transform     `json:"applied_transform"`
	PrintAreaMeta    PrintAreaRect `json:"print_area_meta"`
	PreviewURL       string        `json:"preview_url,omitempty"`
	PrintType        string        `json:"print_type,omitempty"`
	FabricType       string        `json:"fabric_type,omitempty"`
	Color            string        `json:"color,omitempty"`
	VariationID      uint64        `json:"variation_id"`
	Width            *float64      `json:"width,omitempty"`
	Height           *float64      `json:"height,omitempty"`
}

// Size returns the sanitized width/height, zero when absent.
func (d *CanonicalDesign) Size() DesignSize {
	var size DesignSize
	if d.Width != nil {
		size.Width = *d.Width
	}
	if d.Height != nil {
		size.Height = *d.Height
	}
	return size
}

// Clone returns a deep copy.
func (d *CanonicalDesign) Clone() *CanonicalDesign {
	if d == nil {
		return nil
	}
	out := *d
	out.AttachmentIDs = append([]uint64(nil), d.AttachmentIDs...)
	if d.Width != nil {
		w := *d.Width
		out.Width = &w
	}
	if d.Height != nil {
		h := *d.Height
		out.Height = &h
	}
	return &out
}

// AsSubmission re-reads the canonical record as a submission, so it can be fed
// back through validation or sanitization.
func (d *CanonicalDesign) AsSubmission() *DesignSubmission {
	b, err := json.Marshal(d)
	if err != nil {
		return &DesignSubmission{}
	}
	var sub DesignSubmission
	if err := json.Unmarshal(b, &sub); err != nil {
		return &DesignSubmission{}
	}
	return &sub
}

func isObject(b []byte) bool {
	trimmed := bytes.TrimSpace(b)
	return len(trimmed) > 0 && trimmed[0] == '{'
}
