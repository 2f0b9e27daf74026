package service

import (
	"math"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/ikkim/printcraft-backend/internal/app/model"
)

var htmlTagPattern = regexp.MustCompile(`<[^>]*>`)

// Sanitizer turns a validated submission into the canonical design. It never fails.
type Sanitizer interface {
	Sanitize(sub *model.DesignSubmission) model.CanonicalDesign
}

type sanitizer struct{}

func NewSanitizer() Sanitizer {
	return sanitizer{}
}

func (sanitizer) Sanitize(sub *model.DesignSubmission) model.CanonicalDesign {
	return SanitizeDesign(sub)
}

// SanitizeDesign coerces every field to its canonical type and range.
// Applying it to its own output (via AsSubmission) returns the same record.
func SanitizeDesign(sub *model.DesignSubmission) model.CanonicalDesign {
	out := model.CanonicalDesign{
		AttachmentIDs:    []uint64{},
		AppliedTransform: model.Transform{Scale: 1},
		PrintAreaMeta:    model.PrintAreaRect{W: 1, H: 1},
	}
	if sub == nil {
		return out
	}

	if sub.AttachmentIDs != nil && !sub.AttachmentIDs.Malformed {
		for i := range sub.AttachmentIDs.IDs {
			id, _ := nonNegativeID(&sub.AttachmentIDs.IDs[i])
			out.AttachmentIDs = append(out.AttachmentIDs, id)
		}
	}

	transform := sub.AppliedTransform.Resolve()
	transform.Scale = math.Max(0, transform.Scale)
	out.AppliedTransform = transform

	area := sub.PrintAreaMeta.Resolve()
	out.PrintAreaMeta = model.PrintAreaRect{
		X: clampUnit(area.X),
		Y: clampUnit(area.Y),
		W: clampUnit(area.W),
		H: clampUnit(area.H),
	}

	out.PreviewURL = sanitizeURL(sub.PreviewURL)
	out.PrintType = sanitizeText(sub.PrintType)
	out.FabricType = sanitizeText(sub.FabricType)
	out.Color = sanitizeText(sub.Color)

	if id, ok := nonNegativeID(sub.VariationID); ok {
		out.VariationID = id
	}
	out.Width = nonNegative(sub.Width)
	out.Height = nonNegative(sub.Height)

	return out
}

// nonNegativeID reads a non-negative integer id: integers are taken exactly,
// other numbers are truncated, negatives lose their sign. Unreadable is 0, false.
func nonNegativeID(raw *model.Scalar) (uint64, bool) {
	text, ok := raw.Text()
	if !ok {
		return 0, false
	}
	text = strings.TrimSpace(text)

	if n, err := strconv.ParseUint(text, 10, 64); err == nil {
		return n, true
	}
	if n, err := strconv.ParseInt(text, 10, 64); err == nil {
		if n == math.MinInt64 {
			return uint64(math.MaxInt64) + 1, true
		}
		if n < 0 {
			n = -n
		}
		return uint64(n), true
	}

	f, ok := raw.Float()
	if !ok {
		return 0, false
	}
	f = math.Abs(math.Trunc(f))
	if f >= math.MaxUint64 {
		return math.MaxUint64, true
	}
	return uint64(f), true
}

func clampUnit(v float64) float64 {
	return math.Min(1, math.Max(0, v))
}

func nonNegative(raw *model.Scalar) *float64 {
	v, ok := raw.Float()
	if !ok {
		return nil
	}
	v = math.Max(0, v)
	return &v
}

// sanitizeURL keeps absolute http(s) URLs only.
func sanitizeURL(raw *model.Scalar) string {
	text, ok := raw.Text()
	if !ok {
		return ""
	}
	u, err := url.Parse(strings.TrimSpace(text))
	if err != nil || u.Host == "" {
		return ""
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return ""
	}
	return u.String()
}

// sanitizeText strips markup and control characters and collapses whitespace.
func sanitizeText(raw *model.Scalar) string {
	text, ok := raw.Text()
	if !ok {
		return ""
	}
	text = htmlTagPattern.ReplaceAllString(text, "")
	text = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return ' '
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, text)
	return strings.Join(strings.Fields(text), " ")
}
