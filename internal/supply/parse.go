package supply

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"supply-curve/internal/model"
)

// ParseCurve returns the curve elements of one offer in input order.
//
// A structured curve is used as-is. A textual curve is decoded with
// DecodeCurve. Vertices are never re-sorted. An absent or empty curve
// yields ErrNoOfferCurve; a malformed text yields a *DecodeError.
func ParseCurve(offer model.RawOffer) ([]model.OfferTuple, error) {
	if offer.Curve != nil {
		if len(offer.Curve) == 0 {
			return nil, ErrNoOfferCurve
		}
		out := make([]model.OfferTuple, len(offer.Curve))
		copy(out, offer.Curve)
		return out, nil
	}

	tuples, err := DecodeCurve(offer.CurveText)
	if err != nil {
		return nil, err
	}
	if len(tuples) == 0 {
		return nil, ErrNoOfferCurve
	}
	return tuples, nil
}

// DecodeCurve decodes the textual form of an offer curve, e.g.
//
//	[(100.0, 10.5), (150.0, 20.0)]
//	[[100, 10.5], [150, 20]]
//
// Only an outer list/tuple of inner lists/tuples of numbers is accepted.
// Nothing is evaluated; any other token is a *DecodeError. Inner elements
// may have any arity, arity is checked during expansion.
// Blank input decodes to an empty curve.
func DecodeCurve(text string) ([]model.OfferTuple, error) {
	d := &curveDecoder{s: text}
	d.skipSpace()
	if d.eof() {
		return nil, nil
	}

	var out []model.OfferTuple
	err := d.sequence(func() error {
		t, err := d.tuple()
		if err != nil {
			return err
		}
		out = append(out, t)
		return nil
	})
	if err != nil {
		return nil, err
	}

	d.skipSpace()
	if !d.eof() {
		return nil, d.errorf("unexpected trailing input %q", d.rest())
	}
	return out, nil
}

type curveDecoder struct {
	s   string
	pos int
}

func (d *curveDecoder) tuple() (model.OfferTuple, error) {
	t := model.OfferTuple{}
	err := d.sequence(func() error {
		v, err := d.number()
		if err != nil {
			return err
		}
		t = append(t, v)
		return nil
	})
	return t, err
}

// sequence consumes "[a, b, ...]" or "(a, b, ...)", calling elem for each
// element. A trailing comma is allowed, as in Python literals.
func (d *curveDecoder) sequence(elem func() error) error {
	d.skipSpace()
	if d.eof() {
		return d.errorf("unexpected end of input")
	}
	var closer byte
	switch d.s[d.pos] {
	case '[':
		closer = ']'
	case '(':
		closer = ')'
	default:
		return d.errorf("expected '[' or '(', got %q", d.s[d.pos])
	}
	d.pos++

	for {
		d.skipSpace()
		if d.eof() {
			return d.errorf("unterminated sequence, expected %q", closer)
		}
		if d.s[d.pos] == closer {
			d.pos++
			return nil
		}
		if err := elem(); err != nil {
			return err
		}
		d.skipSpace()
		if d.eof() {
			return d.errorf("unterminated sequence, expected %q", closer)
		}
		switch d.s[d.pos] {
		case ',':
			d.pos++
		case closer:
			d.pos++
			return nil
		default:
			return d.errorf("expected ',' or %q, got %q", closer, d.s[d.pos])
		}
	}
}

func (d *curveDecoder) number() (float64, error) {
	d.skipSpace()
	start := d.pos
	if !d.eof() && (d.s[d.pos] == '-' || d.s[d.pos] == '+') {
		d.pos++
	}
	for !d.eof() && isNumberByte(d.s[d.pos]) {
		d.pos++
	}
	tok := d.s[start:d.pos]
	if tok == "" || tok == "-" || tok == "+" {
		d.pos = start
		if d.eof() {
			return 0, d.errorf("expected number, got end of input")
		}
		return 0, d.errorf("expected number, got %q", d.s[start])
	}
	v, err := strconv.ParseFloat(tok, 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		d.pos = start
		return 0, d.errorf("invalid number %q", tok)
	}
	return v, nil
}

func isNumberByte(c byte) bool {
	switch {
	case c >= '0' && c <= '9':
		return true
	case c == '.', c == 'e', c == 'E', c == '-', c == '+':
		return true
	}
	return false
}

func (d *curveDecoder) skipSpace() {
	for !d.eof() {
		switch d.s[d.pos] {
		case ' ', '\t', '\n', '\r':
			d.pos++
		default:
			return
		}
	}
}

func (d *curveDecoder) eof() bool { return d.pos >= len(d.s) }

func (d *curveDecoder) rest() string {
	r := d.s[d.pos:]
	if len(r) > 16 {
		r = r[:16] + "..."
	}
	return strings.TrimSpace(r)
}

func (d *curveDecoder) errorf(format string, args ...any) error {
	return &DecodeError{Offset: d.pos, Msg: fmt.Sprintf(format, args...)}
}
