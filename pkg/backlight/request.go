package backlight

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// RequestKind selects how a Request value is interpreted.
type RequestKind int

const (
	// SetAbsolute sets the raw device value directly.
	SetAbsolute RequestKind = iota
	// SetPercent sets the perceptual percentage.
	SetPercent
	// StepPercent shifts the perceptual percentage by a signed delta.
	StepPercent
	// StepRaw shifts the raw device value by a signed delta.
	StepRaw
)

// Request is one user-requested brightness change. Built once from the CLI
// input and never mutated.
type Request struct {
	Kind  RequestKind
	Value float64
}

// ParseRequest interprets the argument of `lumen set`:
//
//	"40%"          set perceptual percentage
//	"+5%" / "-5%"  step perceptual percentage
//	"300"          set raw value
//	"+300" / "-300" step raw value
func ParseRequest(arg string) (Request, error) {
	s := strings.TrimSpace(arg)
	if s == "" {
		return Request{}, fmt.Errorf("%w: empty value", ErrInvalidRequest)
	}

	signed := strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-")
	percent := strings.HasSuffix(s, "%")
	num := strings.TrimSuffix(s, "%")

	value, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return Request{}, fmt.Errorf("%w: cannot parse %q", ErrInvalidRequest, arg)
	}

	switch {
	case percent && signed:
		return Request{Kind: StepPercent, Value: value}, nil
	case percent:
		return Request{Kind: SetPercent, Value: value}, nil
	case signed:
		return Request{Kind: StepRaw, Value: value}, nil
	default:
		return Request{Kind: SetAbsolute, Value: value}, nil
	}
}

// Result is the outcome of Compute. Percent is derived through the
// perceptual curve, not the raw-linear ratio.
type Result struct {
	Previous int
	New      int
	Percent  float64
}

// Compute maps (device bounds, current value, request) to the new raw value.
// Pure: no I/O, and the only failure mode is input validation. The returned
// raw value is always within [0, max], so callers can hand it to the writer
// unmodified.
func Compute(max, current int, req Request, curve Curve) (Result, error) {
	if max <= 0 {
		return Result{}, fmt.Errorf("%w: max_brightness is %d", ErrInvalidRequest, max)
	}

	var raw int
	switch req.Kind {
	case SetPercent:
		if req.Value < 0 || req.Value > 100 {
			return Result{}, fmt.Errorf("%w: percentage %g outside [0,100]", ErrInvalidRequest, req.Value)
		}
		raw = curve.RawOf(req.Value, max)
	case StepPercent:
		raw = curve.RawOf(curve.PercentOf(current, max)+req.Value, max)
	case SetAbsolute:
		raw = roundHalfAway(req.Value)
	case StepRaw:
		raw = current + roundHalfAway(req.Value)
	default:
		return Result{}, fmt.Errorf("%w: unknown request kind %d", ErrInvalidRequest, req.Kind)
	}

	if raw < 0 {
		raw = 0
	} else if raw > max {
		raw = max
	}

	return Result{
		Previous: current,
		New:      raw,
		Percent:  curve.PercentOf(raw, max),
	}, nil
}

func roundHalfAway(v float64) int {
	return int(math.Round(v))
}
