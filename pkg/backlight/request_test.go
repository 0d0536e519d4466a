package backlight

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRequest(t *testing.T) {
	tests := []struct {
		arg  string
		kind RequestKind
		val  float64
	}{
		{"40%", SetPercent, 40},
		{"+5%", StepPercent, 5},
		{"-5%", StepPercent, -5},
		{"300", SetAbsolute, 300},
		{"+300", StepRaw, 300},
		{"-300", StepRaw, -300},
		{" 12% ", SetPercent, 12},
	}
	for _, tc := range tests {
		req, err := ParseRequest(tc.arg)
		require.NoError(t, err, tc.arg)
		assert.Equal(t, tc.kind, req.Kind, tc.arg)
		assert.Equal(t, tc.val, req.Value, tc.arg)
	}
}

func TestParseRequestInvalid(t *testing.T) {
	for _, arg := range []string{"", "abc", "%", "+%", "1.2.3"} {
		_, err := ParseRequest(arg)
		assert.ErrorIs(t, err, ErrInvalidRequest, arg)
	}
}

func TestComputeClampsToBounds(t *testing.T) {
	curve := NewCurve(2.0)
	requests := []Request{
		{Kind: StepPercent, Value: 500},
		{Kind: StepPercent, Value: -500},
		{Kind: StepRaw, Value: 100000},
		{Kind: StepRaw, Value: -100000},
		{Kind: SetAbsolute, Value: 99999},
		{Kind: SetAbsolute, Value: -1},
	}
	for _, max := range []int{1, 100, 937} {
		for _, req := range requests {
			res, err := Compute(max, max/2, req, curve)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, res.New, 0)
			assert.LessOrEqual(t, res.New, max)
		}
	}
}

func TestComputeSetAbsoluteIdempotent(t *testing.T) {
	curve := NewCurve(2.0)
	for raw := 0; raw <= 100; raw++ {
		res, err := Compute(100, 50, Request{Kind: SetAbsolute, Value: float64(raw)}, curve)
		require.NoError(t, err)
		assert.Equal(t, raw, res.New)
	}
}

func TestComputeStepPercentMonotonic(t *testing.T) {
	curve := NewCurve(2.0)
	prev := -1
	for delta := -120.0; delta <= 120.0; delta += 2.5 {
		res, err := Compute(100, 50, Request{Kind: StepPercent, Value: delta}, curve)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, res.New, prev, "delta %g", delta)
		prev = res.New
	}
}

func TestComputeStepPercentNoDrift(t *testing.T) {
	// A step up followed by the same step down must land back on the
	// starting raw value; truncation instead of round-half-away would
	// slowly walk the value downward.
	curve := NewCurve(2.0)
	for _, start := range []int{25, 50, 80} {
		up, err := Compute(100, start, Request{Kind: StepPercent, Value: 10}, curve)
		require.NoError(t, err)
		down, err := Compute(100, up.New, Request{Kind: StepPercent, Value: -10}, curve)
		require.NoError(t, err)
		assert.Equal(t, start, down.New, "start %d stepped to %d and back to %d", start, up.New, down.New)
	}
}

func TestComputeSetPercentScenario(t *testing.T) {
	// max 100, current 50, SetPercent(10) on the exponent-2 curve:
	// raw = round((10/100)^2 * 100) = 1. Deterministic per the formula.
	curve := NewCurve(2.0)
	res, err := Compute(100, 50, Request{Kind: SetPercent, Value: 10}, curve)
	require.NoError(t, err)
	assert.Equal(t, 50, res.Previous)
	assert.Equal(t, 1, res.New)
	assert.InDelta(t, 10, res.Percent, 0.01)
}

func TestComputeStepRawOverflowClamps(t *testing.T) {
	curve := NewCurve(2.0)
	res, err := Compute(1, 1, Request{Kind: StepRaw, Value: 1}, curve)
	require.NoError(t, err)
	assert.Equal(t, 1, res.New)
}

func TestComputeNoOpStillReturnsResult(t *testing.T) {
	curve := NewCurve(2.0)
	res, err := Compute(100, 37, Request{Kind: SetAbsolute, Value: 37}, curve)
	require.NoError(t, err)
	assert.Equal(t, 37, res.Previous)
	assert.Equal(t, 37, res.New)
}

func TestComputeInvalidInputs(t *testing.T) {
	curve := NewCurve(2.0)

	_, err := Compute(0, 0, Request{Kind: SetPercent, Value: 50}, curve)
	assert.ErrorIs(t, err, ErrInvalidRequest)

	_, err = Compute(100, 50, Request{Kind: SetPercent, Value: 150}, curve)
	assert.ErrorIs(t, err, ErrInvalidRequest)

	_, err = Compute(100, 50, Request{Kind: SetPercent, Value: -1}, curve)
	assert.ErrorIs(t, err, ErrInvalidRequest)
}
