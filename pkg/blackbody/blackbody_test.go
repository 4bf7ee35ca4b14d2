package blackbody

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestC8bit(t *testing.T) {
	tests := []struct {
		name string
		num  float64
		want uint8
	}{
		{
			name: "negative clamps to zero",
			num:  -0.5,
			want: 0,
		},
		{
			name: "large negative clamps to zero",
			num:  -1000,
			want: 0,
		},
		{
			name: "above range clamps to 255",
			num:  256.5,
			want: 255,
		},
		{
			name: "just below 256 truncates not rounds",
			num:  255.999,
			want: 255,
		},
		{
			name: "mid range truncates toward zero",
			num:  12.9,
			want: 12,
		},
		{
			name: "zero stays zero",
			num:  0,
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c8bit(tt.num))
		})
	}
}

func TestConvertTotality(t *testing.T) {
	// Every input, including ones far outside the sensible range, must
	// produce a valid triple. uint8 already bounds the values; the point
	// here is that nothing panics or hits a log() domain error.
	inputs := []float64{-1000, -0.001, 0, 0.1, 18.999, 19, 19.001, 65.999, 66, 66.001, 10000}
	for _, x := range inputs {
		assert.NotPanics(t, func() { Convert(x) }, "Convert(%v)", x)
	}
}

func TestFloorSubstitution(t *testing.T) {
	// Non-positive inputs are replaced by 0.1 before any branch or formula
	// is evaluated, so zero and 0.1 are indistinguishable.
	r0, g0, b0 := Convert(0)
	r1, g1, b1 := Convert(0.1)
	assert.Equal(t, r0, r1)
	assert.Equal(t, g0, g1)
	assert.Equal(t, b0, b1)

	rn, gn, bn := Convert(-273.15)
	assert.Equal(t, r0, rn)
	assert.Equal(t, g0, gn)
	assert.Equal(t, b0, bn)

	// Very cold lands on pure dark red.
	assert.Equal(t, uint8(255), r0)
	assert.Equal(t, uint8(0), g0)
	assert.Equal(t, uint8(0), b0)
}

func TestChannelBranches(t *testing.T) {
	tests := []struct {
		name string
		temp float64
		r    uint8
		g    uint8
		b    uint8
	}{
		{
			name: "cool mid range",
			temp: 30,
			r:    255,
			g:    177,
			b:    109,
		},
		{
			name: "near white point",
			temp: 65,
			r:    255,
			g:    254,
			b:    250,
		},
		{
			name: "hot side of the gradient",
			temp: 80,
			r:    221,
			g:    229,
			b:    255,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, g, b := Convert(tt.temp)
			assert.Equal(t, tt.r, r, "red at %v", tt.temp)
			assert.Equal(t, tt.g, g, "green at %v", tt.temp)
			assert.Equal(t, tt.b, b, "blue at %v", tt.temp)
		})
	}
}

func TestUpperBranchesSaturate(t *testing.T) {
	// Crossing 66 both upper branches still read 255: blue pins there
	// outright, and the red power formula stays above the clamp until
	// roughly 66.7.
	for _, x := range []float64{66, 66.001, 66.5} {
		assert.Equal(t, uint8(255), Red(x), "red at %v", x)
		assert.Equal(t, uint8(255), Blue(x), "blue at %v", x)
	}
	// Far past the crossover red decays while blue stays pinned.
	for _, x := range []float64{120, 10000} {
		assert.Less(t, Red(x), uint8(255), "red at %v", x)
		assert.Equal(t, uint8(255), Blue(x), "blue at %v", x)
	}
}

func TestBlueCutoff(t *testing.T) {
	// Blue is hard zero at and below 19 (post floor substitution).
	for _, x := range []float64{-5, 0, 10, 18.999, 19} {
		assert.Equal(t, uint8(0), Blue(x), "blue at %v", x)
	}
	// Immediately above the cutoff the formula takes over but still clamps
	// to zero territory: 138.5177*ln(9.001)-305.04 is barely positive.
	assert.Less(t, Blue(19.001), uint8(2))
}
