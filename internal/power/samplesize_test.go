package power

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequiredSampleSize(t *testing.T) {
	tests := []struct {
		name        string
		p           float64
		alpha, beta float64
		want        int
	}{
		{"moderate_effect", 0.7, 0.05, 0.10, 50},
		{"symmetric_effect", 0.3, 0.05, 0.10, 50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			est := RequiredSampleSize(tt.p, tt.alpha, tt.beta)
			assert.True(t, est.Defined)
			assert.Equal(t, tt.want, est.N)
		})
	}
}

func TestRequiredSampleSize_Monotone(t *testing.T) {
	// Smaller effects need more impressions.
	small := RequiredSampleSize(0.55, DefaultAlpha, DefaultBeta)
	large := RequiredSampleSize(0.8, DefaultAlpha, DefaultBeta)
	assert.True(t, small.Defined)
	assert.True(t, large.Defined)
	assert.Greater(t, small.N, large.N)
}

func TestRequiredSampleSize_UndefinedAtNull(t *testing.T) {
	est := RequiredSampleSize(0.5, DefaultAlpha, DefaultBeta)
	assert.False(t, est.Defined)
	assert.Zero(t, est.N)
}
