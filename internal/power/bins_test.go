package power

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBins_Summaries(t *testing.T) {
	b := NewBins(10)
	require.Equal(t, 10, b.Len())

	// Three estimates in the [0.2, 0.3) bucket.
	b.Add(0.25, Estimate{N: 5, Defined: true})
	b.Add(0.21, Estimate{N: 3, Defined: true})
	b.Add(0.29, Estimate{N: 7, Defined: true})

	sums := b.Summaries()
	require.Len(t, sums, 10)

	s := sums[2]
	assert.InDelta(t, 0.2, s.Lo, 1e-12)
	assert.InDelta(t, 0.3, s.Hi, 1e-12)
	assert.True(t, s.HasInfo)
	assert.Equal(t, 3, s.Count)
	assert.Equal(t, 3, s.Min)
	assert.Equal(t, 5, s.Median)
	assert.Equal(t, 7, s.Max)
	assert.InDelta(t, 5.0, s.Mean, 1e-12)
	assert.InDelta(t, math.Sqrt(8.0/3.0), s.StdDev, 1e-12)

	for i, s := range sums {
		if i == 2 {
			continue
		}
		assert.False(t, s.HasInfo, "bucket %d", i)
		assert.Zero(t, s.Count, "bucket %d", i)
	}
}

func TestBins_MedianLowerCentral(t *testing.T) {
	b := NewBins(10)
	for _, n := range []int{10, 20, 30, 40} {
		b.Add(0.05, Estimate{N: n, Defined: true})
	}
	assert.Equal(t, 20, b.Summaries()[0].Median)
}

func TestBins_UndefinedEstimatesStripped(t *testing.T) {
	b := NewBins(10)
	b.Add(0.15, Estimate{})
	b.Add(0.15, Estimate{N: 12, Defined: true})

	s := b.Summaries()[1]
	assert.True(t, s.HasInfo)
	assert.Equal(t, 1, s.Count)
	assert.Equal(t, 12, s.Min)
	assert.Equal(t, 12, s.Max)
	assert.InDelta(t, 12.0, s.Mean, 1e-12)
	assert.Zero(t, s.StdDev)

	b2 := NewBins(10)
	b2.Add(0.15, Estimate{})
	assert.False(t, b2.Summaries()[1].HasInfo)
}

func TestBins_OutOfRangeDropped(t *testing.T) {
	b := NewBins(10)
	b.Add(-0.1, Estimate{N: 1, Defined: true})
	b.Add(1.0, Estimate{N: 1, Defined: true})
	for _, s := range b.Summaries() {
		assert.Zero(t, s.Count)
	}
}

func TestBins_DefaultSize(t *testing.T) {
	assert.Equal(t, DefaultBins, NewBins(0).Len())
}

func TestBins_BoundaryGoesToUpperBucket(t *testing.T) {
	b := NewBins(10)
	b.Add(0.3, Estimate{N: 9, Defined: true})
	sums := b.Summaries()
	assert.False(t, sums[2].HasInfo)
	assert.True(t, sums[3].HasInfo)
}
