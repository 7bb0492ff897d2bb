package power

import (
	"math"

	"github.com/rankeval/ileval/internal/stats"
)

// DefaultBins is the number of equal-width ΔERR buckets.
const DefaultBins = 10

// Bins partitions the ΔERR effect-size domain [0, 1) into equal-width
// buckets, each collecting the sample-size estimates of the ranking pairs
// whose ΔERR fell inside it.
type Bins struct {
	buckets [][]Estimate
}

// NewBins creates n buckets; n <= 0 selects DefaultBins.
func NewBins(n int) *Bins {
	if n <= 0 {
		n = DefaultBins
	}
	return &Bins{buckets: make([][]Estimate, n)}
}

// Len returns the bucket count.
func (b *Bins) Len() int { return len(b.buckets) }

// Add files an estimate under the bucket covering delta. Deltas outside
// [0, 1) are not representable in the bucket domain and are dropped.
func (b *Bins) Add(delta float64, est Estimate) {
	if delta < 0 || delta >= 1 {
		return
	}
	idx := int(delta * float64(len(b.buckets)))
	b.buckets[idx] = append(b.buckets[idx], est)
}

// BucketSummary describes one ΔERR bucket: its interval, whether any defined
// estimate landed in it, and the min/median/max plus mean/stddev of those
// estimates. The median takes the lower of the two central values for even
// counts; the standard deviation is the population form.
type BucketSummary struct {
	Lo      float64 `json:"lo"`
	Hi      float64 `json:"hi"`
	HasInfo bool    `json:"has_info"`
	Count   int     `json:"count"`
	Min     int     `json:"min,omitempty"`
	Median  int     `json:"median,omitempty"`
	Max     int     `json:"max,omitempty"`
	Mean    float64 `json:"mean,omitempty"`
	StdDev  float64 `json:"stddev,omitempty"`
}

// Summaries reports every bucket in order. Undefined estimates are stripped
// before the min/median/max computation; a bucket with no defined estimates
// reports HasInfo=false.
func (b *Bins) Summaries() []BucketSummary {
	step := 1.0 / float64(len(b.buckets))
	out := make([]BucketSummary, len(b.buckets))
	for i, bucket := range b.buckets {
		s := BucketSummary{
			Lo: round3(float64(i) * step),
			Hi: round3(float64(i)*step + step),
		}
		var sizes []int
		var values []float64
		for _, est := range bucket {
			if est.Defined {
				sizes = append(sizes, est.N)
				values = append(values, float64(est.N))
			}
		}
		if len(sizes) > 0 {
			s.HasInfo = true
			s.Count = len(sizes)
			s.Min = stats.MinInt(sizes)
			s.Median = stats.MedianInt(sizes)
			s.Max = stats.MaxInt(sizes)
			s.Mean = stats.Mean(values)
			s.StdDev = stats.StdDev(values)
		}
		out[i] = s
	}
	return out
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
