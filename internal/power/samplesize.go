package power

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// Default significance and power parameters.
const (
	DefaultAlpha = 0.05
	DefaultBeta  = 0.10
)

// nullProportion is the no-effect win probability the test is run against.
const nullProportion = 0.5

// Estimate is a required-sample-size result. Defined is false when the win
// probability equals the null exactly, in which case no finite sample size
// detects the (non-existent) effect; callers must filter such estimates
// rather than coerce them to a number.
type Estimate struct {
	N       int  `json:"n"`
	Defined bool `json:"defined"`
}

// RequiredSampleSize converts a win proportion into the number of impressions
// a live interleaving experiment needs to reject p0=0.5 at significance alpha
// with power 1-beta, using the classic two-proportion formula
//
//	n = ceil(((z_alpha*sigma0 + z_beta*sigma1) / (p - p0))^2)
func RequiredSampleSize(p, alpha, beta float64) Estimate {
	diff := p - nullProportion
	if diff == 0 {
		return Estimate{}
	}

	norm := distuv.Normal{Mu: 0, Sigma: 1}
	zAlpha := norm.Quantile(1 - alpha)
	zBeta := norm.Quantile(1 - beta)
	sigma0 := math.Sqrt(nullProportion * (1 - nullProportion))
	sigma1 := math.Sqrt(p * (1 - p))

	n := math.Pow((zAlpha*sigma0+zBeta*sigma1)/diff, 2)
	return Estimate{N: int(math.Ceil(n)), Defined: true}
}
