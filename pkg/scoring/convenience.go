package scoring

import (
	"math"

	"github.com/chargescope/chargescope/pkg/poi"
)

// convenienceFactor weights one amenity category and caps its contribution
// so no single category can dominate the 0-10 score. The caps sum to 10.
type convenienceFactor struct {
	Category poi.Category
	Weight   float64
	Cap      float64
}

var convenienceFactors = []convenienceFactor{
	{poi.Dining, 0.5, 2.5},
	{poi.Shopping, 0.3, 1.5},
	{poi.Services, 0.3, 1.5},
	{poi.Transit, 0.5, 2.5},
	{poi.Healthcare, 0.5, 1.0},
	{poi.Entertainment, 0.5, 1.0},
}

// ScoreConvenience rates the amenity mix around a single station on a 0-10
// scale. Each category contributes min(count x weight, cap); a nil or empty
// bundle scores zero, not an error.
func ScoreConvenience(bundle *poi.Bundle) *ScoreResult {
	components := make(map[string]float64, len(convenienceFactors))
	var score float64
	for _, f := range convenienceFactors {
		c := round1(math.Min(float64(bundle.Count(f.Category))*f.Weight, f.Cap))
		components[string(f.Category)] = c
		score += c
	}

	return &ScoreResult{
		Score:      score,
		Scale:      10,
		Grade:      ConvenienceGrade(score),
		Components: components,
	}
}

// AggregateConvenience averages per-station convenience scores into a
// location-level score graded on the same table. An empty sample is an
// InsufficientDataError; callers typically fall back to omitting the
// convenience section rather than reporting a fake zero.
func AggregateConvenience(scores []float64) (*ScoreResult, error) {
	if len(scores) == 0 {
		return nil, &InsufficientDataError{Op: "aggregate convenience", Reason: "no station scores sampled"}
	}

	var sum float64
	for _, s := range scores {
		sum += s
	}
	mean := sum / float64(len(scores))

	return &ScoreResult{
		Score: mean,
		Scale: 10,
		Grade: ConvenienceGrade(mean),
	}, nil
}
