package report

import (
	"errors"
	"fmt"
	"sort"

	"github.com/samber/lo"
	"gonum.org/v1/gonum/stat"
)

// ErrInvalidConfidence is returned for a confidence level outside (0, 1)
var ErrInvalidConfidence = errors.New("confidence must be between 0 and 1")

// Interval is a bootstrap confidence interval
type Interval struct {
	Lower  float64
	Upper  float64
	StdDev float64
	Mean   float64
}

// Mean is the arithmetic mean, zero for no values
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return stat.Mean(values, nil)
}

// Bootstrap resamples values with replacement samples times, applies measure
// to each resample and returns the confidence interval of the results.
func Bootstrap(values []float64, measure func([]float64) float64, samples int, confidence float64) (Interval, error) {
	if confidence <= 0 || confidence >= 1 {
		return Interval{}, fmt.Errorf("%w: %g", ErrInvalidConfidence, confidence)
	}
	if len(values) == 0 || samples < 1 {
		return Interval{}, nil
	}

	measures := make([]float64, samples)
	resample := make([]float64, len(values))
	for i := range measures {
		for j := range resample {
			resample[j] = lo.Sample(values)
		}
		measures[i] = measure(resample)
	}

	sort.Float64s(measures)
	tail := 1 - confidence
	mean, stdDev := stat.MeanStdDev(measures, nil)

	return Interval{
		Lower:  stat.Quantile(tail/2, stat.LinInterp, measures, nil),
		Upper:  stat.Quantile(1-tail/2, stat.LinInterp, measures, nil),
		StdDev: stdDev,
		Mean:   mean,
	}, nil
}
