package scoring

import (
	"math"

	"atscreen/internal/errors"
)

// Weights holds the per-criterion weights for the overall score. The five
// values must sum to exactly 100.
type Weights struct {
	Format      int `mapstructure:"format"`
	Keywords    int `mapstructure:"keywords"`
	Readability int `mapstructure:"readability"`
	Structure   int `mapstructure:"structure"`
	Contact     int `mapstructure:"contact"`
}

// DefaultWeights returns the standard criterion weighting.
func DefaultWeights() Weights {
	return Weights{Format: 25, Keywords: 30, Readability: 20, Structure: 15, Contact: 10}
}

// Validate rejects weight sets that do not sum to 100. A misconfigured sum
// would silently distort every score, so this fails loudly at startup.
func (w Weights) Validate() error {
	sum := w.Format + w.Keywords + w.Readability + w.Structure + w.Contact
	if sum != 100 {
		return errors.NewConfigError(errors.ErrCodeInvalidConfig,
			"criterion weights must sum to 100", nil).
			WithContext("sum", sum)
	}
	return nil
}

// Thresholds are the rating cut-offs, checked highest first. They must be
// strictly descending.
type Thresholds struct {
	Excellent int `mapstructure:"excellent"`
	Good      int `mapstructure:"good"`
	Average   int `mapstructure:"average"`
	Poor      int `mapstructure:"poor"`
}

// DefaultThresholds returns the standard rating cut-offs.
func DefaultThresholds() Thresholds {
	return Thresholds{Excellent: 85, Good: 70, Average: 55, Poor: 40}
}

func (t Thresholds) Validate() error {
	if t.Excellent <= t.Good || t.Good <= t.Average || t.Average <= t.Poor || t.Poor < 0 {
		return errors.NewConfigError(errors.ErrCodeInvalidConfig,
			"rating thresholds must be strictly descending and non-negative", nil)
	}
	return nil
}

// Rating descriptions keyed by rating name.
const (
	RatingExcellent = "Excellent"
	RatingGood      = "Good"
	RatingAverage   = "Average"
	RatingPoor      = "Poor"
	RatingVeryPoor  = "Very Poor"
)

var ratingDescriptions = map[string]string{
	RatingExcellent: "Your resume is highly ATS-compatible and likely to pass through automated screening systems.",
	RatingGood:      "Your resume has good ATS compatibility with room for minor improvements.",
	RatingAverage:   "Your resume may face some challenges with ATS systems. Consider implementing the suggested improvements.",
	RatingPoor:      "Your resume may have difficulty passing through ATS systems. Significant improvements are recommended.",
	RatingVeryPoor:  "Your resume is likely to be rejected by ATS systems. Major revisions are necessary.",
}

// overallScore computes the weighted composite and its rating.
func overallScore(w Weights, t Thresholds, format, keywords, readability, structure, contact int) (float64, string, string) {
	weighted := float64(format)*float64(w.Format)/100 +
		float64(keywords)*float64(w.Keywords)/100 +
		float64(readability)*float64(w.Readability)/100 +
		float64(structure)*float64(w.Structure)/100 +
		float64(contact)*float64(w.Contact)/100
	weighted = math.Round(weighted*10) / 10

	var rating string
	switch {
	case weighted >= float64(t.Excellent):
		rating = RatingExcellent
	case weighted >= float64(t.Good):
		rating = RatingGood
	case weighted >= float64(t.Average):
		rating = RatingAverage
	case weighted >= float64(t.Poor):
		rating = RatingPoor
	default:
		rating = RatingVeryPoor
	}

	return weighted, rating, ratingDescriptions[rating]
}
