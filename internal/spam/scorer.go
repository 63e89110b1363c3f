// Package spam implements the heuristic spam-likelihood score for phone numbers.
//
// The score is synthetic. It looks only at the shape of the national significant
// number and at its line type, and is not derived from reported spam data.
package spam

import (
	"math"
	"math/rand"
	"strings"

	"github.com/samber/lo"
	"github.com/thesavant42/phonefinder/internal/models"
)

// Term weights
const (
	RepetitionWeight = 0.3
	SequenceWeight   = 0.2
	ShortWeight      = 0.2
	LineTypeWeight   = 0.3

	// MaxNoise is the exclusive upper bound of the noise term
	MaxNoise = 0.1

	// ShortLength is the digit count below which a number counts as short
	ShortLength = 7

	repeatRun = 4
)

// Sequences that earn the sequence bonus. Only these literals count.
var Sequences = []string{"1234", "4321", "0123", "9876", "6789"}

// SuspiciousTypes are the line types that earn the line-type bonus
var SuspiciousTypes = []models.NumberType{
	models.NumberTypePremiumRate,
	models.NumberTypeTollFree,
	models.NumberTypeSharedCost,
}

// NoiseFunc returns a value in [0, MaxNoise)
type NoiseFunc func() float64

// Option configures a Scorer
type Option func(*Scorer)

// WithNoise sets the noise source. Values outside [0, MaxNoise) are clamped.
func WithNoise(fn NoiseFunc) Option {
	return func(s *Scorer) {
		s.noise = fn
	}
}

// WithRandomNoise adds a uniformly random noise term, matching the legacy behaviour
// where repeat lookups of one number score slightly differently.
func WithRandomNoise() Option {
	return WithNoise(func() float64 {
		return rand.Float64() * MaxNoise
	})
}

// Scorer computes spam scores. The zero value is a deterministic scorer.
type Scorer struct {
	noise NoiseFunc
}

// NewScorer creates a Scorer. Without options it is deterministic.
func NewScorer(opts ...Option) *Scorer {
	s := &Scorer{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Breakdown is the per-term contribution to a score
type Breakdown struct {
	Repetition float64
	Sequence   float64
	Short      float64
	LineType   float64
	Noise      float64
}

// Deterministic returns the sum of every term except noise
func (b Breakdown) Deterministic() float64 {
	return b.Repetition + b.Sequence + b.Short + b.LineType
}

// Total returns the final capped, rounded score
func (b Breakdown) Total() float64 {
	return math.Min(1.0, round2(b.Deterministic()+b.Noise))
}

// Score returns the spam score for a national significant number and its line type
func (s *Scorer) Score(digits string, numberType models.NumberType) float64 {
	return s.Breakdown(digits, numberType).Total()
}

// Breakdown returns the individual terms that make up the score
func (s *Scorer) Breakdown(digits string, numberType models.NumberType) Breakdown {
	var b Breakdown
	if HasRepeatedRun(digits, repeatRun) {
		b.Repetition = RepetitionWeight
	}
	if HasSequence(digits) {
		b.Sequence = SequenceWeight
	}
	if len(digits) < ShortLength {
		b.Short = ShortWeight
	}
	if lo.Contains(SuspiciousTypes, numberType) {
		b.LineType = LineTypeWeight
	}
	if s != nil && s.noise != nil {
		b.Noise = clampNoise(s.noise())
	}
	return b
}

// HasRepeatedRun reports whether any character repeats at least n times in a row
func HasRepeatedRun(digits string, n int) bool {
	if n <= 1 {
		return len(digits) > 0
	}
	run := 1
	for i := 1; i < len(digits); i++ {
		if digits[i] == digits[i-1] {
			run++
			if run >= n {
				return true
			}
		} else {
			run = 1
		}
	}
	return false
}

// HasSequence reports whether digits contains one of the listed sequences
func HasSequence(digits string) bool {
	return lo.SomeBy(Sequences, func(seq string) bool {
		return strings.Contains(digits, seq)
	})
}

func clampNoise(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v >= MaxNoise {
		return math.Nextafter(MaxNoise, 0)
	}
	return v
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
