package spam

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/thesavant42/phonefinder/internal/models"
)

func TestScoreDeterministicTerms(t *testing.T) {
	tests := []struct {
		name       string
		digits     string
		numberType models.NumberType
		want       float64
	}{
		{"plain mobile", "7400123456", models.NumberTypeMobile, 0.2}, // contains "0123"
		{"nothing matches", "2015550173", models.NumberTypeFixedLineOrMobile, 0.0},
		{"repeated run", "2015555573", models.NumberTypeFixedLine, 0.3},
		{"run of three is not enough", "2015550073", models.NumberTypeFixedLine, 0.0},
		{"descending sequence", "9876543210", models.NumberTypeMobile, 0.2},
		{"ascending 2345 does not count", "7523450819", models.NumberTypeMobile, 0.0},
		{"short number", "52718", models.NumberTypeUnknown, 0.2},
		{"toll free", "8002345608", models.NumberTypeTollFree, 0.3},
		{"premium rate", "9002375608", models.NumberTypePremiumRate, 0.3},
		{"shared cost", "8452375608", models.NumberTypeSharedCost, 0.3},
		{"run short premium", "11112", models.NumberTypePremiumRate, 0.8},
		{"run sequence toll free", "123400000", models.NumberTypeTollFree, 0.8},
		{"short sequence premium", "1234", models.NumberTypePremiumRate, 0.7},
	}

	s := NewScorer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.InDelta(t, tt.want, s.Score(tt.digits, tt.numberType), 1e-9)
		})
	}
}

func TestScoreCappedAtOne(t *testing.T) {
	b := Breakdown{
		Repetition: RepetitionWeight,
		Sequence:   SequenceWeight,
		Short:      ShortWeight,
		LineType:   LineTypeWeight,
		Noise:      0.05,
	}
	require.Equal(t, 1.0, b.Total())
}

func TestScoreBounds(t *testing.T) {
	rq := require.New(t)

	s := NewScorer(WithRandomNoise())
	inputs := []string{"", "1", "0000000000", "123456789", "9876", "447400123456"}
	types := []models.NumberType{models.NumberTypeMobile, models.NumberTypeTollFree, models.NumberTypeUnknown}

	for i := 0; i < 200; i++ {
		for _, d := range inputs {
			for _, nt := range types {
				score := s.Score(d, nt)
				rq.GreaterOrEqual(score, 0.0)
				rq.LessOrEqual(score, 1.0)
			}
		}
	}
}

func TestRepeatedScoresStayWithinNoiseBound(t *testing.T) {
	rq := require.New(t)

	s := NewScorer(WithRandomNoise())
	first := s.Score("2015550173", models.NumberTypeMobile)
	for i := 0; i < 500; i++ {
		rq.InDelta(first, s.Score("2015550173", models.NumberTypeMobile), MaxNoise+1e-9)
	}
}

func TestBreakdownDeterministicPartIsStable(t *testing.T) {
	rq := require.New(t)

	s := NewScorer(WithRandomNoise())
	want := s.Breakdown("9998887777", models.NumberTypeTollFree).Deterministic()
	for i := 0; i < 100; i++ {
		b := s.Breakdown("9998887777", models.NumberTypeTollFree)
		rq.InDelta(want, b.Deterministic(), 1e-9)
		rq.GreaterOrEqual(b.Noise, 0.0)
		rq.Less(b.Noise, MaxNoise)
	}
}

func TestRepetitionAlwaysContributes(t *testing.T) {
	rq := require.New(t)

	s := NewScorer(WithRandomNoise())
	for _, d := range []string{"0000", "5551111", "27777777", "99990"} {
		b := s.Breakdown(d, models.NumberTypeMobile)
		rq.Equal(RepetitionWeight, b.Repetition, d)
		rq.GreaterOrEqual(s.Score(d, models.NumberTypeMobile), RepetitionWeight, d)
	}
}

func TestSuspiciousLineTypeAlwaysContributes(t *testing.T) {
	rq := require.New(t)

	s := NewScorer()
	for _, nt := range SuspiciousTypes {
		rq.GreaterOrEqual(s.Score("2015550173", nt), LineTypeWeight, nt.String())
	}
	rq.Zero(s.Breakdown("2015550173", models.NumberTypeVoIP).LineType)
}

func TestNoiseIsClamped(t *testing.T) {
	rq := require.New(t)

	high := NewScorer(WithNoise(func() float64 { return 5 }))
	rq.Less(high.Breakdown("2015550173", models.NumberTypeMobile).Noise, MaxNoise)

	low := NewScorer(WithNoise(func() float64 { return -1 }))
	rq.Zero(low.Breakdown("2015550173", models.NumberTypeMobile).Noise)
}

func TestZeroScorerIsDeterministic(t *testing.T) {
	var s Scorer
	require.Equal(t, 0.3, s.Score("8002015550", models.NumberTypeTollFree))
}

func TestHasRepeatedRun(t *testing.T) {
	tests := []struct {
		digits string
		n      int
		want   bool
	}{
		{"1111", 4, true},
		{"1112", 4, false},
		{"21111", 4, true},
		{"121212", 4, false},
		{"", 4, false},
		{"7", 1, true},
	}
	for _, tt := range tests {
		t.Run(tt.digits, func(t *testing.T) {
			require.Equal(t, tt.want, HasRepeatedRun(tt.digits, tt.n))
		})
	}
}
