// Package archetype scores the onboarding quiz locally and reconciles the
// backend's authoritative result with the local one.
package archetype

import (
	"errors"
	"fmt"
	"math"

	"github.com/julianstephens/moodlit/internal/constants"
	apperrors "github.com/julianstephens/moodlit/internal/errors"
	"github.com/julianstephens/moodlit/internal/models"
)

const (
	QuestionCount = 12
	MinAnswer     = 1
	MaxAnswer     = 4

	// Raw trait sums are clamped to [-RawBound, RawBound] before grading
	RawBound = 16
	MinGrade = 1
	MaxGrade = 5

	percentPerGrade = 20
)

// ErrInvalidAnswers is returned for a malformed answer sequence
var ErrInvalidAnswers = fmt.Errorf("%w: quiz answers", apperrors.ErrValidation)

// Evaluation is the intermediate state of a scoring run
type Evaluation struct {
	Raw    Traits
	Grades Traits
	Votes  map[Key]int
	Key    Key
}

// Validate checks length and range of an answer sequence
func Validate(answers []int) error {
	if len(answers) != QuestionCount {
		return fmt.Errorf("%w: got %d answers, want %d", ErrInvalidAnswers, len(answers), QuestionCount)
	}
	for i, a := range answers {
		if a < MinAnswer || a > MaxAnswer {
			return fmt.Errorf("%w: answer %d is %d, want %d..%d", ErrInvalidAnswers, i+1, a, MinAnswer, MaxAnswer)
		}
	}
	return nil
}

// Evaluate sums trait deltas and tallies votes for the selected options
func Evaluate(answers []int) (Evaluation, error) {
	if err := Validate(answers); err != nil {
		return Evaluation{}, err
	}

	ev := Evaluation{Votes: make(map[Key]int, len(Priority))}
	for i, a := range answers {
		opt := Questions[i].Options[a-1]
		ev.Raw = ev.Raw.add(opt.Delta)
		ev.Votes[opt.Vote]++
	}

	ev.Key = dominant(ev.Votes)
	ev.Grades = Traits{
		EnergyLevel:  Grade(ev.Raw.EnergyLevel),
		Adaptability: Grade(ev.Raw.Adaptability),
		Resilience:   Grade(ev.Raw.Resilience),
	}
	return ev, nil
}

// dominant picks the most voted key. Iterating Priority makes the earliest
// declared key win ties.
func dominant(votes map[Key]int) Key {
	best := Priority[0]
	for _, k := range Priority[1:] {
		if votes[k] > votes[best] {
			best = k
		}
	}
	return best
}

// Grade rescales a raw trait sum to 1..5
func Grade(sum int) int {
	clamped := sum
	if clamped < -RawBound {
		clamped = -RawBound
	}
	if clamped > RawBound {
		clamped = RawBound
	}
	scaled := float64(clamped+RawBound) / float64(2*RawBound) * float64(MaxGrade-MinGrade)
	return int(math.Round(scaled)) + MinGrade
}

// GradeToPercent converts a 1..5 grade to its 20..100 display value
func GradeToPercent(grade int) int {
	return grade * percentPerGrade
}

// Score runs the quiz locally. It is pure and deterministic, so it doubles
// as the offline fallback when the backend cannot be reached.
func Score(answers []int) (models.ArchetypeResult, error) {
	ev, err := Evaluate(answers)
	if err != nil {
		return models.ArchetypeResult{}, err
	}
	p, ok := Lookup(ev.Key)
	if !ok {
		return models.ArchetypeResult{}, errors.New("archetype catalog is missing " + string(ev.Key))
	}
	return models.ArchetypeResult{
		Key:  string(p.Key),
		Name: p.Name,
		Gauges: models.Gauges{
			EnergyLevel:  GradeToPercent(ev.Grades.EnergyLevel),
			Adaptability: GradeToPercent(ev.Grades.Adaptability),
			Resilience:   GradeToPercent(ev.Grades.Resilience),
		},
		Tags:        limitTags(p.Tags),
		Description: p.Encouragement,
	}, nil
}

func limitTags(tags []string) []string {
	n := len(tags)
	if n > constants.MaxArchetypeTags {
		n = constants.MaxArchetypeTags
	}
	out := make([]string, n)
	copy(out, tags[:n])
	return out
}
