package plan

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeMaxRounds(t *testing.T) {
	n := Normalize(Plan{
		Exercises: []Exercise{
			{Name: "Push-ups", Sets: 2},
			{Name: "Squats", Sets: 4},
			{Name: "Plank", Sets: 1},
		},
	})
	assert.Equal(t, 4, n.MaxRounds)
}

func TestNormalizeMaxRoundsAtLeastOne(t *testing.T) {
	n := Normalize(Plan{
		Exercises: []Exercise{{Name: "Push-ups"}}, // no sets given
	})
	assert.Equal(t, 1, n.MaxRounds)
}

func TestNormalizeMaxRoundsZeroWithoutExercises(t *testing.T) {
	n := Normalize(Plan{
		Warmup: []Step{{Name: "March", DurationSeconds: 30}},
	})
	assert.Equal(t, 0, n.MaxRounds)
	assert.Equal(t, 0, n.TotalSets())
}

func TestNormalizeFillsDefaultRest(t *testing.T) {
	n := Normalize(Plan{})
	assert.Equal(t, DefaultRestBetweenSets, n.Plan.DefaultRestSeconds)

	n = Normalize(Plan{DefaultRestSeconds: 45})
	assert.Equal(t, 45, n.Plan.DefaultRestSeconds)
}

func TestRestAfter(t *testing.T) {
	n := Normalize(Plan{
		DefaultRestSeconds: 20,
		Exercises: []Exercise{
			{Name: "Push-ups", RestSeconds: 10},
			{Name: "Squats"}, // inherits plan default
		},
	})

	assert.Equal(t, 10, n.RestAfter(0))
	assert.Equal(t, 20, n.RestAfter(1))
	assert.Equal(t, 20, n.RestAfter(-1))
	assert.Equal(t, 20, n.RestAfter(5))
}

func TestTotalUnits(t *testing.T) {
	n := Normalize(Plan{
		Warmup: []Step{{Name: "a"}, {Name: "b"}},
		Exercises: []Exercise{
			{Name: "x", Sets: 3},
			{Name: "y", Sets: 3},
		},
		Cooldown: []Step{{Name: "c"}},
	})
	assert.Equal(t, 2+2*3+1, n.TotalUnits())
	assert.Equal(t, 6, n.TotalSets())
}

func TestTotalDurationSkipsRepBased(t *testing.T) {
	n := Normalize(Plan{
		Warmup: []Step{{Name: "a", DurationSeconds: 30}},
		Exercises: []Exercise{
			{Name: "timed", WorkSeconds: 40, Sets: 2},
			{Name: "reps", RepBased: true, Reps: 12, Sets: 2},
		},
		Cooldown: []Step{{Name: "c", DurationSeconds: 60}},
	})
	assert.Equal(t, 30+40*2+60, n.TotalDuration())
}

func TestAccessorsOutOfRangeReturnZeroValues(t *testing.T) {
	n := Normalize(Plan{
		Warmup:    []Step{{Name: "a", DurationSeconds: 10}},
		Exercises: []Exercise{{Name: "x", WorkSeconds: 30}},
		Cooldown:  []Step{{Name: "c", DurationSeconds: 20}},
	})

	assert.Equal(t, "a", n.WarmupStep(0).Name)
	assert.Equal(t, Step{}, n.WarmupStep(1))
	assert.Equal(t, Step{}, n.WarmupStep(-1))

	assert.Equal(t, "x", n.Exercise(0).Name)
	assert.Equal(t, Exercise{}, n.Exercise(1))

	assert.Equal(t, "c", n.CooldownStep(0).Name)
	assert.Equal(t, Step{}, n.CooldownStep(3))
}

func TestLibraryPlansAreWellFormed(t *testing.T) {
	assert.NotEmpty(t, Library)
	for _, p := range Library {
		n := Normalize(p)
		assert.NotEmpty(t, p.Name)
		assert.Greater(t, n.TotalUnits(), 0, "plan %q has nothing to do", p.Name)
	}
}
