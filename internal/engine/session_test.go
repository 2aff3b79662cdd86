package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lowaak/circuit-coach/internal/plan"
)

// examplePlan is one warm-up step, two exercises over two rounds, one
// cool-down step: 6 countable units in total.
func examplePlan() plan.Normalized {
	return plan.Normalize(plan.Plan{
		Name:   "Example",
		Warmup: []plan.Step{{Name: "Arm Circles", DurationSeconds: 20}},
		Exercises: []plan.Exercise{
			{Name: "Push-ups", WorkSeconds: 45, RestSeconds: 10, Sets: 2},
			{Name: "Squats", WorkSeconds: 30, RestSeconds: 10, Sets: 2},
		},
		Cooldown: []plan.Step{{Name: "Stretch", DurationSeconds: 30}},
	})
}

func tickN(s *Session, n int) {
	for i := 0; i < n; i++ {
		s.Tick()
	}
}

// settle ticks away any countdown overlay so the step clock is live.
func settle(s *Session) {
	for s.State().ShowReadyCountdown || s.State().ShowLeadInCountdown {
		s.Tick()
	}
}

func TestSessionStartRunsReadyCountdown(t *testing.T) {
	s := NewSession(examplePlan(), DefaultTiming(), nil)
	s.Start()

	st := s.State()
	assert.Equal(t, PhaseIdleReady, st.Phase)
	assert.True(t, st.ShowReadyCountdown)
	assert.Equal(t, 5, st.CountdownRemaining)
	assert.True(t, st.IsPlaying)

	tickN(s, 5)

	st = s.State()
	assert.Equal(t, PhaseWarmup, st.Phase)
	assert.False(t, st.ShowReadyCountdown)
	assert.Equal(t, "Arm Circles", st.StepName)
	assert.Equal(t, 20, st.TimeRemaining)
	assert.Equal(t, 20, st.TotalTime)
}

func TestSkipReadyCountdown(t *testing.T) {
	s := NewSession(examplePlan(), DefaultTiming(), nil)
	s.Start()
	s.SkipReadyCountdown()

	st := s.State()
	assert.Equal(t, PhaseWarmup, st.Phase)
	assert.False(t, st.ShowReadyCountdown)
	assert.Equal(t, "Arm Circles", st.StepName)
}

func TestFullSessionRun(t *testing.T) {
	s := NewSession(examplePlan(), DefaultTiming(), nil)
	s.Start()
	tickN(s, 5) // ready countdown

	// Warm-up
	st := s.State()
	require.Equal(t, PhaseWarmup, st.Phase)
	assert.Equal(t, 0, st.ProgressPercent)
	assert.Equal(t, 6, st.TotalUnits)

	tickN(s, 20) // warm-up step runs out

	// Transition rest into the main circuit
	st = s.State()
	require.Equal(t, PhaseRest, st.Phase)
	assert.Equal(t, 15, st.TimeRemaining)
	assert.Equal(t, 1, st.OverallIndex)
	assert.Equal(t, 17, st.ProgressPercent)

	tickN(s, 15)
	st = s.State()
	require.Equal(t, PhaseWorkout, st.Phase)
	assert.Equal(t, "Push-ups", st.StepName)
	assert.True(t, st.ShowLeadInCountdown)
	assert.Equal(t, 1, st.Round)

	settle(s)
	tickN(s, 45) // push-ups round 1

	st = s.State()
	require.Equal(t, PhaseRest, st.Phase)
	assert.Equal(t, 10, st.TimeRemaining)

	tickN(s, 10)
	settle(s)
	st = s.State()
	require.Equal(t, PhaseWorkout, st.Phase)
	assert.Equal(t, "Squats", st.StepName)
	assert.Equal(t, 2, st.OverallIndex)
	assert.Equal(t, 33, st.ProgressPercent)

	tickN(s, 30) // squats round 1
	tickN(s, 10) // rest, then round 2 begins
	settle(s)

	st = s.State()
	require.Equal(t, PhaseWorkout, st.Phase)
	assert.Equal(t, "Push-ups", st.StepName)
	assert.Equal(t, 2, st.Round)
	assert.Equal(t, 2, st.SetIndex)
	assert.Equal(t, 3, st.OverallIndex)
	assert.Equal(t, 50, st.ProgressPercent)

	tickN(s, 45)
	tickN(s, 10)
	settle(s)
	st = s.State()
	assert.Equal(t, "Squats", st.StepName)
	assert.Equal(t, 4, st.OverallIndex)
	assert.Equal(t, 67, st.ProgressPercent)

	tickN(s, 30) // last main exercise done

	// Transition rest before the cool-down
	st = s.State()
	require.Equal(t, PhaseRest, st.Phase)
	assert.Equal(t, 15, st.TimeRemaining)

	tickN(s, 15)
	settle(s)
	st = s.State()
	require.Equal(t, PhaseCooldown, st.Phase)
	assert.Equal(t, "Stretch", st.StepName)
	assert.Equal(t, 5, st.OverallIndex)
	assert.Equal(t, 83, st.ProgressPercent)

	tickN(s, 30)

	st = s.State()
	assert.Equal(t, PhaseCompleted, st.Phase)
	assert.False(t, st.IsPlaying)
	assert.Equal(t, 100, st.ProgressPercent)
	assert.Equal(t, 6, st.Stats.CompletedCount)
	assert.Equal(t, 0, st.Stats.SkippedCount)
	assert.Equal(t, 4, st.Stats.CompletedSets)
	assert.Equal(t, 4, st.Stats.TotalSets)
}

func TestCompletedIsTerminal(t *testing.T) {
	s := NewSession(examplePlan(), DefaultTiming(), nil)
	s.Start()
	s.Complete()

	require.Equal(t, PhaseCompleted, s.State().Phase)

	s.Tick()
	s.SkipToNext()
	s.SkipToPrevious()
	s.JumpToGlobalIndex(0)
	s.RestartCurrentExercise()
	s.MarkExerciseDone()
	s.ExtendRest()
	s.SkipRest()
	s.Start()

	st := s.State()
	assert.Equal(t, PhaseCompleted, st.Phase)
	assert.False(t, st.IsPlaying)
}

func TestPauseStopsClockAndAccumulates(t *testing.T) {
	now := time.Date(2026, 8, 24, 7, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }

	s := NewSession(examplePlan(), DefaultTiming(), clock)
	s.Start()
	s.SkipReadyCountdown()

	now = now.Add(10 * time.Second)
	tickN(s, 10)
	require.Equal(t, 10, s.State().TotalTime-s.State().TimeRemaining)

	s.Pause()
	st := s.State()
	assert.True(t, st.IsPaused)

	// Ticks while paused change nothing
	remaining := st.TimeRemaining
	tickN(s, 30)
	assert.Equal(t, remaining, s.State().TimeRemaining)

	// A long pause does not count toward elapsed time
	now = now.Add(5 * time.Minute)
	assert.Equal(t, 10, s.State().ElapsedSeconds)

	s.Resume()
	now = now.Add(2 * time.Second)
	tickN(s, 2)

	st = s.State()
	assert.False(t, st.IsPaused)
	assert.Equal(t, 12, st.ElapsedSeconds)
	assert.Equal(t, 5*time.Minute, st.Stats.PausedDuration)
}

func TestRepBasedExerciseWaitsForMarkDone(t *testing.T) {
	n := plan.Normalize(plan.Plan{
		Name: "Reps",
		Exercises: []plan.Exercise{
			{Name: "Burpees", Reps: 10, RepBased: true, Sets: 1, RestSeconds: 5},
			{Name: "Plank", WorkSeconds: 20, Sets: 1},
		},
	})
	s := NewSession(n, DefaultTiming(), nil)
	s.Start()
	s.SkipReadyCountdown()

	st := s.State()
	require.Equal(t, PhaseWorkout, st.Phase)
	assert.True(t, st.RepBased)
	assert.Equal(t, 10, st.Reps)
	assert.Equal(t, 0, st.TimeRemaining)

	// The clock never advances a rep-based exercise
	tickN(s, 120)
	st = s.State()
	assert.Equal(t, PhaseWorkout, st.Phase)
	assert.Equal(t, "Burpees", st.StepName)

	s.MarkExerciseDone()
	st = s.State()
	assert.Equal(t, PhaseRest, st.Phase)
	assert.Equal(t, 1, st.Stats.CompletedCount)
}

func TestMarkDoneIgnoredForTimedExercise(t *testing.T) {
	s := NewSession(examplePlan(), DefaultTiming(), nil)
	s.Start()
	s.SkipReadyCountdown()
	require.Equal(t, PhaseWarmup, s.State().Phase)

	s.MarkExerciseDone()
	assert.Equal(t, PhaseWarmup, s.State().Phase)
	assert.Equal(t, 0, s.State().Stats.CompletedCount)
}

func TestExtendRest(t *testing.T) {
	s := NewSession(examplePlan(), DefaultTiming(), nil)
	s.Start()
	tickN(s, 5)
	tickN(s, 20) // into the transition rest
	require.Equal(t, PhaseRest, s.State().Phase)
	require.Equal(t, 15, s.State().TimeRemaining)

	s.ExtendRest()
	st := s.State()
	assert.Equal(t, 30, st.TimeRemaining)
	assert.Equal(t, 30, st.TotalTime)

	s.ExtendRest()
	assert.Equal(t, 45, s.State().TimeRemaining)
}

func TestSkipRestHonorsPendingTarget(t *testing.T) {
	s := NewSession(examplePlan(), DefaultTiming(), nil)
	s.Start()
	tickN(s, 5)
	tickN(s, 20) // transition rest buffers workout(0, round 1)
	require.Equal(t, PhaseRest, s.State().Phase)

	s.SkipRest()
	st := s.State()
	assert.Equal(t, PhaseWorkout, st.Phase)
	assert.Equal(t, "Push-ups", st.StepName)
	assert.Equal(t, 1, st.Round)
	assert.True(t, st.ShowLeadInCountdown)
}

func TestPlanWithoutWarmupStartsInWorkout(t *testing.T) {
	n := plan.Normalize(plan.Plan{
		Name:      "NoWarmup",
		Exercises: []plan.Exercise{{Name: "Lunges", WorkSeconds: 20, Sets: 1}},
	})
	s := NewSession(n, DefaultTiming(), nil)
	s.Start()
	s.SkipReadyCountdown()

	st := s.State()
	assert.Equal(t, PhaseWorkout, st.Phase)
	assert.Equal(t, "Lunges", st.StepName)
}

func TestEmptyMainCircuitCompletesAfterReady(t *testing.T) {
	n := plan.Normalize(plan.Plan{
		Name:     "CooldownOnly",
		Cooldown: []plan.Step{{Name: "Stretch", DurationSeconds: 30}},
	})
	s := NewSession(n, DefaultTiming(), nil)
	s.Start()
	s.SkipReadyCountdown()

	assert.Equal(t, PhaseCompleted, s.State().Phase)
}

func TestCooldownStepsChainWithoutRest(t *testing.T) {
	n := plan.Normalize(plan.Plan{
		Name:      "TwoCooldowns",
		Exercises: []plan.Exercise{{Name: "Jacks", WorkSeconds: 10, Sets: 1}},
		Cooldown: []plan.Step{
			{Name: "Hamstring Stretch", DurationSeconds: 15},
			{Name: "Quad Stretch", DurationSeconds: 15},
		},
	})
	s := NewSession(n, DefaultTiming(), nil)
	s.Start()
	s.SkipReadyCountdown()
	tickN(s, 10) // exercise done, transition rest
	tickN(s, 15) // rest done, cooldown with lead-in
	settle(s)

	st := s.State()
	require.Equal(t, PhaseCooldown, st.Phase)
	require.Equal(t, "Hamstring Stretch", st.StepName)

	tickN(s, 15)
	st = s.State()
	assert.Equal(t, PhaseCooldown, st.Phase)
	assert.Equal(t, "Quad Stretch", st.StepName)
	assert.True(t, st.ShowLeadInCountdown)

	settle(s)
	tickN(s, 15)
	assert.Equal(t, PhaseCompleted, s.State().Phase)
}

func TestCuesAreEmittedAndDrained(t *testing.T) {
	s := NewSession(examplePlan(), DefaultTiming(), nil)
	s.Start()
	s.SkipReadyCountdown()

	cues := s.TakeCues()
	require.NotEmpty(t, cues)

	var sawPhase, sawExercise bool
	for _, c := range cues {
		if c.Kind == CuePhaseEntered && c.Phase == PhaseWarmup {
			sawPhase = true
		}
		if c.Kind == CueExerciseStarted && c.StepName == "Arm Circles" {
			sawExercise = true
		}
	}
	assert.True(t, sawPhase)
	assert.True(t, sawExercise)

	// Drained: a second take is empty
	assert.Empty(t, s.TakeCues())
}

func TestFinalCountdownCues(t *testing.T) {
	n := plan.Normalize(plan.Plan{
		Name:      "Short",
		Exercises: []plan.Exercise{{Name: "Sprint", WorkSeconds: 5, Sets: 1}},
	})
	s := NewSession(n, DefaultTiming(), nil)
	s.Start()
	s.SkipReadyCountdown()
	s.TakeCues()

	tickN(s, 4) // 5 -> 1, cues at 3, 2, 1

	var ticks []int
	for _, c := range s.TakeCues() {
		if c.Kind == CueCountdownTick {
			ticks = append(ticks, c.Seconds)
		}
	}
	assert.Equal(t, []int{3, 2, 1}, ticks)
}

func TestElapsedFrozenAfterCompletion(t *testing.T) {
	now := time.Date(2026, 8, 24, 7, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }

	n := plan.Normalize(plan.Plan{
		Name:      "Short",
		Exercises: []plan.Exercise{{Name: "Sprint", WorkSeconds: 5, Sets: 1}},
	})
	s := NewSession(n, DefaultTiming(), clock)
	s.Start()
	s.SkipReadyCountdown()
	now = now.Add(5 * time.Second)
	tickN(s, 5)  // exercise over, transition rest begins
	now = now.Add(15 * time.Second)
	tickN(s, 15) // no cooldown: pending target is completed
	require.Equal(t, PhaseCompleted, s.State().Phase)
	require.Equal(t, 20, s.State().ElapsedSeconds)

	now = now.Add(time.Hour)
	assert.Equal(t, 20, s.State().ElapsedSeconds)
}
