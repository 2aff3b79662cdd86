package engine

import (
	"math"
	"time"

	"github.com/lowaak/circuit-coach/internal/plan"
)

// Session is the pure session state machine. All methods are synchronous
// run-to-completion transitions with no timers and no goroutines; the
// Engine runtime owns the single 1-second ticker that calls Tick. A
// Session is not safe for concurrent use.
type Session struct {
	plan   plan.Normalized
	timing Timing
	now    func() time.Time

	phase         Phase
	exerciseIndex int
	round         int
	setIndex      int

	timeRemaining int
	totalTime     int

	isPlaying bool
	isPaused  bool

	showReady          bool
	showLeadIn         bool
	countdownRemaining int

	pending  *pendingTransition
	restFrom Phase // phase the current rest was entered from

	stats          Stats
	pauseStartedAt time.Time

	cues []Cue
}

// NewSession creates a session for the given normalized plan. The clock
// is injectable for tests; pass nil to use time.Now.
func NewSession(n plan.Normalized, timing Timing, now func() time.Time) *Session {
	if now == nil {
		now = time.Now
	}
	return &Session{
		plan:     n,
		timing:   timing,
		now:      now,
		phase:    PhaseIdleReady,
		round:    1,
		setIndex: 1,
		stats:    Stats{TotalSets: n.TotalSets()},
	}
}

// Start begins a fresh session: the ready countdown runs, then the first
// step of the plan becomes current. A plan with no warm-up and no main
// exercises completes immediately.
func (s *Session) Start() {
	if s.isPlaying || s.phase == PhaseCompleted {
		return
	}
	s.isPlaying = true
	s.stats.StartedAt = s.now()
	s.phase = PhaseIdleReady
	s.showReady = true
	s.countdownRemaining = s.timing.ReadyCountdownSeconds
	s.cue(Cue{Kind: CuePhaseEntered, Phase: PhaseIdleReady})
}

// Pause freezes the session: the countdown stops and clock-based stats
// freeze. The Engine runtime stops the ticker entirely while paused.
func (s *Session) Pause() {
	if !s.isPlaying || s.isPaused || s.phase == PhaseCompleted {
		return
	}
	s.isPaused = true
	s.pauseStartedAt = s.now()
}

// Resume unfreezes a paused session and folds the pause interval into
// the accumulated paused duration.
func (s *Session) Resume() {
	if !s.isPaused {
		return
	}
	s.stats.PausedDuration += s.now().Sub(s.pauseStartedAt)
	s.pauseStartedAt = time.Time{}
	s.isPaused = false
}

// Complete forces the session into its terminal state.
func (s *Session) Complete() {
	s.complete()
}

// SkipReadyCountdown collapses the ready countdown immediately.
func (s *Session) SkipReadyCountdown() {
	if !s.showReady {
		return
	}
	s.countdownRemaining = 0
	s.finishCountdown()
}

// FinishLeadInCountdown collapses the lead-in countdown immediately.
// Presentation layers that render their own 3-2-1 call this when it
// ends.
func (s *Session) FinishLeadInCountdown() {
	if !s.showLeadIn {
		return
	}
	s.countdownRemaining = 0
	s.finishCountdown()
}

// MarkExerciseDone completes the current rep-based workout exercise.
// A no-op for timed exercises and outside the workout phase.
func (s *Session) MarkExerciseDone() {
	if !s.isPlaying || s.isPaused || s.showReady || s.showLeadIn {
		return
	}
	if s.phase != PhaseWorkout || !s.plan.Exercise(s.exerciseIndex).RepBased {
		return
	}
	s.advance(true)
}

// ExtendRest adds a fixed increment to the current rest period. A no-op
// outside the rest phase.
func (s *Session) ExtendRest() {
	if s.phase != PhaseRest || s.showReady || s.showLeadIn {
		return
	}
	s.timeRemaining += s.timing.RestExtensionSeconds
	s.totalTime += s.timing.RestExtensionSeconds
}

// SkipRest ends the current rest immediately, taking the same exit path
// as natural expiry so the pending-transition buffer is honored.
func (s *Session) SkipRest() {
	if s.phase != PhaseRest || s.showReady {
		return
	}
	s.timeRemaining = 0
	s.showLeadIn = false
	s.leaveRest()
}

// Tick advances the session by one second. The Engine runtime calls this
// from its single periodic driver; tests call it directly. It does not
// decrement while paused, while a countdown overlay is showing (those
// have their own decrement), or while a rep-based exercise waits for
// MarkExerciseDone.
func (s *Session) Tick() {
	if !s.isPlaying || s.isPaused || s.phase == PhaseCompleted {
		return
	}

	if s.showReady || s.showLeadIn {
		s.countdownRemaining--
		if s.countdownRemaining > 0 {
			s.cue(Cue{Kind: CueCountdownTick, Phase: s.phase, Seconds: s.countdownRemaining})
			return
		}
		s.finishCountdown()
		return
	}

	if s.phase == PhaseWorkout && s.plan.Exercise(s.exerciseIndex).RepBased {
		return
	}

	s.timeRemaining--
	if s.timeRemaining > 0 {
		if s.timeRemaining <= 3 {
			s.cue(Cue{Kind: CueCountdownTick, Phase: s.phase, Seconds: s.timeRemaining})
		}
		return
	}
	s.timeRemaining = 0
	s.advance(true)
}

// finishCountdown resolves an elapsed ready or lead-in countdown. The
// target step's indices and duration were established when the countdown
// was armed, so the main clock always sees a fully-resolved step.
func (s *Session) finishCountdown() {
	if s.showReady {
		s.showReady = false
		if s.phase == PhaseIdleReady {
			s.enterFirstStep()
		}
		return
	}
	s.showLeadIn = false
}

// enterFirstStep picks the opening step of the plan once the ready
// countdown elapses.
func (s *Session) enterFirstStep() {
	switch {
	case s.plan.WarmupCount() > 0:
		s.enterWarmup(0)
	case s.plan.ExerciseCount() > 0:
		s.enterWorkout(0, 1)
	default:
		s.complete()
	}
}

// advance reacts to the current step finishing, either by countdown
// expiry or an explicit done/skip intent. counted selects whether the
// step lands in the completed or skipped tally.
func (s *Session) advance(counted bool) {
	switch s.phase {
	case PhaseWarmup:
		s.credit(counted)
		switch {
		case s.exerciseIndex+1 < s.plan.WarmupCount():
			s.enterRest(s.timing.TransitionRestSeconds,
				&pendingTransition{Phase: PhaseWarmup, ExerciseIndex: s.exerciseIndex + 1, Round: s.round},
				PhaseWarmup)
		case s.plan.ExerciseCount() > 0:
			s.enterRest(s.timing.TransitionRestSeconds,
				&pendingTransition{Phase: PhaseWorkout, ExerciseIndex: 0, Round: 1},
				PhaseWarmup)
		case s.plan.CooldownCount() > 0:
			s.enterRest(s.timing.TransitionRestSeconds,
				&pendingTransition{Phase: PhaseCooldown, ExerciseIndex: 0, Round: s.round},
				PhaseWarmup)
		default:
			s.complete()
		}

	case PhaseWorkout:
		s.credit(counted)
		lastOfSession := s.exerciseIndex+1 >= s.plan.ExerciseCount() && s.round >= s.plan.MaxRounds
		if lastOfSession {
			target := &pendingTransition{Phase: PhaseCompleted, Round: s.round}
			if s.plan.CooldownCount() > 0 {
				target = &pendingTransition{Phase: PhaseCooldown, ExerciseIndex: 0, Round: s.round}
			}
			s.enterRest(s.timing.TransitionRestSeconds, target, PhaseWorkout)
			return
		}
		// Exercise-to-exercise and round-to-round rests carry no pending
		// target; the next position is computed when the rest ends.
		s.enterRest(s.plan.RestAfter(s.exerciseIndex), nil, PhaseWorkout)

	case PhaseRest:
		s.leaveRest()

	case PhaseCooldown:
		s.credit(counted)
		if s.exerciseIndex+1 < s.plan.CooldownCount() {
			// Cool-down steps chain directly, no rest in between.
			s.enterCooldown(s.exerciseIndex + 1)
			s.beginLeadIn()
			return
		}
		s.complete()
	}
}

// leaveRest resolves what follows a rest period: the stashed pending
// target when one exists, otherwise the next main-circuit position
// computed from the current indices. Exactly one of the two applies.
func (s *Session) leaveRest() {
	if s.pending != nil {
		t := *s.pending
		s.pending = nil
		switch t.Phase {
		case PhaseWarmup:
			s.enterWarmup(t.ExerciseIndex)
		case PhaseWorkout:
			s.enterWorkout(t.ExerciseIndex, t.Round)
		case PhaseCooldown:
			s.enterCooldown(t.ExerciseIndex)
		default:
			s.complete()
			return
		}
		s.beginLeadIn()
		return
	}

	switch {
	case s.exerciseIndex+1 < s.plan.ExerciseCount():
		s.enterWorkout(s.exerciseIndex+1, s.round)
	case s.round < s.plan.MaxRounds:
		s.setIndex++
		s.enterWorkout(0, s.round+1)
	case s.plan.CooldownCount() > 0:
		s.enterCooldown(0)
	default:
		s.complete()
		return
	}
	s.beginLeadIn()
}

func (s *Session) enterWarmup(i int) {
	step := s.plan.WarmupStep(i)
	s.setPhase(PhaseWarmup)
	s.exerciseIndex = i
	s.timeRemaining = step.DurationSeconds
	s.totalTime = step.DurationSeconds
	s.cue(Cue{Kind: CueExerciseStarted, Phase: PhaseWarmup, StepName: step.Name, Seconds: step.DurationSeconds})
}

func (s *Session) enterWorkout(i, round int) {
	ex := s.plan.Exercise(i)
	s.setPhase(PhaseWorkout)
	s.exerciseIndex = i
	s.round = round
	dur := ex.WorkSeconds
	if ex.RepBased {
		dur = 0
	}
	s.timeRemaining = dur
	s.totalTime = dur
	s.cue(Cue{Kind: CueExerciseStarted, Phase: PhaseWorkout, StepName: ex.Name, Seconds: dur})
}

func (s *Session) enterCooldown(i int) {
	step := s.plan.CooldownStep(i)
	s.setPhase(PhaseCooldown)
	s.exerciseIndex = i
	s.timeRemaining = step.DurationSeconds
	s.totalTime = step.DurationSeconds
	s.cue(Cue{Kind: CueExerciseStarted, Phase: PhaseCooldown, StepName: step.Name, Seconds: step.DurationSeconds})
}

func (s *Session) enterRest(seconds int, pending *pendingTransition, from Phase) {
	s.setPhase(PhaseRest)
	s.pending = pending
	s.restFrom = from
	s.timeRemaining = seconds
	s.totalTime = seconds
}

func (s *Session) beginLeadIn() {
	s.showLeadIn = true
	s.countdownRemaining = s.timing.LeadInCountdownSeconds
}

func (s *Session) setPhase(p Phase) {
	if s.phase != p {
		s.phase = p
		s.cue(Cue{Kind: CuePhaseEntered, Phase: p})
	}
}

func (s *Session) credit(counted bool) {
	if counted {
		s.stats.CompletedCount++
		if s.phase == PhaseWorkout {
			s.stats.CompletedSets++
		}
		return
	}
	s.stats.SkippedCount++
}

func (s *Session) complete() {
	if s.phase == PhaseCompleted {
		return
	}
	if s.isPaused {
		s.Resume()
	}
	s.setPhase(PhaseCompleted)
	s.isPlaying = false
	s.showReady = false
	s.showLeadIn = false
	s.pending = nil
	s.timeRemaining = 0
	s.totalTime = 0
	s.stats.CompletedAt = s.now()
	s.cue(Cue{Kind: CueSessionCompleted, Phase: PhaseCompleted})
}

func (s *Session) cue(c Cue) {
	s.cues = append(s.cues, c)
}

// TakeCues drains and returns the cues emitted since the last call.
func (s *Session) TakeCues() []Cue {
	out := s.cues
	s.cues = nil
	return out
}

// completedUnits maps the current position onto the linear unit count.
// Warm-up earns one unit per finished step, the main circuit one per
// exercise per round, the cooldown one per step.
func (s *Session) completedUnits() int {
	w := s.plan.WarmupCount()
	e := s.plan.ExerciseCount()
	r := s.plan.MaxRounds
	switch s.phase {
	case PhaseWarmup:
		return s.exerciseIndex
	case PhaseWorkout:
		return w + (s.round-1)*e + s.exerciseIndex
	case PhaseRest:
		if s.restFrom == PhaseWarmup {
			// The finished warm-up step is credited; indices still point at it.
			return s.exerciseIndex + 1
		}
		return w + (s.round-1)*e + s.exerciseIndex
	case PhaseCooldown:
		return w + e*r + s.exerciseIndex
	case PhaseCompleted:
		return s.plan.TotalUnits()
	default:
		return 0
	}
}

// State builds the observable snapshot, including all derived
// projections. It never mutates the session.
func (s *Session) State() State {
	total := s.plan.TotalUnits()
	overall := s.completedUnits()

	percent := 0
	if total > 0 {
		percent = int(math.Round(float64(overall) * 100 / float64(total)))
		if percent > 100 {
			percent = 100
		}
	} else if s.phase == PhaseCompleted {
		percent = 100
	}

	st := State{
		PlanName:            s.plan.Plan.Name,
		Phase:               s.phase,
		ExerciseIndex:       s.exerciseIndex,
		Round:               s.round,
		SetIndex:            s.setIndex,
		TimeRemaining:       s.timeRemaining,
		TotalTime:           s.totalTime,
		IsPlaying:           s.isPlaying,
		IsPaused:            s.isPaused,
		ShowReadyCountdown:  s.showReady,
		ShowLeadInCountdown: s.showLeadIn,
		CountdownRemaining:  s.countdownRemaining,
		ProgressPercent:     percent,
		OverallIndex:        overall,
		TotalUnits:          total,
		ExercisesRemaining:  total - overall,
		Stats:               s.stats,
	}

	switch s.phase {
	case PhaseWarmup:
		st.StepName = s.plan.WarmupStep(s.exerciseIndex).Name
	case PhaseWorkout:
		ex := s.plan.Exercise(s.exerciseIndex)
		st.StepName = ex.Name
		st.RepBased = ex.RepBased
		st.Reps = ex.Reps
	case PhaseRest:
		st.StepName = "Rest"
	case PhaseCooldown:
		st.StepName = s.plan.CooldownStep(s.exerciseIndex).Name
	}

	if !s.stats.StartedAt.IsZero() {
		elapsed := s.now().Sub(s.stats.StartedAt) - s.stats.PausedDuration
		if s.isPaused {
			elapsed -= s.now().Sub(s.pauseStartedAt)
		}
		if !s.stats.CompletedAt.IsZero() {
			elapsed = s.stats.CompletedAt.Sub(s.stats.StartedAt) - s.stats.PausedDuration
		}
		if elapsed < 0 {
			elapsed = 0
		}
		st.ElapsedSeconds = int(elapsed.Seconds())
	}

	return st
}

// Snapshot captures the resumable position of the session.
func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		PlanName:      s.plan.Plan.Name,
		Phase:         s.phase,
		ExerciseIndex: s.exerciseIndex,
		SetIndex:      s.setIndex,
		Round:         s.round,
		SavedAt:       s.now(),
	}
}
