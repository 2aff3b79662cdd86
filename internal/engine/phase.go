package engine

import "time"

// Phase is one of the six top-level states of a session.
type Phase int

const (
	PhaseIdleReady Phase = iota // ready countdown before the first step
	PhaseWarmup
	PhaseWorkout
	PhaseRest
	PhaseCooldown
	PhaseCompleted // terminal
)

func (p Phase) String() string {
	switch p {
	case PhaseIdleReady:
		return "ready"
	case PhaseWarmup:
		return "warmup"
	case PhaseWorkout:
		return "workout"
	case PhaseRest:
		return "rest"
	case PhaseCooldown:
		return "cooldown"
	case PhaseCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// Timing groups the fixed durations the state machine runs on.
type Timing struct {
	ReadyCountdownSeconds  int // countdown after starting or resuming a session
	LeadInCountdownSeconds int // short countdown before each step begins
	TransitionRestSeconds  int // fixed rest after warm-up and before cooldown
	RestExtensionSeconds   int // added per extend-rest intent
}

// DefaultTiming returns the stock durations.
func DefaultTiming() Timing {
	return Timing{
		ReadyCountdownSeconds:  5,
		LeadInCountdownSeconds: 3,
		TransitionRestSeconds:  15,
		RestExtensionSeconds:   15,
	}
}

// pendingTransition stashes the real target of a rest screen: where the
// session lands once the rest clock runs out. Cleared when consumed.
type pendingTransition struct {
	Phase         Phase
	ExerciseIndex int
	Round         int
}

// Snapshot is the persisted progress of a suspended session.
type Snapshot struct {
	PlanName      string    `json:"plan_name"`
	Phase         Phase     `json:"phase"`
	ExerciseIndex int       `json:"exercise_index"`
	SetIndex      int       `json:"set_index"`
	Round         int       `json:"round"`
	SavedAt       time.Time `json:"saved_at"`
}

// Stats accumulates session bookkeeping. Elapsed time is wall clock
// minus accumulated paused time.
type Stats struct {
	StartedAt      time.Time
	CompletedAt    time.Time
	PausedDuration time.Duration
	CompletedCount int
	SkippedCount   int
	TotalSets      int
	CompletedSets  int
}

// State is the full observable session state. It is a value: the engine
// publishes a fresh copy on every change and never shares internals.
type State struct {
	PlanName      string
	Phase         Phase
	ExerciseIndex int
	Round         int
	SetIndex      int

	StepName string
	RepBased bool
	Reps     int

	TimeRemaining int // seconds left on the current step or rest
	TotalTime     int // nominal seconds for the current step or rest

	IsPlaying           bool
	IsPaused            bool
	ShowReadyCountdown  bool
	ShowLeadInCountdown bool
	CountdownRemaining  int

	ProgressPercent    int
	OverallIndex       int
	TotalUnits         int
	ExercisesRemaining int
	ElapsedSeconds     int

	Stats Stats
}

// CueKind classifies the signals an external narrator reacts to.
type CueKind int

const (
	CuePhaseEntered CueKind = iota
	CueExerciseStarted
	CueCountdownTick
	CueSessionCompleted
)

// Cue is a discrete audio/speech signal emitted by the session. The
// engine only emits these; playback belongs to the caller.
type Cue struct {
	Kind     CueKind
	Phase    Phase
	StepName string
	Seconds  int
}
