package plan

// Step is a single timed movement in the warm-up or cool-down list.
type Step struct {
	Name            string `yaml:"name"`
	DurationSeconds int    `yaml:"duration_seconds"`
}

// Exercise is one station of the main circuit. Timed exercises run on a
// countdown; rep-based exercises wait for the user to mark them done.
type Exercise struct {
	Name        string `yaml:"name"`
	WorkSeconds int    `yaml:"work_seconds"`
	RestSeconds int    `yaml:"rest_seconds"` // rest after this exercise; 0 inherits the plan default
	Sets        int    `yaml:"sets"`
	Reps        int    `yaml:"reps"`
	RepBased    bool   `yaml:"rep_based"`
}

// Plan is a full guided session: warm-up steps, a main circuit repeated
// over rounds, and cool-down steps. Indices within each list are stable
// for the lifetime of a session.
type Plan struct {
	Name               string     `yaml:"name"`
	Warmup             []Step     `yaml:"warmup"`
	Exercises          []Exercise `yaml:"exercises"`
	Cooldown           []Step     `yaml:"cooldown"`
	DefaultRestSeconds int        `yaml:"default_rest_seconds"`
}

// DefaultRestBetweenSets is used when a plan specifies no rest at all.
const DefaultRestBetweenSets = 30

// Normalized is the derived, read-only view of a Plan the session engine
// runs on. All invariant figures are computed once up front.
type Normalized struct {
	Plan      Plan
	MaxRounds int // max of per-exercise set counts; at least 1 when exercises exist
}

// Normalize computes the invariant figures for a plan.
func Normalize(p Plan) Normalized {
	maxRounds := 0
	if len(p.Exercises) > 0 {
		maxRounds = 1
		for _, ex := range p.Exercises {
			if ex.Sets > maxRounds {
				maxRounds = ex.Sets
			}
		}
	}
	if p.DefaultRestSeconds <= 0 {
		p.DefaultRestSeconds = DefaultRestBetweenSets
	}
	return Normalized{Plan: p, MaxRounds: maxRounds}
}

// WarmupCount returns the number of warm-up steps.
func (n Normalized) WarmupCount() int { return len(n.Plan.Warmup) }

// ExerciseCount returns the number of main-circuit exercises per round.
func (n Normalized) ExerciseCount() int { return len(n.Plan.Exercises) }

// CooldownCount returns the number of cool-down steps.
func (n Normalized) CooldownCount() int { return len(n.Plan.Cooldown) }

// TotalUnits is the number of countable units in a full session:
// warm-up steps, main exercises across all rounds, and cool-down steps.
func (n Normalized) TotalUnits() int {
	return n.WarmupCount() + n.ExerciseCount()*n.MaxRounds + n.CooldownCount()
}

// TotalSets is the number of main-circuit work units across all rounds.
func (n Normalized) TotalSets() int {
	return n.ExerciseCount() * n.MaxRounds
}

// RestAfter returns the rest duration in seconds that follows the given
// main-circuit exercise, falling back to the plan default.
func (n Normalized) RestAfter(exerciseIndex int) int {
	if exerciseIndex < 0 || exerciseIndex >= len(n.Plan.Exercises) {
		return n.Plan.DefaultRestSeconds
	}
	if r := n.Plan.Exercises[exerciseIndex].RestSeconds; r > 0 {
		return r
	}
	return n.Plan.DefaultRestSeconds
}

// Exercise returns the main-circuit exercise at the given index, or a
// zero Exercise when out of range.
func (n Normalized) Exercise(i int) Exercise {
	if i < 0 || i >= len(n.Plan.Exercises) {
		return Exercise{}
	}
	return n.Plan.Exercises[i]
}

// WarmupStep returns the warm-up step at the given index, or a zero Step
// when out of range.
func (n Normalized) WarmupStep(i int) Step {
	if i < 0 || i >= len(n.Plan.Warmup) {
		return Step{}
	}
	return n.Plan.Warmup[i]
}

// CooldownStep returns the cool-down step at the given index, or a zero
// Step when out of range.
func (n Normalized) CooldownStep(i int) Step {
	if i < 0 || i >= len(n.Plan.Cooldown) {
		return Step{}
	}
	return n.Plan.Cooldown[i]
}

// TotalDuration returns the nominal number of active seconds in the plan
// (work time only, no rests or countdowns). Rep-based exercises count
// for zero since they have no clock.
func (n Normalized) TotalDuration() int {
	var total int
	for _, s := range n.Plan.Warmup {
		total += s.DurationSeconds
	}
	for _, ex := range n.Plan.Exercises {
		if !ex.RepBased {
			sets := ex.Sets
			if sets < 1 {
				sets = 1
			}
			total += ex.WorkSeconds * sets
		}
	}
	for _, s := range n.Plan.Cooldown {
		total += s.DurationSeconds
	}
	return total
}
