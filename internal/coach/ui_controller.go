package coach

import (
	"log"

	"github.com/lowaak/circuit-coach/internal/engine"
	"github.com/lowaak/circuit-coach/internal/plan"
)

// UIController handles UI events and coordinates with the UIModel
type UIController struct {
	model     *UIModel
	engine    *engine.Engine
	snapshots *engine.SnapshotStore
	logger    *log.Logger
}

// NewUIController creates a new UIController with the given dependencies
func NewUIController(model *UIModel, eng *engine.Engine, snapshots *engine.SnapshotStore, logger *log.Logger) *UIController {
	if model == nil {
		panic("UIController: model cannot be nil")
	}
	if eng == nil {
		panic("UIController: engine cannot be nil")
	}
	if snapshots == nil {
		panic("UIController: snapshots cannot be nil")
	}
	if logger == nil {
		panic("UIController: logger cannot be nil")
	}

	return &UIController{
		model:     model,
		engine:    eng,
		snapshots: snapshots,
		logger:    logger,
	}
}

// OnPlanSelected handles when a plan is selected from the list: the
// plan is loaded, the session starts, and the UI switches to session
// mode.
func (c *UIController) OnPlanSelected(index int) {
	p, ok := c.model.PlanByIndex(index)
	if !ok {
		c.logger.Printf("Invalid plan index: %d", index)
		return
	}

	c.logger.Printf("Plan selected: %s", p.Name)
	c.engine.SetPlan(plan.Normalize(p))
	c.engine.StartSession()
	c.model.SetMode(UIModeSession)
}

// ResumeSavedSession restores the persisted snapshot, if one exists and
// still matches a known plan.
func (c *UIController) ResumeSavedSession() {
	snap, ok := c.snapshots.Load()
	if !ok {
		c.logger.Printf("No saved session to resume")
		return
	}

	var found *plan.Plan
	for _, p := range c.model.GetPlans() {
		if p.Name == snap.PlanName {
			p := p
			found = &p
			break
		}
	}
	if found == nil {
		c.logger.Printf("Saved session references unknown plan %q, discarding", snap.PlanName)
		c.snapshots.Clear()
		return
	}

	c.logger.Printf("Resuming saved session: %s (%s)", snap.PlanName, snap.Phase)
	c.engine.SetPlan(plan.Normalize(*found))
	c.engine.ResumeFromSnapshot(snap)
	c.model.SetMode(UIModeSession)
}

// TogglePlayPause pauses a running session or resumes a paused one.
func (c *UIController) TogglePlayPause() {
	st := c.model.GetSessionState()
	switch {
	case !st.IsPlaying:
		c.logger.Printf("No session in progress - select a plan first (press 1)")
	case st.IsPaused:
		c.engine.ResumeSession()
	default:
		c.engine.PauseSession()
	}
}

// StopSession ends the session early. The saved snapshot, if any, is
// cleared: a deliberately stopped session should not offer a resume.
func (c *UIController) StopSession() {
	c.engine.CompleteSession()
	c.snapshots.Clear()
}

// SkipReadyCountdown collapses the ready countdown.
func (c *UIController) SkipReadyCountdown() {
	c.engine.SkipReadyCountdown()
}

// SkipToNext advances past the current step.
func (c *UIController) SkipToNext() {
	c.engine.SkipToNext()
}

// SkipToPrevious walks back one step.
func (c *UIController) SkipToPrevious() {
	c.engine.SkipToPrevious()
}

// SkipRest ends the current rest immediately.
func (c *UIController) SkipRest() {
	c.engine.SkipRest()
}

// ExtendRest lengthens the current rest period.
func (c *UIController) ExtendRest() {
	c.engine.ExtendRest()
}

// MarkExerciseDone completes the current rep-based exercise.
func (c *UIController) MarkExerciseDone() {
	c.engine.MarkExerciseDone()
}

// RestartCurrentExercise rewinds the current step.
func (c *UIController) RestartCurrentExercise() {
	c.engine.RestartCurrentExercise()
}

// JumpToGlobalIndex lands on an arbitrary unit of the session.
func (c *UIController) JumpToGlobalIndex(n int) {
	c.engine.JumpToGlobalIndex(n)
}

// OnModeChange handles when the user requests a mode change
func (c *UIController) OnModeChange(mode UIMode) {
	if info, ok := GetUIModeInfo(mode); ok {
		c.logger.Printf("Switching to %s mode", info.DisplayName)
	}
	c.model.SetMode(mode)
}

// OnEscapeKey handles when the Escape key is pressed. A session in
// progress is saved for later resumption before the app closes.
func (c *UIController) OnEscapeKey() {
	st := c.model.GetSessionState()
	if st.IsPlaying && st.Phase != engine.PhaseCompleted {
		snap := c.engine.Snapshot()
		c.snapshots.Save(snap)
		c.logger.Printf("Session saved for resume: %s (%s)", snap.PlanName, snap.Phase)
	}
	c.model.RequestCloseApplication()
}

// Shutdown stops the engine and cleans up resources
func (c *UIController) Shutdown() {
	c.engine.Shutdown()
}
