package coach

import (
	"fmt"
	"log"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/lowaak/circuit-coach/internal/engine"
	"github.com/lowaak/circuit-coach/internal/plan"
)

// Page names for tview.Pages
const (
	pagePlanSelection = "plan_selection"
	pageSession       = "session"
)

// CursesUIViewImpl implements UIViewImpl using tview (curses-based terminal UI)
type CursesUIViewImpl struct {
	logger      *log.Logger
	app         *tview.Application
	model       *UIModel
	currentMode UIMode

	// Root container that holds all pages
	pages *tview.Pages

	// Shared components (visible in all modes)
	logView  *tview.TextView
	mainFlex *tview.Flex // Main layout: mode content on left, logs on right

	// Plan Selection mode components
	planSelectionFlex       *tview.Flex
	planSelectionTabWidgets []*tview.Box
	planList                *tview.List
	planDetailsPanel        *tview.TextView
	plans                   []plan.Plan // Available plans

	// Session mode components
	sessionFlex       *tview.Flex
	sessionTabWidgets []*tview.Box
	sessionPanel      *tview.TextView
	announcementPanel *tview.TextView
}

func NewCursesUIView(logger *log.Logger, app *tview.Application, model *UIModel) *CursesUIViewImpl {
	return &CursesUIViewImpl{
		logger:      logger,
		app:         app,
		model:       model,
		currentMode: UIModePlanSelection,
	}
}

// Initialize sets up the tview widgets
func (ui *CursesUIViewImpl) Initialize(controller *UIController) {
	// Create shared log view
	// Note: Don't use SetChangedFunc with app.Draw() - it can cause hangs during shutdown
	// when the app has been stopped but log messages are still being written.
	// The BaseUIView's event listeners already call Draw() after updating content.
	ui.logView = tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(false)
	ui.logView.SetBorder(true).SetTitle(" Logs ")

	// Create pages container for mode switching
	ui.pages = tview.NewPages()

	// Initialize each mode
	ui.initPlanSelectionMode(controller)
	ui.initSessionMode(controller)

	// Add pages
	ui.pages.AddPage(pagePlanSelection, ui.planSelectionFlex, true, true)
	ui.pages.AddPage(pageSession, ui.sessionFlex, true, false)

	// Create main layout: pages on left, logs on right
	ui.mainFlex = tview.NewFlex().
		AddItem(ui.pages, 0, 2, true).
		AddItem(ui.logView, 0, 1, false)

	// Set initial focus
	ui.setFocusForCurrentMode()
}

// initPlanSelectionMode sets up the Plan Selection mode UI
func (ui *CursesUIViewImpl) initPlanSelectionMode(controller *UIController) {
	// Create plan list for selecting plans
	ui.planList = tview.NewList().
		ShowSecondaryText(true).
		SetSelectedFunc(func(index int, mainText, secondaryText string, shortcut rune) {
			ui.logger.Printf("UI: Plan selected: index=%d, name=%s", index, mainText)
			controller.OnPlanSelected(index)
		}).
		SetChangedFunc(func(index int, mainText, secondaryText string, shortcut rune) {
			// Update details panel when selection changes
			ui.updatePlanDetailsDisplay(index)
		})
	ui.planList.SetBorder(true).SetTitle(" Plans ")

	// Create plan details panel
	ui.planDetailsPanel = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignLeft)
	ui.planDetailsPanel.SetBorder(true).SetTitle(" Plan Details ")
	ui.updatePlanDetailsDisplay(-1) // Initialize with no selection

	ui.planSelectionTabWidgets = append(ui.planSelectionTabWidgets, ui.planList.Box)
	ui.planSelectionTabWidgets = append(ui.planSelectionTabWidgets, ui.planDetailsPanel.Box)

	// Create plan selection layout
	ui.planSelectionFlex = tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(ui.planList, 0, 1, true).
		AddItem(ui.planDetailsPanel, 0, 1, false)
}

// initSessionMode sets up the Session mode UI
func (ui *CursesUIViewImpl) initSessionMode(controller *UIController) {
	// Create the main session panel
	ui.sessionPanel = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignLeft)
	ui.sessionPanel.SetBorder(true).SetTitle(" Session ")
	ui.updateSessionDisplay(engine.State{})

	// Create the coach announcement panel
	ui.announcementPanel = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignCenter)
	ui.announcementPanel.SetBorder(true).SetTitle(" Coach ")

	ui.sessionTabWidgets = append(ui.sessionTabWidgets, ui.sessionPanel.Box)

	// Create session layout: session panel on top, announcements below
	ui.sessionFlex = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(ui.sessionPanel, 0, 1, true).
		AddItem(ui.announcementPanel, 3, 0, false)
}

// SetPlanList populates the plan selection list
func (ui *CursesUIViewImpl) SetPlanList(plans []plan.Plan) {
	ui.plans = plans
	ui.planList.Clear()

	for _, p := range plans {
		n := plan.Normalize(p)
		ui.planList.AddItem(p.Name, formatMinutes(n.TotalDuration()), 0, nil)
	}

	// Update details for first item if list is not empty
	if len(plans) > 0 {
		ui.updatePlanDetailsDisplay(0)
	}
}

// updatePlanDetailsDisplay formats and displays the plan details
func (ui *CursesUIViewImpl) updatePlanDetailsDisplay(index int) {
	if ui.planDetailsPanel == nil {
		return
	}

	var text string

	if index < 0 || index >= len(ui.plans) {
		text = "\n\n  [yellow]Plan Selection[white]\n\n"
		text += "  Select a plan from the list to view details.\n\n"
		text += "  [gray]Press Enter to start the selected plan.\n"
		text += "  Press C to resume a saved session.[white]\n"
	} else {
		n := plan.Normalize(ui.plans[index])
		text = "\n"
		text += fmt.Sprintf("  [yellow]%s[white]\n\n", n.Plan.Name)
		text += fmt.Sprintf("  [gray]Duration:[white] %s\n", formatMinutes(n.TotalDuration()))
		text += fmt.Sprintf("  [gray]Rounds:[white] %d\n\n", n.MaxRounds)

		if len(n.Plan.Warmup) > 0 {
			text += "  [gray]Warm-up:[white]\n"
			for _, s := range n.Plan.Warmup {
				text += fmt.Sprintf("    %s (%s)\n", s.Name, formatSeconds(s.DurationSeconds))
			}
			text += "\n"
		}

		text += "  [gray]Circuit:[white]\n"
		for _, ex := range n.Plan.Exercises {
			if ex.RepBased {
				text += fmt.Sprintf("    %s (%d reps)\n", ex.Name, ex.Reps)
			} else {
				text += fmt.Sprintf("    %s (%s)\n", ex.Name, formatSeconds(ex.WorkSeconds))
			}
		}

		if len(n.Plan.Cooldown) > 0 {
			text += "\n  [gray]Cool-down:[white]\n"
			for _, s := range n.Plan.Cooldown {
				text += fmt.Sprintf("    %s (%s)\n", s.Name, formatSeconds(s.DurationSeconds))
			}
		}

		text += "\n  [green]Press Enter to start this plan[white]\n"
	}

	ui.planDetailsPanel.SetText(text)
}

// SetMode switches the UI to the specified mode
func (ui *CursesUIViewImpl) SetMode(mode UIMode) {
	if ui.currentMode == mode {
		return
	}

	ui.currentMode = mode

	switch mode {
	case UIModePlanSelection:
		ui.pages.SwitchToPage(pagePlanSelection)
	case UIModeSession:
		ui.pages.SwitchToPage(pageSession)
	}

	ui.setFocusForCurrentMode()
	ui.app.Draw()
}

// GetCurrentMode returns the currently active UI mode
func (ui *CursesUIViewImpl) GetCurrentMode() UIMode {
	return ui.currentMode
}

// setFocusForCurrentMode sets focus to the first widget in the current mode
func (ui *CursesUIViewImpl) setFocusForCurrentMode() {
	widgets := ui.getTabWidgetsForCurrentMode()
	if len(widgets) > 0 {
		ui.app.SetFocus(widgets[0])
	}
}

// getTabWidgetsForCurrentMode returns the tab widgets for the current mode
func (ui *CursesUIViewImpl) getTabWidgetsForCurrentMode() []*tview.Box {
	switch ui.currentMode {
	case UIModePlanSelection:
		return ui.planSelectionTabWidgets
	case UIModeSession:
		return ui.sessionTabWidgets
	default:
		return nil
	}
}

// SetupKeyboardHandlers sets up keyboard event handlers
func (ui *CursesUIViewImpl) SetupKeyboardHandlers(controller *UIController) {
	ui.app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		// Number keys for mode switching (1-9)
		if event.Key() == tcell.KeyRune {
			if mode, ok := GetUIModeByKey(event.Rune()); ok {
				// Delegate to controller - it will update the model, which will notify us
				controller.OnModeChange(mode)
				return nil
			}
		}

		// Tab to switch focus between widgets in current mode
		if event.Key() == tcell.KeyTab {
			widgets := ui.getTabWidgetsForCurrentMode()
			widgetCount := len(widgets)
			if widgetCount > 0 {
				for i := 0; i < widgetCount+1; i++ {
					idx := i % widgetCount
					if widgets[idx].HasFocus() {
						nextIdx := (idx + 1) % widgetCount
						ui.app.SetFocus(widgets[nextIdx])
						break
					}
				}
			}
			return nil
		}

		// Escape to quit (saving any session in progress)
		if event.Key() == tcell.KeyEscape {
			controller.OnEscapeKey()
			return nil
		}

		// Mode-specific key handlers
		switch ui.currentMode {
		case UIModePlanSelection:
			// 'c' to resume a saved session
			if event.Key() == tcell.KeyRune && event.Rune() == 'c' {
				controller.ResumeSavedSession()
				return nil
			}
		case UIModeSession:
			if event.Key() == tcell.KeyRight {
				controller.SkipToNext()
				return nil
			}
			if event.Key() == tcell.KeyLeft {
				controller.SkipToPrevious()
				return nil
			}
			if event.Key() == tcell.KeyEnter {
				controller.MarkExerciseDone()
				return nil
			}
			if event.Key() == tcell.KeyRune {
				switch event.Rune() {
				case ' ':
					st := ui.model.GetSessionState()
					if st.ShowReadyCountdown {
						controller.SkipReadyCountdown()
					} else {
						controller.TogglePlayPause()
					}
					return nil
				case 's':
					controller.SkipRest()
					return nil
				case 'e':
					controller.ExtendRest()
					return nil
				case 'r':
					controller.RestartCurrentExercise()
					return nil
				case 'x':
					controller.StopSession()
					return nil
				}
			}
		}

		return event
	})
}

// GetLogViewHeight returns the visible height of the log view
func (ui *CursesUIViewImpl) GetLogViewHeight() int {
	_, _, _, height := ui.logView.GetInnerRect()
	return height
}

// ClearLogView clears the log view
func (ui *CursesUIViewImpl) ClearLogView() {
	ui.logView.Clear()
}

// WriteLogLine writes a line to the log view
func (ui *CursesUIViewImpl) WriteLogLine(line string) error {
	_, err := fmt.Fprint(ui.logView, line)
	return err
}

// Draw refreshes/redraws the UI
func (ui *CursesUIViewImpl) Draw() error {
	ui.app.Draw()
	return nil
}

// Run starts the UI and blocks until it exits
func (ui *CursesUIViewImpl) Run() error {
	// SetRoot must be called before setting focus, otherwise focus may be reset
	ui.app.SetRoot(ui.mainFlex, true)
	ui.setFocusForCurrentMode()
	return ui.app.Run()
}

// Stop stops the UI framework
func (ui *CursesUIViewImpl) Stop() {
	ui.app.Stop()
}

// UpdateSessionState updates the live session display
func (ui *CursesUIViewImpl) UpdateSessionState(state engine.State) {
	ui.updateSessionDisplay(state)
}

// ShowAnnouncement displays a coach announcement line
func (ui *CursesUIViewImpl) ShowAnnouncement(line string) {
	if ui.announcementPanel == nil {
		return
	}
	ui.announcementPanel.SetText(fmt.Sprintf("[yellow]%s[white]", line))
}

// updateSessionDisplay formats and displays the session state
func (ui *CursesUIViewImpl) updateSessionDisplay(state engine.State) {
	if ui.sessionPanel == nil {
		return
	}

	var text string

	switch {
	case !state.IsPlaying && state.Phase != engine.PhaseCompleted:
		text = "\n  [gray]No session in progress[white]\n\n"
		text += "  Go to Plan Selection (press 1) to start a session.\n"

	case state.Phase == engine.PhaseCompleted:
		text = ui.formatCompletedDisplay(state)

	case state.ShowReadyCountdown:
		text = "\n"
		text += fmt.Sprintf("  [yellow]%s[white]\n\n", state.PlanName)
		text += fmt.Sprintf("  [green]Get ready... %d[white]\n\n", state.CountdownRemaining)
		text += "  [gray]Press[white] [yellow]Space[white] [gray]to skip[white]\n"

	default:
		text = ui.formatActiveSessionDisplay(state)
	}

	ui.sessionPanel.SetText(text)
}

// formatActiveSessionDisplay formats the display for a live session
func (ui *CursesUIViewImpl) formatActiveSessionDisplay(state engine.State) string {
	var text string
	text = "\n"

	// Plan name and status
	if state.IsPaused {
		text += fmt.Sprintf("  [yellow]%s[white] [gray](PAUSED)[white]\n\n", state.PlanName)
	} else {
		text += fmt.Sprintf("  [yellow]%s[white]\n\n", state.PlanName)
	}

	// Current phase and step
	text += fmt.Sprintf("  [cyan]%s[white]\n", strings.ToUpper(state.Phase.String()))
	if state.Phase == engine.PhaseWorkout {
		text += fmt.Sprintf("  [gray]Round:[white] %d  [gray]Set:[white] %d\n", state.Round, state.SetIndex)
	}
	text += fmt.Sprintf("\n  [green]%s[white]\n", state.StepName)

	if state.ShowLeadInCountdown {
		text += fmt.Sprintf("  [yellow]Starting in %d...[white]\n\n", state.CountdownRemaining)
	} else if state.RepBased && state.Phase == engine.PhaseWorkout {
		text += fmt.Sprintf("  [gray]Reps:[white] %d\n", state.Reps)
		text += "  [gray]Press[white] [yellow]Enter[white] [gray]when done[white]\n\n"
	} else {
		text += fmt.Sprintf("  [gray]Time:[white] %s / %s\n\n", formatSeconds(state.TimeRemaining), formatSeconds(state.TotalTime))
	}

	// Rest controls
	if state.Phase == engine.PhaseRest {
		text += "  [yellow]S[white] Skip rest  |  [yellow]E[white] Extend rest\n\n"
	}

	// Overall progress
	text += fmt.Sprintf("  [gray]Progress:[white] %s %d%%\n", progressBar(state.ProgressPercent, 20), state.ProgressPercent)
	text += fmt.Sprintf("  [gray]Step:[white] %d/%d  [gray]Remaining:[white] %d exercises\n", state.OverallIndex+1, state.TotalUnits, state.ExercisesRemaining)
	text += fmt.Sprintf("  [gray]Elapsed:[white] %s\n", formatSeconds(state.ElapsedSeconds))

	// Controls hint
	text += "\n  [gray]------------------------[white]\n"
	if state.IsPaused {
		text += "  [yellow]Space[white] Resume  |  [yellow]X[white] Stop\n"
	} else {
		text += "  [yellow]Space[white] Pause  |  [yellow]<-[white]/[yellow]->[white] Skip  |  [yellow]R[white] Restart  |  [yellow]X[white] Stop\n"
	}

	return text
}

// formatCompletedDisplay formats the summary shown after a session ends
func (ui *CursesUIViewImpl) formatCompletedDisplay(state engine.State) string {
	var text string
	text = "\n"
	text += fmt.Sprintf("  [yellow]%s[white]\n\n", state.PlanName)
	text += "  [green]Session complete![white]\n\n"
	text += fmt.Sprintf("  [gray]Exercises completed:[white] %d\n", state.Stats.CompletedCount)
	text += fmt.Sprintf("  [gray]Exercises skipped:[white]   %d\n", state.Stats.SkippedCount)
	text += fmt.Sprintf("  [gray]Sets:[white] %d/%d\n", state.Stats.CompletedSets, state.Stats.TotalSets)
	text += fmt.Sprintf("  [gray]Total time:[white] %s\n", formatSeconds(state.ElapsedSeconds))
	text += "\n  [gray]Press 1 to pick another plan.[white]\n"
	return text
}

// progressBar renders a fixed-width text progress bar.
func progressBar(percent, width int) string {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	filled := percent * width / 100
	return "[" + strings.Repeat("=", filled) + strings.Repeat(" ", width-filled) + "]"
}
