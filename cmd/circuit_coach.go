package main

import (
	"fmt"
	"os"

	"github.com/rivo/tview"
	"github.com/spf13/pflag"

	"github.com/lowaak/circuit-coach/internal/coach"
	"github.com/lowaak/circuit-coach/internal/config"
	"github.com/lowaak/circuit-coach/internal/engine"
	"github.com/lowaak/circuit-coach/internal/logging"
	"github.com/lowaak/circuit-coach/internal/plan"
)

func main() {
	cfgFile := pflag.String("config", "", "path to config file")
	planDir := pflag.String("plans", "", "directory of YAML workout plans (overrides config)")
	logFile := pflag.String("log-file", "", "log file path (overrides config)")
	pflag.Parse()

	cfg, err := config.Load(*cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *planDir != "" {
		cfg.PlanDir = *planDir
	}
	if *logFile != "" {
		cfg.Log.File = *logFile
	}

	logger, uiLogChan := logging.New(cfg.Log)
	logger.Printf("circuit-coach starting")

	timing := engine.Timing{
		ReadyCountdownSeconds:  cfg.ReadyCountdownSeconds,
		LeadInCountdownSeconds: cfg.LeadInCountdownSeconds,
		TransitionRestSeconds:  cfg.TransitionRestSeconds,
		RestExtensionSeconds:   cfg.RestExtensionSeconds,
	}

	eng := engine.NewEngine(timing, logger)
	snapshots := engine.NewSnapshotStore(logger)

	model := coach.NewUIModel(eng, logger, uiLogChan)
	controller := coach.NewUIController(model, eng, snapshots, logger)

	// Built-in library first, then any user plans from the plan dir
	plans := append([]plan.Plan{}, plan.Library...)
	if cfg.PlanDir != "" {
		plans = append(plans, plan.LoadDir(cfg.PlanDir, logger)...)
	}
	model.SetPlans(plans)
	logger.Printf("%d plans available", len(plans))

	app := tview.NewApplication()
	view := coach.NewCursesUIView(logger, app, model)
	baseView := coach.NewBaseUIView(coach.NewBaseUIViewArg{
		UIViewImpl:   view,
		UIModel:      model,
		UIController: controller,
		Logger:       logger,
	})

	runErr := baseView.Run()

	baseView.Shutdown()
	model.Shutdown()
	controller.Shutdown()

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "UI error: %v\n", runErr)
		os.Exit(1)
	}
	logger.Printf("circuit-coach exiting")
}
