package app

import (
	"context"
	"fmt"

	"f1-race-analysis/internal/config"
	"f1-race-analysis/internal/controllers"
	"f1-race-analysis/internal/f1data"
	"f1-race-analysis/internal/gui"
	"f1-race-analysis/internal/launcher"
	"f1-race-analysis/internal/logger"
	"f1-race-analysis/internal/services"
	"f1-race-analysis/internal/shutdown"
	"f1-race-analysis/internal/timing"
	"f1-race-analysis/internal/views"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
)

const (
	AppName         = "F1 Race Analysis"
	AppID           = "com.f1raceanalysis.launcher"
	MinWindowWidth  = 1000
	MinWindowHeight = 700
)

var _ controllers.View = (*views.MainView)(nil)

// Version is overridden at build time
var Version = "1.0.0"

type Application struct {
	fyneApp    fyne.App
	window     fyne.Window
	logger     logger.Logger
	config     *config.Config
	client     *f1data.Client
	controller *controllers.MainController
	view       *views.MainView
	lifecycle  *Lifecycle
	shutdown   *shutdown.Manager

	ctx    context.Context
	cancel context.CancelFunc
}

// NewApplication builds the window and wires every component. It must
// be called on the main goroutine.
func NewApplication(cfg *config.Config, log logger.Logger) (*Application, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	fyneApp := app.NewWithID(AppID)
	window := fyneApp.NewWindow(AppName)
	window.Resize(fyne.NewSize(MinWindowWidth, MinWindowHeight))
	window.CenterOnScreen()
	window.SetMaster()

	return newApplication(fyneApp, window, cfg, log, gui.FyneDispatcher{}, launcher.ExecSpawner{}), nil
}

func newApplication(fyneApp fyne.App, window fyne.Window, cfg *config.Config, log logger.Logger,
	ui gui.Dispatcher, spawner launcher.Spawner) *Application {
	ctx, cancel := context.WithCancel(context.Background())

	log.Info("Application", "starting application", map[string]interface{}{
		"version":  Version,
		"api":      cfg.APIBaseURL,
		"season":   cfg.CurrentSeason,
		"viewer":   cfg.Viewer.EntryPoint,
		"cacheDir": cfg.CacheDir,
	})

	client := f1data.NewClient(f1data.Options{
		BaseURL:     cfg.APIBaseURL,
		Timeout:     cfg.HTTPTimeout,
		CacheDir:    cfg.CacheDir,
		CacheMaxAge: cfg.CacheMaxAge,
	}, log)

	view := views.NewMainView(window, views.Metadata{
		AppName: AppName,
		Version: Version,
		Seasons: cfg.Seasons(),
	})

	timings := timing.NewTracker(log)

	schedule := services.NewScheduleLoader(ctx, client, ui, log)
	sessions := launcher.New(ctx, launcher.Options{
		Viewer:            cfg.Viewer,
		ReadyPollInterval: cfg.ReadyPollInterval,
		ExitPollInterval:  cfg.ExitPollInterval,
	}, launcher.Dependencies{
		Source:  client,
		Spawner: spawner,
		Surface: view,
		UI:      ui,
		Poller:  gui.NewTickerPoller(ui),
		Logger:  log,
		Timing:  timings,
	})

	controller := controllers.NewMainController(schedule, sessions, log, cfg.CurrentSeason)
	controller.SetMainView(view)

	lifecycle := NewLifecycle(controller, client, cancel, log)
	lifecycle.SetTimings(timings)

	shutdownMgr := shutdown.NewManager(ui, fyneApp.Quit, log)
	shutdownMgr.Register("lifecycle", lifecycle)

	return &Application{
		fyneApp:    fyneApp,
		window:     window,
		logger:     log,
		config:     cfg,
		client:     client,
		controller: controller,
		view:       view,
		lifecycle:  lifecycle,
		shutdown:   shutdownMgr,
		ctx:        ctx,
		cancel:     cancel,
	}
}

func (a *Application) setupWindowEvents() {
	a.window.SetCloseIntercept(func() {
		a.logger.Info("Application", "shutdown requested", nil)
		a.lifecycle.Shutdown()
		a.window.Close()
	})
}

// Run shows the window, loads the default season and blocks until the
// application quits.
func (a *Application) Run() error {
	a.setupWindowEvents()
	a.shutdown.Listen()

	a.view.Show()
	a.controller.Start()

	a.logger.Info("Application", "GUI displayed", nil)
	a.fyneApp.Run()

	a.lifecycle.Shutdown()
	return nil
}
