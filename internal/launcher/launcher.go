package launcher

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"f1-race-analysis/internal/config"
	"f1-race-analysis/internal/gui"
	"f1-race-analysis/internal/logger"
	"f1-race-analysis/internal/models"
	"f1-race-analysis/internal/timing"
)

const component = "SessionLauncher"

var (
	// ErrExitedEarly means the viewer quit before creating its ready marker
	ErrExitedEarly = errors.New("playback process exited before signaling readiness")
)

// Phase is where a launch attempt currently is
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseWaitingReady
	PhaseMonitoring
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseWaitingReady:
		return "waiting_ready"
	case PhaseMonitoring:
		return "monitoring"
	default:
		return "idle"
	}
}

// SessionSource loads session data before the viewer starts
type SessionSource interface {
	EnableCache() error
	LoadSession(ctx context.Context, year, round int, code string) (*models.SessionData, error)
}

// Surface is the part of the main window the launcher drives
type Surface interface {
	// ShowProgress opens a modal indicator and returns its close function
	ShowProgress(message string) (close func())
	ShowError(title string, err error)
	ShowWarning(title, message string)
	HideWindow()
	RestoreWindow()
}

type Options struct {
	Viewer            config.ViewerConfig
	ReadyDir          string
	ReadyPollInterval time.Duration
	ExitPollInterval  time.Duration
}

type Dependencies struct {
	Source  SessionSource
	Spawner Spawner
	Surface Surface
	UI      gui.Dispatcher
	Poller  gui.Poller
	Logger  logger.Logger
	Timing  *timing.Tracker
}

// Launcher loads a session, starts the viewer for it and hides the main
// window while the viewer runs. At most one viewer is active at a time.
// All state below is owned by the UI goroutine.
type Launcher struct {
	ctx  context.Context
	opts Options
	deps Dependencies

	monitor *Monitor

	phase         Phase
	proc          Process
	readyPath     string
	stopReady     func()
	closeProgress func()

	stopLoadTimer    func() time.Duration
	stopStartupTimer func() time.Duration
	stopRuntimeTimer func() time.Duration
}

func New(ctx context.Context, opts Options, deps Dependencies) *Launcher {
	if deps.Logger == nil {
		deps.Logger = logger.NoOp{}
	}
	if deps.Timing == nil {
		deps.Timing = timing.NewTracker(deps.Logger)
	}

	return &Launcher{
		ctx:     ctx,
		opts:    opts,
		deps:    deps,
		monitor: NewMonitor(deps.Poller, opts.ExitPollInterval, deps.Logger),
	}
}

// Phase returns the current phase
func (l *Launcher) Phase() Phase {
	return l.phase
}

// Process returns the tracked viewer, if any
func (l *Launcher) Process() Process {
	return l.proc
}

// ClearProcess drops the viewer handle and returns to idle
func (l *Launcher) ClearProcess() {
	l.proc = nil
	l.readyPath = ""
	l.phase = PhaseIdle
}

// Launch starts a launch attempt for req. It returns false when the
// attempt was rejected because another one is still active.
func (l *Launcher) Launch(req models.SessionRequest) bool {
	if l.busy() {
		l.deps.Logger.Warning(component, "launch rejected, replay in progress", map[string]interface{}{
			"phase": l.phase.String(),
		})
		l.deps.Surface.ShowWarning("Replay Running",
			"A replay is already in progress.\nPlease close it before starting a new one.")
		return false
	}

	l.phase = PhaseLoading
	l.closeProgress = l.deps.Surface.ShowProgress("Loading session data...")
	l.stopLoadTimer = l.deps.Timing.Start(timing.SessionLoad)

	l.deps.Logger.Info(component, "loading session", map[string]interface{}{
		"year":    req.Year,
		"round":   req.RoundNumber,
		"session": req.Code(),
	})

	go func() {
		if err := l.deps.Source.EnableCache(); err != nil {
			l.deps.Logger.Debug(component, "cache unavailable", map[string]interface{}{
				"error": err.Error(),
			})
		}

		data, err := l.deps.Source.LoadSession(l.ctx, req.Year, req.RoundNumber, req.Code())

		l.deps.UI.Do(func() {
			if l.phase != PhaseLoading {
				// shut down while loading
				return
			}
			l.stopTimer(&l.stopLoadTimer)
			if err != nil {
				l.onLoadFailed(err)
				return
			}
			l.onLoaded(req, data)
		})
	}()

	return true
}

// busy clears a handle whose process has already ended and reports
// whether an attempt is still active.
func (l *Launcher) busy() bool {
	if l.proc != nil {
		if l.proc.Running() {
			return true
		}
		l.monitor.Stop()
		switch l.phase {
		case PhaseMonitoring:
			l.onViewerExited()
		case PhaseWaitingReady:
			l.abandonWaiting()
		}
		l.ClearProcess()
	}
	return l.phase == PhaseLoading || l.phase == PhaseWaitingReady
}

// abandonWaiting drops a ready wait whose viewer already exited
func (l *Launcher) abandonWaiting() {
	if l.stopReady != nil {
		l.stopReady()
		l.stopReady = nil
	}
	l.stopStartupTimer = nil
	l.dismissProgress()
	if l.readyPath != "" {
		_ = os.Remove(l.readyPath)
	}
	l.deps.Logger.Warning(component, "viewer exited before signaling readiness", nil)
}

func (l *Launcher) onLoadFailed(err error) {
	l.dismissProgress()
	l.phase = PhaseIdle
	l.deps.Logger.Error(component, err, nil)
	l.deps.Surface.ShowError("Load error", fmt.Errorf("failed to load session data: %w", err))
}

func (l *Launcher) onLoaded(req models.SessionRequest, data *models.SessionData) {
	readyPath := NewReadyPath(l.opts.ReadyDir)
	cmd := BuildCommand(l.opts.Viewer, req, readyPath)

	proc, err := l.deps.Spawner.Spawn(cmd)
	if err != nil {
		l.dismissProgress()
		l.ClearProcess()
		l.deps.Logger.Error(component, err, map[string]interface{}{
			"command": cmd.Path,
		})
		l.deps.Surface.ShowError("Playback error", fmt.Errorf("failed to start playback: %w", err))
		return
	}

	fields := map[string]interface{}{
		"pid":        proc.Pid(),
		"ready_file": readyPath,
		"args":       cmd.Args,
	}
	if data != nil {
		fields["event"] = data.EventName
	}
	l.deps.Logger.Info(component, "viewer started", fields)

	l.proc = proc
	l.readyPath = readyPath
	l.phase = PhaseWaitingReady
	l.stopStartupTimer = l.deps.Timing.Start(timing.ViewerStartup)
	l.stopReady = l.deps.Poller.Every(l.opts.ReadyPollInterval, l.checkReady)
}

func (l *Launcher) checkReady() bool {
	if _, err := os.Stat(l.readyPath); err == nil {
		l.stopReady = nil
		_ = os.Remove(l.readyPath)
		l.dismissProgress()

		l.deps.Surface.HideWindow()
		l.phase = PhaseMonitoring
		l.monitor.Start(l, l.onViewerExited)

		l.deps.Logger.Info(component, "viewer ready, main window hidden", map[string]interface{}{
			"startup_ms": l.stopTimer(&l.stopStartupTimer).Milliseconds(),
		})
		l.stopRuntimeTimer = l.deps.Timing.Start(timing.ViewerRuntime)
		return false
	}

	if l.proc == nil || !l.proc.Running() {
		l.stopReady = nil
		l.stopStartupTimer = nil
		l.dismissProgress()
		l.ClearProcess()
		l.deps.Logger.Error(component, ErrExitedEarly, nil)
		l.deps.Surface.ShowError("Playback error", ErrExitedEarly)
		return false
	}

	return true
}

func (l *Launcher) onViewerExited() {
	l.stopTimer(&l.stopRuntimeTimer)
	l.deps.Surface.RestoreWindow()
}

// stopTimer records a running timer once and forgets it
func (l *Launcher) stopTimer(stop *func() time.Duration) time.Duration {
	if *stop == nil {
		return 0
	}
	elapsed := (*stop)()
	*stop = nil
	return elapsed
}

// dismissProgress closes the progress indicator. A panicking close must
// not leave the launcher stuck in a phase.
func (l *Launcher) dismissProgress() {
	closeFn := l.closeProgress
	l.closeProgress = nil
	if closeFn == nil {
		return
	}

	defer func() {
		if r := recover(); r != nil {
			l.deps.Logger.Warning(component, "closing progress indicator failed", map[string]interface{}{
				"panic": fmt.Sprint(r),
			})
		}
	}()
	closeFn()
}

// Shutdown stops polling and terminates a running viewer
func (l *Launcher) Shutdown() {
	if l.stopReady != nil {
		l.stopReady()
		l.stopReady = nil
	}
	l.monitor.Stop()
	l.dismissProgress()
	l.stopTimer(&l.stopRuntimeTimer)

	if l.proc != nil && l.proc.Running() {
		l.deps.Logger.Info(component, "terminating viewer", map[string]interface{}{
			"pid": l.proc.Pid(),
		})
		if err := l.proc.Terminate(); err != nil {
			l.deps.Logger.Error(component, err, nil)
		}
	}
	if l.readyPath != "" {
		_ = os.Remove(l.readyPath)
	}
	l.ClearProcess()
}
