package shutdown

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"f1-race-analysis/internal/gui"
	"f1-race-analysis/internal/logger"
)

type Shutdownable interface {
	Shutdown()
}

// Func adapts a plain function to Shutdownable
type Func func()

func (f Func) Shutdown() { f() }

type entry struct {
	name      string
	component Shutdownable
}

// Manager runs registered components in reverse registration order when
// the process receives SIGINT or SIGTERM, then quits the application.
// Components run on the UI goroutine.
type Manager struct {
	ui     gui.Dispatcher
	quit   func()
	logger logger.Logger

	mu         sync.Mutex
	components []entry
	done       chan struct{}
	ctx        context.Context
	cancel     context.CancelFunc
	signals    chan os.Signal
}

func NewManager(ui gui.Dispatcher, quit func(), log logger.Logger) *Manager {
	if log == nil {
		log = logger.NoOp{}
	}
	ctx, cancel := context.WithCancel(context.Background())

	return &Manager{
		ui:      ui,
		quit:    quit,
		logger:  log,
		done:    make(chan struct{}),
		ctx:     ctx,
		cancel:  cancel,
		signals: make(chan os.Signal, 1),
	}
}

func (m *Manager) Register(name string, component Shutdownable) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.components = append(m.components, entry{name: name, component: component})
}

// Listen installs the signal handler. It returns immediately.
func (m *Manager) Listen() {
	signal.Notify(m.signals, os.Interrupt, syscall.SIGTERM)

	go func() {
		select {
		case sig := <-m.signals:
			m.logger.Info("ShutdownManager", "shutdown signal received", map[string]interface{}{
				"signal": sig.String(),
			})
			m.ui.Do(func() {
				m.Shutdown()
				if m.quit != nil {
					m.quit()
				}
			})
		case <-m.ctx.Done():
		}
	}()
}

// Shutdown runs every registered component once. Later calls do nothing.
func (m *Manager) Shutdown() {
	m.mu.Lock()
	select {
	case <-m.done:
		m.mu.Unlock()
		return
	default:
		close(m.done)
	}
	components := m.components
	m.mu.Unlock()

	signal.Stop(m.signals)
	m.cancel()

	m.logger.Info("ShutdownManager", "shutdown sequence initiated", map[string]interface{}{
		"components": len(components),
	})

	for i := len(components) - 1; i >= 0; i-- {
		m.run(components[i])
	}

	m.logger.Info("ShutdownManager", "shutdown sequence completed", nil)
}

func (m *Manager) run(e entry) {
	defer func() {
		if r := recover(); r != nil {
			m.logger.Error("ShutdownManager", fmt.Errorf("component %s panicked: %v", e.name, r), nil)
		}
	}()

	e.component.Shutdown()
	m.logger.Debug("ShutdownManager", "component stopped", map[string]interface{}{
		"component": e.name,
	})
}

func (m *Manager) Context() context.Context {
	return m.ctx
}

func (m *Manager) Done() <-chan struct{} {
	return m.done
}
