package launcher

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"f1-race-analysis/internal/models"
)

type queueDispatcher struct {
	ch chan func()
}

func newQueueDispatcher() *queueDispatcher {
	return &queueDispatcher{ch: make(chan func(), 16)}
}

func (q *queueDispatcher) Do(fn func()) {
	q.ch <- fn
}

func (q *queueDispatcher) runNext(t *testing.T) {
	t.Helper()
	select {
	case fn := <-q.ch:
		fn()
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for UI callback")
	}
}

type manualPoll struct {
	interval time.Duration
	tick     func() bool
	stopped  bool
}

// manualPoller only ticks when the test says so
type manualPoller struct {
	polls []*manualPoll
}

func (m *manualPoller) Every(interval time.Duration, tick func() bool) func() {
	p := &manualPoll{interval: interval, tick: tick}
	m.polls = append(m.polls, p)
	return func() { p.stopped = true }
}

func (m *manualPoller) active() []*manualPoll {
	var out []*manualPoll
	for _, p := range m.polls {
		if !p.stopped {
			out = append(out, p)
		}
	}
	return out
}

func (m *manualPoller) tickAll() {
	for _, p := range m.active() {
		if !p.tick() {
			p.stopped = true
		}
	}
}

type fakeProcess struct {
	pid        int
	running    atomic.Bool
	terminated bool
}

func newFakeProcess(pid int) *fakeProcess {
	p := &fakeProcess{pid: pid}
	p.running.Store(true)
	return p
}

func (p *fakeProcess) Pid() int      { return p.pid }
func (p *fakeProcess) Running() bool { return p.running.Load() }
func (p *fakeProcess) exit()         { p.running.Store(false) }

func (p *fakeProcess) Terminate() error {
	p.terminated = true
	p.running.Store(false)
	return nil
}

type fakeSpawner struct {
	err      error
	commands []Command
	procs    []*fakeProcess
}

func (s *fakeSpawner) Spawn(cmd Command) (Process, error) {
	s.commands = append(s.commands, cmd)
	if s.err != nil {
		return nil, s.err
	}
	p := newFakeProcess(1000 + len(s.procs))
	s.procs = append(s.procs, p)
	return p, nil
}

func (s *fakeSpawner) last() *fakeProcess {
	return s.procs[len(s.procs)-1]
}

func (s *fakeSpawner) readyPath() string {
	args := s.commands[len(s.commands)-1].Args
	return args[len(args)-1]
}

type sessionCall struct {
	year, round int
	code        string
}

type fakeSessionSource struct {
	err   error
	calls chan sessionCall
}

func newFakeSessionSource() *fakeSessionSource {
	return &fakeSessionSource{calls: make(chan sessionCall, 8)}
}

func (f *fakeSessionSource) EnableCache() error {
	return errors.New("cache disabled in tests")
}

func (f *fakeSessionSource) LoadSession(ctx context.Context, year, round int, code string) (*models.SessionData, error) {
	f.calls <- sessionCall{year, round, code}
	if f.err != nil {
		return nil, f.err
	}
	return &models.SessionData{Year: year, Round: round, Code: code, EventName: "Test Grand Prix", Entries: 20}, nil
}

type fakeSurface struct {
	openProgress int
	progress     []string
	errorTitles  []string
	errs         []error
	warnings     []string
	hidden       bool
	restores     int
}

func (s *fakeSurface) ShowProgress(message string) func() {
	s.openProgress++
	s.progress = append(s.progress, message)
	return func() { s.openProgress-- }
}

func (s *fakeSurface) ShowError(title string, err error) {
	s.errorTitles = append(s.errorTitles, title)
	s.errs = append(s.errs, err)
}

func (s *fakeSurface) ShowWarning(title, message string) {
	s.warnings = append(s.warnings, message)
}

func (s *fakeSurface) HideWindow() {
	s.hidden = true
}

func (s *fakeSurface) RestoreWindow() {
	s.hidden = false
	s.restores++
}
