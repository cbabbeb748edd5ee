package launcher

import (
	"os"
	"os/exec"

	"github.com/shirou/gopsutil/v3/process"
)

// Process is a handle on a spawned viewer
type Process interface {
	Pid() int
	// Running reports whether the process has not exited yet
	Running() bool
	Terminate() error
}

// Spawner starts processes
type Spawner interface {
	Spawn(cmd Command) (Process, error)
}

// ExecSpawner starts real OS processes that share this process's stdio.
type ExecSpawner struct{}

func (ExecSpawner) Spawn(cmd Command) (Process, error) {
	c := exec.Command(cmd.Path, cmd.Args...)
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr

	if err := c.Start(); err != nil {
		return nil, err
	}

	p := &execProcess{cmd: c, done: make(chan struct{})}
	go func() {
		p.err = c.Wait()
		close(p.done)
	}()
	return p, nil
}

type execProcess struct {
	cmd  *exec.Cmd
	done chan struct{}
	err  error
}

func (p *execProcess) Pid() int {
	return p.cmd.Process.Pid
}

func (p *execProcess) Running() bool {
	select {
	case <-p.done:
		return false
	default:
		return true
	}
}

func (p *execProcess) Terminate() error {
	if !p.Running() {
		return nil
	}
	if err := p.cmd.Process.Kill(); err != nil && p.Running() {
		return err
	}
	<-p.done
	return nil
}

// Stats is a resource snapshot of a running process
type Stats struct {
	RSSBytes   uint64
	CPUPercent float64
}

// ReadStats samples memory and CPU usage for pid
func ReadStats(pid int) (Stats, error) {
	proc, err := process.NewProcess(int32(pid))
	if err != nil {
		return Stats{}, err
	}

	mem, err := proc.MemoryInfo()
	if err != nil {
		return Stats{}, err
	}
	cpu, err := proc.CPUPercent()
	if err != nil {
		return Stats{}, err
	}

	return Stats{RSSBytes: mem.RSS, CPUPercent: cpu}, nil
}
