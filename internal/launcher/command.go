package launcher

import (
	"encoding/hex"
	"os"
	"path/filepath"
	"strconv"

	"github.com/google/uuid"

	"f1-race-analysis/internal/config"
	"f1-race-analysis/internal/models"
)

// Command is a fully resolved process invocation
type Command struct {
	Path string
	Args []string
}

// BuildCommand assembles the viewer invocation:
//
//	<interpreter> <entry-point> --viewer [--year Y] [--round R] [flag] --ready-file <path>
//
// The year is left out when not positive and the round when unknown. Without an interpreter the
// entry point is the executable.
func BuildCommand(viewer config.ViewerConfig, req models.SessionRequest, readyPath string) Command {
	cmd := Command{Path: viewer.EntryPoint}
	if viewer.Interpreter != "" {
		cmd.Path = viewer.Interpreter
		cmd.Args = append(cmd.Args, viewer.EntryPoint)
	}

	cmd.Args = append(cmd.Args, "--viewer")
	if req.Year > 0 {
		cmd.Args = append(cmd.Args, "--year", strconv.Itoa(req.Year))
	}
	if req.RoundNumber != models.NoRound {
		cmd.Args = append(cmd.Args, "--round", strconv.Itoa(req.RoundNumber))
	}
	if flag := req.Kind.Flag(); flag != "" {
		cmd.Args = append(cmd.Args, flag)
	}
	cmd.Args = append(cmd.Args, "--ready-file", readyPath)

	return cmd
}

// NewReadyPath returns a unique marker path in dir, or in the system temp
// directory when dir is empty. The file itself is not created.
func NewReadyPath(dir string) string {
	if dir == "" {
		dir = os.TempDir()
	}
	id := uuid.New()
	return filepath.Join(dir, "f1_ready_"+hex.EncodeToString(id[:]))
}
