// Package toolrun invokes external tools as subprocesses with captured output.
//
// A Tool is a capability value naming an executable and its fixed arguments.
// Run blocks until the child exits; a non-zero exit status is data for the
// caller, not an error. Only a failure to launch the program is an error.
package toolrun

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"syscall"
	"time"
)

// Tool is an external program invocation: the executable followed by
// its fixed arguments.
type Tool struct {
	Command []string
}

// WithArgs returns a copy of the tool with extra arguments appended.
func (t Tool) WithArgs(args ...string) Tool {
	cmd := make([]string, 0, len(t.Command)+len(args))
	cmd = append(cmd, t.Command...)
	cmd = append(cmd, args...)
	return Tool{Command: cmd}
}

func (t Tool) String() string {
	return strings.Join(t.Command, " ")
}

// Result is the outcome of one completed tool invocation.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Run spawns the tool, writes stdin to its standard input when non-empty,
// and waits for it to exit. The child runs in its own process group and is
// killed as a tree if ctx is canceled.
func Run(ctx context.Context, tool Tool, stdin string) (Result, error) {
	if len(tool.Command) == 0 {
		return Result{}, fmt.Errorf("toolrun: empty command")
	}

	cmd := exec.CommandContext(ctx, tool.Command[0], tool.Command[1:]...)
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		return syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
	}
	cmd.WaitDelay = 3 * time.Second

	if stdin != "" {
		cmd.Stdin = strings.NewReader(stdin)
	}
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return Result{
				ExitCode: exitErr.ExitCode(),
				Stdout:   stdout.String(),
				Stderr:   stderr.String(),
			}, nil
		}
		return Result{}, fmt.Errorf("toolrun: start %q: %w", tool.Command[0], err)
	}

	return Result{
		ExitCode: 0,
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
	}, nil
}
