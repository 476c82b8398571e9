package executor

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"sync"
	"time"

	"github.com/Cyclone1070/agentgate/internal/config"
)

// Result represents the outcome of a command execution.
type Result struct {
	Stdout    string
	Stderr    string
	ExitCode  int
	Truncated bool
	TimedOut  bool
	Duration  time.Duration
}

// OSCommandExecutor runs argument vectors as child processes.
// Each child gets its own process group so that a timeout or cancellation
// takes down everything it spawned.
type OSCommandExecutor struct {
	config *config.Config
}

// NewOSCommandExecutor creates a new OSCommandExecutor with injected config.
func NewOSCommandExecutor(cfg *config.Config) *OSCommandExecutor {
	if cfg == nil {
		panic("cfg is required")
	}
	return &OSCommandExecutor{config: cfg}
}

// RunWithTimeout executes command in dir and waits at most timeout.
//
// A non-zero exit status is not an error; it is reported in Result.ExitCode.
// The command is finished when its leader exits; background jobs it left in
// its process group are killed then.
// On timeout the process group is interrupted, then killed after the
// configured grace period, and a *TimeoutError is returned with the partial
// Result. On ctx cancellation the group is killed and ctx.Err() is returned.
func (f *OSCommandExecutor) RunWithTimeout(ctx context.Context, command []string, dir string, env []string, timeout time.Duration) (*Result, error) {
	if len(command) == 0 {
		return nil, os.ErrInvalid
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	maxBytes := int(f.config.Tools.MaxCommandOutputSize)
	sample := f.config.Tools.BinaryDetectionSampleSize
	stdout := newCollector(maxBytes, sample)
	stderr := newCollector(maxBytes, sample)
	grace := time.Duration(f.config.Tools.GracefulShutdownMs) * time.Millisecond

	// Output goes through our own pipes so Wait returns when the leader exits,
	// even if a background child still holds the write end.
	outR, outW, err := os.Pipe()
	if err != nil {
		return nil, &CommandError{Cmd: command[0], Cause: err, Stage: "start"}
	}
	defer outR.Close()
	errR, errW, err := os.Pipe()
	if err != nil {
		outW.Close()
		return nil, &CommandError{Cmd: command[0], Cause: err, Stage: "start"}
	}
	defer errR.Close()

	// We don't use CommandContext because we want to handle graceful shutdown
	cmd := exec.Command(command[0], command[1:]...)
	cmd.Dir = dir
	cmd.Env = env
	cmd.Stdin = nil
	cmd.Stdout = outW
	cmd.Stderr = errW
	setProcessGroup(cmd)

	start := time.Now()
	startErr := cmd.Start()
	outW.Close()
	errW.Close()
	if startErr != nil {
		return nil, &CommandError{Cmd: command[0], Cause: startErr, Stage: "start"}
	}

	var copies sync.WaitGroup
	copies.Add(2)
	go func() {
		defer copies.Done()
		_, _ = io.Copy(stdout, outR)
	}()
	go func() {
		defer copies.Done()
		_, _ = io.Copy(stderr, errR)
	}()

	done := make(chan error, 1)
	go func() {
		done <- cmd.Wait()
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	var waitErr, execErr error
	timedOut := false
	select {
	case waitErr = <-done:
	case <-ctx.Done():
		killGroup(cmd)
		waitErr = <-done
		execErr = ctx.Err()
	case <-timer.C:
		timedOut = true
		interruptGroup(cmd)
		select {
		case waitErr = <-done:
		case <-time.After(grace):
			killGroup(cmd)
			waitErr = <-done
		}
		execErr = &TimeoutError{Cmd: command[0], Timeout: timeout}
	}

	// The leader is gone; anything left in its group is a background job.
	killGroup(cmd)
	drained := make(chan struct{})
	go func() {
		copies.Wait()
		close(drained)
	}()
	select {
	case <-drained:
	case <-time.After(grace):
		// A child that left the group still holds the pipes.
		outR.Close()
		errR.Close()
		<-drained
	}

	res := &Result{
		Stdout:    stdout.String(),
		Stderr:    stderr.String(),
		ExitCode:  exitCode(waitErr),
		Truncated: stdout.Truncated() || stderr.Truncated(),
		TimedOut:  timedOut,
		Duration:  time.Since(start),
	}
	if timedOut {
		res.ExitCode = -1
	}

	if execErr == nil && waitErr != nil && !isExitError(waitErr) {
		execErr = &CommandError{Cmd: command[0], Cause: waitErr, Stage: "execution"}
	}
	return res, execErr
}

func isExitError(err error) bool {
	var exitErr *exec.ExitError
	return errors.As(err, &exitErr)
}

func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}
