package launcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"time"
)

// FailureExitCode is returned when the launcher itself fails.
const FailureExitCode = 1

// terminationGracePeriod is how long an interrupted child may take to exit before it is killed.
const terminationGracePeriod = 10 * time.Second

// ErrLaunchFailed is returned when the artifact could not be started or waited for.
var ErrLaunchFailed = errors.New("launch failed")

// Streams are the standard streams handed to the child process.
type Streams struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// StandardStreams returns the streams of the current process.
func StandardStreams() Streams {
	return Streams{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// Exec starts binaryPath with args, waits for it and returns its exit code.
// Cancelling ctx interrupts the child.
func Exec(ctx context.Context, binaryPath string, args []string, streams Streams) (int, error) {
	cmd := exec.CommandContext(ctx, binaryPath, args...)
	cmd.Stdin = streams.Stdin
	cmd.Stdout = streams.Stdout
	cmd.Stderr = streams.Stderr
	cmd.Cancel = func() error {
		return interrupt(cmd.Process)
	}
	cmd.WaitDelay = terminationGracePeriod

	if err := cmd.Start(); err != nil {
		return FailureExitCode, fmt.Errorf("%w: start %s: %w", ErrLaunchFailed, binaryPath, err)
	}

	err := cmd.Wait()
	if err == nil {
		return 0, nil
	}

	// After an interrupt Wait reports the context error even when the child
	// shut down on its own terms.
	if state := cmd.ProcessState; state != nil && state.Exited() {
		return state.ExitCode(), nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		code := exitErr.ExitCode()
		if code < 0 {
			// Terminated by a signal.
			code = FailureExitCode
		}

		return code, nil
	}

	return FailureExitCode, fmt.Errorf("%w: wait for %s: %w", ErrLaunchFailed, binaryPath, err)
}

func interrupt(process *os.Process) error {
	if runtime.GOOS == "windows" {
		return process.Kill()
	}

	return process.Signal(os.Interrupt)
}
