package entrypoint

import (
	"bytes"
	"context"
	"io"
	"os/exec"
	"time"

	"github.com/pingcap/errors"
)

const waitDelay = 2 * time.Second

// Output captures the result of running an entrypoint.
type Output struct {
	// ExitCode is -1 when the child was terminated by a signal.
	ExitCode int
	Stdout   string
	Stderr   string
	Duration time.Duration
}

// Exited reports whether the child exited on its own with a status.
func (o *Output) Exited() bool {
	return o.ExitCode >= 0
}

// Runner executes resolved commands.
type Runner struct {
	// Dir is the working directory of the child; empty means inherit.
	Dir string
	// Stdout and Stderr, when set, receive the child's output as it is
	// produced in addition to it being captured.
	Stdout io.Writer
	Stderr io.Writer
}

// Run executes c with extra appended to its arguments. A non-zero exit is
// reported through Output.ExitCode, not as an error; the error is reserved for
// spawn failures and context cancellation.
func (r *Runner) Run(ctx context.Context, c *Command, extra ...string) (*Output, error) {
	args := append(append([]string{}, c.Args...), extra...)
	cmd := exec.CommandContext(ctx, c.Path, args...)
	cmd.Dir = r.Dir
	// Grandchildren holding the output pipes must not keep Run blocked
	// after the child itself was killed.
	cmd.WaitDelay = waitDelay

	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = tee(r.Stdout, &stdoutBuf)
	cmd.Stderr = tee(r.Stderr, &stderrBuf)

	start := time.Now()
	err := cmd.Run()

	output := &Output{
		Stdout:   stdoutBuf.String(),
		Stderr:   stderrBuf.String(),
		Duration: time.Since(start),
	}

	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			output.ExitCode = -1
			return output, errors.Annotatef(ctxErr, "running %s", c)
		}
		if exitErr, ok := err.(*exec.ExitError); ok {
			output.ExitCode = exitErr.ExitCode()
			return output, nil
		}
		output.ExitCode = -1
		return output, errors.Annotatef(err, "starting %s", c)
	}
	return output, nil
}

func tee(w io.Writer, buf *bytes.Buffer) io.Writer {
	if w == nil {
		return buf
	}
	return io.MultiWriter(w, buf)
}
