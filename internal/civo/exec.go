package civo

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/kballard/go-shellquote"
)

// Runner executes a command to completion
type Runner interface {
	Run(ctx context.Context, name string, args ...string) error
}

// ExecRunner runs commands as subprocesses, echoing each command line the
// way the Actions toolkit does ("[command]/path/to/tool args"). Arguments
// matching a registered secret are echoed as ***.
type ExecRunner struct {
	Stdout  io.Writer
	Stderr  io.Writer
	Echo    io.Writer
	secrets map[string]struct{}
}

// NewExecRunner creates a runner wired to the process stdio
func NewExecRunner() *ExecRunner {
	return &ExecRunner{
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Echo:   os.Stdout,
	}
}

// Mask registers a value that must never be echoed
func (r *ExecRunner) Mask(secret string) {
	if secret == "" {
		return
	}
	if r.secrets == nil {
		r.secrets = make(map[string]struct{})
	}
	r.secrets[secret] = struct{}{}
}

// CommandLine renders the echoed form of a command. Masked arguments are
// written as a bare *** and every other word is shell quoted.
func (r *ExecRunner) CommandLine(path string, args ...string) string {
	words := make([]string, 0, len(args)+1)
	words = append(words, shellquote.Join(path))
	for _, arg := range args {
		if _, secret := r.secrets[arg]; secret {
			words = append(words, "***")
			continue
		}
		words = append(words, shellquote.Join(arg))
	}
	return strings.Join(words, " ")
}

func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr

	if r.Echo != nil {
		fmt.Fprintf(r.Echo, "[command]%s\n", r.CommandLine(cmd.Path, args...))
	}

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return fmt.Errorf("the process '%s' failed with exit code %d", cmd.Path, exitErr.ExitCode())
		}
		return fmt.Errorf("unable to run %s: %w", name, err)
	}
	return nil
}
