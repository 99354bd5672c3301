// Package sitegen runs the external static-site generator over a written
// site tree.
package sitegen

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-note2site/internal/process"
)

// Sentinel errors for site generation.
var (
	ErrBuild       = errors.New("site generator failed")
	ErrEmptySource = errors.New("site source directory cannot be empty")
)

// DefaultCommand is the generator executable.
const DefaultCommand = "jekyll"

// maxStderr caps the generator output kept for error messages.
const maxStderr = 4 << 10

// CommandRunner abstracts command execution to enable testing without real subprocesses.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) (stderr string, err error)
}

// ExecRunner implements CommandRunner using os/exec. The child runs in its
// own process group, which is killed as a whole when ctx is done.
type ExecRunner struct {
	Stdout io.Writer // Generator progress output (nil = discarded)
}

// Run starts name with args and waits for it or for ctx.
func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) (string, error) {
	cmd := exec.Command(name, args...) // #nosec G204 -- generator command comes from config
	process.Isolate(cmd)

	var stderr bytes.Buffer
	cmd.Stdout = r.Stdout
	cmd.Stderr = &stderr

	if err := cmd.Start(); err != nil {
		return "", fmt.Errorf("starting %s: %w", name, err)
	}

	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()

	select {
	case err := <-done:
		return tail(stderr.String()), err
	case <-ctx.Done():
		process.KillProcessGroup(cmd.Process.Pid)
		<-done
		return tail(stderr.String()), ctx.Err()
	}
}

// Generator builds a site with a Jekyll-compatible command line:
// <command> build -s <source> -d <dest>.
type Generator struct {
	Command string
	Timeout time.Duration // Zero = no limit beyond ctx
	Runner  CommandRunner
}

// New creates a Generator with a real command runner.
func New(command string, timeout time.Duration, stdout io.Writer) *Generator {
	if command == "" {
		command = DefaultCommand
	}
	return &Generator{
		Command: command,
		Timeout: timeout,
		Runner:  &ExecRunner{Stdout: stdout},
	}
}

// Args returns the generator arguments for source and dest.
func Args(source, dest string) []string {
	return []string{"build", "-s", source, "-d", dest}
}

// Build runs the generator. Failures wrap ErrBuild; a cancelled or expired
// context is reported with the context error as well.
func (g *Generator) Build(ctx context.Context, source, dest string) error {
	if source == "" {
		return ErrEmptySource
	}
	if dest == "" {
		dest = filepath.Join(source, "_site")
	}

	if g.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.Timeout)
		defer cancel()
	}

	stderr, err := g.Runner.Run(ctx, g.Command, Args(source, dest)...)
	if err == nil {
		return nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return fmt.Errorf("%w: %s: %w", ErrBuild, g.Command, ctxErr)
	}
	if stderr != "" {
		return fmt.Errorf("%w: %s: %s: %w", ErrBuild, g.Command, stderr, err)
	}
	return fmt.Errorf("%w: %s: %w", ErrBuild, g.Command, err)
}

// tail keeps the last maxStderr bytes of s, trimmed.
func tail(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > maxStderr {
		s = "..." + s[len(s)-maxStderr:]
	}
	return s
}
