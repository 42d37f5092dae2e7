// Package execute runs external commands from templated command
// lines with string-keyed placeholder substitution.
package execute

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"
)

// Error reports a command that exited non-zero.
type Error struct {
	Command  string
	ExitCode int
	Output   string
	Err      error
}

func (e *Error) Error() string {
	return fmt.Sprintf("command %q failed with exit code %d", e.Command, e.ExitCode)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Runner executes commands relative to a working directory.
type Runner struct {
	Dir     string
	Verbose bool
	DryRun  bool
	Log     *slog.Logger
}

func (r *Runner) logger() *slog.Logger {
	if r.Log != nil {
		return r.Log
	}
	return slog.Default()
}

// Expand replaces {key} placeholders in a template with values from
// the replacement map. Unknown placeholders are left untouched.
func Expand(template string, replacements map[string]string) string {
	if len(replacements) == 0 {
		return template
	}
	pairs := make([]string, 0, len(replacements)*2)
	for k, v := range replacements {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(template)
}

// Run executes a templated command after placeholder expansion.
// The command may hold several newline-separated command lines;
// blank lines are skipped. Returns the combined captured output.
func (r *Runner) Run(ctx context.Context, command string, replacements map[string]string) (string, error) {
	if command == "" {
		return "", nil
	}

	var output strings.Builder
	for _, line := range strings.Split(command, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		argv, err := splitCommand(Expand(line, replacements))
		if err != nil {
			return output.String(), err
		}
		out, err := r.run(ctx, argv)
		output.WriteString(out)
		if err != nil {
			return output.String(), err
		}
	}
	return output.String(), nil
}

// RunArgs executes a single argv vector after per-argument expansion.
func (r *Runner) RunArgs(ctx context.Context, argv []string, replacements map[string]string) (string, error) {
	if len(argv) == 0 {
		return "", nil
	}
	expanded := make([]string, len(argv))
	for i, arg := range argv {
		expanded[i] = Expand(arg, replacements)
	}
	return r.run(ctx, expanded)
}

func (r *Runner) run(ctx context.Context, argv []string) (string, error) {
	display := strings.Join(argv, " ")

	if r.DryRun {
		r.logger().Info("dryrun", "execute", display)
		return "", nil
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = r.Dir

	if r.Verbose {
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
		if err := cmd.Run(); err != nil {
			return "", wrapExitError(display, "", err)
		}
		return "", nil
	}

	out, err := cmd.CombinedOutput()
	if err != nil {
		r.logger().Error("command failed", "command", display, "output", string(out))
		return string(out), wrapExitError(display, string(out), err)
	}
	return string(out), nil
}

func wrapExitError(command, output string, err error) error {
	code := -1
	if exitErr, ok := err.(*exec.ExitError); ok {
		code = exitErr.ExitCode()
	}
	return &Error{Command: command, ExitCode: code, Output: output, Err: err}
}

// splitCommand splits a command line into arguments, honoring single
// and double quotes.
func splitCommand(line string) ([]string, error) {
	var args []string
	var current strings.Builder
	var quote rune
	inArg := false

	for _, r := range line {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			} else {
				current.WriteRune(r)
			}
		case r == '\'' || r == '"':
			quote = r
			inArg = true
		case r == ' ' || r == '\t':
			if inArg {
				args = append(args, current.String())
				current.Reset()
				inArg = false
			}
		default:
			current.WriteRune(r)
			inArg = true
		}
	}
	if quote != 0 {
		return nil, fmt.Errorf("unbalanced quote in command %q", line)
	}
	if inArg {
		args = append(args, current.String())
	}
	return args, nil
}
