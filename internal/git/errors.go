package git

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotInGitRepo indicates the client was created outside a git repository.
var ErrNotInGitRepo = errors.New("not in a git repository")

// CommandError wraps a non-zero git exit with the command and its stderr.
type CommandError struct {
	Args     []string
	ExitCode int
	Stderr   string
}

func (e *CommandError) Error() string {
	msg := fmt.Sprintf("git %s failed (exit %d)", strings.Join(e.Args, " "), e.ExitCode)
	if e.Stderr != "" {
		msg += ": " + strings.TrimSpace(e.Stderr)
	}
	return msg
}

// ParseError indicates git produced output the client could not interpret.
type ParseError struct {
	Op     string
	Detail string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse %s output: %s", e.Op, e.Detail)
}
