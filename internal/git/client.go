package git

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Client provides git operations for a repository
type Client struct {
	gitRoot string
}

// NewClient creates a new git client for the current directory
func NewClient() (*Client, error) {
	gitRoot, err := getGitRoot("")
	if err != nil {
		return nil, err
	}
	return &Client{gitRoot: gitRoot}, nil
}

// NewClientAt creates a new git client rooted at the given directory
func NewClientAt(dir string) (*Client, error) {
	gitRoot, err := getGitRoot(dir)
	if err != nil {
		return nil, err
	}
	return &Client{gitRoot: gitRoot}, nil
}

// GitRoot returns the root directory of the git repository
func (c *Client) GitRoot() string {
	return c.gitRoot
}

// run executes git with the given arguments and returns trimmed stdout.
func (c *Client) run(args ...string) (string, error) {
	return c.runEnv(nil, args...)
}

// runEnv executes git with extra environment variables appended.
func (c *Client) runEnv(extraEnv []string, args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = c.gitRoot
	if len(extraEnv) > 0 {
		cmd.Env = append(os.Environ(), extraEnv...)
	}
	var stderr strings.Builder
	cmd.Stderr = &stderr
	output, err := cmd.Output()
	if err != nil {
		exitCode := -1
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		}
		return "", &CommandError{Args: args, ExitCode: exitCode, Stderr: stderr.String()}
	}
	return strings.TrimSpace(string(output)), nil
}

func getGitRoot(dir string) (string, error) {
	cmd := exec.Command("git", "rev-parse", "--show-toplevel")
	if dir != "" {
		cmd.Dir = dir
	}
	output, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNotInGitRepo, err)
	}
	return strings.TrimSpace(string(output)), nil
}

// CurrentBranch returns the name of the current git branch
func (c *Client) CurrentBranch() (string, error) {
	branch, err := c.run("rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", fmt.Errorf("failed to get current branch: %w", err)
	}
	return branch, nil
}

// CommitHash resolves a ref to a full commit hash
func (c *Client) CommitHash(ref string) (string, error) {
	hash, err := c.run("rev-parse", ref)
	if err != nil {
		return "", fmt.Errorf("failed to get commit hash for %s: %w", ref, err)
	}
	return hash, nil
}

// RefExists checks if a ref resolves to a commit
func (c *Client) RefExists(ref string) bool {
	_, err := c.run("rev-parse", "--verify", "--quiet", ref+"^{commit}")
	return err == nil
}

// MergeBase returns the merge base of two refs
func (c *Client) MergeBase(a, b string) (string, error) {
	base, err := c.run("merge-base", a, b)
	if err != nil {
		return "", fmt.Errorf("failed to compute merge base of %s and %s: %w", a, b, err)
	}
	return base, nil
}

// Checkout checks out the specified ref (branch or detached commit)
func (c *Client) Checkout(ref string) error {
	if _, err := c.run("checkout", ref); err != nil {
		return fmt.Errorf("failed to checkout %s: %w", ref, err)
	}
	return nil
}

// ResetHard resets the current branch to a specific ref
func (c *Client) ResetHard(ref string) error {
	if _, err := c.run("reset", "--hard", ref); err != nil {
		return fmt.Errorf("failed to reset to %s: %w", ref, err)
	}
	return nil
}

// UpdateRef updates a branch reference without checking it out
func (c *Client) UpdateRef(branchName string, commitHash string) error {
	if _, err := c.run("update-ref", "refs/heads/"+branchName, commitHash); err != nil {
		return fmt.Errorf("failed to update ref %s to %s: %w", branchName, commitHash, err)
	}
	return nil
}

// DeleteBranch deletes a local branch
func (c *Client) DeleteBranch(name string, force bool) error {
	flag := "-d"
	if force {
		flag = "-D"
	}
	if _, err := c.run("branch", flag, name); err != nil {
		return fmt.Errorf("failed to delete branch %s: %w", name, err)
	}
	return nil
}

// DeleteRemoteBranch deletes a branch on the remote
func (c *Client) DeleteRemoteBranch(remote string, name string) error {
	if _, err := c.run("push", remote, "--delete", name); err != nil {
		return fmt.Errorf("failed to delete remote branch %s: %w", name, err)
	}
	return nil
}

// Push pushes a branch to the remote, optionally with force
func (c *Client) Push(remote string, branch string, force bool) error {
	args := []string{"push", remote, branch}
	if force {
		args = append(args, "--force")
	}
	if _, err := c.run(args...); err != nil {
		return fmt.Errorf("failed to push branch %s: %w", branch, err)
	}
	return nil
}

// Fetch fetches a ref from the remote
func (c *Client) Fetch(remote string, ref string) error {
	args := []string{"fetch", remote}
	if ref != "" {
		args = append(args, ref)
	}
	if _, err := c.run(args...); err != nil {
		return fmt.Errorf("failed to fetch from %s: %w", remote, err)
	}
	return nil
}

// RemoteURL returns the fetch URL configured for a remote
func (c *Client) RemoteURL(remote string) (string, error) {
	url, err := c.run("remote", "get-url", remote)
	if err != nil {
		return "", fmt.Errorf("failed to get URL for remote %s: %w", remote, err)
	}
	return url, nil
}

// LocalBranches lists local branch names matching the given glob pattern
func (c *Client) LocalBranches(pattern string) ([]string, error) {
	output, err := c.run("for-each-ref", "--format=%(refname:short)", "refs/heads/"+pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to list branches: %w", err)
	}
	if output == "" {
		return []string{}, nil
	}
	return strings.Split(output, "\n"), nil
}

// HasUncommittedChanges checks for any uncommitted changes in the working tree
func (c *Client) HasUncommittedChanges() (bool, error) {
	output, err := c.run("status", "--porcelain")
	if err != nil {
		return false, fmt.Errorf("failed to check git status: %w", err)
	}
	return output != "", nil
}

// HasStagedChanges checks whether the index differs from HEAD
func (c *Client) HasStagedChanges() (bool, error) {
	_, err := c.run("diff", "--cached", "--quiet")
	if err == nil {
		return false, nil
	}
	var cmdErr *CommandError
	// diff --quiet exits 1 when there are staged changes
	if errors.As(err, &cmdErr) && cmdErr.ExitCode == 1 {
		return true, nil
	}
	return false, fmt.Errorf("failed to check staged changes: %w", err)
}

// StashPush stashes uncommitted changes, including untracked files.
// Returns true when a stash entry was actually created.
func (c *Client) StashPush() (bool, error) {
	output, err := c.run("stash", "push", "--include-untracked")
	if err != nil {
		return false, fmt.Errorf("failed to stash changes: %w", err)
	}
	if strings.Contains(output, "No local changes to save") {
		return false, nil
	}
	return true, nil
}

// StashPop pops the most recent stash entry
func (c *Client) StashPop() error {
	if _, err := c.run("stash", "pop"); err != nil {
		return fmt.Errorf("failed to pop stash: %w", err)
	}
	return nil
}

// StageFiles stages the given paths
func (c *Client) StageFiles(files []string) error {
	args := append([]string{"add", "--"}, files...)
	if _, err := c.run(args...); err != nil {
		return fmt.Errorf("failed to stage files: %w", err)
	}
	return nil
}

// CommitFixup creates a fixup commit against the given sha from staged changes
func (c *Client) CommitFixup(sha string) error {
	if _, err := c.run("commit", "--fixup", sha); err != nil {
		return fmt.Errorf("failed to create fixup commit for %s: %w", sha, err)
	}
	return nil
}

// CommitMessage returns the full commit message of a ref
func (c *Client) CommitMessage(ref string) (string, error) {
	output, err := c.run("log", "--format=%B", "-n", "1", ref)
	if err != nil {
		return "", fmt.Errorf("failed to read commit message for %s: %w", ref, err)
	}
	return output, nil
}

// AmendMessage amends the HEAD commit with a new message, keeping the tree
func (c *Client) AmendMessage(message string) error {
	if _, err := c.run("commit", "--amend", "--no-edit", "-m", message); err != nil {
		return fmt.Errorf("failed to amend commit: %w", err)
	}
	return nil
}

// RebaseOnto performs git rebase --onto newBase upstream [branch]
func (c *Client) RebaseOnto(newBase string, upstream string, branch string) error {
	args := []string{"rebase", "--onto", newBase, upstream}
	if branch != "" {
		args = append(args, branch)
	}
	if _, err := c.run(args...); err != nil {
		return fmt.Errorf("failed to rebase onto %s: %w", newBase, err)
	}
	return nil
}

// Rebase rebases the current branch onto the given upstream
func (c *Client) Rebase(upstream string) error {
	if _, err := c.run("rebase", upstream); err != nil {
		return fmt.Errorf("failed to rebase onto %s: %w", upstream, err)
	}
	return nil
}

// RebaseAutosquash runs an interactive autosquash rebase non-interactively:
// the sequence editor is a no-op so git folds fixup commits using the todo
// list it generated itself. Autostash lets the rebase start over a dirty
// tree, which absorb relies on when unabsorbed hunks remain in the working
// tree.
func (c *Client) RebaseAutosquash(upstream string) error {
	_, err := c.runEnv(
		[]string{"GIT_SEQUENCE_EDITOR=true"},
		"-c", "rebase.autosquash=true",
		"rebase", "-i", "--autostash", upstream,
	)
	if err != nil {
		return fmt.Errorf("autosquash rebase onto %s failed: %w", upstream, err)
	}
	return nil
}

// RebaseAbort aborts an in-progress rebase
func (c *Client) RebaseAbort() error {
	if _, err := c.run("rebase", "--abort"); err != nil {
		return fmt.Errorf("failed to abort rebase: %w", err)
	}
	return nil
}

// IsRebaseInProgress checks if a rebase is currently in progress
func (c *Client) IsRebaseInProgress() bool {
	for _, dir := range []string{"rebase-merge", "rebase-apply"} {
		if _, err := os.Stat(filepath.Join(c.gitRoot, ".git", dir)); err == nil {
			return true
		}
	}
	return false
}

// StagedDiff returns the unified diff between HEAD and the index
func (c *Client) StagedDiff() (string, error) {
	cmd := exec.Command("git", "diff", "--cached", "--no-color", "--no-ext-diff")
	cmd.Dir = c.gitRoot
	var stderr strings.Builder
	cmd.Stderr = &stderr
	output, err := cmd.Output()
	if err != nil {
		exitCode := -1
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		}
		return "", &CommandError{
			Args:     []string{"diff", "--cached"},
			ExitCode: exitCode,
			Stderr:   stderr.String(),
		}
	}
	// Keep the diff verbatim: trailing context and newlines matter to the parser
	return string(output), nil
}
