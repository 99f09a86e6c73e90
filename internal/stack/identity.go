package stack

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/ztk-sh/ztk/internal/git"
	"github.com/ztk-sh/ztk/internal/model"
	"github.com/ztk-sh/ztk/internal/ui"
)

// NewStableID generates a fresh 128-bit stable identifier: a UUID with the
// dashes stripped, 32 hex characters. Branch names use the first 8.
func NewStableID() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")
}

// InjectIdentities guarantees every non-WIP commit in the stack carries a
// stable identifier, rewriting history as little as possible. Returns true
// when history was rewritten; the caller must then treat the stack as
// invalidated and re-read it, since every hash from the first injected
// commit onward has changed.
//
// On any failure the repository is restored to the original branch and the
// stash is popped before the error is surfaced; a half-rewritten stack is
// never left behind.
func (c *Client) InjectIdentities(s *model.Stack) (bool, error) {
	if !s.NeedsIdentity() {
		return false, nil
	}

	originalBranch, err := c.git.CurrentBranch()
	if err != nil {
		return false, fmt.Errorf("failed to get current branch: %w", err)
	}

	stashed, err := c.git.StashPush()
	if err != nil {
		return false, fmt.Errorf("failed to stash working tree: %w", err)
	}

	rewritten, err := c.rewriteWithIdentities(s)
	if err != nil {
		c.recoverInjection(originalBranch, stashed)
		return false, err
	}

	if err := c.git.UpdateRef(originalBranch, rewritten); err != nil {
		c.recoverInjection(originalBranch, stashed)
		return false, fmt.Errorf("failed to fast-forward %s: %w", originalBranch, err)
	}
	if err := c.git.Checkout(originalBranch); err != nil {
		c.recoverInjection(originalBranch, stashed)
		return false, err
	}
	if err := c.git.ResetHard(rewritten); err != nil {
		c.recoverInjection(originalBranch, stashed)
		return false, err
	}

	if stashed {
		if err := c.git.StashPop(); err != nil {
			return true, fmt.Errorf("identities injected but stash pop failed: %w", err)
		}
	}
	return true, nil
}

// rewriteWithIdentities replays the stack oldest to newest, amending a
// stable-id trailer onto each commit that lacks one. Each step rebases a
// single commit onto the evolving rewritten base so every replay already
// reflects all prior rewrites. Returns the final rewritten tip.
func (c *Client) rewriteWithIdentities(s *model.Stack) (string, error) {
	newBase, err := c.git.MergeBase(c.trunkRef(), "HEAD")
	if err != nil {
		return "", fmt.Errorf("failed to find merge base: %w", err)
	}

	rewriting := false
	for _, commit := range s.Commits {
		needsID := !commit.IsWIP && commit.StableID == ""

		if !needsID && !rewriting {
			// Untouched prefix of the stack: keep the original object
			newBase = commit.Hash
			continue
		}

		if err := c.git.RebaseOnto(newBase, commit.Hash+"^", commit.Hash); err != nil {
			return "", fmt.Errorf("failed to replay %s: %w", commit.ShortHash, err)
		}

		if needsID {
			message, err := c.git.CommitMessage("HEAD")
			if err != nil {
				return "", err
			}
			token := NewStableID()
			if err := c.git.AmendMessage(git.AddTrailer(message, model.StableIDTrailer, token)); err != nil {
				return "", err
			}
		}

		newBase, err = c.git.CommitHash("HEAD")
		if err != nil {
			return "", err
		}
		rewriting = true
	}

	return newBase, nil
}

// recoverInjection restores the pre-injection state: any half-done rebase
// aborted, back on the original branch, stash popped. Recovery failures are
// reported but do not mask the original error.
func (c *Client) recoverInjection(originalBranch string, stashed bool) {
	if c.git.IsRebaseInProgress() {
		if err := c.git.RebaseAbort(); err != nil {
			ui.Warningf("recovery: failed to abort rebase: %v", err)
			return
		}
	}
	if err := c.git.Checkout(originalBranch); err != nil {
		ui.Warningf("recovery: failed to checkout %s: %v", originalBranch, err)
		return
	}
	if stashed {
		if err := c.git.StashPop(); err != nil {
			ui.Warningf("recovery: failed to pop stash: %v", err)
		}
	}
}
