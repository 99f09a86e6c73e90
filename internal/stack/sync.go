package stack

import (
	"fmt"

	"github.com/ztk-sh/ztk/internal/ui"
)

// SyncResult reports what reconciliation did.
type SyncResult struct {
	Rebased       bool
	DeletedLocal  int
	DeletedRemote int
	KeptBranches  []string
}

// Sync reconciles local state with the forge after merges: fetch trunk,
// rebase the current branch onto the updated remote trunk, then delete
// stack branches whose PR is confirmed merged or closed, locally and
// remotely. Conflicts during the rebase surface as ErrRebaseConflict;
// they are never auto-resolved.
func (c *Client) Sync() (*SyncResult, error) {
	if c.git.IsRebaseInProgress() {
		return nil, fmt.Errorf("a rebase is in progress, finish or abort it first")
	}
	dirty, err := c.git.HasUncommittedChanges()
	if err != nil {
		return nil, err
	}
	if dirty {
		return nil, fmt.Errorf("working tree has uncommitted changes, commit or stash them first")
	}

	headBranch, err := c.git.CurrentBranch()
	if err != nil {
		return nil, fmt.Errorf("failed to get current branch: %w", err)
	}

	if err := c.git.Fetch(c.cfg.Remote, c.cfg.Trunk); err != nil {
		return nil, err
	}

	remoteTrunk := c.cfg.Remote + "/" + c.cfg.Trunk
	if err := c.git.Rebase(remoteTrunk); err != nil {
		return nil, fmt.Errorf("%w (rebase onto %s: %v)", ErrRebaseConflict, remoteTrunk, err)
	}

	result := &SyncResult{Rebased: true}
	if err := c.cleanupBranches(headBranch, result); err != nil {
		return result, err
	}
	return result, nil
}

// cleanupBranches deletes the stack's derived branches whose PRs are done.
// Per-branch failures are logged and skipped.
func (c *Client) cleanupBranches(headBranch string, result *SyncResult) error {
	branches, err := c.git.LocalBranches(BranchPattern(headBranch))
	if err != nil {
		return err
	}

	for _, branch := range branches {
		merged, closed, err := c.forge.BranchPRState(branch)
		if err != nil {
			ui.Warningf("skipping %s: %v", branch, err)
			result.KeptBranches = append(result.KeptBranches, branch)
			continue
		}
		if !merged && !closed {
			result.KeptBranches = append(result.KeptBranches, branch)
			continue
		}

		if err := c.git.DeleteBranch(branch, true); err != nil {
			ui.Warningf("failed to delete local branch %s: %v", branch, err)
		} else {
			result.DeletedLocal++
		}

		if err := c.git.DeleteRemoteBranch(c.cfg.Remote, branch); err != nil {
			ui.Warningf("failed to delete remote branch %s: %v", branch, err)
		} else {
			result.DeletedRemote++
		}
	}
	return nil
}
