package stack

import (
	"fmt"

	"github.com/ztk-sh/ztk/internal/git"
	"github.com/ztk-sh/ztk/internal/model"
	"github.com/ztk-sh/ztk/internal/ui"
)

// AbsorbPlan is the attribution of staged hunks to stack commits, presented
// to the caller for confirmation before anything is mutated.
type AbsorbPlan struct {
	// Targets holds the absorbable work, ordered bottom of stack first.
	Targets []model.AbsorbTarget

	// Unabsorbable are the hunks left alone: pure insertions, hunks whose
	// blamed lines span more than one source commit, and hunks owned by
	// commits outside the stack.
	Unabsorbable []model.Hunk

	// TotalHunks is the number of hunks parsed from the staged diff.
	TotalHunks int
}

// AbsorbResult reports what the execution phase actually did.
type AbsorbResult struct {
	FixupCount   int
	SkippedCount int
}

// PlanAbsorb parses the staged diff and attributes each hunk to the stack
// commit that owns the lines it touches. Attribution is deliberately
// conservative: a hunk is absorbable only when blame over its old-line
// range names exactly one commit and that commit is in the stack. No
// repository state is modified.
func (c *Client) PlanAbsorb(s *model.Stack) (*AbsorbPlan, error) {
	if c.git.IsRebaseInProgress() {
		return nil, fmt.Errorf("a rebase is in progress, finish or abort it first")
	}
	staged, err := c.git.HasStagedChanges()
	if err != nil {
		return nil, err
	}
	if !staged {
		return nil, ErrNothingStaged
	}

	diffText, err := c.git.StagedDiff()
	if err != nil {
		return nil, err
	}

	hunks, err := git.ParseUnifiedDiff(diffText)
	if err != nil {
		return nil, err
	}
	if len(hunks) == 0 {
		return nil, ErrNothingStaged
	}

	plan := &AbsorbPlan{TotalHunks: len(hunks)}
	targets := make(map[string]*model.AbsorbTarget)

	for _, hunk := range hunks {
		owner, ok, err := c.attributeHunk(s, hunk)
		if err != nil {
			return nil, err
		}
		if !ok {
			plan.Unabsorbable = append(plan.Unabsorbable, hunk)
			continue
		}

		target, exists := targets[owner.Hash]
		if !exists {
			target = &model.AbsorbTarget{Commit: *owner}
			targets[owner.Hash] = target
		}
		target.AddHunk(hunk)
	}

	// Emit targets in stack order, oldest first
	for _, commit := range s.Commits {
		if target, ok := targets[commit.Hash]; ok {
			plan.Targets = append(plan.Targets, *target)
		}
	}
	return plan, nil
}

// attributeHunk decides which stack commit, if any, owns a hunk. The old
// side of a staged diff is HEAD content, so blame runs against HEAD.
func (c *Client) attributeHunk(s *model.Stack, hunk model.Hunk) (*model.Commit, bool, error) {
	if hunk.IsPureInsertion() {
		// No deleted context means no existing line range to blame
		return nil, false, nil
	}

	blame, err := c.git.Blame(hunk.File, hunk.OldStart, hunk.OldCount, "HEAD")
	if err != nil {
		return nil, false, fmt.Errorf("failed to blame %s: %w", hunk.File, err)
	}

	owners := blame.DistinctOwners()
	if len(owners) != 1 {
		// Ambiguous attribution: refuse rather than guess
		return nil, false, nil
	}

	commit := s.FindByHash(owners[0])
	if commit == nil {
		// Owned by trunk or some other foreign commit
		return nil, false, nil
	}
	return commit, true, nil
}

// ExecuteAbsorb folds the planned hunks into their owning commits: one
// fixup commit per target, cycled through the stash so each fixup stages
// exactly its own files, then a single autosquash rebase onto the merge
// base with trunk.
//
// A fixup that fails is logged and skipped so the rest of the plan still
// makes progress. A failed autosquash rebase is fatal and leaves the
// repository mid-rebase on purpose: aborting would throw away fixups that
// were already folded in.
func (c *Client) ExecuteAbsorb(s *model.Stack, plan *AbsorbPlan) (*AbsorbResult, error) {
	if len(plan.Targets) == 0 {
		return &AbsorbResult{}, nil
	}

	mergeBase, err := c.git.MergeBase(c.trunkRef(), "HEAD")
	if err != nil {
		return nil, fmt.Errorf("failed to find merge base: %w", err)
	}

	stashed, err := c.git.StashPush()
	if err != nil {
		return nil, fmt.Errorf("failed to stash staged changes: %w", err)
	}
	if !stashed {
		return nil, ErrNothingStaged
	}

	result := &AbsorbResult{}
	stashHeld := true

	for _, target := range plan.Targets {
		if stashHeld {
			if err := c.git.StashPop(); err != nil {
				return result, fmt.Errorf("failed to restore stashed changes: %w", err)
			}
			stashHeld = false
		}

		if err := c.fixupTarget(target); err != nil {
			ui.Warningf("skipping %s: %v", target.Commit.ShortHash, err)
			result.SkippedCount++
		} else {
			result.FixupCount++
		}

		// Re-stash whatever remains for the next target
		stashHeld, err = c.git.StashPush()
		if err != nil {
			return result, fmt.Errorf("failed to re-stash remaining changes: %w", err)
		}
	}

	if stashHeld {
		if err := c.git.StashPop(); err != nil {
			return result, fmt.Errorf("failed to pop leftover stash: %w", err)
		}
	}

	if result.FixupCount == 0 {
		return result, nil
	}

	if err := c.git.RebaseAutosquash(mergeBase); err != nil {
		// Only a rebase that actually stopped mid-way warrants the
		// resolve-and-continue guidance
		if c.git.IsRebaseInProgress() {
			return result, fmt.Errorf("%w (%v)", ErrRebaseConflict, err)
		}
		return result, fmt.Errorf("autosquash rebase did not start, fixup commits are still on the branch: %w", err)
	}
	return result, nil
}

func (c *Client) fixupTarget(target model.AbsorbTarget) error {
	if err := c.git.StageFiles(target.Files); err != nil {
		return err
	}
	return c.git.CommitFixup(target.Commit.Hash)
}
