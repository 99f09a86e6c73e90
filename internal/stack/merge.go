package stack

import (
	"fmt"

	"github.com/ztk-sh/ztk/internal/forge"
	"github.com/ztk-sh/ztk/internal/model"
	"github.com/ztk-sh/ztk/internal/ui"
)

// MergeOptions tune the mergeability policy.
type MergeOptions struct {
	// Force relaxes the checks-and-reviews requirement. It never relaxes
	// the no-conflicts requirement.
	Force bool

	// NoReview skips the approval requirement only.
	NoReview bool
}

// MergeResult reports the outcome of one merge invocation.
type MergeResult struct {
	// MergedPR is the number of the single PR that was actually merged.
	MergedPR int

	// ClosedPRs are the redundant lower PRs that were commented and closed.
	ClosedPRs []int

	// FailedCloses counts lower PRs whose close failed and was skipped.
	FailedCloses int
}

// MergeReport builds a per-commit snapshot of remote PR state for every
// non-WIP commit, bottom of the stack first, and computes the collapsed
// mergeable verdict under the given options.
func (c *Client) MergeReport(s *model.Stack, opts MergeOptions) ([]model.MergePRInfo, error) {
	specs := DerivePRSpecs(s)
	infos := make([]model.MergePRInfo, 0, len(specs))

	for _, spec := range specs {
		info := model.MergePRInfo{
			SHA:    spec.SHA,
			Title:  spec.Title,
			Branch: spec.BranchName,
		}

		pr, err := c.forge.FindOpenPR(spec.BranchName)
		if err != nil {
			return nil, err
		}
		if pr == nil {
			infos = append(infos, info)
			continue
		}

		// The list endpoint omits the mergeable flag; fetch the full PR
		full, err := c.forge.GetPR(pr.Number)
		if err != nil {
			return nil, err
		}

		checkState, err := c.forge.CheckState(full.Head.SHA)
		if err != nil {
			return nil, err
		}
		approved, err := c.forge.IsApproved(pr.Number)
		if err != nil {
			return nil, err
		}

		info.PRNumber = pr.Number
		info.ChecksPassed = checkState == forge.CheckSuccess
		info.Approved = approved
		info.Conflicting = full.IsConflicting()
		info.Mergeable = collapseMergeable(info, opts)
		infos = append(infos, info)
	}
	return infos, nil
}

// collapseMergeable applies the policy:
// checks-passed AND (approved OR override) AND NOT conflicting.
func collapseMergeable(info model.MergePRInfo, opts MergeOptions) bool {
	if info.Conflicting {
		return false
	}
	if opts.Force {
		return true
	}
	if !info.ChecksPassed {
		return false
	}
	return info.Approved || opts.NoReview
}

// MergeablePrefix walks the report bottom to top and returns the longest
// run of mergeable PRs. The walk stops at the first commit whose PR is
// missing or blocked: commits above a blocked commit can never be merged
// first, because their PR's base is the blocked branch.
func MergeablePrefix(infos []model.MergePRInfo) []model.MergePRInfo {
	var prefix []model.MergePRInfo
	for _, info := range infos {
		if info.PRNumber == 0 || !info.Mergeable {
			break
		}
		prefix = append(prefix, info)
	}
	return prefix
}

// ExecuteMerge collapses the prefix into one real merge: the topmost PR is
// retargeted to trunk and merged, then every lower PR is commented, closed,
// and its branch deleted. The lower PRs are redundant, not separately merged.
//
// The ordering matters: retarget before merge so the forge merges into
// trunk, close the others after so they do not show as spuriously unmerged.
func (c *Client) ExecuteMerge(prefix []model.MergePRInfo) (*MergeResult, error) {
	if len(prefix) == 0 {
		return nil, ErrNoMergeablePR
	}

	top := prefix[len(prefix)-1]

	trunk := c.cfg.Trunk
	if err := c.forge.UpdatePR(top.PRNumber, forge.UpdatePROptions{Base: &trunk}); err != nil {
		return nil, fmt.Errorf("failed to retarget PR #%d to %s: %w", top.PRNumber, trunk, err)
	}

	if err := c.forge.MergePR(top.PRNumber); err != nil {
		return nil, err
	}

	result := &MergeResult{MergedPR: top.PRNumber}

	if err := c.forge.DeleteBranch(top.Branch); err != nil {
		ui.Warningf("failed to delete branch %s: %v", top.Branch, err)
	}

	for _, info := range prefix[:len(prefix)-1] {
		if err := c.retirePR(info, top.PRNumber); err != nil {
			ui.Warningf("failed to close PR #%d: %v", info.PRNumber, err)
			result.FailedCloses++
			continue
		}
		result.ClosedPRs = append(result.ClosedPRs, info.PRNumber)
	}
	return result, nil
}

// retirePR comments, closes, and deletes the branch of a PR whose commits
// landed as part of a higher merge.
func (c *Client) retirePR(info model.MergePRInfo, mergedInto int) error {
	comment := fmt.Sprintf("Merged into %s as part of #%d.", c.cfg.Trunk, mergedInto)
	if err := c.forge.CommentPR(info.PRNumber, comment); err != nil {
		return err
	}
	if err := c.forge.ClosePR(info.PRNumber); err != nil {
		return err
	}
	if err := c.forge.DeleteBranch(info.Branch); err != nil {
		ui.Warningf("failed to delete branch %s: %v", info.Branch, err)
	}
	return nil
}
