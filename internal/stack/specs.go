package stack

import (
	"fmt"

	"github.com/ztk-sh/ztk/internal/model"
)

// branchPrefix namespaces every branch ztk manages.
const branchPrefix = "ztk"

// BranchName derives the remote branch for a commit. It is a pure,
// deterministic function of the head branch and the commit's
// stable-id-or-short-sha, so the same commit maps to the same branch across
// history rewrites.
func BranchName(headBranch string, c model.Commit) string {
	return fmt.Sprintf("%s/%s/%s", branchPrefix, headBranch, c.BranchID())
}

// BranchPattern is the glob matching every branch ztk manages for the given
// head branch.
func BranchPattern(headBranch string) string {
	return fmt.Sprintf("%s/%s/*", branchPrefix, headBranch)
}

// DerivePRSpecs maps a stack to the ordered PR specs that should exist for
// it. One spec per non-WIP commit; each spec's base is the previous spec's
// branch, and the bottom spec is based on trunk, which is what makes the
// remote PRs form a valid review stack. Pure: no git, forge, or filesystem
// access.
func DerivePRSpecs(s *model.Stack) []model.PRSpec {
	base := s.BaseBranch
	var specs []model.PRSpec

	for _, commit := range s.NonWIP() {
		branch := BranchName(s.HeadBranch, commit)

		body := commit.Title
		if commit.Body != "" {
			// The stable-id trailer already lives in the body; nothing to add
			body += "\n\n" + commit.Body
		}

		specs = append(specs, model.PRSpec{
			SHA:        commit.Hash,
			BranchName: branch,
			BaseRef:    base,
			Title:      commit.Title,
			Body:       body,
		})
		base = branch
	}
	return specs
}
