package stack

import (
	"fmt"
	"strings"

	"github.com/ztk-sh/ztk/internal/git"
	"github.com/ztk-sh/ztk/internal/model"
)

// ReadStack turns the commit range between trunk and HEAD into an ordered,
// annotated stack, oldest commit first. Zero commits ahead of trunk yields
// an empty stack, not an error.
//
// The stack is only valid until the next history rewrite: identity
// injection and absorption both invalidate it, and callers must re-read.
func (c *Client) ReadStack() (*model.Stack, error) {
	headBranch, err := c.git.CurrentBranch()
	if err != nil {
		return nil, fmt.Errorf("failed to get current branch: %w", err)
	}

	base, err := c.git.MergeBase(c.trunkRef(), "HEAD")
	if err != nil {
		return nil, fmt.Errorf("failed to find merge base with %s: %w", c.cfg.Trunk, err)
	}

	raw, err := c.git.CommitsInRange(base, "HEAD")
	if err != nil {
		return nil, err
	}

	commits := make([]model.Commit, 0, len(raw))
	for _, rc := range raw {
		commits = append(commits, toCommit(rc))
	}

	return &model.Stack{
		Commits:    commits,
		BaseBranch: c.cfg.Trunk,
		HeadBranch: headBranch,
	}, nil
}

func toCommit(rc git.RawCommit) model.Commit {
	body := strings.TrimSpace(rc.Body)
	return model.Commit{
		Hash:      rc.Hash,
		ShortHash: shortHash(rc.Hash),
		Title:     rc.Subject,
		Body:      body,
		StableID:  git.Trailer(body, model.StableIDTrailer),
		IsWIP:     model.IsWIPTitle(rc.Subject),
	}
}

func shortHash(hash string) string {
	if len(hash) > 8 {
		return hash[:8]
	}
	return hash
}
