package model

import "strings"

// StableIDTrailer is the commit message trailer key carrying the permanent
// per-commit identifier. The value survives rebases because it lives in the
// message, not the hash.
const StableIDTrailer = "ZTK-ID"

// Commit represents one local commit ahead of trunk.
type Commit struct {
	// Hash is the full commit sha.
	Hash string

	// ShortHash is the abbreviated sha (first 8 characters).
	ShortHash string

	// Title is the first line of the commit message.
	Title string

	// Body is the commit message below the title, trailers included.
	Body string

	// StableID is the value of the ZTK-ID trailer, or empty if the commit
	// has not been through identity injection yet.
	StableID string

	// IsWIP is true when the title carries a work-in-progress marker.
	// WIP commits are excluded from PR creation and merging.
	IsWIP bool
}

// BranchID returns the token used to derive this commit's branch name:
// the first 8 characters of the stable id, falling back to the short hash.
func (c Commit) BranchID() string {
	if c.StableID != "" {
		if len(c.StableID) > 8 {
			return c.StableID[:8]
		}
		return c.StableID
	}
	return c.ShortHash
}

// Stack is an ordered sequence of commits ahead of trunk, oldest first.
// Commits[0] is the bottom of the stack.
type Stack struct {
	// Commits are the contiguous ancestors between the merge-base with
	// trunk and HEAD, oldest first.
	Commits []Commit

	// BaseBranch is the trunk branch name.
	BaseBranch string

	// HeadBranch is the developer's working branch.
	HeadBranch string
}

// IsEmpty reports whether the stack has no commits ahead of trunk.
func (s *Stack) IsEmpty() bool {
	return len(s.Commits) == 0
}

// NonWIP returns the commits that are eligible for PRs, oldest first.
func (s *Stack) NonWIP() []Commit {
	out := make([]Commit, 0, len(s.Commits))
	for _, c := range s.Commits {
		if !c.IsWIP {
			out = append(out, c)
		}
	}
	return out
}

// FindByHash returns the stack commit with the given full hash, or nil.
func (s *Stack) FindByHash(hash string) *Commit {
	for i := range s.Commits {
		if s.Commits[i].Hash == hash {
			return &s.Commits[i]
		}
	}
	return nil
}

// NeedsIdentity reports whether any non-WIP commit is missing a stable id.
func (s *Stack) NeedsIdentity() bool {
	for _, c := range s.Commits {
		if !c.IsWIP && c.StableID == "" {
			return true
		}
	}
	return false
}

// IsWIPTitle reports whether a commit title carries a WIP marker.
// Matched markers: a "wip" prefix followed by ':' or whitespace (or the
// whole title), and the "[wip]" substring anywhere. A bare "wip" prefix
// inside a word is not enough, so "Wipe cache" stays non-WIP.
func IsWIPTitle(title string) bool {
	lower := strings.ToLower(strings.TrimSpace(title))
	if lower == "wip" {
		return true
	}
	if strings.HasPrefix(lower, "wip:") || strings.HasPrefix(lower, "wip ") {
		return true
	}
	return strings.Contains(lower, "[wip]")
}
