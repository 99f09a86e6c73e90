package model

// MergePRInfo is a per-commit snapshot of remote PR state, rebuilt on every
// merge invocation.
type MergePRInfo struct {
	// SHA is the full hash of the stack commit the PR belongs to.
	SHA string

	// PRNumber is the forge PR number. Zero when no open PR exists for the
	// commit's branch.
	PRNumber int

	// Title is the PR title.
	Title string

	// Branch is the PR's head branch.
	Branch string

	// ChecksPassed is true when the latest check runs all succeeded.
	ChecksPassed bool

	// Approved is true when the latest review per reviewer is an approval
	// and no changes are requested.
	Approved bool

	// Conflicting is true when the forge reports the PR as unmergeable.
	Conflicting bool

	// Mergeable is the collapsed verdict:
	// checks-passed AND (approved OR override) AND NOT conflicting.
	Mergeable bool
}

// BlockReason describes why a PR stops the mergeable prefix, for reporting.
func (m MergePRInfo) BlockReason() string {
	switch {
	case m.PRNumber == 0:
		return "no open PR"
	case m.Conflicting:
		return "merge conflicts"
	case !m.ChecksPassed:
		return "checks not passing"
	case !m.Approved:
		return "not approved"
	default:
		return ""
	}
}
