package model

// PRSpec is the derived, ephemeral description of the pull request that
// should exist for one stack commit. Specs are recomputed on every run and
// never persisted.
type PRSpec struct {
	// SHA is the full hash of the commit this spec was derived from.
	SHA string

	// BranchName is the remote branch that carries the commit. It is a
	// deterministic function of the head branch and the commit's
	// stable-id-or-short-sha, so it survives history rewrites.
	BranchName string

	// BaseRef is the previous spec's branch, or trunk for the bottom spec.
	// The BaseRef chain is what makes the remote PRs a valid review stack.
	BaseRef string

	// Title is the commit title, used verbatim as the PR title.
	Title string

	// Body is the commit title plus (when non-empty) a blank line and the
	// commit body. The stable-id trailer already lives in the body.
	Body string
}
