package forge

import "time"

// PR contains the pull request fields the engine reads. Unknown fields in
// forge responses are ignored.
type PR struct {
	Number    int        `json:"number"`
	State     string     `json:"state"` // open, closed
	Title     string     `json:"title"`
	Body      string     `json:"body"`
	Merged    bool       `json:"merged"`
	MergedAt  *time.Time `json:"merged_at"`
	Mergeable *bool      `json:"mergeable"` // null while GitHub recomputes
	HTMLURL   string     `json:"html_url"`
	Head      Ref        `json:"head"`
	Base      Ref        `json:"base"`
}

// Ref is one end of a pull request.
type Ref struct {
	Ref string `json:"ref"`
	SHA string `json:"sha"`
}

// IsMerged reports whether the PR has been merged. GitHub list endpoints
// omit the merged flag, so merged_at is consulted too.
func (p *PR) IsMerged() bool {
	return p.Merged || p.MergedAt != nil
}

// IsConflicting reports whether the forge knows the PR cannot merge cleanly.
// An unknown (null) mergeable flag is treated as not conflicting.
func (p *PR) IsConflicting() bool {
	return p.Mergeable != nil && !*p.Mergeable
}

// Review is one top-level PR review.
type Review struct {
	User        User      `json:"user"`
	State       string    `json:"state"` // APPROVED, CHANGES_REQUESTED, COMMENTED
	Body        string    `json:"body"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// ReviewComment is a review comment anchored to a diff location.
type ReviewComment struct {
	User      User      `json:"user"`
	Body      string    `json:"body"`
	Path      string    `json:"path"`
	Line      int       `json:"line"`
	CreatedAt time.Time `json:"created_at"`
}

// User identifies a forge account.
type User struct {
	Login string `json:"login"`
}

// CheckState is the collapsed verdict over a commit's check runs.
type CheckState string

const (
	CheckPending CheckState = "pending"
	CheckSuccess CheckState = "success"
	CheckFailure CheckState = "failure"
)

// UpdatePROptions carries the independently optional PR fields to patch.
// Nil fields are left untouched.
type UpdatePROptions struct {
	Title *string `json:"title,omitempty"`
	Body  *string `json:"body,omitempty"`
	Base  *string `json:"base,omitempty"`
}

// CreatePRRequest is the payload for opening a new PR.
type CreatePRRequest struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	Head  string `json:"head"`
	Base  string `json:"base"`
}
