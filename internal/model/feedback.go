package model

import "time"

// FeedbackKind tags the variant of a FeedbackItem.
type FeedbackKind int

const (
	// FeedbackReview is a top-level PR review (approve/request-changes/comment).
	FeedbackReview FeedbackKind = iota

	// FeedbackInlineComment is a review comment anchored to a diff location.
	FeedbackInlineComment
)

// ReviewPayload is the payload of a FeedbackReview item.
type ReviewPayload struct {
	Author      string
	State       string // APPROVED, CHANGES_REQUESTED, COMMENTED
	Body        string
	SubmittedAt time.Time
}

// InlineCommentPayload is the payload of a FeedbackInlineComment item.
type InlineCommentPayload struct {
	Author    string
	Body      string
	Path      string
	Line      int
	CreatedAt time.Time
}

// FeedbackItem is a tagged variant: exactly one of Review and InlineComment
// is set, selected by Kind. Consumers must switch on Kind and handle both
// variants.
type FeedbackItem struct {
	Kind          FeedbackKind
	PRNumber      int
	Review        *ReviewPayload
	InlineComment *InlineCommentPayload
}

// NewReviewFeedback builds a FeedbackReview item.
func NewReviewFeedback(prNumber int, p ReviewPayload) FeedbackItem {
	return FeedbackItem{Kind: FeedbackReview, PRNumber: prNumber, Review: &p}
}

// NewInlineCommentFeedback builds a FeedbackInlineComment item.
func NewInlineCommentFeedback(prNumber int, p InlineCommentPayload) FeedbackItem {
	return FeedbackItem{Kind: FeedbackInlineComment, PRNumber: prNumber, InlineComment: &p}
}
