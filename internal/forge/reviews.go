package forge

import (
	"fmt"
	"net/http"

	"github.com/ztk-sh/ztk/internal/model"
)

// ListReviews fetches all reviews on a PR and collapses them to the latest
// review per author, in submission order.
func (c *Client) ListReviews(number int) ([]Review, error) {
	var reviews []Review
	if err := c.do(http.MethodGet, c.repoPath("/pulls/%d/reviews", number), nil, &reviews); err != nil {
		return nil, fmt.Errorf("failed to fetch reviews for PR #%d: %w", number, err)
	}
	return latestPerAuthor(reviews), nil
}

// latestPerAuthor keeps each author's most recent review.
func latestPerAuthor(reviews []Review) []Review {
	latest := make(map[string]int)
	for i, r := range reviews {
		prev, seen := latest[r.User.Login]
		if !seen || r.SubmittedAt.After(reviews[prev].SubmittedAt) {
			latest[r.User.Login] = i
		}
	}

	out := make([]Review, 0, len(latest))
	for i, r := range reviews {
		if latest[r.User.Login] == i {
			out = append(out, r)
		}
	}
	return out
}

// IsApproved collapses a PR's reviews to a single approval verdict: at least
// one approval and no outstanding request for changes, judged on the latest
// review per author.
func (c *Client) IsApproved(number int) (bool, error) {
	reviews, err := c.ListReviews(number)
	if err != nil {
		return false, err
	}

	approved := false
	for _, r := range reviews {
		switch r.State {
		case "APPROVED":
			approved = true
		case "CHANGES_REQUESTED":
			return false, nil
		}
	}
	return approved, nil
}

// checkRunsResponse is the check-runs list payload.
type checkRunsResponse struct {
	CheckRuns []struct {
		Status     string `json:"status"`     // queued, in_progress, completed
		Conclusion string `json:"conclusion"` // success, failure, neutral, ...
	} `json:"check_runs"`
}

// CheckState collapses a commit's check runs: pending while any run has not
// completed, failure when any completed run concluded badly, success
// otherwise. No check runs at all counts as success.
func (c *Client) CheckState(ref string) (CheckState, error) {
	var resp checkRunsResponse
	if err := c.do(http.MethodGet, c.repoPath("/commits/%s/check-runs", ref), nil, &resp); err != nil {
		return CheckFailure, fmt.Errorf("failed to fetch check runs for %s: %w", ref, err)
	}

	state := CheckSuccess
	for _, run := range resp.CheckRuns {
		if run.Status != "completed" {
			state = CheckPending
			continue
		}
		switch run.Conclusion {
		case "success", "neutral", "skipped":
		default:
			return CheckFailure, nil
		}
	}
	return state, nil
}

// ListReviewComments fetches the inline review comments on a PR.
func (c *Client) ListReviewComments(number int) ([]ReviewComment, error) {
	var comments []ReviewComment
	if err := c.do(http.MethodGet, c.repoPath("/pulls/%d/comments", number), nil, &comments); err != nil {
		return nil, fmt.Errorf("failed to fetch review comments for PR #%d: %w", number, err)
	}
	return comments, nil
}

// Feedback gathers a PR's reviews and inline comments as tagged feedback
// items: reviews first, then inline comments.
func (c *Client) Feedback(number int) ([]model.FeedbackItem, error) {
	reviews, err := c.ListReviews(number)
	if err != nil {
		return nil, err
	}
	comments, err := c.ListReviewComments(number)
	if err != nil {
		return nil, err
	}

	items := make([]model.FeedbackItem, 0, len(reviews)+len(comments))
	for _, r := range reviews {
		items = append(items, model.NewReviewFeedback(number, model.ReviewPayload{
			Author:      r.User.Login,
			State:       r.State,
			Body:        r.Body,
			SubmittedAt: r.SubmittedAt,
		}))
	}
	for _, cm := range comments {
		items = append(items, model.NewInlineCommentFeedback(number, model.InlineCommentPayload{
			Author:    cm.User.Login,
			Body:      cm.Body,
			Path:      cm.Path,
			Line:      cm.Line,
			CreatedAt: cm.CreatedAt,
		}))
	}
	return items, nil
}
