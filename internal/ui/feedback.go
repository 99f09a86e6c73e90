package ui

import (
	"fmt"
	"strings"

	"github.com/ztk-sh/ztk/internal/model"
)

// RenderFeedback renders review feedback for one PR.
func RenderFeedback(prNumber int, title string, items []model.FeedbackItem) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s %s\n", Highlight(fmt.Sprintf("#%d", prNumber)), title))

	if len(items) == 0 {
		b.WriteString(DimStyle.Render("  no feedback"))
		return b.String()
	}

	for _, item := range items {
		switch item.Kind {
		case model.FeedbackReview:
			b.WriteString(renderReview(item.Review))
		case model.FeedbackInlineComment:
			b.WriteString(renderInlineComment(item.InlineComment))
		default:
			b.WriteString(DimStyle.Render(fmt.Sprintf("  unknown feedback kind %d\n", item.Kind)))
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderReview(r *model.ReviewPayload) string {
	var state string
	switch r.State {
	case "APPROVED":
		state = SuccessStyle.Render("approved")
	case "CHANGES_REQUESTED":
		state = ErrorStyle.Render("changes requested")
	default:
		state = DimStyle.Render(strings.ToLower(r.State))
	}

	line := fmt.Sprintf("  %s %s %s", BoldStyle.Render(r.Author), state, DimStyle.Render(r.SubmittedAt.Format("2006-01-02 15:04")))
	if r.Body != "" {
		line += "\n" + indentBody(r.Body)
	}
	return line + "\n"
}

func renderInlineComment(c *model.InlineCommentPayload) string {
	loc := c.Path
	if c.Line > 0 {
		loc = fmt.Sprintf("%s:%d", c.Path, c.Line)
	}
	line := fmt.Sprintf("  %s %s", BoldStyle.Render(c.Author), DimStyle.Render(loc))
	if c.Body != "" {
		line += "\n" + indentBody(c.Body)
	}
	return line + "\n"
}

func indentBody(body string) string {
	lines := strings.Split(strings.TrimSpace(body), "\n")
	for i, l := range lines {
		lines[i] = "    " + l
	}
	return strings.Join(lines, "\n")
}
