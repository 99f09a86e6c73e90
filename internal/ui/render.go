package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Status icons
const (
	IconOpen    = "●"
	IconMerged  = "◆"
	IconClosed  = "○"
	IconLocal   = "◯"
	IconBlocked = "◐"
	IconWIP     = "◌"
)

// StackRow is one rendered line of the stack, top of stack first.
type StackRow struct {
	Position  int
	Total     int
	Title     string
	ShortHash string
	Branch    string
	IsWIP     bool
	PRNumber  int
	URL       string
	State     string // open, merged, closed, local
}

// RenderStackRows renders the stack bottom-up, highest position first, the
// way the commits sit on the remote review stack.
func RenderStackRows(rows []StackRow) string {
	// Leave room for icon, position, hash and PR annotation
	titleWidth := GetTerminalWidth() - 40
	if titleWidth < 20 {
		titleWidth = 20
	}

	var b strings.Builder
	for i := len(rows) - 1; i >= 0; i-- {
		b.WriteString(renderStackRow(rows[i], titleWidth))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderStackRow(row StackRow, titleWidth int) string {
	icon, style := stackRowStatus(row)

	pos := DimStyle.Render(fmt.Sprintf("%d/%d", row.Position, row.Total))
	line := fmt.Sprintf("%s %s %s %s", style.Render(icon), pos, truncate(row.Title, titleWidth), DimStyle.Render(row.ShortHash))

	switch {
	case row.IsWIP:
		line += " " + DimStyle.Render("(wip, skipped)")
	case row.PRNumber > 0:
		line += fmt.Sprintf(" %s", style.Render(fmt.Sprintf("#%d", row.PRNumber)))
		if row.URL != "" {
			line += " " + DimStyle.Render(row.URL)
		}
	default:
		line += " " + DimStyle.Render("(no PR)")
	}
	return line
}

// truncate shortens s to at most max runes, ellipsis included.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 1 {
		return "…"
	}
	return string(runes[:max-1]) + "…"
}

func stackRowStatus(row StackRow) (string, lipgloss.Style) {
	if row.IsWIP {
		return IconWIP, StatusLocalStyle
	}
	switch row.State {
	case "open":
		return IconOpen, StatusOpenStyle
	case "merged":
		return IconMerged, StatusMergedStyle
	case "closed":
		return IconClosed, StatusClosedStyle
	default:
		return IconLocal, StatusLocalStyle
	}
}

// PushProgress reports one spec's outcome during an update.
type PushProgress struct {
	Position int
	Total    int
	Title    string
	PRNumber int
	URL      string
	Action   string // created, updated, unchanged, failed
	Reason   string
}

// RenderPushProgress renders one line of update progress.
func RenderPushProgress(p PushProgress) string {
	prefix := DimStyle.Render(fmt.Sprintf("[%d/%d]", p.Position, p.Total))

	var status string
	switch p.Action {
	case "created":
		status = SuccessStyle.Render("created")
	case "updated":
		status = InfoStyle.Render("updated")
	case "failed":
		status = ErrorStyle.Render("failed")
	default:
		status = DimStyle.Render(p.Action)
	}

	line := fmt.Sprintf("%s %s %s", prefix, status, p.Title)
	if p.PRNumber > 0 {
		line += fmt.Sprintf(" %s", Highlight(fmt.Sprintf("#%d", p.PRNumber)))
	}
	if p.URL != "" {
		line += " " + DimStyle.Render(p.URL)
	}
	if p.Reason != "" {
		line += " " + DimStyle.Render("("+p.Reason+")")
	}
	return line
}

// RenderPushSummary renders the update totals line.
func RenderPushSummary(created, updated, failed int) string {
	parts := []string{
		fmt.Sprintf("%d created", created),
		fmt.Sprintf("%d updated", updated),
	}
	if failed > 0 {
		parts = append(parts, ErrorStyle.Render(fmt.Sprintf("%d failed", failed)))
	}
	return strings.Join(parts, ", ")
}

// AbsorbTargetView is one absorb target prepared for display.
type AbsorbTargetView struct {
	ShortHash string
	Title     string
	HunkCount int
	Files     []string
}

// RenderAbsorbPlan renders the attribution plan shown before confirmation.
func RenderAbsorbPlan(targets []AbsorbTargetView, unabsorbable int, total int) string {
	var b strings.Builder

	for _, t := range targets {
		hunks := "hunks"
		if t.HunkCount == 1 {
			hunks = "hunk"
		}
		b.WriteString(fmt.Sprintf("%s %s %s %s\n",
			StatusOpenStyle.Render("→"),
			Highlight(t.ShortHash),
			t.Title,
			DimStyle.Render(fmt.Sprintf("(%d %s: %s)", t.HunkCount, hunks, strings.Join(t.Files, ", "))),
		))
	}

	absorbed := total - unabsorbable
	b.WriteString(fmt.Sprintf("\n%d of %d hunks absorbable", absorbed, total))
	if unabsorbable > 0 {
		b.WriteString(DimStyle.Render(fmt.Sprintf(" (%d left staged: ambiguous or foreign-origin)", unabsorbable)))
	}
	return b.String()
}

// MergeRow is one line of the mergeability report.
type MergeRow struct {
	PRNumber int
	Title    string
	Branch   string
	InPrefix bool
	Blocked  string // non-empty block reason
}

// RenderMergeReport renders the bottom-up mergeability report.
func RenderMergeReport(rows []MergeRow) string {
	var b strings.Builder
	for _, row := range rows {
		var icon, status string
		switch {
		case row.InPrefix:
			icon = StatusOpenStyle.Render(IconOpen)
			status = SuccessStyle.Render("mergeable")
		case row.Blocked != "":
			icon = StatusBlockedStyle.Render(IconBlocked)
			status = StatusBlockedStyle.Render(row.Blocked)
		default:
			icon = DimStyle.Render(IconClosed)
			status = DimStyle.Render("above blocked PR")
		}

		label := row.Title
		if row.PRNumber > 0 {
			label = fmt.Sprintf("#%d %s", row.PRNumber, row.Title)
		}
		b.WriteString(fmt.Sprintf("%s %s %s\n", icon, label, status))
	}
	return strings.TrimRight(b.String(), "\n")
}
