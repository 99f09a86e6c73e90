package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/ktr0731/go-fuzzyfinder"

	"github.com/ztk-sh/ztk/internal/model"
)

func init() {
	// Force lipgloss to initialize and detect terminal before fuzzy finder starts
	// This prevents ANSI escape sequences from leaking into the finder input
	_ = lipgloss.NewStyle().Render("")
	_ = lipgloss.HasDarkBackground()
}

// SelectMergeTop presents a fuzzy finder over the mergeable prefix so the
// user can pick where the merge should stop. Returns the chosen index into
// the prefix, or -1 when the selection was cancelled.
func SelectMergeTop(prefix []model.MergePRInfo) (int, error) {
	idx, err := fuzzyfinder.Find(
		prefix,
		func(i int) string {
			return fmt.Sprintf("#%d %s", prefix[i].PRNumber, prefix[i].Title)
		},
		fuzzyfinder.WithPreviewWindow(func(i, w, h int) string {
			if i == -1 {
				return ""
			}
			info := prefix[i]
			return fmt.Sprintf(
				"PR #%d\nBranch: %s\n\nMerging up to here merges %d PR(s).",
				info.PRNumber, info.Branch, i+1,
			)
		}),
	)
	if err != nil {
		// User cancelled (Ctrl+C or ESC)
		return -1, nil
	}
	return idx, nil
}
