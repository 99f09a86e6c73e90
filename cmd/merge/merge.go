package merge

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ztk-sh/ztk/internal/common"
	"github.com/ztk-sh/ztk/internal/forge"
	"github.com/ztk-sh/ztk/internal/git"
	"github.com/ztk-sh/ztk/internal/model"
	"github.com/ztk-sh/ztk/internal/stack"
	"github.com/ztk-sh/ztk/internal/ui"
)

type Command struct {
	Interactive bool
	Force       bool
	NoReview    bool
	Yes         bool
	Git         *git.Client
	Forge       *forge.Client
	Stack       *stack.Client
}

func (c *Command) Register(parent *cobra.Command) {
	command := &cobra.Command{
		Use:   "merge",
		Short: "Merge the mergeable bottom of the stack",
		Long: `Walk the stack bottom-up and merge the longest run of mergeable
PRs as a single merge: the topmost PR of the run is retargeted to trunk and
merged, the PRs below it are closed as redundant.

A PR is mergeable when its checks pass, it is approved (or overridden),
and it has no conflicts. The walk stops at the first blocked PR.

Example:
  ztk merge
  ztk merge --interactive
  ztk merge --no-review
  ztk merge --force`,
		Args: cobra.NoArgs,
		PreRunE: func(cobraCmd *cobra.Command, args []string) error {
			var err error
			c.Git, c.Forge, c.Stack, err = common.InitClients()
			return err
		},
		RunE: func(cobraCmd *cobra.Command, args []string) error {
			return c.Run(cobraCmd.Context())
		},
	}

	command.Flags().BoolVarP(&c.Interactive, "interactive", "i", false, "Pick how far up the prefix to merge")
	command.Flags().BoolVar(&c.Force, "force", false, "Ignore checks and reviews (conflicts still block)")
	command.Flags().BoolVar(&c.NoReview, "no-review", false, "Ignore missing approvals")
	command.Flags().BoolVarP(&c.Yes, "yes", "y", false, "Skip the confirmation prompt")

	parent.AddCommand(command)
}

func (c *Command) Run(ctx context.Context) error {
	s, err := c.Stack.ReadStack()
	if err != nil {
		return err
	}
	if s.IsEmpty() {
		ui.Infof("No commits on %s beyond %s, nothing to merge", s.HeadBranch, s.BaseBranch)
		return nil
	}

	opts := stack.MergeOptions{Force: c.Force, NoReview: c.NoReview}
	report, err := c.Stack.MergeReport(s, opts)
	if err != nil {
		return err
	}
	prefix := stack.MergeablePrefix(report)

	ui.Print(renderReport(report, len(prefix)))

	if len(prefix) == 0 {
		return stack.ErrNoMergeablePR
	}

	if c.Interactive {
		top, err := ui.SelectMergeTop(prefix)
		if err != nil {
			return err
		}
		if top < 0 {
			ui.Info("Aborted, nothing merged")
			return nil
		}
		prefix = prefix[:top+1]
	}

	top := prefix[len(prefix)-1]
	prompt := fmt.Sprintf("Merge #%d (%s) into trunk, closing %d PR(s) below it?",
		top.PRNumber, top.Title, len(prefix)-1)
	if !c.Yes && !ui.Confirm(prompt) {
		ui.Info("Aborted, nothing merged")
		return nil
	}

	result, err := c.Stack.ExecuteMerge(prefix)
	if err != nil {
		return err
	}

	ui.Successf("Merged #%d", result.MergedPR)
	for _, n := range result.ClosedPRs {
		ui.Infof("Closed #%d as redundant", n)
	}
	if result.FailedCloses > 0 {
		ui.Warningf("%d lower PR(s) failed to close, close them manually", result.FailedCloses)
	}

	ui.Info("Run 'ztk sync' to rebase onto the new trunk")
	return nil
}

func renderReport(report []model.MergePRInfo, prefixLen int) string {
	rows := make([]ui.MergeRow, 0, len(report))
	for i, info := range report {
		row := ui.MergeRow{
			PRNumber: info.PRNumber,
			Title:    info.Title,
			Branch:   info.Branch,
			InPrefix: i < prefixLen,
		}
		if i == prefixLen {
			row.Blocked = info.BlockReason()
		}
		rows = append(rows, row)
	}
	return ui.RenderMergeReport(rows)
}
