package status

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/ztk-sh/ztk/internal/common"
	"github.com/ztk-sh/ztk/internal/forge"
	"github.com/ztk-sh/ztk/internal/git"
	"github.com/ztk-sh/ztk/internal/stack"
	"github.com/ztk-sh/ztk/internal/ui"
)

type Command struct {
	Git   *git.Client
	Forge *forge.Client
	Stack *stack.Client
}

func (c *Command) Register(parent *cobra.Command) {
	command := &cobra.Command{
		Use:   "status",
		Short: "Show the stack and its PRs",
		Long: `Show every commit in the current stack, top of stack first,
with the state of its pull request.

Example:
  ztk status`,
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

	parent.AddCommand(command)
}

func (c *Command) Run(ctx context.Context) error {
	s, err := c.Stack.ReadStack()
	if err != nil {
		return err
	}
	if s.IsEmpty() {
		ui.Infof("No commits on %s beyond %s", s.HeadBranch, s.BaseBranch)
		return nil
	}

	statuses, err := c.Stack.StatusReport(s)
	if err != nil {
		return err
	}
	bySHA := make(map[string]stack.PRStatus, len(statuses))
	for _, status := range statuses {
		bySHA[status.Spec.SHA] = status
	}

	ui.Header(s.HeadBranch)

	rows := make([]ui.StackRow, 0, len(s.Commits))
	for i, commit := range s.Commits {
		row := ui.StackRow{
			Position:  i + 1,
			Total:     len(s.Commits),
			Title:     commit.Title,
			ShortHash: commit.ShortHash,
			IsWIP:     commit.IsWIP,
			State:     "local",
		}
		if status, ok := bySHA[commit.Hash]; ok {
			row.Branch = status.Spec.BranchName
			if status.PR != nil {
				row.PRNumber = status.PR.Number
				row.URL = status.PR.HTMLURL
				row.State = status.PR.State
			}
		}
		rows = append(rows, row)
	}

	ui.Print(ui.RenderStackRows(rows))
	return nil
}
