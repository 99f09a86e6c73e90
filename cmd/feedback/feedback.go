package feedback

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
		Use:   "feedback",
		Short: "Show review feedback across the stack",
		Long: `Show reviews and inline comments for every open PR in the stack,
bottom of the stack first.

Example:
  ztk feedback`,
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

	feedback, err := c.Stack.StackFeedback(s)
	if err != nil {
		return err
	}
	if len(feedback) == 0 {
		ui.Info("No open PRs in the stack, run 'ztk update' first")
		return nil
	}

	for i, fb := range feedback {
		if i > 0 {
			ui.Print("")
		}
		ui.Print(ui.RenderFeedback(fb.Status.PR.Number, fb.Status.Spec.Title, fb.Items))
	}
	return nil
}
