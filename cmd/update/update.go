package update

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
		Use:   "update",
		Short: "Push the stack and create or update its PRs",
		Long: `Make the remote match the local stack.

Every non-WIP commit gets a stable identity, a branch at the commit, and a
PR based on the branch below it. Existing PRs are retitled and retargeted
as needed. A failure on one commit skips it and continues with the rest.

Example:
  ztk update`,
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
		ui.Infof("No commits on %s beyond %s, nothing to push", s.HeadBranch, s.BaseBranch)
		return nil
	}

	rewritten, err := c.Stack.InjectIdentities(s)
	if err != nil {
		return err
	}
	if rewritten {
		ui.Info("Stamped stable identities onto new commits")
		s, err = c.Stack.ReadStack()
		if err != nil {
			return err
		}
	}

	outcomes := c.Stack.PushStack(s)
	if len(outcomes) == 0 {
		ui.Info("All commits are WIP, nothing to push")
		return nil
	}

	var created, updated, failed int
	for i, outcome := range outcomes {
		progress := ui.PushProgress{
			Position: i + 1,
			Total:    len(outcomes),
			Title:    outcome.Spec.Title,
			PRNumber: outcome.PRNumber,
			URL:      outcome.URL,
		}
		switch {
		case outcome.Err != nil:
			progress.Action = "failed"
			progress.Reason = outcome.Err.Error()
			failed++
		case outcome.Created:
			progress.Action = "created"
			created++
		default:
			progress.Action = "updated"
			updated++
		}
		ui.Print(ui.RenderPushProgress(progress))
	}

	ui.Print(ui.RenderPushSummary(created, updated, failed))
	return nil
}
