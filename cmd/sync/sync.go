package sync

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
		Use:   "sync",
		Short: "Rebase onto trunk and clean up merged branches",
		Long: `Fetch trunk, rebase the current branch onto it, and delete stack
branches whose PR is merged or closed, both locally and on the remote.

Rebase conflicts stop the sync; resolve them and run 'git rebase
--continue', then sync again to finish the cleanup.

Example:
  ztk sync`,
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
	result, err := c.Stack.Sync()
	if err != nil {
		return err
	}

	ui.Success("Rebased onto trunk")
	if result.DeletedLocal > 0 || result.DeletedRemote > 0 {
		ui.Infof("Cleaned up %d local and %d remote branch(es)", result.DeletedLocal, result.DeletedRemote)
	}
	for _, branch := range result.KeptBranches {
		ui.Printf("%s %s", ui.Dim("kept"), branch)
	}
	return nil
}
