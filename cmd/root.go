package cmd

import (
	"context"
	"log"

	"github.com/spf13/cobra"

	"github.com/ztk-sh/ztk/cmd/absorb"
	"github.com/ztk-sh/ztk/cmd/feedback"
	"github.com/ztk-sh/ztk/cmd/initcmd"
	"github.com/ztk-sh/ztk/cmd/merge"
	"github.com/ztk-sh/ztk/cmd/status"
	synccmd "github.com/ztk-sh/ztk/cmd/sync"
	"github.com/ztk-sh/ztk/cmd/update"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "ztk",
	Short: "Stacked pull request manager",
	Long: `ztk keeps a linear stack of local commits in lockstep with a chain
of stacked pull requests on GitHub.

Commits stay ordinary git commits. ztk reads the stack from git history,
stamps each commit with a stable identity, and maps every non-WIP commit
to its own branch and PR, each PR based on the one below it.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute(ctx context.Context) {
	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		log.Fatal(err)
	}
}

func init() {
	// Register all commands
	commands := []Command{
		&initcmd.Command{},
		&status.Command{},
		&update.Command{},
		&absorb.Command{},
		&merge.Command{},
		&synccmd.Command{},
		&feedback.Command{},
	}

	for _, cmd := range commands {
		cmd.Register(rootCmd)
	}
}
