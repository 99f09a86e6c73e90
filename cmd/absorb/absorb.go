package absorb

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
	DryRun bool
	Yes    bool
	Git    *git.Client
	Forge  *forge.Client
	Stack  *stack.Client
}

func (c *Command) Register(parent *cobra.Command) {
	command := &cobra.Command{
		Use:   "absorb",
		Short: "Fold staged changes into the stack commits that own them",
		Long: `Attribute each staged hunk to the stack commit that last touched
its lines, then fold the hunks in as fixups and autosquash them away.

A hunk is absorbed only when the attribution is unambiguous: blame over
the hunk's old lines must name exactly one commit, and that commit must
be in the stack. Everything else stays staged.

Example:
  ztk absorb
  ztk absorb --dry-run
  ztk absorb --yes`,
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

	command.Flags().BoolVar(&c.DryRun, "dry-run", false, "Show the plan without touching anything")
	command.Flags().BoolVarP(&c.Yes, "yes", "y", false, "Skip the confirmation prompt")

	parent.AddCommand(command)
}

func (c *Command) Run(ctx context.Context) error {
	s, err := c.Stack.ReadStack()
	if err != nil {
		return err
	}
	if s.IsEmpty() {
		ui.Infof("No commits on %s beyond %s, nothing to absorb into", s.HeadBranch, s.BaseBranch)
		return nil
	}

	plan, err := c.Stack.PlanAbsorb(s)
	if err != nil {
		return err
	}

	views := make([]ui.AbsorbTargetView, 0, len(plan.Targets))
	for _, t := range plan.Targets {
		views = append(views, ui.AbsorbTargetView{
			ShortHash: t.Commit.ShortHash,
			Title:     t.Commit.Title,
			HunkCount: len(t.Hunks),
			Files:     t.Files,
		})
	}
	ui.Print(ui.RenderAbsorbPlan(views, len(plan.Unabsorbable), plan.TotalHunks))

	if len(plan.Targets) == 0 {
		ui.Warning("No hunk could be attributed to a single stack commit")
		return nil
	}
	if c.DryRun {
		return nil
	}
	if !c.Yes && !ui.Confirm("Absorb these hunks?") {
		ui.Info("Aborted, staged changes untouched")
		return nil
	}

	result, err := c.Stack.ExecuteAbsorb(s, plan)
	if err != nil {
		return err
	}

	if result.SkippedCount > 0 {
		ui.Warningf("Skipped %d target(s) whose fixup did not apply, their hunks are back in the stash cycle", result.SkippedCount)
	}
	ui.Successf("Absorbed %d fixup(s) into the stack", result.FixupCount)
	return nil
}
