package initcmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ztk-sh/ztk/internal/config"
	"github.com/ztk-sh/ztk/internal/git"
	"github.com/ztk-sh/ztk/internal/ui"
)

type Command struct {
	Owner  string
	Repo   string
	Trunk  string
	Remote string
	Force  bool
	Git    *git.Client
}

func (c *Command) Register(parent *cobra.Command) {
	command := &cobra.Command{
		Use:   "init",
		Short: "Initialize ztk in this repository",
		Long: `Write a .ztk.toml config file at the repository root.

Owner and repo are detected from the remote URL when not given explicitly.

Example:
  ztk init
  ztk init --trunk main --remote origin
  ztk init --owner acme --repo widgets`,
		Args: cobra.NoArgs,
		PreRunE: func(cobraCmd *cobra.Command, args []string) error {
			var err error
			c.Git, err = git.NewClient()
			if err != nil {
				ui.Error("Not in a git repository")
				return fmt.Errorf("git client initialization failed: %w", err)
			}
			return nil
		},
		RunE: func(cobraCmd *cobra.Command, args []string) error {
			return c.Run(cobraCmd.Context())
		},
	}

	command.Flags().StringVar(&c.Owner, "owner", "", "Repository owner (detected from remote when empty)")
	command.Flags().StringVar(&c.Repo, "repo", "", "Repository name (detected from remote when empty)")
	command.Flags().StringVar(&c.Trunk, "trunk", "main", "Trunk branch PRs ultimately merge into")
	command.Flags().StringVar(&c.Remote, "remote", "origin", "Git remote the stack is pushed to")
	command.Flags().BoolVar(&c.Force, "force", false, "Overwrite an existing .ztk.toml")

	parent.AddCommand(command)
}

func (c *Command) Run(ctx context.Context) error {
	if config.Exists(c.Git.GitRoot()) && !c.Force {
		return fmt.Errorf("%s already exists, use --force to overwrite", config.FileName)
	}

	owner, repo := c.Owner, c.Repo
	if owner == "" || repo == "" {
		remoteURL, err := c.Git.RemoteURL(c.Remote)
		if err != nil {
			return fmt.Errorf("failed to read remote %q, pass --owner and --repo explicitly: %w", c.Remote, err)
		}
		detectedOwner, detectedRepo, err := config.ParseRemoteURL(remoteURL)
		if err != nil {
			return fmt.Errorf("failed to detect owner/repo, pass --owner and --repo explicitly: %w", err)
		}
		if owner == "" {
			owner = detectedOwner
		}
		if repo == "" {
			repo = detectedRepo
		}
	}

	cfg := &config.Config{
		Owner:  owner,
		Repo:   repo,
		Trunk:  c.Trunk,
		Remote: c.Remote,
	}
	if err := config.Save(c.Git.GitRoot(), cfg); err != nil {
		return err
	}

	ui.Successf("Initialized %s for %s/%s (trunk %s, remote %s)",
		config.FileName, owner, repo, c.Trunk, c.Remote)
	return nil
}
