package common

import (
	"fmt"

	"github.com/ztk-sh/ztk/internal/config"
	"github.com/ztk-sh/ztk/internal/forge"
	"github.com/ztk-sh/ztk/internal/git"
	"github.com/ztk-sh/ztk/internal/stack"
	"github.com/ztk-sh/ztk/internal/ui"
)

// InitClients initializes the git, forge, and stack clients from the
// repository's .ztk.toml. Returns an error suitable for use in PreRunE hooks.
func InitClients() (*git.Client, *forge.Client, *stack.Client, error) {
	gitClient, err := git.NewClient()
	if err != nil {
		ui.Error("Not in a git repository")
		return nil, nil, nil, fmt.Errorf("git client initialization failed: %w", err)
	}

	cfg, err := config.Load(gitClient.GitRoot())
	if err != nil {
		return nil, nil, nil, err
	}

	forgeClient, err := forge.NewClient(cfg.Owner, cfg.Repo)
	if err != nil {
		return nil, nil, nil, err
	}

	stackClient := stack.NewClient(gitClient, forgeClient, cfg)
	return gitClient, forgeClient, stackClient, nil
}
