package stack

import (
	"github.com/ztk-sh/ztk/internal/config"
	"github.com/ztk-sh/ztk/internal/forge"
	"github.com/ztk-sh/ztk/internal/git"
	"github.com/ztk-sh/ztk/internal/model"
)

// GitClient defines the git operations needed by the stack engine
type GitClient interface {
	GitRoot() string
	CurrentBranch() (string, error)
	CommitHash(ref string) (string, error)
	RefExists(ref string) bool
	MergeBase(a, b string) (string, error)
	CommitsInRange(base, head string) ([]git.RawCommit, error)
	CommitMessage(ref string) (string, error)
	AmendMessage(message string) error
	Checkout(ref string) error
	ResetHard(ref string) error
	UpdateRef(branchName, commitHash string) error
	DeleteBranch(name string, force bool) error
	DeleteRemoteBranch(remote, name string) error
	Push(remote, branch string, force bool) error
	Fetch(remote, ref string) error
	LocalBranches(pattern string) ([]string, error)
	HasUncommittedChanges() (bool, error)
	HasStagedChanges() (bool, error)
	StashPush() (bool, error)
	StashPop() error
	StageFiles(files []string) error
	CommitFixup(sha string) error
	RebaseOnto(newBase, upstream, branch string) error
	Rebase(upstream string) error
	RebaseAutosquash(upstream string) error
	RebaseAbort() error
	StagedDiff() (string, error)
	Blame(file string, start, count int, ref string) (model.BlameResult, error)
	IsRebaseInProgress() bool
}

// ForgeClient defines the forge operations needed by the stack engine
type ForgeClient interface {
	FindOpenPR(headBranch string) (*forge.PR, error)
	CreatePR(req forge.CreatePRRequest) (*forge.PR, error)
	UpdatePR(number int, opts forge.UpdatePROptions) error
	GetPR(number int) (*forge.PR, error)
	IsApproved(number int) (bool, error)
	CheckState(ref string) (forge.CheckState, error)
	MergePR(number int) error
	ClosePR(number int) error
	CommentPR(number int, text string) error
	DeleteBranch(branch string) error
	BranchPRState(headBranch string) (merged bool, closed bool, err error)
	Feedback(number int) ([]model.FeedbackItem, error)
}

// Client is the stack synchronization engine. It is strictly synchronous;
// only one invocation may run against a given repository at a time. The
// exclusion boundary is the single working tree, not an in-process lock.
type Client struct {
	git   GitClient
	forge ForgeClient
	cfg   *config.Config
}

// NewClient creates a new stack engine client
func NewClient(gitClient GitClient, forgeClient ForgeClient, cfg *config.Config) *Client {
	return &Client{
		git:   gitClient,
		forge: forgeClient,
		cfg:   cfg,
	}
}

// trunkRef returns the ref used as trunk for range and merge-base queries:
// the remote-tracking ref when it exists, falling back to the local branch.
func (c *Client) trunkRef() string {
	remoteRef := c.cfg.Remote + "/" + c.cfg.Trunk
	if c.git.RefExists(remoteRef) {
		return remoteRef
	}
	return c.cfg.Trunk
}
