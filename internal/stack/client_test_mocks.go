package stack

import (
	"github.com/stretchr/testify/mock"

	"github.com/ztk-sh/ztk/internal/forge"
	"github.com/ztk-sh/ztk/internal/git"
	"github.com/ztk-sh/ztk/internal/model"
)

type MockForgeClient struct {
	mock.Mock
}

// FindOpenPR implements ForgeClient.
func (m *MockForgeClient) FindOpenPR(headBranch string) (*forge.PR, error) {
	args := m.Called(headBranch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*forge.PR), args.Error(1)
}

// CreatePR implements ForgeClient.
func (m *MockForgeClient) CreatePR(req forge.CreatePRRequest) (*forge.PR, error) {
	args := m.Called(req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*forge.PR), args.Error(1)
}

// UpdatePR implements ForgeClient.
func (m *MockForgeClient) UpdatePR(number int, opts forge.UpdatePROptions) error {
	args := m.Called(number, opts)
	return args.Error(0)
}

// GetPR implements ForgeClient.
func (m *MockForgeClient) GetPR(number int) (*forge.PR, error) {
	args := m.Called(number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*forge.PR), args.Error(1)
}

// IsApproved implements ForgeClient.
func (m *MockForgeClient) IsApproved(number int) (bool, error) {
	args := m.Called(number)
	return args.Bool(0), args.Error(1)
}

// CheckState implements ForgeClient.
func (m *MockForgeClient) CheckState(ref string) (forge.CheckState, error) {
	args := m.Called(ref)
	return args.Get(0).(forge.CheckState), args.Error(1)
}

// MergePR implements ForgeClient.
func (m *MockForgeClient) MergePR(number int) error {
	args := m.Called(number)
	return args.Error(0)
}

// ClosePR implements ForgeClient.
func (m *MockForgeClient) ClosePR(number int) error {
	args := m.Called(number)
	return args.Error(0)
}

// CommentPR implements ForgeClient.
func (m *MockForgeClient) CommentPR(number int, text string) error {
	args := m.Called(number, text)
	return args.Error(0)
}

// DeleteBranch implements ForgeClient.
func (m *MockForgeClient) DeleteBranch(branch string) error {
	args := m.Called(branch)
	return args.Error(0)
}

// BranchPRState implements ForgeClient.
func (m *MockForgeClient) BranchPRState(headBranch string) (bool, bool, error) {
	args := m.Called(headBranch)
	return args.Bool(0), args.Bool(1), args.Error(2)
}

// Feedback implements ForgeClient.
func (m *MockForgeClient) Feedback(number int) ([]model.FeedbackItem, error) {
	args := m.Called(number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.FeedbackItem), args.Error(1)
}

type MockGitClient struct {
	mock.Mock
}

// GitRoot implements GitClient.
func (m *MockGitClient) GitRoot() string {
	args := m.Called()
	return args.String(0)
}

// CurrentBranch implements GitClient.
func (m *MockGitClient) CurrentBranch() (string, error) {
	args := m.Called()
	return args.String(0), args.Error(1)
}

// CommitHash implements GitClient.
func (m *MockGitClient) CommitHash(ref string) (string, error) {
	args := m.Called(ref)
	return args.String(0), args.Error(1)
}

// RefExists implements GitClient.
func (m *MockGitClient) RefExists(ref string) bool {
	args := m.Called(ref)
	return args.Bool(0)
}

// MergeBase implements GitClient.
func (m *MockGitClient) MergeBase(a, b string) (string, error) {
	args := m.Called(a, b)
	return args.String(0), args.Error(1)
}

// CommitsInRange implements GitClient.
func (m *MockGitClient) CommitsInRange(base, head string) ([]git.RawCommit, error) {
	args := m.Called(base, head)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]git.RawCommit), args.Error(1)
}

// CommitMessage implements GitClient.
func (m *MockGitClient) CommitMessage(ref string) (string, error) {
	args := m.Called(ref)
	return args.String(0), args.Error(1)
}

// AmendMessage implements GitClient.
func (m *MockGitClient) AmendMessage(message string) error {
	args := m.Called(message)
	return args.Error(0)
}

// Checkout implements GitClient.
func (m *MockGitClient) Checkout(ref string) error {
	args := m.Called(ref)
	return args.Error(0)
}

// ResetHard implements GitClient.
func (m *MockGitClient) ResetHard(ref string) error {
	args := m.Called(ref)
	return args.Error(0)
}

// UpdateRef implements GitClient.
func (m *MockGitClient) UpdateRef(branchName, commitHash string) error {
	args := m.Called(branchName, commitHash)
	return args.Error(0)
}

// DeleteBranch implements GitClient.
func (m *MockGitClient) DeleteBranch(name string, force bool) error {
	args := m.Called(name, force)
	return args.Error(0)
}

// DeleteRemoteBranch implements GitClient.
func (m *MockGitClient) DeleteRemoteBranch(remote, name string) error {
	args := m.Called(remote, name)
	return args.Error(0)
}

// Push implements GitClient.
func (m *MockGitClient) Push(remote, branch string, force bool) error {
	args := m.Called(remote, branch, force)
	return args.Error(0)
}

// Fetch implements GitClient.
func (m *MockGitClient) Fetch(remote, ref string) error {
	args := m.Called(remote, ref)
	return args.Error(0)
}

// LocalBranches implements GitClient.
func (m *MockGitClient) LocalBranches(pattern string) ([]string, error) {
	args := m.Called(pattern)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// HasUncommittedChanges implements GitClient.
func (m *MockGitClient) HasUncommittedChanges() (bool, error) {
	args := m.Called()
	return args.Bool(0), args.Error(1)
}

// HasStagedChanges implements GitClient.
func (m *MockGitClient) HasStagedChanges() (bool, error) {
	args := m.Called()
	return args.Bool(0), args.Error(1)
}

// StashPush implements GitClient.
func (m *MockGitClient) StashPush() (bool, error) {
	args := m.Called()
	return args.Bool(0), args.Error(1)
}

// StashPop implements GitClient.
func (m *MockGitClient) StashPop() error {
	args := m.Called()
	return args.Error(0)
}

// StageFiles implements GitClient.
func (m *MockGitClient) StageFiles(files []string) error {
	args := m.Called(files)
	return args.Error(0)
}

// CommitFixup implements GitClient.
func (m *MockGitClient) CommitFixup(sha string) error {
	args := m.Called(sha)
	return args.Error(0)
}

// RebaseOnto implements GitClient.
func (m *MockGitClient) RebaseOnto(newBase, upstream, branch string) error {
	args := m.Called(newBase, upstream, branch)
	return args.Error(0)
}

// Rebase implements GitClient.
func (m *MockGitClient) Rebase(upstream string) error {
	args := m.Called(upstream)
	return args.Error(0)
}

// RebaseAbort implements GitClient.
func (m *MockGitClient) RebaseAbort() error {
	args := m.Called()
	return args.Error(0)
}

// RebaseAutosquash implements GitClient.
func (m *MockGitClient) RebaseAutosquash(upstream string) error {
	args := m.Called(upstream)
	return args.Error(0)
}

// StagedDiff implements GitClient.
func (m *MockGitClient) StagedDiff() (string, error) {
	args := m.Called()
	return args.String(0), args.Error(1)
}

// Blame implements GitClient.
func (m *MockGitClient) Blame(file string, start, count int, ref string) (model.BlameResult, error) {
	args := m.Called(file, start, count, ref)
	return args.Get(0).(model.BlameResult), args.Error(1)
}

// IsRebaseInProgress implements GitClient.
func (m *MockGitClient) IsRebaseInProgress() bool {
	args := m.Called()
	return args.Bool(0)
}
