package stack

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSync_CleansFinishedBranches(t *testing.T) {
	mockGit := &MockGitClient{}
	mockForge := &MockForgeClient{}
	client := NewClient(mockGit, mockForge, testConfig())

	mockGit.On("IsRebaseInProgress").Return(false)
	mockGit.On("HasUncommittedChanges").Return(false, nil)
	mockGit.On("CurrentBranch").Return("feature", nil)
	mockGit.On("Fetch", "origin", "main").Return(nil)
	mockGit.On("Rebase", "origin/main").Return(nil)
	mockGit.On("LocalBranches", "ztk/feature/*").Return([]string{
		"ztk/feature/aaaaaaaa",
		"ztk/feature/bbbbbbbb",
		"ztk/feature/cccccccc",
	}, nil)

	mockForge.On("BranchPRState", "ztk/feature/aaaaaaaa").Return(true, false, nil)  // merged
	mockForge.On("BranchPRState", "ztk/feature/bbbbbbbb").Return(false, false, nil) // still open
	mockForge.On("BranchPRState", "ztk/feature/cccccccc").Return(false, true, nil)  // closed

	mockGit.On("DeleteBranch", "ztk/feature/aaaaaaaa", true).Return(nil)
	mockGit.On("DeleteRemoteBranch", "origin", "ztk/feature/aaaaaaaa").Return(nil)
	mockGit.On("DeleteBranch", "ztk/feature/cccccccc", true).Return(nil)
	mockGit.On("DeleteRemoteBranch", "origin", "ztk/feature/cccccccc").Return(nil)

	result, err := client.Sync()
	require.NoError(t, err)

	assert.True(t, result.Rebased)
	assert.Equal(t, 2, result.DeletedLocal)
	assert.Equal(t, 2, result.DeletedRemote)
	assert.Equal(t, []string{"ztk/feature/bbbbbbbb"}, result.KeptBranches)

	mockGit.AssertExpectations(t)
	mockForge.AssertExpectations(t)
}

func TestSync_RebaseConflictSurfaces(t *testing.T) {
	mockGit := &MockGitClient{}
	client := NewClient(mockGit, &MockForgeClient{}, testConfig())

	mockGit.On("IsRebaseInProgress").Return(false)
	mockGit.On("HasUncommittedChanges").Return(false, nil)
	mockGit.On("CurrentBranch").Return("feature", nil)
	mockGit.On("Fetch", "origin", "main").Return(nil)
	mockGit.On("Rebase", "origin/main").Return(assert.AnError)

	_, err := client.Sync()
	assert.ErrorIs(t, err, ErrRebaseConflict)
}

func TestSync_RefusesDirtyTree(t *testing.T) {
	mockGit := &MockGitClient{}
	client := NewClient(mockGit, &MockForgeClient{}, testConfig())

	mockGit.On("IsRebaseInProgress").Return(false)
	mockGit.On("HasUncommittedChanges").Return(true, nil)

	_, err := client.Sync()
	require.Error(t, err)
	mockGit.AssertNotCalled(t, "Fetch")
}

func TestSync_RefusesMidRebase(t *testing.T) {
	mockGit := &MockGitClient{}
	client := NewClient(mockGit, &MockForgeClient{}, testConfig())

	mockGit.On("IsRebaseInProgress").Return(true)

	_, err := client.Sync()
	require.Error(t, err)
	mockGit.AssertNotCalled(t, "Rebase")
}
