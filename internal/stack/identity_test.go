package stack

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ztk-sh/ztk/internal/testutil"
)

func TestInjectIdentities(t *testing.T) {
	gitClient := testutil.NewTestGitClient(t)
	testutil.Git(t, gitClient.GitRoot(), "checkout", "-b", "feature")

	h1 := testutil.CreateCommit(t, gitClient, "Add parser", "", nil)
	h2 := testutil.CreateCommit(t, gitClient, "Add renderer", "", nil)

	client := NewClient(gitClient, &MockForgeClient{}, testConfig())

	s, err := client.ReadStack()
	require.NoError(t, err)
	require.True(t, s.NeedsIdentity())

	rewritten, err := client.InjectIdentities(s)
	require.NoError(t, err)
	assert.True(t, rewritten)

	s, err = client.ReadStack()
	require.NoError(t, err)
	require.Len(t, s.Commits, 2)

	// Every commit now carries a distinct 32-hex stable id under a new hash
	assert.Len(t, s.Commits[0].StableID, 32)
	assert.Len(t, s.Commits[1].StableID, 32)
	assert.NotEqual(t, s.Commits[0].StableID, s.Commits[1].StableID)
	assert.NotEqual(t, h1, s.Commits[0].Hash)
	assert.NotEqual(t, h2, s.Commits[1].Hash)

	// Titles and order are untouched
	assert.Equal(t, "Add parser", s.Commits[0].Title)
	assert.Equal(t, "Add renderer", s.Commits[1].Title)

	// Still on the original branch
	branch, err := gitClient.CurrentBranch()
	require.NoError(t, err)
	assert.Equal(t, "feature", branch)
}

func TestInjectIdentities_Idempotent(t *testing.T) {
	gitClient := testutil.NewTestGitClient(t)
	testutil.Git(t, gitClient.GitRoot(), "checkout", "-b", "feature")

	testutil.CreateCommit(t, gitClient, "Add parser", "", nil)

	client := NewClient(gitClient, &MockForgeClient{}, testConfig())

	s, err := client.ReadStack()
	require.NoError(t, err)
	rewritten, err := client.InjectIdentities(s)
	require.NoError(t, err)
	require.True(t, rewritten)

	s, err = client.ReadStack()
	require.NoError(t, err)
	hash := s.Commits[0].Hash

	rewritten, err = client.InjectIdentities(s)
	require.NoError(t, err)
	assert.False(t, rewritten)

	s, err = client.ReadStack()
	require.NoError(t, err)
	assert.Equal(t, hash, s.Commits[0].Hash)
}

func TestInjectIdentities_PreservesPrefix(t *testing.T) {
	gitClient := testutil.NewTestGitClient(t)
	testutil.Git(t, gitClient.GitRoot(), "checkout", "-b", "feature")

	h1 := testutil.CreateCommit(t, gitClient, "Already stamped", "", map[string]string{
		"ZTK-ID": "0123456789abcdef0123456789abcdef",
	})
	testutil.CreateCommit(t, gitClient, "Needs a stamp", "", nil)

	client := NewClient(gitClient, &MockForgeClient{}, testConfig())

	s, err := client.ReadStack()
	require.NoError(t, err)
	rewritten, err := client.InjectIdentities(s)
	require.NoError(t, err)
	require.True(t, rewritten)

	s, err = client.ReadStack()
	require.NoError(t, err)
	require.Len(t, s.Commits, 2)

	// The stamped bottom commit keeps its object identity
	assert.Equal(t, h1, s.Commits[0].Hash)
	assert.Equal(t, "0123456789abcdef0123456789abcdef", s.Commits[0].StableID)
	assert.Len(t, s.Commits[1].StableID, 32)
}

func TestInjectIdentities_SkipsWIPCommits(t *testing.T) {
	gitClient := testutil.NewTestGitClient(t)
	testutil.Git(t, gitClient.GitRoot(), "checkout", "-b", "feature")

	testutil.CreateCommit(t, gitClient, "Real work", "", nil)
	testutil.CreateCommit(t, gitClient, "WIP: experiment", "", nil)

	client := NewClient(gitClient, &MockForgeClient{}, testConfig())

	s, err := client.ReadStack()
	require.NoError(t, err)
	rewritten, err := client.InjectIdentities(s)
	require.NoError(t, err)
	require.True(t, rewritten)

	s, err = client.ReadStack()
	require.NoError(t, err)
	require.Len(t, s.Commits, 2)

	assert.Len(t, s.Commits[0].StableID, 32)
	assert.Empty(t, s.Commits[1].StableID)
	assert.True(t, s.Commits[1].IsWIP)
}

func TestNewStableID(t *testing.T) {
	id := NewStableID()
	assert.Len(t, id, 32)
	assert.NotEqual(t, id, NewStableID())
	assert.NotContains(t, id, "-")
}
