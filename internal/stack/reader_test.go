package stack

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ztk-sh/ztk/internal/model"
	"github.com/ztk-sh/ztk/internal/testutil"
)

func TestReadStack(t *testing.T) {
	gitClient := testutil.NewTestGitClient(t)
	testutil.Git(t, gitClient.GitRoot(), "checkout", "-b", "feature")

	h1 := testutil.CreateCommit(t, gitClient, "Add parser", "Handles edge cases.", map[string]string{
		model.StableIDTrailer: "0123456789abcdef0123456789abcdef",
	})
	h2 := testutil.CreateCommit(t, gitClient, "Add renderer", "", nil)

	client := NewClient(gitClient, &MockForgeClient{}, testConfig())

	s, err := client.ReadStack()
	require.NoError(t, err)

	assert.Equal(t, "feature", s.HeadBranch)
	assert.Equal(t, "main", s.BaseBranch)
	require.Len(t, s.Commits, 2)

	bottom := s.Commits[0]
	assert.Equal(t, h1, bottom.Hash)
	assert.Equal(t, h1[:8], bottom.ShortHash)
	assert.Equal(t, "Add parser", bottom.Title)
	assert.Equal(t, "0123456789abcdef0123456789abcdef", bottom.StableID)
	assert.Contains(t, bottom.Body, "Handles edge cases.")
	assert.False(t, bottom.IsWIP)

	top := s.Commits[1]
	assert.Equal(t, h2, top.Hash)
	assert.Empty(t, top.StableID)
}

func TestReadStack_EmptyOnTrunk(t *testing.T) {
	gitClient := testutil.NewTestGitClient(t)
	client := NewClient(gitClient, &MockForgeClient{}, testConfig())

	s, err := client.ReadStack()
	require.NoError(t, err)
	assert.True(t, s.IsEmpty())
}

func TestReadStack_MarksWIP(t *testing.T) {
	gitClient := testutil.NewTestGitClient(t)
	testutil.Git(t, gitClient.GitRoot(), "checkout", "-b", "feature")

	testutil.CreateCommit(t, gitClient, "WIP: experiment", "", nil)

	client := NewClient(gitClient, &MockForgeClient{}, testConfig())

	s, err := client.ReadStack()
	require.NoError(t, err)
	require.Len(t, s.Commits, 1)
	assert.True(t, s.Commits[0].IsWIP)
}
