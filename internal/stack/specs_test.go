package stack

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ztk-sh/ztk/internal/model"
)

func testStack(commits ...model.Commit) *model.Stack {
	return &model.Stack{
		Commits:    commits,
		BaseBranch: "main",
		HeadBranch: "feature",
	}
}

func TestBranchName(t *testing.T) {
	withID := model.Commit{ShortHash: "abcd1234", StableID: "0123456789abcdef0123456789abcdef"}
	assert.Equal(t, "ztk/feature/01234567", BranchName("feature", withID))

	withoutID := model.Commit{ShortHash: "abcd1234"}
	assert.Equal(t, "ztk/feature/abcd1234", BranchName("feature", withoutID))
}

func TestBranchPattern(t *testing.T) {
	assert.Equal(t, "ztk/feature/*", BranchPattern("feature"))
}

func TestDerivePRSpecs_BaseChain(t *testing.T) {
	s := testStack(
		model.Commit{Hash: "a1", ShortHash: "a1", Title: "Add parser", StableID: "aaaaaaaa000000000000000000000000"},
		model.Commit{Hash: "b2", ShortHash: "b2", Title: "Add renderer", StableID: "bbbbbbbb000000000000000000000000"},
		model.Commit{Hash: "c3", ShortHash: "c3", Title: "Wire it up", StableID: "cccccccc000000000000000000000000"},
	)

	specs := DerivePRSpecs(s)
	require.Len(t, specs, 3)

	assert.Equal(t, "main", specs[0].BaseRef)
	assert.Equal(t, specs[0].BranchName, specs[1].BaseRef)
	assert.Equal(t, specs[1].BranchName, specs[2].BaseRef)

	assert.Equal(t, "ztk/feature/aaaaaaaa", specs[0].BranchName)
	assert.Equal(t, "Add parser", specs[0].Title)
	assert.Equal(t, "a1", specs[0].SHA)
}

func TestDerivePRSpecs_SkipsWIP(t *testing.T) {
	s := testStack(
		model.Commit{Hash: "a1", Title: "Bottom", StableID: "aaaaaaaa000000000000000000000000"},
		model.Commit{Hash: "b2", Title: "WIP: experiment", IsWIP: true},
		model.Commit{Hash: "c3", Title: "Top", StableID: "cccccccc000000000000000000000000"},
	)

	specs := DerivePRSpecs(s)
	require.Len(t, specs, 2)

	// The commit above the WIP bases on the last non-WIP branch below it
	assert.Equal(t, "main", specs[0].BaseRef)
	assert.Equal(t, specs[0].BranchName, specs[1].BaseRef)
	assert.Equal(t, "Top", specs[1].Title)
}

func TestDerivePRSpecs_Deterministic(t *testing.T) {
	s := testStack(
		model.Commit{Hash: "a1", Title: "One", StableID: "aaaaaaaa000000000000000000000000"},
		model.Commit{Hash: "b2", Title: "Two", StableID: "bbbbbbbb000000000000000000000000"},
	)

	assert.Equal(t, DerivePRSpecs(s), DerivePRSpecs(s))
}

func TestDerivePRSpecs_Body(t *testing.T) {
	s := testStack(
		model.Commit{Hash: "a1", Title: "Add parser", Body: "Handles the edge cases.", StableID: "aaaaaaaa000000000000000000000000"},
		model.Commit{Hash: "b2", Title: "No body", StableID: "bbbbbbbb000000000000000000000000"},
	)

	specs := DerivePRSpecs(s)
	require.Len(t, specs, 2)
	assert.Equal(t, "Add parser\n\nHandles the edge cases.", specs[0].Body)
	assert.Equal(t, "No body", specs[1].Body)
}

func TestDerivePRSpecs_Empty(t *testing.T) {
	assert.Empty(t, DerivePRSpecs(testStack()))
}
