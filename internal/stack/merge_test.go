package stack

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ztk-sh/ztk/internal/config"
	"github.com/ztk-sh/ztk/internal/forge"
	"github.com/ztk-sh/ztk/internal/model"
)

func testConfig() *config.Config {
	return &config.Config{
		Owner:  "test-owner",
		Repo:   "test-repo",
		Trunk:  "main",
		Remote: "origin",
	}
}

func TestCollapseMergeable(t *testing.T) {
	base := model.MergePRInfo{PRNumber: 1, ChecksPassed: true, Approved: true}

	assert.True(t, collapseMergeable(base, MergeOptions{}))

	noChecks := base
	noChecks.ChecksPassed = false
	assert.False(t, collapseMergeable(noChecks, MergeOptions{}))
	assert.True(t, collapseMergeable(noChecks, MergeOptions{Force: true}))

	noApproval := base
	noApproval.Approved = false
	assert.False(t, collapseMergeable(noApproval, MergeOptions{}))
	assert.True(t, collapseMergeable(noApproval, MergeOptions{NoReview: true}))
	assert.True(t, collapseMergeable(noApproval, MergeOptions{Force: true}))

	// Conflicts block regardless of any override
	conflicting := base
	conflicting.Conflicting = true
	assert.False(t, collapseMergeable(conflicting, MergeOptions{}))
	assert.False(t, collapseMergeable(conflicting, MergeOptions{Force: true, NoReview: true}))
}

func TestMergeablePrefix(t *testing.T) {
	mergeable := func(n int) model.MergePRInfo {
		return model.MergePRInfo{PRNumber: n, Mergeable: true}
	}
	blocked := func(n int) model.MergePRInfo {
		return model.MergePRInfo{PRNumber: n, Mergeable: false}
	}

	t.Run("stops at first blocked", func(t *testing.T) {
		prefix := MergeablePrefix([]model.MergePRInfo{mergeable(1), mergeable(2), blocked(3)})
		require.Len(t, prefix, 2)
		assert.Equal(t, 1, prefix[0].PRNumber)
		assert.Equal(t, 2, prefix[1].PRNumber)
	})

	t.Run("blocked bottom blocks everything", func(t *testing.T) {
		prefix := MergeablePrefix([]model.MergePRInfo{blocked(1), mergeable(2)})
		assert.Empty(t, prefix)
	})

	t.Run("missing PR blocks", func(t *testing.T) {
		prefix := MergeablePrefix([]model.MergePRInfo{mergeable(1), {Mergeable: true}, mergeable(3)})
		require.Len(t, prefix, 1)
	})

	t.Run("all mergeable", func(t *testing.T) {
		prefix := MergeablePrefix([]model.MergePRInfo{mergeable(1), mergeable(2)})
		assert.Len(t, prefix, 2)
	})
}

func TestMergeReport(t *testing.T) {
	s := testStack(
		model.Commit{Hash: "a1", Title: "Bottom", StableID: "aaaaaaaa000000000000000000000000"},
		model.Commit{Hash: "b2", Title: "Top", StableID: "bbbbbbbb000000000000000000000000"},
	)

	mockForge := &MockForgeClient{}
	client := NewClient(&MockGitClient{}, mockForge, testConfig())

	bottomBranch := "ztk/feature/aaaaaaaa"
	topBranch := "ztk/feature/bbbbbbbb"

	mockForge.On("FindOpenPR", bottomBranch).Return(&forge.PR{Number: 10}, nil)
	mergeable := true
	mockForge.On("GetPR", 10).Return(&forge.PR{
		Number:    10,
		Mergeable: &mergeable,
		Head:      forge.Ref{Ref: bottomBranch, SHA: "deadbeef"},
	}, nil)
	mockForge.On("CheckState", "deadbeef").Return(forge.CheckSuccess, nil)
	mockForge.On("IsApproved", 10).Return(true, nil)

	// The top commit has no PR yet
	mockForge.On("FindOpenPR", topBranch).Return(nil, nil)

	report, err := client.MergeReport(s, MergeOptions{})
	require.NoError(t, err)
	require.Len(t, report, 2)

	assert.True(t, report[0].Mergeable)
	assert.Equal(t, 10, report[0].PRNumber)

	assert.Equal(t, 0, report[1].PRNumber)
	assert.False(t, report[1].Mergeable)
	assert.Equal(t, "no open PR", report[1].BlockReason())

	mockForge.AssertExpectations(t)
}

func TestExecuteMerge(t *testing.T) {
	mockForge := &MockForgeClient{}
	client := NewClient(&MockGitClient{}, mockForge, testConfig())

	prefix := []model.MergePRInfo{
		{PRNumber: 10, Branch: "ztk/feature/aaaaaaaa", Mergeable: true},
		{PRNumber: 11, Branch: "ztk/feature/bbbbbbbb", Mergeable: true},
		{PRNumber: 12, Branch: "ztk/feature/cccccccc", Mergeable: true},
	}

	trunk := "main"
	mockForge.On("UpdatePR", 12, forge.UpdatePROptions{Base: &trunk}).Return(nil)
	mockForge.On("MergePR", 12).Return(nil)
	mockForge.On("DeleteBranch", "ztk/feature/cccccccc").Return(nil)

	for _, lower := range prefix[:2] {
		mockForge.On("CommentPR", lower.PRNumber, "Merged into main as part of #12.").Return(nil)
		mockForge.On("ClosePR", lower.PRNumber).Return(nil)
		mockForge.On("DeleteBranch", lower.Branch).Return(nil)
	}

	result, err := client.ExecuteMerge(prefix)
	require.NoError(t, err)

	assert.Equal(t, 12, result.MergedPR)
	assert.Equal(t, []int{10, 11}, result.ClosedPRs)
	assert.Equal(t, 0, result.FailedCloses)

	mockForge.AssertExpectations(t)
}

func TestExecuteMerge_EmptyPrefix(t *testing.T) {
	client := NewClient(&MockGitClient{}, &MockForgeClient{}, testConfig())

	_, err := client.ExecuteMerge(nil)
	assert.ErrorIs(t, err, ErrNoMergeablePR)
}

func TestExecuteMerge_CloseFailureIsNotFatal(t *testing.T) {
	mockForge := &MockForgeClient{}
	client := NewClient(&MockGitClient{}, mockForge, testConfig())

	prefix := []model.MergePRInfo{
		{PRNumber: 10, Branch: "ztk/feature/aaaaaaaa", Mergeable: true},
		{PRNumber: 11, Branch: "ztk/feature/bbbbbbbb", Mergeable: true},
	}

	trunk := "main"
	mockForge.On("UpdatePR", 11, forge.UpdatePROptions{Base: &trunk}).Return(nil)
	mockForge.On("MergePR", 11).Return(nil)
	mockForge.On("DeleteBranch", "ztk/feature/bbbbbbbb").Return(nil)
	mockForge.On("CommentPR", 10, "Merged into main as part of #11.").Return(assert.AnError)

	result, err := client.ExecuteMerge(prefix)
	require.NoError(t, err)

	assert.Equal(t, 11, result.MergedPR)
	assert.Empty(t, result.ClosedPRs)
	assert.Equal(t, 1, result.FailedCloses)
}
