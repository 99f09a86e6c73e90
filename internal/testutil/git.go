package testutil

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ztk-sh/ztk/internal/git"
)

// NewTestGitClient creates a git client in a temporary repository with an
// initial commit on main.
func NewTestGitClient(t *testing.T) *git.Client {
	t.Helper()
	tempDir := t.TempDir()

	Git(t, tempDir, "init", "--initial-branch=main")
	Git(t, tempDir, "config", "user.email", "test@example.com")
	Git(t, tempDir, "config", "user.name", "Test User")

	gitClient, err := git.NewClientAt(tempDir)
	require.NoError(t, err)

	CreateCommit(t, gitClient, "Initial commit", "", nil)
	return gitClient
}

// Git runs a raw git command in dir and fails the test on error.
func Git(t *testing.T, dir string, args ...string) string {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(),
		"GIT_AUTHOR_DATE=2024-01-01T00:00:00Z",
		"GIT_COMMITTER_DATE=2024-01-01T00:00:00Z",
	)
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "git %s failed: %s", strings.Join(args, " "), string(output))
	return strings.TrimSpace(string(output))
}

// CreateCommit commits a fresh file named after the title, with the given
// body and trailers, and returns the commit hash.
func CreateCommit(t *testing.T, gitClient *git.Client, title, body string, trailers map[string]string) string {
	t.Helper()
	msg := git.CommitMessage{
		Title:    title,
		Body:     body,
		Trailers: trailers,
	}

	name := strings.ReplaceAll(strings.ToLower(title), " ", "-")
	testFile := filepath.Join(gitClient.GitRoot(), fmt.Sprintf("file-%s.txt", name))
	err := os.WriteFile(testFile, fmt.Appendf(nil, "%s\n%s\n", title, body), 0644)
	require.NoError(t, err)

	Git(t, gitClient.GitRoot(), "add", ".")
	Git(t, gitClient.GitRoot(), "commit", "-m", msg.String())
	return Git(t, gitClient.GitRoot(), "rev-parse", "HEAD")
}

// WriteFile writes content to a path under the repo root.
func WriteFile(t *testing.T, gitClient *git.Client, relPath, content string) {
	t.Helper()
	path := filepath.Join(gitClient.GitRoot(), relPath)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}
