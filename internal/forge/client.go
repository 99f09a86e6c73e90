package forge

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"

	"github.com/hashicorp/go-retryablehttp"
)

const defaultBaseURL = "https://api.github.com"

// Client talks to the GitHub REST API for one repository.
type Client struct {
	owner   string
	repo    string
	token   string
	baseURL string
	http    *retryablehttp.Client
}

// NewClient creates a forge client for owner/repo. The credential is read
// from ZTK_GITHUB_TOKEN, falling back to GITHUB_TOKEN.
func NewClient(owner string, repo string) (*Client, error) {
	token := os.Getenv("ZTK_GITHUB_TOKEN")
	if token == "" {
		token = os.Getenv("GITHUB_TOKEN")
	}
	if token == "" {
		return nil, ErrNoToken
	}
	return newClient(owner, repo, token, defaultBaseURL), nil
}

// NewClientWithBaseURL creates a client against a non-default API endpoint.
// Used for GitHub Enterprise and tests.
func NewClientWithBaseURL(owner string, repo string, token string, baseURL string) *Client {
	return newClient(owner, repo, token, baseURL)
}

func newClient(owner string, repo string, token string, baseURL string) *Client {
	httpClient := retryablehttp.NewClient()
	httpClient.RetryMax = 3
	httpClient.Logger = nil
	return &Client{
		owner:   owner,
		repo:    repo,
		token:   token,
		baseURL: baseURL,
		http:    httpClient,
	}
}

// do issues one API request. A nil out skips response decoding. 404 maps to
// ErrNotFound; other non-2xx statuses map to RequestError.
func (c *Client) do(method string, path string, body interface{}, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := retryablehttp.NewRequest(method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/vnd.github+json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response from %s: %w", path, err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%s: %w", path, ErrNotFound)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &RequestError{Method: method, Path: path, Status: resp.StatusCode, Body: string(data)}
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("failed to parse response from %s: %w", path, err)
		}
	}
	return nil
}

func (c *Client) repoPath(format string, args ...interface{}) string {
	return fmt.Sprintf("/repos/%s/%s", c.owner, c.repo) + fmt.Sprintf(format, args...)
}

// FindOpenPR returns the open PR whose head is the given branch, or nil when
// none exists.
func (c *Client) FindOpenPR(headBranch string) (*PR, error) {
	head := url.QueryEscape(c.owner + ":" + headBranch)
	var prs []PR
	if err := c.do(http.MethodGet, c.repoPath("/pulls?state=open&head=%s", head), nil, &prs); err != nil {
		return nil, fmt.Errorf("failed to find PR for %s: %w", headBranch, err)
	}
	if len(prs) == 0 {
		return nil, nil
	}
	return &prs[0], nil
}

// CreatePR opens a new pull request.
func (c *Client) CreatePR(req CreatePRRequest) (*PR, error) {
	var pr PR
	if err := c.do(http.MethodPost, c.repoPath("/pulls"), req, &pr); err != nil {
		return nil, fmt.Errorf("failed to create PR for %s: %w", req.Head, err)
	}
	return &pr, nil
}

// UpdatePR patches title, body and base independently; nil options are
// left as they are.
func (c *Client) UpdatePR(number int, opts UpdatePROptions) error {
	if opts.Title == nil && opts.Body == nil && opts.Base == nil {
		return nil
	}
	if err := c.do(http.MethodPatch, c.repoPath("/pulls/%d", number), opts, nil); err != nil {
		return fmt.Errorf("failed to update PR #%d: %w", number, err)
	}
	return nil
}

// GetPR fetches one PR by number, including its mergeable flag.
func (c *Client) GetPR(number int) (*PR, error) {
	var pr PR
	if err := c.do(http.MethodGet, c.repoPath("/pulls/%d", number), nil, &pr); err != nil {
		return nil, fmt.Errorf("failed to fetch PR #%d: %w", number, err)
	}
	return &pr, nil
}

// MergePR merges the PR using the forge's default merge method.
func (c *Client) MergePR(number int) error {
	if err := c.do(http.MethodPut, c.repoPath("/pulls/%d/merge", number), struct{}{}, nil); err != nil {
		return fmt.Errorf("failed to merge PR #%d: %w", number, err)
	}
	return nil
}

// ClosePR closes the PR without merging.
func (c *Client) ClosePR(number int) error {
	body := map[string]string{"state": "closed"}
	if err := c.do(http.MethodPatch, c.repoPath("/pulls/%d", number), body, nil); err != nil {
		return fmt.Errorf("failed to close PR #%d: %w", number, err)
	}
	return nil
}

// CommentPR posts an issue comment on the PR.
func (c *Client) CommentPR(number int, text string) error {
	body := map[string]string{"body": text}
	if err := c.do(http.MethodPost, c.repoPath("/issues/%d/comments", number), body, nil); err != nil {
		return fmt.Errorf("failed to comment on PR #%d: %w", number, err)
	}
	return nil
}

// DeleteBranch deletes a branch on the forge. A missing branch is not an
// error: the goal state is already reached.
func (c *Client) DeleteBranch(branch string) error {
	err := c.do(http.MethodDelete, c.repoPath("/git/refs/heads/%s", branch), nil, nil)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("failed to delete remote branch %s: %w", branch, err)
	}
	return nil
}

// BranchPRState reports whether the PR associated with a head branch is
// merged or closed, considering PRs in any state. A branch with no PR at
// all reports neither.
func (c *Client) BranchPRState(headBranch string) (merged bool, closed bool, err error) {
	head := url.QueryEscape(c.owner + ":" + headBranch)
	var prs []PR
	if err := c.do(http.MethodGet, c.repoPath("/pulls?state=all&head=%s", head), nil, &prs); err != nil {
		return false, false, fmt.Errorf("failed to look up PR state for %s: %w", headBranch, err)
	}
	for i := range prs {
		if prs[i].IsMerged() {
			return true, false, nil
		}
		if prs[i].State == "closed" {
			closed = true
		}
	}
	return false, closed, nil
}
