package forge

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClientWithBaseURL("acme", "widgets", "test-token", server.URL)
}

func TestFindOpenPR(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/repos/acme/widgets/pulls", r.URL.Path)
		assert.Equal(t, "open", r.URL.Query().Get("state"))
		assert.Equal(t, "acme:ztk/feature/aaaaaaaa", r.URL.Query().Get("head"))
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

		json.NewEncoder(w).Encode([]PR{{Number: 42, State: "open", Title: "Add parser"}})
	})

	pr, err := client.FindOpenPR("ztk/feature/aaaaaaaa")
	require.NoError(t, err)
	require.NotNil(t, pr)
	assert.Equal(t, 42, pr.Number)
}

func TestFindOpenPR_None(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]PR{})
	})

	pr, err := client.FindOpenPR("ztk/feature/aaaaaaaa")
	require.NoError(t, err)
	assert.Nil(t, pr)
}

func TestCreatePR(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/repos/acme/widgets/pulls", r.URL.Path)

		var req CreatePRRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Add parser", req.Title)
		assert.Equal(t, "ztk/feature/aaaaaaaa", req.Head)
		assert.Equal(t, "main", req.Base)

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(PR{Number: 42, State: "open"})
	})

	pr, err := client.CreatePR(CreatePRRequest{
		Title: "Add parser",
		Body:  "Add parser",
		Head:  "ztk/feature/aaaaaaaa",
		Base:  "main",
	})
	require.NoError(t, err)
	assert.Equal(t, 42, pr.Number)
}

func TestUpdatePR_NoopWithoutChanges(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected for an empty update")
	})

	assert.NoError(t, client.UpdatePR(42, UpdatePROptions{}))
}

func TestUpdatePR_PatchesBase(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/repos/acme/widgets/pulls/42", r.URL.Path)

		var payload map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, map[string]string{"base": "main"}, payload)

		w.WriteHeader(http.StatusOK)
	})

	base := "main"
	require.NoError(t, client.UpdatePR(42, UpdatePROptions{Base: &base}))
}

func TestMergePR(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/repos/acme/widgets/pulls/42/merge", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	})

	assert.NoError(t, client.MergePR(42))
}

func TestGetPR_NotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := client.GetPR(42)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRequestError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"message":"Validation Failed"}`))
	})

	_, err := client.CreatePR(CreatePRRequest{Title: "x", Head: "h", Base: "b"})
	require.Error(t, err)

	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, http.StatusUnprocessableEntity, reqErr.Status)
	assert.Contains(t, reqErr.Body, "Validation Failed")
}

func TestDeleteBranch_ToleratesMissing(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/repos/acme/widgets/git/refs/heads/ztk/feature/aaaaaaaa", r.URL.Path)
		w.WriteHeader(http.StatusNotFound)
	})

	assert.NoError(t, client.DeleteBranch("ztk/feature/aaaaaaaa"))
}

func TestBranchPRState(t *testing.T) {
	t.Run("merged", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "all", r.URL.Query().Get("state"))
			json.NewEncoder(w).Encode([]PR{{Number: 1, State: "closed", Merged: true}})
		})

		merged, closed, err := client.BranchPRState("ztk/feature/aaaaaaaa")
		require.NoError(t, err)
		assert.True(t, merged)
		assert.False(t, closed)
	})

	t.Run("closed without merge", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode([]PR{{Number: 1, State: "closed"}})
		})

		merged, closed, err := client.BranchPRState("ztk/feature/aaaaaaaa")
		require.NoError(t, err)
		assert.False(t, merged)
		assert.True(t, closed)
	})

	t.Run("no PRs", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode([]PR{})
		})

		merged, closed, err := client.BranchPRState("ztk/feature/aaaaaaaa")
		require.NoError(t, err)
		assert.False(t, merged)
		assert.False(t, closed)
	})
}
