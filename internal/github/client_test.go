package github

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListRepositoriesSinglePage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/octocat/repos", r.URL.Path)
		assert.Equal(t, "application/vnd.github.v3+json", r.Header.Get("Accept"))
		if r.URL.Query().Get("page") != "1" {
			json.NewEncoder(w).Encode([]Repository{})
			return
		}
		json.NewEncoder(w).Encode([]Repository{
			{Name: "foo", HTMLURL: "https://x/foo", StargazersCount: 3, LanguagesURL: "https://x/foo/langs"},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, "")
	repos, err := client.ListRepositories(context.Background(), "octocat")
	require.NoError(t, err)
	require.Len(t, repos, 1)
	assert.Equal(t, "foo", repos[0].Name)
	assert.Equal(t, 3, repos[0].StargazersCount)
}

func TestListRepositoriesPaginates(t *testing.T) {
	pagesServed := []string{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page := r.URL.Query().Get("page")
		pagesServed = append(pagesServed, page)
		if page == "1" {
			full := make([]Repository, 100)
			for i := range full {
				full[i] = Repository{Name: fmt.Sprintf("repo-%d", i), HTMLURL: fmt.Sprintf("https://x/repo-%d", i)}
			}
			json.NewEncoder(w).Encode(full)
			return
		}
		json.NewEncoder(w).Encode([]Repository{{Name: "last", HTMLURL: "https://x/last"}})
	}))
	defer server.Close()

	client := NewClient(server.URL, "")
	repos, err := client.ListRepositories(context.Background(), "octocat")
	require.NoError(t, err)
	assert.Len(t, repos, 101)
	assert.Equal(t, []string{"1", "2"}, pagesServed)
}

func TestListRepositoriesSendsToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode([]Repository{})
	}))
	defer server.Close()

	client := NewClient(server.URL, "secret")
	_, err := client.ListRepositories(context.Background(), "octocat")
	require.NoError(t, err)
}

func TestListRepositoriesRemoteUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL, "")
	_, err := client.ListRepositories(context.Background(), "octocat")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRemoteUnavailable)
}

func TestListRepositoriesNetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused from here on

	client := NewClient(server.URL, "")
	_, err := client.ListRepositories(context.Background(), "octocat")
	assert.ErrorIs(t, err, ErrRemoteUnavailable)
}

func TestGetLanguages(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]int{"Python": 1200, "HTML": 300})
	}))
	defer server.Close()

	client := NewClient(server.URL, "")
	languages := client.GetLanguages(context.Background(), server.URL+"/repos/x/foo/languages")
	assert.Equal(t, map[string]int{"Python": 1200, "HTML": 300}, languages)
}

// A rate-limited languages call is non-fatal: the result is an empty map, not
// an error.
func TestGetLanguagesRateLimited(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	client := NewClient(server.URL, "")
	languages := client.GetLanguages(context.Background(), server.URL+"/repos/x/foo/languages")
	assert.Empty(t, languages)
}

func TestGetLanguagesBadJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer server.Close()

	client := NewClient(server.URL, "")
	languages := client.GetLanguages(context.Background(), server.URL+"/repos/x/foo/languages")
	assert.Empty(t, languages)
}

func TestGetLanguagesEmptyURL(t *testing.T) {
	client := NewClient("https://api.github.com", "")
	assert.Empty(t, client.GetLanguages(context.Background(), ""))
}
