// internal/github/client.go
package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

// ErrRemoteUnavailable marks a failed repository listing call. The listing is
// a batch precondition: callers must treat this as fatal for the whole sync.
var ErrRemoteUnavailable = errors.New("github: remote unavailable")

// Client handles GitHub API interactions.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string // optional bearer token
}

// NewClient creates a new GitHub API client. baseURL is normally
// "https://api.github.com"; token may be empty.
func NewClient(baseURL, token string) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL: baseURL,
		token:   token,
	}
}

// Repository represents a GitHub repository from the API.
type Repository struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	FullName        string  `json:"full_name"`
	Description     *string `json:"description"`
	HTMLURL         string  `json:"html_url"`
	StargazersCount int     `json:"stargazers_count"`
	LanguagesURL    string  `json:"languages_url"`
	Fork            bool    `json:"fork"`
}

// ListRepositories fetches all public repositories for an account, following
// pagination until a short page is returned.
func (c *Client) ListRepositories(ctx context.Context, account string) ([]Repository, error) {
	const perPage = 100
	repos := make([]Repository, 0)

	for page := 1; ; page++ {
		url := fmt.Sprintf("%s/users/%s/repos?per_page=%d&page=%d", c.baseURL, account, perPage, page)

		req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to create request: %v", ErrRemoteUnavailable, err)
		}
		c.setHeaders(req)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrRemoteUnavailable, err)
		}

		if resp.StatusCode != http.StatusOK {
			body, _ := io.ReadAll(resp.Body)
			resp.Body.Close()
			return nil, fmt.Errorf("%w: listing returned status %d: %s", ErrRemoteUnavailable, resp.StatusCode, string(body))
		}

		var pageRepos []Repository
		if err := json.NewDecoder(resp.Body).Decode(&pageRepos); err != nil {
			resp.Body.Close()
			return nil, fmt.Errorf("%w: failed to decode repositories: %v", ErrRemoteUnavailable, err)
		}
		resp.Body.Close()

		repos = append(repos, pageRepos...)
		if len(pageRepos) < perPage {
			break
		}
	}

	return repos, nil
}

// GetLanguages fetches the language → byte count breakdown for a repository.
// Failures here are non-fatal: any network error or non-2xx status (including
// a 403 rate limit) yields an empty map, with the cause logged for diagnostics.
func (c *Client) GetLanguages(ctx context.Context, languagesURL string) map[string]int {
	languages := map[string]int{}
	if languagesURL == "" {
		return languages
	}

	req, err := http.NewRequestWithContext(ctx, "GET", languagesURL, nil)
	if err != nil {
		log.Printf("⚠️ [GITHUB] Failed to build languages request for %s: %v", languagesURL, err)
		return languages
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Printf("⚠️ [GITHUB] Languages fetch failed for %s: %v", languagesURL, err)
		return languages
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("⚠️ [GITHUB] Languages fetch for %s returned status %d", languagesURL, resp.StatusCode)
		return languages
	}

	if err := json.NewDecoder(resp.Body).Decode(&languages); err != nil {
		log.Printf("⚠️ [GITHUB] Failed to decode languages for %s: %v", languagesURL, err)
		return map[string]int{}
	}

	return languages
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
}
