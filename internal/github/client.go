package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"
)

const (
	defaultBaseURL = "https://api.github.com"
	acceptHeader   = "application/vnd.github.v3+json"
	maxRepoPage    = 100
)

// User is the subset of the profile payload used in summaries.
type User struct {
	Login       string `json:"login"`
	Name        string `json:"name"`
	Bio         string `json:"bio"`
	PublicRepos int    `json:"public_repos"`
	Followers   int    `json:"followers"`
}

// Repo is the subset of the repository payload used for selection.
type Repo struct {
	Name            string    `json:"name"`
	FullName        string    `json:"full_name"`
	Fork            bool      `json:"fork"`
	Description     string    `json:"description"`
	Language        string    `json:"language"`
	StargazersCount int       `json:"stargazers_count"`
	UpdatedAt       time.Time `json:"updated_at"`
	HTMLURL         string    `json:"html_url"`
}

// Client talks to the GitHub REST API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient builds a client. A non-empty token is sent as a bearer
// credential for higher rate limits.
func NewClient(baseURL, token string, timeout time.Duration) *Client {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = defaultBaseURL
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	httpClient := &http.Client{Timeout: timeout}
	if strings.TrimSpace(token) != "" {
		src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: strings.TrimSpace(token)})
		ctx := context.WithValue(context.Background(), oauth2.HTTPClient, httpClient)
		httpClient = oauth2.NewClient(ctx, src)
		httpClient.Timeout = timeout
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// FetchUser returns the profile and the HTTP status. A transport failure is
// returned as an error; any HTTP status is returned as-is.
func (c *Client) FetchUser(ctx context.Context, username string) (User, int, error) {
	var user User
	status, err := c.getJSON(ctx, "/users/"+url.PathEscape(username), &user)
	return user, status, err
}

// FetchRepos returns up to 100 owner repositories, most recently pushed first.
func (c *Client) FetchRepos(ctx context.Context, username string) ([]Repo, int, error) {
	q := url.Values{}
	q.Set("sort", "pushed")
	q.Set("per_page", fmt.Sprint(maxRepoPage))
	q.Set("type", "owner")
	var repos []Repo
	status, err := c.getJSON(ctx, "/users/"+url.PathEscape(username)+"/repos?"+q.Encode(), &repos)
	return repos, status, err
}

func (c *Client) getJSON(ctx context.Context, path string, out any) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Accept", acceptHeader)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return resp.StatusCode, nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return resp.StatusCode, fmt.Errorf("decode %s: %w", path, err)
	}
	return resp.StatusCode, nil
}
