// Package github is the GitHub REST implementation of the release Source and
// Publisher. It wraps go-github with token authentication and a transport
// that logs each request at debug level without its payload.
package github

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	gh "github.com/google/go-github/v52/github"
	"golang.org/x/oauth2"
)

// DefaultAPIURL is the public GitHub REST endpoint.
const DefaultAPIURL = "https://api.github.com"

// perPage is the page size used for every paginated listing.
const perPage = 100

// debugLogger is a function that logs debug messages when debug mode is enabled.
// By default, it's a no-op. Set it via SetDebugLogger to enable debug output.
var debugLogger func(format string, args ...any)

// SetDebugLogger configures the debug logger for GitHub API calls.
// Pass nil to disable debug logging.
func SetDebugLogger(logger func(format string, args ...any)) {
	debugLogger = logger
}

func logDebug(format string, args ...any) {
	if debugLogger != nil {
		debugLogger(format, args...)
	}
}

// Options configure a Client.
type Options struct {
	// Token is the API credential (the repo_token input).
	Token string
	// APIURL is the REST base URL; DefaultAPIURL when empty.
	APIURL string
	// Owner and Repo name the repository every read call targets.
	Owner string
	Repo  string
	// UserAgent replaces go-github's default User-Agent when set.
	UserAgent string
	// Transport is the base transport under authentication and logging.
	// http.DefaultTransport when nil.
	Transport http.RoundTripper
}

// Client talks to one repository through the GitHub REST API.
type Client struct {
	gh    *gh.Client
	owner string
	repo  string
}

// New builds a Client. The token is attached to every request and the
// transport chain is oauth2 -> logging -> base.
func New(opts Options) (*Client, error) {
	if opts.Owner == "" || opts.Repo == "" {
		return nil, fmt.Errorf("repository owner and name are required (got %q/%q)", opts.Owner, opts.Repo)
	}

	base := opts.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	var rt http.RoundTripper = &loggingTransport{base: base}
	if opts.Token != "" {
		rt = &oauth2.Transport{
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: opts.Token}),
			Base:   rt,
		}
	}

	client := gh.NewClient(&http.Client{Transport: rt})

	apiURL := opts.APIURL
	if apiURL == "" {
		apiURL = DefaultAPIURL
	}
	baseURL, err := parseBaseURL(apiURL)
	if err != nil {
		return nil, err
	}
	client.BaseURL = baseURL
	if opts.UserAgent != "" {
		client.UserAgent = opts.UserAgent
	}

	logDebug("[github] client for %s/%s at %s", opts.Owner, opts.Repo, baseURL)
	return &Client{gh: client, owner: opts.Owner, repo: opts.Repo}, nil
}

// SplitRepository splits an "owner/repo" slug.
func SplitRepository(slug string) (owner, repo string, err error) {
	owner, repo, ok := strings.Cut(strings.TrimSpace(slug), "/")
	if !ok || owner == "" || repo == "" || strings.Contains(repo, "/") {
		return "", "", fmt.Errorf("invalid repository %q: expected owner/repo", slug)
	}
	return owner, repo, nil
}

// parseBaseURL parses the API URL and ensures the trailing slash go-github
// requires.
func parseBaseURL(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parsing API URL %q: %w", raw, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("parsing API URL %q: scheme and host are required", raw)
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u, nil
}
