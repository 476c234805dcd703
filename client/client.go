package client

import (
	"context"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/chrissolanilla/quest-tracker/client/internal/api"
	"github.com/rs/zerolog/log"
)

const (
	// DefaultBaseURL is the dev proxy address; it forwards APIPrefix to the backend.
	DefaultBaseURL = "http://localhost:5173"
	// DefaultAPIPrefix is prepended to every resource path.
	DefaultAPIPrefix = "/api"
	// BaseURLEnv overrides DefaultBaseURL in NewFromEnv.
	BaseURLEnv = "QUESTBOARD_API_BASE"
	// SessionCookie is the backend's session cookie name.
	SessionCookie = "sid"
)

// --------------------------------------------------------------------
// Client core
// --------------------------------------------------------------------

// Client is safe for concurrent use. It holds no mutable state after New
// returns; each call is an independent single request.
type Client struct {
	baseURL string
	prefix  string
	http    *http.Client
	fetch   Fetcher
	session string
}

// New constructs a Client for baseURL. Every request goes to
// baseURL + prefix + resource path; the prefix defaults to "/api".
func New(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, errEmptyBaseURL
	}
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, &url.Error{Op: "parse", URL: baseURL, Err: errNotAbsolute}
	}

	jar, _ := cookiejar.New(nil) // only errors on a bad PublicSuffixList
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		prefix:  DefaultAPIPrefix,
		http:    &http.Client{Timeout: 30 * time.Second, Jar: jar},
	}

	// Auto-enable debug via env variable without changing code.
	if debugLoggingRequested() {
		opts = append(opts, WithDebugLogging(true))
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	if c.session != "" {
		c.seedSession()
	}
	if c.fetch == nil {
		c.fetch = &api.HTTPFetcher{Client: c.http}
	}
	return c, nil
}

// NewFromEnv constructs a Client whose base address comes from
// QUESTBOARD_API_BASE, falling back to DefaultBaseURL.
func NewFromEnv(opts ...Option) (*Client, error) {
	base := os.Getenv(BaseURLEnv)
	if base == "" {
		base = DefaultBaseURL
	}
	return New(base, opts...)
}

// seedSession places the session cookie in the jar for the base address.
func (c *Client) seedSession() {
	if c.http.Jar == nil {
		jar, _ := cookiejar.New(nil)
		c.http.Jar = jar
	}
	u, _ := url.Parse(c.baseURL) // validated in New
	c.http.Jar.SetCookies(u, []*http.Cookie{{Name: SessionCookie, Value: c.session, Path: "/"}})
}

// root is the address resource paths are appended to.
func (c *Client) root() string { return c.baseURL + c.prefix }

// BaseURL reports the configured base address.
func (c *Client) BaseURL() string { return c.baseURL }

// --------------------------------------------------------------------
// Leaderboard & quests - delegated to internal/api
// --------------------------------------------------------------------

// Leaderboard returns the ranked users.
func (c *Client) Leaderboard(ctx context.Context) ([]LeaderboardRow, error) {
	rows, err := api.GetLeaderboard(ctx, c.fetch, c.root())
	observe(api.OpLeaderboard, err)
	return rows, err
}

// ListQuests returns the quest list.
func (c *Client) ListQuests(ctx context.Context) ([]Quest, error) {
	quests, err := api.ListQuests(ctx, c.fetch, c.root())
	observe(api.OpQuests, err)
	return quests, err
}

// --------------------------------------------------------------------
// Session operations - delegated to internal/api
// --------------------------------------------------------------------

// Me returns the user behind the current session. Without a valid session
// the error message is "not logged in".
func (c *Client) Me(ctx context.Context) (Me, error) {
	me, err := api.GetMe(ctx, c.fetch, c.root())
	observe(api.OpMe, err)
	return me, err
}

// Logout asks the backend to end the session. It is best effort: there is no
// result to check. Transport failures are logged at debug level and dropped.
func (c *Client) Logout(ctx context.Context) {
	err := api.Logout(ctx, c.fetch, c.root())
	observe(api.OpLogout, err)
	if err != nil {
		log.Debug().Err(err).Str("op", api.OpLogout).Msg("logout request failed")
	}
}

// LoginURL is the address a browser should open to sign in with Asana.
func (c *Client) LoginURL() string {
	return api.LoginURL(c.root())
}

// Health reports whether the backend answers its liveness route.
func (c *Client) Health(ctx context.Context) error {
	err := api.CheckHealth(ctx, c.fetch, c.root())
	observe(api.OpHealth, err)
	return err
}

// --------------------------------------------------------------------
// Asana operations - delegated to internal/api
// --------------------------------------------------------------------

// ListProjects returns the Asana projects visible to the session user.
func (c *Client) ListProjects(ctx context.Context) ([]Project, error) {
	projects, err := api.ListProjects(ctx, c.fetch, c.root())
	observe(api.OpProjects, err)
	return projects, err
}

// ListProjectTasks returns the tasks of one project, custom fields included.
func (c *Client) ListProjectTasks(ctx context.Context, projectGID string) ([]Task, error) {
	tasks, err := api.ListProjectTasks(ctx, c.fetch, c.root(), projectGID)
	observe(api.OpProjectTasks, err)
	return tasks, err
}

// SyncMe triggers a points recompute for the session user.
func (c *Client) SyncMe(ctx context.Context) error {
	err := api.SyncMe(ctx, c.fetch, c.root())
	observe(api.OpSyncMe, err)
	return err
}
