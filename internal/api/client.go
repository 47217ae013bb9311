// Package api talks to the bearing daemon's HTTP and SSE endpoints.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/joshribakoff/bearing-dash/internal/models"
	"golang.org/x/sync/errgroup"
)

// ErrHTTPStatus is returned when the daemon answers with a non-2xx status.
var ErrHTTPStatus = errors.New("unexpected HTTP status")

// Endpoint paths.
const (
	ProjectsPath  = "/api/projects"
	WorktreesPath = "/api/worktrees"
	PlansPath     = "/api/plans"
	EventsPath    = "/api/events"
)

// Client fetches dashboard data from the daemon.
type Client struct {
	baseURL string
	http    *http.Client
	stream  *http.Client
}

// NewClient creates a client for baseURL. A zero timeout disables request
// timeouts; the event stream never times out.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		stream:  &http.Client{},
	}
}

// BaseURL returns the daemon base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Snapshot is the result of one full refresh.
type Snapshot struct {
	Projects  []models.Project
	Worktrees []models.Worktree
	Plans     []models.Plan
}

func getList[T any](ctx context.Context, c *Client, path string) ([]T, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("GET %s: %w: %d", path, ErrHTTPStatus, resp.StatusCode)
	}

	var items []T
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// Projects fetches the project list.
func (c *Client) Projects(ctx context.Context) ([]models.Project, error) {
	return getList[models.Project](ctx, c, ProjectsPath)
}

// Worktrees fetches every worktree.
func (c *Client) Worktrees(ctx context.Context) ([]models.Worktree, error) {
	return getList[models.Worktree](ctx, c, WorktreesPath)
}

// Plans fetches every plan.
func (c *Client) Plans(ctx context.Context) ([]models.Plan, error) {
	return getList[models.Plan](ctx, c, PlansPath)
}

// FetchAll fetches the three collections concurrently. Any failure fails
// the whole refresh so callers never see a partial snapshot.
func (c *Client) FetchAll(ctx context.Context) (Snapshot, error) {
	var snap Snapshot
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		items, err := c.Projects(gctx)
		snap.Projects = items
		return err
	})
	g.Go(func() error {
		items, err := c.Worktrees(gctx)
		snap.Worktrees = items
		return err
	})
	g.Go(func() error {
		items, err := c.Plans(gctx)
		snap.Plans = items
		return err
	})

	if err := g.Wait(); err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}
