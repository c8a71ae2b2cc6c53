package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/claude/liftlog/internal/app"
	"github.com/claude/liftlog/internal/models"
	"github.com/claude/liftlog/internal/nutrition"
	"github.com/claude/liftlog/internal/stats"
)

// errNotFound marks a 404 from the REST API.
var errNotFound = errors.New("not found")

// HTTPClient implements DataSource by calling the LiftLog REST API.
// Used for remote MCP mode where the binary runs locally (stdio) but
// data lives on the remote server (accessed over Tailscale).
type HTTPClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// Compile-time check: HTTPClient satisfies DataSource.
var _ DataSource = (*HTTPClient)(nil)

// NewHTTPClient creates an HTTPClient targeting the given base URL. apiKey
// may be empty when the server runs without one.
func NewHTTPClient(baseURL, apiKey string) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *HTTPClient) get(ctx context.Context, path string, params url.Values, v any) error {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("httpclient: create request: %w", err)
	}
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("httpclient: %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("httpclient: read body: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return errNotFound
	case resp.StatusCode != http.StatusOK:
		return fmt.Errorf("httpclient: %s returned %d: %s", path, resp.StatusCode, body)
	}

	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("httpclient: decode %s: %w", path, err)
	}
	return nil
}

func (c *HTTPClient) Today(ctx context.Context) (app.Today, error) {
	var t app.Today
	err := c.get(ctx, "/api/v1/today", nil, &t)
	return t, err
}

func (c *HTTPClient) WeeklyStats(ctx context.Context) (stats.WeeklyStats, error) {
	var ws stats.WeeklyStats
	err := c.get(ctx, "/api/v1/stats/weekly", nil, &ws)
	return ws, err
}

func (c *HTTPClient) History(ctx context.Context, limit int) ([]models.WorkoutHistory, error) {
	params := url.Values{}
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}
	var entries []models.WorkoutHistory
	if err := c.get(ctx, "/api/v1/history", params, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (c *HTTPClient) PreviousExercise(ctx context.Context, name string) (*stats.PreviousExercise, error) {
	var prev stats.PreviousExercise
	err := c.get(ctx, "/api/v1/stats/previous", url.Values{"exercise": {name}}, &prev)
	if errors.Is(err, errNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &prev, nil
}

func (c *HTTPClient) NutritionHistory(ctx context.Context, days int) ([]models.DailyNutrition, error) {
	var logs []models.DailyNutrition
	err := c.get(ctx, "/api/v1/nutrition/history", url.Values{"days": {strconv.Itoa(days)}}, &logs)
	if err != nil {
		return nil, err
	}
	return logs, nil
}

func (c *HTTPClient) NutritionAverage(ctx context.Context) (nutrition.Average, error) {
	var avg nutrition.Average
	err := c.get(ctx, "/api/v1/nutrition/average", nil, &avg)
	return avg, err
}

func (c *HTTPClient) ActiveSession(ctx context.Context) (*models.Workout, error) {
	var w models.Workout
	err := c.get(ctx, "/api/v1/session", nil, &w)
	if errors.Is(err, errNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &w, nil
}
