package fnar

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/andrescamacho/prun-pricer/internal/adapters/metrics"
	"github.com/andrescamacho/prun-pricer/internal/application/common"
	"github.com/andrescamacho/prun-pricer/internal/domain/catalog"
	"github.com/andrescamacho/prun-pricer/internal/domain/shared"
)

const (
	DefaultBaseURL     = "https://rest.fnar.net"
	defaultTimeout     = 60 * time.Second
	defaultMaxRetries  = 3
	defaultBackoffBase = time.Second

	breakerFailures = 5
	breakerCooldown = 30 * time.Second
)

// Catalog endpoints
const (
	BuildingsPath = "/building/allbuildings"
	RecipesPath   = "/recipes/allrecipes"
	MaterialsPath = "/material/allmaterials"
	PlanetsPath   = "/planet/allplanets/full"
)

// Options configures a Client. Zero values fall back to the defaults.
type Options struct {
	BaseURL           string
	Timeout           time.Duration
	RequestsPerSecond int
	Burst             int
	MaxRetries        int
	BackoffBase       time.Duration
	Clock             shared.Clock
	HTTPClient        *http.Client
}

// Client reads the game catalog from the FNAR REST API
type Client struct {
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	breaker     *CircuitBreaker
	baseURL     string
	maxRetries  int
	backoffBase time.Duration
	clock       shared.Clock
}

// NewClient creates a client: 2 req/s with burst 2, 3 retries with 1s
// exponential backoff and jitter unless overridden
func NewClient(opts Options) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Timeout == 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.RequestsPerSecond == 0 {
		opts.RequestsPerSecond = 2
	}
	if opts.Burst == 0 {
		opts.Burst = 2
	}
	if opts.MaxRetries == 0 {
		opts.MaxRetries = defaultMaxRetries
	}
	if opts.BackoffBase == 0 {
		opts.BackoffBase = defaultBackoffBase
	}
	if opts.Clock == nil {
		opts.Clock = shared.NewRealClock()
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: opts.Timeout}
	}

	return &Client{
		httpClient:  opts.HTTPClient,
		rateLimiter: rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), opts.Burst),
		breaker:     NewCircuitBreaker(breakerFailures, breakerCooldown, opts.Clock),
		baseURL:     strings.TrimRight(opts.BaseURL, "/"),
		maxRetries:  opts.MaxRetries,
		backoffBase: opts.BackoffBase,
		clock:       opts.Clock,
	}
}

// FetchRecords downloads all four catalog tables
func (c *Client) FetchRecords(ctx context.Context) (catalog.Records, error) {
	var records catalog.Records

	buildings, err := c.FetchBuildings(ctx)
	if err != nil {
		return records, err
	}
	recipes, err := c.FetchRecipes(ctx)
	if err != nil {
		return records, err
	}
	materials, err := c.FetchMaterials(ctx)
	if err != nil {
		return records, err
	}
	planets, err := c.FetchPlanets(ctx)
	if err != nil {
		return records, err
	}

	records.Buildings = buildings
	records.Recipes = recipes
	records.Materials = materials
	records.Planets = planets
	return records, nil
}

func (c *Client) FetchBuildings(ctx context.Context) ([]catalog.Building, error) {
	var dtos []buildingDTO
	if err := c.get(ctx, BuildingsPath, &dtos); err != nil {
		return nil, fmt.Errorf("failed to fetch buildings: %w", err)
	}
	out := make([]catalog.Building, 0, len(dtos))
	for _, d := range dtos {
		out = append(out, d.toDomain())
	}
	return out, nil
}

func (c *Client) FetchRecipes(ctx context.Context) ([]catalog.Recipe, error) {
	var dtos []recipeDTO
	if err := c.get(ctx, RecipesPath, &dtos); err != nil {
		return nil, fmt.Errorf("failed to fetch recipes: %w", err)
	}
	out := make([]catalog.Recipe, 0, len(dtos))
	for _, d := range dtos {
		out = append(out, d.toDomain())
	}
	return out, nil
}

func (c *Client) FetchMaterials(ctx context.Context) ([]catalog.Material, error) {
	var dtos []materialDTO
	if err := c.get(ctx, MaterialsPath, &dtos); err != nil {
		return nil, fmt.Errorf("failed to fetch materials: %w", err)
	}
	out := make([]catalog.Material, 0, len(dtos))
	for _, d := range dtos {
		out = append(out, d.toDomain())
	}
	return out, nil
}

func (c *Client) FetchPlanets(ctx context.Context) ([]catalog.Planet, error) {
	var dtos []planetDTO
	if err := c.get(ctx, PlanetsPath, &dtos); err != nil {
		return nil, fmt.Errorf("failed to fetch planets: %w", err)
	}
	out := make([]catalog.Planet, 0, len(dtos))
	for _, d := range dtos {
		out = append(out, d.toDomain())
	}
	return out, nil
}

// BreakerState exposes the circuit breaker state
func (c *Client) BreakerState() CircuitState {
	return c.breaker.State()
}

func (c *Client) get(ctx context.Context, path string, result interface{}) error {
	return c.breaker.Call(func() error {
		return c.request(ctx, http.MethodGet, path, result)
	})
}

// request performs one call with rate limiting and exponential backoff retries
func (c *Client) request(ctx context.Context, method, path string, result interface{}) error {
	logger := common.LoggerFromContext(ctx)
	url := c.baseURL + path

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		waitStart := time.Now()
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter error: %w", err)
		}
		metrics.RecordRateLimitWait(method, path, time.Since(waitStart).Seconds())

		body, err := c.do(ctx, method, url, path)
		if err == nil {
			if result != nil {
				if err := json.Unmarshal(body, result); err != nil {
					return fmt.Errorf("failed to unmarshal response: %w", err)
				}
			}
			return nil
		}

		var retryable *retryableError
		if !errors.As(err, &retryable) {
			return err
		}
		lastErr = err

		if attempt >= c.maxRetries {
			break
		}
		if ctx.Err() != nil {
			return fmt.Errorf("context cancelled: %w", ctx.Err())
		}

		delay := retryable.retryAfter
		if delay == 0 {
			delay = addJitter(c.backoffBase * time.Duration(1<<attempt))
		}
		metrics.RecordAPIRetry(method, path, retryable.reason)
		logger.Log("WARNING", "retrying catalog request", map[string]interface{}{
			"path":    path,
			"attempt": attempt + 1,
			"reason":  retryable.message,
			"delay":   delay.String(),
		})
		c.clock.Sleep(delay)
	}

	return fmt.Errorf("max retries exceeded: %w", lastErr)
}

// do executes a single HTTP round trip and classifies failures
func (c *Client) do(ctx context.Context, method, url, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("context cancelled: %w", ctx.Err())
		}
		return nil, &retryableError{message: fmt.Sprintf("network error: %v", err), reason: "network"}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	metrics.RecordAPIRequest(method, path, resp.StatusCode, time.Since(start).Seconds())
	if err != nil {
		return nil, &retryableError{message: fmt.Sprintf("failed to read response: %v", err), reason: "read"}
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		var retryAfter time.Duration
		if seconds, err := strconv.Atoi(resp.Header.Get("Retry-After")); err == nil {
			retryAfter = time.Duration(seconds) * time.Second
		}
		return nil, &retryableError{message: "rate limited (429)", reason: "rate_limited", retryAfter: retryAfter}
	case resp.StatusCode >= 500:
		return nil, &retryableError{message: fmt.Sprintf("server error (%d)", resp.StatusCode), reason: "server_error"}
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return nil, &APIError{StatusCode: resp.StatusCode, Body: string(body)}
	}
	return body, nil
}

// APIError is a non-retryable response from the catalog API
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error (status %d): %s", e.StatusCode, e.Body)
}

// retryableError represents an error that should trigger a retry
type retryableError struct {
	message    string
	reason     string
	retryAfter time.Duration
}

func (e *retryableError) Error() string {
	return e.message
}

// addJitter spreads a backoff delay over 50% to 150% of its nominal value
func addJitter(d time.Duration) time.Duration {
	return time.Duration(float64(d) * (0.5 + rand.Float64()))
}
