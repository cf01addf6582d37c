package sleeper

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/omarshaarawi/sleeperstats/internal/config"
)

// ErrUnexpectedStatus wraps every non-200 response.
var ErrUnexpectedStatus = errors.New("unexpected status code")

type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	Config     config.Sleeper
}

func NewClient(cfg config.Sleeper) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	rpm := cfg.RequestsPerMinute
	if rpm <= 0 {
		rpm = 500
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		limiter:    rate.NewLimiter(rate.Limit(float64(rpm)/60.0), 1),
		Config:     cfg,
	}
}

// Get fetches baseURL+endpoint and decodes the JSON body into result.
func (c *Client) Get(ctx context.Context, endpoint string, result interface{}) error {
	return c.GetURL(ctx, c.Config.BaseURL+endpoint, result)
}

func (c *Client) GetURL(ctx context.Context, url string, result interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("error making request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("error decoding response: %w", err)
	}

	slog.Debug("Fetched", "url", url)
	return nil
}
