package clubservice

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/kickoff-tournaments/internal/domain/club"
	"github.com/riskibarqy/kickoff-tournaments/internal/platform/logging"
	"github.com/riskibarqy/kickoff-tournaments/internal/platform/resilience"
)

const defaultBaseURL = "http://localhost:8082/api/v1/clubs"

var (
	errClubServiceTransient = crerr.New("club service transient failure")
	errClubNotFound         = crerr.New("club service returned not found")
)

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client talks to the club service. It implements club.RatingClient and
// club.RoleResolver.
type Client struct {
	httpClient *http.Client
	baseURL    string
	maxRetries int
	logger     *logging.Logger
	breaker    *resilience.CircuitBreaker
	flight     resilience.SingleFlight[[]byte]
	// sharedTimeout bounds a collapsed GET, which runs detached from any
	// single caller.
	sharedTimeout time.Duration
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 5 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	breaker := resilience.NewCircuitBreakerFromConfig(cfg.CircuitBreaker)
	breaker.OnStateChange(func(from, to resilience.CircuitState) {
		logger.Warn("club service circuit breaker changed state", "from", string(from), "to", string(to))
	})

	maxRetries := max(cfg.MaxRetries, 0)
	return &Client{
		httpClient:    httpClient,
		baseURL:       baseURL,
		maxRetries:    maxRetries,
		logger:        logger,
		breaker:       breaker,
		sharedTimeout: sharedCallTimeout(httpClient.Timeout, maxRetries),
	}
}

// LookupClubProfile fetches a club profile and reports the outcome instead
// of failing, so callers can choose their own retry policy.
func (c *Client) LookupClubProfile(ctx context.Context, clubID int64) club.ProfileResult {
	if clubID <= 0 {
		return club.ProfileResult{Outcome: club.LookupNotFound, Err: fmt.Errorf("club id must be greater than zero")}
	}

	var payload profilePayload
	err := c.getJSON(ctx, "/"+strconv.FormatInt(clubID, 10), &payload)
	switch {
	case err == nil:
		profile, mapErr := payload.toDomain()
		if mapErr != nil {
			return club.ProfileResult{Outcome: club.LookupUnavailable, Err: mapErr}
		}
		return club.ProfileResult{Profile: profile, Outcome: club.LookupFound}
	case stderrors.Is(err, errClubNotFound):
		return club.ProfileResult{Outcome: club.LookupNotFound, Err: err}
	default:
		return club.ProfileResult{Outcome: club.LookupUnavailable, Err: err}
	}
}

func (c *Client) GetClubProfile(ctx context.Context, clubID int64) (club.Profile, error) {
	result := c.LookupClubProfile(ctx, clubID)
	if err := result.Error(); err != nil {
		return club.Profile{}, err
	}
	return result.Profile, nil
}

func (c *Client) UpdateRating(ctx context.Context, clubID int64, elo, ratingDeviation float64) error {
	if clubID <= 0 {
		return fmt.Errorf("%w: club id must be greater than zero", club.ErrRatingUpdateFailed)
	}

	body, err := sonic.Marshal(ratingPayload{Rating: elo, RatingDeviation: ratingDeviation})
	if err != nil {
		return fmt.Errorf("%w: marshal rating payload: %w", club.ErrRatingUpdateFailed, err)
	}

	path := "/" + strconv.FormatInt(clubID, 10) + "/rating"
	_, err = resilience.Execute(ctx, c.breaker, isCircuitFailure, func(ctx context.Context) ([]byte, error) {
		return c.executeRequest(ctx, http.MethodPut, c.baseURL+path, body)
	})
	if err != nil {
		return fmt.Errorf("%w: club=%d: %w", club.ErrRatingUpdateFailed, clubID, err)
	}
	return nil
}

func (c *Client) VerifyNoPenalty(ctx context.Context, clubID int64) (bool, error) {
	if clubID <= 0 {
		return false, fmt.Errorf("%w: club id must be greater than zero", club.ErrPenaltyVerificationFailed)
	}

	var penalized bool
	if err := c.getJSON(ctx, "/"+strconv.FormatInt(clubID, 10)+"/penaltystatus", &penalized); err != nil {
		return false, fmt.Errorf("%w: club=%d: %w", club.ErrPenaltyVerificationFailed, clubID, err)
	}
	return !penalized, nil
}

// RoleOf resolves the user's role from the club roster.
func (c *Client) RoleOf(ctx context.Context, userID, clubID int64) (club.Role, error) {
	profile, err := c.GetClubProfile(ctx, clubID)
	if err != nil {
		return club.RoleNone, err
	}
	return profile.RoleOf(userID), nil
}

func (c *Client) getJSON(ctx context.Context, path string, target any) error {
	fullURL := c.baseURL + path
	raw, err, _ := c.flight.DoContext(ctx, fullURL, func() ([]byte, error) {
		sharedCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.sharedTimeout)
		defer cancel()
		return resilience.Execute(sharedCtx, c.breaker, isCircuitFailure, func(ctx context.Context) ([]byte, error) {
			return c.executeRequest(ctx, http.MethodGet, fullURL, nil)
		})
	})
	if err != nil {
		if ctx.Err() != nil && stderrors.Is(err, ctx.Err()) {
			return crerr.Wrapf(errClubServiceTransient, "context done: %v", err)
		}
		if stderrors.Is(err, resilience.ErrCircuitOpen) {
			c.logger.WarnContext(ctx, "club service circuit breaker rejected request", "state", string(c.breaker.State()))
		}
		return err
	}

	if err := sonic.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("decode club service payload: %w", err)
	}
	return nil
}

func (c *Client) executeRequest(ctx context.Context, method, fullURL string, body []byte) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		var reader io.Reader
		if body != nil {
			reader = bytes.NewReader(body)
		}
		req, err := http.NewRequestWithContext(ctx, method, fullURL, reader)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("Accept", "application/json")
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = crerr.Wrapf(errClubServiceTransient, "send request: %v", err)
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
			_ = resp.Body.Close()
			switch {
			case readErr != nil:
				lastErr = crerr.Wrapf(errClubServiceTransient, "read response body: %v", readErr)
			case resp.StatusCode >= 200 && resp.StatusCode < 300:
				return raw, nil
			case resp.StatusCode == http.StatusNotFound:
				return nil, crerr.Wrapf(errClubNotFound, "status=%d", resp.StatusCode)
			case isRetryableStatus(resp.StatusCode):
				lastErr = crerr.Wrapf(errClubServiceTransient, "status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
			default:
				return nil, fmt.Errorf("club service status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
			}
		}

		if attempt == c.maxRetries {
			break
		}
		timer := time.NewTimer(time.Duration(attempt+1) * time.Second)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, crerr.Wrapf(errClubServiceTransient, "context done: %v", ctx.Err())
		case <-timer.C:
		}
	}

	c.logger.WarnContext(ctx, "club service request failed", "method", method, "url", fullURL, "error", lastErr)
	return nil, lastErr
}

// sharedCallTimeout covers every attempt plus the backoff between them.
func sharedCallTimeout(perAttempt time.Duration, maxRetries int) time.Duration {
	total := time.Duration(maxRetries+1) * perAttempt
	for attempt := 1; attempt <= maxRetries; attempt++ {
		total += time.Duration(attempt) * time.Second
	}
	return total
}

func isCircuitFailure(err error) bool {
	return stderrors.Is(err, errClubServiceTransient)
}

func isRetryableStatus(status int) bool {
	return status == http.StatusTooManyRequests || status >= 500
}

func abbreviateBody(raw []byte) string {
	const limit = 512
	text := strings.TrimSpace(string(raw))
	if len(text) <= limit {
		return text
	}
	return text[:limit] + "..."
}
