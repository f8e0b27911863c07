package announce

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/dghubble/oauth1"
	"github.com/google/uuid"
)

// DefaultXAPIURL is the X API v2 endpoint for creating posts.
const DefaultXAPIURL = "https://api.x.com/2/tweets"

const (
	// maxPostLength is the X character limit for a single post.
	maxPostLength = 280

	postTruncationSuffix = "..."
)

// XConfig contains configuration for posting to the X API.
// All four credentials come from the environment; the announcer refuses to
// start with any of them empty.
type XConfig struct {
	// Enabled indicates whether X announcements are enabled
	Enabled bool

	// APIKey and APIKeySecret identify the application (OAuth 1.0a consumer pair)
	APIKey       string
	APIKeySecret string

	// AccessToken and AccessTokenSecret identify the posting account
	AccessToken       string
	AccessTokenSecret string

	// APIURL is the post creation endpoint. Defaults to DefaultXAPIURL.
	APIURL string

	// Timeout is the HTTP request timeout for X API calls
	Timeout time.Duration
}

// XAnnouncer posts publication announcements to X via the v2 API.
// Requests are signed with OAuth 1.0a user context.
type XAnnouncer struct {
	config      XConfig
	httpClient  *http.Client
	rateLimiter *RateLimiter
}

// NewXAnnouncer creates a new XAnnouncer with the specified configuration.
//
// The announcer is initialized with:
//   - OAuth 1.0a signing HTTP client with configured timeout
//   - Rate limiter set to 1 request per 2 seconds with burst of 1
//     (X free tier allows very few posts per window)
//
// Returns an error if any credential is missing.
func NewXAnnouncer(config XConfig) (*XAnnouncer, error) {
	if config.APIKey == "" || config.APIKeySecret == "" ||
		config.AccessToken == "" || config.AccessTokenSecret == "" {
		return nil, fmt.Errorf("x announcer: missing OAuth credentials")
	}
	if config.APIURL == "" {
		config.APIURL = DefaultXAPIURL
	}

	oauthConfig := oauth1.NewConfig(config.APIKey, config.APIKeySecret)
	token := oauth1.NewToken(config.AccessToken, config.AccessTokenSecret)
	client := oauthConfig.Client(oauth1.NoContext, token)
	client.Timeout = config.Timeout

	return &XAnnouncer{
		config:      config,
		httpClient:  client,
		rateLimiter: NewRateLimiter(0.5, 1),
	}, nil
}

// postPayload represents the JSON body of a post creation request.
type postPayload struct {
	Text string `json:"text"`
}

// sendPostRequest sends a single post creation request.
//
// Error types:
//   - 429: Rate limit error (retryable, honors Retry-After)
//   - 4xx (non-429): Client error (non-retryable)
//   - 5xx: Server error (retryable)
//   - Network error: Connection/timeout error (retryable)
func (x *XAnnouncer) sendPostRequest(ctx context.Context, text string) error {
	jsonData, err := json.Marshal(postPayload{Text: text})
	if err != nil {
		return fmt.Errorf("marshal post payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, x.config.APIURL, bytes.NewReader(jsonData))
	if err != nil {
		return fmt.Errorf("create http request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := x.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute http request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, _ := io.ReadAll(resp.Body)

	// X returns 201 Created on success
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		return &RateLimitError{
			Message:    "X rate limit exceeded",
			RetryAfter: extractRetryAfter(resp),
		}
	}

	if resp.StatusCode >= 400 && resp.StatusCode < 500 {
		return &ClientError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("X API client error: %s", string(body)),
		}
	}

	if resp.StatusCode >= 500 {
		return &ServerError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("X API server error: %s", string(body)),
		}
	}

	return fmt.Errorf("unexpected status code %d: %s", resp.StatusCode, string(body))
}

// sendPostRequestWithRetry sends a post creation request with retry logic.
//
// Retry strategy:
//   - Max attempts: 2
//   - Base delay: 5 seconds
//   - 429 errors: Sleep for the Retry-After duration
//   - Server errors (5xx): Linear backoff (5s, 10s)
//   - Client errors (4xx): No retry, fail immediately
func (x *XAnnouncer) sendPostRequestWithRetry(ctx context.Context, text string) error {
	const (
		maxAttempts = 2
		baseDelay   = 5 * time.Second
	)

	requestID, _ := ctx.Value(requestIDKey).(string)

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		err := x.sendPostRequest(ctx, text)
		if err == nil {
			slog.Info("X post successful",
				slog.String("request_id", requestID),
				slog.Int("attempt", attempt))
			return nil
		}

		lastErr = err

		if rateLimitErr, ok := is429Error(err); ok {
			slog.Warn("X rate limit hit, backing off",
				slog.String("request_id", requestID),
				slog.Duration("retry_after", rateLimitErr.RetryAfter),
				slog.Int("attempt", attempt))

			select {
			case <-time.After(rateLimitErr.RetryAfter):
				continue
			case <-ctx.Done():
				return fmt.Errorf("context canceled during rate limit backoff: %w", ctx.Err())
			}
		}

		if !isRetryableError(err) {
			slog.Error("X post failed with non-retryable error",
				slog.String("request_id", requestID),
				slog.Any("error", err),
				slog.Int("attempt", attempt))
			return err
		}

		if attempt < maxAttempts {
			delay := baseDelay * time.Duration(attempt)
			slog.Warn("X API request failed, retrying",
				slog.String("request_id", requestID),
				slog.Any("error", err),
				slog.Int("attempt", attempt),
				slog.Duration("delay", delay))

			select {
			case <-time.After(delay):
				continue
			case <-ctx.Done():
				return fmt.Errorf("context canceled during retry backoff: %w", ctx.Err())
			}
		}
	}

	slog.Error("X post failed after all retries",
		slog.String("request_id", requestID),
		slog.Any("error", lastErr),
		slog.Int("max_attempts", maxAttempts))

	return fmt.Errorf("x post failed after %d attempts: %w", maxAttempts, lastErr)
}

// Announce posts the given text to X. This method implements the Announcer
// interface.
//
// It performs the following steps:
//  1. Generate unique request_id for tracing
//  2. Truncate the text to the platform limit
//  3. Apply rate limiting to prevent API abuse
//  4. Send the post request with retry logic
func (x *XAnnouncer) Announce(ctx context.Context, text string) error {
	requestID := uuid.New().String()
	ctx = context.WithValue(ctx, requestIDKey, requestID)

	text = truncatePost(text, maxPostLength, postTruncationSuffix)

	slog.Info("starting X post",
		slog.String("request_id", requestID),
		slog.Int("text_length", len(text)))

	if err := x.rateLimiter.Allow(ctx); err != nil {
		slog.Error("rate limiter error",
			slog.String("request_id", requestID),
			slog.Any("error", err))
		return fmt.Errorf("rate limiter error: %w", err)
	}

	return x.sendPostRequestWithRetry(ctx, text)
}
