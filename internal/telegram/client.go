package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// Client talks to the Telegram Bot API over plain HTTP. Outbound sends go
// through a rate limiter so bursts of replies stay under Telegram's
// throttling threshold.
type Client struct {
	client  *http.Client
	baseURL string
	token   string
	limiter *rate.Limiter
}

// APIError carries the Bot API error code and description, plus the
// retry_after hint when Telegram is throttling us.
type APIError struct {
	Code        int
	Description string
	RetryAfter  time.Duration
}

func (e *APIError) Error() string {
	return fmt.Sprintf("telegram api: %d %s", e.Code, e.Description)
}

type apiResponse struct {
	OK          bool            `json:"ok"`
	Result      json.RawMessage `json:"result,omitempty"`
	ErrorCode   int             `json:"error_code,omitempty"`
	Description string          `json:"description,omitempty"`
	Parameters  *struct {
		RetryAfter int `json:"retry_after,omitempty"`
	} `json:"parameters,omitempty"`
}

type Option func(*Client)

// WithBaseURL points the client at a different API host (tests, proxies).
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// Per-call deadlines. Short methods get a fixed budget; getUpdates blocks
// server-side for the configured poll window, so its deadline is derived from
// that window plus a network margin.
const (
	shortCallTimeout = 30 * time.Second
	pollMargin       = 10 * time.Second
)

func pollTimeout(timeoutSec int) time.Duration {
	return time.Duration(timeoutSec)*time.Second + pollMargin
}

func NewClient(token string, messagesPerSec float64, opts ...Option) *Client {
	c := &Client{
		client:  &http.Client{},
		baseURL: "https://api.telegram.org",
		token:   token,
		limiter: rate.NewLimiter(rate.Limit(messagesPerSec), 3),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ValidateToken checks the numbers:alphanumeric bot token shape before any
// network call.
func ValidateToken(token string) error {
	parts := strings.Split(token, ":")
	if len(parts) != 2 || len(parts[0]) == 0 || len(parts[1]) == 0 {
		return fmt.Errorf("invalid bot token format")
	}
	return nil
}

func (c *Client) call(ctx context.Context, method string, timeout time.Duration, payload any, result any) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	url := fmt.Sprintf("%s/bot%s/%s", c.baseURL, c.token, method)

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s payload: %w", method, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", method, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("%s: read response: %w", method, err)
	}

	var api apiResponse
	if err := json.Unmarshal(raw, &api); err != nil {
		return fmt.Errorf("%s: parse response: %w", method, err)
	}

	if !api.OK {
		apiErr := &APIError{Code: api.ErrorCode, Description: api.Description}
		if api.Parameters != nil && api.Parameters.RetryAfter > 0 {
			apiErr.RetryAfter = time.Duration(api.Parameters.RetryAfter) * time.Second
		}
		return apiErr
	}

	if result != nil && len(api.Result) > 0 {
		if err := json.Unmarshal(api.Result, result); err != nil {
			return fmt.Errorf("%s: parse result: %w", method, err)
		}
	}
	return nil
}

// GetUpdates long-polls for updates after offset. Blocks up to timeoutSec
// server-side; a zero-update return is normal.
func (c *Client) GetUpdates(ctx context.Context, offset int64, timeoutSec int) ([]Update, error) {
	var updates []Update
	err := c.call(ctx, "getUpdates", pollTimeout(timeoutSec), getUpdatesRequest{
		Offset:         offset,
		Timeout:        timeoutSec,
		AllowedUpdates: []string{"message", "callback_query"},
	}, &updates)
	return updates, err
}

func (c *Client) SendMessage(ctx context.Context, req SendMessageRequest) (Message, error) {
	var msg Message
	if err := c.limiter.Wait(ctx); err != nil {
		return msg, err
	}
	err := c.call(ctx, "sendMessage", shortCallTimeout, req, &msg)
	return msg, err
}

func (c *Client) EditMessageText(ctx context.Context, req EditMessageTextRequest) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}
	return c.call(ctx, "editMessageText", shortCallTimeout, req, nil)
}

func (c *Client) AnswerCallbackQuery(ctx context.Context, req AnswerCallbackQueryRequest) error {
	return c.call(ctx, "answerCallbackQuery", shortCallTimeout, req, nil)
}
