package out

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	"golang.org/x/time/rate"

	"focusflow/internal/modules/notify/domain"
	notifyout "focusflow/internal/modules/notify/port/out"
	"focusflow/internal/platform/settings"
)

const (
	keyShouldMessage = "slack-should-message"
	keyAPIKey        = "slack-api-key"
	keyChannel       = "slack-channel"
	keyShouldStatus  = "slack-should-status"
	keyStatusAPIKey  = "slack-status-api-key"
	keyStatusEmoji   = "slack-status-emoji"

	maxResponseBytes = 1 << 20
)

type SlackOptions struct {
	BaseURL    string
	RatePerSec float64
	Timeout    time.Duration
	HTTPClient *http.Client
}

// SlackClient talks to the Slack Web API with the tokens kept in settings.
// Settings are read on every call, so edits apply without a restart.
type SlackClient struct {
	settings *settings.Settings
	baseURL  string
	http     *http.Client
	limiter  *rate.Limiter
}

func NewSlackClient(s *settings.Settings, opts SlackOptions) notifyout.Messenger {
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: opts.Timeout}
	}
	perSec := opts.RatePerSec
	if perSec <= 0 {
		perSec = 1
	}
	return &SlackClient{
		settings: s,
		baseURL:  strings.TrimRight(opts.BaseURL, "/"),
		http:     client,
		limiter:  rate.NewLimiter(rate.Limit(perSec), 2),
	}
}

func (c *SlackClient) PostMessage(ctx context.Context, text string) (*domain.Response, error) {
	enabled, err := c.settings.Bool(ctx, keyShouldMessage)
	if err != nil {
		return nil, err
	}
	token, err := c.settings.String(ctx, keyAPIKey)
	if err != nil {
		return nil, err
	}
	channel, err := c.settings.String(ctx, keyChannel)
	if err != nil {
		return nil, err
	}
	if !enabled || token == "" || channel == "" {
		return nil, nil
	}
	return c.call(ctx, "chat.postMessage", token, map[string]any{
		"channel": channel,
		"text":    text,
	})
}

func (c *SlackClient) SetStatus(ctx context.Context, text string, expiration time.Time) (*domain.Response, error) {
	token, enabled, err := c.statusToken(ctx)
	if err != nil || !enabled {
		return nil, err
	}
	emoji, err := c.settings.String(ctx, keyStatusEmoji)
	if err != nil {
		return nil, err
	}
	if emoji == "" {
		return nil, nil
	}
	var expires int64
	if !expiration.IsZero() {
		expires = expiration.Unix()
	}
	return c.call(ctx, "users.profile.set", token, profile(text, emoji, expires))
}

func (c *SlackClient) ClearStatus(ctx context.Context) (*domain.Response, error) {
	token, enabled, err := c.statusToken(ctx)
	if err != nil || !enabled {
		return nil, err
	}
	return c.call(ctx, "users.profile.set", token, profile("", "", 0))
}

func (c *SlackClient) statusToken(ctx context.Context) (string, bool, error) {
	enabled, err := c.settings.Bool(ctx, keyShouldStatus)
	if err != nil {
		return "", false, err
	}
	token, err := c.settings.String(ctx, keyStatusAPIKey)
	if err != nil {
		return "", false, err
	}
	return token, enabled && token != "", nil
}

func profile(text, emoji string, expiration int64) map[string]any {
	return map[string]any{
		"profile": map[string]any{
			"status_text":       text,
			"status_emoji":      emoji,
			"status_expiration": expiration,
		},
	}
}

func (c *SlackClient) call(ctx context.Context, endpoint, token string, payload any) (*domain.Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("slack rate limit: %w", err)
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode %s payload: %w", endpoint, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/"+endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build %s request: %w", endpoint, err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json; charset=utf-8")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call %s: %w", endpoint, err)
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("read %s response: %w", endpoint, err)
	}
	if !gjson.ValidBytes(raw) {
		return nil, fmt.Errorf("%s: unexpected response (status %d)", endpoint, resp.StatusCode)
	}
	parsed := gjson.ParseBytes(raw)
	return &domain.Response{
		OK:    parsed.Get("ok").Bool(),
		Error: parsed.Get("error").String(),
	}, nil
}
