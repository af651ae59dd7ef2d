package notify

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

// Client posts text notifications to a chat webhook.
type Client interface {
	SendText(ctx context.Context, text string) error
}

// WebhookClient is a resty-backed implementation of Client. The payload carries the
// message under both "text" and "content" so Slack-, Teams- and Discord-style incoming
// webhooks accept it.
type WebhookClient struct {
	httpClient *resty.Client
	url        string
}

// NewWebhookClient builds a client for the given incoming-webhook URL.
func NewWebhookClient(url string) *WebhookClient {
	restyClient := resty.New().
		SetHeader("Content-Type", "application/json").
		SetTimeout(15 * time.Second)

	return &WebhookClient{httpClient: restyClient, url: url}
}

// apiError is the error body most webhook providers return.
type apiError struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// SendText posts text to the webhook.
func (c *WebhookClient) SendText(ctx context.Context, text string) error {
	payload := map[string]any{
		"text":    text,
		"content": text,
	}

	apiErr := new(apiError)
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(payload).
		SetError(apiErr).
		Post(c.url)
	if err != nil {
		return fmt.Errorf("send webhook notification: %w", err)
	}

	if resp.StatusCode() >= http.StatusBadRequest {
		message := apiErr.Message
		if message == "" {
			message = apiErr.Error
		}
		if message == "" {
			message = resp.String()
		}
		return fmt.Errorf("webhook error: code=%d, message=%s", resp.StatusCode(), message)
	}

	return nil
}
