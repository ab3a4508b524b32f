package whatsapp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-resty/resty/v2"

	"github.com/mamadbah2/messledger/internal/config"
)

// ErrNoRecipient is returned when a summary is sent without a configured recipient.
var ErrNoRecipient = errors.New("whatsapp recipient is not configured")

// maxBodyLength is the Cloud API limit for a text message body.
const maxBodyLength = 4096

// Notifier delivers plain text summaries.
type Notifier interface {
	Notify(ctx context.Context, text string) error
}

// Client sends text messages through the WhatsApp Cloud API to a single
// configured recipient.
type Client struct {
	httpClient    *resty.Client
	phoneNumberID string
	recipient     string
}

// NewClient builds a Cloud API client from the notification settings.
func NewClient(cfg config.WhatsAppConfig) *Client {
	base := strings.TrimSuffix(cfg.BaseURL, "/")

	httpClient := resty.New().
		SetBaseURL(fmt.Sprintf("%s/%s", base, cfg.APIVersion)).
		SetAuthToken(cfg.AccessToken).
		SetHeader("Content-Type", "application/json").
		SetTimeout(15 * time.Second)

	return &Client{
		httpClient:    httpClient,
		phoneNumberID: cfg.PhoneNumberID,
		recipient:     cfg.Recipient,
	}
}

type textMessage struct {
	MessagingProduct string   `json:"messaging_product"`
	To               string   `json:"to"`
	Type             string   `json:"type"`
	Text             textBody `json:"text"`
}

type textBody struct {
	Body       string `json:"body"`
	PreviewURL bool   `json:"preview_url"`
}

type sendResponse struct {
	Messages []struct {
		ID string `json:"id"`
	} `json:"messages"`
}

type cloudError struct {
	Error struct {
		Message   string `json:"message"`
		Code      int    `json:"code"`
		FBTraceID string `json:"fbtrace_id"`
	} `json:"error"`
}

// Notify sends text to the configured recipient. Bodies over the API limit are
// truncated.
func (c *Client) Notify(ctx context.Context, text string) error {
	if c.recipient == "" {
		return ErrNoRecipient
	}
	_, err := c.Send(ctx, c.recipient, text)
	return err
}

// Send delivers a text message and returns the message id assigned by Meta.
func (c *Client) Send(ctx context.Context, to, text string) (string, error) {
	text = truncateBody(text)

	result := new(sendResponse)
	apiErr := new(cloudError)

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(textMessage{
			MessagingProduct: "whatsapp",
			To:               to,
			Type:             "text",
			Text:             textBody{Body: text},
		}).
		SetResult(result).
		SetError(apiErr).
		Post(fmt.Sprintf("%s/messages", c.phoneNumberID))
	if err != nil {
		return "", fmt.Errorf("send whatsapp message: %w", err)
	}

	if resp.StatusCode() >= http.StatusBadRequest {
		code := resp.StatusCode()
		if apiErr.Error.Code != 0 {
			code = apiErr.Error.Code
		}
		return "", fmt.Errorf("whatsapp api error: code=%d, message=%s", code, apiErr.Error.Message)
	}

	if len(result.Messages) == 0 {
		return "", nil
	}
	return result.Messages[0].ID, nil
}

// truncateBody cuts text to maxBodyLength bytes without splitting a character.
func truncateBody(text string) string {
	if len(text) <= maxBodyLength {
		return text
	}
	cut := maxBodyLength
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut]
}
