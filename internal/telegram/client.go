package telegram

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"star-casino/internal/app/payment"
	"star-casino/internal/config"
	"star-casino/internal/outcome"
)

var ErrNotConfigured = errors.New("telegram_not_configured")

// APIError is a Bot API response with ok=false.
type APIError struct {
	Method      string
	Code        int
	Description string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("telegram %s: %d %s", e.Method, e.Code, e.Description)
}

type apiResponse struct {
	OK          bool            `json:"ok"`
	Result      json.RawMessage `json:"result"`
	ErrorCode   int             `json:"error_code"`
	Description string          `json:"description"`
}

// Client talks to the Bot API. It serves as the wager randomness source, the
// withdrawal review channel, the broadcast notifier and the invoice issuer.
type Client struct {
	http        *HTTPClient
	baseURL     string
	token       string
	settleDelay time.Duration
	sleep       func(ctx context.Context, d time.Duration) error
}

func NewClient(cfg config.TelegramConfig, settleDelay time.Duration) *Client {
	return &Client{
		http:        NewHTTPClient(cfg.Timeout),
		baseURL:     strings.TrimRight(cfg.APIURL, "/"),
		token:       cfg.Token,
		settleDelay: settleDelay,
		sleep:       sleepCtx,
	}
}

func (c *Client) call(ctx context.Context, method string, params any, out any) error {
	if c.token == "" {
		return ErrNotConfigured
	}
	metricAPICallsTotal.Add(1)
	status, body, err := c.http.PostJSON(ctx, c.baseURL+"/bot"+c.token+"/"+method, params)
	if err != nil {
		metricAPIErrorsTotal.Add(1)
		return fmt.Errorf("telegram %s: %w", method, err)
	}
	var resp apiResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		metricAPIErrorsTotal.Add(1)
		return fmt.Errorf("telegram %s: status %d: decode: %w", method, status, err)
	}
	if !resp.OK {
		metricAPIErrorsTotal.Add(1)
		code := resp.ErrorCode
		if code == 0 {
			code = status
		}
		return &APIError{Method: method, Code: code, Description: resp.Description}
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(resp.Result, out)
}

func (c *Client) SendMessage(ctx context.Context, chatID int64, text string) error {
	return c.call(ctx, "sendMessage", map[string]any{
		"chat_id": chatID,
		"text":    text,
	}, nil)
}

var diceEmoji = map[outcome.Variant]string{
	outcome.Dice:       "🎲",
	outcome.Basketball: "🏀",
	outcome.Football:   "⚽",
	outcome.Slot:       "🎰",
}

// Roll sends the animated die for v and returns its value once the animation has played.
func (c *Client) Roll(ctx context.Context, chatID int64, v outcome.Variant) (int, error) {
	emoji, ok := diceEmoji[v]
	if !ok {
		return 0, outcome.ErrUnknownVariant
	}
	var msg struct {
		Dice *struct {
			Emoji string `json:"emoji"`
			Value int    `json:"value"`
		} `json:"dice"`
	}
	if err := c.call(ctx, "sendDice", map[string]any{"chat_id": chatID, "emoji": emoji}, &msg); err != nil {
		return 0, err
	}
	if msg.Dice == nil {
		return 0, fmt.Errorf("telegram sendDice: response without dice")
	}
	metricDiceRollsTotal.Add(1)
	if c.settleDelay > 0 {
		if err := c.sleep(ctx, c.settleDelay); err != nil {
			return 0, err
		}
	}
	return msg.Dice.Value, nil
}

func (c *Client) CreateInvoiceLink(ctx context.Context, inv payment.Invoice) (string, error) {
	var link string
	err := c.call(ctx, "createInvoiceLink", map[string]any{
		"title":          inv.Title,
		"description":    inv.Description,
		"payload":        inv.Payload,
		"provider_token": "",
		"currency":       inv.Currency,
		"prices": []map[string]any{
			{"label": inv.Title, "amount": inv.Amount},
		},
	}, &link)
	if err != nil {
		return "", err
	}
	return link, nil
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
