package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/manapixels/stock-screener/internal/errors"
)

const (
	defaultTelegramBaseURL = "https://api.telegram.org"

	// Telegram caps bots at roughly 30 messages per second across all chats.
	defaultTelegramMessagesPerSecond = 30
)

// TelegramClient sends messages through the Telegram Bot API
type TelegramClient struct {
	botToken   string
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewTelegramClient creates a new Telegram Bot API client. An empty baseURL
// selects the public endpoint; a non-positive messagesPerSecond selects the
// bot-wide limit Telegram documents.
func NewTelegramClient(botToken, baseURL string, messagesPerSecond int) *TelegramClient {
	if baseURL == "" {
		baseURL = defaultTelegramBaseURL
	}
	if messagesPerSecond <= 0 {
		messagesPerSecond = defaultTelegramMessagesPerSecond
	}
	return &TelegramClient{
		botToken:   botToken,
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		limiter:    rate.NewLimiter(rate.Limit(messagesPerSecond), messagesPerSecond),
	}
}

// telegramResponse is the envelope every Bot API method returns.
type telegramResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description"`
}

// SendMessage delivers text to a chat through the bot's sendMessage method.
// Sends are throttled process-wide so alert bursts stay under Telegram's
// bot limit.
func (c *TelegramClient) SendMessage(ctx context.Context, chatID, text string) error {
	if c.botToken == "" {
		return errors.NewConfigurationError("TELEGRAM_BOT_TOKEN environment variable not set.")
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	form := url.Values{
		"chat_id": {chatID},
		"text":    {text},
	}

	reqURL := fmt.Sprintf("%s/bot%s/sendMessage", c.baseURL, c.botToken)
	req, err := http.NewRequestWithContext(ctx, "POST", reqURL, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach Telegram: %w", err)
	}

	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("Telegram API error: status=%d, body=%s", resp.StatusCode, string(body))
	}

	var result telegramResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	if !result.OK {
		return fmt.Errorf("Telegram API error: %s", result.Description)
	}

	return nil
}
