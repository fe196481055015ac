// internal/telegram/client.go
package telegram

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
	tele "gopkg.in/telebot.v4"

	appErrors "github.com/brandcasthq/brandcast-backend/internal/errors"
)

const sendTimeout = 10 * time.Second

// Client sends finished posts to a user's Telegram chat. It performs
// exactly one API call per SendPost; retries belong to the scheduler's
// next cycle, not here.
type Client struct {
	bot     *tele.Bot
	limiter *rate.Limiter
	log     zerolog.Logger
}

// NewClient builds the bot. An empty token is a ConfigError; callers use
// that to refuse starting the delivery scheduler.
func NewClient(token string, log zerolog.Logger) (*Client, error) {
	if strings.TrimSpace(token) == "" {
		return nil, appErrors.NewConfigError("TELEGRAM_BOT_TOKEN")
	}

	bot, err := tele.NewBot(tele.Settings{
		Token:  token,
		Client: &http.Client{Timeout: sendTimeout},
	})
	if err != nil {
		return nil, fmt.Errorf("telegram bot init: %w", err)
	}

	return &Client{
		bot: bot,
		// Bot API allows ~30 messages/sec overall; stay under it.
		limiter: rate.NewLimiter(rate.Limit(25), 5),
		log:     log,
	}, nil
}

// SendPost delivers one rendered message. API rejections (bad chat,
// blocked bot, rate limit) come back as plain errors; network failures are
// wrapped as TransportError. Both leave the post undelivered.
func (c *Client) SendPost(ctx context.Context, chatID int64, text string) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	_, err := c.bot.Send(tele.ChatID(chatID), text, tele.ModeMarkdownV2)
	if err == nil {
		return nil
	}

	var apiErr *tele.Error
	if errors.As(err, &apiErr) {
		return fmt.Errorf("telegram api (%d): %w", apiErr.Code, err)
	}
	return appErrors.NewTransportError(err)
}
