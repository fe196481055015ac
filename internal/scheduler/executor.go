package scheduler

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/brandcasthq/brandcast-backend/internal/model"
	"github.com/brandcasthq/brandcast-backend/internal/telegram"
)

// PostStore is the slice of the post repository the scheduler needs.
type PostStore interface {
	FindDuePosts(now time.Time, limit int) ([]model.DuePost, error)
	MarkDelivered(id int, at time.Time) error
}

// ChannelClient sends one rendered message to a Telegram chat.
type ChannelClient interface {
	SendPost(ctx context.Context, chatID int64, text string) error
}

// Executor delivers a single due post: render, send, then mark delivered.
// A failed send leaves the post untouched so the next cycle retries it.
type Executor struct {
	Store  PostStore
	Client ChannelClient
	Log    zerolog.Logger

	// now is swappable in tests.
	now func() time.Time
}

func NewExecutor(store PostStore, client ChannelClient, log zerolog.Logger) *Executor {
	return &Executor{Store: store, Client: client, Log: log, now: time.Now}
}

// Deliver sends one post and records the delivery. The mark-delivered
// update is a single-row write; if it fails after a successful send the
// post may be re-sent next cycle (the documented at-least-once tradeoff).
func (e *Executor) Deliver(ctx context.Context, due model.DuePost) error {
	text := telegram.Format(due.Platform, due.BrandName, due.Body)

	if err := e.Client.SendPost(ctx, due.ChatID, text); err != nil {
		e.Log.Warn().Err(err).Int("post_id", due.PostID).Int64("chat_id", due.ChatID).Msg("post delivery failed")
		return err
	}

	if err := e.Store.MarkDelivered(due.PostID, e.now()); err != nil {
		e.Log.Error().Err(err).Int("post_id", due.PostID).Msg("sent but could not mark delivered")
		return err
	}

	e.Log.Info().Int("post_id", due.PostID).Int64("chat_id", due.ChatID).Msg("post delivered")
	return nil
}
