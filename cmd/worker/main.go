// cmd/worker/main.go
package main

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/streadway/amqp"

	"github.com/brandcasthq/brandcast-backend/internal/config"
	"github.com/brandcasthq/brandcast-backend/internal/db"
	"github.com/brandcasthq/brandcast-backend/internal/logging"
	"github.com/brandcasthq/brandcast-backend/internal/queue"
	"github.com/brandcasthq/brandcast-backend/internal/repository"
	"github.com/brandcasthq/brandcast-backend/internal/scheduler"
	"github.com/brandcasthq/brandcast-backend/internal/telegram"
)

const maxAttempts = 3

func main() {
	cfg := config.Load()
	log := logging.New(cfg.LogLevel).With().Str("component", "worker").Logger()

	if cfg.AMQPURL == "" {
		log.Fatal().Msg("AMQP_URL is required for the worker")
	}

	conn, err := db.Connect(cfg.DatabaseURL())
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}
	defer conn.Close()

	tg, err := telegram.NewClient(cfg.TelegramBotToken, log)
	if err != nil {
		log.Fatal().Err(err).Msg("telegram client init failed")
	}

	postRepo := &repository.PostRepository{DB: conn}
	exec := scheduler.NewExecutor(postRepo, tg, log)

	amqpConn, err := amqp.Dial(cfg.AMQPURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to RabbitMQ")
	}
	defer amqpConn.Close()

	ch, err := amqpConn.Channel()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open a channel")
	}
	defer ch.Close()

	q, err := ch.QueueDeclare(
		queue.QueueName,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to declare queue")
	}

	msgs, err := ch.Consume(
		q.Name,
		"",
		false, // autoAck off for reliability
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to register consumer")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info().Msg("worker running, waiting for delivery jobs")

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("worker shutting down")
			return
		case d, ok := <-msgs:
			if !ok {
				log.Warn().Msg("consumer channel closed")
				return
			}
			handleDelivery(ctx, ch, d, exec, postRepo, log)
		}
	}
}

func handleDelivery(ctx context.Context, ch *amqp.Channel, d amqp.Delivery, exec *scheduler.Executor, repo *repository.PostRepository, log zerolog.Logger) {
	var job queue.DeliveryJob
	if err := json.Unmarshal(d.Body, &job); err != nil {
		log.Warn().Err(err).Msg("invalid job payload, dropping")
		d.Ack(false)
		return
	}

	due, err := repo.GetDeliverySnapshot(job.PostID)
	if err != nil {
		log.Error().Err(err).Str("job_id", job.JobID).Int("post_id", job.PostID).Msg("snapshot load failed")
		requeueOrDrop(ch, d, job, log)
		return
	}
	if due == nil {
		// already delivered or no longer eligible; redeliveries land here
		log.Debug().Str("job_id", job.JobID).Int("post_id", job.PostID).Msg("post no longer deliverable, dropping job")
		d.Ack(false)
		return
	}

	if err := exec.Deliver(ctx, *due); err != nil {
		log.Warn().Err(err).Str("job_id", job.JobID).Int("post_id", job.PostID).Msg("delivery failed")
		requeueOrDrop(ch, d, job, log)
		return
	}

	d.Ack(false)
}

// requeueOrDrop republishes the job with an incremented attempt counter,
// up to maxAttempts. After that the post stays undelivered and the next
// scheduler cycle will enqueue it again.
func requeueOrDrop(ch *amqp.Channel, d amqp.Delivery, job queue.DeliveryJob, log zerolog.Logger) {
	attempt := int32(1)
	if v, ok := d.Headers["x-attempt"].(int32); ok {
		attempt = v + 1
	}

	if attempt >= maxAttempts {
		log.Warn().Str("job_id", job.JobID).Int("post_id", job.PostID).Int32("attempts", attempt).Msg("job exhausted, dropping")
		d.Ack(false)
		return
	}

	err := ch.Publish(
		"",
		queue.QueueName,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Headers:      amqp.Table{"x-attempt": attempt},
			Body:         d.Body,
		},
	)
	if err != nil {
		log.Error().Err(err).Str("job_id", job.JobID).Msg("requeue failed, nacking")
		d.Nack(false, true)
		return
	}
	d.Ack(false)
}
