package queue

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/streadway/amqp"
)

// QueueName is the durable queue delivery jobs go through.
const QueueName = "post_deliveries"

// DeliveryJob is the payload enqueued per due post. The broker owns its
// persistence and redelivery; we only hand over the post reference.
type DeliveryJob struct {
	JobID  string `json:"job_id"`
	PostID int    `json:"post_id"`
}

// Publisher is the durable-queue side the scheduler talks to. Available
// reports whether the broker connection is currently live; the dispatcher
// re-checks it every cycle and falls back to direct sends when false.
type Publisher interface {
	Publish(postID int) (jobID string, err error)
	Available() bool
	Close()
}

// AMQPPublisher publishes delivery jobs to RabbitMQ.
type AMQPPublisher struct {
	conn *amqp.Connection
	ch   *amqp.Channel
	log  zerolog.Logger

	mu     sync.Mutex
	closed bool
}

// Dial connects to the broker and declares the delivery queue.
func Dial(url string, log zerolog.Logger) (*AMQPPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("amqp dial: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("amqp channel: %w", err)
	}

	if _, err := ch.QueueDeclare(
		QueueName,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("declare queue: %w", err)
	}

	p := &AMQPPublisher{conn: conn, ch: ch, log: log}

	closeCh := conn.NotifyClose(make(chan *amqp.Error, 1))
	go func() {
		amqpErr := <-closeCh
		p.mu.Lock()
		p.closed = true
		p.mu.Unlock()
		if amqpErr != nil {
			p.log.Warn().Err(amqpErr).Msg("amqp connection lost, scheduler will fall back to direct sends")
		}
	}()

	return p, nil
}

func (p *AMQPPublisher) Available() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return !p.closed
}

// Publish enqueues one delivery job and returns its generated id.
func (p *AMQPPublisher) Publish(postID int) (string, error) {
	job := DeliveryJob{JobID: uuid.NewString(), PostID: postID}

	body, err := json.Marshal(job)
	if err != nil {
		return "", fmt.Errorf("marshal job: %w", err)
	}

	err = p.ch.Publish(
		"",        // default exchange
		QueueName, // routing key
		false,     // mandatory
		false,     // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
	if err != nil {
		return "", fmt.Errorf("publish job: %w", err)
	}
	return job.JobID, nil
}

func (p *AMQPPublisher) Close() {
	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()
	p.ch.Close()
	p.conn.Close()
}

var _ Publisher = (*AMQPPublisher)(nil)
