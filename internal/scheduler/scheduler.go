package scheduler

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	appErrors "github.com/brandcasthq/brandcast-backend/internal/errors"
)

// Config tunes the delivery loop.
type Config struct {
	Interval    time.Duration // time between cycles
	BatchSize   int           // max due posts pulled per cycle
	Concurrency int           // direct-mode batch size
	BatchDelay  time.Duration // direct-mode pause between batches
}

func (c Config) withDefaults() Config {
	if c.Interval <= 0 {
		c.Interval = time.Minute
	}
	if c.BatchSize <= 0 {
		c.BatchSize = 50
	}
	if c.Concurrency <= 0 {
		c.Concurrency = 5
	}
	if c.BatchDelay <= 0 {
		c.BatchDelay = 200 * time.Millisecond
	}
	return c
}

// Scheduler polls for due posts and dispatches them, either onto the
// durable queue or directly in-process when no broker is available. Each
// instance owns its own timer and state; nothing here is process-global.
type Scheduler struct {
	cfg    Config
	store  PostStore
	client ChannelClient
	queue  JobQueue // nil means permanent degraded mode
	exec   *Executor
	log    zerolog.Logger

	mu      sync.Mutex
	cron    *cron.Cron
	running bool

	// inCycle guards against a slow cycle overlapping the next tick.
	inCycle atomic.Bool

	now func() time.Time
}

// New builds a stopped scheduler. client may be nil when Telegram is not
// configured; Start will then refuse to run.
func New(cfg Config, store PostStore, client ChannelClient, q JobQueue, log zerolog.Logger) *Scheduler {
	cfg = cfg.withDefaults()
	s := &Scheduler{
		cfg:    cfg,
		store:  store,
		client: client,
		queue:  q,
		log:    log,
		now:    time.Now,
	}
	if client != nil {
		s.exec = NewExecutor(store, client, log)
	}
	return s
}

// Start fires one cycle immediately, then one per interval. Calling it on
// a running scheduler is a no-op. Without a channel client it returns a
// ConfigError and stays stopped.
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return nil
	}
	if s.client == nil {
		return appErrors.NewConfigError("TELEGRAM_BOT_TOKEN")
	}

	c := cron.New()
	if _, err := c.AddFunc(fmt.Sprintf("@every %s", s.cfg.Interval), s.runCycle); err != nil {
		return fmt.Errorf("schedule delivery cycle: %w", err)
	}

	s.cron = c
	s.running = true

	go s.runCycle()
	c.Start()

	s.log.Info().
		Dur("interval", s.cfg.Interval).
		Int("batch_size", s.cfg.BatchSize).
		Bool("queue_configured", s.queue != nil).
		Msg("delivery scheduler started")
	return nil
}

// Stop cancels the timer. An in-flight cycle is allowed to finish; no new
// one starts.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}
	s.cron.Stop()
	s.cron = nil
	s.running = false
	s.log.Info().Msg("delivery scheduler stopped")
}

func (s *Scheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

func (s *Scheduler) runCycle() {
	if !s.inCycle.CompareAndSwap(false, true) {
		s.log.Debug().Msg("previous delivery cycle still running, skipping tick")
		return
	}
	defer s.inCycle.Store(false)

	now := s.now()
	due, err := s.store.FindDuePosts(now, s.cfg.BatchSize)
	if err != nil {
		// treat as "no items this cycle"; the loop must never crash
		s.log.Error().Err(err).Msg("due post query failed")
		return
	}
	if len(due) == 0 {
		s.log.Debug().Msg("no due posts")
		return
	}

	var dispatcher Dispatcher
	mode := "direct"
	if s.queue != nil && s.queue.Available() {
		dispatcher = NewQueueDispatcher(s.queue, s.log)
		mode = "queue"
	} else {
		dispatcher = NewDirectDispatcher(s.exec, s.cfg.Concurrency, s.cfg.BatchDelay, s.log)
	}

	outcomes := dispatcher.Dispatch(context.Background(), due)

	var enqueued, delivered, failed int
	for _, o := range outcomes {
		switch {
		case o.Err != nil:
			failed++
		case o.Kind == Enqueued:
			enqueued++
		default:
			delivered++
		}
	}

	s.log.Info().
		Str("mode", mode).
		Int("due", len(due)).
		Int("enqueued", enqueued).
		Int("delivered", delivered).
		Int("failed", failed).
		Msg("delivery cycle finished")
}
