package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/brandcasthq/brandcast-backend/internal/model"
)

// OutcomeKind tags how a due post was dispatched.
type OutcomeKind int

const (
	// Enqueued means the post became a job on the durable queue; the
	// worker process completes delivery with the broker's retry policy.
	Enqueued OutcomeKind = iota
	// ExecutedDirect means the post was delivered in-process.
	ExecutedDirect
)

// Outcome is the per-post result of one dispatch cycle.
type Outcome struct {
	Kind   OutcomeKind
	PostID int
	JobID  string // set for Enqueued
	Err    error  // set for failed ExecutedDirect, or a failed enqueue
}

// Dispatcher runs one cycle's worth of due posts. Individual failures are
// isolated; they never abort the rest of the slice.
type Dispatcher interface {
	Dispatch(ctx context.Context, due []model.DuePost) []Outcome
}

// JobQueue is what the queue-backed dispatcher needs from the broker side.
type JobQueue interface {
	Publish(postID int) (jobID string, err error)
	Available() bool
}

// ====================== Queue mode ======================

type queueDispatcher struct {
	queue JobQueue
	log   zerolog.Logger
}

func NewQueueDispatcher(q JobQueue, log zerolog.Logger) Dispatcher {
	return &queueDispatcher{queue: q, log: log}
}

// Dispatch fires one job per due post. Enqueueing is fire-and-forget from
// the scheduler's perspective.
func (d *queueDispatcher) Dispatch(ctx context.Context, due []model.DuePost) []Outcome {
	outcomes := make([]Outcome, 0, len(due))
	for _, item := range due {
		jobID, err := d.queue.Publish(item.PostID)
		if err != nil {
			d.log.Warn().Err(err).Int("post_id", item.PostID).Msg("failed to enqueue delivery job")
			outcomes = append(outcomes, Outcome{Kind: Enqueued, PostID: item.PostID, Err: err})
			continue
		}
		outcomes = append(outcomes, Outcome{Kind: Enqueued, PostID: item.PostID, JobID: jobID})
	}
	return outcomes
}

// ====================== Degraded (direct) mode ======================

type directDispatcher struct {
	exec        *Executor
	concurrency int
	batchDelay  time.Duration
	log         zerolog.Logger
}

func NewDirectDispatcher(exec *Executor, concurrency int, batchDelay time.Duration, log zerolog.Logger) Dispatcher {
	if concurrency < 1 {
		concurrency = 1
	}
	return &directDispatcher{exec: exec, concurrency: concurrency, batchDelay: batchDelay, log: log}
}

// Dispatch delivers in-process: batches of `concurrency` posts run
// concurrently, the whole batch settles before the next one starts, and a
// fixed pause between batches keeps us under the channel's rate limit.
func (d *directDispatcher) Dispatch(ctx context.Context, due []model.DuePost) []Outcome {
	outcomes := make([]Outcome, len(due))

	for start := 0; start < len(due); start += d.concurrency {
		end := start + d.concurrency
		if end > len(due) {
			end = len(due)
		}

		var wg sync.WaitGroup
		for i := start; i < end; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				item := due[i]
				err := d.exec.Deliver(ctx, item)
				outcomes[i] = Outcome{Kind: ExecutedDirect, PostID: item.PostID, Err: err}
			}(i)
		}
		wg.Wait()

		if end < len(due) {
			if !sleepCtx(ctx, d.batchDelay) {
				// stopped mid-run: report the rest as not attempted
				for i := end; i < len(due); i++ {
					outcomes[i] = Outcome{Kind: ExecutedDirect, PostID: due[i].PostID, Err: ctx.Err()}
				}
				return outcomes
			}
		}
	}
	return outcomes
}

// sleepCtx waits for d unless the context ends first.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	tmr := time.NewTimer(d)
	defer tmr.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-tmr.C:
		return true
	}
}
