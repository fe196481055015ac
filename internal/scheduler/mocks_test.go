package scheduler_test

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/brandcasthq/brandcast-backend/internal/model"
)

// fakeStore keeps due posts in memory and drops them once delivered, the
// same way the real query stops selecting delivered rows.
type fakeStore struct {
	mu        sync.Mutex
	due       []model.DuePost
	delivered map[int]time.Time

	findCalls int32
	inFlight  int32
	overlap   int32
	findDelay time.Duration
	findErr   error
	markErr   error
}

func newFakeStore(due ...model.DuePost) *fakeStore {
	return &fakeStore{due: due, delivered: map[int]time.Time{}}
}

func (s *fakeStore) FindDuePosts(now time.Time, limit int) ([]model.DuePost, error) {
	if atomic.AddInt32(&s.inFlight, 1) > 1 {
		atomic.AddInt32(&s.overlap, 1)
	}
	defer atomic.AddInt32(&s.inFlight, -1)
	atomic.AddInt32(&s.findCalls, 1)

	if s.findDelay > 0 {
		time.Sleep(s.findDelay)
	}
	if s.findErr != nil {
		return nil, s.findErr
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	out := []model.DuePost{}
	for _, d := range s.due {
		if _, ok := s.delivered[d.PostID]; ok {
			continue
		}
		out = append(out, d)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (s *fakeStore) MarkDelivered(id int, at time.Time) error {
	if s.markErr != nil {
		return s.markErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.delivered[id] = at
	return nil
}

func (s *fakeStore) deliveredCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.delivered)
}

func (s *fakeStore) isDelivered(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.delivered[id]
	return ok
}

type sendRecord struct {
	ChatID int64
	Text   string
	At     time.Time
}

// fakeClient records every send and can be told to fail specific chats.
type fakeClient struct {
	mu       sync.Mutex
	sent     []sendRecord
	failChat map[int64]error
}

func newFakeClient() *fakeClient {
	return &fakeClient{failChat: map[int64]error{}}
}

func (c *fakeClient) SendPost(ctx context.Context, chatID int64, text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err, ok := c.failChat[chatID]; ok {
		return err
	}
	c.sent = append(c.sent, sendRecord{ChatID: chatID, Text: text, At: time.Now()})
	return nil
}

func (c *fakeClient) sends() []sendRecord {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]sendRecord, len(c.sent))
	copy(out, c.sent)
	return out
}

// fakeQueue pretends to be the durable broker.
type fakeQueue struct {
	mu        sync.Mutex
	available bool
	published []int
	pubErr    map[int]error
}

func (q *fakeQueue) Available() bool { return q.available }

func (q *fakeQueue) Publish(postID int) (string, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if err, ok := q.pubErr[postID]; ok {
		return "", err
	}
	q.published = append(q.published, postID)
	return fmt.Sprintf("job-%d", postID), nil
}

func (q *fakeQueue) publishedIDs() []int {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]int, len(q.published))
	copy(out, q.published)
	return out
}

func timeNow() time.Time { return time.Now() }

func duePost(id int) model.DuePost {
	return model.DuePost{
		PostID:    id,
		ChatID:    int64(id),
		Body:      fmt.Sprintf("post %d", id),
		Platform:  model.PlatformTwitter,
		BrandName: "Acme",
	}
}
