// internal/service/mocks_test.go
package service

import (
	"fmt"
	"time"

	appErrors "github.com/brandcasthq/brandcast-backend/internal/errors"
	"github.com/brandcasthq/brandcast-backend/internal/model"
)

type mockPostRepo struct {
	posts     map[int]*model.Post
	nextID    int
	listTotal int
	listErr   error
	scheduled map[int]time.Time
}

func newMockPostRepo() *mockPostRepo {
	return &mockPostRepo{posts: map[int]*model.Post{}, nextID: 1, scheduled: map[int]time.Time{}}
}

func (m *mockPostRepo) Create(p *model.Post) error {
	p.ID = m.nextID
	m.nextID++
	p.CreatedAt = time.Now()
	cp := *p
	m.posts[p.ID] = &cp
	return nil
}

func (m *mockPostRepo) GetByID(id int) (*model.Post, error) {
	p, ok := m.posts[id]
	if !ok {
		return nil, appErrors.NewPostNotFound(id)
	}
	cp := *p
	return &cp, nil
}

func (m *mockPostRepo) ListByUser(userID, offset, limit int, status, platform string) ([]*model.Post, int, error) {
	if m.listErr != nil {
		return nil, 0, m.listErr
	}
	var out []*model.Post
	for _, p := range m.posts {
		if p.UserID == userID {
			cp := *p
			out = append(out, &cp)
		}
	}
	total := m.listTotal
	if total == 0 {
		total = len(out)
	}
	return out, total, nil
}

func (m *mockPostRepo) Update(p *model.Post) error {
	if _, ok := m.posts[p.ID]; !ok {
		return appErrors.NewPostNotFound(p.ID)
	}
	cp := *p
	m.posts[p.ID] = &cp
	return nil
}

func (m *mockPostRepo) Delete(id, userID int) error {
	p, ok := m.posts[id]
	if !ok || p.UserID != userID {
		return appErrors.NewPostNotFound(id)
	}
	delete(m.posts, id)
	return nil
}

func (m *mockPostRepo) Schedule(id, userID int, at time.Time) error {
	p, ok := m.posts[id]
	if !ok || p.UserID != userID {
		return appErrors.NewPostNotFound(id)
	}
	p.Status = model.StatusScheduled
	p.ScheduledFor = &at
	m.scheduled[id] = at
	return nil
}

func (m *mockPostRepo) FindDuePosts(now time.Time, limit int) ([]model.DuePost, error) {
	return nil, nil
}

func (m *mockPostRepo) GetDeliverySnapshot(postID int) (*model.DuePost, error) {
	return nil, nil
}

func (m *mockPostRepo) MarkDelivered(id int, at time.Time) error {
	return nil
}

type mockBrandRepo struct {
	brands map[int]*model.Brand
}

func newMockBrandRepo(brands ...*model.Brand) *mockBrandRepo {
	m := &mockBrandRepo{brands: map[int]*model.Brand{}}
	for _, b := range brands {
		m.brands[b.ID] = b
	}
	return m
}

func (m *mockBrandRepo) Create(b *model.Brand) error {
	b.ID = len(m.brands) + 1
	m.brands[b.ID] = b
	return nil
}

func (m *mockBrandRepo) GetByID(id int) (*model.Brand, error) {
	b, ok := m.brands[id]
	if !ok {
		return nil, appErrors.NewBrandNotFound(id)
	}
	return b, nil
}

func (m *mockBrandRepo) ListByUser(userID int) ([]model.Brand, error) {
	var out []model.Brand
	for _, b := range m.brands {
		if b.UserID == userID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (m *mockBrandRepo) Update(b *model.Brand) error {
	m.brands[b.ID] = b
	return nil
}

func (m *mockBrandRepo) Delete(id, userID int) error {
	delete(m.brands, id)
	return nil
}

type mockUserRepo struct {
	users    map[int]*model.User
	byEmail  map[string]*model.User
	byKey    map[string]*model.User
	plans    map[int]string
	telegram map[int]struct {
		chatID  *int64
		enabled bool
	}
}

func newMockUserRepo(users ...*model.User) *mockUserRepo {
	m := &mockUserRepo{
		users:   map[int]*model.User{},
		byEmail: map[string]*model.User{},
		byKey:   map[string]*model.User{},
		plans:   map[int]string{},
		telegram: map[int]struct {
			chatID  *int64
			enabled bool
		}{},
	}
	for _, u := range users {
		m.users[u.ID] = u
		m.byEmail[u.Email] = u
		m.byKey[u.APIKey] = u
	}
	return m
}

func (m *mockUserRepo) Create(u *model.User) error {
	u.ID = len(m.users) + 1
	m.users[u.ID] = u
	m.byEmail[u.Email] = u
	m.byKey[u.APIKey] = u
	return nil
}

func (m *mockUserRepo) GetByID(id int) (*model.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, appErrors.NewUserNotFound(id)
	}
	return u, nil
}

func (m *mockUserRepo) GetByAPIKey(key string) (*model.User, error) {
	return m.byKey[key], nil
}

func (m *mockUserRepo) GetByEmail(email string) (*model.User, error) {
	return m.byEmail[email], nil
}

func (m *mockUserRepo) UpdateTelegram(userID int, chatID *int64, enabled bool) error {
	if _, ok := m.users[userID]; !ok {
		return appErrors.NewUserNotFound(userID)
	}
	m.telegram[userID] = struct {
		chatID  *int64
		enabled bool
	}{chatID, enabled}
	return nil
}

func (m *mockUserRepo) UpdatePlan(userID int, plan string) error {
	if _, ok := m.users[userID]; !ok {
		return fmt.Errorf("user %d not found", userID)
	}
	m.plans[userID] = plan
	return nil
}
