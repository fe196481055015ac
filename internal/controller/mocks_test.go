// internal/controller/mocks_test.go
package controller

import (
	"time"

	appErrors "github.com/brandcasthq/brandcast-backend/internal/errors"
	"github.com/brandcasthq/brandcast-backend/internal/model"
)

type stubUserRepo struct {
	users map[string]*model.User // keyed by api key
	plans map[int]string
}

func newStubUserRepo(users ...*model.User) *stubUserRepo {
	m := &stubUserRepo{users: map[string]*model.User{}, plans: map[int]string{}}
	for _, u := range users {
		m.users[u.APIKey] = u
	}
	return m
}

func (m *stubUserRepo) Create(u *model.User) error {
	u.ID = len(m.users) + 1
	m.users[u.APIKey] = u
	return nil
}

func (m *stubUserRepo) GetByID(id int) (*model.User, error) {
	for _, u := range m.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, appErrors.NewUserNotFound(id)
}

func (m *stubUserRepo) GetByAPIKey(key string) (*model.User, error) {
	return m.users[key], nil
}

func (m *stubUserRepo) GetByEmail(email string) (*model.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (m *stubUserRepo) UpdateTelegram(userID int, chatID *int64, enabled bool) error {
	return nil
}

func (m *stubUserRepo) UpdatePlan(userID int, plan string) error {
	m.plans[userID] = plan
	return nil
}

type stubBrandRepo struct {
	brands map[int]*model.Brand
}

func newStubBrandRepo(brands ...*model.Brand) *stubBrandRepo {
	m := &stubBrandRepo{brands: map[int]*model.Brand{}}
	for _, b := range brands {
		m.brands[b.ID] = b
	}
	return m
}

func (m *stubBrandRepo) Create(b *model.Brand) error {
	b.ID = len(m.brands) + 1
	m.brands[b.ID] = b
	return nil
}

func (m *stubBrandRepo) GetByID(id int) (*model.Brand, error) {
	b, ok := m.brands[id]
	if !ok {
		return nil, appErrors.NewBrandNotFound(id)
	}
	return b, nil
}

func (m *stubBrandRepo) ListByUser(userID int) ([]model.Brand, error) {
	var out []model.Brand
	for _, b := range m.brands {
		if b.UserID == userID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (m *stubBrandRepo) Update(b *model.Brand) error {
	m.brands[b.ID] = b
	return nil
}

func (m *stubBrandRepo) Delete(id, userID int) error {
	delete(m.brands, id)
	return nil
}

type stubPostRepo struct {
	posts  map[int]*model.Post
	nextID int
}

func newStubPostRepo(posts ...*model.Post) *stubPostRepo {
	m := &stubPostRepo{posts: map[int]*model.Post{}, nextID: 1}
	for _, p := range posts {
		m.posts[p.ID] = p
		if p.ID >= m.nextID {
			m.nextID = p.ID + 1
		}
	}
	return m
}

func (m *stubPostRepo) Create(p *model.Post) error {
	p.ID = m.nextID
	m.nextID++
	m.posts[p.ID] = p
	return nil
}

func (m *stubPostRepo) GetByID(id int) (*model.Post, error) {
	p, ok := m.posts[id]
	if !ok {
		return nil, appErrors.NewPostNotFound(id)
	}
	cp := *p
	return &cp, nil
}

func (m *stubPostRepo) ListByUser(userID, offset, limit int, status, platform string) ([]*model.Post, int, error) {
	var out []*model.Post
	for _, p := range m.posts {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, len(out), nil
}

func (m *stubPostRepo) Update(p *model.Post) error {
	m.posts[p.ID] = p
	return nil
}

func (m *stubPostRepo) Delete(id, userID int) error {
	delete(m.posts, id)
	return nil
}

func (m *stubPostRepo) Schedule(id, userID int, at time.Time) error {
	p, ok := m.posts[id]
	if !ok {
		return appErrors.NewPostNotFound(id)
	}
	p.Status = model.StatusScheduled
	p.ScheduledFor = &at
	return nil
}

func (m *stubPostRepo) FindDuePosts(now time.Time, limit int) ([]model.DuePost, error) {
	return nil, nil
}

func (m *stubPostRepo) GetDeliverySnapshot(postID int) (*model.DuePost, error) {
	return nil, nil
}

func (m *stubPostRepo) MarkDelivered(id int, at time.Time) error {
	return nil
}
