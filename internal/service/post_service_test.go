// internal/service/post_service_test.go
package service

import (
	"testing"
	"time"

	"github.com/brandcasthq/brandcast-backend/internal/model"
)

func newPostService() (*PostService, *mockPostRepo, *mockBrandRepo) {
	posts := newMockPostRepo()
	brands := newMockBrandRepo(
		&model.Brand{ID: 1, UserID: 10, Name: "Acme"},
		&model.Brand{ID: 2, UserID: 99, Name: "Someone Else's"},
	)
	return &PostService{PostRepo: posts, BrandRepo: brands}, posts, brands
}

func TestCreatePostDefaultsToDraft(t *testing.T) {
	svc, _, _ := newPostService()

	p, err := svc.CreatePost(10, CreatePostInput{BrandID: 1, Body: "hello", Platform: "twitter"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Status != model.StatusDraft {
		t.Errorf("expected draft status, got %s", p.Status)
	}
	if p.ID == 0 {
		t.Error("expected an assigned id")
	}
}

func TestCreatePostWithScheduleIsScheduled(t *testing.T) {
	svc, _, _ := newPostService()

	at := time.Now().Add(time.Hour)
	p, err := svc.CreatePost(10, CreatePostInput{BrandID: 1, Body: "hello", Platform: "twitter", ScheduledFor: &at})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Status != model.StatusScheduled {
		t.Errorf("expected scheduled status, got %s", p.Status)
	}
	if p.ScheduledFor == nil || !p.ScheduledFor.Equal(at) {
		t.Errorf("expected scheduled_for %v, got %v", at, p.ScheduledFor)
	}
}

func TestCreatePostValidation(t *testing.T) {
	svc, _, _ := newPostService()

	cases := []struct {
		name string
		in   CreatePostInput
	}{
		{"empty body", CreatePostInput{BrandID: 1, Body: "   ", Platform: "twitter"}},
		{"unknown platform", CreatePostInput{BrandID: 1, Body: "x", Platform: "myspace"}},
		{"missing brand", CreatePostInput{BrandID: 404, Body: "x", Platform: "twitter"}},
		{"foreign brand", CreatePostInput{BrandID: 2, Body: "x", Platform: "twitter"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.CreatePost(10, tc.in); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestListPostsPagination(t *testing.T) {
	svc, posts, _ := newPostService()
	posts.listTotal = 45

	_, pagination, err := svc.ListPosts(10, 2, 20, "", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pagination["page"] != 2 {
		t.Errorf("expected page 2, got %d", pagination["page"])
	}
	if pagination["total_count"] != 45 {
		t.Errorf("expected total_count 45, got %d", pagination["total_count"])
	}
	if pagination["total_pages"] != 3 {
		t.Errorf("expected total_pages 3, got %d", pagination["total_pages"])
	}
}

func TestListPostsClampsPageSize(t *testing.T) {
	svc, _, _ := newPostService()

	_, pagination, err := svc.ListPosts(10, 0, 500, "", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pagination["page"] != 1 {
		t.Errorf("expected page clamped to 1, got %d", pagination["page"])
	}
	if pagination["page_size"] != 100 {
		t.Errorf("expected page_size clamped to 100, got %d", pagination["page_size"])
	}
}

func TestListPostsRejectsUnknownFilters(t *testing.T) {
	svc, _, _ := newPostService()

	if _, _, err := svc.ListPosts(10, 1, 20, "archived", ""); err == nil {
		t.Error("expected an error for unknown status")
	}
	if _, _, err := svc.ListPosts(10, 1, 20, "", "myspace"); err == nil {
		t.Error("expected an error for unknown platform")
	}
}

func TestGetPostChecksOwnership(t *testing.T) {
	svc, _, _ := newPostService()
	p, _ := svc.CreatePost(10, CreatePostInput{BrandID: 1, Body: "mine", Platform: "twitter"})

	if _, err := svc.GetPost(p.ID, 11); err == nil {
		t.Error("expected an error for another user's post")
	}
	got, err := svc.GetPost(p.ID, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Body != "mine" {
		t.Errorf("expected body %q, got %q", "mine", got.Body)
	}
}

func TestUpdatePublishedPostRejected(t *testing.T) {
	svc, posts, _ := newPostService()
	p, _ := svc.CreatePost(10, CreatePostInput{BrandID: 1, Body: "hello", Platform: "twitter"})
	posts.posts[p.ID].Status = model.StatusPublished

	body := "edited"
	if _, err := svc.UpdatePost(p.ID, 10, UpdatePostInput{Body: &body}); err == nil {
		t.Error("expected an error editing a published post")
	}
	if posts.posts[p.ID].Body != "hello" {
		t.Errorf("expected body to stay untouched, got %q", posts.posts[p.ID].Body)
	}
}

func TestSchedulePostAcceptsPastTimes(t *testing.T) {
	svc, posts, _ := newPostService()
	p, _ := svc.CreatePost(10, CreatePostInput{BrandID: 1, Body: "hello", Platform: "twitter"})

	at := time.Now().Add(-time.Hour)
	got, err := svc.SchedulePost(p.ID, 10, at)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Status != model.StatusScheduled {
		t.Errorf("expected scheduled status, got %s", got.Status)
	}
	if stored, ok := posts.scheduled[p.ID]; !ok || !stored.Equal(at) {
		t.Errorf("expected schedule persisted at %v, got %v", at, stored)
	}
}

func TestDeletePostChecksOwnership(t *testing.T) {
	svc, posts, _ := newPostService()
	p, _ := svc.CreatePost(10, CreatePostInput{BrandID: 1, Body: "hello", Platform: "twitter"})

	if err := svc.DeletePost(p.ID, 11); err == nil {
		t.Error("expected an error deleting another user's post")
	}
	if err := svc.DeletePost(p.ID, 10); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := posts.posts[p.ID]; ok {
		t.Error("expected post removed")
	}
}
