// internal/service/post_service.go
package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/brandcasthq/brandcast-backend/internal/model"
	"github.com/brandcasthq/brandcast-backend/internal/repository"
)

type PostService struct {
	PostRepo  repository.PostRepositoryInterface
	BrandRepo repository.BrandRepositoryInterface
}

type CreatePostInput struct {
	BrandID      int        `json:"brand_id"`
	Body         string     `json:"body"`
	Platform     string     `json:"platform"`
	ScheduledFor *time.Time `json:"scheduled_for,omitempty"`
}

func (s *PostService) CreatePost(userID int, in CreatePostInput) (*model.Post, error) {
	if strings.TrimSpace(in.Body) == "" {
		return nil, fmt.Errorf("post body cannot be empty")
	}
	if !model.ValidPlatform(in.Platform) {
		return nil, fmt.Errorf("unknown platform: %s", in.Platform)
	}

	// brand must exist and belong to the caller
	brand, err := s.BrandRepo.GetByID(in.BrandID)
	if err != nil {
		return nil, err
	}
	if brand.UserID != userID {
		return nil, fmt.Errorf("brand %d does not belong to user", in.BrandID)
	}

	p := &model.Post{
		UserID:       userID,
		BrandID:      in.BrandID,
		Body:         in.Body,
		Platform:     in.Platform,
		Status:       model.StatusDraft,
		ScheduledFor: in.ScheduledFor,
	}
	if in.ScheduledFor != nil {
		p.Status = model.StatusScheduled
	}

	if err := s.PostRepo.Create(p); err != nil {
		return nil, err
	}
	return p, nil
}

// ListPosts fetches a user's posts with pagination and optional filters.
func (s *PostService) ListPosts(userID, page, pageSize int, status, platform string) ([]*model.Post, map[string]int, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}
	offset := (page - 1) * pageSize

	if status != "" && !model.ValidStatus(status) {
		return nil, nil, fmt.Errorf("unknown status: %s", status)
	}
	if platform != "" && !model.ValidPlatform(platform) {
		return nil, nil, fmt.Errorf("unknown platform: %s", platform)
	}

	posts, total, err := s.PostRepo.ListByUser(userID, offset, pageSize, status, platform)
	if err != nil {
		return nil, nil, err
	}

	totalPages := (total + pageSize - 1) / pageSize
	pagination := map[string]int{
		"page":        page,
		"page_size":   pageSize,
		"total_count": total,
		"total_pages": totalPages,
	}
	return posts, pagination, nil
}

func (s *PostService) GetPost(id, userID int) (*model.Post, error) {
	p, err := s.PostRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p.UserID != userID {
		return nil, fmt.Errorf("post %d does not belong to user", id)
	}
	return p, nil
}

type UpdatePostInput struct {
	Body     *string `json:"body"`
	Platform *string `json:"platform"`
	BrandID  *int    `json:"brand_id"`
}

func (s *PostService) UpdatePost(id, userID int, in UpdatePostInput) (*model.Post, error) {
	p, err := s.GetPost(id, userID)
	if err != nil {
		return nil, err
	}
	if p.Status == model.StatusPublished {
		return nil, fmt.Errorf("published posts cannot be edited")
	}

	if in.Body != nil {
		if strings.TrimSpace(*in.Body) == "" {
			return nil, fmt.Errorf("post body cannot be empty")
		}
		p.Body = *in.Body
	}
	if in.Platform != nil {
		if !model.ValidPlatform(*in.Platform) {
			return nil, fmt.Errorf("unknown platform: %s", *in.Platform)
		}
		p.Platform = *in.Platform
	}
	if in.BrandID != nil {
		brand, err := s.BrandRepo.GetByID(*in.BrandID)
		if err != nil {
			return nil, err
		}
		if brand.UserID != userID {
			return nil, fmt.Errorf("brand %d does not belong to user", *in.BrandID)
		}
		p.BrandID = *in.BrandID
	}

	if err := s.PostRepo.Update(p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *PostService) DeletePost(id, userID int) error {
	if _, err := s.GetPost(id, userID); err != nil {
		return err
	}
	return s.PostRepo.Delete(id, userID)
}

// SchedulePost moves a draft (or re-schedules a scheduled post) to be
// delivered at the given time. Past times are accepted: the next scheduler
// cycle simply picks the post up immediately.
func (s *PostService) SchedulePost(id, userID int, at time.Time) (*model.Post, error) {
	p, err := s.GetPost(id, userID)
	if err != nil {
		return nil, err
	}
	if p.Status == model.StatusPublished {
		return nil, fmt.Errorf("published posts cannot be rescheduled")
	}

	if err := s.PostRepo.Schedule(id, userID, at); err != nil {
		return nil, err
	}

	p.Status = model.StatusScheduled
	p.ScheduledFor = &at
	return p, nil
}
