// internal/model/post.go
package model

import "time"

// Post lifecycle statuses.
const (
	StatusDraft     = "draft"
	StatusScheduled = "scheduled"
	StatusPublished = "published"
)

// Target platforms a post can be written for.
const (
	PlatformTwitter   = "twitter"
	PlatformLinkedIn  = "linkedin"
	PlatformInstagram = "instagram"
	PlatformFacebook  = "facebook"
)

func ValidPlatform(p string) bool {
	switch p {
	case PlatformTwitter, PlatformLinkedIn, PlatformInstagram, PlatformFacebook:
		return true
	}
	return false
}

func ValidStatus(s string) bool {
	switch s {
	case StatusDraft, StatusScheduled, StatusPublished:
		return true
	}
	return false
}

type Post struct {
	ID           int        `db:"id" json:"id"`
	UserID       int        `db:"user_id" json:"user_id"`
	BrandID      int        `db:"brand_id" json:"brand_id"`
	Body         string     `db:"body" json:"body"`
	Platform     string     `db:"platform" json:"platform"`
	Status       string     `db:"status" json:"status"` // draft, scheduled, published
	ScheduledFor *time.Time `db:"scheduled_for" json:"scheduled_for,omitempty"`
	Delivered    bool       `db:"delivered" json:"delivered"`
	DeliveredAt  *time.Time `db:"delivered_at" json:"delivered_at,omitempty"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt    *time.Time `db:"updated_at" json:"updated_at,omitempty"`
}

// DuePost is the read snapshot the delivery scheduler works with. It joins
// the post with its owner's Telegram target and the brand label; nothing in
// it is cached across scheduler cycles.
type DuePost struct {
	PostID    int
	ChatID    int64
	Body      string
	Platform  string
	BrandName string
}
