package repository

import (
	"database/sql"
	"time"

	sq "github.com/Masterminds/squirrel"

	appErrors "github.com/brandcasthq/brandcast-backend/internal/errors"
	"github.com/brandcasthq/brandcast-backend/internal/model"
)

type PostRepositoryInterface interface {
	// Post CRUD
	Create(p *model.Post) error
	GetByID(id int) (*model.Post, error)
	ListByUser(userID, offset, limit int, status, platform string) ([]*model.Post, int, error)
	Update(p *model.Post) error
	Delete(id, userID int) error
	Schedule(id, userID int, at time.Time) error

	// Delivery
	FindDuePosts(now time.Time, limit int) ([]model.DuePost, error)
	GetDeliverySnapshot(postID int) (*model.DuePost, error)
	MarkDelivered(id int, at time.Time) error
}

type PostRepository struct {
	DB *sql.DB
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// ====================== Post CRUD ======================

func (r *PostRepository) Create(p *model.Post) error {
	p.CreatedAt = time.Now()
	if p.Status == "" {
		p.Status = model.StatusDraft
	}
	query := `
        INSERT INTO posts (user_id, brand_id, body, platform, status, scheduled_for, delivered, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, false, $7)
        RETURNING id
    `
	return r.DB.QueryRow(query, p.UserID, p.BrandID, p.Body, p.Platform, p.Status, p.ScheduledFor, p.CreatedAt).Scan(&p.ID)
}

func (r *PostRepository) GetByID(id int) (*model.Post, error) {
	query := `
        SELECT id, user_id, brand_id, body, platform, status, scheduled_for, delivered, delivered_at, created_at, updated_at
        FROM posts WHERE id=$1
    `
	var p model.Post
	err := r.DB.QueryRow(query, id).Scan(
		&p.ID, &p.UserID, &p.BrandID, &p.Body, &p.Platform, &p.Status,
		&p.ScheduledFor, &p.Delivered, &p.DeliveredAt, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.NewPostNotFound(id)
		}
		return nil, err
	}
	return &p, nil
}

func (r *PostRepository) ListByUser(userID, offset, limit int, status, platform string) ([]*model.Post, int, error) {
	base := psql.Select(
		"id", "user_id", "brand_id", "body", "platform", "status",
		"scheduled_for", "delivered", "delivered_at", "created_at", "updated_at",
	).From("posts").Where(sq.Eq{"user_id": userID})

	count := psql.Select("COUNT(*)").From("posts").Where(sq.Eq{"user_id": userID})

	if status != "" {
		base = base.Where(sq.Eq{"status": status})
		count = count.Where(sq.Eq{"status": status})
	}
	if platform != "" {
		base = base.Where(sq.Eq{"platform": platform})
		count = count.Where(sq.Eq{"platform": platform})
	}

	query, args, err := base.OrderBy("id DESC").Limit(uint64(limit)).Offset(uint64(offset)).ToSql()
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	posts := []*model.Post{}
	for rows.Next() {
		p := &model.Post{}
		if err := rows.Scan(
			&p.ID, &p.UserID, &p.BrandID, &p.Body, &p.Platform, &p.Status,
			&p.ScheduledFor, &p.Delivered, &p.DeliveredAt, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, 0, err
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	countQuery, countArgs, err := count.ToSql()
	if err != nil {
		return nil, 0, err
	}
	var total int
	if err := r.DB.QueryRow(countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}

	return posts, total, nil
}

func (r *PostRepository) Update(p *model.Post) error {
	query := `
        UPDATE posts
        SET body=$1, platform=$2, brand_id=$3, status=$4, scheduled_for=$5, updated_at=NOW()
        WHERE id=$6 AND user_id=$7
    `
	_, err := r.DB.Exec(query, p.Body, p.Platform, p.BrandID, p.Status, p.ScheduledFor, p.ID, p.UserID)
	return err
}

func (r *PostRepository) Delete(id, userID int) error {
	query := `DELETE FROM posts WHERE id=$1 AND user_id=$2`
	_, err := r.DB.Exec(query, id, userID)
	return err
}

// Schedule moves a post to the scheduled state with a delivery time.
func (r *PostRepository) Schedule(id, userID int, at time.Time) error {
	query := `
        UPDATE posts
        SET status=$1, scheduled_for=$2, updated_at=NOW()
        WHERE id=$3 AND user_id=$4
    `
	_, err := r.DB.Exec(query, model.StatusScheduled, at, id, userID)
	return err
}

// ====================== Delivery ======================

// FindDuePosts returns up to limit scheduled, undelivered posts whose time
// has passed and whose owner has Telegram linked and enabled. Ordered by
// scheduled_for so the oldest backlog drains first.
func (r *PostRepository) FindDuePosts(now time.Time, limit int) ([]model.DuePost, error) {
	query := `
        SELECT p.id, u.telegram_chat_id, p.body, p.platform, b.name
        FROM posts p
        JOIN users u ON u.id = p.user_id
        JOIN brands b ON b.id = p.brand_id
        WHERE p.status = $1
          AND p.scheduled_for <= $2
          AND p.delivered = false
          AND u.telegram_enabled = true
          AND u.telegram_chat_id IS NOT NULL
        ORDER BY p.scheduled_for ASC, p.id ASC
        LIMIT $3
    `
	rows, err := r.DB.Query(query, model.StatusScheduled, now, limit)
	if err != nil {
		return nil, appErrors.NewStorageError("find due posts", err)
	}
	defer rows.Close()

	due := []model.DuePost{}
	for rows.Next() {
		var d model.DuePost
		if err := rows.Scan(&d.PostID, &d.ChatID, &d.Body, &d.Platform, &d.BrandName); err != nil {
			return nil, appErrors.NewStorageError("scan due post", err)
		}
		due = append(due, d)
	}
	if err := rows.Err(); err != nil {
		return nil, appErrors.NewStorageError("iterate due posts", err)
	}
	return due, nil
}

// GetDeliverySnapshot loads one post for the queue worker, re-checking
// eligibility so a redelivered job for an already-sent post becomes a
// no-op. Returns nil when the post is no longer deliverable.
func (r *PostRepository) GetDeliverySnapshot(postID int) (*model.DuePost, error) {
	query := `
        SELECT p.id, u.telegram_chat_id, p.body, p.platform, b.name
        FROM posts p
        JOIN users u ON u.id = p.user_id
        JOIN brands b ON b.id = p.brand_id
        WHERE p.id = $1
          AND p.status = $2
          AND p.delivered = false
          AND u.telegram_enabled = true
          AND u.telegram_chat_id IS NOT NULL
    `
	var d model.DuePost
	err := r.DB.QueryRow(query, postID, model.StatusScheduled).Scan(&d.PostID, &d.ChatID, &d.Body, &d.Platform, &d.BrandName)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, appErrors.NewStorageError("delivery snapshot", err)
	}
	return &d, nil
}

// MarkDelivered flips the delivered flag and publishes the post in one
// single-row update.
func (r *PostRepository) MarkDelivered(id int, at time.Time) error {
	query := `
        UPDATE posts
        SET delivered=true, delivered_at=$1, status=$2, updated_at=NOW()
        WHERE id=$3
    `
	if _, err := r.DB.Exec(query, at, model.StatusPublished, id); err != nil {
		return appErrors.NewStorageError("mark delivered", err)
	}
	return nil
}

var _ PostRepositoryInterface = (*PostRepository)(nil)
