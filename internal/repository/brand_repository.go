package repository

import (
	"database/sql"
	"time"

	appErrors "github.com/brandcasthq/brandcast-backend/internal/errors"
	"github.com/brandcasthq/brandcast-backend/internal/model"
)

type BrandRepositoryInterface interface {
	Create(b *model.Brand) error
	GetByID(id int) (*model.Brand, error)
	ListByUser(userID int) ([]model.Brand, error)
	Update(b *model.Brand) error
	Delete(id, userID int) error
}

type BrandRepository struct {
	DB *sql.DB
}

func (r *BrandRepository) Create(b *model.Brand) error {
	b.CreatedAt = time.Now()
	query := `
        INSERT INTO brands (user_id, name, tone, description, created_at)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id
    `
	return r.DB.QueryRow(query, b.UserID, b.Name, b.Tone, b.Description, b.CreatedAt).Scan(&b.ID)
}

func (r *BrandRepository) GetByID(id int) (*model.Brand, error) {
	query := `
        SELECT id, user_id, name, tone, description, created_at
        FROM brands WHERE id=$1
    `
	var b model.Brand
	err := r.DB.QueryRow(query, id).Scan(&b.ID, &b.UserID, &b.Name, &b.Tone, &b.Description, &b.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.NewBrandNotFound(id)
		}
		return nil, err
	}
	return &b, nil
}

func (r *BrandRepository) ListByUser(userID int) ([]model.Brand, error) {
	query := `
        SELECT id, user_id, name, tone, description, created_at
        FROM brands WHERE user_id=$1 ORDER BY id
    `
	rows, err := r.DB.Query(query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	brands := []model.Brand{}
	for rows.Next() {
		var b model.Brand
		if err := rows.Scan(&b.ID, &b.UserID, &b.Name, &b.Tone, &b.Description, &b.CreatedAt); err != nil {
			return nil, err
		}
		brands = append(brands, b)
	}
	return brands, rows.Err()
}

func (r *BrandRepository) Update(b *model.Brand) error {
	query := `
        UPDATE brands
        SET name=$1, tone=$2, description=$3
        WHERE id=$4 AND user_id=$5
    `
	_, err := r.DB.Exec(query, b.Name, b.Tone, b.Description, b.ID, b.UserID)
	return err
}

func (r *BrandRepository) Delete(id, userID int) error {
	query := `DELETE FROM brands WHERE id=$1 AND user_id=$2`
	_, err := r.DB.Exec(query, id, userID)
	return err
}

var _ BrandRepositoryInterface = (*BrandRepository)(nil)
