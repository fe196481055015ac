// internal/controller/brand_controller.go
package controller

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	appErrors "github.com/brandcasthq/brandcast-backend/internal/errors"
	"github.com/brandcasthq/brandcast-backend/internal/model"
	"github.com/brandcasthq/brandcast-backend/internal/repository"
)

type BrandController struct {
	BrandRepo repository.BrandRepositoryInterface
}

func (c *BrandController) CreateBrand(w http.ResponseWriter, r *http.Request) {
	user := CurrentUser(r)

	var body struct {
		Name        string `json:"name"`
		Tone        string `json:"tone"`
		Description string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	if body.Name == "" {
		http.Error(w, "brand name is required", http.StatusBadRequest)
		return
	}

	brand := &model.Brand{
		UserID:      user.ID,
		Name:        body.Name,
		Tone:        body.Tone,
		Description: body.Description,
	}
	if err := c.BrandRepo.Create(brand); err != nil {
		http.Error(w, "failed to create brand: "+err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, brand)
}

func (c *BrandController) ListBrands(w http.ResponseWriter, r *http.Request) {
	user := CurrentUser(r)

	brands, err := c.BrandRepo.ListByUser(user.ID)
	if err != nil {
		http.Error(w, "failed to fetch brands: "+err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"data": brands})
}

func (c *BrandController) GetBrand(w http.ResponseWriter, r *http.Request) {
	user := CurrentUser(r)

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid brand id", http.StatusBadRequest)
		return
	}

	brand, err := c.BrandRepo.GetByID(id)
	if err != nil {
		var notFound *appErrors.ErrNotFound
		if errors.As(err, &notFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if brand.UserID != user.ID {
		http.Error(w, "brand not found", http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, brand)
}

func (c *BrandController) UpdateBrand(w http.ResponseWriter, r *http.Request) {
	user := CurrentUser(r)

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid brand id", http.StatusBadRequest)
		return
	}

	var body struct {
		Name        string `json:"name"`
		Tone        string `json:"tone"`
		Description string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	brand := &model.Brand{
		ID:          id,
		UserID:      user.ID,
		Name:        body.Name,
		Tone:        body.Tone,
		Description: body.Description,
	}
	if err := c.BrandRepo.Update(brand); err != nil {
		http.Error(w, "failed to update brand: "+err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, brand)
}

func (c *BrandController) DeleteBrand(w http.ResponseWriter, r *http.Request) {
	user := CurrentUser(r)

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid brand id", http.StatusBadRequest)
		return
	}

	if err := c.BrandRepo.Delete(id, user.ID); err != nil {
		http.Error(w, "failed to delete brand: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
