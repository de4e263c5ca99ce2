package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/gosimple/slug"

	"adventure-us/data"
	"adventure-us/models"
	"adventure-us/utils/errors"
)

// SeedCategories parses the embedded catalog and fills in slugs.
func SeedCategories() ([]models.Category, error) {
	var categories []models.Category
	if err := json.Unmarshal(data.Categories, &categories); err != nil {
		return nil, fmt.Errorf("failed to decode category catalog: %w", err)
	}
	for i := range categories {
		categories[i].Slug = slug.Make(categories[i].Name)
	}
	return categories, nil
}

// CategoryService answers category selector lookups.
type CategoryService struct {
	store CategoryStore
}

func NewCategoryService(store CategoryStore) *CategoryService {
	return &CategoryService{store: store}
}

func (s *CategoryService) List(ctx context.Context) ([]models.Category, error) {
	return s.store.List(ctx)
}

// Resolve finds a category by numeric id, slug or display name.
func (s *CategoryService) Resolve(ctx context.Context, ref string) (models.Category, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return models.Category{}, errors.ErrInvalidInput.WithDetails("empty category")
	}

	var (
		c   models.Category
		ok  bool
		err error
	)
	if id, convErr := strconv.Atoi(ref); convErr == nil {
		c, ok, err = s.store.ByID(ctx, id)
	} else {
		c, ok, err = s.store.BySlug(ctx, slug.Make(ref))
	}
	if err != nil {
		return models.Category{}, errors.Wrap(err, "CATEGORY_LOOKUP_FAILED", "Failed to look up category", errors.ErrInternal.Status)
	}
	if !ok {
		return models.Category{}, errors.ErrInvalidInput.WithDetails("unknown category %q", ref)
	}
	return c, nil
}
