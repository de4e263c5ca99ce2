package handlers

import (
	"net/http"

	"adventure-us/cache"
	"adventure-us/middleware"
	"adventure-us/models"
	"adventure-us/services"
	"adventure-us/utils/errors"
)

type CategoryHandler struct {
	categoryService *services.CategoryService
}

type CategoriesResponse struct {
	Categories []models.Category `json:"categories"`
	Count      int               `json:"count"`
}

func NewCategoryHandler(categoryService *services.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// ListCategories handles GET /categories
func (h *CategoryHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categoryService.List(r.Context())
	if err != nil {
		middleware.WriteError(w, errors.Wrap(err, "CATEGORY_LIST_FAILED", "Failed to list categories", errors.ErrInternal.Status))
		return
	}
	middleware.WriteJSON(w, CategoriesResponse{Categories: categories, Count: len(categories)})
}

type CacheHandler struct {
	memo *cache.Memo
}

func NewCacheHandler(memo *cache.Memo) *CacheHandler {
	return &CacheHandler{memo: memo}
}

// Stats handles GET /cache/stats
func (h *CacheHandler) Stats(w http.ResponseWriter, r *http.Request) {
	middleware.WriteJSON(w, h.memo.Stats())
}

// Reset handles DELETE /cache
func (h *CacheHandler) Reset(w http.ResponseWriter, r *http.Request) {
	if err := h.memo.Reset(r.Context()); err != nil {
		middleware.WriteError(w, errors.Wrap(err, "CACHE_RESET_FAILED", "Failed to reset cache", errors.ErrInternal.Status))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
