package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/muskan-fatima97/ClassyShop/internal/repository"
	"github.com/muskan-fatima97/ClassyShop/internal/usecase"
	"go.uber.org/zap"
)

type CategoryHandler struct {
	categories *usecase.CategoryUsecase
	logger     *zap.Logger
}

func NewCategoryHandler(categories *usecase.CategoryUsecase, logger *zap.Logger) *CategoryHandler {
	return &CategoryHandler{
		categories: categories,
		logger:     logger.Named("CategoryHandler"),
	}
}

type categoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Gender      string `json:"gender"`
}

func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	category, err := h.categories.Create(r.Context(), usecase.CreateCategoryInput{
		Name:        req.Name,
		Description: req.Description,
		Gender:      req.Gender,
	})
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message":  "Category created successfully",
		"category": category,
	})
}

func (h *CategoryHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	categories, fromCache, err := h.categories.List(r.Context())
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	source := "db"
	if fromCache {
		source = "cache"
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"categories": categories,
		"source":     source,
	})
}

type updateCategoryRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Gender      *string `json:"gender"`
}

func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req updateCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	updated, err := h.categories.Update(r.Context(), chi.URLParam(r, "id"), usecase.UpdateCategoryInput{
		Name:        req.Name,
		Description: req.Description,
		Gender:      req.Gender,
	})
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Category updated successfully",
		"updated": updated,
	})
}

func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.categories.Delete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		// Delete reports a missing category as a client error, not
		// a 404, matching the storefront's existing contract.
		if errors.Is(err, repository.ErrCategoryNotFound) {
			writeMessage(w, http.StatusBadRequest, "Category not found")
			return
		}
		handleError(w, h.logger, err)
		return
	}

	writeMessage(w, http.StatusOK, "Category deleted successfully")
}
