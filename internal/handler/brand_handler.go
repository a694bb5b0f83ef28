package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/muskan-fatima97/ClassyShop/internal/usecase"
	"go.uber.org/zap"
)

type BrandHandler struct {
	brands *usecase.BrandUsecase
	logger *zap.Logger
}

func NewBrandHandler(brands *usecase.BrandUsecase, logger *zap.Logger) *BrandHandler {
	return &BrandHandler{
		brands: brands,
		logger: logger.Named("BrandHandler"),
	}
}

type brandRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (h *BrandHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req brandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	brand, err := h.brands.Create(r.Context(), usecase.CreateBrandInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Brand created successfully",
		"brand":   brand,
	})
}

func (h *BrandHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	brands, fromCache, err := h.brands.List(r.Context())
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	source := "db"
	if fromCache {
		source = "cache"
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"brands": brands,
		"source": source,
	})
}

func (h *BrandHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	brand, err := h.brands.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"brand": brand})
}

type updateBrandRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

func (h *BrandHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req updateBrandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	updated, err := h.brands.Update(r.Context(), chi.URLParam(r, "id"), usecase.UpdateBrandInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Brand updated successfully",
		"brand":   updated,
	})
}

func (h *BrandHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.brands.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleError(w, h.logger, err)
		return
	}

	writeMessage(w, http.StatusOK, "Brand deleted successfully")
}
