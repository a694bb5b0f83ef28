package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/muskan-fatima97/ClassyShop/internal/repository"
	"github.com/muskan-fatima97/ClassyShop/internal/usecase"
	"go.uber.org/zap"
)

type ProductHandler struct {
	products *usecase.ProductUsecase
	logger   *zap.Logger
}

func NewProductHandler(products *usecase.ProductUsecase, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{
		products: products,
		logger:   logger.Named("ProductHandler"),
	}
}

func paging(r *http.Request) (int, int) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	return page, limit
}

// handleReferenceError reports an unresolved category/brand reference on
// a product write as a client error rather than a 404.
func (h *ProductHandler) handleReferenceError(w http.ResponseWriter, err error) bool {
	switch {
	case errors.Is(err, repository.ErrCategoryNotFound):
		writeMessage(w, http.StatusBadRequest, "Category not found")
	case errors.Is(err, repository.ErrBrandNotFound):
		writeMessage(w, http.StatusBadRequest, "Brand not found")
	default:
		return false
	}
	return true
}

type productRequest struct {
	Name        string   `json:"name"`
	Category    string   `json:"category"`
	Brand       string   `json:"brand"`
	Price       float64  `json:"price"`
	Quantity    int      `json:"quantity"`
	Images      []string `json:"images"`
	Description string   `json:"description"`
}

func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	product, err := h.products.Create(r.Context(), usecase.CreateProductInput{
		Name:        req.Name,
		Category:    req.Category,
		Brand:       req.Brand,
		Price:       req.Price,
		Quantity:    req.Quantity,
		Images:      req.Images,
		Description: req.Description,
	})
	if err != nil {
		if !h.handleReferenceError(w, err) {
			handleError(w, h.logger, err)
		}
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Product created successfully",
		"product": product,
	})
}

func (h *ProductHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	page, limit := paging(r)
	result, _, err := h.products.GetAll(r.Context(), page, limit)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *ProductHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	product, _, err := h.products.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"product": product})
}

func (h *ProductHandler) Search(w http.ResponseWriter, r *http.Request) {
	page, limit := paging(r)
	query := strings.TrimSpace(r.URL.Query().Get("q"))

	result, err := h.products.Search(r.Context(), query, page, limit)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *ProductHandler) GetByCategory(w http.ResponseWriter, r *http.Request) {
	page, limit := paging(r)
	result, err := h.products.GetByCategory(r.Context(), chi.URLParam(r, "name"), page, limit)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *ProductHandler) GetByBrand(w http.ResponseWriter, r *http.Request) {
	page, limit := paging(r)
	result, err := h.products.GetByBrand(r.Context(), chi.URLParam(r, "name"), page, limit)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

type updateProductRequest struct {
	Name        *string  `json:"name"`
	Category    *string  `json:"category"`
	Brand       *string  `json:"brand"`
	Price       *float64 `json:"price"`
	Quantity    *int     `json:"quantity"`
	Images      []string `json:"images"`
	Description *string  `json:"description"`
}

func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req updateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	updated, err := h.products.Update(r.Context(), chi.URLParam(r, "id"), usecase.UpdateProductInput{
		Name:        req.Name,
		Category:    req.Category,
		Brand:       req.Brand,
		Price:       req.Price,
		Quantity:    req.Quantity,
		Images:      req.Images,
		Description: req.Description,
	})
	if err != nil {
		if !h.handleReferenceError(w, err) {
			handleError(w, h.logger, err)
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Product updated successfully",
		"updated": updated,
	})
}

func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.products.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleError(w, h.logger, err)
		return
	}
	writeMessage(w, http.StatusOK, "Product deleted successfully")
}
