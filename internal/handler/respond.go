package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/muskan-fatima97/ClassyShop/internal/repository"
	"github.com/muskan-fatima97/ClassyShop/internal/usecase"
	"go.uber.org/zap"
)

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}

// handleError maps domain errors onto the wire contract. Anything not
// in the table is logged and reported as a generic 500.
func handleError(w http.ResponseWriter, logger *zap.Logger, err error) {
	var validationErr *usecase.ValidationError
	switch {
	case errors.As(err, &validationErr):
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{"errors": validationErr.Errors})
	case errors.Is(err, repository.ErrDuplicateEmail):
		writeMessage(w, http.StatusBadRequest, "Email already exist")
	case errors.Is(err, usecase.ErrNotRegistered):
		writeMessage(w, http.StatusNotFound, "You are not registered")
	case errors.Is(err, usecase.ErrInvalidPassword):
		writeMessage(w, http.StatusUnauthorized, "Invalid password")
	case errors.Is(err, usecase.ErrInvalidResetToken):
		writeMessage(w, http.StatusBadRequest, "Invalid or expired token")
	case errors.Is(err, usecase.ErrEmptyCart):
		writeMessage(w, http.StatusBadRequest, "Cart is empty")
	case errors.Is(err, repository.ErrCategoryAlreadyExists):
		writeMessage(w, http.StatusBadRequest, "Category already exists")
	case errors.Is(err, repository.ErrBrandAlreadyExists):
		writeMessage(w, http.StatusBadRequest, "Brand already exists")
	case errors.Is(err, repository.ErrProductAlreadyExists):
		writeMessage(w, http.StatusBadRequest, "Product already exists")
	case errors.Is(err, repository.ErrCategoryNotFound):
		writeMessage(w, http.StatusNotFound, "Category not found")
	case errors.Is(err, repository.ErrBrandNotFound):
		writeMessage(w, http.StatusNotFound, "Brand not found")
	case errors.Is(err, repository.ErrProductNotFound):
		writeMessage(w, http.StatusNotFound, "Product not found")
	case errors.Is(err, repository.ErrOrderNotFound):
		writeMessage(w, http.StatusNotFound, "Order not found")
	case errors.Is(err, repository.ErrUserNotFound):
		writeMessage(w, http.StatusNotFound, "User not found")
	default:
		logger.Error("Request failed with unexpected error", zap.Error(err))
		writeMessage(w, http.StatusInternalServerError, "Internal server error")
	}
}
