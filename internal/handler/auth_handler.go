package handler

import (
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/muskan-fatima97/ClassyShop/internal/usecase"
	"go.uber.org/zap"
)

type AuthHandler struct {
	auth   *usecase.AuthUsecase
	logger *zap.Logger
}

func NewAuthHandler(auth *usecase.AuthUsecase, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		auth:   auth,
		logger: logger.Named("AuthHandler"),
	}
}

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Gender   string `json:"gender"`
	Password string `json:"password"`
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	_, err := h.auth.Signup(r.Context(), usecase.SignupInput{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Gender:   req.Gender,
		Password: req.Password,
	})
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	writeMessage(w, http.StatusOK, "User registered successfully")
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	token, user, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Login successful",
		"user": map[string]string{
			"email": user.Email,
			"role":  user.Role,
		},
		"token": token,
	})
}

type forgetPasswordRequest struct {
	Email string `json:"email"`
}

func (h *AuthHandler) ForgetPassword(w http.ResponseWriter, r *http.Request) {
	var req forgetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.auth.ForgetPassword(r.Context(), req.Email); err != nil {
		handleError(w, h.logger, err)
		return
	}

	writeMessage(w, http.StatusOK, "Password reset link sent to your email")
}

type resetPasswordRequest struct {
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")
	if decoded, err := url.QueryUnescape(token); err == nil {
		token = decoded
	}

	var req resetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.auth.ResetPassword(r.Context(), token, req.Password, req.ConfirmPassword); err != nil {
		handleError(w, h.logger, err)
		return
	}

	writeMessage(w, http.StatusOK, "Password reset successful")
}

// Logout is a stateless acknowledgement; tokens live on the client.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	writeMessage(w, http.StatusOK, "Logout successful. Please remove token from client.")
}
