package handlers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/pribylovaa/news-reader-api/internal/models"
	"github.com/pribylovaa/news-reader-api/internal/service"
	"github.com/pribylovaa/news-reader-api/internal/transport/http/apierrors"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type authResponse struct {
	UserID uuid.UUID         `json:"userId"`
	Tokens *models.TokenPair `json:"tokens"`
}

// Register — POST /auth/register.
func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeStrict(r, &req); err != nil {
		apierrors.WriteError(w, r, service.ErrInvalidArgument)
		return
	}

	tokens, userID, err := h.Service.RegisterUser(r.Context(), req.Email, req.Password)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, authResponse{UserID: userID, Tokens: tokens})
}

// Login — POST /auth/login.
// Шестая и последующие попытки в окне троттлинга получают 401 без
// проверки пароля.
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeStrict(r, &req); err != nil {
		apierrors.WriteError(w, r, service.ErrInvalidArgument)
		return
	}

	tokens, userID, err := h.Service.LoginUser(r.Context(), req.Email, req.Password)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, authResponse{UserID: userID, Tokens: tokens})
}

// Refresh — POST /auth/refresh: ротация refresh-токена.
func (h *Handlers) Refresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := decodeStrict(r, &req); err != nil || req.RefreshToken == "" {
		apierrors.WriteError(w, r, service.ErrInvalidArgument)
		return
	}

	tokens, userID, err := h.Service.RefreshToken(r.Context(), req.RefreshToken)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, authResponse{UserID: userID, Tokens: tokens})
}

// Logout — POST /auth/logout: отзыв refresh-токена (идемпотентен).
func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := decodeStrict(r, &req); err != nil || req.RefreshToken == "" {
		apierrors.WriteError(w, r, service.ErrInvalidArgument)
		return
	}

	if err := h.Service.Logout(r.Context(), req.RefreshToken); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, models.SuccessResponse{Success: true})
}
