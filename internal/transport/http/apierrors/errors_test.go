package apierrors

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pribylovaa/news-reader-api/internal/service"
)

// TestToHTTP_Mapping фиксирует контракт маппинга сервисных ошибок
// в HTTP-статусы и коды для фронта.
func TestToHTTP_Mapping(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantMsg    string
	}{
		{"user_not_found", service.ErrUserNotFound, http.StatusNotFound, "not_found", "User not found"},
		{"news_not_found", service.ErrNewsNotFound, http.StatusNotFound, "not_found", "News not found"},
		{"favorite_not_found", service.ErrFavoriteNotFound, http.StatusNotFound, "not_found", "Favorite not found"},
		{"history_not_found", service.ErrHistoryNotFound, http.StatusNotFound, "not_found", "History entry not found"},
		{"already_favorite", service.ErrAlreadyFavorite, http.StatusConflict, "already_exists", "Already added to favorites"},
		{"email_taken", service.ErrEmailTaken, http.StatusConflict, "already_exists", "Email already taken"},
		{"invalid_cursor", service.ErrInvalidCursor, http.StatusBadRequest, "invalid_argument", "Invalid cursor format"},
		{"invalid_argument", service.ErrInvalidArgument, http.StatusBadRequest, "invalid_argument", "invalid argument"},
		{"too_many_attempts", service.ErrTooManyAttempts, http.StatusUnauthorized, "too_many_attempts", "Too many login attempts"},
		{"invalid_credentials", service.ErrInvalidCredentials, http.StatusUnauthorized, "unauthenticated", "invalid credentials"},
		{"token_expired", service.ErrTokenExpired, http.StatusUnauthorized, "unauthenticated", "token expired"},
		{"token_revoked", service.ErrTokenRevoked, http.StatusUnauthorized, "unauthenticated", "token revoked"},
		{"invalid_token", service.ErrInvalidToken, http.StatusUnauthorized, "unauthenticated", "invalid token"},
		{"deadline", context.DeadlineExceeded, http.StatusGatewayTimeout, "deadline_exceeded", "deadline exceeded"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "internal", "internal error"},
		{"nil", nil, http.StatusInternalServerError, "internal", "internal error"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			status, resp := ToHTTP(tc.err)
			require.Equal(t, tc.wantStatus, status)
			require.Equal(t, tc.wantCode, resp.Error.Code)
			require.Equal(t, tc.wantMsg, resp.Error.Message)
		})
	}
}

// TestToHTTP_WrappedError — маппинг должен работать через errors.Is,
// то есть и для обёрнутых ошибок.
func TestToHTTP_WrappedError(t *testing.T) {
	t.Parallel()

	wrapped := errors.Join(errors.New("service.AddFavorite"), service.ErrAlreadyFavorite)

	status, resp := ToHTTP(wrapped)
	require.Equal(t, http.StatusConflict, status)
	require.Equal(t, "already_exists", resp.Error.Code)
}
