// Package apierrors — единый формат ответов об ошибках REST-слоя.
//
// Сервисный слой возвращает sentinel-ошибки, транспорт переводит их
// в HTTP-статус и краткое безопасное message без утечки деталей.
package apierrors

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/pribylovaa/news-reader-api/internal/service"
)

// APIError — единый формат для фронта.
// Code — короткий стабильный код для машиночитаемой обработки на FE.
// Message — безопасное человекочитаемое описание.
// RequestID — прокидывается из X-Request-Id, если есть (для трассировки).
type APIError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// ErrorResponse — корневой объект в ответе.
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// ToHTTP конвертирует ошибку сервисного слоя в HTTP-статус и
// унифицированный ответ для фронта.
//
// Поведение:
//   - err == nil — программная ошибка вызова: 500/internal, чтобы не
//     послать "200 OK" с телом ошибки и не маскировать баг;
//   - неизвестная ошибка (инфраструктура: БД/кэш) — 500/internal без
//     утечки деталей.
func ToHTTP(err error) (int, ErrorResponse) {
	status, code, msg := statusFromError(err)

	return status, ErrorResponse{
		Error: APIError{
			Code:    code,
			Message: msg,
		},
	}
}

// WriteError — хелпер для HTTP-хендлеров.
// Пишет корректный статус/тело, добавляет request_id из заголовка, если он есть.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	status, resp := ToHTTP(err)

	// Прокидываем request_id для фронта, чтобы он мог репортить баги с привязкой.
	if rid := r.Header.Get("X-Request-Id"); rid != "" {
		resp.Error.RequestID = rid
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

// statusFromError — таблица маппинга sentinel-ошибок сервиса.
func statusFromError(err error) (int, string, string) {
	switch {
	case err == nil:
		return http.StatusInternalServerError, "internal", "internal error"
	case errors.Is(err, service.ErrUserNotFound):
		return http.StatusNotFound, "not_found", "User not found"
	case errors.Is(err, service.ErrNewsNotFound):
		return http.StatusNotFound, "not_found", "News not found"
	case errors.Is(err, service.ErrFavoriteNotFound):
		return http.StatusNotFound, "not_found", "Favorite not found"
	case errors.Is(err, service.ErrHistoryNotFound):
		return http.StatusNotFound, "not_found", "History entry not found"
	case errors.Is(err, service.ErrAlreadyFavorite):
		return http.StatusConflict, "already_exists", "Already added to favorites"
	case errors.Is(err, service.ErrEmailTaken):
		return http.StatusConflict, "already_exists", "Email already taken"
	case errors.Is(err, service.ErrInvalidCursor):
		return http.StatusBadRequest, "invalid_argument", "Invalid cursor format"
	case errors.Is(err, service.ErrInvalidArgument):
		return http.StatusBadRequest, "invalid_argument", "invalid argument"
	case errors.Is(err, service.ErrTooManyAttempts):
		return http.StatusUnauthorized, "too_many_attempts", "Too many login attempts"
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized, "unauthenticated", "invalid credentials"
	case errors.Is(err, service.ErrTokenExpired):
		return http.StatusUnauthorized, "unauthenticated", "token expired"
	case errors.Is(err, service.ErrTokenRevoked):
		return http.StatusUnauthorized, "unauthenticated", "token revoked"
	case errors.Is(err, service.ErrInvalidToken):
		return http.StatusUnauthorized, "unauthenticated", "invalid token"
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "deadline_exceeded", "deadline exceeded"
	default:
		return http.StatusInternalServerError, "internal", "internal error"
	}
}
