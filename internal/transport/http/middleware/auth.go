package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/pribylovaa/news-reader-api/internal/service"
	"github.com/pribylovaa/news-reader-api/internal/transport/http/apierrors"
)

// ctxUserID — ключ контекста с идентификатором аутентифицированного пользователя.
const ctxUserID ctxKey = "user_id"

// TokenValidator проверяет access-токен и возвращает идентификатор
// пользователя и его email.
type TokenValidator interface {
	ValidateAccessToken(token string) (uuid.UUID, string, error)
}

// Auth извлекает Bearer-токен из Authorization, валидирует его и кладёт
// user_id в контекст. Запросы без валидного токена получают 401.
func Auth(v TokenValidator) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				apierrors.WriteError(w, r, service.ErrInvalidToken)
				return
			}

			userID, _, err := v.ValidateAccessToken(token)
			if err != nil {
				apierrors.WriteError(w, r, err)
				return
			}

			ctx := context.WithValue(r.Context(), ctxUserID, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserIDFrom возвращает user_id аутентифицированного пользователя из контекста.
func UserIDFrom(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(ctxUserID).(uuid.UUID)
	return id, ok
}

func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(auth, prefix) || len(auth) <= len(prefix) {
		return ""
	}
	return strings.TrimSpace(auth[len(prefix):])
}
