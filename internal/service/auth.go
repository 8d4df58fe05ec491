package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/pribylovaa/news-reader-api/internal/cache"
	"github.com/pribylovaa/news-reader-api/internal/models"
	"github.com/pribylovaa/news-reader-api/internal/storage"
	"github.com/pribylovaa/news-reader-api/pkg/log"
)

type accessClaims struct {
	UserID string `json:"uid"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// refreshEntry — запись refresh-токена в кэше по sha256-хэшу токена.
// Срок жизни записи задаётся TTL ключа (по умолчанию 7 дней).
type refreshEntry struct {
	UserID    string `json:"uid"`
	Email     string `json:"email"`
	ExpiresAt int64  `json:"exp"`
}

// RegisterUser регистрирует нового пользователя и выдаёт пару токенов.
func (s *Service) RegisterUser(ctx context.Context, email, password string) (*models.TokenPair, uuid.UUID, error) {
	const op = "service.auth.RegisterUser"

	normEmail, err := validateEmail(email)
	if err != nil {
		return nil, uuid.Nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	if len(password) < 8 {
		return nil, uuid.Nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	user := &models.User{
		ID:           uuid.New(),
		Email:        normEmail,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
		UpdatedAt:    time.Now().UTC(),
	}

	if err := s.storage.SaveUser(ctx, user); err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			return nil, uuid.Nil, fmt.Errorf("%s: %w", op, ErrEmailTaken)
		}

		return nil, uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	pair, err := s.issueTokenPair(ctx, user)
	if err != nil {
		return nil, uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	log.From(ctx).Info("user_registered",
		slog.String("op", op),
		slog.String("user_id", user.ID.String()),
	)

	return pair, user.ID, nil
}

// LoginUser выполняет вход по email+пароль.
//
// Троттлинг: fixed-window счётчик попыток на нормализованный email.
// Счётчик инкрементируется ДО проверки учётных данных — корректный
// пароль не обходит лимитер. Недоступность кэша деградирует лимитер
// в «открытое» состояние, вход при этом продолжает работать.
func (s *Service) LoginUser(ctx context.Context, email, password string) (*models.TokenPair, uuid.UUID, error) {
	const op = "service.auth.LoginUser"

	normEmail, err := validateEmail(email)
	if err != nil {
		return nil, uuid.Nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	attempts, err := s.cache.IncrementWithExpiry(ctx, cache.LoginAttemptsKey(normEmail), s.cfg.Auth.LoginWindow)
	if err != nil {
		log.From(ctx).Warn("login_throttle_unavailable",
			slog.String("op", op),
			slog.String("err", err.Error()),
		)
	} else if attempts > s.cfg.Auth.LoginMaxAttempts {
		log.From(ctx).Warn("login_throttled",
			slog.String("op", op),
			slog.Int64("attempts", attempts),
		)

		return nil, uuid.Nil, fmt.Errorf("%s: %w", op, ErrTooManyAttempts)
	}

	if len(password) == 0 {
		return nil, uuid.Nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	user, err := s.storage.UserByEmail(ctx, normEmail)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, uuid.Nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
		}

		return nil, uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	if bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)) != nil {
		return nil, uuid.Nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	pair, err := s.issueTokenPair(ctx, user)
	if err != nil {
		return nil, uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	return pair, user.ID, nil
}

// RefreshToken обновляет пару токенов по refresh-токену с ротацией:
// старая запись удаляется, выдаётся новая пара.
func (s *Service) RefreshToken(ctx context.Context, refreshToken string) (*models.TokenPair, uuid.UUID, error) {
	const op = "service.auth.RefreshToken"

	key := cache.RefreshTokenKey(hashToken(refreshToken))

	raw, err := s.cache.Get(ctx, key)
	if err != nil {
		if errors.Is(err, cache.ErrMiss) {
			return nil, uuid.Nil, fmt.Errorf("%s: %w", op, ErrInvalidToken)
		}

		return nil, uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	var entry refreshEntry
	if err := json.Unmarshal([]byte(raw), &entry); err != nil {
		return nil, uuid.Nil, fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}

	if time.Now().UTC().Unix() > entry.ExpiresAt {
		return nil, uuid.Nil, fmt.Errorf("%s: %w", op, ErrTokenExpired)
	}

	userID, err := uuid.Parse(entry.UserID)
	if err != nil {
		return nil, uuid.Nil, fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}

	user, err := s.storage.UserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, uuid.Nil, fmt.Errorf("%s: %w", op, ErrInvalidToken)
		}

		return nil, uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	// Ротация: старый refresh-токен одноразовый.
	if err := s.cache.Delete(ctx, key); err != nil {
		log.From(ctx).Warn("refresh_rotate_delete_failed",
			slog.String("op", op),
			slog.String("err", err.Error()),
		)
	}

	pair, err := s.issueTokenPair(ctx, user)
	if err != nil {
		return nil, uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	return pair, user.ID, nil
}

// Logout отзывает refresh-токен. Отсутствие записи — не ошибка:
// повторный logout идемпотентен.
func (s *Service) Logout(ctx context.Context, refreshToken string) error {
	const op = "service.auth.Logout"

	if err := s.cache.Delete(ctx, cache.RefreshTokenKey(hashToken(refreshToken))); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// ValidateAccessToken проверяет access-токен и возвращает identity владельца.
func (s *Service) ValidateAccessToken(tokenStr string) (uuid.UUID, string, error) {
	const op = "service.auth.ValidateAccessToken"

	token, err := jwt.ParseWithClaims(tokenStr, &accessClaims{},
		func(t *jwt.Token) (interface{}, error) {
			if t.Method != jwt.SigningMethodHS256 {
				return nil, fmt.Errorf("%s: %w", op, ErrInvalidToken)
			}

			return []byte(s.cfg.Auth.JWTSecret), nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithLeeway(5*time.Second),
		jwt.WithIssuer(s.cfg.Auth.Issuer),
		jwt.WithAudience(s.cfg.Auth.Audience...),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return uuid.Nil, "", fmt.Errorf("%s: %w", op, ErrTokenExpired)
		}

		return uuid.Nil, "", fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}

	claims, ok := token.Claims.(*accessClaims)
	if !ok || !token.Valid {
		return uuid.Nil, "", fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}

	uid, err := uuid.Parse(claims.UserID)
	if err != nil {
		return uuid.Nil, "", fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}

	return uid, claims.Email, nil
}

// issueTokenPair выпускает access-JWT и случайный refresh-токен,
// сохраняя запись последнего в кэше по sha256-хэшу.
func (s *Service) issueTokenPair(ctx context.Context, user *models.User) (*models.TokenPair, error) {
	const op = "service.auth.issueTokenPair"

	now := time.Now().UTC()
	expiresAt := now.Add(s.cfg.Auth.AccessTokenTTL)

	claims := accessClaims{
		UserID: user.ID.String(),
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    s.cfg.Auth.Issuer,
			Subject:   user.ID.String(),
			Audience:  jwt.ClaimStrings(s.cfg.Auth.Audience),
		},
	}

	access, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.Auth.JWTSecret))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var buf [32]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	refresh := base64.RawURLEncoding.EncodeToString(buf[:])

	entry := refreshEntry{
		UserID:    user.ID.String(),
		Email:     user.Email,
		ExpiresAt: now.Add(s.cfg.Auth.RefreshTokenTTL).Unix(),
	}

	rawEntry, err := json.Marshal(entry)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.cache.Set(ctx, cache.RefreshTokenKey(hashToken(refresh)), string(rawEntry), s.cfg.Auth.RefreshTokenTTL); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &models.TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresAt:    expiresAt,
	}, nil
}

// validateEmail нормализует и проверяет формат e-mail.
func validateEmail(email string) (string, error) {
	norm := strings.ToLower(strings.TrimSpace(email))

	addr, err := mail.ParseAddress(norm)
	if err != nil || addr.Address != norm {
		return "", fmt.Errorf("invalid email")
	}

	return norm, nil
}

// hashToken — sha256-хэш токена в base64url; в кэше никогда не лежит
// сам токен.
func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}
