package auth

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/lunavic/tidylist-be/internal/models"
	"github.com/rs/zerolog/log"
)

// Claims defines the JWT claims structure. Only the user id is
// embedded; the live user record is re-fetched on every authenticated
// request, so stale snapshots and secret material never ride in the
// token.
type Claims struct {
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}

type contextKey string

const userKey = contextKey("authUser")

// UserFetcher resolves a user id to the current user record.
type UserFetcher interface {
	GetUserByID(id string) (models.User, error)
}

// Service issues and verifies session tokens.
type Service struct {
	secret []byte
	users  UserFetcher
}

// New creates a token service signing with the given secret.
func New(secret string, users UserFetcher) *Service {
	return &Service{secret: []byte(secret), users: users}
}

// GenerateToken creates a signed token for the user id. Tokens live for
// 24 hours, or 30 days when remember is set.
func (s *Service) GenerateToken(userID string, remember bool) (string, error) {
	ttl := 24 * time.Hour
	if remember {
		ttl = 30 * 24 * time.Hour
	}
	now := time.Now()
	claims := &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// ParseToken parses and validates a token string.
func (s *Service) ParseToken(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// Middleware rejects requests without a valid bearer token and attaches
// the resolved user to the request context.
func (s *Service) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			writeJSON(w, http.StatusUnauthorized, map[string]any{
				"status":  false,
				"type":    "UNAUTHORIZED_ACCESS",
				"message": "Unauthorized.",
			})
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := s.ParseToken(tokenStr)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				log.Debug().Err(err).Msg("Expired session token")
			} else {
				log.Debug().Err(err).Msg("Invalid session token")
			}
			writeJSON(w, http.StatusBadRequest, map[string]any{
				"status":  false,
				"message": "Invalid token.",
			})
			return
		}

		user, err := s.users.GetUserByID(claims.UserID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				// Token outlived the account it was issued for.
				writeJSON(w, http.StatusBadRequest, map[string]any{
					"status":  false,
					"message": "Invalid token.",
				})
				return
			}
			log.Error().Err(err).Str("user_id", claims.UserID).Msg("Failed to load user for token")
			writeJSON(w, http.StatusInternalServerError, map[string]any{
				"status":  false,
				"message": err.Error(),
			})
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), &user)))
	})
}

// WithUser returns a context carrying the authenticated user.
func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// UserFrom extracts the authenticated user from the request context.
func UserFrom(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(userKey).(*models.User)
	return user, ok
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
