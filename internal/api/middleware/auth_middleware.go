package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	appErrors "github.com/stockbuddy07/styleswap/internal/errors"
	"github.com/stockbuddy07/styleswap/internal/models"
	"github.com/stockbuddy07/styleswap/internal/utils/response"
	"github.com/golang-jwt/jwt/v5"
)

type AuthMiddleware struct {
	jwtKey []byte
}

func NewAuthMiddleware(jwtKey []byte) *AuthMiddleware {
	return &AuthMiddleware{jwtKey: jwtKey}
}

func (m *AuthMiddleware) Authenticate(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := LoggerFromContext(r.Context())

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			logger.Warn("Missing authorization header")
			response.Error(w, appErrors.UnauthorizedError("Authorization header is required"))

			return
		}

		tokenParts := strings.Split(authHeader, " ")
		if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
			logger.Warn("Malformed authorization header")
			response.Error(w, appErrors.UnauthorizedError("Invalid authorization header format"))

			return
		}

		claims := &models.Claims{}

		token, err := jwt.ParseWithClaims(tokenParts[1], claims, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, appErrors.UnauthorizedError("unexpected signing method")
			}

			return m.jwtKey, nil
		})

		if err != nil {
			logger.Warn("JWT parsing failed", slog.String("error", err.Error()))
			response.Error(w, appErrors.UnauthorizedError("Invalid or expired token"))

			return
		}

		if !token.Valid {
			logger.Warn("Invalid token")
			response.Error(w, appErrors.UnauthorizedError("Invalid token"))

			return
		}

		if claims.ExpiresAt != nil && claims.ExpiresAt.Time.Before(time.Now()) {
			logger.Warn("Expired token", slog.String("userId", claims.UserID.String()))
			response.Error(w, appErrors.UnauthorizedError("Token expired"))

			return
		}

		ctx := context.WithValue(r.Context(), UserContextKey, claims)

		requestScopedLogger := logger.With(
			slog.String("userId", claims.UserID.String()),
			slog.String("role", string(claims.Role)))
		ctx = context.WithValue(ctx, LoggerKey, requestScopedLogger)

		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

// ClaimsFromContext returns the authenticated claims, or nil when the request
// never passed through Authenticate.
func ClaimsFromContext(ctx context.Context) *models.Claims {
	if claims, ok := ctx.Value(UserContextKey).(*models.Claims); ok {
		return claims
	}

	return nil
}
