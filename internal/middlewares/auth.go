package middlewares

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-accounts/internal/apperrors"
	"github.com/sbilibin2017/gw-accounts/internal/jwt"
	"github.com/sbilibin2017/gw-accounts/internal/logger"
	"github.com/sbilibin2017/gw-accounts/internal/models"
)

//go:generate mockgen -source=auth.go -destination=auth_mock.go -package=middlewares

// Tokener defines the minimal interface needed by the middleware
type Tokener interface {
	GetTokenFromRequest(ctx context.Context, r *http.Request) (string, error)
	GetClaims(ctx context.Context, tokenString string) (*jwt.Claims, error)
}

// UserAuthorizer resolves the token subject to a sanitized user.
// Implementations must consult the credential store, not a cache.
type UserAuthorizer interface {
	Authorize(ctx context.Context, userID uuid.UUID) (*models.User, error)
}

type userKey struct{}

// WithUser stores the authenticated user in the context.
func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, userKey{}, user)
}

// UserFromContext returns the authenticated user, or nil outside the guard.
func UserFromContext(ctx context.Context) *models.User {
	user, _ := ctx.Value(userKey{}).(*models.User)
	return user
}

// AuthMiddleware returns a middleware that admits requests carrying a valid
// access token whose user still exists. Missing, malformed, expired and
// orphaned tokens are all rejected with the same Unauthorized response.
func AuthMiddleware(tokener Tokener, users UserAuthorizer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := logger.FromContext(ctx)

			tokenString, err := tokener.GetTokenFromRequest(ctx, r)
			if err != nil {
				log.Infow("authorization failed", "err", err)
				apperrors.Write(w, apperrors.ErrUnauthorized)
				return
			}

			claims, err := tokener.GetClaims(ctx, tokenString)
			if err != nil {
				log.Infow("authorization failed", "err", err)
				apperrors.Write(w, apperrors.Wrap(apperrors.ErrUnauthorized, "invalid access token"))
				return
			}

			user, err := users.Authorize(ctx, claims.UserID)
			if err != nil {
				if errors.Is(err, apperrors.ErrNotFound) {
					log.Infow("authorization failed, user no longer exists", "user_id", claims.UserID)
					apperrors.Write(w, apperrors.Wrap(apperrors.ErrUnauthorized, "invalid access token"))
					return
				}
				log.Errorw("failed to load user", "user_id", claims.UserID, "err", err)
				apperrors.Write(w, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(ctx, user)))
		})
	}
}
