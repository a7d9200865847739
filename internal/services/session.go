package services

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-accounts/internal/apperrors"
	"github.com/sbilibin2017/gw-accounts/internal/jwt"
	"github.com/sbilibin2017/gw-accounts/internal/logger"
	"github.com/sbilibin2017/gw-accounts/internal/models"
	"golang.org/x/crypto/bcrypt"
)

//go:generate mockgen -source=session.go -destination=session_mock.go -package=services

// RefreshTokenWriter persists the single refresh token of a user.
type RefreshTokenWriter interface {
	SetRefreshToken(ctx context.Context, userID uuid.UUID, token *string) error
	RotateRefreshToken(ctx context.Context, userID uuid.UUID, oldToken, newToken string) (bool, error)
}

// JWTGenerator defines an interface for generating JWT tokens.
type JWTGenerator interface {
	Generate(ctx context.Context, userID uuid.UUID) (string, error)
}

// JWTRefresher generates and verifies refresh tokens.
type JWTRefresher interface {
	Generate(ctx context.Context, userID uuid.UUID) (string, error)
	GetClaims(ctx context.Context, tokenString string) (*jwt.Claims, error)
}

// SessionService handles login, refresh token rotation and logout.
// A user has at most one live refresh token, so a new login ends the previous session.
type SessionService struct {
	reader  UserReader
	writer  RefreshTokenWriter
	access  JWTGenerator
	refresh JWTRefresher
}

// NewSessionService creates a new SessionService instance.
func NewSessionService(reader UserReader, writer RefreshTokenWriter, access JWTGenerator, refresh JWTRefresher) *SessionService {
	return &SessionService{
		reader:  reader,
		writer:  writer,
		access:  access,
		refresh: refresh,
	}
}

// Login authenticates by username or email and opens a new session.
func (svc *SessionService) Login(ctx context.Context, identifier, password string) (*models.Session, error) {
	log := logger.FromContext(ctx)

	identifier = strings.ToLower(strings.TrimSpace(identifier))
	if identifier == "" {
		return nil, apperrors.Wrap(apperrors.ErrValidation, "username or email is required")
	}
	if password == "" {
		return nil, apperrors.Wrap(apperrors.ErrValidation, "password is required")
	}

	user, err := svc.reader.GetByUsernameOrEmail(ctx, identifier, identifier)
	if err != nil {
		log.Errorw("failed to get user", "err", err)
		return nil, err
	}
	if user == nil {
		log.Infow("user does not exist", "identifier", identifier)
		return nil, apperrors.ErrNotFound
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		log.Infow("invalid credentials", "identifier", identifier)
		return nil, apperrors.ErrInvalidCredential
	}

	pair, err := svc.issuePair(ctx, user.UserID)
	if err != nil {
		return nil, err
	}

	if err := svc.writer.SetRefreshToken(ctx, user.UserID, &pair.RefreshToken); err != nil {
		log.Errorw("failed to store refresh token", "user_id", user.UserID, "err", err)
		return nil, err
	}

	return &models.Session{User: user.ToUser(), TokenPair: *pair}, nil
}

// Refresh verifies the presented refresh token and rotates the pair.
// A token that verifies but is no longer the stored one is stale.
func (svc *SessionService) Refresh(ctx context.Context, refreshToken string) (*models.TokenPair, error) {
	log := logger.FromContext(ctx)

	if refreshToken == "" {
		return nil, apperrors.Wrap(apperrors.ErrUnauthorized, "refresh token is required")
	}

	claims, err := svc.refresh.GetClaims(ctx, refreshToken)
	if err != nil {
		log.Infow("refresh token rejected", "err", err)
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperrors.ErrTokenExpired
		}
		return nil, apperrors.ErrTokenInvalid
	}

	user, err := svc.reader.GetByID(ctx, claims.UserID)
	if err != nil {
		log.Errorw("failed to get user", "user_id", claims.UserID, "err", err)
		return nil, err
	}
	if user == nil {
		return nil, apperrors.ErrNotFound
	}

	if user.RefreshToken == nil || subtle.ConstantTimeCompare([]byte(*user.RefreshToken), []byte(refreshToken)) != 1 {
		log.Warnw("stale refresh token presented", "user_id", user.UserID)
		return nil, apperrors.ErrTokenStale
	}

	pair, err := svc.issuePair(ctx, user.UserID)
	if err != nil {
		return nil, err
	}

	swapped, err := svc.writer.RotateRefreshToken(ctx, user.UserID, refreshToken, pair.RefreshToken)
	if err != nil {
		log.Errorw("failed to rotate refresh token", "user_id", user.UserID, "err", err)
		return nil, err
	}
	if !swapped {
		// Another refresh or logout won the race.
		return nil, apperrors.ErrTokenStale
	}

	return pair, nil
}

// Logout clears the stored refresh token, ending the session server-side.
func (svc *SessionService) Logout(ctx context.Context, userID uuid.UUID) error {
	if err := svc.writer.SetRefreshToken(ctx, userID, nil); err != nil {
		logger.FromContext(ctx).Errorw("failed to clear refresh token", "user_id", userID, "err", err)
		return err
	}
	return nil
}

func (svc *SessionService) issuePair(ctx context.Context, userID uuid.UUID) (*models.TokenPair, error) {
	log := logger.FromContext(ctx)

	access, err := svc.access.Generate(ctx, userID)
	if err != nil {
		log.Errorw("failed to generate access token", "err", err)
		return nil, apperrors.WithCause(apperrors.Wrap(apperrors.ErrInternal, "something went wrong while generating tokens"), err)
	}

	refresh, err := svc.refresh.Generate(ctx, userID)
	if err != nil {
		log.Errorw("failed to generate refresh token", "err", err)
		return nil, apperrors.WithCause(apperrors.Wrap(apperrors.ErrInternal, "something went wrong while generating tokens"), err)
	}

	return &models.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
