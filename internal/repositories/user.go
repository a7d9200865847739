package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/gw-accounts/internal/apperrors"
	"github.com/sbilibin2017/gw-accounts/internal/logger"
	"github.com/sbilibin2017/gw-accounts/internal/models"
)

// ErrUniqueViolation is returned when an insert or update hits a unique index.
var ErrUniqueViolation = apperrors.Wrap(apperrors.ErrConflict, "username or email already exists")

const uniqueViolationCode = "23505"

const userColumns = `id, username, email, fullname, password_hash, avatar, cover_image, refresh_token, created_at, updated_at`

// redacted replaces secrets in logged query arguments.
const redacted = "***"

// logQuery logs a query on a single line together with its outcome.
func logQuery(ctx context.Context, query string, args []any, result any, err error) {
	logger.FromContext(ctx).Infow("query",
		"query", strings.Join(strings.Fields(query), " "),
		"args", args,
		"result", result,
		"error", err,
	)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}

// getUser runs a single-row user query. A missing row yields (nil, nil).
func getUser(ctx context.Context, db sqlx.QueryerContext, query string, logArgs []any, args ...any) (*models.UserDB, error) {
	var user models.UserDB
	err := sqlx.GetContext(ctx, db, &user, query, args...)
	logQuery(ctx, query, logArgs, user.UserID, err)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrUniqueViolation
		}
		return nil, err
	}
	return &user, nil
}

// UserReadRepository handles user read operations
type UserReadRepository struct {
	db *sqlx.DB
}

func NewUserReadRepository(db *sqlx.DB) *UserReadRepository {
	return &UserReadRepository{db: db}
}

// GetByUsernameOrEmail returns the user matching either username or email,
// or nil when there is none.
func (r *UserReadRepository) GetByUsernameOrEmail(ctx context.Context, username, email string) (*models.UserDB, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE username = $1 OR email = $2
		LIMIT 1
	`
	return getUser(ctx, r.db, query, []any{username, email}, username, email)
}

// GetByID returns the user with the given ID, or nil when there is none.
func (r *UserReadRepository) GetByID(ctx context.Context, userID uuid.UUID) (*models.UserDB, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE id = $1
	`
	return getUser(ctx, r.db, query, []any{userID}, userID)
}

// GetByUsername returns the user with the given username, or nil when there is none.
func (r *UserReadRepository) GetByUsername(ctx context.Context, username string) (*models.UserDB, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE username = $1
	`
	return getUser(ctx, r.db, query, []any{username}, username)
}

// UserWriteRepository handles user write operations
type UserWriteRepository struct {
	db *sqlx.DB
}

func NewUserWriteRepository(db *sqlx.DB) *UserWriteRepository {
	return &UserWriteRepository{db: db}
}

// Save inserts a new user and returns the stored row.
// A taken username or email yields ErrUniqueViolation.
func (r *UserWriteRepository) Save(ctx context.Context, user *models.UserDB) (*models.UserDB, error) {
	query := `
		INSERT INTO users (id, username, email, fullname, password_hash, avatar, cover_image, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING ` + userColumns

	return getUser(ctx, r.db, query,
		[]any{user.UserID, user.Username, user.Email, user.Fullname, redacted, user.Avatar, user.CoverImage},
		user.UserID, user.Username, user.Email, user.Fullname, user.PasswordHash, user.Avatar, user.CoverImage,
	)
}

// UpdatePassword replaces the password digest.
func (r *UserWriteRepository) UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error {
	query := `
		UPDATE users
		SET password_hash = $2, updated_at = NOW()
		WHERE id = $1
	`
	return r.exec(ctx, query, []any{userID, redacted}, userID, passwordHash)
}

// UpdateProfile sets fullname and email in one statement and returns the updated row.
func (r *UserWriteRepository) UpdateProfile(ctx context.Context, userID uuid.UUID, fullname, email string) (*models.UserDB, error) {
	query := `
		UPDATE users
		SET fullname = $2, email = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + userColumns

	return getUser(ctx, r.db, query, []any{userID, fullname, email}, userID, fullname, email)
}

// UpdateAvatar overwrites the avatar URL and returns the updated row.
func (r *UserWriteRepository) UpdateAvatar(ctx context.Context, userID uuid.UUID, url string) (*models.UserDB, error) {
	query := `
		UPDATE users
		SET avatar = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + userColumns

	return getUser(ctx, r.db, query, []any{userID, url}, userID, url)
}

// UpdateCoverImage overwrites the cover image URL and returns the updated row.
func (r *UserWriteRepository) UpdateCoverImage(ctx context.Context, userID uuid.UUID, url string) (*models.UserDB, error) {
	query := `
		UPDATE users
		SET cover_image = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + userColumns

	return getUser(ctx, r.db, query, []any{userID, url}, userID, url)
}

// SetRefreshToken stores token as the user's only refresh token.
// A nil token clears it.
func (r *UserWriteRepository) SetRefreshToken(ctx context.Context, userID uuid.UUID, token *string) error {
	query := `
		UPDATE users
		SET refresh_token = $2, updated_at = NOW()
		WHERE id = $1
	`
	logArgs := []any{userID, nil}
	if token != nil {
		logArgs[1] = redacted
	}
	return r.exec(ctx, query, logArgs, userID, token)
}

// RotateRefreshToken replaces oldToken with newToken only if oldToken is
// still the stored value. It reports whether the swap happened.
func (r *UserWriteRepository) RotateRefreshToken(ctx context.Context, userID uuid.UUID, oldToken, newToken string) (bool, error) {
	query := `
		UPDATE users
		SET refresh_token = $3, updated_at = NOW()
		WHERE id = $1 AND refresh_token = $2
	`
	res, err := r.db.ExecContext(ctx, query, userID, oldToken, newToken)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}
	logQuery(ctx, query, []any{userID, redacted, redacted}, rowsAffected, err)

	if err != nil {
		return false, err
	}
	return rowsAffected == 1, nil
}

func (r *UserWriteRepository) exec(ctx context.Context, query string, logArgs []any, args ...any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}
	logQuery(ctx, query, logArgs, rowsAffected, err)
	return err
}
