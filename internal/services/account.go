package services

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-accounts/internal/apperrors"
	"github.com/sbilibin2017/gw-accounts/internal/logger"
	"github.com/sbilibin2017/gw-accounts/internal/models"
	"golang.org/x/crypto/bcrypt"
)

//go:generate mockgen -source=account.go -destination=account_mock.go -package=services

// Media folders in the media store.
const (
	AvatarFolder     = "avatars"
	CoverImageFolder = "cover-images"
)

var validate = validator.New()

func validEmail(email string) bool {
	return validate.Var(email, "email") == nil
}

// UserReader defines read-only operations for users.
type UserReader interface {
	GetByUsernameOrEmail(ctx context.Context, username, email string) (*models.UserDB, error)
	GetByID(ctx context.Context, userID uuid.UUID) (*models.UserDB, error)
}

// UserWriter defines write operations for user accounts.
type UserWriter interface {
	Save(ctx context.Context, user *models.UserDB) (*models.UserDB, error)
	UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error
	UpdateProfile(ctx context.Context, userID uuid.UUID, fullname, email string) (*models.UserDB, error)
	UpdateAvatar(ctx context.Context, userID uuid.UUID, url string) (*models.UserDB, error)
	UpdateCoverImage(ctx context.Context, userID uuid.UUID, url string) (*models.UserDB, error)
}

// UserCache caches sanitized user projections.
type UserCache interface {
	Get(ctx context.Context, userID uuid.UUID) (*models.User, error)
	Set(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, userID uuid.UUID) error
}

// MediaUploader stores a file and returns its durable URL.
type MediaUploader interface {
	Upload(ctx context.Context, folder string, file *models.MediaFile) (string, error)
}

// RegisterInput carries everything needed to create an account.
type RegisterInput struct {
	Fullname   string
	Email      string
	Username   string
	Password   string
	Avatar     *models.MediaFile // required
	CoverImage *models.MediaFile // optional
}

// AccountService handles registration and profile changes.
type AccountService struct {
	reader      UserReader
	writer      UserWriter
	cache       UserCache
	media       MediaUploader
	kafkaWriter KafkaWriter
}

// NewAccountService creates a new AccountService. cache and kafkaWriter may be nil.
func NewAccountService(
	reader UserReader,
	writer UserWriter,
	cache UserCache,
	media MediaUploader,
	kafkaWriter KafkaWriter,
) *AccountService {
	return &AccountService{
		reader:      reader,
		writer:      writer,
		cache:       cache,
		media:       media,
		kafkaWriter: kafkaWriter,
	}
}

// Register creates a new account and returns its sanitized projection.
func (svc *AccountService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	log := logger.FromContext(ctx)

	fullname := strings.TrimSpace(in.Fullname)
	email := strings.ToLower(strings.TrimSpace(in.Email))
	username := strings.ToLower(strings.TrimSpace(in.Username))
	if fullname == "" || email == "" || username == "" || strings.TrimSpace(in.Password) == "" {
		return nil, apperrors.Wrap(apperrors.ErrValidation, "all fields are required")
	}
	if !validEmail(email) {
		return nil, apperrors.Wrap(apperrors.ErrValidation, "invalid email")
	}

	existing, err := svc.reader.GetByUsernameOrEmail(ctx, username, email)
	if err != nil {
		log.Errorw("failed to check user exists", "err", err)
		return nil, err
	}
	if existing != nil {
		log.Infow("user already exists", "username", username, "email", email)
		return nil, apperrors.ErrConflict
	}

	if in.Avatar == nil {
		return nil, apperrors.Wrap(apperrors.ErrValidation, "avatar file is required")
	}

	avatarURL, err := svc.media.Upload(ctx, AvatarFolder, in.Avatar)
	if err != nil {
		log.Errorw("failed to upload avatar", "username", username, "err", err)
		return nil, apperrors.WithCause(apperrors.Wrap(apperrors.ErrUpload, "avatar upload failed"), err)
	}

	var coverURL string
	if in.CoverImage != nil {
		// A failed cover upload does not fail registration; the cover stays empty.
		if coverURL, err = svc.media.Upload(ctx, CoverImageFolder, in.CoverImage); err != nil {
			log.Warnw("failed to upload cover image, continuing without it", "username", username, "err", err)
			coverURL = ""
		}
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Errorw("failed to hash password", "err", err)
		return nil, apperrors.WithCause(apperrors.ErrInternal, err)
	}

	saved, err := svc.writer.Save(ctx, &models.UserDB{
		UserID:       uuid.New(),
		Username:     username,
		Email:        email,
		Fullname:     fullname,
		PasswordHash: string(hashedPassword),
		Avatar:       avatarURL,
		CoverImage:   coverURL,
	})
	if err != nil {
		log.Errorw("failed to save user", "username", username, "err", err)
		return nil, err
	}

	event := newAccountEvent(models.EventUserRegistered, saved.UserID)
	event.URL = saved.Avatar
	publishEvent(ctx, svc.kafkaWriter, event)

	return saved.ToUser(), nil
}

// ChangePassword replaces the password digest after verifying the old password.
func (svc *AccountService) ChangePassword(ctx context.Context, userID uuid.UUID, oldPassword, newPassword string) error {
	log := logger.FromContext(ctx)

	if strings.TrimSpace(newPassword) == "" {
		return apperrors.Wrap(apperrors.ErrValidation, "new password is required")
	}

	user, err := svc.getUser(ctx, userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(oldPassword)); err != nil {
		log.Infow("invalid old password", "user_id", userID)
		return apperrors.Wrap(apperrors.ErrInvalidCredential, "invalid old password")
	}

	if oldPassword == newPassword {
		return apperrors.Wrap(apperrors.ErrValidation, "new password must differ from the old one")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Errorw("failed to hash password", "err", err)
		return apperrors.WithCause(apperrors.ErrInternal, err)
	}

	if err := svc.writer.UpdatePassword(ctx, userID, string(hashedPassword)); err != nil {
		log.Errorw("failed to update password", "user_id", userID, "err", err)
		return err
	}
	return nil
}

// UpdateProfile sets fullname and email together and returns the new projection.
func (svc *AccountService) UpdateProfile(ctx context.Context, userID uuid.UUID, fullname, email string) (*models.User, error) {
	fullname = strings.TrimSpace(fullname)
	email = strings.ToLower(strings.TrimSpace(email))
	if fullname == "" || email == "" {
		return nil, apperrors.Wrap(apperrors.ErrValidation, "fullname and email are required")
	}
	if !validEmail(email) {
		return nil, apperrors.Wrap(apperrors.ErrValidation, "invalid email")
	}

	updated, err := svc.writer.UpdateProfile(ctx, userID, fullname, email)
	if err != nil {
		logger.FromContext(ctx).Errorw("failed to update profile", "user_id", userID, "err", err)
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, apperrors.Wrap(apperrors.ErrConflict, "email already exists")
		}
		return nil, err
	}
	if updated == nil {
		return nil, apperrors.ErrNotFound
	}

	svc.evict(ctx, userID)
	publishEvent(ctx, svc.kafkaWriter, newAccountEvent(models.EventProfileUpdated, userID))

	return updated.ToUser(), nil
}

// UpdateAvatar uploads file and makes it the user's avatar.
// The previous asset is left in the media store; its URL goes out with the event.
func (svc *AccountService) UpdateAvatar(ctx context.Context, userID uuid.UUID, file *models.MediaFile) (*models.User, error) {
	if file == nil {
		return nil, apperrors.Wrap(apperrors.ErrValidation, "avatar file is missing")
	}
	return svc.replaceMedia(ctx, userID, file, AvatarFolder, models.EventAvatarReplaced,
		func(u *models.UserDB) string { return u.Avatar },
		svc.writer.UpdateAvatar,
	)
}

// UpdateCoverImage uploads file and makes it the user's cover image.
// The previous asset is left in the media store; its URL goes out with the event.
func (svc *AccountService) UpdateCoverImage(ctx context.Context, userID uuid.UUID, file *models.MediaFile) (*models.User, error) {
	if file == nil {
		return nil, apperrors.Wrap(apperrors.ErrValidation, "cover image file is missing")
	}
	return svc.replaceMedia(ctx, userID, file, CoverImageFolder, models.EventCoverImageReplaced,
		func(u *models.UserDB) string { return u.CoverImage },
		svc.writer.UpdateCoverImage,
	)
}

func (svc *AccountService) replaceMedia(
	ctx context.Context,
	userID uuid.UUID,
	file *models.MediaFile,
	folder, eventType string,
	previous func(*models.UserDB) string,
	update func(ctx context.Context, userID uuid.UUID, url string) (*models.UserDB, error),
) (*models.User, error) {
	log := logger.FromContext(ctx)

	current, err := svc.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	url, err := svc.media.Upload(ctx, folder, file)
	if err != nil {
		log.Errorw("failed to upload media", "user_id", userID, "folder", folder, "err", err)
		return nil, apperrors.WithCause(apperrors.Wrap(apperrors.ErrUpload, "error while uploading "+folder), err)
	}

	updated, err := update(ctx, userID, url)
	if err != nil {
		log.Errorw("failed to save media url", "user_id", userID, "folder", folder, "err", err)
		return nil, err
	}
	if updated == nil {
		return nil, apperrors.ErrNotFound
	}

	svc.evict(ctx, userID)

	event := newAccountEvent(eventType, userID)
	event.URL = url
	event.PreviousURL = previous(current)
	publishEvent(ctx, svc.kafkaWriter, event)

	return updated.ToUser(), nil
}

// Authorize resolves an access token subject against the store, never the
// cache, so a deleted account stops authenticating immediately.
func (svc *AccountService) Authorize(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	record, err := svc.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return record.ToUser(), nil
}

// GetCurrentUser returns the sanitized user, served from cache when possible.
func (svc *AccountService) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	log := logger.FromContext(ctx)

	if svc.cache != nil {
		cached, err := svc.cache.Get(ctx, userID)
		if err != nil {
			log.Warnw("user cache read failed", "user_id", userID, "err", err)
		} else if cached != nil {
			return cached, nil
		}
	}

	record, err := svc.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	user := record.ToUser()

	if svc.cache != nil {
		if err := svc.cache.Set(ctx, user); err != nil {
			log.Warnw("user cache write failed", "user_id", userID, "err", err)
		}
	}
	return user, nil
}

// getUser loads the full record or fails with ErrNotFound.
func (svc *AccountService) getUser(ctx context.Context, userID uuid.UUID) (*models.UserDB, error) {
	user, err := svc.reader.GetByID(ctx, userID)
	if err != nil {
		logger.FromContext(ctx).Errorw("failed to get user", "user_id", userID, "err", err)
		return nil, err
	}
	if user == nil {
		return nil, apperrors.ErrNotFound
	}
	return user, nil
}

func (svc *AccountService) evict(ctx context.Context, userID uuid.UUID) {
	if svc.cache == nil {
		return
	}
	if err := svc.cache.Delete(ctx, userID); err != nil {
		logger.FromContext(ctx).Warnw("user cache eviction failed", "user_id", userID, "err", err)
	}
}
