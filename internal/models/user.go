package models

import (
	"time"

	"github.com/google/uuid"
)

// UserDB represents a user record in the database
type UserDB struct {
	UserID       uuid.UUID `db:"id"`            // Primary key
	Username     string    `db:"username"`      // Unique lowercase username
	Email        string    `db:"email"`         // Unique email
	Fullname     string    `db:"fullname"`      // Display name
	PasswordHash string    `db:"password_hash"` // bcrypt digest
	Avatar       string    `db:"avatar"`        // Avatar URL
	CoverImage   string    `db:"cover_image"`   // Cover image URL, empty when absent
	RefreshToken *string   `db:"refresh_token"` // Current refresh token, nil when logged out
	CreatedAt    time.Time `db:"created_at"`    // Creation timestamp
	UpdatedAt    time.Time `db:"updated_at"`    // Last update timestamp
}

// User is the read-facing projection of a user.
// It deliberately has no password or refresh token field.
// swagger:model User
type User struct {
	UserID     uuid.UUID `json:"_id"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	Fullname   string    `json:"fullname"`
	Avatar     string    `json:"avatar"`
	CoverImage string    `json:"coverImage"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// ToUser returns the sanitized projection of the record.
func (u *UserDB) ToUser() *User {
	if u == nil {
		return nil
	}
	return &User{
		UserID:     u.UserID,
		Username:   u.Username,
		Email:      u.Email,
		Fullname:   u.Fullname,
		Avatar:     u.Avatar,
		CoverImage: u.CoverImage,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}
