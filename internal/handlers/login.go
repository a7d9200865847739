package handlers

import (
	"context"
	"net/http"

	"github.com/sbilibin2017/gw-accounts/internal/models"
)

//go:generate mockgen -source=login.go -destination=login_mock.go -package=handlers

// Loginer defines the interface that the login service must implement.
type Loginer interface {
	Login(ctx context.Context, identifier, password string) (*models.Session, error)
}

// LoginRequest represents the JSON body for user login.
// Either username or email identifies the account.
// swagger:model LoginRequest
type LoginRequest struct {
	// Username
	// default: john_doe
	Username string `json:"username"`

	// Email
	// default: john@example.com
	Email string `json:"email"`

	// Password
	// required: true
	// default: secret123
	Password string `json:"password"`
}

// LoginData is the payload of a successful login.
// swagger:model LoginData
type LoginData struct {
	User         *models.User `json:"user"`
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
}

// LoginResponse wraps LoginData in the response envelope.
// swagger:model LoginResponse
type LoginResponse struct {
	StatusCode int       `json:"statusCode" example:"200"`
	Data       LoginData `json:"data"`
	Message    string    `json:"message" example:"User logged in successfully"`
	Success    bool      `json:"success" example:"true"`
}

// NewLoginHandler returns an HTTP handler for user login.
// @Summary User login
// @Description Authenticates by username or email, sets the accessToken and refreshToken cookies and returns the user with both tokens
// @Tags auth
// @Accept json
// @Produce json
// @Param loginRequest body handlers.LoginRequest true "Login Request"
// @Success 200 {object} handlers.LoginResponse "Logged in"
// @Failure 400 {object} models.APIError "Invalid request body"
// @Failure 401 {object} models.APIError "Invalid username or password"
// @Failure 404 {object} models.APIError "User does not exist"
// @Router /login [post]
func NewLoginHandler(svc Loginer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, r, err)
			return
		}

		identifier := req.Username
		if identifier == "" {
			identifier = req.Email
		}

		session, err := svc.Login(r.Context(), identifier, req.Password)
		if err != nil {
			writeError(w, r, err)
			return
		}

		setAuthCookies(w, session.TokenPair)
		writeJSON(w, http.StatusOK, LoginData{
			User:         session.User,
			AccessToken:  session.AccessToken,
			RefreshToken: session.RefreshToken,
		}, "User logged in successfully")
	}
}
