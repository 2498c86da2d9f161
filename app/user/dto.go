package user

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/joefazee/arena/app/ledger"
	"github.com/joefazee/arena/internal/formatter"
	"github.com/joefazee/arena/internal/sanitizer"
	"github.com/joefazee/arena/internal/validator"
	"github.com/joefazee/arena/models"
)

// RegisterUserRequest represents the request to create a user.
type RegisterUserRequest struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Email       string `json:"email"`
	CountryCode string `json:"country_code" example:"NG"`
	PhoneNumber string `json:"phone_number"`
	Password    string `json:"password"`
}

// Validate strips markup from the names, lowercases the email and formats
// the phone number as E164. Region falls back to defaultRegion.
func (r *RegisterUserRequest) Validate(v *validator.Validator, s sanitizer.HTMLStripperer, defaultRegion string) bool {
	r.FirstName = strings.TrimSpace(s.StripHTML(r.FirstName))
	r.LastName = strings.TrimSpace(s.StripHTML(r.LastName))
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))

	v.Check(validator.RunesBetween(r.FirstName, 2, 100), "first_name", "first name must be between 2 and 100 characters")
	v.Check(validator.RunesBetween(r.LastName, 2, 100), "last_name", "last name must be between 2 and 100 characters")
	v.Check(validator.IsEmail(r.Email), "email", "email is invalid")
	v.Check(validator.MinRunes(r.Password, 8), "password", "password must be at least 8 characters")

	if r.PhoneNumber != "" {
		region := r.CountryCode
		if region == "" {
			region = defaultRegion
		}
		phone, err := formatter.FormatPhone(r.PhoneNumber, region)
		if err != nil {
			v.AddError("phone_number", "phone number is invalid")
		} else {
			r.PhoneNumber = phone
		}
	}

	return v.Valid()
}

// LoginRequest represents the request to log in. Identity is an email or a
// phone number.
type LoginRequest struct {
	Identity string `json:"identity" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Response represents the response for user data.
type Response struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"created_at"`
}

// LoginResponse represents the response for a successful login.
type LoginResponse struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
	User        Response  `json:"user"`
}

// ProfileResponse is the caller's user record and ledger account
type ProfileResponse struct {
	User    Response                `json:"user"`
	Account *ledger.AccountResponse `json:"account,omitempty"`
}

// ToResponse converts models.User to Response
func ToResponse(u *models.User) *Response {
	return &Response{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Phone:     u.Phone,
		Address:   u.Address,
		CreatedAt: u.CreatedAt,
	}
}
