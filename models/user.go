package models

import (
	"net"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const maxFailedLogins = 5

// User represents a registered participant. Address is the ledger account
// the user signs for.
type User struct {
	ID                  uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Email               string     `gorm:"type:varchar(255);not null;unique;index" json:"email"`
	PasswordHash        string     `gorm:"type:varchar(255);not null" json:"-"`
	FirstName           string     `gorm:"type:varchar(100)" json:"first_name"`
	LastName            string     `gorm:"type:varchar(100)" json:"last_name"`
	Phone               string     `gorm:"type:varchar(20);index" json:"phone"`
	Address             string     `gorm:"type:varchar(42);not null;uniqueIndex" json:"address"`
	LastLoginAt         *time.Time `gorm:"type:timestamptz" json:"last_login_at"`
	LastLoginIP         net.IP     `gorm:"type:inet" json:"last_login_ip"`
	FailedLoginAttempts int        `gorm:"default:0" json:"-"`
	LockedUntil         *time.Time `gorm:"type:timestamptz" json:"-"`
	IsActive            *bool      `gorm:"default:true" json:"is_active"`
	CreatedAt           time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt           time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	Account *Account `gorm:"foreignKey:OwnerID" json:"-"`
}

// TableName specifies the table name for User model
func (*User) TableName() string {
	return "users"
}

// BeforeCreate assigns the id and the derived ledger address
func (u *User) BeforeCreate(_ *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if u.Address == "" {
		u.Address = NewUserAddress(u.ID)
	}
	return nil
}

// IsAnonymous reports whether the user is the unauthenticated placeholder
func (u *User) IsAnonymous() bool {
	return u.ID == uuid.Nil
}

// Active reports whether the account may act
func (u *User) Active() bool {
	return u.IsActive == nil || *u.IsActive
}

// SetPassword hashes and sets the user password
func (u *User) SetPassword(password string) error {
	hash, err := HashPassword(password)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	return nil
}

// CheckPassword verifies the provided password against the stored hash
func (u *User) CheckPassword(password string) bool {
	return CheckPasswordHash(password, u.PasswordHash)
}

// IsLocked checks if the user account is currently locked
func (u *User) IsLocked(now time.Time) bool {
	return u.LockedUntil != nil && u.LockedUntil.After(now)
}

// IncrementFailedLogins increments the failed login counter
func (u *User) IncrementFailedLogins(now time.Time) {
	u.FailedLoginAttempts++
	if u.FailedLoginAttempts >= maxFailedLogins {
		lockUntil := now.Add(time.Hour)
		u.LockedUntil = &lockUntil
	}
}

// UpdateLastLogin records a successful login
func (u *User) UpdateLastLogin(ip net.IP, now time.Time) {
	u.LastLoginAt = &now
	u.LastLoginIP = ip
	u.FailedLoginAttempts = 0
	u.LockedUntil = nil
}

// GetFullName returns the user's full name
func (u *User) GetFullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// Validate performs validation on the user model
func (u *User) Validate() error {
	if u.Email == "" {
		return ErrInvalidEmail
	}
	if u.PasswordHash == "" {
		return ErrInvalidPassword
	}
	if u.Address != "" && IsProgramAddress(u.Address) {
		return ErrInvalidAddress
	}
	return nil
}

func IsEmail(identity string) bool {
	return identity != "" && strings.Contains(identity, "@") && strings.Contains(identity, ".")
}

func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

func HashPassword(password string) (string, error) {
	if len(password) < 8 {
		return "", ErrPasswordTooShort
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
