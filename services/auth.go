// Package services implements the use cases behind the HTTP API.
package services

import (
	"errors"

	"github.com/joejung/mira/auth"
	"github.com/joejung/mira/models"
	"github.com/joejung/mira/store"
)

// UserStore is what the auth use cases need from the entity store.
type UserStore interface {
	FindByID(id uint) (*models.User, error)
	FindByEmail(email string) (*models.User, error)
	Insert(user *models.User) error
}

// AuthService registers users and logs them in.
type AuthService struct {
	users UserStore
	creds *auth.Authenticator
}

func NewAuthService(users UserStore, creds *auth.Authenticator) *AuthService {
	return &AuthService{users: users, creds: creds}
}

// RegisterInput carries already-decoded registration data.
type RegisterInput struct {
	Email    string
	Name     *string
	Password string
	Role     models.Role
}

// Register creates a user with a freshly hashed password. Reusing a known
// email fails with ErrDuplicateEmail regardless of the password.
func (s *AuthService) Register(in RegisterInput) (*models.PublicUser, error) {
	if in.Email == "" {
		return nil, invalidField("email", "must not be empty")
	}
	if in.Role == "" {
		in.Role = models.RoleUser
	}
	if !in.Role.Valid() {
		return nil, invalidField("role", "unknown role "+string(in.Role))
	}

	if _, err := s.users.FindByEmail(in.Email); err == nil {
		return nil, ErrDuplicateEmail
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	hash, err := s.creds.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:        in.Email,
		PasswordHash: hash,
		Name:         in.Name,
		Role:         in.Role,
	}
	if err := s.users.Insert(user); err != nil {
		return nil, err
	}

	pub := user.Public()
	return &pub, nil
}

// LoginResult is the success value of a login: a bearer token plus the
// public projection of the user.
type LoginResult struct {
	Token string            `json:"token"`
	User  models.PublicUser `json:"user"`
}

// Login verifies the credentials and mints a token with the email as
// subject. Unknown email and wrong password collapse into the same
// ErrInvalidCredentials so the result leaks nothing.
func (s *AuthService) Login(email, password string) (*LoginResult, error) {
	user, err := s.users.FindByEmail(email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.creds.CheckPassword(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	token, err := s.creds.IssueToken(user.Email)
	if err != nil {
		return nil, err
	}

	return &LoginResult{Token: token, User: user.Public()}, nil
}
