package services

import (
	"errors"
	"testing"
	"time"

	"github.com/joejung/mira/auth"
	"github.com/joejung/mira/models"
	"github.com/joejung/mira/store"
)

// --- mocks ---

type mockUserStore struct {
	findByIDFn    func(id uint) (*models.User, error)
	findByEmailFn func(email string) (*models.User, error)
	insertFn      func(user *models.User) error
}

func (m *mockUserStore) FindByID(id uint) (*models.User, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(id)
	}
	return nil, store.ErrNotFound
}

func (m *mockUserStore) FindByEmail(email string) (*models.User, error) {
	if m.findByEmailFn != nil {
		return m.findByEmailFn(email)
	}
	return nil, store.ErrNotFound
}

func (m *mockUserStore) Insert(user *models.User) error {
	if m.insertFn != nil {
		return m.insertFn(user)
	}
	return nil
}

func testAuthenticator() *auth.Authenticator {
	return auth.New([]byte("test-secret"), time.Hour)
}

// --- tests ---

func TestRegisterThenLogin(t *testing.T) {
	creds := testAuthenticator()

	// In-memory behaviour: registration stores the user, login finds it.
	var saved *models.User
	users := &mockUserStore{
		findByEmailFn: func(email string) (*models.User, error) {
			if saved != nil && saved.Email == email {
				return saved, nil
			}
			return nil, store.ErrNotFound
		},
		insertFn: func(user *models.User) error {
			user.ID = 1
			saved = user
			return nil
		},
	}
	svc := NewAuthService(users, creds)

	pub, err := svc.Register(RegisterInput{Email: "a@x.com", Password: "pw"})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if pub.ID != 1 || pub.Email != "a@x.com" {
		t.Errorf("public user = %+v, want id 1 and registered email", pub)
	}
	if pub.Role != models.RoleUser {
		t.Errorf("role = %q, want default USER", pub.Role)
	}
	if pub.Name != nil {
		t.Errorf("name = %v, want nil", *pub.Name)
	}
	if saved.PasswordHash == "pw" || saved.PasswordHash == "" {
		t.Error("stored password must be a hash, never plaintext")
	}

	result, err := svc.Login("a@x.com", "pw")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if result.Token == "" {
		t.Error("expected a token on successful login")
	}
	if result.User.ID != pub.ID {
		t.Errorf("login user id = %d, want %d", result.User.ID, pub.ID)
	}

	claims, err := creds.VerifyToken(result.Token)
	if err != nil {
		t.Fatalf("minted token failed verification: %v", err)
	}
	if claims.Subject != "a@x.com" {
		t.Errorf("token subject = %q, want the email", claims.Subject)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	existing := &models.User{ID: 1, Email: "a@x.com", PasswordHash: "$2a$10$x"}
	users := &mockUserStore{
		findByEmailFn: func(email string) (*models.User, error) {
			return existing, nil
		},
	}
	svc := NewAuthService(users, testAuthenticator())

	// Same or different password makes no difference.
	for _, pw := range []string{"pw", "other"} {
		if _, err := svc.Register(RegisterInput{Email: "a@x.com", Password: pw}); !errors.Is(err, ErrDuplicateEmail) {
			t.Errorf("Register(pw=%q) error = %v, want ErrDuplicateEmail", pw, err)
		}
	}
}

func TestRegisterRejectsUnknownRole(t *testing.T) {
	svc := NewAuthService(&mockUserStore{}, testAuthenticator())

	_, err := svc.Register(RegisterInput{Email: "a@x.com", Password: "pw", Role: "SUPERUSER"})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Register error = %v, want ValidationError", err)
	}
	if verr.Field != "role" {
		t.Errorf("field = %q, want role", verr.Field)
	}
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	creds := testAuthenticator()
	hash, err := creds.HashPassword("pw")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	known := &models.User{ID: 1, Email: "a@x.com", PasswordHash: hash, Role: models.RoleUser}

	users := &mockUserStore{
		findByEmailFn: func(email string) (*models.User, error) {
			if email == known.Email {
				return known, nil
			}
			return nil, store.ErrNotFound
		},
	}
	svc := NewAuthService(users, creds)

	_, wrongPassword := svc.Login("a@x.com", "wrong")
	_, unknownEmail := svc.Login("b@x.com", "pw")

	if !errors.Is(wrongPassword, ErrInvalidCredentials) {
		t.Errorf("wrong password error = %v, want ErrInvalidCredentials", wrongPassword)
	}
	if !errors.Is(unknownEmail, ErrInvalidCredentials) {
		t.Errorf("unknown email error = %v, want ErrInvalidCredentials", unknownEmail)
	}
	if wrongPassword.Error() != unknownEmail.Error() {
		t.Error("the two failure causes must not be distinguishable from the result")
	}

	// And the happy path still works.
	if _, err := svc.Login("a@x.com", "pw"); err != nil {
		t.Errorf("correct credentials failed: %v", err)
	}
}
