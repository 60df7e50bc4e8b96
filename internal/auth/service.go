package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/ayush/members-site/internal/gallery"
	"github.com/ayush/members-site/internal/models"
)

// UserStore defines the interface for user persistence.
type UserStore interface {
	// CreateUser inserts a new user record. It returns ErrEmailTaken when the
	// email is already registered.
	CreateUser(ctx context.Context, name, email, passwordHash string) (*models.User, error)

	// GetUserByEmail returns ErrUserNotFound when no user has the email.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// Service orchestrates the register and login flows and the members-page
// gate. All collaborators are injected; the service holds no global state.
type Service struct {
	users    UserStore
	hasher   PasswordHasher
	sessions *SessionStore
	images   *gallery.Gallery
	validate *formValidator
}

func NewService(users UserStore, hasher PasswordHasher, sessions *SessionStore, images *gallery.Gallery) *Service {
	return &Service{
		users:    users,
		hasher:   hasher,
		sessions: sessions,
		images:   images,
		validate: newFormValidator(),
	}
}

// Register validates the form, creates the user, and establishes a session.
// On success the returned session carries the user's name. Failures of any
// kind leave the session state untouched.
func (s *Service) Register(ctx context.Context, form models.RegisterForm) (sid string, err error) {
	if err := s.validate.check(form); err != nil {
		return "", err
	}

	// The unique index on email is authoritative; this lookup only makes the
	// common duplicate produce its answer without an insert attempt.
	_, err = s.users.GetUserByEmail(ctx, form.Email)
	if err == nil {
		return "", ErrEmailTaken
	}
	if !errors.Is(err, ErrUserNotFound) {
		return "", fmt.Errorf("lookup email: %w", err)
	}

	hash, err := s.hasher.Hash(form.Password)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	user, err := s.users.CreateUser(ctx, form.Name, form.Email, hash)
	if err != nil {
		if errors.Is(err, ErrEmailTaken) {
			return "", ErrEmailTaken
		}
		return "", fmt.Errorf("insert user: %w", err)
	}

	sid, err = s.sessions.Create(ctx, user.Name)
	if err != nil {
		return "", fmt.Errorf("create session: %w", err)
	}
	return sid, nil
}

// Login validates the form, checks the credentials, and establishes a session
// carrying the stored user name.
func (s *Service) Login(ctx context.Context, form models.LoginForm) (sid string, err error) {
	if err := s.validate.check(form); err != nil {
		return "", err
	}

	user, err := s.users.GetUserByEmail(ctx, form.Email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return "", ErrUserNotFound
		}
		return "", fmt.Errorf("lookup email: %w", err)
	}

	if !s.hasher.Check(form.Password, user.PasswordHash) {
		return "", ErrWrongPassword
	}

	sid, err = s.sessions.Create(ctx, user.Name)
	if err != nil {
		return "", fmt.Errorf("create session: %w", err)
	}
	return sid, nil
}

// Logout destroys the session unconditionally.
func (s *Service) Logout(ctx context.Context, sid string) error {
	if err := s.sessions.Delete(ctx, sid); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// MembersImage picks one image uniformly at random from the configured set.
// An empty or unreadable set is an error, never a silent default.
func (s *Service) MembersImage() (string, error) {
	return s.images.Random()
}
