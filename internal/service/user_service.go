package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"leaar-backend/internal/domain"
	"leaar-backend/internal/repository"
	"leaar-backend/internal/validate"
)

var (
	// ErrInvalidCredentials is returned for an unknown email or a wrong
	// password alike, so callers cannot enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrDuplicateEmail is returned when the email is already registered.
	ErrDuplicateEmail = errors.New("user already exists with this email")
	// ErrPasswordUnchanged rejects a password change to the current password.
	ErrPasswordUnchanged = errors.New("new password must differ from the old one")
	// ErrUserNotFound indicates the user id no longer resolves.
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidAdminKey rejects admin bootstrap with a wrong shared secret.
	ErrInvalidAdminKey = errors.New("invalid admin key")
)

// ValidationError marks input rejected by a field predicate before any
// persistence work happens.
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string { return e.Err.Error() }

func (e *ValidationError) Unwrap() error { return e.Err }

// RegisterInput carries the self-registration fields. Phone and Age are
// optional; zero values mean "not supplied".
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Phone    string
	Age      int
}

// ProfilePatch distinguishes "field absent" (nil) from "field present with a
// zero value" so legitimate empty updates are not silently dropped.
type ProfilePatch struct {
	Name   *string
	Phone  *string
	Age    *int
	Bio    *string
	Avatar *string
}

// UserService owns the credential write path (hash-on-save) and read path
// (verify-on-login). Every user it returns is sanitized: the password hash
// never leaves this package.
type UserService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	CreateAdmin(ctx context.Context, in RegisterInput, adminKey string) (*domain.User, error)
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	UpdateProfile(ctx context.Context, id string, patch ProfilePatch) (*domain.User, error)
	SetAvatar(ctx context.Context, id, location string) (*domain.User, error)
	ChangePassword(ctx context.Context, id, oldPassword, newPassword string) error
	DeleteAccount(ctx context.Context, id, password string) error
}

type userService struct {
	users       repository.UserRepository
	adminSecret string
}

func NewUserService(users repository.UserRepository, adminSecret string) UserService {
	return &userService{
		users:       users,
		adminSecret: strings.TrimSpace(adminSecret),
	}
}

func (s *userService) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	return s.create(ctx, in, domain.RoleUser, false)
}

// CreateAdmin is the privileged bootstrap path. It requires the out-of-band
// admin secret to be configured and to match, compared in constant time.
func (s *userService) CreateAdmin(ctx context.Context, in RegisterInput, adminKey string) (*domain.User, error) {
	if s.adminSecret == "" {
		return nil, fmt.Errorf("admin secret is not configured")
	}
	if subtle.ConstantTimeCompare([]byte(strings.TrimSpace(adminKey)), []byte(s.adminSecret)) != 1 {
		return nil, ErrInvalidAdminKey
	}
	return s.create(ctx, in, domain.RoleAdmin, true)
}

func (s *userService) create(ctx context.Context, in RegisterInput, role domain.Role, verified bool) (*domain.User, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Phone = strings.TrimSpace(in.Phone)

	if err := firstInvalid(
		validate.Name(in.Name),
		validate.Email(in.Email),
		validate.Password(in.Password),
		validate.Phone(in.Phone),
		validate.Age(in.Age),
	); err != nil {
		return nil, err
	}

	if _, err := s.users.GetByEmail(ctx, in.Email); err == nil {
		return nil, ErrDuplicateEmail
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		ID:           uuid.NewString(),
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: string(hash),
		Phone:        in.Phone,
		Age:          in.Age,
		Role:         role,
		IsVerified:   verified,
	}

	if err := s.users.Create(ctx, user); err != nil {
		// unique index on email is the backstop against a concurrent register
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}

	return sanitizeUser(user), nil
}

func (s *userService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	now := time.Now().UTC()
	user.LastLogin = &now
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	return sanitizeUser(user), nil
}

func (s *userService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return sanitizeUser(user), nil
}

func (s *userService) List(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	sanitized := make([]domain.User, len(users))
	for i := range users {
		sanitized[i] = *sanitizeUser(&users[i])
	}
	return sanitized, nil
}

func (s *userService) UpdateProfile(ctx context.Context, id string, patch ProfilePatch) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if err := validate.Name(name); err != nil {
			return nil, invalid(err)
		}
		user.Name = name
	}
	if patch.Phone != nil {
		phone := strings.TrimSpace(*patch.Phone)
		if err := validate.Phone(phone); err != nil {
			return nil, invalid(err)
		}
		user.Phone = phone
	}
	if patch.Age != nil {
		if err := validate.Age(*patch.Age); err != nil {
			return nil, invalid(err)
		}
		user.Age = *patch.Age
	}
	if patch.Bio != nil {
		bio := strings.TrimSpace(*patch.Bio)
		if err := validate.Bio(bio); err != nil {
			return nil, invalid(err)
		}
		user.Bio = bio
	}
	if patch.Avatar != nil {
		user.Avatar = strings.TrimSpace(*patch.Avatar)
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return sanitizeUser(user), nil
}

func (s *userService) SetAvatar(ctx context.Context, id, location string) (*domain.User, error) {
	return s.UpdateProfile(ctx, id, ProfilePatch{Avatar: &location})
}

func (s *userService) ChangePassword(ctx context.Context, id, oldPassword, newPassword string) error {
	if err := validate.Password(newPassword); err != nil {
		return invalid(err)
	}

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(oldPassword)); err != nil {
		return ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(newPassword)); err == nil {
		return ErrPasswordUnchanged
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	user.PasswordHash = string(hash)
	return s.users.Update(ctx, user)
}

// DeleteAccount permanently removes the account after re-verifying the
// current password.
func (s *userService) DeleteAccount(ctx context.Context, id, password string) error {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return ErrInvalidCredentials
	}

	return s.users.Delete(ctx, user.ID)
}

func sanitizeUser(user *domain.User) *domain.User {
	if user == nil {
		return nil
	}
	clean := *user
	clean.PasswordHash = ""
	return &clean
}

func invalid(err error) error {
	return &ValidationError{Err: err}
}

func firstInvalid(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return invalid(err)
		}
	}
	return nil
}
