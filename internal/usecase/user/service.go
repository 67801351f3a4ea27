package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"empedi/internal/domain/user"
	"empedi/internal/usecase/auth"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("user not found")
	ErrEmailTaken   = errors.New("email already in use")
	ErrInternal     = errors.New("internal error")
)

// UpdateMeInput holds optional fields; nil leaves the stored value alone.
// Account type is fixed at registration.
type UpdateMeInput struct {
	Name      *string
	Email     *string
	Phone     *string
	AvatarURL *string
	Password  *string
}

type Service struct {
	users user.Repository
}

func NewService(users user.Repository) *Service {
	return &Service{users: users}
}

func (s *Service) GetMe(ctx context.Context, userID uuid.UUID) (user.User, error) {
	usr, err := s.load(ctx, userID)
	if err != nil {
		return user.User{}, err
	}
	return auth.Sanitize(usr), nil
}

func (s *Service) UpdateMe(ctx context.Context, userID uuid.UUID, in UpdateMeInput) (user.User, error) {
	usr, err := s.load(ctx, userID)
	if err != nil {
		return user.User{}, err
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return user.User{}, ErrInvalidInput
		}
		usr.Name = name
	}
	if in.Email != nil {
		email := auth.NormalizeEmail(*in.Email)
		if email == "" {
			return user.User{}, ErrInvalidInput
		}
		usr.Email = email
	}
	if in.Phone != nil {
		usr.Phone = strings.TrimSpace(*in.Phone)
	}
	if in.AvatarURL != nil {
		avatar := strings.TrimSpace(*in.AvatarURL)
		if avatar == "" {
			usr.AvatarURL = nil
		} else {
			usr.AvatarURL = &avatar
		}
	}
	if in.Password != nil {
		if !auth.ValidPassword(*in.Password) {
			return user.User{}, ErrInvalidInput
		}
		hash, err := auth.HashPassword(*in.Password)
		if err != nil {
			return user.User{}, fmt.Errorf("%w: hash password: %w", ErrInternal, err)
		}
		usr.PasswordHash = hash
	}

	if err := s.users.UpdateUser(ctx, usr); err != nil {
		if errors.Is(err, user.ErrEmailTaken) {
			return user.User{}, ErrEmailTaken
		}
		return user.User{}, fmt.Errorf("%w: update user: %w", ErrInternal, err)
	}

	return s.GetMe(ctx, userID)
}

func (s *Service) load(ctx context.Context, userID uuid.UUID) (user.User, error) {
	usr, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, ErrNotFound
		}
		return user.User{}, fmt.Errorf("%w: load user: %w", ErrInternal, err)
	}
	return usr, nil
}
