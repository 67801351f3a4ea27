package usecase

import (
	"context"
	"errors"
	"log"

	"empedi/internal/domain/user"
	ucuser "empedi/internal/usecase/user"

	"github.com/google/uuid"
)

type UserUsecase interface {
	GetMe(ctx context.Context, userID uuid.UUID) (user.User, error)
	UpdateMe(ctx context.Context, userID uuid.UUID, in ucuser.UpdateMeInput) (user.User, error)
}

// User adapts the account service to the HTTP layer and logs the causes the
// service hides behind ucuser.ErrInternal.
type User struct {
	svc    *ucuser.Service
	logger *log.Logger
}

func NewUserUsecase(users user.Repository, logger *log.Logger) *User {
	if logger == nil {
		logger = log.Default()
	}
	return &User{svc: ucuser.NewService(users), logger: logger}
}

func (u *User) GetMe(ctx context.Context, userID uuid.UUID) (user.User, error) {
	usr, err := u.svc.GetMe(ctx, userID)
	return usr, u.logInternal("get", userID, err)
}

func (u *User) UpdateMe(ctx context.Context, userID uuid.UUID, in ucuser.UpdateMeInput) (user.User, error) {
	usr, err := u.svc.UpdateMe(ctx, userID, in)
	return usr, u.logInternal("update", userID, err)
}

func (u *User) logInternal(op string, userID uuid.UUID, err error) error {
	if err != nil && errors.Is(err, ucuser.ErrInternal) {
		u.logger.Printf("[User] %s failed user=%s err=%v", op, userID, err)
	}
	return err
}
