package usecase

import (
	"context"

	"github.com/muskan-fatima97/ClassyShop/internal/entity"
	"go.uber.org/zap"
)

type UserLister interface {
	ListByRole(ctx context.Context, role string) ([]*entity.User, error)
}

type UserUsecase struct {
	users  UserLister
	logger *zap.Logger
}

func NewUserUsecase(users UserLister, logger *zap.Logger) *UserUsecase {
	return &UserUsecase{
		users:  users,
		logger: logger.Named("UserUsecase"),
	}
}

// ListCustomers returns customer accounts only; admins never appear in
// the listing. Password hashes are dropped at the JSON boundary.
func (uc *UserUsecase) ListCustomers(ctx context.Context) ([]*entity.User, error) {
	return uc.users.ListByRole(ctx, entity.RoleUser)
}
