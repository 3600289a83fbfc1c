package user

import (
	"context"

	"github.com/fekuna/omnipos-catalog-admin/internal/model"
	"github.com/fekuna/omnipos-catalog-admin/internal/user/dto"
)

type UseCase interface {
	SignIn(ctx context.Context, input *dto.SignInInput) (model.User, error)
	SignUp(ctx context.Context, input *dto.SignUpInput) (model.User, error)
	UpdateProfile(ctx context.Context, input *dto.UpdateUserInput) (model.User, error)
	Logout(ctx context.Context) error
	CurrentUser() (model.User, bool)
}
