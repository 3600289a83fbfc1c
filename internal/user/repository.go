package user

import (
	"context"

	"github.com/fekuna/omnipos-catalog-admin/internal/model"
	"github.com/fekuna/omnipos-catalog-admin/internal/user/dto"
)

type Repository interface {
	SignIn(ctx context.Context, input *dto.SignInInput) (*dto.AuthResponse, error)
	SignUp(ctx context.Context, input *dto.SignUpInput) (*dto.AuthResponse, error)
	Update(ctx context.Context, input *dto.UpdateUserInput) (*model.User, error)
}
