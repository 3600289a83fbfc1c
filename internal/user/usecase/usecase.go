package usecase

import (
	"context"
	"errors"

	"github.com/fekuna/omnipos-catalog-admin/internal/gateway"
	"github.com/fekuna/omnipos-catalog-admin/internal/model"
	"github.com/fekuna/omnipos-catalog-admin/internal/pkg/logger"
	"github.com/fekuna/omnipos-catalog-admin/internal/user"
	"github.com/fekuna/omnipos-catalog-admin/internal/user/dto"
	"go.uber.org/zap"
)

var (
	ErrMissingToken = errors.New("server did not issue a token")
	ErrNotSignedIn  = errors.New("not signed in")
)

// SessionStore is the part of the session the auth flows drive.
type SessionStore interface {
	Login(ctx context.Context, token string, user model.User) error
	SetUser(ctx context.Context, user model.User) error
	Logout(ctx context.Context) error
	Expire(ctx context.Context) error
	User() model.User
	IsAuthenticated() bool
}

type userUseCase struct {
	repo    user.Repository
	session SessionStore
	logger  logger.ZapLogger
}

func NewUserUseCase(repo user.Repository, session SessionStore, log logger.ZapLogger) user.UseCase {
	return &userUseCase{repo: repo, session: session, logger: log}
}

func (uc *userUseCase) SignIn(ctx context.Context, input *dto.SignInInput) (model.User, error) {
	resp, err := uc.repo.SignIn(ctx, input)
	if err != nil {
		uc.logger.Warn("sign in failed", zap.String("email", input.Email), zap.Error(err))
		return model.User{}, err
	}
	return uc.login(ctx, resp)
}

func (uc *userUseCase) SignUp(ctx context.Context, input *dto.SignUpInput) (model.User, error) {
	resp, err := uc.repo.SignUp(ctx, input)
	if err != nil {
		uc.logger.Warn("sign up failed", zap.String("email", input.Email), zap.Error(err))
		return model.User{}, err
	}
	return uc.login(ctx, resp)
}

// UpdateProfile saves the profile and replaces the session's user record.
func (uc *userUseCase) UpdateProfile(ctx context.Context, input *dto.UpdateUserInput) (model.User, error) {
	if !uc.session.IsAuthenticated() {
		return model.User{}, ErrNotSignedIn
	}
	u, err := uc.repo.Update(ctx, input)
	if err != nil {
		uc.logger.Error("update user failed", zap.Error(err))
		if gateway.IsUnauthorized(err) {
			if err := uc.session.Expire(ctx); err != nil {
				uc.logger.Error("clear session", zap.Error(err))
			}
		}
		return model.User{}, err
	}
	if err := uc.session.SetUser(ctx, *u); err != nil {
		return model.User{}, err
	}

	uc.logger.Info("user updated", zap.String("user_id", u.ID))
	return *u, nil
}

func (uc *userUseCase) Logout(ctx context.Context) error {
	return uc.session.Logout(ctx)
}

func (uc *userUseCase) CurrentUser() (model.User, bool) {
	if !uc.session.IsAuthenticated() {
		return model.User{}, false
	}
	return uc.session.User(), true
}

func (uc *userUseCase) login(ctx context.Context, resp *dto.AuthResponse) (model.User, error) {
	if resp.Token == "" {
		return model.User{}, ErrMissingToken
	}
	if err := uc.session.Login(ctx, resp.Token, resp.User); err != nil {
		return model.User{}, err
	}
	uc.logger.Info("signed in", zap.String("user_id", resp.User.ID))
	return resp.User, nil
}
