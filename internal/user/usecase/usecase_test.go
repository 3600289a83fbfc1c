package usecase

import (
	"context"
	"net/http"
	"testing"

	"github.com/fekuna/omnipos-catalog-admin/internal/gateway"
	"github.com/fekuna/omnipos-catalog-admin/internal/model"
	"github.com/fekuna/omnipos-catalog-admin/internal/pkg/logger"
	"github.com/fekuna/omnipos-catalog-admin/internal/session"
	"github.com/fekuna/omnipos-catalog-admin/internal/session/repository"
	"github.com/fekuna/omnipos-catalog-admin/internal/user/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	auth   *dto.AuthResponse
	update func(*dto.UpdateUserInput) (*model.User, error)
}

func (f *fakeRepo) SignIn(context.Context, *dto.SignInInput) (*dto.AuthResponse, error) {
	return f.auth, nil
}

func (f *fakeRepo) SignUp(context.Context, *dto.SignUpInput) (*dto.AuthResponse, error) {
	return f.auth, nil
}

func (f *fakeRepo) Update(_ context.Context, in *dto.UpdateUserInput) (*model.User, error) {
	return f.update(in)
}

func openSession(t *testing.T) (*session.Session, *repository.MemoryRepository) {
	t.Helper()
	repo := repository.NewMemoryRepository()
	sess, err := session.Open(context.Background(), repo, logger.NewNopLogger())
	require.NoError(t, err)
	return sess, repo
}

func TestSignInStartsSession(t *testing.T) {
	sess, _ := openSession(t)
	uc := NewUserUseCase(&fakeRepo{auth: &dto.AuthResponse{
		Token: "tok",
		User:  model.User{ID: "u1", Name: "Ana", Email: "ana@example.com"},
	}}, sess, logger.NewNopLogger())

	u, err := uc.SignIn(context.Background(), &dto.SignInInput{Email: "ana@example.com", Password: "secret1"})

	require.NoError(t, err)
	assert.Equal(t, "Ana", u.Name)
	current, ok := uc.CurrentUser()
	assert.True(t, ok)
	assert.Equal(t, u, current)
}

func TestSignInWithoutTokenFails(t *testing.T) {
	sess, _ := openSession(t)
	uc := NewUserUseCase(&fakeRepo{auth: &dto.AuthResponse{}}, sess, logger.NewNopLogger())

	_, err := uc.SignUp(context.Background(), &dto.SignUpInput{})

	assert.ErrorIs(t, err, ErrMissingToken)
	assert.False(t, sess.IsAuthenticated())
}

func TestLogoutClearsStorage(t *testing.T) {
	sess, repo := openSession(t)
	require.NoError(t, sess.Login(context.Background(), "tok", model.User{Name: "Ana"}))
	uc := NewUserUseCase(&fakeRepo{}, sess, logger.NewNopLogger())

	require.NoError(t, uc.Logout(context.Background()))

	_, ok := uc.CurrentUser()
	assert.False(t, ok)
	for _, key := range []string{session.KeyToken, session.KeyUser} {
		_, found, err := repo.Get(context.Background(), key)
		require.NoError(t, err)
		assert.False(t, found, key)
	}
}

func TestUpdateProfileUnauthorizedExpiresSession(t *testing.T) {
	sess, _ := openSession(t)
	require.NoError(t, sess.Login(context.Background(), "tok", model.User{Name: "Ana"}))
	uc := NewUserUseCase(&fakeRepo{update: func(*dto.UpdateUserInput) (*model.User, error) {
		return nil, &gateway.Error{Op: "update user", StatusCode: http.StatusForbidden, Err: gateway.ErrUnauthorized}
	}}, sess, logger.NewNopLogger())
	name := "Bia"

	_, err := uc.UpdateProfile(context.Background(), &dto.UpdateUserInput{Name: &name})

	assert.True(t, gateway.IsUnauthorized(err))
	assert.False(t, sess.IsAuthenticated())
}

func TestUpdateProfileReplacesSessionUser(t *testing.T) {
	sess, _ := openSession(t)
	require.NoError(t, sess.Login(context.Background(), "tok", model.User{ID: "u1", Name: "Ana"}))
	uc := NewUserUseCase(&fakeRepo{update: func(in *dto.UpdateUserInput) (*model.User, error) {
		assert.Nil(t, in.Password)
		return &model.User{ID: "u1", Name: *in.Name, Email: "ana@example.com"}, nil
	}}, sess, logger.NewNopLogger())
	name := "Bia"

	u, err := uc.UpdateProfile(context.Background(), &dto.UpdateUserInput{Name: &name})

	require.NoError(t, err)
	assert.Equal(t, u, sess.User())
	assert.Equal(t, "tok", sess.Token())
}
