package repository

import (
	"context"
	"net/http"

	"github.com/fekuna/omnipos-catalog-admin/internal/gateway"
	"github.com/fekuna/omnipos-catalog-admin/internal/model"
	"github.com/fekuna/omnipos-catalog-admin/internal/user"
	"github.com/fekuna/omnipos-catalog-admin/internal/user/dto"
)

type httpRepository struct {
	client *gateway.Client
}

func NewHTTPRepository(client *gateway.Client) user.Repository {
	return &httpRepository{client: client}
}

func (r *httpRepository) SignIn(ctx context.Context, input *dto.SignInInput) (*dto.AuthResponse, error) {
	return r.auth(ctx, "sign in", "/auth/signin", input)
}

func (r *httpRepository) SignUp(ctx context.Context, input *dto.SignUpInput) (*dto.AuthResponse, error) {
	return r.auth(ctx, "sign up", "/auth/signup", input)
}

func (r *httpRepository) Update(ctx context.Context, input *dto.UpdateUserInput) (*model.User, error) {
	var resp dto.UserResponse
	err := r.client.Do(ctx, gateway.Request{
		Op:     "update user",
		Method: http.MethodPut,
		Path:   "/auth/update",
		Body:   input,
		Auth:   true,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp.User, nil
}

func (r *httpRepository) auth(ctx context.Context, op, path string, body any) (*dto.AuthResponse, error) {
	var resp dto.AuthResponse
	err := r.client.Do(ctx, gateway.Request{
		Op:     op,
		Method: http.MethodPost,
		Path:   path,
		Body:   body,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}
