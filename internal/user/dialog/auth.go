// Package dialog holds the sign-in, sign-up and profile dialogs.
package dialog

import (
	"context"
	"strings"

	dlg "github.com/fekuna/omnipos-catalog-admin/internal/dialog"
	"github.com/fekuna/omnipos-catalog-admin/internal/gateway"
	"github.com/fekuna/omnipos-catalog-admin/internal/model"
	"github.com/fekuna/omnipos-catalog-admin/internal/pkg/logger"
	"github.com/fekuna/omnipos-catalog-admin/internal/user"
	"github.com/fekuna/omnipos-catalog-admin/internal/user/dto"
	"go.uber.org/zap"
)

const (
	MsgSignInFailed = "Could not sign in. Check your email and password."
	MsgSignUpFailed = "Could not create the account. Please try again."
	MsgUpdateFailed = "Could not update your profile. Please try again."
)

type SignInForm struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type SignUpForm struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

var authMessages = dlg.Messages{
	"name.required":     "Name is required",
	"email.required":    "Email is required",
	"email.email":       "Enter a valid email address",
	"password.required": "Password is required",
	"password.min":      "Password must be at least 6 characters",
}

// normalizeEmail trims and lower-cases, as the API stores emails.
func normalizeEmail(v string) string {
	return strings.ToLower(strings.TrimSpace(v))
}

// failureMessage prefers what the server said over the static fallback.
func failureMessage(err error, fallback string) string {
	if msg := gateway.ServerMessage(err); msg != "" {
		return msg
	}
	return fallback
}

type SignInDialog struct {
	machine dlg.Machine
	users   user.UseCase
	logger  logger.ZapLogger

	email    string
	password string
}

func NewSignInDialog(users user.UseCase, log logger.ZapLogger) *SignInDialog {
	return &SignInDialog{users: users, logger: log}
}

func (d *SignInDialog) Open() error {
	return d.machine.Open(func() { d.email, d.password = "", "" })
}

func (d *SignInDialog) SetEmail(v string) error {
	return d.machine.Edit(func() error { d.email = v; return nil })
}

func (d *SignInDialog) SetPassword(v string) error {
	return d.machine.Edit(func() error { d.password = v; return nil })
}

func (d *SignInDialog) Submit(ctx context.Context) (model.User, error) {
	var form SignInForm
	err := d.machine.BeginSubmit(func() error {
		form = SignInForm{Email: normalizeEmail(d.email), Password: d.password}
		return dlg.Validate(form, authMessages)
	})
	if err != nil {
		return model.User{}, err
	}

	u, err := d.users.SignIn(ctx, &dto.SignInInput{Email: form.Email, Password: form.Password})
	if err != nil {
		d.logger.Warn("sign in dialog failed", zap.String("cycle", d.machine.Cycle()), zap.Error(err))
		d.machine.Fail(failureMessage(err, MsgSignInFailed))
		return model.User{}, err
	}
	d.machine.Succeed()
	return u, nil
}

func (d *SignInDialog) State() dlg.State { return d.machine.State() }
func (d *SignInDialog) Message() string  { return d.machine.Message() }

type SignUpDialog struct {
	machine dlg.Machine
	users   user.UseCase
	logger  logger.ZapLogger

	name     string
	email    string
	password string
}

func NewSignUpDialog(users user.UseCase, log logger.ZapLogger) *SignUpDialog {
	return &SignUpDialog{users: users, logger: log}
}

func (d *SignUpDialog) Open() error {
	return d.machine.Open(func() { d.name, d.email, d.password = "", "", "" })
}

func (d *SignUpDialog) SetName(v string) error {
	return d.machine.Edit(func() error { d.name = v; return nil })
}

func (d *SignUpDialog) SetEmail(v string) error {
	return d.machine.Edit(func() error { d.email = v; return nil })
}

func (d *SignUpDialog) SetPassword(v string) error {
	return d.machine.Edit(func() error { d.password = v; return nil })
}

func (d *SignUpDialog) Submit(ctx context.Context) (model.User, error) {
	var form SignUpForm
	err := d.machine.BeginSubmit(func() error {
		form = SignUpForm{
			Name:     strings.TrimSpace(d.name),
			Email:    normalizeEmail(d.email),
			Password: d.password,
		}
		return dlg.Validate(form, authMessages)
	})
	if err != nil {
		return model.User{}, err
	}

	u, err := d.users.SignUp(ctx, &dto.SignUpInput{Name: form.Name, Email: form.Email, Password: form.Password})
	if err != nil {
		d.logger.Warn("sign up dialog failed", zap.String("cycle", d.machine.Cycle()), zap.Error(err))
		d.machine.Fail(failureMessage(err, MsgSignUpFailed))
		return model.User{}, err
	}
	d.machine.Succeed()
	return u, nil
}

func (d *SignUpDialog) State() dlg.State { return d.machine.State() }
func (d *SignUpDialog) Message() string  { return d.machine.Message() }
