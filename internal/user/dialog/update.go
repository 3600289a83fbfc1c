package dialog

import (
	"context"
	"strings"

	dlg "github.com/fekuna/omnipos-catalog-admin/internal/dialog"
	"github.com/fekuna/omnipos-catalog-admin/internal/model"
	"github.com/fekuna/omnipos-catalog-admin/internal/pkg/logger"
	"github.com/fekuna/omnipos-catalog-admin/internal/user"
	"github.com/fekuna/omnipos-catalog-admin/internal/user/dto"
	"go.uber.org/zap"
)

// UpdateUserForm has no required fields; blank values are not sent.
type UpdateUserForm struct {
	Name     string `json:"name"`
	Email    string `json:"email" validate:"omitempty,email"`
	Password string `json:"password" validate:"omitempty,min=6"`
}

type UpdateUserDialog struct {
	machine dlg.Machine
	users   user.UseCase
	logger  logger.ZapLogger

	current  model.User
	name     string
	email    string
	password string
}

func NewUpdateUserDialog(users user.UseCase, log logger.ZapLogger) *UpdateUserDialog {
	return &UpdateUserDialog{users: users, logger: log}
}

// Open seeds name and email from the signed-in user. The password starts blank.
func (d *UpdateUserDialog) Open() error {
	current, _ := d.users.CurrentUser()
	return d.machine.Open(func() {
		d.current = current
		d.name, d.email, d.password = current.Name, current.Email, ""
	})
}

func (d *UpdateUserDialog) SetName(v string) error {
	return d.machine.Edit(func() error { d.name = v; return nil })
}

func (d *UpdateUserDialog) SetEmail(v string) error {
	return d.machine.Edit(func() error { d.email = v; return nil })
}

func (d *UpdateUserDialog) SetPassword(v string) error {
	return d.machine.Edit(func() error { d.password = v; return nil })
}

func (d *UpdateUserDialog) Values() UpdateUserForm {
	var f UpdateUserForm
	d.machine.Read(func() { f = d.formLocked() })
	return f
}

// Submit sends the changed fields. With nothing to send the dialog closes
// without calling the API.
func (d *UpdateUserDialog) Submit(ctx context.Context) (model.User, error) {
	var (
		form    UpdateUserForm
		current model.User
	)
	err := d.machine.BeginSubmit(func() error {
		form, current = d.formLocked(), d.current
		return dlg.Validate(form, authMessages)
	})
	if err != nil {
		return model.User{}, err
	}

	input := &dto.UpdateUserInput{}
	if form.Name != "" && form.Name != current.Name {
		input.Name = &form.Name
	}
	if form.Email != "" && form.Email != normalizeEmail(current.Email) {
		input.Email = &form.Email
	}
	if form.Password != "" {
		input.Password = &form.Password
	}
	if input.IsEmpty() {
		d.machine.Succeed()
		return current, nil
	}

	u, err := d.users.UpdateProfile(ctx, input)
	if err != nil {
		d.logger.Error("update user dialog failed", zap.String("cycle", d.machine.Cycle()), zap.Error(err))
		d.machine.Fail(MsgUpdateFailed)
		return model.User{}, err
	}
	d.machine.Succeed()
	return u, nil
}

func (d *UpdateUserDialog) formLocked() UpdateUserForm {
	return UpdateUserForm{
		Name:     strings.TrimSpace(d.name),
		Email:    normalizeEmail(d.email),
		Password: d.password,
	}
}

func (d *UpdateUserDialog) State() dlg.State { return d.machine.State() }
func (d *UpdateUserDialog) Message() string  { return d.machine.Message() }
func (d *UpdateUserDialog) IsOpen() bool     { return d.machine.IsOpen() }
func (d *UpdateUserDialog) Cancel() error    { return d.machine.Cancel() }
