// Package dialog drives the create, update and delete product dialogs.
package dialog

import (
	"errors"
	"strings"

	"github.com/fekuna/omnipos-catalog-admin/internal/category"
	dlg "github.com/fekuna/omnipos-catalog-admin/internal/dialog"
	"github.com/fekuna/omnipos-catalog-admin/internal/gateway"
	"github.com/fekuna/omnipos-catalog-admin/internal/product"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrInactiveSource  = errors.New("that category control is not active")
)

const (
	MsgCreateFailed   = "Could not create the product. Please try again."
	MsgUpdateFailed   = "Could not update the product. Please try again."
	MsgDeleteFailed   = "Could not delete the product. Please try again."
	MsgSessionExpired = "Your session has expired. Please sign in again."
)

// Form is the validated shape of the product dialogs, in rule order.
type Form struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description" validate:"required"`
	Price       string `json:"price" validate:"required,decimal,positive"`
	Category    string `json:"category" validate:"required"`
	ImageURL    string `json:"image_url" validate:"omitempty,url"`
}

var formMessages = dlg.Messages{
	"name.required":        "Name is required",
	"description.required": "Description is required",
	"price.required":       "Price is required",
	"price.decimal":        "Price must be a number",
	"price.positive":       "Price must be greater than zero",
	"category.required":    "Category is required",
	"image_url.url":        "Image URL must be a valid absolute URL",
}

// editor holds the field state shared by the create and update dialogs.
type editor struct {
	machine  dlg.Machine
	products product.UseCase

	name        string
	description string
	price       string
	imageURL    string
	category    category.Input
}

func (e *editor) SetName(v string) error {
	return e.machine.Edit(func() error { e.name = v; return nil })
}

func (e *editor) SetDescription(v string) error {
	return e.machine.Edit(func() error { e.description = v; return nil })
}

// SetPrice accepts text or a number.
func (e *editor) SetPrice(v any) error {
	return e.machine.Edit(func() error {
		text, err := dlg.CoerceText(v)
		if err != nil {
			return err
		}
		e.price = text
		return nil
	})
}

func (e *editor) SetImageURL(v string) error {
	return e.machine.Edit(func() error { e.imageURL = v; return nil })
}

// SetCategoryMode toggles between typing a new category and picking an
// existing one. The other control's value is discarded.
func (e *editor) SetCategoryMode(mode category.Mode) error {
	return e.machine.Edit(func() error { e.category = e.category.Switch(mode); return nil })
}

// SetCategoryText types into the free-text control.
func (e *editor) SetCategoryText(v string) error {
	return e.machine.Edit(func() error {
		if e.category.Mode() != category.ModeNew {
			return ErrInactiveSource
		}
		e.category = category.New(v)
		return nil
	})
}

// SelectCategory picks from the current category set.
func (e *editor) SelectCategory(name string) error {
	set := e.products.Categories()
	return e.machine.Edit(func() error {
		if e.category.Mode() != category.ModeExisting {
			return ErrInactiveSource
		}
		in, err := category.Existing(name, set)
		if err != nil {
			return err
		}
		e.category = in
		return nil
	})
}

func (e *editor) CategoryMode() category.Mode {
	var mode category.Mode
	e.machine.Read(func() { mode = e.category.Mode() })
	return mode
}

// Values returns the form as it would be submitted.
func (e *editor) Values() Form {
	var f Form
	e.machine.Read(func() { f = e.formLocked() })
	return f
}

func (e *editor) State() dlg.State { return e.machine.State() }
func (e *editor) Message() string  { return e.machine.Message() }
func (e *editor) IsOpen() bool     { return e.machine.IsOpen() }
func (e *editor) Cancel() error    { return e.machine.Cancel() }

// formLocked trims every text field; a blank value fails its required rule.
func (e *editor) formLocked() Form {
	return Form{
		Name:        strings.TrimSpace(e.name),
		Description: strings.TrimSpace(e.description),
		Price:       strings.TrimSpace(e.price),
		Category:    strings.TrimSpace(e.category.Resolve()),
		ImageURL:    strings.TrimSpace(e.imageURL),
	}
}

// beginSubmit validates under the dialog lock and returns what was validated.
func (e *editor) beginSubmit() (Form, error) {
	var f Form
	err := e.machine.BeginSubmit(func() error {
		f = e.formLocked()
		return dlg.Validate(f, formMessages)
	})
	return f, err
}

func failureMessage(err error, fallback string) string {
	if gateway.IsUnauthorized(err) {
		return MsgSessionExpired
	}
	return fallback
}
