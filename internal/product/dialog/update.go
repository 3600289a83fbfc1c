package dialog

import (
	"context"
	"strings"

	"github.com/fekuna/omnipos-catalog-admin/internal/category"
	dlg "github.com/fekuna/omnipos-catalog-admin/internal/dialog"
	"github.com/fekuna/omnipos-catalog-admin/internal/model"
	"github.com/fekuna/omnipos-catalog-admin/internal/pkg/logger"
	"github.com/fekuna/omnipos-catalog-admin/internal/product"
	"github.com/fekuna/omnipos-catalog-admin/internal/product/dto"
	"go.uber.org/zap"
)

type UpdateDialog struct {
	editor
	logger logger.ZapLogger
	target model.Product
}

func NewUpdateDialog(products product.UseCase, log logger.ZapLogger) *UpdateDialog {
	return &UpdateDialog{editor: editor{products: products}, logger: log}
}

// Open seeds every field from the product currently in the collection.
func (d *UpdateDialog) Open(id string) error {
	snap := d.products.Snapshot()
	target, ok := findProduct(snap.Products, id)
	if !ok {
		return ErrProductNotFound
	}
	return d.machine.Open(func() {
		d.target = target
		d.name = target.Name
		d.description = target.Description
		d.price = target.Price.String()
		d.imageURL = target.ImageURL
		if in, err := category.Existing(target.Category, snap.Categories); err == nil {
			d.category = in
		} else {
			d.category = category.New(target.Category)
		}
	})
}

func (d *UpdateDialog) Target() model.Product {
	var p model.Product
	d.machine.Read(func() { p = d.target })
	return p
}

// Submit sends only the fields that differ from the seeded product. With
// nothing changed the dialog closes without calling the API.
func (d *UpdateDialog) Submit(ctx context.Context) (*model.Product, error) {
	form, err := d.beginSubmit()
	if err != nil {
		return nil, err
	}
	target := d.Target()

	input := changes(target, form)
	if input.IsEmpty() {
		d.logger.Debug("update dialog closed without changes", zap.String("product_id", target.ID))
		d.machine.Succeed()
		return &target, nil
	}

	p, err := d.products.UpdateProduct(ctx, target.ID, input)
	if err != nil {
		d.logger.Error("update dialog submit failed",
			zap.String("cycle", d.machine.Cycle()),
			zap.String("product_id", target.ID),
			zap.Error(err),
		)
		d.machine.Fail(failureMessage(err, MsgUpdateFailed))
		return nil, err
	}

	d.machine.Succeed()
	return p, nil
}

func changes(p model.Product, f Form) *dto.UpdateProductInput {
	in := &dto.UpdateProductInput{}
	if f.Name != strings.TrimSpace(p.Name) {
		in.Name = &f.Name
	}
	if f.Description != strings.TrimSpace(p.Description) {
		in.Description = &f.Description
	}
	if price, _ := dlg.ParseDecimal(f.Price); !price.Equal(p.Price) {
		in.Price = &price
	}
	if f.Category != strings.TrimSpace(p.Category) {
		in.Category = &f.Category
	}
	if f.ImageURL != strings.TrimSpace(p.ImageURL) {
		in.ImageURL = &f.ImageURL
	}
	return in
}

func findProduct(products []model.Product, id string) (model.Product, bool) {
	for _, p := range products {
		if p.ID == id {
			return p, true
		}
	}
	return model.Product{}, false
}
