package dialog

import (
	"context"

	"github.com/fekuna/omnipos-catalog-admin/internal/category"
	dlg "github.com/fekuna/omnipos-catalog-admin/internal/dialog"
	"github.com/fekuna/omnipos-catalog-admin/internal/model"
	"github.com/fekuna/omnipos-catalog-admin/internal/pkg/logger"
	"github.com/fekuna/omnipos-catalog-admin/internal/product"
	"github.com/fekuna/omnipos-catalog-admin/internal/product/dto"
	"go.uber.org/zap"
)

type CreateDialog struct {
	editor
	logger logger.ZapLogger
}

func NewCreateDialog(products product.UseCase, log logger.ZapLogger) *CreateDialog {
	return &CreateDialog{editor: editor{products: products}, logger: log}
}

// Open starts with an empty form.
func (d *CreateDialog) Open() error {
	return d.machine.Open(func() {
		d.name, d.description, d.price, d.imageURL = "", "", "", ""
		d.category = category.New("")
	})
}

// Submit validates the form and creates the product. On success the product
// is already in the collection and the dialog is closed.
func (d *CreateDialog) Submit(ctx context.Context) (*model.Product, error) {
	form, err := d.beginSubmit()
	if err != nil {
		return nil, err
	}

	price, _ := dlg.ParseDecimal(form.Price)
	p, err := d.products.CreateProduct(ctx, &dto.CreateProductInput{
		Name:        form.Name,
		Description: form.Description,
		Price:       price,
		Category:    form.Category,
		ImageURL:    form.ImageURL,
	})
	if err != nil {
		d.logger.Error("create dialog submit failed", zap.String("cycle", d.machine.Cycle()), zap.Error(err))
		d.machine.Fail(failureMessage(err, MsgCreateFailed))
		return nil, err
	}

	d.machine.Succeed()
	return p, nil
}
