package dialog

import (
	"context"

	dlg "github.com/fekuna/omnipos-catalog-admin/internal/dialog"
	"github.com/fekuna/omnipos-catalog-admin/internal/model"
	"github.com/fekuna/omnipos-catalog-admin/internal/pkg/logger"
	"github.com/fekuna/omnipos-catalog-admin/internal/product"
	"go.uber.org/zap"
)

// DeleteDialog asks for confirmation before removing a product.
type DeleteDialog struct {
	machine  dlg.Machine
	products product.UseCase
	logger   logger.ZapLogger
	target   model.Product
}

func NewDeleteDialog(products product.UseCase, log logger.ZapLogger) *DeleteDialog {
	return &DeleteDialog{products: products, logger: log}
}

func (d *DeleteDialog) Open(id string) error {
	target, ok := findProduct(d.products.Snapshot().Products, id)
	if !ok {
		return ErrProductNotFound
	}
	return d.machine.Open(func() { d.target = target })
}

func (d *DeleteDialog) Target() model.Product {
	var p model.Product
	d.machine.Read(func() { p = d.target })
	return p
}

func (d *DeleteDialog) Confirm(ctx context.Context) error {
	if err := d.machine.BeginSubmit(nil); err != nil {
		return err
	}
	target := d.Target()

	if err := d.products.DeleteProduct(ctx, target.ID); err != nil {
		d.logger.Error("delete dialog confirm failed",
			zap.String("cycle", d.machine.Cycle()),
			zap.String("product_id", target.ID),
			zap.Error(err),
		)
		d.machine.Fail(failureMessage(err, MsgDeleteFailed))
		return err
	}

	d.machine.Succeed()
	return nil
}

func (d *DeleteDialog) State() dlg.State { return d.machine.State() }
func (d *DeleteDialog) Message() string  { return d.machine.Message() }
func (d *DeleteDialog) IsOpen() bool     { return d.machine.IsOpen() }
func (d *DeleteDialog) Cancel() error    { return d.machine.Cancel() }
