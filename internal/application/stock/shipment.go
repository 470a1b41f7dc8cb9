package stock

import (
	"context"
	"fmt"

	"github.com/jhoicas/manufactura-erp/internal/application/ledger"
	"github.com/jhoicas/manufactura-erp/internal/domain"
	"github.com/jhoicas/manufactura-erp/internal/domain/entity"
)

// ShipInput entrada para despachar una línea de orden de venta.
type ShipInput struct {
	SOItemID   string
	LocationID string
	Qty        int64 // > 0, <= pendiente por despachar
	UserID     string
}

// ShipSale registra el despacho de una línea de venta: una entrada negativa
// (sale) al ledger con guarda de stock disponible, y el incremento de lo
// despachado en la línea. Si el balance no alcanza, falla con
// ErrInsufficientStock y nada queda escrito.
func (e *Emitters) ShipSale(ctx context.Context, in ShipInput) (*ledger.Result, error) {
	if in.Qty <= 0 {
		return nil, fmt.Errorf("%w: la cantidad a despachar debe ser positiva", domain.ErrInvalidQuantity)
	}
	var res *ledger.Result
	err := e.txRunner.Run(ctx, func(tx ledger.TxRepos) error {
		item, err := tx.SalesOrder.GetItemForUpdate(ctx, in.SOItemID)
		if err != nil {
			return err
		}
		if item == nil {
			return fmt.Errorf("%w: línea de orden de venta %s", domain.ErrNotFound, in.SOItemID)
		}
		if item.Remaining() == 0 {
			return fmt.Errorf("%w: línea %s ya despachada por completo", domain.ErrNotFound, in.SOItemID)
		}
		if in.Qty > item.Remaining() {
			return fmt.Errorf("%w: despachar %d excede lo pendiente (%d)", domain.ErrInvalidInput, in.Qty, item.Remaining())
		}

		res, err = ledger.AppendInTx(ctx, tx, []ledger.Draft{{
			ProductID:  item.ProductID,
			LocationID: in.LocationID,
			Type:       entity.TxTypeSale,
			Qty:        -in.Qty,
			RefType:    entity.RefSalesOrderItem,
			RefID:      item.ID,
			CreatedBy:  in.UserID,
		}}, ledger.Options{EnforceNonNegative: true})
		if err != nil {
			return err
		}

		item.QtyShipped += in.Qty
		if err := tx.SalesOrder.UpdateItemShipped(ctx, item); err != nil {
			return err
		}
		return refreshSOStatus(ctx, tx, item)
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// refreshSOStatus deriva el estado de la orden de venta desde sus líneas.
func refreshSOStatus(ctx context.Context, tx ledger.TxRepos, updated *entity.SalesOrderItem) error {
	so, err := tx.SalesOrder.GetByID(ctx, updated.SOID)
	if err != nil {
		return err
	}
	if so == nil {
		return fmt.Errorf("%w: orden de venta %s", domain.ErrNotFound, updated.SOID)
	}
	allDone := true
	for _, it := range so.Items {
		qtyShipped := it.QtyShipped
		if it.ID == updated.ID {
			qtyShipped = updated.QtyShipped
		}
		if qtyShipped < it.QtyOrdered {
			allDone = false
			break
		}
	}
	status := entity.SOStatusPartial
	if allDone {
		status = entity.SOStatusShipped
	}
	if so.Status == status {
		return nil
	}
	return tx.SalesOrder.UpdateStatus(ctx, so.ID, status)
}
