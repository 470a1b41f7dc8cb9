package stock

import (
	"context"
	"fmt"

	"github.com/jhoicas/manufactura-erp/internal/application/ledger"
	"github.com/jhoicas/manufactura-erp/internal/domain"
	"github.com/jhoicas/manufactura-erp/internal/domain/entity"
)

// ReceiveInput entrada para recibir una línea de orden de compra.
type ReceiveInput struct {
	POItemID   string
	LocationID string
	Qty        int64 // > 0, <= pendiente por recibir
	UserID     string
}

// ReceivePurchase registra la recepción de una línea de compra: una entrada
// positiva (purchase) al ledger y el decremento de lo pendiente en la línea,
// todo en una transacción. La línea se bloquea antes de verificar lo
// pendiente, así dos recepciones concurrentes de la misma línea no pueden
// sobre-recibir.
func (e *Emitters) ReceivePurchase(ctx context.Context, in ReceiveInput) (*ledger.Result, error) {
	if in.Qty <= 0 {
		return nil, fmt.Errorf("%w: la cantidad a recibir debe ser positiva", domain.ErrInvalidQuantity)
	}
	var res *ledger.Result
	err := e.txRunner.Run(ctx, func(tx ledger.TxRepos) error {
		item, err := tx.PurchaseOrder.GetItemForUpdate(ctx, in.POItemID)
		if err != nil {
			return err
		}
		if item == nil {
			return fmt.Errorf("%w: línea de orden de compra %s", domain.ErrNotFound, in.POItemID)
		}
		if item.Remaining() == 0 {
			return fmt.Errorf("%w: línea %s ya recibida por completo", domain.ErrNotFound, in.POItemID)
		}
		if in.Qty > item.Remaining() {
			return fmt.Errorf("%w: recibir %d excede lo pendiente (%d)", domain.ErrInvalidInput, in.Qty, item.Remaining())
		}

		res, err = ledger.AppendInTx(ctx, tx, []ledger.Draft{{
			ProductID:  item.ProductID,
			LocationID: in.LocationID,
			Type:       entity.TxTypePurchase,
			Qty:        in.Qty,
			RefType:    entity.RefPurchaseOrderItem,
			RefID:      item.ID,
			CreatedBy:  in.UserID,
		}}, ledger.Options{})
		if err != nil {
			return err
		}

		item.QtyReceived += in.Qty
		if err := tx.PurchaseOrder.UpdateItemReceived(ctx, item); err != nil {
			return err
		}
		return refreshPOStatus(ctx, tx, item)
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// refreshPOStatus deriva el estado de la orden desde sus líneas:
// received si todas quedaron completas, partial si alguna recibió algo.
func refreshPOStatus(ctx context.Context, tx ledger.TxRepos, updated *entity.PurchaseOrderItem) error {
	po, err := tx.PurchaseOrder.GetByID(ctx, updated.POID)
	if err != nil {
		return err
	}
	if po == nil {
		return fmt.Errorf("%w: orden de compra %s", domain.ErrNotFound, updated.POID)
	}
	allDone := true
	for _, it := range po.Items {
		qtyReceived := it.QtyReceived
		if it.ID == updated.ID {
			qtyReceived = updated.QtyReceived
		}
		if qtyReceived < it.QtyOrdered {
			allDone = false
			break
		}
	}
	status := entity.POStatusPartial
	if allDone {
		status = entity.POStatusReceived
	}
	if po.Status == status {
		return nil
	}
	return tx.PurchaseOrder.UpdateStatus(ctx, po.ID, status)
}
