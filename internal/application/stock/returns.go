package stock

import (
	"context"
	"fmt"

	"github.com/jhoicas/manufactura-erp/internal/application/ledger"
	"github.com/jhoicas/manufactura-erp/internal/domain"
	"github.com/jhoicas/manufactura-erp/internal/domain/entity"
)

// Categorías de devolución: la categoría decide la dirección del movimiento.
const (
	ReturnCustomer = "customer" // el cliente devuelve mercancía: entrada (+)
	ReturnSupplier = "supplier" // se devuelve al proveedor: salida (−)
)

// ReturnInput entrada para una devolución.
type ReturnInput struct {
	Category   string // customer | supplier
	RefItemID  string // línea de venta (customer) o de compra (supplier) que originó la mercancía
	LocationID string
	Qty        int64 // > 0; la dirección la pone la categoría, no el signo
	UserID     string
}

// Return registra una devolución. Customer: entrada positiva referida a la
// línea de venta original. Supplier: salida negativa con guarda de stock,
// referida a la línea de compra original. La línea referenciada debe existir
// y haber movido mercancía; si no, ErrNotFound.
func (e *Emitters) Return(ctx context.Context, in ReturnInput) (*ledger.Result, error) {
	if in.Qty <= 0 {
		return nil, fmt.Errorf("%w: la cantidad a devolver debe ser positiva", domain.ErrInvalidQuantity)
	}
	if in.Category != ReturnCustomer && in.Category != ReturnSupplier {
		return nil, fmt.Errorf("%w: categoría de devolución %q", domain.ErrInvalidInput, in.Category)
	}
	var res *ledger.Result
	err := e.txRunner.Run(ctx, func(tx ledger.TxRepos) error {
		draft, err := e.returnDraft(ctx, tx, in)
		if err != nil {
			return err
		}
		opts := ledger.Options{EnforceNonNegative: in.Category == ReturnSupplier}
		res, err = ledger.AppendInTx(ctx, tx, []ledger.Draft{draft}, opts)
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// returnDraft valida la línea de origen y arma el draft según la categoría.
func (e *Emitters) returnDraft(ctx context.Context, tx ledger.TxRepos, in ReturnInput) (ledger.Draft, error) {
	switch in.Category {
	case ReturnCustomer:
		item, err := tx.SalesOrder.GetItemByID(ctx, in.RefItemID)
		if err != nil {
			return ledger.Draft{}, err
		}
		if item == nil {
			return ledger.Draft{}, fmt.Errorf("%w: línea de venta %s", domain.ErrNotFound, in.RefItemID)
		}
		if item.QtyShipped == 0 {
			return ledger.Draft{}, fmt.Errorf("%w: la línea %s no ha despachado mercancía", domain.ErrNotFound, in.RefItemID)
		}
		return ledger.Draft{
			ProductID:  item.ProductID,
			LocationID: in.LocationID,
			Type:       entity.TxTypeReturn,
			Qty:        in.Qty,
			RefType:    entity.RefSalesOrderItem,
			RefID:      item.ID,
			CreatedBy:  in.UserID,
		}, nil
	default: // ReturnSupplier, ya validado por el caller
		item, err := tx.PurchaseOrder.GetItemByID(ctx, in.RefItemID)
		if err != nil {
			return ledger.Draft{}, err
		}
		if item == nil {
			return ledger.Draft{}, fmt.Errorf("%w: línea de compra %s", domain.ErrNotFound, in.RefItemID)
		}
		if item.QtyReceived == 0 {
			return ledger.Draft{}, fmt.Errorf("%w: la línea %s no ha recibido mercancía", domain.ErrNotFound, in.RefItemID)
		}
		return ledger.Draft{
			ProductID:  item.ProductID,
			LocationID: in.LocationID,
			Type:       entity.TxTypeReturn,
			Qty:        -in.Qty,
			RefType:    entity.RefPurchaseOrderItem,
			RefID:      item.ID,
			CreatedBy:  in.UserID,
		}, nil
	}
}
