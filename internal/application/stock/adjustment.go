package stock

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jhoicas/manufactura-erp/internal/application/ledger"
	"github.com/jhoicas/manufactura-erp/internal/domain"
	"github.com/jhoicas/manufactura-erp/internal/domain/entity"
)

// AdjustInput entrada para un ajuste manual de inventario.
type AdjustInput struct {
	ProductID  string
	LocationID string
	Qty        int64 // firmado: positivo suma, negativo resta; nunca cero
	UserID     string
}

// Adjust registra un ajuste manual (conteo físico, merma, corrección de
// errores previos). A diferencia del resto de emisores, el ajuste acepta
// cantidad firmada y no lleva guarda de stock: puede reconciliar el balance
// a cualquier valor.
func (e *Emitters) Adjust(ctx context.Context, in AdjustInput) (*ledger.Result, error) {
	if in.Qty == 0 {
		return nil, fmt.Errorf("%w: un ajuste de cero no aporta información", domain.ErrInvalidQuantity)
	}
	var res *ledger.Result
	err := e.txRunner.Run(ctx, func(tx ledger.TxRepos) error {
		var err error
		res, err = ledger.AppendInTx(ctx, tx, []ledger.Draft{{
			ProductID:  in.ProductID,
			LocationID: in.LocationID,
			Type:       entity.TxTypeAdjustment,
			Qty:        in.Qty,
			RefType:    entity.RefAdjustment,
			RefID:      uuid.New().String(),
			CreatedBy:  in.UserID,
		}}, ledger.Options{})
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}
