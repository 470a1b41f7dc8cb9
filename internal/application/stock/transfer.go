package stock

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jhoicas/manufactura-erp/internal/application/ledger"
	"github.com/jhoicas/manufactura-erp/internal/domain"
	"github.com/jhoicas/manufactura-erp/internal/domain/entity"
)

// TransferInput entrada para un traslado entre ubicaciones.
type TransferInput struct {
	ProductID      string
	FromLocationID string
	ToLocationID   string
	Qty            int64 // > 0
	UserID         string
}

// Transfer registra un traslado: salida en origen y entrada en destino, dos
// entradas con el mismo RefID confirmadas en un solo batch atómico. Un
// traslado jamás es observable debitado-sin-acreditar: si la salida no pasa
// la guarda de stock, la entrada tampoco se escribe.
func (e *Emitters) Transfer(ctx context.Context, in TransferInput) (*ledger.Result, error) {
	if in.Qty <= 0 {
		return nil, fmt.Errorf("%w: la cantidad a trasladar debe ser positiva", domain.ErrInvalidQuantity)
	}
	if in.FromLocationID == in.ToLocationID {
		return nil, fmt.Errorf("%w: origen y destino deben ser distintos", domain.ErrInvalidInput)
	}
	batchID := uuid.New().String()
	drafts := []ledger.Draft{
		{
			ProductID:  in.ProductID,
			LocationID: in.FromLocationID,
			Type:       entity.TxTypeTransfer,
			Qty:        -in.Qty,
			RefType:    entity.RefTransfer,
			RefID:      batchID,
			CreatedBy:  in.UserID,
		},
		{
			ProductID:  in.ProductID,
			LocationID: in.ToLocationID,
			Type:       entity.TxTypeTransfer,
			Qty:        in.Qty,
			RefType:    entity.RefTransfer,
			RefID:      batchID,
			CreatedBy:  in.UserID,
		},
	}
	var res *ledger.Result
	err := e.txRunner.Run(ctx, func(tx ledger.TxRepos) error {
		var err error
		res, err = ledger.AppendInTx(ctx, tx, drafts, ledger.Options{EnforceNonNegative: true})
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}
