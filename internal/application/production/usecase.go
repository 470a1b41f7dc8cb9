package production

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/manufactura-erp/internal/application/ledger"
	"github.com/jhoicas/manufactura-erp/internal/domain"
	"github.com/jhoicas/manufactura-erp/internal/domain/entity"
	"github.com/jhoicas/manufactura-erp/internal/domain/repository"
)

// UseCase orquesta el ciclo de vida de órdenes de producción. Las
// transiciones disparan emisiones al ledger (consumo de componentes al
// iniciar, salida de producto terminado al completar); la orden nunca
// escribe balances directamente. Cualquier fallo de transición deja la
// orden en su estado previo y el ledger intacto.
type UseCase struct {
	txRunner  ledger.TxRunner
	orderRepo repository.ProductionOrderRepository
}

// NewUseCase construye el caso de uso de producción. orderRepo atado al
// pool se usa solo para lecturas; toda mutación pasa por txRunner.
func NewUseCase(txRunner ledger.TxRunner, orderRepo repository.ProductionOrderRepository) *UseCase {
	return &UseCase{txRunner: txRunner, orderRepo: orderRepo}
}

// GetByID devuelve la orden o ErrNotFound.
func (uc *UseCase) GetByID(ctx context.Context, id string) (*entity.ProductionOrder, error) {
	order, err := uc.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, fmt.Errorf("%w: orden de producción %s", domain.ErrNotFound, id)
	}
	return order, nil
}

// List lista órdenes, opcionalmente por estado.
func (uc *UseCase) List(ctx context.Context, status string, limit, offset int) ([]*entity.ProductionOrder, error) {
	return uc.orderRepo.List(ctx, status, limit, offset)
}

// CreateInput entrada para crear una orden en borrador.
type CreateInput struct {
	BOMID      string
	LocationID string
	QtyPlanned int64 // > 0
	UserID     string
}

// Create crea la orden en estado draft. No toca el ledger.
func (uc *UseCase) Create(ctx context.Context, in CreateInput) (*entity.ProductionOrder, error) {
	if in.QtyPlanned <= 0 {
		return nil, fmt.Errorf("%w: la cantidad planeada debe ser positiva", domain.ErrInvalidQuantity)
	}
	var order *entity.ProductionOrder
	err := uc.txRunner.Run(ctx, func(tx ledger.TxRepos) error {
		bom, err := tx.BOM.GetByID(ctx, in.BOMID)
		if err != nil {
			return err
		}
		if bom == nil {
			return fmt.Errorf("%w: BOM %s", domain.ErrNotFound, in.BOMID)
		}
		ok, err := tx.Location.Exists(ctx, in.LocationID)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: ubicación %s no existe", domain.ErrInvalidInput, in.LocationID)
		}
		now := time.Now().UTC()
		order = &entity.ProductionOrder{
			ID:          uuid.New().String(),
			OrderNumber: newOrderNumber(now),
			BOMID:       in.BOMID,
			LocationID:  in.LocationID,
			QtyPlanned:  in.QtyPlanned,
			Status:      entity.ProductionDraft,
			CreatedBy:   in.UserID,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		return tx.ProductionOrder.Create(ctx, order)
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// Start transiciona draft → in_progress: explota el BOM y consume todos los
// componentes en un solo batch con guarda de stock. Si cualquier componente
// no alcanza, ningún componente se consume y la orden sigue en draft.
func (uc *UseCase) Start(ctx context.Context, orderID, userID string) (*entity.ProductionOrder, error) {
	var order *entity.ProductionOrder
	err := uc.txRunner.Run(ctx, func(tx ledger.TxRepos) error {
		var err error
		order, err = lockOrder(ctx, tx, orderID, entity.ProductionInProgress)
		if err != nil {
			return err
		}
		bom, err := tx.BOM.GetByID(ctx, order.BOMID)
		if err != nil {
			return err
		}
		if bom == nil {
			return fmt.Errorf("%w: BOM %s", domain.ErrNotFound, order.BOMID)
		}

		reqs := Explode(bom, order.QtyPlanned)
		drafts := make([]ledger.Draft, 0, len(reqs))
		for _, req := range reqs {
			drafts = append(drafts, ledger.Draft{
				ProductID:  req.ComponentProductID,
				LocationID: order.LocationID,
				Type:       entity.TxTypeProduction,
				Qty:        -req.Qty,
				RefType:    entity.RefProductionOrder,
				RefID:      order.ID,
				CreatedBy:  userID,
			})
		}
		if _, err := ledger.AppendInTx(ctx, tx, drafts, ledger.Options{EnforceNonNegative: true}); err != nil {
			return err
		}

		order.Status = entity.ProductionInProgress
		order.UpdatedAt = time.Now().UTC()
		return tx.ProductionOrder.UpdateStatus(ctx, order)
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// Complete transiciona in_progress → completed: emite una sola entrada
// positiva (production) por la cantidad planeada del producto de salida en
// la ubicación de la orden.
func (uc *UseCase) Complete(ctx context.Context, orderID, userID string) (*entity.ProductionOrder, error) {
	var order *entity.ProductionOrder
	err := uc.txRunner.Run(ctx, func(tx ledger.TxRepos) error {
		var err error
		order, err = lockOrder(ctx, tx, orderID, entity.ProductionCompleted)
		if err != nil {
			return err
		}
		bom, err := tx.BOM.GetByID(ctx, order.BOMID)
		if err != nil {
			return err
		}
		if bom == nil {
			return fmt.Errorf("%w: BOM %s", domain.ErrNotFound, order.BOMID)
		}

		_, err = ledger.AppendInTx(ctx, tx, []ledger.Draft{{
			ProductID:  bom.OutputProductID,
			LocationID: order.LocationID,
			Type:       entity.TxTypeProduction,
			Qty:        order.QtyPlanned,
			RefType:    entity.RefProductionOrder,
			RefID:      order.ID,
			CreatedBy:  userID,
		}}, ledger.Options{})
		if err != nil {
			return err
		}

		order.Status = entity.ProductionCompleted
		order.QtyProduced = order.QtyPlanned
		order.UpdatedAt = time.Now().UTC()
		return tx.ProductionOrder.UpdateStatus(ctx, order)
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// Cancel transiciona draft|in_progress → cancelled. Cancelar una orden
// in_progress NO revierte automáticamente lo ya consumido: la reversión es
// política del caller. Con reverseConsumption=true se sintetizan ajustes
// positivos que compensan cada consumo de la orden, en un batch atómico.
func (uc *UseCase) Cancel(ctx context.Context, orderID, userID string, reverseConsumption bool) (*entity.ProductionOrder, error) {
	var order *entity.ProductionOrder
	err := uc.txRunner.Run(ctx, func(tx ledger.TxRepos) error {
		var err error
		order, err = lockOrder(ctx, tx, orderID, entity.ProductionCancelled)
		if err != nil {
			return err
		}

		if order.Status == entity.ProductionInProgress && reverseConsumption {
			consumed, err := tx.Ledger.List(ctx, repository.LedgerFilter{
				RefType: entity.RefProductionOrder,
				RefID:   order.ID,
				Type:    entity.TxTypeProduction,
			})
			if err != nil {
				return err
			}
			drafts := make([]ledger.Draft, 0, len(consumed))
			for _, e := range consumed {
				if e.Qty >= 0 {
					continue // solo se compensan consumos
				}
				drafts = append(drafts, ledger.Draft{
					ProductID:  e.ProductID,
					LocationID: e.LocationID,
					Type:       entity.TxTypeAdjustment,
					Qty:        -e.Qty,
					RefType:    entity.RefProductionOrder,
					RefID:      order.ID,
					CreatedBy:  userID,
				})
			}
			if len(drafts) > 0 {
				if _, err := ledger.AppendInTx(ctx, tx, drafts, ledger.Options{}); err != nil {
					return err
				}
			}
		}

		order.Status = entity.ProductionCancelled
		order.UpdatedAt = time.Now().UTC()
		return tx.ProductionOrder.UpdateStatus(ctx, order)
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// lockOrder carga la orden con bloqueo de fila y valida la transición.
func lockOrder(ctx context.Context, tx ledger.TxRepos, orderID, target string) (*entity.ProductionOrder, error) {
	order, err := tx.ProductionOrder.GetForUpdate(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, fmt.Errorf("%w: orden de producción %s", domain.ErrNotFound, orderID)
	}
	if !order.CanTransition(target) {
		return nil, fmt.Errorf("%w: %s → %s", domain.ErrInvalidState, order.Status, target)
	}
	return order, nil
}

// newOrderNumber genera un número legible único (fecha + sufijo aleatorio).
func newOrderNumber(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:8])
	return fmt.Sprintf("OP-%s-%s", now.Format("20060102"), suffix)
}
