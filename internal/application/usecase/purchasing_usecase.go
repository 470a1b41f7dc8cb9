package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/manufactura-erp/internal/application/dto"
	"github.com/jhoicas/manufactura-erp/internal/domain"
	"github.com/jhoicas/manufactura-erp/internal/domain/entity"
	"github.com/jhoicas/manufactura-erp/internal/domain/repository"
)

// PurchasingUseCase ciclo documental de órdenes de compra. La afectación de
// inventario al recibir vive en stock.Emitters, no aquí.
type PurchasingUseCase struct {
	poRepo      repository.PurchaseOrderRepository
	productRepo repository.ProductRepository
}

// NewPurchasingUseCase construye el caso de uso.
func NewPurchasingUseCase(poRepo repository.PurchaseOrderRepository, productRepo repository.ProductRepository) *PurchasingUseCase {
	return &PurchasingUseCase{poRepo: poRepo, productRepo: productRepo}
}

// Create crea una orden de compra confirmada con sus líneas.
func (uc *PurchasingUseCase) Create(ctx context.Context, userID string, in dto.CreatePORequest) (*dto.POResponse, error) {
	if in.SupplierID == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now().UTC()
	po := &entity.PurchaseOrder{
		ID:         uuid.New().String(),
		PONumber:   newDocNumber("OC", now),
		SupplierID: in.SupplierID,
		Status:     entity.POStatusConfirmed,
		Notes:      in.Notes,
		CreatedBy:  userID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	for _, it := range in.Items {
		if it.QtyOrdered <= 0 {
			return nil, fmt.Errorf("%w: qty_ordered debe ser positivo", domain.ErrInvalidQuantity)
		}
		ok, err := uc.productRepo.Exists(ctx, it.ProductID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, it.ProductID)
		}
		po.Items = append(po.Items, entity.PurchaseOrderItem{
			ID:         uuid.New().String(),
			POID:       po.ID,
			ProductID:  it.ProductID,
			QtyOrdered: it.QtyOrdered,
			UnitPrice:  it.UnitPrice,
		})
	}
	if err := uc.poRepo.Create(ctx, po); err != nil {
		return nil, err
	}
	return toPOResponse(po), nil
}

// GetByID obtiene la orden con sus líneas.
func (uc *PurchasingUseCase) GetByID(ctx context.Context, id string) (*dto.POResponse, error) {
	po, err := uc.poRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if po == nil {
		return nil, domain.ErrNotFound
	}
	return toPOResponse(po), nil
}

// List lista órdenes, opcionalmente por estado.
func (uc *PurchasingUseCase) List(ctx context.Context, status string, limit, offset int) ([]dto.POResponse, error) {
	pos, err := uc.poRepo.List(ctx, status, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.POResponse, 0, len(pos))
	for _, po := range pos {
		out = append(out, *toPOResponse(po))
	}
	return out, nil
}

func toPOResponse(po *entity.PurchaseOrder) *dto.POResponse {
	resp := &dto.POResponse{
		ID:         po.ID,
		PONumber:   po.PONumber,
		SupplierID: po.SupplierID,
		Status:     po.Status,
		Notes:      po.Notes,
		CreatedAt:  po.CreatedAt,
	}
	for _, it := range po.Items {
		resp.Items = append(resp.Items, dto.POItemResponse{
			ID:          it.ID,
			ProductID:   it.ProductID,
			QtyOrdered:  it.QtyOrdered,
			QtyReceived: it.QtyReceived,
			UnitPrice:   it.UnitPrice,
		})
	}
	return resp
}

// newDocNumber genera un número de documento legible único (prefijo +
// fecha + sufijo aleatorio).
func newDocNumber(prefix string, now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:8])
	return fmt.Sprintf("%s-%s-%s", prefix, now.Format("20060102"), suffix)
}
