package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/manufactura-erp/internal/application/dto"
	"github.com/jhoicas/manufactura-erp/internal/domain"
	"github.com/jhoicas/manufactura-erp/internal/domain/entity"
	"github.com/jhoicas/manufactura-erp/internal/domain/repository"
)

// SalesUseCase ciclo documental de órdenes de venta. La afectación de
// inventario al despachar vive en stock.Emitters, no aquí.
type SalesUseCase struct {
	soRepo      repository.SalesOrderRepository
	productRepo repository.ProductRepository
}

// NewSalesUseCase construye el caso de uso.
func NewSalesUseCase(soRepo repository.SalesOrderRepository, productRepo repository.ProductRepository) *SalesUseCase {
	return &SalesUseCase{soRepo: soRepo, productRepo: productRepo}
}

// Create crea una orden de venta confirmada con sus líneas.
func (uc *SalesUseCase) Create(ctx context.Context, userID string, in dto.CreateSORequest) (*dto.SOResponse, error) {
	if in.CustomerID == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now().UTC()
	so := &entity.SalesOrder{
		ID:         uuid.New().String(),
		SONumber:   newDocNumber("OV", now),
		CustomerID: in.CustomerID,
		Status:     entity.SOStatusConfirmed,
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
		so.Items = append(so.Items, entity.SalesOrderItem{
			ID:         uuid.New().String(),
			SOID:       so.ID,
			ProductID:  it.ProductID,
			QtyOrdered: it.QtyOrdered,
			UnitPrice:  it.UnitPrice,
		})
	}
	if err := uc.soRepo.Create(ctx, so); err != nil {
		return nil, err
	}
	return toSOResponse(so), nil
}

// GetByID obtiene la orden con sus líneas.
func (uc *SalesUseCase) GetByID(ctx context.Context, id string) (*dto.SOResponse, error) {
	so, err := uc.soRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if so == nil {
		return nil, domain.ErrNotFound
	}
	return toSOResponse(so), nil
}

// List lista órdenes, opcionalmente por estado.
func (uc *SalesUseCase) List(ctx context.Context, status string, limit, offset int) ([]dto.SOResponse, error) {
	sos, err := uc.soRepo.List(ctx, status, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SOResponse, 0, len(sos))
	for _, so := range sos {
		out = append(out, *toSOResponse(so))
	}
	return out, nil
}

func toSOResponse(so *entity.SalesOrder) *dto.SOResponse {
	resp := &dto.SOResponse{
		ID:         so.ID,
		SONumber:   so.SONumber,
		CustomerID: so.CustomerID,
		Status:     so.Status,
		Notes:      so.Notes,
		CreatedAt:  so.CreatedAt,
	}
	for _, it := range so.Items {
		resp.Items = append(resp.Items, dto.SOItemResponse{
			ID:         it.ID,
			ProductID:  it.ProductID,
			QtyOrdered: it.QtyOrdered,
			QtyShipped: it.QtyShipped,
			UnitPrice:  it.UnitPrice,
		})
	}
	return resp
}
