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

// BOMUseCase casos de uso para listas de materiales.
type BOMUseCase struct {
	bomRepo     repository.BOMRepository
	productRepo repository.ProductRepository
}

// NewBOMUseCase construye el caso de uso.
func NewBOMUseCase(bomRepo repository.BOMRepository, productRepo repository.ProductRepository) *BOMUseCase {
	return &BOMUseCase{bomRepo: bomRepo, productRepo: productRepo}
}

// Create crea un BOM validando sus invariantes: cantidades positivas,
// componentes distintos del producto de salida y productos existentes.
func (uc *BOMUseCase) Create(ctx context.Context, in dto.CreateBOMRequest) (*dto.BOMResponse, error) {
	now := time.Now().UTC()
	bom := &entity.BOM{
		ID:                uuid.New().String(),
		Name:              in.Name,
		OutputProductID:   in.OutputProductID,
		OutputQtyPerBatch: in.OutputQtyPerBatch,
		IsActive:          true,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	for i, it := range in.Items {
		bom.Items = append(bom.Items, entity.BOMItem{
			ID:                 uuid.New().String(),
			BOMID:              bom.ID,
			Sequence:           i + 1,
			ComponentProductID: it.ComponentProductID,
			QtyPerBatch:        it.QtyPerBatch,
		})
	}
	if !bom.Validate() {
		return nil, fmt.Errorf("%w: BOM inválido", domain.ErrInvalidInput)
	}
	if err := uc.checkProducts(ctx, bom); err != nil {
		return nil, err
	}
	if err := uc.bomRepo.Create(ctx, bom); err != nil {
		return nil, err
	}
	return toBOMResponse(bom), nil
}

// GetByID obtiene un BOM con sus items.
func (uc *BOMUseCase) GetByID(ctx context.Context, id string) (*dto.BOMResponse, error) {
	bom, err := uc.bomRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if bom == nil {
		return nil, domain.ErrNotFound
	}
	return toBOMResponse(bom), nil
}

// List lista BOMs paginados.
func (uc *BOMUseCase) List(ctx context.Context, limit, offset int) ([]dto.BOMResponse, error) {
	boms, err := uc.bomRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.BOMResponse, 0, len(boms))
	for _, b := range boms {
		out = append(out, *toBOMResponse(b))
	}
	return out, nil
}

// checkProducts valida que el producto de salida y cada componente existan.
func (uc *BOMUseCase) checkProducts(ctx context.Context, bom *entity.BOM) error {
	ok, err := uc.productRepo.Exists(ctx, bom.OutputProductID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: producto de salida %s", domain.ErrNotFound, bom.OutputProductID)
	}
	for _, it := range bom.Items {
		ok, err := uc.productRepo.Exists(ctx, it.ComponentProductID)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: componente %s", domain.ErrNotFound, it.ComponentProductID)
		}
	}
	return nil
}

func toBOMResponse(b *entity.BOM) *dto.BOMResponse {
	resp := &dto.BOMResponse{
		ID:                b.ID,
		Name:              b.Name,
		OutputProductID:   b.OutputProductID,
		OutputQtyPerBatch: b.OutputQtyPerBatch,
		IsActive:          b.IsActive,
	}
	for _, it := range b.Items {
		resp.Items = append(resp.Items, dto.BOMItemResponse{
			ID:                 it.ID,
			Sequence:           it.Sequence,
			ComponentProductID: it.ComponentProductID,
			QtyPerBatch:        it.QtyPerBatch,
		})
	}
	return resp
}
