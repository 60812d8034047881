package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// QCHoldUseCase administra retenciones de calidad: cantidad fuera de la
// disponibilidad vendible hasta que la inspección la resuelva.
type QCHoldUseCase struct {
	qcRepo        repository.QCHoldRepository
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
}

// NewQCHoldUseCase construye el caso de uso.
func NewQCHoldUseCase(
	qcRepo repository.QCHoldRepository,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
) *QCHoldUseCase {
	return &QCHoldUseCase{qcRepo: qcRepo, productRepo: productRepo, warehouseRepo: warehouseRepo}
}

// QCHoldInput entrada para crear una retención.
type QCHoldInput struct {
	ProductID      string
	VariantID      *string
	WarehouseID    string
	BinID          *string
	Quantity       decimal.Decimal
	Reason         string
	InspectorNotes *string
}

// Create inserta una retención en on_hold.
func (uc *QCHoldUseCase) Create(ctx context.Context, companyID, userID string, input QCHoldInput) (*entity.QCHold, error) {
	if input.ProductID == "" || input.WarehouseID == "" || input.Reason == "" {
		return nil, domain.ErrInvalidInput
	}
	if !input.Quantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}

	product, err := uc.productRepo.GetByID(input.ProductID)
	if err != nil || product == nil {
		return nil, domain.ErrNotFound
	}
	if product.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	wh, err := uc.warehouseRepo.GetByID(input.WarehouseID)
	if err != nil {
		return nil, fmt.Errorf("leer bodega: %w", err)
	}
	if wh == nil || wh.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}

	hold := &entity.QCHold{
		CompanyID:      companyID,
		ProductID:      input.ProductID,
		VariantID:      input.VariantID,
		WarehouseID:    input.WarehouseID,
		BinID:          input.BinID,
		Quantity:       input.Quantity,
		Status:         entity.QCHoldStatusOnHold,
		Reason:         input.Reason,
		InspectorNotes: input.InspectorNotes,
		HeldAt:         time.Now(),
		CreatedBy:      userID,
	}
	if err := uc.qcRepo.Create(hold); err != nil {
		return nil, err
	}
	return hold, nil
}

// Release pasa la retención de on_hold a released. Resolver una retención ya
// terminal devuelve ErrConflict: el doble release es visible para el operador,
// no un no-op que re-estampe fechas.
func (uc *QCHoldUseCase) Release(ctx context.Context, companyID, id string, notes *string) error {
	return uc.resolve(ctx, companyID, id, entity.QCHoldStatusReleased, notes)
}

// Reject pasa la retención de on_hold a rejected (mismas reglas que Release).
func (uc *QCHoldUseCase) Reject(ctx context.Context, companyID, id string, notes *string) error {
	return uc.resolve(ctx, companyID, id, entity.QCHoldStatusRejected, notes)
}

func (uc *QCHoldUseCase) resolve(ctx context.Context, companyID, id, status string, notes *string) error {
	rows, err := uc.qcRepo.Resolve(companyID, id, status, notes, time.Now())
	if err != nil {
		return err
	}
	if rows > 0 {
		return nil
	}
	existing, err := uc.qcRepo.GetByID(companyID, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return domain.ErrNotFound
	}
	return domain.ErrConflict
}

// ListActive lista las retenciones en on_hold de un producto en una bodega.
func (uc *QCHoldUseCase) ListActive(ctx context.Context, companyID, productID, warehouseID string) ([]*entity.QCHold, error) {
	return uc.qcRepo.ListActive(companyID, productID, warehouseID)
}
