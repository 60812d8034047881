package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// PickItemInput un ítem solicitado para la lista de picking.
type PickItemInput struct {
	ProductID string
	VariantID *string
	BinID     *string
	Quantity  decimal.Decimal
}

// PickLineForSheet línea enriquecida con datos de producto para la hoja PDF.
type PickLineForSheet struct {
	Detail      *entity.PickListDetail
	SKU         string
	ProductName string
}

// PickListSheetGenerator genera la hoja imprimible de una lista de picking.
type PickListSheetGenerator interface {
	GeneratePickListSheet(ctx context.Context, list *entity.PickList, warehouse *entity.Warehouse, lines []PickLineForSheet) ([]byte, error)
}

// PickListUseCase crea listas de picking y administra el avance de sus líneas.
type PickListUseCase struct {
	txRunner      TxRunner
	pickRepo      repository.PickListRepository
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
	sheetGen      PickListSheetGenerator
}

// NewPickListUseCase construye el caso de uso. sheetGen puede ser nil si no se
// expone la hoja PDF.
func NewPickListUseCase(
	txRunner TxRunner,
	pickRepo repository.PickListRepository,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
	sheetGen PickListSheetGenerator,
) *PickListUseCase {
	return &PickListUseCase{
		txRunner:      txRunner,
		pickRepo:      pickRepo,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
		sheetGen:      sheetGen,
	}
}

// Generate crea el encabezado y una línea por ítem en una sola transacción.
// El pick_sequence es el orden 1-based de los ítems solicitados y no cambia
// después (no se optimiza por cercanía de ubicaciones).
func (uc *PickListUseCase) Generate(ctx context.Context, companyID, userID, warehouseID string, items []PickItemInput, notes *string) (*entity.PickList, error) {
	if warehouseID == "" || len(items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	wh, err := uc.warehouseRepo.GetByID(warehouseID)
	if err != nil {
		return nil, fmt.Errorf("leer bodega: %w", err)
	}
	if wh == nil || wh.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	for _, item := range items {
		if item.ProductID == "" || !item.Quantity.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		product, err := uc.productRepo.GetByID(item.ProductID)
		if err != nil || product == nil {
			return nil, domain.ErrNotFound
		}
		if product.CompanyID != companyID {
			return nil, domain.ErrForbidden
		}
	}

	now := time.Now()
	list := &entity.PickList{
		CompanyID:   companyID,
		Number:      newPickListNumber(now),
		WarehouseID: warehouseID,
		Status:      entity.PickListStatusOpen,
		Notes:       notes,
		CreatedAt:   now,
		CreatedBy:   userID,
	}

	err = uc.txRunner.RunPickList(ctx, func(pickRepo repository.PickListRepository) error {
		if err := pickRepo.CreateHeader(list); err != nil {
			return err
		}
		for i, item := range items {
			detail := &entity.PickListDetail{
				CompanyID:        companyID,
				PickListID:       list.ID,
				ProductID:        item.ProductID,
				VariantID:        item.VariantID,
				BinID:            item.BinID,
				RequiredQuantity: item.Quantity,
				PickedQuantity:   decimal.Zero,
				PickSequence:     i + 1,
				Status:           entity.PickLineStatusPending,
				UpdatedAt:        now,
			}
			if err := pickRepo.CreateDetail(detail); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return list, nil
}

// UpdatePickQuantity fija lo recogido de una línea y deriva su estado contra
// lo requerido (pending/partial/completed). "short" no se deriva aquí.
func (uc *PickListUseCase) UpdatePickQuantity(ctx context.Context, companyID, detailID string, picked decimal.Decimal) error {
	if picked.LessThan(decimal.Zero) {
		return domain.ErrInvalidInput
	}
	detail, err := uc.pickRepo.GetDetail(companyID, detailID)
	if err != nil {
		return err
	}
	if detail == nil {
		return domain.ErrNotFound
	}
	if detail.Status == entity.PickLineStatusShort {
		return domain.ErrConflict
	}
	status := entity.DerivePickLineStatus(picked, detail.RequiredQuantity)
	return uc.pickRepo.UpdateDetailPick(companyID, detailID, picked, status, time.Now())
}

// CloseLineShort marca una línea como short cuando no hay stock recogible para
// completarla. Solo aplica desde pending o partial.
func (uc *PickListUseCase) CloseLineShort(ctx context.Context, companyID, detailID string) error {
	detail, err := uc.pickRepo.GetDetail(companyID, detailID)
	if err != nil {
		return err
	}
	if detail == nil {
		return domain.ErrNotFound
	}
	if detail.Status != entity.PickLineStatusPending && detail.Status != entity.PickLineStatusPartial {
		return domain.ErrConflict
	}
	return uc.pickRepo.UpdateDetailPick(companyID, detailID, detail.PickedQuantity, entity.PickLineStatusShort, time.Now())
}

// Get devuelve el encabezado con sus líneas en orden de pick_sequence.
func (uc *PickListUseCase) Get(ctx context.Context, companyID, id string) (*entity.PickList, []*entity.PickListDetail, error) {
	list, err := uc.pickRepo.GetByID(companyID, id)
	if err != nil {
		return nil, nil, err
	}
	if list == nil {
		return nil, nil, domain.ErrNotFound
	}
	details, err := uc.pickRepo.ListDetails(companyID, id)
	if err != nil {
		return nil, nil, err
	}
	return list, details, nil
}

// ListByWarehouse lista encabezados de una bodega.
func (uc *PickListUseCase) ListByWarehouse(ctx context.Context, companyID, warehouseID string, limit, offset int) ([]*entity.PickList, error) {
	return uc.pickRepo.ListByWarehouse(companyID, warehouseID, limit, offset)
}

// GenerateSheet arma la hoja PDF imprimible para el bodeguero.
func (uc *PickListUseCase) GenerateSheet(ctx context.Context, companyID, id string) ([]byte, error) {
	if uc.sheetGen == nil {
		return nil, domain.ErrInvalidInput
	}
	list, details, err := uc.Get(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	wh, err := uc.warehouseRepo.GetByID(list.WarehouseID)
	if err != nil {
		return nil, fmt.Errorf("leer bodega: %w", err)
	}
	if wh == nil {
		return nil, domain.ErrNotFound
	}
	lines := make([]PickLineForSheet, 0, len(details))
	for _, d := range details {
		line := PickLineForSheet{Detail: d}
		if product, err := uc.productRepo.GetByID(d.ProductID); err == nil && product != nil {
			line.SKU = product.SKU
			line.ProductName = product.Name
		}
		lines = append(lines, line)
	}
	return uc.sheetGen.GeneratePickListSheet(ctx, list, wh, lines)
}

// newPickListNumber genera un número único basado en tiempo, con sufijo corto
// para evitar colisiones dentro del mismo segundo.
func newPickListNumber(now time.Time) string {
	return fmt.Sprintf("PL-%s-%s", now.Format("20060102150405"), uuid.New().String()[:8])
}
