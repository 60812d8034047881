package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// SerialUseCase administra la identidad por unidad del stock serializado.
type SerialUseCase struct {
	txRunner    TxRunner
	serialRepo  repository.SerialNumberRepository
	productRepo repository.ProductRepository
}

// NewSerialUseCase construye el caso de uso.
func NewSerialUseCase(
	txRunner TxRunner,
	serialRepo repository.SerialNumberRepository,
	productRepo repository.ProductRepository,
) *SerialUseCase {
	return &SerialUseCase{txRunner: txRunner, serialRepo: serialRepo, productRepo: productRepo}
}

// Create registra un lote de seriales en estado available, todos estampados
// con la empresa dueña. El lote entero falla si algún serial está duplicado.
func (uc *SerialUseCase) Create(ctx context.Context, companyID, userID, productID, warehouseID string, variantID *string, serials []string) error {
	if productID == "" || warehouseID == "" || len(serials) == 0 {
		return domain.ErrInvalidInput
	}
	seen := make(map[string]bool, len(serials))
	for _, s := range serials {
		if s == "" || seen[s] {
			return domain.ErrInvalidInput
		}
		seen[s] = true
	}

	product, err := uc.productRepo.GetByID(productID)
	if err != nil || product == nil {
		return domain.ErrNotFound
	}
	if product.CompanyID != companyID {
		return domain.ErrForbidden
	}

	now := time.Now()
	records := make([]*entity.SerialNumber, 0, len(serials))
	for _, s := range serials {
		records = append(records, &entity.SerialNumber{
			CompanyID:   companyID,
			ProductID:   productID,
			VariantID:   variantID,
			WarehouseID: warehouseID,
			Serial:      s,
			Status:      entity.SerialStatusAvailable,
			CreatedAt:   now,
			UpdatedAt:   now,
			CreatedBy:   userID,
		})
	}

	return uc.txRunner.RunSerials(ctx, func(serialRepo repository.SerialNumberRepository) error {
		return serialRepo.CreateBulk(records)
	})
}

// UpdateStatus aplica el mismo estado (y enlace de transacción) a todo un lote
// de seriales por su valor, en un solo UPDATE dentro de una transacción.
// Todo-o-nada: si alguna fila no cambió (serial inexistente o de otra empresa)
// la tx hace rollback y se devuelve ErrConflict.
func (uc *SerialUseCase) UpdateStatus(ctx context.Context, companyID, productID string, serials []string, status string, transactionID *string) error {
	if productID == "" || len(serials) == 0 {
		return domain.ErrInvalidInput
	}
	if !entity.ValidSerialStatus(status) {
		return domain.ErrInvalidInput
	}
	// Un serial repetido en el lote haría que filas afectadas < tamaño del
	// lote y el todo-o-nada reportaría conflicto falso.
	seen := make(map[string]bool, len(serials))
	for _, s := range serials {
		if s == "" || seen[s] {
			return domain.ErrInvalidInput
		}
		seen[s] = true
	}

	now := time.Now()
	return uc.txRunner.RunSerials(ctx, func(serialRepo repository.SerialNumberRepository) error {
		affected, err := serialRepo.UpdateStatusBulk(companyID, productID, serials, status, transactionID, now)
		if err != nil {
			return err
		}
		if affected != int64(len(serials)) {
			return domain.ErrConflict
		}
		return nil
	})
}

// ListAvailable lista los seriales disponibles de un producto en una bodega.
func (uc *SerialUseCase) ListAvailable(ctx context.Context, companyID, productID, warehouseID string, variantID *string) ([]*entity.SerialNumber, error) {
	return uc.serialRepo.ListAvailable(companyID, productID, warehouseID, variantID)
}
