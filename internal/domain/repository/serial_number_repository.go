package repository

import (
	"time"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// SerialNumberRepository define el puerto de persistencia para números de serie.
type SerialNumberRepository interface {
	// CreateBulk inserta el lote completo; un serial duplicado aborta todo el lote.
	CreateBulk(serials []*entity.SerialNumber) error
	ListAvailable(companyID, productID, warehouseID string, variantID *string) ([]*entity.SerialNumber, error)
	ListBySerials(companyID, productID string, serials []string) ([]*entity.SerialNumber, error)
	// UpdateStatusBulk aplica el mismo estado y enlace de transacción a todos los
	// seriales por su valor, en un solo UPDATE. Devuelve filas afectadas: si no
	// coincide con el tamaño del lote, el llamador debe hacer rollback.
	UpdateStatusBulk(companyID, productID string, serials []string, status string, transactionID *string, at time.Time) (int64, error)
}
