package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// QCHoldRepository define el puerto de persistencia para retenciones de calidad.
type QCHoldRepository interface {
	Create(hold *entity.QCHold) error
	GetByID(companyID, id string) (*entity.QCHold, error)
	// Resolve pasa la retención a released o rejected solo desde on_hold
	// (UPDATE ... WHERE status = 'on_hold'); devuelve filas afectadas para que
	// el caso de uso reporte ErrConflict en doble resolución.
	Resolve(companyID, id, status string, notes *string, at time.Time) (int64, error)
	ListActive(companyID, productID, warehouseID string) ([]*entity.QCHold, error)
	// SumActive suma la cantidad retenida en on_hold para la posición.
	SumActive(key StockKey) (decimal.Decimal, error)
}
