package repository

import "github.com/jhoicas/Almacen-api/internal/domain/entity"

// StockKey identifica un saldo materializado: empresa + bodega + producto,
// opcionalmente variante y ubicación.
type StockKey struct {
	CompanyID   string
	WarehouseID string
	ProductID   string
	VariantID   *string
	BinID       *string
}

// StockLevelRepository define el puerto para el saldo materializado por
// posición. Usado dentro de transacciones para garantizar consistencia.
type StockLevelRepository interface {
	Get(key StockKey) (*entity.StockLevel, error)
	// GetForUpdate bloquea la fila (SELECT FOR UPDATE) en la ruta de escritura.
	GetForUpdate(key StockKey) (*entity.StockLevel, error)
	Upsert(level *entity.StockLevel) error
}
