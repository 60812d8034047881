package repository

import (
	"time"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// PositionQuery filtra líneas de movimiento para calcular una posición de stock:
// producto + bodega destino, opcionalmente variante y ubicación. CompanyID es
// obligatorio; una consulta sin tenant es un bug de correctitud.
type PositionQuery struct {
	CompanyID   string
	ProductID   string
	WarehouseID string
	VariantID   *string
	BinID       *string
}

// TransactionDetailRepository define el puerto de persistencia para líneas de
// movimiento. Las líneas son append-only: no hay Update ni Delete.
type TransactionDetailRepository interface {
	Create(detail *entity.TransactionDetail) error
	// ListForPosition trae las líneas que afectan una posición (filtro por
	// to_warehouse_id); la suma con signo la hace el dominio.
	ListForPosition(q PositionQuery) ([]*entity.TransactionDetail, error)
	ListByTransaction(companyID, transactionID string) ([]*entity.TransactionDetail, error)
	ListByProduct(companyID, productID string, from, to *time.Time, limit, offset int) ([]*entity.TransactionDetail, error)
}
