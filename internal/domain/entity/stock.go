package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockLevel es el saldo materializado por producto/bodega/variante/ubicación.
// Se actualiza en la misma transacción que inserta cada TransactionDetail, con
// bloqueo de fila (SELECT FOR UPDATE) en la ruta de escritura.
type StockLevel struct {
	CompanyID   string
	WarehouseID string
	ProductID   string
	VariantID   *string
	BinID       *string
	Quantity    decimal.Decimal
	UpdatedAt   time.Time
}

// StockPosition es la posición derivada de stock: se calcula bajo demanda sumando
// líneas de movimiento con signo por tipo, más los descuentos por reservas activas
// y retenciones de calidad. No se persiste.
type StockPosition struct {
	ProductID      string
	WarehouseID    string
	VariantID      *string
	BinID          *string
	CurrentStock   decimal.Decimal
	ReservedStock  decimal.Decimal
	QCHoldStock    decimal.Decimal
	AvailableStock decimal.Decimal // CurrentStock - ReservedStock - QCHoldStock
}
