package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de transacción de inventario. El tipo determina el signo de la cantidad
// al calcular la posición de stock (entradas suman, salidas restan).
const (
	TxTypePurchaseIn       = "purchase_in"
	TxTypePurchaseReturnIn = "purchase_return_in"
	TxTypeTransferIn       = "transfer_in"
	TxTypeAdjustmentIn     = "adjustment_in"
	TxTypeSaleOut          = "sale_out"
	TxTypeSaleReturnOut    = "sale_return_out"
	TxTypeTransferOut      = "transfer_out"
	TxTypeAdjustmentOut    = "adjustment_out"
)

// TransactionDetail es una línea de movimiento de stock, inmutable una vez creada.
// ToWarehouseID es siempre la bodega afectada por la línea; en traslados,
// FromWarehouseID registra la bodega origen y cada tramo genera su propia línea
// compartiendo TransactionID.
type TransactionDetail struct {
	ID              string
	CompanyID       string
	TransactionID   string
	TransactionType string
	ProductID       string
	VariantID       *string
	BinID           *string
	FromWarehouseID *string
	ToWarehouseID   string
	Quantity        decimal.Decimal // siempre positiva; el tipo define el signo
	UnitCost        decimal.Decimal
	CreatedAt       time.Time
	CreatedBy       string
}
