package inventory

import "github.com/jhoicas/Almacen-api/internal/domain/entity"

// Direction clasifica un tipo de transacción: +1 entrada, -1 salida, 0 desconocido.
// Los tipos desconocidos aportan cero a la posición de stock; nunca son error,
// para que una línea vieja con un tipo retirado no rompa el cálculo.
func Direction(transactionType string) int {
	switch transactionType {
	case entity.TxTypePurchaseIn, entity.TxTypePurchaseReturnIn,
		entity.TxTypeTransferIn, entity.TxTypeAdjustmentIn:
		return 1
	case entity.TxTypeSaleOut, entity.TxTypeSaleReturnOut,
		entity.TxTypeTransferOut, entity.TxTypeAdjustmentOut:
		return -1
	}
	return 0
}

// Inbound indica si el tipo de transacción suma stock.
func Inbound(transactionType string) bool { return Direction(transactionType) > 0 }

// Outbound indica si el tipo de transacción resta stock.
func Outbound(transactionType string) bool { return Direction(transactionType) < 0 }
