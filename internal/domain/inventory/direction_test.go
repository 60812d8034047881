package inventory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/inventory"
)

// TestDirection cubre la clasificación completa de tipos: entradas suman,
// salidas restan y los tipos desconocidos aportan cero sin error.
func TestDirection(t *testing.T) {
	inbound := []string{
		entity.TxTypePurchaseIn, entity.TxTypePurchaseReturnIn,
		entity.TxTypeTransferIn, entity.TxTypeAdjustmentIn,
	}
	outbound := []string{
		entity.TxTypeSaleOut, entity.TxTypeSaleReturnOut,
		entity.TxTypeTransferOut, entity.TxTypeAdjustmentOut,
	}

	for _, tt := range inbound {
		assert.Equal(t, 1, inventory.Direction(tt), "tipo %s debe ser entrada", tt)
		assert.True(t, inventory.Inbound(tt))
	}
	for _, tt := range outbound {
		assert.Equal(t, -1, inventory.Direction(tt), "tipo %s debe ser salida", tt)
		assert.True(t, inventory.Outbound(tt))
	}

	assert.Equal(t, 0, inventory.Direction("legacy_type"), "tipo desconocido aporta cero")
	assert.False(t, inventory.Inbound(""))
	assert.False(t, inventory.Outbound("qc_note"))
}
