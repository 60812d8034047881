package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del encabezado de una lista de picking.
const (
	PickListStatusOpen      = "open"
	PickListStatusCompleted = "completed"
	PickListStatusCancelled = "cancelled"
)

// Estados de una línea de picking.
const (
	PickLineStatusPending   = "pending"
	PickLineStatusPartial   = "partial"
	PickLineStatusCompleted = "completed"
	PickLineStatusShort     = "short"
)

// PickList es el documento que indica al bodeguero qué recoger y en qué orden.
type PickList struct {
	ID          string
	CompanyID   string
	Number      string
	WarehouseID string
	Status      string
	Notes       *string
	CreatedAt   time.Time
	CreatedBy   string
}

// PickListDetail es una línea de picking. PickSequence se asigna al crear la
// lista (orden 1-based de los ítems solicitados) y no cambia después.
type PickListDetail struct {
	ID               string
	CompanyID        string
	PickListID       string
	ProductID        string
	VariantID        *string
	BinID            *string
	RequiredQuantity decimal.Decimal
	PickedQuantity   decimal.Decimal
	PickSequence     int
	Status           string
	UpdatedAt        time.Time
}

// DerivePickLineStatus calcula el estado de una línea a partir de lo recogido
// frente a lo requerido. "short" no se deriva aquí: lo fija el cierre explícito
// de la línea cuando no hay stock para completarla.
func DerivePickLineStatus(picked, required decimal.Decimal) string {
	switch {
	case picked.LessThanOrEqual(decimal.Zero):
		return PickLineStatusPending
	case picked.LessThan(required):
		return PickLineStatusPartial
	default:
		return PickLineStatusCompleted
	}
}
