package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una retención de calidad. released y rejected son terminales:
// reabrir exige crear una retención nueva.
const (
	QCHoldStatusOnHold   = "on_hold"
	QCHoldStatusReleased = "released"
	QCHoldStatusRejected = "rejected"
)

// QCHold retira una cantidad de la disponibilidad vendible hasta que la
// inspección la resuelva.
type QCHold struct {
	ID             string
	CompanyID      string
	ProductID      string
	VariantID      *string
	WarehouseID    string
	BinID          *string
	Quantity       decimal.Decimal
	Status         string // on_hold, released, rejected
	Reason         string
	InspectorNotes *string
	HeldAt         time.Time
	ResolvedAt     *time.Time
	ResolvedNotes  *string
	CreatedBy      string
}

// Terminal indica si la retención ya fue resuelta (released o rejected).
func (h *QCHold) Terminal() bool {
	return h.Status == QCHoldStatusReleased || h.Status == QCHoldStatusRejected
}
