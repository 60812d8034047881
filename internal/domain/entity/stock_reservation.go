package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una reserva de stock.
const (
	ReservationStatusActive   = "active"
	ReservationStatusReleased = "released"
)

// StockReservation es una retención blanda de cantidad a nombre de un documento
// de referencia (orden, traslado). Las reservas liberadas o vencidas no cuentan
// en los agregados de disponibilidad.
type StockReservation struct {
	ID            string
	CompanyID     string
	ProductID     string
	VariantID     *string
	WarehouseID   string
	BinID         *string
	Quantity      decimal.Decimal
	Status        string // active, released
	ReferenceType string // sales_order, transfer, ...
	ReferenceID   string
	ExpiresAt     *time.Time
	CreatedAt     time.Time
	CreatedBy     string
	ReleasedAt    *time.Time
}

// Expired indica si la reserva está vencida respecto a now.
func (r *StockReservation) Expired(now time.Time) bool {
	return r.ExpiresAt != nil && r.ExpiresAt.Before(now)
}
