package entity

import "time"

// Estados de un número de serie. available → reserved → sold, con ramas
// damaged/returned.
const (
	SerialStatusAvailable = "available"
	SerialStatusReserved  = "reserved"
	SerialStatusSold      = "sold"
	SerialStatusDamaged   = "damaged"
	SerialStatusReturned  = "returned"
)

// SerialNumber identifica una unidad física de producto serializado.
// El serial es único por empresa+producto.
type SerialNumber struct {
	ID                string
	CompanyID         string
	ProductID         string
	VariantID         *string
	WarehouseID       string
	Serial            string
	Status            string
	LastTransactionID *string
	CreatedAt         time.Time
	UpdatedAt         time.Time
	CreatedBy         string
}

// ValidSerialStatus verifica que el estado destino sea uno de los conocidos.
func ValidSerialStatus(status string) bool {
	switch status {
	case SerialStatusAvailable, SerialStatusReserved, SerialStatusSold,
		SerialStatusDamaged, SerialStatusReturned:
		return true
	}
	return false
}
