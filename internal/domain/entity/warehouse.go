package entity

import "time"

// Warehouse representa una bodega donde se almacena inventario (multi-bodega).
type Warehouse struct {
	ID        string
	CompanyID string
	Name      string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Bin representa una ubicación física dentro de una bodega (pasillo/estante).
// Opcional: los movimientos pueden registrarse a nivel bodega sin ubicación.
type Bin struct {
	ID          string
	CompanyID   string
	WarehouseID string
	Code        string
	CreatedAt   time.Time
}
