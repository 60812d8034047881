package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterMovementRequest body para POST /api/inventory/movements.
type RegisterMovementRequest struct {
	TransactionID string           `json:"transaction_id,omitempty"`
	Type          string           `json:"type"`
	ProductID     string           `json:"product_id"`
	VariantID     *string          `json:"variant_id,omitempty"`
	BinID         *string          `json:"bin_id,omitempty"`
	WarehouseID   string           `json:"warehouse_id"`
	Quantity      decimal.Decimal  `json:"quantity"`
	UnitCost      *decimal.Decimal `json:"unit_cost,omitempty"`
}

// TransferRequest body para POST /api/inventory/transfers.
type TransferRequest struct {
	ProductID       string          `json:"product_id"`
	VariantID       *string         `json:"variant_id,omitempty"`
	BinID           *string         `json:"bin_id,omitempty"`
	FromWarehouseID string          `json:"from_warehouse_id"`
	ToWarehouseID   string          `json:"to_warehouse_id"`
	Quantity        decimal.Decimal `json:"quantity"`
}

// ValidateMovementRequest body para POST /api/inventory/validate.
type ValidateMovementRequest struct {
	Type        string          `json:"type"`
	ProductID   string          `json:"product_id"`
	VariantID   *string         `json:"variant_id,omitempty"`
	BinID       *string         `json:"bin_id,omitempty"`
	WarehouseID string          `json:"warehouse_id"`
	Quantity    decimal.Decimal `json:"quantity"`
}

// StockPositionResponse posición derivada de stock.
type StockPositionResponse struct {
	ProductID      string          `json:"product_id"`
	WarehouseID    string          `json:"warehouse_id"`
	VariantID      *string         `json:"variant_id,omitempty"`
	BinID          *string         `json:"bin_id,omitempty"`
	CurrentStock   decimal.Decimal `json:"current_stock"`
	ReservedStock  decimal.Decimal `json:"reserved_stock"`
	QCHoldStock    decimal.Decimal `json:"qc_hold_stock"`
	AvailableStock decimal.Decimal `json:"available_stock"`
}

// ValidationResponse resultado del chequeo puntual de un movimiento.
type ValidationResponse struct {
	IsValid        bool            `json:"is_valid"`
	CurrentStock   decimal.Decimal `json:"current_stock"`
	AvailableStock decimal.Decimal `json:"available_stock"`
	Message        string          `json:"message,omitempty"`
}

// MovementResponse confirmación de un movimiento registrado.
type MovementResponse struct {
	TransactionID string `json:"transaction_id"`
}

// CreateReservationRequest body para POST /api/inventory/reservations.
type CreateReservationRequest struct {
	ProductID     string          `json:"product_id"`
	VariantID     *string         `json:"variant_id,omitempty"`
	WarehouseID   string          `json:"warehouse_id"`
	BinID         *string         `json:"bin_id,omitempty"`
	Quantity      decimal.Decimal `json:"quantity"`
	ReferenceType string          `json:"reference_type"`
	ReferenceID   string          `json:"reference_id"`
	ExpiresAt     *time.Time      `json:"expires_at,omitempty"`
}

// ReservationResponse representación pública de una reserva.
type ReservationResponse struct {
	ID            string          `json:"id"`
	ProductID     string          `json:"product_id"`
	VariantID     *string         `json:"variant_id,omitempty"`
	WarehouseID   string          `json:"warehouse_id"`
	BinID         *string         `json:"bin_id,omitempty"`
	Quantity      decimal.Decimal `json:"quantity"`
	Status        string          `json:"status"`
	ReferenceType string          `json:"reference_type"`
	ReferenceID   string          `json:"reference_id"`
	ExpiresAt     *time.Time      `json:"expires_at,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

// CreateSerialsRequest body para POST /api/inventory/serials.
type CreateSerialsRequest struct {
	ProductID   string   `json:"product_id"`
	VariantID   *string  `json:"variant_id,omitempty"`
	WarehouseID string   `json:"warehouse_id"`
	Serials     []string `json:"serials"`
}

// UpdateSerialStatusRequest body para PUT /api/inventory/serials/status.
// Aplica el mismo estado a todo el lote (todo-o-nada).
type UpdateSerialStatusRequest struct {
	ProductID     string   `json:"product_id"`
	Serials       []string `json:"serials"`
	Status        string   `json:"status"`
	TransactionID *string  `json:"transaction_id,omitempty"`
}

// SerialResponse representación pública de un número de serie.
type SerialResponse struct {
	ID                string  `json:"id"`
	ProductID         string  `json:"product_id"`
	VariantID         *string `json:"variant_id,omitempty"`
	WarehouseID       string  `json:"warehouse_id"`
	Serial            string  `json:"serial"`
	Status            string  `json:"status"`
	LastTransactionID *string `json:"last_transaction_id,omitempty"`
}

// CreateQCHoldRequest body para POST /api/inventory/qc-holds.
type CreateQCHoldRequest struct {
	ProductID      string          `json:"product_id"`
	VariantID      *string         `json:"variant_id,omitempty"`
	WarehouseID    string          `json:"warehouse_id"`
	BinID          *string         `json:"bin_id,omitempty"`
	Quantity       decimal.Decimal `json:"quantity"`
	Reason         string          `json:"reason"`
	InspectorNotes *string         `json:"inspector_notes,omitempty"`
}

// ResolveQCHoldRequest body para PUT /api/inventory/qc-holds/:id/release|reject.
type ResolveQCHoldRequest struct {
	Notes *string `json:"notes,omitempty"`
}

// QCHoldResponse representación pública de una retención de calidad.
type QCHoldResponse struct {
	ID             string          `json:"id"`
	ProductID      string          `json:"product_id"`
	VariantID      *string         `json:"variant_id,omitempty"`
	WarehouseID    string          `json:"warehouse_id"`
	BinID          *string         `json:"bin_id,omitempty"`
	Quantity       decimal.Decimal `json:"quantity"`
	Status         string          `json:"status"`
	Reason         string          `json:"reason"`
	InspectorNotes *string         `json:"inspector_notes,omitempty"`
	HeldAt         time.Time       `json:"held_at"`
	ResolvedAt     *time.Time      `json:"resolved_at,omitempty"`
}

// PickItemRequest un ítem solicitado para la lista de picking.
type PickItemRequest struct {
	ProductID string          `json:"product_id"`
	VariantID *string         `json:"variant_id,omitempty"`
	BinID     *string         `json:"bin_id,omitempty"`
	Quantity  decimal.Decimal `json:"quantity"`
}

// GeneratePickListRequest body para POST /api/pick-lists.
type GeneratePickListRequest struct {
	WarehouseID string            `json:"warehouse_id"`
	Items       []PickItemRequest `json:"items"`
	Notes       *string           `json:"notes,omitempty"`
}

// UpdatePickQuantityRequest body para PUT /api/pick-lists/details/:detailId.
type UpdatePickQuantityRequest struct {
	PickedQuantity decimal.Decimal `json:"picked_quantity"`
}

// PickListDetailResponse línea de picking.
type PickListDetailResponse struct {
	ID               string          `json:"id"`
	ProductID        string          `json:"product_id"`
	VariantID        *string         `json:"variant_id,omitempty"`
	BinID            *string         `json:"bin_id,omitempty"`
	RequiredQuantity decimal.Decimal `json:"required_quantity"`
	PickedQuantity   decimal.Decimal `json:"picked_quantity"`
	PickSequence     int             `json:"pick_sequence"`
	Status           string          `json:"status"`
}

// PickListResponse encabezado con líneas en orden de pick_sequence.
type PickListResponse struct {
	ID          string                   `json:"id"`
	Number      string                   `json:"number"`
	WarehouseID string                   `json:"warehouse_id"`
	Status      string                   `json:"status"`
	Notes       *string                  `json:"notes,omitempty"`
	CreatedAt   time.Time                `json:"created_at"`
	Details     []PickListDetailResponse `json:"details,omitempty"`
}
