package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest body para POST /api/products. Cost inicia en 0 y se
// recalcula vía movimientos de compra.
type CreateProductRequest struct {
	SKU         string `json:"sku"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`

	BaseUOM                  string          `json:"base_uom"`
	PrimaryUOM               string          `json:"primary_uom,omitempty"`
	SecondaryUOM             string          `json:"secondary_uom,omitempty"`
	PrimaryToSecondaryFactor decimal.Decimal `json:"primary_to_secondary_factor,omitempty"`
	SecondaryToBaseFactor    decimal.Decimal `json:"secondary_to_base_factor,omitempty"`

	Serialized bool `json:"serialized,omitempty"`
}

// UpdateProductRequest body para PUT /api/products/:id (campos opcionales).
// No permite modificar Cost (se maneja vía movimientos).
type UpdateProductRequest struct {
	Name                     *string          `json:"name,omitempty"`
	Description              *string          `json:"description,omitempty"`
	BaseUOM                  *string          `json:"base_uom,omitempty"`
	PrimaryUOM               *string          `json:"primary_uom,omitempty"`
	SecondaryUOM             *string          `json:"secondary_uom,omitempty"`
	PrimaryToSecondaryFactor *decimal.Decimal `json:"primary_to_secondary_factor,omitempty"`
	SecondaryToBaseFactor    *decimal.Decimal `json:"secondary_to_base_factor,omitempty"`
}

// ProductResponse representación pública de un producto.
type ProductResponse struct {
	ID          string          `json:"id"`
	CompanyID   string          `json:"company_id"`
	SKU         string          `json:"sku"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Cost        decimal.Decimal `json:"cost"`

	BaseUOM                  string          `json:"base_uom"`
	PrimaryUOM               string          `json:"primary_uom,omitempty"`
	SecondaryUOM             string          `json:"secondary_uom,omitempty"`
	PrimaryToSecondaryFactor decimal.Decimal `json:"primary_to_secondary_factor"`
	SecondaryToBaseFactor    decimal.Decimal `json:"secondary_to_base_factor"`

	Serialized bool      `json:"serialized"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ConvertUOMResponse resultado de GET /api/products/:id/convert-uom.
// Converted=false indica el fallback de identidad por factor faltante.
type ConvertUOMResponse struct {
	ProductID string          `json:"product_id"`
	FromUOM   string          `json:"from_uom"`
	ToUOM     string          `json:"to_uom"`
	Input     decimal.Decimal `json:"input_quantity"`
	Output    decimal.Decimal `json:"output_quantity"`
	Converted bool            `json:"converted"`
}
