package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto o SKU del almacén (multi-bodega).
// La configuración de unidades de medida vive aquí: BaseUOM es la unidad en la
// que se registran los movimientos; PrimaryUOM/SecondaryUOM son unidades
// alternas con sus factores almacenados (ver inventory.ConversionsForProduct).
type Product struct {
	ID          string
	CompanyID   string
	SKU         string // código único por empresa
	Name        string
	Description string
	Cost        decimal.Decimal // costo promedio ponderado (inicia en 0)

	BaseUOM                  string          // unidad base de los movimientos (ej. "PCS")
	PrimaryUOM               string          // unidad primaria de compra/venta (ej. "BOX")
	SecondaryUOM             string          // unidad secundaria opcional
	PrimaryToSecondaryFactor decimal.Decimal // cuántas unidades base hay en una primaria
	SecondaryToBaseFactor    decimal.Decimal // cuántas unidades base hay en una secundaria

	Serialized bool // true = cada unidad lleva número de serie
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
