package inventory_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/inventory"
)

func testConversions() []inventory.UOMConversion {
	return []inventory.UOMConversion{
		{From: "PCS", To: "BOX", Factor: decimal.RequireFromString("0.05")}, // 20 PCS = 1 BOX
		{From: "PCS", To: "PAL", Factor: decimal.RequireFromString("0.002")},
	}
}

// TestConvert_Identidad: misma unidad en origen y destino devuelve la cantidad
// exacta, sin pasar por ningún factor.
func TestConvert_Identidad(t *testing.T) {
	q := decimal.RequireFromString("17.35")
	res := inventory.Convert(q, "PCS", "PCS", testConversions())

	assert.True(t, res.Converted)
	assert.True(t, q.Equal(res.Quantity), "la identidad debe ser exacta")
}

// TestConvert_FactorDirecto: con factor (a,b,f) la conversión a→b multiplica.
func TestConvert_FactorDirecto(t *testing.T) {
	res := inventory.Convert(decimal.NewFromInt(100), "PCS", "BOX", testConversions())

	require.True(t, res.Converted)
	assert.True(t, decimal.NewFromInt(5).Equal(res.Quantity), "100 PCS * 0.05 = 5 BOX")
}

// TestConvert_FactorInverso: con factor (a,b,f) la conversión b→a divide.
func TestConvert_FactorInverso(t *testing.T) {
	res := inventory.Convert(decimal.NewFromInt(5), "BOX", "PCS", testConversions())

	require.True(t, res.Converted)
	assert.True(t, decimal.NewFromInt(100).Equal(res.Quantity), "5 BOX / 0.05 = 100 PCS")
}

// TestConvert_SinFactor: sin conversión entre unidades distintas la cantidad
// vuelve sin cambios y Converted=false para que el llamador pueda advertirlo.
// El fallback silencioso del sistema anterior corrompía cantidades sin aviso;
// aquí el resultado es distinguible.
func TestConvert_SinFactor(t *testing.T) {
	q := decimal.NewFromInt(42)
	res := inventory.Convert(q, "KG", "LB", testConversions())

	assert.False(t, res.Converted, "sin factor no debe reportarse como convertido")
	assert.True(t, q.Equal(res.Quantity), "la cantidad debe volver intacta")
}

// TestConversionsForProduct arma los factores base→primaria y base→secundaria
// desde la configuración del producto, omitiendo unidades iguales a la base.
func TestConversionsForProduct(t *testing.T) {
	p := &entity.Product{
		BaseUOM:                  "PCS",
		PrimaryUOM:               "BOX",
		SecondaryUOM:             "PAL",
		PrimaryToSecondaryFactor: decimal.NewFromInt(20),  // 20 PCS por BOX
		SecondaryToBaseFactor:    decimal.NewFromInt(500), // 500 PCS por PAL
	}

	conversions := inventory.ConversionsForProduct(p)
	require.Len(t, conversions, 2)

	res := inventory.Convert(decimal.NewFromInt(40), "PCS", "BOX", conversions)
	require.True(t, res.Converted)
	assert.True(t, decimal.NewFromInt(2).Equal(res.Quantity), "40 PCS = 2 BOX")

	res = inventory.Convert(decimal.NewFromInt(1000), "PCS", "PAL", conversions)
	require.True(t, res.Converted)
	assert.True(t, decimal.NewFromInt(2).Equal(res.Quantity), "1000 PCS = 2 PAL")
}

// TestConversionsForProduct_UnidadIgualBase: si la unidad primaria es la misma
// base no se emite factor (la identidad ya la cubre Convert).
func TestConversionsForProduct_UnidadIgualBase(t *testing.T) {
	p := &entity.Product{
		BaseUOM:                  "PCS",
		PrimaryUOM:               "PCS",
		PrimaryToSecondaryFactor: decimal.NewFromInt(20),
	}
	assert.Empty(t, inventory.ConversionsForProduct(p))
}

// TestConversionsForProduct_FactorCero: un factor almacenado en cero no emite
// conversión (evita división por cero río abajo).
func TestConversionsForProduct_FactorCero(t *testing.T) {
	p := &entity.Product{
		BaseUOM:      "PCS",
		PrimaryUOM:   "BOX",
		SecondaryUOM: "PAL",
	}
	assert.Empty(t, inventory.ConversionsForProduct(p))
}
