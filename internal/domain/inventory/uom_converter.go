package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// UOMConversion relaciona dos unidades de medida con un factor multiplicativo:
// cantidad_en_To = cantidad_en_From * Factor.
type UOMConversion struct {
	From   string
	To     string
	Factor decimal.Decimal
}

// ConversionResult es el resultado de una conversión. Converted=false significa
// que no existía factor entre las unidades y la cantidad volvió sin cambios;
// el llamador decide si eso es un warning o un rechazo. Nunca se lanza error
// por conversión faltante.
type ConversionResult struct {
	Quantity  decimal.Decimal
	Converted bool
}

// Convert convierte una cantidad entre dos unidades usando la lista de factores
// del producto. Identidad exacta si From==To; factor directo multiplica; factor
// inverso divide; sin factor devuelve la cantidad sin cambios con Converted=false.
func Convert(quantity decimal.Decimal, fromUOM, toUOM string, conversions []UOMConversion) ConversionResult {
	if fromUOM == toUOM {
		return ConversionResult{Quantity: quantity, Converted: true}
	}
	for _, c := range conversions {
		if c.From == fromUOM && c.To == toUOM {
			return ConversionResult{Quantity: quantity.Mul(c.Factor), Converted: true}
		}
	}
	for _, c := range conversions {
		if c.From == toUOM && c.To == fromUOM && !c.Factor.IsZero() {
			return ConversionResult{Quantity: quantity.Div(c.Factor), Converted: true}
		}
	}
	return ConversionResult{Quantity: quantity, Converted: false}
}

// ConversionsForProduct arma los factores de un producto desde su configuración:
// base→primaria (1/PrimaryToSecondaryFactor) y base→secundaria
// (1/SecondaryToBaseFactor), solo cuando la unidad difiere de la base y el
// factor almacenado no es cero.
func ConversionsForProduct(p *entity.Product) []UOMConversion {
	var conversions []UOMConversion
	one := decimal.NewFromInt(1)
	if p.PrimaryUOM != "" && p.PrimaryUOM != p.BaseUOM && !p.PrimaryToSecondaryFactor.IsZero() {
		conversions = append(conversions, UOMConversion{
			From:   p.BaseUOM,
			To:     p.PrimaryUOM,
			Factor: one.Div(p.PrimaryToSecondaryFactor),
		})
	}
	if p.SecondaryUOM != "" && p.SecondaryUOM != p.BaseUOM && !p.SecondaryToBaseFactor.IsZero() {
		conversions = append(conversions, UOMConversion{
			From:   p.BaseUOM,
			To:     p.SecondaryUOM,
			Factor: one.Div(p.SecondaryToBaseFactor),
		})
	}
	return conversions
}
