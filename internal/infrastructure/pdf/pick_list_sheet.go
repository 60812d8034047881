// Package pdf implementa la hoja imprimible de una lista de picking: el
// documento que el bodeguero lleva en mano para recorrer la bodega.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Número de lista  │  Bodega + Fecha                 │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Sec | SKU | Producto | Ubicación | Cant | Recogido  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: firma del bodeguero + notas                        │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	appinventory "github.com/jhoicas/Almacen-api/internal/application/inventory"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ appinventory.PickListSheetGenerator = (*MarotoSheetGenerator)(nil)

// MarotoSheetGenerator implementa inventory.PickListSheetGenerator usando Maroto v2.
type MarotoSheetGenerator struct{}

// NewMarotoSheetGenerator construye el generador.
func NewMarotoSheetGenerator() *MarotoSheetGenerator { return &MarotoSheetGenerator{} }

// GeneratePickListSheet genera la hoja y devuelve sus bytes.
func (g *MarotoSheetGenerator) GeneratePickListSheet(
	_ context.Context,
	list *entity.PickList,
	warehouse *entity.Warehouse,
	lines []appinventory.PickLineForSheet,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Lista de Picking "+list.Number, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(list, warehouse))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableLineRows(lines) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRows(list)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar hoja de picking: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: número de lista (izq) y bodega + fecha (der).
func headerRow(list *entity.PickList, warehouse *entity.Warehouse) core.Row {
	fecha := list.CreatedAt.Format("02/01/2006 15:04")

	return row.New(18).Add(
		col.New(7).Add(
			text.New("LISTA DE PICKING", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(list.Number, props.Text{
				Style: fontstyle.Bold, Size: 13, Top: 7,
			}),
		),
		col.New(5).Add(
			text.New("Bodega: "+warehouse.Name, props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 1,
			}),
			text.New("Fecha: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
			text.New("Estado: "+list.Status, props.Text{
				Size: 8, Align: align.Right, Top: 13, Color: colorGray,
			}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de líneas.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Sec.", 1, align.Center),
		h("SKU", 2, align.Left),
		h("Producto", 4, align.Left),
		h("Ubicación", 2, align.Center),
		h("Cant.", 1, align.Right),
		h("Recogido", 2, align.Right),
	)
}

// tableLineRows: una fila por línea, en orden de pick_sequence.
func tableLineRows(lines []appinventory.PickLineForSheet) []core.Row {
	result := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		d := l.Detail
		bin := "—"
		if d.BinID != nil {
			bin = *d.BinID
		}
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(
				fmt.Sprintf("%d", d.PickSequence),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(2).Add(text.New(
				l.SKU,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(4).Add(text.New(
				l.ProductName,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				bin,
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(1).Add(text.New(
				d.RequiredQuantity.String(),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			// Casilla para anotar a mano lo recogido
			col.New(2).Add(text.New(
				"______",
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1, Color: colorGray},
			)),
		))
	}
	return result
}

// footerRows: notas + espacio de firma del bodeguero.
func footerRows(list *entity.PickList) []core.Row {
	rows := []core.Row{}
	if list.Notes != nil && *list.Notes != "" {
		rows = append(rows, row.New(8).Add(col.New(12).Add(
			text.New("Notas: "+*list.Notes, props.Text{Size: 8, Color: colorGray, Top: 2}),
		)))
	}
	rows = append(rows, row.New(20).Add(
		col.New(6).Add(
			text.New("_______________________________", props.Text{Size: 9, Top: 12}),
			text.New("Firma bodeguero", props.Text{Size: 7, Top: 17, Color: colorGray}),
		),
		col.New(6).Add(
			text.New("_______________________________", props.Text{Size: 9, Top: 12, Align: align.Right}),
			text.New("Firma supervisor", props.Text{Size: 7, Top: 17, Color: colorGray, Align: align.Right}),
		),
	))
	return rows
}
