package inventory_test

import (
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appinv "github.com/jhoicas/Almacen-api/internal/application/inventory"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

type pickFixture struct {
	uc       *appinv.PickListUseCase
	pickRepo *fakePickRepo
}

func newPickFixture() *pickFixture {
	pickRepo := newFakePickRepo()
	productRepo := newFakeProductRepo(
		&entity.Product{ID: "prod-a", CompanyID: coID, SKU: "SKU-A", Name: "Tornillo"},
		&entity.Product{ID: "prod-b", CompanyID: coID, SKU: "SKU-B", Name: "Tuerca"},
		&entity.Product{ID: "prod-c", CompanyID: coID, SKU: "SKU-C", Name: "Arandela"},
	)
	warehouseRepo := newFakeWarehouseRepo(
		&entity.Warehouse{ID: whID, CompanyID: coID, Name: "Principal"},
	)
	runner := &fakeTxRunner{pickRepo: pickRepo}
	return &pickFixture{
		uc:       appinv.NewPickListUseCase(runner, pickRepo, productRepo, warehouseRepo, nil),
		pickRepo: pickRepo,
	}
}

func pickItems() []appinv.PickItemInput {
	return []appinv.PickItemInput{
		{ProductID: "prod-a", Quantity: decimal.NewFromInt(5), BinID: ptr("bin-1")},
		{ProductID: "prod-b", Quantity: decimal.NewFromInt(3)},
		{ProductID: "prod-c", Quantity: decimal.NewFromInt(7)},
	}
}

// TestPickListGenerate_SecuenciaPorOrdenDeEntrada: tres ítems producen un
// encabezado más tres líneas con pick_sequence 1,2,3 en el orden solicitado,
// picked_quantity 0 y estado pending.
func TestPickListGenerate_SecuenciaPorOrdenDeEntrada(t *testing.T) {
	f := newPickFixture()

	list, err := f.uc.Generate(context.Background(), coID, userID, whID, pickItems(), nil)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(list.Number, "PL-"))
	assert.Equal(t, entity.PickListStatusOpen, list.Status)

	_, details, err := f.uc.Get(context.Background(), coID, list.ID)
	require.NoError(t, err)
	require.Len(t, details, 3)

	expectedProducts := []string{"prod-a", "prod-b", "prod-c"}
	for i, d := range details {
		assert.Equal(t, i+1, d.PickSequence)
		assert.Equal(t, expectedProducts[i], d.ProductID, "la secuencia sigue el orden de entrada")
		assert.True(t, d.PickedQuantity.IsZero())
		assert.Equal(t, entity.PickLineStatusPending, d.Status)
	}
}

// TestPickListGenerate_SinItems: una lista vacía no tiene sentido.
func TestPickListGenerate_SinItems(t *testing.T) {
	f := newPickFixture()

	_, err := f.uc.Generate(context.Background(), coID, userID, whID, nil, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// TestUpdatePickQuantity_DerivaEstado: el estado de la línea se deriva de lo
// recogido frente a lo requerido: 0 pending, parcial partial, completo completed.
func TestUpdatePickQuantity_DerivaEstado(t *testing.T) {
	f := newPickFixture()
	list, err := f.uc.Generate(context.Background(), coID, userID, whID, pickItems(), nil)
	require.NoError(t, err)
	_, details, err := f.uc.Get(context.Background(), coID, list.ID)
	require.NoError(t, err)
	lineID := details[0].ID // requiere 5

	require.NoError(t, f.uc.UpdatePickQuantity(context.Background(), coID, lineID, decimal.NewFromInt(2)))
	d, _ := f.pickRepo.GetDetail(coID, lineID)
	assert.Equal(t, entity.PickLineStatusPartial, d.Status)

	require.NoError(t, f.uc.UpdatePickQuantity(context.Background(), coID, lineID, decimal.NewFromInt(5)))
	d, _ = f.pickRepo.GetDetail(coID, lineID)
	assert.Equal(t, entity.PickLineStatusCompleted, d.Status)

	require.NoError(t, f.uc.UpdatePickQuantity(context.Background(), coID, lineID, decimal.Zero))
	d, _ = f.pickRepo.GetDetail(coID, lineID)
	assert.Equal(t, entity.PickLineStatusPending, d.Status)
}

// TestCloseLineShort: cerrar corto aplica desde pending/partial, conserva lo
// recogido y bloquea actualizaciones posteriores.
func TestCloseLineShort(t *testing.T) {
	f := newPickFixture()
	list, err := f.uc.Generate(context.Background(), coID, userID, whID, pickItems(), nil)
	require.NoError(t, err)
	_, details, err := f.uc.Get(context.Background(), coID, list.ID)
	require.NoError(t, err)
	lineID := details[1].ID // requiere 3

	require.NoError(t, f.uc.UpdatePickQuantity(context.Background(), coID, lineID, decimal.NewFromInt(1)))
	require.NoError(t, f.uc.CloseLineShort(context.Background(), coID, lineID))

	d, _ := f.pickRepo.GetDetail(coID, lineID)
	assert.Equal(t, entity.PickLineStatusShort, d.Status)
	assert.True(t, decimal.NewFromInt(1).Equal(d.PickedQuantity), "cerrar corto no borra lo ya recogido")

	assert.ErrorIs(t, f.uc.UpdatePickQuantity(context.Background(), coID, lineID, decimal.NewFromInt(3)),
		domain.ErrConflict, "una línea short no admite más picking")
	assert.ErrorIs(t, f.uc.CloseLineShort(context.Background(), coID, lineID), domain.ErrConflict)
}

// TestCloseLineShort_LineaCompletada: una línea completada no puede cerrarse
// corta.
func TestCloseLineShort_LineaCompletada(t *testing.T) {
	f := newPickFixture()
	list, err := f.uc.Generate(context.Background(), coID, userID, whID, pickItems(), nil)
	require.NoError(t, err)
	_, details, err := f.uc.Get(context.Background(), coID, list.ID)
	require.NoError(t, err)
	lineID := details[1].ID

	require.NoError(t, f.uc.UpdatePickQuantity(context.Background(), coID, lineID, decimal.NewFromInt(3)))
	assert.ErrorIs(t, f.uc.CloseLineShort(context.Background(), coID, lineID), domain.ErrConflict)
}

// TestPickList_OtraEmpresa: la lista de una empresa no es visible para otra.
func TestPickList_OtraEmpresa(t *testing.T) {
	f := newPickFixture()
	list, err := f.uc.Generate(context.Background(), coID, userID, whID, pickItems(), nil)
	require.NoError(t, err)

	_, _, err = f.uc.Get(context.Background(), otherCo, list.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
