package inventory_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appinv "github.com/jhoicas/Almacen-api/internal/application/inventory"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

func newQCFixture() (*appinv.QCHoldUseCase, *fakeQCRepo) {
	qcRepo := newFakeQCRepo()
	productRepo := newFakeProductRepo(
		&entity.Product{ID: prodID, CompanyID: coID, SKU: "SKU-1"},
	)
	warehouseRepo := newFakeWarehouseRepo(
		&entity.Warehouse{ID: whID, CompanyID: coID},
	)
	return appinv.NewQCHoldUseCase(qcRepo, productRepo, warehouseRepo), qcRepo
}

func qcInput(qty int64) appinv.QCHoldInput {
	return appinv.QCHoldInput{
		ProductID:   prodID,
		WarehouseID: whID,
		Quantity:    decimal.NewFromInt(qty),
		Reason:      "daño en recepción",
	}
}

// TestQCHold_CicloLiberar: una retención creada en on_hold y luego liberada
// pasa a released, guarda fecha de resolución y sale de ListActive.
func TestQCHold_CicloLiberar(t *testing.T) {
	uc, qcRepo := newQCFixture()

	hold, err := uc.Create(context.Background(), coID, userID, qcInput(5))
	require.NoError(t, err)
	assert.Equal(t, entity.QCHoldStatusOnHold, hold.Status)

	active, err := uc.ListActive(context.Background(), coID, prodID, whID)
	require.NoError(t, err)
	require.Len(t, active, 1)

	notas := "inspección aprobada"
	require.NoError(t, uc.Release(context.Background(), coID, hold.ID, &notas))

	active, err = uc.ListActive(context.Background(), coID, prodID, whID)
	require.NoError(t, err)
	assert.Empty(t, active)

	stored, _ := qcRepo.GetByID(coID, hold.ID)
	assert.Equal(t, entity.QCHoldStatusReleased, stored.Status)
	require.NotNil(t, stored.ResolvedAt)
	require.NotNil(t, stored.ResolvedNotes)
	assert.Equal(t, notas, *stored.ResolvedNotes)
}

// TestQCHold_DobleLiberacion: resolver una retención ya terminal es ErrConflict
// explícito (decisión documentada: visible para el operador, no un no-op) y no
// re-estampa fechas.
func TestQCHold_DobleLiberacion(t *testing.T) {
	uc, qcRepo := newQCFixture()
	hold, err := uc.Create(context.Background(), coID, userID, qcInput(5))
	require.NoError(t, err)

	require.NoError(t, uc.Release(context.Background(), coID, hold.ID, nil))
	primera, _ := qcRepo.GetByID(coID, hold.ID)

	err = uc.Release(context.Background(), coID, hold.ID, nil)
	assert.ErrorIs(t, err, domain.ErrConflict)

	segunda, _ := qcRepo.GetByID(coID, hold.ID)
	assert.Equal(t, primera.ResolvedAt, segunda.ResolvedAt, "la fecha de resolución no debe cambiar")
}

// TestQCHold_Rechazo: reject es terminal con las mismas reglas que release.
func TestQCHold_Rechazo(t *testing.T) {
	uc, qcRepo := newQCFixture()
	hold, err := uc.Create(context.Background(), coID, userID, qcInput(3))
	require.NoError(t, err)

	require.NoError(t, uc.Reject(context.Background(), coID, hold.ID, nil))
	stored, _ := qcRepo.GetByID(coID, hold.ID)
	assert.Equal(t, entity.QCHoldStatusRejected, stored.Status)

	assert.ErrorIs(t, uc.Release(context.Background(), coID, hold.ID, nil), domain.ErrConflict,
		"liberar una retención rechazada debe fallar")
}

// TestQCHold_NoExiste: resolver un id inexistente es ErrNotFound, no conflicto.
func TestQCHold_NoExiste(t *testing.T) {
	uc, _ := newQCFixture()

	assert.ErrorIs(t, uc.Release(context.Background(), coID, "qc-fantasma", nil), domain.ErrNotFound)
}

// TestQCHold_EntradaInvalida: cantidad no positiva o sin motivo se rechaza.
func TestQCHold_EntradaInvalida(t *testing.T) {
	uc, _ := newQCFixture()

	_, err := uc.Create(context.Background(), coID, userID, qcInput(0))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	in := qcInput(2)
	in.Reason = ""
	_, err = uc.Create(context.Background(), coID, userID, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
