package inventory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appinv "github.com/jhoicas/Almacen-api/internal/application/inventory"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

type serialFixture struct {
	uc         *appinv.SerialUseCase
	serialRepo *fakeSerialRepo
}

func newSerialFixture() *serialFixture {
	serialRepo := newFakeSerialRepo()
	productRepo := newFakeProductRepo(
		&entity.Product{ID: prodID, CompanyID: coID, SKU: "SKU-1", Serialized: true},
	)
	runner := &fakeTxRunner{serialRepo: serialRepo}
	return &serialFixture{
		uc:         appinv.NewSerialUseCase(runner, serialRepo, productRepo),
		serialRepo: serialRepo,
	}
}

// TestSerialCreate_LoteEstampadoConTenant: el lote entra en available y cada
// registro queda estampado con la empresa dueña.
func TestSerialCreate_LoteEstampadoConTenant(t *testing.T) {
	f := newSerialFixture()

	err := f.uc.Create(context.Background(), coID, userID, prodID, whID, nil, []string{"SN1", "SN2", "SN3"})
	require.NoError(t, err)

	available, err := f.uc.ListAvailable(context.Background(), coID, prodID, whID, nil)
	require.NoError(t, err)
	require.Len(t, available, 3)
	for _, s := range available {
		assert.Equal(t, coID, s.CompanyID)
		assert.Equal(t, entity.SerialStatusAvailable, s.Status)
		assert.Equal(t, userID, s.CreatedBy)
	}
}

// TestSerialCreate_DuplicadoAbortaLote: un serial repetido dentro del lote se
// rechaza sin insertar nada.
func TestSerialCreate_DuplicadoAbortaLote(t *testing.T) {
	f := newSerialFixture()

	err := f.uc.Create(context.Background(), coID, userID, prodID, whID, nil, []string{"SN1", "SN1"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, f.serialRepo.serials)
}

// TestSerialUpdateStatus_LoteCompleto: vender SN1 y SN2 con transacción 5 deja
// ambos en sold con el enlace, y la consulta de disponibles los excluye.
func TestSerialUpdateStatus_LoteCompleto(t *testing.T) {
	f := newSerialFixture()
	require.NoError(t, f.uc.Create(context.Background(), coID, userID, prodID, whID, nil,
		[]string{"SN1", "SN2", "SN3"}))

	txID := "tx-5"
	err := f.uc.UpdateStatus(context.Background(), coID, prodID, []string{"SN1", "SN2"},
		entity.SerialStatusSold, &txID)
	require.NoError(t, err)

	vendidos, err := f.serialRepo.ListBySerials(coID, prodID, []string{"SN1", "SN2"})
	require.NoError(t, err)
	require.Len(t, vendidos, 2)
	for _, s := range vendidos {
		assert.Equal(t, entity.SerialStatusSold, s.Status)
		require.NotNil(t, s.LastTransactionID)
		assert.Equal(t, txID, *s.LastTransactionID)
	}

	available, err := f.uc.ListAvailable(context.Background(), coID, prodID, whID, nil)
	require.NoError(t, err)
	require.Len(t, available, 1)
	assert.Equal(t, "SN3", available[0].Serial)
}

// TestSerialUpdateStatus_TodoONada: si un serial del lote no existe, la
// transacción hace rollback y ninguno cambia de estado.
func TestSerialUpdateStatus_TodoONada(t *testing.T) {
	f := newSerialFixture()
	require.NoError(t, f.uc.Create(context.Background(), coID, userID, prodID, whID, nil,
		[]string{"SN1", "SN2"}))

	err := f.uc.UpdateStatus(context.Background(), coID, prodID,
		[]string{"SN1", "SN-fantasma"}, entity.SerialStatusSold, nil)
	assert.ErrorIs(t, err, domain.ErrConflict)

	available, _ := f.uc.ListAvailable(context.Background(), coID, prodID, whID, nil)
	assert.Len(t, available, 2, "el rollback debe dejar ambos seriales disponibles")
}

// TestSerialUpdateStatus_OtraEmpresa: los seriales de otra empresa cuentan
// como no afectados y el lote entero se rechaza.
func TestSerialUpdateStatus_OtraEmpresa(t *testing.T) {
	f := newSerialFixture()
	require.NoError(t, f.uc.Create(context.Background(), coID, userID, prodID, whID, nil, []string{"SN1"}))

	err := f.uc.UpdateStatus(context.Background(), otherCo, prodID, []string{"SN1"},
		entity.SerialStatusSold, nil)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

// TestSerialUpdateStatus_EstadoInvalido: un estado fuera del ciclo de vida se
// rechaza antes de tocar la base.
func TestSerialUpdateStatus_EstadoInvalido(t *testing.T) {
	f := newSerialFixture()

	err := f.uc.UpdateStatus(context.Background(), coID, prodID, []string{"SN1"}, "roto", nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// TestSerialUpdateStatus_DuplicadoEnLote: un serial repetido en el lote se
// rechaza como entrada inválida antes de tocar la base. Un UPDATE por valor
// afecta la fila una sola vez, así que el duplicado haría fallar el conteo
// todo-o-nada como un conflicto falso.
func TestSerialUpdateStatus_DuplicadoEnLote(t *testing.T) {
	f := newSerialFixture()
	require.NoError(t, f.uc.Create(context.Background(), coID, userID, prodID, whID, nil, []string{"SN1"}))

	err := f.uc.UpdateStatus(context.Background(), coID, prodID, []string{"SN1", "SN1"},
		entity.SerialStatusSold, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// El serial queda intacto en available.
	available, err := f.uc.ListAvailable(context.Background(), coID, prodID, whID, nil)
	require.NoError(t, err)
	require.Len(t, available, 1)
	assert.Equal(t, entity.SerialStatusAvailable, available[0].Status)
}
