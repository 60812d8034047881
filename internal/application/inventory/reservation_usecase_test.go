package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appinv "github.com/jhoicas/Almacen-api/internal/application/inventory"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

type reservationFixture struct {
	uc              *appinv.ReservationUseCase
	levelRepo       *fakeLevelRepo
	reservationRepo *fakeReservationRepo
}

func newReservationFixture() *reservationFixture {
	levelRepo := newFakeLevelRepo()
	reservationRepo := newFakeReservationRepo()
	productRepo := newFakeProductRepo(
		&entity.Product{ID: prodID, CompanyID: coID, SKU: "SKU-1"},
	)
	warehouseRepo := newFakeWarehouseRepo(
		&entity.Warehouse{ID: whID, CompanyID: coID},
	)
	runner := &fakeTxRunner{
		levelRepo:       levelRepo,
		reservationRepo: reservationRepo,
		qcRepo:          newFakeQCRepo(),
	}
	return &reservationFixture{
		uc:              appinv.NewReservationUseCase(runner, reservationRepo, productRepo, warehouseRepo),
		levelRepo:       levelRepo,
		reservationRepo: reservationRepo,
	}
}

func (f *reservationFixture) seedLevel(qty int64) {
	_ = f.levelRepo.Upsert(&entity.StockLevel{
		CompanyID: coID, WarehouseID: whID, ProductID: prodID,
		Quantity: decimal.NewFromInt(qty),
	})
}

func reservationInput(qty int64) appinv.ReservationInput {
	return appinv.ReservationInput{
		ProductID:     prodID,
		WarehouseID:   whID,
		Quantity:      decimal.NewFromInt(qty),
		ReferenceType: "sales_order",
		ReferenceID:   "so-1",
	}
}

// TestCreateReservation_DentroDelStock: reservar dentro del saldo queda activa.
func TestCreateReservation_DentroDelStock(t *testing.T) {
	f := newReservationFixture()
	f.seedLevel(10)

	res, err := f.uc.Create(context.Background(), coID, userID, reservationInput(6))
	require.NoError(t, err)
	assert.Equal(t, entity.ReservationStatusActive, res.Status)
	assert.Equal(t, coID, res.CompanyID)
	assert.Equal(t, userID, res.CreatedBy)
}

// TestCreateReservation_SobreReserva: la suma de reservas activas más la nueva
// no puede exceder el stock actual; el exceso devuelve ErrInsufficientStock y
// no inserta nada.
func TestCreateReservation_SobreReserva(t *testing.T) {
	f := newReservationFixture()
	f.seedLevel(10)

	_, err := f.uc.Create(context.Background(), coID, userID, reservationInput(6))
	require.NoError(t, err)

	_, err = f.uc.Create(context.Background(), coID, userID, reservationInput(5))
	assert.ErrorIs(t, err, domain.ErrInsufficientStock, "6+5 > 10 debe rechazarse")
	assert.Len(t, f.reservationRepo.reservations, 1)
}

// TestCreateReservation_VencidasNoCuentan: una reserva vencida libera cupo
// para reservas nuevas.
func TestCreateReservation_VencidasNoCuentan(t *testing.T) {
	f := newReservationFixture()
	f.seedLevel(10)
	pasado := time.Now().Add(-time.Minute)
	_ = f.reservationRepo.Create(&entity.StockReservation{
		CompanyID: coID, ProductID: prodID, WarehouseID: whID,
		Quantity: decimal.NewFromInt(9), Status: entity.ReservationStatusActive,
		ExpiresAt: &pasado,
	})

	_, err := f.uc.Create(context.Background(), coID, userID, reservationInput(8))
	assert.NoError(t, err)
}

// TestReleaseReservation_Idempotente: liberar dos veces es no-op exitoso; la
// reserva queda released y fuera de ListActive.
func TestReleaseReservation_Idempotente(t *testing.T) {
	f := newReservationFixture()
	f.seedLevel(10)
	res, err := f.uc.Create(context.Background(), coID, userID, reservationInput(4))
	require.NoError(t, err)

	require.NoError(t, f.uc.Release(context.Background(), coID, res.ID))
	require.NoError(t, f.uc.Release(context.Background(), coID, res.ID), "doble release debe ser no-op")

	active, err := f.uc.ListActive(context.Background(), coID, prodID, whID, nil)
	require.NoError(t, err)
	assert.Empty(t, active)

	stored, _ := f.reservationRepo.GetByID(coID, res.ID)
	assert.Equal(t, entity.ReservationStatusReleased, stored.Status)
	require.NotNil(t, stored.ReleasedAt)
}

// TestReleaseReservation_NoExiste: liberar un id inexistente sí es error.
func TestReleaseReservation_NoExiste(t *testing.T) {
	f := newReservationFixture()

	err := f.uc.Release(context.Background(), coID, "res-fantasma")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// TestReleaseReservation_OtraEmpresa: el id de otra empresa no se libera ni se
// revela; se comporta como inexistente.
func TestReleaseReservation_OtraEmpresa(t *testing.T) {
	f := newReservationFixture()
	f.seedLevel(10)
	res, err := f.uc.Create(context.Background(), coID, userID, reservationInput(4))
	require.NoError(t, err)

	err = f.uc.Release(context.Background(), otherCo, res.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	stored, _ := f.reservationRepo.GetByID(coID, res.ID)
	assert.Equal(t, entity.ReservationStatusActive, stored.Status)
}

// TestCreateReservation_CantidadInvalida: cantidad cero o negativa se rechaza.
func TestCreateReservation_CantidadInvalida(t *testing.T) {
	f := newReservationFixture()
	f.seedLevel(10)

	_, err := f.uc.Create(context.Background(), coID, userID, reservationInput(0))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
