package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// ReservationUseCase administra retenciones blandas de stock a nombre de un
// documento de referencia.
type ReservationUseCase struct {
	txRunner        TxRunner
	reservationRepo repository.ReservationRepository
	productRepo     repository.ProductRepository
	warehouseRepo   repository.WarehouseRepository
}

// NewReservationUseCase construye el caso de uso.
func NewReservationUseCase(
	txRunner TxRunner,
	reservationRepo repository.ReservationRepository,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
) *ReservationUseCase {
	return &ReservationUseCase{
		txRunner:        txRunner,
		reservationRepo: reservationRepo,
		productRepo:     productRepo,
		warehouseRepo:   warehouseRepo,
	}
}

// ReservationInput entrada para crear una reserva.
type ReservationInput struct {
	ProductID     string
	VariantID     *string
	WarehouseID   string
	BinID         *string
	Quantity      decimal.Decimal
	ReferenceType string
	ReferenceID   string
	ExpiresAt     *time.Time
}

// Create crea la reserva garantizando dentro de la misma transacción que
// sum(reservas activas) + cantidad <= stock actual (fila de saldo bloqueada).
// Sobre-reservar devuelve ErrInsufficientStock, nunca inserta en silencio.
func (uc *ReservationUseCase) Create(ctx context.Context, companyID, userID string, input ReservationInput) (*entity.StockReservation, error) {
	if input.ProductID == "" || input.WarehouseID == "" || input.ReferenceID == "" {
		return nil, domain.ErrInvalidInput
	}
	if !input.Quantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}

	product, err := uc.productRepo.GetByID(input.ProductID)
	if err != nil || product == nil {
		return nil, domain.ErrNotFound
	}
	if product.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	wh, err := uc.warehouseRepo.GetByID(input.WarehouseID)
	if err != nil {
		return nil, fmt.Errorf("leer bodega: %w", err)
	}
	if wh == nil || wh.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	key := repository.StockKey{
		CompanyID:   companyID,
		WarehouseID: input.WarehouseID,
		ProductID:   input.ProductID,
		VariantID:   input.VariantID,
		BinID:       input.BinID,
	}
	reservation := &entity.StockReservation{
		CompanyID:     companyID,
		ProductID:     input.ProductID,
		VariantID:     input.VariantID,
		WarehouseID:   input.WarehouseID,
		BinID:         input.BinID,
		Quantity:      input.Quantity,
		Status:        entity.ReservationStatusActive,
		ReferenceType: input.ReferenceType,
		ReferenceID:   input.ReferenceID,
		ExpiresAt:     input.ExpiresAt,
		CreatedAt:     now,
		CreatedBy:     userID,
	}

	err = uc.txRunner.RunReservation(ctx, func(
		levelRepo repository.StockLevelRepository,
		reservationRepo repository.ReservationRepository,
		_ repository.QCHoldRepository,
	) error {
		level, err := levelRepo.GetForUpdate(key)
		if err != nil {
			return err
		}
		reserved, err := reservationRepo.SumActive(key, now)
		if err != nil {
			return err
		}
		if reserved.Add(input.Quantity).GreaterThan(level.Quantity) {
			return domain.ErrInsufficientStock
		}
		return reservationRepo.Create(reservation)
	})
	if err != nil {
		return nil, err
	}
	return reservation, nil
}

// Release libera una reserva. Idempotente: liberar una reserva ya liberada es
// un no-op exitoso; solo una reserva inexistente devuelve ErrNotFound.
func (uc *ReservationUseCase) Release(ctx context.Context, companyID, id string) error {
	rows, err := uc.reservationRepo.Release(companyID, id, time.Now())
	if err != nil {
		return err
	}
	if rows > 0 {
		return nil
	}
	existing, err := uc.reservationRepo.GetByID(companyID, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return domain.ErrNotFound
	}
	// Ya estaba liberada: no-op.
	return nil
}

// ListActive lista las reservas activas de un producto en una bodega.
func (uc *ReservationUseCase) ListActive(ctx context.Context, companyID, productID, warehouseID string, variantID *string) ([]*entity.StockReservation, error) {
	return uc.reservationRepo.ListActive(companyID, productID, warehouseID, variantID)
}
