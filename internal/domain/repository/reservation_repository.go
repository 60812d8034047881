package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// ReservationRepository define el puerto de persistencia para reservas de stock.
type ReservationRepository interface {
	Create(reservation *entity.StockReservation) error
	GetByID(companyID, id string) (*entity.StockReservation, error)
	// Release marca la reserva como liberada solo si sigue activa
	// (UPDATE ... WHERE status = 'active'); devuelve filas afectadas para que
	// el caso de uso distinga no-op de no-encontrada.
	Release(companyID, id string, at time.Time) (int64, error)
	ListActive(companyID, productID, warehouseID string, variantID *string) ([]*entity.StockReservation, error)
	// SumActive suma las reservas activas y no vencidas de la posición.
	SumActive(key StockKey, now time.Time) (decimal.Decimal, error)
}
