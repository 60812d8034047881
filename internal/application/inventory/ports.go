package inventory

import (
	"context"

	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// TxRunner ejecuta callbacks dentro de una transacción de base de datos, con
// repos atados a la tx. Cada Run* define el juego de repos que su caso de uso
// necesita (patrón del adaptador postgres.TxRunner).
type TxRunner interface {
	// RunMovement cubre la ruta registrar-movimiento: línea + saldo + costo,
	// con los agregados de reservas/retenciones leídos dentro de la misma tx.
	RunMovement(ctx context.Context, fn func(
		detailRepo repository.TransactionDetailRepository,
		levelRepo repository.StockLevelRepository,
		reservationRepo repository.ReservationRepository,
		qcRepo repository.QCHoldRepository,
		productRepo repository.ProductRepository,
	) error) error

	// RunReservation cubre crear-reserva: chequeo contra el saldo bloqueado e
	// inserción en la misma tx.
	RunReservation(ctx context.Context, fn func(
		levelRepo repository.StockLevelRepository,
		reservationRepo repository.ReservationRepository,
		qcRepo repository.QCHoldRepository,
	) error) error

	// RunSerials cubre las operaciones por lote sobre números de serie
	// (todo-o-nada: el callback devuelve error y la tx hace rollback).
	RunSerials(ctx context.Context, fn func(
		serialRepo repository.SerialNumberRepository,
	) error) error

	// RunPickList cubre crear encabezado + líneas de una lista de picking.
	RunPickList(ctx context.Context, fn func(
		pickRepo repository.PickListRepository,
	) error) error
}
