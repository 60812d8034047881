package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Almacen-api/internal/application/inventory"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ inventory.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunMovement inicia una transacción con los repos de la ruta registrar-movimiento
// y hace Commit o Rollback según el resultado del callback.
func (r *TxRunner) RunMovement(ctx context.Context, fn func(
	detailRepo repository.TransactionDetailRepository,
	levelRepo repository.StockLevelRepository,
	reservationRepo repository.ReservationRepository,
	qcRepo repository.QCHoldRepository,
	productRepo repository.ProductRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	detailRepo := NewTransactionDetailRepository(tx)
	levelRepo := NewStockLevelRepository(tx)
	reservationRepo := NewReservationRepository(tx)
	qcRepo := NewQCHoldRepository(tx)
	productRepo := NewProductRepository(tx)

	if err := fn(detailRepo, levelRepo, reservationRepo, qcRepo, productRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunReservation inicia una transacción con los repos de crear-reserva.
func (r *TxRunner) RunReservation(ctx context.Context, fn func(
	levelRepo repository.StockLevelRepository,
	reservationRepo repository.ReservationRepository,
	qcRepo repository.QCHoldRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewStockLevelRepository(tx), NewReservationRepository(tx), NewQCHoldRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunSerials inicia una transacción para operaciones por lote de seriales (todo-o-nada).
func (r *TxRunner) RunSerials(ctx context.Context, fn func(
	serialRepo repository.SerialNumberRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewSerialNumberRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunPickList inicia una transacción para crear encabezado + líneas de picking.
func (r *TxRunner) RunPickList(ctx context.Context, fn func(
	pickRepo repository.PickListRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewPickListRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
