package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.StockLevelRepository = (*StockLevelRepo)(nil)

// StockLevelRepo implementación del saldo materializado sobre PostgreSQL
// (usable con pool o tx).
type StockLevelRepo struct {
	q Querier
}

// NewStockLevelRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockLevelRepository(q Querier) *StockLevelRepo {
	return &StockLevelRepo{q: q}
}

// Get obtiene el saldo de una posición. Si no hay fila devuelve saldo cero.
func (r *StockLevelRepo) Get(key repository.StockKey) (*entity.StockLevel, error) {
	return r.get(key, false)
}

// GetForUpdate obtiene el saldo y bloquea la fila (SELECT FOR UPDATE).
// Sin fila no hay nada que bloquear: devuelve saldo cero y el Upsert posterior
// resuelve la carrera con ON CONFLICT.
func (r *StockLevelRepo) GetForUpdate(key repository.StockKey) (*entity.StockLevel, error) {
	return r.get(key, true)
}

func (r *StockLevelRepo) get(key repository.StockKey, forUpdate bool) (*entity.StockLevel, error) {
	query := `
		SELECT company_id, warehouse_id, product_id, variant_id, bin_id, quantity, updated_at
		FROM stock_levels
		WHERE company_id = $1 AND warehouse_id = $2 AND product_id = $3
		  AND variant_id IS NOT DISTINCT FROM $4
		  AND bin_id IS NOT DISTINCT FROM $5`
	if forUpdate {
		query += " FOR UPDATE"
	}
	var l entity.StockLevel
	err := r.q.QueryRow(context.Background(), query,
		key.CompanyID, key.WarehouseID, key.ProductID, key.VariantID, key.BinID,
	).Scan(&l.CompanyID, &l.WarehouseID, &l.ProductID, &l.VariantID, &l.BinID, &l.Quantity, &l.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.StockLevel{
				CompanyID:   key.CompanyID,
				WarehouseID: key.WarehouseID,
				ProductID:   key.ProductID,
				VariantID:   key.VariantID,
				BinID:       key.BinID,
				Quantity:    decimal.Zero,
			}, nil
		}
		return nil, fmt.Errorf("get stock level: %w", err)
	}
	return &l, nil
}

// Upsert inserta o actualiza el saldo de la posición.
// La tabla lleva un índice único sobre (company_id, warehouse_id, product_id,
// COALESCE(variant_id,''), COALESCE(bin_id,'')) para que ON CONFLICT cubra
// posiciones sin variante/ubicación.
func (r *StockLevelRepo) Upsert(level *entity.StockLevel) error {
	query := `
		INSERT INTO stock_levels (company_id, warehouse_id, product_id, variant_id, bin_id, quantity, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, now())
		ON CONFLICT (company_id, warehouse_id, product_id, COALESCE(variant_id, ''), COALESCE(bin_id, ''))
		DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = now()`
	_, err := r.q.Exec(context.Background(), query,
		level.CompanyID, level.WarehouseID, level.ProductID,
		level.VariantID, level.BinID, level.Quantity,
	)
	if err != nil {
		return fmt.Errorf("upsert stock level: %w", err)
	}
	return nil
}
