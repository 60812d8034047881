package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.ReservationRepository = (*ReservationRepo)(nil)

// ReservationRepo implementación de reservas de stock sobre PostgreSQL
// (usable con pool o tx).
type ReservationRepo struct {
	q Querier
}

// NewReservationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewReservationRepository(q Querier) *ReservationRepo {
	return &ReservationRepo{q: q}
}

const reservationColumns = `id, company_id, product_id, variant_id, warehouse_id, bin_id, quantity, status, reference_type, reference_id, expires_at, created_at, created_by, released_at`

// Create persiste una reserva.
func (r *ReservationRepo) Create(reservation *entity.StockReservation) error {
	if reservation.ID == "" {
		reservation.ID = uuid.New().String()
	}
	query := `
		INSERT INTO stock_reservations (` + reservationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(context.Background(), query,
		reservation.ID, reservation.CompanyID, reservation.ProductID, reservation.VariantID,
		reservation.WarehouseID, reservation.BinID, reservation.Quantity, reservation.Status,
		reservation.ReferenceType, reservation.ReferenceID, reservation.ExpiresAt,
		reservation.CreatedAt, reservation.CreatedBy, reservation.ReleasedAt,
	)
	if err != nil {
		return fmt.Errorf("create reservation: %w", err)
	}
	return nil
}

// GetByID obtiene una reserva por ID dentro de la empresa. Sin fila devuelve nil, nil.
func (r *ReservationRepo) GetByID(companyID, id string) (*entity.StockReservation, error) {
	query := `
		SELECT ` + reservationColumns + `
		FROM stock_reservations WHERE company_id = $1 AND id = $2`
	var res entity.StockReservation
	err := r.q.QueryRow(context.Background(), query, companyID, id).Scan(
		&res.ID, &res.CompanyID, &res.ProductID, &res.VariantID,
		&res.WarehouseID, &res.BinID, &res.Quantity, &res.Status,
		&res.ReferenceType, &res.ReferenceID, &res.ExpiresAt,
		&res.CreatedAt, &res.CreatedBy, &res.ReleasedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get reservation: %w", err)
	}
	return &res, nil
}

// Release marca la reserva como liberada solo si sigue activa. Devuelve filas
// afectadas: 0 significa que no existe o ya estaba liberada.
func (r *ReservationRepo) Release(companyID, id string, at time.Time) (int64, error) {
	query := `
		UPDATE stock_reservations
		SET status = $1, released_at = $2
		WHERE company_id = $3 AND id = $4 AND status = $5`
	tag, err := r.q.Exec(context.Background(), query,
		entity.ReservationStatusReleased, at, companyID, id, entity.ReservationStatusActive)
	if err != nil {
		return 0, fmt.Errorf("release reservation: %w", err)
	}
	return tag.RowsAffected(), nil
}

// ListActive lista reservas activas de un producto en una bodega.
func (r *ReservationRepo) ListActive(companyID, productID, warehouseID string, variantID *string) ([]*entity.StockReservation, error) {
	query := `
		SELECT ` + reservationColumns + `
		FROM stock_reservations
		WHERE company_id = $1 AND product_id = $2 AND warehouse_id = $3 AND status = $4`
	args := []any{companyID, productID, warehouseID, entity.ReservationStatusActive}
	query, args = appendPositionFilters(query, args, variantID, nil)
	query += " ORDER BY created_at"
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list active reservations: %w", err)
	}
	defer rows.Close()

	var list []*entity.StockReservation
	for rows.Next() {
		var res entity.StockReservation
		if err := rows.Scan(
			&res.ID, &res.CompanyID, &res.ProductID, &res.VariantID,
			&res.WarehouseID, &res.BinID, &res.Quantity, &res.Status,
			&res.ReferenceType, &res.ReferenceID, &res.ExpiresAt,
			&res.CreatedAt, &res.CreatedBy, &res.ReleasedAt,
		); err != nil {
			return nil, fmt.Errorf("scan reservation: %w", err)
		}
		list = append(list, &res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reservations: %w", err)
	}
	return list, nil
}

// SumActive suma las reservas activas y no vencidas de la posición. Variante
// y ubicación filtran solo cuando vienen definidas; sin ellas la suma cubre
// toda la bodega.
func (r *ReservationRepo) SumActive(key repository.StockKey, now time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(quantity), 0)
		FROM stock_reservations
		WHERE company_id = $1 AND warehouse_id = $2 AND product_id = $3`
	args := []any{key.CompanyID, key.WarehouseID, key.ProductID}
	query, args = appendPositionFilters(query, args, key.VariantID, key.BinID)
	args = append(args, entity.ReservationStatusActive)
	query += fmt.Sprintf(" AND status = $%d", len(args))
	args = append(args, now)
	query += fmt.Sprintf(" AND (expires_at IS NULL OR expires_at >= $%d)", len(args))
	var sum decimal.Decimal
	err := r.q.QueryRow(context.Background(), query, args...).Scan(&sum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum active reservations: %w", err)
	}
	return sum, nil
}
