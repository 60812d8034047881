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

var _ repository.QCHoldRepository = (*QCHoldRepo)(nil)

// QCHoldRepo implementación de retenciones de calidad sobre PostgreSQL
// (usable con pool o tx).
type QCHoldRepo struct {
	q Querier
}

// NewQCHoldRepository construye el adaptador. Pasar pool o tx (Querier).
func NewQCHoldRepository(q Querier) *QCHoldRepo {
	return &QCHoldRepo{q: q}
}

const qcHoldColumns = `id, company_id, product_id, variant_id, warehouse_id, bin_id, quantity, status, reason, inspector_notes, held_at, resolved_at, resolved_notes, created_by`

// Create persiste una retención en estado on_hold.
func (r *QCHoldRepo) Create(hold *entity.QCHold) error {
	if hold.ID == "" {
		hold.ID = uuid.New().String()
	}
	query := `
		INSERT INTO qc_holds (` + qcHoldColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(context.Background(), query,
		hold.ID, hold.CompanyID, hold.ProductID, hold.VariantID,
		hold.WarehouseID, hold.BinID, hold.Quantity, hold.Status,
		hold.Reason, hold.InspectorNotes, hold.HeldAt,
		hold.ResolvedAt, hold.ResolvedNotes, hold.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("create qc hold: %w", err)
	}
	return nil
}

// GetByID obtiene una retención por ID dentro de la empresa. Sin fila devuelve nil, nil.
func (r *QCHoldRepo) GetByID(companyID, id string) (*entity.QCHold, error) {
	query := `
		SELECT ` + qcHoldColumns + `
		FROM qc_holds WHERE company_id = $1 AND id = $2`
	var h entity.QCHold
	err := r.q.QueryRow(context.Background(), query, companyID, id).Scan(
		&h.ID, &h.CompanyID, &h.ProductID, &h.VariantID,
		&h.WarehouseID, &h.BinID, &h.Quantity, &h.Status,
		&h.Reason, &h.InspectorNotes, &h.HeldAt,
		&h.ResolvedAt, &h.ResolvedNotes, &h.CreatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get qc hold: %w", err)
	}
	return &h, nil
}

// Resolve pasa la retención a released o rejected solo desde on_hold.
// Devuelve filas afectadas: 0 significa que no existe o ya estaba resuelta.
func (r *QCHoldRepo) Resolve(companyID, id, status string, notes *string, at time.Time) (int64, error) {
	query := `
		UPDATE qc_holds
		SET status = $1, resolved_at = $2, resolved_notes = $3
		WHERE company_id = $4 AND id = $5 AND status = $6`
	tag, err := r.q.Exec(context.Background(), query,
		status, at, notes, companyID, id, entity.QCHoldStatusOnHold)
	if err != nil {
		return 0, fmt.Errorf("resolve qc hold: %w", err)
	}
	return tag.RowsAffected(), nil
}

// ListActive lista las retenciones on_hold de un producto en una bodega.
func (r *QCHoldRepo) ListActive(companyID, productID, warehouseID string) ([]*entity.QCHold, error) {
	query := `
		SELECT ` + qcHoldColumns + `
		FROM qc_holds
		WHERE company_id = $1 AND product_id = $2 AND warehouse_id = $3 AND status = $4
		ORDER BY held_at`
	rows, err := r.q.Query(context.Background(), query,
		companyID, productID, warehouseID, entity.QCHoldStatusOnHold)
	if err != nil {
		return nil, fmt.Errorf("list active qc holds: %w", err)
	}
	defer rows.Close()

	var list []*entity.QCHold
	for rows.Next() {
		var h entity.QCHold
		if err := rows.Scan(
			&h.ID, &h.CompanyID, &h.ProductID, &h.VariantID,
			&h.WarehouseID, &h.BinID, &h.Quantity, &h.Status,
			&h.Reason, &h.InspectorNotes, &h.HeldAt,
			&h.ResolvedAt, &h.ResolvedNotes, &h.CreatedBy,
		); err != nil {
			return nil, fmt.Errorf("scan qc hold: %w", err)
		}
		list = append(list, &h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate qc holds: %w", err)
	}
	return list, nil
}

// SumActive suma la cantidad retenida en on_hold para la posición. Variante y
// ubicación filtran solo cuando vienen definidas.
func (r *QCHoldRepo) SumActive(key repository.StockKey) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(quantity), 0)
		FROM qc_holds
		WHERE company_id = $1 AND warehouse_id = $2 AND product_id = $3`
	args := []any{key.CompanyID, key.WarehouseID, key.ProductID}
	query, args = appendPositionFilters(query, args, key.VariantID, key.BinID)
	args = append(args, entity.QCHoldStatusOnHold)
	query += fmt.Sprintf(" AND status = $%d", len(args))
	var sum decimal.Decimal
	err := r.q.QueryRow(context.Background(), query, args...).Scan(&sum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum active qc holds: %w", err)
	}
	return sum, nil
}
