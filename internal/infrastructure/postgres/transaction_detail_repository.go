package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.TransactionDetailRepository = (*TransactionDetailRepo)(nil)

// TransactionDetailRepo implementación sobre PostgreSQL (usable con pool o tx).
// La tabla es append-only: no hay UPDATE ni DELETE de líneas.
type TransactionDetailRepo struct {
	q Querier
}

// NewTransactionDetailRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTransactionDetailRepository(q Querier) *TransactionDetailRepo {
	return &TransactionDetailRepo{q: q}
}

const detailColumns = `id, company_id, transaction_id, transaction_type, product_id, variant_id, bin_id, from_warehouse_id, to_warehouse_id, quantity, unit_cost, created_at, created_by`

// Create persiste una línea de movimiento.
func (r *TransactionDetailRepo) Create(detail *entity.TransactionDetail) error {
	if detail.ID == "" {
		detail.ID = uuid.New().String()
	}
	query := `
		INSERT INTO transaction_details (` + detailColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		detail.ID, detail.CompanyID, detail.TransactionID, detail.TransactionType,
		detail.ProductID, detail.VariantID, detail.BinID, detail.FromWarehouseID,
		detail.ToWarehouseID, detail.Quantity, detail.UnitCost,
		detail.CreatedAt, detail.CreatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create transaction detail: %w", err)
	}
	return nil
}

// ListForPosition trae las líneas que afectan una posición. Variante y
// ubicación son filtros opcionales: sin ellos la posición agrega toda la
// bodega (las líneas con ubicación también cuentan al nivel bodega).
func (r *TransactionDetailRepo) ListForPosition(q repository.PositionQuery) ([]*entity.TransactionDetail, error) {
	query := `
		SELECT ` + detailColumns + `
		FROM transaction_details
		WHERE company_id = $1 AND product_id = $2 AND to_warehouse_id = $3`
	args := []any{q.CompanyID, q.ProductID, q.WarehouseID}
	query, args = appendPositionFilters(query, args, q.VariantID, q.BinID)
	query += " ORDER BY created_at"
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list details for position: %w", err)
	}
	defer rows.Close()
	return scanDetails(rows)
}

// ListByTransaction lista las líneas de una transacción (ej. los dos tramos de un traslado).
func (r *TransactionDetailRepo) ListByTransaction(companyID, transactionID string) ([]*entity.TransactionDetail, error) {
	query := `
		SELECT ` + detailColumns + `
		FROM transaction_details
		WHERE company_id = $1 AND transaction_id = $2
		ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, companyID, transactionID)
	if err != nil {
		return nil, fmt.Errorf("list details by transaction: %w", err)
	}
	defer rows.Close()
	return scanDetails(rows)
}

// ListByProduct lista movimientos de un producto en un rango de fechas (kardex).
func (r *TransactionDetailRepo) ListByProduct(companyID, productID string, from, to *time.Time, limit, offset int) ([]*entity.TransactionDetail, error) {
	query := `
		SELECT ` + detailColumns + `
		FROM transaction_details
		WHERE company_id = $1 AND product_id = $2`
	args := []any{companyID, productID}
	pos := 3
	if from != nil {
		query += fmt.Sprintf(" AND created_at >= $%d", pos)
		args = append(args, *from)
		pos++
	}
	if to != nil {
		query += fmt.Sprintf(" AND created_at <= $%d", pos)
		args = append(args, *to)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list details by product: %w", err)
	}
	defer rows.Close()
	return scanDetails(rows)
}

func scanDetails(rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}) ([]*entity.TransactionDetail, error) {
	var details []*entity.TransactionDetail
	for rows.Next() {
		var d entity.TransactionDetail
		if err := rows.Scan(
			&d.ID, &d.CompanyID, &d.TransactionID, &d.TransactionType,
			&d.ProductID, &d.VariantID, &d.BinID, &d.FromWarehouseID,
			&d.ToWarehouseID, &d.Quantity, &d.UnitCost, &d.CreatedAt, &d.CreatedBy,
		); err != nil {
			return nil, fmt.Errorf("scan transaction detail: %w", err)
		}
		details = append(details, &d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transaction details: %w", err)
	}
	return details, nil
}
