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

var _ repository.SerialNumberRepository = (*SerialNumberRepo)(nil)

// SerialNumberRepo implementación de números de serie sobre PostgreSQL
// (usable con pool o tx).
type SerialNumberRepo struct {
	q Querier
}

// NewSerialNumberRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSerialNumberRepository(q Querier) *SerialNumberRepo {
	return &SerialNumberRepo{q: q}
}

const serialColumns = `id, company_id, product_id, variant_id, warehouse_id, serial, status, last_transaction_id, created_at, updated_at, created_by`

// CreateBulk inserta el lote completo. La tabla lleva único sobre
// (company_id, product_id, serial): un duplicado aborta todo el lote con
// ErrDuplicate y la tx del llamador hace rollback.
func (r *SerialNumberRepo) CreateBulk(serials []*entity.SerialNumber) error {
	query := `
		INSERT INTO serial_numbers (` + serialColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	for _, s := range serials {
		if s.ID == "" {
			s.ID = uuid.New().String()
		}
		_, err := r.q.Exec(context.Background(), query,
			s.ID, s.CompanyID, s.ProductID, s.VariantID, s.WarehouseID,
			s.Serial, s.Status, s.LastTransactionID, s.CreatedAt, s.UpdatedAt, s.CreatedBy,
		)
		if err != nil {
			if isUniqueViolation(err) {
				return domain.ErrDuplicate
			}
			return fmt.Errorf("create serial %q: %w", s.Serial, err)
		}
	}
	return nil
}

// ListAvailable lista los seriales en estado available de un producto en una bodega.
func (r *SerialNumberRepo) ListAvailable(companyID, productID, warehouseID string, variantID *string) ([]*entity.SerialNumber, error) {
	query := `
		SELECT ` + serialColumns + `
		FROM serial_numbers
		WHERE company_id = $1 AND product_id = $2 AND warehouse_id = $3 AND status = $4`
	args := []any{companyID, productID, warehouseID, entity.SerialStatusAvailable}
	query, args = appendPositionFilters(query, args, variantID, nil)
	query += " ORDER BY serial"
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list available serials: %w", err)
	}
	defer rows.Close()
	return scanSerials(rows)
}

// ListBySerials trae los seriales por su valor dentro de empresa+producto.
func (r *SerialNumberRepo) ListBySerials(companyID, productID string, serials []string) ([]*entity.SerialNumber, error) {
	query := `
		SELECT ` + serialColumns + `
		FROM serial_numbers
		WHERE company_id = $1 AND product_id = $2 AND serial = ANY($3)
		ORDER BY serial`
	rows, err := r.q.Query(context.Background(), query, companyID, productID, serials)
	if err != nil {
		return nil, fmt.Errorf("list serials: %w", err)
	}
	defer rows.Close()
	return scanSerials(rows)
}

// UpdateStatusBulk aplica el mismo estado y enlace de transacción al lote
// completo en un solo UPDATE. El llamador compara filas afectadas contra el
// tamaño del lote para decidir rollback (todo-o-nada).
func (r *SerialNumberRepo) UpdateStatusBulk(companyID, productID string, serials []string, status string, transactionID *string, at time.Time) (int64, error) {
	query := `
		UPDATE serial_numbers
		SET status = $1, last_transaction_id = COALESCE($2, last_transaction_id), updated_at = $3
		WHERE company_id = $4 AND product_id = $5 AND serial = ANY($6)`
	tag, err := r.q.Exec(context.Background(), query,
		status, transactionID, at, companyID, productID, serials)
	if err != nil {
		return 0, fmt.Errorf("update serial status: %w", err)
	}
	return tag.RowsAffected(), nil
}

func scanSerials(rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}) ([]*entity.SerialNumber, error) {
	var list []*entity.SerialNumber
	for rows.Next() {
		var s entity.SerialNumber
		if err := rows.Scan(
			&s.ID, &s.CompanyID, &s.ProductID, &s.VariantID, &s.WarehouseID,
			&s.Serial, &s.Status, &s.LastTransactionID, &s.CreatedAt, &s.UpdatedAt, &s.CreatedBy,
		); err != nil {
			return nil, fmt.Errorf("scan serial: %w", err)
		}
		list = append(list, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate serials: %w", err)
	}
	return list, nil
}
