package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.PickListRepository = (*PickListRepo)(nil)

// PickListRepo implementación de listas de picking sobre PostgreSQL
// (usable con pool o tx).
type PickListRepo struct {
	q Querier
}

// NewPickListRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPickListRepository(q Querier) *PickListRepo {
	return &PickListRepo{q: q}
}

const pickListColumns = `id, company_id, number, warehouse_id, status, notes, created_at, created_by`
const pickDetailColumns = `id, company_id, pick_list_id, product_id, variant_id, bin_id, required_quantity, picked_quantity, pick_sequence, status, updated_at`

// CreateHeader persiste el encabezado de la lista.
func (r *PickListRepo) CreateHeader(list *entity.PickList) error {
	if list.ID == "" {
		list.ID = uuid.New().String()
	}
	query := `
		INSERT INTO pick_lists (` + pickListColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		list.ID, list.CompanyID, list.Number, list.WarehouseID,
		list.Status, list.Notes, list.CreatedAt, list.CreatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create pick list: %w", err)
	}
	return nil
}

// CreateDetail persiste una línea de la lista.
func (r *PickListRepo) CreateDetail(detail *entity.PickListDetail) error {
	if detail.ID == "" {
		detail.ID = uuid.New().String()
	}
	query := `
		INSERT INTO pick_list_details (` + pickDetailColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		detail.ID, detail.CompanyID, detail.PickListID, detail.ProductID,
		detail.VariantID, detail.BinID, detail.RequiredQuantity, detail.PickedQuantity,
		detail.PickSequence, detail.Status, detail.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create pick list detail: %w", err)
	}
	return nil
}

// GetByID obtiene un encabezado por ID dentro de la empresa. Sin fila devuelve nil, nil.
func (r *PickListRepo) GetByID(companyID, id string) (*entity.PickList, error) {
	query := `
		SELECT ` + pickListColumns + `
		FROM pick_lists WHERE company_id = $1 AND id = $2`
	var l entity.PickList
	err := r.q.QueryRow(context.Background(), query, companyID, id).Scan(
		&l.ID, &l.CompanyID, &l.Number, &l.WarehouseID,
		&l.Status, &l.Notes, &l.CreatedAt, &l.CreatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get pick list: %w", err)
	}
	return &l, nil
}

// GetDetail obtiene una línea por ID dentro de la empresa. Sin fila devuelve nil, nil.
func (r *PickListRepo) GetDetail(companyID, detailID string) (*entity.PickListDetail, error) {
	query := `
		SELECT ` + pickDetailColumns + `
		FROM pick_list_details WHERE company_id = $1 AND id = $2`
	var d entity.PickListDetail
	err := r.q.QueryRow(context.Background(), query, companyID, detailID).Scan(
		&d.ID, &d.CompanyID, &d.PickListID, &d.ProductID,
		&d.VariantID, &d.BinID, &d.RequiredQuantity, &d.PickedQuantity,
		&d.PickSequence, &d.Status, &d.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get pick list detail: %w", err)
	}
	return &d, nil
}

// ListDetails lista las líneas de una lista en orden de pick_sequence.
func (r *PickListRepo) ListDetails(companyID, pickListID string) ([]*entity.PickListDetail, error) {
	query := `
		SELECT ` + pickDetailColumns + `
		FROM pick_list_details
		WHERE company_id = $1 AND pick_list_id = $2
		ORDER BY pick_sequence`
	rows, err := r.q.Query(context.Background(), query, companyID, pickListID)
	if err != nil {
		return nil, fmt.Errorf("list pick list details: %w", err)
	}
	defer rows.Close()

	var list []*entity.PickListDetail
	for rows.Next() {
		var d entity.PickListDetail
		if err := rows.Scan(
			&d.ID, &d.CompanyID, &d.PickListID, &d.ProductID,
			&d.VariantID, &d.BinID, &d.RequiredQuantity, &d.PickedQuantity,
			&d.PickSequence, &d.Status, &d.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan pick list detail: %w", err)
		}
		list = append(list, &d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate pick list details: %w", err)
	}
	return list, nil
}

// UpdateDetailPick actualiza cantidad recogida y estado de una línea.
func (r *PickListRepo) UpdateDetailPick(companyID, detailID string, picked decimal.Decimal, status string, at time.Time) error {
	query := `
		UPDATE pick_list_details
		SET picked_quantity = $1, status = $2, updated_at = $3
		WHERE company_id = $4 AND id = $5`
	tag, err := r.q.Exec(context.Background(), query, picked, status, at, companyID, detailID)
	if err != nil {
		return fmt.Errorf("update pick list detail: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateHeaderStatus actualiza el estado del encabezado.
func (r *PickListRepo) UpdateHeaderStatus(companyID, id, status string) error {
	query := `UPDATE pick_lists SET status = $1 WHERE company_id = $2 AND id = $3`
	tag, err := r.q.Exec(context.Background(), query, status, companyID, id)
	if err != nil {
		return fmt.Errorf("update pick list status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByWarehouse lista encabezados de una bodega, más recientes primero.
func (r *PickListRepo) ListByWarehouse(companyID, warehouseID string, limit, offset int) ([]*entity.PickList, error) {
	query := `
		SELECT ` + pickListColumns + `
		FROM pick_lists
		WHERE company_id = $1 AND warehouse_id = $2
		ORDER BY created_at DESC LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(context.Background(), query, companyID, warehouseID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list pick lists: %w", err)
	}
	defer rows.Close()

	var list []*entity.PickList
	for rows.Next() {
		var l entity.PickList
		if err := rows.Scan(
			&l.ID, &l.CompanyID, &l.Number, &l.WarehouseID,
			&l.Status, &l.Notes, &l.CreatedAt, &l.CreatedBy,
		); err != nil {
			return nil, fmt.Errorf("scan pick list: %w", err)
		}
		list = append(list, &l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate pick lists: %w", err)
	}
	return list, nil
}
