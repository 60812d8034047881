package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Querier abstrae pool y transacción: ambos exponen Exec/Query/QueryRow.
// Permite usar el mismo repositorio dentro y fuera de una tx.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// appendPositionFilters agrega los predicados opcionales de variante y
// ubicación a una consulta de posición. Sin filtro (puntero nil) no se agrega
// predicado: la posición a nivel bodega agrega todas las filas, incluidas las
// registradas con variante o ubicación.
func appendPositionFilters(query string, args []any, variantID, binID *string) (string, []any) {
	if variantID != nil {
		args = append(args, variantID)
		query += fmt.Sprintf(" AND variant_id = $%d", len(args))
	}
	if binID != nil {
		args = append(args, binID)
		query += fmt.Sprintf(" AND bin_id = $%d", len(args))
	}
	return query, args
}

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}
