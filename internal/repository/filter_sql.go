package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"empedi/internal/domain/recommendation"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// filterWhere renders f as a WHERE predicate. Column names are qualified with
// prefix ("" or "m." etc). Placeholders are numbered from $1 in the order
// skill ids, excluded id, status, kind; the returned args follow that order.
func filterWhere(f recommendation.Filter, prefix string) (string, []any) {
	args := []any{f.SkillIDs}
	conds := []string{prefix + "skill_ids && $1::uuid[]"}

	if f.ExcludeID != uuid.Nil {
		args = append(args, f.ExcludeID)
		conds = append(conds, fmt.Sprintf("%sid <> $%d", prefix, len(args)))
	}
	if f.Status != "" {
		args = append(args, string(f.Status))
		conds = append(conds, fmt.Sprintf("%sstatus = $%d", prefix, len(args)))
	}
	if f.Kind != "" {
		args = append(args, string(f.Kind))
		conds = append(conds, fmt.Sprintf("%skind = $%d", prefix, len(args)))
	}
	return strings.Join(conds, " AND "), args
}

// insertionOrder is the natural order of every recommendation read.
func insertionOrder(prefix string) string {
	return prefix + "created_at ASC, " + prefix + "id ASC"
}

func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows) || errors.Is(err, pgx.ErrNoRows)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}

func nonNilIDs(ids []uuid.UUID) []uuid.UUID {
	if ids == nil {
		return []uuid.UUID{}
	}
	return ids
}
