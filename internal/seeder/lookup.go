package seeder

import (
	"context"
	"fmt"

	"empedi/internal/database"

	"github.com/google/uuid"
)

// skillIDs resolves skill names to ids, failing on any unknown name so a
// seed typo does not silently produce an unmatched record.
func skillIDs(ctx context.Context, db database.DB, names ...string) ([]uuid.UUID, error) {
	return idsByKey(ctx, db, `SELECT id, name FROM skills WHERE name = ANY($1)`, "skill", names)
}

// courseIDs resolves course slugs to ids, in the order given.
func courseIDs(ctx context.Context, db database.DB, slugs ...string) ([]uuid.UUID, error) {
	return idsByKey(ctx, db, `SELECT id, slug FROM courses WHERE slug = ANY($1)`, "course", slugs)
}

func idsByKey(ctx context.Context, db database.DB, query, noun string, keys []string) ([]uuid.UUID, error) {
	rows, err := db.Query(ctx, query, keys)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byKey := make(map[string]uuid.UUID, len(keys))
	for rows.Next() {
		var id uuid.UUID
		var key string
		if err := rows.Scan(&id, &key); err != nil {
			return nil, err
		}
		byKey[key] = id
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	out := make([]uuid.UUID, 0, len(keys))
	for _, k := range keys {
		id, ok := byKey[k]
		if !ok {
			return nil, fmt.Errorf("unknown %s %q", noun, k)
		}
		out = append(out, id)
	}
	return out, nil
}

func userIDByEmail(ctx context.Context, db database.DB, email string) (uuid.UUID, error) {
	row := db.QueryRow(ctx, `SELECT id FROM users WHERE email = $1`, email)
	var id uuid.UUID
	if err := row.Scan(&id); err != nil {
		return uuid.Nil, fmt.Errorf("find user %s: %w", email, err)
	}
	return id, nil
}

func exists(ctx context.Context, db database.DB, query string, args ...any) (bool, error) {
	row := db.QueryRow(ctx, `SELECT EXISTS (`+query+`)`, args...)
	var ok bool
	if err := row.Scan(&ok); err != nil {
		return false, err
	}
	return ok, nil
}
