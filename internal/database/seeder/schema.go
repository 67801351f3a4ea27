package seeder

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"empedi/internal/database"
)

type tableShape struct {
	columns []string
	// arrays must be Postgres array columns; recommendation reads rely on &&.
	arrays []string
}

var seededTables = map[string]tableShape{
	"users": {
		columns: []string{"id", "name", "email", "phone", "password_hash", "avatar_url", "type"},
	},
	"skills": {
		columns: []string{"id", "name", "parent_id", "created_at"},
	},
	"jobs": {
		columns: []string{"id", "kind", "status", "title", "company_name", "location", "poster_id", "application_deadline", "created_at"},
		arrays:  []string{"skill_ids", "growth_course_ids", "growth_mentor_ids", "related_job_ids", "related_internship_ids"},
	},
	"courses": {
		columns: []string{"id", "title", "slug", "level", "duration", "created_at"},
		arrays:  []string{"skill_ids", "growth_job_ids", "growth_internship_ids", "next_level_course_ids", "growth_mentor_ids"},
	},
	"mentor_profiles": {
		columns: []string{"id", "user_id", "industry", "session_duration", "created_at"},
		arrays:  []string{"skill_ids", "related_mentor_ids", "recommended_job_ids", "recommended_course_ids", "recommended_internship_ids"},
	},
}

// CheckSchema verifies that every seeded table exists with the columns the
// seeders write.
func CheckSchema(ctx context.Context, db database.DB) error {
	if db == nil {
		return fmt.Errorf("nil db")
	}

	names := make([]string, 0, len(seededTables))
	for t := range seededTables {
		names = append(names, t)
	}

	rows, err := db.Query(
		ctx,
		`SELECT table_name, column_name, data_type
		FROM information_schema.columns
		WHERE table_schema = current_schema() AND table_name = ANY($1)`,
		names,
	)
	if err != nil {
		return err
	}
	defer rows.Close()

	found := map[string]map[string]string{}
	for rows.Next() {
		var table, column, dataType string
		if err := rows.Scan(&table, &column, &dataType); err != nil {
			return err
		}
		if found[table] == nil {
			found[table] = map[string]string{}
		}
		found[table][column] = dataType
	}
	if err := rows.Err(); err != nil {
		return err
	}

	return compareSchema(seededTables, found)
}

// compareSchema reports every mismatch between want and the columns found,
// keyed table -> column -> information_schema data_type.
func compareSchema(want map[string]tableShape, found map[string]map[string]string) error {
	tables := make([]string, 0, len(want))
	for t := range want {
		tables = append(tables, t)
	}
	sort.Strings(tables)

	var errs []error
	for _, t := range tables {
		cols, ok := found[t]
		if !ok {
			errs = append(errs, fmt.Errorf("schema mismatch: missing table %s", t))
			continue
		}
		shape := want[t]
		for _, c := range shape.columns {
			if _, ok := cols[c]; !ok {
				errs = append(errs, fmt.Errorf("schema mismatch: missing column %s.%s", t, c))
			}
		}
		for _, c := range shape.arrays {
			typ, ok := cols[c]
			switch {
			case !ok:
				errs = append(errs, fmt.Errorf("schema mismatch: missing column %s.%s", t, c))
			case typ != "ARRAY":
				errs = append(errs, fmt.Errorf("schema mismatch: %s.%s is %s, want uuid[]", t, c, typ))
			}
		}
	}
	return errors.Join(errs...)
}
