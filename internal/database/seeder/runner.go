package seeder

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"empedi/internal/database"
)

type Seeder interface {
	Name() string
	Run(ctx context.Context, db database.DB) error
}

// Runner applies seeders in order after checking that the tables they write
// match the migrated schema.
type Runner struct {
	Seeders []Seeder
	Logger  *log.Logger
}

func (r Runner) Run(ctx context.Context, db database.DB) error {
	if db == nil {
		return fmt.Errorf("nil db")
	}
	logger := r.Logger
	if logger == nil {
		logger = log.Default()
	}

	if err := CheckSchema(ctx, db); err != nil {
		return fmt.Errorf("seed preflight: %w", err)
	}

	for _, s := range r.Seeders {
		if s == nil {
			continue
		}
		start := time.Now()
		if err := s.Run(ctx, db); err != nil {
			return fmt.Errorf("seed %s: %w", s.Name(), err)
		}
		logger.Printf("[Seeder] done name=%s took=%s", s.Name(), time.Since(start).Round(time.Millisecond))
	}
	return nil
}

// Select keeps the seeders named in names, preserving the order of all.
// An empty names list keeps everything.
func Select(all []Seeder, names []string) ([]Seeder, error) {
	if len(names) == 0 {
		return all, nil
	}
	want := make(map[string]bool, len(names))
	for _, n := range names {
		want[strings.TrimSpace(n)] = false
	}

	var out []Seeder
	for _, s := range all {
		if _, ok := want[s.Name()]; ok {
			want[s.Name()] = true
			out = append(out, s)
		}
	}

	var unknown []string
	for n, found := range want {
		if !found {
			unknown = append(unknown, n)
		}
	}
	if len(unknown) > 0 {
		return nil, fmt.Errorf("unknown seeders: %s", strings.Join(unknown, ", "))
	}
	return out, nil
}
