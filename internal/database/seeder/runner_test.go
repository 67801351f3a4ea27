package seeder

import (
	"context"
	"strings"
	"testing"

	"empedi/internal/database"
)

type namedSeeder string

func (s namedSeeder) Name() string { return string(s) }
func (namedSeeder) Run(context.Context, database.DB) error { return nil }

func TestSelect_KeepsDefaultOrder(t *testing.T) {
	all := []Seeder{namedSeeder("skills"), namedSeeder("users"), namedSeeder("jobs")}

	got, err := Select(all, []string{"jobs", " skills"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(got) != 2 || got[0].Name() != "skills" || got[1].Name() != "jobs" {
		t.Fatalf("unexpected selection %v", got)
	}

	got, err = Select(all, nil)
	if err != nil || len(got) != 3 {
		t.Fatalf("expected all seeders, got %v err=%v", got, err)
	}
}

func TestSelect_UnknownName(t *testing.T) {
	_, err := Select([]Seeder{namedSeeder("skills")}, []string{"skils"})
	if err == nil || !strings.Contains(err.Error(), "skils") {
		t.Fatalf("expected unknown seeder error, got %v", err)
	}
}

func TestCompareSchema(t *testing.T) {
	want := map[string]tableShape{
		"jobs":   {columns: []string{"id", "title"}, arrays: []string{"skill_ids"}},
		"skills": {columns: []string{"id"}},
	}

	ok := map[string]map[string]string{
		"jobs":   {"id": "uuid", "title": "text", "skill_ids": "ARRAY"},
		"skills": {"id": "uuid"},
	}
	if err := compareSchema(want, ok); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	bad := map[string]map[string]string{
		"jobs": {"id": "uuid", "skill_ids": "jsonb"},
	}
	err := compareSchema(want, bad)
	if err == nil {
		t.Fatalf("expected mismatch")
	}
	for _, frag := range []string{"missing column jobs.title", "jobs.skill_ids is jsonb", "missing table skills"} {
		if !strings.Contains(err.Error(), frag) {
			t.Fatalf("expected %q in %v", frag, err)
		}
	}
}
