package migration

import (
	"strings"
	"testing"
	"testing/fstest"
)

func TestLoad_OrdersAndFilters(t *testing.T) {
	src := fstest.MapFS{
		"V2__courses.sql":  {Data: []byte("CREATE TABLE courses (id uuid);")},
		"V1__init.sql":     {Data: []byte("CREATE TABLE users (id uuid);")},
		"README.md":        {Data: []byte("not a migration")},
		"V10__mentors.sql": {Data: []byte("CREATE TABLE mentor_profiles (id uuid);")},
	}

	migs, err := Load(src)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(migs) != 3 {
		t.Fatalf("expected 3 migrations, got %d", len(migs))
	}
	want := []int64{1, 2, 10}
	for i, m := range migs {
		if m.Version != want[i] {
			t.Fatalf("position %d: expected version %d, got %d", i, want[i], m.Version)
		}
		if m.Checksum == "" {
			t.Fatalf("expected checksum for %s", m.Filename)
		}
	}
	if migs[0].Name != "init" {
		t.Fatalf("expected name init, got %q", migs[0].Name)
	}
}

func TestLoad_DuplicateVersion(t *testing.T) {
	src := fstest.MapFS{
		"V1__a.sql": {Data: []byte("SELECT 1;")},
		"V1__b.sql": {Data: []byte("SELECT 2;")},
	}
	_, err := Load(src)
	if err == nil || !strings.Contains(err.Error(), "duplicate") {
		t.Fatalf("expected duplicate version error, got %v", err)
	}
}

func TestLoad_EmptyFile(t *testing.T) {
	src := fstest.MapFS{"V1__empty.sql": {Data: []byte("   \n")}}
	_, err := Load(src)
	if err == nil || !strings.Contains(err.Error(), "empty migration") {
		t.Fatalf("expected empty migration error, got %v", err)
	}
}

func TestEmbedded_ContainsInitialSchema(t *testing.T) {
	migs, err := Load(Embedded())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(migs) == 0 {
		t.Fatalf("expected embedded migrations")
	}
	if migs[0].Version != 1 {
		t.Fatalf("expected first version 1, got %d", migs[0].Version)
	}
	if !strings.Contains(migs[0].SQL, "mentor_profiles") {
		t.Fatalf("expected initial schema to create mentor_profiles")
	}
}

func TestEmbedded_AdminTypeAndCandidateTables(t *testing.T) {
	migs, err := Load(Embedded())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	var v2 *Migration
	for i := range migs {
		if migs[i].Version == 2 {
			v2 = &migs[i]
		}
	}
	if v2 == nil {
		t.Fatalf("expected a version 2 migration")
	}
	for _, want := range []string{"'admin'", "job_applications", "course_enrollments", "UNIQUE (job_id, applicant_id)", "UNIQUE (user_id, course_id)"} {
		if !strings.Contains(v2.SQL, want) {
			t.Fatalf("version 2 migration missing %q", want)
		}
	}
}
