package seeder

import (
	"context"
	"fmt"

	"empedi/internal/database"

	"golang.org/x/crypto/bcrypt"
)

// DemoPassword is the password of every seeded account.
const DemoPassword = "password123"

type UsersSeeder struct{}

func (UsersSeeder) Name() string { return "users" }

func (UsersSeeder) Run(ctx context.Context, db database.DB) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash demo password: %w", err)
	}

	items := []struct {
		Name  string
		Email string
		Type  string
	}{
		{Name: "Acme Technologies", Email: "hiring@acme.example", Type: "company"},
		{Name: "Nimbus Analytics", Email: "talent@nimbus.example", Type: "company"},
		{Name: "Priya Sharma", Email: "priya@mentors.example", Type: "mentor"},
		{Name: "Arjun Mehta", Email: "arjun@mentors.example", Type: "mentor"},
		{Name: "Riya Kapoor", Email: "riya@students.example", Type: "student"},
		{Name: "Karan Verma", Email: "karan@pros.example", Type: "professional"},
		{Name: "Empedi Admin", Email: "admin@empedi.example", Type: "admin"},
	}

	return database.WithTx(ctx, db, func(q database.Querier) error {
		for _, it := range items {
			if _, err := q.Exec(ctx,
				`INSERT INTO users (name, email, password_hash, type) VALUES ($1, $2, $3, $4) ON CONFLICT (email) DO NOTHING`,
				it.Name,
				it.Email,
				string(hash),
				it.Type,
			); err != nil {
				return fmt.Errorf("insert %s: %w", it.Email, err)
			}
		}
		return nil
	})
}
