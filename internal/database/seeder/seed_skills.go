package seeder

import (
	"context"

	"empedi/internal/database"
)

type SkillsSeeder struct{}

func (SkillsSeeder) Name() string { return "skills" }

// Run inserts a two-level taxonomy. Parents go first so children can resolve
// parent_id by name.
func (SkillsSeeder) Run(ctx context.Context, db database.DB) error {
	tree := []struct {
		Parent   string
		Children []string
	}{
		{Parent: "Programming Languages", Children: []string{"Go", "Python", "JavaScript", "TypeScript", "Java"}},
		{Parent: "Web Development", Children: []string{"React", "Node.js", "REST APIs", "HTML & CSS"}},
		{Parent: "Data", Children: []string{"SQL", "PostgreSQL", "Data Analysis", "Machine Learning"}},
		{Parent: "Cloud & DevOps", Children: []string{"Docker", "Kubernetes", "AWS", "CI/CD"}},
		{Parent: "Design", Children: []string{"UI Design", "Figma"}},
		{Parent: "Business", Children: []string{"Digital Marketing", "Product Management", "Communication"}},
	}

	return database.WithTx(ctx, db, func(q database.Querier) error {
		for _, branch := range tree {
			if _, err := q.Exec(ctx,
				`INSERT INTO skills (name) VALUES ($1) ON CONFLICT (name) DO NOTHING`,
				branch.Parent,
			); err != nil {
				return err
			}
			for _, child := range branch.Children {
			if _, err := q.Exec(ctx,
					`INSERT INTO skills (name, parent_id)
					SELECT $1, id FROM skills WHERE name = $2
					ON CONFLICT (name) DO NOTHING`,
					child,
					branch.Parent,
				); err != nil {
					return err
				}
			}
		}
		return nil
	})
}
