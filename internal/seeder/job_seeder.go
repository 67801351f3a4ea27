package seeder

import (
	"context"
	"time"

	"empedi/internal/database"
	"empedi/internal/domain/job"
	"empedi/internal/repository"
)

type JobSeeder struct{}

func (JobSeeder) Name() string { return "jobs" }

func (JobSeeder) Run(ctx context.Context, db database.DB) error {
	repo := repository.NewPostgresJobRepository(db)
	deadline := time.Now().UTC().AddDate(0, 2, 0)

	items := []struct {
		PosterEmail string
		Kind        job.Kind
		Title       string
		Location    string
		WorkMode    job.WorkMode
		Summary     string
		Min, Max    float64
		Experience  int
		Skills      []string
	}{
		{
			PosterEmail: "hiring@acme.example", Kind: job.KindJob,
			Title: "Backend Engineer (Go)", Location: "Bengaluru", WorkMode: job.WorkModeHybrid,
			Summary: "Build Go services and PostgreSQL-backed APIs.",
			Min:     80000, Max: 140000, Experience: 2,
			Skills: []string{"Go", "PostgreSQL", "REST APIs", "Docker"},
		},
		{
			PosterEmail: "hiring@acme.example", Kind: job.KindJob,
			Title: "Frontend Developer", Location: "Pune", WorkMode: job.WorkModeOffice,
			Summary: "Ship React interfaces with a strong eye for detail.",
			Min:     50000, Max: 90000, Experience: 1,
			Skills: []string{"React", "TypeScript", "HTML & CSS"},
		},
		{
			PosterEmail: "talent@nimbus.example", Kind: job.KindJob,
			Title: "Data Analyst", Location: "Remote", WorkMode: job.WorkModeRemote,
			Summary: "Turn product data into decisions.",
			Min:     60000, Max: 100000, Experience: 1,
			Skills: []string{"SQL", "Python", "Data Analysis"},
		},
		{
			PosterEmail: "talent@nimbus.example", Kind: job.KindJob,
			Title: "DevOps Engineer", Location: "Hyderabad", WorkMode: job.WorkModeHybrid,
			Summary: "Own CI/CD and Kubernetes clusters on AWS.",
			Min:     90000, Max: 160000, Experience: 3,
			Skills: []string{"Kubernetes", "AWS", "CI/CD", "Docker"},
		},
		{
			PosterEmail: "hiring@acme.example", Kind: job.KindInternship,
			Title: "Backend Intern", Location: "Bengaluru", WorkMode: job.WorkModeOffice,
			Summary: "Learn to build production Go services.",
			Min:     15000, Max: 25000,
			Skills: []string{"Go", "SQL"},
		},
		{
			PosterEmail: "talent@nimbus.example", Kind: job.KindInternship,
			Title: "Machine Learning Intern", Location: "Remote", WorkMode: job.WorkModeRemote,
			Summary: "Prototype models on real customer data.",
			Min:     20000, Max: 30000,
			Skills: []string{"Python", "Machine Learning"},
		},
		{
			PosterEmail: "hiring@acme.example", Kind: job.KindInternship,
			Title: "Digital Marketing Intern", Location: "Mumbai", WorkMode: job.WorkModeHybrid,
			Summary: "Run campaigns across social channels.",
			Min:     10000, Max: 15000,
			Skills: []string{"Digital Marketing", "Communication"},
		},
	}

	for _, it := range items {
		ok, err := exists(ctx, db, `SELECT 1 FROM jobs WHERE title = $1`, it.Title)
		if err != nil {
			return err
		}
		if ok {
			continue
		}

		posterID, err := userIDByEmail(ctx, db, it.PosterEmail)
		if err != nil {
			return err
		}
		skills, err := skillIDs(ctx, db, it.Skills...)
		if err != nil {
			return err
		}

		lo, hi := it.Min, it.Max
		company, err := companyName(ctx, db, it.PosterEmail)
		if err != nil {
			return err
		}
		if _, err := repo.Create(ctx, job.Job{
			Kind:             it.Kind,
			Status:           job.StatusActive,
			Title:            it.Title,
			CompanyID:        &posterID,
			CompanyName:      company,
			Location:         it.Location,
			WorkMode:         it.WorkMode,
			Description:      it.Summary,
			ShortDescription: it.Summary,
			Salary: job.Salary{
				Min:       &lo,
				Max:       &hi,
				Currency:  "INR",
				Period:    "monthly",
				IsStipend: it.Kind == job.KindInternship,
			},
			MinExperience:       it.Experience,
			SkillIDs:            skills,
			ApplicationDeadline: &deadline,
			PosterID:            &posterID,
		}); err != nil {
			return err
		}
	}
	return nil
}

func companyName(ctx context.Context, db database.DB, email string) (string, error) {
	row := db.QueryRow(ctx, `SELECT name FROM users WHERE email = $1`, email)
	var name string
	if err := row.Scan(&name); err != nil {
		return "", err
	}
	return name, nil
}
