package seeder

import appseeder "empedi/internal/seeder"

func Defaults() []Seeder {
	return []Seeder{
		SkillsSeeder{},
		UsersSeeder{},
		appseeder.JobSeeder{},
		appseeder.CourseSeeder{},
		appseeder.MentorSeeder{},
	}
}
