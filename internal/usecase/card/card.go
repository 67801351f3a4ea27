// Package card reshapes recommendation summaries into the compact display
// records used by detail pages. Curated and computed entries share these
// shapes.
package card

import (
	"strconv"

	"empedi/internal/domain/job"
	"empedi/internal/domain/recommendation"

	"github.com/google/uuid"
)

const (
	placeholderLogo   = "https://logo.clearbit.com/unknown.com"
	platformName      = "Empedi"
	internshipPeriod  = "3 months"
	defaultMentorRole = "Mentor"
)

type Course struct {
	ID       uuid.UUID `json:"id"`
	Title    string    `json:"title"`
	Company  string    `json:"company"`
	Level    string    `json:"level"`
	Duration string    `json:"duration"`
	Price    string    `json:"price"`
	Logo     string    `json:"logo"`
	Link     string    `json:"link"`
}

type Mentor struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Role       string    `json:"role"`
	Experience string    `json:"experience"`
	Price      string    `json:"price"`
	Avatar     *string   `json:"avatar"`
	Link       string    `json:"link"`
}

type Job struct {
	ID       uuid.UUID `json:"id"`
	Title    string    `json:"title"`
	Company  string    `json:"company"`
	Location string    `json:"location"`
	Salary   string    `json:"salary"`
	Logo     string    `json:"logo"`
	Link     string    `json:"link"`
}

type Internship struct {
	ID       uuid.UUID `json:"id"`
	Title    string    `json:"title"`
	Company  string    `json:"company"`
	Location string    `json:"location"`
	Duration string    `json:"duration"`
	Stipend  string    `json:"stipend"`
	Logo     string    `json:"logo"`
	Link     string    `json:"link"`
}

func FromCourse(c recommendation.CourseSummary) Course {
	price := firstNonEmpty(c.Price, c.OriginalPrice, "Free")
	slug := c.Slug
	if slug == "" {
		slug = c.ID.String()
	}
	return Course{
		ID:       c.ID,
		Title:    c.Title,
		Company:  platformName,
		Level:    string(c.Level),
		Duration: c.Duration,
		Price:    price,
		Logo:     firstNonEmpty(c.BannerURL, placeholderLogo),
		Link:     "/courses/" + slug,
	}
}

func FromMentor(m recommendation.MentorSummary) Mentor {
	card := Mentor{
		ID:         m.ID,
		Role:       defaultMentorRole,
		Experience: strconv.Itoa(m.ExperienceYears) + "+ years",
		Price:      "Free",
		Link:       "/mentors/" + m.ID.String(),
	}
	if m.User != nil {
		card.Name = m.User.Name
		card.Avatar = m.User.AvatarURL
	}
	if m.QuickCallPrice > 0 {
		card.Price = "₹" + formatAmount(m.QuickCallPrice) + "/session"
	}
	return card
}

func FromJob(j recommendation.JobSummary) Job {
	salary := "Competitive"
	if j.Salary.Min != nil && j.Salary.Max != nil {
		salary = "₹" + formatAmount(*j.Salary.Min) + "-" + formatAmount(*j.Salary.Max)
	}
	return Job{
		ID:       j.ID,
		Title:    j.Title,
		Company:  firstNonEmpty(j.CompanyName, "Unknown"),
		Location: j.Location,
		Salary:   salary,
		Logo:     firstNonEmpty(j.CompanyLogoURL, placeholderLogo),
		Link:     "/jobs/" + j.ID.String(),
	}
}

func FromInternship(j recommendation.JobSummary) Internship {
	stipend := "Unpaid"
	if j.Salary.Min != nil && *j.Salary.Min > 0 {
		stipend = "₹" + formatAmount(*j.Salary.Min) + "/month"
	}
	return Internship{
		ID:       j.ID,
		Title:    j.Title,
		Company:  firstNonEmpty(j.CompanyName, "Unknown"),
		Location: j.Location,
		Duration: internshipPeriod,
		Stipend:  stipend,
		Logo:     firstNonEmpty(j.CompanyLogoURL, placeholderLogo),
		Link:     "/internships/" + j.ID.String(),
	}
}

func Courses(in []recommendation.CourseSummary) []Course {
	out := make([]Course, 0, len(in))
	for _, c := range in {
		out = append(out, FromCourse(c))
	}
	return out
}

func Mentors(in []recommendation.MentorSummary) []Mentor {
	out := make([]Mentor, 0, len(in))
	for _, m := range in {
		out = append(out, FromMentor(m))
	}
	return out
}

func Jobs(in []recommendation.JobSummary) []Job {
	out := make([]Job, 0, len(in))
	for _, j := range in {
		out = append(out, FromJob(j))
	}
	return out
}

func Internships(in []recommendation.JobSummary) []Internship {
	out := make([]Internship, 0, len(in))
	for _, j := range in {
		out = append(out, FromInternship(j))
	}
	return out
}

// SalaryText renders the salary line of a full job view.
func SalaryText(s job.Salary) string {
	if s.Min == nil || s.Max == nil {
		return "Competitive"
	}
	text := "₹" + formatAmount(*s.Min) + "-" + formatAmount(*s.Max)
	if s.Period != "" {
		text += " " + s.Period
	}
	return text
}

func ExperienceText(minYears int) string {
	if minYears <= 0 {
		return "0-2 years"
	}
	return strconv.Itoa(minYears) + "-" + strconv.Itoa(minYears+2) + " years"
}

// formatAmount prints whole amounts without a fractional part.
func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
