package recommendation

import (
	"empedi/internal/domain/job"

	"github.com/google/uuid"
)

// Filter is the per-category predicate
//
//	skills ∩ SkillIDs ≠ ∅ [AND id ≠ ExcludeID] [AND status = Status] [AND kind = Kind]
//
// Zero values of ExcludeID, Status and Kind mean the clause is absent.
// Stores translate a Filter into their own query language.
type Filter struct {
	Category  Category
	SkillIDs  []uuid.UUID
	ExcludeID uuid.UUID
	Status    job.Status
	Kind      job.Kind
}

// BuildFilter constructs the filter for one category. Callers must not pass
// an empty skill set; the resolver short-circuits before reaching here.
func BuildFilter(c Category, skillIDs []uuid.UUID, opts Options) Filter {
	f := Filter{
		Category: c,
		SkillIDs: append([]uuid.UUID(nil), skillIDs...),
	}
	if opts.Excludes(c) {
		f.ExcludeID = opts.ExcludeID
	}

	switch c {
	case CategoryJob:
		f.Status = job.StatusActive
		f.Kind = job.KindJob
	case CategoryInternship:
		f.Status = job.StatusActive
		f.Kind = job.KindInternship
	}
	return f
}

// Candidate is the matchable view of any skill-tagged entity. Status and
// Kind are empty for courses and mentor profiles.
type Candidate struct {
	ID       uuid.UUID
	SkillIDs []uuid.UUID
	Status   job.Status
	Kind     job.Kind
}

func (f Filter) Matches(c Candidate) bool {
	if f.ExcludeID != uuid.Nil && c.ID == f.ExcludeID {
		return false
	}
	if f.Status != "" && c.Status != f.Status {
		return false
	}
	if f.Kind != "" && c.Kind != f.Kind {
		return false
	}
	return intersects(f.SkillIDs, c.SkillIDs)
}

func intersects(a, b []uuid.UUID) bool {
	if len(a) == 0 || len(b) == 0 {
		return false
	}
	set := make(map[uuid.UUID]struct{}, len(a))
	for _, id := range a {
		set[id] = struct{}{}
	}
	for _, id := range b {
		if _, ok := set[id]; ok {
			return true
		}
	}
	return false
}
