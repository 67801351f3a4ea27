package recommendation

import (
	"fmt"
	"strings"
)

// Category is one of the four recommendation buckets. It doubles as the
// exclusion type naming the kind of entity currently being viewed.
type Category string

const (
	CategoryJob        Category = "job"
	CategoryInternship Category = "internship"
	CategoryCourse     Category = "course"
	CategoryMentor     Category = "mentor"
)

// Categories lists every bucket in result order.
var Categories = []Category{CategoryJob, CategoryInternship, CategoryCourse, CategoryMentor}

func (c Category) Valid() bool {
	switch c {
	case CategoryJob, CategoryInternship, CategoryCourse, CategoryMentor:
		return true
	default:
		return false
	}
}

func (c Category) String() string {
	return string(c)
}

// ParseCategory accepts the lowercase category names. An empty string
// parses to the zero Category, meaning "no exclusion type".
func ParseCategory(s string) (Category, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return "", nil
	}
	c := Category(s)
	if !c.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidExcludeType, s)
	}
	return c, nil
}
