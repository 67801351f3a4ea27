package skill

import (
	"time"

	"github.com/google/uuid"
)

// Skill is an opaque competency tag. Jobs, courses and mentor profiles
// reference skills by ID only.
type Skill struct {
	ID        uuid.UUID
	Name      string
	ParentID  *uuid.UUID
	CreatedAt time.Time
}
