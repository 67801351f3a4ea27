package job

import (
	"time"

	"github.com/google/uuid"
)

// EventsChannel is the Redis pub/sub channel carrying posting events.
const EventsChannel = "jobs:events"

const (
	EventPosted        = "job_posted"
	EventStatusChanged = "job_status_changed"
	EventUpdated       = "job_updated"
	EventDeleted       = "job_deleted"
)

type Event struct {
	Type        string      `json:"type"`
	JobID       uuid.UUID   `json:"jobId"`
	Kind        Kind        `json:"kind"`
	Status      Status      `json:"status"`
	Title       string      `json:"title"`
	CompanyName string      `json:"companyName"`
	Location    string      `json:"location"`
	SkillIDs    []uuid.UUID `json:"skillIds"`
	At          time.Time   `json:"at"`
}

func NewEvent(typ string, j Job, at time.Time) Event {
	return Event{
		Type:        typ,
		JobID:       j.ID,
		Kind:        j.Kind,
		Status:      j.Status,
		Title:       j.Title,
		CompanyName: j.CompanyName,
		Location:    j.Location,
		SkillIDs:    j.SkillIDs,
		At:          at.UTC(),
	}
}
