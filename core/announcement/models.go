package announcement

import "time"

// Priorities, highest first.
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// Audiences
const (
	AudienceAll      = "all"
	AudienceStudents = "students"
	AudienceStaff    = "staff"
)

type Announcement struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Content        string    `json:"content"`
	Priority       string    `json:"priority"`
	TargetAudience string    `json:"targetAudience"`
	Department     string    `json:"department,omitempty"` // empty = institution-wide
	IsActive       bool      `json:"isActive"`
	CreatedAt      time.Time `json:"createdAt"` // UTC
}

func (a Announcement) priorityRank() int {
	switch a.Priority {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	}
	return 0
}
