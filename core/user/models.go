package user

import (
	"strings"
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/qemer/lms/core"
)

// Roles
const (
	RoleStudent    = "student"
	RoleInstructor = "instructor"
	RoleAdmin      = "admin"
)

// Statuses
const (
	StatusActive    = "active"
	StatusInactive  = "inactive"
	StatusSuspended = "suspended"
)

// DefaultPageSize is the admin listing page size when the caller provides none.
const DefaultPageSize = 20

type User struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	Avatar          string    `json:"avatar,omitempty"`
	Role            string    `json:"role"`
	Status          string    `json:"status"`
	EnrolledCourses int       `json:"enrolledCourses"`
	CreatedAt       time.Time `json:"createdAt"` // UTC
	UpdatedAt       time.Time `json:"updatedAt"` // UTC
}

func (u User) IsAdmin() bool      { return u.Role == RoleAdmin }
func (u User) IsInstructor() bool { return u.Role == RoleInstructor }
func (u User) IsStudent() bool    { return u.Role == RoleStudent }

// matchesSearch reports whether the lower-cased term appears in the user's
// name or email.
func (u User) matchesSearch(term string) bool {
	return strings.Contains(strings.ToLower(u.Name), term) ||
		strings.Contains(strings.ToLower(u.Email), term)
}

// WithStats is a user record augmented with enrollment-derived stats for the
// admin listing. LastActive is null when the user has no enrollments.
type WithStats struct {
	User
	EnrollmentsCount int       `json:"enrollmentsCount"`
	LastActive       null.Time `json:"lastActive"`
}

// QueryFilter is the admin user listing query specification.
type QueryFilter struct {
	Search string
	Role   string
	core.Pagination
}

func (qf *QueryFilter) Clean() {
	qf.Search = core.CleanString(qf.Search)
	qf.Role = core.CleanString(qf.Role)
	qf.Pagination.Clean(DefaultPageSize)
}

// List is the paged admin listing result envelope.
type List struct {
	Users      []WithStats `json:"users"`
	Total      int         `json:"total"`
	Page       int         `json:"page"`
	Limit      int         `json:"limit"`
	TotalPages int         `json:"totalPages"`
}
