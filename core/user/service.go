package user

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/qemer/lms/core/course"
)

var ErrNotFound = errors.New("user not found")

type (
	// Repository provides read-only snapshots of the user fixture dataset.
	Repository interface {
		QueryAllUsers() ([]User, error)
		GetUserByID(id string) (User, error)
	}

	// EnrollmentSource provides the enrollment records user stats derive from.
	EnrollmentSource interface {
		QueryProgressByUser(userID string) ([]course.Progress, error)
	}

	Service struct {
		repo        Repository
		enrollments EnrollmentSource
	}
)

func NewService(repo Repository, enrollments EnrollmentSource) *Service {
	return &Service{repo: repo, enrollments: enrollments}
}

func (svc *Service) GetByID(id string) (User, error) {
	return svc.repo.GetUserByID(id)
}

func (svc *Service) Count() (int, error) {
	users, err := svc.repo.QueryAllUsers()
	if err != nil {
		return 0, errors.Wrap(err, "querying users")
	}
	return len(users), nil
}

// Filter runs the admin listing query pipeline: search, role filter,
// pagination. Enrollment stats are attached to every filtered record before
// the page is cut, matching the pre-pagination `total`.
func (svc *Service) Filter(qf QueryFilter) (List, error) {
	users, err := svc.repo.QueryAllUsers()
	if err != nil {
		return List{}, errors.Wrap(err, "querying users")
	}

	if qf.Search != "" {
		term := strings.ToLower(qf.Search)
		matched := make([]User, 0, len(users))
		for _, u := range users {
			if u.matchesSearch(term) {
				matched = append(matched, u)
			}
		}
		users = matched
	}

	if qf.Role != "" {
		matched := make([]User, 0, len(users))
		for _, u := range users {
			if strings.EqualFold(u.Role, qf.Role) {
				matched = append(matched, u)
			}
		}
		users = matched
	}

	withStats := make([]WithStats, 0, len(users))
	for _, u := range users {
		stats, err := svc.userStats(u)
		if err != nil {
			return List{}, err
		}
		withStats = append(withStats, stats)
	}

	total := len(withStats)
	start, end := qf.Slice(total)
	return List{
		Users:      withStats[start:end],
		Total:      total,
		Page:       qf.Page,
		Limit:      qf.Limit,
		TotalPages: qf.TotalPages(total),
	}, nil
}

func (svc *Service) userStats(usr User) (WithStats, error) {
	progs, err := svc.enrollments.QueryProgressByUser(usr.ID)
	if err != nil {
		return WithStats{}, errors.Wrap(err, "querying enrollments")
	}

	stats := WithStats{User: usr, EnrollmentsCount: len(progs)}
	for _, p := range progs {
		if !stats.LastActive.Valid || p.LastAccessed.After(stats.LastActive.Time) {
			stats.LastActive = null.TimeFrom(p.LastAccessed)
		}
	}
	return stats, nil
}
