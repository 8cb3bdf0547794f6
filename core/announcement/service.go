package announcement

import (
	"sort"

	"github.com/pkg/errors"
)

type (
	Repository interface {
		QueryAllAnnouncements() ([]Announcement, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Active returns the active announcements, highest priority first, newest
// first within a priority.
func (svc *Service) Active() ([]Announcement, error) {
	all, err := svc.repo.QueryAllAnnouncements()
	if err != nil {
		return nil, errors.Wrap(err, "querying announcements")
	}

	active := make([]Announcement, 0, len(all))
	for _, a := range all {
		if a.IsActive {
			active = append(active, a)
		}
	}
	sort.SliceStable(active, func(i, j int) bool {
		if ri, rj := active[i].priorityRank(), active[j].priorityRank(); ri != rj {
			return ri > rj
		}
		return active[i].CreatedAt.After(active[j].CreatedAt)
	})
	return active, nil
}

// ForStudent returns up to n announcements relevant to a student: active, and
// either student-targeted, for everyone, or institution-wide.
func (svc *Service) ForStudent(n int) ([]Announcement, error) {
	active, err := svc.Active()
	if err != nil {
		return nil, err
	}

	relevant := make([]Announcement, 0, n)
	for _, a := range active {
		if a.TargetAudience == AudienceAll || a.TargetAudience == AudienceStudents || a.Department == "" {
			relevant = append(relevant, a)
		}
		if len(relevant) == n {
			break
		}
	}
	return relevant, nil
}
