package announcement

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type stubRepo struct {
	announcements []Announcement
}

func (r *stubRepo) QueryAllAnnouncements() ([]Announcement, error) {
	return append([]Announcement(nil), r.announcements...), nil
}

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func newTestService() *Service {
	return NewService(&stubRepo{
		announcements: []Announcement{
			{ID: "ann-1", Title: "Exam schedule", Priority: PriorityMedium, TargetAudience: AudienceStudents, IsActive: true, CreatedAt: date("2025-08-01")},
			{ID: "ann-2", Title: "Maintenance window", Priority: PriorityHigh, TargetAudience: AudienceAll, IsActive: true, CreatedAt: date("2025-07-20")},
			{ID: "ann-3", Title: "Staff meeting", Priority: PriorityMedium, TargetAudience: AudienceStaff, Department: "Engineering", IsActive: true, CreatedAt: date("2025-08-10")},
			{ID: "ann-4", Title: "Library hours", Priority: PriorityLow, TargetAudience: AudienceAll, IsActive: true, CreatedAt: date("2025-08-15")},
			{ID: "ann-5", Title: "Old notice", Priority: PriorityHigh, TargetAudience: AudienceAll, IsActive: false, CreatedAt: date("2025-06-01")},
		},
	})
}

func annIDs(anns []Announcement) []string {
	out := make([]string, 0, len(anns))
	for _, a := range anns {
		out = append(out, a.ID)
	}
	return out
}

func TestServiceActive(t *testing.T) {
	svc := newTestService()

	active, err := svc.Active()
	if err != nil {
		t.Fatalf("Active() failed: %v", err)
	}

	// inactive ann-5 dropped; priority desc, then newest first within a priority
	assert.Equal(t, []string{"ann-2", "ann-3", "ann-1", "ann-4"}, annIDs(active))
}

func TestServiceForStudent(t *testing.T) {
	svc := newTestService()

	t.Run("filters staff department notices", func(t *testing.T) {
		anns, err := svc.ForStudent(10)
		if err != nil {
			t.Fatalf("ForStudent() failed: %v", err)
		}
		assert.Equal(t, []string{"ann-2", "ann-1", "ann-4"}, annIDs(anns))
	})

	t.Run("caps at n", func(t *testing.T) {
		anns, err := svc.ForStudent(2)
		if err != nil {
			t.Fatalf("ForStudent() failed: %v", err)
		}
		assert.Equal(t, []string{"ann-2", "ann-1"}, annIDs(anns))
	})
}
