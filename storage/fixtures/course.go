package fixturedb

import (
	"github.com/qemer/lms/core/course"
)

type courseRepository struct {
	db *DB
}

func NewCourseRepository(db *DB) course.Repository {
	return &courseRepository{db: db}
}

func (repo *courseRepository) QueryAllCourses() ([]course.Course, error) {
	return append([]course.Course(nil), repo.db.courses...), nil
}

func (repo *courseRepository) GetCourseByID(id string) (course.Course, error) {
	for _, c := range repo.db.courses {
		if c.ID == id {
			return c, nil
		}
	}
	return course.Course{}, course.ErrNotFound
}

func (repo *courseRepository) QueryAllCategories() ([]course.Category, error) {
	return append([]course.Category(nil), repo.db.categories...), nil
}

func (repo *courseRepository) QueryAllAssignments() ([]course.Assignment, error) {
	return append([]course.Assignment(nil), repo.db.assignments...), nil
}

func (repo *courseRepository) GetAssignmentByID(id string) (course.Assignment, error) {
	for _, a := range repo.db.assignments {
		if a.ID == id {
			return a, nil
		}
	}
	return course.Assignment{}, course.ErrAssignmentNotFound
}

func (repo *courseRepository) QueryAllProgress() ([]course.Progress, error) {
	return append([]course.Progress(nil), repo.db.progress...), nil
}

func (repo *courseRepository) QueryProgressByUser(userID string) ([]course.Progress, error) {
	progs := make([]course.Progress, 0, len(repo.db.progress))
	for _, p := range repo.db.progress {
		if p.UserID == userID {
			progs = append(progs, p)
		}
	}
	return progs, nil
}

func (repo *courseRepository) GetProgress(userID, courseID string) (course.Progress, error) {
	for _, p := range repo.db.progress {
		if p.UserID == userID && p.CourseID == courseID {
			return p, nil
		}
	}
	return course.Progress{}, course.ErrProgressNotFound
}

func (repo *courseRepository) QueryRecentActivity(n int) ([]course.ActivityItem, error) {
	if n > len(repo.db.activity) {
		n = len(repo.db.activity)
	}
	return append([]course.ActivityItem(nil), repo.db.activity[:n]...), nil
}
