package course

import (
	"fmt"
	"net/mail"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/qemer/lms/core"
)

var (
	// errors
	ErrNotFound           = errors.New("course not found")
	ErrAssignmentNotFound = errors.New("assignment not found")
	ErrProgressNotFound   = errors.New("progress not found")
	ErrAlreadyEnrolled    = errors.New("user is already enrolled in this course")
	ErrAlreadySubmitted   = errors.New("assignment already submitted")
)

type (
	// Repository provides read-only snapshots of the fixture dataset.
	// Implementations must return copies; callers are free to reorder and
	// slice the results.
	Repository interface {
		QueryAllCourses() ([]Course, error)
		GetCourseByID(id string) (Course, error)
		QueryAllCategories() ([]Category, error)
		QueryAllAssignments() ([]Assignment, error)
		GetAssignmentByID(id string) (Assignment, error)
		QueryAllProgress() ([]Progress, error)
		// QueryProgressByUser returns the given user's enrollments, in fixture order.
		QueryProgressByUser(userID string) ([]Progress, error)
		GetProgress(userID, courseID string) (Progress, error)
		QueryRecentActivity(n int) ([]ActivityItem, error)
	}

	Service struct {
		repo    Repository
		mailSvc core.EmailService
		conf    *core.Config
	}
)

func NewService(repo Repository, mailSvc core.EmailService, conf *core.Config) *Service {
	return &Service{repo: repo, mailSvc: mailSvc, conf: conf}
}

// Filter runs the catalog query pipeline: search, field filters, sort,
// pagination; each stage feeds the next. The source dataset is never mutated.
func (svc *Service) Filter(qf QueryFilter) (CourseList, error) {
	courses, err := svc.repo.QueryAllCourses()
	if err != nil {
		return CourseList{}, errors.Wrap(err, "querying courses")
	}

	if qf.Search != "" {
		term := strings.ToLower(qf.Search)
		matched := make([]Course, 0, len(courses))
		for _, c := range courses {
			if c.matchesSearch(term) {
				matched = append(matched, c)
			}
		}
		courses = matched
	}

	if qf.Category != "" {
		matched := make([]Course, 0, len(courses))
		for _, c := range courses {
			if strings.EqualFold(c.Category, qf.Category) {
				matched = append(matched, c)
			}
		}
		courses = matched
	}

	if qf.Level != "" {
		matched := make([]Course, 0, len(courses))
		for _, c := range courses {
			if strings.EqualFold(c.Level, qf.Level) {
				matched = append(matched, c)
			}
		}
		courses = matched
	}

	sortCourses(courses, qf.SortBy)

	total := len(courses)
	start, end := qf.Slice(total)
	return CourseList{
		Courses:    courses[start:end],
		Total:      total,
		Page:       qf.Page,
		Limit:      qf.Limit,
		TotalPages: qf.TotalPages(total),
	}, nil
}

// sortCourses reorders in place with a stable comparator; equal keys keep
// their original relative order. An unrecognized key is a no-op.
func sortCourses(courses []Course, sortBy string) {
	switch sortBy {
	case SortNewest:
		sort.SliceStable(courses, func(i, j int) bool { return courses[i].CreatedAt.After(courses[j].CreatedAt) })
	case SortOldest:
		sort.SliceStable(courses, func(i, j int) bool { return courses[i].CreatedAt.Before(courses[j].CreatedAt) })
	case SortRating:
		sort.SliceStable(courses, func(i, j int) bool { return courses[i].Rating > courses[j].Rating })
	case SortPopular:
		sort.SliceStable(courses, func(i, j int) bool { return courses[i].EnrolledStudents > courses[j].EnrolledStudents })
	case SortPriceLow:
		sort.SliceStable(courses, func(i, j int) bool { return courses[i].Price < courses[j].Price })
	case SortPriceHigh:
		sort.SliceStable(courses, func(i, j int) bool { return courses[i].Price > courses[j].Price })
	}
}

// GetByID returns a course, merged with userID's progress when enrolled.
// userID may be empty.
func (svc *Service) GetByID(id, userID string) (Detail, error) {
	crs, err := svc.repo.GetCourseByID(id)
	if err != nil {
		return Detail{}, err
	}

	detail := Detail{Course: crs}
	if userID == "" {
		return detail, nil
	}

	prog, err := svc.repo.GetProgress(userID, id)
	if err != nil {
		if errors.Cause(err) == ErrProgressNotFound {
			return detail, nil
		}
		return Detail{}, errors.Wrap(err, "querying progress")
	}
	detail.Progress = &prog.OverallProgress
	detail.CompletedLectures = prog.CompletedLectures
	detail.CompletedAssignments = prog.CompletedAssignments
	detail.LastAccessed = &prog.LastAccessed
	detail.EnrolledAt = &prog.EnrolledAt
	return detail, nil
}

func (svc *Service) Categories() ([]Category, error) {
	return svc.repo.QueryAllCategories()
}

// Enroll records a new enrollment for the user. The fixture dataset itself is
// never written; the zeroed progress record is returned to the caller, which
// owns tracking it. A confirmation email is sent out of band.
func (svc *Service) Enroll(ne NewEnrollment, email mail.Address) (Enrollment, error) {
	crs, err := svc.repo.GetCourseByID(ne.CourseID)
	if err != nil {
		return Enrollment{}, err
	}

	if _, err = svc.repo.GetProgress(ne.UserID, ne.CourseID); err == nil {
		return Enrollment{}, ErrAlreadyEnrolled
	} else if errors.Cause(err) != ErrProgressNotFound {
		return Enrollment{}, errors.Wrap(err, "querying progress")
	}

	now := time.Now().UTC()
	enr := Enrollment{
		ID:         ne.UserID + "-" + ne.CourseID,
		UserID:     ne.UserID,
		CourseID:   ne.CourseID,
		EnrolledAt: now,
		Progress: Progress{
			CourseID:             ne.CourseID,
			UserID:               ne.UserID,
			CompletedLectures:    []string{},
			CompletedAssignments: []string{},
			OverallProgress:      0,
			LastAccessed:         now,
			EnrolledAt:           now,
		},
	}

	if email.Address != "" {
		svc.mailSvc.SendMessages(&core.EmailMessage{
			To:      []mail.Address{email},
			Subject: "Enrollment confirmed",
			Body: fmt.Sprintf(
				"You are now enrolled in %q with %s. Head over to %s/courses/%s to get started.",
				crs.Title, crs.Instructor, svc.conf.FrontendBaseURL, crs.ID,
			),
		})
	}
	return enr, nil
}

// SubmitAssignment records a submission for an unsubmitted assignment.
// Scoring and feedback happen later, hence the null fields.
func (svc *Service) SubmitAssignment(assignmentID string, ns NewSubmission) (Submission, error) {
	asg, err := svc.repo.GetAssignmentByID(assignmentID)
	if err != nil {
		return Submission{}, err
	}
	if asg.IsSubmitted {
		return Submission{}, ErrAlreadySubmitted
	}

	fileURLs := ns.FileURLs
	if fileURLs == nil {
		fileURLs = []string{}
	}
	return Submission{
		ID:           uuid.New().String(),
		AssignmentID: asg.ID,
		UserID:       ns.UserID,
		Content:      ns.Content,
		FileURLs:     fileURLs,
		SubmittedAt:  time.Now().UTC(),
		Score:        null.IntFromPtr(nil),
		Feedback:     null.StringFromPtr(nil),
	}, nil
}

// Dashboard aggregates the user's enrolled courses, recent activity, upcoming
// assignments and overall stats.
func (svc *Service) Dashboard(userID string) (Dashboard, error) {
	progs, err := svc.repo.QueryProgressByUser(userID)
	if err != nil {
		return Dashboard{}, errors.Wrap(err, "querying progress")
	}

	enrolled := make([]EnrolledCourse, 0, len(progs))
	for _, p := range progs {
		crs, err := svc.repo.GetCourseByID(p.CourseID)
		if err != nil {
			if errors.Cause(err) == ErrNotFound {
				continue // stale progress record
			}
			return Dashboard{}, errors.Wrap(err, "querying enrolled course")
		}
		enrolled = append(enrolled, EnrolledCourse{Course: crs, Progress: p.OverallProgress})
	}

	activity, err := svc.repo.QueryRecentActivity(5)
	if err != nil {
		return Dashboard{}, errors.Wrap(err, "querying activity")
	}

	assignments, err := svc.repo.QueryAllAssignments()
	if err != nil {
		return Dashboard{}, errors.Wrap(err, "querying assignments")
	}
	upcoming := make([]Assignment, 0, len(assignments))
	var completedAssignments int
	for _, a := range assignments {
		if a.IsSubmitted {
			completedAssignments++
		} else {
			upcoming = append(upcoming, a)
		}
	}
	sort.SliceStable(upcoming, func(i, j int) bool { return upcoming[i].DueDate.Before(upcoming[j].DueDate) })
	if len(upcoming) > 3 {
		upcoming = upcoming[:3]
	}

	stats := DashboardStats{
		TotalCourses:         len(enrolled),
		TotalAssignments:     len(assignments),
		CompletedAssignments: completedAssignments,
	}
	var progressSum int
	for _, ec := range enrolled {
		progressSum += ec.Progress
		if ec.Progress == 100 {
			stats.CompletedCourses++
		}
	}
	if len(enrolled) > 0 {
		stats.AverageProgress = int(float64(progressSum)/float64(len(enrolled)) + 0.5)
	}

	return Dashboard{
		Stats:               stats,
		EnrolledCourses:     enrolled,
		RecentActivity:      activity,
		UpcomingAssignments: upcoming,
	}, nil
}

// Stats summarizes the whole dataset for the admin overview.
func (svc *Service) Stats() (Stats, error) {
	courses, err := svc.repo.QueryAllCourses()
	if err != nil {
		return Stats{}, errors.Wrap(err, "querying courses")
	}
	progs, err := svc.repo.QueryAllProgress()
	if err != nil {
		return Stats{}, errors.Wrap(err, "querying progress")
	}
	assignments, err := svc.repo.QueryAllAssignments()
	if err != nil {
		return Stats{}, errors.Wrap(err, "querying assignments")
	}

	stats := Stats{
		TotalCourses:      len(courses),
		TotalEnrollments:  len(progs),
		TotalAssignments:  len(assignments),
		RecentEnrollments: []RecentEnrollment{},
	}
	for _, a := range assignments {
		if a.IsSubmitted {
			stats.CompletedAssignments++
		}
	}
	for _, c := range courses {
		stats.TotalCreditHours += c.Credits * c.EnrolledStudents
	}

	sort.SliceStable(progs, func(i, j int) bool { return progs[i].EnrolledAt.After(progs[j].EnrolledAt) })
	if len(progs) > 5 {
		progs = progs[:5]
	}
	for _, p := range progs {
		stats.RecentEnrollments = append(stats.RecentEnrollments, RecentEnrollment{CourseID: p.CourseID, EnrolledAt: p.EnrolledAt})
	}
	return stats, nil
}
