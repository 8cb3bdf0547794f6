package course

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/volatiletech/null/v8"

	"github.com/qemer/lms/core"
)

// Levels
const (
	LevelBeginner     = "Beginner"
	LevelIntermediate = "Intermediate"
	LevelAdvanced     = "Advanced"
)

// Orderings recognized by QueryFilter.SortBy. Anything else leaves the
// dataset in insertion order.
const (
	SortNewest    = "newest"
	SortOldest    = "oldest"
	SortRating    = "rating"
	SortPopular   = "popular"
	SortPriceLow  = "price-low"
	SortPriceHigh = "price-high"
)

// DefaultPageSize is the catalog page size when the caller provides none.
const DefaultPageSize = 12

type Course struct {
	ID               string            `json:"id"`
	Title            string            `json:"title"`
	Description      string            `json:"description"`
	Instructor       string            `json:"instructor"`
	Image            string            `json:"image,omitempty"`
	Category         string            `json:"category"`
	Level            string            `json:"level"`
	Duration         int               `json:"duration"` // hours
	Rating           float64           `json:"rating"`
	EnrolledStudents int               `json:"enrolledStudents"`
	Price            float64           `json:"price"`
	Credits          int               `json:"credits"`
	Syllabus         []SyllabusItem    `json:"syllabus,omitempty"`
	Lectures         []Lecture         `json:"lectures,omitempty"`
	ReadingMaterials []ReadingMaterial `json:"readingMaterials,omitempty"`
	CreatedAt        time.Time         `json:"createdAt"` // UTC
	UpdatedAt        time.Time         `json:"updatedAt"` // UTC
}

// matchesSearch reports whether the lower-cased term appears in any of the
// course's designated text fields.
func (c Course) matchesSearch(term string) bool {
	return strings.Contains(strings.ToLower(c.Title), term) ||
		strings.Contains(strings.ToLower(c.Description), term) ||
		strings.Contains(strings.ToLower(c.Instructor), term) ||
		strings.Contains(strings.ToLower(c.Category), term)
}

type SyllabusItem struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Order       int    `json:"order"`
	Duration    int    `json:"duration,omitempty"` // minutes
}

type Lecture struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	VideoURL    string `json:"videoUrl"`
	Duration    int    `json:"duration"` // minutes
	Order       int    `json:"order"`
}

type ReadingMaterial struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Type        string  `json:"type"` // pdf | article | ebook | webpage
	URL         string  `json:"url"`
	FileSize    float64 `json:"fileSize,omitempty"` // MB
}

type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	CourseCount int    `json:"courseCount"`
}

type Assignment struct {
	ID           string    `json:"id"`
	CourseID     string    `json:"courseId"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	DueDate      time.Time `json:"dueDate"`
	Type         string    `json:"type"` // quiz | project | essay | coding
	MaxScore     int       `json:"maxScore"`
	Instructions string    `json:"instructions"`
	IsSubmitted  bool      `json:"isSubmitted"`
}

// Progress tracks one user's advancement through one course.
// Keyed by (UserID, CourseID).
type Progress struct {
	CourseID             string    `json:"courseId"`
	UserID               string    `json:"userId"`
	CompletedLectures    []string  `json:"completedLectures"`
	CompletedAssignments []string  `json:"completedAssignments"`
	OverallProgress      int       `json:"overallProgress"` // 0-100
	LastAccessed         time.Time `json:"lastAccessed"`    // UTC
	EnrolledAt           time.Time `json:"enrolledAt"`      // UTC
}

type ActivityItem struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"` // lecture_completed | assignment_submitted | course_enrolled | certificate_earned
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Timestamp   time.Time `json:"timestamp"`
	CourseID    string    `json:"courseId,omitempty"`
}

// QueryFilter is the course catalog query specification. Zero values mean
// "not provided"; Clean applies the default coercion rules.
type QueryFilter struct {
	Search   string
	Category string
	Level    string
	SortBy   string
	core.Pagination
}

func (qf *QueryFilter) Clean() {
	qf.Search = core.CleanString(qf.Search)
	qf.Category = core.CleanString(qf.Category)
	qf.Level = core.CleanString(qf.Level)
	qf.SortBy = core.CleanString(qf.SortBy)
	qf.Pagination.Clean(DefaultPageSize)
}

// CourseList is the paged catalog result envelope.
type CourseList struct {
	Courses    []Course `json:"courses"`
	Total      int      `json:"total"`
	Page       int      `json:"page"`
	Limit      int      `json:"limit"`
	TotalPages int      `json:"totalPages"`
}

// Detail is a course record optionally merged with the requesting user's
// progress. The progress fields are omitted when the user is not enrolled.
type Detail struct {
	Course
	Progress             *int       `json:"progress,omitempty"`
	CompletedLectures    []string   `json:"completedLectures,omitempty"`
	CompletedAssignments []string   `json:"completedAssignments,omitempty"`
	LastAccessed         *time.Time `json:"lastAccessed,omitempty"`
	EnrolledAt           *time.Time `json:"enrolledAt,omitempty"`
}

// NewEnrollment contains information needed to enroll a user in a course.
type NewEnrollment struct {
	UserID   string `json:"userId" validate:"required"`
	CourseID string `json:"courseId" validate:"required"`
}

func (ne *NewEnrollment) Validate(validate *validator.Validate) error {
	ne.UserID = core.CleanString(ne.UserID)
	ne.CourseID = core.CleanString(ne.CourseID)
	return validate.Struct(ne)
}

type Enrollment struct {
	ID         string    `json:"id"`
	UserID     string    `json:"userId"`
	CourseID   string    `json:"courseId"`
	EnrolledAt time.Time `json:"enrolledAt"`
	Progress   Progress  `json:"progress"`
}

// NewSubmission contains information needed to submit an assignment.
type NewSubmission struct {
	UserID   string   `json:"userId" validate:"required"`
	Content  string   `json:"content"`
	FileURLs []string `json:"fileUrls"`
}

func (ns *NewSubmission) Validate(validate *validator.Validate) error {
	ns.UserID = core.CleanString(ns.UserID)
	return validate.Struct(ns)
}

type Submission struct {
	ID           string      `json:"id"`
	AssignmentID string      `json:"assignmentId"`
	UserID       string      `json:"userId"`
	Content      string      `json:"content"`
	FileURLs     []string    `json:"fileUrls"`
	SubmittedAt  time.Time   `json:"submittedAt"`
	Score        null.Int    `json:"score"`
	Feedback     null.String `json:"feedback"`
}

type Dashboard struct {
	Stats               DashboardStats   `json:"stats"`
	EnrolledCourses     []EnrolledCourse `json:"enrolledCourses"`
	RecentActivity      []ActivityItem   `json:"recentActivity"`
	UpcomingAssignments []Assignment     `json:"upcomingAssignments"`
}

type DashboardStats struct {
	TotalCourses         int `json:"totalCourses"`
	CompletedCourses     int `json:"completedCourses"`
	TotalAssignments     int `json:"totalAssignments"`
	CompletedAssignments int `json:"completedAssignments"`
	AverageProgress      int `json:"averageProgress"`
}

type EnrolledCourse struct {
	Course
	Progress int `json:"progress"`
}

// Stats summarizes the course dataset for the admin overview. The user total
// lives in the HTTP response wrapper since users are another domain.
type Stats struct {
	TotalCourses         int                `json:"totalCourses"`
	TotalEnrollments     int                `json:"totalEnrollments"`
	TotalAssignments     int                `json:"totalAssignments"`
	CompletedAssignments int                `json:"completedAssignments"`
	TotalCreditHours     int                `json:"totalCreditHours"`
	RecentEnrollments    []RecentEnrollment `json:"recentEnrollments"`
}

type RecentEnrollment struct {
	CourseID   string    `json:"courseId"`
	EnrolledAt time.Time `json:"enrolledAt"`
}
