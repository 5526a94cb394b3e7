package course

import (
	"time"

	"github.com/edwebhq/edweb/core"
)

// Lifecycle statuses
const (
	StatusDraft     = "Draft"
	StatusPublished = "Published"
	StatusArchived  = "Archived"
)

var AllStatuses = []string{StatusDraft, StatusPublished, StatusArchived}

// ContentItem is a single lesson entry. The store treats content as opaque;
// only the id matters for progress tracking.
type ContentItem struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Type  string `json:"type,omitempty"`
	URL   string `json:"url,omitempty"`
}

type Course struct {
	ID          string        `json:"_id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Price       float64       `json:"price"`
	Thumbnail   string        `json:"thumbnail,omitempty"`
	Instructor  string        `json:"instructor"`
	Status      string        `json:"status"`
	// EnrolledStudents is an ordered set: enrolling never inserts a duplicate.
	EnrolledStudents []string      `json:"enrolledStudents"`
	Content          []ContentItem `json:"content,omitempty"`
	CreatedAt        time.Time     `json:"createdAt,omitempty"`
}

// Instructor is the populated projection of a course's owner.
type Instructor struct {
	ID    string `json:"_id,omitempty"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// unknownInstructor stands in for a dangling instructor reference.
var unknownInstructor = Instructor{Name: "Unknown", Email: ""}

// EnrolledStudent is the populated projection of an enrolled user.
type EnrolledStudent struct {
	ID     string `json:"_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Avatar string `json:"avatar,omitempty"`
}

// CourseWithInstructor is a course with its owner resolved for display.
type CourseWithInstructor struct {
	Course
	Instructor Instructor `json:"instructor"`
}

// CourseDetail additionally resolves every enrolled student.
type CourseDetail struct {
	Course
	Instructor       Instructor        `json:"instructor"`
	EnrolledStudents []EnrolledStudent `json:"enrolledStudents"`
}

// CourseWithProgress carries the computed (never persisted) completion
// percentage for one learner.
type CourseWithProgress struct {
	Course
	Progress       int `json:"progress"`
	TotalItems     int `json:"totalItems"`
	CompletedItems int `json:"completedItems"`
}

// Learner is one entry of an instructor's roster roll-up.
type Learner struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Email   string   `json:"email"`
	Avatar  string   `json:"avatar,omitempty"`
	Badges  []string `json:"badges"`
	Courses []string `json:"courses"`
}

// NewCourse contains information needed to create a new Course.
type NewCourse struct {
	Title       string        `json:"title" validate:"required"`
	Description string        `json:"description"`
	Price       float64       `json:"price" validate:"gte=0"`
	Thumbnail   string        `json:"thumbnail" validate:"omitempty,url"`
	Content     []ContentItem `json:"content"`
}

func (nc *NewCourse) Validate() error {
	nc.Title = core.CleanString(nc.Title)
	nc.Description = core.CleanString(nc.Description)
	return core.Validate.Struct(nc)
}

// UpdateFields names top-level course fields to be replaced wholesale on update.
type UpdateFields struct {
	Status           *string
	EnrolledStudents []string
}
