package user

import (
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/edwebhq/edweb/core"
)

// Roles
const (
	RoleLearner    = "learner"
	RoleInstructor = "instructor"
	RoleAdmin      = "admin"
)

var AllRoles = []string{RoleLearner, RoleInstructor, RoleAdmin}

// Progress tracks what a user has completed within one course.
// Both fields behave as ordered sets: an id appears at most once.
type Progress struct {
	CompletedContent []string `json:"completedContent"`
	CompletedQuizzes []string `json:"completedQuizzes"`
}

type User struct {
	ID             string              `json:"_id"`
	Name           string              `json:"name"`
	Email          string              `json:"email"`
	PasswordHash   string              `json:"password,omitempty"`
	Role           string              `json:"role"`
	Avatar         string              `json:"avatar,omitempty"`
	Badges         []string            `json:"badges,omitempty"`
	CourseProgress map[string]Progress `json:"courseProgress,omitempty"`
	CreatedAt      time.Time           `json:"createdAt,omitempty"`
}

func (u *User) SetPassword(pwd string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return nil
}

// CheckPassword verifies a candidate password against the stored hash.
func (u *User) CheckPassword(pwd string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(pwd))
}

func (u *User) IsInstructor() bool { return u.Role == RoleInstructor }
func (u *User) IsAdmin() bool      { return u.Role == RoleAdmin }

// ProgressFor returns the user's progress entry for a course,
// an empty entry if the course was never touched.
func (u *User) ProgressFor(courseID string) Progress {
	if u.CourseProgress == nil {
		return Progress{}
	}
	return u.CourseProgress[courseID]
}

// NewUser contains information needed to create a new User.
type NewUser struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role"`
}

func (nu *NewUser) Validate(svc *Service) error {
	nu.Name = core.CleanString(nu.Name)
	nu.Email = core.CleanString(nu.Email, true /* lower */)
	if nu.Role == "" {
		nu.Role = RoleLearner
	}
	if !core.ContainsString(AllRoles, nu.Role) {
		return core.NewValidationError(ErrInvalidRole, core.FieldError{Field: "role", Error: ErrInvalidRole.Error()})
	}

	if err := core.Validate.Struct(nu); err != nil {
		return err
	}
	return svc.CheckEmailUniqueness(nu.Email)
}

// UpdateFields names top-level user fields to be replaced wholesale on update.
// Nil fields are left untouched; array/map fields are never deep-merged, so
// callers must read-modify-write the full structure.
type UpdateFields struct {
	Name           *string
	Avatar         *string
	PasswordHash   *string
	Role           *string
	Badges         []string
	CourseProgress map[string]Progress
}

func (uf UpdateFields) IsEmpty() bool {
	return uf.Name == nil && uf.Avatar == nil && uf.PasswordHash == nil &&
		uf.Role == nil && uf.Badges == nil && uf.CourseProgress == nil
}
