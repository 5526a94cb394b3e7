package course

import (
	"errors"
	"fmt"
	"math"
	"net/mail"
	"unicode/utf8"

	"github.com/edwebhq/edweb/core"
	"github.com/edwebhq/edweb/core/quiz"
	"github.com/edwebhq/edweb/core/user"
)

var (
	ErrNotFound        = errors.New("course not found")
	ErrAlreadyEnrolled = errors.New("already enrolled")
	ErrInvalidStatus   = errors.New("invalid course status")
)

type (
	Repository interface {
		CreateCourse(c Course) (Course, error)
		QueryAllCourses() ([]Course, error)
		GetCourseByID(id string) (Course, error)
		FilterCoursesByInstructor(instructorID string) ([]Course, error)
		// FilterCoursesByStudent matches courses whose enrolledStudents contains studentID.
		FilterCoursesByStudent(studentID string) ([]Course, error)
		// UpdateCourse replaces the named top-level fields on the stored record.
		UpdateCourse(id string, fields UpdateFields) (Course, error)
	}

	Service struct {
		repo     Repository
		userRepo user.Repository
		quizRepo quiz.Repository
		mailSvc  core.EmailService
		conf     *core.Config
	}
)

func NewService(repo Repository, userRepo user.Repository, quizRepo quiz.Repository, mailSvc core.EmailService, conf *core.Config) *Service {
	return &Service{repo: repo, userRepo: userRepo, quizRepo: quizRepo, mailSvc: mailSvc, conf: conf}
}

// Create opens a new Draft course owned by the given instructor.
func (svc *Service) Create(instructorID string, nc NewCourse) (Course, error) {
	return svc.repo.CreateCourse(Course{
		Title:            nc.Title,
		Description:      nc.Description,
		Price:            nc.Price,
		Thumbnail:        nc.Thumbnail,
		Instructor:       instructorID,
		Status:           StatusDraft,
		EnrolledStudents: []string{},
		Content:          nc.Content,
	})
}

func (svc *Service) GetByID(id string) (Course, error) {
	return svc.repo.GetCourseByID(id)
}

// QueryAllWithInstructor lists every course with its owner resolved.
// A dangling instructor reference degrades to a placeholder, never an error.
func (svc *Service) QueryAllWithInstructor() ([]CourseWithInstructor, error) {
	courses, err := svc.repo.QueryAllCourses()
	if err != nil {
		return nil, err
	}

	populated := make([]CourseWithInstructor, 0, len(courses))
	for _, c := range courses {
		populated = append(populated, CourseWithInstructor{Course: c, Instructor: svc.resolveInstructor(c.Instructor)})
	}
	return populated, nil
}

// GetWithInstructorAndStudents resolves the owner and every enrolled student.
// Student ids that no longer resolve to a user are silently dropped.
func (svc *Service) GetWithInstructorAndStudents(id string) (CourseDetail, error) {
	c, err := svc.repo.GetCourseByID(id)
	if err != nil {
		return CourseDetail{}, err
	}

	students := make([]EnrolledStudent, 0, len(c.EnrolledStudents))
	for _, studentID := range c.EnrolledStudents {
		s, err := svc.userRepo.GetUserByID(studentID)
		if err != nil {
			if err == user.ErrNotFound {
				continue
			}
			return CourseDetail{}, err
		}
		students = append(students, EnrolledStudent{ID: s.ID, Name: s.Name, Email: s.Email, Avatar: s.Avatar})
	}

	return CourseDetail{
		Course:           c,
		Instructor:       svc.resolveInstructor(c.Instructor),
		EnrolledStudents: students,
	}, nil
}

// CoursesFor lists the user's courses: owned ones for an instructor,
// enrolled ones for a learner; each with the computed completion percentage.
func (svc *Service) CoursesFor(usr user.User) ([]CourseWithProgress, error) {
	var courses []Course
	var err error
	if usr.IsInstructor() {
		courses, err = svc.repo.FilterCoursesByInstructor(usr.ID)
	} else {
		courses, err = svc.repo.FilterCoursesByStudent(usr.ID)
	}
	if err != nil {
		return nil, err
	}

	withProgress := make([]CourseWithProgress, 0, len(courses))
	for _, c := range courses {
		quizzes, err := svc.quizRepo.FilterQuizzesByCourse(c.ID)
		if err != nil {
			return nil, err
		}

		totalItems := len(c.Content) + len(quizzes)
		prog := usr.ProgressFor(c.ID)
		completed := len(prog.CompletedContent) + len(prog.CompletedQuizzes)

		percentage := 0
		if totalItems > 0 {
			percentage = int(math.Round(float64(completed) / float64(totalItems) * 100))
		}

		withProgress = append(withProgress, CourseWithProgress{
			Course:         c,
			Progress:       percentage,
			TotalItems:     totalItems,
			CompletedItems: completed,
		})
	}
	return withProgress, nil
}

// Enroll adds the learner to the course roster. Enrolling twice is rejected;
// the duplicate check happens here, the store never deduplicates.
func (svc *Service) Enroll(courseID string, usr user.User) error {
	c, err := svc.repo.GetCourseByID(courseID)
	if err != nil {
		return err
	}

	enrolled, changed := core.InsertString(c.EnrolledStudents, usr.ID)
	if !changed {
		return core.NewValidationError(ErrAlreadyEnrolled)
	}
	if _, err := svc.repo.UpdateCourse(courseID, UpdateFields{EnrolledStudents: enrolled}); err != nil {
		return err
	}

	svc.mailSvc.SendMessages(&core.EmailMessage{
		To:      []mail.Address{{Name: usr.Name, Address: usr.Email}},
		Subject: "Enrollment confirmed",
		Body:    fmt.Sprintf("Hi %s,\n\nYou are now enrolled in %q. Happy learning!\n", usr.Name, c.Title),
	})
	return nil
}

// UpdateStatus moves the course through its lifecycle (Draft/Published/Archived).
func (svc *Service) UpdateStatus(courseID, status string) (Course, error) {
	if !core.ContainsString(AllStatuses, status) {
		return Course{}, core.NewValidationError(ErrInvalidStatus, core.FieldError{Field: "status", Error: ErrInvalidStatus.Error()})
	}
	return svc.repo.UpdateCourse(courseID, UpdateFields{Status: &status})
}

// SetContentCompletion marks a content item of a course (un)completed for the
// user and persists the whole courseProgress map back. Re-adding a present id
// and removing an absent one are no-ops on the set.
func (svc *Service) SetContentCompletion(userID, courseID, contentID string, completed bool) (user.Progress, error) {
	usr, err := svc.userRepo.GetUserByID(userID)
	if err != nil {
		return user.Progress{}, err
	}

	progress := usr.CourseProgress
	if progress == nil {
		progress = make(map[string]user.Progress)
	}
	entry := progress[courseID]
	if completed {
		entry.CompletedContent, _ = core.InsertString(entry.CompletedContent, contentID)
	} else {
		entry.CompletedContent, _ = core.RemoveString(entry.CompletedContent, contentID)
	}
	progress[courseID] = entry

	if _, err := svc.userRepo.UpdateUser(userID, user.UpdateFields{CourseProgress: progress}); err != nil {
		return user.Progress{}, err
	}
	return entry, nil
}

// LearnerRoster unions every enrolled student across the instructor's courses
// (deduplicated, first-seen order) and resolves each to a roster entry with
// the titles of the instructor's courses they follow. Dangling student ids
// are dropped.
func (svc *Service) LearnerRoster(instructorID string) ([]Learner, error) {
	courses, err := svc.repo.FilterCoursesByInstructor(instructorID)
	if err != nil {
		return nil, err
	}

	var studentIDs []string
	for _, c := range courses {
		for _, id := range c.EnrolledStudents {
			studentIDs, _ = core.InsertString(studentIDs, id)
		}
	}

	roster := make([]Learner, 0, len(studentIDs))
	for _, id := range studentIDs {
		usr, err := svc.userRepo.GetUserByID(id)
		if err != nil {
			if err == user.ErrNotFound {
				continue
			}
			return nil, err
		}

		var titles []string
		for _, c := range courses {
			if core.ContainsString(c.EnrolledStudents, id) {
				titles = append(titles, c.Title)
			}
		}

		badges := usr.Badges
		if badges == nil {
			badges = []string{}
		}
		avatar := usr.Avatar
		if avatar == "" && usr.Name != "" {
			r, _ := utf8.DecodeRuneInString(usr.Name)
			avatar = string(r)
		}

		roster = append(roster, Learner{
			ID:      usr.ID,
			Name:    usr.Name,
			Email:   usr.Email,
			Avatar:  avatar,
			Badges:  badges,
			Courses: titles,
		})
	}
	return roster, nil
}

func (svc *Service) resolveInstructor(id string) Instructor {
	instr, err := svc.userRepo.GetUserByID(id)
	if err != nil {
		return unknownInstructor
	}
	return Instructor{ID: instr.ID, Name: instr.Name, Email: instr.Email}
}
