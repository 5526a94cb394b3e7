package testutil

import (
	"path/filepath"
	"testing"

	"github.com/edwebhq/edweb/core"
	"github.com/edwebhq/edweb/core/course"
	"github.com/edwebhq/edweb/core/quiz"
	"github.com/edwebhq/edweb/core/user"
	"github.com/edwebhq/edweb/storage/jsondb"
)

// NewConfig returns a test configuration backed by in-code defaults only.
func NewConfig() *core.Config {
	conf := core.NewConfig()
	conf.Debug = true
	conf.TestMode = true
	return conf
}

// PrepareStore opens a fresh store in a per-test temp directory.
func PrepareStore(t *testing.T) *jsondb.Store {
	t.Helper()

	store, err := jsondb.Open(filepath.Join(t.TempDir(), "db.json"))
	if err != nil {
		t.Fatalf("prepareStore() failed: %v", err)
	}
	return store
}

func CreateUser(t *testing.T, repo user.Repository, name, email, pwd, role string) user.User {
	t.Helper()

	usr := user.User{
		Name:  name,
		Email: email,
		Role:  role,
	}
	if pwd != "" {
		if err := usr.SetPassword(pwd); err != nil {
			t.Fatalf("createUser() failed: %v", err)
		}
	}
	usr, err := repo.CreateUser(usr)
	if err != nil {
		t.Fatalf("createUser() failed: %v", err)
	}
	return usr
}

func CreateCourse(t *testing.T, repo course.Repository, title, instructorID string, content ...course.ContentItem) course.Course {
	t.Helper()

	crs, err := repo.CreateCourse(course.Course{
		Title:            title,
		Instructor:       instructorID,
		Status:           course.StatusDraft,
		EnrolledStudents: []string{},
		Content:          content,
	})
	if err != nil {
		t.Fatalf("createCourse() failed: %v", err)
	}
	return crs
}

func CreateQuiz(t *testing.T, repo quiz.Repository, title, courseID string, questions ...quiz.Question) quiz.Quiz {
	t.Helper()

	q, err := repo.CreateQuiz(quiz.Quiz{
		Title:     title,
		Course:    courseID,
		Questions: questions,
	})
	if err != nil {
		t.Fatalf("createQuiz() failed: %v", err)
	}
	return q
}
