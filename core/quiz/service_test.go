package quiz_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edwebhq/edweb/core/quiz"
	"github.com/edwebhq/edweb/core/user"
	"github.com/edwebhq/edweb/storage/jsondb"
	testutil "github.com/edwebhq/edweb/tests"
)

type testDeps struct {
	svc     *quiz.Service
	repo    quiz.Repository
	resRepo quiz.ResultRepository
	usrRepo user.Repository
}

func setup(t *testing.T) testDeps {
	t.Helper()

	store := testutil.PrepareStore(t)
	repo := jsondb.NewQuizRepository(store)
	resRepo := jsondb.NewResultRepository(store)
	usrRepo := jsondb.NewUserRepository(store)
	return testDeps{
		svc:     quiz.NewService(repo, resRepo, usrRepo),
		repo:    repo,
		resRepo: resRepo,
		usrRepo: usrRepo,
	}
}

func fourQuestions() []quiz.Question {
	return []quiz.Question{
		{Text: "q1", Options: []string{"a", "b"}, CorrectOptionIndex: 0},
		{Text: "q2", Options: []string{"a", "b"}, CorrectOptionIndex: 1},
		{Text: "q3", Options: []string{"a", "b", "c"}, CorrectOptionIndex: 2},
		{Text: "q4", Options: []string{"a", "b", "c", "d"}, CorrectOptionIndex: 3},
	}
}

func TestBadgeFor(t *testing.T) {
	tests := []struct {
		percentage float64
		want       string
	}{
		{100, quiz.BadgeLegend},
		{80, quiz.BadgeLegend},
		{79.9, quiz.BadgeIntermediate},
		{51, quiz.BadgeIntermediate},
		{50, quiz.BadgeNewbie},
		{0, quiz.BadgeNewbie},
	}
	for _, tt := range tests {
		if got := quiz.BadgeFor(tt.percentage); got != tt.want {
			t.Errorf("BadgeFor(%v) = %s, want %s", tt.percentage, got, tt.want)
		}
	}
}

func TestService_Create(t *testing.T) {
	d := setup(t)

	q, err := d.svc.Create(quiz.NewQuiz{
		Title:    "Basics",
		CourseID: "c1",
		Questions: []quiz.NewQuestion{
			{Text: "q1", Options: []string{"a", "b"}, CorrectOptionIndex: 1},
		},
	})
	require.NoError(t, err)

	assert.NotEmpty(t, q.ID)
	assert.Equal(t, "c1", q.Course)
	require.Len(t, q.Questions, 1)
	assert.Equal(t, 1, q.Questions[0].CorrectOptionIndex)

	got, err := d.svc.GetByID(q.ID)
	require.NoError(t, err)
	assert.Equal(t, q.ID, got.ID)

	_, err = d.svc.GetByID("nope")
	assert.Equal(t, quiz.ErrNotFound, err)
}

func TestService_Submit_perfectScore(t *testing.T) {
	d := setup(t)

	stu := testutil.CreateUser(t, d.usrRepo, "Stu", "stu@test.cd", "", user.RoleLearner)
	q := testutil.CreateQuiz(t, d.repo, "Basics", "c1", fourQuestions()...)

	result, err := d.svc.Submit(stu.ID, q.ID, []int{0, 1, 2, 3})
	require.NoError(t, err)

	assert.NotEmpty(t, result.ID)
	assert.Equal(t, 4, result.Score)
	assert.Equal(t, 4, result.TotalQuestions)

	got, err := d.usrRepo.GetUserByID(stu.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{quiz.BadgeLegend}, got.Badges)
	assert.Equal(t, []string{q.ID}, got.ProgressFor("c1").CompletedQuizzes)
}

func TestService_Submit_halfScore(t *testing.T) {
	d := setup(t)

	stu := testutil.CreateUser(t, d.usrRepo, "Stu", "stu@test.cd", "", user.RoleLearner)
	q := testutil.CreateQuiz(t, d.repo, "Basics", "c1", fourQuestions()...)

	result, err := d.svc.Submit(stu.ID, q.ID, []int{0, 1, 0, 0})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Score)

	// 50% is a Newbie, boundary inclusive
	got, err := d.usrRepo.GetUserByID(stu.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{quiz.BadgeNewbie}, got.Badges)
}

func TestService_Submit_shortAnswers(t *testing.T) {
	d := setup(t)

	stu := testutil.CreateUser(t, d.usrRepo, "Stu", "stu@test.cd", "", user.RoleLearner)
	q := testutil.CreateQuiz(t, d.repo, "Basics", "c1", fourQuestions()...)

	// unanswered questions score zero, no panic
	result, err := d.svc.Submit(stu.ID, q.ID, []int{0})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Score)
	assert.Equal(t, 4, result.TotalQuestions)
}

func TestService_Submit_idempotentSideEffects(t *testing.T) {
	d := setup(t)

	stu := testutil.CreateUser(t, d.usrRepo, "Stu", "stu@test.cd", "", user.RoleLearner)
	q := testutil.CreateQuiz(t, d.repo, "Basics", "c1", fourQuestions()...)

	_, err := d.svc.Submit(stu.ID, q.ID, []int{0, 1, 2, 3})
	require.NoError(t, err)
	_, err = d.svc.Submit(stu.ID, q.ID, []int{0, 1, 2, 3})
	require.NoError(t, err)

	// a new result per submission, but badge and completion recorded once
	results, err := d.svc.ResultsFor(stu.ID)
	require.NoError(t, err)
	assert.Len(t, results, 2)

	got, err := d.usrRepo.GetUserByID(stu.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{quiz.BadgeLegend}, got.Badges)
	assert.Equal(t, []string{q.ID}, got.ProgressFor("c1").CompletedQuizzes)
}

func TestService_Submit_earnsSecondBadgeTier(t *testing.T) {
	d := setup(t)

	stu := testutil.CreateUser(t, d.usrRepo, "Stu", "stu@test.cd", "", user.RoleLearner)
	q := testutil.CreateQuiz(t, d.repo, "Basics", "c1", fourQuestions()...)

	_, err := d.svc.Submit(stu.ID, q.ID, []int{0, 1, 2, 3})
	require.NoError(t, err)
	_, err = d.svc.Submit(stu.ID, q.ID, []int{0, 1, 2, 0})
	require.NoError(t, err)

	got, err := d.usrRepo.GetUserByID(stu.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{quiz.BadgeLegend, quiz.BadgeIntermediate}, got.Badges)
}

func TestService_Submit_missingUserStillRecordsResult(t *testing.T) {
	d := setup(t)

	q := testutil.CreateQuiz(t, d.repo, "Basics", "c1", fourQuestions()...)

	result, err := d.svc.Submit("gone", q.ID, []int{0, 1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, 4, result.Score)

	results, err := d.svc.ResultsFor("gone")
	require.NoError(t, err)
	assert.Len(t, results, 1)
}

func TestService_Submit_quizNotFound(t *testing.T) {
	d := setup(t)

	_, err := d.svc.Submit("u1", "nope", []int{0})
	assert.Equal(t, quiz.ErrNotFound, err)
}

func TestService_ResultsByCourse(t *testing.T) {
	d := setup(t)

	stu := testutil.CreateUser(t, d.usrRepo, "Stu", "stu@test.cd", "", user.RoleLearner)
	q1 := testutil.CreateQuiz(t, d.repo, "Basics", "c1", fourQuestions()...)
	q2 := testutil.CreateQuiz(t, d.repo, "Other", "c2", fourQuestions()...)

	_, err := d.svc.Submit(stu.ID, q1.ID, []int{0, 1, 2, 3})
	require.NoError(t, err)
	_, err = d.svc.Submit("gone", q1.ID, []int{0})
	require.NoError(t, err)
	_, err = d.svc.Submit(stu.ID, q2.ID, []int{0})
	require.NoError(t, err)

	results, err := d.svc.ResultsByCourse("c1")
	require.NoError(t, err)
	require.Len(t, results, 2, "other course's results excluded")

	// populated projections
	require.NotNil(t, results[0].User)
	assert.Equal(t, "Stu", results[0].User.Name)
	require.NotNil(t, results[0].Quiz)
	assert.Equal(t, "Basics", results[0].Quiz.Title)

	// dangling user yields a nil projection, not an error
	assert.Nil(t, results[1].User)
	require.NotNil(t, results[1].Quiz)
}

func TestNewQuiz_Validate(t *testing.T) {
	valid := quiz.NewQuiz{
		Title:    "Basics",
		CourseID: "c1",
		Questions: []quiz.NewQuestion{
			{Text: "q1", Options: []string{"a", "b"}, CorrectOptionIndex: 1},
		},
	}
	require.NoError(t, valid.Validate())

	t.Run("out of range index", func(t *testing.T) {
		nq := valid
		nq.Questions = []quiz.NewQuestion{{Text: "q1", Options: []string{"a", "b"}, CorrectOptionIndex: 2}}
		assert.Error(t, nq.Validate())
	})
	t.Run("no questions", func(t *testing.T) {
		nq := valid
		nq.Questions = nil
		assert.Error(t, nq.Validate())
	})
	t.Run("single option", func(t *testing.T) {
		nq := valid
		nq.Questions = []quiz.NewQuestion{{Text: "q1", Options: []string{"a"}, CorrectOptionIndex: 0}}
		assert.Error(t, nq.Validate())
	})
	t.Run("missing course", func(t *testing.T) {
		nq := valid
		nq.CourseID = ""
		assert.Error(t, nq.Validate())
	})
}
