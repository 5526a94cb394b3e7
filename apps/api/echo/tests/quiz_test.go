package tests

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edwebhq/edweb/core/quiz"
	"github.com/edwebhq/edweb/core/user"
	testutil "github.com/edwebhq/edweb/tests"
)

func someQuestions() []quiz.Question {
	return []quiz.Question{
		{Text: "q1", Options: []string{"a", "b"}, CorrectOptionIndex: 0},
		{Text: "q2", Options: []string{"a", "b"}, CorrectOptionIndex: 1},
	}
}

func Test_quizApi_create(t *testing.T) {
	server := setup(t)

	owner := testutil.CreateUser(t, usrRepo, "Ada", "ada@test.cd", "", user.RoleInstructor)
	other := testutil.CreateUser(t, usrRepo, "Eve", "eve@test.cd", "", user.RoleInstructor)
	crs := testutil.CreateCourse(t, crsRepo, "Go 101", owner.ID)

	body := marshalObj(t, map[string]interface{}{
		"title":    "Basics",
		"courseId": crs.ID,
		"questions": []map[string]interface{}{
			{"text": "q1", "options": []string{"a", "b"}, "correctOptionIndex": 1},
		},
	})

	t.Run("course owner creates", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, "/v1/quizzes", getToken(t, owner), body)
		server.ServeHTTP(rec, req)

		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		var q quiz.Quiz
		decodeBody(t, rec, &q)
		assert.Equal(t, crs.ID, q.Course)
	})

	t.Run("non-owner instructor forbidden", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, "/v1/quizzes", getToken(t, other), body)
		server.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("unknown course", func(t *testing.T) {
		bad := marshalObj(t, map[string]interface{}{
			"title":    "Basics",
			"courseId": "nope",
			"questions": []map[string]interface{}{
				{"text": "q1", "options": []string{"a", "b"}, "correctOptionIndex": 1},
			},
		})
		req, rec := newAuthRequest(http.MethodPost, "/v1/quizzes", getToken(t, owner), bad)
		server.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("out of range answer index", func(t *testing.T) {
		bad := marshalObj(t, map[string]interface{}{
			"title":    "Basics",
			"courseId": crs.ID,
			"questions": []map[string]interface{}{
				{"text": "q1", "options": []string{"a", "b"}, "correctOptionIndex": 5},
			},
		})
		req, rec := newAuthRequest(http.MethodPost, "/v1/quizzes", getToken(t, owner), bad)
		server.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func Test_quizApi_queryAndRetrieve(t *testing.T) {
	server := setup(t)

	stu := testutil.CreateUser(t, usrRepo, "Stu", "stu@test.cd", "", user.RoleLearner)
	q := testutil.CreateQuiz(t, quizRepo, "Basics", "c1", someQuestions()...)
	token := getToken(t, stu)

	t.Run("by course", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/quizzes/course/c1", token)
		server.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var quizzes []quiz.Quiz
		decodeBody(t, rec, &quizzes)
		require.Len(t, quizzes, 1)
		assert.Equal(t, q.ID, quizzes[0].ID)
	})

	t.Run("by course, none", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/quizzes/course/other", token)
		server.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, "[]", rec.Body.String())
	})

	t.Run("by id", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/quizzes/"+q.ID, token)
		server.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("unknown id", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/quizzes/nope", token)
		server.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func Test_quizApi_submit(t *testing.T) {
	server := setup(t)

	stu := testutil.CreateUser(t, usrRepo, "Stu", "stu@test.cd", "", user.RoleLearner)
	q := testutil.CreateQuiz(t, quizRepo, "Basics", "c1", someQuestions()...)
	token := getToken(t, stu)

	body := marshalObj(t, map[string]interface{}{"answers": []int{0, 1}})
	req, rec := newAuthRequest(http.MethodPost, "/v1/quizzes/"+q.ID+"/submit", token, body)
	server.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var result quiz.Result
	decodeBody(t, rec, &result)
	assert.Equal(t, 2, result.Score)
	assert.Equal(t, 2, result.TotalQuestions)
	assert.Equal(t, stu.ID, result.User)

	// a perfect score earns the top badge
	got, err := usrRepo.GetUserByID(stu.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{quiz.BadgeLegend}, got.Badges)

	t.Run("results visible to the learner", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/users/me/results", token)
		server.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var results []quiz.Result
		decodeBody(t, rec, &results)
		require.Len(t, results, 1)
		assert.Equal(t, result.ID, results[0].ID)
	})

	t.Run("missing answers rejected", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, "/v1/quizzes/"+q.ID+"/submit", token, marshalObj(t, map[string]interface{}{}))
		server.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func Test_quizApi_courseResults(t *testing.T) {
	server := setup(t)

	owner := testutil.CreateUser(t, usrRepo, "Ada", "ada@test.cd", "", user.RoleInstructor)
	stu := testutil.CreateUser(t, usrRepo, "Stu", "stu@test.cd", "", user.RoleLearner)
	crs := testutil.CreateCourse(t, crsRepo, "Go 101", owner.ID)
	q := testutil.CreateQuiz(t, quizRepo, "Basics", crs.ID, someQuestions()...)

	// learner submits
	body := marshalObj(t, map[string]interface{}{"answers": []int{0, 0}})
	req, rec := newAuthRequest(http.MethodPost, "/v1/quizzes/"+q.ID+"/submit", getToken(t, stu), body)
	server.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	t.Run("owner sees populated results", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/quizzes/results/course/"+crs.ID, getToken(t, owner))
		server.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var results []quiz.CourseResult
		decodeBody(t, rec, &results)
		require.Len(t, results, 1)
		assert.Equal(t, 1, results[0].Score)
		require.NotNil(t, results[0].User)
		assert.Equal(t, "Stu", results[0].User.Name)
		require.NotNil(t, results[0].Quiz)
		assert.Equal(t, "Basics", results[0].Quiz.Title)
	})

	t.Run("learner forbidden", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/quizzes/results/course/"+crs.ID, getToken(t, stu))
		server.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}
