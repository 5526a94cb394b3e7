package tests

import (
	"bytes"
	"encoding/json"
	"io/ioutil"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"

	. "github.com/edwebhq/edweb/apps/api/echo"
	"github.com/edwebhq/edweb/core/course"
	"github.com/edwebhq/edweb/core/quiz"
	"github.com/edwebhq/edweb/core/user"
	emailsvc "github.com/edwebhq/edweb/services/email"
	logsvc "github.com/edwebhq/edweb/services/logger"
	"github.com/edwebhq/edweb/storage/jsondb"
	testutil "github.com/edwebhq/edweb/tests"
)

var (
	store    *jsondb.Store
	usrRepo  user.Repository
	crsRepo  course.Repository
	quizRepo quiz.Repository
)

func setup(t *testing.T) Server {
	t.Helper()

	// set up the store & repos
	store = testutil.PrepareStore(t)
	usrRepo = jsondb.NewUserRepository(store)
	crsRepo = jsondb.NewCourseRepository(store)
	quizRepo = jsondb.NewQuizRepository(store)
	resRepo := jsondb.NewResultRepository(store)

	// set up services
	conf := testutil.NewConfig()
	emailsvc.ClearSentMessages()
	mailSvc := emailsvc.NewConsoleServiceMock(conf)
	usrSvc := user.NewService(usrRepo, mailSvc, conf)
	quizSvc := quiz.NewService(quizRepo, resRepo, usrRepo)
	crsSvc := course.NewService(crsRepo, usrRepo, quizRepo, mailSvc, conf)

	// set up server
	return NewServer(
		&Options{
			DisableReqLogs: true,
			Conf:           conf,
			Logger:         logsvc.NewQuietLogger(log.New(ioutil.Discard, "", 0)),
			UserSvc:        usrSvc,
			CourseSvc:      crsSvc,
			QuizSvc:        quizSvc,
		},
	)
}

func newAuthRequest(method, path, token string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	return newAuthRequest(method, path, "", data...)
}

func getToken(t *testing.T, usr user.User) string {
	t.Helper()

	token, err := GenerateToken(GetUserClaims(usr))
	if err != nil {
		t.Fatalf("getToken() failed: %v", err)
	}
	return token
}

func marshalObj(t *testing.T, obj interface{}) []byte {
	t.Helper()

	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marshalObj() failed: %v", err)
	}
	return data
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()

	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("decodeBody() failed: %v\nbody: %s", err, rec.Body.String())
	}
}
