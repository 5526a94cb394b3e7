package user_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edwebhq/edweb/core"
	"github.com/edwebhq/edweb/core/user"
	emailsvc "github.com/edwebhq/edweb/services/email"
	"github.com/edwebhq/edweb/storage/jsondb"
	testutil "github.com/edwebhq/edweb/tests"
)

func setup(t *testing.T) (*user.Service, user.Repository) {
	t.Helper()

	repo := jsondb.NewUserRepository(testutil.PrepareStore(t))
	conf := testutil.NewConfig()
	emailsvc.ClearSentMessages()
	return user.NewService(repo, emailsvc.NewConsoleServiceMock(conf), conf), repo
}

func TestService_Register(t *testing.T) {
	svc, _ := setup(t)

	usr, err := svc.Register(user.NewUser{
		Name:     "Jane Doe",
		Email:    "jane@test.cd",
		Password: "s3cr3tpwd",
		Role:     user.RoleLearner,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, usr.ID)
	assert.Equal(t, "Jane Doe", usr.Name)
	assert.Equal(t, user.RoleLearner, usr.Role)
	assert.NoError(t, usr.CheckPassword("s3cr3tpwd"))
	assert.Error(t, usr.CheckPassword("wrong"))

	// welcome email went out
	require.Len(t, emailsvc.SentMessages, 1)
	msg := emailsvc.SentMessages[0]
	require.Len(t, msg.To, 1)
	assert.Equal(t, "jane@test.cd", msg.To[0].Address)

	// persisted
	got, err := svc.GetByEmail("jane@test.cd")
	require.NoError(t, err)
	assert.Equal(t, usr.ID, got.ID)
}

func TestService_CheckEmailUniqueness(t *testing.T) {
	svc, repo := setup(t)

	testutil.CreateUser(t, repo, "Jane", "jane@test.cd", "", user.RoleLearner)

	assert.NoError(t, svc.CheckEmailUniqueness("new@test.cd"))

	err := svc.CheckEmailUniqueness("jane@test.cd")
	require.Error(t, err)
	vErr, ok := err.(*core.ValidationError)
	require.True(t, ok, "error = %T, want *core.ValidationError", err)
	require.Len(t, vErr.Fields, 1)
	assert.Equal(t, "email", vErr.Fields[0].Field)
}

func TestService_GetByEmail_cleansInput(t *testing.T) {
	svc, repo := setup(t)

	usr := testutil.CreateUser(t, repo, "Jane", "jane@test.cd", "", user.RoleLearner)

	got, err := svc.GetByEmail("  JANE@test.cd ")
	require.NoError(t, err)
	assert.Equal(t, usr.ID, got.ID)

	_, err = svc.GetByEmail("nobody@test.cd")
	assert.Equal(t, user.ErrNotFound, err)
}

func TestService_ResetPassword(t *testing.T) {
	svc, _ := setup(t)

	usr, err := svc.Register(user.NewUser{Name: "Jane", Email: "jane@test.cd", Password: "oldpwd123", Role: user.RoleLearner})
	require.NoError(t, err)

	updated, err := svc.ResetPassword("jane@test.cd", "newpwd123")
	require.NoError(t, err)
	assert.Equal(t, usr.ID, updated.ID)
	assert.NoError(t, updated.CheckPassword("newpwd123"))
	assert.Error(t, updated.CheckPassword("oldpwd123"))

	_, err = svc.ResetPassword("nobody@test.cd", "whatever1")
	assert.Equal(t, user.ErrNotFound, err)
}

func TestNewUser_Validate(t *testing.T) {
	svc, _ := setup(t)

	t.Run("defaults and cleaning", func(t *testing.T) {
		nu := user.NewUser{Name: "  Jane ", Email: " JANE@test.cd ", Password: "s3cr3tpwd"}
		require.NoError(t, nu.Validate(svc))
		assert.Equal(t, "Jane", nu.Name)
		assert.Equal(t, "jane@test.cd", nu.Email)
		assert.Equal(t, user.RoleLearner, nu.Role)
	})

	t.Run("invalid", func(t *testing.T) {
		tests := []struct {
			name string
			nu   user.NewUser
		}{
			{name: "missing name", nu: user.NewUser{Email: "a@b.cd", Password: "s3cr3tpwd"}},
			{name: "bad email", nu: user.NewUser{Name: "J", Email: "nope", Password: "s3cr3tpwd"}},
			{name: "short password", nu: user.NewUser{Name: "J", Email: "a@b.cd", Password: "short"}},
			{name: "unknown role", nu: user.NewUser{Name: "J", Email: "a@b.cd", Password: "s3cr3tpwd", Role: "boss"}},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				assert.Error(t, tt.nu.Validate(svc))
			})
		}
	})

	t.Run("unknown role names the field", func(t *testing.T) {
		nu := user.NewUser{Name: "J", Email: "a@b.cd", Password: "s3cr3tpwd", Role: "boss"}

		vErr, ok := nu.Validate(svc).(*core.ValidationError)
		require.True(t, ok, "want a *core.ValidationError")
		require.Len(t, vErr.Fields, 1)
		assert.Equal(t, "role", vErr.Fields[0].Field)
		assert.Equal(t, user.ErrInvalidRole.Error(), vErr.Fields[0].Error)
	})
}

func TestUser_ProgressFor(t *testing.T) {
	usr := user.User{CourseProgress: map[string]user.Progress{
		"c1": {CompletedContent: []string{"l1"}, CompletedQuizzes: []string{"q1"}},
	}}

	assert.Equal(t, []string{"l1"}, usr.ProgressFor("c1").CompletedContent)
	assert.Empty(t, usr.ProgressFor("c2").CompletedContent)

	var blank user.User
	assert.Empty(t, blank.ProgressFor("c1").CompletedQuizzes)
}
