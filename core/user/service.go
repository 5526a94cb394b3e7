package user

import (
	"errors"
	"fmt"
	"net/mail"

	"github.com/edwebhq/edweb/core"
)

var (
	ErrNotFound    = errors.New("user not found")
	ErrEmailExists = errors.New("a user with this email already exists")
	ErrInvalidRole = errors.New("invalid role")
)

type (
	Repository interface {
		CreateUser(usr User) (User, error)
		QueryAllUsers() ([]User, error)
		GetUserByID(id string) (User, error)
		GetUserByEmail(email string) (User, error)
		// UpdateUser replaces the named top-level fields on the stored record.
		UpdateUser(id string, fields UpdateFields) (User, error)
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

func (svc *Service) CheckEmailUniqueness(email string) error {
	if _, err := svc.repo.GetUserByEmail(email); err == nil {
		return core.NewValidationError(ErrEmailExists, core.FieldError{Field: "email", Error: ErrEmailExists.Error()})
	} else if err != ErrNotFound {
		return err
	}
	return nil
}

// Register creates a new account and sends a welcome email.
func (svc *Service) Register(nu NewUser) (User, error) {
	usr := User{
		Name:  nu.Name,
		Email: nu.Email,
		Role:  nu.Role,
	}
	if err := usr.SetPassword(nu.Password); err != nil {
		return User{}, err
	}

	usr, err := svc.repo.CreateUser(usr)
	if err != nil {
		return User{}, err
	}

	svc.mailSvc.SendMessages(&core.EmailMessage{
		To:      []mail.Address{{Name: usr.Name, Address: usr.Email}},
		Subject: "Welcome to " + svc.conf.AppName,
		Body: fmt.Sprintf(
			"Hi %s,\n\nYour %s account is ready. Log in at %s to get started.\n",
			usr.Name, svc.conf.AppName, svc.conf.FrontendBaseURL,
		),
	})
	return usr, nil
}

func (svc *Service) GetByID(id string) (User, error) {
	return svc.repo.GetUserByID(id)
}

func (svc *Service) GetByEmail(email string) (User, error) {
	return svc.repo.GetUserByEmail(core.CleanString(email, true /* lower */))
}

// ResetPassword replaces the stored password hash for the account with the given email.
func (svc *Service) ResetPassword(email, pwd string) (User, error) {
	usr, err := svc.GetByEmail(email)
	if err != nil {
		return User{}, err
	}
	if err := usr.SetPassword(pwd); err != nil {
		return User{}, err
	}
	return svc.repo.UpdateUser(usr.ID, UpdateFields{PasswordHash: &usr.PasswordHash})
}
