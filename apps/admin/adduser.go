package main

import (
	"github.com/edwebhq/edweb/core"
	"github.com/edwebhq/edweb/core/user"
)

// addUser updates or creates a user.User
func (cli *commandLine) addUser(name, email, pwd string, isAdmin bool) error {
	name = core.CleanString(name)
	email = core.CleanString(email, true /* lower */)

	role := user.RoleLearner
	if isAdmin {
		role = user.RoleAdmin
	}

	usr, err := cli.usrRepo.GetUserByEmail(email)
	if err != nil {
		if err != user.ErrNotFound {
			return err
		}
		usr = user.User{
			Name:  name,
			Email: email,
			Role:  role,
		}
		if err := usr.SetPassword(pwd); err != nil {
			return err
		}
		_, err = cli.usrRepo.CreateUser(usr)
		return err
	}

	if err := usr.SetPassword(pwd); err != nil {
		return err
	}
	fields := user.UpdateFields{
		Name:         &name,
		PasswordHash: &usr.PasswordHash,
	}
	if isAdmin {
		fields.Role = &role
	}
	_, err = cli.usrRepo.UpdateUser(usr.ID, fields)
	return err
}
