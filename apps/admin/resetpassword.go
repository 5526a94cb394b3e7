package main

import (
	"github.com/edwebhq/edweb/core"
	"github.com/edwebhq/edweb/core/user"
)

func (cli *commandLine) resetPassword(email, pwd string) error {
	usr, err := cli.usrRepo.GetUserByEmail(core.CleanString(email, true /* lower */))
	if err != nil {
		return err
	}
	if err := usr.SetPassword(pwd); err != nil {
		return err
	}
	_, err = cli.usrRepo.UpdateUser(usr.ID, user.UpdateFields{PasswordHash: &usr.PasswordHash})
	return err
}
