package main

import (
	"fmt"
	"os"
	"text/tabwriter"
)

// listUsers prints every account, in creation order.
func (cli *commandLine) listUsers() error {
	users, err := cli.usrRepo.QueryAllUsers()
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "EMAIL\tNAME\tROLE")
	for _, usr := range users {
		fmt.Fprintf(w, "%s\t%s\t%s\n", usr.Email, usr.Name, usr.Role)
	}
	return w.Flush()
}
