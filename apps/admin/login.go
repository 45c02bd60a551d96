package main

import (
	"fmt"

	"github.com/trezcool/schooladmin/core/user"
)

// login checks the credentials against the seeded users and tells where the role lands.
func (cli *commandLine) login(email, pwd string) error {
	usr, dest, err := cli.users.Login(email, pwd)
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "Logged in as %s (%s). Redirecting to %s\n", usr.Name, usr.Role, dest)
	if redirect, ok := user.Guard(usr.Role, user.RoleAdmin); !ok {
		fmt.Fprintf(cli.out, "Admin pages are restricted: %s users are sent to %s\n", usr.Role, redirect)
	}
	return nil
}
