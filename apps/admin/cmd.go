package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"syscall"

	"golang.org/x/term"

	"github.com/qemer/lms/core"
	"github.com/qemer/lms/core/auth"
	"github.com/qemer/lms/core/course"
	"github.com/qemer/lms/core/user"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	conf    *core.Config
	logger  core.Logger
	crsSvc  *course.Service
	usrSvc  *user.Service
	session *auth.Session // backed by a throwaway store; checklogin must not touch the real session file
	store   auth.Store    // the real durable session store
	out     io.Writer
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  stats                    - print fixture dataset counts")
	fmt.Fprintln(cli.out, "  checklogin -email EMAIL  - verify a credential pair; the password will be prompted")
	fmt.Fprintln(cli.out, "  clearsession             - wipe the persisted session")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	checkLoginCmd := flag.NewFlagSet("checklogin", flag.ExitOnError)
	checkLoginEmail := checkLoginCmd.String("email", "", "The account's email. The password will be prompted next.")

	switch args[1] {
	case "stats":
		return cli.stats()
	case "checklogin":
		if err := checkLoginCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *checkLoginEmail == "" {
			checkLoginCmd.Usage()
			return errHelp
		}
		fmt.Fprint(cli.out, "Enter password:")
		pwd, err := readPasswordFunc(syscall.Stdin)
		fmt.Fprintln(cli.out)
		if err != nil {
			return err
		}
		if len(pwd) == 0 {
			checkLoginCmd.Usage()
			return errHelp
		}
		return cli.checkLogin(*checkLoginEmail, string(pwd))
	case "clearsession":
		return cli.clearSession()
	default:
		cli.printUsage()
		return errHelp
	}
}

func (cli *commandLine) stats() error {
	stats, err := cli.crsSvc.Stats()
	if err != nil {
		return err
	}
	totalUsers, err := cli.usrSvc.Count()
	if err != nil {
		return err
	}

	fmt.Fprintf(cli.out, "Users:                 %d\n", totalUsers)
	fmt.Fprintf(cli.out, "Courses:               %d\n", stats.TotalCourses)
	fmt.Fprintf(cli.out, "Enrollments:           %d\n", stats.TotalEnrollments)
	fmt.Fprintf(cli.out, "Assignments:           %d\n", stats.TotalAssignments)
	fmt.Fprintf(cli.out, "Completed assignments: %d\n", stats.CompletedAssignments)
	fmt.Fprintf(cli.out, "Credit hours:          %d\n", stats.TotalCreditHours)
	return nil
}

func (cli *commandLine) checkLogin(email, pwd string) error {
	ok, err := cli.session.Login(context.Background(), email, pwd)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(cli.out, "Authentication failed.")
		return nil
	}
	identity, _ := cli.session.Current()
	fmt.Fprintf(cli.out, "OK: %s <%s> (%s)\n", identity.Name, identity.Email, identity.Role)
	return nil
}

func (cli *commandLine) clearSession() error {
	if err := cli.store.Clear(); err != nil {
		return err
	}
	fmt.Fprintln(cli.out, "Session cleared.")
	return nil
}
