package main

import (
	"log"
	"os"

	"github.com/qemer/lms/core"
	"github.com/qemer/lms/core/auth"
	"github.com/qemer/lms/core/course"
	"github.com/qemer/lms/core/user"
	emailsvc "github.com/qemer/lms/services/email"
	logsvc "github.com/qemer/lms/services/logger"
	fixturedb "github.com/qemer/lms/storage/fixtures"
	"github.com/qemer/lms/storage/localstore"
)

func main() {
	conf := core.NewConfig()
	logger := logsvc.NewStdLogger(log.New(os.Stderr, "ADMIN : ", log.LstdFlags))

	db, err := fixturedb.Open(conf)
	if err != nil {
		logger.Fatal("loading fixtures", err)
	}

	crsRepo := fixturedb.NewCourseRepository(db)
	crsSvc := course.NewService(crsRepo, emailsvc.NewConsoleService(conf), conf)
	usrSvc := user.NewService(fixturedb.NewUserRepository(db), crsRepo)

	cli := &commandLine{
		conf:    conf,
		logger:  logger,
		crsSvc:  crsSvc,
		usrSvc:  usrSvc,
		session: auth.NewSession(localstore.NewMemStore(), conf, logger),
		store:   localstore.NewFileStore(conf),
		out:     os.Stdout,
	}

	if err := cli.run(os.Args); err != nil {
		if err == errHelp {
			os.Exit(2)
		}
		logger.Fatal(err.Error(), err)
	}
}
