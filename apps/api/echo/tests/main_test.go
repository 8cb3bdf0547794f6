package tests

import (
	"log"
	"os"
	"testing"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	echoapi "github.com/qemer/lms/apps/api/echo"
	"github.com/qemer/lms/core"
	"github.com/qemer/lms/core/announcement"
	"github.com/qemer/lms/core/auth"
	"github.com/qemer/lms/core/course"
	"github.com/qemer/lms/core/user"
	emailsvc "github.com/qemer/lms/services/email"
	logsvc "github.com/qemer/lms/services/logger"
	fixturedb "github.com/qemer/lms/storage/fixtures"
	"github.com/qemer/lms/storage/localstore"
)

var (
	app          echoapi.Server
	conf         *core.Config
	session      *auth.Session
	sessionStore *localstore.MemStore

	studentIdentity = auth.Identity{
		ID:     "student-1",
		Name:   "John Smith",
		Email:  "student@qemer.com",
		Role:   "student",
		Avatar: "/api/placeholder/40/40",
	}
	adminIdentity = auth.Identity{
		ID:     "admin-1",
		Name:   "Admin User",
		Email:  "admin@qemer.com",
		Role:   "admin",
		Avatar: "/api/placeholder/40/40",
	}
)

func TestMain(m *testing.M) {
	conf = core.NewConfig()
	conf.Debug = false
	conf.TestMode = true
	conf.LoginLatency = 0

	logger := logsvc.NewStdLogger(log.New(os.Stdout, "TEST : ", log.LstdFlags))

	// load the fixture dataset
	db, err := fixturedb.Open(conf)
	if err != nil {
		log.Fatalf("loading fixtures: %v", err)
	}

	// set up services
	mailSvc := emailsvc.NewConsoleServiceMock(conf)
	crsRepo := fixturedb.NewCourseRepository(db)
	crsSvc := course.NewService(crsRepo, mailSvc, conf)
	usrSvc := user.NewService(fixturedb.NewUserRepository(db), crsRepo)
	annSvc := announcement.NewService(fixturedb.NewAnnouncementRepository(db))

	sessionStore = localstore.NewMemStore()
	session = auth.NewSession(sessionStore, conf, logger)
	session.Restore()

	validate := validator.New()
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	core.InitValidators(validate, translator)

	// set up server
	app = echoapi.NewServer(
		echoapi.ServerDeps{
			Conf:            conf,
			Logger:          logger,
			CourseSvc:       crsSvc,
			UserSvc:         usrSvc,
			AnnouncementSvc: annSvc,
			Session:         session,
			Validate:        validate,
			Translator:      translator,
			DisableReqLogs:  true,
		},
	)

	os.Exit(m.Run())
}
