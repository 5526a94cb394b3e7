package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	echoapi "github.com/edwebhq/edweb/apps/api/echo"
	"github.com/edwebhq/edweb/core"
	"github.com/edwebhq/edweb/core/course"
	"github.com/edwebhq/edweb/core/quiz"
	"github.com/edwebhq/edweb/core/user"
	emailsvc "github.com/edwebhq/edweb/services/email"
	logsvc "github.com/edwebhq/edweb/services/logger"
	"github.com/edwebhq/edweb/storage/jsondb"
)

const shutdownTimeout = 20 * time.Second

func main() {
	// =========================================================================
	// Set up Dependencies

	conf := core.NewConfig()

	std := log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
	var logger core.Logger
	if conf.Debug {
		logger = logsvc.NewConsoleLogger(std)
	} else {
		rbLogger := logsvc.NewRollbarLogger(std, conf)
		rbLogger.Enable(!conf.Debug)
		logger = rbLogger
	}

	// set up the store
	store, err := jsondb.Open(conf.Database.Path)
	if err != nil {
		logger.Fatal(fmt.Sprintf("opening store: %v", err), err)
	}
	usrRepo := jsondb.NewUserRepository(store)
	crsRepo := jsondb.NewCourseRepository(store)
	quizRepo := jsondb.NewQuizRepository(store)
	resRepo := jsondb.NewResultRepository(store)

	// set up services
	var mailSvc core.EmailService
	if conf.Debug {
		mailSvc = emailsvc.NewConsoleService(conf)
	} else {
		mailSvc = emailsvc.NewSendgridService(conf, logger)
	}
	usrSvc := user.NewService(usrRepo, mailSvc, conf)
	quizSvc := quiz.NewService(quizRepo, resRepo, usrRepo)
	crsSvc := course.NewService(crsRepo, usrRepo, quizRepo, mailSvc, conf)

	// =========================================================================
	// Start API Service

	logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))
	defer logger.Info("Application stopped")

	server := echoapi.NewServer(
		&echoapi.Options{
			Address:   conf.Address,
			Conf:      conf,
			Logger:    logger,
			UserSvc:   usrSvc,
			CourseSvc: crsSvc,
			QuizSvc:   quizSvc,
		},
	)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- server.Start()
	}()

	// =========================================================================
	// Shutdown

	select {
	case err = <-serverErrors:
		logger.Fatal(fmt.Sprintf("server error: %v", err), err)

	case sig := <-server.ShutdownSignal():
		logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

		// give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err = server.Stop(ctx); err != nil {
			logger.Fatal(fmt.Sprintf("could not stop server gracefully: %v", err), err)
		}
	}
}
