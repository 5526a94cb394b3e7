package main

import (
	"log"
	"os"

	"github.com/edwebhq/edweb/core"
	"github.com/edwebhq/edweb/storage/jsondb"
)

var logger *log.Logger

func main() {
	defer os.Exit(0)

	logger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	conf := core.NewConfig()

	// set up the store
	store, err := jsondb.Open(conf.Database.Path)
	if err != nil {
		logger.Fatal(err)
	}

	// start CLI
	cli := commandLine{
		usrRepo: jsondb.NewUserRepository(store),
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}
