package main

import (
	"fmt"
	"log"
	"os"

	"github.com/trezcool/lessonhub/core"
	"github.com/trezcool/lessonhub/core/classroom"
	"github.com/trezcool/lessonhub/core/drive"
	"github.com/trezcool/lessonhub/core/session"
	apiclient "github.com/trezcool/lessonhub/services/api"
	browsersvc "github.com/trezcool/lessonhub/services/browser"
	logsvc "github.com/trezcool/lessonhub/services/logger"
	sqlitecookie "github.com/trezcool/lessonhub/storage/cookie/sqlite"
)

func main() {
	conf, err := core.NewConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	std := log.New(os.Stdout, fmt.Sprintf("%s [%s] ", conf.AppName, conf.Env), log.LstdFlags)
	var logger core.Logger
	if conf.RollbarToken != "" {
		logger = logsvc.NewRollbarLogger(std, conf)
	} else {
		logger = logsvc.NewStdLogger(std)
	}

	cookies, err := sqlitecookie.Open(conf.CookieDBPath)
	if err != nil {
		logger.Fatal("opening cookie store", err)
	}
	defer cookies.Close()

	state := classroom.NewState()
	client := apiclient.New(conf, state.Token, logger)
	nav := browsersvc.NewOSNavigator(logger)

	connector := drive.NewConnector(client, state, nav, logger)
	rooms := classroom.NewService(client, state, connector, logger)
	sessions := session.NewManager(conf, cookies, client, state, nav, logger)

	cli := &commandLine{
		state:     state,
		sessions:  sessions,
		rooms:     rooms,
		connector: connector,
	}
	if err := cli.run(os.Args); err != nil && err != errHelp {
		logger.Fatal(err.Error())
	}
}
