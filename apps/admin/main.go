package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/trezcool/schooladmin/core"
	"github.com/trezcool/schooladmin/core/school"
	"github.com/trezcool/schooladmin/core/user"
	apisvc "github.com/trezcool/schooladmin/services/api"
	logsvc "github.com/trezcool/schooladmin/services/logger"
	"github.com/trezcool/schooladmin/services/prompt"
)

func main() {
	conf, err := core.NewConfig()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}
	logger := logsvc.NewRollbarLogger(log.New(os.Stderr, "ADMIN : ", log.LstdFlags|log.Lmicroseconds), conf)

	users, err := user.NewSeededDirectory()
	if err != nil {
		logger.Fatal(fmt.Sprintf("seeding users: %v", err), err)
	}

	cli := commandLine{
		conf:    conf,
		api:     apisvc.NewFromConfig(conf, logger, nil),
		val:     school.NewValidator(),
		users:   users,
		confirm: prompt.NewTerminalConfirmer().Confirm,
		logger:  logger,
		out:     os.Stdout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err = cli.run(ctx, os.Args)
	stop()
	if err != nil {
		if err != errHelp {
			fmt.Fprintf(os.Stderr, "\nerror: %s\n", core.Message(err))
		}
		os.Exit(1)
	}
}
