package main

import (
	"context"

	"github.com/pkg/errors"
	"github.com/pressly/goose/v3"

	"github.com/trezcool/schooladmin/storage/database"
)

var gooseRunFunc = goose.RunContext // mockable

// migrate runs a goose command (up, down, status, version, ...) on the embedded migrations.
func (cli *commandLine) migrate(ctx context.Context, args []string) error {
	if cli.conf.Database.Engine == database.EngineMemory {
		return errors.New("the memory engine has no schema to migrate")
	}
	db, err := database.Open(cli.conf)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	if err = database.Ping(ctx, db); err != nil {
		return err
	}
	if err = database.PrepareMigrations(db); err != nil {
		return err
	}
	arguments := make([]string, 0)
	if len(args) > 1 {
		arguments = append(arguments, args[1:]...)
	}
	return gooseRunFunc(ctx, args[0], db.DB, database.MigrationsDir, arguments...)
}
