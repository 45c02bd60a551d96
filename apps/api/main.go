package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	echoapi "github.com/trezcool/schooladmin/apps/api/echo"
	"github.com/trezcool/schooladmin/core"
	"github.com/trezcool/schooladmin/core/school"
	"github.com/trezcool/schooladmin/core/user"
	logsvc "github.com/trezcool/schooladmin/services/logger"
	"github.com/trezcool/schooladmin/storage/database"
	inmemdb "github.com/trezcool/schooladmin/storage/database/inmem"
	sqlxrepos "github.com/trezcool/schooladmin/storage/database/sqlx"
)

// The reference API serves the school admin collections, for the admin CLI and for local development.
func main() {
	// =========================================================================
	// Set up Dependencies

	conf, err := core.NewConfig()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	logger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	dbLogger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "DB : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)

	val := school.NewValidator()

	repo, closeDB, err := setUpRepository(context.Background(), conf, val)
	if err != nil {
		logger.Fatal(fmt.Sprintf("setting up database: %v", err), err)
	}
	defer func() {
		if err = closeDB(); err != nil {
			dbLogger.Error("Failed to close", err)
		}
	}()

	users, err := user.NewSeededDirectory()
	if err != nil {
		logger.Fatal(fmt.Sprintf("seeding users: %v", err), err)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	// =========================================================================
	// Start API Service

	logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))
	defer logger.Info("Application stopped")

	server := echoapi.NewServer(
		echoapi.ServerDeps{
			Conf:      conf,
			Logger:    logger,
			Repo:      repo,
			Validator: val,
			Users:     users,
			Registry:  reg,
		},
	)

	go func() {
		server.Start()
	}()

	// =========================================================================
	// Shutdown

	select {
	case err = <-server.Errors():
		logger.Fatal(fmt.Sprintf("server error: %v", err), err)

	case sig := <-server.ShutdownSignal():
		logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

		// give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
		defer cancel()

		// asking listener to shutdown and shed load
		if err = server.Shutdown(ctx); err != nil {
			logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)

			if err = server.Close(); err != nil {
				logger.Fatal(fmt.Sprintf("could not force stop server: %v", err), err)
			}
		}
	}
}

// setUpRepository opens the configured database and stores the sample records that are missing.
func setUpRepository(ctx context.Context, conf *core.Config, val *school.Validator) (school.Repository, func() error, error) {
	var (
		repo    school.Repository
		closeDB = func() error { return nil }
	)

	if conf.Database.Engine == database.EngineMemory {
		repo = inmemdb.NewRecordRepository(inmemdb.Open())
	} else {
		db, err := database.Open(conf)
		if err != nil {
			return nil, nil, err
		}
		if err = database.Ping(ctx, db); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		if err = database.Migrate(ctx, db); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		repo, closeDB = sqlxrepos.NewRecordRepository(db), db.Close
	}

	if err := school.NewServices(repo, val).SeedSamples(ctx); err != nil {
		_ = closeDB()
		return nil, nil, err
	}
	return repo, closeDB, nil
}
