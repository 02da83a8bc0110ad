package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/mdouchement/itemservice/internal/config"
	"github.com/mdouchement/itemservice/internal/database"
	"github.com/mdouchement/itemservice/internal/logger"
	"github.com/mdouchement/itemservice/internal/server"
	"github.com/muesli/coral"
	"github.com/pkg/errors"
)

var (
	version  = "1.0.0"
	revision = "none"
	date     = "unknown"

	cfg string
)

func main() {
	c := &coral.Command{
		Use:     "itemservice",
		Short:   "Item CRUD microservice",
		Version: fmt.Sprintf("%s - build %.7s @ %s - %s", version, revision, date, runtime.Version()),
		Args:    coral.ExactArgs(0),
	}
	initCmd.Flags().StringVarP(&cfg, "config", "c", "", "Configuration file")
	c.AddCommand(initCmd)

	reindexCmd.Flags().StringVarP(&cfg, "config", "c", "", "Configuration file")
	c.AddCommand(reindexCmd)

	serverCmd.Flags().StringVarP(&cfg, "config", "c", "", "Configuration file")
	c.AddCommand(serverCmd)

	if err := c.Execute(); err != nil {
		log.Fatalf("%+v", err)
	}
}

func databasePath() (string, error) {
	konf, err := config.Load(cfg)
	if err != nil {
		return "", err
	}

	if konf.DatabasePath == "" {
		return "", errors.New("database_path not found")
	}
	return konf.DatabasePath, nil
}

var (
	initCmd = &coral.Command{
		Use:   "init",
		Short: "Init the database",
		Args:  coral.ExactArgs(0),
		RunE: func(_ *coral.Command, _ []string) error {
			path, err := databasePath()
			if err != nil {
				return err
			}

			err = database.StormInit(path)
			if err == database.ErrDatabaseExists {
				fmt.Printf("Database %s already exists.\n", path)
				return nil
			}
			if err != nil {
				return err
			}

			fmt.Printf("Database %s initialized successfully.\n", path)
			return nil
		},
	}

	//
	reindexCmd = &coral.Command{
		Use:   "reindex",
		Short: "Reindex the database",
		Args:  coral.ExactArgs(0),
		RunE: func(_ *coral.Command, _ []string) error {
			path, err := databasePath()
			if err != nil {
				return err
			}

			return database.StormReIndex(path)
		},
	}

	//
	//
	serverCmd = &coral.Command{
		Use:   "server",
		Short: "Start server",
		Args:  coral.ExactArgs(0),
		RunE: func(_ *coral.Command, _ []string) error {
			konf, err := config.Load(cfg)
			if err != nil {
				return err
			}

			logs := logger.New(os.Stdout, konf.Debug, konf.LogFile)

			db := database.MemoryOpen()
			if konf.DatabasePath != "" {
				db, err = database.StormOpen(konf.DatabasePath)
				if err != nil {
					return errors.Wrap(err, "could not open database")
				}
			}
			defer db.Close()

			engine := server.EchoEngine(server.Controller{
				Version:   version,
				StartedAt: time.Now(),
				Database:  db,
				Logger:    logs,
				Debug:     konf.Debug,
			})
			server.PrintRoutes(os.Stdout, engine)

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			done := make(chan struct{})
			go func() {
				defer close(done)

				<-ctx.Done()
				logs.Info("Server is shutting down")

				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := engine.Shutdown(ctx); err != nil {
					logs.Errorf("Server forced to shutdown: %v", err)
				}
			}()

			logs.Infof("Starting item service on %s", konf.Address())
			err = engine.Start(konf.Address())
			if err != nil && err != http.ErrServerClosed {
				return errors.Wrap(err, "could not run server")
			}
			<-done

			logs.Info("Server stopped")
			return nil
		},
	}
)
