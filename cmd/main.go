package main

import (
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Shivam-Coderturtle/campus-order-hub/config"
	"github.com/Shivam-Coderturtle/campus-order-hub/database"
	"github.com/Shivam-Coderturtle/campus-order-hub/handlers"
	"github.com/Shivam-Coderturtle/campus-order-hub/models"
	"github.com/Shivam-Coderturtle/campus-order-hub/monitoring"
	"github.com/Shivam-Coderturtle/campus-order-hub/realtime"
	"github.com/Shivam-Coderturtle/campus-order-hub/server"
	"github.com/Shivam-Coderturtle/campus-order-hub/sms"
)

const shutdownTimeout = 10 * time.Second

func main() {
	config.Init()

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	if err := database.ConnectAndMigrate(config.DatabaseURL(), config.MigrationsPath()); err != nil {
		logrus.Panicf("failed to initialize database, error: %v", err)
	}
	logrus.Info("migration is successful")

	handlers.Init(models.NewCartStore(), realtime.NewHub(), sms.NewStubProvider())

	go monitoring.StartMetricsServer(config.MetricsAddress())

	svr := server.SetupRoutes()
	go func() {
		logrus.Infof("server listening on %s", config.ServerAddress())
		if err := svr.Run(config.ServerAddress()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.WithError(err).Fatal("server stopped unexpectedly")
		}
	}()

	<-done

	logrus.Info("shutting down...")
	if err := svr.Shutdown(shutdownTimeout); err != nil {
		logrus.WithError(err).Error("failed to shut down server cleanly")
	}
	if err := database.ShutdownDatabase(); err != nil {
		logrus.WithError(err).Error("failed to close database connection")
	}
	logrus.Info("shutdown complete")
}
