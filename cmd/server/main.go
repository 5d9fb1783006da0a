package main

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"medrecords-backend/internal/config"
	"medrecords-backend/internal/database"
	"medrecords-backend/internal/handlers"
	"medrecords-backend/internal/middleware"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	cfg, err := config.LoadConfig()
	if err != nil {
		log.WithError(err).Fatal("loading configuration")
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.WithError(err).Fatal("connecting to database")
	}
	if err := database.Migrate(db); err != nil {
		log.WithError(err).Fatal("migrating schema")
	}
	if err := database.Seed(db, cfg.AdminPassword); err != nil {
		log.WithError(err).Fatal("seeding reference data")
	}

	h := handlers.New(db, cfg.SessionTTL, log)

	// sessions left over from before the last shutdown
	if err := h.Sessions.PurgeExpired(context.Background()); err != nil {
		log.WithError(err).Warn("purging expired sessions")
	}

	r := gin.New()
	r.Use(middleware.RequestLogger(log), gin.Recovery())
	r.Use(middleware.SessionLoader(h.Sessions, log))
	r.LoadHTMLGlob("web/templates/*.html")
	h.RegisterAPI(r)
	h.RegisterFrontend(r)

	log.WithField("port", cfg.ListenPort).Info("server listening")
	if err := r.Run(":" + cfg.ListenPort); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}
