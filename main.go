package main

import (
	"flag"
	"log"

	"creava/config"
	"creava/controllers"
	"creava/db"
	"creava/generation"
	"creava/logger"
	"creava/quota"
	"creava/router"
	"creava/store"
	"creava/tools"

	"github.com/gin-gonic/gin"
)

func main() {
	configPath := flag.String("config", "config.json", "path to the config file")
	flag.Parse()

	cfg := config.Get(*configPath)

	zlog, err := logger.New(cfg.LogMode)
	if err != nil {
		log.Fatal(err)
	}
	defer zlog.Sync()

	providers, err := config.LoadProviders()
	if err != nil {
		zlog.Fatal("invalid provider configuration", "error", err)
	}

	db.SetConfigurations(cfg)
	database, err := db.Connect()
	if err != nil {
		zlog.Fatal("database connection failed", "error", err)
	}
	defer database.Close()

	guard := quota.NewGuard(tools.NewIdentityAPIClient(providers), zlog)

	controllers.SetAIService(&generation.Service{
		Text:      tools.NewOpenAIClient(providers),
		Images:    tools.NewClipdropClient(providers),
		Store:     tools.NewCloudinaryClient(providers),
		Documents: tools.NewPDFExtractor(),
		Creations: store.NewGormStore(database),
		Guard:     guard,
		Log:       zlog,
	})

	r := gin.New()
	r.Use(db.SetDBtoContext(database))
	router.Initialize(r, cfg, zlog)

	zlog.Info("listening", "port", cfg.ApiPort)
	if err := r.Run(":" + cfg.ApiPort); err != nil {
		zlog.Fatal("server stopped", "error", err)
	}
}
