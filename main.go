// @title LMS exam API
// @version 1.0
// @description Test attempts, scoring and practice sessions.

// @host localhost:8080
// @BasePath /api
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization

//go:generate swag init -g main.go -o docs

package main

import (
	"flag"
	"log"

	"github.com/Env1sage/LMS-MED-sub001/internal/app"
	"github.com/Env1sage/LMS-MED-sub001/internal/config"
	"github.com/Env1sage/LMS-MED-sub001/pkg/logger"
)

func main() {
	// 命令行参数
	configDir := flag.String("config", "configs", "directory holding config.yaml")
	migrateOnly := flag.Bool("migrate-only", false, "run database migrations and exit")
	migrate := flag.Bool("migrate", false, "run database migrations on start even in release mode")
	flag.Parse()

	cfg, err := config.LoadConfig(*configDir)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	cfg.ForceMigrate = *migrate || *migrateOnly
	cfg.MigrateOnly = *migrateOnly

	application := app.NewApp(cfg)
	defer logger.Log.Sync()

	if *migrateOnly {
		logger.Log.Info("Database migration finished, exiting")
		return
	}

	application.Run(*configDir)
}
