package main

import (
	"flag"

	"ccaportal/configs"
	"ccaportal/configs/configslog"
	"ccaportal/database"
)

func main() {
	migrateFlag := flag.Bool("migrate", false, "Run database initialization (includes migrations)")
	seedFlag := flag.Bool("seed", false, "Run database initialization (includes seeders)")
	flag.Parse()

	cfg := configs.LoadConfig()
	configslog.InitLogger(cfg.AppEnv)
	defer configslog.Sync()

	db := configs.ConnectDB(cfg)

	configslog.SLog.Info("Running database initialization...")
	database.Initialize(db, *migrateFlag, *seedFlag)

	configslog.SLog.Info("Database initialization finished.")
}
