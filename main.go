package main

import (
	"os"
	"os/signal"
	"syscall"

	"ccaportal/configs"
	"ccaportal/configs/configslog"
	"ccaportal/database"
	"ccaportal/pkg/tokens"
	"ccaportal/routes"
	"ccaportal/services"

	"go.uber.org/zap"
)

func main() {
	cfg := configs.LoadConfig()
	configslog.InitLogger(cfg.AppEnv)
	defer configslog.Sync()

	// A miswired lifecycle table would silently strand submissions, so the
	// process refuses to start if it fails validation.
	if err := services.ValidateTransitionTable(); err != nil {
		configslog.Log.Fatal("status transition table is invalid", zap.Error(err))
	}

	db := configs.ConnectDB(cfg)
	database.Initialize(db, true, false)

	signer := tokens.NewSigner(cfg.JWTSecret)
	app := routes.NewApp(cfg, signer)

	go func() {
		if err := app.Listen(cfg.ListenAddr); err != nil {
			configslog.Log.Fatal("server stopped", zap.Error(err))
		}
	}()
	configslog.SLog.Infof("listening on %s", cfg.ListenAddr)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	configslog.SLog.Info("shutting down...")
	if err := app.Shutdown(); err != nil {
		configslog.Log.Error("shutdown error", zap.Error(err))
	}
}
