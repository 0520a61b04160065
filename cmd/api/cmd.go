package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/GregMSThompson/widget-builder/internal/bootstrap"
	"github.com/GregMSThompson/widget-builder/internal/config"
	"github.com/GregMSThompson/widget-builder/internal/handlers"
	"github.com/GregMSThompson/widget-builder/internal/response"
	"github.com/GregMSThompson/widget-builder/internal/router"
	"github.com/GregMSThompson/widget-builder/internal/services"
	"github.com/GregMSThompson/widget-builder/internal/store"
)

func exitOnError(message string, err error, log *slog.Logger) {
	if err != nil {
		log.Error(message, "error", err)
		os.Exit(1)
	}
}

func main() {
	// local runs read a .env file; on Cloud Run the environment is set
	_ = godotenv.Load()

	// bootstrap
	cfg := config.New()
	bs, err := bootstrap.Run(cfg)
	exitOnError("bootstrap failed", err, bs.Log)
	defer bs.Close()

	// stores
	wstore := store.NewWidgetStore(bs.Firestore)
	fstore := store.NewFormStore(bs.Firestore)

	// services
	fserv := services.NewFormService(fstore, cfg.FormCacheTTL)
	wserv := services.NewWidgetService(wstore, fserv, bs.QueryAdapter, cfg.DefaultPalette)

	// response handler
	rh := response.New(bs.Log)

	// dependancies
	deps := new(handlers.Deps)
	deps.Log = bs.Log
	deps.ResponseHandler = rh
	deps.Firebase = bs.Firebase
	deps.WidgetSvc = wserv
	deps.FormSvc = fserv

	// router
	r := router.NewRouter(deps)
	bs.Log.Info("listening", "port", cfg.Port)
	err = http.ListenAndServe(":"+cfg.Port, r)
	exitOnError("server start failed", err, bs.Log)
}
