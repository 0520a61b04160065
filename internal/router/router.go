package router

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/GregMSThompson/widget-builder/internal/handlers"
	"github.com/GregMSThompson/widget-builder/internal/middleware"
)

func NewRouter(deps *handlers.Deps) chi.Router {
	r := chi.NewRouter()

	lm := middleware.NewLoggerMiddleware(deps.Log)
	am := middleware.NewMiddleware(deps.Firebase)

	r.Use(chimiddleware.RequestID)
	r.Use(lm.LoggerMiddleware)
	r.Use(chimiddleware.Recoverer)

	wh := handlers.NewWidgetHandlers(deps)
	fh := handlers.NewFormHandlers(deps)

	r.Group(func(r chi.Router) {
		r.Use(am.FirebaseAuth)
		r.Mount("/widget-types", wh.WidgetTypeRoutes())
		r.Mount("/widgets", wh.WidgetRoutes())
		r.Mount("/forms", fh.FormRoutes())
	})
	return r
}
