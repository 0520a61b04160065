package handlers

import (
	"log/slog"

	"firebase.google.com/go/v4/auth"

	"github.com/GregMSThompson/widget-builder/internal/response"
)

type Deps struct {
	Log             *slog.Logger
	ResponseHandler response.ResponseHandler
	WidgetSvc       WidgetService
	FormSvc         FormService
	Firebase        *auth.Client
}
