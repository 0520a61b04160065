package models

import (
	"time"

	"github.com/GregMSThompson/widget-builder/internal/widget"
)

// Widget is a saved widget configuration stored in Firestore. The
// configuration is persisted as a unit.
type Widget struct {
	WidgetID  string        `firestore:"widgetId" json:"widgetId"`
	Position  int           `firestore:"position" json:"position"`
	Config    widget.Config `firestore:"config" json:"config"`
	CreatedAt time.Time     `firestore:"createdAt" json:"createdAt"`
	UpdatedAt time.Time     `firestore:"updatedAt" json:"updatedAt"`
}
