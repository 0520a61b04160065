package models

import "github.com/GregMSThompson/widget-builder/internal/widget"

// Form is a data-collection form whose responses feed widgets.
type Form struct {
	FormID string `firestore:"formId" json:"id"`
	Name   string `firestore:"name" json:"name"`
	// CountryFields lists the ids of fields usable as a map's country field.
	CountryFields []string `firestore:"countryFields,omitempty" json:"countryFields,omitempty"`
}

// FormField is one field document under a form's fields subcollection.
type FormField struct {
	FieldID  string           `firestore:"fieldId"`
	Label    string           `firestore:"label"`
	Type     widget.FieldType `firestore:"type"`
	Position int              `firestore:"position"`
}

// Descriptor converts the stored field to the shape the widget core uses.
func (f FormField) Descriptor() widget.FieldDescriptor {
	return widget.FieldDescriptor{ID: f.FieldID, Label: f.Label, Type: f.Type}
}
