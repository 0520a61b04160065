package store

import (
	"context"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/GregMSThompson/widget-builder/internal/errs"
	"github.com/GregMSThompson/widget-builder/internal/models"
	"github.com/GregMSThompson/widget-builder/internal/widget"
)

// Forms live at forms/{formId}; their fields at forms/{formId}/fields/{fieldId}.
type formStore struct {
	client *firestore.Client
}

func NewFormStore(client *firestore.Client) *formStore {
	return &formStore{client: client}
}

func (s *formStore) ListForms(ctx context.Context) ([]*models.Form, error) {
	docs, err := s.client.Collection("forms").OrderBy("name", firestore.Asc).Documents(ctx).GetAll()
	if err != nil {
		return nil, errs.NewDatabaseError("read", "failed to list forms", err)
	}
	forms := make([]*models.Form, 0, len(docs))
	for _, d := range docs {
		var f models.Form
		if err := d.DataTo(&f); err != nil {
			return nil, errs.NewDatabaseError("read", "failed to parse form data", err)
		}
		if f.FormID == "" {
			f.FormID = d.Ref.ID
		}
		forms = append(forms, &f)
	}
	return forms, nil
}

// GetFields returns a form's fields in display order.
func (s *formStore) GetFields(ctx context.Context, formID string) ([]widget.FieldDescriptor, error) {
	formRef := s.client.Collection("forms").Doc(formID)
	docs, err := formRef.Collection("fields").OrderBy("position", firestore.Asc).Documents(ctx).GetAll()
	if err != nil {
		return nil, errs.NewDatabaseError("read", "failed to list form fields", err)
	}
	if len(docs) == 0 {
		// an unknown form and a form without fields look the same here
		if _, err := formRef.Get(ctx); err != nil {
			if status.Code(err) == codes.NotFound {
				return nil, errs.NewNotFoundError("form not found: " + formID)
			}
			return nil, errs.NewDatabaseError("read", "failed to get form", err)
		}
	}

	fields := make([]widget.FieldDescriptor, 0, len(docs))
	for _, d := range docs {
		var f models.FormField
		if err := d.DataTo(&f); err != nil {
			return nil, errs.NewDatabaseError("read", "failed to parse form field", err)
		}
		if f.FieldID == "" {
			f.FieldID = d.Ref.ID
		}
		fields = append(fields, f.Descriptor())
	}
	return fields, nil
}
