package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/GregMSThompson/widget-builder/internal/errs"
	"github.com/GregMSThompson/widget-builder/internal/models"
	"github.com/GregMSThompson/widget-builder/internal/widget"
)

// --- Fakes ---

type fakeFormStore struct {
	mu         sync.Mutex
	forms      []*models.Form
	fields     map[string][]widget.FieldDescriptor
	fieldsErr  error
	listCalls  int
	fieldCalls map[string]int
}

func newFakeFormStore() *fakeFormStore {
	return &fakeFormStore{
		fields: map[string][]widget.FieldDescriptor{
			"orders": {
				{ID: "amount", Label: "Amount", Type: widget.FieldCurrency},
				{ID: "country", Label: "Country", Type: widget.FieldCountry},
				{ID: "status", Label: "Status", Type: widget.FieldSelect},
			},
			"refunds": {
				{ID: "amount", Label: "Amount", Type: widget.FieldCurrency},
				{ID: "reason", Label: "Reason", Type: widget.FieldText},
			},
			"leads": {
				{ID: "budget", Label: "Budget", Type: widget.FieldNumber},
				{ID: "source", Label: "Source", Type: widget.FieldSelect},
			},
		},
		fieldCalls: map[string]int{},
	}
}

func (f *fakeFormStore) ListForms(_ context.Context) ([]*models.Form, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	return f.forms, nil
}

func (f *fakeFormStore) GetFields(_ context.Context, formID string) ([]widget.FieldDescriptor, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fieldCalls[formID]++
	if f.fieldsErr != nil {
		return nil, f.fieldsErr
	}
	fields, ok := f.fields[formID]
	if !ok {
		return nil, errs.NewNotFoundError("form not found: " + formID)
	}
	return fields, nil
}

// --- Tests ---

func TestListForms_Cached(t *testing.T) {
	store := newFakeFormStore()
	store.forms = []*models.Form{{FormID: "orders", Name: "Orders"}}
	svc := NewFormService(store, time.Minute)

	for range 3 {
		forms, err := svc.ListForms(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(forms) != 1 {
			t.Fatalf("expected 1 form, got %d", len(forms))
		}
	}
	if store.listCalls != 1 {
		t.Errorf("expected one store call, got %d", store.listCalls)
	}
}

func TestFieldsByForm_FetchesEachFormOnce(t *testing.T) {
	store := newFakeFormStore()
	svc := NewFormService(store, time.Minute)

	for range 2 {
		byForm, err := svc.FieldsByForm(context.Background(), []string{"orders", "refunds"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(byForm["orders"]) != 3 || len(byForm["refunds"]) != 2 {
			t.Fatalf("unexpected fields %+v", byForm)
		}
	}
	if store.fieldCalls["orders"] != 1 || store.fieldCalls["refunds"] != 1 {
		t.Errorf("expected cached lookups, got %v", store.fieldCalls)
	}
}

func TestFieldsByForm_SkipsMissingForms(t *testing.T) {
	svc := NewFormService(newFakeFormStore(), time.Minute)

	byForm, err := svc.FieldsByForm(context.Background(), []string{"orders", "gone", ""})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := byForm["gone"]; ok {
		t.Error("missing form should be absent from the result")
	}
	if _, ok := byForm["orders"]; !ok {
		t.Error("expected orders fields")
	}
}

func TestFieldsByForm_StoreError(t *testing.T) {
	store := newFakeFormStore()
	store.fieldsErr = errs.NewDatabaseError("read", "boom", errors.New("unavailable"))
	svc := NewFormService(store, time.Minute)

	_, err := svc.FieldsByForm(context.Background(), []string{"orders"})
	var dbe *errs.DatabaseError
	if !errors.As(err, &dbe) {
		t.Fatalf("expected DatabaseError, got %T: %v", err, err)
	}
}

func TestAvailableFields_IntersectsForms(t *testing.T) {
	svc := NewFormService(newFakeFormStore(), time.Minute)

	got, err := svc.AvailableFields(context.Background(), []string{"orders", "refunds"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.AllowCategorical || !got.AllowTime {
		t.Errorf("expected both groupings allowed, got %+v", got)
	}
	if _, ok := got.Find(widget.FormField("amount")); !ok {
		t.Error("expected shared amount field")
	}
	if _, ok := got.Find(widget.FormField("status")); ok {
		t.Error("status exists on one form only")
	}
}
