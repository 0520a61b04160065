package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
	"golang.org/x/sync/errgroup"

	"github.com/GregMSThompson/widget-builder/internal/errs"
	"github.com/GregMSThompson/widget-builder/internal/models"
	"github.com/GregMSThompson/widget-builder/internal/widget"
	"github.com/GregMSThompson/widget-builder/pkg/logger"
)

const formsCacheKey = "forms"

// maxFieldFetches bounds concurrent field lookups for one request.
const maxFieldFetches = 4

// formStore is the Firestore storage interface for form metadata.
type formStore interface {
	ListForms(ctx context.Context) ([]*models.Form, error)
	GetFields(ctx context.Context, formID string) ([]widget.FieldDescriptor, error)
}

// formService serves form metadata through a TTL cache. Form definitions
// change rarely compared to how often the editor asks for them.
type formService struct {
	store formStore
	cache *cache.Cache
}

func NewFormService(store formStore, ttl time.Duration) *formService {
	return &formService{
		store: store,
		cache: cache.New(ttl, 2*ttl),
	}
}

func (s *formService) ListForms(ctx context.Context) ([]*models.Form, error) {
	if v, ok := s.cache.Get(formsCacheKey); ok {
		return v.([]*models.Form), nil
	}
	forms, err := s.store.ListForms(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.SetDefault(formsCacheKey, forms)
	return forms, nil
}

// Fields returns the fields of one form.
func (s *formService) Fields(ctx context.Context, formID string) ([]widget.FieldDescriptor, error) {
	key := "fields:" + formID
	if v, ok := s.cache.Get(key); ok {
		return v.([]widget.FieldDescriptor), nil
	}
	fields, err := s.store.GetFields(ctx, formID)
	if err != nil {
		return nil, err
	}
	s.cache.SetDefault(key, fields)
	return fields, nil
}

// FieldsByForm fetches the fields of every form concurrently. Forms that do
// not exist are left out of the result; any other failure aborts the call.
func (s *formService) FieldsByForm(ctx context.Context, formIDs []string) (map[string][]widget.FieldDescriptor, error) {
	log := logger.FromContext(ctx)
	out := make(map[string][]widget.FieldDescriptor, len(formIDs))
	var mu sync.Mutex

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(maxFieldFetches)
	for _, id := range formIDs {
		if id == "" {
			continue
		}
		eg.Go(func() error {
			fields, err := s.Fields(egCtx, id)
			if err != nil {
				var nfe *errs.NotFoundError
				if errors.As(err, &nfe) {
					log.Debug("form not found", "form_id", id)
					return nil
				}
				return err
			}
			mu.Lock()
			out[id] = fields
			mu.Unlock()
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// AvailableFields resolves the fields usable for grouping and filtering
// across formIDs.
func (s *formService) AvailableFields(ctx context.Context, formIDs []string) (widget.AvailableFields, error) {
	byForm, err := s.FieldsByForm(ctx, formIDs)
	if err != nil {
		return widget.AvailableFields{}, err
	}
	return widget.ResolveFields(formIDs, byForm), nil
}
