package bootstrap

import (
	"context"
	"errors"
	"log/slog"

	"cloud.google.com/go/firestore"
	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"firebase.google.com/go/v4/auth"

	queryclient "github.com/GregMSThompson/widget-builder/internal/client/query"
	"github.com/GregMSThompson/widget-builder/internal/config"
	"github.com/GregMSThompson/widget-builder/internal/store"
	"github.com/GregMSThompson/widget-builder/pkg/logger"
)

type Bootstrap struct {
	Log          *slog.Logger
	Firestore    *firestore.Client
	Firebase     *auth.Client
	Secrets      *secretmanager.Client
	QueryAdapter *queryclient.Adapter
}

func Run(cfg *config.Config) (*Bootstrap, error) {
	var err error
	applicationCtx := context.Background()
	bs := new(Bootstrap)

	bs.Log = logger.New(cfg.LogLevel, logger.NewCloudRunHandler)
	bs.Firestore, err = InitFirestore(applicationCtx, cfg.ProjectID)
	if err != nil {
		return bs, err
	}
	bs.Firebase, err = InitFirebase(applicationCtx)
	if err != nil {
		return bs, err
	}

	// the query key is optional for local runs against an open endpoint
	var queryKey string
	if cfg.QueryServiceSecret != "" {
		bs.Secrets, err = InitSecretManager(applicationCtx)
		if err != nil {
			return bs, err
		}
		queryKey, err = store.NewSecretsStore(bs.Secrets, cfg.ProjectID).GetSecret(applicationCtx, cfg.QueryServiceSecret)
		if err != nil {
			return bs, err
		}
	}
	bs.QueryAdapter = queryclient.NewAdapter(cfg.QueryServiceURL, queryKey, cfg.QueryTimeout)

	return bs, nil
}

// Close releases every client that was created.
func (bs *Bootstrap) Close() error {
	var errList []error
	if bs.Firestore != nil {
		errList = append(errList, bs.Firestore.Close())
	}
	if bs.Secrets != nil {
		errList = append(errList, bs.Secrets.Close())
	}
	return errors.Join(errList...)
}
