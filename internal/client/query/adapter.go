package queryclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/GregMSThompson/widget-builder/internal/dto"
	"github.com/GregMSThompson/widget-builder/internal/errs"
	"github.com/GregMSThompson/widget-builder/internal/widget"
)

const serviceName = "query"

// maxErrorBody caps how much of a failed response is kept for the error.
const maxErrorBody = 512

type Adapter struct {
	client  *http.Client
	baseURL string
	apiKey  string
	now     func() time.Time
}

func NewAdapter(baseURL, apiKey string, timeout time.Duration) *Adapter {
	return &Adapter{
		client:  &http.Client{Timeout: timeout},
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		now:     time.Now,
	}
}

// Execute asks the aggregation service for the payload of cfg. Failures
// come back as *errs.ExternalServiceError; 5xx responses, 429 and timeouts
// are marked transient.
func (a *Adapter) Execute(ctx context.Context, cfg widget.Config) (widget.Payload, error) {
	from, to, err := cfg.DateRange.Resolve(a.now())
	if err != nil {
		return nil, errs.NewValidationError(err.Error())
	}

	body, err := json.Marshal(dto.QueryRequest{
		Config:   cfg,
		DateFrom: from,
		DateTo:   to,
		Timezone: a.now().Location().String(),
	})
	if err != nil {
		return nil, fmt.Errorf("encode query request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+"/query", bytes.NewReader(body))
	if err != nil {
		return nil, errs.NewExternalServiceError(serviceName, "failed to build request", false, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if a.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+a.apiKey)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, errs.NewExternalServiceError(serviceName, "request failed", isTimeout(err), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		transient := resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests
		return nil, errs.NewExternalServiceError(
			serviceName,
			fmt.Sprintf("unexpected status %d", resp.StatusCode),
			transient,
			fmt.Errorf("%s: %s", resp.Status, strings.TrimSpace(string(snippet))),
		)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errs.NewExternalServiceError(serviceName, "failed to read response", isTimeout(err), err)
	}
	payload, err := widget.DecodePayload(raw)
	if err != nil {
		return nil, errs.NewExternalServiceError(serviceName, "malformed payload", false, err)
	}
	return payload, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne interface{ Timeout() bool }
	return errors.As(err, &ne) && ne.Timeout()
}
