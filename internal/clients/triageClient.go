package clients

import (
	"context"
	"io"
	"net/http"

	"github.com/RobsonDevCode/osvdesk/internal/configuration"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"
	"golang.org/x/xerrors"
)

// TriageClientService fetches raw JSON documents from triage sources and
// proxy upstreams.
type TriageClientService interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

type TriageClient struct {
	client *http.Client
	cb     *gobreaker.CircuitBreaker
}

func NewTriageClient(config *configuration.Config, logger *zap.Logger) *TriageClient {
	return &TriageClient{
		client: newHttpClient(config.TriageSettings.Timeout()),
		cb:     newCircuitBreaker("triage-client", logger),
	}
}

func (c *TriageClient) Fetch(ctx context.Context, url string) ([]byte, error) {
	cbResult, err := c.cb.Execute(func() (interface{}, error) {
		request, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, xerrors.Errorf("failed to create http request: %w", err)
		}
		request.Header.Set("Accept", "application/json")

		response, err := c.client.Do(request)
		if err != nil {
			return nil, xerrors.Errorf("client response error: %w", err)
		}
		defer response.Body.Close()

		if !isSuccessStatus(response.StatusCode) {
			return nil, newStatusError(response)
		}

		body, err := io.ReadAll(response.Body)
		if err != nil {
			return nil, xerrors.Errorf("failed to read response body: %w", err)
		}
		return body, nil
	})
	if err != nil {
		return nil, err
	}

	return cbResult.([]byte), nil
}
