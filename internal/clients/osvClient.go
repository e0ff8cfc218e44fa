package clients

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	osvmodels "github.com/RobsonDevCode/osvdesk/internal/clients/models/osv"
	"github.com/RobsonDevCode/osvdesk/internal/configuration"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"
	"golang.org/x/xerrors"
)

type OsvClientService interface {
	GetVulnerability(ctx context.Context, id string) (osvmodels.Vulnerability, error)
}

type OsvClient struct {
	client  *http.Client
	cb      *gobreaker.CircuitBreaker
	baseUrl *url.URL
	logger  *zap.Logger
}

func NewOsvClient(config *configuration.Config, logger *zap.Logger) (*OsvClient, error) {
	baseUrl, err := url.Parse(config.OsvClientSettings.BaseUrl)
	if err != nil {
		return nil, xerrors.Errorf("error parsing base url to a url type, %w", err)
	}

	return &OsvClient{
		client:  newHttpClient(1 * time.Minute),
		cb:      newCircuitBreaker("osv-client", logger),
		baseUrl: baseUrl,
		logger:  logger,
	}, nil
}

// GetVulnerability fetches a published record from /v1/vulns/{id}.
func (c *OsvClient) GetVulnerability(ctx context.Context, id string) (osvmodels.Vulnerability, error) {
	endpoint := c.baseUrl.JoinPath("v1", "vulns").String() + "/" + url.PathEscape(id)

	cbResult, err := c.cb.Execute(func() (interface{}, error) {
		request, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
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

		var record osvmodels.Vulnerability
		if err := json.NewDecoder(response.Body).Decode(&record); err != nil {
			return nil, xerrors.Errorf("failed to decode vulnerability %s: %w", id, err)
		}
		return record, nil
	})
	if err != nil {
		c.logger.Debug("osv lookup failed", zap.String("id", id), zap.Error(err))
		return osvmodels.Vulnerability{}, err
	}

	record, ok := cbResult.(osvmodels.Vulnerability)
	if !ok {
		return osvmodels.Vulnerability{}, xerrors.New("unexpected response type when converting response")
	}

	return record, nil
}
