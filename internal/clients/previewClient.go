package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"time"

	osvmodels "github.com/RobsonDevCode/osvdesk/internal/clients/models/osv"
	"github.com/RobsonDevCode/osvdesk/internal/configuration"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"
	"golang.org/x/xerrors"
)

type PreviewClientService interface {
	RenderPreview(ctx context.Context, record osvmodels.Vulnerability) (string, error)
}

type PreviewClient struct {
	client  *http.Client
	cb      *gobreaker.CircuitBreaker
	baseUrl *url.URL
}

func NewPreviewClient(config *configuration.Config, logger *zap.Logger) (*PreviewClient, error) {
	baseUrl, err := url.Parse(config.PreviewClientSettings.BaseUrl)
	if err != nil {
		return nil, xerrors.Errorf("error parsing base url to a url type, %w", err)
	}

	return &PreviewClient{
		client:  newHttpClient(30 * time.Second),
		cb:      newCircuitBreaker("preview-client", logger),
		baseUrl: baseUrl,
	}, nil
}

// RenderPreview posts the record to /api/render_preview and returns the HTML
// fragment. A non-2xx answer comes back as a StatusError carrying the body.
func (c *PreviewClient) RenderPreview(ctx context.Context, record osvmodels.Vulnerability) (string, error) {
	payload, err := json.Marshal(record)
	if err != nil {
		return "", xerrors.Errorf("error marshalling preview request: %w", err)
	}
	endpoint := c.baseUrl.JoinPath("api", "render_preview").String()

	cbResult, err := c.cb.Execute(func() (interface{}, error) {
		request, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
		if err != nil {
			return nil, xerrors.Errorf("failed to create http request: %w", err)
		}
		request.Header.Set("Content-Type", "application/json")

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
			return nil, xerrors.Errorf("failed to read preview: %w", err)
		}
		return string(body), nil
	})
	if err != nil {
		return "", err
	}

	return cbResult.(string), nil
}
