package triageservice_test

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"

	"github.com/RobsonDevCode/osvdesk/internal/clients"
	triagesources "github.com/RobsonDevCode/osvdesk/internal/constants/triageSources"
	triageservice "github.com/RobsonDevCode/osvdesk/internal/services/triageService"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeTriageClient struct {
	mu        sync.Mutex
	responses map[string]func() ([]byte, error)
	requested []string
	release   chan struct{}
}

func (c *fakeTriageClient) Fetch(ctx context.Context, url string) ([]byte, error) {
	c.mu.Lock()
	c.requested = append(c.requested, url)
	respond, ok := c.responses[url]
	c.mu.Unlock()

	if c.release != nil {
		<-c.release
	}
	if !ok {
		return nil, clients.StatusError{StatusCode: http.StatusNotFound, StatusText: "Not Found"}
	}
	return respond()
}

func newFetcher(t *testing.T, client clients.TriageClientService, limit int) *triageservice.Fetcher {
	t.Helper()
	registry, err := triageservice.NewRegistry(settingsFor(triagesources.ProfileSourceProxy))
	require.NoError(t, err)
	return triageservice.NewFetcher(registry, client, limit, zap.NewNop())
}

func TestFetcher_LoadAll(t *testing.T) {
	client := &fakeTriageClient{responses: map[string]func() ([]byte, error){
		"https://api.osv.dev/v1/vulns/CVE-2021-44228": func() ([]byte, error) {
			return []byte(`{"id":"CVE-2021-44228","withdrawn":null}`), nil
		},
		"http://localhost:8080/triage/proxy?id=CVE-2021-44228&source=cve": func() ([]byte, error) {
			return nil, clients.StatusError{StatusCode: http.StatusInternalServerError, StatusText: "Internal Server Error"}
		},
		"https://api.test.osv.dev/v1/vulns/CVE-2021-44228": func() ([]byte, error) {
			return nil, errors.New("connection refused")
		},
		"http://localhost:8080/triage/proxy?id=CVE-2021-44228&source=prod-osv": func() ([]byte, error) {
			return []byte(`<html>`), nil
		},
	}}
	fetcher := newFetcher(t, client, 0)

	columns := []string{
		triagesources.ApiProd,
		triagesources.CveOrg,
		triagesources.ApiTest,
		triagesources.ProdNvd,
		triagesources.ProdOsv,
		"",
		"nope",
	}
	results := fetcher.LoadAll(context.Background(), "  CVE-2021-44228 ", columns)
	require.Len(t, results, len(columns))

	assert.Equal(t, triageservice.StatusOK, results[0].Status)
	assert.Equal(t, "{\n  \"id\": \"CVE-2021-44228\",\n  \"withdrawn\": null\n}", results[0].Text)
	assert.Contains(t, results[0].HTML, `<span class="json-null">null</span>`)
	assert.JSONEq(t, `{"id":"CVE-2021-44228","withdrawn":null}`, string(results[0].Data))

	assert.Equal(t, triageservice.StatusError, results[1].Status)
	assert.Equal(t, "Error: Internal Server Error", results[1].Text)

	assert.Equal(t, "connection refused", results[2].Text)

	assert.Equal(t, triageservice.StatusNotFound, results[3].Status)
	assert.Equal(t, "Not Found", results[3].Text)

	assert.Equal(t, "Invalid JSON response", results[4].Text)

	assert.Equal(t, triageservice.StatusPrompt, results[5].Status)
	assert.Equal(t, "Select a source to view content", results[5].Text)

	assert.Equal(t, "Invalid configuration", results[6].Text)

	for i, result := range results {
		assert.Equal(t, i, result.Index)
		assert.Equal(t, columns[i], result.Column)
	}
}

func TestFetcher_EmptyId(t *testing.T) {
	client := &fakeTriageClient{}
	fetcher := newFetcher(t, client, 0)

	results := fetcher.LoadAll(context.Background(), "   ", []string{triagesources.ApiProd, ""})

	assert.Equal(t, "Please enter a Vulnerability ID", results[0].Text)
	assert.Equal(t, "Select a source to view content", results[1].Text)
	assert.Empty(t, client.requested)
}

func TestFetcher_LoadStreamsResultsAsTheySettle(t *testing.T) {
	client := &fakeTriageClient{release: make(chan struct{})}
	fetcher := newFetcher(t, client, 0)

	results := fetcher.Load(context.Background(), "CVE-2021-44228", []string{"", triagesources.ApiProd})

	// the prompt column does not wait for the pending fetch
	first := <-results
	assert.Equal(t, "", first.Column)

	close(client.release)
	second := <-results
	assert.Equal(t, triagesources.ApiProd, second.Column)

	_, open := <-results
	assert.False(t, open)
}

func TestFetcher_Limit(t *testing.T) {
	client := &fakeTriageClient{}
	fetcher := newFetcher(t, client, 1)

	columns := []string{triagesources.ApiProd, triagesources.ApiTest, triagesources.ProdOsv}
	results := fetcher.LoadAll(context.Background(), "CVE-2021-44228", columns)

	assert.Len(t, results, 3)
	assert.Len(t, client.requested, 3)
}
