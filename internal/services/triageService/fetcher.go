package triageservice

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/RobsonDevCode/osvdesk/internal/clients"
	"github.com/RobsonDevCode/osvdesk/internal/formatting"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/xerrors"
)

const (
	SelectSourceText = "Select a source to view content"
	EnterIdText      = "Please enter a Vulnerability ID"
	NotFoundText     = "Not Found"
)

type Status string

const (
	StatusOK       Status = "ok"
	StatusPrompt   Status = "prompt"
	StatusNotFound Status = "not_found"
	StatusError    Status = "error"
)

// ColumnResult is what one column shows once its fetch settles. Text always
// holds something displayable; HTML and Terminal are only set on success.
type ColumnResult struct {
	Index    int             `json:"index"`
	Column   string          `json:"column"`
	Url      string          `json:"url,omitempty"`
	Status   Status          `json:"status"`
	Text     string          `json:"text"`
	HTML     string          `json:"html,omitempty"`
	Terminal string          `json:"-"`
	Data     json.RawMessage `json:"data,omitempty"`
}

type FetcherService interface {
	Load(ctx context.Context, id string, columns []string) <-chan ColumnResult
	LoadAll(ctx context.Context, id string, columns []string) []ColumnResult
}

type Fetcher struct {
	registry RegistryService
	client   clients.TriageClientService
	limit    int
	logger   *zap.Logger
}

// NewFetcher returns a fetcher that runs at most limit columns at once; zero
// means no limit.
func NewFetcher(registry RegistryService, client clients.TriageClientService, limit int, logger *zap.Logger) *Fetcher {
	return &Fetcher{
		registry: registry,
		client:   client,
		limit:    limit,
		logger:   logger,
	}
}

// Load fetches every column independently and emits each result as soon as
// it is ready. The channel is closed once every column has settled. A failing
// column never affects the others.
func (f *Fetcher) Load(ctx context.Context, id string, columns []string) <-chan ColumnResult {
	results := make(chan ColumnResult, len(columns))
	id = strings.TrimSpace(id)

	go func() {
		defer close(results)

		var g errgroup.Group
		if f.limit > 0 {
			g.SetLimit(f.limit)
		}

		for i, column := range columns {
			i, column := i, column
			g.Go(func() error {
				results <- f.loadColumn(ctx, i, column, id)
				return nil
			})
		}

		_ = g.Wait()
	}()

	return results
}

// LoadAll waits for every column and returns the results in column order.
func (f *Fetcher) LoadAll(ctx context.Context, id string, columns []string) []ColumnResult {
	ordered := make([]ColumnResult, len(columns))
	for result := range f.Load(ctx, id, columns) {
		ordered[result.Index] = result
	}
	return ordered
}

func (f *Fetcher) loadColumn(ctx context.Context, index int, column string, id string) ColumnResult {
	result := ColumnResult{Index: index, Column: column}

	if column == "" {
		result.Status = StatusPrompt
		result.Text = SelectSourceText
		return result
	}
	if id == "" {
		result.Status = StatusPrompt
		result.Text = EnterIdText
		return result
	}

	request, err := f.registry.Resolve(column, id)
	if err != nil {
		return f.failed(result, err)
	}
	result.Url = request.Url

	body, err := f.client.Fetch(ctx, request.Url)
	if err != nil {
		return f.failed(result, err)
	}

	if !json.Valid(body) {
		return f.failed(result, xerrors.New("Invalid JSON response"))
	}

	text, err := formatting.Pretty(json.RawMessage(body))
	if err != nil {
		return f.failed(result, err)
	}
	highlighted, err := formatting.Highlight(text)
	if err != nil {
		return f.failed(result, err)
	}
	terminal, err := formatting.HighlightTerminal(text)
	if err != nil {
		return f.failed(result, err)
	}

	result.Status = StatusOK
	result.Text = text
	result.HTML = highlighted
	result.Terminal = terminal
	result.Data = json.RawMessage(body)
	return result
}

func (f *Fetcher) failed(result ColumnResult, err error) ColumnResult {
	result.Status, result.Text = describe(err)
	f.logger.Debug("triage column failed",
		zap.String("column", result.Column),
		zap.String("url", result.Url),
		zap.Error(err))
	return result
}

func describe(err error) (Status, string) {
	var statusErr clients.StatusError
	if xerrors.As(err, &statusErr) {
		if statusErr.NotFound() {
			return StatusNotFound, NotFoundText
		}
		return StatusError, "Error: " + statusErr.StatusText
	}
	return StatusError, err.Error()
}
