package previewservice

import (
	"context"

	"github.com/RobsonDevCode/osvdesk/internal/clients"
	osvmodels "github.com/RobsonDevCode/osvdesk/internal/clients/models/osv"
	"golang.org/x/xerrors"
)

const LoadingText = "Loading preview..."

type PreviewService interface {
	Render(ctx context.Context, record osvmodels.Vulnerability) Pane
}

// Pane is what the preview area displays. Ok is false when Content is an
// error message rather than a rendered fragment.
type Pane struct {
	Content string
	Ok      bool
}

type Preview struct {
	client clients.PreviewClientService
}

func NewPreview(client clients.PreviewClientService) *Preview {
	return &Preview{client: client}
}

// Render asks the preview endpoint to render record. Failures become pane
// text and are never returned as errors.
func (p *Preview) Render(ctx context.Context, record osvmodels.Vulnerability) Pane {
	html, err := p.client.RenderPreview(ctx, record)
	if err == nil {
		return Pane{Content: html, Ok: true}
	}

	var statusErr clients.StatusError
	if xerrors.As(err, &statusErr) {
		return Pane{Content: "Error rendering preview: " + statusErr.Body}
	}
	return Pane{Content: "Error: " + err.Error()}
}
