package remoteloaderservice

import (
	"context"
	"strings"

	"github.com/RobsonDevCode/osvdesk/internal/clients"
	osvmodels "github.com/RobsonDevCode/osvdesk/internal/clients/models/osv"
	"go.uber.org/zap"
	"golang.org/x/xerrors"
)

// AlertError is a failure meant to be shown to the user as a blocking alert.
// The form is left untouched when one is returned.
type AlertError struct {
	Message  string
	NotFound bool
	Err      error
}

func (e *AlertError) Error() string {
	return e.Message
}

func (e *AlertError) Unwrap() error {
	return e.Err
}

// Filler receives a loaded record.
type Filler interface {
	Fill(record osvmodels.Vulnerability)
}

type RemoteLoaderService interface {
	Load(ctx context.Context, id string, form Filler) error
}

type RemoteLoader struct {
	client clients.OsvClientService
	logger *zap.Logger
}

func NewRemoteLoader(client clients.OsvClientService, logger *zap.Logger) *RemoteLoader {
	return &RemoteLoader{
		client: client,
		logger: logger,
	}
}

// Load fetches id from the OSV API and fills the form with it. A blank id does
// nothing.
func (l *RemoteLoader) Load(ctx context.Context, id string, form Filler) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil
	}

	record, err := l.client.GetVulnerability(ctx, id)
	if err != nil {
		l.logger.Info("failed to load vulnerability", zap.String("id", id), zap.Error(err))

		var statusErr clients.StatusError
		if xerrors.As(err, &statusErr) {
			return &AlertError{
				Message:  "Vulnerability not found: " + id,
				NotFound: statusErr.NotFound(),
				Err:      err,
			}
		}
		return &AlertError{
			Message: "Error loading vulnerability: " + err.Error(),
			Err:     err,
		}
	}

	form.Fill(record)
	return nil
}
