package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	osvmodels "github.com/RobsonDevCode/osvdesk/internal/clients/models/osv"
	exportservice "github.com/RobsonDevCode/osvdesk/internal/services/exportService"
	formbuilderservice "github.com/RobsonDevCode/osvdesk/internal/services/formBuilderService"
	formserializerservice "github.com/RobsonDevCode/osvdesk/internal/services/formSerializerService"
	remoteloaderservice "github.com/RobsonDevCode/osvdesk/internal/services/remoteLoaderService"
	triageservice "github.com/RobsonDevCode/osvdesk/internal/services/triageService"
	validatorservice "github.com/RobsonDevCode/osvdesk/internal/services/validatorService"
	"go.uber.org/zap"
	"golang.org/x/xerrors"
)

const maxBodyBytes = 1 << 20

type generateResponse struct {
	Record       osvmodels.Vulnerability `json:"record"`
	Messages     []string                `json:"messages"`
	MessagesHTML string                  `json:"messages_html"`
}

type loadResponse struct {
	Record   osvmodels.Vulnerability `json:"record"`
	Messages []string                `json:"messages"`
}

type triageResponse struct {
	ID      string                       `json:"id"`
	Results []triageservice.ColumnResult `json:"results"`
}

func (s *Server) handleRenderPreview(w http.ResponseWriter, r *http.Request) {
	var record osvmodels.Vulnerability
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&record); err != nil {
		http.Error(w, "Invalid record: "+err.Error(), http.StatusBadRequest)
		return
	}

	fragment, err := s.services.Renderer.Render(record)
	if err != nil {
		s.logger.Error("failed to render preview", zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(fragment))
}

// serializeForm turns a posted builder form into a record.
func (s *Server) serializeForm(w http.ResponseWriter, r *http.Request) (osvmodels.Vulnerability, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid form")
		return osvmodels.Vulnerability{}, false
	}

	return formserializerservice.Serialize(formserializerservice.ParseFormValues(r.PostForm), s.now()), true
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	record, ok := s.serializeForm(w, r)
	if !ok {
		return
	}

	messages := validatorservice.Validate(record)
	writeJSON(w, http.StatusOK, generateResponse{
		Record:       record,
		Messages:     nonNil(messages),
		MessagesHTML: validatorservice.RenderHTML(messages),
	})
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	record, ok := s.serializeForm(w, r)
	if !ok {
		return
	}

	data, err := exportservice.Marshal(record)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", exportservice.FileName(record)))
	_, _ = w.Write(data)
}

func (s *Server) handleLoad(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(r.URL.Query().Get("id"))
	if id == "" {
		writeError(w, http.StatusBadRequest, "Please enter a Vulnerability ID")
		return
	}

	form := formbuilderservice.NewForm(formbuilderservice.WithClock(s.now))
	if err := s.services.Loader.Load(r.Context(), id, form); err != nil {
		var alert *remoteloaderservice.AlertError
		if xerrors.As(err, &alert) && alert.NotFound {
			writeError(w, http.StatusNotFound, alert.Message)
			return
		}
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	record := form.Record()
	writeJSON(w, http.StatusOK, loadResponse{
		Record:   record,
		Messages: nonNil(validatorservice.Validate(record)),
	})
}

func (s *Server) handleTriage(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	id := strings.TrimSpace(query.Get("id"))

	columns := query["source"]
	if len(columns) == 0 {
		columns = s.columns
	}

	writeJSON(w, http.StatusOK, triageResponse{
		ID:      id,
		Results: s.services.Fetcher.LoadAll(r.Context(), id, columns),
	})
}

func nonNil(messages []string) []string {
	if messages == nil {
		return []string{}
	}
	return messages
}
