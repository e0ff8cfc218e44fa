package exportservice

import (
	"bytes"
	"encoding/json"
	"path/filepath"

	osvmodels "github.com/RobsonDevCode/osvdesk/internal/clients/models/osv"
	"github.com/atotto/clipboard"
	"github.com/spf13/afero"
	"golang.org/x/xerrors"
)

const defaultFileName = "osv-entry"

type ExportService interface {
	Save(record osvmodels.Vulnerability) (string, error)
	CopyToClipboard(record osvmodels.Vulnerability) error
}

type Exporter struct {
	fs        afero.Fs
	directory string
	clipboard func(string) error
}

func NewExporter(fs afero.Fs, directory string) *Exporter {
	return &Exporter{
		fs:        fs,
		directory: directory,
		clipboard: clipboard.WriteAll,
	}
}

// FileName is the download name for a record, falling back to a generic one
// when the record has no id yet.
func FileName(record osvmodels.Vulnerability) string {
	name := record.ID
	if name == "" {
		name = defaultFileName
	}
	return name + ".json"
}

// Marshal renders the record the way it is exported: two-space indentation
// and no HTML escaping.
func Marshal(record osvmodels.Vulnerability) ([]byte, error) {
	var buffer bytes.Buffer
	encoder := json.NewEncoder(&buffer)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(record); err != nil {
		return nil, xerrors.Errorf("failed to marshal record: %w", err)
	}
	return bytes.TrimSuffix(buffer.Bytes(), []byte("\n")), nil
}

// Save writes the record into the export directory and returns its path.
func (e *Exporter) Save(record osvmodels.Vulnerability) (string, error) {
	data, err := Marshal(record)
	if err != nil {
		return "", err
	}

	if err := e.fs.MkdirAll(e.directory, 0755); err != nil {
		return "", xerrors.Errorf("error creating directory %s, %w", e.directory, err)
	}

	path := filepath.Join(e.directory, filepath.Base(FileName(record)))
	if err := afero.WriteFile(e.fs, path, data, 0644); err != nil {
		return "", xerrors.Errorf("failed to save record to %s, %w", path, err)
	}

	return path, nil
}

func (e *Exporter) CopyToClipboard(record osvmodels.Vulnerability) error {
	data, err := Marshal(record)
	if err != nil {
		return err
	}

	if err := e.clipboard(string(data)); err != nil {
		return xerrors.Errorf("failed to copy to clipboard: %w", err)
	}
	return nil
}
