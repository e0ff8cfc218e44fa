package exportservice

import (
	"errors"
	"testing"

	osvmodels "github.com/RobsonDevCode/osvdesk/internal/clients/models/osv"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileName(t *testing.T) {
	assert.Equal(t, "GHSA-jfh8-c2jp-5v3q.json", FileName(osvmodels.Vulnerability{ID: "GHSA-jfh8-c2jp-5v3q"}))
	assert.Equal(t, "osv-entry.json", FileName(osvmodels.Vulnerability{}))
}

func TestMarshal(t *testing.T) {
	data, err := Marshal(osvmodels.Vulnerability{
		ID:         "OSV-1",
		References: []osvmodels.Reference{{Type: "WEB", Url: "https://example.com/?a=1&b=2"}},
	})
	require.NoError(t, err)

	want := `{
  "id": "OSV-1",
  "references": [
    {
      "type": "WEB",
      "url": "https://example.com/?a=1&b=2"
    }
  ]
}`
	assert.Equal(t, want, string(data))
}

func TestExporter_Save(t *testing.T) {
	fs := afero.NewMemMapFs()
	exporter := NewExporter(fs, "./export")

	path, err := exporter.Save(osvmodels.Vulnerability{ID: "OSV-1", Summary: "test"})
	require.NoError(t, err)
	assert.Equal(t, "export/OSV-1.json", path)

	data, err := afero.ReadFile(fs, path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"OSV-1","summary":"test"}`, string(data))

	path, err = exporter.Save(osvmodels.Vulnerability{})
	require.NoError(t, err)
	assert.Equal(t, "export/osv-entry.json", path)
}

func TestExporter_SaveKeepsIdsInsideDirectory(t *testing.T) {
	fs := afero.NewMemMapFs()
	exporter := NewExporter(fs, "export")

	path, err := exporter.Save(osvmodels.Vulnerability{ID: "../../etc/passwd"})
	require.NoError(t, err)
	assert.Equal(t, "export/passwd.json", path)
}

func TestExporter_CopyToClipboard(t *testing.T) {
	exporter := NewExporter(afero.NewMemMapFs(), "export")

	var copied string
	exporter.clipboard = func(text string) error {
		copied = text
		return nil
	}
	require.NoError(t, exporter.CopyToClipboard(osvmodels.Vulnerability{ID: "OSV-1"}))
	assert.Equal(t, "{\n  \"id\": \"OSV-1\"\n}", copied)

	exporter.clipboard = func(string) error { return errors.New("no clipboard utility") }
	err := exporter.CopyToClipboard(osvmodels.Vulnerability{ID: "OSV-1"})
	assert.EqualError(t, err, "failed to copy to clipboard: no clipboard utility")
}
