package cmd

import (
	"bytes"
	"testing"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withRecordFs(t *testing.T, files map[string]string) {
	t.Helper()
	fs := afero.NewMemMapFs()
	for path, content := range files {
		require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0644))
	}

	previous := recordFs
	recordFs = fs
	t.Cleanup(func() {
		recordFs = previous
		strictFlag = false
	})
}

func TestRunValidate(t *testing.T) {
	complete := `{
  "id": "GHSA-jfh8-c2jp-5v3q",
  "summary": "Remote code injection in Log4j",
  "affected": [{"package": {"ecosystem": "Maven", "name": "org.apache.logging.log4j:log4j-core"}}]
}`

	t.Run("complete record", func(t *testing.T) {
		withRecordFs(t, map[string]string{"complete.json": complete})
		var out bytes.Buffer
		cmd := &cobra.Command{}
		cmd.SetOut(&out)

		require.NoError(t, runValidate(cmd, []string{"complete.json"}))
		assert.Contains(t, out.String(), "No suggestions, record looks complete!")
	})

	t.Run("strict with suggestions", func(t *testing.T) {
		withRecordFs(t, map[string]string{"bare.json": `{"id": "OSV-1"}`})
		strictFlag = true
		var out bytes.Buffer
		cmd := &cobra.Command{}
		cmd.SetOut(&out)

		err := runValidate(cmd, []string{"bare.json"})
		require.Error(t, err)
		assert.Equal(t, "2 suggestion(s) for bare.json", err.Error())
		assert.Contains(t, out.String(), "Summary is recommended.")
	})

	t.Run("missing file", func(t *testing.T) {
		withRecordFs(t, nil)

		err := runValidate(&cobra.Command{}, []string{"missing.json"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot read missing.json")
	})

	t.Run("not json", func(t *testing.T) {
		withRecordFs(t, map[string]string{"bad.json": "{"})

		err := runValidate(&cobra.Command{}, []string{"bad.json"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "bad.json is not a valid OSV record")
	})
}
