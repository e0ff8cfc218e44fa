package setupservice_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/RobsonDevCode/osvdesk/internal/configuration"
	triagesources "github.com/RobsonDevCode/osvdesk/internal/constants/triageSources"
	setupservice "github.com/RobsonDevCode/osvdesk/internal/services/setupService"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateSetupFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "configuration", "user_setting.json")
	settings := configuration.UsersSettings{
		Profile:      triagesources.ProfileDirect,
		Columns:      []string{triagesources.CveOrg, triagesources.ApiProd},
		ProxyBaseUrl: "https://osv.example.com/",
	}

	require.NoError(t, setupservice.CreateSetupFile(path, settings, triagesources.Keys))

	saved, err := setupservice.GetUserSettings(path)
	require.NoError(t, err)
	assert.Equal(t, &settings, saved)
}

func TestCreateSetupFile_Rejects(t *testing.T) {
	tests := []struct {
		name     string
		settings configuration.UsersSettings
		want     string
	}{
		{"profile", configuration.UsersSettings{Profile: "legacy"}, `unknown profile "legacy"`},
		{"column", configuration.UsersSettings{Columns: []string{"ghsa"}}, `unknown source "ghsa"`},
		{"proxy url", configuration.UsersSettings{ProxyBaseUrl: "localhost"}, "incorrect format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "user_setting.json")
			err := setupservice.CreateSetupFile(path, tt.settings, triagesources.Keys)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)

			_, statErr := os.Stat(path)
			assert.True(t, os.IsNotExist(statErr))
		})
	}
}

func TestGetUserSettings_MissingFile(t *testing.T) {
	settings, err := setupservice.GetUserSettings(filepath.Join(t.TempDir(), "none.json"))
	require.NoError(t, err)
	assert.Nil(t, settings)
}
