package setupservice

import (
	"encoding/json"
	"net/url"
	"os"
	"path/filepath"
	"slices"

	"github.com/RobsonDevCode/osvdesk/internal/configuration"
	triagesources "github.com/RobsonDevCode/osvdesk/internal/constants/triageSources"
	"golang.org/x/xerrors"
)

const FilePath = "configuration/user_setting.json"

// CreateSetupFile validates and saves the user's triage preferences.
func CreateSetupFile(path string, userSettings configuration.UsersSettings, knownSources []string) error {
	if userSettings.Profile != "" && !slices.Contains(triagesources.Profiles, userSettings.Profile) {
		return xerrors.Errorf("unknown profile %q, expected one of %v", userSettings.Profile, triagesources.Profiles)
	}

	for _, column := range userSettings.Columns {
		if !slices.Contains(knownSources, column) {
			return xerrors.Errorf("unknown source %q", column)
		}
	}

	if userSettings.ProxyBaseUrl != "" {
		parsedUrl, err := url.Parse(userSettings.ProxyBaseUrl)
		if err != nil || parsedUrl.Scheme == "" || parsedUrl.Host == "" {
			return xerrors.Errorf("\nurl seems to be in an incorrect format: %s", userSettings.ProxyBaseUrl)
		}
	}

	jsonData, err := json.MarshalIndent(userSettings, "", "  ")
	if err != nil {
		return xerrors.Errorf("error marsheling json, %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return xerrors.Errorf("error creating directory for %s, %w", path, err)
	}
	if err := os.WriteFile(path, jsonData, 0644); err != nil {
		return xerrors.Errorf("error writing file at %s, %w", path, err)
	}

	return nil
}

// GetUserSettings reads saved preferences. A missing file returns nil
// settings and no error.
func GetUserSettings(path string) (*configuration.UsersSettings, error) {
	jsonData, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, xerrors.Errorf("cannot read user settings: %w", err)
	}

	var userSettings configuration.UsersSettings
	if err := json.Unmarshal(jsonData, &userSettings); err != nil {
		return nil, xerrors.Errorf("error unmarsheling user settings %w", err)
	}

	return &userSettings, nil
}
