package configuration

// UsersSettings are the triage preferences saved by the setup command.
type UsersSettings struct {
	Profile      string   `json:"profile"`
	Columns      []string `json:"columns"`
	ProxyBaseUrl string   `json:"proxy_base_url"`
}

// Apply overlays saved preferences on the triage settings.
func (u UsersSettings) Apply(settings TriageSettings) TriageSettings {
	if u.Profile != "" {
		settings.Profile = u.Profile
	}
	if len(u.Columns) > 0 {
		settings.Columns = u.Columns
	}
	if u.ProxyBaseUrl != "" {
		settings.ProxyBaseUrl = u.ProxyBaseUrl
	}
	return settings
}
