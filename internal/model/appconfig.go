package model

// AppConfig holds application-wide preferences shared by the CLI and preview tool.
type AppConfig struct {
	Geometry   Geometry   `json:"geometry"`
	SearchMode SearchMode `json:"search_mode"` // "curated" or "exhaustive"
	LogLevel   string     `json:"log_level"`   // "debug", "info", "warn", "error"

	// Application preferences
	RecentScenarioFiles []string `json:"recent_scenario_files"`
	Theme               string   `json:"theme"` // "light", "dark", "system"
}

// DefaultAppConfig returns an AppConfig populated with the built-in geometry.
func DefaultAppConfig() AppConfig {
	return AppConfig{
		Geometry:            DefaultGeometry(),
		SearchMode:          SearchCurated,
		LogLevel:            "info",
		RecentScenarioFiles: []string{},
		Theme:               "system",
	}
}

// AddRecentFile moves path to the front of the recent files list,
// keeping at most limit entries.
func (c *AppConfig) AddRecentFile(path string, limit int) {
	files := []string{path}
	for _, f := range c.RecentScenarioFiles {
		if f != path {
			files = append(files, f)
		}
	}
	if limit > 0 && len(files) > limit {
		files = files[:limit]
	}
	c.RecentScenarioFiles = files
}
