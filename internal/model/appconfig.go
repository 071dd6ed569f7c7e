package model

// AppConfig holds application-wide preferences and default settings.
type AppConfig struct {
	// Default catalog keys applied to new jobs
	DefaultMaterial  string `json:"default_material"`
	DefaultMachine   string `json:"default_machine"`
	DefaultPrecision string `json:"default_precision"`

	// Default nesting options and shop rates for new jobs
	DefaultOptions NestOptions `json:"default_options"`
	Rates          CostRates   `json:"rates"`

	// CatalogOverrides is the path of an optional catalog override file.
	CatalogOverrides string `json:"catalog_overrides,omitempty"`

	// Application preferences
	RecentJobs []string `json:"recent_jobs"`
}

// DefaultAppConfig returns an AppConfig populated with sensible defaults.
func DefaultAppConfig() AppConfig {
	return AppConfig{
		DefaultMaterial:  "plywood-3mm",
		DefaultMachine:   "co2-40w",
		DefaultPrecision: "standard",
		DefaultOptions:   DefaultNestOptions(),
		Rates:            DefaultCostRates(),
		RecentJobs:       []string{},
	}
}

// ApplyToOptions copies the configured defaults into a NestOptions struct,
// used when creating a new job so it inherits the user's saved defaults.
func (c AppConfig) ApplyToOptions(o *NestOptions) {
	*o = c.DefaultOptions
}

// AddRecentJob prepends a job path to the recent list, de-duplicating and
// keeping at most ten entries.
func (c *AppConfig) AddRecentJob(path string) {
	recent := []string{path}
	for _, p := range c.RecentJobs {
		if p != path {
			recent = append(recent, p)
		}
	}
	if len(recent) > 10 {
		recent = recent[:10]
	}
	c.RecentJobs = recent
}
