// Package config loads the aemgen global configuration from file and
// environment.
package config

// Config holds the global CLI configuration.
type Config struct {
	// GroupID is the default Maven group identifier for new projects.
	GroupID string `mapstructure:"groupId"`

	// AemVersion is the default target platform version.
	AemVersion string `mapstructure:"aemVersion"`

	// JavaVersion is the default Java release for generated builds.
	JavaVersion string `mapstructure:"javaVersion"`

	// RepositoryURL is the artifact repository queried for version metadata.
	RepositoryURL string `mapstructure:"repositoryUrl"`

	// ShowBuildOutput streams Maven output instead of hiding it behind a
	// spinner.
	ShowBuildOutput bool `mapstructure:"showBuildOutput"`
}

// Defaults applied when neither file nor environment provides a value.
const (
	DefaultAemVersion  = "cloud"
	DefaultJavaVersion = "11"
)

// WithDefaults returns a copy with blank fields filled in.
func (c *Config) WithDefaults() *Config {
	out := *c
	if out.AemVersion == "" {
		out.AemVersion = DefaultAemVersion
	}
	if out.JavaVersion == "" {
		out.JavaVersion = DefaultJavaVersion
	}
	return &out
}
