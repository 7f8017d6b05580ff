package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "research-assistant/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`
}

// SearchConfig holds settings for the paper search collaborator.
type SearchConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// MaxResults is the number of papers fetched per query (default 5).
	MaxResults int `json:"max_results" yaml:"max_results" mapstructure:"max_results"`
}

// AIConfig holds settings for the language model collaborator.
type AIConfig struct {
	// Model is the model identifier served by the endpoint.
	Model string `json:"model" yaml:"model" mapstructure:"model"`

	// BaseURL is the OpenAI-compatible endpoint (default Groq).
	BaseURL string `json:"base_url" yaml:"base_url" mapstructure:"base_url"`

	// APIKey is the authentication key for the endpoint.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty" mapstructure:"api_key"`

	// Timeout bounds a single generation call.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// MaxRetries is the number of client retries on transient API errors.
	MaxRetries int `json:"max_retries" yaml:"max_retries" mapstructure:"max_retries"`
}

// ReportConfig holds settings for document assembly and rendering.
type ReportConfig struct {
	// OutputDir receives the report PDF, survey PDF, and survey CSV.
	OutputDir string `json:"output_dir" yaml:"output_dir" mapstructure:"output_dir"`

	// DownloadDir receives downloaded PDFs and extracted diagram images.
	DownloadDir string `json:"download_dir" yaml:"download_dir" mapstructure:"download_dir"`

	// Diagrams enables PDF download and diagram extraction per paper.
	Diagrams bool `json:"diagrams" yaml:"diagrams" mapstructure:"diagrams"`

	// WarnOrphans logs a warning for every diagram or table that never
	// found a matching section heading.
	WarnOrphans bool `json:"warn_orphans" yaml:"warn_orphans" mapstructure:"warn_orphans"`
}

// StoreConfig holds settings for the SQLite store.
type StoreConfig struct {
	// Path is the database file (default "data/research.db").
	Path string `json:"path" yaml:"path" mapstructure:"path"`
}

// ServerConfig holds settings for the web form.
type ServerConfig struct {
	Addr string `json:"addr" yaml:"addr" mapstructure:"addr"`
}

// LogConfig selects the logger flavour: "development" or "production".
type LogConfig struct {
	Mode string `json:"mode" yaml:"mode" mapstructure:"mode"`

	// Level overrides the mode's minimum level (debug, info, warn, error).
	Level string `json:"level" yaml:"level" mapstructure:"level"`
}

// Config groups all settings. It is populated from research-assistant.yaml,
// RESEARCH_ASSISTANT_* environment variables, and flags.
type Config struct {
	Search SearchConfig `json:"search" yaml:"search" mapstructure:"search"`
	AI     AIConfig     `json:"ai" yaml:"ai" mapstructure:"ai"`
	Report ReportConfig `json:"report" yaml:"report" mapstructure:"report"`
	Store  StoreConfig  `json:"store" yaml:"store" mapstructure:"store"`
	Server ServerConfig `json:"server" yaml:"server" mapstructure:"server"`
	Log    LogConfig    `json:"log" yaml:"log" mapstructure:"log"`
}
