package types

import "time"

// HTTPConfig holds shared HTTP settings used by commands that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "knowledge-tools/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// GatewayConfig holds settings for the knowledge-base API gateway.
type GatewayConfig struct {
	HTTPConfig `yaml:",inline"`

	// BaseURL is the root of the knowledge-base API (default
	// "http://rag-playground-nginx-1/v1").
	BaseURL string `json:"base_url" yaml:"base_url"`

	// PageSize is the page size used for paginated listings (default 100).
	PageSize int `json:"page_size" yaml:"page_size"`
}

// UploadConfig holds settings for the add command.
type UploadConfig struct {
	// DatasetName is the name of the dataset uploads go to (default "proceedings").
	DatasetName string `json:"dataset_name" yaml:"dataset_name"`

	// Extensions is the comma-separated list of accepted file suffixes
	// without leading dots (default "txt,md,pdf").
	Extensions string `json:"extensions" yaml:"extensions"`

	// DatabaseFile is the path of the uploaded-files ledger
	// (default "uploaded_files.txt").
	DatabaseFile string `json:"database_file" yaml:"database_file"`
}
