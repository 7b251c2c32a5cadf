package model

import "time"

// Config holds the complete pipeline configuration.
type Config struct {
	Extraction ExtractionConfig `yaml:"pdf_extraction"`
	Parser     ParserConfig     `yaml:"parser"`
	LLM        LLMConfig        `yaml:"llm"`
	Schema     SchemaConfig     `yaml:"schema"`
	Cache      CacheConfig      `yaml:"cache"`
	Output     OutputConfig     `yaml:"output"`
}

// ExtractionConfig controls the PDF extraction stage.
type ExtractionConfig struct {
	// PageStart/PageEnd bound extraction to a 1-based inclusive page range.
	// Zero values mean the whole document.
	PageStart int `yaml:"page_start"`
	PageEnd   int `yaml:"page_end"`
}

// ParserConfig controls section recognition during extraction.
type ParserConfig struct {
	// SectionHeaders is the ordered list of section-header names to recognize.
	SectionHeaders []string `yaml:"section_headers"`
	// AdmissionSection and AlternativesSection name the sections the parsers
	// segment. Matched case-insensitively by substring.
	AdmissionSection    string `yaml:"admission_section"`
	AlternativesSection string `yaml:"alternatives_section"`
}

// LLMConfig holds interpretation-service configuration.
type LLMConfig struct {
	// Provider name: "openai", "ollama", "" (disabled)
	Provider string `yaml:"provider"`
	// Model name (provider-specific)
	Model string `yaml:"model"`
	// APIKey for hosted providers
	APIKey string `yaml:"api_key,omitempty"`
	// BaseURL for custom endpoints (e.g. Ollama)
	BaseURL string `yaml:"base_url,omitempty"`
	// Temperature for completion requests
	Temperature float32 `yaml:"temperature"`
	// MaxTokens limits the response length
	MaxTokens int `yaml:"max_tokens"`
	// RetryAttempts bounds calls per criterion
	RetryAttempts int `yaml:"retry_attempts"`
	// RetryDelay is the base backoff; attempt n waits RetryDelay * 2^n
	RetryDelay time.Duration `yaml:"retry_delay"`
	// Timeout bounds a single completion call. Never zero at runtime:
	// unbounded waits are not allowed.
	Timeout time.Duration `yaml:"timeout"`
	// Workers bounds concurrent interpretation fan-out (1 = sequential)
	Workers int `yaml:"workers"`
	// RequestsPerSecond/Burst throttle external calls across workers
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	Burst             int     `yaml:"burst"`
}

// SchemaConfig controls schema assembly.
type SchemaConfig struct {
	IncludeAlternatives bool `yaml:"include_alternatives"`
}

// CacheConfig controls the interpretation response cache.
type CacheConfig struct {
	Enabled bool `yaml:"enabled"`
	// Dir enables the disk layer when non-empty
	Dir string        `yaml:"dir,omitempty"`
	TTL time.Duration `yaml:"ttl"`
}

// OutputConfig controls export.
type OutputConfig struct {
	Dir string `yaml:"dir"`
	// WriteSummary also writes the plain-text summary next to the JSON
	WriteSummary bool `yaml:"write_summary"`
	Verbose      bool `yaml:"verbose"`
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Parser: ParserConfig{
			SectionHeaders: []string{
				"Clinical Indications for Admission to Inpatient Care",
				"Alternatives to Admission",
				"Optimal Recovery Course",
				"Extended Stay",
				"Discharge Planning",
			},
			AdmissionSection:    "Clinical Indications for Admission to Inpatient Care",
			AlternativesSection: "Alternatives to Admission",
		},
		LLM: LLMConfig{
			Provider:          "",
			Model:             "",
			Temperature:       0.1,
			MaxTokens:         8000,
			RetryAttempts:     3,
			RetryDelay:        2 * time.Second,
			Timeout:           120 * time.Second,
			Workers:           1,
			RequestsPerSecond: 2,
			Burst:             4,
		},
		Schema: SchemaConfig{
			IncludeAlternatives: true,
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     24 * time.Hour,
		},
		Output: OutputConfig{
			Dir:          "./schemas",
			WriteSummary: true,
		},
	}
}
