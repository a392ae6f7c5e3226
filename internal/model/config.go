package model

import "time"

// Config carries every tunable for a run. The original implementation of
// this analysis kept locality and name overrides in process-wide tables;
// here they are explicit per-run configuration passed into constructors.
type Config struct {
	Classify  ClassifyConfig  `yaml:"classify" mapstructure:"classify"`
	Attribute AttributeConfig `yaml:"attribute" mapstructure:"attribute"`
	Names     NamesConfig     `yaml:"names" mapstructure:"names"`
	Cache     CacheConfig     `yaml:"cache" mapstructure:"cache"`
	LLM       LLMConfig       `yaml:"llm" mapstructure:"llm"`
	Output    OutputConfig    `yaml:"output" mapstructure:"output"`
}

// ClassifyConfig holds the weighted-signal model parameters. The defaults
// were tuned against several fiscal years of amendment books; treat them
// as a starting point, not ground truth.
type ClassifyConfig struct {
	BoilerplateWeight float64 `yaml:"boilerplate_weight" mapstructure:"boilerplate_weight"`
	GeographicWeight  float64 `yaml:"geographic_weight" mapstructure:"geographic_weight"`
	OrgWeight         float64 `yaml:"org_weight" mapstructure:"org_weight"`
	ProjectWeight     float64 `yaml:"project_weight" mapstructure:"project_weight"`
	AmountWeight      float64 `yaml:"amount_weight" mapstructure:"amount_weight"`
	RoutineWeight     float64 `yaml:"routine_weight" mapstructure:"routine_weight"`

	// Threshold is the decision boundary on the accumulated score.
	Threshold float64 `yaml:"threshold" mapstructure:"threshold"`

	// ExtraLocalities extends the built-in gazetteer for a run.
	ExtraLocalities []string `yaml:"extra_localities" mapstructure:"extra_localities"`
}

// AttributeConfig holds the two-tier matching thresholds. These were
// chosen empirically against a specific roster; validate against labeled
// data before reusing them elsewhere.
type AttributeConfig struct {
	FullNameThreshold float64 `yaml:"full_name_threshold" mapstructure:"full_name_threshold"`
	LastNameThreshold float64 `yaml:"last_name_threshold" mapstructure:"last_name_threshold"`
}

// NamesConfig extends the normalizer's built-in tables for a run.
// Overrides map an already-normalized string to its corrected form and
// are consulted after the algorithmic steps, exact match only.
type NamesConfig struct {
	ExtraNicknames map[string]string `yaml:"extra_nicknames" mapstructure:"extra_nicknames"`
	ExtraOverrides map[string]string `yaml:"extra_overrides" mapstructure:"extra_overrides"`
}

// CacheConfig selects the parsed-artifact cache backend. Parsed artifacts
// never expire; they are invalidated only by deleting the entry.
type CacheConfig struct {
	Enabled bool   `yaml:"enabled" mapstructure:"enabled"`
	Backend string `yaml:"backend" mapstructure:"backend"` // "disk", "sqlite", "layered"
	Dir     string `yaml:"dir" mapstructure:"dir"`
}

// LLMConfig enables the optional local-model assist for low-confidence
// classifications. Disabled by default; the deterministic classifier is
// always authoritative when the model is unavailable or less confident.
type LLMConfig struct {
	Enabled             bool          `yaml:"enabled" mapstructure:"enabled"`
	Model               string        `yaml:"model" mapstructure:"model"`
	BaseURL             string        `yaml:"base_url" mapstructure:"base_url"`
	APIKey              string        `yaml:"api_key" mapstructure:"api_key"`
	Timeout             time.Duration `yaml:"timeout" mapstructure:"timeout"`
	ConfidenceThreshold float64       `yaml:"confidence_threshold" mapstructure:"confidence_threshold"`
}

// OutputConfig controls report rendering.
type OutputConfig struct {
	Verbose  bool   `yaml:"verbose" mapstructure:"verbose"`
	JSONPath string `yaml:"json_path" mapstructure:"json_path"`
}

// DefaultConfig returns the configuration used when nothing is supplied.
func DefaultConfig() *Config {
	return &Config{
		Classify: ClassifyConfig{
			BoilerplateWeight: 1.5,
			GeographicWeight:  1.0,
			OrgWeight:         0.8,
			ProjectWeight:     0.7,
			AmountWeight:      0.3,
			RoutineWeight:     0.7,
			Threshold:         1.5,
		},
		Attribute: AttributeConfig{
			FullNameThreshold: 0.7,
			LastNameThreshold: 0.6,
		},
		Cache: CacheConfig{
			Enabled: true,
			Backend: "layered",
			Dir:     "data/cache",
		},
		LLM: LLMConfig{
			Enabled:             false,
			Model:               "qwen2.5:3b",
			BaseURL:             "http://localhost:11434/v1",
			Timeout:             30 * time.Second,
			ConfidenceThreshold: 0.7,
		},
		Output: OutputConfig{
			JSONPath: "out/earmarks.json",
		},
	}
}
