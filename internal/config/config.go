// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults; Load layers file and env.
// - External errors must be wrapped via this package's error helpers.
package config

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// DataDir points at the directory holding venues.json,
	// current_requests.json and event_history.json.
	DataDir string `koanf:"data_dir"`

	// RetrievalTopK bounds how many similar historical events a query
	// retrieves before ranking.
	RetrievalTopK int `koanf:"retrieval_top_k"`

	// DefaultTopN is used when a recommend call omits top_n.
	DefaultTopN int `koanf:"default_top_n"`

	// MaxRecommendations caps the top_n a caller may request.
	MaxRecommendations int `koanf:"max_recommendations"`

	// EmptyRequirementsFullCredit flips the empty-requirement-set policy of
	// the amenity and special agents: false keeps the observed behavior
	// (empty set scores 0), true treats "nothing required" as satisfied.
	EmptyRequirementsFullCredit bool `koanf:"empty_requirements_full_credit"`

	// AgentWeights maps agent names to their share of the composite score.
	AgentWeights map[string]float64 `koanf:"agent_weights"`

	// Hybrid blend weights across agent composite, similarity and feedback.
	AgentBlendWeight      float64 `koanf:"agent_blend_weight"`
	SimilarityBlendWeight float64 `koanf:"similarity_blend_weight"`
	FeedbackBlendWeight   float64 `koanf:"feedback_blend_weight"`

	// ExplainerEnabled turns the natural-language explanation collaborator
	// on. When off, recommendations carry the placeholder text.
	ExplainerEnabled bool `koanf:"explainer_enabled"`

	// OllamaURL and OllamaModel configure the explanation collaborator.
	OllamaURL   string `koanf:"ollama_url"`
	OllamaModel string `koanf:"ollama_model"`

	// ExplainerTimeoutMS bounds each explanation call.
	ExplainerTimeoutMS int `koanf:"explainer_timeout_ms"`
}

// New creates a Config with the service defaults.
func New() *Config {
	return &Config{
		LogLevel:           "info",
		Addr:               ":8080",
		DataDir:            "./data",
		RetrievalTopK:      6,
		DefaultTopN:        3,
		MaxRecommendations: 10,
		AgentWeights: map[string]float64{
			"capacity": 0.25,
			"amenity":  0.20,
			"location": 0.15,
			"cost":     0.25,
			"special":  0.15,
		},
		AgentBlendWeight:      0.45,
		SimilarityBlendWeight: 0.45,
		FeedbackBlendWeight:   0.10,
		ExplainerEnabled:      false,
		OllamaURL:             "http://localhost:11434",
		OllamaModel:           "phi3:mini",
		ExplainerTimeoutMS:    5000,
	}
}
