package config

type LlmConfig struct {
	ApiKey  string `json:"api_key" yaml:"api_key"`
	BaseURL string `json:"base_url" yaml:"base_url"`
	Model   string `json:"model" yaml:"model"`
}

func ProvideLlmConfig(cfg *Config) *LlmConfig {
	return cfg.Llm
}
