package config

import (
	"time"
)

// LLMConfig represents the configuration for the language-model judge
type LLMConfig struct {
	Provider string
	Enabled  bool
	Timeout  time.Duration
}

// BedrockConfig represents the configuration for Amazon Bedrock
type BedrockConfig struct {
	Region      string
	ModelID     string
	MaxTokens   int
	Temperature float32
	TopP        float32
	MaxBodySize int
}

// GeminiConfig represents the configuration for Google Gemini
type GeminiConfig struct {
	APIKey      string
	ModelName   string
	MaxTokens   int
	Temperature float32
	TopP        float32
	MaxBodySize int
}

// OpenAIConfig represents the configuration for OpenAI
type OpenAIConfig struct {
	APIKey      string
	BaseURL     string
	ModelName   string
	MaxTokens   int
	Temperature float32
	TopP        float32
	MaxBodySize int
}

// SpamConfig represents the configuration for the spam classifier
type SpamConfig struct {
	Enabled  bool
	Endpoint string
	Timeout  time.Duration
}

// URLScanConfig represents the configuration for the URL reputation service
type URLScanConfig struct {
	Enabled  bool
	Endpoint string
	APIKey   string
	Timeout  time.Duration
}

// ScoringConfig represents the score aggregation settings
type ScoringConfig struct {
	Mode string
}

// StoreConfig represents the verdict store settings
type StoreConfig struct {
	Type       string
	Enabled    bool
	MaxAge     time.Duration
	SQLitePath string
	MySQLDSN   string
	BadgerDir  string
}

// SMTPConfig represents the SMTP intake gateway settings
type SMTPConfig struct {
	Enabled         bool
	ListenAddress   string
	Domain          string
	RejectDangerous bool
	MaxMessageBytes int64
}

// ServerConfig represents the HTTP gateway settings
type ServerConfig struct {
	ListenAddress   string
	RequestTimeout  time.Duration
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	SMTP            SMTPConfig
}

// GetLLM returns the LLM configuration
func (c *Config) GetLLM() (LLMConfig, error) {
	timeout, err := c.GetDuration("llm.timeout")
	if err != nil {
		return LLMConfig{}, err
	}
	return LLMConfig{
		Provider: c.GetString("llm.provider"),
		Enabled:  c.GetBool("llm.enabled"),
		Timeout:  timeout,
	}, nil
}

// GetBedrock returns the Bedrock configuration
func (c *Config) GetBedrock() BedrockConfig {
	return BedrockConfig{
		Region:      c.GetString("bedrock.region"),
		ModelID:     c.GetString("bedrock.model_id"),
		MaxTokens:   c.GetInt("bedrock.max_tokens"),
		Temperature: float32(c.GetFloat64("bedrock.temperature")),
		TopP:        float32(c.GetFloat64("bedrock.top_p")),
		MaxBodySize: c.GetInt("bedrock.max_body_size"),
	}
}

// GetGemini returns the Gemini configuration
func (c *Config) GetGemini() GeminiConfig {
	return GeminiConfig{
		APIKey:      c.GetString("gemini.api_key"),
		ModelName:   c.GetString("gemini.model_name"),
		MaxTokens:   c.GetInt("gemini.max_tokens"),
		Temperature: float32(c.GetFloat64("gemini.temperature")),
		TopP:        float32(c.GetFloat64("gemini.top_p")),
		MaxBodySize: c.GetInt("gemini.max_body_size"),
	}
}

// GetOpenAI returns the OpenAI configuration
func (c *Config) GetOpenAI() OpenAIConfig {
	return OpenAIConfig{
		APIKey:      c.GetString("openai.api_key"),
		BaseURL:     c.GetString("openai.base_url"),
		ModelName:   c.GetString("openai.model_name"),
		MaxTokens:   c.GetInt("openai.max_tokens"),
		Temperature: float32(c.GetFloat64("openai.temperature")),
		TopP:        float32(c.GetFloat64("openai.top_p")),
		MaxBodySize: c.GetInt("openai.max_body_size"),
	}
}

// GetSpam returns the spam classifier configuration
func (c *Config) GetSpam() (SpamConfig, error) {
	timeout, err := c.GetDuration("spam.timeout")
	if err != nil {
		return SpamConfig{}, err
	}
	return SpamConfig{
		Enabled:  c.GetBool("spam.enabled"),
		Endpoint: c.GetString("spam.endpoint"),
		Timeout:  timeout,
	}, nil
}

// GetURLScan returns the URL reputation configuration
func (c *Config) GetURLScan() (URLScanConfig, error) {
	timeout, err := c.GetDuration("urlscan.timeout")
	if err != nil {
		return URLScanConfig{}, err
	}
	return URLScanConfig{
		Enabled:  c.GetBool("urlscan.enabled"),
		Endpoint: c.GetString("urlscan.endpoint"),
		APIKey:   c.GetString("urlscan.api_key"),
		Timeout:  timeout,
	}, nil
}

// GetScoring returns the scoring configuration
func (c *Config) GetScoring() ScoringConfig {
	return ScoringConfig{
		Mode: c.GetString("scoring.mode"),
	}
}

// GetStore returns the verdict store configuration
func (c *Config) GetStore() (StoreConfig, error) {
	maxAge, err := c.GetDuration("store.max_age")
	if err != nil {
		return StoreConfig{}, err
	}
	return StoreConfig{
		Type:       c.GetString("store.type"),
		Enabled:    c.GetBool("store.enabled"),
		MaxAge:     maxAge,
		SQLitePath: c.GetString("store.sqlite_path"),
		MySQLDSN:   c.GetString("store.mysql_dsn"),
		BadgerDir:  c.GetString("store.badger_dir"),
	}, nil
}

// GetServer returns the gateway configuration
func (c *Config) GetServer() (ServerConfig, error) {
	durations := map[string]*time.Duration{}
	var srv ServerConfig
	durations["server.request_timeout"] = &srv.RequestTimeout
	durations["server.read_timeout"] = &srv.ReadTimeout
	durations["server.write_timeout"] = &srv.WriteTimeout
	durations["server.shutdown_timeout"] = &srv.ShutdownTimeout
	for key, dst := range durations {
		d, err := c.GetDuration(key)
		if err != nil {
			return ServerConfig{}, err
		}
		*dst = d
	}

	srv.ListenAddress = c.GetString("server.listen_address")
	srv.SMTP = SMTPConfig{
		Enabled:         c.GetBool("server.smtp.enabled"),
		ListenAddress:   c.GetString("server.smtp.listen_address"),
		Domain:          c.GetString("server.smtp.domain"),
		RejectDangerous: c.GetBool("server.smtp.reject_dangerous"),
		MaxMessageBytes: c.v.GetInt64("server.smtp.max_message_bytes"),
	}
	return srv, nil
}
