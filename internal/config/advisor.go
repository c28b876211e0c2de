package config

import (
	"os"

	"github.com/spf13/viper"

	"github.com/finsight/finsight/internal/advisor"
)

// LoadAdvisorConfig assembles the advisory gateway configuration. Precedence:
// 1. Viper configuration (from config file or FINSIGHT_ env vars)
// 2. Provider-specific environment variables (GEMINI_API_KEY etc.)
// A missing key is not an error; the gateway degrades to its offline
// provider.
func LoadAdvisorConfig() advisor.Config {
	cfg := advisor.Config{
		Provider:    viper.GetString("advisor.provider"),
		APIKey:      viper.GetString("advisor.api_key"),
		Model:       viper.GetString("advisor.model"),
		MaxRetries:  viper.GetInt("advisor.max_retries"),
		RetryDelay:  viper.GetDuration("advisor.retry_delay"),
		CacheTTL:    viper.GetDuration("advisor.cache_ttl"),
		RateLimit:   viper.GetInt("advisor.rate_limit"),
		Temperature: viper.GetFloat64("advisor.temperature"),
		MaxTokens:   viper.GetInt("advisor.max_tokens"),
	}

	if cfg.APIKey == "" {
		cfg.APIKey = apiKeyFromEnv(cfg.Provider)
	}
	// A bare API key without a provider picks the provider from whichever
	// environment variable supplied the key.
	if cfg.Provider == "" {
		for _, p := range []string{"gemini", "openai", "anthropic"} {
			if apiKeyFromEnv(p) != "" {
				cfg.Provider = p
				if cfg.APIKey == "" {
					cfg.APIKey = apiKeyFromEnv(p)
				}
				break
			}
		}
	}

	return cfg
}

func apiKeyFromEnv(provider string) string {
	switch provider {
	case "gemini":
		return os.Getenv("GEMINI_API_KEY")
	case "openai":
		return os.Getenv("OPENAI_API_KEY")
	case "anthropic":
		return os.Getenv("ANTHROPIC_API_KEY")
	default:
		return ""
	}
}
