package objects

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
)

// envConfig mirrors Config with the environment variable names attached.
type envConfig struct {
	Backend   string `mapstructure:"ROBJ_BACKEND"`
	RedisURL  string `mapstructure:"ROBJ_REDIS_URL"`
	Namespace string `mapstructure:"ROBJ_NAMESPACE"`
}

func loadDotEnvFiles() {
	candidates := []string{
		".env",
		filepath.Join("..", ".env"),
	}
	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			_ = gotenv.Load(path) // ignore errors; env vars already set take precedence
		}
	}
}

// LoadConfig reads backend configuration from the environment, consulting
// .env files first. Unset variables fall back to a Redis backend on the
// default local address.
func LoadConfig() (Config, error) {
	loadDotEnvFiles()

	v := viper.New()
	v.SetConfigType("env")
	v.AutomaticEnv()

	v.SetDefault("ROBJ_BACKEND", string(BackendRedis))
	v.SetDefault("ROBJ_REDIS_URL", "redis://127.0.0.1:6379/0")
	v.SetDefault("ROBJ_NAMESPACE", "")

	var env envConfig
	if err := v.Unmarshal(&env); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg := Config{
		Backend:   Backend(env.Backend),
		RedisURL:  env.RedisURL,
		Namespace: env.Namespace,
	}
	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.Backend {
	case BackendMemory:
	case BackendRedis:
		if c.RedisURL == "" {
			return fmt.Errorf("ROBJ_REDIS_URL is required when backend is %q", BackendRedis)
		}
	default:
		return fmt.Errorf("unknown backend %q", c.Backend)
	}
	return nil
}
