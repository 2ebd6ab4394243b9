package config

import (
	"os"
	"regexp"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// LoggingAdapter configures one logging output adapter.
type LoggingAdapter struct {
	Name    string                 `yaml:"name"`
	Type    string                 `yaml:"type"`
	Enabled bool                   `yaml:"enabled"`
	Options map[string]interface{} `yaml:"options"`
}

// Config represents the application configuration
type Config struct {
	Server struct {
		Port         int           `yaml:"port" default:"8080"`
		Host         string        `yaml:"host" default:"0.0.0.0"`
		ReadTimeout  time.Duration `yaml:"read_timeout" default:"30s"`
		WriteTimeout time.Duration `yaml:"write_timeout" default:"30s"`
		IdleTimeout  time.Duration `yaml:"idle_timeout" default:"60s"`
	} `yaml:"server"`

	LLM struct {
		Provider     string        `yaml:"provider" default:"gemini"`
		APIKey       string        `yaml:"api_key"`
		Model        string        `yaml:"model" default:"gemini-2.0-flash"`
		MaxTokens    int           `yaml:"max_tokens" default:"8192"`
		Temperature  float32       `yaml:"temperature" default:"0.4"`
		Timeout      time.Duration `yaml:"timeout" default:"120s"`
		SystemPrompt string        `yaml:"system_prompt_path" default:"configs/system_prompt.txt"`
	} `yaml:"llm"`

	Redis struct {
		URL      string        `yaml:"url" default:"redis://localhost:6379"`
		Password string        `yaml:"password"`
		DB       int           `yaml:"db" default:"0"`
		Timeout  time.Duration `yaml:"timeout" default:"5s"`
		DraftTTL time.Duration `yaml:"draft_ttl" default:"720h"`
	} `yaml:"redis"`

	Database struct {
		URL             string        `yaml:"url"`
		MaxConns        int           `yaml:"max_conns" default:"10"`
		ConnectTimeout  time.Duration `yaml:"connect_timeout" default:"10s"`
		StatementJitter time.Duration `yaml:"statement_jitter" default:"0s"`
	} `yaml:"database"`

	Drafts struct {
		QuietPeriod time.Duration `yaml:"quiet_period" default:"1200ms"`
	} `yaml:"drafts"`

	RateLimit struct {
		GenerationsPerMinute int `yaml:"generations_per_minute" default:"6"`
		Burst                int `yaml:"burst" default:"2"`
	} `yaml:"rate_limit"`

	Logging struct {
		Level    string           `yaml:"level" default:"info"`
		Format   string           `yaml:"format" default:"json"`
		Adapters []LoggingAdapter `yaml:"adapters"`
	} `yaml:"logging"`
}

// expandEnvVars expands environment variables in a string using ${VAR} or $VAR syntax
func expandEnvVars(s string) string {
	re := regexp.MustCompile(`\$\{([^}]+)\}`)
	s = re.ReplaceAllStringFunc(s, func(match string) string {
		varName := match[2 : len(match)-1]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		return match
	})

	re2 := regexp.MustCompile(`\$([A-Za-z_][A-Za-z0-9_]*)`)
	s = re2.ReplaceAllStringFunc(s, func(match string) string {
		varName := match[1:]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		return match
	})

	return s
}

// LoadConfig loads configuration from file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	// Load .env file if it exists (ignore errors if file doesn't exist)
	_ = godotenv.Load()

	config := &Config{}

	// Set defaults
	config.Server.Port = 8080
	config.Server.Host = "0.0.0.0"
	config.Server.ReadTimeout = 30 * time.Second
	config.Server.WriteTimeout = 30 * time.Second
	config.Server.IdleTimeout = 60 * time.Second

	config.LLM.Provider = "gemini"
	config.LLM.Model = "gemini-2.0-flash"
	config.LLM.MaxTokens = 8192
	config.LLM.Temperature = 0.4
	config.LLM.Timeout = 120 * time.Second
	config.LLM.SystemPrompt = "configs/system_prompt.txt"

	config.Redis.URL = "redis://localhost:6379"
	config.Redis.DB = 0
	config.Redis.Timeout = 5 * time.Second
	config.Redis.DraftTTL = 30 * 24 * time.Hour

	config.Database.MaxConns = 10
	config.Database.ConnectTimeout = 10 * time.Second

	config.Drafts.QuietPeriod = 1200 * time.Millisecond

	config.RateLimit.GenerationsPerMinute = 6
	config.RateLimit.Burst = 2

	config.Logging.Level = "info"
	config.Logging.Format = "json"

	// Load from YAML file if it exists
	if configPath != "" {
		if data, err := os.ReadFile(configPath); err == nil {
			yamlContent := expandEnvVars(string(data))

			if err := yaml.Unmarshal([]byte(yamlContent), config); err != nil {
				return nil, err
			}
		}
	}

	// Override with environment variables
	config.loadFromEnv()

	return config, nil
}

// loadFromEnv loads configuration from environment variables
func (c *Config) loadFromEnv() {
	if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			c.Server.Port = p
		}
	}

	if host := os.Getenv("HOST"); host != "" {
		c.Server.Host = host
	}

	if apiKey := os.Getenv("LLM_API_KEY"); apiKey != "" {
		c.LLM.APIKey = apiKey
	}

	// Also support the Gemini SDK's conventional variable
	if apiKey := os.Getenv("GEMINI_API_KEY"); apiKey != "" && c.LLM.APIKey == "" {
		c.LLM.APIKey = apiKey
	}

	if provider := os.Getenv("LLM_PROVIDER"); provider != "" {
		c.LLM.Provider = provider
	}

	if model := os.Getenv("LLM_MODEL"); model != "" {
		c.LLM.Model = model
	}

	if promptPath := os.Getenv("LLM_SYSTEM_PROMPT_PATH"); promptPath != "" {
		c.LLM.SystemPrompt = promptPath
	}

	if redisURL := os.Getenv("REDIS_URL"); redisURL != "" {
		c.Redis.URL = redisURL
	}

	if redisPassword := os.Getenv("REDIS_PASSWORD"); redisPassword != "" {
		c.Redis.Password = redisPassword
	}

	if redisDB := os.Getenv("REDIS_DB"); redisDB != "" {
		if db, err := strconv.Atoi(redisDB); err == nil {
			c.Redis.DB = db
		}
	}

	if databaseURL := os.Getenv("DATABASE_URL"); databaseURL != "" {
		c.Database.URL = databaseURL
	}

	if quiet := os.Getenv("DRAFT_QUIET_PERIOD"); quiet != "" {
		if d, err := time.ParseDuration(quiet); err == nil {
			c.Drafts.QuietPeriod = d
		}
	}

	if logLevel := os.Getenv("LOG_LEVEL"); logLevel != "" {
		c.Logging.Level = logLevel
	}

	if logFormat := os.Getenv("LOG_FORMAT"); logFormat != "" {
		c.Logging.Format = logFormat
	}
}
