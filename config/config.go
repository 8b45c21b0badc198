package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

type AppConfig struct {
	Port       string  `yaml:"port"`
	Timezone   string  `yaml:"timezone"`
	DBPath     string  `yaml:"db_path"`
	UploadDir  string  `yaml:"upload_dir"`
	LogLevel   string  `yaml:"log_level"`
	LogFormat  string  `yaml:"log_format"` // console|json
	JWTSecret  string  `yaml:"jwt_secret"`
	DevLogin   bool    `yaml:"dev_login"`
	RateLimit  float64 `yaml:"rate_limit"`  // requests/sec per client, 0 disables
	Hemisphere string  `yaml:"hemisphere"`  // north|south
	TrustProxy bool    `yaml:"trust_proxy"` // read client IPs from X-Forwarded-For

	SeasonCSV  string `yaml:"season_csv"`
	SeasonXLSX string `yaml:"season_xlsx"`

	GuideAllowedDomains []string `yaml:"guide_allowed_domains"`
	GuideMaxBytes       int      `yaml:"guide_max_bytes"`
	PhotoMaxBytes       int64    `yaml:"photo_max_bytes"`

	// Optional OpenAI-compatible embeddings for guide search.
	EmbEndpoint string `yaml:"emb_endpoint"`
	EmbAPIKey   string `yaml:"emb_api_key"`
	EmbModel    string `yaml:"emb_model"`
}

func defaults() AppConfig {
	return AppConfig{
		Port:          "8080",
		Timezone:      "Europe/Paris",
		DBPath:        "plantes.db",
		UploadDir:     "uploads",
		LogLevel:      "info",
		LogFormat:     "console",
		DevLogin:      true,
		Hemisphere:    "north",
		GuideMaxBytes: 1500000,
		PhotoMaxBytes: 10 << 20,
	}
}

// Load reads .env, then the optional YAML file named by CONFIG_FILE, then the
// environment. Later sources win.
func Load() AppConfig {
	if err := godotenv.Load(); err != nil {
		log.Debug().Err(err).Msg("[cfg] no .env file loaded")
	}

	cfg := defaults()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := loadYAML(path, &cfg); err != nil {
			log.Warn().Err(err).Str("path", path).Msg("[cfg] config file ignored")
		}
	}
	cfg.applyEnv()

	log.Info().
		Str("port", cfg.Port).
		Str("db", cfg.DBPath).
		Str("uploads", cfg.UploadDir).
		Bool("dev_login", cfg.DevLogin).
		Bool("jwt", cfg.JWTSecret != "").
		Str("hemisphere", cfg.Hemisphere).
		Bool("embeddings", cfg.EmbEndpoint != "").
		Msg("[cfg] loaded")
	return cfg
}

func loadYAML(path string, cfg *AppConfig) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(b, cfg)
}

func (c *AppConfig) applyEnv() {
	get := func(k, def string) string {
		if v := os.Getenv(k); v != "" {
			return v
		}
		return def
	}
	c.Port = get("PORT", c.Port)
	c.Timezone = get("TZ", c.Timezone)
	c.DBPath = get("DB_PATH", c.DBPath)
	c.UploadDir = get("UPLOAD_DIR", c.UploadDir)
	c.LogLevel = get("LOG_LEVEL", c.LogLevel)
	c.LogFormat = get("LOG_FORMAT", c.LogFormat)
	c.JWTSecret = get("JWT_SECRET", c.JWTSecret)
	c.Hemisphere = get("HEMISPHERE", c.Hemisphere)
	c.SeasonCSV = get("SEASON_CSV", c.SeasonCSV)
	c.SeasonXLSX = get("SEASON_XLSX", c.SeasonXLSX)
	c.EmbEndpoint = get("EMB_ENDPOINT", c.EmbEndpoint)
	c.EmbAPIKey = get("EMB_API_KEY", c.EmbAPIKey)
	c.EmbModel = get("EMB_MODEL", c.EmbModel)

	if v := os.Getenv("DEV_LOGIN"); v != "" {
		c.DevLogin = v == "true" || v == "1"
	}
	if v := os.Getenv("TRUST_PROXY"); v != "" {
		c.TrustProxy = v == "true" || v == "1"
	}
	if v, err := strconv.ParseFloat(os.Getenv("RATE_LIMIT"), 64); err == nil {
		c.RateLimit = v
	}
	if v, err := strconv.Atoi(os.Getenv("GUIDE_MAX_BYTES")); err == nil && v > 0 {
		c.GuideMaxBytes = v
	}
	if v, err := strconv.ParseInt(os.Getenv("PHOTO_MAX_BYTES"), 10, 64); err == nil && v > 0 {
		c.PhotoMaxBytes = v
	}
	if v := os.Getenv("GUIDE_ALLOWED_DOMAINS"); v != "" {
		c.GuideAllowedDomains = nil
		for _, h := range strings.Split(v, ",") {
			if h = strings.ToLower(strings.TrimSpace(h)); h != "" {
				c.GuideAllowedDomains = append(c.GuideAllowedDomains, h)
			}
		}
	}
}
