package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Auth     AuthConfig     `yaml:"auth"`
	LLM      LLMConfig      `yaml:"llm"`
	OCR      OCRConfig      `yaml:"ocr"`
	Storage  StorageConfig  `yaml:"storage"`
	Log      LogConfig      `yaml:"log"`
}

type ServerConfig struct {
	Port        string   `yaml:"port"`
	Mode        string   `yaml:"mode"` // debug, release, test
	CORSOrigins []string `yaml:"cors_origins"`
}

type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"`
	MaxConns        int32         `yaml:"max_conns"`
	MinConns        int32         `yaml:"min_conns"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"`
}

type AuthConfig struct {
	JWTSecret string        `yaml:"jwt_secret"`
	TokenTTL  time.Duration `yaml:"token_ttl"`
}

type LLMConfig struct {
	Provider        string        `yaml:"provider"` // gemini, openai
	APIKey          string        `yaml:"api_key"`
	Model           string        `yaml:"model"`
	BaseURL         string        `yaml:"base_url"`
	Temperature     float32       `yaml:"temperature"`
	MaxOutputTokens int32         `yaml:"max_output_tokens"`
	Timeout         time.Duration `yaml:"timeout"`
}

type OCRConfig struct {
	Engine         string        `yaml:"engine"` // tesseract, vision
	VisionAPIKey   string        `yaml:"vision_api_key"`
	VisionURL      string        `yaml:"vision_url"`
	TesseractBin   string        `yaml:"tesseract_bin"`
	PollInterval   time.Duration `yaml:"poll_interval"`
	MaxTextLength  int           `yaml:"max_text_length"`
	EmbeddedWorker bool          `yaml:"embedded_worker"` // run the OCR worker inside the API process
}

type StorageConfig struct {
	Endpoint      string `yaml:"endpoint"`
	Region        string `yaml:"region"`
	Bucket        string `yaml:"bucket"`
	AccessKey     string `yaml:"access_key"`
	SecretKey     string `yaml:"secret_key"`
	PublicBaseURL string `yaml:"public_base_url"`
	UsePathStyle  bool   `yaml:"use_path_style"`
}

type LogConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:        "8000",
			Mode:        "release",
			CORSOrigins: []string{"http://localhost:3000", "http://localhost:5173"},
		},
		Database: DatabaseConfig{
			MaxConns:        10,
			MinConns:        2,
			MaxConnLifetime: time.Hour,
		},
		Auth: AuthConfig{
			TokenTTL: 24 * time.Hour,
		},
		LLM: LLMConfig{
			Provider:        "gemini",
			Model:           "gemini-2.5-flash",
			Temperature:     0.2,
			MaxOutputTokens: 8192,
			Timeout:         90 * time.Second,
		},
		OCR: OCRConfig{
			Engine:         "tesseract",
			VisionURL:      "https://vision.googleapis.com/v1/images:annotate",
			TesseractBin:   "tesseract",
			PollInterval:   2 * time.Second,
			MaxTextLength:  15000,
			EmbeddedWorker: true,
		},
		Storage: StorageConfig{
			Region: "auto",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads defaults, then the YAML file at CONFIG_PATH (config.yaml when unset),
// then environment variables. A missing file is not an error.
func Load() (*Config, error) {
	cfg := Default()

	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "config.yaml"
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case !errors.Is(err, os.ErrNotExist):
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	setString(&c.Server.Port, "PORT")
	setString(&c.Server.Mode, "GIN_MODE")
	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		c.Server.CORSOrigins = splitList(v)
	}

	setString(&c.Database.DSN, "DATABASE_URL")

	setString(&c.Auth.JWTSecret, "JWT_SECRET")
	if err := setDuration(&c.Auth.TokenTTL, "JWT_TTL"); err != nil {
		return err
	}

	setString(&c.LLM.Provider, "LLM_PROVIDER")
	setString(&c.LLM.Model, "LLM_MODEL")
	setString(&c.LLM.BaseURL, "LLM_BASE_URL")
	setString(&c.LLM.APIKey, "LLM_API_KEY")
	// provider specific keys keep working for existing deployments
	if c.LLM.APIKey == "" {
		switch c.LLM.Provider {
		case "gemini":
			setString(&c.LLM.APIKey, "GEMINI_API_KEY")
		case "openai":
			setString(&c.LLM.APIKey, "OPENAI_API_KEY")
		}
	}
	if c.LLM.Provider == "gemini" && os.Getenv("LLM_MODEL") == "" {
		setString(&c.LLM.Model, "GEMINI_MODEL")
	}
	if err := setDuration(&c.LLM.Timeout, "LLM_TIMEOUT"); err != nil {
		return err
	}

	setString(&c.OCR.Engine, "OCR_ENGINE")
	setString(&c.OCR.VisionAPIKey, "VISION_API_KEY")
	setString(&c.OCR.TesseractBin, "TESSERACT_BIN")
	if v := os.Getenv("OCR_EMBEDDED_WORKER"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("OCR_EMBEDDED_WORKER: %w", err)
		}
		c.OCR.EmbeddedWorker = b
	}
	if err := setDuration(&c.OCR.PollInterval, "OCR_POLL_INTERVAL"); err != nil {
		return err
	}

	setString(&c.Storage.Endpoint, "STORAGE_ENDPOINT")
	setString(&c.Storage.Region, "STORAGE_REGION")
	setString(&c.Storage.Bucket, "STORAGE_BUCKET")
	setString(&c.Storage.AccessKey, "STORAGE_ACCESS_KEY")
	setString(&c.Storage.SecretKey, "STORAGE_SECRET_KEY")
	setString(&c.Storage.PublicBaseURL, "STORAGE_PUBLIC_BASE_URL")
	if v := os.Getenv("STORAGE_PATH_STYLE"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("STORAGE_PATH_STYLE: %w", err)
		}
		c.Storage.UsePathStyle = b
	}

	setString(&c.Log.Level, "LOG_LEVEL")
	if os.Getenv("APP_ENV") == "development" {
		c.Log.Development = true
	}
	return nil
}

// Validate reports every missing required value at once.
func (c *Config) Validate() error {
	var missing []string
	if c.Auth.JWTSecret == "" {
		missing = append(missing, "JWT_SECRET")
	}
	if c.Database.DSN == "" {
		missing = append(missing, "DATABASE_URL")
	}
	if c.LLM.APIKey == "" {
		missing = append(missing, "LLM_API_KEY")
	}
	if c.Storage.Bucket == "" {
		missing = append(missing, "STORAGE_BUCKET")
	}
	if c.Storage.AccessKey == "" || c.Storage.SecretKey == "" {
		missing = append(missing, "STORAGE_ACCESS_KEY/STORAGE_SECRET_KEY")
	}
	if c.OCR.Engine == "vision" && c.OCR.VisionAPIKey == "" {
		missing = append(missing, "VISION_API_KEY")
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing config: %s", strings.Join(missing, ", "))
	}
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setDuration(dst *time.Duration, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = d
	return nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
