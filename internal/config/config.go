package config

import (
	"log"
	"os"
	"strconv"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
		Env  string `yaml:"env"`
	} `yaml:"server"`

	Database struct {
		DSN string `yaml:"url"`
	} `yaml:"database"`

	JWT struct {
		Secret     string `yaml:"secret"`
		TTL        int    `yaml:"ttl"` // access token lifetime, minutes
		RefreshTTL int    `yaml:"refresh_ttl"`
	} `yaml:"jwt"`

	Email struct {
		SMTPHost     string `yaml:"smtp_host"`
		SMTPPort     int    `yaml:"smtp_port"`
		SMTPUsername string `yaml:"smtp_user"`
		SMTPPassword string `yaml:"smtp_password"`
		FromEmail    string `yaml:"from_email"`
		FromName     string `yaml:"from_name"`
		UseTLS       bool   `yaml:"use_tls"`
		BaseURL      string `yaml:"base_url"` // public URL used in mail links
	} `yaml:"email"`

	Mpesa struct {
		BaseURL        string `yaml:"base_url"`
		ConsumerKey    string `yaml:"consumer_key"`
		ConsumerSecret string `yaml:"consumer_secret"`
		ShortCode      string `yaml:"short_code"`
		Passkey        string `yaml:"passkey"`
		CallbackURL    string `yaml:"callback_url"`
	} `yaml:"mpesa"`
}

var AppConfig *Config

// LoadConfig reads config.yaml, or builds the config from environment
// variables when DATABASE_URL is set (the test and container path).
func LoadConfig() {
	var cfg Config

	dbURL := os.Getenv("DATABASE_URL")

	if dbURL == "" {
		configPath := os.Getenv("CONFIG_PATH")
		if configPath == "" {
			configPath = "config/config.yaml"
		}

		f, err := os.Open(configPath)
		if err != nil {
			log.Fatalf("Failed to open config file at %s: %v", configPath, err)
		}
		defer f.Close()

		decoder := yaml.NewDecoder(f)
		if err := decoder.Decode(&cfg); err != nil {
			log.Fatalf("Failed to parse config file at %s: %v", configPath, err)
		}

		AppConfig = &cfg
		return
	}

	cfg.Database.DSN = dbURL
	cfg.Server.Env = os.Getenv("SERVER_ENV")
	cfg.Server.Host = os.Getenv("SERVER_HOST")
	cfg.Server.Port, _ = strconv.Atoi(os.Getenv("SERVER_PORT"))
	cfg.JWT.Secret = os.Getenv("JWT_SECRET")
	cfg.JWT.TTL = 60
	cfg.JWT.RefreshTTL = 60 * 24 * 30

	cfg.Email.SMTPHost = os.Getenv("SMTP_HOST")
	cfg.Email.SMTPPort, _ = strconv.Atoi(os.Getenv("SMTP_PORT"))
	cfg.Email.SMTPUsername = os.Getenv("SMTP_USER")
	cfg.Email.SMTPPassword = os.Getenv("SMTP_PASSWORD")
	cfg.Email.FromEmail = os.Getenv("SMTP_FROM")
	cfg.Email.FromName = "JobSoko"
	cfg.Email.BaseURL = os.Getenv("APP_BASE_URL")

	cfg.Mpesa.BaseURL = os.Getenv("MPESA_BASE_URL")
	cfg.Mpesa.ConsumerKey = os.Getenv("MPESA_CONSUMER_KEY")
	cfg.Mpesa.ConsumerSecret = os.Getenv("MPESA_CONSUMER_SECRET")
	cfg.Mpesa.ShortCode = os.Getenv("MPESA_SHORT_CODE")
	cfg.Mpesa.Passkey = os.Getenv("MPESA_PASSKEY")
	cfg.Mpesa.CallbackURL = os.Getenv("MPESA_CALLBACK_URL")

	AppConfig = &cfg
}

func GetConfig() *Config {
	if AppConfig == nil {
		LoadConfig()
	}
	return AppConfig
}
