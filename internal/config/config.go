package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type EmailConfig struct {
	Provider     string `yaml:"provider"` // "smtp" or "ses"
	SMTPHost     string `yaml:"smtp_host"`
	SMTPPort     int    `yaml:"smtp_port"`
	SMTPUser     string `yaml:"smtp_user"`
	SMTPPassword string `yaml:"smtp_password"`
	AWSRegion    string `yaml:"aws_region"`
	AWSAccessKey string `yaml:"aws_access_key"`
	AWSSecretKey string `yaml:"aws_secret_key"`
	FromEmail    string `yaml:"from_email"`
	ReplyTo      string `yaml:"reply_to"`
}

type Config struct {
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`
	Database struct {
		URI  string `yaml:"uri"`
		Name string `yaml:"name"`
	} `yaml:"database"`
	JWT struct {
		Secret string `yaml:"secret"`
	} `yaml:"jwt"`
	Client struct {
		// base URL of the frontend, used to build activation links
		URL string `yaml:"url"`
	} `yaml:"client"`
	Email EmailConfig `yaml:"email"`
}

func LoadConfig() *Config {
	return LoadConfigFrom("config/config.yaml")
}

func LoadConfigFrom(path string) *Config {
	f, err := os.Open(path)
	if err != nil {
		panic("Failed to open " + path + ": " + err.Error())
	}
	defer f.Close()

	var cfg Config
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		panic("Failed to parse " + path + ": " + err.Error())
	}

	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8000
	}
	if cfg.Database.Name == "" {
		cfg.Database.Name = "muroom"
	}
	if cfg.Email.Provider == "" {
		cfg.Email.Provider = "smtp"
	}
	return &cfg
}
