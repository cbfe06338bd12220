package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port    int    `yaml:"port"`
		BaseURL string `yaml:"baseUrl"`
	} `yaml:"server"`

	Database struct {
		URI string `yaml:"uri"`
	} `yaml:"database"`

	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`

	Zhipu struct {
		ApiKey        string `yaml:"apiKey"`
		BaseURL       string `yaml:"baseUrl"`
		Model         string `yaml:"model"`
		RetryAttempts int    `yaml:"retryAttempts"`
		RetryDelaySec int    `yaml:"retryDelaySec"`
	} `yaml:"zhipu"`

	JWT struct {
		Secret string `yaml:"secret"`
		Expiry int    `yaml:"expiry"` // token expiry in minutes
	} `yaml:"jwt"`

	SMTP struct {
		Host        string `yaml:"host"`
		Port        int    `yaml:"port"`
		Username    string `yaml:"username"`
		Password    string `yaml:"password"`
		SenderEmail string `yaml:"senderEmail"`
		SenderName  string `yaml:"senderName"`
	} `yaml:"smtp"`
}

// LoadConfig reads the configuration file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal yaml: %w", err)
	}

	applyDefaults(&cfg)
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.BaseURL == "" {
		cfg.Server.BaseURL = fmt.Sprintf("http://localhost:%d", cfg.Server.Port)
	}
	if cfg.Zhipu.BaseURL == "" {
		cfg.Zhipu.BaseURL = "https://open.bigmodel.cn/api/paas/v4"
	}
	if cfg.Zhipu.Model == "" {
		cfg.Zhipu.Model = "glm-4-flash"
	}
	if cfg.JWT.Expiry == 0 {
		cfg.JWT.Expiry = 60
	}
	if cfg.SMTP.SenderName == "" {
		cfg.SMTP.SenderName = "Sistema de Pesquisa de Satisfação"
	}
}
