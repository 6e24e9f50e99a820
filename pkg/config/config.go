package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config 应用配置
type Config struct {
	App struct {
		Name string `yaml:"name"`
		Env  string `yaml:"env"`
	} `yaml:"app"`

	DataSources struct {
		Yahoo struct {
			BaseURL string        `yaml:"base_url"`
			Timeout time.Duration `yaml:"timeout"`
		} `yaml:"yahoo"`
	} `yaml:"data_sources"`

	LLM struct {
		APIURL    string        `yaml:"api_url"`
		APIKey    string        `yaml:"api_key"`
		ModelName string        `yaml:"model_name"`
		Timeout   time.Duration `yaml:"timeout"`
	} `yaml:"llm"`

	Webhook struct {
		URL     string        `yaml:"url"`
		Timeout time.Duration `yaml:"timeout"`
	} `yaml:"webhook"`

	NATS struct {
		URL string `yaml:"url"`
	} `yaml:"nats"`

	Database struct {
		Postgres struct {
			Host     string `yaml:"host"`
			Port     int    `yaml:"port"`
			User     string `yaml:"user"`
			Password string `yaml:"password"`
			DBName   string `yaml:"dbname"`
			SSLMode  string `yaml:"sslmode"`
		} `yaml:"postgres"`
	} `yaml:"database"`

	API struct {
		Port         string        `yaml:"port"`
		ReadTimeout  time.Duration `yaml:"read_timeout"`
		WriteTimeout time.Duration `yaml:"write_timeout"`
	} `yaml:"api"`

	NAV struct {
		Threshold float64  `yaml:"threshold"`
		CronSpec  string   `yaml:"cron_spec"`
		Watchlist []string `yaml:"watchlist"`
	} `yaml:"nav"`
}

// LoadConfig 从文件加载配置
func LoadConfig(path string) (*Config, error) {
	// 读取配置文件
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}

	// 解析YAML
	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %w", err)
	}

	// 环境变量覆盖
	overrideFromEnv(&config)

	// 填补关键默认值
	applyDefaults(&config)

	return &config, nil
}

// applyDefaults 填补未配置项的默认值
func applyDefaults(config *Config) {
	if config.DataSources.Yahoo.BaseURL == "" {
		config.DataSources.Yahoo.BaseURL = "https://query1.finance.yahoo.com"
	}
	if config.DataSources.Yahoo.Timeout == 0 {
		config.DataSources.Yahoo.Timeout = 10 * time.Second
	}
	if config.LLM.Timeout == 0 {
		config.LLM.Timeout = 30 * time.Second
	}
	if config.Webhook.Timeout == 0 {
		config.Webhook.Timeout = 10 * time.Second
	}
	if config.API.Port == "" {
		config.API.Port = "8080"
	}
	if config.NAV.Threshold == 0 {
		config.NAV.Threshold = 5.0
	}
	if config.NAV.CronSpec == "" {
		config.NAV.CronSpec = "@every 5m"
	}
}

// overrideFromEnv 使用环境变量覆盖配置
func overrideFromEnv(config *Config) {
	// 应用名称
	if env := os.Getenv("APP_NAME"); env != "" {
		config.App.Name = env
	}

	// 环境
	if env := os.Getenv("APP_ENV"); env != "" {
		config.App.Env = env
	}

	// Yahoo数据源配置
	if env := os.Getenv("YAHOO_BASE_URL"); env != "" {
		config.DataSources.Yahoo.BaseURL = env
	}

	// 大模型配置
	if env := os.Getenv("LLM_API_URL"); env != "" {
		config.LLM.APIURL = env
	}
	if env := os.Getenv("LLM_API_KEY"); env != "" {
		config.LLM.APIKey = env
	}
	if env := os.Getenv("LLM_MODEL_NAME"); env != "" {
		config.LLM.ModelName = env
	}

	// Webhook配置
	if env := os.Getenv("ALERT_WEBHOOK_URL"); env != "" {
		config.Webhook.URL = env
	}

	// NATS配置
	if env := os.Getenv("NATS_URL"); env != "" {
		config.NATS.URL = env
	}

	// 数据库配置
	if env := os.Getenv("DB_HOST"); env != "" {
		config.Database.Postgres.Host = env
	}
	if env := os.Getenv("DB_PORT"); env != "" {
		if port, err := strconv.Atoi(env); err == nil && port > 0 {
			config.Database.Postgres.Port = port
		}
	}
	if env := os.Getenv("DB_USER"); env != "" {
		config.Database.Postgres.User = env
	}
	if env := os.Getenv("DB_PASSWORD"); env != "" {
		config.Database.Postgres.Password = env
	}
	if env := os.Getenv("DB_NAME"); env != "" {
		config.Database.Postgres.DBName = env
	}

	// API配置
	if env := os.Getenv("API_PORT"); env != "" {
		config.API.Port = env
	}

	// 净值监控配置
	if env := os.Getenv("NAV_THRESHOLD"); env != "" {
		if threshold, err := strconv.ParseFloat(env, 64); err == nil && threshold > 0 {
			config.NAV.Threshold = threshold
		}
	}
	if env := os.Getenv("NAV_WATCHLIST"); env != "" {
		config.NAV.Watchlist = strings.Split(env, ",")
	}
}

// GetDefaultConfigPath 获取默认配置文件路径
func GetDefaultConfigPath() string {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev" // 默认开发环境
	}

	return fmt.Sprintf("configs/%s/app.yaml", env)
}
