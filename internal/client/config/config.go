package config

import (
	"flag"
	"fmt"
	"os"
)

// Имена переменных окружения
const (
	EnvServer = "SINARICELL_SERVER"
	EnvDB     = "SINARICELL_DB"
	EnvCache  = "SINARICELL_CACHE"
	EnvConfig = "SINARICELL_CONFIG"
)

// Config содержит настройки клиента Sinari Cell
type Config struct {
	// ServerURL — базовый URL API сервера
	ServerURL string
	// DBPath — путь к локальной базе credential и cooldown-записей
	DBPath string
	// CachePath — путь к локальному кешу каталога
	CachePath string
	// ShowVersion — напечатать версию и выйти
	ShowVersion bool
}

// LoadDefaults заполняет конфигурацию значениями по умолчанию
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://localhost:8080"
	c.DBPath = "sinaricell.db"
	c.CachePath = "sinaricell-catalog.db"
}

// Load собирает конфигурацию из источников по возрастанию приоритета:
// дефолты → JSON-файл → флаги → переменные окружения.
// Возвращает конфигурацию и аргументы, оставшиеся после разбора флагов
// (команда и ее параметры).
func Load(args []string) (*Config, []string, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	fs := flag.NewFlagSet("sinaricell", flag.ContinueOnError)
	configPath := fs.String("config", "", "Path to JSON config file")
	fs.StringVar(&cfg.ServerURL, "server", cfg.ServerURL, "Server URL")
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "Path to local database")
	fs.StringVar(&cfg.CachePath, "cache", cfg.CachePath, "Path to local catalog cache")
	fs.BoolVar(&cfg.ShowVersion, "version", false, "Show version information")

	// JSON-файл читается до разбора флагов, чтобы флаги его переопределяли.
	// Путь к файлу сам может прийти флагом, поэтому сначала черновой разбор.
	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	jsonPath := *configPath
	if jsonPath == "" {
		jsonPath = os.Getenv(EnvConfig)
	}
	if jsonPath != "" {
		if err := parseJSON(cfg, jsonPath); err != nil {
			return nil, nil, fmt.Errorf("failed to load config file: %w", err)
		}
		// Повторный разбор возвращает флагам приоритет над файлом
		if err := fs.Parse(args); err != nil {
			return nil, nil, err
		}
	}

	applyEnv(cfg)

	return cfg, fs.Args(), nil
}

// applyEnv накладывает переменные окружения поверх остальных источников
func applyEnv(cfg *Config) {
	if v := os.Getenv(EnvServer); v != "" {
		cfg.ServerURL = v
	}
	if v := os.Getenv(EnvDB); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv(EnvCache); v != "" {
		cfg.CachePath = v
	}
}
