package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// jsonConfig — DTO для разбора JSON-файла конфигурации.
// Пустые поля не переопределяют уже загруженные значения.
type jsonConfig struct {
	ServerURL string `json:"server_url"`
	DBPath    string `json:"db_path"`
	CachePath string `json:"cache_path"`
}

// parseJSON накладывает значения из JSON-файла на конфигурацию
func parseJSON(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var jc jsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("invalid JSON in %s: %w", path, err)
	}

	if jc.ServerURL != "" {
		cfg.ServerURL = jc.ServerURL
	}
	if jc.DBPath != "" {
		cfg.DBPath = jc.DBPath
	}
	if jc.CachePath != "" {
		cfg.CachePath = jc.CachePath
	}

	return nil
}
