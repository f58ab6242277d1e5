package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config — корневая структура конфигурации движка.
type Config struct {
	Simulation SimulationConfig `yaml:"simulation"`
	Streaming  StreamingConfig  `yaml:"streaming"`
	Generator  GeneratorConfig  `yaml:"generator"`
	Mesh       MeshConfig       `yaml:"mesh"`
	EventBus   EventBusConfig   `yaml:"eventbus"`
	Metrics    MetricsConfig    `yaml:"metrics"`
}

type SimulationConfig struct {
	TickRate int `yaml:"tick_rate"` // Тиков симуляции в секунду
}

type StreamingConfig struct {
	// Радиусы якоря по умолчанию, в чанках. Радиус 0 означает
	// "только собственный чанк якоря".
	DefaultRadius    int `yaml:"default_radius"`
	DefaultMaxRadius int `yaml:"default_max_radius"`
	EventBuffer      int `yaml:"event_buffer"` // Емкость каналов событий
}

type GeneratorConfig struct {
	Seed int64 `yaml:"seed"`
}

type MeshConfig struct {
	Workers int `yaml:"workers"` // 0 — по числу CPU
}

type EventBusConfig struct {
	URL       string `yaml:"url"` // Пусто — in-memory шина
	Stream    string `yaml:"stream"`
	Retention int    `yaml:"retention_hours"`
}

type MetricsConfig struct {
	Port int `yaml:"port"`
}

// Load читает конфигурацию из YAML-файла. Отсутствующий файл — не ошибка:
// возвращаются значения по умолчанию.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("чтение конфигурации %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("разбор конфигурации %s: %w", path, err)
	}
	return cfg, nil
}

// GetTickRate возвращает частоту тиков с приоритетом: config -> env -> default.
func (s *SimulationConfig) GetTickRate() int {
	return getIntWithEnvFallback(s.TickRate, "VOXEL_TICK_RATE", 20)
}

// GetDefaultRadius возвращает радиус загрузки якоря по умолчанию.
func (s *StreamingConfig) GetDefaultRadius() int {
	return getIntWithEnvFallback(s.DefaultRadius, "VOXEL_ANCHOR_RADIUS", 2)
}

// GetDefaultMaxRadius возвращает максимальный радиус якоря по умолчанию.
// Никогда не меньше радиуса загрузки.
func (s *StreamingConfig) GetDefaultMaxRadius() int {
	maxRadius := getIntWithEnvFallback(s.DefaultMaxRadius, "VOXEL_ANCHOR_MAX_RADIUS", 4)
	if radius := s.GetDefaultRadius(); maxRadius < radius {
		return radius
	}
	return maxRadius
}

// GetEventBuffer возвращает емкость каналов событий стриминга.
func (s *StreamingConfig) GetEventBuffer() int {
	return getIntWithEnvFallback(s.EventBuffer, "VOXEL_EVENT_BUFFER", 4096)
}

// GetMetricsPort возвращает порт Prometheus-метрик.
func (m *MetricsConfig) GetMetricsPort() int {
	return getIntWithEnvFallback(m.Port, "VOXEL_METRICS_PORT", 2112)
}

// getIntWithEnvFallback возвращает значение с приоритетом: config -> env -> default.
func getIntWithEnvFallback(configValue int, envVar string, defaultValue int) int {
	if configValue > 0 {
		return configValue
	}
	if envValue := os.Getenv(envVar); envValue != "" {
		if parsed, err := strconv.Atoi(envValue); err == nil && parsed > 0 {
			return parsed
		}
	}
	return defaultValue
}
