package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config настройки киоска
type Config struct {
	FridgeAPIURL  string        `yaml:"fridge_api_url"` // адрес сервиса холодильника
	HTTPTimeout   time.Duration `yaml:"http_timeout"`   // таймаут транспорта
	KioskAddr     string        `yaml:"kiosk_addr"`     // адрес HTTP-интерфейса киоска
	TelegramToken string        `yaml:"telegram_token"` // пусто: панель Telegram выключена
	LogLevel      string        `yaml:"log_level"`      // debug, info, warn, error
	Camera        CameraConfig  `yaml:"camera"`
	MQTT          MQTTConfig    `yaml:"mqtt"`
}

// CameraConfig настройки камеры
type CameraConfig struct {
	Device      string `yaml:"device"`       // индекс камеры, URL потока или file:путь
	Width       int    `yaml:"width"`        // желаемая ширина кадра
	Height      int    `yaml:"height"`       // желаемая высота кадра
	JPEGQuality int    `yaml:"jpeg_quality"` // качество снимка 1..100
}

// MQTTConfig настройки публикации событий
type MQTTConfig struct {
	Broker      string `yaml:"broker"` // host:port, пусто: публикация выключена
	ClientID    string `yaml:"client_id"`
	TopicPrefix string `yaml:"topic_prefix"`
}

// Default возвращает настройки по умолчанию
func Default() *Config {
	return &Config{
		FridgeAPIURL: "http://localhost:8000",
		HTTPTimeout:  30 * time.Second,
		KioskAddr:    ":8080",
		LogLevel:     "info",
		Camera: CameraConfig{
			Device:      "0",
			Width:       640,
			Height:      480,
			JPEGQuality: 90,
		},
		MQTT: MQTTConfig{
			ClientID:    "smart-fridge",
			TopicPrefix: "fridge",
		},
	}
}

// Load собирает настройки: значения по умолчанию, затем YAML из FRIDGE_CONFIG,
// затем переменные окружения.
func Load() (*Config, error) {
	// Загружаем .env файл (игнорируем ошибку если файла нет)
	_ = godotenv.Load()

	cfg := Default()

	if path := os.Getenv("FRIDGE_CONFIG"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	setString(&c.FridgeAPIURL, "FRIDGE_API_URL")
	setString(&c.KioskAddr, "KIOSK_ADDR")
	setString(&c.TelegramToken, "TELEGRAM_TOKEN")
	setString(&c.LogLevel, "LOG_LEVEL")
	setString(&c.Camera.Device, "CAMERA_DEVICE")
	setString(&c.MQTT.Broker, "MQTT_BROKER")
	setString(&c.MQTT.ClientID, "MQTT_CLIENT_ID")
	setString(&c.MQTT.TopicPrefix, "MQTT_TOPIC_PREFIX")

	if v := os.Getenv("HTTP_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid HTTP_TIMEOUT %q: %w", v, err)
		}
		c.HTTPTimeout = d
	}

	for key, dst := range map[string]*int{
		"CAMERA_WIDTH":  &c.Camera.Width,
		"CAMERA_HEIGHT": &c.Camera.Height,
		"JPEG_QUALITY":  &c.Camera.JPEGQuality,
	} {
		v := os.Getenv(key)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", key, v, err)
		}
		*dst = n
	}

	return nil
}

// Validate проверяет согласованность настроек
func (c *Config) Validate() error {
	if c.FridgeAPIURL == "" {
		return fmt.Errorf("FRIDGE_API_URL is required")
	}
	if c.HTTPTimeout < 0 {
		return fmt.Errorf("HTTP_TIMEOUT must not be negative")
	}
	if c.Camera.JPEGQuality < 1 || c.Camera.JPEGQuality > 100 {
		return fmt.Errorf("JPEG_QUALITY must be in 1..100, got %d", c.Camera.JPEGQuality)
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// SlogLevel уровень логирования для slog
func (c *Config) SlogLevel() slog.Level {
	lvl, _ := parseLevel(c.LogLevel)
	return lvl
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown LOG_LEVEL %q", s)
	}
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
