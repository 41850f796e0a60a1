package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

const (
	DefaultHistoryLimit = 10
	MaxHistoryLimit     = 100
)

type Config struct {
	Log           string              `yaml:"log"`
	History       HistoryConfig       `yaml:"history"`
	MQTT          MQTTConfig          `yaml:"mqtt"`
	HomeAssistant HomeAssistantConfig `yaml:"homeassistant"`
}

type HistoryConfig struct {
	Enabled *bool  `yaml:"enabled"`
	Path    string `yaml:"path"`
	Limit   int    `yaml:"limit"`
}

type MQTTConfig struct {
	ClientID string `yaml:"client_id"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	QOS      int    `yaml:"qos"`
	Retain   bool   `yaml:"retain"`
	Clean    *bool  `yaml:"clean"`
	Prefix   string `yaml:"prefix"`
}

type HomeAssistantConfig struct {
	Discovery bool   `yaml:"discovery"`
	Prefix    string `yaml:"prefix"`
}

// HistoryEnabled reports whether computations should be recorded.
func (c *Config) HistoryEnabled() bool {
	return c.History.Enabled == nil || *c.History.Enabled
}

// CleanSession reports whether the broker should discard session state.
func (c *MQTTConfig) CleanSession() bool {
	return c.Clean == nil || *c.Clean
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	var config Config
	setDefaults(&config)
	return &config
}

// LoadConfig reads configFile. A missing file yields the defaults.
func LoadConfig(configFile string) (*Config, error) {
	data, err := os.ReadFile(configFile)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	return Parse(data)
}

// Parse decodes a YAML document, fills in defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	var config Config
	if err := yaml.UnmarshalStrict(data, &config); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	setDefaults(&config)

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

func setDefaults(config *Config) {
	if config.Log == "" {
		config.Log = "info"
	}
	if config.History.Limit == 0 {
		config.History.Limit = DefaultHistoryLimit
	}
	if config.MQTT.ClientID == "" {
		config.MQTT.ClientID = "crc8calc"
	}
	if config.MQTT.Host == "" {
		config.MQTT.Host = "localhost"
	}
	if config.MQTT.Port == 0 {
		config.MQTT.Port = 1883
	}
	if config.MQTT.Prefix == "" {
		config.MQTT.Prefix = "crc8calc"
	}
	if config.HomeAssistant.Prefix == "" {
		config.HomeAssistant.Prefix = "homeassistant"
	}
}

func validate(config *Config) error {
	if config.History.Limit < 1 || config.History.Limit > MaxHistoryLimit {
		return fmt.Errorf("history.limit must be between 1 and %d, got %d", MaxHistoryLimit, config.History.Limit)
	}
	if config.MQTT.QOS < 0 || config.MQTT.QOS > 2 {
		return fmt.Errorf("mqtt.qos must be 0, 1 or 2, got %d", config.MQTT.QOS)
	}
	if config.MQTT.Port < 1 || config.MQTT.Port > 65535 {
		return fmt.Errorf("mqtt.port must be between 1 and 65535, got %d", config.MQTT.Port)
	}
	return nil
}
