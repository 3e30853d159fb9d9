package config

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "RIGCALC_"

// Config is the root configuration structure for rig-calc.
// Values come from defaults, then the YAML file, then RIGCALC_* variables.
type Config struct {
	App       AppConfig       `yaml:"app"`
	Database  DatabaseConfig  `yaml:"database"`
	MQTT      MQTTConfig      `yaml:"mqtt"`
	API       APIConfig       `yaml:"api"`
	WebSocket WebSocketConfig `yaml:"websocket"`
	InfluxDB  InfluxDBConfig  `yaml:"influxdb"`
	Logging   LoggingConfig   `yaml:"logging"`
	Rig       RigConfig       `yaml:"rig"`
}

// AppConfig identifies this installation in logs and MQTT payloads.
type AppConfig struct {
	Name string `yaml:"name"`
}

// DatabaseConfig contains SQLite database settings.
type DatabaseConfig struct {
	Path        string `yaml:"path"`
	WALMode     bool   `yaml:"wal_mode"`
	BusyTimeout int    `yaml:"busy_timeout"`
}

// MQTTConfig contains MQTT broker connection settings.
// Publishing is skipped entirely when Enabled is false.
type MQTTConfig struct {
	Enabled   bool                `yaml:"enabled"`
	Broker    MQTTBrokerConfig    `yaml:"broker"`
	Auth      MQTTAuthConfig      `yaml:"auth"`
	QoS       int                 `yaml:"qos"`
	Reconnect MQTTReconnectConfig `yaml:"reconnect"`
}

// MQTTBrokerConfig contains MQTT broker connection details.
type MQTTBrokerConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	TLS      bool   `yaml:"tls"`
	ClientID string `yaml:"client_id"`
}

// MQTTAuthConfig contains MQTT authentication credentials.
type MQTTAuthConfig struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// MQTTReconnectConfig contains MQTT reconnection settings (seconds).
type MQTTReconnectConfig struct {
	InitialDelay int `yaml:"initial_delay"`
	MaxDelay     int `yaml:"max_delay"`
}

// APIConfig contains HTTP API server settings.
type APIConfig struct {
	Host     string           `yaml:"host"`
	Port     int              `yaml:"port"`
	Timeouts APITimeoutConfig `yaml:"timeouts"`
	CORS     CORSConfig       `yaml:"cors"`
}

// APITimeoutConfig contains HTTP timeout settings (seconds).
type APITimeoutConfig struct {
	Read  int `yaml:"read"`
	Write int `yaml:"write"`
	Idle  int `yaml:"idle"`
}

// CORSConfig contains Cross-Origin Resource Sharing settings.
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// WebSocketConfig contains WebSocket server settings.
type WebSocketConfig struct {
	Path           string `yaml:"path"`
	MaxMessageSize int    `yaml:"max_message_size"`
	PingInterval   int    `yaml:"ping_interval"`
	PongTimeout    int    `yaml:"pong_timeout"`
}

// InfluxDBConfig contains InfluxDB connection settings.
type InfluxDBConfig struct {
	Enabled       bool   `yaml:"enabled"`
	URL           string `yaml:"url"`
	Token         string `yaml:"token"`
	Org           string `yaml:"org"`
	Bucket        string `yaml:"bucket"`
	BatchSize     int    `yaml:"batch_size"`
	FlushInterval int    `yaml:"flush_interval"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

// RigConfig contains calculator settings.
type RigConfig struct {
	// SupplyVoltage converts circuit watts to amps.
	SupplyVoltage float64 `yaml:"supply_voltage"`

	// StorageKey is the kv_store key holding the rig snapshot.
	StorageKey string `yaml:"storage_key"`

	// CatalogFile optionally points to a YAML fixture list merged over the
	// built-in catalogue.
	CatalogFile string `yaml:"catalog_file"`

	// HistorySize is how many recent changes the in-memory journal keeps.
	// 0 turns the journal off.
	HistorySize int `yaml:"history_size"`
}

// Load builds the configuration from defaults, the YAML file at path and
// RIGCALC_* environment variables, then validates it.
//
// A missing file is not an error: defaults plus environment are used. An
// unreadable or malformed file is.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	case errors.Is(err, fs.ErrNotExist):
		// defaults only
	default:
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

// Default returns a Config with every default applied.
func Default() *Config {
	return &Config{
		App: AppConfig{
			Name: "rigcalc",
		},
		Database: DatabaseConfig{
			Path:        "./data/rigcalc.db",
			WALMode:     true,
			BusyTimeout: 5,
		},
		MQTT: MQTTConfig{
			Broker: MQTTBrokerConfig{
				Host:     "localhost",
				Port:     1883,
				ClientID: "rigcalc",
			},
			QoS: 1,
			Reconnect: MQTTReconnectConfig{
				InitialDelay: 1,
				MaxDelay:     60,
			},
		},
		API: APIConfig{
			Host: "0.0.0.0",
			Port: 8080,
			Timeouts: APITimeoutConfig{
				Read:  30,
				Write: 30,
				Idle:  60,
			},
		},
		WebSocket: WebSocketConfig{
			Path:           "/ws",
			MaxMessageSize: 8192,
			PingInterval:   30,
			PongTimeout:    10,
		},
		InfluxDB: InfluxDBConfig{
			URL:           "http://localhost:8086",
			Org:           "rigcalc",
			Bucket:        "rigcalc",
			BatchSize:     100,
			FlushInterval: 10,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Output: "stdout",
		},
		Rig: RigConfig{
			SupplyVoltage: 120,
			StorageKey:    "dmx_power_calc_rig",
			HistorySize:   500,
		},
	}
}

// applyEnvOverrides applies RIGCALC_SECTION_KEY variables.
// Malformed numeric or boolean values are reported rather than ignored.
func applyEnvOverrides(cfg *Config) error {
	var errs []string

	str := func(name string, dst *string) {
		if v := os.Getenv(EnvPrefix + name); v != "" {
			*dst = v
		}
	}
	num := func(name string, dst *int) {
		if v := os.Getenv(EnvPrefix + name); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				errs = append(errs, fmt.Sprintf("%s%s: %q is not an integer", EnvPrefix, name, v))
				return
			}
			*dst = n
		}
	}
	flag := func(name string, dst *bool) {
		if v := os.Getenv(EnvPrefix + name); v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				errs = append(errs, fmt.Sprintf("%s%s: %q is not a boolean", EnvPrefix, name, v))
				return
			}
			*dst = b
		}
	}

	str("DATABASE_PATH", &cfg.Database.Path)

	flag("MQTT_ENABLED", &cfg.MQTT.Enabled)
	str("MQTT_HOST", &cfg.MQTT.Broker.Host)
	num("MQTT_PORT", &cfg.MQTT.Broker.Port)
	str("MQTT_USERNAME", &cfg.MQTT.Auth.Username)
	str("MQTT_PASSWORD", &cfg.MQTT.Auth.Password)

	str("API_HOST", &cfg.API.Host)
	num("API_PORT", &cfg.API.Port)

	flag("INFLUXDB_ENABLED", &cfg.InfluxDB.Enabled)
	str("INFLUXDB_URL", &cfg.InfluxDB.URL)
	str("INFLUXDB_TOKEN", &cfg.InfluxDB.Token)

	str("LOG_LEVEL", &cfg.Logging.Level)

	if v := os.Getenv(EnvPrefix + "SUPPLY_VOLTAGE"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			errs = append(errs, fmt.Sprintf("%sSUPPLY_VOLTAGE: %q is not a number", EnvPrefix, v))
		} else {
			cfg.Rig.SupplyVoltage = f
		}
	}
	str("CATALOG_FILE", &cfg.Rig.CatalogFile)

	if len(errs) > 0 {
		return fmt.Errorf("environment overrides: %s", strings.Join(errs, "; "))
	}
	return nil
}

// Validate checks the configuration and reports every problem at once.
func (c *Config) Validate() error {
	var errs []string

	if c.Database.Path == "" {
		errs = append(errs, "database.path is required")
	}
	if c.Database.BusyTimeout < 0 {
		errs = append(errs, "database.busy_timeout must not be negative")
	}

	if c.MQTT.QoS < 0 || c.MQTT.QoS > 2 {
		errs = append(errs, "mqtt.qos must be 0, 1, or 2")
	}
	if c.MQTT.Enabled {
		if c.MQTT.Broker.Host == "" {
			errs = append(errs, "mqtt.broker.host is required when mqtt is enabled")
		}
		if c.MQTT.Broker.Port < 1 || c.MQTT.Broker.Port > 65535 {
			errs = append(errs, "mqtt.broker.port must be between 1 and 65535")
		}
	}

	if c.API.Port < 1 || c.API.Port > 65535 {
		errs = append(errs, "api.port must be between 1 and 65535")
	}

	if c.WebSocket.Path != "" && !strings.HasPrefix(c.WebSocket.Path, "/") {
		errs = append(errs, "websocket.path must start with /")
	}

	if c.InfluxDB.Enabled {
		if c.InfluxDB.URL == "" {
			errs = append(errs, "influxdb.url is required when influxdb is enabled")
		}
		if c.InfluxDB.Org == "" || c.InfluxDB.Bucket == "" {
			errs = append(errs, "influxdb.org and influxdb.bucket are required when influxdb is enabled")
		}
	}

	v := c.Rig.SupplyVoltage
	if v <= 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		errs = append(errs, "rig.supply_voltage must be a positive number")
	}
	if strings.TrimSpace(c.Rig.StorageKey) == "" {
		errs = append(errs, "rig.storage_key is required")
	}
	if c.Rig.HistorySize < 0 {
		errs = append(errs, "rig.history_size must not be negative")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors: %s", strings.Join(errs, "; "))
	}
	return nil
}

// GetReadTimeout returns the API read timeout as a Duration.
func (c *Config) GetReadTimeout() time.Duration {
	return time.Duration(c.API.Timeouts.Read) * time.Second
}

// GetWriteTimeout returns the API write timeout as a Duration.
func (c *Config) GetWriteTimeout() time.Duration {
	return time.Duration(c.API.Timeouts.Write) * time.Second
}

// GetIdleTimeout returns the API idle timeout as a Duration.
func (c *Config) GetIdleTimeout() time.Duration {
	return time.Duration(c.API.Timeouts.Idle) * time.Second
}
