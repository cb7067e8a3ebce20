package shared

import (
	_ "embed"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Cassandra CassandraConfig `toml:"cassandra"`
	Log       LogConfig       `toml:"log"`
}

// CassandraConfig contains cluster connection settings.
type CassandraConfig struct {
	Hosts      []string `toml:"hosts"`
	Port       int      `toml:"port"`
	Keyspace   string   `toml:"keyspace"`
	Username   string   `toml:"username"`
	Password   string   `toml:"password"`
	Replicas   int      `toml:"replicas"`
	MaxRetries int      `toml:"max_retries"`
	RetryDelay Duration `toml:"retry_delay"`
}

// LogConfig contains logging settings. An empty File logs to stderr.
type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// Duration wraps [time.Duration] so TOML values can be written as "2s".
type Duration time.Duration

// UnmarshalText implements [encoding.TextUnmarshaler].
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	*d = Duration(v)
	return nil
}

// Std returns the wrapped [time.Duration].
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrMissingConfig, path)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	// Check if file already exists
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%w: config file already exists at %s", ErrInvalidArgument, path)
	}

	// Write the embedded example config to the file
	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// ApplyEnv overlays environment variables onto the config: CASSANDRA_HOSTS
// (comma separated), CASSANDRA_PORT, CASSANDRA_KEYSPACE, CASSANDRA_USERNAME,
// CASSANDRA_PASSWORD, MAX_RETRIES, LOG_LEVEL and LOG_FILE.
//
// Unset variables leave file values alone. Numeric values that fail to parse
// are ignored.
func (c *Config) ApplyEnv() {
	if v, ok := os.LookupEnv("CASSANDRA_HOSTS"); ok {
		if hosts := SplitList(v); len(hosts) > 0 {
			c.Cassandra.Hosts = hosts
		}
	}
	if v, ok := os.LookupEnv("CASSANDRA_PORT"); ok {
		if port, err := strconv.Atoi(v); err == nil {
			c.Cassandra.Port = port
		}
	}
	if v, ok := os.LookupEnv("CASSANDRA_KEYSPACE"); ok {
		c.Cassandra.Keyspace = v
	}
	if v, ok := os.LookupEnv("CASSANDRA_USERNAME"); ok {
		c.Cassandra.Username = v
	}
	if v, ok := os.LookupEnv("CASSANDRA_PASSWORD"); ok {
		c.Cassandra.Password = v
	}
	if v, ok := os.LookupEnv("MAX_RETRIES"); ok {
		if retries, err := strconv.Atoi(v); err == nil {
			c.Cassandra.MaxRetries = retries
		}
	}
	if v, ok := os.LookupEnv("LOG_LEVEL"); ok {
		c.Log.Level = v
	}
	if v, ok := os.LookupEnv("LOG_FILE"); ok {
		c.Log.File = v
	}
}
