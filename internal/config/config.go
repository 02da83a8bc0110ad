package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/pkg/errors"
)

// A Config holds the runtime configuration of the service.
type Config struct {
	Host         string
	Port         int
	Debug        bool
	DatabasePath string // empty means process-local memory
	LogFile      string
}

// Address returns the address the server listens on.
func (c *Config) Address() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

var defaults = map[string]any{
	"host":  "0.0.0.0",
	"port":  8000,
	"debug": false,
}

// environment maps the supported environment variables to their configuration keys.
var environment = map[string]string{
	"HOST":          "host",
	"PORT":          "port",
	"DEBUG":         "debug",
	"DATABASE_PATH": "database_path",
	"LOG_FILE":      "log_file",
}

// Load reads the configuration from the defaults, the optional YAML file,
// the optional .env file of the working directory and the environment (in that order of precedence).
func Load(filename string) (*Config, error) {
	konf := koanf.New(".")
	if err := konf.Load(confmap.Provider(defaults, "."), nil); err != nil {
		return nil, errors.Wrap(err, "could not load defaults")
	}

	if filename != "" {
		if err := konf.Load(file.Provider(filename), yaml.Parser()); err != nil {
			return nil, errors.Wrap(err, "could not load configuration file")
		}
	}

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, errors.Wrap(err, "could not load .env")
	}

	err := konf.Load(env.ProviderWithValue("", ".", func(key, value string) (string, any) {
		k, ok := environment[key]
		if !ok {
			return "", nil
		}
		if k == "debug" {
			return k, strings.ToLower(value) == "true"
		}
		return k, value
	}), nil)
	if err != nil {
		return nil, errors.Wrap(err, "could not load environment")
	}

	raw := fmt.Sprint(konf.Get("port"))
	port, err := strconv.Atoi(raw)
	if err != nil || port <= 0 || port > 65535 {
		return nil, errors.Errorf("invalid port: %q", raw)
	}

	return &Config{
		Host:         konf.String("host"),
		Port:         port,
		Debug:        konf.Bool("debug"),
		DatabasePath: konf.String("database_path"),
		LogFile:      konf.String("log_file"),
	}, nil
}
