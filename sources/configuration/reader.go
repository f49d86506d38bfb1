package configuration

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"reportassist/sources/platform"
	"reportassist/sources/tracing"

	"gopkg.in/yaml.v3"
)

var envPattern = regexp.MustCompile(`\$\{([a-zA-Z_][a-zA-Z0-9_]*)(?::([^}]*))?\}`)

// NewYaml reads the configuration from CONFIG_PATH (default: config.yaml).
// A missing file yields the defaults; unset fields are filled from defaults too.
func NewYaml(log *tracing.Logger) (*Config, error) {
	defer tracing.ProfilePoint(log, "Configuration loaded", "configuration.load")()

	filePath := platform.Get("CONFIG_PATH", "config.yaml")
	log.I("reading configuration", "path", filePath)

	content, err := os.ReadFile(filePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			log.W("configuration file not found, using defaults", "path", filePath)
			return Default(), nil
		}
		log.E("failed to read configuration file", tracing.InnerError, err, "path", filePath)
		return nil, fmt.Errorf("failed to read configuration file: %w", err)
	}

	config, err := Parse(content)
	if err != nil {
		log.E("failed to parse configuration file", tracing.InnerError, err, "path", filePath)
		return nil, err
	}

	return config, nil
}

// Parse decodes YAML content after ${VAR} / ${VAR:default} expansion.
func Parse(content []byte) (*Config, error) {
	var config Config
	if err := yaml.Unmarshal([]byte(expandEnv(string(content))), &config); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file: %w", err)
	}
	applyDefaults(&config)
	return &config, nil
}

func expandEnv(content string) string {
	return envPattern.ReplaceAllStringFunc(content, func(match string) string {
		matches := envPattern.FindStringSubmatch(match)
		if value, exists := os.LookupEnv(matches[1]); exists {
			return value
		}
		return matches[2]
	})
}
