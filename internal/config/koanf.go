// VibeMatch - AI Date Spot Recommendations
// Copyright 2026 JennePenne (JennePenne123)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/JennePenne123/vibematch

package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order
// of priority. The first file found wins.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/vibematch/config.yaml",
	"/etc/vibematch/config.yml",
}

// ConfigPathEnvVar overrides the config file path when set.
const ConfigPathEnvVar = "CONFIG_PATH"

// envPrefix namespaces every VibeMatch environment variable.
const envPrefix = "VIBEMATCH_"

// Load builds the configuration from defaults, an optional YAML file, and
// environment variables, then validates the result.
func Load() (*Config, error) {
	k := koanf.New(".")

	// Layer 1: struct defaults
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: optional config file
	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: environment variables (highest priority)
	// VIBEMATCH_FOURSQUARE_API_KEY -> foursquare.api_key
	// VIBEMATCH_AGGREGATOR_STRATEGY -> aggregator.strategy
	if err := k.Load(env.Provider(envPrefix, ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	// Comma-separated env values for known slice fields
	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile searches for a config file in the default paths.
// Returns the path to the first file found, or empty string if none found.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// envTransformFunc converts an environment variable name to a koanf path.
// The first underscore after the prefix separates the section; the rest of
// the name is the key within it:
//
//	VIBEMATCH_SERVER_PORT           -> server.port
//	VIBEMATCH_FOURSQUARE_API_KEY    -> foursquare.api_key
//	VIBEMATCH_AGGREGATOR_MIN_RESULTS -> aggregator.min_results
func envTransformFunc(key string) string {
	key = strings.ToLower(strings.TrimPrefix(key, envPrefix))

	parts := strings.SplitN(key, "_", 2)
	if len(parts) != 2 {
		return key
	}
	return parts[0] + "." + parts[1]
}

// sliceConfigPaths lists config paths parsed as comma-separated slices when
// supplied via environment variables.
var sliceConfigPaths = []string{
	"api.cors_origins",
}

// processSliceFields converts comma-separated string values to slices for
// known slice fields. Env vars come in as plain strings, but the config
// struct expects slices.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		val := k.Get(path)
		if val == nil {
			continue
		}

		// Already a slice (from YAML file or defaults)
		if _, ok := val.([]interface{}); ok {
			continue
		}
		if _, ok := val.([]string); ok {
			continue
		}

		str, ok := val.(string)
		if !ok {
			return fmt.Errorf("config path %s has unexpected type %T", path, val)
		}

		parts := strings.Split(str, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				out = append(out, trimmed)
			}
		}
		if err := k.Set(path, out); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}
