/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"linkcanvas/internal/connector"
	applog "linkcanvas/internal/log"
)

// AppConfig is the user-editable configuration persisted to a YAML file in the user scope.
// Environment variables are treated as read-only overrides at runtime.
//
// config_version: bump when the structure changes in a backward-incompatible way.
// Keys missing from the file keep their defaults.
type AppConfig struct {
	ConfigVersion int           `yaml:"config_version"`
	Engine        EngineConfig  `yaml:"engine"`
	Preview       PreviewConfig `yaml:"preview"`
	Logging       LoggingConfig `yaml:"logging"`
}

// EngineConfig tunes link geometry.
type EngineConfig struct {
	Inset      float64 `yaml:"inset"`
	Iterations int     `yaml:"iterations"`
	AnchorSize float64 `yaml:"anchor_size"`
}

// PreviewConfig tunes the diagnostic plots.
type PreviewConfig struct {
	Margin float64 `yaml:"margin"`
	Scale  float64 `yaml:"scale"`
	Labels bool    `yaml:"labels"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Source bool   `yaml:"source"`
	File   string `yaml:"file"`
}

// Defaults returns the application defaults.
func Defaults() AppConfig {
	st := connector.DefaultSettings()
	return AppConfig{
		ConfigVersion: 1,
		Engine:        EngineConfig{Inset: st.Inset, Iterations: st.Iterations, AnchorSize: st.AnchorSize},
		Preview:       PreviewConfig{Margin: 40, Scale: 1, Labels: true},
		Logging:       LoggingConfig{Level: "info", Format: "console"},
	}
}

// Env var names used as overrides.
const (
	EnvEngineInset      = "LC_ENGINE_INSET"
	EnvEngineIterations = "LC_ENGINE_ITERATIONS"
	EnvEngineAnchorSize = "LC_ENGINE_ANCHOR_SIZE"
	EnvPreviewMargin    = "LC_PREVIEW_MARGIN"
	EnvLogLevel         = "LC_LOG_LEVEL"
	EnvLogFormat        = "LC_LOG_FORMAT"
	EnvLogSource        = "LC_LOG_SOURCE"
	EnvLogFile          = "LC_LOG_FILE"
)

// envKeys maps dotted config keys to their override variables.
var envKeys = map[string]string{
	"engine.inset":       EnvEngineInset,
	"engine.iterations":  EnvEngineIterations,
	"engine.anchor_size": EnvEngineAnchorSize,
	"preview.margin":     EnvPreviewMargin,
	"logging.level":      EnvLogLevel,
	"logging.format":     EnvLogFormat,
	"logging.source":     EnvLogSource,
	"logging.file":       EnvLogFile,
}

// ConfigPath returns the per-user config file path.
func ConfigPath() (string, error) {
	var base string
	switch runtime.GOOS {
	case "windows":
		base = os.Getenv("AppData")
		if base == "" {
			base = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		base = filepath.Join(base, "LinkCanvas")
	case "darwin":
		base = filepath.Join(os.Getenv("HOME"), "Library", "Application Support", "LinkCanvas")
	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			base = filepath.Join(xdg, "linkcanvas")
		} else {
			base = filepath.Join(os.Getenv("HOME"), ".config", "linkcanvas")
		}
	}
	if base == "" {
		return "", errors.New("cannot resolve config directory")
	}
	return filepath.Join(base, "config.yaml"), nil
}

// Load reads the config file at path (the per-user file when path is
// empty), applies it over the defaults and merges environment overrides.
// A missing file is not an error.
func Load(path string) (AppConfig, error) {
	cfg := Defaults()
	if path == "" {
		p, err := ConfigPath()
		if err != nil {
			return cfg, err
		}
		path = p
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Defaults(), fmt.Errorf("parse %s: %w", path, err)
		}
	case !errors.Is(err, os.ErrNotExist):
		return cfg, fmt.Errorf("read config: %w", err)
	}
	normalize(&cfg)
	applyEnvOverrides(&cfg)
	return cfg, nil
}

// Save writes cfg as YAML to path (the per-user file when path is empty).
func Save(cfg AppConfig, path string) error {
	if path == "" {
		p, err := ConfigPath()
		if err != nil {
			return err
		}
		path = p
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

func normalize(cfg *AppConfig) {
	cfg.Logging.Level = strings.ToLower(strings.TrimSpace(cfg.Logging.Level))
	cfg.Logging.Format = strings.ToLower(strings.TrimSpace(cfg.Logging.Format))
	cfg.Logging.File = strings.TrimSpace(cfg.Logging.File)
	if cfg.Preview.Scale <= 0 {
		cfg.Preview.Scale = 1
	}
	if cfg.Preview.Margin < 0 {
		cfg.Preview.Margin = 0
	}
}

func applyEnvOverrides(cfg *AppConfig) {
	if v, ok := envFloat(EnvEngineInset); ok {
		cfg.Engine.Inset = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvEngineIterations)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Engine.Iterations = n
		}
	}
	if v, ok := envFloat(EnvEngineAnchorSize); ok {
		cfg.Engine.AnchorSize = v
	}
	if v, ok := envFloat(EnvPreviewMargin); ok && v >= 0 {
		cfg.Preview.Margin = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFormat)); v != "" {
		cfg.Logging.Format = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogSource)); v != "" {
		lv := strings.ToLower(v)
		cfg.Logging.Source = lv == "1" || lv == "true" || lv == "on" || lv == "yes"
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFile)); v != "" {
		cfg.Logging.File = v
	}
}

func envFloat(key string) (float64, bool) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// EnvOverrideFor returns the env var name if the field is overridden by environment variables.
func EnvOverrideFor(key string) (string, bool) {
	name, ok := envKeys[key]
	if !ok || os.Getenv(name) == "" {
		return "", false
	}
	return name, true
}

// EngineSettings maps the engine section onto connector settings. Values
// out of range fall back to the defaults.
func (c AppConfig) EngineSettings() connector.Settings {
	return connector.Settings{
		Inset:      c.Engine.Inset,
		Iterations: c.Engine.Iterations,
		AnchorSize: c.Engine.AnchorSize,
	}.Sanitized()
}

// LogOptions maps the logging section onto logger options.
func (c AppConfig) LogOptions() applog.Options {
	return applog.Options{
		Level:     c.Logging.Level,
		Format:    c.Logging.Format,
		AddSource: c.Logging.Source,
		File:      c.Logging.File,
	}
}
