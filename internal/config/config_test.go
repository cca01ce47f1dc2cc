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
	"os"
	"path/filepath"
	"testing"

	"linkcanvas/internal/connector"
)

func missingPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "config.yaml")
}

func TestLoad_MissingFileGivesDefaults(t *testing.T) {
	cfg, err := Load(missingPath(t))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg != Defaults() {
		t.Fatalf("cfg = %#v, want defaults", cfg)
	}
	if st := cfg.EngineSettings(); st != connector.DefaultSettings() {
		t.Fatalf("EngineSettings = %#v", st)
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := missingPath(t)
	data := []byte("engine:\n  inset: 0\npreview:\n  labels: false\nlogging:\n  level: \" DEBUG \"\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Engine.Inset != 0 {
		t.Fatalf("explicit zero inset lost: %v", cfg.Engine.Inset)
	}
	if cfg.Engine.Iterations != 20 || cfg.Engine.AnchorSize != 12 {
		t.Fatalf("absent engine keys should keep defaults: %#v", cfg.Engine)
	}
	if cfg.Preview.Labels || cfg.Preview.Margin != 40 {
		t.Fatalf("preview: %#v", cfg.Preview)
	}
	if cfg.Logging.Level != "debug" {
		t.Fatalf("level not normalized: %q", cfg.Logging.Level)
	}
}

func TestLoad_BadYAML(t *testing.T) {
	path := missingPath(t)
	if err := os.WriteFile(path, []byte("engine: [unclosed"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := Load(path)
	if err == nil {
		t.Fatalf("expected parse error")
	}
	if cfg != Defaults() {
		t.Fatalf("failed load should still return defaults: %#v", cfg)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.yaml")
	cfg := Defaults()
	cfg.Engine.Iterations = 32
	cfg.Preview.Scale = 2
	if err := Save(cfg, path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != cfg {
		t.Fatalf("got %#v, want %#v", got, cfg)
	}
}

func TestEnvOverridesEngine(t *testing.T) {
	old := os.Getenv(EnvEngineIterations)
	_ = os.Setenv(EnvEngineIterations, "40")
	t.Cleanup(func() { _ = os.Setenv(EnvEngineIterations, old) })
	t.Setenv(EnvEngineInset, "2.5")
	t.Setenv(EnvEngineAnchorSize, "not-a-number")
	t.Setenv(EnvPreviewMargin, "-3")

	cfg, err := Load(missingPath(t))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Engine.Iterations != 40 || cfg.Engine.Inset != 2.5 {
		t.Fatalf("engine overrides not applied: %#v", cfg.Engine)
	}
	if cfg.Engine.AnchorSize != 12 || cfg.Preview.Margin != 40 {
		t.Fatalf("invalid overrides should be ignored: %#v %#v", cfg.Engine, cfg.Preview)
	}
	if name, ok := EnvOverrideFor("engine.iterations"); !ok || name != EnvEngineIterations {
		t.Fatalf("EnvOverrideFor = %q, %v", name, ok)
	}
	if _, ok := EnvOverrideFor("engine.anchor_size"); !ok {
		t.Fatalf("a set variable counts as an override even when unparsable")
	}
	if _, ok := EnvOverrideFor("preview.scale"); ok {
		t.Fatalf("preview.scale has no override")
	}
}

func TestEnvOverridesLogging(t *testing.T) {
	t.Setenv(EnvLogLevel, "error")
	t.Setenv(EnvLogFormat, "JSON")
	t.Setenv(EnvLogSource, "1")
	t.Setenv(EnvLogFile, "X:/lc.log")
	cfg, err := Load(missingPath(t))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	opts := cfg.LogOptions()
	if opts.Level != "error" || opts.Format != "json" || !opts.AddSource || opts.File != "X:/lc.log" {
		t.Fatalf("env overrides not applied to logging: %#v", opts)
	}
}

func TestEngineSettingsSanitized(t *testing.T) {
	cfg := Defaults()
	cfg.Engine = EngineConfig{Inset: -1, Iterations: 0, AnchorSize: 0}
	if st := cfg.EngineSettings(); st != connector.DefaultSettings() {
		t.Fatalf("out-of-range engine values should fall back: %#v", st)
	}
}
