/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package crash /*

package crash

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"linkcanvas/internal/connector"
	"linkcanvas/internal/scene"
	"linkcanvas/internal/vector"
)

func TestWriteReportCreatesFileInTemp(t *testing.T) {
	path, err := writeReport(nil, "boom", []byte("stacktrace"))
	if err != nil {
		t.Fatalf("writeReport error: %v", err)
	}
	t.Cleanup(func() { _ = os.Remove(path) })
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	s := string(b)
	if !strings.Contains(s, "linkcanvas crash report") {
		t.Fatalf("report header missing")
	}
	if !strings.Contains(s, "Panic: boom") {
		t.Fatalf("panic content missing: %s", s)
	}
}

func TestWriteReportNextToScene(t *testing.T) {
	dir := t.TempDir()
	sc := scene.New()
	_ = sc.AddNode(scene.Node{Node: connector.Node{ID: "a", Shape: vector.NewShape(vector.Rectangle, 0, 0, 10, 10)}})
	target := &Target{Path: filepath.Join(dir, "board.json"), Scene: sc}

	path, err := writeReport(target, "kaboom", []byte("stack"))
	if err != nil {
		t.Fatalf("writeReport error: %v", err)
	}
	if filepath.Dir(path) != dir {
		t.Fatalf("expected crash report in %s, got %s", dir, path)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	if !strings.Contains(string(b), "Nodes: 1 Links: 0") {
		t.Fatalf("scene summary missing: %s", b)
	}
}

func TestRescueWithoutSceneIsNoop(t *testing.T) {
	path, err := rescue(&Target{Path: "ignored.json"})
	if err != nil || path != "" {
		t.Fatalf("rescue = %q, %v", path, err)
	}
}
