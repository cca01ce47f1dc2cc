/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package crash /*

// Package crash turns a panic in the command line into a report file and a
// rescue copy of the scene being edited.
package crash

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"strings"
	"time"

	applog "linkcanvas/internal/log"
	"linkcanvas/internal/scene"
	"linkcanvas/internal/version"
)

// exitFn is used to allow testing of Recover without terminating the test process.
var exitFn = os.Exit

// Target is the document a command is working on. Both fields are optional.
type Target struct {
	Path  string
	Scene *scene.Scene
}

// Recover captures a panic, logs it with the stack, writes a report file
// and, when the target holds a scene, saves a rescue copy of it.
//
// Usage: defer crash.Recover(target)
func Recover(t *Target) {
	r := recover()
	if r == nil {
		return
	}
	l := applog.WithComponent("crash")
	stack := debug.Stack()
	l.Error("panic recovered", slog.Any("panic", r), slog.String("stack", string(stack)))

	reportPath, err := writeReport(t, r, stack)
	if err != nil {
		l.Error("write crash report failed", slog.Any("err", err))
	}
	if path, err := rescue(t); err != nil {
		l.Error("rescue copy failed", slog.Any("err", err))
	} else if path != "" {
		l.Info("rescue copy written", slog.String("path", path))
	}

	_, _ = fmt.Fprintf(os.Stderr, "A fatal error occurred. A crash report was saved to: %s\n", reportPath)
	_, _ = fmt.Fprintf(os.Stderr, "Version: %s\nOS/Arch: %s/%s\n", version.String(), runtime.GOOS, runtime.GOARCH)
	exitFn(2)
}

func stamp() string { return time.Now().Format("20060102-150405") }

// reportDir is the scene's directory when known, the temp dir otherwise.
func reportDir(t *Target) string {
	if t != nil && t.Path != "" {
		return filepath.Dir(t.Path)
	}
	return os.TempDir()
}

func writeReport(t *Target, panicVal any, stack []byte) (string, error) {
	dir := reportDir(t)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, fmt.Sprintf("crash-%s.log", stamp()))

	var buf bytes.Buffer
	_, _ = fmt.Fprintf(&buf, "linkcanvas crash report\n")
	_, _ = fmt.Fprintf(&buf, "Timestamp: %s\n", time.Now().Format(time.RFC3339))
	_, _ = fmt.Fprintf(&buf, "Version: %s\n", version.String())
	_, _ = fmt.Fprintf(&buf, "OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
	if t != nil && t.Path != "" {
		_, _ = fmt.Fprintf(&buf, "Scene: %s\n", t.Path)
	}
	if t != nil && t.Scene != nil {
		_, _ = fmt.Fprintf(&buf, "Nodes: %d Links: %d\n", len(t.Scene.Nodes), len(t.Scene.Links))
	}
	_, _ = fmt.Fprintf(&buf, "\nPanic: %v\n\n", panicVal)
	_, _ = fmt.Fprintf(&buf, "Stack:\n%s\n", string(stack))

	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return path, err
	}
	defer func() {
		if err := f.Close(); err != nil {
			applog.WithComponent("crash").Error("failed to close crash report file", slog.Any("err", err), slog.String("path", path))
		}
	}()
	if _, err := f.Write(buf.Bytes()); err != nil {
		return path, err
	}
	_ = f.Sync()
	return path, nil
}

// rescue saves the in-memory scene beside its file as
// <name>.crash-<stamp>.json. It returns "" when there is nothing to save.
func rescue(t *Target) (string, error) {
	if t == nil || t.Scene == nil {
		return "", nil
	}
	name := "scene"
	if t.Path != "" {
		name = strings.TrimSuffix(filepath.Base(t.Path), filepath.Ext(t.Path))
	}
	path := filepath.Join(reportDir(t), fmt.Sprintf("%s.crash-%s.json", name, stamp()))
	return path, t.Scene.Save(path)
}
