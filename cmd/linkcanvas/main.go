/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"linkcanvas/internal/config"
	"linkcanvas/internal/connector"
	"linkcanvas/internal/crash"
	"linkcanvas/internal/export"
	applog "linkcanvas/internal/log"
	"linkcanvas/internal/scene"
	"linkcanvas/internal/vector"
	"linkcanvas/internal/version"
)

// envConfig names an explicit config file, overriding the per-user one.
const envConfig = "LC_CONFIG"

func usage(w io.Writer) {
	fmt.Fprintln(w, "linkcanvas: connector geometry for node diagrams")
	fmt.Fprintf(w, "Version: %s\n", version.String())
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  linkcanvas version|-v|--version                   Show version")
	fmt.Fprintln(w, "  linkcanvas resolve <scene.json>                   Print every link's route as JSON")
	fmt.Fprintln(w, "  linkcanvas plan <scene.json> <x1> <y1> <x2> <y2> [out.json]")
	fmt.Fprintln(w, "                                                    Add a link drawn between two points")
	fmt.Fprintln(w, "  linkcanvas bend <scene.json> <link> <x> <y> [out.json]")
	fmt.Fprintln(w, "                                                    Curve a link through a point")
	fmt.Fprintln(w, "  linkcanvas straighten <scene.json> <link> [out.json]")
	fmt.Fprintln(w, "  linkcanvas move <scene.json> <node> <x> <y> [out.json]")
	fmt.Fprintln(w, "                                                    Move a node's top-left corner")
	fmt.Fprintln(w, "  linkcanvas pin <scene.json> <link> [out.json]     Keep both ends on their current sides")
	fmt.Fprintln(w, "  linkcanvas preview <scene.json> <out.svg|out.pdf|out.png>")
	fmt.Fprintln(w, "  linkcanvas config [init]                          Show or write the config file")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Edits print the updated scene unless out.json is given.")
}

func main() {
	target := &crash.Target{}
	defer crash.Recover(target)
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr, target))
}

// usageError marks errors that should be followed by the usage text.
type usageError struct{ msg string }

func (e usageError) Error() string { return e.msg }

// run executes one command and returns the process exit code.
func run(args []string, stdout, stderr io.Writer, target *crash.Target) int {
	cfgPath := os.Getenv(envConfig)
	cfg, cfgErr := config.Load(cfgPath)
	logOpts := cfg.LogOptions()
	logOpts.Writer = stderr
	applog.Init(logOpts)
	l := applog.WithComponent("cli")
	if cfgErr != nil {
		l.Warn("config not loaded, using defaults", slog.Any("err", cfgErr))
	}
	l.Debug("start", slog.Int("args", len(args)))

	if len(args) == 0 {
		usage(stdout)
		return 0
	}
	c := &cli{cfg: cfg, st: cfg.EngineSettings(), out: stdout, target: target, log: l}
	var err error
	switch args[0] {
	case "version", "--version", "-v":
		fmt.Fprintln(stdout, version.String())
		return 0
	case "help", "--help", "-h":
		usage(stdout)
		return 0
	case "resolve":
		err = c.resolve(args[1:])
	case "plan":
		err = c.plan(args[1:])
	case "bend":
		err = c.bend(args[1:])
	case "straighten":
		err = c.straighten(args[1:])
	case "move":
		err = c.move(args[1:])
	case "pin":
		err = c.pin(args[1:])
	case "preview":
		err = c.preview(args[1:])
	case "config":
		err = c.config(cfgPath, args[1:])
	default:
		err = usageError{fmt.Sprintf("unknown command %q", args[0])}
	}
	if err == nil {
		return 0
	}
	fmt.Fprintln(stderr, "Error:", err)
	var ue usageError
	if errors.As(err, &ue) {
		usage(stderr)
		return 2
	}
	l.Error("command failed", slog.String("cmd", args[0]), slog.Any("err", err))
	return 1
}

type cli struct {
	cfg    config.AppConfig
	st     connector.Settings
	out    io.Writer
	target *crash.Target
	log    *slog.Logger
}

func (c *cli) load(path string) (*scene.Scene, error) {
	sc, err := scene.Load(path)
	if err != nil {
		return nil, err
	}
	c.target.Path, c.target.Scene = path, sc
	c.log.Debug("scene loaded", slog.String("path", path), slog.Int("nodes", len(sc.Nodes)), slog.Int("links", len(sc.Links)))
	return sc, nil
}

// finish saves the scene to out when given, else prints it.
func (c *cli) finish(sc *scene.Scene, out string) error {
	if out == "" {
		return sc.Encode(c.out)
	}
	if err := sc.Save(out); err != nil {
		return err
	}
	c.log.Info("scene saved", slog.String("path", out))
	return nil
}

func (c *cli) printJSON(v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(c.out, "%s\n", b)
	return err
}

func (c *cli) resolve(args []string) error {
	if len(args) != 1 {
		return usageError{"resolve requires <scene.json>"}
	}
	sc, err := c.load(args[0])
	if err != nil {
		return err
	}
	res := sc.Resolve(c.st)
	reports := make([]scene.Report, len(res))
	for i, r := range res {
		reports[i] = r.Report()
	}
	return c.printJSON(reports)
}

func (c *cli) plan(args []string) error {
	if len(args) != 5 && len(args) != 6 {
		return usageError{"plan requires <scene.json> <x1> <y1> <x2> <y2> [out.json]"}
	}
	nums, err := floats(args[1:5])
	if err != nil {
		return err
	}
	sc, err := c.load(args[0])
	if err != nil {
		return err
	}
	l, pl := sc.AddLink(vector.Pt{X: nums[0], Y: nums[1]}, vector.Pt{X: nums[2], Y: nums[3]}, c.st)
	if len(args) == 6 {
		if err := sc.Save(args[5]); err != nil {
			return err
		}
	}
	return c.printJSON(struct {
		Link  string       `json:"link"`
		Start endpointView `json:"start"`
		End   endpointView `json:"end"`
	}{l.ID, viewOf(pl.Start), viewOf(pl.End)})
}

func (c *cli) bend(args []string) error {
	if len(args) != 4 && len(args) != 5 {
		return usageError{"bend requires <scene.json> <link> <x> <y> [out.json]"}
	}
	nums, err := floats(args[2:4])
	if err != nil {
		return err
	}
	sc, err := c.load(args[0])
	if err != nil {
		return err
	}
	if err := sc.SetBend(args[1], vector.Pt{X: nums[0], Y: nums[1]}); err != nil {
		return err
	}
	return c.finish(sc, optional(args, 4))
}

func (c *cli) straighten(args []string) error {
	if len(args) != 2 && len(args) != 3 {
		return usageError{"straighten requires <scene.json> <link> [out.json]"}
	}
	sc, err := c.load(args[0])
	if err != nil {
		return err
	}
	if err := sc.ResetBend(args[1]); err != nil {
		return err
	}
	return c.finish(sc, optional(args, 2))
}

func (c *cli) move(args []string) error {
	if len(args) != 4 && len(args) != 5 {
		return usageError{"move requires <scene.json> <node> <x> <y> [out.json]"}
	}
	nums, err := floats(args[2:4])
	if err != nil {
		return err
	}
	sc, err := c.load(args[0])
	if err != nil {
		return err
	}
	if err := sc.MoveNode(args[1], vector.Pt{X: nums[0], Y: nums[1]}, c.st); err != nil {
		return err
	}
	return c.finish(sc, optional(args, 4))
}

func (c *cli) pin(args []string) error {
	if len(args) != 2 && len(args) != 3 {
		return usageError{"pin requires <scene.json> <link> [out.json]"}
	}
	sc, err := c.load(args[0])
	if err != nil {
		return err
	}
	if err := sc.PinLink(args[1], c.st); err != nil {
		return err
	}
	return c.finish(sc, optional(args, 2))
}

func (c *cli) preview(args []string) error {
	if len(args) != 2 {
		return usageError{"preview requires <scene.json> <out.svg|out.pdf|out.png>"}
	}
	sc, err := c.load(args[0])
	if err != nil {
		return err
	}
	opts := export.Options{Margin: c.cfg.Preview.Margin, Scale: c.cfg.Preview.Scale, Labels: c.cfg.Preview.Labels}
	return export.Write(args[1], sc, sc.Resolve(c.st), opts)
}

func (c *cli) config(path string, args []string) error {
	switch {
	case len(args) == 0:
		b, err := yaml.Marshal(c.cfg)
		if err != nil {
			return err
		}
		if _, err := c.out.Write(b); err != nil {
			return err
		}
		for _, key := range []string{"engine.inset", "engine.iterations", "engine.anchor_size", "preview.margin", "logging.level", "logging.format", "logging.source", "logging.file"} {
			if name, ok := config.EnvOverrideFor(key); ok {
				fmt.Fprintf(c.out, "# %s overridden by %s\n", key, name)
			}
		}
		return nil
	case len(args) == 1 && args[0] == "init":
		if path == "" {
			p, err := config.ConfigPath()
			if err != nil {
				return err
			}
			path = p
		}
		if err := config.Save(config.Defaults(), path); err != nil {
			return err
		}
		fmt.Fprintln(c.out, "Wrote", path)
		return nil
	default:
		return usageError{"config takes no arguments or 'init'"}
	}
}

// endpointView is the JSON shape of a planned endpoint.
type endpointView struct {
	Kind  string    `json:"kind"`
	Node  string    `json:"node,omitempty"`
	Point vector.Pt `json:"point"`
}

func viewOf(ep connector.Endpoint) endpointView {
	v := endpointView{Point: connector.LastPoint(ep)}
	switch e := ep.(type) {
	case connector.AttachedLive:
		v.Kind, v.Node = "attached", e.NodeID
	case connector.AttachedDirection:
		v.Kind, v.Node = "pinned", e.NodeID
	default:
		v.Kind = "free"
	}
	return v
}

func floats(ss []string) ([]float64, error) {
	out := make([]float64, len(ss))
	for i, s := range ss {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, usageError{fmt.Sprintf("not a number: %q", s)}
		}
		out[i] = v
	}
	return out, nil
}

func optional(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}
