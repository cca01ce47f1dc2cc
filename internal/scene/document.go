/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package scene

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"strings"

	gojsonschema "github.com/xeipuuv/gojsonschema"

	"linkcanvas/internal/connector"
	"linkcanvas/internal/vector"
)

//go:embed scene.schema.json
var schemaJSON []byte

// Schema returns the JSON schema scene documents are validated against.
func Schema() []byte { return bytes.Clone(schemaJSON) }

type document struct {
	Version int       `json:"version"`
	Nodes   []nodeDoc `json:"nodes"`
	Links   []linkDoc `json:"links,omitempty"`
}

type nodeDoc struct {
	ID        string           `json:"id"`
	Kind      vector.ShapeKind `json:"kind"`
	X         float64          `json:"x"`
	Y         float64          `json:"y"`
	Width     *float64         `json:"width,omitempty"`
	Height    *float64         `json:"height,omitempty"`
	Z         int              `json:"z,omitempty"`
	Auxiliary bool             `json:"auxiliary,omitempty"`
	Label     string           `json:"label,omitempty"`
}

type endpointDoc struct {
	Node      string     `json:"node,omitempty"`
	Direction *vector.Pt `json:"direction,omitempty"`
	Point     *vector.Pt `json:"point,omitempty"`
	Last      *vector.Pt `json:"last,omitempty"`
}

type linkDoc struct {
	ID     string      `json:"id"`
	Source endpointDoc `json:"source"`
	Target endpointDoc `json:"target"`
	Bend   *vector.Pt  `json:"bend,omitempty"`
}

// Parse validates data against the scene schema and decodes it.
func Parse(data []byte) (*Scene, error) {
	res, err := gojsonschema.Validate(gojsonschema.NewBytesLoader(schemaJSON), gojsonschema.NewBytesLoader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidScene, err)
	}
	if !res.Valid() {
		msgs := make([]string, 0, len(res.Errors()))
		for _, e := range res.Errors() {
			msgs = append(msgs, e.String())
		}
		return nil, fmt.Errorf("%w: %s", ErrInvalidScene, strings.Join(msgs, "; "))
	}
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidScene, err)
	}
	return fromDocument(doc)
}

// Load reads and parses a scene file.
func Load(path string) (*Scene, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scene: %w", err)
	}
	s, err := Parse(b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Encode writes the scene as indented JSON.
func (s *Scene) Encode(w io.Writer) error {
	data, err := json.MarshalIndent(s.document(), "", "  ")
	if err != nil {
		return fmt.Errorf("marshal scene: %w", err)
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}

// Save writes the scene to path through a synced temp file in the same
// directory that is then renamed over the target.
func (s *Scene) Save(path string) error {
	if strings.TrimSpace(path) == "" {
		return errors.New("scene path is required")
	}
	var buf bytes.Buffer
	if err := s.Encode(&buf); err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create scene dir: %w", err)
	}
	temp := filepath.Join(dir, fmt.Sprintf(".%s.tmp-%d-%d", filepath.Base(path), os.Getpid(), rand.Int()))
	if err := writeFileSync(temp, buf.Bytes()); err != nil {
		_ = os.Remove(temp)
		return fmt.Errorf("write temp scene: %w", err)
	}
	// Windows refuses to rename over an existing file.
	if _, err := os.Stat(path); err == nil {
		_ = os.Remove(path)
	}
	if err := os.Rename(temp, path); err != nil {
		_ = os.Remove(temp)
		return fmt.Errorf("replace scene: %w", err)
	}
	return nil
}

// writeFileSync writes data to a file, ensures it is flushed to disk.
func writeFileSync(path string, data []byte) (err error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	if _, err := f.Write(data); err != nil {
		return err
	}
	return f.Sync()
}

func fromDocument(doc document) (*Scene, error) {
	s := New()
	for _, nd := range doc.Nodes {
		w, h := vector.MinExtent, vector.MinExtent
		if nd.Width != nil {
			w = *nd.Width
		}
		if nd.Height != nil {
			h = *nd.Height
		}
		n := Node{
			Node: connector.Node{
				ID:        nd.ID,
				Shape:     vector.NewShape(nd.Kind, nd.X, nd.Y, w, h),
				Z:         nd.Z,
				Auxiliary: nd.Auxiliary,
			},
			Label: nd.Label,
		}
		if err := s.AddNode(n); err != nil {
			return nil, err
		}
	}
	for _, ld := range doc.Links {
		if s.taken(ld.ID) {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateID, ld.ID)
		}
		src, err := ld.Source.endpoint()
		if err != nil {
			return nil, fmt.Errorf("%w: link %s source: %v", ErrInvalidScene, ld.ID, err)
		}
		tgt, err := ld.Target.endpoint()
		if err != nil {
			return nil, fmt.Errorf("%w: link %s target: %v", ErrInvalidScene, ld.ID, err)
		}
		if s.dangling(ld.Source) {
			return nil, fmt.Errorf("%w: link %s source: %s has no last point", ErrUnknownNode, ld.ID, ld.Source.Node)
		}
		if s.dangling(ld.Target) {
			return nil, fmt.Errorf("%w: link %s target: %s has no last point", ErrUnknownNode, ld.ID, ld.Target.Node)
		}
		l := connector.Link{ID: ld.ID, Source: src, Target: tgt}
		if ld.Bend != nil {
			l.SetBend(*ld.Bend)
		}
		s.Links = append(s.Links, l)
	}
	return s, nil
}

// dangling reports an end that names a missing node and carries no last
// point to fall back to.
func (s *Scene) dangling(d endpointDoc) bool {
	if d.Node == "" || d.Last != nil {
		return false
	}
	_, ok := s.Node(d.Node)
	return !ok
}

func (d endpointDoc) endpoint() (connector.Endpoint, error) {
	var last vector.Pt
	if d.Last != nil {
		last = *d.Last
	}
	switch {
	case d.Point != nil:
		return connector.FreeAnchor{Point: *d.Point}, nil
	case d.Node != "" && d.Direction != nil:
		return connector.AttachedDirection{NodeID: d.Node, Direction: vector.Normalize(*d.Direction), Last: last}, nil
	case d.Node != "":
		return connector.AttachedLive{NodeID: d.Node, Last: last}, nil
	default:
		return nil, errors.New("endpoint needs a node or a point")
	}
}

func endpointDocOf(ep connector.Endpoint) endpointDoc {
	switch e := ep.(type) {
	case connector.FreeAnchor:
		p := e.Point
		return endpointDoc{Point: &p}
	case connector.AttachedDirection:
		d, last := e.Direction, e.Last
		return endpointDoc{Node: e.NodeID, Direction: &d, Last: &last}
	case connector.AttachedLive:
		last := e.Last
		return endpointDoc{Node: e.NodeID, Last: &last}
	default:
		return endpointDoc{}
	}
}

func (s *Scene) document() document {
	doc := document{Version: Version, Nodes: make([]nodeDoc, 0, len(s.Nodes))}
	for _, n := range s.Nodes {
		w, h := n.Shape.Size.W, n.Shape.Size.H
		doc.Nodes = append(doc.Nodes, nodeDoc{
			ID:        n.ID,
			Kind:      n.Shape.Kind,
			X:         n.Shape.Pos.X,
			Y:         n.Shape.Pos.Y,
			Width:     &w,
			Height:    &h,
			Z:         n.Z,
			Auxiliary: n.Auxiliary,
			Label:     n.Label,
		})
	}
	for _, l := range s.Links {
		ld := linkDoc{ID: l.ID, Source: endpointDocOf(l.Source), Target: endpointDocOf(l.Target)}
		if l.Bend != nil {
			b := *l.Bend
			ld.Bend = &b
		}
		doc.Links = append(doc.Links, ld)
	}
	return doc
}
