// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package flow converts a JSON-LD graph to a flow diagram of labelled nodes
// and typed edges, lays the nodes out by level, and converts diagrams back
// to JSON-LD.
package flow

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/pdiddy/knowgrph/internal/jsonld"
	"github.com/pdiddy/knowgrph/pkg/types"
)

const (
	diagramID          = "readme-flow"
	diagramTitle       = "README Example Flow"
	diagramDescription = "Visualization of the pipeline flow from README.md"
	layoutType         = "flow"

	importIDFormat       = "ui:flow_%03d"
	importSourceLocation = "README.md#Example Flow"
	importDomain         = "Technology"
	importStage          = "Planning"
	importSourceType     = "Documentation"
)

// Layout constants, in diagram units.
const (
	layoutTop      = 50.0
	layoutLeft     = 50.0
	levelHeight    = 120.0
	canvasWidth    = 800.0
	minNodeSpacing = 200.0
)

var whitespaceRe = regexp.MustCompile(`\s+`)

// FromDocument builds a diagram from the graph nodes of doc. Each node
// contributes its subject and object as diagram nodes, deduplicated by
// label, and an edge labelled with its predicate.
func FromDocument(doc *jsonld.Document, now time.Time) *types.FlowDiagram {
	d := &types.FlowDiagram{
		ID:          diagramID,
		Title:       diagramTitle,
		Description: diagramDescription,
		CreatedAt:   now.UTC().Format(time.RFC3339),
		LayoutType:  layoutType,
		Nodes:       []types.FlowNode{},
		Edges:       []types.FlowEdge{},
	}

	byLabel := make(map[string]string)
	usedIDs := make(map[string]bool)
	addNode := func(label string, item jsonld.Node) string {
		if id, ok := byLabel[label]; ok {
			return id
		}
		id := uniqueID(nodeID(label), usedIDs)
		byLabel[label] = id
		d.Nodes = append(d.Nodes, types.FlowNode{
			ID:       id,
			Label:    label,
			NodeType: NodeTypeFor(label),
			Data:     nodeData(item),
		})
		return id
	}

	for i, item := range doc.Graph {
		subject := item.Subject
		if subject == "" {
			subject = item.ID
		}
		if subject == "" {
			continue
		}
		source := addNode(subject, item)

		if item.Object == "" {
			continue
		}
		target := addNode(item.Object, item)

		if item.Predicate == "" {
			continue
		}
		d.Edges = append(d.Edges, types.FlowEdge{
			ID:       fmt.Sprintf("edge-%d", i),
			Source:   source,
			Target:   target,
			Label:    item.Predicate,
			EdgeType: EdgeTypeFor(item.Predicate),
		})
	}

	Layout(d)
	return d
}

// NodeTypeFor classifies a node by keywords in its label.
func NodeTypeFor(label string) types.FlowNodeType {
	l := strings.ToLower(label)
	switch {
	case containsAny(l, "markdown", "csv", "json"):
		return types.NodeInput
	case containsAny(l, "chart", "graph", "view"):
		return types.NodeOutput
	case containsAny(l, "engine", "query", "process"):
		return types.NodeProcess
	case containsAny(l, "decision", "evaluate"):
		return types.NodeDecision
	}
	return types.NodeProcess
}

// EdgeTypeFor classifies an edge by keywords in its predicate.
func EdgeTypeFor(predicate string) types.FlowEdgeType {
	p := strings.ToLower(predicate)
	switch {
	case containsAny(p, "transform", "convert"):
		return types.EdgeDefault
	case containsAny(p, "loop", "cycle"):
		return types.EdgeLoop
	case containsAny(p, "if", "condition"):
		return types.EdgeConditional
	}
	return types.EdgeDefault
}

// Layout positions nodes in rows by breadth-first level, starting from the
// nodes with no incoming edges. Nodes never reached sit on level 0. Each row
// is centered on the canvas.
func Layout(d *types.FlowDiagram) {
	incoming := make(map[string]int)
	outgoing := make(map[string][]string)
	for _, e := range d.Edges {
		incoming[e.Target]++
		outgoing[e.Source] = append(outgoing[e.Source], e.Target)
	}

	levels := make(map[string]int)
	var queue []string
	for _, n := range d.Nodes {
		if incoming[n.ID] == 0 {
			queue = append(queue, n.ID)
			levels[n.ID] = 0
		}
	}

	visited := make(map[string]bool)
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		if visited[current] {
			continue
		}
		visited[current] = true

		for _, target := range outgoing[current] {
			if visited[target] {
				continue
			}
			levels[target] = max(levels[target], levels[current]+1)
			queue = append(queue, target)
		}
	}

	rows := make(map[int][]int)
	for i, n := range d.Nodes {
		rows[levels[n.ID]] = append(rows[levels[n.ID]], i)
	}
	for level, row := range rows {
		count := float64(len(row))
		spacing := max(minNodeSpacing, canvasWidth/max(count, 1))
		startX := layoutLeft + max(0, (canvasWidth-(count-1)*spacing)/2)
		y := layoutTop + float64(level)*levelHeight
		for j, idx := range row {
			d.Nodes[idx].Position = types.Position{X: startX + float64(j)*spacing, Y: y}
		}
	}
}

// ToDocument converts each diagram edge to a graph node. The subject and
// object are the labels of the edge's endpoints.
func ToDocument(d *types.FlowDiagram) *jsonld.Document {
	labels := make(map[string]string, len(d.Nodes))
	kinds := make(map[string]types.EntityType, len(d.Nodes))
	for _, n := range d.Nodes {
		labels[n.ID] = n.Label
		kinds[n.ID] = entityTypeFor(n.NodeType)
	}

	records := make([]types.Record, 0, len(d.Edges))
	for i, e := range d.Edges {
		subject, ok := labels[e.Source]
		if !ok {
			subject = e.Source
		}
		object, ok := labels[e.Target]
		if !ok {
			object = e.Target
		}
		kind, ok := kinds[e.Source]
		if !ok {
			kind = types.EntityProcess
		}
		predicate := e.Label
		if predicate == "" {
			predicate = types.PredicateRelatesTo
		}

		records = append(records, types.Record{
			GraphID:        fmt.Sprintf(importIDFormat, i+1),
			Domain:         importDomain,
			Category:       types.CategoryFlow,
			Stage:          importStage,
			EntityType:     kind,
			Subject:        subject,
			Predicate:      predicate,
			Object:         object,
			SourceLocation: importSourceLocation,
			SourceType:     importSourceType,
			MetadataJSON:   "{}",
		})
	}
	return jsonld.Wrap(records)
}

func entityTypeFor(t types.FlowNodeType) types.EntityType {
	if t == types.NodeInput || t == types.NodeOutput {
		return types.EntityArtifact
	}
	return types.EntityProcess
}

func nodeID(label string) string {
	return "node-" + whitespaceRe.ReplaceAllString(strings.ToLower(strings.TrimSpace(label)), "-")
}

// uniqueID suffixes id when two labels slug to the same value.
func uniqueID(id string, used map[string]bool) string {
	candidate := id
	for n := 2; used[candidate]; n++ {
		candidate = fmt.Sprintf("%s-%d", id, n)
	}
	used[candidate] = true
	return candidate
}

// nodeData copies the populated columns of the graph node that introduced
// a diagram node.
func nodeData(item jsonld.Node) map[string]string {
	rec := item.Record()
	data := make(map[string]string)
	for _, col := range types.Header {
		if v, _ := rec.Field(col); v != "" {
			data[col] = v
		}
	}
	return data
}

func containsAny(s string, words ...string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
