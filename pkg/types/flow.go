// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// FlowNodeType classifies a flow diagram node.
type FlowNodeType string

const (
	NodeProcess  FlowNodeType = "process"
	NodeDecision FlowNodeType = "decision"
	NodeInput    FlowNodeType = "input"
	NodeOutput   FlowNodeType = "output"
)

// FlowEdgeType classifies a flow diagram edge.
type FlowEdgeType string

const (
	EdgeDefault     FlowEdgeType = "default"
	EdgeConditional FlowEdgeType = "conditional"
	EdgeLoop        FlowEdgeType = "loop"
)

// Position is a node's layout coordinate.
type Position struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// FlowNode is a labelled vertex in a flow diagram.
type FlowNode struct {
	ID       string            `json:"id" yaml:"id"`
	Label    string            `json:"label" yaml:"label"`
	NodeType FlowNodeType      `json:"node_type" yaml:"node_type"`
	Position Position          `json:"position" yaml:"position"`
	Data     map[string]string `json:"data,omitempty" yaml:"data,omitempty"`
}

// FlowEdge connects two flow nodes by id.
type FlowEdge struct {
	ID       string       `json:"id" yaml:"id"`
	Source   string       `json:"source" yaml:"source"`
	Target   string       `json:"target" yaml:"target"`
	Label    string       `json:"label,omitempty" yaml:"label,omitempty"`
	EdgeType FlowEdgeType `json:"edge_type" yaml:"edge_type"`
}

// FlowDiagram is a renderable view of a linked-data graph.
type FlowDiagram struct {
	ID          string     `json:"id" yaml:"id"`
	Title       string     `json:"title" yaml:"title"`
	Description string     `json:"description" yaml:"description"`
	CreatedAt   string     `json:"created_at" yaml:"created_at"`
	LayoutType  string     `json:"layout_type" yaml:"layout_type"`
	Nodes       []FlowNode `json:"nodes" yaml:"nodes"`
	Edges       []FlowEdge `json:"edges" yaml:"edges"`
}
