// Package workflow implements the agent's node graph and the execution
// engine that drives one traversal of it per submitted query.
package workflow

// NodeType defines the role of a node in the graph.
type NodeType string

const (
	NodeTypeStart   NodeType = "start"
	NodeTypeRoute   NodeType = "route"
	NodeTypeTool    NodeType = "tool"
	NodeTypeRespond NodeType = "respond"
	NodeTypeEnd     NodeType = "end"
)

// Canonical node IDs for the non-tool nodes. Tool nodes are identified
// by their tool name.
const (
	NodeStart   = "start"
	NodeRoute   = "route"
	NodeRespond = "respond"
	NodeEnd     = "end"
)

// Node is a named unit of work in the graph.
type Node struct {
	ID       string   `json:"id"`
	Type     NodeType `json:"type"`
	ToolName string   `json:"tool_name,omitempty"`
}

// Edge is a directed transition between two nodes.
type Edge struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Graph is the directed workflow graph. Unlike a plain DAG, the agent
// graph is deliberately cyclic: every tool node has an edge back to the
// route node so the routing decision can chain tool calls. Which edge is
// taken is decided at run time, never statically.
type Graph struct {
	Nodes map[string]*Node `json:"nodes"`
	Edges []Edge           `json:"edges"`
	Entry string           `json:"entry"`
	Exit  string           `json:"exit"`

	successors map[string]map[string]bool
}

// Node retrieves a node by ID, or nil when absent.
func (g *Graph) Node(id string) *Node {
	if g.Nodes == nil {
		return nil
	}
	return g.Nodes[id]
}

// HasEdge reports whether the transition from -> to is legal.
func (g *Graph) HasEdge(from, to string) bool {
	return g.successors[from][to]
}

// ToolNodes returns the IDs of all tool nodes in sorted-insertion order
// of the edge list, deduplicated.
func (g *Graph) ToolNodes() []string {
	var out []string
	seen := make(map[string]bool)
	for _, e := range g.Edges {
		if n := g.Node(e.To); n != nil && n.Type == NodeTypeTool && !seen[n.ID] {
			seen[n.ID] = true
			out = append(out, n.ID)
		}
	}
	return out
}

// NewAgentGraph constructs the standard agent graph over the given tool
// names:
//
//	start -> route -> {tool...} -> route
//	                  {tool...} -> respond
//	         route -> respond -> end
func NewAgentGraph(toolNames []string) (*Graph, error) {
	b := NewBuilder().
		AddNode(&Node{ID: NodeStart, Type: NodeTypeStart}).
		AddNode(&Node{ID: NodeRoute, Type: NodeTypeRoute}).
		AddNode(&Node{ID: NodeRespond, Type: NodeTypeRespond}).
		AddNode(&Node{ID: NodeEnd, Type: NodeTypeEnd}).
		AddEdge(NodeStart, NodeRoute).
		AddEdge(NodeRoute, NodeRespond).
		AddEdge(NodeRespond, NodeEnd)

	for _, name := range toolNames {
		b.AddNode(&Node{ID: name, Type: NodeTypeTool, ToolName: name}).
			AddEdge(NodeRoute, name).
			AddEdge(name, NodeRoute).
			AddEdge(name, NodeRespond)
	}

	return b.Build()
}
