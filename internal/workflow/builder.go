package workflow

import "fmt"

// Builder provides a fluent API for constructing graphs. It accumulates
// errors during building and reports them all at Build time.
type Builder struct {
	graph  *Graph
	errors []error
}

// NewBuilder creates a Builder with an empty graph.
func NewBuilder() *Builder {
	return &Builder{
		graph: &Graph{
			Nodes: make(map[string]*Node),
			Edges: []Edge{},
		},
	}
}

// AddNode adds a node to the graph. Duplicate IDs accumulate an error.
func (b *Builder) AddNode(node *Node) *Builder {
	if node == nil {
		b.errors = append(b.errors, fmt.Errorf("cannot add nil node"))
		return b
	}
	if node.ID == "" {
		b.errors = append(b.errors, fmt.Errorf("node must have an ID"))
		return b
	}
	if _, exists := b.graph.Nodes[node.ID]; exists {
		b.errors = append(b.errors, fmt.Errorf("node with ID %q already exists", node.ID))
		return b
	}
	b.graph.Nodes[node.ID] = node
	return b
}

// AddToolNode is a helper that creates and adds a tool node.
func (b *Builder) AddToolNode(toolName string) *Builder {
	if toolName == "" {
		b.errors = append(b.errors, fmt.Errorf("tool node must have a tool name"))
		return b
	}
	return b.AddNode(&Node{ID: toolName, Type: NodeTypeTool, ToolName: toolName})
}

// AddEdge adds a directed edge. Cycles are legal: the agent graph relies
// on tool -> route back-edges, and termination is enforced at run time by
// the engine's cycle cap rather than by graph shape.
func (b *Builder) AddEdge(from, to string) *Builder {
	if from == "" || to == "" {
		b.errors = append(b.errors, fmt.Errorf("edge endpoints must be non-empty"))
		return b
	}
	b.graph.Edges = append(b.graph.Edges, Edge{From: from, To: to})
	return b
}

// Build validates the graph and returns it, or every accumulated error.
// Validation requires: all edge endpoints exist, exactly one start node
// and one end node, and every node reachable from the start node.
func (b *Builder) Build() (*Graph, error) {
	if len(b.graph.Nodes) == 0 {
		b.errors = append(b.errors, fmt.Errorf("graph must have at least one node"))
	}

	for _, e := range b.graph.Edges {
		if _, ok := b.graph.Nodes[e.From]; !ok {
			b.errors = append(b.errors, fmt.Errorf("edge references non-existent 'from' node %q", e.From))
		}
		if _, ok := b.graph.Nodes[e.To]; !ok {
			b.errors = append(b.errors, fmt.Errorf("edge references non-existent 'to' node %q", e.To))
		}
	}

	var starts, ends []string
	for id, n := range b.graph.Nodes {
		switch n.Type {
		case NodeTypeStart:
			starts = append(starts, id)
		case NodeTypeEnd:
			ends = append(ends, id)
		}
	}
	if len(starts) != 1 {
		b.errors = append(b.errors, fmt.Errorf("graph must have exactly one start node, found %d", len(starts)))
	}
	if len(ends) != 1 {
		b.errors = append(b.errors, fmt.Errorf("graph must have exactly one end node, found %d", len(ends)))
	}

	if len(b.errors) > 0 {
		return nil, fmt.Errorf("graph validation failed with %d error(s): %v", len(b.errors), b.errors)
	}

	b.graph.Entry = starts[0]
	b.graph.Exit = ends[0]
	b.buildSuccessors()

	if unreachable := b.findUnreachable(); len(unreachable) > 0 {
		return nil, fmt.Errorf("nodes unreachable from start: %v", unreachable)
	}

	return b.graph, nil
}

// buildSuccessors materializes the adjacency set used for transition
// legality checks.
func (b *Builder) buildSuccessors() {
	succ := make(map[string]map[string]bool)
	for _, e := range b.graph.Edges {
		if succ[e.From] == nil {
			succ[e.From] = make(map[string]bool)
		}
		succ[e.From][e.To] = true
	}
	b.graph.successors = succ
}

// findUnreachable returns the IDs of nodes not reachable from the entry
// node via breadth-first search.
func (b *Builder) findUnreachable() []string {
	visited := map[string]bool{b.graph.Entry: true}
	frontier := []string{b.graph.Entry}

	for len(frontier) > 0 {
		id := frontier[0]
		frontier = frontier[1:]
		for next := range b.graph.successors[id] {
			if !visited[next] {
				visited[next] = true
				frontier = append(frontier, next)
			}
		}
	}

	var unreachable []string
	for id := range b.graph.Nodes {
		if !visited[id] {
			unreachable = append(unreachable, id)
		}
	}
	return unreachable
}
