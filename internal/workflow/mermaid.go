package workflow

import (
	"fmt"
	"sort"
	"strings"
)

// Mermaid renders the graph as a Mermaid flowchart, suitable for pasting
// into documentation or a live editor. Node IDs are sanitized since
// Mermaid identifiers cannot contain every character a tool name can.
func (g *Graph) Mermaid() string {
	var b strings.Builder
	b.WriteString("flowchart TD\n")

	ids := make([]string, 0, len(g.Nodes))
	for id := range g.Nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		node := g.Nodes[id]
		switch node.Type {
		case NodeTypeStart, NodeTypeEnd:
			fmt.Fprintf(&b, "    %s([%s])\n", mermaidID(id), id)
		case NodeTypeRoute:
			fmt.Fprintf(&b, "    %s{%s}\n", mermaidID(id), id)
		case NodeTypeTool:
			fmt.Fprintf(&b, "    %s[[%s]]\n", mermaidID(id), id)
		default:
			fmt.Fprintf(&b, "    %s[%s]\n", mermaidID(id), id)
		}
	}

	for _, e := range g.Edges {
		fmt.Fprintf(&b, "    %s --> %s\n", mermaidID(e.From), mermaidID(e.To))
	}

	return b.String()
}

func mermaidID(id string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			return r
		default:
			return '_'
		}
	}, id)
}
