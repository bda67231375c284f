package workflow

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilderRejectsDuplicateNodes(t *testing.T) {
	_, err := NewBuilder().
		AddNode(&Node{ID: "start", Type: NodeTypeStart}).
		AddNode(&Node{ID: "start", Type: NodeTypeStart}).
		AddNode(&Node{ID: "end", Type: NodeTypeEnd}).
		AddEdge("start", "end").
		Build()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestBuilderRejectsDanglingEdges(t *testing.T) {
	_, err := NewBuilder().
		AddNode(&Node{ID: "start", Type: NodeTypeStart}).
		AddNode(&Node{ID: "end", Type: NodeTypeEnd}).
		AddEdge("start", "nowhere").
		Build()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "non-existent")
}

func TestBuilderRequiresSingleStartAndEnd(t *testing.T) {
	_, err := NewBuilder().
		AddNode(&Node{ID: "a", Type: NodeTypeRoute}).
		Build()
	require.Error(t, err)
}

func TestBuilderRejectsUnreachableNodes(t *testing.T) {
	_, err := NewBuilder().
		AddNode(&Node{ID: "start", Type: NodeTypeStart}).
		AddNode(&Node{ID: "end", Type: NodeTypeEnd}).
		AddNode(&Node{ID: "island", Type: NodeTypeRoute}).
		AddEdge("start", "end").
		Build()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unreachable")
}

func TestBuilderAllowsCycles(t *testing.T) {
	g, err := NewBuilder().
		AddNode(&Node{ID: "start", Type: NodeTypeStart}).
		AddNode(&Node{ID: "route", Type: NodeTypeRoute}).
		AddToolNode("get_team_info").
		AddNode(&Node{ID: "end", Type: NodeTypeEnd}).
		AddEdge("start", "route").
		AddEdge("route", "get_team_info").
		AddEdge("get_team_info", "route").
		AddEdge("route", "end").
		Build()
	require.NoError(t, err)
	assert.True(t, g.HasEdge("get_team_info", "route"), "back-edge must survive validation")
}

func TestNewAgentGraphShape(t *testing.T) {
	tools := []string{"get_live_game_data", "search_player"}
	g, err := NewAgentGraph(tools)
	require.NoError(t, err)

	assert.Equal(t, NodeStart, g.Entry)
	assert.Equal(t, NodeEnd, g.Exit)
	assert.True(t, g.HasEdge(NodeStart, NodeRoute))
	assert.True(t, g.HasEdge(NodeRoute, NodeRespond))
	assert.True(t, g.HasEdge(NodeRespond, NodeEnd))

	for _, name := range tools {
		node := g.Node(name)
		require.NotNil(t, node, name)
		assert.Equal(t, NodeTypeTool, node.Type)
		assert.True(t, g.HasEdge(NodeRoute, name))
		assert.True(t, g.HasEdge(name, NodeRoute))
		assert.True(t, g.HasEdge(name, NodeRespond))
	}

	assert.ElementsMatch(t, tools, g.ToolNodes())
}

func TestMermaidExport(t *testing.T) {
	g, err := NewAgentGraph([]string{"get_game_linescore"})
	require.NoError(t, err)

	out := g.Mermaid()
	assert.True(t, strings.HasPrefix(out, "flowchart TD\n"))
	assert.Contains(t, out, "start([start])")
	assert.Contains(t, out, "route{route}")
	assert.Contains(t, out, "get_game_linescore[[get_game_linescore]]")
	assert.Contains(t, out, "route --> get_game_linescore")
	assert.Contains(t, out, "get_game_linescore --> route")
}
