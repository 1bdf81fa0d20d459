package calctools

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/germanamz/calcly/pkg/session"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestClient starts a Server over in-memory transports and returns a
// connected client session.
func setupTestClient(t *testing.T, tb *ToolBox) *mcp.ClientSession {
	t.Helper()

	s := NewServer("calcly-test", "1.0.0", tb)

	serverTransport, clientTransport := mcp.NewInMemoryTransports()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	serverDone := make(chan error, 1)
	go func() {
		serverDone <- s.run(ctx, serverTransport)
	}()
	t.Cleanup(func() {
		cancel()
		<-serverDone
	})

	client := mcp.NewClient(&mcp.Implementation{
		Name:    "test-client",
		Version: "1.0.0",
	}, nil)
	cs, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = cs.Close() })

	return cs
}

func TestServerListTools(t *testing.T) {
	cs := setupTestClient(t, Tools(session.New(session.Options{})))

	result, err := cs.ListTools(context.Background(), nil)
	require.NoError(t, err)
	assert.Len(t, result.Tools, 6)
}

func TestServerEvaluate(t *testing.T) {
	cs := setupTestClient(t, Tools(session.New(session.Options{})))

	result, err := cs.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "calc_evaluate",
		Arguments: map[string]any{"expression": "0.1 + 0.2"},
	})
	require.NoError(t, err)
	assert.False(t, result.IsError)
	require.Len(t, result.Content, 1)

	tc, ok := result.Content[0].(*mcp.TextContent)
	require.True(t, ok)

	var snap session.Snapshot
	require.NoError(t, json.Unmarshal([]byte(tc.Text), &snap))
	assert.Equal(t, "0.3", snap.Result)
}

func TestServerToolError(t *testing.T) {
	cs := setupTestClient(t, Tools(session.New(session.Options{})))

	result, err := cs.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "calc_recall",
		Arguments: map[string]any{"index": 3},
	})
	require.NoError(t, err)
	assert.True(t, result.IsError)

	tc, ok := result.Content[0].(*mcp.TextContent)
	require.True(t, ok)
	assert.Contains(t, tc.Text, "no history entry")
}

func TestServerContextCancellation(t *testing.T) {
	s := NewServer("srv", "1.0.0", NewToolBox())
	serverTransport, _ := mcp.NewInMemoryTransports()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := s.run(ctx, serverTransport)
	assert.ErrorIs(t, err, context.Canceled)
}
