package mcp

import (
	"context"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"folio/internal/application/commands"
	"folio/internal/domain"
	"folio/internal/ports"
)

type staticSource struct{ root *domain.Node }

func (s staticSource) Load() (*domain.Node, error) { return s.root, nil }

type memBlob map[string][]byte

func (m memBlob) Get(key string) ([]byte, error) {
	v, ok := m[key]
	if !ok {
		return nil, ports.ErrBlobNotFound
	}
	return v, nil
}

func (m memBlob) Put(key string, value []byte) error {
	m[key] = value
	return nil
}

func (m memBlob) Close() error { return nil }

// testEnv serves root(1) -> [Recipes(2) -> [Soup(3)], Todo(4)]
func testEnv() commands.Env {
	soup := domain.NewFile(3, "Soup")
	soup.Body = "# Soup\n\nBoil."
	recipes := domain.NewFolder(2, "Recipes", soup)
	recipes.Intro = "Things to cook"
	root := domain.NewFolder(1, "root", recipes, domain.NewFile(4, "Todo"))

	return commands.Env{Source: staticSource{root: root}, Blob: memBlob{}}
}

func call(t *testing.T, h server.ToolHandlerFunc, args map[string]any) (string, bool) {
	t.Helper()
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args

	res, err := h(context.Background(), req)
	require.NoError(t, err)
	require.NotEmpty(t, res.Content)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content")
	return text.Text, res.IsError
}

func TestTreeHandler(t *testing.T) {
	env := testEnv()

	out, isErr := call(t, treeHandler(env), nil)
	assert.False(t, isErr)
	assert.Equal(t, "  1  root\n  + 2  Recipes\n    4  Todo\n", out)

	out, _ = call(t, treeHandler(env), map[string]any{"all": true})
	assert.Contains(t, out, "3  Soup")
}

func TestPathHandlers(t *testing.T) {
	env := testEnv()

	out, isErr := call(t, pathHandler(env), map[string]any{"id": float64(3)})
	assert.False(t, isErr)
	assert.Equal(t, "3  file  root/Recipes/Soup", out)

	out, isErr = call(t, firstLeafHandler(env), map[string]any{"folder_id": float64(2)})
	assert.False(t, isErr)
	assert.Equal(t, "3  file  root/Recipes/Soup", out)

	_, isErr = call(t, firstLeafHandler(env), map[string]any{"folder_id": float64(4)})
	assert.True(t, isErr, "files have no first leaf")

	_, isErr = call(t, pathHandler(env), map[string]any{})
	assert.True(t, isErr, "id is required")
}

func TestReadNoteHandler(t *testing.T) {
	env := testEnv()

	out, _ := call(t, readNoteHandler(env), map[string]any{"id": float64(3)})
	assert.Equal(t, "# Soup\n\nBoil.", out)

	out, _ = call(t, readNoteHandler(env), map[string]any{"id": float64(2)})
	assert.Equal(t, "Things to cook", out)

	_, isErr := call(t, readNoteHandler(env), map[string]any{"id": float64(99)})
	assert.True(t, isErr)
}

func TestCollapseHandlers(t *testing.T) {
	env := testEnv()

	out, _ := call(t, collapsedHandler(env), nil)
	assert.Equal(t, "2", out)

	out, isErr := call(t, setCollapsedHandler(env, false), map[string]any{"folder_id": float64(2)})
	assert.False(t, isErr)
	assert.Equal(t, "No collapsed folders.", out)

	out, _ = call(t, collapsedHandler(env), nil)
	assert.Equal(t, "No collapsed folders.", out)

	out, _ = call(t, setCollapsedHandler(env, true), map[string]any{"folder_id": float64(1)})
	assert.Equal(t, "1", out)

	out, _ = call(t, resetCollapsedHandler(env), nil)
	assert.Equal(t, "2", out)
}

func TestSearchHandler(t *testing.T) {
	env := testEnv()

	out, isErr := call(t, searchHandler(env), map[string]any{"query": "soup"})
	assert.False(t, isErr)
	assert.Equal(t, "3  file  root/Recipes/Soup\n", out)

	out, _ = call(t, searchHandler(env), map[string]any{"query": "zzz"})
	assert.Equal(t, "No results found.", out)

	_, isErr = call(t, searchHandler(env), nil)
	assert.True(t, isErr)
}
