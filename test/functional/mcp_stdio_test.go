package functional_test

import (
	"context"
	"encoding/json"
	"os"
	"os/exec"
	"testing"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"
)

// TestStdioBinary drives the built binary over stdio with the SDK client.
func TestStdioBinary(t *testing.T) {
	binaryPath := "./bin/pmdash"
	if _, err := os.Stat(binaryPath); os.IsNotExist(err) {
		binaryPath = "../../bin/pmdash"
		if _, err := os.Stat(binaryPath); os.IsNotExist(err) {
			t.Skip("Server binary not found. Run 'go build -o bin/pmdash ./cmd/pmdash' first.")
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cmd := exec.CommandContext(ctx, binaryPath)
	cmd.Env = append(os.Environ(),
		"PMDASH_TRANSPORT=stdio",
		"PMDASH_CACHE_PATH=:memory:",
		"PMDASH_OFFLINE=true",
	)

	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "test-client", Version: "1.0.0"}, nil)
	session, err := client.Connect(ctx, &sdkmcp.CommandTransport{Command: cmd}, nil)
	require.NoError(t, err, "failed to connect to server")
	defer session.Close()

	t.Run("ServerInfo", func(t *testing.T) {
		initResult := session.InitializeResult()
		require.NotNil(t, initResult)
		require.Equal(t, "pmdash", initResult.ServerInfo.Name)
	})

	t.Run("DemoLogin", func(t *testing.T) {
		res, err := session.CallTool(ctx, &sdkmcp.CallToolParams{
			Name:      "login",
			Arguments: map[string]any{"email": "staff@dost.gov.ph", "password": "staff123"},
		})
		require.NoError(t, err)
		require.False(t, res.IsError)

		text, ok := res.Content[0].(*sdkmcp.TextContent)
		require.True(t, ok)
		var out struct {
			Success bool   `json:"success"`
			Source  string `json:"source"`
		}
		require.NoError(t, json.Unmarshal([]byte(text.Text), &out))
		require.True(t, out.Success)
		require.Equal(t, "fallback", out.Source)
	})

	t.Run("StaffCannotListUsers", func(t *testing.T) {
		res, err := session.CallTool(ctx, &sdkmcp.CallToolParams{Name: "list_users"})
		require.NoError(t, err)
		require.True(t, res.IsError)
	})
}
