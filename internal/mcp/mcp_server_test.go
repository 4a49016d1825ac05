package mcp_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/huangsam/benchboard/internal/contract"
	mcp_internal "github.com/huangsam/benchboard/internal/mcp"
	"github.com/huangsam/benchboard/schema"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer() *server.MCPServer {
	baseCfg := &contract.Config{
		DataPath:       "../../examples/content",
		Page:           1,
		PageSize:       schema.DefaultPageSize,
		Precision:      1,
		CacheBackend:   schema.NoneBackend,
		HistoryBackend: schema.NoneBackend,
	}
	// No stores: every call reads the records directly
	var mgr contract.CacheManager
	return mcp_internal.NewMCPServer(baseCfg, mgr)
}

func callTool(t *testing.T, s *server.MCPServer, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	tool := s.GetTool(name)
	require.NotNil(t, tool, "Tool %s should exist", name)

	req := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	}
	res, err := tool.Handler(context.Background(), req)
	require.NoError(t, err, "The MCP handler should not return a raw error for tool logic failures")
	require.NotNil(t, res)
	return res
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return text.Text
}

func TestMCPServerHandlers_ValidationErrors(t *testing.T) {
	s := newTestServer()

	tests := []struct {
		name string
		tool string
		args map[string]any
		want string
	}{
		{"stats missing model", "get_model_stats", map[string]any{"model_id": ""}, "model_id is required"},
		{"stats unknown model", "get_model_stats", map[string]any{"model_id": "nobody/none"}, "model not found"},
		{"compare missing models", "compare_models", map[string]any{"models": " , "}, "models is required"},
		{"compare unknown models", "compare_models", map[string]any{"models": "x,y"}, "none of the models exist"},
		{"leaderboard missing id", "get_leaderboard", map[string]any{}, "benchmark_id is required"},
		{"leaderboard unknown id", "get_leaderboard", map[string]any{"benchmark_id": "nope"}, "benchmark not found"},
		{"invalid sort", "search_models", map[string]any{"sort": "random"}, "invalid sort"},
		{"invalid page size", "search_benchmarks", map[string]any{"page_size": 500.0}, "page_size must be between"},
		{"wrong argument type", "search_models", map[string]any{"page": "many"}, "invalid arguments"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := callTool(t, s, tt.tool, tt.args)
			assert.True(t, res.IsError, "The response should indicate an error state")
			assert.Contains(t, resultText(t, res), tt.want)
		})
	}
}

func TestMCPServerHandlers_Success(t *testing.T) {
	s := newTestServer()

	t.Run("get_model_stats", func(t *testing.T) {
		res := callTool(t, s, "get_model_stats", map[string]any{"model_id": "openai/gpt-5"})
		require.False(t, res.IsError, resultText(t, res))

		var out struct {
			Label string `json:"label"`
			Stats struct {
				AverageScore int `json:"averageScore"`
			} `json:"stats"`
			Participations []schema.EnrichedParticipation `json:"participations"`
		}
		require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &out))
		assert.Equal(t, 75, out.Stats.AverageScore)
		assert.Equal(t, "Strong", out.Label)
		require.Len(t, out.Participations, 6)
		assert.Equal(t, 1, out.Participations[0].Rank)
	})

	t.Run("search_models", func(t *testing.T) {
		res := callTool(t, s, "search_models", map[string]any{"publisher": "OpenAI", "page_size": 1.0, "page": 2.0})
		require.False(t, res.IsError, resultText(t, res))

		var out struct {
			Items      []schema.EnrichedModelItem `json:"items"`
			Pagination schema.Pagination          `json:"pagination"`
		}
		require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &out))
		require.Len(t, out.Items, 1)
		assert.Equal(t, "openai/o3", out.Items[0].ID)
		assert.Equal(t, 2, out.Items[0].Rank)
		assert.Equal(t, 2, out.Pagination.TotalPages)
	})

	t.Run("search_models clamps out-of-range pages", func(t *testing.T) {
		for _, page := range []float64{-1, 99} {
			res := callTool(t, s, "search_models", map[string]any{"publisher": "OpenAI", "page_size": 1.0, "page": page})
			require.False(t, res.IsError, resultText(t, res))

			var out struct {
				Pagination schema.Pagination `json:"pagination"`
			}
			require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &out))
			want := 1
			if page > 0 {
				want = out.Pagination.TotalPages
			}
			assert.Equal(t, want, out.Pagination.Page, "page %v", page)
		}
	})

	t.Run("search_benchmarks", func(t *testing.T) {
		res := callTool(t, s, "search_benchmarks", map[string]any{"tag": "Coding"})
		require.False(t, res.IsError, resultText(t, res))

		var out schema.BenchmarkListResult
		require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &out))
		require.Len(t, out.Items, 1)
		assert.Equal(t, "swe-bench-verified", out.Items[0].ID)
	})

	t.Run("compare_models", func(t *testing.T) {
		res := callTool(t, s, "compare_models", map[string]any{"models": "openai/o3,missing,openai/gpt-5"})
		require.False(t, res.IsError, resultText(t, res))

		var out schema.ComparisonResult
		require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &out))
		assert.Equal(t, "openai/o3,openai/gpt-5", out.Selection)
		assert.Len(t, out.ChartSeries, len(schema.CategoryAxis))
	})

	t.Run("get_leaderboard", func(t *testing.T) {
		res := callTool(t, s, "get_leaderboard", map[string]any{"benchmark_id": "gpqa-diamond"})
		require.False(t, res.IsError, resultText(t, res))

		var out schema.LeaderboardResult
		require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &out))
		require.Len(t, out.Entries, 5)
		assert.Equal(t, "openai/gpt-5", out.Entries[0].ModelID)
	})

	t.Run("list_tags", func(t *testing.T) {
		res := callTool(t, s, "list_tags", nil)
		require.False(t, res.IsError, resultText(t, res))

		var out []schema.TagSummary
		require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &out))
		assert.Len(t, out, 7)
	})
}
