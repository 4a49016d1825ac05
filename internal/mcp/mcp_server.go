// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/huangsam/benchboard/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the benchboard MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.CacheManager) *server.MCPServer {
	s := server.NewMCPServer(
		"Benchboard Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
	}

	// --- 1. Tool: get_model_stats ---
	s.AddTool(mcp.NewTool("get_model_stats",
		mcp.WithDescription("Get a model's average score, radar values per category and every benchmark it was scored on."),
		mcp.WithString("model_id", mcp.Description("Model id, e.g. 'openai/gpt-5'."), mcp.Required()),
	), h.handleGetModelStats)

	// --- 2. Tool: search_models ---
	s.AddTool(mcp.NewTool("search_models",
		mcp.WithDescription("Search, filter and sort the model index. Results are paginated."),
		mcp.WithString("search", mcp.Description("Case-insensitive text matched against model name and publisher.")),
		mcp.WithString("publisher", mcp.Description("Only models of this publisher. Unknown publishers show all models.")),
		mcp.WithString("sort", mcp.Description("Sort key. Defaults to 'score'."), mcp.Enum("score", "date", "name", "trending")),
		mcp.WithNumber("page", mcp.Description("1-based page number.")),
		mcp.WithNumber("page_size", mcp.Description("Items per page.")),
	), h.handleSearchModels)

	// --- 3. Tool: search_benchmarks ---
	s.AddTool(mcp.NewTool("search_benchmarks",
		mcp.WithDescription("Search, filter and sort the benchmark index. Results are paginated."),
		mcp.WithString("search", mcp.Description("Case-insensitive text matched against benchmark name and publisher.")),
		mcp.WithString("tag", mcp.Description("Only benchmarks with this tag. Unknown tags show all benchmarks.")),
		mcp.WithString("sort", mcp.Description("Sort key. Defaults to 'trending'."), mcp.Enum("trending", "date", "name", "score")),
		mcp.WithNumber("page", mcp.Description("1-based page number.")),
		mcp.WithNumber("page_size", mcp.Description("Items per page.")),
	), h.handleSearchBenchmarks)

	// --- 4. Tool: compare_models ---
	s.AddTool(mcp.NewTool("compare_models",
		mcp.WithDescription("Compare models side by side: radar values per category and scores per benchmark with the winners marked."),
		mcp.WithString("models", mcp.Description("Comma-separated model ids in display order."), mcp.Required()),
	), h.handleCompareModels)

	// --- 5. Tool: get_leaderboard ---
	s.AddTool(mcp.NewTool("get_leaderboard",
		mcp.WithDescription("Get the ranked scores of one benchmark."),
		mcp.WithString("benchmark_id", mcp.Description("Benchmark id, e.g. 'gpqa-diamond'."), mcp.Required()),
	), h.handleGetLeaderboard)

	// --- 6. Tool: list_tags ---
	s.AddTool(mcp.NewTool("list_tags",
		mcp.WithDescription("List every benchmark tag with the number of benchmarks carrying it."),
	), h.handleListTags)

	return s
}

// StartMCPServer starts the benchboard MCP server over stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.CacheManager) error {
	s := NewMCPServer(baseCfg, mgr)
	return server.ServeStdio(s)
}
