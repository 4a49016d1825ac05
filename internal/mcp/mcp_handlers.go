package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/huangsam/benchboard/core"
	"github.com/huangsam/benchboard/internal/contract"
	"github.com/huangsam/benchboard/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.CacheManager
}

// viewArgs are the index criteria shared by the search tools.
type viewArgs struct {
	Search    string `mapstructure:"search"`
	Tag       string `mapstructure:"tag"`
	Publisher string `mapstructure:"publisher"`
	Sort      string `mapstructure:"sort"`
	Page      int    `mapstructure:"page"`
	PageSize  int    `mapstructure:"page_size"`
}

type statsArgs struct {
	ModelID string `mapstructure:"model_id"`
}

type compareArgs struct {
	Models string `mapstructure:"models"`
}

type leaderboardArgs struct {
	BenchmarkID string `mapstructure:"benchmark_id"`
}

// decodeArgs decodes the tool arguments into out. Numbers arrive as float64
// from JSON, so weak typing is enabled.
func decodeArgs(request mcp.CallToolRequest, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	return dec.Decode(request.GetArguments())
}

// applyView copies validated index criteria onto cfg.
func applyView(cfg *contract.Config, args viewArgs) error {
	cfg.SearchText = strings.TrimSpace(args.Search)
	cfg.Tag = strings.TrimSpace(args.Tag)
	cfg.Publisher = strings.TrimSpace(args.Publisher)
	if args.Sort != "" {
		key := schema.SortKey(strings.ToLower(args.Sort))
		if _, ok := schema.ValidSortKeys[key]; !ok {
			return fmt.Errorf("invalid sort '%s'. must be trending, date, name, score", args.Sort)
		}
		cfg.SortKey = key
	}
	// Zero keeps the default page; out-of-range pages clamp during pagination
	if args.Page != 0 {
		cfg.Page = args.Page
	}
	if args.PageSize < 0 || args.PageSize > contract.MaxPageSize {
		return fmt.Errorf("page_size must be between 1 and %d (received %d)", contract.MaxPageSize, args.PageSize)
	}
	if args.PageSize > 0 {
		cfg.PageSize = args.PageSize
	}
	return nil
}

// jsonResult marshals data as an indented text result.
func jsonResult(data any) (*mcp.CallToolResult, error) {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("cannot encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetModelStats(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args statsArgs
	if err := decodeArgs(request, &args); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	if strings.TrimSpace(args.ModelID) == "" {
		return mcp.NewToolResultError("model_id is required"), nil
	}

	cfg := h.baseCfg.Clone()
	cfg.Targets = []string{strings.TrimSpace(args.ModelID)}

	result, _, err := core.GetModelStatsResult(core.WithSuppressHeader(ctx), cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("stats failed: %v", err)), nil
	}
	return jsonResult(struct {
		schema.ModelStatsResult
		Label          string                         `json:"label"`
		Participations []schema.EnrichedParticipation `json:"participations"`
	}{
		ModelStatsResult: result,
		Label:            schema.GetPlainLabel(float64(result.Stats.AverageScore)),
		Participations:   schema.EnrichParticipations(result.Stats.ParticipatedBenchmarks),
	})
}

func (h *toolHandler) handleSearchModels(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args viewArgs
	if err := decodeArgs(request, &args); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	cfg := h.baseCfg.Clone()
	if err := applyView(cfg, args); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid search parameters: %v", err)), nil
	}

	result, _, err := core.GetModelListResults(core.WithSuppressHeader(ctx), cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("search failed: %v", err)), nil
	}
	offset := max((result.Pagination.Page-1)*result.Pagination.PageSize, 0)
	return jsonResult(struct {
		Query      schema.Query               `json:"query"`
		Items      []schema.EnrichedModelItem `json:"items"`
		Pagination schema.Pagination          `json:"pagination"`
		Publishers []string                   `json:"publishers"`
	}{result.Query, schema.EnrichModels(result.Items, offset), result.Pagination, result.Publishers})
}

func (h *toolHandler) handleSearchBenchmarks(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args viewArgs
	if err := decodeArgs(request, &args); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	cfg := h.baseCfg.Clone()
	if err := applyView(cfg, args); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid search parameters: %v", err)), nil
	}

	result, _, err := core.GetBenchmarkListResults(core.WithSuppressHeader(ctx), cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("search failed: %v", err)), nil
	}
	return jsonResult(result)
}

func (h *toolHandler) handleCompareModels(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args compareArgs
	if err := decodeArgs(request, &args); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	ids := contract.SplitToken(args.Models)
	if len(ids) == 0 {
		return mcp.NewToolResultError("models is required (comma-separated model ids)"), nil
	}

	cfg := h.baseCfg.Clone()
	cfg.Selection = ids
	cfg.Targets = nil

	result, _, err := core.GetComparisonResults(core.WithSuppressHeader(ctx), cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("comparison failed: %v", err)), nil
	}
	if result.Empty {
		return mcp.NewToolResultError(fmt.Sprintf("none of the models exist: %s", strings.Join(ids, ", "))), nil
	}
	return jsonResult(result)
}

func (h *toolHandler) handleGetLeaderboard(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args leaderboardArgs
	if err := decodeArgs(request, &args); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	if strings.TrimSpace(args.BenchmarkID) == "" {
		return mcp.NewToolResultError("benchmark_id is required"), nil
	}

	cfg := h.baseCfg.Clone()
	cfg.Targets = []string{strings.TrimSpace(args.BenchmarkID)}

	result, _, err := core.GetLeaderboardResult(core.WithSuppressHeader(ctx), cfg, h.mgr)
	if errors.Is(err, core.ErrBenchmarkNotFound) {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("leaderboard failed: %v", err)), nil
	}
	return jsonResult(result)
}

func (h *toolHandler) handleListTags(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	results, _, err := core.GetTagsResults(core.WithSuppressHeader(ctx), h.baseCfg.Clone(), h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("listing tags failed: %v", err)), nil
	}
	return jsonResult(results)
}
