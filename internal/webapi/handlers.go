package webapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/huangsam/benchboard/core"
	"github.com/huangsam/benchboard/internal/contract"
	"github.com/huangsam/benchboard/schema"
	"github.com/rs/zerolog"
	"github.com/yuin/goldmark"
)

const handlerTimeout = 10 * time.Second

// apiHandler holds common dependencies for the HTTP handlers.
type apiHandler struct {
	baseCfg *contract.Config
	mgr     contract.CacheManager
	logger  zerolog.Logger
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

var markdown = goldmark.New()

// requestConfig clones the base config and applies the shared query
// parameters: search, tag, publisher, sort, page and page_size.
func requestConfig(base *contract.Config, r *http.Request) (*contract.Config, error) {
	cfg := base.Clone()
	q := r.URL.Query()

	cfg.SearchText = strings.TrimSpace(q.Get("search"))
	cfg.Tag = strings.TrimSpace(q.Get("tag"))
	cfg.Publisher = strings.TrimSpace(q.Get("publisher"))
	cfg.Selection = nil
	cfg.Targets = nil

	if raw := strings.TrimSpace(q.Get("sort")); raw != "" {
		key := schema.SortKey(strings.ToLower(raw))
		if _, ok := schema.ValidSortKeys[key]; !ok {
			return nil, fmt.Errorf("invalid sort '%s'. must be trending, date, name, score", raw)
		}
		cfg.SortKey = key
	}
	if raw := q.Get("page"); raw != "" {
		// Out-of-range pages clamp during pagination
		page, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return nil, fmt.Errorf("page must be an integer (received %q)", raw)
		}
		cfg.Page = page
	}
	if raw := q.Get("page_size"); raw != "" {
		size, err := strconv.Atoi(raw)
		if err != nil || size < 1 || size > contract.MaxPageSize {
			return nil, fmt.Errorf("page_size must be between 1 and %d (received %q)", contract.MaxPageSize, raw)
		}
		cfg.PageSize = size
	}
	return cfg, nil
}

// requestContext bounds a handler and keeps the CLI header out of the log.
func requestContext(r *http.Request) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	return core.WithSuppressHeader(ctx), cancel
}

func (h *apiHandler) health(w http.ResponseWriter, _ *http.Request) {
	h.respondJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": "benchboard",
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *apiHandler) listModels(w http.ResponseWriter, r *http.Request) {
	cfg, err := requestConfig(h.baseCfg, r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}
	ctx, cancel := requestContext(r)
	defer cancel()

	result, _, err := core.GetModelListResults(ctx, cfg, h.mgr)
	if err != nil {
		h.respondCoreError(w, "failed to list models", err)
		return
	}
	offset := max((result.Pagination.Page-1)*result.Pagination.PageSize, 0)
	h.respondJSON(w, http.StatusOK, struct {
		Query      schema.Query               `json:"query"`
		Items      []schema.EnrichedModelItem `json:"items"`
		Pagination schema.Pagination          `json:"pagination"`
		Publishers []string                   `json:"publishers"`
	}{result.Query, schema.EnrichModels(result.Items, offset), result.Pagination, result.Publishers})
}

func (h *apiHandler) modelOptions(w http.ResponseWriter, r *http.Request) {
	cfg, err := requestConfig(h.baseCfg, r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}
	ctx, cancel := requestContext(r)
	defer cancel()

	options, _, err := core.GetModelOptions(ctx, cfg, h.mgr)
	if err != nil {
		h.respondCoreError(w, "failed to search models", err)
		return
	}
	h.respondJSON(w, http.StatusOK, options)
}

func (h *apiHandler) modelStats(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(r.URL.Query().Get("model"))
	if id == "" {
		h.respondError(w, http.StatusBadRequest, "query parameter 'model' is required", nil)
		return
	}
	cfg := h.baseCfg.Clone()
	cfg.Targets = []string{id}
	ctx, cancel := requestContext(r)
	defer cancel()

	result, _, err := core.GetModelStatsResult(ctx, cfg, h.mgr)
	if err != nil {
		h.respondCoreError(w, "failed to compute model stats", err)
		return
	}
	h.respondJSON(w, http.StatusOK, struct {
		schema.ModelStatsResult
		Label          string                         `json:"label"`
		Participations []schema.EnrichedParticipation `json:"participations"`
	}{
		ModelStatsResult: result,
		Label:            schema.GetPlainLabel(float64(result.Stats.AverageScore)),
		Participations:   schema.EnrichParticipations(result.Stats.ParticipatedBenchmarks),
	})
}

func (h *apiHandler) listBenchmarks(w http.ResponseWriter, r *http.Request) {
	cfg, err := requestConfig(h.baseCfg, r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}
	ctx, cancel := requestContext(r)
	defer cancel()

	result, _, err := core.GetBenchmarkListResults(ctx, cfg, h.mgr)
	if err != nil {
		h.respondCoreError(w, "failed to list benchmarks", err)
		return
	}
	h.respondJSON(w, http.StatusOK, result)
}

func (h *apiHandler) leaderboard(w http.ResponseWriter, r *http.Request) {
	cfg := h.baseCfg.Clone()
	cfg.Targets = []string{chi.URLParam(r, "benchmarkID")}
	ctx, cancel := requestContext(r)
	defer cancel()

	result, _, err := core.GetLeaderboardResult(ctx, cfg, h.mgr)
	if err != nil {
		h.respondCoreError(w, "failed to build leaderboard", err)
		return
	}
	if result.Description != "" {
		var buf bytes.Buffer
		if err := markdown.Convert([]byte(result.Description), &buf); err != nil {
			h.logger.Warn().Err(err).Str("benchmark", result.Benchmark.ID).Msg("cannot render description")
		} else {
			result.DescriptionHTML = buf.String()
		}
	}
	h.respondJSON(w, http.StatusOK, result)
}

func (h *apiHandler) compare(w http.ResponseWriter, r *http.Request) {
	ids := contract.SplitToken(r.URL.Query().Get("models"))
	if len(ids) == 0 {
		h.respondError(w, http.StatusBadRequest, "query parameter 'models' is required", nil)
		return
	}
	cfg := h.baseCfg.Clone()
	cfg.Selection = ids
	cfg.Targets = nil
	ctx, cancel := requestContext(r)
	defer cancel()

	// An empty comparison is a valid state and is returned as is.
	result, _, err := core.GetComparisonResults(ctx, cfg, h.mgr)
	if err != nil {
		h.respondCoreError(w, "failed to compare models", err)
		return
	}
	h.respondJSON(w, http.StatusOK, result)
}

func (h *apiHandler) listPublishers(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()

	results, _, err := core.GetPublisherListResults(ctx, h.baseCfg.Clone(), h.mgr)
	if err != nil {
		h.respondCoreError(w, "failed to list publishers", err)
		return
	}
	h.respondJSON(w, http.StatusOK, results)
}

func (h *apiHandler) publisher(w http.ResponseWriter, r *http.Request) {
	cfg := h.baseCfg.Clone()
	cfg.Targets = []string{chi.URLParam(r, "name")}
	cfg.SortKey = ""
	if raw := strings.TrimSpace(r.URL.Query().Get("sort")); raw != "" {
		key := schema.SortKey(strings.ToLower(raw))
		if _, ok := schema.ValidPublisherSortKeys[key]; !ok {
			h.respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid publisher sort '%s'. must be score, date", raw), nil)
			return
		}
		cfg.SortKey = key
	}
	ctx, cancel := requestContext(r)
	defer cancel()

	result, _, err := core.GetPublisherResults(ctx, cfg, h.mgr)
	if err != nil {
		h.respondCoreError(w, "failed to build publisher page", err)
		return
	}
	h.respondJSON(w, http.StatusOK, result)
}

func (h *apiHandler) listTags(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()

	results, _, err := core.GetTagsResults(ctx, h.baseCfg.Clone(), h.mgr)
	if err != nil {
		h.respondCoreError(w, "failed to list tags", err)
		return
	}
	h.respondJSON(w, http.StatusOK, results)
}

// respondCoreError maps engine errors to status codes.
func (h *apiHandler) respondCoreError(w http.ResponseWriter, message string, err error) {
	switch {
	case errors.Is(err, core.ErrMissingTarget):
		h.respondError(w, http.StatusBadRequest, err.Error(), nil)
	case errors.Is(err, core.ErrModelNotFound),
		errors.Is(err, core.ErrBenchmarkNotFound),
		errors.Is(err, core.ErrPublisherNotFound):
		h.respondError(w, http.StatusNotFound, err.Error(), nil)
	case errors.Is(err, context.DeadlineExceeded):
		h.respondError(w, http.StatusGatewayTimeout, message, err)
	default:
		h.respondError(w, http.StatusInternalServerError, message, err)
	}
}

func (h *apiHandler) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error().Err(err).Int("status", status).Msg("cannot encode response")
	}
}

func (h *apiHandler) respondError(w http.ResponseWriter, status int, message string, err error) {
	if err != nil {
		h.logger.Error().Err(err).Int("status", status).Msg(message)
	}
	h.respondJSON(w, status, ErrorResponse{
		Error:   http.StatusText(status),
		Message: message,
		Code:    status,
	})
}
