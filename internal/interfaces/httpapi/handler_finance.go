package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/leyuan/sportdesk/internal/domain/finance"
	"github.com/leyuan/sportdesk/internal/usecase"
)

type addWatchItemRequest struct {
	ID     string `json:"id" validate:"required"`
	Type   string `json:"type" validate:"required"`
	Symbol string `json:"symbol" validate:"required,max=40"`
	Name   string `json:"name" validate:"omitempty,max=200"`
}

func (h *Handler) GetWatchlist(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetWatchlist")
	defer span.End()

	items, err := h.financeService.Watchlist(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list watchlist failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) AddWatchItem(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AddWatchItem")
	defer span.End()

	var req addWatchItemRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.financeService.AddToWatchlist(ctx, finance.WatchItem{
		ID:     req.ID,
		Type:   finance.AssetType(req.Type),
		Symbol: req.Symbol,
		Name:   req.Name,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "add watch item failed", "watch_id", req.ID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, item)
}

func (h *Handler) RemoveWatchItem(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RemoveWatchItem")
	defer span.End()

	id := strings.TrimSpace(r.PathValue("watchID"))
	if err := h.financeService.RemoveFromWatchlist(ctx, id); err != nil {
		h.logger.WarnContext(ctx, "remove watch item failed", "watch_id", id, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "removed"})
}

func (h *Handler) RefreshWatchlist(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RefreshWatchlist")
	defer span.End()

	items, err := h.financeService.RefreshWatchlist(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "refresh watchlist failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) SearchInstruments(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SearchInstruments")
	defer span.End()

	assetType := finance.AssetType(strings.TrimSpace(r.URL.Query().Get("type")))
	query := r.URL.Query().Get("q")

	results, err := h.financeService.Search(ctx, assetType, query)
	if err != nil {
		h.logger.WarnContext(ctx, "instrument search failed", "asset_type", assetType, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, results)
}
