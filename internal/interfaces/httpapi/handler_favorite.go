package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/leyuan/sportdesk/internal/domain/favorite"
	"github.com/leyuan/sportdesk/internal/domain/match"
	"github.com/leyuan/sportdesk/internal/i18n"
	"github.com/leyuan/sportdesk/internal/usecase"
)

type addFavoriteRequest struct {
	ID        string         `json:"id" validate:"required"`
	Type      string         `json:"type" validate:"required,oneof=team player match"`
	SportType string         `json:"sportType" validate:"required"`
	Name      string         `json:"name" validate:"required,max=200"`
	Logo      string         `json:"logo" validate:"omitempty,max=2000"`
	Extra     map[string]any `json:"extra"`
	MatchData *match.Match   `json:"matchData"`
}

func (h *Handler) ListFavorites(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListFavorites")
	defer span.End()

	items, err := h.favoriteService.List(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list favorites failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) AddFavorite(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AddFavorite")
	defer span.End()

	var req addFavoriteRequest
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

	item, err := h.favoriteService.Add(ctx, favorite.Item{
		ID:        req.ID,
		Type:      favorite.Type(req.Type),
		SportType: match.SportType(req.SportType),
		Name:      req.Name,
		Logo:      req.Logo,
		Extra:     req.Extra,
		MatchData: req.MatchData,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "add favorite failed", "favorite_id", req.ID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, item)
}

func (h *Handler) RemoveFavorite(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RemoveFavorite")
	defer span.End()

	id := strings.TrimSpace(r.PathValue("favoriteID"))
	sport := match.SportType(strings.TrimSpace(r.URL.Query().Get("sport")))

	if err := h.favoriteService.Remove(ctx, id, sport); err != nil {
		h.logger.WarnContext(ctx, "remove favorite failed", "favorite_id", id, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "removed"})
}

func (h *Handler) ListFavoriteMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListFavoriteMatches")
	defer span.End()

	matches, err := h.favoriteService.MatchesForFavorites(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "matches for favorites failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, i18n.LocalizeMatches(h.locale(ctx), matches))
}
