package httpapi

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/leyuan/sportdesk/internal/domain/favorite"
	"github.com/leyuan/sportdesk/internal/domain/match"
	"github.com/leyuan/sportdesk/internal/i18n"
	"github.com/leyuan/sportdesk/internal/usecase"
)

type matchSnapshotDTO struct {
	Sport     string        `json:"sport"`
	FetchedAt string        `json:"fetchedAt"`
	Matches   []match.Match `json:"matches"`
}

func (h *Handler) GetMatchesBySport(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMatchesBySport")
	defer span.End()

	sport := match.SportType(strings.TrimSpace(r.PathValue("sport")))
	force := parseBoolQuery(r, "force")

	snapshot, err := h.matchService.FetchMatches(ctx, sport, force)
	if err != nil {
		h.logger.WarnContext(ctx, "fetch matches failed", "sport", sport, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, h.snapshotToDTO(ctx, snapshot))
}

func (h *Handler) RefreshAllMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RefreshAllMatches")
	defer span.End()

	snapshots, err := h.matchService.FetchAll(ctx, true)
	if err != nil {
		h.logger.ErrorContext(ctx, "refresh all matches failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make(map[string]matchSnapshotDTO, len(snapshots))
	for sport, snapshot := range snapshots {
		out[string(sport)] = h.snapshotToDTO(ctx, snapshot)
	}

	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) GetMatchRoster(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMatchRoster")
	defer span.End()

	matchID := strings.TrimSpace(r.PathValue("matchID"))

	// A disconnecting client cancels the in-flight roster load so a stale
	// result is never published back into the snapshot.
	token := usecase.NewRosterToken()
	stop := context.AfterFunc(ctx, token.Cancel)
	defer stop()

	m, err := h.rosterService.LoadRoster(ctx, matchID, token)
	if err != nil {
		h.logger.WarnContext(ctx, "load roster failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, i18n.LocalizeMatch(h.locale(ctx), m))
}

// snapshotToDTO localizes and pins favorites ahead of the rest of the list.
func (h *Handler) snapshotToDTO(ctx context.Context, snapshot match.Snapshot) matchSnapshotDTO {
	var favorites []favorite.Item
	if items, err := h.favoriteService.List(ctx); err != nil {
		h.logger.WarnContext(ctx, "list favorites for pinning failed", "error", err)
	} else {
		favorites = items
	}

	pinned, rest := h.favoriteService.PartitionByFavorites(snapshot.Matches, favorites)
	ordered := append(pinned, rest...)

	return matchSnapshotDTO{
		Sport:     string(snapshot.Sport),
		FetchedAt: formatTime(snapshot.FetchedAt),
		Matches:   i18n.LocalizeMatches(h.locale(ctx), ordered),
	}
}

func parseBoolQuery(r *http.Request, key string) bool {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return false
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false
	}
	return v
}

func formatTime(v time.Time) string {
	if v.IsZero() {
		return ""
	}
	return v.UTC().Format(time.RFC3339)
}
