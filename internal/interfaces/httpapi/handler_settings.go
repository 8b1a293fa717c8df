package httpapi

import (
	"fmt"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/leyuan/sportdesk/internal/domain/settings"
	"github.com/leyuan/sportdesk/internal/usecase"
)

type updateSettingsRequest struct {
	RefreshInterval      int    `json:"refreshInterval" validate:"required,gt=0"`
	EnableNotifications  bool   `json:"enableNotifications"`
	Theme                string `json:"theme" validate:"omitempty,oneof=dark light"`
	Language             string `json:"language" validate:"omitempty,oneof=zh en"`
	ActiveTab            string `json:"activeTab" validate:"omitempty,max=40"`
	EsportsGameFilter    string `json:"esportsGameFilter" validate:"omitempty,max=40"`
	FootballLeagueFilter string `json:"footballLeagueFilter" validate:"omitempty,max=40"`
}

func (h *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetSettings")
	defer span.End()

	prefs, err := h.settingsService.Get(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "get settings failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, prefs)
}

func (h *Handler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateSettings")
	defer span.End()

	var req updateSettingsRequest
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

	saved, err := h.settingsService.Update(ctx, settings.Settings{
		RefreshInterval:      req.RefreshInterval,
		EnableNotifications:  req.EnableNotifications,
		Theme:                req.Theme,
		Language:             req.Language,
		ActiveTab:            req.ActiveTab,
		EsportsGameFilter:    req.EsportsGameFilter,
		FootballLeagueFilter: req.FootballLeagueFilter,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "update settings failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, saved)
}
