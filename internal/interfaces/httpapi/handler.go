package httpapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/leyuan/sportdesk/internal/platform/logging"
	"github.com/leyuan/sportdesk/internal/usecase"
)

type Handler struct {
	matchService    *usecase.MatchService
	favoriteService *usecase.FavoriteService
	rosterService   *usecase.RosterService
	financeService  *usecase.FinanceService
	settingsService *usecase.SettingsService
	logger          *logging.Logger
	validator       *validator.Validate
}

func NewHandler(
	matchService *usecase.MatchService,
	favoriteService *usecase.FavoriteService,
	rosterService *usecase.RosterService,
	financeService *usecase.FinanceService,
	settingsService *usecase.SettingsService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		matchService:    matchService,
		favoriteService: favoriteService,
		rosterService:   rosterService,
		financeService:  financeService,
		settingsService: settingsService,
		logger:          logger,
		validator:       validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

// locale resolves the stored display language. Failures fall back to the
// provider-native names rather than failing the request.
func (h *Handler) locale(ctx context.Context) string {
	prefs, err := h.settingsService.Get(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "read settings for locale failed", "error", err)
		return ""
	}
	return prefs.Language
}
