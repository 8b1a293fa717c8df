package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/leyuan/sportdesk/internal/domain/settings"
	"github.com/leyuan/sportdesk/internal/platform/logging"
)

type intervalScheduler interface {
	UpdateInterval(d time.Duration)
}

type SettingsService struct {
	settingsRepo settings.Repository
	scheduler    intervalScheduler
	logger       *logging.Logger
}

func NewSettingsService(settingsRepo settings.Repository, scheduler intervalScheduler, logger *logging.Logger) *SettingsService {
	if logger == nil {
		logger = logging.Default()
	}
	return &SettingsService{
		settingsRepo: settingsRepo,
		scheduler:    scheduler,
		logger:       logger,
	}
}

func (s *SettingsService) Get(ctx context.Context) (settings.Settings, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SettingsService.Get")
	defer span.End()

	current, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return settings.Settings{}, fmt.Errorf("get settings: %w", err)
	}
	return current, nil
}

// Update validates and persists the settings, then retimes the
// background scheduler when the refresh cadence changed.
func (s *SettingsService) Update(ctx context.Context, next settings.Settings) (settings.Settings, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SettingsService.Update")
	defer span.End()

	next = next.Normalize()
	if !settings.ValidRefreshInterval(next.RefreshInterval) {
		return settings.Settings{}, fmt.Errorf("%w: refresh interval %d is not selectable", ErrInvalidInput, next.RefreshInterval)
	}
	switch next.Theme {
	case "dark", "light":
	default:
		return settings.Settings{}, fmt.Errorf("%w: unknown theme %q", ErrInvalidInput, next.Theme)
	}
	switch next.Language {
	case "zh", "en":
	default:
		return settings.Settings{}, fmt.Errorf("%w: unknown language %q", ErrInvalidInput, next.Language)
	}

	if err := s.settingsRepo.Save(ctx, next); err != nil {
		return settings.Settings{}, fmt.Errorf("save settings: %w", err)
	}

	if s.scheduler != nil {
		s.scheduler.UpdateInterval(time.Duration(next.RefreshInterval) * time.Minute)
	}
	return next, nil
}
