package memory

import (
	"context"
	"sync"

	"github.com/leyuan/sportdesk/internal/domain/settings"
)

// SettingsRepository holds the single settings object. Reads before the
// first save return the defaults.
type SettingsRepository struct {
	mu     sync.RWMutex
	stored settings.Settings
	saved  bool
}

func NewSettingsRepository() *SettingsRepository {
	return &SettingsRepository{}
}

func (r *SettingsRepository) Get(_ context.Context) (settings.Settings, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if !r.saved {
		return settings.Default(), nil
	}
	return r.stored.Normalize(), nil
}

func (r *SettingsRepository) Save(_ context.Context, s settings.Settings) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.stored = s
	r.saved = true
	return nil
}
