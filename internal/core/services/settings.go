package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/custodia-labs/docnav/internal/core/domain"
	"github.com/custodia-labs/docnav/internal/core/ports/driven"
	"github.com/custodia-labs/docnav/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyCorpusRoot            = "corpus.root"
	keyCorpusExtensions      = "corpus.extensions"
	keyCorpusExclude         = "corpus.exclude"
	keyCorpusSkipDirs        = "corpus.skip_dirs"
	keyCorpusDefaultCategory = "corpus.default_category"
	keyCorpusCategoryOrder   = "corpus.category_order"
	keySearchDefaultLimit    = "search.default_limit"
	keySearchMaxLimit        = "search.max_limit"
	keyRefreshInterval       = "refresh.interval"
	keyRefreshWatch          = "refresh.watch"
	keyRefreshMinInterval    = "refresh.min_interval"
)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings, defaults filled in.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Corpus: domain.CorpusSettings{
			Root:            s.configStore.GetString(keyCorpusRoot),
			Extensions:      s.getStringSlice(keyCorpusExtensions, defaults.Corpus.Extensions),
			Exclude:         s.getStringSlice(keyCorpusExclude, defaults.Corpus.Exclude),
			SkipDirs:        s.getStringSlice(keyCorpusSkipDirs, defaults.Corpus.SkipDirs),
			DefaultCategory: s.getString(keyCorpusDefaultCategory, defaults.Corpus.DefaultCategory),
			CategoryOrder:   s.getStringSlice(keyCorpusCategoryOrder, defaults.Corpus.CategoryOrder),
		},
		Search: domain.SearchSettings{
			DefaultLimit: s.getInt(keySearchDefaultLimit, defaults.Search.DefaultLimit),
			MaxLimit:     s.getInt(keySearchMaxLimit, defaults.Search.MaxLimit),
		},
		Refresh: domain.RefreshSettings{
			Interval:    s.getDuration(keyRefreshInterval, defaults.Refresh.Interval),
			Watch:       s.getBool(keyRefreshWatch, defaults.Refresh.Watch),
			MinInterval: s.getDuration(keyRefreshMinInterval, defaults.Refresh.MinInterval),
		},
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	values := []struct {
		key   string
		value any
	}{
		{keyCorpusRoot, settings.Corpus.Root},
		{keyCorpusExtensions, settings.Corpus.Extensions},
		{keyCorpusExclude, settings.Corpus.Exclude},
		{keyCorpusSkipDirs, settings.Corpus.SkipDirs},
		{keyCorpusDefaultCategory, settings.Corpus.DefaultCategory},
		{keyCorpusCategoryOrder, settings.Corpus.CategoryOrder},
		{keySearchDefaultLimit, settings.Search.DefaultLimit},
		{keySearchMaxLimit, settings.Search.MaxLimit},
		{keyRefreshInterval, settings.Refresh.Interval.String()},
		{keyRefreshWatch, settings.Refresh.Watch},
		{keyRefreshMinInterval, settings.Refresh.MinInterval.String()},
	}

	for _, v := range values {
		if v.value == nil {
			continue
		}
		if slice, ok := v.value.([]string); ok && slice == nil {
			continue
		}
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}
	return nil
}

// SetCorpusRoot updates the corpus root.
func (s *SettingsService) SetCorpusRoot(root string) error {
	root = strings.TrimSpace(root)
	if root == "" {
		return fmt.Errorf("%w: corpus root must not be empty", domain.ErrInvalidInput)
	}
	if err := s.configStore.Set(keyCorpusRoot, root); err != nil {
		return fmt.Errorf("save %s: %w", keyCorpusRoot, err)
	}
	return nil
}

// Validate checks the current settings are usable.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}
	return ValidateSettings(settings)
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// ValidateSettings checks settings regardless of where they came from,
// so flag overrides are validated the same way as stored values.
func ValidateSettings(settings *domain.AppSettings) error {
	if settings.Corpus.Root == "" {
		return &domain.ConfigurationError{Root: "", Err: fmt.Errorf("no corpus root: set %s or pass --root", keyCorpusRoot)}
	}
	if len(settings.Corpus.Extensions) == 0 {
		return fmt.Errorf("%w: %s must list at least one extension", domain.ErrInvalidInput, keyCorpusExtensions)
	}
	if settings.Search.DefaultLimit <= 0 || settings.Search.MaxLimit <= 0 {
		return fmt.Errorf("%w: search limits must be positive", domain.ErrInvalidInput)
	}
	if settings.Search.DefaultLimit > settings.Search.MaxLimit {
		return fmt.Errorf("%w: %s (%d) exceeds %s (%d)", domain.ErrInvalidInput,
			keySearchDefaultLimit, settings.Search.DefaultLimit, keySearchMaxLimit, settings.Search.MaxLimit)
	}
	if settings.Refresh.Interval < 0 || settings.Refresh.MinInterval < 0 {
		return fmt.Errorf("%w: refresh intervals must not be negative", domain.ErrInvalidInput)
	}
	return nil
}

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val == 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

func (s *SettingsService) getStringSlice(key string, defaultVal []string) []string {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetStringSlice(key)
}

func (s *SettingsService) getDuration(key string, defaultVal time.Duration) time.Duration {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetDuration(key)
}
