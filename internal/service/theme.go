package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"smart_home_face/internal/logger"
	"smart_home_face/internal/repository"
)

// ThemeService holds the dark/light preference, persisted under the theme key.
type ThemeService struct {
	kv   repository.KeyValue
	def  string
	log  *logger.Logger
	mu   sync.RWMutex
	dark bool
}

func NewThemeService(kv repository.KeyValue, defaultTheme string, log *logger.Logger) *ThemeService {
	if defaultTheme != ThemeDark {
		defaultTheme = ThemeLight
	}
	return &ThemeService{kv: kv, def: defaultTheme, log: logger.OrNop(log), dark: defaultTheme == ThemeDark}
}

// Init loads the stored preference, falling back to the configured default.
func (s *ThemeService) Init(ctx context.Context) error {
	v, ok, err := s.kv.Get(ctx, repository.KeyTheme)
	if err != nil {
		return fmt.Errorf("load theme: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if ok {
		s.dark = v == ThemeDark
	} else {
		s.dark = s.def == ThemeDark
	}
	return nil
}

// Toggle flips the preference and returns the new theme.
func (s *ThemeService) Toggle(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := ThemeDark
	if s.dark {
		next = ThemeLight
	}
	if err := s.kv.Set(ctx, repository.KeyTheme, next); err != nil {
		return themeName(s.dark), fmt.Errorf("save theme: %w", err)
	}
	s.dark = next == ThemeDark
	s.log.Debugw("theme_changed", "theme", next)
	return next, nil
}

// Set stores theme, which must be "light" or "dark".
func (s *ThemeService) Set(ctx context.Context, theme string) error {
	theme = strings.ToLower(strings.TrimSpace(theme))
	if theme != ThemeLight && theme != ThemeDark {
		return fmt.Errorf("%w: got %q", ErrInvalidTheme, theme)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.kv.Set(ctx, repository.KeyTheme, theme); err != nil {
		return fmt.Errorf("save theme: %w", err)
	}
	s.dark = theme == ThemeDark
	return nil
}

func (s *ThemeService) Theme() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return themeName(s.dark)
}

func (s *ThemeService) DarkMode() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dark
}

func themeName(dark bool) string {
	if dark {
		return ThemeDark
	}
	return ThemeLight
}
