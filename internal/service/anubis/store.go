package anubis

import (
	"context"
	"fmt"
	"time"

	"articleprompts/internal/logger"
	"articleprompts/internal/repository"
)

const (
	cookieKeyPrefix = "anubis.cookie."
	expiresSuffix   = ".expires"
)

// Store keeps pass cookies per host in the settings table.
type Store struct {
	settings repository.SettingsRepository
	now      func() time.Time
}

func NewStore(settings repository.SettingsRepository) *Store {
	return &Store{settings: settings, now: time.Now}
}

// GetCookie returns the cookie for host, or "" when none is stored or it has expired.
func (s *Store) GetCookie(ctx context.Context, host string) (string, error) {
	rows, err := s.settings.GetByPrefix(ctx, cookieKeyPrefix+host)
	if err != nil {
		return "", fmt.Errorf("get cookie: %w", err)
	}

	var cookie, expires string
	for _, row := range rows {
		switch row.Key {
		case cookieKeyPrefix + host:
			cookie = row.Value
		case cookieKeyPrefix + host + expiresSuffix:
			expires = row.Value
		}
	}
	if cookie == "" {
		return "", nil
	}

	expiresAt, err := time.Parse(time.RFC3339, expires)
	if err != nil || s.now().After(expiresAt) {
		_ = s.DeleteCookie(ctx, host)
		return "", nil
	}
	return cookie, nil
}

func (s *Store) SetCookie(ctx context.Context, host, cookie string, expiresAt time.Time) error {
	err := s.settings.SetMany(ctx, map[string]string{
		cookieKeyPrefix + host:                 cookie,
		cookieKeyPrefix + host + expiresSuffix: expiresAt.UTC().Format(time.RFC3339),
	})
	if err != nil {
		logger.Warn("anubis cookie save failed", "module", "service", "action", "save", "resource", "settings", "result", "failed", "host", host, "error", err)
		return fmt.Errorf("set cookie: %w", err)
	}
	return nil
}

func (s *Store) DeleteCookie(ctx context.Context, host string) error {
	for _, key := range []string{cookieKeyPrefix + host, cookieKeyPrefix + host + expiresSuffix} {
		if err := s.settings.Delete(ctx, key); err != nil {
			return fmt.Errorf("delete cookie: %w", err)
		}
	}
	return nil
}
