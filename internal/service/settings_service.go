package service

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/mvanderkolk/Portfolio-Tracker-Backend/internal/config"
	apperrors "github.com/mvanderkolk/Portfolio-Tracker-Backend/internal/errors"
	"github.com/mvanderkolk/Portfolio-Tracker-Backend/internal/repository"
	"github.com/mvanderkolk/Portfolio-Tracker-Backend/internal/secrets"
)

// Setting keys for stored provider credentials.
const (
	settingAlphaVantageKey = "alphavantage_api_key"
	settingFredKey         = "fred_api_key"
)

// SettingsService resolves provider API keys. Keys stored through the
// API live fernet-encrypted in the system_setting table and take
// precedence over the bootstrap values from the environment.
type SettingsService struct {
	settings  *repository.SettingRepository
	vault     *secrets.Vault // nil when no fernet key is configured
	bootstrap config.ProviderConfig
	log       zerolog.Logger
}

// NewSettingsService creates a new SettingsService. vault may be nil;
// storing keys then fails, but environment keys keep working.
func NewSettingsService(
	settings *repository.SettingRepository,
	vault *secrets.Vault,
	bootstrap config.ProviderConfig,
	log zerolog.Logger,
) *SettingsService {
	return &SettingsService{
		settings:  settings,
		vault:     vault,
		bootstrap: bootstrap,
		log:       log.With().Str("component", "settings").Logger(),
	}
}

// AlphaVantageKey returns the fundamentals provider API key.
func (s *SettingsService) AlphaVantageKey() string {
	return s.providerKey(settingAlphaVantageKey, s.bootstrap.AlphaVantageKey)
}

// FredKey returns the yield provider API key.
func (s *SettingsService) FredKey() string {
	return s.providerKey(settingFredKey, s.bootstrap.FredKey)
}

// StoreProviderKeys encrypts and stores the supplied keys. Empty
// arguments leave the corresponding stored key unchanged.
func (s *SettingsService) StoreProviderKeys(alphaVantageKey, fredKey string) error {
	if s.vault == nil {
		return fmt.Errorf("cannot store provider keys: no fernet key configured")
	}

	if alphaVantageKey != "" {
		if err := s.storeKey(settingAlphaVantageKey, alphaVantageKey); err != nil {
			return err
		}
	}
	if fredKey != "" {
		if err := s.storeKey(settingFredKey, fredKey); err != nil {
			return err
		}
	}

	return nil
}

func (s *SettingsService) storeKey(settingKey, value string) error {
	encrypted, err := s.vault.Encrypt(value)
	if err != nil {
		return err
	}
	if err := s.settings.Upsert(settingKey, encrypted); err != nil {
		return err
	}
	s.log.Info().Str("key", settingKey).Msg("provider key stored")
	return nil
}

// providerKey resolves one key: stored and decryptable wins, otherwise
// the environment bootstrap value.
func (s *SettingsService) providerKey(settingKey, fallback string) string {
	setting, err := s.settings.Get(settingKey)
	if err != nil {
		if !errors.Is(err, apperrors.ErrSettingNotFound) {
			s.log.Warn().Err(err).Str("key", settingKey).Msg("failed to read stored key")
		}
		return fallback
	}

	if s.vault == nil {
		return fallback
	}

	decrypted, err := s.vault.Decrypt(setting.Value)
	if err != nil {
		s.log.Warn().Err(err).Str("key", settingKey).Msg("failed to decrypt stored key")
		return fallback
	}

	return decrypted
}
