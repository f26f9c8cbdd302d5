package service

import (
	"fmt"

	"github.com/MKhiriev/lockbox/internal/config"
	"github.com/MKhiriev/lockbox/internal/crypto"
	"github.com/MKhiriev/lockbox/internal/logger"
	"github.com/MKhiriev/lockbox/internal/store"
	"github.com/MKhiriev/lockbox/internal/utils"
	"github.com/MKhiriev/lockbox/internal/workers"
)

type Services struct {
	AuthService      AuthService
	VaultService     VaultService
	SettingsService  SettingsService
	GeneratorService GeneratorService
	AppInfoService   AppInfoService
}

// NewServices wires every server service. Auth, vault and settings services
// are wrapped with request validation.
func NewServices(storages *store.Storages, kdfPool *workers.KDFPool, cfg config.StructuredConfig, logger *logger.Logger) (*Services, error) {
	ids := utils.NewUUIDGenerator()
	keyChain := crypto.NewKeyChainServiceWithParams(crypto.KDFParams{
		FastIterations: cfg.Security.KDFFastIterations,
		SlowIterations: cfg.Security.KDFSlowIterations,
	})

	appInfo, err := NewAppInfoService(cfg.App, logger)
	if err != nil {
		return nil, fmt.Errorf("error creating app info service: %w", err)
	}

	auth := NewAuthService(storages, keyChain, kdfPool, ids, cfg, logger)
	vault := NewVaultService(storages.VaultRepository, storages.CategoryRepository, ids, logger)
	settings := NewSettingsService(storages, ids, logger)

	return &Services{
		AuthService:      NewAuthValidationService().Wrap(auth),
		VaultService:     NewVaultValidationService().Wrap(vault),
		SettingsService:  NewSettingsValidationService().Wrap(settings),
		GeneratorService: NewGeneratorService(),
		AppInfoService:   appInfo,
	}, nil
}
