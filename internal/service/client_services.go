package service

import (
	"github.com/MKhiriev/lockbox/internal/adapter"
	"github.com/MKhiriev/lockbox/internal/config"
	"github.com/MKhiriev/lockbox/internal/logger"
)

type ClientServices struct {
	CryptoService    ClientCryptoService
	AuthService      ClientAuthService
	VaultService     ClientVaultService
	GeneratorService GeneratorService
}

func NewClientServices(serverAdapter adapter.ServerAdapter, cfg config.ClientApp, logger *logger.Logger) *ClientServices {
	cryptoSvc := NewClientCryptoService()

	return &ClientServices{
		CryptoService:    cryptoSvc,
		AuthService:      NewClientAuthService(serverAdapter, cryptoSvc, cfg.SessionTTL, logger),
		VaultService:     NewClientVaultService(serverAdapter, cryptoSvc, logger),
		GeneratorService: NewGeneratorService(),
	}
}
