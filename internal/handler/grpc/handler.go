package grpc

import (
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/MKhiriev/lockbox/internal/logger"
	"github.com/MKhiriev/lockbox/internal/service"
)

// ServiceName is the name reported by the health service for the vault API.
const ServiceName = "lockbox.Vault"

// Handler is the root gRPC transport handler.
//
// The vault API itself is served over HTTP. The gRPC side exposes
// grpc.health.v1.Health so that orchestrators can probe the server.
type Handler struct {
	services *service.Services
	health   *health.Server

	logger *logger.Logger
}

// NewHandler constructs a [Handler] reporting SERVING for both the overall
// server and [ServiceName].
func NewHandler(services *service.Services, logger *logger.Logger) *Handler {
	logger.Debug().Msg("gRPC handler created")

	hs := health.NewServer()
	hs.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	hs.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_SERVING)

	return &Handler{
		services: services,
		health:   hs,
		logger:   logger,
	}
}

// Init builds a gRPC server with recovery and logging interceptors and
// registers the health service on it.
func (h *Handler) Init() *grpc.Server {
	server := grpc.NewServer(
		grpc.ChainUnaryInterceptor(h.unaryInterceptors()...),
		grpc.ChainStreamInterceptor(h.streamInterceptors()...),
	)
	healthpb.RegisterHealthServer(server, h.health)
	return server
}

// Shutdown flips every status to NOT_SERVING so watchers see the server
// going away before connections close.
func (h *Handler) Shutdown() {
	h.health.Shutdown()
}
